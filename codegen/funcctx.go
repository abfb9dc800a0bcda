package codegen

import "tinygo.org/x/go-llvm"

// funcCtx carries the per-function lowering state the teacher keeps as
// process-global ret-block/ret-value variables. Generation only ever
// processes one function body at a time (see gen.cur in codegen.go), so
// this is created fresh in genFunctionBody and discarded when it returns.
//
// retBlock is created lazily, on the first return statement encountered
// anywhere in the function body; a function with no return statement at
// all never allocates one, and genFunctionBody falls back to an
// unconditional ret at whatever block lowering left the builder on.
type funcCtx struct {
	fn       llvm.Value
	void     bool
	retValue llvm.Value
	retBlock llvm.BasicBlock
}
