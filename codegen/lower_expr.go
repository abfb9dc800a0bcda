package codegen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"minic/syntax"
)

// lowerExpr lowers an expression and returns its value: an Int (or an
// i1 for a relational operator) wherever sema typed the expression as
// Int. An expression statement hands its expression here whatever its
// type, so a Void call or a whole-array assignment can arrive here too.
// The two sites that need an Array-typed value (a call argument, or the
// right side of an array assignment) use lowerArrayExpr instead.
func (g *gen) lowerExpr(e syntax.Expr) (llvm.Value, error) {
	switch v := e.(type) {
	case syntax.IntLiteral:
		return llvm.ConstInt(g.intType, uint64(uint32(v.Value)), true), nil
	case syntax.VarRef:
		return g.lowerRead(v.LValue)
	case syntax.Call:
		return g.lowerCall(v)
	case syntax.Assign:
		return g.lowerAssign(v)
	case syntax.BinOp:
		return g.lowerBinOp(v)
	default:
		panic("codegen: unknown syntax.Expr variant")
	}
}

func (g *gen) lowerRead(lv syntax.LValue) (llvm.Value, error) {
	switch v := lv.(type) {
	case syntax.NameLValue:
		storage, ok := g.scopes.Lookup(v.Name)
		if !ok {
			return llvm.Value{}, fmt.Errorf("codegen: undefined variable %q", v.Name)
		}
		return g.builder.CreateLoad(storage.Addr, ""), nil
	case syntax.IndexLValue:
		addr, err := g.lowerIndexAddr(v)
		if err != nil {
			return llvm.Value{}, err
		}
		return g.builder.CreateLoad(addr, ""), nil
	default:
		panic("codegen: unknown syntax.LValue variant")
	}
}

// lowerIndexAddr computes the address of one element of an array. The
// two GEP shapes are the array-by-reference fix called for in
// SPEC_FULL.md §7: an owned array's storage points at the [N x int]
// aggregate itself, so reaching an element needs the two-index form
// (first index selects the aggregate the pointer points to, second
// selects the element); a by-reference parameter's storage already is a
// pointer to the element type, so one index reaches the element
// directly. Using the two-index form on a parameter pointer would GEP
// through a nonexistent wrapping aggregate and miscompute every offset.
func (g *gen) lowerIndexAddr(lv syntax.IndexLValue) (llvm.Value, error) {
	storage, ok := g.scopes.Lookup(lv.Name)
	if !ok {
		return llvm.Value{}, fmt.Errorf("codegen: undefined array %q", lv.Name)
	}
	idx, err := g.lowerExpr(lv.Index)
	if err != nil {
		return llvm.Value{}, err
	}
	idx = g.widenToInt(idx)

	if storage.IsArrayParam {
		return g.builder.CreateGEP(storage.Addr, []llvm.Value{idx}, ""), nil
	}
	zero := llvm.ConstInt(g.intType, 0, false)
	return g.builder.CreateGEP(storage.Addr, []llvm.Value{zero, idx}, ""), nil
}

// lowerArrayExpr lowers an Array-typed expression to a flat pointer to
// its first element. Per sema's typing rules an Array-typed expression
// is either a bare array name (VarRef over a NameLValue) or a
// whole-array assignment, which evaluates to its target's first-element
// pointer.
func (g *gen) lowerArrayExpr(e syntax.Expr) (llvm.Value, error) {
	if as, ok := e.(syntax.Assign); ok {
		return g.lowerAssign(as)
	}
	vr, ok := e.(syntax.VarRef)
	if !ok {
		return llvm.Value{}, fmt.Errorf("codegen: expected an array-valued expression, got %T", e)
	}
	name, ok := vr.LValue.(syntax.NameLValue)
	if !ok {
		return llvm.Value{}, fmt.Errorf("codegen: expected a bare array name, got %T", vr.LValue)
	}
	storage, ok := g.scopes.Lookup(name.Name)
	if !ok {
		return llvm.Value{}, fmt.Errorf("codegen: undefined array %q", name.Name)
	}
	if storage.IsArrayParam {
		return storage.Addr, nil
	}
	zero := llvm.ConstInt(g.intType, 0, false)
	return g.builder.CreateGEP(storage.Addr, []llvm.Value{zero, zero}, ""), nil
}

func (g *gen) lowerCall(c syntax.Call) (llvm.Value, error) {
	sig, ok := g.functions[c.Name]
	if !ok {
		return llvm.Value{}, fmt.Errorf("codegen: undefined function %q", c.Name)
	}
	args := make([]llvm.Value, len(c.Args))
	for i, a := range c.Args {
		switch sig.args[i] {
		case argScalar:
			v, err := g.lowerExpr(a)
			if err != nil {
				return llvm.Value{}, err
			}
			args[i] = g.widenToInt(v)
		case argArray:
			v, err := g.lowerArrayExpr(a)
			if err != nil {
				return llvm.Value{}, err
			}
			args[i] = v
		}
	}
	return g.builder.CreateCall(sig.value, args, ""), nil
}

// lowerAssign stores the right-hand value and evaluates to it, matching
// the grammar treating assignment as an expression (a = b = 0 is legal).
//
// A NameLValue target whose storage carries a nonzero Size is the one
// case sema types TArray on the left (SPEC_FULL.md §4.2's "semantically
// exotic" whole-array assignment): the only array that can ever be an
// assignment target is an owned array, so Size — 0 for every scalar and
// every by-reference parameter — is enough to tell the two apart
// without consulting sema's symbol kind. The source is decayed to a
// flat pointer the same way a call argument is, then copied element by
// element: the target's size is known at compile time, so the copy
// unrolls instead of needing a runtime loop.
func (g *gen) lowerAssign(a syntax.Assign) (llvm.Value, error) {
	switch t := a.Target.(type) {
	case syntax.NameLValue:
		storage, ok := g.scopes.Lookup(t.Name)
		if !ok {
			return llvm.Value{}, fmt.Errorf("codegen: undefined variable %q", t.Name)
		}
		if storage.Size > 0 {
			src, err := g.lowerArrayExpr(a.Value)
			if err != nil {
				return llvm.Value{}, err
			}
			return g.lowerArrayCopy(storage, src)
		}
		v, err := g.lowerExpr(a.Value)
		if err != nil {
			return llvm.Value{}, err
		}
		v = g.widenToInt(v)
		g.builder.CreateStore(v, storage.Addr)
		return v, nil
	case syntax.IndexLValue:
		addr, err := g.lowerIndexAddr(t)
		if err != nil {
			return llvm.Value{}, err
		}
		v, err := g.lowerExpr(a.Value)
		if err != nil {
			return llvm.Value{}, err
		}
		v = g.widenToInt(v)
		g.builder.CreateStore(v, addr)
		return v, nil
	default:
		panic("codegen: unknown syntax.LValue variant")
	}
}

func (g *gen) lowerArrayCopy(target Storage, src llvm.Value) (llvm.Value, error) {
	zero := llvm.ConstInt(g.intType, 0, false)
	dst := g.builder.CreateGEP(target.Addr, []llvm.Value{zero, zero}, "")
	for i := 0; i < target.Size; i++ {
		idx := llvm.ConstInt(g.intType, uint64(i), false)
		srcElem := g.builder.CreateGEP(src, []llvm.Value{idx}, "")
		v := g.builder.CreateLoad(srcElem, "")
		dstElem := g.builder.CreateGEP(dst, []llvm.Value{idx}, "")
		g.builder.CreateStore(v, dstElem)
	}
	return dst, nil
}

// lowerBinOp lowers the ten reachable operators. As has no production
// reachable from the parser, and sema does not examine operator
// identity, so seeing it here means the tree did not come from the
// parser. SPEC_FULL.md §9 calls for a loud failure here rather than
// silently emitting a zero value for it, the way the original does.
func (g *gen) lowerBinOp(b syntax.BinOp) (llvm.Value, error) {
	if b.Op == syntax.As {
		panic("codegen: unreachable operator As reached code generation — tree did not come from the parser")
	}

	lhs, err := g.lowerExpr(b.LHS)
	if err != nil {
		return llvm.Value{}, err
	}
	lhs = g.widenToInt(lhs)
	rhs, err := g.lowerExpr(b.RHS)
	if err != nil {
		return llvm.Value{}, err
	}
	rhs = g.widenToInt(rhs)

	switch b.Op {
	case syntax.Add:
		return g.builder.CreateAdd(lhs, rhs, ""), nil
	case syntax.Sub:
		return g.builder.CreateSub(lhs, rhs, ""), nil
	case syntax.Mul:
		return g.builder.CreateMul(lhs, rhs, ""), nil
	case syntax.Div:
		// Signed division (SPEC_FULL.md §9): our Int is a signed
		// 32-bit type, so the unsigned instruction would misinterpret
		// negative operands.
		return g.builder.CreateSDiv(lhs, rhs, ""), nil
	case syntax.Gt:
		return g.builder.CreateICmp(llvm.IntSGT, lhs, rhs, ""), nil
	case syntax.Ge:
		return g.builder.CreateICmp(llvm.IntSGE, lhs, rhs, ""), nil
	case syntax.Lt:
		return g.builder.CreateICmp(llvm.IntSLT, lhs, rhs, ""), nil
	case syntax.Le:
		return g.builder.CreateICmp(llvm.IntSLE, lhs, rhs, ""), nil
	case syntax.Ne:
		return g.builder.CreateICmp(llvm.IntNE, lhs, rhs, ""), nil
	case syntax.Eq:
		return g.builder.CreateICmp(llvm.IntEQ, lhs, rhs, ""), nil
	default:
		panic(fmt.Sprintf("codegen: unknown syntax.Op %d", b.Op))
	}
}

// lowerCond lowers an expression used as an if/while condition to an i1
// value. A relational BinOp already produced i1; anything else is an
// Int, non-zero meaning true.
func (g *gen) lowerCond(e syntax.Expr) (llvm.Value, error) {
	v, err := g.lowerExpr(e)
	if err != nil {
		return llvm.Value{}, err
	}
	if v.Type() == g.boolType {
		return v, nil
	}
	return g.builder.CreateICmp(llvm.IntNE, v, llvm.ConstInt(g.intType, 0, false), ""), nil
}

// widenToInt zero-extends an i1 relational result to Int wherever an
// Int is expected (an operand of another operator, a return value, a
// store target, a call argument). Anything already Int passes through
// unchanged.
func (g *gen) widenToInt(v llvm.Value) llvm.Value {
	if v.Type() == g.boolType {
		return g.builder.CreateZExt(v, g.intType, "")
	}
	return v
}
