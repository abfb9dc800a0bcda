package codegen

import (
	"tinygo.org/x/go-llvm"

	"minic/syntax"
)

// genFunctionBody generates the entry block, binds parameters, lowers
// the function body, and closes out the single-exit return channel.
//
// Steps 1-4 mirror the teacher's genFuncBody: create the entry block,
// position the builder there, and for every parameter allocate and
// store (scalar) or bind the incoming pointer directly (array
// reference — no alloca, so indexing it later uses a single-index GEP
// instead of the double-index form an owned array needs).
func (g *gen) genFunctionBody(fn *syntax.FunctionDecl, sig *funcSig) error {
	g.scopes.Enter()
	defer g.scopes.Leave()

	entry := llvm.AddBasicBlock(sig.value, "entry")
	g.builder.SetInsertPointAtEnd(entry)

	for i, p := range fn.Params {
		param := sig.value.Param(i)
		switch v := p.(type) {
		case syntax.ScalarParam:
			param.SetName(v.Name)
			alloc := g.builder.CreateAlloca(g.intType, v.Name)
			g.builder.CreateStore(param, alloc)
			g.scopes.Insert(v.Name, Storage{Addr: alloc, Type: g.intType})
		case syntax.ArrayRefParam:
			param.SetName(v.Name)
			g.scopes.Insert(v.Name, Storage{Addr: param, Type: g.intType, IsArrayParam: true})
		default:
			panic("codegen: unknown syntax.Param variant")
		}
	}

	fc := &funcCtx{fn: sig.value, void: sig.voidFn}
	if !sig.voidFn {
		fc.retValue = g.builder.CreateAlloca(g.intType, "ret_value")
	}
	prev := g.cur
	g.cur = fc
	defer func() { g.cur = prev }()

	terminated, err := g.lowerCompound(fn.Body)
	if err != nil {
		return err
	}

	if fc.retBlock.IsNil() {
		if !terminated {
			g.builder.CreateRetVoid()
		}
		return nil
	}

	if !terminated {
		g.builder.CreateBr(fc.retBlock)
	}
	g.builder.SetInsertPointAtEnd(fc.retBlock)
	if fc.void {
		g.builder.CreateRetVoid()
		return nil
	}
	v := g.builder.CreateLoad(fc.retValue, "")
	g.builder.CreateRet(v)
	return nil
}
