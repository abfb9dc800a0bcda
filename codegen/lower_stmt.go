package codegen

import (
	"tinygo.org/x/go-llvm"

	"minic/syntax"
)

// lowerCompound pushes a new scope, allocates storage for every local
// declaration, and lowers each statement in order. It returns true if
// the last block it left the builder on is already terminated — by a
// return nested anywhere inside the compound — so that a caller (an
// enclosing if/while or genFunctionBody) knows not to fall through into
// it. Once a statement reports termination, any following sibling is
// unreachable and is not lowered: emitting it would append instructions
// after a terminator, producing ill-formed IR.
func (g *gen) lowerCompound(c *syntax.CompoundStmt) (bool, error) {
	g.scopes.Enter()
	defer g.scopes.Leave()

	for _, d := range c.Decls {
		switch v := d.(type) {
		case syntax.ScalarVarDecl:
			alloc := g.builder.CreateAlloca(g.intType, v.Name)
			g.scopes.Insert(v.Name, Storage{Addr: alloc, Type: g.intType})
		case syntax.ArrayVarDecl:
			arrType := llvm.ArrayType(g.intType, v.Size)
			alloc := g.builder.CreateAlloca(arrType, v.Name)
			g.scopes.Insert(v.Name, Storage{Addr: alloc, Type: arrType, Size: v.Size})
		default:
			panic("codegen: unknown syntax.VarDecl variant")
		}
	}

	for _, s := range c.Stmts {
		terminated, err := g.lowerStmt(s)
		if err != nil {
			return false, err
		}
		if terminated {
			return true, nil
		}
	}
	return false, nil
}

func (g *gen) lowerStmt(s syntax.Stmt) (bool, error) {
	switch v := s.(type) {
	case syntax.EmptyStmt:
		return false, nil
	case syntax.ExprStmt:
		_, err := g.lowerExpr(v.X)
		return false, err
	case *syntax.CompoundStmt:
		return g.lowerCompound(v)
	case *syntax.IfStmt:
		return false, g.lowerIf(v)
	case *syntax.IfElseStmt:
		return g.lowerIfElse(v)
	case *syntax.WhileStmt:
		return false, g.lowerWhile(v)
	case *syntax.ReturnStmt:
		return true, g.lowerReturn(v)
	default:
		panic("codegen: unknown syntax.Stmt variant")
	}
}

// lowerIf mirrors the teacher's genIf single-branch case: condition,
// then-block, and a merge block the false edge always reaches, so an
// If statement alone never terminates its enclosing block.
func (g *gen) lowerIf(s *syntax.IfStmt) error {
	cond, err := g.lowerCond(s.Cond)
	if err != nil {
		return err
	}

	thenBB := llvm.AddBasicBlock(g.cur.fn, "then")
	mergeBB := llvm.AddBasicBlock(g.cur.fn, "ifcont")
	g.builder.CreateCondBr(cond, thenBB, mergeBB)

	g.builder.SetInsertPointAtEnd(thenBB)
	terminated, err := g.lowerStmt(s.Then)
	if err != nil {
		return err
	}
	if !terminated {
		g.builder.CreateBr(mergeBB)
	}

	g.builder.SetInsertPointAtEnd(mergeBB)
	return nil
}

// lowerIfElse mirrors the teacher's genIf two-branch case: a merge block
// is only created if at least one arm falls through to it. If both arms
// terminate (each ends in a return, possibly nested), there is nothing
// left to fall through into and the statement itself reports terminated.
func (g *gen) lowerIfElse(s *syntax.IfElseStmt) (bool, error) {
	cond, err := g.lowerCond(s.Cond)
	if err != nil {
		return false, err
	}

	thenBB := llvm.AddBasicBlock(g.cur.fn, "then")
	elseBB := llvm.AddBasicBlock(g.cur.fn, "else")
	g.builder.CreateCondBr(cond, thenBB, elseBB)

	g.builder.SetInsertPointAtEnd(thenBB)
	thenTerm, err := g.lowerStmt(s.Then)
	if err != nil {
		return false, err
	}

	var mergeBB llvm.BasicBlock
	if !thenTerm {
		mergeBB = llvm.AddBasicBlock(g.cur.fn, "ifcont")
		g.builder.CreateBr(mergeBB)
	}

	g.builder.SetInsertPointAtEnd(elseBB)
	elseTerm, err := g.lowerStmt(s.Else)
	if err != nil {
		return false, err
	}

	if !elseTerm {
		if mergeBB.IsNil() {
			mergeBB = llvm.AddBasicBlock(g.cur.fn, "ifcont")
		}
		g.builder.CreateBr(mergeBB)
	}

	if mergeBB.IsNil() {
		return true, nil
	}
	g.builder.SetInsertPointAtEnd(mergeBB)
	return false, nil
}

// lowerWhile mirrors the teacher's genWhile head/body/merge layout. The
// teacher leaves the block preceding the loop without a branch into
// cond_block; that's a missing terminator, not a deliberate shape, so
// this always emits the fallthrough branch explicitly.
func (g *gen) lowerWhile(s *syntax.WhileStmt) error {
	condBB := llvm.AddBasicBlock(g.cur.fn, "while.cond")
	bodyBB := llvm.AddBasicBlock(g.cur.fn, "while.body")
	mergeBB := llvm.AddBasicBlock(g.cur.fn, "while.end")

	g.builder.CreateBr(condBB)

	g.builder.SetInsertPointAtEnd(condBB)
	cond, err := g.lowerCond(s.Cond)
	if err != nil {
		return err
	}
	g.builder.CreateCondBr(cond, bodyBB, mergeBB)

	g.builder.SetInsertPointAtEnd(bodyBB)
	terminated, err := g.lowerStmt(s.Body)
	if err != nil {
		return err
	}
	if !terminated {
		g.builder.CreateBr(condBB)
	}

	g.builder.SetInsertPointAtEnd(mergeBB)
	return nil
}

// lowerReturn implements the single-exit return channel (SPEC_FULL.md
// §4.3): the first return statement anywhere in a function allocates
// ret_block; every return, including this one, stores its value (if
// any) into ret_value and branches to ret_block rather than emitting
// its own ret instruction. genFunctionBody closes the block out once,
// after the whole body has been lowered.
func (g *gen) lowerReturn(s *syntax.ReturnStmt) error {
	if g.cur.retBlock.IsNil() {
		g.cur.retBlock = llvm.AddBasicBlock(g.cur.fn, "ret")
	}
	if s.Value != nil {
		v, err := g.lowerExpr(s.Value)
		if err != nil {
			return err
		}
		g.builder.CreateStore(g.widenToInt(v), g.cur.retValue)
	}
	g.builder.CreateBr(g.cur.retBlock)
	return nil
}
