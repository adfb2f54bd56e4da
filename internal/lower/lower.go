// Package lower translates a type-checked syntax tree into the
// register-based IR of package ir.
package lower

import (
	"fmt"

	"opal/internal/ast"
	"opal/internal/ir"
)

// UnsupportedError reports a construct the builder cannot lower.
type UnsupportedError struct {
	Pos       ast.Position
	Construct string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: unsupported %s", e.Pos, e.Construct)
}

// bailout carries an error up the recursive walk to Lower.
type bailout struct{ err error }

// ---------------------------------------------------------------------------
// Lowerer - translates an ast.Module into an ir.Module
// ---------------------------------------------------------------------------

// Lowerer walks the AST and appends IR instructions at its cursor.
type Lowerer struct {
	module *ir.Module
	fn     *ir.Function // current function
	block  *ir.Label    // current block; every emit goes here

	// Storage register of each declared variable, keyed by its declaration.
	vars map[*ast.VarStmt]*ir.Register
}

// Lower translates every function of mod, in declaration order. Each
// function is checked with ir.Verify. On failure no module is returned.
func Lower(mod *ast.Module) (out *ir.Module, err error) {
	l := &Lowerer{module: &ir.Module{}}

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			out, err = nil, b.err
		}
	}()

	for _, fn := range mod.Functions {
		l.lowerFunction(fn)
	}
	for _, fn := range l.module.Functions {
		if err := ir.Verify(fn); err != nil {
			return nil, fmt.Errorf("lowering %s produced invalid IR: %w", fn.Name, err)
		}
	}
	return l.module, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (l *Lowerer) fail(pos ast.Position, format string, args ...any) {
	panic(bailout{&UnsupportedError{Pos: pos, Construct: fmt.Sprintf(format, args...)}})
}

func (l *Lowerer) emit(in ir.Instruction) {
	l.block.Append(in)
}

func (l *Lowerer) newReg() *ir.Register {
	return l.fn.NewRegister()
}

// storage returns the pointer register bound to a variable declaration.
func (l *Lowerer) storage(pos ast.Position, name string, decl *ast.VarStmt) *ir.Register {
	p, ok := l.vars[decl]
	if decl == nil || !ok {
		l.fail(pos, "reference to unresolved name %q", name)
	}
	return p
}

// ---------------------------------------------------------------------------
// Function lowering
// ---------------------------------------------------------------------------

func (l *Lowerer) lowerFunction(decl *ast.FnDecl) {
	l.fn = ir.NewFunction(decl.Name)
	l.block = l.fn.NewLabel()
	l.vars = make(map[*ast.VarStmt]*ir.Register)

	if decl.Body != nil {
		l.lowerBlock(decl.Body)
	}
	// Every body ends with a bare return in whatever block is current.
	l.emit(&ir.Return{})

	l.module.Functions = append(l.module.Functions, l.fn)
}

// ---------------------------------------------------------------------------
// Statement lowering
// ---------------------------------------------------------------------------

func (l *Lowerer) lowerBlock(block *ast.BlockStmt) {
	for _, stmt := range block.Stmts {
		l.lowerStmt(stmt)
	}
}

func (l *Lowerer) lowerStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		l.lowerBlock(s)
	case *ast.VarStmt:
		l.lowerVarStmt(s)
	case *ast.AssignStmt:
		l.lowerAssignStmt(s)
	case *ast.ReturnStmt:
		l.lowerReturnStmt(s)
	case *ast.ExprStmt:
		l.lowerExpr(s.Expression)
	case *ast.IfStmt:
		l.lowerIfStmt(s)
	case *ast.WhileStmt:
		l.lowerWhileStmt(s)
	case *ast.DoWhileStmt:
		l.lowerDoWhileStmt(s)
	case *ast.LoopStmt:
		l.lowerLoopStmt(s)
	case *ast.MatchStmt:
		l.lowerMatchStmt(s)
	case nil:
		// empty arm body
	default:
		l.fail(stmt.GetPos(), "statement %T", stmt)
	}
}

func (l *Lowerer) lowerVarStmt(s *ast.VarStmt) {
	v := l.lowerExpr(s.Value)
	p := l.newReg()
	l.emit(&ir.Allocate{Size: 4, Ptr: p})
	l.emit(&ir.Store{Value: v, Ptr: p})
	l.vars[s] = p
}

var compoundOps = map[string]ir.Opcode{
	"+=": ir.ADD,
	"-=": ir.SUBTRACT,
	"*=": ir.MULTIPLY,
	"/=": ir.DIVIDE,
	"%=": ir.MODULO,
}

func (l *Lowerer) lowerAssignStmt(s *ast.AssignStmt) {
	p := l.storage(s.Pos, s.Name, s.Binding)
	if s.Op == "=" {
		v := l.lowerExpr(s.Value)
		l.emit(&ir.Store{Value: v, Ptr: p})
		return
	}
	op, ok := compoundOps[s.Op]
	if !ok {
		l.fail(s.Pos, "assignment operator %s", s.Op)
	}
	cur := l.newReg()
	l.emit(&ir.Load{Ptr: p, Dst: cur})
	v := l.lowerExpr(s.Value)
	r := l.newReg()
	l.emit(&ir.Binary{Op: op, Lhs: cur, Rhs: v, Dst: r})
	l.emit(&ir.Store{Value: r, Ptr: p})
}

func (l *Lowerer) lowerReturnStmt(s *ast.ReturnStmt) {
	if s.Value == nil {
		l.emit(&ir.Return{})
		return
	}
	v := l.lowerExpr(s.Value)
	l.emit(&ir.Return{Value: v})
}

// if:  S: cond; JIT cond, then; JMP else|exit
//      then: ...; JMP exit
//      else: ...; JMP exit
//      exit:
//
// Labels are created as they are reached: then, the then-body's own labels,
// else, the else-body's labels, exit last.
func (l *Lowerer) lowerIfStmt(s *ast.IfStmt) {
	cond := l.lowerExpr(s.Condition)
	start := l.block

	then := l.fn.NewLabel()
	start.Append(&ir.JumpIfTrue{Cond: cond, Target: then.Ref()})

	l.block = then
	l.lowerBlock(s.Then)
	ends := []*ir.Label{l.block}

	if s.Else == nil {
		ends = append(ends, start)
	} else {
		els := l.fn.NewLabel()
		start.Append(&ir.Jump{Target: els.Ref()})
		l.block = els
		l.lowerStmt(s.Else)
		ends = append(ends, l.block)
	}

	exit := l.fn.NewLabel()
	for _, b := range ends {
		b.Append(&ir.Jump{Target: exit.Ref()})
	}
	l.block = exit
}

// while: JMP body
//        body: cond; JIT cond, exit; ...; JMP body
//        exit:
//
// The body runs while the condition is false.
func (l *Lowerer) lowerWhileStmt(s *ast.WhileStmt) {
	body := l.fn.NewLabel()
	exit := l.fn.NewLabel()

	l.emit(&ir.Jump{Target: body.Ref()})
	l.block = body
	cond := l.lowerExpr(s.Condition)
	l.emit(&ir.JumpIfTrue{Cond: cond, Target: exit.Ref()})
	l.lowerBlock(s.Body)
	l.emit(&ir.Jump{Target: body.Ref()})

	l.block = exit
}

// do-while: JMP body
//           body: ...; cond; JIT cond, exit; JMP body
//           exit:
func (l *Lowerer) lowerDoWhileStmt(s *ast.DoWhileStmt) {
	body := l.fn.NewLabel()
	exit := l.fn.NewLabel()

	l.emit(&ir.Jump{Target: body.Ref()})
	l.block = body
	l.lowerBlock(s.Body)
	cond := l.lowerExpr(s.Condition)
	l.emit(&ir.JumpIfTrue{Cond: cond, Target: exit.Ref()})
	l.emit(&ir.Jump{Target: body.Ref()})

	l.block = exit
}

func (l *Lowerer) lowerLoopStmt(s *ast.LoopStmt) {
	body := l.fn.NewLabel()
	exit := l.fn.NewLabel()

	l.emit(&ir.Jump{Target: body.Ref()})
	l.block = body
	l.lowerBlock(s.Body)
	l.emit(&ir.Jump{Target: body.Ref()})

	l.block = exit
}

// match: for each arm, S: value; pattern; EQU; JIT eq, arm
//        arm: body; JMP exit
//        S: JMP default|exit
//
// The scrutinee is lowered again for every arm so each comparison reads a
// fresh register.
func (l *Lowerer) lowerMatchStmt(s *ast.MatchStmt) {
	exit := l.fn.NewLabel()
	start := l.block
	var def *ir.Label

	for _, arm := range s.Arms {
		if arm.IsDefault() {
			def = l.fn.NewLabel()
			l.block = def
			l.lowerStmt(arm.Body)
			l.emit(&ir.Jump{Target: exit.Ref()})
			continue
		}

		l.block = start
		v := l.lowerExpr(s.Value)
		p := l.lowerExpr(arm.Pattern)
		eq := l.newReg()
		l.emit(&ir.Binary{Op: ir.EQUAL, Lhs: v, Rhs: p, Dst: eq})

		target := l.fn.NewLabel()
		l.emit(&ir.JumpIfTrue{Cond: eq, Target: target.Ref()})
		l.block = target
		l.lowerStmt(arm.Body)
		l.emit(&ir.Jump{Target: exit.Ref()})
	}

	final := exit
	if def != nil {
		final = def
	}
	start.Append(&ir.Jump{Target: final.Ref()})

	l.block = exit
}

// ---------------------------------------------------------------------------
// Expression lowering - every expression yields a fresh register
// ---------------------------------------------------------------------------

var binaryOps = map[string]ir.Opcode{
	"+":  ir.ADD,
	"-":  ir.SUBTRACT,
	"*":  ir.MULTIPLY,
	"/":  ir.DIVIDE,
	"%":  ir.MODULO,
	"&&": ir.AND,
	"||": ir.OR,
	"==": ir.EQUAL,
	"!=": ir.NOT_EQUAL,
	"<":  ir.LESS,
	"<=": ir.LESS_EQUAL,
	">":  ir.GREATER,
	">=": ir.GREATER_EQUAL,
}

func (l *Lowerer) lowerExpr(expr ast.Expr) *ir.Register {
	switch e := expr.(type) {
	case *ast.IntLitExpr:
		return l.lowerImmediate(ir.Immediate(e.Value))
	case *ast.BoolLitExpr:
		if e.Value {
			return l.lowerImmediate(1)
		}
		return l.lowerImmediate(0)
	case *ast.GroupExpr:
		return l.lowerExpr(e.Expression)
	case *ast.UnaryExpr:
		return l.lowerUnaryExpr(e)
	case *ast.BinaryExpr:
		return l.lowerBinaryExpr(e)
	case *ast.LoadExpr:
		p := l.storage(e.Pos, e.Name, e.Binding)
		dst := l.newReg()
		l.emit(&ir.Load{Ptr: p, Dst: dst})
		return dst
	case *ast.IncDecExpr:
		return l.lowerIncDecExpr(e)
	case nil:
		l.fail(ast.Position{}, "missing expression")
	default:
		l.fail(expr.GetPos(), "expression %T", expr)
	}
	return nil
}

func (l *Lowerer) lowerImmediate(v ir.Immediate) *ir.Register {
	dst := l.newReg()
	l.emit(&ir.Move{Src: v, Dst: dst})
	return dst
}

func (l *Lowerer) lowerUnaryExpr(e *ast.UnaryExpr) *ir.Register {
	var op ir.Opcode
	switch e.Op {
	case "+":
		return l.lowerExpr(e.Operand)
	case "-":
		op = ir.NEGATE
	case "!":
		op = ir.NOT
	default:
		l.fail(e.Pos, "unary operator %s", e.Op)
	}
	src := l.lowerExpr(e.Operand)
	dst := l.newReg()
	l.emit(&ir.Unary{Op: op, Src: src, Dst: dst})
	return dst
}

func (l *Lowerer) lowerBinaryExpr(e *ast.BinaryExpr) *ir.Register {
	op, ok := binaryOps[e.Op]
	if !ok {
		l.fail(e.Pos, "binary operator %s", e.Op)
	}
	lhs := l.lowerExpr(e.Left)
	rhs := l.lowerExpr(e.Right)
	dst := l.newReg()
	l.emit(&ir.Binary{Op: op, Lhs: lhs, Rhs: rhs, Dst: dst})
	return dst
}

// ++x / --x: the updated value is stored, then loaded again as the result.
func (l *Lowerer) lowerIncDecExpr(e *ast.IncDecExpr) *ir.Register {
	p := l.storage(e.Pos, e.Name, e.Binding)
	op := ir.ADD
	if e.Decrement {
		op = ir.SUBTRACT
	}
	cur := l.newReg()
	l.emit(&ir.Load{Ptr: p, Dst: cur})
	one := l.lowerImmediate(1)
	r := l.newReg()
	l.emit(&ir.Binary{Op: op, Lhs: cur, Rhs: one, Dst: r})
	l.emit(&ir.Store{Value: r, Ptr: p})
	dst := l.newReg()
	l.emit(&ir.Load{Ptr: p, Dst: dst})
	return dst
}
