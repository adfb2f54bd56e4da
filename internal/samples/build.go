// Package samples builds syntax trees in code, standing in for the front end,
// and keeps a catalog of named programs with their expected results.
package samples

import "opal/internal/ast"

// Mod builds a module from function declarations.
func Mod(name string, fns ...*ast.FnDecl) *ast.Module {
	return &ast.Module{Name: name, Functions: fns}
}

// Fn builds a procedure whose body is stmts.
func Fn(name string, stmts ...ast.Stmt) *ast.FnDecl {
	return &ast.FnDecl{Name: name, Body: Block(stmts...)}
}

func Block(stmts ...ast.Stmt) *ast.BlockStmt {
	return &ast.BlockStmt{Stmts: stmts}
}

func Int(v int64) *ast.IntLitExpr { return &ast.IntLitExpr{Value: v} }

func Bool(v bool) *ast.BoolLitExpr { return &ast.BoolLitExpr{Value: v} }

func Bin(op string, lhs, rhs ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Op: op, Left: lhs, Right: rhs}
}

func Unary(op string, x ast.Expr) *ast.UnaryExpr {
	return &ast.UnaryExpr{Op: op, Operand: x}
}

func Group(x ast.Expr) *ast.GroupExpr { return &ast.GroupExpr{Expression: x} }

// Var declares name; the returned node is also the binding for Load, Set and
// Inc.
func Var(name string, value ast.Expr) *ast.VarStmt {
	return &ast.VarStmt{Name: name, Value: value}
}

func Load(v *ast.VarStmt) *ast.LoadExpr {
	return &ast.LoadExpr{Name: v.Name, Binding: v}
}

// Set builds `name op value` where op is "=" or a compound operator.
func Set(v *ast.VarStmt, op string, value ast.Expr) *ast.AssignStmt {
	return &ast.AssignStmt{Name: v.Name, Binding: v, Op: op, Value: value}
}

func Inc(v *ast.VarStmt) *ast.IncDecExpr {
	return &ast.IncDecExpr{Name: v.Name, Binding: v}
}

func Dec(v *ast.VarStmt) *ast.IncDecExpr {
	return &ast.IncDecExpr{Name: v.Name, Binding: v, Decrement: true}
}

func Ret(x ast.Expr) *ast.ReturnStmt { return &ast.ReturnStmt{Value: x} }

func RetVoid() *ast.ReturnStmt { return &ast.ReturnStmt{} }

func Eval(x ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Expression: x} }

// If builds an if statement. els may be nil, a *ast.BlockStmt or an
// *ast.IfStmt.
func If(cond ast.Expr, then *ast.BlockStmt, els ast.Stmt) *ast.IfStmt {
	return &ast.IfStmt{Condition: cond, Then: then, Else: els}
}

func While(cond ast.Expr, body ...ast.Stmt) *ast.WhileStmt {
	return &ast.WhileStmt{Condition: cond, Body: Block(body...)}
}

func DoWhile(cond ast.Expr, body ...ast.Stmt) *ast.DoWhileStmt {
	return &ast.DoWhileStmt{Body: Block(body...), Condition: cond}
}

func Loop(body ...ast.Stmt) *ast.LoopStmt {
	return &ast.LoopStmt{Body: Block(body...)}
}

func Match(value ast.Expr, arms ...*ast.MatchArm) *ast.MatchStmt {
	return &ast.MatchStmt{Value: value, Arms: arms}
}

func Arm(pattern ast.Expr, body ast.Stmt) *ast.MatchArm {
	return &ast.MatchArm{Pattern: pattern, Body: body}
}

// Default builds the `_` arm.
func Default(body ast.Stmt) *ast.MatchArm {
	return &ast.MatchArm{Body: body}
}
