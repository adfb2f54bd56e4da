package ast

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Source position
// ---------------------------------------------------------------------------

// Position represents a line/column pair in source code (1-based).
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ---------------------------------------------------------------------------
// Interfaces
// ---------------------------------------------------------------------------

// Node is implemented by every AST node.
type Node interface {
	GetPos() Position
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// ---------------------------------------------------------------------------
// Module (root)
// ---------------------------------------------------------------------------

// Module is the root handed over by the type checker: an ordered list of
// function declarations, already validated.
type Module struct {
	Name      string
	Functions []*FnDecl
	Pos       Position
}

func (n *Module) GetPos() Position { return n.Pos }

// FnDecl is a procedure declaration. Procedures take no parameters.
type FnDecl struct {
	Name string
	Body *BlockStmt
	Pos  Position
}

func (n *FnDecl) GetPos() Position { return n.Pos }

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// BlockStmt is a brace-delimited list of statements.
type BlockStmt struct {
	Stmts []Stmt
	Pos   Position
}

func (n *BlockStmt) GetPos() Position { return n.Pos }
func (n *BlockStmt) stmtNode()        {}

// VarStmt binds a name to a fresh one-word cell: var <name> = <value>;
// Loads and assignments refer back to the declaring VarStmt.
type VarStmt struct {
	Name  string
	Value Expr
	Pos   Position
}

func (n *VarStmt) GetPos() Position { return n.Pos }
func (n *VarStmt) stmtNode()        {}

// AssignStmt: <name> <op> <value>; where Op is "=", "+=", "-=", "*=", "/=",
// "%=" or "**=".
type AssignStmt struct {
	Name    string
	Binding *VarStmt
	Op      string
	Value   Expr
	Pos     Position
}

func (n *AssignStmt) GetPos() Position { return n.Pos }
func (n *AssignStmt) stmtNode()        {}

// ReturnStmt: return <value>; Value is nil for a bare return.
type ReturnStmt struct {
	Value Expr
	Pos   Position
}

func (n *ReturnStmt) GetPos() Position { return n.Pos }
func (n *ReturnStmt) stmtNode()        {}

// IfStmt: if (<cond>) { ... } [else { ... } | else if ...]
type IfStmt struct {
	Condition Expr
	Then      *BlockStmt
	Else      Stmt // nil, *BlockStmt, or *IfStmt
	Pos       Position
}

func (n *IfStmt) GetPos() Position { return n.Pos }
func (n *IfStmt) stmtNode()        {}

// WhileStmt: while (<cond>) { ... }
type WhileStmt struct {
	Condition Expr
	Body      *BlockStmt
	Pos       Position
}

func (n *WhileStmt) GetPos() Position { return n.Pos }
func (n *WhileStmt) stmtNode()        {}

// DoWhileStmt: do { ... } while (<cond>);
type DoWhileStmt struct {
	Body      *BlockStmt
	Condition Expr
	Pos       Position
}

func (n *DoWhileStmt) GetPos() Position { return n.Pos }
func (n *DoWhileStmt) stmtNode()        {}

// LoopStmt: loop { ... }
type LoopStmt struct {
	Body *BlockStmt
	Pos  Position
}

func (n *LoopStmt) GetPos() Position { return n.Pos }
func (n *LoopStmt) stmtNode()        {}

// MatchStmt: match <value> { <pattern>: <body>, ... _: <body>, }
type MatchStmt struct {
	Value Expr
	Arms  []*MatchArm
	Pos   Position
}

func (n *MatchStmt) GetPos() Position { return n.Pos }
func (n *MatchStmt) stmtNode()        {}

// MatchArm is one arm of a match. A nil Pattern is the default arm `_`.
type MatchArm struct {
	Pattern Expr
	Body    Stmt
	Pos     Position
}

func (n *MatchArm) GetPos() Position { return n.Pos }

// IsDefault reports whether the arm is the `_` arm.
func (n *MatchArm) IsDefault() bool { return n.Pattern == nil }

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	Expression Expr
	Pos        Position
}

func (n *ExprStmt) GetPos() Position { return n.Pos }
func (n *ExprStmt) stmtNode()        {}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

type IntLitExpr struct {
	Value int64
	Pos   Position
}

func (n *IntLitExpr) GetPos() Position { return n.Pos }
func (n *IntLitExpr) exprNode()        {}

type BoolLitExpr struct {
	Value bool
	Pos   Position
}

func (n *BoolLitExpr) GetPos() Position { return n.Pos }
func (n *BoolLitExpr) exprNode()        {}

// UnaryExpr: <op><operand> where Op is "-", "!" or "+".
type UnaryExpr struct {
	Op      string
	Operand Expr
	Pos     Position
}

func (n *UnaryExpr) GetPos() Position { return n.Pos }
func (n *UnaryExpr) exprNode()        {}

// BinaryExpr: <left> <op> <right>
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
	Pos   Position
}

func (n *BinaryExpr) GetPos() Position { return n.Pos }
func (n *BinaryExpr) exprNode()        {}

// LoadExpr reads a bound name. Binding is filled in by scope resolution.
type LoadExpr struct {
	Name    string
	Binding *VarStmt
	Pos     Position
}

func (n *LoadExpr) GetPos() Position { return n.Pos }
func (n *LoadExpr) exprNode()        {}

// IncDecExpr: ++<name> or --<name>; evaluates to the updated value.
type IncDecExpr struct {
	Name      string
	Binding   *VarStmt
	Decrement bool
	Pos       Position
}

func (n *IncDecExpr) GetPos() Position { return n.Pos }
func (n *IncDecExpr) exprNode()        {}

// GroupExpr: (<expression>)
type GroupExpr struct {
	Expression Expr
	Pos        Position
}

func (n *GroupExpr) GetPos() Position { return n.Pos }
func (n *GroupExpr) exprNode()        {}

// ---------------------------------------------------------------------------
// Debug printer – produces a human-readable tree representation
// ---------------------------------------------------------------------------

// DebugString returns a readable multi-line representation of the AST.
func DebugString(mod *Module) string {
	var b strings.Builder
	writeIndent(&b, 0)
	fmt.Fprintf(&b, "Module %s\n", mod.Name)
	for _, fn := range mod.Functions {
		writeIndent(&b, 1)
		fmt.Fprintf(&b, "Fn %s\n", fn.Name)
		debugBlock(&b, fn.Body, 2)
	}
	return b.String()
}

func writeIndent(b *strings.Builder, level int) {
	for i := 0; i < level; i++ {
		b.WriteString("  ")
	}
}

func debugBlock(b *strings.Builder, block *BlockStmt, level int) {
	writeIndent(b, level)
	if block == nil {
		b.WriteString("Block [0 statements]\n")
		return
	}
	fmt.Fprintf(b, "Block [%d statements]\n", len(block.Stmts))
	for _, s := range block.Stmts {
		debugStmt(b, s, level+1)
	}
}

func debugStmt(b *strings.Builder, s Stmt, level int) {
	switch s := s.(type) {
	case *VarStmt:
		writeIndent(b, level)
		fmt.Fprintf(b, "VarStmt %s = %s\n", s.Name, ExprString(s.Value))
	case *AssignStmt:
		writeIndent(b, level)
		fmt.Fprintf(b, "AssignStmt %s %s %s\n", s.Name, s.Op, ExprString(s.Value))
	case *ReturnStmt:
		writeIndent(b, level)
		if s.Value != nil {
			fmt.Fprintf(b, "ReturnStmt %s\n", ExprString(s.Value))
		} else {
			b.WriteString("ReturnStmt\n")
		}
	case *IfStmt:
		writeIndent(b, level)
		fmt.Fprintf(b, "IfStmt (%s)\n", ExprString(s.Condition))
		debugBlock(b, s.Then, level+1)
		if s.Else != nil {
			writeIndent(b, level+1)
			b.WriteString("Else:\n")
			debugStmt(b, s.Else, level+2)
		}
	case *WhileStmt:
		writeIndent(b, level)
		fmt.Fprintf(b, "WhileStmt (%s)\n", ExprString(s.Condition))
		debugBlock(b, s.Body, level+1)
	case *DoWhileStmt:
		writeIndent(b, level)
		fmt.Fprintf(b, "DoWhileStmt (%s)\n", ExprString(s.Condition))
		debugBlock(b, s.Body, level+1)
	case *LoopStmt:
		writeIndent(b, level)
		b.WriteString("LoopStmt\n")
		debugBlock(b, s.Body, level+1)
	case *MatchStmt:
		writeIndent(b, level)
		fmt.Fprintf(b, "MatchStmt (%s)\n", ExprString(s.Value))
		for _, arm := range s.Arms {
			writeIndent(b, level+1)
			if arm.IsDefault() {
				b.WriteString("Arm _:\n")
			} else {
				fmt.Fprintf(b, "Arm %s:\n", ExprString(arm.Pattern))
			}
			debugStmt(b, arm.Body, level+2)
		}
	case *ExprStmt:
		writeIndent(b, level)
		fmt.Fprintf(b, "ExprStmt %s\n", ExprString(s.Expression))
	case *BlockStmt:
		debugBlock(b, s, level)
	default:
		writeIndent(b, level)
		b.WriteString("<unknown stmt>\n")
	}
}

// ExprString returns a concise one-line representation of an expression.
func ExprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch e := e.(type) {
	case *IntLitExpr:
		return fmt.Sprintf("%d", e.Value)
	case *BoolLitExpr:
		if e.Value {
			return "true"
		}
		return "false"
	case *LoadExpr:
		return e.Name
	case *IncDecExpr:
		if e.Decrement {
			return "(--" + e.Name + ")"
		}
		return "(++" + e.Name + ")"
	case *UnaryExpr:
		return fmt.Sprintf("(%s%s)", e.Op, ExprString(e.Operand))
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", ExprString(e.Left), e.Op, ExprString(e.Right))
	case *GroupExpr:
		return fmt.Sprintf("(%s)", ExprString(e.Expression))
	default:
		return "<unknown expr>"
	}
}
