package samples

import (
	"sort"

	"opal/internal/ast"
)

// Program is a named sample with the value its entry function returns.
type Program struct {
	Name        string
	Description string
	Entry       string
	Want        int64
	Build       func() *ast.Module
}

var catalog = []Program{
	{
		Name:        "arith",
		Description: "return 2 + 3 * 4;",
		Want:        14,
		Build: func() *ast.Module {
			return Mod("arith", Fn("main",
				Ret(Bin("+", Int(2), Bin("*", Int(3), Int(4)))),
			))
		},
	},
	{
		Name:        "var",
		Description: "var x = 5; return x;",
		Want:        5,
		Build: func() *ast.Module {
			x := Var("x", Int(5))
			return Mod("var", Fn("main", x, Ret(Load(x))))
		},
	},
	{
		Name:        "if-false",
		Description: "if (false) { return 1; } return 2;",
		Want:        2,
		Build: func() *ast.Module {
			return Mod("if_false", Fn("main",
				If(Bool(false), Block(Ret(Int(1))), nil),
				Ret(Int(2)),
			))
		},
	},
	{
		Name:        "if-else-chain",
		Description: "var x = 7; if (x < 5) { return 1; } else if (x < 10) { return 2; } else { return 3; }",
		Want:        2,
		Build: func() *ast.Module {
			x := Var("x", Int(7))
			return Mod("if_else_chain", Fn("main",
				x,
				If(Bin("<", Load(x), Int(5)), Block(Ret(Int(1))),
					If(Bin("<", Load(x), Int(10)), Block(Ret(Int(2))),
						Block(Ret(Int(3))))),
			))
		},
	},
	{
		Name:        "match-hit",
		Description: "match 3 { 3: return 10, _: return 0, }",
		Want:        10,
		Build: func() *ast.Module {
			return Mod("match_hit", Fn("main",
				Match(Int(3),
					Arm(Int(3), Ret(Int(10))),
					Default(Ret(Int(0))),
				),
			))
		},
	},
	{
		Name:        "match-miss",
		Description: "match 4 { 3: return 10, _: return 0, }",
		Want:        0,
		Build: func() *ast.Module {
			return Mod("match_miss", Fn("main",
				Match(Int(4),
					Arm(Int(3), Ret(Int(10))),
					Default(Ret(Int(0))),
				),
			))
		},
	},
	{
		Name:        "match-block",
		Description: "var x = 2; match x { 1: return 10, 2: { var y = x * 3; return y + 1; }, _: return 0, }",
		Want:        7,
		Build: func() *ast.Module {
			x := Var("x", Int(2))
			y := Var("y", Bin("*", Load(x), Int(3)))
			return Mod("match_block", Fn("main",
				x,
				Match(Load(x),
					Arm(Int(1), Ret(Int(10))),
					Arm(Int(2), Block(y, Ret(Bin("+", Load(y), Int(1))))),
					Default(Ret(Int(0))),
				),
			))
		},
	},
	{
		Name:        "while-exit",
		Description: "var i = 3; while (i == 3) { i = i + 1; } return i;",
		Want:        3,
		Build: func() *ast.Module {
			i := Var("i", Int(3))
			return Mod("while_exit", Fn("main",
				i,
				While(Bin("==", Load(i), Int(3)),
					Set(i, "=", Bin("+", Load(i), Int(1))),
				),
				Ret(Load(i)),
			))
		},
	},
	{
		Name:        "while-count",
		Description: "var i = 0; while (i == 5) { i = i + 1; } return i;",
		Want:        5,
		Build: func() *ast.Module {
			i := Var("i", Int(0))
			return Mod("while_count", Fn("main",
				i,
				While(Bin("==", Load(i), Int(5)),
					Set(i, "=", Bin("+", Load(i), Int(1))),
				),
				Ret(Load(i)),
			))
		},
	},
	{
		Name:        "do-while",
		Description: "var n = 0; do { n += 2; } while (n >= 6); return n;",
		Want:        6,
		Build: func() *ast.Module {
			n := Var("n", Int(0))
			return Mod("do_while", Fn("main",
				n,
				DoWhile(Bin(">=", Load(n), Int(6)),
					Set(n, "+=", Int(2)),
				),
				Ret(Load(n)),
			))
		},
	},
	{
		Name:        "loop-return",
		Description: "var i = 0; loop { i += 3; if (i > 10) { return i; } }",
		Want:        12,
		Build: func() *ast.Module {
			i := Var("i", Int(0))
			return Mod("loop_return", Fn("main",
				i,
				Loop(
					Set(i, "+=", Int(3)),
					If(Bin(">", Load(i), Int(10)), Block(Ret(Load(i))), nil),
				),
			))
		},
	},
	{
		Name:        "divmod",
		Description: "return 17 / 5 * 10 + 17 % 5;",
		Want:        32,
		Build: func() *ast.Module {
			return Mod("divmod", Fn("main",
				Ret(Bin("+",
					Bin("*", Bin("/", Int(17), Int(5)), Int(10)),
					Bin("%", Int(17), Int(5)),
				)),
			))
		},
	},
	{
		Name:        "subtract",
		Description: "return 10 - 3 - 2;",
		Want:        5,
		Build: func() *ast.Module {
			return Mod("subtract", Fn("main",
				Ret(Bin("-", Bin("-", Int(10), Int(3)), Int(2))),
			))
		},
	},
	{
		Name:        "negate",
		Description: "return -(4 - 9);",
		Want:        5,
		Build: func() *ast.Module {
			return Mod("negate", Fn("main",
				Ret(Unary("-", Group(Bin("-", Int(4), Int(9))))),
			))
		},
	},
	{
		Name:        "logic",
		Description: "return (1 < 2) && !(3 == 4) || (5 != 5);",
		Want:        1,
		Build: func() *ast.Module {
			return Mod("logic", Fn("main",
				Ret(Bin("||",
					Bin("&&",
						Group(Bin("<", Int(1), Int(2))),
						Unary("!", Group(Bin("==", Int(3), Int(4)))),
					),
					Group(Bin("!=", Int(5), Int(5))),
				)),
			))
		},
	},
	{
		Name:        "compound",
		Description: "var a = 100; a -= 1; a /= 3; a *= 2; a %= 7; return a;",
		Want:        3,
		Build: func() *ast.Module {
			a := Var("a", Int(100))
			return Mod("compound", Fn("main",
				a,
				Set(a, "-=", Int(1)),
				Set(a, "/=", Int(3)),
				Set(a, "*=", Int(2)),
				Set(a, "%=", Int(7)),
				Ret(Load(a)),
			))
		},
	},
	{
		Name:        "incdec",
		Description: "var x = 10; ++x; --x; --x; return ++x + 1;",
		Want:        11,
		Build: func() *ast.Module {
			x := Var("x", Int(10))
			return Mod("incdec", Fn("main",
				x,
				Eval(Inc(x)),
				Eval(Dec(x)),
				Eval(Dec(x)),
				Ret(Bin("+", Inc(x), Int(1))),
			))
		},
	},
	{
		Name:        "two-functions",
		Description: "fn helper() { return 1; } fn main() { var r = 40 + 2; return r; }",
		Want:        42,
		Build: func() *ast.Module {
			r := Var("r", Bin("+", Int(40), Int(2)))
			return Mod("two_functions",
				Fn("helper", Ret(Int(1))),
				Fn("main", r, Ret(Load(r))),
			)
		},
	},
	{
		Name:        "negative-division",
		Description: "return -7 / 2 + -7 % 2;",
		Want:        -4,
		Build: func() *ast.Module {
			return Mod("negative_division", Fn("main",
				Ret(Bin("+",
					Bin("/", Unary("-", Int(7)), Int(2)),
					Bin("%", Unary("-", Int(7)), Int(2)),
				)),
			))
		},
	},
}

func init() {
	for i := range catalog {
		if catalog[i].Entry == "" {
			catalog[i].Entry = "main"
		}
	}
}

// All returns the catalog in declaration order.
func All() []Program {
	out := make([]Program, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a sample by name.
func Lookup(name string) (Program, bool) {
	for _, p := range catalog {
		if p.Name == name {
			return p, true
		}
	}
	return Program{}, false
}

// Names returns every sample name, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, p := range catalog {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}
