package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"opal/internal/ast"
	"opal/internal/ir"
	"opal/internal/lower"
	"opal/internal/samples"
)

// runAssembly simulates the entry symbol of asm and returns its result.
func runAssembly(asm string, target *Target, entry string) (int64, *asmMachine) {
	m, err := newAsmMachine(asm, target.PtrSize)
	Expect(err).NotTo(HaveOccurred())
	got, err := m.call(target.Sym(entry))
	Expect(err).NotTo(HaveOccurred(), asm)
	return got, m
}

var arithOps = []string{"+", "-", "*", "/", "%", "&&", "||", "==", "!=", "<", "<=", ">", ">="}

// randomArith builds an integer expression of at most the given depth.
func randomArith(r *rand.Rand, depth int) ast.Expr {
	if depth == 0 || r.Intn(4) == 0 {
		return samples.Int(r.Int63n(200) - 100)
	}
	switch r.Intn(8) {
	case 0:
		return samples.Unary("-", randomArith(r, depth-1))
	case 1:
		return samples.Group(randomArith(r, depth-1))
	}
	op := arithOps[r.Intn(len(arithOps))]
	return samples.Bin(op, randomArith(r, depth-1), randomArith(r, depth-1))
}

// expectDistinctRegisters checks, after emission, that the register
// operands of every instruction (its sources and its destination) were
// given pairwise distinct physical registers.
func expectDistinctRegisters(mod *ir.Module, what string) {
	for _, fn := range mod.Functions {
		for _, l := range fn.Labels {
			for _, in := range l.Instructions {
				seen := map[int]*ir.Register{}
				operands := in.Sources()
				if dst := ir.Destination(in); dst != nil {
					operands = append(operands, dst)
				}
				for _, o := range operands {
					reg, ok := o.(*ir.Register)
					if !ok {
						continue
					}
					loc, bound := reg.Location()
					if !bound || loc.Kind != ir.InRegister {
						continue
					}
					if prev, dup := seen[loc.Index]; dup && prev != reg {
						Fail(fmt.Sprintf("%s: %s: %s and %s share register %d", what, in, prev, reg, loc.Index))
					}
					seen[loc.Index] = reg
				}
			}
		}
	}
}

var _ = Describe("Generate", func() {
	for _, name := range []string{"linux/386", "linux/amd64", "darwin/amd64", "windows/386"} {
		osName, archName, _ := strings.Cut(name, "/")

		Describe("on "+name, func() {
			for _, p := range samples.All() {
				It("should compute "+p.Name, func() {
					target := mustTarget(osName, archName)
					res, err := Generate(p.Build(), &Options{Target: target})
					Expect(err).NotTo(HaveOccurred())

					got, _ := runAssembly(res.Assembly, target, p.Entry)
					Expect(got).To(Equal(p.Want))
				})
			}
		})
	}

	It("should emit arm64 for every sample", func() {
		target := mustTarget("linux", "arm64")
		for _, p := range samples.All() {
			res, err := Generate(p.Build(), &Options{Target: target})
			Expect(err).NotTo(HaveOccurred(), p.Name)
			Expect(res.Assembly).To(ContainSubstring(".globl " + p.Entry))
			Expect(res.Assembly).To(ContainSubstring("    ret\n"))
		}
	})

	It("should print each return value with debug print on x86", func() {
		target := mustTarget("linux", "386")
		p, ok := samples.Lookup("two-functions")
		Expect(ok).To(BeTrue())

		res, err := Generate(p.Build(), &Options{Target: target, DebugPrint: true})
		Expect(err).NotTo(HaveOccurred())

		got, m := runAssembly(res.Assembly, target, p.Entry)
		Expect(got).To(Equal(p.Want))
		Expect(m.printed).NotTo(BeEmpty())
		Expect(m.printed[len(m.printed)-1]).To(Equal(p.Want))
	})

	It("should never give a destination the register of one of its sources", func() {
		for _, p := range samples.All() {
			mod, err := lower.Lower(p.Build())
			Expect(err).NotTo(HaveOccurred())
			_, err = Emit(mod, mustTarget("linux", "amd64"), nil)
			Expect(err).NotTo(HaveOccurred())
			expectDistinctRegisters(mod, p.Name)
		}
	})

	It("should keep the sources of arithmetic returns in distinct registers", func() {
		r := rand.New(rand.NewSource(11))
		checked := 0
		for i := 0; i < 400; i++ {
			e := randomArith(r, 3)
			mod, err := lower.Lower(samples.Mod("random", samples.Fn("main", samples.Ret(e))))
			Expect(err).NotTo(HaveOccurred())

			_, err = Emit(mod, mustTarget("linux", "amd64"), nil)
			if errors.Is(err, ErrOutOfRegisters) {
				continue
			}
			Expect(err).NotTo(HaveOccurred(), ast.ExprString(e))
			expectDistinctRegisters(mod, ast.ExprString(e))
			checked++
		}
		Expect(checked).To(BeNumerically(">", 100))
	})

	It("should reject constants wider than a 32-bit register", func() {
		wide := func() *ast.Module {
			return samples.Mod("wide", samples.Fn("main", samples.Ret(samples.Int(1<<40))))
		}

		_, err := Generate(wide(), &Options{Target: mustTarget("linux", "386")})
		Expect(err).To(MatchError(ContainSubstring("does not fit in a 32-bit register")))

		target := mustTarget("linux", "amd64")
		res, err := Generate(wide(), &Options{Target: target})
		Expect(err).NotTo(HaveOccurred())
		got, _ := runAssembly(res.Assembly, target, "main")
		Expect(got).To(Equal(int64(1 << 40)))
	})

	It("should number labels across the whole module", func() {
		p, _ := samples.Lookup("two-functions")
		res, err := Generate(p.Build(), &Options{Target: mustTarget("linux", "amd64")})
		Expect(err).NotTo(HaveOccurred())
		Expect(strings.Count(res.Assembly, ".L0:\n")).To(Equal(1))
		Expect(res.Assembly).To(ContainSubstring(".L1:\n"))
	})

	It("should run out of registers on deeply right-nested expressions", func() {
		mod := samples.Mod("deep", samples.Fn("main",
			samples.Ret(samples.Bin("+", samples.Int(1),
				samples.Bin("+", samples.Int(2),
					samples.Bin("+", samples.Int(3),
						samples.Bin("+", samples.Int(4), samples.Int(5)))))),
		))
		_, err := Generate(mod, &Options{Target: mustTarget("linux", "386")})
		Expect(err).To(MatchError(ErrOutOfRegisters))
		Expect(err.Error()).To(HavePrefix("emission failed: main: L0: "))
	})

	It("should report lowering failures", func() {
		mod := samples.Mod("pow", samples.Fn("main",
			samples.Ret(samples.Bin("**", samples.Int(2), samples.Int(3))),
		))
		_, err := Generate(mod, &Options{Target: mustTarget("linux", "amd64")})
		Expect(err).To(MatchError(ContainSubstring("lowering failed: ")))
		Expect(err).To(MatchError(ContainSubstring("unsupported binary operator **")))
	})

	It("should log progress when verbose", func() {
		var log bytes.Buffer
		p, _ := samples.Lookup("arith")
		res, err := Generate(p.Build(), &Options{
			Target:     mustTarget("linux", "arm64"),
			DebugPrint: true,
			Verbose:    true,
			Log:        &log,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.IRDump).To(HavePrefix("=== IR Module (1 functions) ===\n"))
		Expect(log.String()).To(ContainSubstring("[codegen] Lowering arith to IR...\n"))
		Expect(log.String()).To(ContainSubstring(res.IRDump))
		Expect(log.String()).To(ContainSubstring("[codegen] Debug print is only supported on x86, ignoring\n"))
		Expect(log.String()).To(ContainSubstring("[codegen] Emitting main (1 labels, "))
	})
})
