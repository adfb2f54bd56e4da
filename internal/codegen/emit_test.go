package codegen

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"opal/internal/ir"
)

func mustTarget(osName, archName string) *Target {
	t, err := ResolveTarget(osName, archName)
	Expect(err).NotTo(HaveOccurred())
	return t
}

// lines joins instructions the way Writer.Instr indents them.
func lines(ins ...string) string {
	var b strings.Builder
	for _, in := range ins {
		b.WriteString("    " + in + "\n")
	}
	return b.String()
}

var _ = Describe("x86 backend", func() {
	var (
		b *x86Backend
		w *Writer
	)

	BeforeEach(func() {
		b = newX86Backend(mustTarget("linux", "386"), false)
		w = &Writer{}
	})

	It("should spell frame slots below the saved %ebx", func() {
		Expect(b.FrameSlot(0)).To(Equal("-8(%ebp)"))
		Expect(b.FrameSlot(2)).To(Equal("-16(%ebp)"))
		Expect(b.Immediate(-3)).To(Equal("$-3"))
	})

	It("should emit the prologue with an aligned frame", func() {
		b.EmitPrologue(w, "main", 1)
		Expect(w.String()).To(Equal("main:\n" + lines(
			"pushl %ebp",
			"movl %esp, %ebp",
			"pushl %ebx",
			"subl $16, %esp",
		)))
	})

	It("should skip the frame adjustment without slots", func() {
		b.EmitPrologue(w, "f", 0)
		Expect(w.String()).NotTo(ContainSubstring("subl"))
	})

	It("should keep operand order for subtraction", func() {
		b.EmitBinary(w, ir.SUBTRACT, Reg(0), Reg(1), Reg(2))
		Expect(w.String()).To(Equal(lines(
			"movl %eax, %ecx",
			"subl %ebx, %ecx",
		)))
	})

	It("should fold the left operand into commutative operations", func() {
		b.EmitBinary(w, ir.MULTIPLY, Reg(0), Reg(1), Reg(2))
		b.EmitBinary(w, ir.OR, Reg(2), Reg(0), Reg(1))
		Expect(w.String()).To(Equal(lines(
			"movl %ebx, %ecx",
			"imull %eax, %ecx",
			"movl %eax, %ebx",
			"orl %ecx, %ebx",
		)))
	})

	It("should materialize comparisons with setcc", func() {
		b.EmitCompare(w, ir.LESS, Reg(0), Reg(1), Reg(2))
		Expect(w.String()).To(Equal(lines(
			"movl %eax, %ecx",
			"cmpl %ebx, %ecx",
			"setl %cl",
			"movzbl %cl, %ecx",
		)))
	})

	It("should negate and flip booleans", func() {
		b.EmitUnary(w, ir.NEGATE, Reg(0), Reg(1))
		b.EmitUnary(w, ir.NOT, Reg(1), Reg(0))
		Expect(w.String()).To(Equal(lines(
			"movl %eax, %ebx",
			"negl %ebx",
			"movl %ebx, %eax",
			"xorl $1, %eax",
		)))
	})

	It("should save live registers around idiv", func() {
		b.EmitDivide(w, ir.MODULO, Reg(1), Reg(2), Reg(3), []int{0, 1, 2})
		Expect(w.String()).To(Equal(lines(
			"pushl %eax",
			"pushl %ebx",
			"pushl %ecx",
			"pushl %ebx",
			"popl %eax",
			"popl %ebx",
			"cltd",
			"idivl %ebx",
			"popl %ebx",
			"popl %eax",
		)))
	})

	It("should copy the quotient out of %eax", func() {
		b.EmitDivide(w, ir.DIVIDE, Reg(0), Reg(1), Reg(2), nil)
		Expect(w.String()).To(Equal(lines(
			"pushl %ebx",
			"pushl %eax",
			"popl %eax",
			"popl %ebx",
			"cltd",
			"idivl %ebx",
			"movl %eax, %ecx",
		)))
	})

	It("should store, load and branch", func() {
		b.EmitAllocate(w, Frame(0), 4)
		b.EmitStore(w, Reg(0), Frame(0))
		b.EmitLoad(w, Frame(0), Reg(1))
		b.EmitJumpIfTrue(w, Reg(1), ".L2")
		b.EmitJump(w, ".L3")
		Expect(w.String()).To(Equal(lines(
			"# 4 bytes at -8(%ebp)",
			"movl %eax, -8(%ebp)",
			"movl -8(%ebp), %ebx",
			"testl %ebx, %ebx",
			"jnz .L2",
			"jmp .L3",
		)))
	})

	It("should return zero from a bare return", func() {
		b.EmitReturn(w, Value{}, false)
		Expect(w.String()).To(Equal(lines(
			"movl $0, %eax",
			"movl -4(%ebp), %ebx",
			"leave",
			"ret",
		)))
	})

	It("should not move a value already in %eax", func() {
		b.EmitReturn(w, Reg(0), true)
		Expect(w.String()).To(HavePrefix(lines("movl -4(%ebp), %ebx")))
	})

	Context("with debug print", func() {
		It("should declare the format string", func() {
			b = newX86Backend(mustTarget("linux", "386"), true)
			b.EmitPreamble(w, []string{"main"})
			Expect(w.String()).To(Equal(lines(".data") + "D0:\n" + lines(
				`.asciz "%d\n"`,
				".text",
				".globl main",
			) + "\n"))
		})

		It("should print the return value through the target's printf", func() {
			b = newX86Backend(mustTarget("windows", "386"), true)
			b.EmitReturn(w, Reg(1), true)
			Expect(w.String()).To(Equal(lines(
				"movl %ebx, %eax",
				"pushl %eax",
				"pushl %eax",
				"pushl $D0",
				"call _printf",
				"addl $8, %esp",
				"popl %eax",
				"movl -4(%ebp), %ebx",
				"leave",
				"ret",
			)))
		})
	})
})

var _ = Describe("x86-64 backend", func() {
	var (
		b Backend
		w *Writer
	)

	BeforeEach(func() {
		var err error
		b, err = NewBackend(mustTarget("linux", "amd64"), nil)
		Expect(err).NotTo(HaveOccurred())
		w = &Writer{}
	})

	It("should use 8-byte slots", func() {
		Expect(b.FrameSlot(0)).To(Equal("-16(%rbp)"))
		Expect(b.FrameSlot(2)).To(Equal("-32(%rbp)"))

		b.EmitPrologue(w, "main", 3)
		Expect(w.String()).To(HaveSuffix(lines("pushq %rbx", "subq $32, %rsp")))
	})

	It("should use movabsq only for wide constants", func() {
		b.EmitMove(w, Imm(7), Reg(2))
		b.EmitMove(w, Imm(1<<40), Reg(0))
		b.EmitMove(w, Imm(-1<<31), Reg(1))
		Expect(w.String()).To(Equal(lines(
			"movq $7, %rcx",
			"movabsq $1099511627776, %rax",
			"movq $-2147483648, %rbx",
		)))
	})

	It("should sign-extend with cqto", func() {
		b.EmitDivide(w, ir.DIVIDE, Reg(0), Reg(1), Reg(0), []int{1})
		Expect(w.String()).To(Equal(lines(
			"pushq %rbx",
			"pushq %rbx",
			"pushq %rax",
			"popq %rax",
			"popq %rbx",
			"cqto",
			"idivq %rbx",
			"popq %rbx",
		)))
	})

	It("should ignore debug print", func() {
		b, err := NewBackend(mustTarget("linux", "amd64"), &Options{DebugPrint: true})
		Expect(err).NotTo(HaveOccurred())
		b.EmitPreamble(w, []string{"main"})
		b.EmitReturn(w, Reg(0), true)
		Expect(w.String()).NotTo(ContainSubstring("printf"))
		Expect(w.String()).NotTo(ContainSubstring(".data"))
	})
})

var _ = Describe("ARM64 backend", func() {
	var (
		b Backend
		w *Writer
	)

	BeforeEach(func() {
		var err error
		b, err = NewBackend(mustTarget("linux", "arm64"), nil)
		Expect(err).NotTo(HaveOccurred())
		w = &Writer{}
	})

	It("should set up the frame record", func() {
		b.EmitPrologue(w, "main", 1)
		Expect(w.String()).To(Equal("main:\n" + lines(
			"stp x29, x30, [sp, #-16]!",
			"mov x29, sp",
			"sub sp, sp, #16",
		)))
		Expect(b.FrameSlot(1)).To(Equal("[x29, #-16]"))
	})

	It("should build wide constants with movz and movk", func() {
		b.EmitMove(w, Imm(0x12345678), Reg(0))
		Expect(w.String()).To(Equal(lines(
			"movz x9, #22136, lsl #0",
			"movk x9, #4660, lsl #16",
		)))
	})

	It("should load immediate operands into scratch registers", func() {
		b.EmitCompare(w, ir.GREATER_EQUAL, Reg(0), Imm(3), Reg(1))
		Expect(w.String()).To(Equal(lines(
			"mov x17, #3",
			"cmp x9, x17",
			"cset x10, ge",
		)))
	})

	It("should compute the remainder with msub", func() {
		b.EmitDivide(w, ir.MODULO, Reg(0), Reg(1), Reg(2), []int{0, 1})
		Expect(w.String()).To(Equal(lines(
			"sdiv x11, x9, x10",
			"msub x11, x11, x10, x9",
		)))
	})

	It("should return zero from a bare return", func() {
		b.EmitReturn(w, Value{}, false)
		Expect(w.String()).To(Equal(lines(
			"mov x0, #0",
			"mov sp, x29",
			"ldp x29, x30, [sp], #16",
			"ret",
		)))
	})
})

var _ = Describe("NewBackend", func() {
	It("should reject unknown architectures", func() {
		_, err := NewBackend(&Target{Arch: Arch(42)}, nil)
		Expect(err).To(MatchError("unsupported architecture for emission: unknown"))
	})
})

var _ = Describe("Render", func() {
	It("should spell every operand kind", func() {
		b := newX86Backend(mustTarget("linux", "386"), false)
		Expect(Render(b, Reg(3))).To(Equal("%edx"))
		Expect(Render(b, Imm(12))).To(Equal("$12"))
		Expect(Render(b, Frame(1))).To(Equal("-12(%ebp)"))
		Expect(Render(b, SpillAt(8))).To(Equal("-12(%esp)"))
	})
})
