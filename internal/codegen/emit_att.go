package codegen

import (
	"fmt"

	"opal/internal/ir"
)

// ---------------------------------------------------------------------------
// AT&T syntax helper shared by the x86 and x86-64 backends
//
// Register table: a, b, c, d in that order. a is the target's return
// register; the frame and stack pointers also come from the target.
// Division uses the fixed pair a (dividend, quotient) and d (remainder) with
// the divisor in b, so those three are saved around idiv when they hold
// other values.
//
// Frame layout (from the frame pointer downward):
//   [bp - word]            saved b (callee-saved)
//   [bp - word*(k+2)]      frame slot k
// ---------------------------------------------------------------------------

const (
	regA = 0
	regB = 1
	regD = 3
)

type attBackend struct {
	target *Target

	word   int    // bytes per slot
	suffix string // "l" or "q"
	regs   [4]string
	low8   [4]string
	bp, sp string
	cvt    string // sign-extend a into d before idiv
}

func (a *attBackend) RegisterCount() int       { return len(a.regs) }
func (a *attBackend) RegisterName(i int) string { return a.regs[i] }
func (a *attBackend) Immediate(v int64) string  { return fmt.Sprintf("$%d", v) }

func (a *attBackend) FrameSlot(k int) string {
	return fmt.Sprintf("%d(%s)", -(a.word + a.word*(k+1)), a.bp)
}

func (a *attBackend) Spill(offset int) string {
	return fmt.Sprintf("%d(%s)", -(offset + a.word), a.sp)
}

func (a *attBackend) op(mnemonic string) string { return mnemonic + a.suffix }

func (a *attBackend) render(v Value) string {
	switch v.Kind {
	case ValueRegister:
		return a.RegisterName(int(v.N))
	case ValueImmediate:
		return a.Immediate(v.N)
	case ValueFrame:
		return a.FrameSlot(int(v.N))
	case ValueSpill:
		return a.Spill(int(v.N))
	}
	return "?"
}

func (a *attBackend) EmitPreamble(w *Writer, symbols []string) {
	w.Instr(".text")
	for _, s := range symbols {
		w.Instr(".globl %s", s)
	}
	w.Blank()
}

func (a *attBackend) EmitPrologue(w *Writer, symbol string, slots int) {
	w.Label(symbol)
	w.Instr("%s %s", a.op("push"), a.bp)
	w.Instr("%s %s, %s", a.op("mov"), a.sp, a.bp)
	w.Instr("%s %s", a.op("push"), a.regs[regB])
	if size := alignFrame(slots, a.word); size > 0 {
		w.Instr("%s $%d, %s", a.op("sub"), size, a.sp)
	}
}

func (a *attBackend) EmitMove(w *Writer, src, dst Value) {
	a.move(w, src, dst)
}

func (a *attBackend) move(w *Writer, src, dst Value) {
	if src == dst {
		return
	}
	w.Instr("%s %s, %s", a.op("mov"), a.render(src), a.render(dst))
}

var attArith = map[ir.Opcode]string{
	ir.ADD:      "add",
	ir.SUBTRACT: "sub",
	ir.MULTIPLY: "imul",
	ir.AND:      "and",
	ir.OR:       "or",
}

func (a *attBackend) EmitBinary(w *Writer, op ir.Opcode, lhs, rhs, dst Value) {
	mnemonic := a.op(attArith[op])
	if op == ir.SUBTRACT {
		a.move(w, lhs, dst)
		w.Instr("%s %s, %s", mnemonic, a.render(rhs), a.render(dst))
		return
	}
	// Commutative: load the right operand, fold in the left.
	a.move(w, rhs, dst)
	w.Instr("%s %s, %s", mnemonic, a.render(lhs), a.render(dst))
}

var attSetcc = map[ir.Opcode]string{
	ir.EQUAL:         "sete",
	ir.NOT_EQUAL:     "setne",
	ir.LESS:          "setl",
	ir.LESS_EQUAL:    "setle",
	ir.GREATER:       "setg",
	ir.GREATER_EQUAL: "setge",
}

func (a *attBackend) EmitCompare(w *Writer, op ir.Opcode, lhs, rhs, dst Value) {
	d := a.render(dst)
	b := a.low8[dst.N]
	a.move(w, lhs, dst)
	w.Instr("%s %s, %s", a.op("cmp"), a.render(rhs), d)
	w.Instr("%s %s", attSetcc[op], b)
	w.Instr("movzb%s %s, %s", a.suffix, b, d)
}

func (a *attBackend) EmitUnary(w *Writer, op ir.Opcode, src, dst Value) {
	a.move(w, src, dst)
	switch op {
	case ir.NEGATE:
		w.Instr("%s %s", a.op("neg"), a.render(dst))
	case ir.NOT:
		w.Instr("%s $1, %s", a.op("xor"), a.render(dst))
	}
}

// EmitDivide: save the clobbered registers that hold other values, pass the
// operands through the stack so any placement works, divide, copy the
// result out and restore.
func (a *attBackend) EmitDivide(w *Writer, op ir.Opcode, lhs, rhs, dst Value, busy []int) {
	var saved []int
	for _, r := range busy {
		if r == regA || r == regB || r == regD {
			saved = append(saved, r)
		}
	}
	for _, r := range saved {
		w.Instr("%s %s", a.op("push"), a.regs[r])
	}

	w.Instr("%s %s", a.op("push"), a.render(rhs))
	w.Instr("%s %s", a.op("push"), a.render(lhs))
	w.Instr("%s %s", a.op("pop"), a.regs[regA])
	w.Instr("%s %s", a.op("pop"), a.regs[regB])
	w.Instr(a.cvt)
	w.Instr("%s %s", a.op("idiv"), a.regs[regB])

	result := regA
	if op == ir.MODULO {
		result = regD
	}
	a.move(w, Reg(result), dst)

	for i := len(saved) - 1; i >= 0; i-- {
		w.Instr("%s %s", a.op("pop"), a.regs[saved[i]])
	}
}

func (a *attBackend) EmitAllocate(w *Writer, slot Value, size int64) {
	w.Instr("# %d bytes at %s", size, a.render(slot))
}

func (a *attBackend) EmitStore(w *Writer, value, slot Value) {
	w.Instr("%s %s, %s", a.op("mov"), a.render(value), a.render(slot))
}

func (a *attBackend) EmitLoad(w *Writer, slot, dst Value) {
	w.Instr("%s %s, %s", a.op("mov"), a.render(slot), a.render(dst))
}

func (a *attBackend) EmitJump(w *Writer, label string) {
	w.Instr("jmp %s", label)
}

func (a *attBackend) EmitJumpIfTrue(w *Writer, cond Value, label string) {
	c := a.render(cond)
	w.Instr("%s %s, %s", a.op("test"), c, c)
	w.Instr("jnz %s", label)
}

// result moves the return value into a. A bare return yields 0.
func (a *attBackend) result(w *Writer, value Value, hasValue bool) {
	if !hasValue {
		value = Imm(0)
	}
	a.move(w, value, Reg(regA))
}

func (a *attBackend) epilogue(w *Writer) {
	w.Instr("%s %d(%s), %s", a.op("mov"), -a.word, a.bp, a.regs[regB])
	w.Instr("leave")
	w.Instr("ret")
}

func (a *attBackend) EmitReturn(w *Writer, value Value, hasValue bool) {
	a.result(w, value, hasValue)
	a.epilogue(w)
}
