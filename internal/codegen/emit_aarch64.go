package codegen

import (
	"fmt"

	"opal/internal/ir"
)

// ---------------------------------------------------------------------------
// ARM64 (AArch64) backend
//
// GAS syntax for Linux and macOS. Values live in the caller-saved temporaries
// x9-x12; x16/x17 (intra-procedure-call scratch) materialize immediates for
// instructions that only take registers. Frame slot k is [x29, #-8*(k+1)].
// ---------------------------------------------------------------------------

type arm64Backend struct {
	target *Target
}

func newARM64Backend(target *Target) *arm64Backend {
	return &arm64Backend{target: target}
}

var arm64Regs = [...]string{"x9", "x10", "x11", "x12"}

const (
	arm64Scratch0 = "x16"
	arm64Scratch1 = "x17"
)

func (e *arm64Backend) RegisterCount() int       { return len(arm64Regs) }
func (e *arm64Backend) RegisterName(i int) string { return arm64Regs[i] }
func (e *arm64Backend) Immediate(v int64) string  { return fmt.Sprintf("#%d", v) }
func (e *arm64Backend) FrameSlot(k int) string {
	return fmt.Sprintf("[%s, #%d]", e.target.BasePointer, -e.target.PtrSize*(k+1))
}
func (e *arm64Backend) Spill(offset int) string {
	return fmt.Sprintf("[%s, #%d]", e.target.StackPointer, offset)
}

// reg returns a register holding v, loading immediates into scratch.
func (e *arm64Backend) reg(w *Writer, v Value, scratch string) string {
	if v.Kind == ValueImmediate {
		e.loadImm(w, scratch, v.N)
		return scratch
	}
	return e.RegisterName(int(v.N))
}

func (e *arm64Backend) loadImm(w *Writer, reg string, val int64) {
	if val >= -65536 && val <= 65535 {
		w.Instr("mov %s, #%d", reg, val)
		return
	}
	uval := uint64(val)
	w.Instr("movz %s, #%d, lsl #0", reg, uval&0xFFFF)
	for shift := 16; shift < 64; shift += 16 {
		if part := (uval >> shift) & 0xFFFF; part != 0 {
			w.Instr("movk %s, #%d, lsl #%d", reg, part, shift)
		}
	}
}

func (e *arm64Backend) EmitPreamble(w *Writer, symbols []string) {
	w.Instr(".text")
	for _, s := range symbols {
		w.Instr(".globl %s", s)
	}
	w.Instr(".p2align 2")
	w.Blank()
}

func (e *arm64Backend) EmitPrologue(w *Writer, symbol string, slots int) {
	fp, sp := e.target.BasePointer, e.target.StackPointer
	w.Label(symbol)
	w.Instr("stp %s, x30, [%s, #-16]!", fp, sp)
	w.Instr("mov %s, %s", fp, sp)
	if size := alignFrame(slots, e.target.PtrSize); size > 0 {
		w.Instr("sub %s, %s, #%d", sp, sp, size)
	}
}

func (e *arm64Backend) EmitMove(w *Writer, src, dst Value) {
	d := e.RegisterName(int(dst.N))
	if src.Kind == ValueImmediate {
		e.loadImm(w, d, src.N)
		return
	}
	if src != dst {
		w.Instr("mov %s, %s", d, e.RegisterName(int(src.N)))
	}
}

var arm64Arith = map[ir.Opcode]string{
	ir.ADD:      "add",
	ir.SUBTRACT: "sub",
	ir.MULTIPLY: "mul",
	ir.AND:      "and",
	ir.OR:       "orr",
}

func (e *arm64Backend) EmitBinary(w *Writer, op ir.Opcode, lhs, rhs, dst Value) {
	l := e.reg(w, lhs, arm64Scratch0)
	r := e.reg(w, rhs, arm64Scratch1)
	w.Instr("%s %s, %s, %s", arm64Arith[op], e.RegisterName(int(dst.N)), l, r)
}

var arm64Cond = map[ir.Opcode]string{
	ir.EQUAL:         "eq",
	ir.NOT_EQUAL:     "ne",
	ir.LESS:          "lt",
	ir.LESS_EQUAL:    "le",
	ir.GREATER:       "gt",
	ir.GREATER_EQUAL: "ge",
}

func (e *arm64Backend) EmitCompare(w *Writer, op ir.Opcode, lhs, rhs, dst Value) {
	l := e.reg(w, lhs, arm64Scratch0)
	r := e.reg(w, rhs, arm64Scratch1)
	w.Instr("cmp %s, %s", l, r)
	w.Instr("cset %s, %s", e.RegisterName(int(dst.N)), arm64Cond[op])
}

func (e *arm64Backend) EmitUnary(w *Writer, op ir.Opcode, src, dst Value) {
	s := e.reg(w, src, arm64Scratch0)
	d := e.RegisterName(int(dst.N))
	switch op {
	case ir.NEGATE:
		w.Instr("neg %s, %s", d, s)
	case ir.NOT:
		w.Instr("eor %s, %s, #1", d, s)
	}
}

// EmitDivide needs no fixed registers: sdiv takes any operands, and the
// remainder is lhs - (lhs/rhs)*rhs computed in place in dst.
func (e *arm64Backend) EmitDivide(w *Writer, op ir.Opcode, lhs, rhs, dst Value, busy []int) {
	l := e.reg(w, lhs, arm64Scratch0)
	r := e.reg(w, rhs, arm64Scratch1)
	d := e.RegisterName(int(dst.N))
	w.Instr("sdiv %s, %s, %s", d, l, r)
	if op == ir.MODULO {
		w.Instr("msub %s, %s, %s, %s", d, d, r, l)
	}
}

func (e *arm64Backend) EmitAllocate(w *Writer, slot Value, size int64) {
	w.Instr("// %d bytes at %s", size, e.FrameSlot(int(slot.N)))
}

func (e *arm64Backend) EmitStore(w *Writer, value, slot Value) {
	v := e.reg(w, value, arm64Scratch0)
	w.Instr("str %s, %s", v, e.FrameSlot(int(slot.N)))
}

func (e *arm64Backend) EmitLoad(w *Writer, slot, dst Value) {
	w.Instr("ldr %s, %s", e.RegisterName(int(dst.N)), e.FrameSlot(int(slot.N)))
}

func (e *arm64Backend) EmitJump(w *Writer, label string) {
	w.Instr("b %s", label)
}

func (e *arm64Backend) EmitJumpIfTrue(w *Writer, cond Value, label string) {
	w.Instr("cbnz %s, %s", e.reg(w, cond, arm64Scratch0), label)
}

func (e *arm64Backend) EmitReturn(w *Writer, value Value, hasValue bool) {
	if !hasValue {
		value = Imm(0)
	}
	fp, sp := e.target.BasePointer, e.target.StackPointer
	if value.Kind == ValueImmediate {
		e.loadImm(w, e.target.ReturnReg, value.N)
	} else {
		w.Instr("mov %s, %s", e.target.ReturnReg, e.RegisterName(int(value.N)))
	}
	w.Instr("mov %s, %s", sp, fp)
	w.Instr("ldp %s, x30, [%s], #16", fp, sp)
	w.Instr("ret")
}
