package codegen

import (
	"fmt"
	"strings"

	"opal/internal/ir"
)

//go:generate mockgen -destination=mock_backend_test.go -package=codegen -self_package=opal/internal/codegen -write_package_comment=false opal/internal/codegen Backend

// ---------------------------------------------------------------------------
// Physical operands
// ---------------------------------------------------------------------------

// ValueKind says what a physical operand refers to.
type ValueKind int

const (
	ValueRegister  ValueKind = iota // index into the backend register table
	ValueImmediate                  // integer constant
	ValueFrame                      // frame slot index
	ValueSpill                      // spill byte offset
)

// Value is an operand after register allocation.
type Value struct {
	Kind ValueKind
	N    int64
}

func Reg(i int) Value       { return Value{Kind: ValueRegister, N: int64(i)} }
func Imm(v int64) Value     { return Value{Kind: ValueImmediate, N: v} }
func Frame(k int) Value     { return Value{Kind: ValueFrame, N: int64(k)} }
func SpillAt(off int) Value { return Value{Kind: ValueSpill, N: int64(off)} }

// IsRegister reports whether v is physical register i.
func (v Value) IsRegister(i int) bool {
	return v.Kind == ValueRegister && v.N == int64(i)
}

// ---------------------------------------------------------------------------
// Backend - one implementation per target architecture
// ---------------------------------------------------------------------------

// Backend spells instructions for one architecture. The shared generator
// does register allocation and dispatch; a backend only turns already
// allocated operands into text.
type Backend interface {
	// Register table, in allocation order.
	RegisterCount() int
	RegisterName(i int) string

	// Operand spelling.
	Immediate(v int64) string
	FrameSlot(k int) string
	Spill(offset int) string

	EmitPreamble(w *Writer, symbols []string)
	EmitPrologue(w *Writer, symbol string, slots int)
	EmitMove(w *Writer, src, dst Value)
	EmitBinary(w *Writer, op ir.Opcode, lhs, rhs, dst Value)
	EmitCompare(w *Writer, op ir.Opcode, lhs, rhs, dst Value)
	EmitUnary(w *Writer, op ir.Opcode, src, dst Value)
	// EmitDivide handles DIVIDE and MODULO. busy lists the registers, other
	// than dst, that hold live values.
	EmitDivide(w *Writer, op ir.Opcode, lhs, rhs, dst Value, busy []int)
	EmitAllocate(w *Writer, slot Value, size int64)
	EmitStore(w *Writer, value, slot Value)
	EmitLoad(w *Writer, slot, dst Value)
	EmitJump(w *Writer, label string)
	EmitJumpIfTrue(w *Writer, cond Value, label string)
	// EmitReturn ends the function. hasValue is false for a bare return.
	EmitReturn(w *Writer, value Value, hasValue bool)
}

// NewBackend returns the backend for target.
func NewBackend(target *Target, opts *Options) (Backend, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	switch target.Arch {
	case Arch_x86:
		return newX86Backend(target, opts.DebugPrint), nil
	case Arch_x86_64:
		return newX86_64Backend(target), nil
	case Arch_ARM64:
		return newARM64Backend(target), nil
	}
	return nil, fmt.Errorf("unsupported architecture for emission: %s", target.Arch)
}

// Render spells any physical operand through the backend.
func Render(b Backend, v Value) string {
	switch v.Kind {
	case ValueRegister:
		return b.RegisterName(int(v.N))
	case ValueImmediate:
		return b.Immediate(v.N)
	case ValueFrame:
		return b.FrameSlot(int(v.N))
	case ValueSpill:
		return b.Spill(int(v.N))
	}
	return "?"
}

// ---------------------------------------------------------------------------
// Writer - accumulates assembly text
// ---------------------------------------------------------------------------

// Writer collects output lines. Instructions and directives are indented,
// labels are not.
type Writer struct {
	b strings.Builder
}

// Instr writes one indented line.
func (w *Writer) Instr(format string, args ...any) {
	w.b.WriteString("    ")
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

// Label writes "name:".
func (w *Writer) Label(name string) {
	w.b.WriteString(name)
	w.b.WriteString(":\n")
}

func (w *Writer) Blank() { w.b.WriteByte('\n') }

func (w *Writer) String() string { return w.b.String() }

// alignFrame rounds a slot area up to 16 bytes.
func alignFrame(slots, word int) int {
	size := slots * word
	if size%16 != 0 {
		size += 16 - size%16
	}
	return size
}
