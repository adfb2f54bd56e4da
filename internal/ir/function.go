package ir

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Labels, functions and modules
// ---------------------------------------------------------------------------

// Label is a basic block: an id unique within its function plus the
// instructions appended to it.
type Label struct {
	ID           int
	Instructions []Instruction
}

// Append adds an instruction at the end of the block.
func (l *Label) Append(in Instruction) {
	l.Instructions = append(l.Instructions, in)
}

// Last returns the final instruction, or nil for an empty block.
func (l *Label) Last() Instruction {
	if len(l.Instructions) == 0 {
		return nil
	}
	return l.Instructions[len(l.Instructions)-1]
}

// Ref returns a jump operand targeting the label.
func (l *Label) Ref() LabelRef { return LabelRef(l.ID) }

// Function owns its labels, and through them every instruction and register.
type Function struct {
	Name   string
	Labels []*Label

	nextRegister int
	nextLabel    int
}

// NewFunction returns an empty function. Blocks are added with NewLabel.
func NewFunction(name string) *Function {
	return &Function{Name: name}
}

// NewRegister returns a fresh virtual register.
func (f *Function) NewRegister() *Register {
	r := &Register{ID: f.nextRegister}
	f.nextRegister++
	return r
}

// NewLabel creates a block, appends it to the function and returns it.
func (f *Function) NewLabel() *Label {
	l := &Label{ID: f.nextLabel}
	f.nextLabel++
	f.Labels = append(f.Labels, l)
	return l
}

// Label returns the block with the given id, or nil.
func (f *Function) Label(id int) *Label {
	for _, l := range f.Labels {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// RegisterCount is the number of virtual registers created so far.
func (f *Function) RegisterCount() int { return f.nextRegister }

// Registers returns every distinct virtual register referenced by the
// function, in first-reference order.
func (f *Function) Registers() []*Register {
	seen := make(map[*Register]bool)
	var regs []*Register
	visit := func(o Operand) {
		if r, ok := o.(*Register); ok && r != nil && !seen[r] {
			seen[r] = true
			regs = append(regs, r)
		}
	}
	for _, l := range f.Labels {
		for _, in := range l.Instructions {
			for _, o := range in.Sources() {
				visit(o)
			}
			if d := Destination(in); d != nil {
				visit(d)
			}
		}
	}
	return regs
}

// ResetLocations clears every physical assignment so the function can be
// handed to another code generator.
func (f *Function) ResetLocations() {
	for _, r := range f.Registers() {
		r.Unassign()
	}
}

// Destination returns the register an instruction writes, or nil.
func Destination(in Instruction) *Register {
	switch in := in.(type) {
	case *Move:
		return in.Dst
	case *Binary:
		return in.Dst
	case *Unary:
		return in.Dst
	case *Allocate:
		return in.Ptr
	case *Load:
		return in.Dst
	}
	return nil
}

func (f *Function) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fn %s (registers=%d, labels=%d):\n", f.Name, f.nextRegister, len(f.Labels))
	for _, l := range f.Labels {
		fmt.Fprintf(&b, "L%d:\n", l.ID)
		for _, in := range l.Instructions {
			fmt.Fprintf(&b, "  %s\n", in)
		}
	}
	return b.String()
}

// Module is the whole lowered compilation unit: one Function per declared
// procedure, in declaration order.
type Module struct {
	Functions []*Function
}

// Function returns the function with the given name, or nil.
func (m *Module) Function(name string) *Function {
	for _, f := range m.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// String returns the human-readable dump of every function.
func (m *Module) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== IR Module (%d functions) ===\n", len(m.Functions))
	for i, f := range m.Functions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.String())
	}
	return b.String()
}
