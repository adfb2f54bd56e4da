// Package ir defines the three-address intermediate representation produced
// by the lowering pass and consumed by the code generators.
//
// A Module holds Functions; a Function holds Labels (basic blocks) in
// declaration order; a Label holds Instructions. Instructions are only ever
// appended. Virtual registers are numbered per function from 0 and are never
// reused.
package ir

import "fmt"

// ---------------------------------------------------------------------------
// Opcodes
// ---------------------------------------------------------------------------

// Opcode is the closed set of IR operations.
type Opcode int

const (
	MOVE Opcode = iota
	ADD
	SUBTRACT
	MULTIPLY
	DIVIDE
	MODULO
	NEGATE
	NOT
	AND
	OR
	ALLOCATE
	STORE
	LOAD
	JUMP
	JUMP_IF_TRUE
	EQUAL
	NOT_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL
	RETURN
)

var mnemonics = [...]string{
	MOVE: "MOV", ADD: "ADD", SUBTRACT: "SUB", MULTIPLY: "MUL", DIVIDE: "DIV",
	MODULO: "MOD", NEGATE: "NEG", NOT: "NOT", AND: "AND", OR: "ORR",
	ALLOCATE: "ALC", STORE: "STR", LOAD: "LOD",
	JUMP: "JMP", JUMP_IF_TRUE: "JIT",
	EQUAL: "EQU", NOT_EQUAL: "NEQ", LESS: "LES", LESS_EQUAL: "LEQ",
	GREATER: "GRT", GREATER_EQUAL: "GEQ",
	RETURN: "RET",
}

// String returns the three-letter mnemonic used in IR dumps.
func (op Opcode) String() string {
	if op >= 0 && int(op) < len(mnemonics) {
		return mnemonics[op]
	}
	return fmt.Sprintf("op_%d", int(op))
}

// IsArithmetic reports whether op is a two-source arithmetic or logical op.
func (op Opcode) IsArithmetic() bool {
	switch op {
	case ADD, SUBTRACT, MULTIPLY, DIVIDE, MODULO, AND, OR:
		return true
	}
	return false
}

// IsComparison reports whether op produces 0 or 1 from two sources.
func (op Opcode) IsComparison() bool {
	switch op {
	case EQUAL, NOT_EQUAL, LESS, LESS_EQUAL, GREATER, GREATER_EQUAL:
		return true
	}
	return false
}

// IsBinary reports whether op is valid in a Binary instruction.
func (op Opcode) IsBinary() bool { return op.IsArithmetic() || op.IsComparison() }

// IsUnary reports whether op is valid in a Unary instruction.
func (op Opcode) IsUnary() bool { return op == NEGATE || op == NOT }

// ---------------------------------------------------------------------------
// Operands
// ---------------------------------------------------------------------------

// Operand is a value consumed or produced by an instruction: an Immediate,
// a *Register or a LabelRef.
type Operand interface {
	fmt.Stringer
	operand()
}

// Immediate is a compile-time integer constant.
type Immediate int64

func (i Immediate) String() string { return fmt.Sprintf("%d", int64(i)) }
func (Immediate) operand()         {}

// LabelRef names a block of the same function. Only jumps use it.
type LabelRef int

func (l LabelRef) String() string { return fmt.Sprintf("L%d", int(l)) }
func (LabelRef) operand()         {}

// LocationKind says where the allocator placed a virtual register.
type LocationKind int

const (
	InRegister LocationKind = iota // index into the target register table
	InFrame                        // frame slot index (ALLOCATE results)
	InSpill                        // spill slot byte offset
)

// Location is the physical assignment of a virtual register.
type Location struct {
	Kind  LocationKind
	Index int
}

func (l Location) String() string {
	switch l.Kind {
	case InRegister:
		return fmt.Sprintf("r%d", l.Index)
	case InFrame:
		return fmt.Sprintf("slot%d", l.Index)
	case InSpill:
		return fmt.Sprintf("spill%d", l.Index)
	}
	return "?"
}

// Register is a virtual register. Instructions share the same *Register for
// every reference to one value, so the allocator's assignment is seen by all
// of them.
type Register struct {
	ID int

	loc      Location
	assigned bool
}

func (r *Register) String() string { return fmt.Sprintf("%%%d", r.ID) }
func (*Register) operand()         {}

// Location returns the physical assignment, if one has been made.
func (r *Register) Location() (Location, bool) { return r.loc, r.assigned }

// Assign caches a physical assignment on the register.
func (r *Register) Assign(loc Location) {
	r.loc = loc
	r.assigned = true
}

// Unassign clears the physical assignment.
func (r *Register) Unassign() {
	r.loc = Location{}
	r.assigned = false
}

// ---------------------------------------------------------------------------
// Instructions
// ---------------------------------------------------------------------------

// Instruction is one IR operation. Each opcode family has its own struct
// carrying exactly the operands it needs.
type Instruction interface {
	fmt.Stringer
	Opcode() Opcode
	// Sources returns the operands the instruction reads, in textual order.
	Sources() []Operand
}

// Move: Dst = Src
type Move struct {
	Src Operand
	Dst *Register
}

// Binary: Dst = Lhs <Op> Rhs, for arithmetic, logical and comparison opcodes.
type Binary struct {
	Op  Opcode
	Lhs Operand
	Rhs Operand
	Dst *Register
}

// Unary: Dst = <Op> Src, for NEGATE and NOT.
type Unary struct {
	Op  Opcode
	Src Operand
	Dst *Register
}

// Allocate reserves a Size-byte cell and puts its address in Ptr.
type Allocate struct {
	Size Immediate
	Ptr  *Register
}

// Store: *Ptr = Value
type Store struct {
	Value Operand
	Ptr   *Register
}

// Load: Dst = *Ptr
type Load struct {
	Ptr *Register
	Dst *Register
}

// Jump transfers control to Target.
type Jump struct {
	Target LabelRef
}

// JumpIfTrue transfers control to Target when Cond is non-zero and falls
// through otherwise.
type JumpIfTrue struct {
	Cond   Operand
	Target LabelRef
}

// Return leaves the function. Value is nil for a bare return.
type Return struct {
	Value Operand
}

func (*Move) Opcode() Opcode       { return MOVE }
func (i *Binary) Opcode() Opcode   { return i.Op }
func (i *Unary) Opcode() Opcode    { return i.Op }
func (*Allocate) Opcode() Opcode   { return ALLOCATE }
func (*Store) Opcode() Opcode      { return STORE }
func (*Load) Opcode() Opcode       { return LOAD }
func (*Jump) Opcode() Opcode       { return JUMP }
func (*JumpIfTrue) Opcode() Opcode { return JUMP_IF_TRUE }
func (*Return) Opcode() Opcode     { return RETURN }

func (i *Move) Sources() []Operand       { return []Operand{i.Src} }
func (i *Binary) Sources() []Operand     { return []Operand{i.Lhs, i.Rhs} }
func (i *Unary) Sources() []Operand      { return []Operand{i.Src} }
func (i *Allocate) Sources() []Operand   { return nil }
func (i *Store) Sources() []Operand      { return []Operand{i.Value, i.Ptr} }
func (i *Load) Sources() []Operand       { return []Operand{i.Ptr} }
func (i *Jump) Sources() []Operand       { return nil }
func (i *JumpIfTrue) Sources() []Operand { return []Operand{i.Cond} }
func (i *Return) Sources() []Operand {
	if i.Value == nil {
		return nil
	}
	return []Operand{i.Value}
}

func (i *Move) String() string { return format(MOVE, i.Src, i.Dst) }
func (i *Binary) String() string {
	return format(i.Op, i.Lhs, i.Rhs, i.Dst)
}
func (i *Unary) String() string      { return format(i.Op, i.Src, i.Dst) }
func (i *Allocate) String() string   { return format(ALLOCATE, i.Size, i.Ptr) }
func (i *Store) String() string      { return format(STORE, i.Value, i.Ptr) }
func (i *Load) String() string       { return format(LOAD, i.Ptr, i.Dst) }
func (i *Jump) String() string       { return format(JUMP, i.Target) }
func (i *JumpIfTrue) String() string { return format(JUMP_IF_TRUE, i.Cond, i.Target) }
func (i *Return) String() string {
	if i.Value == nil {
		return RETURN.String()
	}
	return format(RETURN, i.Value)
}

func format(op Opcode, operands ...Operand) string {
	s := op.String()
	for i, o := range operands {
		if i == 0 {
			s += " "
		} else {
			s += ", "
		}
		if isNil(o) {
			s += "<nil>"
			continue
		}
		s += o.String()
	}
	return s
}

func isNil(o Operand) bool {
	if o == nil {
		return true
	}
	r, ok := o.(*Register)
	return ok && r == nil
}

// IsTerminator reports whether in ends a block: JUMP, JUMP_IF_TRUE or RETURN.
func IsTerminator(in Instruction) bool {
	switch in.(type) {
	case *Jump, *JumpIfTrue, *Return:
		return true
	}
	return false
}
