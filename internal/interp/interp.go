// Package interp executes IR functions directly. It is the reference
// semantics the code generators are checked against.
package interp

import (
	"errors"
	"fmt"

	"opal/internal/ir"
)

var (
	ErrStepLimit    = errors.New("step limit exceeded")
	ErrDivideByZero = errors.New("division by zero")
)

// Options bounds an interpreter run.
type Options struct {
	// MaxSteps caps the number of executed instructions. Zero means
	// DefaultMaxSteps.
	MaxSteps int
}

const DefaultMaxSteps = 1_000_000

// RunModule runs the named function of mod.
func RunModule(mod *ir.Module, name string, opts *Options) (int64, error) {
	fn := mod.Function(name)
	if fn == nil {
		return 0, fmt.Errorf("no function %q in module", name)
	}
	return Run(fn, opts)
}

// Run executes fn from its first block and returns the value of the RETURN
// that ends it. A bare RETURN yields 0.
func Run(fn *ir.Function, opts *Options) (int64, error) {
	maxSteps := DefaultMaxSteps
	if opts != nil && opts.MaxSteps > 0 {
		maxSteps = opts.MaxSteps
	}
	m := &machine{
		fn:      fn,
		regs:    make([]int64, fn.RegisterCount()),
		defined: make([]bool, fn.RegisterCount()),
		order:   make(map[int]int, len(fn.Labels)),
	}
	for i, l := range fn.Labels {
		m.order[l.ID] = i
	}
	v, err := m.run(maxSteps)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", fn.Name, err)
	}
	return v, nil
}

type machine struct {
	fn      *ir.Function
	regs    []int64
	defined []bool
	cells   []int64
	order   map[int]int // label id -> index in fn.Labels
}

func (m *machine) run(maxSteps int) (int64, error) {
	if len(m.fn.Labels) == 0 {
		return 0, errors.New("function has no blocks")
	}
	block, pc, steps := 0, 0, 0
	for {
		instrs := m.fn.Labels[block].Instructions
		if pc >= len(instrs) {
			// Fall through into the next block in declaration order.
			block++
			pc = 0
			if block >= len(m.fn.Labels) {
				return 0, errors.New("control fell off the last block")
			}
			continue
		}
		steps++
		if steps > maxSteps {
			return 0, ErrStepLimit
		}

		in := instrs[pc]
		pc++
		switch in := in.(type) {
		case *ir.Move:
			v, err := m.read(in.Src)
			if err != nil {
				return 0, err
			}
			m.write(in.Dst, v)
		case *ir.Binary:
			a, err := m.read(in.Lhs)
			if err != nil {
				return 0, err
			}
			b, err := m.read(in.Rhs)
			if err != nil {
				return 0, err
			}
			v, err := binary(in.Op, a, b)
			if err != nil {
				return 0, err
			}
			m.write(in.Dst, v)
		case *ir.Unary:
			a, err := m.read(in.Src)
			if err != nil {
				return 0, err
			}
			switch in.Op {
			case ir.NEGATE:
				m.write(in.Dst, -a)
			case ir.NOT:
				m.write(in.Dst, a^1)
			default:
				return 0, fmt.Errorf("bad unary opcode %s", in.Op)
			}
		case *ir.Allocate:
			m.cells = append(m.cells, 0)
			m.write(in.Ptr, int64(len(m.cells)))
		case *ir.Store:
			v, err := m.read(in.Value)
			if err != nil {
				return 0, err
			}
			cell, err := m.cell(in.Ptr)
			if err != nil {
				return 0, err
			}
			*cell = v
		case *ir.Load:
			cell, err := m.cell(in.Ptr)
			if err != nil {
				return 0, err
			}
			m.write(in.Dst, *cell)
		case *ir.Jump:
			next, err := m.jump(in.Target)
			if err != nil {
				return 0, err
			}
			block, pc = next, 0
		case *ir.JumpIfTrue:
			c, err := m.read(in.Cond)
			if err != nil {
				return 0, err
			}
			if c != 0 {
				next, err := m.jump(in.Target)
				if err != nil {
					return 0, err
				}
				block, pc = next, 0
			}
		case *ir.Return:
			if in.Value == nil {
				return 0, nil
			}
			return m.read(in.Value)
		default:
			return 0, fmt.Errorf("unknown instruction %T", in)
		}
	}
}

func binary(op ir.Opcode, a, b int64) (int64, error) {
	switch op {
	case ir.ADD:
		return a + b, nil
	case ir.SUBTRACT:
		return a - b, nil
	case ir.MULTIPLY:
		return a * b, nil
	case ir.DIVIDE:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	case ir.MODULO:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a % b, nil
	case ir.AND:
		return a & b, nil
	case ir.OR:
		return a | b, nil
	case ir.EQUAL:
		return flag(a == b), nil
	case ir.NOT_EQUAL:
		return flag(a != b), nil
	case ir.LESS:
		return flag(a < b), nil
	case ir.LESS_EQUAL:
		return flag(a <= b), nil
	case ir.GREATER:
		return flag(a > b), nil
	case ir.GREATER_EQUAL:
		return flag(a >= b), nil
	}
	return 0, fmt.Errorf("bad binary opcode %s", op)
}

func flag(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (m *machine) read(o ir.Operand) (int64, error) {
	switch o := o.(type) {
	case ir.Immediate:
		return int64(o), nil
	case *ir.Register:
		if o == nil || o.ID >= len(m.regs) {
			return 0, fmt.Errorf("invalid register %v", o)
		}
		if !m.defined[o.ID] {
			return 0, fmt.Errorf("read of undefined register %s", o)
		}
		return m.regs[o.ID], nil
	}
	return 0, fmt.Errorf("operand %v is not a value", o)
}

func (m *machine) write(r *ir.Register, v int64) {
	m.regs[r.ID] = v
	m.defined[r.ID] = true
}

func (m *machine) cell(ptr *ir.Register) (*int64, error) {
	addr, err := m.read(ptr)
	if err != nil {
		return nil, err
	}
	if addr < 1 || addr > int64(len(m.cells)) {
		return nil, fmt.Errorf("invalid address %d in %s", addr, ptr)
	}
	return &m.cells[addr-1], nil
}

func (m *machine) jump(target ir.LabelRef) (int, error) {
	idx, ok := m.order[int(target)]
	if !ok {
		return 0, fmt.Errorf("jump to unknown label %s", target)
	}
	return idx, nil
}
