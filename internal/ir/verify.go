package ir

import (
	"errors"
	"fmt"
)

// Verify checks the structural invariants of a lowered function:
//   - label ids are unique,
//   - every non-empty block ends in JMP, JIT or RET,
//   - every jump targets a label of this function,
//   - Binary and Unary carry an opcode of their class,
//   - ALLOCATE sizes are positive,
//   - no operand is nil where one is required.
//
// All violations are reported together.
func Verify(fn *Function) error {
	var errs []error
	fail := func(l *Label, idx int, format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		errs = append(errs, fmt.Errorf("%s: L%d[%d]: %s", fn.Name, l.ID, idx, msg))
	}

	ids := make(map[int]bool, len(fn.Labels))
	for _, l := range fn.Labels {
		if ids[l.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate label L%d", fn.Name, l.ID))
		}
		ids[l.ID] = true
	}

	checkTarget := func(l *Label, idx int, t LabelRef) {
		if !ids[int(t)] {
			fail(l, idx, "jump to unknown label %s", t)
		}
	}

	for _, l := range fn.Labels {
		for idx, in := range l.Instructions {
			for _, o := range in.Sources() {
				if isNil(o) {
					fail(l, idx, "%s has a nil source", in.Opcode())
				}
			}
			switch in := in.(type) {
			case *Move:
				if in.Dst == nil {
					fail(l, idx, "MOV without destination")
				}
			case *Binary:
				if !in.Op.IsBinary() {
					fail(l, idx, "%s is not a binary opcode", in.Op)
				}
				if in.Dst == nil {
					fail(l, idx, "%s without destination", in.Op)
				}
			case *Unary:
				if !in.Op.IsUnary() {
					fail(l, idx, "%s is not a unary opcode", in.Op)
				}
				if in.Dst == nil {
					fail(l, idx, "%s without destination", in.Op)
				}
			case *Allocate:
				if in.Size <= 0 {
					fail(l, idx, "ALC of non-positive size %d", in.Size)
				}
				if in.Ptr == nil {
					fail(l, idx, "ALC without pointer register")
				}
			case *Load:
				if in.Dst == nil {
					fail(l, idx, "LOD without destination")
				}
			case *Jump:
				checkTarget(l, idx, in.Target)
			case *JumpIfTrue:
				checkTarget(l, idx, in.Target)
			}
		}
		if last := l.Last(); last != nil && !IsTerminator(last) {
			errs = append(errs, fmt.Errorf("%s: L%d does not end in a jump or return (last is %s)", fn.Name, l.ID, last))
		}
	}
	return errors.Join(errs...)
}

// VerifyModule runs Verify on every function.
func VerifyModule(m *Module) error {
	var errs []error
	for _, fn := range m.Functions {
		if err := Verify(fn); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
