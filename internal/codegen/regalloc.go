package codegen

import "errors"

// ErrOutOfRegisters is returned when an instruction needs a register and
// every register of the target is in use.
var ErrOutOfRegisters = errors.New("out of registers, spilling unimplemented")

// registerTable tracks which physical registers currently hold a value.
// Allocation takes the lowest free index.
type registerTable struct {
	used []bool
}

func newRegisterTable(n int) *registerTable {
	return &registerTable{used: make([]bool, n)}
}

// take marks the first free register used and returns its index.
func (t *registerTable) take() (int, bool) {
	for i, u := range t.used {
		if !u {
			t.used[i] = true
			return i, true
		}
	}
	return 0, false
}

func (t *registerTable) release(i int) {
	if i >= 0 && i < len(t.used) {
		t.used[i] = false
	}
}

// busy lists the registers in use, excluding except.
func (t *registerTable) busy(except int) []int {
	var out []int
	for i, u := range t.used {
		if u && i != except {
			out = append(out, i)
		}
	}
	return out
}
