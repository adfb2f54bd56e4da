package codegen

import "math"

// ---------------------------------------------------------------------------
// x86-64 backend
//
// GAS (AT&T syntax) for Linux and macOS. Same register discipline as the
// 32-bit backend on the 64-bit registers; %rbx is callee-saved under both
// System V and Microsoft x64.
// ---------------------------------------------------------------------------

type x86_64Backend struct {
	*attBackend
}

func newX86_64Backend(target *Target) *x86_64Backend {
	return &x86_64Backend{
		attBackend: &attBackend{
			target: target,
			word:   target.PtrSize,
			suffix: "q",
			regs:   [4]string{"%" + target.ReturnReg, "%rbx", "%rcx", "%rdx"},
			low8:   [4]string{"%al", "%bl", "%cl", "%dl"},
			bp:     "%" + target.BasePointer,
			sp:     "%" + target.StackPointer,
			cvt:    "cqto",
		},
	}
}

// EmitMove uses movabsq for constants that do not fit a sign-extended
// 32-bit immediate.
func (e *x86_64Backend) EmitMove(w *Writer, src, dst Value) {
	if src.Kind == ValueImmediate && dst.Kind == ValueRegister &&
		(src.N > math.MaxInt32 || src.N < math.MinInt32) {
		w.Instr("movabsq %s, %s", e.Immediate(src.N), e.RegisterName(int(dst.N)))
		return
	}
	e.move(w, src, dst)
}
