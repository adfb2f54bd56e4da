package codegen

// ---------------------------------------------------------------------------
// x86 (32-bit) backend
//
// GAS (AT&T syntax), cdecl: return value in %eax, %ebx callee-saved.
// ---------------------------------------------------------------------------

type x86Backend struct {
	*attBackend

	// debugPrint prints each function's return value with printf before
	// returning.
	debugPrint bool
}

func newX86Backend(target *Target, debugPrint bool) *x86Backend {
	return &x86Backend{
		attBackend: &attBackend{
			target: target,
			word:   target.PtrSize,
			suffix: "l",
			regs:   [4]string{"%" + target.ReturnReg, "%ebx", "%ecx", "%edx"},
			low8:   [4]string{"%al", "%bl", "%cl", "%dl"},
			bp:     "%" + target.BasePointer,
			sp:     "%" + target.StackPointer,
			cvt:    "cltd",
		},
		debugPrint: debugPrint,
	}
}

const debugFormatLabel = "D0"

func (e *x86Backend) EmitPreamble(w *Writer, symbols []string) {
	if e.debugPrint {
		w.Instr(".data")
		w.Label(debugFormatLabel)
		w.Instr(`.asciz "%%d\n"`)
	}
	e.attBackend.EmitPreamble(w, symbols)
}

func (e *x86Backend) EmitReturn(w *Writer, value Value, hasValue bool) {
	e.result(w, value, hasValue)
	if e.debugPrint {
		// printf("%d\n", eax), keeping eax.
		ret := e.regs[regA]
		w.Instr("pushl %s", ret)
		w.Instr("pushl %s", ret)
		w.Instr("pushl $%s", debugFormatLabel)
		w.Instr("call %s", e.target.Sym("printf"))
		w.Instr("addl $8, %s", e.sp)
		w.Instr("popl %s", ret)
	}
	e.epilogue(w)
}
