package codegen

import (
	"fmt"

	"opal/internal/ir"
)

// ---------------------------------------------------------------------------
// generator - register allocation and instruction dispatch shared by every
// backend
//
// Allocation is local to one instruction: a virtual register gets the first
// free physical register on its first reference and keeps it; the registers
// of an instruction's sources are released once the instruction has been
// emitted. Destinations are chosen while the sources are still held, so a
// destination never aliases a source. Pointers produced by ALLOCATE live in
// frame slots and are never released.
// ---------------------------------------------------------------------------

type generator struct {
	backend Backend
	target  *Target
	w       *Writer

	// Label names are unique across the whole module.
	nextLabel int

	// Per-function state.
	fn     *ir.Function
	regs   *registerTable
	labels map[int]string
	reads  map[*ir.Register]int
	slots  int
}

// Emit generates assembly text for every function of mod, in declaration
// order. On error no text is returned.
func Emit(mod *ir.Module, target *Target, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	backend, err := NewBackend(target, opts)
	if err != nil {
		return "", err
	}
	return emitWith(backend, mod, target, opts)
}

func emitWith(backend Backend, mod *ir.Module, target *Target, opts *Options) (string, error) {
	g := &generator{
		backend: backend,
		target:  target,
		w:       &Writer{},
	}

	symbols := make([]string, len(mod.Functions))
	for i, fn := range mod.Functions {
		symbols[i] = target.Sym(fn.Name)
	}
	backend.EmitPreamble(g.w, symbols)

	for i, fn := range mod.Functions {
		if opts.Verbose {
			opts.logf("[codegen] Emitting %s (%d labels, %d registers)\n", fn.Name, len(fn.Labels), fn.RegisterCount())
		}
		if err := g.function(fn, symbols[i]); err != nil {
			return "", err
		}
	}
	return g.w.String(), nil
}

func (g *generator) function(fn *ir.Function, symbol string) error {
	fn.ResetLocations()
	g.fn = fn
	g.regs = newRegisterTable(g.backend.RegisterCount())
	g.labels = make(map[int]string, len(fn.Labels))
	g.reads = make(map[*ir.Register]int)
	g.slots = 0

	for _, l := range fn.Labels {
		g.labels[l.ID] = fmt.Sprintf(".L%d", g.nextLabel)
		g.nextLabel++
		for _, in := range l.Instructions {
			for _, o := range in.Sources() {
				if r, ok := o.(*ir.Register); ok {
					g.reads[r]++
				}
			}
			if a, ok := in.(*ir.Allocate); ok && a.Ptr != nil {
				if _, bound := a.Ptr.Location(); !bound {
					a.Ptr.Assign(ir.Location{Kind: ir.InFrame, Index: g.slots})
					g.slots++
				}
			}
		}
	}

	g.backend.EmitPrologue(g.w, symbol, g.slots)
	for _, l := range fn.Labels {
		g.w.Label(g.labels[l.ID])
		for _, in := range l.Instructions {
			if err := g.instr(in); err != nil {
				return fmt.Errorf("%s: L%d: %s: %w", fn.Name, l.ID, in, err)
			}
		}
	}
	g.w.Blank()
	return nil
}

func (g *generator) instr(in ir.Instruction) error {
	b, w := g.backend, g.w

	switch in := in.(type) {
	case *ir.Move:
		src, err := g.use(in.Src)
		if err != nil {
			return err
		}
		dst, err := g.def(in.Dst)
		if err != nil {
			return err
		}
		b.EmitMove(w, src, dst)

	case *ir.Binary:
		lhs, err := g.use(in.Lhs)
		if err != nil {
			return err
		}
		rhs, err := g.use(in.Rhs)
		if err != nil {
			return err
		}
		dst, err := g.def(in.Dst)
		if err != nil {
			return err
		}
		switch {
		case in.Op.IsComparison():
			b.EmitCompare(w, in.Op, lhs, rhs, dst)
		case in.Op == ir.DIVIDE || in.Op == ir.MODULO:
			b.EmitDivide(w, in.Op, lhs, rhs, dst, g.regs.busy(int(dst.N)))
		case in.Op.IsArithmetic():
			b.EmitBinary(w, in.Op, lhs, rhs, dst)
		default:
			return fmt.Errorf("%s is not a binary opcode", in.Op)
		}

	case *ir.Unary:
		if !in.Op.IsUnary() {
			return fmt.Errorf("%s is not a unary opcode", in.Op)
		}
		src, err := g.use(in.Src)
		if err != nil {
			return err
		}
		dst, err := g.def(in.Dst)
		if err != nil {
			return err
		}
		b.EmitUnary(w, in.Op, src, dst)

	case *ir.Allocate:
		slot, err := g.frame(in.Ptr)
		if err != nil {
			return err
		}
		b.EmitAllocate(w, slot, int64(in.Size))

	case *ir.Store:
		v, err := g.use(in.Value)
		if err != nil {
			return err
		}
		slot, err := g.frame(in.Ptr)
		if err != nil {
			return err
		}
		b.EmitStore(w, v, slot)

	case *ir.Load:
		slot, err := g.frame(in.Ptr)
		if err != nil {
			return err
		}
		dst, err := g.def(in.Dst)
		if err != nil {
			return err
		}
		b.EmitLoad(w, slot, dst)

	case *ir.Jump:
		label, err := g.label(in.Target)
		if err != nil {
			return err
		}
		b.EmitJump(w, label)

	case *ir.JumpIfTrue:
		label, err := g.label(in.Target)
		if err != nil {
			return err
		}
		if imm, ok := in.Cond.(ir.Immediate); ok {
			if imm != 0 {
				b.EmitJump(w, label)
			}
			break
		}
		cond, err := g.use(in.Cond)
		if err != nil {
			return err
		}
		b.EmitJumpIfTrue(w, cond, label)

	case *ir.Return:
		if in.Value == nil {
			b.EmitReturn(w, Value{}, false)
			break
		}
		v, err := g.use(in.Value)
		if err != nil {
			return err
		}
		b.EmitReturn(w, v, true)

	default:
		return fmt.Errorf("unknown instruction %T", in)
	}

	g.release(in)
	return nil
}

// use returns the physical operand for a value being read.
func (g *generator) use(o ir.Operand) (Value, error) {
	switch o := o.(type) {
	case ir.Immediate:
		if !g.target.Is64Bit() && int64(int32(o)) != int64(o) {
			return Value{}, fmt.Errorf("constant %d does not fit in a %d-bit register", int64(o), 8*g.target.PtrSize)
		}
		return Imm(int64(o)), nil
	case *ir.Register:
		if o == nil {
			return Value{}, fmt.Errorf("nil register operand")
		}
		loc, ok := o.Location()
		if ok && loc.Kind == ir.InFrame {
			return Value{}, fmt.Errorf("%s holds a frame address and cannot be used as a value", o)
		}
		return g.place(o)
	}
	return Value{}, fmt.Errorf("operand %v is not a value", o)
}

// def returns the physical register for a destination.
func (g *generator) def(r *ir.Register) (Value, error) {
	if r == nil {
		return Value{}, fmt.Errorf("missing destination register")
	}
	if loc, ok := r.Location(); ok && loc.Kind == ir.InFrame {
		return Value{}, fmt.Errorf("%s is bound to a frame slot", r)
	}
	return g.place(r)
}

// place returns the register cached on r, assigning the first free one on
// first reference.
func (g *generator) place(r *ir.Register) (Value, error) {
	if loc, ok := r.Location(); ok {
		switch loc.Kind {
		case ir.InRegister:
			return Reg(loc.Index), nil
		case ir.InSpill:
			return SpillAt(loc.Index), nil
		}
	}
	idx, ok := g.regs.take()
	if !ok {
		return Value{}, ErrOutOfRegisters
	}
	r.Assign(ir.Location{Kind: ir.InRegister, Index: idx})
	return Reg(idx), nil
}

// frame returns the slot of an ALLOCATE pointer.
func (g *generator) frame(p *ir.Register) (Value, error) {
	if p == nil {
		return Value{}, fmt.Errorf("missing pointer register")
	}
	loc, ok := p.Location()
	if !ok || loc.Kind != ir.InFrame {
		return Value{}, fmt.Errorf("%s is not a frame address", p)
	}
	return Frame(loc.Index), nil
}

func (g *generator) label(ref ir.LabelRef) (string, error) {
	name, ok := g.labels[int(ref)]
	if !ok {
		return "", fmt.Errorf("jump to unknown label %s", ref)
	}
	return name, nil
}

// release frees the registers of the instruction's sources, and its
// destination when nothing ever reads it.
func (g *generator) release(in ir.Instruction) {
	for _, o := range in.Sources() {
		if r, ok := o.(*ir.Register); ok && r != nil {
			g.free(r)
		}
	}
	if d := ir.Destination(in); d != nil && g.reads[d] == 0 {
		g.free(d)
	}
}

func (g *generator) free(r *ir.Register) {
	if loc, ok := r.Location(); ok && loc.Kind == ir.InRegister {
		g.regs.release(loc.Index)
	}
}
