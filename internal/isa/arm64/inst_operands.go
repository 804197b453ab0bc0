package arm64

import "github.com/arm64cg/arm64cg/internal/regalloc"

// Operands appends the flat (vreg, constraint, position) operand records
// of spec §4.5's "Extraction pass" for this instruction, in the
// mandated order: all uses in source order, then all defs. Physical
// registers already present (ABI-fixed operands) are reported with
// Fixed=true so the allocator bridge honors them instead of treating
// them as any_reg.
func (i *Inst) Operands(out []regalloc.Operand) []regalloc.Operand {
	use := func(r regalloc.VReg) {
		if r.Valid() {
			out = append(out, regalloc.Operand{Reg: r, Pos: regalloc.PosUse, Fixed: r.IsFixed()})
		}
	}
	def := func(r regalloc.VReg) {
		if r.Valid() {
			out = append(out, regalloc.Operand{Reg: r, Pos: regalloc.PosDef, Fixed: r.IsFixed()})
		}
	}
	useDef := func(r regalloc.VReg) {
		if r.Valid() {
			out = append(out, regalloc.Operand{Reg: r, Pos: regalloc.PosUseDef, Fixed: r.IsFixed()})
		}
	}
	amodeUses := func(a Amode) {
		use(a.Base)
		if a.Kind == AmodeRegReg || a.Kind == AmodeRegExtended || a.Kind == AmodeRegScaled {
			use(a.Index)
		}
	}

	switch i.Kind {
	case MovRR, Extend, BitRR, FpuRR, FpuMov:
		use(i.Src)
		def(i.Dst)
	case MovZ, MovN, MovImm, CSet, Adrp:
		def(i.Dst)
	case MovK:
		// Use-def: MOVK reads the other three halves before writing, per
		// spec §3/§9 (the conservative form the spec recommends).
		useDef(i.Dst)
	case AluRRR, FpuRRR:
		use(i.Src)
		use(i.Src2)
		def(i.Dst)
	case AluRRImm12, AluRRBitmaskImm, AluRRImmShift:
		use(i.Src)
		def(i.Dst)
	case AluRRRR: // madd/msub: addend is a use, dst is def.
		use(i.Src)
		use(i.Src2)
		use(i.Addend)
		def(i.Dst)
	case CmpRR, TstRR, FpuCmp, CmnRR:
		use(i.Src)
		use(i.Src2)
	case CmpImm, TstImm, CmnImm:
		use(i.Src)
	case CSel, FCSel:
		use(i.Src)
		use(i.Src2)
		def(i.Dst)
	case ULoad, SLoad:
		amodeUses(i.Amode)
		def(i.Dst)
	case FpuLoad:
		amodeUses(i.Amode)
		def(i.Dst)
	case Store, FpuStore:
		use(i.Src)
		amodeUses(i.Amode)
	case LdStPair:
		amodeUses(i.Amode)
		if i.Load {
			def(i.Dst)
			def(i.Dst2)
		} else {
			use(i.Dst)
			use(i.Dst2)
		}
	case IntToFpu:
		use(i.Src)
		def(i.Dst)
	case FpuToInt:
		use(i.Src)
		def(i.Dst)
	case VecRRR:
		use(i.Src)
		use(i.Src2)
		def(i.Dst)
	case VecMisc, VecLanes:
		use(i.Src)
		def(i.Dst)
	case Cbz, Cbnz:
		use(i.Src)
	case Br, Blr:
		use(i.Src)
		if i.Kind == Blr {
			def(lrVReg)
		}
	case Bl:
		def(lrVReg)
	case Ret:
		use(lrVReg)
	case B, BCond, Udf, Brk, Dmb, Nop:
		// No register operands.
	default:
		panic("BUG: Operands() missing a case for this InstKind")
	}
	return out
}

// Defs returns the list of VRegs this instruction defines, for the
// liveness/allocation bookkeeping callers that don't need full operand
// metadata (e.g. a quick defs-only scan).
func (i *Inst) Defs(out []regalloc.VReg) []regalloc.VReg {
	var ops [8]regalloc.Operand
	for _, op := range i.Operands(ops[:0]) {
		if op.Pos == regalloc.PosDef || op.Pos == regalloc.PosUseDef {
			out = append(out, op.Reg)
		}
	}
	return out
}

// AssignRegs rewrites every virtual-register operand of this instruction
// to the physical register the allocator chose for it — spec §4.5's
// "Application pass". alloc must be a total mapping for every vreg id
// that appeared in this instruction's Operands(); spills are the
// caller's responsibility (materialized as extra load/store Insts around
// this one, not by mutating it in place).
func (i *Inst) AssignRegs(alloc map[regalloc.VRegID]regalloc.Allocation) {
	assign := func(r *regalloc.VReg) {
		if !r.Valid() || r.IsRealReg() {
			return
		}
		a, ok := alloc[r.ID()]
		if !ok {
			panic("BUG: UnallocatedVReg: application pass found a virtual register without an allocation")
		}
		if a.Kind != regalloc.AllocKindReg {
			panic("BUG: AssignRegs called on a spilled vreg; spills must be resolved before this call")
		}
		*r = r.Assign(a.Reg)
	}
	assign(&i.Dst)
	assign(&i.Dst2)
	assign(&i.Src)
	assign(&i.Src2)
	assign(&i.Addend)
	assign(&i.Base)
	assign(&i.Amode.Base)
	assign(&i.Amode.Index)
}
