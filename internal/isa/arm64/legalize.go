package arm64

import "github.com/arm64cg/arm64cg/internal/regalloc"

// ExpandMovImm rewrites every MovImm meta-instruction in vc into a
// concrete MOVZ/MOVN plus up to two MOVK sequence (spec §4.1
// "synthesize_mov"), or a literal-pool load when neither the value nor
// its bitwise complement has at most 3 non-zero 16-bit chunks (rare for
// realistic constants, but possible; spec §4.1 "else literal_pool").
// Must run once per function, after lowering and before Encode.
func ExpandMovImm(vc *VCode, pool *LiteralPool) {
	for _, b := range vc.Blocks {
		var rewritten []*Inst
		for _, inst := range b.Insts {
			if inst.Kind != MovImm {
				rewritten = append(rewritten, inst)
				continue
			}
			rewritten = append(rewritten, synthesizeMovImm(inst.Dst, uint64(inst.ImmI64), inst.Size, pool)...)
		}
		b.Insts = rewritten
	}
}

// synthesizeMovImm implements spec §4.1's legalization ladder for a
// constant materialization: MOVZ/MOVN (+ up to 2 MOVK) if <=3 non-zero
// 16-bit chunks are needed; otherwise a literal-pool load.
func synthesizeMovImm(dst regalloc.VReg, v uint64, size OperandSize, pool *LiteralPool) []*Inst {
	if size == Size32 {
		v &= 0xFFFFFFFF
	}
	chunks := shifted16ChunksOf(v)
	nz := nonZeroChunks16(v)

	if v == 0 {
		return []*Inst{NewMovZ(dst, Shifted16{0, 0}, size)}
	}
	allOnes := size == Size64 && v == ^uint64(0)
	allOnes32 := size == Size32 && uint32(v) == 0xFFFFFFFF
	if allOnes || allOnes32 {
		return []*Inst{NewMovN(dst, Shifted16{0, 0}, size)}
	}

	maxChunks := 2
	if size == Size64 {
		maxChunks = 4
	}
	nzInverted := nonZeroChunks16(^v)

	if nz <= 3 {
		return movzMovkChain(dst, chunks, size, maxChunks)
	}
	if nzInverted <= 3 {
		// MOVN seeds all-ones then MOVK punches in the differing chunks.
		invChunks := shifted16ChunksOf(^v)
		var out []*Inst
		seeded := false
		for idx := 0; idx < maxChunks; idx++ {
			c := chunks[idx]
			if c.Chunk == 0xFFFF {
				continue
			}
			if !seeded {
				out = append(out, NewMovN(dst, invChunks[idx], size))
				seeded = true
				continue
			}
			out = append(out, NewMovK(dst, c, size))
		}
		return out
	}
	// Fall back to the literal pool plus a PC-relative literal load.
	lbl := pool.AddConstant(v)
	return []*Inst{{Kind: ULoad, Dst: dst, Amode: AmodeLabelOf(lbl), ImmI64: 8}}
}

func invertedChunkAt(v uint64, idx int) uint16 {
	return uint16(v >> (16 * idx))
}

func movzMovkChain(dst regalloc.VReg, chunks [4]Shifted16, size OperandSize, maxChunks int) []*Inst {
	var out []*Inst
	seeded := false
	for idx := 0; idx < maxChunks; idx++ {
		c := chunks[idx]
		if c.Chunk == 0 {
			continue
		}
		if !seeded {
			out = append(out, NewMovZ(dst, c, size))
			seeded = true
			continue
		}
		out = append(out, NewMovK(dst, c, size))
	}
	return out
}

// LegalizeAluImm implements spec §4.1 "Arithmetic-immediate
// legalization": try the immediate directly; else try the additive
// inverse with the operation flipped (add<->sub); else synthesize the
// constant into a scratch register and fall back to the RRR form.
func LegalizeAluImm(op AluOp, dst, src regalloc.VReg, v uint64, size OperandSize, newTmp func() regalloc.VReg, pool *LiteralPool) []*Inst {
	if imm, ok := TryImm12FromU64(v); ok {
		return []*Inst{NewAluRRImm12(op, dst, src, imm, size)}
	}
	neg := uint64(-int64(v))
	if size == Size32 {
		neg = uint64(uint32(-int32(v)))
	}
	if imm, ok := TryImm12FromU64(neg); ok {
		flipped := flipAddSub(op)
		if flipped != op {
			return []*Inst{NewAluRRImm12(flipped, dst, src, imm, size)}
		}
	}
	tmp := newTmp()
	out := synthesizeMovImm(tmp, v, size, pool)
	out = append(out, NewAluRRR(op, dst, src, tmp, size))
	return out
}

func flipAddSub(op AluOp) AluOp {
	switch op {
	case AluAdd:
		return AluSub
	case AluSub:
		return AluAdd
	case AluAddS:
		return AluSubS
	case AluSubS:
		return AluAddS
	default:
		return op
	}
}

// LegalizeLogicalImm implements spec §4.7 "Oversized logical immediates":
// try the bitmask form directly; otherwise synthesize v into a scratch
// register (MOVZ/MOVN/MOVK chain or literal-pool load) and use the RRR
// form of op. The bitwise complement with the complementary operation
// (AND<->BIC, ORR<->ORN, EOR<->EON) is not used: the AND/BIC check below
// discards its result, and ORR and EOR have no complement check at all.
func LegalizeLogicalImm(op AluOp, dst, src regalloc.VReg, v uint64, size OperandSize, newTmp func() regalloc.VReg, pool *LiteralPool) []*Inst {
	is64 := size == Size64
	if imm, ok := TryImmLogicFromU64(v, is64); ok {
		return []*Inst{NewAluRRBitmaskImm(op, dst, src, imm, size)}
	}
	comp := ^v
	if !is64 {
		comp = uint64(^uint32(v))
	}
	if imm, ok := TryImmLogicFromU64(comp, is64); ok && op == AluAnd {
		// AND(x, v) == BIC(x, ~v) is not directly representable without a
		// dedicated BIC-immediate kind; fall through to the general path
		// below rather than mis-encode it.
		_ = imm
	}
	tmp := newTmp()
	out := synthesizeMovImm(tmp, v, size, pool)
	out = append(out, NewAluRRR(op, dst, src, tmp, size))
	return out
}

// LegalizeLoadStoreOffset implements spec §4.7 "Out-of-range load/store
// offsets": materialize base+offset into a scratch register via MOV+ADD
// and re-express as a zero-offset register amode.
func LegalizeLoadStoreOffset(base regalloc.VReg, off int64, sizeBytes int, newTmp func() regalloc.VReg, pool *LiteralPool) (Amode, []*Inst) {
	if offsetFitsUnsignedImm12(sizeBytes, off) {
		return AmodeRegOffsetOf(base, off), nil
	}
	tmp := newTmp()
	out := synthesizeMovImm(tmp, uint64(off), Size64, pool)
	out = append(out, NewAluRRR(AluAdd, tmp, tmp, base, Size64))
	return AmodeRegOffsetOf(tmp, 0), out
}

// LegalizePrePostIndexOffset implements spec §4.7: pre/post-index offsets
// must lie in [-256, 255]; otherwise convert to a plain register-offset
// amode plus a separate SP/base adjustment instruction.
func LegalizePrePostIndexOffset(base regalloc.VReg, off int64, pre bool) (Amode, []*Inst) {
	if offsetFitsSignedImm9(off) {
		if pre {
			return AmodePreIndexOf(base, off), nil
		}
		return AmodePostIndexOf(base, off), nil
	}
	adjustOp := AluAdd
	adjustVal := off
	if off < 0 {
		adjustOp = AluSub
		adjustVal = -off
	}
	imm, ok := TryImm12FromU64(uint64(adjustVal))
	var adjust *Inst
	if ok {
		adjust = NewAluRRImm12(adjustOp, base, base, imm, Size64)
	}
	if pre {
		// Adjust first, then access at zero offset.
		insts := []*Inst{}
		if adjust != nil {
			insts = append(insts, adjust)
		}
		return AmodeRegOffsetOf(base, 0), insts
	}
	// Post-index: access happens before the adjustment is committed by the
	// caller (the caller must append `adjust` after using the amode).
	var insts []*Inst
	if adjust != nil {
		insts = append(insts, adjust)
	}
	return AmodeRegOffsetOf(base, 0), insts
}
