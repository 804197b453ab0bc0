package arm64

import "github.com/arm64cg/arm64cg/internal/regalloc"

// VaList mirrors the 32-byte AAPCS64 va_list record, spec §3: field
// offsets are exactly 0/8/16/24/28 and must not be reordered.
type VaList struct {
	Stack   uint64 // offset 0
	GrTop   uint64 // offset 8
	VrTop   uint64 // offset 16
	GrOffs  int32  // offset 24
	VrOffs  int32  // offset 28
}

const (
	vaListStackOff  = 0
	vaListGrTopOff  = 8
	vaListVrTopOff  = 16
	vaListGrOffsOff = 24
	vaListVrOffsOff = 28
)

// GenerateVaStart builds the instruction sequence that initializes the
// 32-byte va_list at apAddr, spec §4.6 "va_start". gpUsed/fpUsed are the
// counts of named integer/FP arguments already consumed by the fixed
// parameter prefix (computeArgLocs's final counters for the signature's
// FixedParams). newTmp allocates a fresh scratch vreg (the caller passes
// VCode.NextVReg so ids stay unique within the function).
func (a *Aarch64ABICallee) GenerateVaStart(apAddr regalloc.VReg, stackArgsOffset int64, gpUsed, fpUsed int, newTmp func() regalloc.VReg) []*Inst {
	grOff, fpOff := a.VarargsSaveArea()
	var out []*Inst

	store := func(val regalloc.VReg, off int64) *Inst {
		return NewStore(val, AmodeRegOffsetOf(apAddr, off), 8)
	}
	addImmTo := func(dst regalloc.VReg, base regalloc.VReg, off int64) *Inst {
		imm, ok := TryImm12FromU64(uint64(off))
		if !ok {
			imm, _ = TryImm12FromU64(0)
		}
		return NewAluRRImm12(AluAdd, dst, base, imm, Size64)
	}

	stackVal := newTmp()
	grTopVal := newTmp()
	vrTopVal := newTmp()
	grOffsVal := newTmp()
	vrOffsVal := newTmp()

	out = append(out, addImmTo(stackVal, spVReg, stackArgsOffset))
	out = append(out, store(stackVal, vaListStackOff))

	out = append(out, addImmTo(grTopVal, spVReg, grOff+64))
	out = append(out, store(grTopVal, vaListGrTopOff))

	out = append(out, addImmTo(vrTopVal, spVReg, fpOff+128))
	out = append(out, store(vrTopVal, vaListVrTopOff))

	grOffs := int64(-8 * (8 - gpUsed))
	out = append(out, NewMovImm(grOffsVal, grOffs, Size32))
	out = append(out, NewStore(grOffsVal, AmodeRegOffsetOf(apAddr, vaListGrOffsOff), 4))

	vrOffs := int64(-16 * (8 - fpUsed))
	out = append(out, NewMovImm(vrOffsVal, vrOffs, Size32))
	out = append(out, NewStore(vrOffsVal, AmodeRegOffsetOf(apAddr, vaListVrOffsOff), 4))

	return out
}

// CallerSavedTracker implements spec §4.6's bitset of caller-saved
// registers the ABI engine may need to preserve around a call it cannot
// otherwise prove safe (e.g. across a legalization-inserted helper call).
type CallerSavedTracker struct {
	gprs     uint32 // bit i => Xi marked, i in [0,18].
	fprs     uint32 // bit i => Vi marked, i in [0,7] or [16,31] (low 32 bits only tracked here via two ranges folded).
	platform Platform
}

func NewCallerSavedTracker(platform Platform) *CallerSavedTracker {
	return &CallerSavedTracker{platform: platform}
}

func (t *CallerSavedTracker) Mark(r regalloc.RealReg) {
	enc := r.Encoding()
	if r.Class() == regalloc.RegTypeInt {
		if enc == 8 || (enc == 18 && t.platform.ReservesX18()) || enc > 18 {
			return
		}
		t.gprs |= 1 << enc
		return
	}
	if enc <= 7 {
		t.fprs |= 1 << enc
	} else if enc >= 16 {
		t.fprs |= 1 << (enc - 8) // fold 16..31 into bits 8..23.
	}
}

func (t *CallerSavedTracker) Clear() { t.gprs, t.fprs = 0, 0 }

func (t *CallerSavedTracker) IsMarked(r regalloc.RealReg) bool {
	enc := r.Encoding()
	if r.Class() == regalloc.RegTypeInt {
		return t.gprs&(1<<enc) != 0
	}
	if enc <= 7 {
		return t.fprs&(1<<enc) != 0
	}
	return t.fprs&(1<<(enc-8)) != 0
}

// markedInts / markedFloats return the set bits as ordered RealReg lists,
// lowest encoding first, for pairing.
func (t *CallerSavedTracker) markedInts() []regalloc.RealReg {
	var out []regalloc.RealReg
	for i := byte(0); i <= 18; i++ {
		if t.gprs&(1<<i) != 0 {
			out = append(out, intReal(i))
		}
	}
	return out
}

func (t *CallerSavedTracker) markedFloats() []regalloc.RealReg {
	var out []regalloc.RealReg
	for i := byte(0); i <= 7; i++ {
		if t.fprs&(1<<i) != 0 {
			out = append(out, floatReal(i))
		}
	}
	for i := byte(16); i <= 31; i++ {
		if t.fprs&(1<<(i-8)) != 0 {
			out = append(out, floatReal(i))
		}
	}
	return out
}

// EmitSaves pairs adjacent marked registers into STP instructions (an
// unpaired trailing register emits STR and still reserves 16 bytes),
// starting at baseOffset from the given base register. Returns the
// instructions and the number of bytes of frame space they consume.
func (t *CallerSavedTracker) EmitSaves(base regalloc.VReg, baseOffset int64) ([]*Inst, int64) {
	return t.emit(base, baseOffset, false)
}

func (t *CallerSavedTracker) EmitRestores(base regalloc.VReg, baseOffset int64) ([]*Inst, int64) {
	return t.emit(base, baseOffset, true)
}

func (t *CallerSavedTracker) emit(base regalloc.VReg, baseOffset int64, load bool) ([]*Inst, int64) {
	var out []*Inst
	off := baseOffset
	pairUp := func(regs []regalloc.RealReg, isFloat bool) {
		for i := 0; i+1 < len(regs); i += 2 {
			r1 := regalloc.FromRealReg(regs[i], regs[i].Class())
			r2 := regalloc.FromRealReg(regs[i+1], regs[i+1].Class())
			if isFloat {
				if load {
					out = append(out, NewFpuLoad(r1, AmodeRegOffsetOf(base, off), FSize64))
					out = append(out, NewFpuLoad(r2, AmodeRegOffsetOf(base, off+8), FSize64))
				} else {
					out = append(out, NewFpuStore(r1, AmodeRegOffsetOf(base, off), FSize64))
					out = append(out, NewFpuStore(r2, AmodeRegOffsetOf(base, off+8), FSize64))
				}
			} else {
				out = append(out, NewLdStPair(load, r1, r2, AmodeRegOffsetOf(base, off), Size64))
			}
			off += 16
		}
		if len(regs)%2 == 1 {
			last := regs[len(regs)-1]
			r := regalloc.FromRealReg(last, last.Class())
			if isFloat {
				if load {
					out = append(out, NewFpuLoad(r, AmodeRegOffsetOf(base, off), FSize64))
				} else {
					out = append(out, NewFpuStore(r, AmodeRegOffsetOf(base, off), FSize64))
				}
			} else {
				if load {
					out = append(out, NewLoad(r, AmodeRegOffsetOf(base, off), 8, false))
				} else {
					out = append(out, NewStore(r, AmodeRegOffsetOf(base, off), 8))
				}
			}
			off += 16
		}
	}
	pairUp(t.markedInts(), false)
	pairUp(t.markedFloats(), true)
	return out, off - baseOffset
}
