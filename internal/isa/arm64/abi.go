package arm64

import (
	"github.com/arm64cg/arm64cg/internal/regalloc"
	"github.com/arm64cg/arm64cg/internal/ssa"
)

// Platform distinguishes the two AAPCS64 environments this backend
// targets, spec §4.6 "Platform variants".
type Platform byte

const (
	PlatformLinux Platform = iota
	PlatformDarwin
)

func (p Platform) String() string {
	if p == PlatformDarwin {
		return "darwin"
	}
	return "linux"
}

// AllowsRedZone reports whether leaf functions may use space below SP
// without adjusting it. Darwin disables this; Linux permits it.
func (p Platform) AllowsRedZone() bool { return p == PlatformLinux }

// ReservesX18 reports whether X18 is off-limits to the allocator and
// callee-save machinery (Darwin reserves it as the platform register).
func (p Platform) ReservesX18() bool { return p == PlatformDarwin }

// ABIArgLocKind discriminates how one argument/return slot is realized.
type ABIArgLocKind byte

const (
	LocReg     ABIArgLocKind = iota // one register, Reg1.
	LocRegPair                      // two consecutive registers (i128, 16-byte general struct).
	LocStack                        // a stack byte offset.
	LocIndirect                     // one integer register carrying a pointer to the value.
)

// ABIArgLoc is one entry of the ordered slot list spec §3 names.
type ABIArgLoc struct {
	Kind        ABIArgLocKind
	Reg1, Reg2  regalloc.RealReg
	StackOffset int64
}

const (
	intArgLimitDefault = 8
	intArgLimitFast    = 18
	fpArgLimitDefault  = 8
	fpArgLimitFast     = 16
)

// argLimits returns the (int, fp) next-register ceilings spec §4.6 names
// for the calling convention.
func argLimits(cc ssa.CallingConvention) (intLimit, fpLimit int) {
	if cc == ssa.CallConvFast {
		return intArgLimitFast, fpArgLimitFast
	}
	return intArgLimitDefault, fpArgLimitDefault
}

// classCounters tracks the two AAPCS64 register cursors plus the stack
// cursor while walking a signature's argument (or return) list in order.
type classCounters struct {
	nextInt, nextFP   int
	intLimit, fpLimit int
	stackOff          int64
}

func (c *classCounters) allocStack(size, align int64) int64 {
	c.stackOff = alignUp(c.stackOff, align)
	off := c.stackOff
	c.stackOff += size
	return off
}

// computeArgLocs implements spec §4.6's classification algorithm over an
// ordered list of ABI-level argument types.
func computeArgLocs(types []ABIType, cc ssa.CallingConvention) ([]ABIArgLoc, error) {
	intLimit, fpLimit := argLimits(cc)
	c := &classCounters{intLimit: intLimit, fpLimit: fpLimit}
	locs := make([]ABIArgLoc, 0, len(types))
	for _, t := range types {
		loc, err := classifyOne(t, c)
		if err != nil {
			return nil, err
		}
		locs = append(locs, loc)
	}
	return locs, nil
}

func classifyOne(t ABIType, c *classCounters) (ABIArgLoc, error) {
	switch t.Kind {
	case ABIScalar:
		if t.Scalar.IsFloat() {
			if c.nextFP < c.fpLimit {
				r := floatReal(byte(c.nextFP))
				c.nextFP++
				return ABIArgLoc{Kind: LocReg, Reg1: r}, nil
			}
			off := c.allocStack(8, 8)
			return ABIArgLoc{Kind: LocStack, StackOffset: off}, nil
		}
		if c.nextInt < c.intLimit {
			r := intReal(byte(c.nextInt))
			c.nextInt++
			return ABIArgLoc{Kind: LocReg, Reg1: r}, nil
		}
		off := c.allocStack(8, 8)
		return ABIArgLoc{Kind: LocStack, StackOffset: off}, nil
	case ABIVector:
		if c.nextFP < c.fpLimit {
			r := floatReal(byte(c.nextFP))
			c.nextFP++
			return ABIArgLoc{Kind: LocReg, Reg1: r}, nil
		}
		off := c.allocStack(t.Size, t.Size)
		return ABIArgLoc{Kind: LocStack, StackOffset: off}, nil
	case ABIStruct:
		if t.IsI128() {
			return classifyI128(c)
		}
		switch ClassifyStruct(t) {
		case StructIndirect:
			if c.nextInt < c.intLimit {
				r := intReal(byte(c.nextInt))
				c.nextInt++
				return ABIArgLoc{Kind: LocIndirect, Reg1: r}, nil
			}
			off := c.allocStack(8, 8)
			return ABIArgLoc{Kind: LocIndirect, StackOffset: off}, nil
		case StructHFA, StructHVA:
			count := len(t.Fields)
			if c.nextFP+count <= c.fpLimit {
				r := floatReal(byte(c.nextFP))
				c.nextFP += count
				return ABIArgLoc{Kind: LocReg, Reg1: r}, nil
			}
			// Register exhaustion rule: all members to stack, remaining
			// FP regs are not used for later arguments either.
			c.nextFP = c.fpLimit
			off := c.allocStack(t.Size, 8)
			return ABIArgLoc{Kind: LocStack, StackOffset: off}, nil
		default: // StructGeneral
			if t.Size <= 8 {
				if c.nextInt < c.intLimit {
					r := intReal(byte(c.nextInt))
					c.nextInt++
					return ABIArgLoc{Kind: LocReg, Reg1: r}, nil
				}
				off := c.allocStack(8, 8)
				return ABIArgLoc{Kind: LocStack, StackOffset: off}, nil
			}
			if c.nextInt+2 <= c.intLimit {
				r1 := intReal(byte(c.nextInt))
				r2 := intReal(byte(c.nextInt + 1))
				c.nextInt += 2
				return ABIArgLoc{Kind: LocRegPair, Reg1: r1, Reg2: r2}, nil
			}
			// Never split: whole struct to stack.
			off := c.allocStack(t.Size, 8)
			return ABIArgLoc{Kind: LocStack, StackOffset: off}, nil
		}
	}
	return ABIArgLoc{}, &BackendError{Kind: ErrUnreachableABI, Msg: "unknown ABIType kind"}
}

func classifyI128(c *classCounters) (ABIArgLoc, error) {
	if c.nextInt%2 != 0 {
		c.nextInt++ // pad-skip to an even-numbered register.
	}
	if c.nextInt+2 <= c.intLimit {
		r1 := intReal(byte(c.nextInt))
		r2 := intReal(byte(c.nextInt + 1))
		c.nextInt += 2
		return ABIArgLoc{Kind: LocRegPair, Reg1: r1, Reg2: r2}, nil
	}
	off := c.allocStack(16, 16)
	return ABIArgLoc{Kind: LocStack, StackOffset: off}, nil
}

func alignUp(v, align int64) int64 {
	if align <= 1 {
		return v
	}
	return (v + align - 1) &^ (align - 1)
}

// --- Frame layout and the callee descriptor, spec §4.6. ---

// Aarch64ABICallee is the per-function frame descriptor spec §3 names.
type Aarch64ABICallee struct {
	CC          ssa.CallingConvention
	Platform    Platform
	Variadic    bool
	calleeSaves []regalloc.RealReg
	seen        map[regalloc.RealReg]bool
	LocalsSize  int64
}

func NewAarch64ABICallee(cc ssa.CallingConvention, platform Platform, variadic bool) (*Aarch64ABICallee, error) {
	switch cc {
	case ssa.CallConvAAPCS64, ssa.CallConvFast, ssa.CallConvPreserveAll, ssa.CallConvCold:
	default:
		return nil, &BackendError{Kind: ErrUnreachableABI, Msg: "unsupported calling convention"}
	}
	return &Aarch64ABICallee{CC: cc, Platform: platform, Variadic: variadic, seen: map[regalloc.RealReg]bool{}}, nil
}

// calleeSaveSetContains implements spec §4.6 "Callee-save set per
// convention".
func calleeSaveSetContains(cc ssa.CallingConvention, platform Platform, r regalloc.RealReg) bool {
	enc := r.Encoding()
	if r.Class() == regalloc.RegTypeInt {
		if enc >= 19 && enc <= 30 {
			return true
		}
		if cc == ssa.CallConvPreserveAll && enc >= 8 && enc <= 18 {
			if enc == 18 && platform.ReservesX18() {
				return false
			}
			return true
		}
		return false
	}
	// Float/vector.
	if enc >= 8 && enc <= 15 {
		return true
	}
	if cc == ssa.CallConvPreserveAll && enc >= 16 && enc <= 31 {
		return true
	}
	return false
}

// AddCalleeSave records that r must be preserved across the function,
// preserving insertion order and deduplicating (spec §3).
func (a *Aarch64ABICallee) AddCalleeSave(r regalloc.RealReg) error {
	if !calleeSaveSetContains(a.CC, a.Platform, r) {
		return &BackendError{Kind: ErrInvalidCalleeSaveList, Msg: "register outside the legal callee-save set for this convention/platform"}
	}
	if a.seen[r] {
		return nil
	}
	a.seen[r] = true
	a.calleeSaves = append(a.calleeSaves, r)
	return nil
}

// FrameSize implements spec §4.6's formula.
func (a *Aarch64ABICallee) FrameSize() int64 {
	n := int64(len(a.calleeSaves))
	varargs := int64(0)
	if a.Variadic {
		varargs = 192
	}
	pairs := (n + 1) / 2
	return alignUp(16+16*pairs+varargs+a.LocalsSize, 16)
}

// VarargsSaveArea returns the byte offsets (from the post-prologue SP) of
// the 64-byte GPR and 128-byte FPR variadic register save areas, spec §3
// "VarargsRegisterSaveArea". Valid only if a.Variadic.
func (a *Aarch64ABICallee) VarargsSaveArea() (grOffset, fpOffset int64) {
	n := int64(len(a.calleeSaves))
	pairs := (n + 1) / 2
	grOffset = 16 + 16*pairs
	fpOffset = grOffset + 64
	return
}

const smallFrameLimit = 504

// EmitPrologue builds the prologue instruction sequence for the function's
// entry block, spec §4.6 "Prologue".
func (a *Aarch64ABICallee) EmitPrologue() []*Inst {
	frameSize := a.FrameSize()
	var out []*Inst
	if frameSize <= smallFrameLimit {
		out = append(out, NewLdStPair(false, fpVReg, lrVReg, AmodePreIndexOf(spVReg, -frameSize), Size64))
		out = append(out, movSPTo(fpVReg))
	} else {
		out = append(out, subSPImm(16))
		out = append(out, NewLdStPair(false, fpVReg, lrVReg, AmodeRegOffsetOf(spVReg, 0), Size64))
		out = append(out, movSPTo(fpVReg))
		remainder := frameSize - 16
		for remainder > 0 {
			chunk := remainder
			if chunk > 4095 {
				chunk = 4095
			}
			out = append(out, subSPImm(chunk))
			remainder -= chunk
		}
	}
	out = append(out, a.emitCalleeSaveStores()...)
	if a.Variadic {
		out = append(out, a.emitVariadicSaves()...)
	}
	return out
}

// EmitEpilogue mirrors EmitPrologue in reverse, spec §4.6 "Epilogue".
func (a *Aarch64ABICallee) EmitEpilogue() []*Inst {
	frameSize := a.FrameSize()
	var out []*Inst
	out = append(out, a.emitCalleeSaveLoads()...)
	if frameSize <= smallFrameLimit {
		out = append(out, NewLdStPair(true, fpVReg, lrVReg, AmodePostIndexOf(spVReg, frameSize), Size64))
	} else {
		remainder := frameSize - 16
		for remainder > 0 {
			chunk := remainder
			if chunk > 4095 {
				chunk = 4095
			}
			out = append(out, addSPImm(chunk))
			remainder -= chunk
		}
		out = append(out, NewLdStPair(true, fpVReg, lrVReg, AmodeRegOffsetOf(spVReg, 0), Size64))
		out = append(out, addSPImm(16))
	}
	out = append(out, NewRet())
	return out
}

func movSPTo(dst regalloc.VReg) *Inst {
	imm, _ := TryImm12FromU64(0)
	return NewAluRRImm12(AluAdd, dst, spVReg, imm, Size64)
}

func subSPImm(v int64) *Inst {
	imm, _ := TryImm12FromU64(uint64(v))
	return NewAluRRImm12(AluSub, spVReg, spVReg, imm, Size64)
}

func addSPImm(v int64) *Inst {
	imm, _ := TryImm12FromU64(uint64(v))
	return NewAluRRImm12(AluAdd, spVReg, spVReg, imm, Size64)
}

// emitCalleeSaveStores implements spec §4.6 step 3: pair up callee-saves
// in insertion order with STP; an odd trailing register uses STR and
// still reserves 16 bytes for alignment.
func (a *Aarch64ABICallee) emitCalleeSaveStores() []*Inst {
	var out []*Inst
	off := int64(16)
	regs := a.calleeSaves
	for i := 0; i+1 < len(regs); i += 2 {
		r1 := regalloc.FromRealReg(regs[i], regs[i].Class())
		r2 := regalloc.FromRealReg(regs[i+1], regs[i+1].Class())
		if regs[i].Class() == regalloc.RegTypeInt {
			out = append(out, NewLdStPair(false, r1, r2, AmodeRegOffsetOf(spVReg, off), Size64))
		} else {
			out = append(out, NewFpuStore(r1, AmodeRegOffsetOf(spVReg, off), FSize64))
			out = append(out, NewFpuStore(r2, AmodeRegOffsetOf(spVReg, off+8), FSize64))
		}
		off += 16
	}
	if len(regs)%2 == 1 {
		last := regs[len(regs)-1]
		r := regalloc.FromRealReg(last, last.Class())
		if last.Class() == regalloc.RegTypeInt {
			out = append(out, NewStore(r, AmodeRegOffsetOf(spVReg, off), 8))
		} else {
			out = append(out, NewFpuStore(r, AmodeRegOffsetOf(spVReg, off), FSize64))
		}
	}
	return out
}

func (a *Aarch64ABICallee) emitCalleeSaveLoads() []*Inst {
	var out []*Inst
	off := int64(16)
	regs := a.calleeSaves
	for i := 0; i+1 < len(regs); i += 2 {
		r1 := regalloc.FromRealReg(regs[i], regs[i].Class())
		r2 := regalloc.FromRealReg(regs[i+1], regs[i+1].Class())
		if regs[i].Class() == regalloc.RegTypeInt {
			out = append(out, NewLdStPair(true, r1, r2, AmodeRegOffsetOf(spVReg, off), Size64))
		} else {
			out = append(out, NewFpuLoad(r1, AmodeRegOffsetOf(spVReg, off), FSize64))
			out = append(out, NewFpuLoad(r2, AmodeRegOffsetOf(spVReg, off+8), FSize64))
		}
		off += 16
	}
	if len(regs)%2 == 1 {
		last := regs[len(regs)-1]
		r := regalloc.FromRealReg(last, last.Class())
		if last.Class() == regalloc.RegTypeInt {
			out = append(out, NewLoad(r, AmodeRegOffsetOf(spVReg, off), 8, false))
		} else {
			out = append(out, NewFpuLoad(r, AmodeRegOffsetOf(spVReg, off), FSize64))
		}
	}
	return out
}

// emitVariadicSaves stores the incoming X0..X7/V0..V7 argument registers
// into the reserved save area, spec §4.6 "Variadic functions".
func (a *Aarch64ABICallee) emitVariadicSaves() []*Inst {
	grOff, fpOff := a.VarargsSaveArea()
	var out []*Inst
	for i := 0; i < 8; i += 2 {
		r1 := regalloc.FromRealReg(intReal(byte(i)), regalloc.RegTypeInt)
		r2 := regalloc.FromRealReg(intReal(byte(i+1)), regalloc.RegTypeInt)
		out = append(out, NewLdStPair(false, r1, r2, AmodeRegOffsetOf(spVReg, grOff+int64(i)*8), Size64))
	}
	for i := 0; i < 8; i += 2 {
		r1 := regalloc.FromRealReg(floatReal(byte(i)), regalloc.RegTypeFloat)
		r2 := regalloc.FromRealReg(floatReal(byte(i+1)), regalloc.RegTypeFloat)
		out = append(out, NewFpuStore(r1, AmodeRegOffsetOf(spVReg, fpOff+int64(i)*16), FSize128))
		out = append(out, NewFpuStore(r2, AmodeRegOffsetOf(spVReg, fpOff+int64(i)*16+16), FSize128))
	}
	return out
}
