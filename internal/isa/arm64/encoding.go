package arm64

import "github.com/arm64cg/arm64cg/internal/regalloc"

// Encode appends inst's machine-code words to buf, recording any label
// fixup the instruction needs. Grounded directly on the bit-layouts of
// tetratelabs-wazero's backend/isa/arm64/instr_encoding.go, generalized
// from the teacher's wasm-specific instruction set to the full AAPCS64
// instruction set spec §4.3 names. Instructions must already be fully
// register-assigned (AssignRegs) before this is called.
func Encode(i *Inst, buf *MachBuffer) error {
	switch i.Kind {
	case MovRR:
		return encodeMovRR(i, buf)
	case MovZ:
		buf.AppendU32LE(encodeMoveWideImmediate(0b10, i))
	case MovK:
		buf.AppendU32LE(encodeMoveWideImmediate(0b11, i))
	case MovN:
		buf.AppendU32LE(encodeMoveWideImmediate(0b00, i))
	case MovImm:
		return &BackendError{Kind: ErrEncodableImmediate, Msg: "mov_imm must be expanded to movz/movk/movn before encoding"}
	case AluRRR:
		buf.AppendU32LE(encodeAluRRR(i))
	case AluRRImm12:
		buf.AppendU32LE(encodeAddSubtractImmediate(i))
	case AluRRBitmaskImm:
		buf.AppendU32LE(encodeLogicalImmediate(i))
	case AluRRImmShift:
		buf.AppendU32LE(encodeAluRRImmShift(i))
	case AluRRRR:
		buf.AppendU32LE(encodeAluRRRR(i))
	case BitRR:
		buf.AppendU32LE(encodeBitRR(i))
	case CmpRR, CmnRR, TstRR:
		buf.AppendU32LE(encodeAluRRRFlagsOnly(i))
	case CmpImm, CmnImm:
		buf.AppendU32LE(encodeAddSubtractImmediateFlagsOnly(i))
	case TstImm:
		buf.AppendU32LE(encodeLogicalImmediateFlagsOnly(i))
	case CSel:
		buf.AppendU32LE(encodeCSel(i))
	case CSet:
		buf.AppendU32LE(encodeCSet(i))
	case ULoad, SLoad:
		return encodeLoadOrStore(i, buf, true)
	case Store:
		return encodeLoadOrStore(i, buf, false)
	case FpuLoad:
		return encodeFpuLoadOrStore(i, buf, true)
	case FpuStore:
		return encodeFpuLoadOrStore(i, buf, false)
	case LdStPair:
		return encodeLoadStorePair(i, buf)
	case Extend:
		buf.AppendU32LE(encodeExtend(i))
	case FpuRRR:
		buf.AppendU32LE(encodeFpuRRR(i))
	case FpuRR, FCSel:
		buf.AppendU32LE(encodeFpuRROrFCSel(i))
	case FpuMov:
		buf.AppendU32LE(encodeFpuMov(i))
	case FpuCmp:
		buf.AppendU32LE(encodeFpuCmp(i))
	case IntToFpu:
		buf.AppendU32LE(encodeIntToFpu(i))
	case FpuToInt:
		buf.AppendU32LE(encodeFpuToInt(i))
	case B:
		buf.AppendU32LE(0x14000000)
		buf.RecordFixup(buf.Len()-4, i.TargetLabel, FixupB26)
	case Bl:
		buf.AppendU32LE(0x94000000)
		buf.AddRelocation(i.CallSymbol, buf.Len()-4, 0)
	case BCond:
		buf.AppendU32LE(0x54000000 | i.Cond.encoding())
		buf.RecordFixup(buf.Len()-4, i.TargetLabel, FixupB19)
	case Br:
		buf.AppendU32LE(0xD61F0000 | regNumberInEncoding(i.Src.RealReg())<<5)
	case Blr:
		buf.AppendU32LE(0xD63F0000 | regNumberInEncoding(i.Src.RealReg())<<5)
	case Ret:
		buf.AppendU32LE(0xD65F03C0)
	case Cbz:
		buf.AppendU32LE(encodeCbzCbnz(i, 0))
		buf.RecordFixup(buf.Len()-4, i.TargetLabel, FixupB19)
	case Cbnz:
		buf.AppendU32LE(encodeCbzCbnz(i, 1))
		buf.RecordFixup(buf.Len()-4, i.TargetLabel, FixupB19)
	case Udf:
		buf.AppendU32LE(0x00000000)
	case Brk:
		buf.AppendU32LE(0xD4200000)
	case Dmb:
		buf.AppendU32LE(0xD5033BBF) // DMB ISH
	case Adrp:
		buf.AppendU32LE(0x90000000 | regNumberInEncoding(i.Dst.RealReg()))
		buf.AddRelocation(i.CallSymbol, buf.Len()-4, 0)
	case Nop:
		buf.AppendU32LE(0xD503201F)
	case VecRRR:
		buf.AppendU32LE(encodeVecRRR(i))
	case VecMisc, VecLanes:
		buf.AppendU32LE(encodeVecMiscOrLanes(i))
	default:
		return &BackendError{Kind: ErrEncodableImmediate, Msg: "Encode missing a case for this InstKind"}
	}
	return nil
}

func rd(v regalloc.VReg) uint32 { return regNumberInEncoding(v.RealReg()) }

// encodeMovRR: MOV (register) is an alias for ORR (shifted register) with
// the zero register as the first source, per the architecture manual.
func encodeMovRR(i *Inst, buf *MachBuffer) error {
	sf := i.Size.sf()
	word := sf<<31 | 0b01<<29 | 0b01010<<24 | rd(i.Src)<<16 | 31<<5 | rd(i.Dst)
	buf.AppendU32LE(word)
	return nil
}

// encodeMoveWideImmediate covers MOVN (opc=00), MOVZ (opc=10), MOVK
// (opc=11), spec §3's three wide-immediate move kinds.
func encodeMoveWideImmediate(opc uint32, i *Inst) uint32 {
	sf := i.Size.sf()
	hw := uint32(i.Shift16.Shift) / 16
	return sf<<31 | opc<<29 | 0b100101<<23 | hw<<21 | uint32(i.Shift16.Chunk)<<5 | rd(i.Dst)
}

// encodeAluRRR covers ADD/SUB/ADDS/SUBS/AND/ORR/EOR/BIC (shifted register)
// and LSL/LSR/ASR/ROR (register), and SDIV/UDIV (data-processing-2-source).
func encodeAluRRR(i *Inst) uint32 {
	sf := i.Size.sf()
	rn := rd(i.Src)
	rm := rd(i.Src2)
	rdst := rd(i.Dst)
	switch i.AluOp {
	case AluAdd, AluAddS, AluSub, AluSubS:
		op := uint32(0)
		if i.AluOp == AluSub || i.AluOp == AluSubS {
			op = 1
		}
		s := uint32(0)
		if i.AluOp == AluAddS || i.AluOp == AluSubS {
			s = 1
		}
		return sf<<31 | op<<30 | s<<29 | 0b01011<<24 | rm<<16 | rn<<5 | rdst
	case AluAnd, AluOrr, AluEor, AluBic:
		opc := map[AluOp]uint32{AluAnd: 0, AluOrr: 1, AluEor: 2, AluBic: 0}[i.AluOp]
		n := uint32(0)
		if i.AluOp == AluBic {
			n = 1
		}
		return sf<<31 | opc<<29 | 0b01010<<24 | n<<21 | rm<<16 | rn<<5 | rdst
	case AluLsl, AluLsr, AluAsr, AluRotR:
		op2 := map[AluOp]uint32{AluLsl: 0b1000, AluLsr: 0b1001, AluAsr: 0b1010, AluRotR: 0b1011}[i.AluOp]
		return sf<<31 | 1<<30 | 1<<28 | 0b0110<<21 | rm<<16 | op2<<10 | rn<<5 | rdst
	case AluSDiv, AluUDiv:
		op := uint32(0b000011)
		if i.AluOp == AluSDiv {
			op = 0b000010
		}
		return sf<<31 | 1<<30 | 1<<28 | 0b0110<<21 | rm<<16 | op<<10 | rn<<5 | rdst
	}
	return 0
}

// encodeAluRRRFlagsOnly emits CMP/CMN (shifted register) as an alias of
// SUBS/ADDS with a discarded destination (rdst=11111), and TST as an
// alias of ANDS.
func encodeAluRRRFlagsOnly(i *Inst) uint32 {
	sf := i.Size.sf()
	rn := rd(i.Src)
	rm := rd(i.Src2)
	switch i.Kind {
	case CmpRR:
		return sf<<31 | 1<<30 | 1<<29 | 0b01011<<24 | rm<<16 | rn<<5 | 31
	case CmnRR:
		return sf<<31 | 0<<30 | 1<<29 | 0b01011<<24 | rm<<16 | rn<<5 | 31
	default: // TstRR
		return sf<<31 | 0b11<<29 | 0b01010<<24 | rm<<16 | rn<<5 | 31
	}
}

// encodeAddSubtractImmediate covers ADD/SUB/ADDS/SUBS (immediate).
func encodeAddSubtractImmediate(i *Inst) uint32 {
	sf := i.Size.sf()
	op := uint32(0)
	if i.AluOp == AluSub || i.AluOp == AluSubS {
		op = 1
	}
	s := uint32(0)
	if i.AluOp == AluAddS || i.AluOp == AluSubS {
		s = 1
	}
	imm12, shBit := i.Imm12.encoding()
	return sf<<31 | op<<30 | s<<29 | 0b100010<<23 | shBit<<22 | imm12<<10 | rd(i.Src)<<5 | rd(i.Dst)
}

// encodeAddSubtractImmediateFlagsOnly: CMP/CMN (immediate), discarded dest.
func encodeAddSubtractImmediateFlagsOnly(i *Inst) uint32 {
	sf := i.Size.sf()
	op := uint32(0)
	if i.Kind == CmpImm {
		op = 1
	}
	imm12, shBit := i.Imm12.encoding()
	return sf<<31 | op<<30 | 1<<29 | 0b100010<<23 | shBit<<22 | imm12<<10 | rd(i.Src)<<5 | 31
}

// encodeLogicalImmediate covers AND/ORR/EOR (immediate).
func encodeLogicalImmediate(i *Inst) uint32 {
	sf := i.Size.sf()
	opc := map[AluOp]uint32{AluAnd: 0, AluOrr: 1, AluEor: 2}[i.AluOp]
	n, immr, imms := i.ImmLogic.encoding()
	return sf<<31 | opc<<29 | 0b100100<<23 | n<<22 | immr<<16 | imms<<10 | rd(i.Src)<<5 | rd(i.Dst)
}

// encodeLogicalImmediateFlagsOnly: TST (immediate), alias of ANDS.
func encodeLogicalImmediateFlagsOnly(i *Inst) uint32 {
	sf := i.Size.sf()
	n, immr, imms := i.ImmLogic.encoding()
	return sf<<31 | 0b11<<29 | 0b100100<<23 | n<<22 | immr<<16 | imms<<10 | rd(i.Src)<<5 | 31
}

// encodeAluRRImmShift covers LSL/LSR/ASR (immediate), which the
// architecture expresses as UBFM/SBFM aliases and which are encoded here
// in that bitfield form; ROR (immediate) is encoded as EXTR.
func encodeAluRRImmShift(i *Inst) uint32 {
	sf := i.Size.sf()
	n := sf
	amount := uint32(i.ImmShift.Value())
	bits := uint32(i.Size.bits())
	switch i.AluOp {
	case AluLsl:
		immr := (bits - amount) % bits
		imms := bits - 1 - amount
		return sf<<31 | 0b10<<29 | 0b100110<<23 | n<<22 | immr<<16 | imms<<10 | rd(i.Src)<<5 | rd(i.Dst)
	case AluLsr:
		return sf<<31 | 0b10<<29 | 0b100110<<23 | n<<22 | amount<<16 | (bits-1)<<10 | rd(i.Src)<<5 | rd(i.Dst)
	case AluAsr:
		return sf<<31 | 0b00<<29 | 0b100110<<23 | n<<22 | amount<<16 | (bits-1)<<10 | rd(i.Src)<<5 | rd(i.Dst)
	default: // AluRotR (EXTR with same source twice)
		return sf<<31 | 0b00<<29 | 0b100111<<23 | n<<22 | 1<<21 | rd(i.Src)<<16 | amount<<10 | rd(i.Src)<<5 | rd(i.Dst)
	}
}

// encodeAluRRRR covers MADD/MSUB (data-processing-3-source).
func encodeAluRRRR(i *Inst) uint32 {
	sf := i.Size.sf()
	o0 := uint32(0)
	if i.AluOp == AluMsub {
		o0 = 1
	}
	return sf<<31 | 0b11011<<24 | rd(i.Src2)<<16 | o0<<15 | rd(i.Addend)<<10 | rd(i.Src)<<5 | rd(i.Dst)
}

// encodeBitRR covers CLZ, RBIT, REV16, REV32 (REV), REV64.
func encodeBitRR(i *Inst) uint32 {
	sf := i.Size.sf()
	var opcode2 uint32
	switch i.BitOp {
	case BitRbit:
		opcode2 = 0b000000
	case BitRev16:
		opcode2 = 0b000001
	case BitRev32:
		opcode2 = 0b000010
	case BitRev64:
		opcode2 = 0b000011
	case BitClz:
		opcode2 = 0b000100
	}
	return sf<<31 | 0b1_0110_1100_0000<<16 | opcode2<<10 | rd(i.Src)<<5 | rd(i.Dst)
}

// encodeCSel covers CSEL (condition field carries inverted-else semantics
// the same way the architecture does: ifFalse is implicit via !cond).
func encodeCSel(i *Inst) uint32 {
	sf := i.Size.sf()
	return sf<<31 | 0b0011010100<<21 | rd(i.Src2)<<16 | i.Cond.encoding()<<12 | rd(i.Src)<<5 | rd(i.Dst)
}

// encodeCSet: CSET is CSINC Xd, XZR, XZR, invert(cond).
func encodeCSet(i *Inst) uint32 {
	sf := i.Size.sf()
	inv := i.Cond.Invert().encoding()
	return sf<<31 | 0b0011010100<<21 | 31<<16 | inv<<12 | 1<<10 | 31<<5 | rd(i.Dst)
}

func encodeExtend(i *Inst) uint32 {
	rn := rd(i.Src)
	rdst := rd(i.Dst)
	switch i.ExtKind {
	case ExtUXTB:
		return 0b0101001100000000000111<<10 | rn<<5 | rdst
	case ExtUXTH:
		return 0b0101001100000000001111<<10 | rn<<5 | rdst
	case ExtSXTB:
		return 1<<31 | 0b0001001100000000000111<<10 | rn<<5 | rdst
	case ExtSXTH:
		return 1<<31 | 0b0001001100000000001111<<10 | rn<<5 | rdst
	case ExtSXTW:
		return 1<<31 | 0b0001001101000000011111<<10 | rn<<5 | rdst
	default: // ExtUXTW == MOV Wn, Wn (zero-extend is implicit in a 32-bit write).
		return 0b0101010<<24 | rn<<16 | 31<<5 | rdst
	}
}

// encodeCbzCbnz implements CBZ (op=0) / CBNZ (op=1); the 19-bit offset
// field is left zero here and patched by ResolveFixups.
func encodeCbzCbnz(i *Inst, op uint32) uint32 {
	sf := i.Size.sf()
	return sf<<31 | 0b011010<<25 | op<<24 | rd(i.Src)
}

// --- Memory ---

// amodeBits lowers an Amode into the (Rn, imm-or-Rm, variant) shape the
// load/store encodings need. sizeBytes is the transfer width in bytes.
func amodeBits(a Amode, sizeBytes int) (rn uint32, immOrRm uint32, extend uint32, variant byte) {
	rn = rd(a.Base)
	switch a.Kind {
	case AmodeRegOffset:
		immOrRm = uint32(a.Offset / int64(sizeBytes))
		variant = 0 // unsigned-immediate class
	case AmodeRegReg, AmodeRegExtended, AmodeRegScaled:
		immOrRm = rd(a.Index)
		variant = 1 // register-offset class
		if a.Kind == AmodeRegExtended {
			if a.Extend == ExtendSXTW {
				extend = 0b110
			} else {
				extend = 0b010
			}
		}
	case AmodePreIndex:
		immOrRm = uint32(a.Offset) & 0x1FF
		variant = 2
	case AmodePostIndex:
		immOrRm = uint32(a.Offset) & 0x1FF
		variant = 3
	}
	return
}

// encodeLoadOrStore covers LDR/LDRB/LDRH/LDRSB/LDRSH/LDRSW and STR/STRB/
// STRH (unsigned-immediate and register-offset forms; spec §3/§4.3).
func encodeLoadOrStore(i *Inst, buf *MachBuffer, isLoad bool) error {
	bytes := int(i.ImmI64)
	size := map[int]uint32{1: 0b00, 2: 0b01, 4: 0b10, 8: 0b11}[bytes]
	var opc uint32
	if isLoad {
		if i.Kind == SLoad {
			opc = 0b10 // LDRSW/LDRSH/LDRSB (64-bit dest)
			if bytes == 8 {
				return &BackendError{Kind: ErrEncodableImmediate, Msg: "no 64-bit sign-extending load exists"}
			}
		} else {
			opc = 0b01
		}
	} else {
		opc = 0b00
	}
	rn, immOrRm, extend, variant := amodeBits(i.Amode, bytes)
	var rt uint32
	if isLoad {
		rt = rd(i.Dst)
	} else {
		rt = rd(i.Src)
	}
	switch variant {
	case 0:
		if immOrRm > 0xFFF {
			return &BackendError{Kind: ErrOutOfRangeOffset, Msg: "load/store unsigned-immediate offset out of range"}
		}
		buf.AppendU32LE(size<<30 | 0b111<<27 | 1<<24 | opc<<22 | immOrRm<<10 | rn<<5 | rt)
	case 1:
		buf.AppendU32LE(size<<30 | 0b111<<27 | 1<<24 | opc<<22 | 1<<21 | immOrRm<<16 | extend<<13 | 1<<12 | 1<<11 | rn<<5 | rt)
	case 2: // pre-index
		buf.AppendU32LE(size<<30 | 0b111<<27 | opc<<22 | (immOrRm&0x1FF)<<12 | 0b11<<10 | rn<<5 | rt)
	case 3: // post-index
		buf.AppendU32LE(size<<30 | 0b111<<27 | opc<<22 | (immOrRm&0x1FF)<<12 | 0b01<<10 | rn<<5 | rt)
	}
	return nil
}

func encodeFpuLoadOrStore(i *Inst, buf *MachBuffer, isLoad bool) error {
	sizeBytes := map[FpuOperandSize]int{FSize32: 4, FSize64: 8, FSize128: 16}[i.FSize]
	size := map[int]uint32{4: 0b10, 8: 0b11, 16: 0b00}[sizeBytes]
	opcHi := uint32(0)
	if sizeBytes == 16 {
		opcHi = 1
	}
	opc := uint32(0b01)
	if !isLoad {
		opc = 0b00
	}
	opc |= opcHi << 1
	rn, immOrRm, extend, variant := amodeBits(i.Amode, sizeBytes)
	var rt uint32
	if isLoad {
		rt = rd(i.Dst)
	} else {
		rt = rd(i.Src)
	}
	switch variant {
	case 0:
		if immOrRm > 0xFFF {
			return &BackendError{Kind: ErrOutOfRangeOffset, Msg: "FP load/store unsigned-immediate offset out of range"}
		}
		buf.AppendU32LE(size<<30 | 0b111<<27 | 1<<26 | 1<<24 | opc<<22 | immOrRm<<10 | rn<<5 | rt)
	case 1:
		buf.AppendU32LE(size<<30 | 0b111<<27 | 1<<26 | 1<<24 | opc<<22 | 1<<21 | immOrRm<<16 | extend<<13 | 1<<12 | 1<<11 | rn<<5 | rt)
	default:
		return &BackendError{Kind: ErrOutOfRangeOffset, Msg: "FP pre/post-index addressing not supported by this encoder"}
	}
	return nil
}

// encodeLoadStorePair covers STP/LDP (signed offset, pre-index, post-
// index), spec §3/§4.3/§4.6 (prologue/epilogue + general spill pairs).
func encodeLoadStorePair(i *Inst, buf *MachBuffer) error {
	opc := uint32(0b10) // 64-bit GPR pair
	l := uint32(0)
	if i.Load {
		l = 1
	}
	var variant uint32
	switch i.Amode.Kind {
	case AmodeRegOffset:
		variant = 0b010
	case AmodePreIndex:
		variant = 0b011
	case AmodePostIndex:
		variant = 0b001
	default:
		return &BackendError{Kind: ErrOutOfRangeOffset, Msg: "STP/LDP requires an offset/pre/post-index amode"}
	}
	if !offsetFitsPairImm7(i.Amode.Offset) {
		return &BackendError{Kind: ErrOutOfRangeOffset, Msg: "STP/LDP imm7 offset out of range"}
	}
	imm7 := uint32(i.Amode.Offset/8) & 0x7F
	buf.AppendU32LE(opc<<30 | 0b101<<27 | variant<<24 | l<<22 | imm7<<15 | rd(i.Dst2)<<10 | rd(i.Amode.Base)<<5 | rd(i.Dst))
	return nil
}

// --- Floating point / SIMD scalar ---

func fpuTypeBits(f FpuOperandSize) uint32 {
	if f == FSize64 {
		return 0b01
	}
	return 0b00
}

func encodeFpuRRR(i *Inst) uint32 {
	opcode := map[FpuBinOp]uint32{FpuMul: 0b0000, FpuDiv: 0b0001, FpuAdd: 0b0010, FpuSub: 0b0011, FpuMax: 0b0100, FpuMin: 0b0101}[i.FpuBin]
	return 0b1<<30 | 1<<29 | 0b11110<<24 | fpuTypeBits(i.FSize)<<22 | 1<<21 | rd(i.Src2)<<16 | opcode<<12 | 1<<11 | 1<<10 | rd(i.Src)<<5 | rd(i.Dst)
}

func encodeFpuRROrFCSel(i *Inst) uint32 {
	if i.Kind == FCSel {
		return 1<<30 | 1<<29 | 0b11110<<24 | fpuTypeBits(i.FSize)<<22 | 1<<21 | rd(i.Src2)<<16 | i.Cond.encoding()<<12 | 0b11<<10 | rd(i.Src)<<5 | rd(i.Dst)
	}
	opcode := map[FpuUnOp]uint32{FpuAbs: 0b000001, FpuNeg: 0b000010, FpuSqrt: 0b000011, FpuRintN: 0b001000, FpuRintP: 0b001100, FpuRintM: 0b001101, FpuRintZ: 0b001011}[i.FpuUn]
	return 1<<30 | 1<<29 | 0b11110<<24 | fpuTypeBits(i.FSize)<<22 | 1<<21 | opcode<<15 | 1<<14 | 1<<12 | rd(i.Src)<<5 | rd(i.Dst)
}

// encodeFpuMov is the floating-point-data-processing-1-source FMOV
// (register, scalar): same shape as encodeFpuRROrFCSel's FpuRR branch but
// with opcode bits 15-20 fixed at zero.
func encodeFpuMov(i *Inst) uint32 {
	return 1<<30 | 1<<29 | 0b11110<<24 | fpuTypeBits(i.FSize)<<22 | 1<<21 | 1<<14 | 1<<12 | rd(i.Src)<<5 | rd(i.Dst)
}

func encodeFpuCmp(i *Inst) uint32 {
	return 1<<30 | 1<<29 | 0b11110<<24 | fpuTypeBits(i.FSize)<<22 | 1<<21 | rd(i.Src2)<<16 | 0b001000<<10 | rd(i.Src)<<5
}

// encodeIntToFpu: SCVTF/UCVTF (scalar, integer), SetFlags distinguishes
// signed (false) vs unsigned (true) per the NewScvtf/NewUcvtf constructors.
func encodeIntToFpu(i *Inst) uint32 {
	sf := i.Size.sf()
	u := uint32(0)
	if i.SetFlags {
		u = 1
	}
	return sf<<31 | u<<29 | 0b11110<<24 | fpuTypeBits(i.FSize)<<22 | 1<<21 | 0b00<<19 | 0b010<<16 | rd(i.Src)<<5 | rd(i.Dst)
}

// encodeFpuToInt: FCVTZS/FCVTZU (scalar, integer, round-to-zero).
func encodeFpuToInt(i *Inst) uint32 {
	sf := i.Size.sf()
	u := uint32(0)
	if i.SetFlags {
		u = 1
	}
	return sf<<31 | u<<29 | 0b11110<<24 | fpuTypeBits(i.FSize)<<22 | 1<<21 | 0b11<<16 | 0b000000<<10 | rd(i.Src)<<5 | rd(i.Dst)
}

// --- Vector SIMD (representative subset named in SPEC_FULL.md) ---

func vecQAndSize(a VecElemSize) (q, size uint32) {
	switch a {
	case VecArr8B:
		return 0, 0b00
	case VecArr16B:
		return 1, 0b00
	case VecArr4H:
		return 0, 0b01
	case VecArr8H:
		return 1, 0b01
	case VecArr2S:
		return 0, 0b10
	case VecArr4S:
		return 1, 0b10
	default: // VecArr2D
		return 1, 0b11
	}
}

func encodeVecRRR(i *Inst) uint32 {
	q, size := vecQAndSize(i.VecArr)
	var u, opcode uint32
	switch i.VecOp {
	case VecUzp1:
		opcode = 0b000110
	case VecUzp2:
		opcode = 0b010110
	case VecZip1:
		opcode = 0b000111
	case VecZip2:
		opcode = 0b010111
	case VecTrn1:
		opcode = 0b001010
	case VecTrn2:
		opcode = 0b011010
	}
	return q<<30 | u<<29 | 0b01110<<24 | size<<22 | 1<<21 | rd(i.Src2)<<16 | opcode<<11 | 1<<10 | rd(i.Src)<<5 | rd(i.Dst)
}

func encodeVecMiscOrLanes(i *Inst) uint32 {
	q, size := vecQAndSize(i.VecArr)
	var u, opcode uint32
	switch i.VecOp {
	case VecDup:
		// DUP (general): broadcasts a GPR, distinct shape from DUP (element).
		imm5 := dupImm5(i.VecArr)
		return q<<30 | 0b001110000<<21 | imm5<<16 | 0b000011<<10 | rd(i.Src)<<5 | rd(i.Dst)
	case VecAddv:
		u, opcode = 1, 0b11011
	case VecUmaxv:
		u, opcode = 1, 0b01010
	case VecUminv:
		u, opcode = 1, 0b11010
	case VecSshll, VecUshll:
		if i.VecOp == VecUshll {
			u = 1
		}
		return q<<30 | u<<29 | 0b011110<<23 | size<<22 | 1<<21 | 0b101001<<10 | rd(i.Src)<<5 | rd(i.Dst)
	}
	return q<<30 | u<<29 | 0b01110<<24 | size<<22 | 0b10000<<17 | opcode<<12 | 1<<10 | rd(i.Src)<<5 | rd(i.Dst)
}

// dupImm5 builds the imm5 field selecting DUP's destination lane width
// (bit position of the set bit encodes element size: 1=B,2=H,4=S,8=D).
func dupImm5(a VecElemSize) uint32 {
	switch a {
	case VecArr8B, VecArr16B:
		return 0b00001
	case VecArr4H, VecArr8H:
		return 0b00010
	case VecArr2S, VecArr4S:
		return 0b00100
	default:
		return 0b01000
	}
}
