package arm64

import (
	"fmt"
	"strings"

	"github.com/arm64cg/arm64cg/internal/regalloc"
)

// InstKind discriminates the Inst sum type (spec §3). Following the
// teacher's own compression technique, closely related mnemonics that
// share an encoding shape are grouped under one InstKind with an opcode
// sub-enum (AluOp, BitOp, FpuOp, VecOp, ...) — e.g. add_rr/sub_rr/and_rr
// are all AluRRR with a different AluOp. Inst.String always emits the
// spec-level mnemonic.
type InstKind byte

const (
	// Moves and wide-immediate moves.
	MovRR InstKind = iota
	MovZ
	MovK // use-def: preserves the other three 16-bit halves.
	MovN
	MovImm // meta-instruction: materializes an arbitrary 32/64-bit immediate.
	FpuMov

	// Integer ALU: register-register, register-immediate(12), register-
	// bitmask-immediate, register-immediate-shift, register-extended.
	AluRRR
	AluRRImm12
	AluRRBitmaskImm
	AluRRImmShift
	AluRRRExtend
	AluRRRR // madd/msub/smull/umull/smulh/umulh

	// Bit manipulation.
	BitRR

	// Comparisons (write flags only, no GPR def).
	CmpRR
	CmpImm
	CmnRR
	CmnImm
	TstRR
	TstImm

	// Conditional select / set.
	CSel
	FCSel
	CSet

	// Memory.
	ULoad
	SLoad
	Store
	FpuLoad
	FpuStore
	LdStPair // STP/LDP, Load field in Inst distinguishes direction.
	LdAcqStRel

	// Sign/zero extension.
	Extend

	// Floating point scalar/vector.
	FpuRRR
	FpuRR
	FpuCmp
	Fcvt
	IntToFpu
	FpuToInt

	// Vector SIMD.
	VecRRR
	VecMisc
	VecLanes
	VecShiftImm
	VecTbl2

	// Branches / calls / traps / misc.
	B
	BCond
	Bl
	Br
	Blr
	Ret
	Cbz
	Cbnz
	Udf
	Brk
	Dmb
	Adrp
	Nop

	numInstKinds
)

type AluOp byte

const (
	AluAdd AluOp = iota
	AluAddS
	AluSub
	AluSubS
	AluAnd
	AluOrr
	AluEor
	AluBic
	AluLsl
	AluLsr
	AluAsr
	AluRotR
	AluMadd
	AluMsub
	AluSMulH
	AluUMulH
	AluSMull
	AluUMull
	AluSDiv
	AluUDiv
)

func (o AluOp) String() string {
	names := map[AluOp]string{
		AluAdd: "add", AluAddS: "adds", AluSub: "sub", AluSubS: "subs",
		AluAnd: "and", AluOrr: "orr", AluEor: "eor", AluBic: "bic",
		AluLsl: "lsl", AluLsr: "lsr", AluAsr: "asr", AluRotR: "ror",
		AluMadd: "madd", AluMsub: "msub", AluSMulH: "smulh", AluUMulH: "umulh",
		AluSMull: "smull", AluUMull: "umull", AluSDiv: "sdiv", AluUDiv: "udiv",
	}
	return names[o]
}

type BitOp byte

const (
	BitClz BitOp = iota
	BitRbit
	BitRev16
	BitRev32
	BitRev64
)

func (o BitOp) String() string {
	return [...]string{"clz", "rbit", "rev16", "rev32", "rev64"}[o]
}

type ExtendKind byte

const (
	ExtSXTB ExtendKind = iota
	ExtUXTB
	ExtSXTH
	ExtUXTH
	ExtSXTW
	ExtUXTW
)

func (e ExtendKind) String() string {
	return [...]string{"sxtb", "uxtb", "sxth", "uxth", "sxtw", "uxtw"}[e]
}

type FpuBinOp byte

const (
	FpuAdd FpuBinOp = iota
	FpuSub
	FpuMul
	FpuDiv
	FpuMin
	FpuMax
)

func (o FpuBinOp) String() string {
	return [...]string{"fadd", "fsub", "fmul", "fdiv", "fmin", "fmax"}[o]
}

type FpuUnOp byte

const (
	FpuAbs FpuUnOp = iota
	FpuNeg
	FpuSqrt
	FpuRintN
	FpuRintZ
	FpuRintP
	FpuRintM
)

func (o FpuUnOp) String() string {
	return [...]string{"fabs", "fneg", "fsqrt", "frintn", "frintz", "frintp", "frintm"}[o]
}

type VecOp byte

const (
	VecDup VecOp = iota
	VecDupLane
	VecExt
	VecUzp1
	VecUzp2
	VecZip1
	VecZip2
	VecTrn1
	VecTrn2
	VecSshll
	VecUshll
	VecSqxtn
	VecSqxtun
	VecUqxtn
	VecFcvtl
	VecFcvtn
	VecInsertLane
	VecExtractLane
	VecAddv
	VecUmaxv
	VecUminv
)

func (o VecOp) String() string {
	names := map[VecOp]string{
		VecDup: "vec_dup", VecDupLane: "vec_dup_lane", VecExt: "vec_ext",
		VecUzp1: "uzp1", VecUzp2: "uzp2", VecZip1: "zip1", VecZip2: "zip2",
		VecTrn1: "trn1", VecTrn2: "trn2", VecSshll: "vec_sshll", VecUshll: "vec_ushll",
		VecSqxtn: "vec_sqxtn", VecSqxtun: "vec_sqxtun", VecUqxtn: "vec_uqxtn",
		VecFcvtl: "vec_fcvtl", VecFcvtn: "vec_fcvtn",
		VecInsertLane: "vec_insert_lane", VecExtractLane: "vec_extract_lane",
		VecAddv: "vec_addv", VecUmaxv: "vec_umaxv", VecUminv: "vec_uminv",
	}
	return names[o]
}

// Inst is one instance of the Inst sum type, spec §3. Fields are
// interpreted according to Kind; unused fields are zero. This mirrors
// the teacher's single-struct-with-kind-tag representation
// (tetratelabs-wazero backend/isa/arm64/instr.go) generalized to AAPCS64
// semantics instead of the teacher's wasm calling convention.
type Inst struct {
	Kind InstKind
	Size OperandSize
	FSize FpuOperandSize

	AluOp    AluOp
	BitOp    BitOp
	ExtKind  ExtendKind
	FpuBin   FpuBinOp
	FpuUn    FpuUnOp
	VecOp    VecOp
	VecArr   VecElemSize
	Cond     CondCode
	High     bool // widening vector ops: upper-half vs lower-half input.
	Load     bool // LdStPair/LdAcqStRel direction.
	SetFlags bool

	Dst, Dst2      regalloc.VReg // Dst2 valid for LdStPair (paired def).
	Src, Src2      regalloc.VReg
	Addend         regalloc.VReg // madd/msub third source.
	Base           regalloc.VReg

	Imm12    Imm12
	ImmLogic ImmLogic
	ImmShift ImmShift
	Shift16  Shifted16
	FpImm    FpImm8
	ImmI64   int64 // mov_imm materialization target, adrp page offset, lane index.

	Amode Amode

	TargetLabel  uint32 // B/BL/CBZ/CBNZ/BCond/ADRP target.
	FallthroughL uint32 // BCond's "else" edge when not laid out next.
	CallSymbol   string // BL direct-call symbol (relocated).

	// Linked-list pointers in wazero's intrusive-list style. No pass in
	// this package sets or reads them: VCodeBlock keeps its instructions
	// in the Insts slice.
	prev, next *Inst
}

// --- Constructors. Each takes registers the caller has already chosen
// and returns the Inst to be pushed into the current VCode block. ---

func NewMovRR(dst, src regalloc.VReg, size OperandSize) *Inst {
	return &Inst{Kind: MovRR, Dst: dst, Src: src, Size: size}
}

func NewMovZ(dst regalloc.VReg, chunk Shifted16, size OperandSize) *Inst {
	return &Inst{Kind: MovZ, Dst: dst, Shift16: chunk, Size: size}
}

// NewMovK is use-def: it reads dst (other halves) before writing it.
func NewMovK(dst regalloc.VReg, chunk Shifted16, size OperandSize) *Inst {
	return &Inst{Kind: MovK, Dst: dst, Src: dst, Shift16: chunk, Size: size}
}

func NewMovN(dst regalloc.VReg, chunk Shifted16, size OperandSize) *Inst {
	return &Inst{Kind: MovN, Dst: dst, Shift16: chunk, Size: size}
}

func NewMovImm(dst regalloc.VReg, v int64, size OperandSize) *Inst {
	return &Inst{Kind: MovImm, Dst: dst, ImmI64: v, Size: size}
}

func NewAluRRR(op AluOp, dst, src1, src2 regalloc.VReg, size OperandSize) *Inst {
	return &Inst{Kind: AluRRR, AluOp: op, Dst: dst, Src: src1, Src2: src2, Size: size}
}

func NewAluRRImm12(op AluOp, dst, src regalloc.VReg, imm Imm12, size OperandSize) *Inst {
	return &Inst{Kind: AluRRImm12, AluOp: op, Dst: dst, Src: src, Imm12: imm, Size: size}
}

func NewAluRRBitmaskImm(op AluOp, dst, src regalloc.VReg, imm ImmLogic, size OperandSize) *Inst {
	return &Inst{Kind: AluRRBitmaskImm, AluOp: op, Dst: dst, Src: src, ImmLogic: imm, Size: size}
}

func NewAluRRImmShift(op AluOp, dst, src regalloc.VReg, sh ImmShift, size OperandSize) *Inst {
	return &Inst{Kind: AluRRImmShift, AluOp: op, Dst: dst, Src: src, ImmShift: sh, Size: size}
}

// NewMulAccum builds madd/msub: dst = addend +/- src1*src2.
func NewMulAccum(op AluOp, dst, src1, src2, addend regalloc.VReg, size OperandSize) *Inst {
	return &Inst{Kind: AluRRRR, AluOp: op, Dst: dst, Src: src1, Src2: src2, Addend: addend, Size: size}
}

func NewBitRR(op BitOp, dst, src regalloc.VReg, size OperandSize) *Inst {
	return &Inst{Kind: BitRR, BitOp: op, Dst: dst, Src: src, Size: size}
}

func NewCmpRR(src1, src2 regalloc.VReg, size OperandSize) *Inst {
	return &Inst{Kind: CmpRR, Src: src1, Src2: src2, Size: size}
}

func NewCmpImm(src regalloc.VReg, imm Imm12, size OperandSize) *Inst {
	return &Inst{Kind: CmpImm, Src: src, Imm12: imm, Size: size}
}

func NewTstRR(src1, src2 regalloc.VReg, size OperandSize) *Inst {
	return &Inst{Kind: TstRR, Src: src1, Src2: src2, Size: size}
}

func NewTstImm(src regalloc.VReg, imm ImmLogic, size OperandSize) *Inst {
	return &Inst{Kind: TstImm, Src: src, ImmLogic: imm, Size: size}
}

func NewCmnRR(src1, src2 regalloc.VReg, size OperandSize) *Inst {
	return &Inst{Kind: CmnRR, Src: src1, Src2: src2, Size: size}
}

func NewCmnImm(src regalloc.VReg, imm Imm12, size OperandSize) *Inst {
	return &Inst{Kind: CmnImm, Src: src, Imm12: imm, Size: size}
}

func NewCSel(dst, ifTrue, ifFalse regalloc.VReg, cond CondCode, size OperandSize) *Inst {
	return &Inst{Kind: CSel, Dst: dst, Src: ifTrue, Src2: ifFalse, Cond: cond, Size: size}
}

func NewFCSel(dst, ifTrue, ifFalse regalloc.VReg, cond CondCode, fsize FpuOperandSize) *Inst {
	return &Inst{Kind: FCSel, Dst: dst, Src: ifTrue, Src2: ifFalse, Cond: cond, FSize: fsize}
}

func NewCSet(dst regalloc.VReg, cond CondCode) *Inst {
	return &Inst{Kind: CSet, Dst: dst, Cond: cond}
}

func NewLoad(dst regalloc.VReg, amode Amode, bytes int, signed bool) *Inst {
	if signed {
		return &Inst{Kind: SLoad, Dst: dst, Amode: amode, ImmI64: int64(bytes)}
	}
	return &Inst{Kind: ULoad, Dst: dst, Amode: amode, ImmI64: int64(bytes)}
}

func NewStore(src regalloc.VReg, amode Amode, bytes int) *Inst {
	return &Inst{Kind: Store, Src: src, Amode: amode, ImmI64: int64(bytes)}
}

func NewFpuLoad(dst regalloc.VReg, amode Amode, fsize FpuOperandSize) *Inst {
	return &Inst{Kind: FpuLoad, Dst: dst, Amode: amode, FSize: fsize}
}

func NewFpuStore(src regalloc.VReg, amode Amode, fsize FpuOperandSize) *Inst {
	return &Inst{Kind: FpuStore, Src: src, Amode: amode, FSize: fsize}
}

// NewLdStPair builds STP (load=false) or LDP (load=true). amode carries
// the pre/post-indexed or plain offset addressing mode; Dst/Dst2 (for
// load) or Src/Src2 (for store, reusing Dst/Dst2 fields) name the pair.
func NewLdStPair(load bool, r1, r2 regalloc.VReg, amode Amode, size OperandSize) *Inst {
	return &Inst{Kind: LdStPair, Load: load, Dst: r1, Dst2: r2, Amode: amode, Size: size}
}

func NewExtend(dst, src regalloc.VReg, kind ExtendKind) *Inst {
	return &Inst{Kind: Extend, Dst: dst, Src: src, ExtKind: kind}
}

func NewFpuRRR(op FpuBinOp, dst, src1, src2 regalloc.VReg, fsize FpuOperandSize) *Inst {
	return &Inst{Kind: FpuRRR, FpuBin: op, Dst: dst, Src: src1, Src2: src2, FSize: fsize}
}

func NewFpuRR(op FpuUnOp, dst, src regalloc.VReg, fsize FpuOperandSize) *Inst {
	return &Inst{Kind: FpuRR, FpuUn: op, Dst: dst, Src: src, FSize: fsize}
}

// NewFpuMov is a plain scalar FMOV register-register move, distinct from
// FpuRR's unary ops (FABS/FNEG/...) which all clear or flip bits rather
// than copy them unchanged.
func NewFpuMov(dst, src regalloc.VReg, fsize FpuOperandSize) *Inst {
	return &Inst{Kind: FpuMov, Dst: dst, Src: src, FSize: fsize}
}

func NewFpuCmp(src1, src2 regalloc.VReg, fsize FpuOperandSize) *Inst {
	return &Inst{Kind: FpuCmp, Src: src1, Src2: src2, FSize: fsize}
}

func NewScvtf(dst, src regalloc.VReg, srcSize OperandSize, dstFSize FpuOperandSize) *Inst {
	return &Inst{Kind: IntToFpu, Dst: dst, Src: src, Size: srcSize, FSize: dstFSize, SetFlags: false}
}

func NewUcvtf(dst, src regalloc.VReg, srcSize OperandSize, dstFSize FpuOperandSize) *Inst {
	return &Inst{Kind: IntToFpu, Dst: dst, Src: src, Size: srcSize, FSize: dstFSize, SetFlags: true}
}

func NewFcvtzs(dst, src regalloc.VReg, srcFSize FpuOperandSize, dstSize OperandSize) *Inst {
	return &Inst{Kind: FpuToInt, Dst: dst, Src: src, FSize: srcFSize, Size: dstSize, SetFlags: false}
}

func NewFcvtzu(dst, src regalloc.VReg, srcFSize FpuOperandSize, dstSize OperandSize) *Inst {
	return &Inst{Kind: FpuToInt, Dst: dst, Src: src, FSize: srcFSize, Size: dstSize, SetFlags: true}
}

func NewVecRRR(op VecOp, dst, src1, src2 regalloc.VReg, arr VecElemSize) *Inst {
	return &Inst{Kind: VecRRR, VecOp: op, Dst: dst, Src: src1, Src2: src2, VecArr: arr}
}

func NewVecMisc(op VecOp, dst, src regalloc.VReg, arr VecElemSize, high bool) *Inst {
	return &Inst{Kind: VecMisc, VecOp: op, Dst: dst, Src: src, VecArr: arr, High: high}
}

func NewVecDup(dst, src regalloc.VReg, arr VecElemSize) *Inst {
	return &Inst{Kind: VecLanes, VecOp: VecDup, Dst: dst, Src: src, VecArr: arr}
}

func NewVecLaneOp(op VecOp, dst, src regalloc.VReg, arr VecElemSize, lane int64) *Inst {
	return &Inst{Kind: VecLanes, VecOp: op, Dst: dst, Src: src, VecArr: arr, ImmI64: lane}
}

func NewB(target uint32) *Inst    { return &Inst{Kind: B, TargetLabel: target} }
func NewBl(sym string) *Inst      { return &Inst{Kind: Bl, CallSymbol: sym} }
func NewBr(src regalloc.VReg) *Inst { return &Inst{Kind: Br, Src: src} }
func NewBlr(src regalloc.VReg) *Inst { return &Inst{Kind: Blr, Src: src} }
func NewRet() *Inst               { return &Inst{Kind: Ret} }
func NewCbz(src regalloc.VReg, target uint32, size OperandSize) *Inst {
	return &Inst{Kind: Cbz, Src: src, TargetLabel: target, Size: size}
}
func NewCbnz(src regalloc.VReg, target uint32, size OperandSize) *Inst {
	return &Inst{Kind: Cbnz, Src: src, TargetLabel: target, Size: size}
}
func NewBCond(cond CondCode, target, fallthroughL uint32) *Inst {
	return &Inst{Kind: BCond, Cond: cond, TargetLabel: target, FallthroughL: fallthroughL}
}
func NewUdf() *Inst { return &Inst{Kind: Udf} }
func NewBrk() *Inst { return &Inst{Kind: Brk} }
func NewDmb() *Inst { return &Inst{Kind: Dmb} }
func NewAdrp(dst regalloc.VReg, sym string) *Inst {
	return &Inst{Kind: Adrp, Dst: dst, CallSymbol: sym}
}
func NewNop() *Inst { return &Inst{Kind: Nop} }

// --- Pretty printing: a canonical assembly-like string, for tests and
// diagnostics only (spec §4.1). ---

func (i *Inst) String() string {
	var b strings.Builder
	switch i.Kind {
	case MovRR:
		fmt.Fprintf(&b, "mov x%d, x%d", regNum(i.Dst), regNum(i.Src))
	case MovZ:
		fmt.Fprintf(&b, "movz x%d, #%#x, lsl #%d", regNum(i.Dst), i.Shift16.Chunk, i.Shift16.Shift)
	case MovK:
		fmt.Fprintf(&b, "movk x%d, #%#x, lsl #%d", regNum(i.Dst), i.Shift16.Chunk, i.Shift16.Shift)
	case MovN:
		fmt.Fprintf(&b, "movn x%d, #%#x, lsl #%d", regNum(i.Dst), i.Shift16.Chunk, i.Shift16.Shift)
	case MovImm:
		fmt.Fprintf(&b, "mov_imm x%d, #%#x", regNum(i.Dst), i.ImmI64)
	case AluRRR:
		fmt.Fprintf(&b, "%s_rr x%d, x%d, x%d", i.AluOp, regNum(i.Dst), regNum(i.Src), regNum(i.Src2))
	case AluRRImm12:
		fmt.Fprintf(&b, "%s_imm x%d, x%d, #%#x", i.AluOp, regNum(i.Dst), regNum(i.Src), i.Imm12.ToU64())
	case AluRRBitmaskImm:
		fmt.Fprintf(&b, "%s_imm x%d, x%d, #%#x", i.AluOp, regNum(i.Dst), regNum(i.Src), i.ImmLogic.ToU64())
	case AluRRImmShift:
		fmt.Fprintf(&b, "%s x%d, x%d, #%d", i.AluOp, regNum(i.Dst), regNum(i.Src), i.ImmShift.Value())
	case AluRRRR:
		fmt.Fprintf(&b, "%s x%d, x%d, x%d, x%d", i.AluOp, regNum(i.Dst), regNum(i.Src), regNum(i.Src2), regNum(i.Addend))
	case BitRR:
		fmt.Fprintf(&b, "%s x%d, x%d", i.BitOp, regNum(i.Dst), regNum(i.Src))
	case CmpRR:
		fmt.Fprintf(&b, "cmp x%d, x%d", regNum(i.Src), regNum(i.Src2))
	case CmpImm:
		fmt.Fprintf(&b, "cmp x%d, #%#x", regNum(i.Src), i.Imm12.ToU64())
	case TstRR:
		fmt.Fprintf(&b, "tst x%d, x%d", regNum(i.Src), regNum(i.Src2))
	case CSel:
		fmt.Fprintf(&b, "csel x%d, x%d, x%d, %s", regNum(i.Dst), regNum(i.Src), regNum(i.Src2), i.Cond)
	case FCSel:
		fmt.Fprintf(&b, "fcsel v%d, v%d, v%d, %s", regNum(i.Dst), regNum(i.Src), regNum(i.Src2), i.Cond)
	case CSet:
		fmt.Fprintf(&b, "cset x%d, %s", regNum(i.Dst), i.Cond)
	case ULoad:
		fmt.Fprintf(&b, "ldr%d x%d, %s", i.ImmI64*8, regNum(i.Dst), i.Amode)
	case SLoad:
		fmt.Fprintf(&b, "ldrs%d x%d, %s", i.ImmI64*8, regNum(i.Dst), i.Amode)
	case Store:
		fmt.Fprintf(&b, "str%d x%d, %s", i.ImmI64*8, regNum(i.Src), i.Amode)
	case FpuLoad:
		fmt.Fprintf(&b, "ldr v%d, %s", regNum(i.Dst), i.Amode)
	case FpuStore:
		fmt.Fprintf(&b, "str v%d, %s", regNum(i.Src), i.Amode)
	case LdStPair:
		op := "stp"
		if i.Load {
			op = "ldp"
		}
		fmt.Fprintf(&b, "%s x%d, x%d, %s", op, regNum(i.Dst), regNum(i.Dst2), i.Amode)
	case Extend:
		fmt.Fprintf(&b, "%s x%d, x%d", i.ExtKind, regNum(i.Dst), regNum(i.Src))
	case FpuRRR:
		fmt.Fprintf(&b, "%s_%s v%d, v%d, v%d", i.FpuBin, i.FSize, regNum(i.Dst), regNum(i.Src), regNum(i.Src2))
	case FpuRR:
		fmt.Fprintf(&b, "%s v%d, v%d", i.FpuUn, regNum(i.Dst), regNum(i.Src))
	case FpuCmp:
		fmt.Fprintf(&b, "fcmp v%d, v%d", regNum(i.Src), regNum(i.Src2))
	case IntToFpu:
		op := "scvtf"
		if i.SetFlags {
			op = "ucvtf"
		}
		fmt.Fprintf(&b, "%s v%d, x%d", op, regNum(i.Dst), regNum(i.Src))
	case FpuToInt:
		op := "fcvtzs"
		if i.SetFlags {
			op = "fcvtzu"
		}
		fmt.Fprintf(&b, "%s x%d, v%d", op, regNum(i.Dst), regNum(i.Src))
	case VecRRR:
		fmt.Fprintf(&b, "%s.%s v%d, v%d, v%d", i.VecOp, i.VecArr, regNum(i.Dst), regNum(i.Src), regNum(i.Src2))
	case VecMisc, VecLanes:
		fmt.Fprintf(&b, "%s.%s v%d, v%d", i.VecOp, i.VecArr, regNum(i.Dst), regNum(i.Src))
	case B:
		fmt.Fprintf(&b, "b label%d", i.TargetLabel)
	case BCond:
		fmt.Fprintf(&b, "b.%s label%d", i.Cond, i.TargetLabel)
	case Bl:
		fmt.Fprintf(&b, "bl %s", i.CallSymbol)
	case Br:
		fmt.Fprintf(&b, "br x%d", regNum(i.Src))
	case Blr:
		fmt.Fprintf(&b, "blr x%d", regNum(i.Src))
	case Ret:
		fmt.Fprintf(&b, "ret")
	case Cbz:
		fmt.Fprintf(&b, "cbz x%d, label%d", regNum(i.Src), i.TargetLabel)
	case Cbnz:
		fmt.Fprintf(&b, "cbnz x%d, label%d", regNum(i.Src), i.TargetLabel)
	case Udf:
		fmt.Fprintf(&b, "udf")
	case Brk:
		fmt.Fprintf(&b, "brk #0")
	case Dmb:
		fmt.Fprintf(&b, "dmb ish")
	case Adrp:
		fmt.Fprintf(&b, "adrp x%d, %s", regNum(i.Dst), i.CallSymbol)
	case Nop:
		fmt.Fprintf(&b, "nop")
	default:
		fmt.Fprintf(&b, "<inst kind=%d>", i.Kind)
	}
	return b.String()
}

func regNum(v regalloc.VReg) byte {
	if v.IsRealReg() {
		return v.RealReg().Encoding()
	}
	return 0xFF // unassigned; only meaningful pre-regalloc, never reached in final output.
}

func (a Amode) String() string {
	switch a.Kind {
	case AmodeRegOffset:
		return fmt.Sprintf("[x%d, #%#x]", regNum(a.Base), a.Offset)
	case AmodeRegReg:
		return fmt.Sprintf("[x%d, x%d]", regNum(a.Base), regNum(a.Index))
	case AmodeRegExtended:
		return fmt.Sprintf("[x%d, x%d, ext]", regNum(a.Base), regNum(a.Index))
	case AmodeRegScaled:
		return fmt.Sprintf("[x%d, x%d, lsl #%d]", regNum(a.Base), regNum(a.Index), a.Scale)
	case AmodePreIndex:
		return fmt.Sprintf("[x%d, #%#x]!", regNum(a.Base), a.Offset)
	case AmodePostIndex:
		return fmt.Sprintf("[x%d], #%#x", regNum(a.Base), a.Offset)
	case AmodeLabel:
		return fmt.Sprintf("label%d", a.LabelID)
	default:
		return "?"
	}
}
