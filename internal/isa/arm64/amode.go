package arm64

import "github.com/arm64cg/arm64cg/internal/regalloc"

// ExtendOp is the extension applied to an index register in a register-
// extended addressing mode.
type ExtendOp byte

const (
	ExtendNone ExtendOp = iota
	ExtendUXTW
	ExtendSXTW
)

// AmodeKind discriminates the Amode variants of spec §3.
type AmodeKind byte

const (
	AmodeRegOffset AmodeKind = iota
	AmodeRegReg
	AmodeRegExtended
	AmodeRegScaled
	AmodePreIndex
	AmodePostIndex
	AmodeLabel
)

// Amode is the ARM64 addressing-mode sum type of spec §3. Exactly one
// field group is meaningful, selected by Kind.
type Amode struct {
	Kind    AmodeKind
	Base    regalloc.VReg
	Index   regalloc.VReg
	Offset  int64 // RegOffset / PreIndex / PostIndex
	Extend  ExtendOp
	Scale   byte // 0..3, log2 of access size, for RegScaled
	LabelID uint32
}

func AmodeRegOffsetOf(base regalloc.VReg, offset int64) Amode {
	return Amode{Kind: AmodeRegOffset, Base: base, Offset: offset}
}

func AmodeRegRegOf(base, index regalloc.VReg) Amode {
	return Amode{Kind: AmodeRegReg, Base: base, Index: index}
}

func AmodeRegExtendedOf(base, index regalloc.VReg, ext ExtendOp) Amode {
	return Amode{Kind: AmodeRegExtended, Base: base, Index: index, Extend: ext}
}

func AmodeRegScaledOf(base, index regalloc.VReg, scale byte) Amode {
	return Amode{Kind: AmodeRegScaled, Base: base, Index: index, Scale: scale}
}

// AmodePreIndexOf and AmodePostIndexOf require offset in [-256, 255]
// (spec §4.3); legalize.go converts out-of-range requests.
func AmodePreIndexOf(base regalloc.VReg, offset int64) Amode {
	return Amode{Kind: AmodePreIndex, Base: base, Offset: offset}
}

func AmodePostIndexOf(base regalloc.VReg, offset int64) Amode {
	return Amode{Kind: AmodePostIndex, Base: base, Offset: offset}
}

func AmodeLabelOf(id uint32) Amode {
	return Amode{Kind: AmodeLabel, LabelID: id}
}

// offsetFitsUnsignedImm12 reports whether off fits the scaled unsigned
// 12-bit STR/LDR immediate field for an access of the given byte size
// (spec §4.3: max offset 4095*size, non-negative, multiple of size).
func offsetFitsUnsignedImm12(sizeBytes int, off int64) bool {
	if off < 0 || off%int64(sizeBytes) != 0 {
		return false
	}
	return off/int64(sizeBytes) <= 0xFFF
}

// offsetFitsSignedImm9 reports whether off fits the pre/post-index
// 9-bit signed immediate (spec §4.3: [-256, 255]).
func offsetFitsSignedImm9(off int64) bool {
	return off >= -256 && off <= 255
}

// offsetFitsPairImm7 reports whether off fits the 7-bit signed,
// 8-byte-scaled STP/LDP (64-bit) offset (spec §4.3: [-512, 504]).
func offsetFitsPairImm7(off int64) bool {
	return off >= -512 && off <= 504 && off%8 == 0
}
