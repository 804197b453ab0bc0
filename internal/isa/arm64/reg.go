// Package arm64 is the AArch64 machine-code backend: instruction
// selection, VCode, the register-allocator bridge, the AAPCS64 ABI
// engine, and the byte-level emitter. Grounded on
// tetratelabs-wazero/internal/engine/wazevo/backend/isa/arm64.
package arm64

import (
	"fmt"

	"github.com/arm64cg/arm64cg/internal/regalloc"
)

// Hardware register encodings. Int 0..30 name X/W registers; 31 denotes
// either SP or XZR depending on instruction context (spec §3). Float n
// denotes Vn.
const (
	regZero      = 31 // XZR when used as a GPR source/dest in most encodings.
	regStackPtr  = 31 // SP when used as a base/Rn in load/store and ADD/SUB.
	regLinkIdx   = 30 // X30 / LR.
	regFramePtr  = 29 // X29 / FP.
)

func intReal(enc byte) regalloc.RealReg   { return regalloc.NewRealReg(regalloc.RegTypeInt, enc) }
func floatReal(enc byte) regalloc.RealReg { return regalloc.NewRealReg(regalloc.RegTypeFloat, enc) }

var (
	xzr = intReal(regZero)
	sp  = intReal(regStackPtr)
	lr  = intReal(regLinkIdx)
	fp  = intReal(regFramePtr)
)

func xReg(n byte) regalloc.RealReg { return intReal(n) }
func vReg(n byte) regalloc.RealReg { return floatReal(n) }

var (
	spVReg  = regalloc.FromRealReg(sp, regalloc.RegTypeInt)
	xzrVReg = regalloc.FromRealReg(xzr, regalloc.RegTypeInt)
	lrVReg  = regalloc.FromRealReg(lr, regalloc.RegTypeInt)
	fpVReg  = regalloc.FromRealReg(fp, regalloc.RegTypeInt)
)

// regNumberInEncoding maps a RealReg to the 5-bit encoding used in the
// instruction word. For int registers this is simply the hardware index
// (0..31, where 31 is context-dependent SP/XZR); for float/vector it's
// the V-register index.
func regNumberInEncoding(r regalloc.RealReg) uint32 {
	return uint32(r.Encoding())
}

// OperandSize distinguishes 32-bit (W) from 64-bit (X) GPR operations.
type OperandSize byte

const (
	Size32 OperandSize = iota
	Size64
)

func (s OperandSize) sf() uint32 {
	if s == Size64 {
		return 1
	}
	return 0
}

func (s OperandSize) String() string {
	if s == Size64 {
		return "64"
	}
	return "32"
}

func (s OperandSize) bits() int {
	if s == Size64 {
		return 64
	}
	return 32
}

// FpuOperandSize extends OperandSize with a 128-bit SIMD width.
type FpuOperandSize byte

const (
	FSize32 FpuOperandSize = iota
	FSize64
	FSize128
)

func (s FpuOperandSize) String() string {
	switch s {
	case FSize32:
		return "32"
	case FSize64:
		return "64"
	default:
		return "128"
	}
}

// VecElemSize enumerates lane-count x lane-width vector arrangements.
type VecElemSize byte

const (
	VecArr8B VecElemSize = iota
	VecArr16B
	VecArr4H
	VecArr8H
	VecArr2S
	VecArr4S
	VecArr2D
)

func (v VecElemSize) LaneBits() int {
	switch v {
	case VecArr8B, VecArr16B:
		return 8
	case VecArr4H, VecArr8H:
		return 16
	case VecArr2S, VecArr4S:
		return 32
	default:
		return 64
	}
}

func (v VecElemSize) LaneCount() int {
	switch v {
	case VecArr8B:
		return 8
	case VecArr16B:
		return 16
	case VecArr4H:
		return 4
	case VecArr8H:
		return 8
	case VecArr2S:
		return 2
	case VecArr4S:
		return 4
	case VecArr2D:
		return 2
	}
	return 0
}

func (v VecElemSize) String() string {
	return fmt.Sprintf("%dx%d", v.LaneCount(), v.LaneBits())
}
