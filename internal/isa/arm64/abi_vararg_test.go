package arm64

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arm64cg/arm64cg/internal/regalloc"
	"github.com/arm64cg/arm64cg/internal/ssa"
)

func TestGenerateVaStart_EmitsAllFiveFieldStores(t *testing.T) {
	callee, err := NewAarch64ABICallee(ssa.CallConvAAPCS64, PlatformLinux, true)
	require.NoError(t, err)

	next := regalloc.VRegID(100)
	newTmp := func() regalloc.VReg {
		next++
		return regalloc.NewVReg(next, regalloc.RegTypeInt)
	}
	apAddr := regalloc.NewVReg(1, regalloc.RegTypeInt)

	insts := callee.GenerateVaStart(apAddr, 0, 1, 0, newTmp)

	var storeOffsets []int64
	for _, i := range insts {
		if i.Kind == Store {
			storeOffsets = append(storeOffsets, i.Amode.Offset)
		}
	}
	require.ElementsMatch(t, []int64{vaListStackOff, vaListGrTopOff, vaListVrTopOff, vaListGrOffsOff, vaListVrOffsOff}, storeOffsets)
}

func TestGenerateVaStart_GrOffsReflectsUsedGPRs(t *testing.T) {
	callee, err := NewAarch64ABICallee(ssa.CallConvAAPCS64, PlatformLinux, true)
	require.NoError(t, err)
	next := regalloc.VRegID(0)
	newTmp := func() regalloc.VReg {
		next++
		return regalloc.NewVReg(next, regalloc.RegTypeInt)
	}
	insts := callee.GenerateVaStart(regalloc.NewVReg(0, regalloc.RegTypeInt), 0, 3, 2, newTmp)

	var movInsts []*Inst
	for _, i := range insts {
		if i.Kind == MovImm {
			movInsts = append(movInsts, i)
		}
	}
	require.Len(t, movInsts, 2)
	require.Equal(t, int64(-8*(8-3)), movInsts[0].ImmI64)
	require.Equal(t, int64(-16*(8-2)), movInsts[1].ImmI64)
}

func TestVaList_FieldOffsetsMatchAAPCS64Layout(t *testing.T) {
	require.Equal(t, int64(0), int64(vaListStackOff))
	require.Equal(t, int64(8), int64(vaListGrTopOff))
	require.Equal(t, int64(16), int64(vaListVrTopOff))
	require.Equal(t, int64(24), int64(vaListGrOffsOff))
	require.Equal(t, int64(28), int64(vaListVrOffsOff))
}
