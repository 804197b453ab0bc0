package arm64

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arm64cg/arm64cg/internal/regalloc"
)

func TestVCode_NextVRegIsDense(t *testing.T) {
	vc := NewVCode("f")
	v0 := vc.NextVReg(regalloc.RegTypeInt)
	v1 := vc.NextVReg(regalloc.RegTypeInt)
	require.Equal(t, regalloc.VRegID(0), v0.ID())
	require.Equal(t, regalloc.VRegID(1), v1.ID())
}

func TestVCode_NextLabelIsDense(t *testing.T) {
	vc := NewVCode("f")
	require.Equal(t, uint32(0), vc.NextLabel())
	require.Equal(t, uint32(1), vc.NextLabel())
}

func TestVCode_StartBlockSetsEntryLabel(t *testing.T) {
	vc := NewVCode("f")
	b0 := vc.StartBlock(5, nil)
	b1 := vc.StartBlock(6, nil)
	require.Equal(t, uint32(5), vc.EntryLabel)
	require.Len(t, vc.Blocks, 2)
	require.Same(t, b0, vc.Blocks[0])
	require.Same(t, b1, vc.Blocks[1])
}

func TestVCode_AllOperands(t *testing.T) {
	vc := NewVCode("f")
	b := vc.StartBlock(0, nil)
	dst := vc.NextVReg(regalloc.RegTypeInt)
	src := vc.NextVReg(regalloc.RegTypeInt)
	b.AddInst(NewMovRR(dst, src, Size64))

	ops := vc.AllOperands()
	require.Len(t, ops, 1)
	require.Len(t, ops[0], 2)
}

func TestVCode_ApplyAllocation(t *testing.T) {
	vc := NewVCode("f")
	b := vc.StartBlock(0, nil)
	dst := vc.NextVReg(regalloc.RegTypeInt)
	src := vc.NextVReg(regalloc.RegTypeInt)
	inst := NewMovRR(dst, src, Size64)
	b.AddInst(inst)

	alloc := map[regalloc.VRegID]regalloc.Allocation{
		dst.ID(): {Kind: regalloc.AllocKindReg, Reg: regalloc.NewRealReg(regalloc.RegTypeInt, 9)},
		src.ID(): {Kind: regalloc.AllocKindReg, Reg: regalloc.NewRealReg(regalloc.RegTypeInt, 10)},
	}
	vc.ApplyAllocation(alloc)
	require.True(t, inst.Dst.IsRealReg())
	require.Equal(t, byte(9), inst.Dst.RealReg().Encoding())
	require.Equal(t, byte(10), inst.Src.RealReg().Encoding())
}

func TestVCode_Emit(t *testing.T) {
	vc := NewVCode("f")
	b := vc.StartBlock(0, nil)
	b.AddInst(NewRet())

	buf := NewMachBuffer()
	require.NoError(t, vc.Emit(buf))
	bytes, _ := buf.Finish()
	require.Len(t, bytes, 4)
}
