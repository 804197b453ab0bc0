package arm64

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arm64cg/arm64cg/internal/regalloc"
)

func TestOperands_AluRRR_UsesThenDef(t *testing.T) {
	dst := regalloc.NewVReg(0, regalloc.RegTypeInt)
	s1 := regalloc.NewVReg(1, regalloc.RegTypeInt)
	s2 := regalloc.NewVReg(2, regalloc.RegTypeInt)
	inst := NewAluRRR(AluAdd, dst, s1, s2, Size64)

	ops := inst.Operands(nil)
	require.Len(t, ops, 3)
	require.Equal(t, regalloc.PosUse, ops[0].Pos)
	require.Equal(t, s1, ops[0].Reg)
	require.Equal(t, regalloc.PosUse, ops[1].Pos)
	require.Equal(t, s2, ops[1].Reg)
	require.Equal(t, regalloc.PosDef, ops[2].Pos)
	require.Equal(t, dst, ops[2].Reg)
}

func TestOperands_MovK_IsUseDef(t *testing.T) {
	dst := regalloc.NewVReg(0, regalloc.RegTypeInt)
	inst := NewMovK(dst, Shifted16{Chunk: 1}, Size64)
	ops := inst.Operands(nil)
	require.Len(t, ops, 1)
	require.Equal(t, regalloc.PosUseDef, ops[0].Pos)
}

func TestOperands_Ret_UsesLR(t *testing.T) {
	inst := NewRet()
	ops := inst.Operands(nil)
	require.Len(t, ops, 1)
	require.Equal(t, regalloc.PosUse, ops[0].Pos)
	require.True(t, ops[0].Reg.IsRealReg())
	require.Equal(t, byte(30), ops[0].Reg.RealReg().Encoding())
}

func TestOperands_Bl_DefinesLR(t *testing.T) {
	inst := NewBl("memcpy")
	ops := inst.Operands(nil)
	require.Len(t, ops, 1)
	require.Equal(t, regalloc.PosDef, ops[0].Pos)
}

func TestOperands_LdStPair_LoadDefinesBothStoreUsesBoth(t *testing.T) {
	r1 := regalloc.NewVReg(0, regalloc.RegTypeInt)
	r2 := regalloc.NewVReg(1, regalloc.RegTypeInt)
	base := regalloc.NewVReg(2, regalloc.RegTypeInt)
	amode := AmodeRegOffsetOf(base, 0)

	load := NewLdStPair(true, r1, r2, amode, Size64)
	ops := load.Operands(nil)
	require.Len(t, ops, 3) // base use, r1 def, r2 def
	require.Equal(t, regalloc.PosDef, ops[1].Pos)
	require.Equal(t, regalloc.PosDef, ops[2].Pos)

	store := NewLdStPair(false, r1, r2, amode, Size64)
	ops = store.Operands(nil)
	require.Equal(t, regalloc.PosUse, ops[1].Pos)
	require.Equal(t, regalloc.PosUse, ops[2].Pos)
}

func TestOperands_NoOperandInstructions(t *testing.T) {
	for _, inst := range []*Inst{NewUdf(), NewBrk(), NewDmb(), NewNop(), NewB(0)} {
		require.Empty(t, inst.Operands(nil))
	}
}

func TestDefs_ReturnsOnlyDefAndUseDef(t *testing.T) {
	dst := regalloc.NewVReg(0, regalloc.RegTypeInt)
	src := regalloc.NewVReg(1, regalloc.RegTypeInt)
	inst := NewMovRR(dst, src, Size64)
	defs := inst.Defs(nil)
	require.Equal(t, []regalloc.VReg{dst}, defs)
}

func TestAssignRegs_RewritesVRegOperands(t *testing.T) {
	dst := regalloc.NewVReg(0, regalloc.RegTypeInt)
	src := regalloc.NewVReg(1, regalloc.RegTypeInt)
	inst := NewMovRR(dst, src, Size64)

	alloc := map[regalloc.VRegID]regalloc.Allocation{
		0: {Kind: regalloc.AllocKindReg, Reg: regalloc.NewRealReg(regalloc.RegTypeInt, 3)},
		1: {Kind: regalloc.AllocKindReg, Reg: regalloc.NewRealReg(regalloc.RegTypeInt, 4)},
	}
	inst.AssignRegs(alloc)
	require.True(t, inst.Dst.IsRealReg())
	require.Equal(t, byte(3), inst.Dst.RealReg().Encoding())
	require.Equal(t, byte(4), inst.Src.RealReg().Encoding())
}

func TestAssignRegs_PanicsOnUnallocatedVReg(t *testing.T) {
	dst := regalloc.NewVReg(0, regalloc.RegTypeInt)
	src := regalloc.NewVReg(1, regalloc.RegTypeInt)
	inst := NewMovRR(dst, src, Size64)
	require.Panics(t, func() { inst.AssignRegs(map[regalloc.VRegID]regalloc.Allocation{}) })
}

func TestAssignRegs_LeavesRealRegsAlone(t *testing.T) {
	inst := NewRet()
	require.NotPanics(t, func() { inst.AssignRegs(map[regalloc.VRegID]regalloc.Allocation{}) })
}
