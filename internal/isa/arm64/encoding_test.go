package arm64

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arm64cg/arm64cg/internal/regalloc"
)

func encodeOne(t *testing.T, inst *Inst) uint32 {
	t.Helper()
	buf := NewMachBuffer()
	require.NoError(t, Encode(inst, buf))
	bytes, _ := buf.Finish()
	require.Len(t, bytes, 4)
	return uint32(bytes[0]) | uint32(bytes[1])<<8 | uint32(bytes[2])<<16 | uint32(bytes[3])<<24
}

func TestEncode_FixedPatternInstructions(t *testing.T) {
	cases := []struct {
		name string
		inst *Inst
		want uint32
	}{
		{"ret", NewRet(), 0xD65F03C0},
		{"nop", NewNop(), 0xD503201F},
		{"brk", NewBrk(), 0xD4200000},
		{"dmb_ish", NewDmb(), 0xD5033BBF},
		{"udf", NewUdf(), 0x00000000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, encodeOne(t, c.inst))
		})
	}
}

func TestEncode_MovImmFailsDirectly(t *testing.T) {
	dst := realIntVReg(0)
	inst := NewMovImm(dst, 5, Size64)
	buf := NewMachBuffer()
	err := Encode(inst, buf)
	require.Error(t, err)
	var be *BackendError
	require.ErrorAs(t, err, &be)
	require.Equal(t, ErrEncodableImmediate, be.Kind)
}

func TestEncode_MovRR_TopBitsMatchSFAndOpcodeClass(t *testing.T) {
	word := encodeOne(t, NewMovRR(realIntVReg(1), realIntVReg(2), Size64))
	require.Equal(t, uint32(1), word>>31)           // sf=1 for 64-bit
	require.Equal(t, uint32(0b01010), (word>>24)&0x1F) // ORR shifted-register family
	require.Equal(t, uint32(2), (word>>16)&0x1F)    // Rm = src
	require.Equal(t, uint32(31), (word>>5)&0x1F)    // Rn = XZR
	require.Equal(t, uint32(1), word&0x1F)           // Rd = dst
}

func TestEncode_MovRR_32BitClearsSF(t *testing.T) {
	word := encodeOne(t, NewMovRR(realIntVReg(0), realIntVReg(1), Size32))
	require.Equal(t, uint32(0), word>>31)
}

func TestEncode_AluRRR_AddFields(t *testing.T) {
	inst := NewAluRRR(AluAdd, realIntVReg(0), realIntVReg(1), realIntVReg(2), Size64)
	word := encodeOne(t, inst)
	require.Equal(t, uint32(1), word>>31) // sf
	require.Equal(t, uint32(0), (word>>30)&1) // op=0 for add
	require.Equal(t, uint32(0), (word>>29)&1) // s=0, no flags
	require.Equal(t, uint32(2), (word>>16)&0x1F) // Rm
	require.Equal(t, uint32(1), (word>>5)&0x1F)  // Rn
	require.Equal(t, uint32(0), word&0x1F)       // Rd
}

func TestEncode_AluRRR_SubSetsOpBit(t *testing.T) {
	inst := NewAluRRR(AluSub, realIntVReg(0), realIntVReg(1), realIntVReg(2), Size64)
	word := encodeOne(t, inst)
	require.Equal(t, uint32(1), (word>>30)&1)
}

func TestEncode_AluRRR_AddSSetsFlagsBit(t *testing.T) {
	inst := NewAluRRR(AluAddS, realIntVReg(0), realIntVReg(1), realIntVReg(2), Size64)
	word := encodeOne(t, inst)
	require.Equal(t, uint32(1), (word>>29)&1)
}

func TestEncode_MovZ_EncodesChunkAndHW(t *testing.T) {
	dst := realIntVReg(3)
	inst := NewMovZ(dst, Shifted16{Chunk: 0x1234, Shift: 16}, Size64)
	word := encodeOne(t, inst)
	require.Equal(t, uint32(1), word>>31)
	require.Equal(t, uint32(0b10), (word>>29)&0b11) // MOVZ opc
	require.Equal(t, uint32(1), (word>>21)&0b11)    // hw = shift/16
	require.Equal(t, uint32(0x1234), (word>>5)&0xFFFF)
	require.Equal(t, uint32(3), word&0x1F)
}

func TestEncode_MovN_UsesOpcZero(t *testing.T) {
	dst := realIntVReg(0)
	inst := NewMovN(dst, Shifted16{}, Size64)
	word := encodeOne(t, inst)
	require.Equal(t, uint32(0b00), (word>>29)&0b11)
}

func TestEncode_Bl_RecordsRelocationAtCorrectOffset(t *testing.T) {
	buf := NewMachBuffer()
	require.NoError(t, Encode(NewBl("my_func"), buf))
	_, relocs := buf.Finish()
	require.Len(t, relocs, 1)
	require.Equal(t, "my_func", relocs[0].Symbol)
	require.Equal(t, 0, relocs[0].InstrOffset)
}

func TestEncode_B_RecordsFixup(t *testing.T) {
	buf := NewMachBuffer()
	require.NoError(t, Encode(NewB(7), buf))
	buf.BindLabel(7)
	require.NoError(t, buf.ResolveFixups())
}

func TestEncode_BCond_IncludesConditionBits(t *testing.T) {
	word := encodeOne(t, NewBCond(EQ, 0, 0))
	require.Equal(t, uint32(0), word&0xF)

	buf := NewMachBuffer()
	require.NoError(t, Encode(NewBCond(NE, 0, 0), buf))
	bytes, _ := buf.Finish()
	word = uint32(bytes[0]) | uint32(bytes[1])<<8 | uint32(bytes[2])<<16 | uint32(bytes[3])<<24
	require.Equal(t, uint32(1), word&0xF)
}

func TestEncode_CSet_InvertsCondition(t *testing.T) {
	dst := realIntVReg(0)
	word := encodeOne(t, NewCSet(dst, EQ))
	// CSET is CSINC Xd, XZR, XZR, invert(cond): the condition field (bits
	// 12-15) carries NE (1), not EQ (0).
	require.Equal(t, uint32(NE), (word>>12)&0xF)
}

func TestEncode_LoadStore_UnsignedImmediateOffsetOutOfRangeErrors(t *testing.T) {
	dst := realIntVReg(0)
	base := realIntVReg(1)
	amode := AmodeRegOffsetOf(base, 0x10000) // way beyond 4095*8
	inst := NewLoad(dst, amode, 8, false)
	buf := NewMachBuffer()
	err := Encode(inst, buf)
	require.Error(t, err)
}

func TestEncode_LoadStorePair_RequiresValidAmodeKind(t *testing.T) {
	r1, r2, base := realIntVReg(0), realIntVReg(1), realIntVReg(2)
	bad := NewLdStPair(true, r1, r2, AmodeRegRegOf(base, base), Size64)
	buf := NewMachBuffer()
	err := Encode(bad, buf)
	require.Error(t, err)
}

func TestEncode_LoadStorePair_RejectsMisalignedOffset(t *testing.T) {
	r1, r2, base := realIntVReg(0), realIntVReg(1), realIntVReg(2)
	bad := NewLdStPair(true, r1, r2, AmodeRegOffsetOf(base, 3), Size64)
	buf := NewMachBuffer()
	err := Encode(bad, buf)
	require.Error(t, err)
}

func TestEncode_FpuMov_DistinctFromFpuAbs(t *testing.T) {
	dst := regalloc.FromRealReg(regalloc.NewRealReg(regalloc.RegTypeFloat, 0), regalloc.RegTypeFloat)
	src := regalloc.FromRealReg(regalloc.NewRealReg(regalloc.RegTypeFloat, 1), regalloc.RegTypeFloat)
	movWord := encodeOne(t, NewFpuMov(dst, src, FSize64))
	absWord := encodeOne(t, NewFpuRR(FpuAbs, dst, src, FSize64))
	require.NotEqual(t, movWord, absWord)
}

func TestEncode_FpuLoadStore_OutOfRangeOffsetErrors(t *testing.T) {
	dst := regalloc.FromRealReg(regalloc.NewRealReg(regalloc.RegTypeFloat, 0), regalloc.RegTypeFloat)
	base := realIntVReg(0)
	amode := AmodeRegOffsetOf(base, 0x10000)
	inst := NewFpuLoad(dst, amode, FSize64)
	buf := NewMachBuffer()
	err := Encode(inst, buf)
	require.Error(t, err)
}
