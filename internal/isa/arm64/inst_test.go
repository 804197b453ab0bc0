package arm64

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arm64cg/arm64cg/internal/regalloc"
)

func realIntVReg(enc byte) regalloc.VReg {
	return regalloc.FromRealReg(regalloc.NewRealReg(regalloc.RegTypeInt, enc), regalloc.RegTypeInt)
}

func TestInst_StringMovRR(t *testing.T) {
	inst := NewMovRR(realIntVReg(1), realIntVReg(2), Size64)
	require.Equal(t, "mov x1, x2", inst.String())
}

func TestInst_StringAluRRR(t *testing.T) {
	inst := NewAluRRR(AluAdd, realIntVReg(0), realIntVReg(1), realIntVReg(2), Size64)
	require.Equal(t, "add_rr x0, x1, x2", inst.String())
}

func TestInst_StringCSet(t *testing.T) {
	inst := NewCSet(realIntVReg(3), EQ)
	require.Equal(t, "cset x3, eq", inst.String())
}

func TestInst_StringRet(t *testing.T) {
	require.Equal(t, "ret", NewRet().String())
}

func TestInst_StringBl(t *testing.T) {
	inst := NewBl("memcpy")
	require.Equal(t, "bl memcpy", inst.String())
}

func TestAmode_StringRegOffset(t *testing.T) {
	a := AmodeRegOffsetOf(realIntVReg(5), 16)
	require.Equal(t, "[x5, #0x10]", a.String())
}

func TestAmode_StringLabel(t *testing.T) {
	a := AmodeLabelOf(3)
	require.Equal(t, "label3", a.String())
}

func TestAluOp_String(t *testing.T) {
	require.Equal(t, "add", AluAdd.String())
	require.Equal(t, "udiv", AluUDiv.String())
}

func TestBitOp_String(t *testing.T) {
	require.Equal(t, "clz", BitClz.String())
	require.Equal(t, "rev64", BitRev64.String())
}
