package arm64

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOperandSize(t *testing.T) {
	require.Equal(t, uint32(1), Size64.sf())
	require.Equal(t, uint32(0), Size32.sf())
	require.Equal(t, "64", Size64.String())
	require.Equal(t, "32", Size32.String())
	require.Equal(t, 64, Size64.bits())
	require.Equal(t, 32, Size32.bits())
}

func TestFpuOperandSize_String(t *testing.T) {
	require.Equal(t, "32", FSize32.String())
	require.Equal(t, "64", FSize64.String())
	require.Equal(t, "128", FSize128.String())
}

func TestVecElemSize(t *testing.T) {
	cases := []struct {
		v         VecElemSize
		laneBits  int
		laneCount int
		str       string
	}{
		{VecArr8B, 8, 8, "8x8"},
		{VecArr16B, 8, 16, "16x8"},
		{VecArr4H, 16, 4, "4x16"},
		{VecArr8H, 16, 8, "8x16"},
		{VecArr2S, 32, 2, "2x32"},
		{VecArr4S, 32, 4, "4x32"},
		{VecArr2D, 64, 2, "2x64"},
	}
	for _, c := range cases {
		require.Equal(t, c.laneBits, c.v.LaneBits())
		require.Equal(t, c.laneCount, c.v.LaneCount())
		require.Equal(t, c.str, c.v.String())
	}
}

func TestFixedRegisterVRegs(t *testing.T) {
	require.True(t, spVReg.IsFixed())
	require.True(t, xzrVReg.IsFixed())
	require.True(t, lrVReg.IsFixed())
	require.True(t, fpVReg.IsFixed())
	require.Equal(t, byte(31), spVReg.RealReg().Encoding())
	require.Equal(t, byte(30), lrVReg.RealReg().Encoding())
	require.Equal(t, byte(29), fpVReg.RealReg().Encoding())
}

func TestRegNumberInEncoding(t *testing.T) {
	require.Equal(t, uint32(5), regNumberInEncoding(xReg(5)))
	require.Equal(t, uint32(12), regNumberInEncoding(vReg(12)))
}
