package arm64

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTryImm12FromU64(t *testing.T) {
	cases := []struct {
		v    uint64
		want bool
	}{
		{0, true},
		{0xFFF, true},
		{0x1000, true},      // multiple of 0x1000, shift12
		{0xFFF000, true},    // largest shifted value
		{0xFFF001, false},   // not a multiple of 0x1000 and too large
		{0x1000000, false},  // exceeds 0xFFF000
		{1, true},
	}
	for _, c := range cases {
		imm, ok := TryImm12FromU64(c.v)
		require.Equal(t, c.want, ok, "v=%#x", c.v)
		if ok {
			require.Equal(t, c.v, imm.ToU64(), "v=%#x", c.v)
		}
	}
}

func TestTryImmShiftFromU64(t *testing.T) {
	s, ok := TryImmShiftFromU64(63)
	require.True(t, ok)
	require.Equal(t, byte(63), s.Value())

	_, ok = TryImmShiftFromU64(64)
	require.False(t, ok)
}

func TestShifted16ChunksOf(t *testing.T) {
	chunks := shifted16ChunksOf(0x1234_5678_9ABC_DEF0)
	require.Equal(t, uint16(0xDEF0), chunks[0].Chunk)
	require.Equal(t, byte(0), chunks[0].Shift)
	require.Equal(t, uint16(0x9ABC), chunks[1].Chunk)
	require.Equal(t, byte(16), chunks[1].Shift)
	require.Equal(t, uint16(0x5678), chunks[2].Chunk)
	require.Equal(t, byte(32), chunks[2].Shift)
	require.Equal(t, uint16(0x1234), chunks[3].Chunk)
	require.Equal(t, byte(48), chunks[3].Shift)
}

func TestNonZeroChunks16(t *testing.T) {
	require.Equal(t, 0, nonZeroChunks16(0))
	require.Equal(t, 1, nonZeroChunks16(0x42))
	require.Equal(t, 4, nonZeroChunks16(0xFFFF_FFFF_FFFF_FFFF))
}

func TestTryImmLogicFromU64_RejectsZeroAndAllOnes(t *testing.T) {
	_, ok := TryImmLogicFromU64(0, true)
	require.False(t, ok)
	_, ok = TryImmLogicFromU64(^uint64(0), true)
	require.False(t, ok)
	_, ok = TryImmLogicFromU64(0xFFFFFFFF, false)
	require.False(t, ok)
}

func TestTryImmLogicFromU64_AcceptsRepeatingPattern(t *testing.T) {
	l, ok := TryImmLogicFromU64(0xFF, true)
	require.True(t, ok)
	require.Equal(t, uint64(0xFF), l.ToU64())
}

func TestTryImmLogicFromU64_Rejects64BitOnlyPatternFor32Bit(t *testing.T) {
	// A pattern that only repeats at the full 64-bit granularity cannot be
	// expressed as a 32-bit bitmask immediate.
	_, ok := TryImmLogicFromU64(0x0000_0001_0000_0000, false)
	require.False(t, ok)
}

func TestTryFpImm8FromF64_ExactValue(t *testing.T) {
	f, ok := TryFpImm8FromF64(2.0)
	require.True(t, ok)
	require.Equal(t, uint32(0x00), f.encoding())
}

func TestTryFpImm8FromF64_UnrepresentableValue(t *testing.T) {
	_, ok := TryFpImm8FromF64(3.14159)
	require.False(t, ok)
}

func TestTryFpImm8FromF64_ExponentOutOfRange(t *testing.T) {
	_, ok := TryFpImm8FromF64(1e10)
	require.False(t, ok)
}
