package ssa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestType_IsIntIsFloat(t *testing.T) {
	require.True(t, TypeI8.IsInt())
	require.True(t, TypeI16.IsInt())
	require.True(t, TypeI32.IsInt())
	require.True(t, TypeI64.IsInt())
	require.False(t, TypeF32.IsInt())
	require.False(t, TypeV128.IsInt())

	require.True(t, TypeF32.IsFloat())
	require.True(t, TypeF64.IsFloat())
	require.False(t, TypeI64.IsFloat())
}

func TestType_Bits(t *testing.T) {
	cases := []struct {
		typ  Type
		bits byte
	}{
		{TypeI8, 8}, {TypeI16, 16}, {TypeI32, 32}, {TypeI64, 64},
		{TypeF32, 32}, {TypeF64, 64}, {TypeV128, 128},
	}
	for _, c := range cases {
		require.Equal(t, c.bits, c.typ.Bits())
	}
}

func TestType_BitsInvalidPanics(t *testing.T) {
	require.Panics(t, func() { _ = TypeInvalid.Bits() })
}

func TestType_String(t *testing.T) {
	require.Equal(t, "i64", TypeI64.String())
	require.Equal(t, "f32", TypeF32.String())
	require.Equal(t, "invalid", TypeInvalid.String())
}

func TestCallingConvention_String(t *testing.T) {
	require.Equal(t, "aapcs64", CallConvAAPCS64.String())
	require.Equal(t, "fast", CallConvFast.String())
	require.Equal(t, "preserve_all", CallConvPreserveAll.String())
	require.Equal(t, "cold", CallConvCold.String())
}
