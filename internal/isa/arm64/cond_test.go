package arm64

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arm64cg/arm64cg/internal/ssa"
)

func TestCondCode_InvertIsInvolution(t *testing.T) {
	all := []CondCode{EQ, NE, HS, LO, MI, PL, VS, VC, HI, LS, GE, LT, GT, LE, AL}
	for _, c := range all {
		require.Equal(t, c, c.Invert().Invert(), "invert(invert(%s)) != %s", c, c)
	}
}

func TestCondCode_InvertPairs(t *testing.T) {
	pairs := map[CondCode]CondCode{
		EQ: NE, HS: LO, MI: PL, VS: VC, HI: LS, GE: LT, GT: LE,
	}
	for a, b := range pairs {
		require.Equal(t, b, a.Invert())
		require.Equal(t, a, b.Invert())
	}
	require.Equal(t, AL, AL.Invert())
}

func TestCondCode_String(t *testing.T) {
	require.Equal(t, "eq", EQ.String())
	require.Equal(t, "al", AL.String())
	require.Equal(t, "?", CondCode(99).String())
}

func TestIntCCToCondCode(t *testing.T) {
	cases := map[ssa.IntCC]CondCode{
		ssa.IntEqual:                    EQ,
		ssa.IntNotEqual:                 NE,
		ssa.IntSignedLessThan:           LT,
		ssa.IntSignedGreaterThanOrEqual: GE,
		ssa.IntSignedGreaterThan:        GT,
		ssa.IntSignedLessThanOrEqual:    LE,
		ssa.IntUnsignedLessThan:         LO,
		ssa.IntUnsignedGreaterThanOrEqual: HS,
		ssa.IntUnsignedGreaterThan:        HI,
		ssa.IntUnsignedLessThanOrEqual:    LS,
	}
	for cc, want := range cases {
		require.Equal(t, want, intCCToCondCode(cc))
	}
}

func TestIntCCToCondCode_InvalidPanics(t *testing.T) {
	require.Panics(t, func() { intCCToCondCode(ssa.IntCC(255)) })
}

func TestFloatCCOrdered(t *testing.T) {
	cc, ok := floatCCOrdered(ssa.FloatEqual)
	require.True(t, ok)
	require.Equal(t, EQ, cc)

	_, ok = floatCCOrdered(ssa.FloatUnorderedOrEqual)
	require.False(t, ok)
}

func TestExpandFloatCC(t *testing.T) {
	c1, c2, how, ok := expandFloatCC(ssa.FloatUnorderedOrEqual)
	require.True(t, ok)
	require.Equal(t, VS, c1)
	require.Equal(t, EQ, c2)
	require.Equal(t, combineOr, how)

	c1, c2, how, ok = expandFloatCC(ssa.FloatOrderedNotEqual)
	require.True(t, ok)
	require.Equal(t, VC, c1)
	require.Equal(t, NE, c2)
	require.Equal(t, combineAnd, how)

	_, _, _, ok = expandFloatCC(ssa.FloatEqual)
	require.False(t, ok)
}
