package fixtures

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arm64cg/arm64cg/internal/ssa"
)

func TestBuild_UnknownNameReturnsNil(t *testing.T) {
	require.Nil(t, Build("no_such_program"))
}

func TestBuild_AllNamesResolve(t *testing.T) {
	for _, n := range Names {
		f := Build(n)
		require.NotNilf(t, f, "Build(%q)", n)
		require.Equal(t, n, f.Name)
	}
}

func TestMinimalReturn_ReturnsZeroConstant(t *testing.T) {
	f := Build("minimal_return")
	require.Len(t, f.Signature().Params, 0)
	require.Equal(t, []ssa.Type{ssa.TypeI64}, f.Signature().Results)
	instrs := f.BlockInstructions(0)
	require.Len(t, instrs, 2)
	c := f.InstructionData(instrs[0])
	require.Equal(t, ssa.OpIconst, c.Opcode)
	require.Equal(t, int64(0), c.Imm)
	require.Equal(t, ssa.OpReturn, f.InstructionData(instrs[1]).Opcode)
}

func TestAddTwoArgs_ParamTypes(t *testing.T) {
	f := Build("add_two_args")
	sig := f.Signature()
	require.Equal(t, []ssa.Type{ssa.TypeI64, ssa.TypeI64}, sig.Params)
	params := f.BlockParams(0)
	require.Len(t, params, 2)
	for _, p := range params {
		require.Equal(t, ssa.TypeI64, f.ValueType(p))
	}
}

func TestEightArgsStack_NineParams(t *testing.T) {
	f := Build("eight_args_stack")
	require.Len(t, f.Signature().Params, 9)
	require.Len(t, f.BlockParams(0), 9)
}

func TestThreeCalleeSaves_ParamIsI64(t *testing.T) {
	f := Build("three_callee_saves")
	params := f.BlockParams(0)
	require.Len(t, params, 1)
	require.Equal(t, ssa.TypeI64, f.ValueType(params[0]))
}

func TestVariadic_ParamIsI32AndMarkedVariadic(t *testing.T) {
	f := Build("variadic")
	sig := f.Signature()
	require.True(t, sig.Variadic)
	require.Equal(t, 1, sig.FixedParams)
	params := f.BlockParams(0)
	require.Len(t, params, 1)
	require.Equal(t, ssa.TypeI32, f.ValueType(params[0]))
}

func TestIcmpBrif_ThreeBlocks(t *testing.T) {
	f := Build("icmp_brif")
	require.Len(t, f.Blocks, 3)
	params := f.BlockParams(0)
	require.Len(t, params, 2)
	for _, p := range params {
		require.Equal(t, ssa.TypeI64, f.ValueType(p))
	}
	require.Equal(t, []ssa.BasicBlock{1, 2}, f.BlockSuccessors(0))
}
