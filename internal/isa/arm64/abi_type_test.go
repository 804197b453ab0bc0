package arm64

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arm64cg/arm64cg/internal/ssa"
)

func TestScalarType_SizeAndAlign(t *testing.T) {
	ty := ScalarType(ssa.TypeI64)
	require.Equal(t, ABIScalar, ty.Kind)
	require.Equal(t, int64(8), ty.Size)
	require.Equal(t, int64(8), ty.Align)
}

func TestVectorType_SizeIsElemTimesLanes(t *testing.T) {
	ty := VectorType(ssa.TypeF32, 4)
	require.Equal(t, ABIVector, ty.Kind)
	require.Equal(t, int64(16), ty.Size)
	require.Equal(t, int64(16), ty.Align)
}

func TestI128Type_IsRecognizedByIsI128(t *testing.T) {
	ty := I128Type()
	require.True(t, ty.IsI128())
}

func TestStructType_PlainStructIsNotI128(t *testing.T) {
	ty := StructType([]ABIField{{Ty: ScalarType(ssa.TypeI32), Offset: 0}}, 4, 4)
	require.False(t, ty.IsI128())
}

func TestClassifyStruct_LargeIsIndirect(t *testing.T) {
	ty := StructType(nil, 17, 8)
	require.Equal(t, StructIndirect, ClassifyStruct(ty))
}

func TestClassifyStruct_HomogeneousFloatFieldsAreHFA(t *testing.T) {
	fields := []ABIField{
		{Ty: ScalarType(ssa.TypeF64), Offset: 0},
		{Ty: ScalarType(ssa.TypeF64), Offset: 8},
	}
	ty := StructType(fields, 16, 8)
	require.Equal(t, StructHFA, ClassifyStruct(ty))
}

func TestClassifyStruct_MixedScalarFieldsAreGeneral(t *testing.T) {
	fields := []ABIField{
		{Ty: ScalarType(ssa.TypeI32), Offset: 0},
		{Ty: ScalarType(ssa.TypeF64), Offset: 8},
	}
	ty := StructType(fields, 16, 8)
	require.Equal(t, StructGeneral, ClassifyStruct(ty))
}

func TestClassifyStruct_HomogeneousVectorFieldsAreHVA(t *testing.T) {
	fields := []ABIField{
		{Ty: VectorType(ssa.TypeF32, 2), Offset: 0},
		{Ty: VectorType(ssa.TypeF32, 2), Offset: 8},
	}
	ty := StructType(fields, 16, 8)
	require.Equal(t, StructHVA, ClassifyStruct(ty))
}

func TestClassifyStruct_TooManyFieldsIsGeneral(t *testing.T) {
	fields := make([]ABIField, 5)
	for i := range fields {
		fields[i] = ABIField{Ty: ScalarType(ssa.TypeF64), Offset: int64(i * 8)}
	}
	ty := StructType(fields, 16, 8) // Size<=16 forced for test purposes of the general path.
	require.Equal(t, StructGeneral, ClassifyStruct(ty))
}
