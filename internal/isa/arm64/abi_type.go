package arm64

import "github.com/arm64cg/arm64cg/internal/ssa"

// ABITypeKind discriminates the ABI-level type lattice of spec §3, which
// is richer than ssa.Type because it must describe aggregates (structs,
// vectors with explicit lane layout) that the IR itself never carries
// directly.
type ABITypeKind byte

const (
	ABIScalar ABITypeKind = iota
	ABIVector
	ABIStruct
)

// ABIField is one ordered member of an ABIStruct type, spec §3
// ("struct with ordered fields {ty, offset}").
type ABIField struct {
	Ty     ABIType
	Offset int64
}

// ABIType is the ABI-level type: i8/i16/i32/i64/f32/f64 (Scalar), v64/v128
// with element type and lane count (Vector), or an ordered-field struct.
type ABIType struct {
	Kind      ABITypeKind
	Scalar    ssa.Type // valid iff Kind == ABIScalar
	ElemType  ssa.Type // valid iff Kind == ABIVector
	LaneCount int      // valid iff Kind == ABIVector
	Fields    []ABIField
	Size      int64
	Align     int64
}

func ScalarType(t ssa.Type) ABIType {
	return ABIType{Kind: ABIScalar, Scalar: t, Size: int64(t.Bits() / 8), Align: int64(t.Bits() / 8)}
}

func VectorType(elem ssa.Type, lanes int) ABIType {
	size := int64(elem.Bits()/8) * int64(lanes)
	return ABIType{Kind: ABIVector, ElemType: elem, LaneCount: lanes, Size: size, Align: size}
}

func StructType(fields []ABIField, size, align int64) ABIType {
	return ABIType{Kind: ABIStruct, Fields: fields, Size: size, Align: align}
}

func (t ABIType) IsI128() bool {
	return t.Kind == ABIStruct && t.Size == 16 && t.Align == 16 && len(t.Fields) == 0
}

// I128Type names the 128-bit integer ABI type (spec §4.6 rule 7): modeled
// as a zero-field 16-byte-aligned struct so computeArgLocs's struct-size
// switch and the i128 rule share one recognizable shape.
func I128Type() ABIType { return ABIType{Kind: ABIStruct, Size: 16, Align: 16} }

// StructClass classifies an ABIStruct per spec §4.6 rules 3-6.
type StructClass byte

const (
	StructGeneral StructClass = iota
	StructIndirect
	StructHFA
	StructHVA
)

// ClassifyStruct implements spec §4.6: size>16 is indirect; 1..4
// homogeneous f32/f64 fields is HFA; 1..4 homogeneous same-size vector
// fields is HVA; everything else of size<=16 is general.
func ClassifyStruct(t ABIType) StructClass {
	if t.Size > 16 {
		return StructIndirect
	}
	if hfa, ok := homogeneousFloat(t.Fields); ok && hfa {
		return StructHFA
	}
	if hva, ok := homogeneousVector(t.Fields); ok && hva {
		return StructHVA
	}
	return StructGeneral
}

func homogeneousFloat(fields []ABIField) (isHFA, checked bool) {
	if len(fields) < 1 || len(fields) > 4 {
		return false, true
	}
	first := fields[0].Ty
	if first.Kind != ABIScalar || !first.Scalar.IsFloat() {
		return false, true
	}
	for _, f := range fields[1:] {
		if f.Ty.Kind != ABIScalar || f.Ty.Scalar != first.Scalar {
			return false, true
		}
	}
	return true, true
}

func homogeneousVector(fields []ABIField) (isHVA, checked bool) {
	if len(fields) < 1 || len(fields) > 4 {
		return false, true
	}
	first := fields[0].Ty
	if first.Kind != ABIVector {
		return false, true
	}
	for _, f := range fields[1:] {
		if f.Ty.Kind != ABIVector || f.Ty.ElemType != first.ElemType || f.Ty.LaneCount != first.LaneCount {
			return false, true
		}
	}
	return true, true
}
