// Package ssa is the external collaborator named in spec.md §6: a
// trimmed, concrete stand-in for the SSA IR producer. The backend only
// ever reads from it (ValueDef, InstructionData, ValueType, BlockParams,
// BlockSuccessors, Signature) — it never mutates or optimizes it.
package ssa

import "fmt"

// Type is the IR-level value type. ABI-level types (structs, HFA/HVA
// aggregates) live in the separate arm64.ABIType (internal/isa/arm64/abi_type.go)
// since the IR itself never carries aggregate types: arguments of
// aggregate type are described only in the ABISignature.
type Type byte

const (
	TypeInvalid Type = iota
	TypeI8
	TypeI16
	TypeI32
	TypeI64
	TypeF32
	TypeF64
	TypeV128
)

func (t Type) String() string {
	switch t {
	case TypeI8:
		return "i8"
	case TypeI16:
		return "i16"
	case TypeI32:
		return "i32"
	case TypeI64:
		return "i64"
	case TypeF32:
		return "f32"
	case TypeF64:
		return "f64"
	case TypeV128:
		return "v128"
	default:
		return "invalid"
	}
}

// IsInt reports whether t is one of the integer types.
func (t Type) IsInt() bool {
	switch t {
	case TypeI8, TypeI16, TypeI32, TypeI64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is a scalar floating point type.
func (t Type) IsFloat() bool { return t == TypeF32 || t == TypeF64 }

// Bits returns the width of t in bits.
func (t Type) Bits() byte {
	switch t {
	case TypeI8:
		return 8
	case TypeI16:
		return 16
	case TypeI32, TypeF32:
		return 32
	case TypeI64, TypeF64:
		return 64
	case TypeV128:
		return 128
	default:
		panic(fmt.Sprintf("invalid type %d", t))
	}
}

// CallingConvention is a signature-level tag, spec §6.
type CallingConvention byte

const (
	CallConvAAPCS64 CallingConvention = iota
	CallConvFast
	CallConvPreserveAll
	CallConvCold
)

func (c CallingConvention) String() string {
	switch c {
	case CallConvAAPCS64:
		return "aapcs64"
	case CallConvFast:
		return "fast"
	case CallConvPreserveAll:
		return "preserve_all"
	case CallConvCold:
		return "cold"
	default:
		return "unknown"
	}
}

// IntCC is an integer comparison condition from the IR (spec §4.4 table).
type IntCC byte

const (
	IntEqual IntCC = iota
	IntNotEqual
	IntSignedLessThan
	IntSignedGreaterThanOrEqual
	IntSignedGreaterThan
	IntSignedLessThanOrEqual
	IntUnsignedLessThan
	IntUnsignedGreaterThanOrEqual
	IntUnsignedGreaterThan
	IntUnsignedLessThanOrEqual
)

// FloatCC is a floating-point comparison condition from the IR.
type FloatCC byte

const (
	FloatEqual FloatCC = iota
	FloatNotEqual
	FloatLessThan
	FloatLessThanOrEqual
	FloatGreaterThan
	FloatGreaterThanOrEqual
	FloatUnordered
	FloatOrdered
	FloatUnorderedOrEqual   // UEQ
	FloatOrderedNotEqual    // ONE
	FloatUnorderedOrLess    // ULT
	FloatUnorderedOrLessEq  // ULE
	FloatUnorderedOrGreater // UGT
	FloatUnorderedOrGreaterEq
)
