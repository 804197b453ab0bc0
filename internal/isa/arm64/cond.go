package arm64

import "github.com/arm64cg/arm64cg/internal/ssa"

// CondCode is an ARM64 condition-flag value, spec §3. The numeric values
// match the hardware encoding so the emitter can use them directly.
// Grounded on the teacher's condFlag in cond.go, extended with the
// invert law table spec.md §3/§8 requires to be exhaustively testable.
type CondCode byte

const (
	EQ CondCode = iota // equal
	NE                 // not equal
	HS                 // unsigned higher or same
	LO                 // unsigned lower
	MI                 // minus / negative
	PL                 // plus / positive or zero
	VS                 // overflow set
	VC                 // overflow clear
	HI                 // unsigned higher
	LS                 // unsigned lower or same
	GE                 // signed greater or equal
	LT                 // signed less than
	GT                 // signed greater than
	LE                 // signed less or equal
	AL                 // always
)

// Invert returns the logical negation of c. AL is its own inverse: there
// is no hardware encoding for "never" in the set this spec uses, and the
// invariant `cc.Invert().Invert() == cc` must hold for every member
// including AL (spec §8, invariant 5).
func (c CondCode) Invert() CondCode {
	switch c {
	case EQ:
		return NE
	case NE:
		return EQ
	case HS:
		return LO
	case LO:
		return HS
	case MI:
		return PL
	case PL:
		return MI
	case VS:
		return VC
	case VC:
		return VS
	case HI:
		return LS
	case LS:
		return HI
	case GE:
		return LT
	case LT:
		return GE
	case GT:
		return LE
	case LE:
		return GT
	case AL:
		return AL
	default:
		panic("invalid CondCode")
	}
}

func (c CondCode) String() string {
	names := [...]string{"eq", "ne", "hs", "lo", "mi", "pl", "vs", "vc", "hi", "ls", "ge", "lt", "gt", "le", "al"}
	if int(c) < len(names) {
		return names[c]
	}
	return "?"
}

// encoding returns the 4-bit condition field used by B.cond/CSEL/CSET.
func (c CondCode) encoding() uint32 { return uint32(c) }

// intCCToCondCode implements the `intccToCondCode` table of spec §4.4.
func intCCToCondCode(cc ssa.IntCC) CondCode {
	switch cc {
	case ssa.IntEqual:
		return EQ
	case ssa.IntNotEqual:
		return NE
	case ssa.IntSignedLessThan:
		return LT
	case ssa.IntSignedGreaterThanOrEqual:
		return GE
	case ssa.IntSignedGreaterThan:
		return GT
	case ssa.IntSignedLessThanOrEqual:
		return LE
	case ssa.IntUnsignedLessThan:
		return LO
	case ssa.IntUnsignedGreaterThanOrEqual:
		return HS
	case ssa.IntUnsignedGreaterThan:
		return HI
	case ssa.IntUnsignedLessThanOrEqual:
		return LS
	default:
		panic("invalid IntCC")
	}
}

// floatCCOrdered covers the directly-encodable (ordered) float conditions
// of spec §4.4. Unordered compound conditions go through expandFloatCC.
func floatCCOrdered(cc ssa.FloatCC) (CondCode, bool) {
	switch cc {
	case ssa.FloatEqual:
		return EQ, true
	case ssa.FloatNotEqual:
		return NE, true
	case ssa.FloatLessThan:
		return MI, true
	case ssa.FloatLessThanOrEqual:
		return LS, true
	case ssa.FloatGreaterThan:
		return GT, true
	case ssa.FloatGreaterThanOrEqual:
		return GE, true
	case ssa.FloatUnordered:
		return VS, true
	case ssa.FloatOrdered:
		return VC, true
	default:
		return AL, false
	}
}

// floatCCCombine is how the two CondCode results of two fcmp-derived
// csel chains must be logically combined for an unordered compound float
// condition (spec §4.4 "expandFloatCC table").
type floatCCCombine byte

const (
	combineOr floatCCCombine = iota
	combineAnd
)

// expandFloatCC returns the two CondCodes (for two successive csel/fcsel
// selections) and how to combine them for one of the unordered compound
// float conditions (UEQ, ONE, ULT, ULE, UGT, UGE).
func expandFloatCC(cc ssa.FloatCC) (c1, c2 CondCode, how floatCCCombine, ok bool) {
	switch cc {
	case ssa.FloatUnorderedOrEqual: // UEQ = unordered OR eq
		return VS, EQ, combineOr, true
	case ssa.FloatOrderedNotEqual: // ONE = ordered AND ne
		return VC, NE, combineAnd, true
	case ssa.FloatUnorderedOrLess: // ULT = unordered OR lt(mi)
		return VS, MI, combineOr, true
	case ssa.FloatUnorderedOrLessEq: // ULE = unordered OR le(ls)
		return VS, LS, combineOr, true
	case ssa.FloatUnorderedOrGreater: // UGT = unordered OR gt
		return VS, GT, combineOr, true
	case ssa.FloatUnorderedOrGreaterEq: // UGE = unordered OR ge
		return VS, GE, combineOr, true
	default:
		return AL, AL, combineOr, false
	}
}
