// Package regalloc defines the register model and the request/response
// shapes exchanged with the generic register allocator (an external
// collaborator: this package never colors a graph itself).
package regalloc

import "fmt"

// RegType is the class a register belongs to.
type RegType byte

const (
	RegTypeInvalid RegType = iota
	RegTypeInt
	RegTypeFloat
	RegTypeVector
	NumRegType
)

// String implements fmt.Stringer.
func (t RegType) String() string {
	switch t {
	case RegTypeInt:
		return "int"
	case RegTypeFloat:
		return "float"
	case RegTypeVector:
		return "vector"
	default:
		return "invalid"
	}
}

// RealReg is a physical register: class plus hardware encoding 0..31.
type RealReg uint16

// RealRegInvalid is the zero-value sentinel.
const RealRegInvalid RealReg = 0

func NewRealReg(class RegType, encoding byte) RealReg {
	return RealReg(uint16(class)<<8 | uint16(encoding))
}

func (r RealReg) Class() RegType { return RegType(r >> 8) }
func (r RealReg) Encoding() byte { return byte(r) }

func (r RealReg) String() string {
	if r == RealRegInvalid {
		return "invalid"
	}
	switch r.Class() {
	case RegTypeInt:
		return fmt.Sprintf("x%d", r.Encoding())
	case RegTypeFloat, RegTypeVector:
		return fmt.Sprintf("v%d", r.Encoding())
	default:
		return "invalid"
	}
}

// VRegID is the dense identifier of a virtual register, unique within a
// function compilation.
type VRegID uint32

// VReg is either a virtual register (dense index + class) or, once a
// physical register has been assigned to it, carries that RealReg too.
// A "writable register" in the prose of the spec is simply a VReg that
// appears in an instruction's def position; the invariant is enforced by
// construction (see isa/arm64 operand roles), not by a distinct type.
type VReg struct {
	id    VRegID
	typ   RegType
	real  RealReg
	fixed bool // true if this vreg must be allocated to `real` (ABI-imposed).
}

// FromRealReg builds a VReg that is already backed by a physical register,
// used for ABI-fixed operands (argument/return/link registers).
func FromRealReg(r RealReg, typ RegType) VReg {
	return VReg{real: r, typ: typ, fixed: true}
}

// NewVReg allocates the Go-side representation of a not-yet-assigned
// virtual register. Callers are responsible for uniqueness of id within
// a function (see isa/arm64 VCode.NextVReg).
func NewVReg(id VRegID, typ RegType) VReg {
	return VReg{id: id, typ: typ}
}

func (v VReg) ID() VRegID        { return v.id }
func (v VReg) RegType() RegType  { return v.typ }
func (v VReg) IsRealReg() bool   { return v.real != RealRegInvalid }
func (v VReg) RealReg() RealReg  { return v.real }
func (v VReg) IsFixed() bool     { return v.fixed }
func (v VReg) Valid() bool       { return v.typ != RegTypeInvalid }

// Assign returns a copy of v with its physical register set to r. Used by
// the application pass once the allocator has produced a mapping.
func (v VReg) Assign(r RealReg) VReg {
	v.real = r
	return v
}

func (v VReg) String() string {
	if v.IsRealReg() {
		return v.real.String()
	}
	return fmt.Sprintf("%s%d", v.typ, v.id)
}

// OperandPos is the position role an operand plays in an instruction, per
// spec §4.5: use, def, or use-def (read-before-write, e.g. MOVK).
type OperandPos byte

const (
	PosUse OperandPos = iota
	PosDef
	PosUseDef
)

func (p OperandPos) String() string {
	switch p {
	case PosUse:
		return "use"
	case PosDef:
		return "def"
	case PosUseDef:
		return "use_def"
	default:
		return "?"
	}
}

// Operand is one entry of the flat per-instruction operand vector the
// bridge hands to the allocator (spec §4.5, "Extraction pass").
type Operand struct {
	Reg   VReg
	Pos   OperandPos
	Fixed bool // true if Reg.IsFixed(): the allocator must honor Reg.RealReg().
}

// AllocKind distinguishes a register allocation from a stack-slot spill.
type AllocKind byte

const (
	AllocKindReg AllocKind = iota
	AllocKindStack
)

// Allocation is one entry of the allocator's response: where a given
// virtual register lives at a program point.
type Allocation struct {
	Kind    AllocKind
	Reg     RealReg
	SlotOff int32 // valid iff Kind == AllocKindStack; byte offset from frame base.
}

// Allocator is the external collaborator named in spec §6: a total
// mapping from VRegID to Allocation, computed once per function from the
// flat operand table the bridge assembles. The core never implements
// graph coloring — the interface is scoped to what the bridge needs.
type Allocator interface {
	// Allocate consumes the per-instruction operand lists (in program
	// order) and returns a total mapping for every virtual register id
	// that appears in them.
	Allocate(instrOperands [][]Operand) (map[VRegID]Allocation, error)
}
