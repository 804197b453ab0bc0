package arm64

import "fmt"

// ErrorKind enumerates the error taxonomy of spec §7. Kinds, not types:
// all of them surface as *BackendError so callers can switch on Kind.
type ErrorKind byte

const (
	// ErrEncodableImmediate: a constructor was handed a constant no
	// legalization hook could reduce to an encodable immediate. Also
	// reported when lowering has no rule for an opcode or Encode has no
	// encoding for an instruction shape. Reaching the driver indicates a
	// backend bug.
	ErrEncodableImmediate ErrorKind = iota
	// ErrOutOfRangeOffset: a load/store offset exceeds the legal range
	// even after legalization.
	ErrOutOfRangeOffset
	// ErrUnreachableABI: the requested calling convention is not
	// supported on this target. Fatal at context construction.
	ErrUnreachableABI
	// ErrInvalidCalleeSaveList: a physical register outside the legal
	// callee-save set was presented. Fatal; compiler bug.
	ErrInvalidCalleeSaveList
	// ErrUnallocatedVReg: the application pass saw a virtual register
	// without an allocation. Fatal; allocator/bridge disagreement.
	ErrUnallocatedVReg
	// ErrLabelOutOfRange: a branch displacement, or an ADR/ADRP target,
	// doesn't fit its field. Recoverable: the driver may insert a
	// trampoline or split the function.
	ErrLabelOutOfRange
	// ErrUnsupportedAtomicOrdering: the IR requested an ordering with no
	// DMB/load-acquire/store-release realization. Fatal; IR producer bug.
	ErrUnsupportedAtomicOrdering
	// ErrNonConstantLane: a vector lane index was not a constant. Fatal;
	// IR must fold before reaching the backend.
	ErrNonConstantLane
)

func (k ErrorKind) String() string {
	names := [...]string{
		"EncodableImmediate", "OutOfRangeOffset", "UnreachableABI",
		"InvalidCalleeSaveList", "UnallocatedVReg", "LabelOutOfRange",
		"UnsupportedAtomicOrdering", "NonConstantLane",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Recoverable reports whether the driver may attempt recovery (spec §7):
// today, only ErrLabelOutOfRange is recoverable.
func (k ErrorKind) Recoverable() bool { return k == ErrLabelOutOfRange }

// BackendError is the concrete error type for every kind in the
// taxonomy. Fatal kinds abort the function compilation; recoverable
// kinds are returned for the driver to inspect (spec §7).
type BackendError struct {
	Kind ErrorKind
	Msg  string
	// Inst/Opcode/Position identify the offending IR instruction for the
	// diagnostic spec §7 requires ("producer, opcode, position").
	InstPos string
}

func (e *BackendError) Error() string {
	if e.InstPos != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.Kind, e.Msg, e.InstPos)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}
