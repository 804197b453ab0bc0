package arm64

import "encoding/binary"

// FixupKind distinguishes the bit-field shape a pending label reference
// must be patched into, spec §4.3.
type FixupKind byte

const (
	FixupB19    FixupKind = iota // B.cond / CBZ / CBNZ: 19-bit word offset.
	FixupB26                     // B / BL: 26-bit word offset.
	FixupAdrp                    // ADRP: page-relative, 21-bit immhi:immlo.
	FixupLdrLit                  // LDR (literal): 19-bit word offset.
)

type fixup struct {
	instrOffset int // byte offset of the instruction word needing the patch.
	label       uint32
	kind        FixupKind
}

// MachBuffer is the append-only byte vector spec §3/§4.8 describes, with
// a pending-fixup table and a label-offset table resolved once at the
// end of a function's emission.
type MachBuffer struct {
	bytes       []byte
	labelOffset map[uint32]int
	fixups      []fixup
	relocs      []Relocation
}

// Relocation is produced for ADRP+ADD / ADRP+LDR pairs referencing an
// external symbol, spec §6.
type Relocation struct {
	Symbol       string
	InstrOffset  int
	AddendOffset int64
}

func NewMachBuffer() *MachBuffer {
	return &MachBuffer{labelOffset: map[uint32]int{}}
}

func (b *MachBuffer) Len() int { return len(b.bytes) }

func (b *MachBuffer) AppendU32LE(word uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], word)
	b.bytes = append(b.bytes, tmp[:]...)
}

func (b *MachBuffer) AppendBytes(p []byte) {
	b.bytes = append(b.bytes, p...)
}

// ReserveLabel is a no-op placeholder matching spec §4.8's contract name;
// labels need no up-front reservation in this representation since
// BindLabel records the offset directly.
func (b *MachBuffer) ReserveLabel(id uint32) {}

// BindLabel records that label id resolves to the buffer's current
// offset and returns that offset.
func (b *MachBuffer) BindLabel(id uint32) int {
	off := b.Len()
	b.labelOffset[id] = off
	return off
}

// RecordFixup records that the instruction word at instrOffset needs its
// PC-relative field patched once target is bound.
func (b *MachBuffer) RecordFixup(instrOffset int, target uint32, kind FixupKind) {
	b.fixups = append(b.fixups, fixup{instrOffset: instrOffset, label: target, kind: kind})
}

func (b *MachBuffer) AddRelocation(symbol string, instrOffset int, addend int64) {
	b.relocs = append(b.relocs, Relocation{Symbol: symbol, InstrOffset: instrOffset, AddendOffset: addend})
}

// ResolveFixups patches every recorded fixup's pre-reserved bit field
// with the signed PC-relative word offset to its label. Per spec §4.3,
// all BindLabel calls for a function must complete before this runs
// (spec §5 "Ordering"). Out-of-range displacements are a fatal
// LabelOutOfRange error (spec §7), surfaced to the caller/driver.
func (b *MachBuffer) ResolveFixups() error {
	for _, f := range b.fixups {
		targetOff, ok := b.labelOffset[f.label]
		if !ok {
			return &BackendError{Kind: ErrLabelOutOfRange, Msg: "label never bound"}
		}
		delta := int64(targetOff - f.instrOffset)
		if delta%4 != 0 {
			return &BackendError{Kind: ErrLabelOutOfRange, Msg: "branch displacement not word-aligned"}
		}
		wordDelta := delta / 4

		word := binary.LittleEndian.Uint32(b.bytes[f.instrOffset : f.instrOffset+4])
		switch f.kind {
		case FixupB19, FixupLdrLit:
			if wordDelta < -(1<<18) || wordDelta >= (1<<18) {
				return &BackendError{Kind: ErrLabelOutOfRange, Msg: "19-bit branch/literal displacement out of range"}
			}
			word |= (uint32(wordDelta) & 0x7FFFF) << 5
		case FixupB26:
			if wordDelta < -(1<<25) || wordDelta >= (1<<25) {
				return &BackendError{Kind: ErrLabelOutOfRange, Msg: "26-bit branch displacement out of range"}
			}
			word |= uint32(wordDelta) & 0x3FFFFFF
		case FixupAdrp:
			// ADRP operates on 4KiB pages; delta here is already
			// byte-granular, so reconvert from wordDelta back to pages.
			byteDelta := delta
			pageDelta := byteDelta >> 12
			if pageDelta < -(1<<20) || pageDelta >= (1<<20) {
				return &BackendError{Kind: ErrLabelOutOfRange, Msg: "ADRP page displacement exceeds 2^20 pages (4 GiB)"}
			}
			immlo := uint32(pageDelta) & 0b11
			immhi := (uint32(pageDelta) >> 2) & 0x7FFFF
			word |= immlo<<29 | immhi<<5
		}
		binary.LittleEndian.PutUint32(b.bytes[f.instrOffset:f.instrOffset+4], word)
	}
	return nil
}

// Finish returns the final byte stream and relocation list, spec §4.8.
func (b *MachBuffer) Finish() ([]byte, []Relocation) {
	return b.bytes, b.relocs
}

// AlignNop pads the buffer to a 4-byte (already guaranteed) or larger
// alignment boundary with NOP words (0xD503201F), spec §4.8.
func (b *MachBuffer) AlignNop(align int) {
	const nopWord = 0xD503201F
	for b.Len()%align != 0 {
		b.AppendU32LE(nopWord)
	}
}
