package arm64

// LiteralPool is the ordered, deduplicated constant pool of spec §3/§4.2:
// values referenced by PC-relative LDR (literal) when an immediate can't
// be encoded in-instruction (oversized integers) and for every float
// constant, which lowering always loads from the pool.
type LiteralPool struct {
	entries []literalEntry
	index   map[uint64]uint32 // value -> label, for dedup.
	nextLbl uint32
}

type literalEntry struct {
	value uint64
	label uint32
}

func NewLiteralPool(firstLabel uint32) *LiteralPool {
	return &LiteralPool{index: map[uint64]uint32{}, nextLbl: firstLabel}
}

// AddConstant deduplicates on value: inserting the same value twice
// returns the same label and grows the pool by exactly one entry in
// total, per spec §4.2/§8 invariant 10.
func (p *LiteralPool) AddConstant(v uint64) uint32 {
	if lbl, ok := p.index[v]; ok {
		return lbl
	}
	lbl := p.nextLbl
	p.nextLbl++
	p.entries = append(p.entries, literalEntry{value: v, label: lbl})
	p.index[v] = lbl
	return lbl
}

// Size is 8 bytes per entry, spec §4.2.
func (p *LiteralPool) Size() int { return len(p.entries) * 8 }

// Emit writes the pool's entries little-endian, in insertion order,
// binding each entry's label to its offset in buf first.
func (p *LiteralPool) Emit(buf *MachBuffer) {
	for _, e := range p.entries {
		buf.BindLabel(e.label)
		lo := uint32(e.value)
		hi := uint32(e.value >> 32)
		buf.AppendU32LE(lo)
		buf.AppendU32LE(hi)
	}
}

func (p *LiteralPool) Len() int { return len(p.entries) }
