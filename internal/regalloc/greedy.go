package regalloc

import "sort"

// Greedy is a minimal reference Allocator: not the "generic graph-coloring
// register allocator" spec §1 explicitly scopes out of the hard core, but
// just enough to drive the ABI/bridge/spill paths end to end in tests and
// the CLI. It assigns registers from a fixed free list per class in vreg-id
// order and spills whatever doesn't fit.
type Greedy struct {
	IntRegs    []RealReg
	FloatRegs  []RealReg
	VectorRegs []RealReg
}

func (g *Greedy) poolFor(t RegType) []RealReg {
	switch t {
	case RegTypeInt:
		return g.IntRegs
	case RegTypeFloat:
		return g.FloatRegs
	case RegTypeVector:
		return g.VectorRegs
	default:
		return nil
	}
}

// Allocate implements Allocator.
func (g *Greedy) Allocate(instrOperands [][]Operand) (map[VRegID]Allocation, error) {
	type key struct {
		id  VRegID
		typ RegType
	}
	seen := map[key]bool{}
	var order []key
	fixedFor := map[VRegID]RealReg{}

	for _, ops := range instrOperands {
		for _, op := range ops {
			if op.Reg.IsRealReg() {
				continue
			}
			k := key{op.Reg.ID(), op.Reg.RegType()}
			if op.Fixed {
				fixedFor[op.Reg.ID()] = op.Reg.RealReg()
			}
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i].id < order[j].id })

	result := map[VRegID]Allocation{}
	used := map[RegType]map[RealReg]bool{
		RegTypeInt:    {},
		RegTypeFloat:  {},
		RegTypeVector: {},
	}
	var spillCursor int32
	const slotSize = 8

	for _, k := range order {
		if r, ok := fixedFor[k.id]; ok {
			result[k.id] = Allocation{Kind: AllocKindReg, Reg: r}
			used[k.typ][r] = true
			continue
		}
		pool := g.poolFor(k.typ)
		assigned := false
		for _, r := range pool {
			if !used[k.typ][r] {
				used[k.typ][r] = true
				result[k.id] = Allocation{Kind: AllocKindReg, Reg: r}
				assigned = true
				break
			}
		}
		if !assigned {
			result[k.id] = Allocation{Kind: AllocKindStack, SlotOff: spillCursor}
			spillCursor += slotSize
		}
	}
	return result, nil
}
