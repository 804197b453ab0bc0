package regalloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intPool(encodings ...byte) []RealReg {
	var out []RealReg
	for _, e := range encodings {
		out = append(out, NewRealReg(RegTypeInt, e))
	}
	return out
}

func TestGreedy_AssignsInVRegIDOrder(t *testing.T) {
	g := &Greedy{IntRegs: intPool(9, 10, 11)}
	v0 := NewVReg(0, RegTypeInt)
	v1 := NewVReg(1, RegTypeInt)

	ops := [][]Operand{
		{{Reg: v1, Pos: PosDef}},
		{{Reg: v0, Pos: PosDef}},
		{{Reg: v1, Pos: PosUse}},
	}
	alloc, err := g.Allocate(ops)
	require.NoError(t, err)
	require.Equal(t, Allocation{Kind: AllocKindReg, Reg: NewRealReg(RegTypeInt, 9)}, alloc[0])
	require.Equal(t, Allocation{Kind: AllocKindReg, Reg: NewRealReg(RegTypeInt, 10)}, alloc[1])
}

func TestGreedy_SpillsOncePoolExhausted(t *testing.T) {
	g := &Greedy{IntRegs: intPool(9, 10)}
	vregs := []VReg{NewVReg(0, RegTypeInt), NewVReg(1, RegTypeInt), NewVReg(2, RegTypeInt)}
	var ops [][]Operand
	for _, v := range vregs {
		ops = append(ops, []Operand{{Reg: v, Pos: PosDef}})
	}
	alloc, err := g.Allocate(ops)
	require.NoError(t, err)
	require.Equal(t, AllocKindReg, alloc[0].Kind)
	require.Equal(t, AllocKindReg, alloc[1].Kind)
	require.Equal(t, AllocKindStack, alloc[2].Kind)
	require.Equal(t, int32(0), alloc[2].SlotOff)
}

func TestGreedy_NeverFreesARegister(t *testing.T) {
	// v0 is only used in the first operand list, but its register is never
	// reclaimed for v1 even though v0 is no longer live afterward: Greedy
	// has no liveness analysis.
	g := &Greedy{IntRegs: intPool(9)}
	v0, v1 := NewVReg(0, RegTypeInt), NewVReg(1, RegTypeInt)
	ops := [][]Operand{
		{{Reg: v0, Pos: PosDef}},
		{{Reg: v0, Pos: PosUse}},
		{{Reg: v1, Pos: PosDef}},
	}
	alloc, err := g.Allocate(ops)
	require.NoError(t, err)
	require.Equal(t, AllocKindReg, alloc[0].Kind)
	require.Equal(t, AllocKindStack, alloc[1].Kind)
}

func TestGreedy_FixedRegHonoredAndExcludedFromPool(t *testing.T) {
	g := &Greedy{IntRegs: intPool(9, 10)}
	fixedReg := NewRealReg(RegTypeInt, 0) // X0, ABI-fixed
	v0 := FromRealReg(fixedReg, RegTypeInt)
	v0.id = 5 // give it a VRegID distinct from its fixed-ness for the map key
	v1 := NewVReg(6, RegTypeInt)

	ops := [][]Operand{
		{{Reg: v0, Pos: PosDef, Fixed: true}},
		{{Reg: v1, Pos: PosDef}},
	}
	alloc, err := g.Allocate(ops)
	require.NoError(t, err)
	require.Equal(t, fixedReg, alloc[5].Reg)
	// v1 still gets the first pool register since fixed regs aren't drawn
	// from the pool at all.
	require.Equal(t, NewRealReg(RegTypeInt, 9), alloc[6].Reg)
}

func TestGreedy_RealRegOperandsIgnored(t *testing.T) {
	g := &Greedy{IntRegs: intPool(9)}
	real := FromRealReg(NewRealReg(RegTypeInt, 2), RegTypeInt)
	v0 := NewVReg(0, RegTypeInt)
	ops := [][]Operand{
		{{Reg: real, Pos: PosUse}, {Reg: v0, Pos: PosDef}},
	}
	alloc, err := g.Allocate(ops)
	require.NoError(t, err)
	require.Len(t, alloc, 1)
	require.Equal(t, NewRealReg(RegTypeInt, 9), alloc[0].Reg)
}

func TestGreedy_DistinctClassPools(t *testing.T) {
	g := &Greedy{
		IntRegs:   intPool(9),
		FloatRegs: []RealReg{NewRealReg(RegTypeFloat, 16)},
	}
	vi := NewVReg(0, RegTypeInt)
	vf := NewVReg(1, RegTypeFloat)
	ops := [][]Operand{
		{{Reg: vi, Pos: PosDef}},
		{{Reg: vf, Pos: PosDef}},
	}
	alloc, err := g.Allocate(ops)
	require.NoError(t, err)
	require.Equal(t, RegTypeInt, alloc[0].Reg.Class())
	require.Equal(t, RegTypeFloat, alloc[1].Reg.Class())
}
