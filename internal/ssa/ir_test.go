package ssa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFunction_NewValueAndDefineValue(t *testing.T) {
	f := NewFunction("f", &Signature{})
	v0 := f.NewValue()
	require.Equal(t, Value(1), v0)

	id := f.AddInstruction(Instruction{Opcode: OpIconst, Typ: TypeI64, Imm: 42})
	f.DefineValue(v0, id)

	gotID, res := f.ValueDef(v0)
	require.Equal(t, id, gotID)
	require.Equal(t, 0, res)
	require.Equal(t, TypeI64, f.ValueType(v0))

	v1 := f.NewValue()
	require.Equal(t, Value(2), v1)
}

func TestFunction_ValueDefUndefinedPanics(t *testing.T) {
	f := NewFunction("f", &Signature{})
	v := f.NewValue()
	require.Panics(t, func() { f.ValueDef(v) })
}

func TestFunction_InstructionData(t *testing.T) {
	f := NewFunction("f", &Signature{})
	id := f.AddInstruction(Instruction{Opcode: OpIadd, Typ: TypeI32})
	got := f.InstructionData(id)
	require.Equal(t, OpIadd, got.Opcode)
	require.Equal(t, TypeI32, got.Typ)
}

func TestFunction_BlockParamsAndSuccessors(t *testing.T) {
	f := NewFunction("f", &Signature{})
	a := f.NewValue()
	f.DefineValue(a, f.AddInstruction(Instruction{Opcode: OpBlockParam, Typ: TypeI64}))

	brif := f.AddInstruction(Instruction{Opcode: OpBrif, Args: []Value{a}, Targets: []BasicBlock{1, 2}})
	f.Blocks = []Block{
		{Params: []Value{a}, Instrs: []InstructionID{brif}},
		{},
		{},
	}

	require.Equal(t, []Value{a}, f.BlockParams(0))
	require.Equal(t, []BasicBlock{1, 2}, f.BlockSuccessors(0))
	require.Nil(t, f.BlockSuccessors(1))
}

func TestFunction_Signature(t *testing.T) {
	sig := &Signature{Params: []Type{TypeI64}, Results: []Type{TypeI64}, CC: CallConvAAPCS64}
	f := NewFunction("f", sig)
	require.Same(t, sig, f.Signature())
}

func TestFunction_BlockInstructions(t *testing.T) {
	f := NewFunction("f", &Signature{})
	id := f.AddInstruction(Instruction{Opcode: OpIconst})
	f.Blocks = []Block{{Instrs: []InstructionID{id}}}
	require.Equal(t, []InstructionID{id}, f.BlockInstructions(0))
}
