package ssa

// Value is a dense integer handle to an SSA value, per spec §9 ("arena
// allocated indices, not pointers").
type Value uint32

// ValueInvalid is the zero-value sentinel; real values start at 1 so a
// zero Value is always recognizably absent.
const ValueInvalid Value = 0

// BasicBlock is a dense handle to a block.
type BasicBlock uint32

// InstructionID is a dense handle to an instruction.
type InstructionID uint32

// Opcode enumerates the IR operations the lowering engine (internal/isa/arm64)
// matches against. This is a small, spec-driven subset of a full SSA ISA —
// exactly the opcodes exercised by the lowering rules and end-to-end
// scenarios in spec.md §4.4/§8.
type Opcode byte

const (
	OpInvalid Opcode = iota
	OpIconst
	OpF32const
	OpF64const
	OpIadd
	OpIsub
	OpImul
	OpSdiv
	OpUdiv
	OpIcmp
	OpFcmp
	OpFadd
	OpFsub
	OpFmul
	OpFdiv
	OpBand
	OpBor
	OpBxor
	OpBnot
	OpIshl
	OpSshr
	OpUshr
	OpRotl
	OpRotr
	OpClz
	OpCtz // synthesized: clz(rbit(x))
	OpBswap
	OpIabs
	OpFcopysign
	OpBitselect
	OpSmin
	OpUmin
	OpSmax
	OpUmax
	OpSextend
	OpUextend
	OpFcvtToSint
	OpFcvtToUint
	OpFcvtFromSint
	OpFcvtFromUint
	OpSload8
	OpSload16
	OpSload32
	OpUload8
	OpUload16
	OpUload32
	OpLoad // natural-width load (i32/i64/f32/f64/v128)
	OpStore
	OpJump
	OpBrif
	OpCall
	OpCallIndirect
	OpReturn
	OpBlockParam // pseudo: reading a block parameter as a Value
)

// Instruction is one arena-allocated IR instruction. The operand layout
// depends on Opcode: most binary ops use Args[0], Args[1]; Icmp/Fcmp also
// set Cond; Iconst/F32const/F64const set Imm; loads/stores set Args[0] as
// the pointer base and Imm as the constant byte offset; Brif sets
// Args[0] as the condition value and Targets[0]/Targets[1] as the two
// successor blocks; Call/CallIndirect set Args as the argument values and
// ExtName/Args[0] (for indirect) as the callee.
type Instruction struct {
	Opcode  Opcode
	Typ     Type // result type, for opcodes that produce exactly one value
	Args    []Value
	Imm     int64
	Cond    byte // IntCC or FloatCC, interpreted per Opcode
	Targets []BasicBlock
	ExtName string // symbol name for direct calls
	Sig     *Signature
}

// Function is the per-function IR unit the backend compiles. It is a
// minimal, read-only (from the backend's perspective) stand-in for a full
// SSA builder's output.
type Function struct {
	Name      string
	Sig       *Signature
	Blocks    []Block
	instrs    []Instruction
	valueDefs []valueDef // indexed by Value-1
}

type valueDef struct {
	inst   InstructionID
	result int // which result of the defining instruction (always 0 here: no multi-result ops)
}

// Block is one basic block: an ordered list of instruction ids, a set of
// block parameters (phi-node stand-ins), and the predecessor list used by
// the lowering engine when assigning registers to parameters.
type Block struct {
	Params []Value
	Instrs []InstructionID
	Preds  []BasicBlock
}

// Signature is the ABI-facing description of a function, spec §3
// ("ABISignature").
type Signature struct {
	Params  []Type
	Results []Type
	CC      CallingConvention
	// Variadic marks the signature as accepting a variable argument tail
	// (spec §4.6 "Variadic functions"); FixedParams is the count of named
	// (non-variadic) leading parameters.
	Variadic    bool
	FixedParams int
}

// NewFunction creates an empty function with the given signature.
func NewFunction(name string, sig *Signature) *Function {
	return &Function{Name: name, Sig: sig}
}

// AddInstruction appends an instruction to the function's instruction
// arena and returns its id. If the opcode produces a result, the caller
// must subsequently call DefineValue to associate a Value with it.
func (f *Function) AddInstruction(i Instruction) InstructionID {
	f.instrs = append(f.instrs, i)
	return InstructionID(len(f.instrs) - 1)
}

// DefineValue records that InstructionID i defines Value v (result 0).
func (f *Function) DefineValue(v Value, i InstructionID) {
	idx := int(v) - 1
	for len(f.valueDefs) <= idx {
		f.valueDefs = append(f.valueDefs, valueDef{})
	}
	f.valueDefs[idx] = valueDef{inst: i, result: 0}
}

// NewValue returns the next unused Value handle (1-based, dense). It does
// not reserve the handle: until DefineValue records it, another call
// returns the same Value.
func (f *Function) NewValue() Value {
	return Value(len(f.valueDefs) + 1)
}

// --- Read-only queries consumed by the backend, per spec §6. ---

// ValueDef returns which instruction defines v and which of its results.
func (f *Function) ValueDef(v Value) (InstructionID, int) {
	idx := int(v) - 1
	if idx < 0 || idx >= len(f.valueDefs) {
		panic("ssa: use of undefined value")
	}
	d := f.valueDefs[idx]
	return d.inst, d.result
}

// InstructionData returns the instruction identified by id.
func (f *Function) InstructionData(id InstructionID) *Instruction {
	return &f.instrs[id]
}

// ValueType returns the type of v, read off its defining instruction.
func (f *Function) ValueType(v Value) Type {
	id, _ := f.ValueDef(v)
	return f.instrs[id].Typ
}

// BlockParams returns the block parameter values of b (its φ-node sites).
func (f *Function) BlockParams(b BasicBlock) []Value {
	return f.Blocks[b].Params
}

// BlockSuccessors returns the target blocks of b's outgoing control-flow
// edges, read off its terminator instruction's Targets.
func (f *Function) BlockSuccessors(b BasicBlock) []BasicBlock {
	blk := f.Blocks[b]
	if len(blk.Instrs) == 0 {
		return nil
	}
	term := f.instrs[blk.Instrs[len(blk.Instrs)-1]]
	return term.Targets
}

// Signature returns the function's ABI signature.
func (f *Function) Signature() *Signature { return f.Sig }

// BlockInstructions returns the ordered instruction ids of b.
func (f *Function) BlockInstructions(b BasicBlock) []InstructionID {
	return f.Blocks[b].Instrs
}
