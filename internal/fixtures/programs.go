// Package fixtures builds small ssa.Function programs by hand, standing
// in for "the IR producer" (spec §6 names it out of scope). Used by
// both cmd/arm64cg (so the CLI has something concrete to compile
// without a full textual-IR front end) and the isa/arm64 CompileFunction
// tests, which compile the end-to-end scenarios of spec §8 and check
// structural properties of the output rather than literal bytes.
package fixtures

import "github.com/arm64cg/arm64cg/internal/ssa"

// Names lists the programs Build recognizes, in the order spec §8
// numbers its end-to-end scenarios.
var Names = []string{
	"minimal_return",
	"add_two_args",
	"eight_args_stack",
	"three_callee_saves",
	"variadic",
	"icmp_brif",
}

// Build returns the named program, or nil if name is not recognized.
func Build(name string) *ssa.Function {
	switch name {
	case "minimal_return":
		return minimalReturn()
	case "add_two_args":
		return addTwoArgs()
	case "eight_args_stack":
		return eightArgsStack()
	case "three_callee_saves":
		return threeCalleeSaves()
	case "variadic":
		return variadic()
	case "icmp_brif":
		return icmpBrif()
	default:
		return nil
	}
}

// minimalReturn: function() -> i64 { return 0 }, spec §8 scenario 1.
func minimalReturn() *ssa.Function {
	sig := &ssa.Signature{Results: []ssa.Type{ssa.TypeI64}, CC: ssa.CallConvAAPCS64}
	f := ssa.NewFunction("minimal_return", sig)
	f.Blocks = []ssa.Block{{}}
	zero := f.NewValue()
	id := f.AddInstruction(ssa.Instruction{Opcode: ssa.OpIconst, Typ: ssa.TypeI64, Imm: 0})
	f.DefineValue(zero, id)
	f.Blocks[0].Instrs = append(f.Blocks[0].Instrs, id)
	retID := f.AddInstruction(ssa.Instruction{Opcode: ssa.OpReturn, Args: []ssa.Value{zero}})
	f.Blocks[0].Instrs = append(f.Blocks[0].Instrs, retID)
	return f
}

// addTwoArgs: function(a, b i64) -> i64 { return a + b }, scenario 2.
func addTwoArgs() *ssa.Function {
	sig := &ssa.Signature{
		Params:  []ssa.Type{ssa.TypeI64, ssa.TypeI64},
		Results: []ssa.Type{ssa.TypeI64},
		CC:      ssa.CallConvAAPCS64,
	}
	f := ssa.NewFunction("add_two_args", sig)
	a := f.NewValue()
	f.DefineValue(a, entryParamInst(f, ssa.TypeI64))
	b := f.NewValue()
	f.DefineValue(b, entryParamInst(f, ssa.TypeI64))
	f.Blocks = []ssa.Block{{Params: []ssa.Value{a, b}}}

	sum := f.NewValue()
	addID := f.AddInstruction(ssa.Instruction{Opcode: ssa.OpIadd, Typ: ssa.TypeI64, Args: []ssa.Value{a, b}})
	f.DefineValue(sum, addID)
	f.Blocks[0].Instrs = append(f.Blocks[0].Instrs, addID)

	retID := f.AddInstruction(ssa.Instruction{Opcode: ssa.OpReturn, Args: []ssa.Value{sum}})
	f.Blocks[0].Instrs = append(f.Blocks[0].Instrs, retID)
	return f
}

// entryParamInst allocates a block-param pseudo-instruction so ValueDef
// has somewhere to point: block params are bound directly to ABI
// registers (or loaded from the stack) by the lowering engine, which
// still reads Typ off of it via Function.ValueType.
func entryParamInst(f *ssa.Function, typ ssa.Type) ssa.InstructionID {
	return f.AddInstruction(ssa.Instruction{Opcode: ssa.OpBlockParam, Typ: typ})
}

// eightArgsStack: nine i64 params, returns the ninth (which AAPCS64
// places on the stack once X0-X7 are exhausted), scenario 3.
func eightArgsStack() *ssa.Function {
	params := make([]ssa.Type, 9)
	for i := range params {
		params[i] = ssa.TypeI64
	}
	sig := &ssa.Signature{Params: params, Results: []ssa.Type{ssa.TypeI64}, CC: ssa.CallConvAAPCS64}
	f := ssa.NewFunction("eight_args_stack", sig)

	vals := make([]ssa.Value, 9)
	for i := range vals {
		v := f.NewValue()
		f.DefineValue(v, entryParamInst(f, ssa.TypeI64))
		vals[i] = v
	}
	f.Blocks = []ssa.Block{{Params: vals}}

	retID := f.AddInstruction(ssa.Instruction{Opcode: ssa.OpReturn, Args: []ssa.Value{vals[8]}})
	f.Blocks[0].Instrs = append(f.Blocks[0].Instrs, retID)
	return f
}

// threeCalleeSaves: a function whose body is built entirely from
// integer temporaries so the greedy allocator — which never frees a
// register once assigned — runs through its 7-register caller-saved
// scratch pool (X9-X15) and is forced to hand out three more from its
// callee-saved overflow pool (X19-X21), exercising scenario 4's
// three-callee-save frame.
func threeCalleeSaves() *ssa.Function {
	sig := &ssa.Signature{Params: []ssa.Type{ssa.TypeI64}, Results: []ssa.Type{ssa.TypeI64}, CC: ssa.CallConvAAPCS64}
	f := ssa.NewFunction("three_callee_saves", sig)
	a := f.NewValue()
	f.DefineValue(a, entryParamInst(f, ssa.TypeI64))
	f.Blocks = []ssa.Block{{Params: []ssa.Value{a}}}

	// 5 iterations x 2 fresh vregs (the constant and the running sum) =
	// 10 total, 3 more than the 7-register scratch pool holds.
	const numTemps = 5
	vals := make([]ssa.Value, numTemps)
	prev := a
	for i := 0; i < numTemps; i++ {
		one := f.NewValue()
		oneID := f.AddInstruction(ssa.Instruction{Opcode: ssa.OpIconst, Typ: ssa.TypeI64, Imm: int64(i + 1)})
		f.DefineValue(one, oneID)
		f.Blocks[0].Instrs = append(f.Blocks[0].Instrs, oneID)

		sum := f.NewValue()
		addID := f.AddInstruction(ssa.Instruction{Opcode: ssa.OpIadd, Typ: ssa.TypeI64, Args: []ssa.Value{prev, one}})
		f.DefineValue(sum, addID)
		f.Blocks[0].Instrs = append(f.Blocks[0].Instrs, addID)
		vals[i] = sum
		prev = sum
	}

	retID := f.AddInstruction(ssa.Instruction{Opcode: ssa.OpReturn, Args: []ssa.Value{prev}})
	f.Blocks[0].Instrs = append(f.Blocks[0].Instrs, retID)
	return f
}

// variadic: void f(int, ...) with no variadic args actually consumed in
// the body, exercising the register-save-area prologue of scenario 5.
func variadic() *ssa.Function {
	sig := &ssa.Signature{
		Params:      []ssa.Type{ssa.TypeI32},
		CC:          ssa.CallConvAAPCS64,
		Variadic:    true,
		FixedParams: 1,
	}
	f := ssa.NewFunction("variadic", sig)
	a := f.NewValue()
	f.DefineValue(a, entryParamInst(f, ssa.TypeI32))
	f.Blocks = []ssa.Block{{Params: []ssa.Value{a}}}

	retID := f.AddInstruction(ssa.Instruction{Opcode: ssa.OpReturn})
	f.Blocks[0].Instrs = append(f.Blocks[0].Instrs, retID)
	return f
}

// icmpBrif: v3 = icmp.eq v1, v2; brif v3, true, false; each arm returns
// a distinct constant, scenario 6.
func icmpBrif() *ssa.Function {
	sig := &ssa.Signature{Params: []ssa.Type{ssa.TypeI64, ssa.TypeI64}, Results: []ssa.Type{ssa.TypeI64}, CC: ssa.CallConvAAPCS64}
	f := ssa.NewFunction("icmp_brif", sig)
	v1 := f.NewValue()
	f.DefineValue(v1, entryParamInst(f, ssa.TypeI64))
	v2 := f.NewValue()
	f.DefineValue(v2, entryParamInst(f, ssa.TypeI64))

	v3 := f.NewValue()
	cmpID := f.AddInstruction(ssa.Instruction{
		Opcode: ssa.OpIcmp, Typ: ssa.TypeI64, Args: []ssa.Value{v1, v2}, Cond: byte(ssa.IntEqual),
	})
	f.DefineValue(v3, cmpID)

	f.Blocks = []ssa.Block{
		{Params: []ssa.Value{v1, v2}}, // entry
		{},                            // true branch
		{},                            // false branch
	}
	brifID := f.AddInstruction(ssa.Instruction{
		Opcode: ssa.OpBrif, Args: []ssa.Value{v3}, Targets: []ssa.BasicBlock{1, 2},
	})
	f.Blocks[0].Instrs = []ssa.InstructionID{cmpID, brifID}

	oneVal := f.NewValue()
	oneID := f.AddInstruction(ssa.Instruction{Opcode: ssa.OpIconst, Typ: ssa.TypeI64, Imm: 1})
	f.DefineValue(oneVal, oneID)
	ret1 := f.AddInstruction(ssa.Instruction{Opcode: ssa.OpReturn, Args: []ssa.Value{oneVal}})
	f.Blocks[1].Instrs = []ssa.InstructionID{oneID, ret1}

	zeroVal := f.NewValue()
	zeroID := f.AddInstruction(ssa.Instruction{Opcode: ssa.OpIconst, Typ: ssa.TypeI64, Imm: 0})
	f.DefineValue(zeroVal, zeroID)
	ret2 := f.AddInstruction(ssa.Instruction{Opcode: ssa.OpReturn, Args: []ssa.Value{zeroVal}})
	f.Blocks[2].Instrs = []ssa.InstructionID{zeroID, ret2}

	return f
}
