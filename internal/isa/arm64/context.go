package arm64

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/arm64cg/arm64cg/internal/regalloc"
	"github.com/arm64cg/arm64cg/internal/ssa"
)

// externNames interns external call-symbol strings, spec §5 ("an
// external-name intern table, sync.Map, grounded on the teacher's
// general habit of sync.Map-based interning for cache keys"). It is
// process-wide so repeated compilations of calls to the same symbol
// share one backing string.
var externNames sync.Map

func internName(s string) string {
	if v, ok := externNames.Load(s); ok {
		return v.(string)
	}
	externNames.Store(s, s)
	return s
}

// CompileResult is everything CompileFunction hands back to the driver,
// spec §6.
type CompileResult struct {
	Bytes       []byte
	Relocations []Relocation
	FrameSize   int64
}

// Context drives one function's compilation end to end: lowering,
// mov_imm legalization, the register-allocator bridge, ABI prologue/
// epilogue splicing, and final emission (spec §5). It carries no
// mutable state across calls to CompileFunction — every call allocates
// its own VCode, literal pool, and ABI descriptor, per spec §5's
// "allocates all mutable state fresh" rule.
type Context struct {
	Allocator regalloc.Allocator
	Log       *logrus.Entry
}

// NewContext builds a Context with the reference greedy allocator and a
// logrus logger. Callers that already run Greedy elsewhere should
// prefer wiring their own regalloc.Allocator instead of this default.
func NewContext(log *logrus.Entry) *Context {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Context{
		Allocator: &regalloc.Greedy{
			IntRegs:   defaultIntPool(),
			FloatRegs: defaultFloatPool(),
		},
		Log: log,
	}
}

// defaultIntPool is the greedy allocator's integer free list: the
// caller-saved scratch set (X9-X15) first, then X19-X28 as an overflow
// pool once scratch is exhausted. Greedy never frees a register once
// assigned (it has no liveness analysis), so any function needing more
// than 7 live integer temporaries spills into callee-saved registers
// before falling back to the stack; usedCalleeSaves then reports
// whichever of X19-X28 actually got used so the ABI can preserve them.
// X8 (indirect-result) and X16-X18 (platform/IP) are never handed out.
func defaultIntPool() []regalloc.RealReg {
	var out []regalloc.RealReg
	for _, n := range []byte{9, 10, 11, 12, 13, 14, 15} {
		out = append(out, intReal(n))
	}
	for n := byte(19); n <= 28; n++ {
		out = append(out, intReal(n))
	}
	return out
}

// defaultFloatPool mirrors defaultIntPool for the float/vector class:
// caller-saved V16-V31 first, then callee-saved V8-V15 as overflow.
func defaultFloatPool() []regalloc.RealReg {
	var out []regalloc.RealReg
	for n := byte(16); n <= 31; n++ {
		out = append(out, floatReal(n))
	}
	for n := byte(8); n <= 15; n++ {
		out = append(out, floatReal(n))
	}
	return out
}

// CompileFunction runs the full pipeline for one ssa.Function and
// returns its machine code, relocations, and computed frame size, spec
// §5 "Ordering": lower -> expand mov_imm -> extract operands -> allocate
// -> apply allocation -> splice ABI prologue/epilogue -> encode ->
// resolve fixups -> append literal pool.
func (c *Context) CompileFunction(fn *ssa.Function, platform Platform, variadic bool) (*CompileResult, error) {
	sig := fn.Signature()
	abi, err := NewAarch64ABICallee(sig.CC, platform, variadic)
	if err != nil {
		c.Log.WithError(err).Error("abi construction failed")
		return nil, err
	}

	lc := NewLowerCtx(fn, abi)
	vc, pool, err := lc.Lower()
	if err != nil {
		c.Log.WithFields(logrus.Fields{"func": fn.Name}).WithError(err).Error("lowering failed")
		return nil, err
	}

	ExpandMovImm(vc, pool)

	operands := vc.AllOperands()
	alloc, err := c.Allocator.Allocate(operands)
	if err != nil {
		c.Log.WithError(err).Error("register allocation failed")
		return nil, err
	}
	vc.ApplyAllocation(alloc)

	for _, r := range usedCalleeSaves(alloc) {
		if err := abi.AddCalleeSave(r); err != nil {
			c.Log.WithError(err).Warn("skipping non-callee-save register reported by allocator")
		}
	}

	spliceProloguesEpilogues(vc, abi)

	buf := NewMachBuffer()
	if err := vc.Emit(buf); err != nil {
		c.Log.WithFields(logrus.Fields{"func": fn.Name}).WithError(err).Error("emission failed")
		return nil, err
	}
	pool.Emit(buf)

	bytes, relocs := buf.Finish()
	c.Log.WithFields(logrus.Fields{
		"func":       fn.Name,
		"bytes":      len(bytes),
		"frame_size": abi.FrameSize(),
	}).Debug("function compiled")

	return &CompileResult{Bytes: bytes, Relocations: relocs, FrameSize: abi.FrameSize()}, nil
}

// usedCalleeSaves scans the allocation for any callee-saved physical
// register the allocator actually assigned, in a stable (encoding)
// order, so AddCalleeSave's insertion order is deterministic across
// runs with the same input.
func usedCalleeSaves(alloc map[regalloc.VRegID]regalloc.Allocation) []regalloc.RealReg {
	seen := map[regalloc.RealReg]bool{}
	var out []regalloc.RealReg
	for _, a := range alloc {
		if a.Kind != regalloc.AllocKindReg {
			continue
		}
		if seen[a.Reg] {
			continue
		}
		enc := a.Reg.Encoding()
		isCalleeSave := (a.Reg.Class() == regalloc.RegTypeInt && enc >= 19 && enc <= 28) ||
			(a.Reg.Class() == regalloc.RegTypeFloat && enc >= 8 && enc <= 15)
		if !isCalleeSave {
			continue
		}
		seen[a.Reg] = true
		out = append(out, a.Reg)
	}
	sortRealRegs(out)
	return out
}

func sortRealRegs(regs []regalloc.RealReg) {
	for i := 1; i < len(regs); i++ {
		for j := i; j > 0 && regs[j-1].Encoding() > regs[j].Encoding(); j-- {
			regs[j-1], regs[j] = regs[j], regs[j-1]
		}
	}
}

// spliceProloguesEpilogues inserts the ABI prologue at the start of the
// entry block and the epilogue in place of every Ret instruction,
// spec §4.6 "Prologue"/"Epilogue" (the frame size depends on the final
// callee-save set, so this must run after allocation, not before).
func spliceProloguesEpilogues(vc *VCode, abi *Aarch64ABICallee) {
	if len(vc.Blocks) == 0 {
		return
	}
	entry := vc.Blocks[0]
	entry.Insts = append(abi.EmitPrologue(), entry.Insts...)

	for _, b := range vc.Blocks {
		var rewritten []*Inst
		for _, inst := range b.Insts {
			if inst.Kind == Ret {
				rewritten = append(rewritten, abi.EmitEpilogue()...)
				continue
			}
			rewritten = append(rewritten, inst)
		}
		b.Insts = rewritten
	}
}
