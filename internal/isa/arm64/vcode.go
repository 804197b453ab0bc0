package arm64

import "github.com/arm64cg/arm64cg/internal/regalloc"

// VCodeBlock is one lowered basic block: a dense run of Insts plus the
// block-parameter vregs and successor labels carried over from the IR
// (spec §3 "VCode container").
type VCodeBlock struct {
	Label     uint32
	Params    []regalloc.VReg
	Insts     []*Inst
	Succs     []uint32
	ColdBlock bool
}

// VCode is the per-function lowered-instruction container: a flat,
// ordered sequence of blocks bridging the IR and the final byte stream
// (spec §3/§9). Blocks and instructions are kept as pointers in ordered
// slices; vregs and labels are dense integer ids.
type VCode struct {
	Name       string
	Blocks     []*VCodeBlock
	EntryLabel uint32

	nextVRegID regalloc.VRegID
	nextLabel  uint32
}

func NewVCode(name string) *VCode {
	return &VCode{Name: name}
}

// NextVReg allocates a fresh, not-yet-assigned virtual register of the
// given class.
func (v *VCode) NextVReg(typ regalloc.RegType) regalloc.VReg {
	id := v.nextVRegID
	v.nextVRegID++
	return regalloc.NewVReg(id, typ)
}

// NextLabel allocates a fresh block/branch-target label id. Shared with
// the literal pool's label space (spec §4.2): the caller must seed
// NewLiteralPool with the value NextLabel returns after all blocks are
// created, so pool entries never collide with block labels.
func (v *VCode) NextLabel() uint32 {
	id := v.nextLabel
	v.nextLabel++
	return id
}

// StartBlock opens a new block with label and returns it for the lowering
// engine to append instructions into.
func (v *VCode) StartBlock(label uint32, params []regalloc.VReg) *VCodeBlock {
	b := &VCodeBlock{Label: label, Params: params}
	v.Blocks = append(v.Blocks, b)
	if len(v.Blocks) == 1 {
		v.EntryLabel = label
	}
	return b
}

func (b *VCodeBlock) AddInst(i *Inst) { b.Insts = append(b.Insts, i) }

func (b *VCodeBlock) AddSucc(label uint32) { b.Succs = append(b.Succs, label) }

// AllOperands walks every instruction in program order and appends its
// flat operand list, building the table the register allocator consumes
// in one pass (spec §4.5 "Extraction pass", function-wide view).
func (v *VCode) AllOperands() [][]regalloc.Operand {
	var out [][]regalloc.Operand
	for _, b := range v.Blocks {
		for _, inst := range b.Insts {
			var ops [8]regalloc.Operand
			out = append(out, inst.Operands(ops[:0]))
		}
	}
	return out
}

// ApplyAllocation rewrites every instruction's vreg operands to the
// physical registers alloc assigned (spec §4.5 "Application pass").
func (v *VCode) ApplyAllocation(alloc map[regalloc.VRegID]regalloc.Allocation) {
	for _, b := range v.Blocks {
		for _, inst := range b.Insts {
			inst.AssignRegs(alloc)
		}
	}
}

// Emit lowers every block in program order into buf, binding each block's
// label to its start offset before encoding its instructions, then
// resolves all recorded fixups once the whole function has been emitted
// (spec §5 "Ordering").
func (v *VCode) Emit(buf *MachBuffer) error {
	for _, b := range v.Blocks {
		buf.BindLabel(b.Label)
		for _, inst := range b.Insts {
			if err := Encode(inst, buf); err != nil {
				return err
			}
		}
	}
	return buf.ResolveFixups()
}
