package nullcfg_test

import "github.com/augurlabs/nullcfg/ir"

// A minimal, hand-rolled ir.* implementation for testing nullcfg in
// isolation, standing in for the SSA/CFG construction this module
// deliberately doesn't own (spec.md §1).

type fakeValue struct {
	num     ir.ValueNum
	isNull  bool
	isNNull bool
}

func (v *fakeValue) Num() ir.ValueNum     { return v.num }
func (v *fakeValue) IsNullConst() bool    { return v.isNull }
func (v *fakeValue) IsNonNullConst() bool { return v.isNNull }

func param(n ir.ValueNum) *fakeValue      { return &fakeValue{num: n} }
func nullConst(n ir.ValueNum) *fakeValue  { return &fakeValue{num: n, isNull: true} }
func nonNullConst(n ir.ValueNum) *fakeValue {
	return &fakeValue{num: n, isNNull: true}
}

type fakeExcType struct {
	npe  bool
	name string
}

func (e *fakeExcType) IsNullPointerException() bool { return e.npe }

var npeType = &fakeExcType{npe: true, name: "NullPointerException"}

func checkedType(name string) *fakeExcType { return &fakeExcType{name: name} }

type fakeMethodRef struct {
	id     string
	params int
}

func (m *fakeMethodRef) NumParams() int { return m.params }
func (m *fakeMethodRef) ID() string     { return m.id }

type fakeInstr struct {
	kind     ir.InstrKind
	operands []ir.Value
	defines  ir.Value
	excs     []ir.ExceptionType
	callee   ir.MethodRef
}

func (i *fakeInstr) Kind() ir.InstrKind                        { return i.kind }
func (i *fakeInstr) Operands() []ir.Value                      { return i.operands }
func (i *fakeInstr) Defines() ir.Value                          { return i.defines }
func (i *fakeInstr) DeclaredExceptions() []ir.ExceptionType     { return i.excs }
func (i *fakeInstr) Callee() ir.MethodRef                       { return i.callee }

type fakePhi struct {
	fakeInstr
	edges []ir.PhiEdge
}

func (p *fakePhi) Edges() []ir.PhiEdge { return p.edges }

type fakeBranch struct {
	fakeInstr
	compared  ir.Value
	equality  bool
	tsucc     *fakeBlock
	fsucc     *fakeBlock
}

func (b *fakeBranch) Compared() ir.Value        { return b.compared }
func (b *fakeBranch) IsEquality() bool          { return b.equality }
func (b *fakeBranch) TrueSucc() ir.BasicBlock   { return b.tsucc }
func (b *fakeBranch) FalseSucc() ir.BasicBlock  { return b.fsucc }

type fakeBlock struct {
	id     int
	instrs []ir.Instruction
	pei    ir.Instruction
}

func (b *fakeBlock) ID() int                    { return b.id }
func (b *fakeBlock) Instrs() []ir.Instruction   { return b.instrs }
func (b *fakeBlock) RelevantPEI() ir.Instruction { return b.pei }

type fakeCFG struct {
	nodes []ir.BasicBlock
	succs map[int][]ir.Edge
	preds map[int][]ir.Edge
}

func newFakeCFG(nodes []ir.BasicBlock, edges []ir.Edge) *fakeCFG {
	c := &fakeCFG{
		nodes: nodes,
		succs: make(map[int][]ir.Edge),
		preds: make(map[int][]ir.Edge),
	}
	for _, e := range edges {
		c.succs[e.From.ID()] = append(c.succs[e.From.ID()], e)
		c.preds[e.To.ID()] = append(c.preds[e.To.ID()], e)
	}
	return c
}

func (c *fakeCFG) Nodes() []ir.BasicBlock       { return c.nodes }
func (c *fakeCFG) Succs(b ir.BasicBlock) []ir.Edge { return c.succs[b.ID()] }
func (c *fakeCFG) Preds(b ir.BasicBlock) []ir.Edge { return c.preds[b.ID()] }
func (c *fakeCFG) Contains(b ir.BasicBlock) bool {
	for _, n := range c.nodes {
		if n.ID() == b.ID() {
			return true
		}
	}
	return false
}

type fakeFunction struct {
	blocks []ir.BasicBlock
	params []ir.Value
	maxVar ir.ValueNum
}

func (f *fakeFunction) Blocks() []ir.BasicBlock  { return f.blocks }
func (f *fakeFunction) Params() []ir.Value       { return f.params }
func (f *fakeFunction) MaxValueNum() ir.ValueNum { return f.maxVar }

type fakeMethodState struct {
	throws bool
}

func (m *fakeMethodState) ThrowsException(ir.Instruction) bool { return m.throws }
