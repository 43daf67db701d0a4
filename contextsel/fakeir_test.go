package contextsel_test

import (
	"github.com/augurlabs/nullcfg/contextsel"
	"github.com/augurlabs/nullcfg/ir"
)

// Minimal hand-rolled ir.* implementations, mirroring nullcfg's
// fakeir_test.go, plus the contextsel-specific fakes (Callee, Caller,
// CallSite, instance keys) this package's own contracts need.

type fakeValue struct{ num ir.ValueNum }

func (v *fakeValue) Num() ir.ValueNum     { return v.num }
func (v *fakeValue) IsNullConst() bool    { return false }
func (v *fakeValue) IsNonNullConst() bool { return false }

func val(n ir.ValueNum) *fakeValue { return &fakeValue{num: n} }

type fakeInstr struct {
	kind     ir.InstrKind
	operands []ir.Value
	defines  ir.Value
}

func (i *fakeInstr) Kind() ir.InstrKind                    { return i.kind }
func (i *fakeInstr) Operands() []ir.Value                  { return i.operands }
func (i *fakeInstr) Defines() ir.Value                     { return i.defines }
func (i *fakeInstr) DeclaredExceptions() []ir.ExceptionType { return nil }
func (i *fakeInstr) Callee() ir.MethodRef                  { return nil }

type fakeMethodRef struct {
	id     string
	params int
}

func (m *fakeMethodRef) NumParams() int { return m.params }
func (m *fakeMethodRef) ID() string     { return m.id }

type fakeFunction struct {
	params []ir.Value
	maxVar ir.ValueNum
}

func (f *fakeFunction) Blocks() []ir.BasicBlock  { return nil }
func (f *fakeFunction) Params() []ir.Value       { return f.params }
func (f *fakeFunction) MaxValueNum() ir.ValueNum { return f.maxVar }

// fakeDefUse models def-use as two plain maps keyed by value number,
// set up directly by each test rather than derived from instructions,
// since tests only need a handful of edges.
type fakeDefUse struct {
	def  map[ir.ValueNum]ir.Instruction
	uses map[ir.ValueNum][]ir.Instruction
}

func newFakeDefUse() *fakeDefUse {
	return &fakeDefUse{def: map[ir.ValueNum]ir.Instruction{}, uses: map[ir.ValueNum][]ir.Instruction{}}
}

func (d *fakeDefUse) Def(v ir.Value) ir.Instruction { return d.def[v.Num()] }
func (d *fakeDefUse) Uses(v ir.Value) []ir.Instruction { return d.uses[v.Num()] }

func (d *fakeDefUse) addDef(v ir.Value, instr ir.Instruction) {
	d.def[v.Num()] = instr
}

func (d *fakeDefUse) addUse(v ir.Value, instr ir.Instruction) {
	d.uses[v.Num()] = append(d.uses[v.Num()], instr)
}

type fakeCallee struct {
	ref ir.MethodRef
	fn  ir.Function
	du  ir.DefUse
}

func (c *fakeCallee) Ref() ir.MethodRef { return c.ref }
func (c *fakeCallee) IR() ir.Function   { return c.fn }
func (c *fakeCallee) DefUse() ir.DefUse { return c.du }

type fakeCallSite struct{ args []ir.Value }

func (s *fakeCallSite) Args() []ir.Value { return s.args }

type fakeCaller struct {
	fn  ir.Function
	du  ir.DefUse
	ctx contextsel.Context
}

func (c *fakeCaller) IR() ir.Function           { return c.fn }
func (c *fakeCaller) DefUse() ir.DefUse         { return c.du }
func (c *fakeCaller) Context() contextsel.Context { return c.ctx }

type fakeInstanceKey struct{ id string }

func (k *fakeInstanceKey) Identity() string { return k.id }

type fakeClassHierarchy struct{ undefined ir.InstanceKey }

func (h *fakeClassHierarchy) UndefinedInstanceKey() ir.InstanceKey {
	if h.undefined != nil {
		return h.undefined
	}
	return &fakeInstanceKey{id: "<undefined>"}
}

// fakeBaseSelector is a context-insensitive BaseSelector: it always
// hands back a single shared sentinel context, the call-graph-builder
// equivalent of object-insensitive analysis. Selector wraps whatever
// this returns, so tests can tell a Selector-minted context apart from
// the base by checking IsPropName.
type fakeBaseSelector struct{ relevant map[int]struct{} }

type baseContext struct{ tag string }

func (c *baseContext) Base() contextsel.Context { return nil }
func (c *baseContext) IsPropName() bool         { return false }
func (c *baseContext) ParamIndex() int          { return -1 }
func (c *baseContext) InstanceKeyAt() (ir.InstanceKey, bool) { return nil, false }

var sharedBaseContext = &baseContext{tag: "base"}

func (s *fakeBaseSelector) CalleeTarget(contextsel.Caller, contextsel.CallSite, contextsel.Callee, []ir.InstanceKey) contextsel.Context {
	return sharedBaseContext
}

func (s *fakeBaseSelector) RelevantParameters(contextsel.Caller, contextsel.CallSite) map[int]struct{} {
	if s.relevant == nil {
		return map[int]struct{}{}
	}
	return s.relevant
}
