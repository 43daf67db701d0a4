package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/augurlabs/nullcfg/ir"
)

// This file loads the tiny JSON IR fixtures under testdata/ in place
// of a real go/ssa program representation (construction of that is out
// of scope, spec.md §1). It exists only to drive the demo CLI.

type jsonFunction struct {
	Name          string           `json:"name"`
	NumParams     int              `json:"numParams"`
	MaxValue      int              `json:"maxValue"`
	NullValues    []int            `json:"nullValues"`
	NonNullValues []int            `json:"nonNullValues"`
	MethodThrows  map[string]bool  `json:"methodThrows"`
	Blocks        []jsonBlock      `json:"blocks"`
}

type jsonBlock struct {
	ID     int         `json:"id"`
	Instrs []jsonInstr `json:"instrs"`
	PEI    *int        `json:"pei"`
	Succs  []jsonEdge  `json:"succs"`
}

type jsonEdge struct {
	To          int  `json:"to"`
	Exceptional bool `json:"exceptional"`
}

type jsonInstr struct {
	Kind       string        `json:"kind"`
	Operands   []int         `json:"operands"`
	Defines    *int          `json:"defines"`
	Exceptions []string      `json:"exceptions"`
	Callee     string        `json:"callee"`
	Edges      []jsonPhiEdge `json:"edges"`
	Source     *int          `json:"source"`
	Compared   *int          `json:"compared"`
	Equality   bool          `json:"equality"`
	TrueSucc   *int          `json:"trueSucc"`
	FalseSucc  *int          `json:"falseSucc"`
}

type jsonPhiEdge struct {
	Pred  int `json:"pred"`
	Value int `json:"value"`
}

var instrKinds = map[string]ir.InstrKind{
	"other":          ir.KindOther,
	"alloc":          ir.KindAlloc,
	"fieldget":       ir.KindFieldGet,
	"fieldput":       ir.KindFieldPut,
	"arraylength":    ir.KindArrayLength,
	"arrayload":      ir.KindArrayLoad,
	"arraystore":     ir.KindArrayStore,
	"invoke":         ir.KindInvoke,
	"staticinvoke":   ir.KindStaticInvoke,
	"checkcast":      ir.KindCheckCast,
	"phi":            ir.KindPhi,
	"pi":             ir.KindPi,
	"condbranchnil":  ir.KindCondBranchNil,
	"monitor":        ir.KindMonitor,
	"throw":          ir.KindThrow,
	"reflectiveget":  ir.KindReflectiveGet,
	"reflectiveput":  ir.KindReflectivePut,
	"isdefinedin":    ir.KindIsDefinedIn,
	"return":         ir.KindReturn,
}

// loadFixture reads and builds a function, its CFG and a MethodState
// oracle backed by the fixture's methodThrows table.
func loadFixture(path string) (ir.Function, ir.ControlFlowGraph, ir.MethodState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	var jf jsonFunction
	if err := json.Unmarshal(data, &jf); err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return build(&jf)
}

type value struct {
	num     ir.ValueNum
	isNull  bool
	isNNull bool
}

func (v *value) Num() ir.ValueNum     { return v.num }
func (v *value) IsNullConst() bool    { return v.isNull }
func (v *value) IsNonNullConst() bool { return v.isNNull }

type excType struct{ npe bool }

func (e *excType) IsNullPointerException() bool { return e.npe }

type methodRef struct{ name string }

func (m *methodRef) NumParams() int { return 0 }
func (m *methodRef) ID() string     { return m.name }

type instr struct {
	kind     ir.InstrKind
	operands []ir.Value
	defines  ir.Value
	excs     []ir.ExceptionType
	callee   ir.MethodRef
}

func (i *instr) Kind() ir.InstrKind                     { return i.kind }
func (i *instr) Operands() []ir.Value                   { return i.operands }
func (i *instr) Defines() ir.Value                      { return i.defines }
func (i *instr) DeclaredExceptions() []ir.ExceptionType  { return i.excs }
func (i *instr) Callee() ir.MethodRef                    { return i.callee }

type phiInstr struct {
	instr
	edges []ir.PhiEdge
}

func (p *phiInstr) Edges() []ir.PhiEdge { return p.edges }

type piInstr struct {
	instr
	source ir.Value
}

func (p *piInstr) Source() ir.Value { return p.source }

type branchInstr struct {
	instr
	compared  ir.Value
	equality  bool
	trueSucc  ir.BasicBlock
	falseSucc ir.BasicBlock
}

func (b *branchInstr) Compared() ir.Value       { return b.compared }
func (b *branchInstr) IsEquality() bool         { return b.equality }
func (b *branchInstr) TrueSucc() ir.BasicBlock  { return b.trueSucc }
func (b *branchInstr) FalseSucc() ir.BasicBlock { return b.falseSucc }

type block struct {
	id     int
	instrs []ir.Instruction
	pei    ir.Instruction
}

func (b *block) ID() int                     { return b.id }
func (b *block) Instrs() []ir.Instruction    { return b.instrs }
func (b *block) RelevantPEI() ir.Instruction { return b.pei }

type cfg struct {
	nodes []ir.BasicBlock
	succs map[int][]ir.Edge
	preds map[int][]ir.Edge
}

func (c *cfg) Nodes() []ir.BasicBlock        { return c.nodes }
func (c *cfg) Succs(b ir.BasicBlock) []ir.Edge { return c.succs[b.ID()] }
func (c *cfg) Preds(b ir.BasicBlock) []ir.Edge { return c.preds[b.ID()] }
func (c *cfg) Contains(b ir.BasicBlock) bool {
	for _, n := range c.nodes {
		if n.ID() == b.ID() {
			return true
		}
	}
	return false
}

type function struct {
	blocks []ir.BasicBlock
	params []ir.Value
	maxVar ir.ValueNum
}

func (f *function) Blocks() []ir.BasicBlock  { return f.blocks }
func (f *function) Params() []ir.Value       { return f.params }
func (f *function) MaxValueNum() ir.ValueNum { return f.maxVar }

type methodState struct{ throws map[string]bool }

func (m *methodState) ThrowsException(pei ir.Instruction) bool {
	callee := pei.Callee()
	if callee == nil {
		return true
	}
	throws, ok := m.throws[callee.ID()]
	if !ok {
		return true // unknown callee: conservative
	}
	return throws
}

func build(jf *jsonFunction) (ir.Function, ir.ControlFlowGraph, ir.MethodState, error) {
	values := map[int]*value{}
	valueOf := func(n int) *value {
		if v, ok := values[n]; ok {
			return v
		}
		v := &value{num: ir.ValueNum(n)}
		values[n] = v
		return v
	}
	for _, n := range jf.NullValues {
		valueOf(n).isNull = true
	}
	for _, n := range jf.NonNullValues {
		valueOf(n).isNNull = true
	}

	blocks := make(map[int]*block, len(jf.Blocks))
	for _, jb := range jf.Blocks {
		blocks[jb.ID] = &block{id: jb.ID}
	}

	succs := map[int][]ir.Edge{}
	preds := map[int][]ir.Edge{}

	for _, jb := range jf.Blocks {
		b := blocks[jb.ID]
		b.instrs = make([]ir.Instruction, 0, len(jb.Instrs))
		for _, ji := range jb.Instrs {
			instrIface, err := buildInstr(ji, valueOf, blocks)
			if err != nil {
				return nil, nil, nil, err
			}
			b.instrs = append(b.instrs, instrIface)
		}
		if jb.PEI != nil {
			idx := *jb.PEI
			if idx < 0 || idx >= len(b.instrs) {
				return nil, nil, nil, fmt.Errorf("block %d: pei index %d out of range", jb.ID, idx)
			}
			b.pei = b.instrs[idx]
		}
		for _, je := range jb.Succs {
			to, ok := blocks[je.To]
			if !ok {
				return nil, nil, nil, fmt.Errorf("block %d: unknown successor %d", jb.ID, je.To)
			}
			e := ir.Edge{From: b, To: to, Exceptional: je.Exceptional}
			succs[jb.ID] = append(succs[jb.ID], e)
			preds[je.To] = append(preds[je.To], e)
		}
	}

	nodes := make([]ir.BasicBlock, 0, len(jf.Blocks))
	for _, jb := range jf.Blocks {
		nodes = append(nodes, blocks[jb.ID])
	}

	params := make([]ir.Value, jf.NumParams)
	for i := 0; i < jf.NumParams; i++ {
		params[i] = valueOf(i)
	}

	fn := &function{blocks: nodes, params: params, maxVar: ir.ValueNum(jf.MaxValue)}
	graph := &cfg{nodes: nodes, succs: succs, preds: preds}
	ms := &methodState{throws: jf.MethodThrows}
	return fn, graph, ms, nil
}

func buildInstr(ji jsonInstr, valueOf func(int) *value, blocks map[int]*block) (ir.Instruction, error) {
	kind, ok := instrKinds[ji.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown instruction kind %q", ji.Kind)
	}

	base := instr{kind: kind}
	for _, n := range ji.Operands {
		base.operands = append(base.operands, valueOf(n))
	}
	if ji.Defines != nil {
		base.defines = valueOf(*ji.Defines)
	}
	for _, name := range ji.Exceptions {
		base.excs = append(base.excs, &excType{npe: name == "NullPointerException"})
	}
	if ji.Callee != "" {
		base.callee = &methodRef{name: ji.Callee}
	}

	switch kind {
	case ir.KindPhi:
		p := &phiInstr{instr: base}
		for _, je := range ji.Edges {
			pred, ok := blocks[je.Pred]
			if !ok {
				return nil, fmt.Errorf("phi: unknown predecessor block %d", je.Pred)
			}
			p.edges = append(p.edges, ir.PhiEdge{Pred: pred, Value: valueOf(je.Value)})
		}
		return p, nil

	case ir.KindPi:
		p := &piInstr{instr: base}
		if ji.Source != nil {
			p.source = valueOf(*ji.Source)
		}
		return p, nil

	case ir.KindCondBranchNil:
		br := &branchInstr{instr: base, equality: ji.Equality}
		if ji.Compared != nil {
			br.compared = valueOf(*ji.Compared)
		}
		if ji.TrueSucc != nil {
			b, ok := blocks[*ji.TrueSucc]
			if !ok {
				return nil, fmt.Errorf("condbranchnil: unknown trueSucc block %d", *ji.TrueSucc)
			}
			br.trueSucc = b
		}
		if ji.FalseSucc != nil {
			b, ok := blocks[*ji.FalseSucc]
			if !ok {
				return nil, fmt.Errorf("condbranchnil: unknown falseSucc block %d", *ji.FalseSucc)
			}
			br.falseSucc = b
		}
		return br, nil

	default:
		return &base, nil
	}
}
