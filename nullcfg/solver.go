package nullcfg

import (
	"github.com/augurlabs/nullcfg/ir"
)

// ProgressMonitor lets an external progress-cancellation mechanism
// interrupt a long-running solve (spec.md §5, §7). Its plumbing is out
// of scope; this is the minimal contract the solver consults between
// worklist iterations.
type ProgressMonitor interface {
	Cancelled() bool
}

type noProgressMonitor struct{}

func (noProgressMonitor) Cancelled() bool { return false }

// Config mirrors the shape of golang.org/x/tools/go/pointer.Config
// (tmc-mirror-go.tools/pointer/gen.go): a single struct of inputs
// handed to the analysis constructor, rather than a long parameter
// list or a pile of functional options.
type Config struct {
	// Ignore is subtracted from every PEI's declared exception set
	// before deciding prunability (spec.md §4.A4).
	Ignore []ir.ExceptionType

	// Params seeds parameter nullness at method entry. Nil means every
	// parameter starts at ⊤.
	Params ParameterState

	// MethodState answers whether an invoke instruction's callee may
	// itself throw. Nil is treated the same as "always may throw".
	MethodState ir.MethodState

	// Monitor is consulted between worklist iterations. Nil means the
	// solve can never be cancelled.
	Monitor ProgressMonitor

	// Debug enables pp-pretty-printed dumps of intermediate states
	// (debug.go); never set on a hot path.
	Debug bool
}

// Analysis is Core A's entry point: given a method's IR and CFG, Run
// computes block-indexed IN states and a pruned CFG.
type Analysis struct {
	fn     ir.Function
	cfg    ir.ControlFlowGraph
	config *Config

	ran        bool
	pruned     *ir.PrunedCFG
	states     map[int]*State
	numDeleted int
}

// New constructs an analysis over fn's IR and its control-flow graph.
// config may be nil, equivalent to an empty Config.
func New(fn ir.Function, cfg ir.ControlFlowGraph, config *Config) *Analysis {
	if config == nil {
		config = &Config{}
	}
	return &Analysis{fn: fn, cfg: cfg, config: config}
}

// Run executes the solver and the edge-pruning visitor. It returns
// ErrCancelled if the progress monitor signals cancellation, or
// ErrNonPEI if the IR is inconsistent (a block's relevant PEI is not
// actually a PEI-shaped instruction). Any other condition (empty IR,
// nothing prunable) is not an error (spec.md §7).
func (a *Analysis) Run() error {
	blocks := a.fn.Blocks()
	if len(blocks) == 0 {
		// spec.md §4.A3: "If the IR is empty, the solver is not
		// invoked; the pruned CFG equals the input CFG."
		a.pruned = ir.NewPrunedCFG(a.cfg, nil)
		a.states = map[int]*State{}
		a.numDeleted = 0
		a.ran = true
		return nil
	}

	monitor := a.config.Monitor
	if monitor == nil {
		monitor = noProgressMonitor{}
	}

	in, peiIn, err := a.solve(blocks[0], monitor)
	if err != nil {
		return err
	}

	deleted, err := pruneEdges(a.cfg, peiIn, a.config.Ignore, a.config.MethodState)
	if err != nil {
		return err
	}

	a.states = in
	a.pruned = ir.NewPrunedCFG(a.cfg, deleted)
	a.numDeleted = len(deleted)
	a.ran = true
	if a.config.Debug {
		dumpSolve(a.fn, in, deleted)
	}
	return nil
}

type edgeKey struct{ from, to int }

// solve runs the forward, meet-over-paths worklist fixed point of
// spec.md §4.A3, returning each block's IN state and, separately, the
// state in effect at the point its relevant PEI executes (which can
// differ from IN(b) when earlier instructions in the same block
// refine values the PEI reads). The framework is edge-sensitive:
// outEdge holds a separate OUT state per outgoing edge, which is what
// makes π-refinement (refineBranch) possible.
func (a *Analysis) solve(entry ir.BasicBlock, monitor ProgressMonitor) (in, peiIn map[int]*State, err error) {
	maxVar := a.fn.MaxValueNum()
	in = make(map[int]*State)
	peiIn = make(map[int]*State)
	outEdge := make(map[edgeKey]*State)

	in[entry.ID()] = seedInitial(a.fn, maxVar, a.config.Params)

	queue := []ir.BasicBlock{entry}
	queued := map[int]bool{entry.ID(): true}

	for len(queue) > 0 {
		if monitor.Cancelled() {
			return nil, nil, ErrCancelled
		}

		b := queue[0]
		queue = queue[1:]
		queued[b.ID()] = false

		curIn := in[b.ID()]
		if b.ID() != entry.ID() {
			curIn = a.joinPreds(b, outEdge, maxVar)
			if prev := in[b.ID()]; prev != nil && prev.Equal(curIn) {
				continue
			}
			in[b.ID()] = curIn
		}

		work := curIn.Clone()
		a.runBlock(b, work, outEdge, peiIn)

		trueOut, falseOut := a.successorStates(b, work)

		for _, e := range a.cfg.Succs(b) {
			next := a.pickEdgeState(b, e, trueOut, falseOut, work)

			key := edgeKey{b.ID(), e.To.ID()}
			prev, ok := outEdge[key]
			if ok && prev.Equal(next) {
				continue
			}
			outEdge[key] = next
			if !queued[e.To.ID()] {
				queue = append(queue, e.To)
				queued[e.To.ID()] = true
			}
		}
	}

	return in, peiIn, nil
}

// joinPreds computes IN(b) as the pointwise join over every
// predecessor edge's OUT state. A predecessor whose edge hasn't
// produced an OUT state yet contributes nothing (⊥), which is sound:
// the join only grows as more edges are discovered.
func (a *Analysis) joinPreds(b ir.BasicBlock, outEdge map[edgeKey]*State, maxVar ir.ValueNum) *State {
	acc := NewState(maxVar)
	for _, e := range a.cfg.Preds(b) {
		key := edgeKey{e.From.ID(), b.ID()}
		if st, ok := outEdge[key]; ok {
			acc.JoinInto(st)
		}
	}
	return acc
}

// runBlock applies the per-instruction transfer functions in order,
// mutating work. φ-nodes consult outEdge for their predecessors'
// current OUT states. When b has a relevant PEI, peiIn records the
// state in effect at that exact point (spec.md §4.A4's "IN(b)(r)"
// read literally, but accounting for earlier instructions in the same
// block that refine r before the PEI is reached).
func (a *Analysis) runBlock(b ir.BasicBlock, work *State, outEdge map[edgeKey]*State, peiIn map[int]*State) {
	outOf := func(pred ir.BasicBlock) *State {
		if st, ok := outEdge[edgeKey{pred.ID(), b.ID()}]; ok {
			return st
		}
		return nil
	}
	pei := b.RelevantPEI()
	for _, instr := range b.Instrs() {
		if instr == pei {
			peiIn[b.ID()] = work.Clone()
		}
		if phi, ok := instr.(ir.PhiInstruction); ok {
			applyPhi(work, phi, outOf)
			continue
		}
		applyTransfer(work, instr)
	}
}

// successorStates returns the branch-refined true/false OUT states if
// b's terminator is a null-comparison conditional branch, else
// (nil, nil) to signal that every successor shares work unchanged.
func (a *Analysis) successorStates(b ir.BasicBlock, work *State) (trueOut, falseOut *State) {
	instrs := b.Instrs()
	if len(instrs) == 0 {
		return nil, nil
	}
	br, ok := instrs[len(instrs)-1].(ir.CondBranchInstruction)
	if !ok {
		return nil, nil
	}
	return refineBranch(work, br)
}

func (a *Analysis) pickEdgeState(b ir.BasicBlock, e ir.Edge, trueOut, falseOut, work *State) *State {
	if trueOut == nil {
		return work.Clone()
	}
	instrs := b.Instrs()
	br, ok := instrs[len(instrs)-1].(ir.CondBranchInstruction)
	if !ok {
		return work.Clone()
	}
	if br.TrueSucc() != nil && br.TrueSucc().ID() == e.To.ID() {
		return trueOut
	}
	if br.FalseSucc() != nil && br.FalseSucc().ID() == e.To.ID() {
		return falseOut
	}
	// An exceptional edge out of a block that also ends in a
	// null-comparison branch (uncommon, but not forbidden): the guard
	// refinement doesn't apply to it.
	return work.Clone()
}

// PrunedCFG returns the pruned CFG computed by Run.
func (a *Analysis) PrunedCFG() (*ir.PrunedCFG, error) {
	if !a.ran {
		return nil, ErrNotRun
	}
	return a.pruned, nil
}

// NumDeletedEdges returns how many edges Run removed; zero if no
// pruning occurred or the IR was empty.
func (a *Analysis) NumDeletedEdges() (int, error) {
	if !a.ran {
		return 0, ErrNotRun
	}
	return a.numDeleted, nil
}

// State returns b's IN state. For an empty IR, Run still succeeds and
// State returns a fresh state derived from the initial parameter state
// for any non-nil block argument (there being no real blocks to look
// up); a nil block is rejected with ErrBadBlock.
func (a *Analysis) State(b ir.BasicBlock) (*State, error) {
	if !a.ran {
		return nil, ErrNotRun
	}
	if b == nil {
		return nil, ErrBadBlock
	}
	if len(a.fn.Blocks()) == 0 {
		return seedInitial(a.fn, a.fn.MaxValueNum(), a.config.Params), nil
	}
	if !a.cfg.Contains(b) {
		return nil, ErrBadBlock
	}
	st, ok := a.states[b.ID()]
	if !ok {
		return NewState(a.fn.MaxValueNum()), nil
	}
	return st, nil
}
