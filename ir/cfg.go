package ir

// Edge is a directed CFG edge. Exceptional edges lead to a handler or to
// the method's unwind exit; normal edges are ordinary control flow.
type Edge struct {
	From, To BasicBlock
	// Exceptional reports whether this edge models the transfer taken
	// when From's relevant PEI raises an exception, as opposed to a
	// normal (non-exceptional) successor.
	Exceptional bool
}

// ControlFlowGraph is the external CFG contract (spec.md §6). It must
// not be mutated by nullcfg; pruning instead builds a "negative graph"
// of edges to delete and filters them out at the end (spec.md §3).
type ControlFlowGraph interface {
	Nodes() []BasicBlock
	// Succs returns b's outgoing edges, both normal and exceptional.
	Succs(b BasicBlock) []Edge
	// Preds returns b's incoming edges.
	Preds(b BasicBlock) []Edge
	// Contains reports whether b belongs to this graph, used to reject
	// a block from a different CFG passed to nullcfg's Analysis.State
	// (spec.md §7 "Argument error").
	Contains(b BasicBlock) bool
}

// PrunedCFG is produced by nullcfg.Analysis.Run: the same node set as
// the input CFG, with the negative-graph edges filtered out.
type PrunedCFG struct {
	cfg     ControlFlowGraph
	deleted map[edgeKey]struct{}
}

type edgeKey struct {
	from, to    int
	exceptional bool
}

func keyOf(e Edge) edgeKey {
	return edgeKey{from: e.From.ID(), to: e.To.ID(), exceptional: e.Exceptional}
}

// NewPrunedCFG wraps cfg, treating every edge in deleted as absent.
// deleted is not retained beyond construction; callers may discard
// their copy.
func NewPrunedCFG(cfg ControlFlowGraph, deleted []Edge) *PrunedCFG {
	m := make(map[edgeKey]struct{}, len(deleted))
	for _, e := range deleted {
		m[keyOf(e)] = struct{}{}
	}
	return &PrunedCFG{cfg: cfg, deleted: m}
}

// Nodes returns the node set, identical to the input CFG's (spec.md §8
// property 2: "Preservation of block set").
func (p *PrunedCFG) Nodes() []BasicBlock { return p.cfg.Nodes() }

// Succs returns b's surviving outgoing edges.
func (p *PrunedCFG) Succs(b BasicBlock) []Edge { return p.filter(p.cfg.Succs(b)) }

// Preds returns b's surviving incoming edges.
func (p *PrunedCFG) Preds(b BasicBlock) []Edge { return p.filter(p.cfg.Preds(b)) }

// Contains delegates to the input CFG; pruning never adds or removes
// nodes, only edges.
func (p *PrunedCFG) Contains(b BasicBlock) bool { return p.cfg.Contains(b) }

// NumDeleted reports how many edges were removed.
func (p *PrunedCFG) NumDeleted() int { return len(p.deleted) }

func (p *PrunedCFG) filter(edges []Edge) []Edge {
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if _, dead := p.deleted[keyOf(e)]; !dead {
			out = append(out, e)
		}
	}
	return out
}
