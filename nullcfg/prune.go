package nullcfg

import "github.com/augurlabs/nullcfg/ir"

// pruneEdges is the edge-pruning visitor of spec.md §4.A4. It is a
// single pass over cfg's blocks in arbitrary order; deletions are
// collected into the returned slice (the "negative graph") and applied
// as a filter by the caller once traversal completes. peiStates maps a
// block's ID to the state in effect at its relevant PEI.
func pruneEdges(cfg ir.ControlFlowGraph, peiStates map[int]*State, ignore []ir.ExceptionType, ms ir.MethodState) ([]ir.Edge, error) {
	var deleted []ir.Edge
	seen := make(map[edgeSig]struct{})

	addAll := func(edges []ir.Edge, wantExceptional bool) {
		for _, e := range edges {
			if e.Exceptional != wantExceptional {
				continue
			}
			sig := edgeSig{e.From.ID(), e.To.ID(), e.Exceptional}
			if _, ok := seen[sig]; ok {
				continue
			}
			seen[sig] = struct{}{}
			deleted = append(deleted, e)
		}
	}

	for _, b := range cfg.Nodes() {
		pei := b.RelevantPEI()
		if pei == nil {
			continue
		}

		remaining := subtractIgnored(pei.DeclaredExceptions(), ignore)

		switch pei.Kind() {
		case ir.KindStaticInvoke, ir.KindAlloc:
			// No null receiver to test, but if nothing remains to
			// throw, the exceptional edges are dead.
			if len(remaining) == 0 {
				addAll(cfg.Succs(b), true)
			}

		case ir.KindInvoke, ir.KindFieldGet, ir.KindFieldPut,
			ir.KindArrayLoad, ir.KindArrayStore, ir.KindArrayLength,
			ir.KindMonitor, ir.KindThrow:

			onlyNPE := len(remaining) == 1 && remaining[0].IsNullPointerException()
			if onlyNPE && pei.Kind() == ir.KindInvoke {
				// A non-null receiver doesn't rule out the callee
				// dereferencing null internally; consult the method
				// summary oracle. Without a negative answer, keep the
				// exceptional edges.
				if ms == nil || ms.ThrowsException(pei) {
					onlyNPE = false
				}
			}
			if !onlyNPE {
				// May throw a non-NPE exception; delete nothing.
				continue
			}

			ops := pei.Operands()
			if len(ops) == 0 {
				continue
			}
			r := ops[0]
			in := peiStates[b.ID()]
			if in == nil {
				continue
			}
			switch in.Get(r) {
			case NeverNull:
				addAll(cfg.Succs(b), true)
			case AlwaysNull:
				addAll(cfg.Succs(b), false)
			}

		default:
			return nil, nonPEIError(pei)
		}
	}

	return deleted, nil
}

type edgeSig struct {
	from, to    int
	exceptional bool
}

// subtractIgnored returns the declared exception set minus ignore,
// preserving order. Types are compared by interface equality, which
// holds for the pointer- or string-backed ExceptionType implementations
// real frameworks use.
func subtractIgnored(declared, ignore []ir.ExceptionType) []ir.ExceptionType {
	if len(ignore) == 0 {
		return declared
	}
	ignored := make(map[ir.ExceptionType]struct{}, len(ignore))
	for _, e := range ignore {
		ignored[e] = struct{}{}
	}
	out := make([]ir.ExceptionType, 0, len(declared))
	for _, d := range declared {
		if _, skip := ignored[d]; skip {
			continue
		}
		out = append(out, d)
	}
	return out
}
