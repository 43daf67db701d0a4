package contextsel

import "github.com/augurlabs/nullcfg/ir"

// Caller bundles a caller's own IR and def-use relation, the same
// shape as Callee but named distinctly since a method can appear as
// both in the same call graph.
type Caller interface {
	IR() ir.Function
	DefUse() ir.DefUse
	// Context is the analysis context the caller itself was analyzed
	// under. A root caller (no enclosing context) returns nil.
	Context() Context
}

// CallSite is the minimal shape of a call instruction the tracer and
// context constructor need: its positional argument values.
type CallSite interface {
	Args() []ir.Value
}

// DependentParams returns the indices of site's arguments that are
// derived from caller's Nth parameter through a chain of local or
// reflective property reads (spec.md §4.B2). An index i is dependent
// when the value passed as argument i is reached by starting from that
// value and repeatedly replacing it with the reference operand of the
// get/reflective-get instruction that defines it, until either the
// caller's Nth parameter is reached (dependent) or the chain bottoms
// out at a definition that isn't a property read (not dependent).
//
// The walk is a plain worklist rather than recursion through the
// def-use graph, since property-read chains in real code can be long
// enough that a recursive walk risks stack growth proportional to
// chain depth (tmc-mirror-go.tools/pointer/gen.go's genStaticCall and
// genDynamicCall similarly iterate call sites rather than recursing
// into them).
func DependentParams(caller Caller, site CallSite, n int) []int {
	fn := caller.IR()
	if fn == nil {
		return nil
	}
	params := fn.Params()
	if n >= len(params) {
		return nil
	}
	target := params[n]
	du := caller.DefUse()
	if du == nil {
		return nil
	}

	var dependent []int
	for i, arg := range site.Args() {
		if arg == nil {
			continue
		}
		if reaches(du, arg, target) {
			dependent = append(dependent, i)
		}
	}
	return dependent
}

// reaches walks backward from seed through its def chain, following
// only get and reflective-get definitions, until it either finds
// target or the chain bottoms out.
func reaches(du ir.DefUse, seed, target ir.Value) bool {
	seen := map[ir.ValueNum]bool{seed.Num(): true}
	queue := []ir.Value{seed}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		if v.Num() == target.Num() {
			return true
		}

		def := du.Def(v)
		if def == nil {
			continue
		}
		switch def.Kind() {
		case ir.KindFieldGet, ir.KindReflectiveGet:
			ops := def.Operands()
			if len(ops) == 0 {
				continue
			}
			ref := ops[0]
			if !seen[ref.Num()] {
				seen[ref.Num()] = true
				queue = append(queue, ref)
			}
		}
	}
	return false
}
