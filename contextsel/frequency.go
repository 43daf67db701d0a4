// Package contextsel implements Core B: a property-name context
// selector for call-graph construction in a dynamic object-property
// language. A callee that uses its Nth positional argument as a
// dynamic property key (obj[arg]) is cloned per concrete value of that
// argument, giving object-sensitive analysis along "correlated
// read/write" parameters.
package contextsel

import "github.com/augurlabs/nullcfg/ir"

// Frequency is the three-way classification of spec.md §4.B1.
type Frequency int

const (
	NEVER Frequency = iota
	SOMETIMES
	ALWAYS
)

func (f Frequency) String() string {
	switch f {
	case NEVER:
		return "never"
	case SOMETIMES:
		return "sometimes"
	case ALWAYS:
		return "always"
	default:
		return "invalid-frequency"
	}
}

// Callee bundles what the classifier and tracer need about a callee:
// its reference (identity + declared parameter count), its IR (which
// may have zero blocks for an abstract or unknown method), and the
// def-use relation over that IR.
type Callee interface {
	Ref() ir.MethodRef
	IR() ir.Function
	DefUse() ir.DefUse
}

// isPropNameUse reports whether use reads target as the computed key
// of a reflective property access or an is-defined-in existence check
// (spec.md §4.B1 steps 3). This module indexes a callee's parameters
// directly by position (fn.Params()[n]) rather than reproducing the
// source WALA implementation's 1-indexed SSA-value-number offset
// ("value N+1 is the Nth user-visible argument"): our ir.Function
// contract already exposes parameters as a plain positional slice, so
// the offset has no work to do here.
func isPropNameUse(use ir.Instruction, target ir.Value) bool {
	switch use.Kind() {
	case ir.KindReflectiveGet, ir.KindReflectivePut, ir.KindIsDefinedIn:
		ops := use.Operands()
		if len(ops) < 2 {
			return false
		}
		return ops[1].Num() == target.Num()
	default:
		return false
	}
}
