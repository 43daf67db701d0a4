// Package nullcfg implements Core A: an intraprocedural null-dereference
// CFG pruner. It computes a four-point nullness state for every SSA
// value in a method and uses it to delete CFG edges that correspond to
// impossible exceptional or impossible normal control transfers caused
// solely by null-pointer exceptions.
package nullcfg

// NullState is the four-point lattice L of spec.md §3: a per-SSA-value
// abstract nullness. The zero value is Unknown (⊥), matching the
// teacher's `nilness` zero value convention (analyzer/knil/nilness.go).
type NullState int

const (
	// Unknown is ⊥: unreachable-so-far, or simply not yet constrained.
	Unknown NullState = iota
	// NeverNull is a definite non-null value.
	NeverNull
	// AlwaysNull is a definite null value.
	AlwaysNull
	// Both is ⊤: the value may or may not be null.
	Both
)

func (s NullState) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case NeverNull:
		return "never-null"
	case AlwaysNull:
		return "always-null"
	case Both:
		return "maybe-null"
	default:
		return "invalid-null-state"
	}
}

// Join computes the least upper bound of a and b: identity with ⊥,
// NeverNull ⊔ AlwaysNull = ⊤ (Both), and monotonic otherwise.
func Join(a, b NullState) NullState {
	if a == Unknown {
		return b
	}
	if b == Unknown {
		return a
	}
	if a == b {
		return a
	}
	return Both
}

// Meet computes the greatest lower bound of a and b, the dual of Join.
// It is used only for branch-sensitive refinement at guard points
// (spec.md §4.A1): narrowing ⊤ toward a concrete branch fact, or
// detecting that two contradictory facts collapse to ⊥ (unreachable).
func Meet(a, b NullState) NullState {
	if a == Both {
		return b
	}
	if b == Both {
		return a
	}
	if a == b {
		return a
	}
	return Unknown
}

// IsNeverNull reports whether s is the definite non-null state.
func IsNeverNull(s NullState) bool { return s == NeverNull }

// IsAlwaysNull reports whether s is the definite null state.
func IsAlwaysNull(s NullState) bool { return s == AlwaysNull }
