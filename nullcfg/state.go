package nullcfg

import "github.com/augurlabs/nullcfg/ir"

// ParameterState is an optional per-parameter initial lattice element
// supplied to Analysis (spec.md §3). A nil ParameterState means every
// parameter starts at ⊤ (Both); an entry missing from a non-nil map
// also defaults to ⊤.
type ParameterState map[ir.ValueNum]NullState

// State is NullPointerState from spec.md §3: a total map from SSA value
// numbers to the null lattice, dense over [0, maxVarNum]. It does not
// separately store constants' pinned states — those are derived
// on-demand from the Value itself via Get, since the symbol table
// already tells us a constant's nullness without needing a slot.
type State struct {
	vals []NullState
}

// NewState allocates a fresh state, ⊥ everywhere, sized for values
// [0, maxVarNum].
func NewState(maxVarNum ir.ValueNum) *State {
	return &State{vals: make([]NullState, maxVarNum+1)}
}

// Get returns v's current state: constants are pinned regardless of
// the map contents (NullConst ⇒ AlwaysNull, a known-non-null constant
// ⇒ NeverNull), otherwise the stored slot.
func (s *State) Get(v ir.Value) NullState {
	if v == nil {
		return Unknown
	}
	if v.IsNullConst() {
		return AlwaysNull
	}
	if v.IsNonNullConst() {
		return NeverNull
	}
	n := v.Num()
	if int(n) < 0 || int(n) >= len(s.vals) {
		return Unknown
	}
	return s.vals[n]
}

// SetNeverNull pins v to NeverNull, e.g. after an allocation.
func (s *State) SetNeverNull(v ir.ValueNum) { s.set(v, NeverNull) }

// SetAlwaysNull pins v to AlwaysNull, e.g. a literal-null assignment.
func (s *State) SetAlwaysNull(v ir.ValueNum) { s.set(v, AlwaysNull) }

// Set assigns v's state directly; used by the generic per-instruction
// transfer functions (transfer.go) for defined values whose state is
// ⊤ or copied from another value.
func (s *State) Set(v ir.ValueNum, ns NullState) { s.set(v, ns) }

func (s *State) set(v ir.ValueNum, ns NullState) {
	if int(v) < 0 || int(v) >= len(s.vals) {
		return
	}
	s.vals[v] = ns
}

// Assign copies src's current state onto dst, the "assign(dst, src)"
// operation of spec.md §4.A1 (used by check-cast transfer).
func (s *State) Assign(dst ir.ValueNum, src ir.Value) {
	s.set(dst, s.Get(src))
}

// Clone returns an independent deep copy.
func (s *State) Clone() *State {
	cp := make([]NullState, len(s.vals))
	copy(cp, s.vals)
	return &State{vals: cp}
}

// Equal reports whether s and o assign the same state to every value
// number, used by the solver to detect a fixed point.
func (s *State) Equal(o *State) bool {
	if len(s.vals) != len(o.vals) {
		return false
	}
	for i := range s.vals {
		if s.vals[i] != o.vals[i] {
			return false
		}
	}
	return true
}

// JoinInto replaces s's contents with the pointwise join of s and o,
// reporting whether anything changed (monotone: a value never moves
// back toward ⊥ within one solve, spec.md §3).
func (s *State) JoinInto(o *State) (changed bool) {
	for i := range s.vals {
		j := Join(s.vals[i], o.vals[i])
		if j != s.vals[i] {
			s.vals[i] = j
			changed = true
		}
	}
	return changed
}

// seedInitial builds the method-entry IN state: every value ⊥ except
// parameters, which are seeded from ps (⊤ if ps is nil or has no entry
// for that parameter).
func seedInitial(fn ir.Function, maxVarNum ir.ValueNum, ps ParameterState) *State {
	st := NewState(maxVarNum)
	for _, p := range fn.Params() {
		n := p.Num()
		if ps != nil {
			if v, ok := ps[n]; ok {
				st.set(n, v)
				continue
			}
		}
		st.set(n, Both)
	}
	return st
}
