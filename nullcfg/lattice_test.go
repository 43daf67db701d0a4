package nullcfg

import "testing"

func TestJoinTable(t *testing.T) {
	cases := []struct {
		a, b, want NullState
	}{
		{Unknown, Unknown, Unknown},
		{Unknown, NeverNull, NeverNull},
		{AlwaysNull, Unknown, AlwaysNull},
		{NeverNull, NeverNull, NeverNull},
		{AlwaysNull, AlwaysNull, AlwaysNull},
		{NeverNull, AlwaysNull, Both},
		{AlwaysNull, NeverNull, Both},
		{Both, NeverNull, Both},
		{AlwaysNull, Both, Both},
	}
	for _, c := range cases {
		if got := Join(c.a, c.b); got != c.want {
			t.Errorf("Join(%v, %v) = %v; want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestMeetTable(t *testing.T) {
	cases := []struct {
		a, b, want NullState
	}{
		{Both, Both, Both},
		{Both, NeverNull, NeverNull},
		{AlwaysNull, Both, AlwaysNull},
		{NeverNull, NeverNull, NeverNull},
		{NeverNull, AlwaysNull, Unknown},
		{Unknown, Both, Unknown},
	}
	for _, c := range cases {
		if got := Meet(c.a, c.b); got != c.want {
			t.Errorf("Meet(%v, %v) = %v; want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestJoinIsMonotone(t *testing.T) {
	// Height-3 lattice: repeatedly joining must never move a value back
	// toward ⊥ once it has reached a higher element (spec.md §3).
	order := map[NullState]int{Unknown: 0, NeverNull: 1, AlwaysNull: 1, Both: 2}
	states := []NullState{Unknown, NeverNull, AlwaysNull, Both}
	for _, a := range states {
		for _, b := range states {
			j := Join(a, b)
			if order[j] < order[a] || order[j] < order[b] {
				t.Errorf("Join(%v, %v) = %v moved below an operand", a, b, j)
			}
		}
	}
}
