package contextsel_test

import (
	"testing"

	"github.com/augurlabs/nullcfg/contextsel"
	"github.com/augurlabs/nullcfg/ir"
)

// function(o, k) { return o[k]; } — k (param 1) is used only as a
// reflective-get key, so it classifies ALWAYS.
func TestClassifyAlways(t *testing.T) {
	o, k := val(0), val(1)
	get := &fakeInstr{kind: ir.KindReflectiveGet, operands: []ir.Value{o, k}, defines: val(2)}

	du := newFakeDefUse()
	du.addUse(k, get)

	callee := &fakeCallee{
		ref: &fakeMethodRef{id: "f", params: 2},
		fn:  &fakeFunction{params: []ir.Value{o, k}, maxVar: 3},
		du:  du,
	}

	c := contextsel.NewClassifier(1)
	if got := c.Classify(callee); got != contextsel.ALWAYS {
		t.Errorf("Classify = %v; want ALWAYS", got)
	}
}

// function(o, k) { log(k); return o[k]; } — k is used both as a
// property key and as an ordinary argument, so it classifies SOMETIMES.
func TestClassifySometimes(t *testing.T) {
	o, k := val(0), val(1)
	get := &fakeInstr{kind: ir.KindReflectiveGet, operands: []ir.Value{o, k}, defines: val(2)}
	call := &fakeInstr{kind: ir.KindStaticInvoke, operands: []ir.Value{k}}

	du := newFakeDefUse()
	du.addUse(k, get)
	du.addUse(k, call)

	callee := &fakeCallee{
		ref: &fakeMethodRef{id: "g", params: 2},
		fn:  &fakeFunction{params: []ir.Value{o, k}, maxVar: 3},
		du:  du,
	}

	c := contextsel.NewClassifier(1)
	if got := c.Classify(callee); got != contextsel.SOMETIMES {
		t.Errorf("Classify = %v; want SOMETIMES", got)
	}
}

// function(o, k) { return o.x; } — k is never read at all.
func TestClassifyNever(t *testing.T) {
	o, k := val(0), val(1)

	du := newFakeDefUse()

	callee := &fakeCallee{
		ref: &fakeMethodRef{id: "h", params: 2},
		fn:  &fakeFunction{params: []ir.Value{o, k}, maxVar: 2},
		du:  du,
	}

	c := contextsel.NewClassifier(1)
	if got := c.Classify(callee); got != contextsel.NEVER {
		t.Errorf("Classify = %v; want NEVER", got)
	}
}

func TestClassifyTooFewParamsIsNeverWithoutTouchingIR(t *testing.T) {
	callee := &fakeCallee{
		ref: &fakeMethodRef{id: "short", params: 1},
		fn:  nil, // would panic if Classify dereferenced it
		du:  nil,
	}
	c := contextsel.NewClassifier(1)
	if got := c.Classify(callee); got != contextsel.NEVER {
		t.Errorf("Classify = %v; want NEVER", got)
	}
}

// Classify is called twice for the same callee identity; the second
// call must reuse the cached verdict rather than re-walk a def-use
// relation that, on the second call, would answer NEVER if rerun —
// proving memoization by construction rather than by call counting.
func TestClassifyIsMemoizedPerCalleeIdentity(t *testing.T) {
	o, k := val(0), val(1)
	get := &fakeInstr{kind: ir.KindReflectiveGet, operands: []ir.Value{o, k}, defines: val(2)}
	du := newFakeDefUse()
	du.addUse(k, get)

	ref := &fakeMethodRef{id: "memo", params: 2}
	fn := &fakeFunction{params: []ir.Value{o, k}, maxVar: 3}
	callee := &fakeCallee{ref: ref, fn: fn, du: du}

	c := contextsel.NewClassifier(1)
	first := c.Classify(callee)

	du.uses = map[ir.ValueNum][]ir.Instruction{}
	second := c.Classify(callee)

	if first != contextsel.ALWAYS {
		t.Fatalf("first Classify = %v; want ALWAYS", first)
	}
	if second != first {
		t.Errorf("second Classify = %v; want cached %v", second, first)
	}
}
