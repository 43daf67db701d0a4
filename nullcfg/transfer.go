package nullcfg

import "github.com/augurlabs/nullcfg/ir"

// applyTransfer updates st in place for a single non-terminator, non-φ
// instruction (spec.md §4.A2). φ-nodes are handled by applyPhi, since
// they need per-predecessor edge states the generic transfer can't see.
func applyTransfer(st *State, instr ir.Instruction) {
	def := instr.Defines()

	switch instr.Kind() {
	case ir.KindAlloc:
		if def != nil {
			st.SetNeverNull(def.Num())
		}

	case ir.KindFieldGet, ir.KindArrayLoad:
		// Reference operand is used, not redefined; its current state
		// drives pruning (prune.go), unaffected here. Defined value is ⊤.
		if def != nil {
			st.Set(def.Num(), Both)
		}

	case ir.KindFieldPut, ir.KindArrayStore:
		// No defined value; reference operand used only.

	case ir.KindArrayLength:
		// An int result; its nullness is irrelevant but harmless to record.
		if def != nil {
			st.SetNeverNull(def.Num())
		}

	case ir.KindInvoke, ir.KindStaticInvoke:
		// Receiver (if any) used; defined value ⊤ unless a method
		// summary says otherwise, which is out of scope here (spec.md
		// §9 open question: "a real implementation may wish to
		// consume method summaries for non-null return guarantees").
		if def != nil {
			st.Set(def.Num(), Both)
		}

	case ir.KindCheckCast:
		if def != nil {
			ops := instr.Operands()
			if len(ops) > 0 {
				st.Assign(def.Num(), ops[0])
			} else {
				st.Set(def.Num(), Both)
			}
		}

	case ir.KindPi:
		if pi, ok := instr.(ir.PiInstruction); ok && def != nil {
			st.Assign(def.Num(), pi.Source())
		}

	case ir.KindMonitor, ir.KindThrow, ir.KindReturn:
		// Reference operand used (monitor/throw); no defined value.

	case ir.KindReflectiveGet, ir.KindIsDefinedIn:
		if def != nil {
			st.Set(def.Num(), Both)
		}

	case ir.KindReflectivePut:
		// No defined value.

	case ir.KindPhi, ir.KindCondBranchNil:
		// Handled elsewhere (applyPhi / refineBranch); nothing to do
		// in the generic per-instruction pass.

	default:
		// Unrecognized instruction kind: conservatively assume nothing
		// about the defined value's nullness.
		if def != nil {
			st.Set(def.Num(), Both)
		}
	}
}

// applyPhi computes the join of a φ-node's incoming values along the
// edges that currently have a computed OUT state, using outOf to fetch
// a predecessor's per-edge OUT state (spec.md §4.A2: "defined value is
// the join of incoming values along predecessor edges that survive in
// the current iteration").
func applyPhi(st *State, phi ir.PhiInstruction, outOf func(pred ir.BasicBlock) *State) {
	def := phi.Defines()
	if def == nil {
		return
	}
	acc := Unknown
	for _, e := range phi.Edges() {
		predOut := outOf(e.Pred)
		if predOut == nil {
			continue
		}
		acc = Join(acc, predOut.Get(e.Value))
	}
	st.Set(def.Num(), acc)
}

// refineBranch computes the two edge-specific OUT states for a block
// ending in a null-comparison conditional branch (spec.md §4.A2: "this
// is the only source of path sensitivity"). base is the working state
// after all non-terminator instructions of the block have run.
func refineBranch(base *State, br ir.CondBranchInstruction) (trueOut, falseOut *State) {
	trueOut, falseOut = base.Clone(), base.Clone()
	v := br.Compared()
	if v == nil {
		return trueOut, falseOut
	}
	cur := base.Get(v)
	// `v == nil`: true successor learns v is null, false successor
	// learns v is non-null. `v != nil` is the mirror image.
	var onTrue, onFalse NullState
	if br.IsEquality() {
		onTrue, onFalse = AlwaysNull, NeverNull
	} else {
		onTrue, onFalse = NeverNull, AlwaysNull
	}
	trueOut.Set(v.Num(), Meet(cur, onTrue))
	falseOut.Set(v.Num(), Meet(cur, onFalse))
	return trueOut, falseOut
}
