package ir

// MethodState is the external method-summary oracle (spec.md §3, §6):
// given an invoke instruction, it answers whether the callee may throw
// any exception. If the framework has no summary for a callee, it
// should conservatively report true ("may throw").
type MethodState interface {
	ThrowsException(invoke Instruction) bool
}
