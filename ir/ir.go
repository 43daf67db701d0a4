// Package ir defines the contracts this module consumes from a larger
// whole-program analysis framework: SSA values, instructions, basic
// blocks and functions. Construction of these is out of scope here; the
// framework hands us an already-built IR and we read it.
package ir

// ValueNum is a dense, non-negative SSA value number. Parameters occupy
// the low numbers; a function's symbol table reports the maximum number
// in use.
type ValueNum int

// InstrKind tags the instruction-kind dispatch used throughout nullcfg
// and contextsel, in place of the teacher's visitor-per-kind interface
// (see DESIGN.md: "Inner-class context hierarchy" / instruction dispatch).
type InstrKind int

const (
	KindOther InstrKind = iota
	KindAlloc
	KindFieldGet
	KindFieldPut
	KindArrayLength
	KindArrayLoad
	KindArrayStore
	KindInvoke
	KindStaticInvoke
	KindCheckCast
	KindPhi
	KindPi
	KindCondBranchNil // `v == nil` / `v != nil` branch
	KindMonitor
	KindThrow
	KindReflectiveGet // obj[k] read, k a runtime value
	KindReflectivePut // obj[k] = v
	KindIsDefinedIn   // existence check by computed key
	KindReturn
)

// Value is an SSA value: either a defined instruction result, a
// parameter, or a constant.
type Value interface {
	Num() ValueNum
	// IsNullConst reports whether the symbol table resolves this value
	// to the language's null/nil literal.
	IsNullConst() bool
	// IsNonNullConst reports whether the symbol table resolves this
	// value to a constant the language guarantees is never null
	// (strings, numbers, freshly allocated objects, class literals,
	// exception objects bound at a handler).
	IsNonNullConst() bool
}

// ExceptionType is an opaque handle to a declared exception/error type.
// Only identity and set membership matter here.
type ExceptionType interface {
	// IsNullPointerException reports whether this is the language's
	// null-dereference exception kind.
	IsNullPointerException() bool
}

// Instruction is one IR instruction inside a basic block.
type Instruction interface {
	Kind() InstrKind

	// Operands are the values this instruction reads. For invokes,
	// operand 0 is conventionally the receiver (absent for static
	// invokes). For Store/Put/array ops it is the reference being
	// dereferenced. Order follows positional argument order for calls.
	Operands() []Value

	// Defines is the value this instruction produces, or nil if it
	// produces no SSA value (e.g. Store, Throw).
	Defines() Value

	// DeclaredExceptions is the instruction's statically declared
	// exception set before subtracting any ignored types.
	DeclaredExceptions() []ExceptionType

	// Callee is only meaningful for KindInvoke/KindStaticInvoke; it
	// names the instruction the MethodState oracle is asked about.
	Callee() MethodRef
}

// PhiEdge pairs a predecessor block with the value a φ-node receives
// along that edge.
type PhiEdge struct {
	Pred  BasicBlock
	Value Value
}

// PhiInstruction is the KindPhi refinement of Instruction: it also
// reports its incoming edges, since Operands() alone can't associate a
// value with the predecessor block it came from.
type PhiInstruction interface {
	Instruction
	Edges() []PhiEdge
}

// PiInstruction is the KindPi refinement: a guard-refined copy of a
// value, valid only along the edge it was produced on.
type PiInstruction interface {
	Instruction
	Source() Value
}

// CondBranchInstruction is the KindCondBranchNil refinement: a
// conditional branch comparing a value to the null literal. Compared
// is the non-constant operand; IsEquality distinguishes `v == nil`
// (true) from `v != nil` (false), mirroring the teacher's eq() helper
// (analyzer/knil/nilness.go) which keys off token.EQL vs token.NEQ.
type CondBranchInstruction interface {
	Instruction
	Compared() Value
	IsEquality() bool
	// TrueSucc/FalseSucc are this block's two successors: the one
	// taken when the comparison holds, and the one taken otherwise.
	TrueSucc() BasicBlock
	FalseSucc() BasicBlock
}

// BasicBlock is one node of the CFG.
type BasicBlock interface {
	ID() int
	Instrs() []Instruction
	// RelevantPEI returns the single instruction in this block that can
	// cause exceptional exit, or nil if the block contains none. Per
	// spec.md §4.A4 this is typically the block's last PEI.
	RelevantPEI() Instruction
}

// MethodRef identifies a callee for MethodState lookups and for the
// Core B frequency cache key.
type MethodRef interface {
	// NumParams is the callee's declared positional parameter count.
	NumParams() int
	// ID is a stable identity suitable for use as a map key.
	ID() string
}

// Function is a method's SSA IR: its blocks and its parameter values.
// An IR with no blocks represents an abstract or body-less method;
// nullcfg short-circuits on it (spec.md §4.A3, §6). contextsel does not
// look at Blocks() and reads such a method through its DefUse only.
type Function interface {
	Blocks() []BasicBlock
	Params() []Value
	MaxValueNum() ValueNum
}
