package ir

// SymbolTable resolves a method's maximum SSA value number. The
// language's `undefined` singleton (used by Core B §4.B3 when the N-th
// argument is absent at a call site) comes from ClassHierarchy instead.
type SymbolTable interface {
	MaxValueNum(fn Function) ValueNum
}

// ClassHierarchy resolves language-specific synthetic types. Core B
// uses it only to materialize the `undefined` instance key.
type ClassHierarchy interface {
	// UndefinedInstanceKey returns the abstract value denoting the
	// language's `undefined` singleton.
	UndefinedInstanceKey() InstanceKey
}

// InstanceKey is an abstract value in pointer analysis: a handle
// denoting a set of concrete runtime objects. Its identity (not its
// structure) is all that matters to nullcfg/contextsel.
type InstanceKey interface {
	// Identity is a stable key suitable for map/equality use.
	Identity() string
}
