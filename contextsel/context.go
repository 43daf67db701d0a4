package contextsel

import "github.com/augurlabs/nullcfg/ir"

// Context is a call-graph node's analysis context. Every context wraps
// a Base context produced by the surrounding call-graph builder's own
// (non-property-name) context selector; PropNameContext and
// MarkerForInContext are not a parallel class hierarchy but a single
// variant type discriminated by suppressFilter, per the resolution of
// spec.md §9's "inner-class context hierarchy" design note: one struct
// with a boolean "suppress filter" discriminator is simpler in Go than
// two wrapper types plus a common interface, and it removes the need
// for a type switch anywhere a Context is consulted.
type Context interface {
	// Base returns the context this one refines.
	Base() Context

	// IsPropName reports whether this context carries a property-name
	// marker at all (either variant).
	IsPropName() bool

	// ParamIndex is the distinguishing index N this marker was minted
	// for. Meaningless when IsPropName is false.
	ParamIndex() int

	// InstanceKeyAt returns the pinned receiver instance key and true
	// for a PropNameContext. It returns (nil, false) for a base context
	// and, deliberately, for a MarkerForInContext: that variant
	// suppresses the filter and carries no usable instance key, so
	// callers must check ok rather than assume every property-name
	// context exposes one (see NewSelector's CalleeTarget, which is the
	// one place that needs to tell the two variants apart).
	InstanceKeyAt() (ir.InstanceKey, bool)
}

type propContext struct {
	base           Context
	paramIndex     int
	instance       ir.InstanceKey
	suppressFilter bool
}

func (c *propContext) Base() Context       { return c.base }
func (c *propContext) IsPropName() bool    { return true }
func (c *propContext) ParamIndex() int     { return c.paramIndex }

func (c *propContext) InstanceKeyAt() (ir.InstanceKey, bool) {
	if c.suppressFilter {
		return nil, false
	}
	return c.instance, true
}

func newPropNameContext(base Context, n int, instance ir.InstanceKey) Context {
	return &propContext{base: base, paramIndex: n, instance: instance}
}

func newMarkerForInContext(base Context, n int, instance ir.InstanceKey) Context {
	return &propContext{base: base, paramIndex: n, instance: instance, suppressFilter: true}
}

// BaseSelector is the call-graph builder's own (non-property-name)
// context selector, the thing this package's Selector decorates. Its
// implementation is out of scope; this is the contract a real
// call-graph builder's selector must satisfy to be wrapped.
type BaseSelector interface {
	CalleeTarget(caller Caller, site CallSite, callee Callee, receiverAbstractValues []ir.InstanceKey) Context
	RelevantParameters(caller Caller, site CallSite) map[int]struct{}
}

// Selector decorates a BaseSelector with the property-name context
// policy of spec.md §4.B3: a callee that (sometimes or always) uses its
// Nth argument as a property name gets one clone per distinct receiver
// instance reaching that argument; a caller already analyzed in such a
// context propagates a MarkerForInContext to call sites any of whose
// arguments is derived from the caller's own property-name parameter.
type Selector struct {
	n          int
	classifier *Classifier
	base       BaseSelector
	ch         ir.ClassHierarchy
}

// NewSelector builds a property-name context selector for argument
// position n, backed by classifier for frequency lookups, ch for the
// undefined-instance-key fallback, and base for every context this
// selector doesn't itself refine.
func NewSelector(n int, classifier *Classifier, ch ir.ClassHierarchy, base BaseSelector) *Selector {
	return &Selector{n: n, classifier: classifier, base: base, ch: ch}
}

// CalleeTarget implements spec.md §4.B3's getCalleeTarget: it first
// asks whether the callee itself warrants a property-name context
// (the callee side), and failing that, whether the caller's own
// property-name context should propagate through a dependent argument
// (the marker-propagation side). Either produces a context wrapping
// whatever the base selector would have produced; neither applying
// falls through to the base context unchanged.
func (s *Selector) CalleeTarget(caller Caller, site CallSite, callee Callee, receiverAbstractValues []ir.InstanceKey) Context {
	baseCtx := s.base.CalleeTarget(caller, site, callee, receiverAbstractValues)

	if s.n < len(receiverAbstractValues) {
		switch s.classifier.Classify(callee) {
		case ALWAYS, SOMETIMES:
			instance := receiverAbstractValues[s.n]
			if instance == nil {
				instance = s.ch.UndefinedInstanceKey()
			}
			return newPropNameContext(baseCtx, s.n, instance)
		}
	}

	callerCtx := caller.Context()
	if callerCtx == nil || !callerCtx.IsPropName() {
		return baseCtx
	}
	instance, ok := callerCtx.InstanceKeyAt()
	if !ok {
		// caller is under a MarkerForInContext, not a PropNameContext:
		// there is no instance key to propagate further.
		return baseCtx
	}
	if len(DependentParams(caller, site, s.n)) == 0 {
		return baseCtx
	}
	return newMarkerForInContext(baseCtx, s.n, instance)
}

// RelevantParameters implements spec.md §4.B3's getRelevantParameters:
// the base selector's relevant set, plus index N whenever the call
// site actually has that many arguments (a context-sensitive call-graph
// builder consults this to decide which argument positions distinguish
// otherwise-identical call sites).
func (s *Selector) RelevantParameters(caller Caller, site CallSite) map[int]struct{} {
	base := s.base.RelevantParameters(caller, site)
	if s.n >= len(site.Args()) {
		return base
	}
	out := make(map[int]struct{}, len(base)+1)
	for k := range base {
		out[k] = struct{}{}
	}
	out[s.n] = struct{}{}
	return out
}
