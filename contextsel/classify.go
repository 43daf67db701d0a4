package contextsel

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Classifier answers, for a fixed distinguishing index N, how a given
// callee uses its Nth positional argument (spec.md §4.B1). Results are
// memoized per callee identity: a callee's body doesn't change between
// calls to Classify, so the frequency is computed once and reused for
// every call site that targets it.
//
// A singleflight.Group collapses concurrent first-classifications of
// the same callee into one walk of its def-use chains, mirroring how
// the driver package fans work out across goroutines (driver/driver.go)
// without letting two goroutines duplicate the same walk.
type Classifier struct {
	n int

	cache sync.Map // ir.MethodRef.ID() -> Frequency
	group singleflight.Group
}

// NewClassifier returns a classifier for argument position n (0-indexed
// into Callee.IR().Params()).
func NewClassifier(n int) *Classifier {
	return &Classifier{n: n}
}

// Classify returns callee's property-name-use frequency for argument n.
// A callee declared with n or fewer parameters can never use one that
// doesn't exist, so that case is answered directly without touching
// the cache (spec.md §4.B1 step 1).
func (c *Classifier) Classify(callee Callee) Frequency {
	ref := callee.Ref()
	if ref.NumParams() <= c.n {
		return NEVER
	}

	key := ref.ID()
	if v, ok := c.cache.Load(key); ok {
		return v.(Frequency)
	}

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		if v, ok := c.cache.Load(key); ok {
			return v, nil
		}
		f := c.computeFrequency(callee)
		c.cache.Store(key, f)
		return f, nil
	})
	return v.(Frequency)
}

// computeFrequency walks every use of the callee's Nth parameter and
// classifies it as a property-name use or something else, then
// combines the two booleans into a Frequency (spec.md §4.B1 steps 3-4).
func (c *Classifier) computeFrequency(callee Callee) Frequency {
	fn := callee.IR()
	if fn == nil {
		return NEVER
	}
	params := fn.Params()
	if c.n >= len(params) {
		return NEVER
	}
	target := params[c.n]

	du := callee.DefUse()
	if du == nil {
		return NEVER
	}

	var usedAsPropertyName, usedAsSomethingElse bool
	for _, use := range du.Uses(target) {
		if isPropNameUse(use, target) {
			usedAsPropertyName = true
		} else {
			usedAsSomethingElse = true
		}
	}

	switch {
	case usedAsPropertyName && usedAsSomethingElse:
		return SOMETIMES
	case usedAsPropertyName:
		return ALWAYS
	default:
		return NEVER
	}
}
