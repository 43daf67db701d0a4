package nullcfg

import (
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/xerrors"

	"github.com/augurlabs/nullcfg/ir"
)

// Sentinel conditions for the error kinds of spec.md §7. Wrapped with
// golang.org/x/xerrors so callers can xerrors.Is against them even
// after a %w-wrapped message has been added.
var (
	// ErrCancelled is returned by Run when the progress monitor signals
	// cancellation mid-solve; accessors called afterward fail with
	// ErrNotRun.
	ErrCancelled = xerrors.New("nullcfg: analysis cancelled")

	// ErrNotRun is the usage error: an accessor was invoked before Run.
	ErrNotRun = xerrors.New("nullcfg: Run has not completed successfully")

	// ErrBadBlock is the argument error: a nil block, or one that does
	// not belong to the analysis's CFG, was passed to an accessor.
	ErrBadBlock = xerrors.New("nullcfg: block is nil or not a member of this CFG")

	// ErrNonPEI is the internal-assertion error: the edge-pruning
	// visitor was dispatched for an instruction kind that cannot be a
	// block's relevant PEI, indicating an IR inconsistency.
	ErrNonPEI = xerrors.New("nullcfg: relevant PEI has a non-PEI instruction kind")
)

// nonPEIError wraps ErrNonPEI with a spew dump of the offending
// instruction: this is "should never happen" territory (an IR
// inconsistency), so the error carries the whole value rather than a
// one-line summary.
func nonPEIError(instr ir.Instruction) error {
	return xerrors.Errorf("%s: %w", spew.Sdump(instr), ErrNonPEI)
}
