package nullcfg

import (
	"fmt"

	"github.com/k0kubun/pp"

	"github.com/augurlabs/nullcfg/ir"
)

// dumpSolve pretty-prints the final IN states and the deleted-edge set
// when Config.Debug is set. Never called on the hot path; k0kubun/pp is
// used the same way it is elsewhere in the analysis-tooling ecosystem:
// a developer-facing, opt-in dump, not a production log line.
func dumpSolve(fn ir.Function, in map[int]*State, deleted []ir.Edge) {
	fmt.Println("nullcfg: block IN states")
	for _, b := range fn.Blocks() {
		st, ok := in[b.ID()]
		if !ok {
			continue
		}
		pp.Printf("  block %d: %v\n", b.ID(), st.vals)
	}
	if len(deleted) == 0 {
		return
	}
	pp.Println("nullcfg: deleted edges:", deleted)
}
