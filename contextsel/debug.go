package contextsel

import "github.com/k0kubun/pp"

// DumpClassification pretty-prints a single classify decision. Nothing
// in this module calls it: neither Classifier nor Selector has a debug
// flag, and cmd/nullcfg-demo's -debug flag only reaches nullcfg.
func DumpClassification(calleeID string, n int, f Frequency) {
	pp.Printf("contextsel: %s arg#%d -> %s\n", calleeID, n, f)
}
