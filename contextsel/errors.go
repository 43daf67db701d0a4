package contextsel

import "golang.org/x/xerrors"

// ErrNoClassifier is returned by callers that build a Selector without
// a Classifier; Selector itself never returns it (NewSelector takes one),
// but embedding code that assembles a BaseSelector chain can use it to
// fail fast during wiring rather than nil-panicking on first use.
var ErrNoClassifier = xerrors.New("contextsel: selector has no classifier")
