package annotations

import "github.com/toyz/tracefn/pkg/tracefn"

// SourceLocation is where a directive appears in source code.
type SourceLocation struct {
	File   string // file path
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// TraceConfig is the validated configuration carried by one
// //tracefn::trace directive. It is built exactly once per annotated
// function and never mutated afterwards.
type TraceConfig struct {
	Level tracefn.Level // severity for both entry and exit events
	Skip  []string      // parameter names excluded from the entry event
	Force bool          // instrument even in release mode
}

// Skips reports whether the named parameter is excluded. Names in the skip
// set that match no parameter are deliberately harmless: directives are
// authored independently of later signature edits.
func (c *TraceConfig) Skips(name string) bool {
	for _, s := range c.Skip {
		if s == name {
			return true
		}
	}
	return false
}
