package parser

import (
	"fmt"

	"github.com/toyz/tracefn/internal/annotations"
)

// AnalysisError reports a tracefn directive attached to a declaration the
// rewriter cannot instrument.
type AnalysisError struct {
	Msg  string                     // error message
	Loc  annotations.SourceLocation // where the directive sits
	Hint string                     // suggested fix
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s. %s", e.Loc.File, e.Loc.Line, e.Loc.Column, e.Msg, e.Hint)
}

func (e *AnalysisError) Location() annotations.SourceLocation { return e.Loc }
func (e *AnalysisError) Suggestion() string                   { return e.Hint }

// NewUnsupportedDeclarationError reports a directive placed on something
// that is not a function or method.
func NewUnsupportedDeclarationError(loc annotations.SourceLocation) *AnalysisError {
	return &AnalysisError{
		Msg:  "//tracefn::trace is only valid on functions and methods",
		Loc:  loc,
		Hint: "Move the directive onto a func declaration or remove it",
	}
}

// NewMissingBodyError reports a directive on a bodiless declaration, such
// as an assembly stub.
func NewMissingBodyError(name string, loc annotations.SourceLocation) *AnalysisError {
	return &AnalysisError{
		Msg:  fmt.Sprintf("function %s has no body to instrument", name),
		Loc:  loc,
		Hint: "Remove the directive; declarations without bodies cannot be rewritten",
	}
}
