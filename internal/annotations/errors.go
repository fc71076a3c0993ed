package annotations

import "fmt"

// ErrorCode classifies directive configuration errors.
type ErrorCode int

const (
	SyntaxErrorCode ErrorCode = iota
	UnknownOptionCode
	DuplicateOptionCode
	InvalidLevelCode
	InvalidValueCode
)

// String returns the string representation of the error code.
func (e ErrorCode) String() string {
	switch e {
	case SyntaxErrorCode:
		return "SyntaxError"
	case UnknownOptionCode:
		return "UnknownOption"
	case DuplicateOptionCode:
		return "DuplicateOption"
	case InvalidLevelCode:
		return "InvalidLevel"
	case InvalidValueCode:
		return "InvalidValue"
	default:
		return "UnknownError"
	}
}

// ConfigError is a directive configuration error. It always fails the
// transform for the offending function; nothing is emitted for it.
type ConfigError struct {
	Msg  string         // error message
	Loc  SourceLocation // where the error occurred
	Hint string         // suggested fix
	code ErrorCode
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s. %s", e.Loc.File, e.Loc.Line, e.Loc.Column, e.Msg, e.Hint)
}

func (e *ConfigError) Location() SourceLocation { return e.Loc }
func (e *ConfigError) Suggestion() string       { return e.Hint }
func (e *ConfigError) Code() ErrorCode          { return e.code }

// NewSyntaxError reports a directive that does not match the option
// grammar at all.
func NewSyntaxError(msg string, loc SourceLocation) *ConfigError {
	return &ConfigError{
		Msg:  fmt.Sprintf("syntax error: %s", msg),
		Loc:  loc,
		Hint: `Expected comma-separated key = value pairs, e.g. //tracefn::trace level = "info", skip = "password"`,
		code: SyntaxErrorCode,
	}
}

// NewUnknownOptionError reports an option key the directive does not
// support.
func NewUnknownOptionError(key string, loc SourceLocation) *ConfigError {
	return &ConfigError{
		Msg:  fmt.Sprintf("unknown option %q", key),
		Loc:  loc,
		Hint: "Supported options are: level, skip, force",
		code: UnknownOptionCode,
	}
}

// NewDuplicateOptionError reports an option key given more than once.
// Duplicates are a hard error rather than last-wins.
func NewDuplicateOptionError(key string, loc SourceLocation) *ConfigError {
	hint := fmt.Sprintf("Remove the extra %q entry", key)
	if key == "skip" {
		hint = `Combine the names into one entry: skip = "a, b"`
	}
	return &ConfigError{
		Msg:  fmt.Sprintf("option %q given more than once", key),
		Loc:  loc,
		Hint: hint,
		code: DuplicateOptionCode,
	}
}

// NewInvalidLevelError reports a level value that names no known severity.
func NewInvalidLevelError(value string, loc SourceLocation) *ConfigError {
	return &ConfigError{
		Msg:  fmt.Sprintf("invalid level %q", value),
		Loc:  loc,
		Hint: `Level must be one of trace, debug, info, warn, error (case-insensitive), e.g. level = "info"`,
		code: InvalidLevelCode,
	}
}

// NewInvalidValueError reports an option value of the wrong shape, such as
// a non-boolean force value.
func NewInvalidValueError(key, value, expected string, loc SourceLocation) *ConfigError {
	return &ConfigError{
		Msg:  fmt.Sprintf("invalid value %q for option %q", value, key),
		Loc:  loc,
		Hint: fmt.Sprintf("Expected %s, e.g. %s", expected, exampleFor(key)),
		code: InvalidValueCode,
	}
}

func exampleFor(key string) string {
	switch key {
	case "force":
		return "force = true"
	case "skip":
		return `skip = "password"`
	default:
		return `level = "debug"`
	}
}
