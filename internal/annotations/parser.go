// Package annotations parses //tracefn:: directive comments into validated
// trace configurations.
package annotations

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/tracefn/pkg/tracefn"
)

// DirectivePrefix marks a comment as a tracefn directive.
const DirectivePrefix = "tracefn::"

// TraceDirective is the directive name that requests instrumentation.
const TraceDirective = "trace"

// optionList is the root of the directive argument grammar: zero or more
// comma-separated key = value pairs.
type optionList struct {
	Options []*option `parser:"(@@ (',' @@)*)?"`
}

type option struct {
	Key   string       `parser:"@Ident '='"`
	Value *optionValue `parser:"@@"`
}

type optionValue struct {
	Str   *string `parser:"@String"`
	Ident *string `parser:"| @Ident"`
}

// text returns the option value with surrounding quotes removed.
func (v *optionValue) text() string {
	if v.Str != nil {
		s := *v.Str
		if len(s) >= 2 {
			return s[1 : len(s)-1]
		}
		return s
	}
	if v.Ident != nil {
		return *v.Ident
	}
	return ""
}

// Parser parses //tracefn::trace directives into TraceConfigs.
type Parser struct {
	grammar *participle.Parser[optionList]
}

// NewParser builds the directive parser.
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `"(\\"|[^"])*"|'(\\'|[^'])*'`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[=,]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	grammar := participle.MustBuild[optionList](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
	)

	return &Parser{grammar: grammar}
}

// IsDirective reports whether a comment line is a tracefn directive.
func IsDirective(comment string) bool {
	content := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
	return strings.HasPrefix(content, DirectivePrefix)
}

// ParseDirective parses one directive comment into a validated TraceConfig.
// All failures are *ConfigError values carrying the directive's location.
func (p *Parser) ParseDirective(comment string, loc SourceLocation) (*TraceConfig, error) {
	args, err := directiveArgs(comment, loc)
	if err != nil {
		return nil, err
	}

	list, perr := p.grammar.ParseString(loc.File, args)
	if perr != nil {
		return nil, NewSyntaxError(perr.Error(), loc)
	}

	cfg := &TraceConfig{Level: tracefn.LevelTrace}
	seen := make(map[string]bool, len(list.Options))

	for _, opt := range list.Options {
		if seen[opt.Key] {
			return nil, NewDuplicateOptionError(opt.Key, loc)
		}
		seen[opt.Key] = true

		value := opt.Value.text()
		switch opt.Key {
		case "level":
			level, err := tracefn.ParseLevel(value)
			if err != nil {
				return nil, NewInvalidLevelError(value, loc)
			}
			cfg.Level = level
		case "skip":
			for _, name := range strings.Split(value, ",") {
				if name = strings.TrimSpace(name); name != "" {
					cfg.Skip = append(cfg.Skip, name)
				}
			}
		case "force":
			force, err := strconv.ParseBool(value)
			if err != nil {
				return nil, NewInvalidValueError("force", value, "a boolean literal", loc)
			}
			cfg.Force = force
		default:
			return nil, NewUnknownOptionError(opt.Key, loc)
		}
	}

	return cfg, nil
}

// directiveArgs strips the comment marker, the tracefn:: prefix and the
// directive name, returning the raw option list.
func directiveArgs(comment string, loc SourceLocation) (string, error) {
	content := strings.TrimSpace(comment)
	if !strings.HasPrefix(content, "//") {
		return "", NewSyntaxError("directive must start with '//'", loc)
	}
	content = strings.TrimSpace(strings.TrimPrefix(content, "//"))

	if !strings.HasPrefix(content, DirectivePrefix) {
		return "", NewSyntaxError("directive must start with 'tracefn::'", loc)
	}
	content = strings.TrimPrefix(content, DirectivePrefix)

	name := content
	if i := strings.IndexAny(content, " \t"); i >= 0 {
		name, content = content[:i], strings.TrimSpace(content[i:])
	} else {
		content = ""
	}

	if name != TraceDirective {
		return "", NewSyntaxError("unknown directive '"+name+"' (only 'trace' is supported)", loc)
	}

	return content, nil
}
