// Package parser discovers //tracefn:: directives in Go source files and
// extracts the structural signature of each annotated function.
package parser

import (
	"fmt"
	goparser "go/parser"
	"go/token"
	"os"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"

	"github.com/toyz/tracefn/internal/annotations"
)

// AnnotatedFunction pairs a function declaration with its parsed directive.
type AnnotatedFunction struct {
	Decl      *dst.FuncDecl
	Signature *FunctionSignature
	Config    *annotations.TraceConfig
	Location  annotations.SourceLocation
}

// File is one parsed source file and the annotated functions found in it.
type File struct {
	Path      string
	Source    []byte
	Tree      *dst.File
	Functions []*AnnotatedFunction
}

// Parser finds tracefn directives in Go source files.
type Parser struct {
	directives *annotations.Parser
}

// NewParser creates a new source file parser.
func NewParser() *Parser {
	return &Parser{directives: annotations.NewParser()}
}

// ParseFile reads and parses a Go file from disk.
func (p *Parser) ParseFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p.ParseSource(path, src)
}

// ParseSource parses Go source held in memory. The decorated syntax tree
// keeps every comment and directive attached to its node, so a later
// rewrite reproduces them verbatim.
func (p *Parser) ParseSource(path string, src []byte) (*File, error) {
	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)
	tree, err := dec.ParseFile(path, src, goparser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	locs := scanDirectiveLocations(path, src)

	file := &File{Path: path, Source: src, Tree: tree}
	for _, decl := range tree.Decls {
		directive := declDirective(decl)
		if directive == "" {
			continue
		}
		loc := locs.take(directive, path)

		fn, ok := decl.(*dst.FuncDecl)
		if !ok {
			return nil, NewUnsupportedDeclarationError(loc)
		}
		if fn.Body == nil {
			return nil, NewMissingBodyError(fn.Name.Name, loc)
		}

		cfg, err := p.directives.ParseDirective(directive, loc)
		if err != nil {
			return nil, err
		}

		file.Functions = append(file.Functions, &AnnotatedFunction{
			Decl:      fn,
			Signature: analyzeSignature(fn),
			Config:    cfg,
			Location:  loc,
		})
	}

	return file, nil
}

// declDirective returns the tracefn directive attached to a declaration's
// leading comments, or "" if there is none.
func declDirective(decl dst.Decl) string {
	for _, line := range decl.Decorations().Start.All() {
		if annotations.IsDirective(line) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// directiveLocations maps directive comment text to its source positions,
// in file order, so errors can point at the directive itself rather than
// the declaration under it.
type directiveLocations struct {
	entries []directiveEntry
}

type directiveEntry struct {
	text string
	loc  annotations.SourceLocation
	used bool
}

func scanDirectiveLocations(path string, src []byte) *directiveLocations {
	locs := &directiveLocations{}
	for i, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "//") || !annotations.IsDirective(trimmed) {
			continue
		}
		col := strings.Index(line, "//") + 1
		locs.entries = append(locs.entries, directiveEntry{
			text: trimmed,
			loc:  annotations.SourceLocation{File: path, Line: i + 1, Column: col},
		})
	}
	return locs
}

// take returns the position of the next unconsumed occurrence of the given
// directive text.
func (l *directiveLocations) take(text, path string) annotations.SourceLocation {
	for i := range l.entries {
		if !l.entries[i].used && l.entries[i].text == text {
			l.entries[i].used = true
			return l.entries[i].loc
		}
	}
	return annotations.SourceLocation{File: path, Line: 1, Column: 1}
}
