package generator

import (
	"go/token"
	"path"
	"strconv"

	"github.com/dave/dst"
)

// runtimeImportAlias returns the import alias needed so that generated
// calls resolve, or "" when the package's own name already matches.
func runtimeImportAlias(importPath string) string {
	if path.Base(importPath) == runtimeIdent {
		return ""
	}
	return runtimeIdent
}

// ensureImport adds an import of the given path to the file unless one is
// already present.
func ensureImport(file *dst.File, importPath, alias string) {
	quoted := strconv.Quote(importPath)

	for _, decl := range file.Decls {
		gen, ok := decl.(*dst.GenDecl)
		if !ok || gen.Tok != token.IMPORT {
			continue
		}
		for _, spec := range gen.Specs {
			if imp, ok := spec.(*dst.ImportSpec); ok && imp.Path.Value == quoted {
				return
			}
		}
	}

	spec := &dst.ImportSpec{
		Path: &dst.BasicLit{Kind: token.STRING, Value: quoted},
	}
	if alias != "" {
		spec.Name = dst.NewIdent(alias)
	}

	for _, decl := range file.Decls {
		if gen, ok := decl.(*dst.GenDecl); ok && gen.Tok == token.IMPORT {
			gen.Specs = append(gen.Specs, spec)
			gen.Lparen = true
			gen.Rparen = true
			return
		}
	}

	// No import block yet; insert one right after the package clause.
	file.Decls = append([]dst.Decl{
		&dst.GenDecl{Tok: token.IMPORT, Lparen: true, Specs: []dst.Spec{spec}, Rparen: true},
	}, file.Decls...)
}
