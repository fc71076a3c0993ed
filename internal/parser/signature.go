package parser

import (
	"strings"

	"github.com/dave/dst"
)

// Param is one declared parameter.
type Param struct {
	Name  string
	Type  string
	Blank bool // unnamed or "_": cannot be referenced, so never logged
}

// Result is one declared result. Name is empty for unnamed results.
type Result struct {
	Name string
	Type string
}

// FunctionSignature describes an annotated function well enough to project
// its arguments and synthesize the instrumented body. Nothing else about
// the declaration needs capturing: only the body node is replaced, so the
// name, signature, type parameters, visibility, doc comments and other
// directives are reproduced verbatim.
type FunctionSignature struct {
	Name          string
	QualifiedName string // receiver type prefix for methods, e.g. "Server.Handle"
	Receiver      *Param // nil for plain functions; never logged
	Params        []Param
	Results       []Result
}

// HasResults reports whether the exit event carries return-value fields.
func (s *FunctionSignature) HasResults() bool {
	return len(s.Results) > 0
}

// analyzeSignature extracts the structural signature of a function
// declaration, preserving parameter order.
func analyzeSignature(fn *dst.FuncDecl) *FunctionSignature {
	sig := &FunctionSignature{
		Name:          fn.Name.Name,
		QualifiedName: fn.Name.Name,
	}

	if fn.Recv != nil && len(fn.Recv.List) > 0 {
		field := fn.Recv.List[0]
		recv := Param{Type: typeString(field.Type), Blank: true}
		if len(field.Names) > 0 {
			recv.Name = field.Names[0].Name
			recv.Blank = recv.Name == "_"
		}
		sig.Receiver = &recv
		if base := receiverTypeName(field.Type); base != "" {
			sig.QualifiedName = base + "." + fn.Name.Name
		}
	}

	if fn.Type.Params != nil {
		for _, field := range fn.Type.Params.List {
			t := typeString(field.Type)
			if len(field.Names) == 0 {
				sig.Params = append(sig.Params, Param{Type: t, Blank: true})
				continue
			}
			for _, name := range field.Names {
				sig.Params = append(sig.Params, Param{
					Name:  name.Name,
					Type:  t,
					Blank: name.Name == "_",
				})
			}
		}
	}

	if fn.Type.Results != nil {
		for _, field := range fn.Type.Results.List {
			t := typeString(field.Type)
			if len(field.Names) == 0 {
				sig.Results = append(sig.Results, Result{Type: t})
				continue
			}
			for _, name := range field.Names {
				res := Result{Type: t}
				if name.Name != "_" {
					res.Name = name.Name
				}
				sig.Results = append(sig.Results, res)
			}
		}
	}

	return sig
}

// receiverTypeName unwraps pointers and type arguments to the receiver's
// base type name.
func receiverTypeName(expr dst.Expr) string {
	switch t := expr.(type) {
	case *dst.Ident:
		return t.Name
	case *dst.StarExpr:
		return receiverTypeName(t.X)
	case *dst.IndexExpr:
		return receiverTypeName(t.X)
	case *dst.IndexListExpr:
		return receiverTypeName(t.X)
	default:
		return ""
	}
}

// typeString renders a type expression for diagnostics and tests. The
// generator never consumes these strings; it clones the original type
// nodes instead.
func typeString(expr dst.Expr) string {
	switch t := expr.(type) {
	case *dst.Ident:
		return t.Name
	case *dst.SelectorExpr:
		return typeString(t.X) + "." + t.Sel.Name
	case *dst.StarExpr:
		return "*" + typeString(t.X)
	case *dst.ArrayType:
		return "[]" + typeString(t.Elt)
	case *dst.Ellipsis:
		return "..." + typeString(t.Elt)
	case *dst.MapType:
		return "map[" + typeString(t.Key) + "]" + typeString(t.Value)
	case *dst.ChanType:
		return "chan " + typeString(t.Value)
	case *dst.FuncType:
		return "func(...)"
	case *dst.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return "interface{}"
		}
		return "interface{...}"
	case *dst.StructType:
		return "struct{...}"
	case *dst.IndexExpr:
		return typeString(t.X) + "[" + typeString(t.Index) + "]"
	case *dst.IndexListExpr:
		args := make([]string, len(t.Indices))
		for i, idx := range t.Indices {
			args[i] = typeString(idx)
		}
		return typeString(t.X) + "[" + strings.Join(args, ", ") + "]"
	default:
		return "?"
	}
}
