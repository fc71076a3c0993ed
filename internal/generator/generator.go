// Package generator synthesizes instrumented function bodies: an entry
// event with the projected arguments, the original body timed inside a
// closure, and an exit event with the duration and return values.
package generator

import (
	"fmt"
	"go/token"
	"strconv"

	"github.com/dave/dst"

	"github.com/toyz/tracefn/internal/annotations"
	"github.com/toyz/tracefn/internal/parser"
	"github.com/toyz/tracefn/pkg/tracefn"
)

// DefaultRuntimePath is the import path of the runtime emission package
// the generated bodies call into.
const DefaultRuntimePath = "github.com/toyz/tracefn/pkg/tracefn"

// Identifiers introduced into rewritten bodies. The prefix keeps them
// clear of anything the original body declares.
const (
	runtimeIdent = "tracefn"
	startIdent   = "__tracefnStart"
	resultPrefix = "__tracefnRet"
)

// Generator rewrites annotated functions in a parsed file.
type Generator struct {
	runtimePath string
	release     bool
}

// New creates a generator. release is the externally supplied build-mode
// signal; runtimePath overrides the runtime package import path when not
// empty.
func New(release bool, runtimePath string) *Generator {
	if runtimePath == "" {
		runtimePath = DefaultRuntimePath
	}
	return &Generator{runtimePath: runtimePath, release: release}
}

// FileResult summarizes what happened to one file.
type FileResult struct {
	Instrumented []string // functions rewritten with tracing bodies
	Suppressed   []string // functions left untouched by the build-mode gate
	Skipped      []string // functions that already carried instrumentation
}

// Changed reports whether the file's syntax tree was modified.
func (r *FileResult) Changed() bool {
	return len(r.Instrumented) > 0
}

// InstrumentFile rewrites every annotated function in the file, honoring
// the build-mode gate per function. The tree is only touched for functions
// the gate admits; a fully suppressed file renders byte-identically to its
// input because the caller keeps the original bytes.
func (g *Generator) InstrumentFile(file *parser.File) (*FileResult, error) {
	result := &FileResult{}

	for _, fn := range file.Functions {
		name := fn.Signature.QualifiedName

		if !ShouldInstrument(fn.Config.Force, g.release) {
			result.Suppressed = append(result.Suppressed, name)
			continue
		}
		if isInstrumented(fn.Decl) {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		g.rewrite(fn.Decl, fn.Signature, fn.Config, Project(fn.Signature, fn.Config))
		result.Instrumented = append(result.Instrumented, name)
	}

	if result.Changed() {
		ensureImport(file.Tree, "time", "")
		ensureImport(file.Tree, g.runtimePath, runtimeImportAlias(g.runtimePath))
	}

	return result, nil
}

// rewrite replaces fn's body with the instrumented equivalent. The entry
// event fires first; the original body runs exactly once inside a closure
// that keeps the original result shape, so naked returns, deferred writes
// to named results and panics all behave as before. A panic unwinds out of
// the closure before the exit call is reached, which is what keeps
// abnormal exits free of exit events.
func (g *Generator) rewrite(fn *dst.FuncDecl, sig *parser.FunctionSignature, cfg *annotations.TraceConfig, projections []ParameterProjection) {
	level := cfg.Level
	body := make([]dst.Stmt, 0, 5)

	body = append(body, g.entryStmt(level, sig, projections))
	body = append(body, startTimerStmt())

	call := closureCall(fn)
	if sig.HasResults() {
		resultIdents := make([]dst.Expr, len(sig.Results))
		for i := range sig.Results {
			resultIdents[i] = dst.NewIdent(resultName(i))
		}
		body = append(body, &dst.AssignStmt{
			Lhs: resultIdents,
			Tok: token.DEFINE,
			Rhs: []dst.Expr{call},
		})
		body = append(body, g.exitStmt(level, sig))

		returns := make([]dst.Expr, len(sig.Results))
		for i := range sig.Results {
			returns[i] = dst.NewIdent(resultName(i))
		}
		body = append(body, &dst.ReturnStmt{Results: returns})
	} else {
		body = append(body, &dst.ExprStmt{X: call})
		body = append(body, g.exitStmt(level, sig))
	}

	fn.Body = &dst.BlockStmt{List: body}
}

// entryStmt builds
//
//	tracefn.Entry(tracefn.LevelX, "name", tracefn.F("a", a), ...)
//
// with one field per included parameter, in declaration order.
func (g *Generator) entryStmt(level tracefn.Level, sig *parser.FunctionSignature, projections []ParameterProjection) dst.Stmt {
	args := []dst.Expr{
		g.levelExpr(level),
		stringLit(sig.QualifiedName),
	}
	for _, p := range projections {
		if !p.Included {
			continue
		}
		args = append(args, g.fieldExpr(p.Name, dst.NewIdent(p.Name)))
	}
	return &dst.ExprStmt{X: g.runtimeCall("Entry", args)}
}

// exitStmt builds
//
//	tracefn.Exit(tracefn.LevelX, "name", time.Since(__tracefnStart), tracefn.F("return", __tracefnRet0), ...)
//
// carrying result fields only when the signature has results.
func (g *Generator) exitStmt(level tracefn.Level, sig *parser.FunctionSignature) dst.Stmt {
	args := []dst.Expr{
		g.levelExpr(level),
		stringLit(sig.QualifiedName),
		&dst.CallExpr{
			Fun:  selector("time", "Since"),
			Args: []dst.Expr{dst.NewIdent(startIdent)},
		},
	}
	for i := range sig.Results {
		args = append(args, g.fieldExpr(resultFieldName(sig, i), dst.NewIdent(resultName(i))))
	}
	return &dst.ExprStmt{X: g.runtimeCall("Exit", args)}
}

// closureCall moves the original body into an immediately invoked closure
// with the original result shape.
func closureCall(fn *dst.FuncDecl) *dst.CallExpr {
	var results *dst.FieldList
	if fn.Type.Results != nil {
		results = dst.Clone(fn.Type.Results).(*dst.FieldList)
	}
	return &dst.CallExpr{
		Fun: &dst.FuncLit{
			Type: &dst.FuncType{
				Params:  &dst.FieldList{},
				Results: results,
			},
			Body: fn.Body,
		},
	}
}

func startTimerStmt() dst.Stmt {
	return &dst.AssignStmt{
		Lhs: []dst.Expr{dst.NewIdent(startIdent)},
		Tok: token.DEFINE,
		Rhs: []dst.Expr{&dst.CallExpr{Fun: selector("time", "Now")}},
	}
}

func (g *Generator) runtimeCall(fn string, args []dst.Expr) *dst.CallExpr {
	return &dst.CallExpr{
		Fun:  selector(runtimeIdent, fn),
		Args: args,
	}
}

func (g *Generator) fieldExpr(name string, value dst.Expr) dst.Expr {
	return &dst.CallExpr{
		Fun:  selector(runtimeIdent, "F"),
		Args: []dst.Expr{stringLit(name), value},
	}
}

func (g *Generator) levelExpr(level tracefn.Level) dst.Expr {
	return selector(runtimeIdent, levelConstName(level))
}

func selector(pkg, name string) *dst.SelectorExpr {
	return &dst.SelectorExpr{X: dst.NewIdent(pkg), Sel: dst.NewIdent(name)}
}

func stringLit(s string) *dst.BasicLit {
	return &dst.BasicLit{Kind: token.STRING, Value: strconv.Quote(s)}
}

func resultName(i int) string {
	return fmt.Sprintf("%s%d", resultPrefix, i)
}

// resultFieldName names a result field in the exit event: named results
// keep their names; unnamed results log as "return", or "return0".."returnN"
// when there is more than one.
func resultFieldName(sig *parser.FunctionSignature, i int) string {
	if name := sig.Results[i].Name; name != "" {
		return name
	}
	if len(sig.Results) == 1 {
		return "return"
	}
	return fmt.Sprintf("return%d", i)
}

func levelConstName(level tracefn.Level) string {
	switch level {
	case tracefn.LevelDebug:
		return "LevelDebug"
	case tracefn.LevelInfo:
		return "LevelInfo"
	case tracefn.LevelWarn:
		return "LevelWarn"
	case tracefn.LevelError:
		return "LevelError"
	default:
		return "LevelTrace"
	}
}

// isInstrumented reports whether a body already begins with a runtime
// entry call, so re-running the tool never double-wraps a function.
func isInstrumented(fn *dst.FuncDecl) bool {
	if fn.Body == nil || len(fn.Body.List) == 0 {
		return false
	}
	expr, ok := fn.Body.List[0].(*dst.ExprStmt)
	if !ok {
		return false
	}
	call, ok := expr.X.(*dst.CallExpr)
	if !ok {
		return false
	}
	sel, ok := call.Fun.(*dst.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*dst.Ident)
	return ok && pkg.Name == runtimeIdent && sel.Sel.Name == "Entry"
}
