package rules

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"
)

// ErrorfWithoutFormat replaces fmt.Errorf calls that format nothing with errors.New.
type ErrorfWithoutFormat struct{}

func (*ErrorfWithoutFormat) Key() string  { return "errorf-without-format" }
func (*ErrorfWithoutFormat) Name() string { return "fmt.Errorf without format" }

func (*ErrorfWithoutFormat) Description() string {
	return `fmt.Errorf("text") with a constant message becomes errors.New("text")`
}

func (*ErrorfWithoutFormat) NodeTypes() []ast.Node {
	return []ast.Node{(*ast.CallExpr)(nil)}
}

func (*ErrorfWithoutFormat) Run(pass *Pass) {
	fmtName := importName(pass.File, "fmt")
	if fmtName == "" {
		return
	}

	errorsName := importName(pass.File, "errors")
	if errorsName == "" {
		if nameTaken(pass.File, "errors", "errors") {
			return
		}

		errorsName = "errors"
	}

	changed := false

	ast.Inspect(pass.File, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || len(call.Args) != 1 || call.Ellipsis.IsValid() {
			return true
		}

		sel, ok := isPkgSelector(call.Fun, fmtName)
		if !ok || sel.Sel.Name != "Errorf" {
			return true
		}

		lit, ok := call.Args[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return true
		}

		value, err := strconv.Unquote(lit.Value)
		if err != nil || strings.Contains(value, "%") {
			return true
		}

		if !pass.Fix(call, "fmt.Errorf called without format verbs") {
			return true
		}

		sel.X.(*ast.Ident).Name = errorsName
		sel.Sel.Name = "New"
		changed = true

		return true
	})

	if changed {
		pass.AddImport("errors")
		pass.DeleteImportIfUnused("fmt")
	}
}
