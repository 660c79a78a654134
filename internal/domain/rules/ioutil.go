package rules

import (
	"go/ast"
)

type replacement struct {
	pkg  string
	name string
}

// ioutilReplacements maps io/ioutil members to their one-to-one successors.
// ReadDir is left out: os.ReadDir returns DirEntry values, not FileInfo.
var ioutilReplacements = map[string]replacement{
	"ReadFile":  {"os", "ReadFile"},
	"WriteFile": {"os", "WriteFile"},
	"TempFile":  {"os", "CreateTemp"},
	"TempDir":   {"os", "MkdirTemp"},
	"ReadAll":   {"io", "ReadAll"},
	"NopCloser": {"io", "NopCloser"},
	"Discard":   {"io", "Discard"},
}

// DeprecatedIoutil moves uses of io/ioutil to os and io.
type DeprecatedIoutil struct{}

func (*DeprecatedIoutil) Key() string  { return "deprecated-ioutil" }
func (*DeprecatedIoutil) Name() string { return "Deprecated io/ioutil" }

func (*DeprecatedIoutil) Description() string {
	return "ioutil.ReadFile, WriteFile, TempFile, TempDir, ReadAll, NopCloser and Discard move to os and io"
}

func (*DeprecatedIoutil) NodeTypes() []ast.Node {
	return []ast.Node{(*ast.SelectorExpr)(nil)}
}

func (*DeprecatedIoutil) Run(pass *Pass) {
	ioutilName := importName(pass.File, "io/ioutil")
	if ioutilName == "" {
		return
	}

	targets := map[string]string{}

	for _, pkg := range []string{"os", "io"} {
		name := importName(pass.File, pkg)
		if name == "" && !nameTaken(pass.File, pkg, pkg) {
			name = pkg
		}

		targets[pkg] = name
	}

	added := map[string]bool{}

	ast.Inspect(pass.File, func(n ast.Node) bool {
		sel, ok := isPkgSelector(asExpr(n), ioutilName)
		if !ok {
			return true
		}

		repl, ok := ioutilReplacements[sel.Sel.Name]
		if !ok || targets[repl.pkg] == "" {
			return true
		}

		if !pass.Fix(sel, "io/ioutil."+sel.Sel.Name+" is deprecated") {
			return true
		}

		sel.X.(*ast.Ident).Name = targets[repl.pkg]
		sel.Sel.Name = repl.name
		added[repl.pkg] = true

		return false
	})

	if len(added) == 0 {
		return
	}

	for _, pkg := range []string{"io", "os"} {
		if added[pkg] {
			pass.AddImport(pkg)
		}
	}

	pass.DeleteImportIfUnused("io/ioutil")
}

func asExpr(n ast.Node) ast.Expr {
	e, _ := n.(ast.Expr)
	return e
}
