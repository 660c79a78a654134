// Package rules holds the repair rules known to gorald. A rule both detects
// its violations and repairs them in place on the syntax tree.
package rules

import (
	"go/ast"
	"go/token"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"
)

// Rule detects and repairs one kind of violation.
type Rule interface {
	// Key is the stable identifier used on the command line and in violation specs.
	Key() string
	// Name is a short human readable title.
	Name() string
	// Description explains what the rule rewrites.
	Description() string
	// NodeTypes lists the node types the rule inspects. Files without any of
	// them are not visited.
	NodeTypes() []ast.Node
	// Run visits the file of pass and calls pass.Fix for every match. The
	// repair is applied only when Fix returns true.
	Run(pass *Pass)
}

// Match is one occurrence found by a rule.
type Match struct {
	Node    ast.Node
	Message string
}

// Pass carries one file through a rule.
type Pass struct {
	Fset *token.FileSet
	File *ast.File
	// Report decides whether a match is repaired. A nil Report repairs nothing.
	Report func(Match) bool

	importsChanged bool
}

// Fix reports a match and tells the rule whether to rewrite it.
func (p *Pass) Fix(node ast.Node, message string) bool {
	if p.Report == nil {
		return false
	}

	return p.Report(Match{Node: node, Message: message})
}

// AddImport adds an import of path unless already present.
func (p *Pass) AddImport(path string) {
	if astutil.AddImport(p.Fset, p.File, path) {
		p.importsChanged = true
		collapseImports(p.File)
	}
}

// DeleteImportIfUnused removes the import of path when nothing refers to it anymore.
func (p *Pass) DeleteImportIfUnused(path string) {
	if astutil.UsesImport(p.File, path) {
		return
	}

	for _, spec := range p.File.Imports {
		value, err := strconv.Unquote(spec.Path.Value)
		if err != nil || value != path {
			continue
		}

		name := ""
		if spec.Name != nil {
			name = spec.Name.Name
		}

		if astutil.DeleteNamedImport(p.Fset, p.File, name, path) {
			p.importsChanged = true
			collapseImports(p.File)
		}

		return
	}
}

// collapseImports drops the parentheses of import declarations left with a
// single spec.
func collapseImports(file *ast.File) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.IMPORT {
			continue
		}

		if len(gen.Specs) == 1 && gen.Lparen.IsValid() {
			gen.Lparen = token.NoPos
			gen.Rparen = token.NoPos
		}
	}
}

// ImportsChanged reports whether the import list was modified.
func (p *Pass) ImportsChanged() bool {
	return p.importsChanged
}

// importName returns the name path is imported under, or "" when the file
// does not import it (or imports it as _ or .).
func importName(file *ast.File, path string) string {
	for _, spec := range file.Imports {
		value, err := strconv.Unquote(spec.Path.Value)
		if err != nil || value != path {
			continue
		}

		if spec.Name == nil {
			return defaultImportName(path)
		}

		if spec.Name.Name == "_" || spec.Name.Name == "." {
			return ""
		}

		return spec.Name.Name
	}

	return ""
}

// nameTaken reports whether an import other than path is visible as name.
func nameTaken(file *ast.File, name, path string) bool {
	for _, spec := range file.Imports {
		value, err := strconv.Unquote(spec.Path.Value)
		if err != nil || value == path {
			continue
		}

		local := defaultImportName(value)
		if spec.Name != nil {
			local = spec.Name.Name
		}

		if local == name {
			return true
		}
	}

	return false
}

func defaultImportName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}

	return path
}

// isPkgSelector matches pkg.Name where pkg is an unresolved identifier.
func isPkgSelector(expr ast.Expr, pkg string) (*ast.SelectorExpr, bool) {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok || pkg == "" {
		return nil, false
	}

	id, ok := sel.X.(*ast.Ident)
	if !ok || id.Name != pkg || id.Obj != nil {
		return nil, false
	}

	return sel, true
}
