package adapter

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
)

// GoFileAdapter encapsulates Go parsing and printing so the pipeline can
// focus on repairs while delegating syntax details to an infrastructure component.
type GoFileAdapter interface {
	// Parse builds an AST, comments included, using the provided file set and source bytes.
	Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)

	// Format prints a node (a file, a declaration or a *printer.CommentedNode)
	// in gofmt style.
	Format(fileSet *token.FileSet, node any) ([]byte, error)
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser and go/format.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// Parse builds an AST for the provided filename/source pair.
func (a *LocalGoFileAdapter) Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	return parser.ParseFile(fileSet, filename, src, parser.ParseComments)
}

// Format renders node with go/format.
func (a *LocalGoFileAdapter) Format(fileSet *token.FileSet, node any) ([]byte, error) {
	var buf bytes.Buffer
	if err := format.Node(&buf, fileSet, node); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
