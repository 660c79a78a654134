package domain

import (
	"go/ast"
	"go/token"

	m "github.com/mouse-blink/gorald/internal/model"
)

// Unit is one parsed compilation unit of a segment.
type Unit struct {
	Path m.Path // location in the stage input directory
	Rel  m.Path // Path relative to the stage input directory
	Src  []byte
	File *ast.File

	decls          []ast.Decl
	touched        map[ast.Decl]struct{}
	importsChanged bool
}

func newUnit(path, rel m.Path, src []byte, file *ast.File) *Unit {
	return &Unit{
		Path:    path,
		Rel:     rel,
		Src:     src,
		File:    file,
		decls:   append([]ast.Decl(nil), file.Decls...),
		touched: map[ast.Decl]struct{}{},
	}
}

// EnclosingDecl returns the original top-level declaration containing pos.
func (u *Unit) EnclosingDecl(pos token.Pos) ast.Decl {
	for _, d := range u.decls {
		if d.Pos() <= pos && pos < d.End() {
			return d
		}
	}

	return nil
}

// Touch marks a declaration as modified by a repair.
func (u *Unit) Touch(d ast.Decl) {
	if d != nil {
		u.touched[d] = struct{}{}
	}
}

// Touched reports whether any repair modified the unit.
func (u *Unit) Touched() bool {
	return len(u.touched) > 0 || u.importsChanged
}

// TouchedDecls returns the modified declarations in source order.
func (u *Unit) TouchedDecls() []ast.Decl {
	out := make([]ast.Decl, 0, len(u.touched))

	for _, d := range u.decls {
		if _, ok := u.touched[d]; ok {
			out = append(out, d)
		}
	}

	return out
}

// StructureChanged reports whether the import list or the top-level
// declaration list differs from the parsed original.
func (u *Unit) StructureChanged() bool {
	if u.importsChanged || len(u.File.Decls) != len(u.decls) {
		return true
	}

	for i, d := range u.File.Decls {
		if d != u.decls[i] {
			return true
		}
	}

	return false
}

// Program is the in-memory representation of one segment.
type Program struct {
	Fset     *token.FileSet
	InputDir m.Path
	Units    []*Unit
}
