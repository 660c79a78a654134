package domain

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
	"path/filepath"
	"sort"

	"github.com/mouse-blink/gorald/internal/adapter"
	"github.com/mouse-blink/gorald/internal/ctxlog"
	m "github.com/mouse-blink/gorald/internal/model"
)

// EmittedRegistry remembers which compilation units repairs touched during a
// run, per rule. Units are identified by their path relative to the stage
// input, which is stable across stages.
type EmittedRegistry struct {
	all    map[m.Path]struct{}
	byRule map[string]map[m.Path]struct{}
}

// NewEmittedRegistry returns an empty registry.
func NewEmittedRegistry() *EmittedRegistry {
	return &EmittedRegistry{all: map[m.Path]struct{}{}, byRule: map[string]map[m.Path]struct{}{}}
}

// Record marks rel as touched by ruleKey.
func (r *EmittedRegistry) Record(ruleKey string, rel m.Path) {
	r.all[rel] = struct{}{}

	if r.byRule[ruleKey] == nil {
		r.byRule[ruleKey] = map[m.Path]struct{}{}
	}

	r.byRule[ruleKey][rel] = struct{}{}
}

// Selected reports whether rel must be emitted by a changed-only write of ruleKey.
func (r *EmittedRegistry) Selected(ruleKey string, scope m.ChangedScope, rel m.Path) bool {
	if scope == m.ScopeStage {
		_, ok := r.byRule[ruleKey][rel]
		return ok
	}

	_, ok := r.all[rel]

	return ok
}

// WriterConfig holds the per-run settings of an OutputWriter.
type WriterConfig struct {
	Strategy  m.OutputStrategy
	Printing  m.PrintingMode
	Scope     m.ChangedScope
	TargetDir m.Path
	// VCSRoot enables patch generation when set.
	VCSRoot m.Path
}

// WriteResult lists what one Write call produced.
type WriteResult struct {
	Written []m.Path
	Patches []string
}

// OutputWriter serializes repaired programs. One writer serves one run: it
// owns the run's emitted registry and patch numbering.
type OutputWriter struct {
	fs        adapter.SourceFSAdapter
	goAdapter adapter.GoFileAdapter
	differ    adapter.PatchAdapter
	store     adapter.PatchStore
	registry  *EmittedRegistry
	cfg       WriterConfig
	patchSeq  int
}

// NewOutputWriter creates a writer. differ and store may be nil when no
// patches are wanted.
func NewOutputWriter(
	fs adapter.SourceFSAdapter,
	goAdapter adapter.GoFileAdapter,
	differ adapter.PatchAdapter,
	store adapter.PatchStore,
	cfg WriterConfig,
) *OutputWriter {
	return &OutputWriter{
		fs:        fs,
		goAdapter: goAdapter,
		differ:    differ,
		store:     store,
		registry:  NewEmittedRegistry(),
		cfg:       cfg,
	}
}

// Write persists the units of program that the stage must emit.
func (w *OutputWriter) Write(ctx context.Context, program *Program, task m.RuleTask) (WriteResult, error) {
	var result WriteResult

	for _, u := range program.Units {
		if u.Touched() {
			w.registry.Record(task.RuleKey, u.Rel)
		}
	}

	writeAll := w.writesAll(task)
	emitted := map[m.Path]struct{}{}

	for _, u := range program.Units {
		if !w.selected(u, task, writeAll) {
			continue
		}

		dest := w.destination(u, task)
		if _, dup := emitted[dest]; dup {
			continue
		}

		emitted[dest] = struct{}{}

		text, err := w.render(program.Fset, u)
		if err != nil {
			return result, &WriteError{Path: dest, Err: err}
		}

		before := u.Src
		if w.cfg.Strategy != m.OutputInPlace {
			before = nil
		}

		if err := w.emit(ctx, &result, u.Rel, dest, before, text, !writeAll); err != nil {
			return result, err
		}
	}

	return result, nil
}

// CopyThrough copies files of the stage input unchanged to the stage output.
func (w *OutputWriter) CopyThrough(files []m.Path, task m.RuleTask) ([]m.Path, error) {
	out := make([]m.Path, 0, len(files))

	for _, src := range files {
		rel, err := w.fs.RelPath(task.InputDir, src)
		if err != nil {
			return out, &WriteError{Path: src, Err: err}
		}

		dest := task.OutputDir.Join(string(rel))
		if err := w.fs.CopyFile(src, dest); err != nil {
			return out, &WriteError{Path: dest, Err: err}
		}

		out = append(out, dest)
	}

	return out, nil
}

// CarryOver emits the files of a segment the current rule did not write
// (crashed or not processed) but that earlier rules of the run changed. It
// only has work to do for the final changed-only stage with the run scope,
// where earlier edits live in the staging directory.
func (w *OutputWriter) CarryOver(ctx context.Context, files []m.Path, task m.RuleTask) (WriteResult, error) {
	var result WriteResult

	if w.cfg.Strategy != m.OutputChangedOnly || task.Intermediate || task.InputDir == task.OutputDir {
		return result, nil
	}

	for _, src := range files {
		rel, err := w.fs.RelPath(task.InputDir, src)
		if err != nil {
			return result, &WriteError{Path: src, Err: err}
		}

		if !w.registry.Selected(task.RuleKey, w.cfg.Scope, rel) {
			continue
		}

		text, err := w.fs.ReadFile(src)
		if err != nil {
			return result, &WriteError{Path: src, Err: err}
		}

		if err := w.emit(ctx, &result, rel, task.OutputDir.Join(string(rel)), nil, text, true); err != nil {
			return result, err
		}
	}

	return result, nil
}

// emit writes text to dest and, when asked, records a patch against before.
// A nil before means the original file in the target directory.
func (w *OutputWriter) emit(ctx context.Context, result *WriteResult, rel, dest m.Path, before, text []byte, patch bool) error {
	if err := w.fs.WriteFile(dest, text, 0o644); err != nil {
		return &WriteError{Path: dest, Err: err}
	}

	result.Written = append(result.Written, dest)

	if !patch {
		return nil
	}

	location, err := w.writePatch(ctx, rel, before, text)
	if err != nil {
		return &WriteError{Path: dest, Err: err}
	}

	if location != "" {
		result.Patches = append(result.Patches, location)
	}

	return nil
}

func (w *OutputWriter) writesAll(task m.RuleTask) bool {
	return task.Intermediate || w.cfg.Strategy == m.OutputAll
}

func (w *OutputWriter) selected(u *Unit, task m.RuleTask, writeAll bool) bool {
	if writeAll {
		return true
	}

	// in place, earlier stages already landed their edits in the target
	if w.cfg.Strategy == m.OutputInPlace {
		return u.Touched()
	}

	return w.registry.Selected(task.RuleKey, w.cfg.Scope, u.Rel)
}

func (w *OutputWriter) destination(u *Unit, task m.RuleTask) m.Path {
	if w.cfg.Strategy == m.OutputInPlace && !task.Intermediate {
		return u.Path
	}

	return task.OutputDir.Join(string(u.Rel))
}

// render returns the text of a unit. Untouched units keep their bytes.
func (w *OutputWriter) render(fset *token.FileSet, u *Unit) ([]byte, error) {
	if !u.Touched() {
		return u.Src, nil
	}

	if w.cfg.Printing == m.PrintRegenerate || u.StructureChanged() {
		return w.goAdapter.Format(fset, u.File)
	}

	return w.splice(fset, u)
}

// splice prints the touched declarations and puts them in place of their
// original text, keeping everything else byte for byte.
func (w *OutputWriter) splice(fset *token.FileSet, u *Unit) ([]byte, error) {
	tf := fset.File(u.File.Pos())
	if tf == nil {
		return nil, fmt.Errorf("no position information for %s", u.Path)
	}

	decls := u.TouchedDecls()
	sort.Slice(decls, func(i, j int) bool { return decls[i].Pos() > decls[j].Pos() })

	out := append([]byte(nil), u.Src...)

	for _, d := range decls {
		start, end := tf.Offset(d.Pos()), tf.Offset(d.End())
		if start < 0 || end > len(out) || start > end {
			return nil, fmt.Errorf("declaration out of range in %s", u.Path)
		}

		text, err := w.goAdapter.Format(fset, commentedDecl(u.File, d))
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		buf.Grow(len(out) - (end - start) + len(text))
		buf.Write(out[:start])
		buf.Write(text)
		buf.Write(out[end:])
		out = buf.Bytes()
	}

	return out, nil
}

// commentedDecl pairs a declaration, without its doc comment, with the
// comments inside it so the printer keeps them.
func commentedDecl(file *ast.File, d ast.Decl) *printer.CommentedNode {
	var node ast.Node = d

	switch decl := d.(type) {
	case *ast.FuncDecl:
		c := *decl
		c.Doc = nil
		node = &c
	case *ast.GenDecl:
		c := *decl
		c.Doc = nil
		node = &c
	}

	var inner []*ast.CommentGroup

	for _, cg := range file.Comments {
		if cg.Pos() >= d.Pos() && cg.End() <= d.End() {
			inner = append(inner, cg)
		}
	}

	return &printer.CommentedNode{Node: node, Comments: inner}
}

func (w *OutputWriter) writePatch(ctx context.Context, rel m.Path, before, after []byte) (string, error) {
	if w.cfg.VCSRoot == "" || w.differ == nil || w.store == nil {
		return "", nil
	}

	original := w.cfg.TargetDir.Join(string(rel))

	if before == nil {
		data, err := w.fs.ReadFile(original)
		if err != nil {
			ctxlog.FromContext(ctx).Debug("no original for patch", "file", original, "error", err)
		}

		before = data
	}

	path, err := w.fs.RelPath(w.cfg.VCSRoot, original)
	if err != nil {
		return "", fmt.Errorf("failed to locate %s in repository: %w", original, err)
	}

	diff, err := w.differ.Diff(filepath.ToSlash(string(path)), before, after)
	if err != nil || diff == "" {
		return "", err
	}

	name := fmt.Sprintf("patch-%d", w.patchSeq)
	w.patchSeq++

	return w.store.Save(ctx, name, []byte(diff))
}
