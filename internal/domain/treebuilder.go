package domain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/mouse-blink/gorald/internal/adapter"
	"github.com/mouse-blink/gorald/internal/ctxlog"
	m "github.com/mouse-blink/gorald/internal/model"
)

const goFileExt = ".go"

var skippedDirNames = map[string]struct{}{
	"vendor":       {},
	"testdata":     {},
	"node_modules": {},
}

// Tree is the result of walking a source directory.
type Tree struct {
	// Root is nil when the directory holds no eligible file.
	Root *m.Node
	// Skipped lists the subdirectories that could not be read, as *BuildError.
	Skipped []error
}

// TreeBuilder walks a directory into a tree of FileGroup and Directory nodes.
type TreeBuilder struct {
	fs      adapter.SourceFSAdapter
	exclude []*regexp.Regexp
	skip    map[m.Path]struct{}
}

// NewTreeBuilder creates a builder. Files whose slash separated path relative
// to the walked root matches an exclude pattern are left out, and so are the
// skipDirs (typically the run workspace).
func NewTreeBuilder(fs adapter.SourceFSAdapter, exclude []*regexp.Regexp, skipDirs ...m.Path) *TreeBuilder {
	skip := make(map[m.Path]struct{}, len(skipDirs))
	for _, d := range skipDirs {
		skip[d.Normalize()] = struct{}{}
	}

	return &TreeBuilder{fs: fs, exclude: exclude, skip: skip}
}

// CompileExcludes compiles exclude patterns.
func CompileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}

		out = append(out, re)
	}

	return out, nil
}

// Build walks root. A missing or unreadable root is an error; unreadable
// subdirectories are recorded in Tree.Skipped and the walk goes on.
func (b *TreeBuilder) Build(ctx context.Context, root m.Path) (Tree, error) {
	var tree Tree

	info, err := b.fs.FileInfo(root)
	if err != nil {
		return tree, fmt.Errorf("failed to read source root: %w", err)
	}

	if !info.IsDir() {
		return tree, fmt.Errorf("source root %s is not a directory", root)
	}

	node, err := b.buildDir(ctx, root, root, &tree)
	if err != nil {
		return tree, fmt.Errorf("failed to read source root: %w", err)
	}

	tree.Root = node

	return tree, nil
}

func (b *TreeBuilder) buildDir(ctx context.Context, root, dir m.Path, tree *Tree) (*m.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := b.fs.ReadDir(dir)
	if err != nil {
		return nil, &BuildError{Path: dir, Err: err}
	}

	var (
		files   []m.Path
		subdirs []m.Path
	)

	for _, entry := range entries {
		name := entry.Name()
		path := dir.Join(name)

		if entry.IsDir() {
			if !b.skipDir(name, path) {
				subdirs = append(subdirs, path)
			}

			continue
		}

		if entry.Type().IsRegular() && strings.HasSuffix(name, goFileExt) && !b.excluded(root, path) {
			files = append(files, path)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })
	sort.Slice(subdirs, func(i, j int) bool { return subdirs[i] < subdirs[j] })

	var children []*m.Node

	if len(files) > 0 {
		children = append(children, m.NewFileGroup(dir, files))
	}

	for _, sub := range subdirs {
		child, err := b.buildDir(ctx, root, sub, tree)
		if err != nil {
			var buildErr *BuildError
			if !errors.As(err, &buildErr) {
				return nil, err
			}

			ctxlog.FromContext(ctx).Warn("skipping unreadable directory", "path", sub, "error", buildErr.Err)
			tree.Skipped = append(tree.Skipped, err)

			continue
		}

		if child != nil {
			children = append(children, child)
		}
	}

	if len(children) == 0 {
		return nil, nil
	}

	return m.NewDirectory(dir, children), nil
}

func (b *TreeBuilder) skipDir(name string, path m.Path) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}

	if _, ok := skippedDirNames[name]; ok {
		return true
	}

	_, ok := b.skip[path.Normalize()]

	return ok
}

func (b *TreeBuilder) excluded(root, path m.Path) bool {
	if len(b.exclude) == 0 {
		return false
	}

	rel, err := filepath.Rel(string(root), string(path))
	if err != nil {
		rel = string(path)
	}

	rel = filepath.ToSlash(rel)

	for _, re := range b.exclude {
		if re.MatchString(rel) {
			return true
		}
	}

	return false
}
