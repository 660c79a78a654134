package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/mouse-blink/gorald/internal/adapter"
	m "github.com/mouse-blink/gorald/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeBuilder_Build(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.go":                  "package p\n",
		"a.go":                  "package p\n",
		"README.md":             "docs\n",
		"zeta/z.go":             "package zeta\n",
		"alpha/one.go":          "package alpha\n",
		"alpha/deep/two.go":     "package deep\n",
		"empty/notes.txt":       "nothing\n",
		"vendor/dep/dep.go":     "package dep\n",
		"testdata/fixture.go":   "package fixture\n",
		".hidden/h.go":          "package hidden\n",
		"gen/types_gen.go":      "package gen\n",
		"gorald-workspace/x.go": "package x\n",
	})

	exclude, err := CompileExcludes([]string{`_gen\.go$`})
	require.NoError(t, err)

	builder := NewTreeBuilder(adapter.NewLocalSourceFSAdapter(), exclude, root.Join("gorald-workspace"))

	tree, err := builder.Build(context.Background(), root)
	require.NoError(t, err)
	require.NotNil(t, tree.Root)
	assert.Empty(t, tree.Skipped)

	assert.Equal(t, m.Directory, tree.Root.Kind)
	assert.Equal(t, 5, tree.Root.FileCount())

	children := tree.Root.Children
	require.Len(t, children, 3, "file group, alpha, zeta")

	assert.Equal(t, m.FileGroup, children[0].Kind)
	assert.Equal(t, []m.Path{root.Join("a.go"), root.Join("b.go")}, children[0].Files)
	assert.Equal(t, root.Join("alpha"), children[1].RootPath)
	assert.Equal(t, 2, children[1].FileCount())
	assert.Equal(t, root.Join("zeta"), children[2].RootPath)

	assert.Equal(t, []m.Path{
		root.Join("a.go"),
		root.Join("b.go"),
		root.Join("alpha", "one.go"),
		root.Join("alpha", "deep", "two.go"),
		root.Join("zeta", "z.go"),
	}, tree.Root.AllFiles())
}

func TestTreeBuilder_EmptyRoot(t *testing.T) {
	root := writeTree(t, map[string]string{"docs/readme.md": "x\n"})

	tree, err := NewTreeBuilder(adapter.NewLocalSourceFSAdapter(), nil).Build(context.Background(), root)
	require.NoError(t, err)

	assert.Nil(t, tree.Root)
	assert.Nil(t, PlanSegments(tree.Root, 5))
}

func TestTreeBuilder_MissingRoot(t *testing.T) {
	_, err := NewTreeBuilder(adapter.NewLocalSourceFSAdapter(), nil).Build(context.Background(), m.Path(t.TempDir()).Join("missing"))
	assert.ErrorContains(t, err, "failed to read source root")
}

func TestTreeBuilder_UnreadableSubdirectory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.go":        "package p\n",
		"locked/b.go": "package locked\n",
		"open/c.go":   "package open\n",
	})

	fs := newFailingFS()
	fs.readDirErr[root.Join("locked")] = errors.New("permission denied")

	tree, err := NewTreeBuilder(fs, nil).Build(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, tree.Skipped, 1)

	var buildErr *BuildError
	require.True(t, errors.As(tree.Skipped[0], &buildErr))
	assert.Equal(t, root.Join("locked"), buildErr.Path)

	assert.Equal(t, []m.Path{root.Join("a.go"), root.Join("open", "c.go")}, tree.Root.AllFiles())
}

func TestTreeBuilder_UnreadableRoot(t *testing.T) {
	root := writeTree(t, map[string]string{"a.go": "package p\n"})

	fs := newFailingFS()
	fs.readDirErr[root] = errors.New("permission denied")

	_, err := NewTreeBuilder(fs, nil).Build(context.Background(), root)
	assert.ErrorContains(t, err, "permission denied")
}

func TestTreeBuilder_Cancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.go": "package p\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTreeBuilder(adapter.NewLocalSourceFSAdapter(), nil).Build(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompileExcludes_Invalid(t *testing.T) {
	_, err := CompileExcludes([]string{"("})
	assert.ErrorContains(t, err, "invalid exclude pattern")
}
