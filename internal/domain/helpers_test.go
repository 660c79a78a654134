package domain

import (
	"context"
	"errors"
	"go/ast"
	"os"
	"path/filepath"
	"testing"

	"github.com/mouse-blink/gorald/internal/adapter"
	"github.com/mouse-blink/gorald/internal/domain/rules"
	m "github.com/mouse-blink/gorald/internal/model"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(path, 0o755))
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

// writeTree creates files (relative path -> contents) below a new temp dir.
func writeTree(t *testing.T, files map[string]string) m.Path {
	t.Helper()

	root := t.TempDir()
	for rel, contents := range files {
		writeTestFile(t, filepath.Join(root, filepath.FromSlash(rel)), contents)
	}

	return m.Path(root)
}

// listGoFiles returns the slash separated relative paths of the .go files below dir.
func listGoFiles(t *testing.T, dir m.Path) []string {
	t.Helper()

	var out []string

	err := filepath.WalkDir(string(dir), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && filepath.Ext(path) == ".go" {
			rel, relErr := filepath.Rel(string(dir), path)
			if relErr != nil {
				return relErr
			}

			out = append(out, filepath.ToSlash(rel))
		}

		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	require.NoError(t, err)

	return out
}

// failingFS wraps the local adapter and fails selected operations.
type failingFS struct {
	*adapter.LocalSourceFSAdapter

	readDirErr map[m.Path]error
	writeErr   error
}

func newFailingFS() *failingFS {
	return &failingFS{
		LocalSourceFSAdapter: adapter.NewLocalSourceFSAdapter(),
		readDirErr:           map[m.Path]error{},
	}
}

func (f *failingFS) ReadDir(dir m.Path) ([]os.DirEntry, error) {
	if err, ok := f.readDirErr[dir]; ok {
		return nil, err
	}

	return f.LocalSourceFSAdapter.ReadDir(dir)
}

func (f *failingFS) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	if f.writeErr != nil {
		return f.writeErr
	}

	return f.LocalSourceFSAdapter.WriteFile(path, content, perm)
}

// boolSrc has one bool-literal-compare violation at line 4, column 9.
const boolSrc = `package p

func A(x bool) bool {
	return x == true
}
`

const boolFixed = `package p

func A(x bool) bool {
	return x
}
`

const cleanSrc = `package p

func C() int { return 1 }
`

// panicRule matches every function declaration and panics when repairing.
type panicRule struct{}

func (panicRule) Key() string           { return "panic-rule" }
func (panicRule) Name() string          { return "Panics" }
func (panicRule) Description() string   { return "panics on repair" }
func (panicRule) NodeTypes() []ast.Node { return []ast.Node{(*ast.FuncDecl)(nil)} }

func (panicRule) Run(pass *rules.Pass) {
	for _, d := range pass.File.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok && pass.Fix(fd, "boom") {
			panic("boom")
		}
	}
}

// recorder collects events.
type recorder struct {
	events []m.Event
}

func (r *recorder) Handle(_ context.Context, e m.Event) {
	r.events = append(r.events, e)
}

func (r *recorder) types() []m.EventType {
	out := make([]m.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}

	return out
}

func (r *recorder) ofType(t m.EventType) []m.Event {
	var out []m.Event

	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}

	return out
}

type mockPatchStore struct {
	mock.Mock
}

func (s *mockPatchStore) Save(ctx context.Context, name string, content []byte) (string, error) {
	args := s.Called(ctx, name, content)
	return args.String(0), args.Error(1)
}
