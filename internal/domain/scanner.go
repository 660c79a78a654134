package domain

import (
	"context"
	"crypto/sha256"
	"go/ast"
	"go/token"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mouse-blink/gorald/internal/adapter"
	"github.com/mouse-blink/gorald/internal/ctxlog"
	"github.com/mouse-blink/gorald/internal/domain/rules"
	m "github.com/mouse-blink/gorald/internal/model"
)

const defaultFindingCacheSize = 4096

// Scanner finds the violations of one rule in a set of files.
type Scanner interface {
	Scan(ctx context.Context, rule rules.Rule, files []m.Path) (m.ViolationSet, error)
}

type findingKey struct {
	rule   string
	digest [sha256.Size]byte
}

// finding is a violation without its file, so identical contents share entries.
type finding struct {
	startLine, startCol int
	endLine, endCol     int
	message             string
}

// LocalScanner runs a rule's own detection over the files. Files are scanned
// concurrently; results are memoised per rule and file content.
type LocalScanner struct {
	fs        adapter.SourceFSAdapter
	goAdapter adapter.GoFileAdapter
	workers   int
	cache     *lru.Cache[findingKey, []finding]
}

// NewLocalScanner creates a scanner running at most workers files at a time.
func NewLocalScanner(fs adapter.SourceFSAdapter, goAdapter adapter.GoFileAdapter, workers int) *LocalScanner {
	if workers <= 0 {
		workers = 1
	}

	cache, _ := lru.New[findingKey, []finding](defaultFindingCacheSize)

	return &LocalScanner{fs: fs, goAdapter: goAdapter, workers: workers, cache: cache}
}

// Scan implements Scanner. A file that cannot be read or parsed is logged as
// a ScanError and contributes no violation.
func (s *LocalScanner) Scan(ctx context.Context, rule rules.Rule, files []m.Path) (m.ViolationSet, error) {
	results := make([][]m.Violation, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			found, err := s.scanFile(rule, file)
			if err != nil {
				ctxlog.FromContext(ctx).Warn("scan failed", "rule", rule.Key(), "file", file, "error", err)
				return nil
			}

			results[i] = found

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := m.NewViolationSet()

	for _, found := range results {
		for _, v := range found {
			set.Add(v)
		}
	}

	return set, nil
}

func (s *LocalScanner) scanFile(rule rules.Rule, path m.Path) ([]m.Violation, error) {
	src, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, &ScanError{RuleKey: rule.Key(), Path: path, Err: err}
	}

	key := findingKey{rule: rule.Key(), digest: sha256.Sum256(src)}
	if cached, ok := s.cache.Get(key); ok {
		return toViolations(rule, path, cached), nil
	}

	fset := token.NewFileSet()

	file, err := s.goAdapter.Parse(fset, string(path), src)
	if err != nil {
		return nil, &ScanError{RuleKey: rule.Key(), Path: path, Err: err}
	}

	var found []finding

	if hasCandidates(file, rule.NodeTypes()) {
		rule.Run(&rules.Pass{Fset: fset, File: file, Report: func(match rules.Match) bool {
			start := fset.Position(match.Node.Pos())
			end := fset.Position(match.Node.End())
			found = append(found, finding{
				startLine: start.Line,
				startCol:  start.Column,
				endLine:   end.Line,
				endCol:    end.Column,
				message:   match.Message,
			})

			return false
		}})
	}

	s.cache.Add(key, found)

	return toViolations(rule, path, found), nil
}

// hasCandidates reports whether file contains a node of one of the types.
func hasCandidates(file *ast.File, types []ast.Node) bool {
	if len(types) == 0 {
		return true
	}

	found := false

	inspector.New([]*ast.File{file}).Preorder(types, func(ast.Node) {
		found = true
	})

	return found
}

func toViolations(rule rules.Rule, path m.Path, found []finding) []m.Violation {
	out := make([]m.Violation, 0, len(found))

	for _, f := range found {
		out = append(out, m.Violation{
			RuleKey:   rule.Key(),
			FilePath:  path,
			StartLine: f.startLine,
			StartCol:  f.startCol,
			EndLine:   f.endLine,
			EndCol:    f.endCol,
			CheckName: rule.Name(),
			Message:   f.message,
		})
	}

	return out
}
