package adapter

import (
	"fmt"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
)

// PatchAdapter renders the difference between two versions of a file.
type PatchAdapter interface {
	// Diff returns a git-style unified diff turning before into after. relPath is
	// the file's path relative to the repository root. An empty string means
	// the contents are equal.
	Diff(relPath string, before, after []byte) (string, error)
}

// UnifiedPatchAdapter produces unified diffs with go-difflib.
type UnifiedPatchAdapter struct {
	Context int
}

// NewUnifiedPatchAdapter constructs a UnifiedPatchAdapter with three lines of context.
func NewUnifiedPatchAdapter() *UnifiedPatchAdapter {
	return &UnifiedPatchAdapter{Context: 3}
}

// Diff implements PatchAdapter.
func (a *UnifiedPatchAdapter) Diff(relPath string, before, after []byte) (string, error) {
	if string(before) == string(after) {
		return "", nil
	}

	name := filepath.ToSlash(relPath)
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  a.Context,
	}

	body, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s: %w", relPath, err)
	}

	return fmt.Sprintf("diff --git a/%s b/%s\n%s", name, name, body), nil
}
