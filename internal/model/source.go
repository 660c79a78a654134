// Package model defines the data structures shared by the repair pipeline.
package model

import (
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// Join appends elements to the path.
func (p Path) Join(elem ...string) Path {
	return Path(filepath.Join(append([]string{string(p)}, elem...)...))
}

// Normalize returns the absolute, cleaned form of the path. Relative paths are
// resolved against the working directory; on failure the cleaned input is returned.
func (p Path) Normalize() Path {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return Path(filepath.Clean(string(p)))
	}

	return Path(abs)
}

// Rebase moves p from below the from directory to below the to directory.
// It reports false when p is not located under from.
func (p Path) Rebase(from, to Path) (Path, bool) {
	rel, err := filepath.Rel(string(from), string(p))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p, false
	}

	return to.Join(rel), true
}

// RuleInfo describes a registered repair rule.
type RuleInfo struct {
	Key         string
	Name        string
	Description string
}
