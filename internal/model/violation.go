package model

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Violation is one static-analysis finding. Lines and columns are 1-based and
// refer to the pre-repair text of FilePath. A StartCol of 0 means the column is
// unknown and the violation covers its whole start line.
type Violation struct {
	RuleKey   string
	FilePath  Path
	StartLine int
	EndLine   int
	StartCol  int
	EndCol    int
	CheckName string
	Message   string
}

// ViolationKey identifies a violation location for deduplication.
type ViolationKey struct {
	RuleKey string
	File    Path
	Line    int
	Col     int
}

// Key returns the deduplication key of the violation.
func (v Violation) Key() ViolationKey {
	return ViolationKey{RuleKey: v.RuleKey, File: v.FilePath, Line: v.StartLine, Col: v.StartCol}
}

// Spec renders the violation in the ruleKey:path:startLine:startCol:endLine:endCol
// form accepted by ParseViolationSpec. The path is made relative to base when possible.
func (v Violation) Spec(base Path) string {
	path := string(v.FilePath)
	if base != "" {
		if rel, err := filepath.Rel(string(base), path); err == nil && !strings.HasPrefix(rel, "..") {
			path = filepath.ToSlash(rel)
		}
	}

	return fmt.Sprintf("%s:%s:%d:%d:%d:%d", v.RuleKey, path, v.StartLine, v.StartCol, v.EndLine, v.EndCol)
}

// ParseViolationSpec parses a ruleKey:path:startLine:startCol:endLine:endCol string.
// Relative paths are resolved against base. The path may itself contain colons.
func ParseViolationSpec(spec string, base Path) (Violation, error) {
	parts := strings.Split(strings.TrimSpace(spec), ":")
	if len(parts) < 6 {
		return Violation{}, fmt.Errorf("invalid violation spec %q: expected ruleKey:path:startLine:startCol:endLine:endCol", spec)
	}

	n := len(parts)
	nums := make([]int, 4)

	for i, raw := range parts[n-4:] {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			return Violation{}, fmt.Errorf("invalid violation spec %q: bad position %q", spec, raw)
		}

		nums[i] = value
	}

	ruleKey := parts[0]
	path := strings.Join(parts[1:n-4], ":")

	if ruleKey == "" || path == "" {
		return Violation{}, fmt.Errorf("invalid violation spec %q: empty rule key or path", spec)
	}

	if nums[0] == 0 {
		return Violation{}, fmt.Errorf("invalid violation spec %q: start line must be positive", spec)
	}

	file := Path(filepath.FromSlash(path))
	if !filepath.IsAbs(string(file)) && base != "" {
		file = base.Join(string(file))
	}

	return Violation{
		RuleKey:   ruleKey,
		FilePath:  file.Normalize(),
		StartLine: nums[0],
		StartCol:  nums[1],
		EndLine:   nums[2],
		EndCol:    nums[3],
	}, nil
}

// ViolationSet is a set of violations keyed by exact location.
type ViolationSet map[ViolationKey]Violation

// NewViolationSet builds a set from the given violations.
func NewViolationSet(violations ...Violation) ViolationSet {
	set := make(ViolationSet, len(violations))
	for _, v := range violations {
		set.Add(v)
	}

	return set
}

// Add inserts v, keeping the first violation seen for a location.
func (s ViolationSet) Add(v Violation) {
	if _, ok := s[v.Key()]; !ok {
		s[v.Key()] = v
	}
}

// Merge adds every violation of other.
func (s ViolationSet) Merge(other ViolationSet) {
	for _, v := range other {
		s.Add(v)
	}
}

// Lookup finds the violation of rule at the given location. An exact column match
// wins; a whole-line violation (column 0) matches any column on its line.
func (s ViolationSet) Lookup(ruleKey string, file Path, line, col int) (Violation, bool) {
	if v, ok := s[ViolationKey{RuleKey: ruleKey, File: file, Line: line, Col: col}]; ok {
		return v, true
	}

	v, ok := s[ViolationKey{RuleKey: ruleKey, File: file, Line: line}]

	return v, ok
}

// ForRule returns the violations of one rule.
func (s ViolationSet) ForRule(ruleKey string) ViolationSet {
	out := make(ViolationSet)

	for k, v := range s {
		if k.RuleKey == ruleKey {
			out[k] = v
		}
	}

	return out
}

// InFiles returns the violations located in one of the given files.
func (s ViolationSet) InFiles(files []Path) ViolationSet {
	wanted := make(map[Path]struct{}, len(files))
	for _, f := range files {
		wanted[f] = struct{}{}
	}

	out := make(ViolationSet)

	for k, v := range s {
		if _, ok := wanted[k.File]; ok {
			out[k] = v
		}
	}

	return out
}

// Rebase moves every violation located under from to the same relative location
// under to. Violations outside from are kept as they are.
func (s ViolationSet) Rebase(from, to Path) ViolationSet {
	if from == to {
		return s
	}

	out := make(ViolationSet, len(s))

	for _, v := range s {
		if moved, ok := v.FilePath.Rebase(from, to); ok {
			v.FilePath = moved
		}

		out.Add(v)
	}

	return out
}

// Sorted returns the violations ordered by rule, file, line and column.
func (s ViolationSet) Sorted() []Violation {
	out := make([]Violation, 0, len(s))
	for _, v := range s {
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.RuleKey != b.RuleKey {
			return a.RuleKey < b.RuleKey
		}

		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}

		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}

		return a.StartCol < b.StartCol
	})

	return out
}
