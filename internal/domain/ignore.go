package domain

import (
	"go/ast"
	"go/token"
	"regexp"
	"strings"
	"unicode"
)

const ignoreDirective = "gorald:ignore"

var nolintPattern = regexp.MustCompile(`^nolint(?::([a-zA-Z0-9,_-]+))?(?:\s|$)`)

type ignoreRule struct {
	all   bool
	names map[string]struct{}
}

func (r ignoreRule) ignores(ruleKey string) bool {
	if r.all {
		return true
	}

	if len(r.names) == 0 {
		return false
	}

	_, ok := r.names[strings.ToLower(ruleKey)]

	return ok
}

func (r ignoreRule) empty() bool {
	return !r.all && len(r.names) == 0
}

func mergeIgnoreRule(dst *ignoreRule, src ignoreRule) {
	if src.all {
		dst.all = true
		dst.names = nil

		return
	}

	if dst.all || len(src.names) == 0 {
		return
	}

	if dst.names == nil {
		dst.names = make(map[string]struct{}, len(src.names))
	}

	for name := range src.names {
		dst.names[name] = struct{}{}
	}
}

// parseIgnoreDirective recognizes "//gorald:ignore [rule,...]" and
// "//nolint[:rule,...]" comments.
func parseIgnoreDirective(commentText string) (ignoreRule, bool) {
	s := strings.TrimSpace(commentText)
	if strings.HasPrefix(s, "//") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "//"))
	} else if strings.HasPrefix(s, "/*") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "/*"))
		s = strings.TrimSpace(strings.TrimSuffix(s, "*/"))
	}

	if strings.HasPrefix(s, ignoreDirective) {
		return ruleFromList(strings.TrimPrefix(s, ignoreDirective), " ,"), true
	}

	if match := nolintPattern.FindStringSubmatch(s); match != nil {
		return ruleFromList(match[1], ","), true
	}

	return ignoreRule{}, false
}

func ruleFromList(list, separators string) ignoreRule {
	parts := strings.FieldsFunc(list, func(r rune) bool { return strings.ContainsRune(separators, r) })
	rule := ignoreRule{names: make(map[string]struct{}, len(parts))}

	for _, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "all" {
			return ignoreRule{all: true}
		}

		if name != "" {
			rule.names[name] = struct{}{}
		}
	}

	if len(rule.names) == 0 {
		return ignoreRule{all: true}
	}

	return rule
}

type funcIgnore struct {
	startLine int
	endLine   int
	rule      ignoreRule
}

// ignoreIndex answers whether a rule is suppressed on a given line of one file.
type ignoreIndex struct {
	file  ignoreRule
	funcs []funcIgnore
	line  map[int]ignoreRule
}

func (idx ignoreIndex) suppressed(ruleKey string, line int) bool {
	if idx.file.ignores(ruleKey) {
		return true
	}

	if r, ok := idx.line[line]; ok && r.ignores(ruleKey) {
		return true
	}

	for _, f := range idx.funcs {
		if line >= f.startLine && line <= f.endLine && f.rule.ignores(ruleKey) {
			return true
		}
	}

	return false
}

func buildIgnoreIndex(file *ast.File, fset *token.FileSet, content []byte) ignoreIndex {
	funcs, funcDocGroups := buildFuncIgnoreRules(file, fset)
	fileRule := buildFileIgnoreRule(file)
	lineRules := buildLineIgnoreRules(file, fset, content, funcDocGroups)

	return ignoreIndex{file: fileRule, funcs: funcs, line: lineRules}
}

func buildFuncIgnoreRules(file *ast.File, fset *token.FileSet) ([]funcIgnore, map[*ast.CommentGroup]struct{}) {
	var funcs []funcIgnore

	funcDocGroups := map[*ast.CommentGroup]struct{}{}

	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}

		funcDocGroups[fd.Doc] = struct{}{}

		var rule ignoreRule

		for _, c := range fd.Doc.List {
			r, ok := parseIgnoreDirective(c.Text)
			if !ok {
				continue
			}

			mergeIgnoreRule(&rule, r)
		}

		if !rule.empty() {
			funcs = append(funcs, funcIgnore{
				startLine: fset.Position(fd.Pos()).Line,
				endLine:   fset.Position(fd.End()).Line,
				rule:      rule,
			})
		}
	}

	return funcs, funcDocGroups
}

func buildFileIgnoreRule(file *ast.File) ignoreRule {
	var rule ignoreRule

	for _, group := range file.Comments {
		if group.End() >= file.Package {
			continue
		}

		for _, c := range group.List {
			r, ok := parseIgnoreDirective(c.Text)
			if !ok {
				continue
			}

			mergeIgnoreRule(&rule, r)
		}
	}

	return rule
}

func buildLineIgnoreRules(
	file *ast.File,
	fset *token.FileSet,
	content []byte,
	funcDocGroups map[*ast.CommentGroup]struct{},
) map[int]ignoreRule {
	lineRules := make(map[int]ignoreRule)
	lineStarts := computeLineStarts(content)

	for _, group := range file.Comments {
		if group.End() < file.Package {
			continue
		}

		if _, ok := funcDocGroups[group]; ok {
			continue
		}

		for _, c := range group.List {
			r, ok := parseIgnoreDirective(c.Text)
			if !ok {
				continue
			}

			pos := fset.PositionFor(c.Slash, true)
			if pos.Line <= 0 {
				continue
			}

			targetLine := pos.Line
			if isLeadingComment(pos.Line, pos.Offset, lineStarts, content) {
				targetLine = pos.Line + 1
			}

			current := lineRules[targetLine]
			mergeIgnoreRule(&current, r)
			lineRules[targetLine] = current
		}
	}

	return lineRules
}

func computeLineStarts(content []byte) []int {
	starts := []int{0}

	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	return starts
}

func isLeadingComment(line int, slashOffset int, lineStarts []int, content []byte) bool {
	if line <= 0 || line > len(lineStarts) {
		return false
	}

	start := lineStarts[line-1]
	if slashOffset < start || slashOffset > len(content) {
		return false
	}

	for _, b := range content[start:slashOffset] {
		if !unicode.IsSpace(rune(b)) {
			return false
		}
	}

	return true
}
