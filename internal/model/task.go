package model

import (
	"fmt"
	"math"
	"strings"
)

// OutputStrategy selects which files a stage writes and where.
type OutputStrategy string

const (
	// OutputAll writes every file of the representation.
	OutputAll OutputStrategy = "all"
	// OutputChangedOnly writes only files containing a repaired declaration.
	OutputChangedOnly OutputStrategy = "changed-only"
	// OutputInPlace writes changed files over the original sources.
	OutputInPlace OutputStrategy = "in-place"
)

// PrintingMode selects how a changed file is serialized.
type PrintingMode string

const (
	// PrintPreserve keeps the original text of untouched declarations.
	PrintPreserve PrintingMode = "preserve"
	// PrintRegenerate prints the whole file from the syntax tree.
	PrintRegenerate PrintingMode = "regenerate"
)

// ChangedScope selects which touched files a changed-only write emits.
type ChangedScope string

const (
	// ScopeRun emits every file touched by any rule so far in the run.
	ScopeRun ChangedScope = "run"
	// ScopeStage emits only files touched by the current rule.
	ScopeStage ChangedScope = "stage"
)

// ParseOutputStrategy validates a strategy name.
func ParseOutputStrategy(s string) (OutputStrategy, error) {
	switch v := OutputStrategy(strings.ToLower(strings.TrimSpace(s))); v {
	case OutputAll, OutputChangedOnly, OutputInPlace:
		return v, nil
	}

	return "", fmt.Errorf("unknown output strategy %q (want all, changed-only or in-place)", s)
}

// ParsePrintingMode validates a printing mode name.
func ParsePrintingMode(s string) (PrintingMode, error) {
	switch v := PrintingMode(strings.ToLower(strings.TrimSpace(s))); v {
	case PrintPreserve, PrintRegenerate:
		return v, nil
	}

	return "", fmt.Errorf("unknown printing mode %q (want preserve or regenerate)", s)
}

// ParseChangedScope validates a changed scope name.
func ParseChangedScope(s string) (ChangedScope, error) {
	switch v := ChangedScope(strings.ToLower(strings.TrimSpace(s))); v {
	case ScopeRun, ScopeStage:
		return v, nil
	}

	return "", fmt.Errorf("unknown changed scope %q (want run or stage)", s)
}

// RuleTask is one stage of the pipeline. InputDir of stage i is the OutputDir of
// stage i-1; stage 0 reads the original target.
type RuleTask struct {
	Index        int
	RuleKey      string
	InputDir     Path
	OutputDir    Path
	Intermediate bool // OutputDir is the staging directory
}

// FixBudget counts the repairs of one rule against its ceiling.
type FixBudget struct {
	Max     int
	Applied int
}

// NewFixBudget creates a budget. A non-positive max means unlimited.
func NewFixBudget(max int) *FixBudget {
	if max <= 0 {
		max = math.MaxInt
	}

	return &FixBudget{Max: max}
}

// Available reports whether another repair may be applied.
func (b *FixBudget) Available() bool {
	return b.Applied < b.Max
}

// Exhausted reports whether the ceiling has been reached.
func (b *FixBudget) Exhausted() bool {
	return !b.Available()
}

// Consume records one repair. It returns false when the budget is exhausted.
func (b *FixBudget) Consume() bool {
	if !b.Available() {
		return false
	}

	b.Applied++

	return true
}
