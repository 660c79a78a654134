package controller

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/gorald/internal/model"
)

func newSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var out bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	return NewSimpleUI(cmd), &out
}

func sampleReport() m.RunReport {
	return m.RunReport{
		RunID: "run-1",
		Rules: []m.RuleReport{
			{RuleKey: "bool-literal-compare", Mined: 4, Fixed: 3, Segments: 2, Processed: 2, Crashes: 1},
			{RuleKey: "self-assignment", Mined: 2, Fixed: 1, Segments: 2, Processed: 1, BudgetExhausted: true},
		},
		OutputDir: "/ws/final-output",
		Patches:   []m.Path{"/ws/patches/patch-0"},
	}
}

func TestSimpleUI_Handle(t *testing.T) {
	ui, out := newSimpleUI()
	ctx := context.Background()

	require.NoError(t, ui.Start(ctx))
	ui.Handle(ctx, m.Event{Type: m.EventRuleStart, RuleKey: "r", Segments: 3})
	ui.Handle(ctx, m.Event{Type: m.EventParseStart, RuleKey: "r"})
	ui.Handle(ctx, m.Event{Type: m.EventCrash, RuleKey: "r", Segment: 1, Message: "bad syntax"})
	ui.Handle(ctx, m.Event{Type: m.EventRuleEnd, RuleKey: "r", Fixes: 2})
	ui.Close()

	assert.Equal(t, "r: 3 segment(s)\nr: segment 1 crashed: bad syntax\nr: 2 fix(es)\n", out.String())
}

func TestSimpleUI_DisplayReport(t *testing.T) {
	ui, out := newSimpleUI()

	require.NoError(t, ui.DisplayReport(sampleReport(), nil))

	got := out.String()
	assert.Contains(t, got, "bool-literal-compare")
	assert.Contains(t, got, "exhausted")
	assert.Contains(t, got, "TOTAL RULES 2")
	assert.Contains(t, got, "Output: /ws/final-output")
	assert.Contains(t, got, "Patch: /ws/patches/patch-0")
	assert.NotContains(t, got, "run failed")
}

func TestSimpleUI_DisplayReportWithError(t *testing.T) {
	ui, out := newSimpleUI()
	runErr := errors.New("disk full")

	err := ui.DisplayReport(m.RunReport{}, runErr)
	assert.ErrorIs(t, err, runErr)
	assert.Contains(t, out.String(), "run failed: disk full")
}

func TestSimpleUI_DisplayViolations(t *testing.T) {
	ui, out := newSimpleUI()

	violations := []m.Violation{
		{RuleKey: "bool-literal-compare", FilePath: "/src/a.go", StartLine: 4, StartCol: 9, EndLine: 4, EndCol: 18, Message: "redundant"},
	}

	require.NoError(t, ui.DisplayViolations(violations, "/src"))
	assert.Contains(t, out.String(), "bool-literal-compare:a.go:4:9:4:18")
	assert.Contains(t, out.String(), "redundant")
	assert.Contains(t, out.String(), "TOTAL VIOLATIONS 1")
}

func TestSimpleUI_DisplayRules(t *testing.T) {
	ui, out := newSimpleUI()

	require.NoError(t, ui.DisplayRules([]m.RuleInfo{{Key: "k", Name: "Name", Description: "does things"}}))
	assert.Contains(t, out.String(), "does things")
}
