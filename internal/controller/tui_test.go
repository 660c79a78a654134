package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/gorald/internal/model"
)

func update(t *testing.T, model repairModel, msg tea.Msg) (repairModel, tea.Cmd) {
	t.Helper()

	updated, cmd := model.Update(msg)

	next, ok := updated.(repairModel)
	require.True(t, ok)

	return next, cmd
}

func TestRepairModel_Progress(t *testing.T) {
	model := newRepairModel()
	require.NotNil(t, model.Init())

	events := []m.Event{
		{Type: m.EventRuleStart, RuleKey: "bool-literal-compare", Segment: -1, Segments: 4},
		{Type: m.EventParseStart, RuleKey: "bool-literal-compare", Segment: 0},
		{Type: m.EventRepairEnd, RuleKey: "bool-literal-compare", Segment: 0},
		{Type: m.EventRepaired, RuleKey: "bool-literal-compare", Segment: 0},
		{Type: m.EventCrash, RuleKey: "bool-literal-compare", Segment: 1, Message: "bad syntax"},
	}

	for _, e := range events {
		model, _ = update(t, model, eventMsg{event: e})
	}

	require.Len(t, model.rules, 1)
	assert.Equal(t, 2, model.rules[0].done)
	assert.Equal(t, 1, model.rules[0].crashes)
	assert.Equal(t, 1, model.repaired)
	assert.InDelta(t, 0.5, model.rules[0].percent(), 1e-9)

	view := model.View()
	assert.Contains(t, view, "gorald repair")
	assert.Contains(t, view, "2/4")
	assert.Contains(t, view, "bool-literal-compare #1: bad syntax")

	model, _ = update(t, model, eventMsg{event: m.Event{Type: m.EventRuleEnd, RuleKey: "bool-literal-compare", Fixes: 1}})
	assert.True(t, model.rules[0].finished)
	assert.Contains(t, model.View(), "1 fix(es), 1 crash(es)")
}

func TestRepairModel_ManyCrashes(t *testing.T) {
	model := newRepairModel()
	model, _ = update(t, model, eventMsg{event: m.Event{Type: m.EventRuleStart, RuleKey: "r", Segments: 10}})

	for i := range 8 {
		model, _ = update(t, model, eventMsg{event: m.Event{Type: m.EventCrash, RuleKey: "r", Segment: i, Message: "x"}})
	}

	view := model.View()
	assert.Equal(t, maxShownCrashes, strings.Count(view, "✗"))
	assert.Contains(t, view, "and 3 more")
}

func TestRepairModel_Quit(t *testing.T) {
	model := newRepairModel()

	model, cmd := update(t, model, finishMsg{dropped: 2})
	require.NotNil(t, cmd)
	assert.True(t, model.quitting)
	assert.Contains(t, model.View(), "2 progress update(s) skipped")

	_, cmd = update(t, newRepairModel(), tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
}

func TestRepairModel_SpinnerTick(t *testing.T) {
	model := newRepairModel()

	_, cmd := update(t, model, spinner.TickMsg{ID: model.spinner.ID()})
	assert.NotNil(t, cmd)
}

// syncBuffer guards a buffer shared with the program goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func TestTUI_Lifecycle(t *testing.T) {
	out := &syncBuffer{}
	ui := NewTUI(out)
	ctx := context.Background()

	ui.Handle(ctx, m.Event{Type: m.EventRuleStart, RuleKey: "ignored"})

	require.NoError(t, ui.Start(ctx))
	require.Error(t, ui.Start(ctx))

	ui.Handle(ctx, m.Event{Type: m.EventRuleStart, RuleKey: "self-assignment", Segments: 1})
	ui.Handle(ctx, m.Event{Type: m.EventRepairEnd, RuleKey: "self-assignment", Segment: 0})
	ui.Handle(ctx, m.Event{Type: m.EventRuleEnd, RuleKey: "self-assignment", Fixes: 3})
	ui.Close()
	ui.Close()

	assert.Contains(t, out.String(), "self-assignment")

	// events after Close are ignored
	ui.Handle(ctx, m.Event{Type: m.EventRuleStart, RuleKey: "late"})
}

func TestTUI_DisplayReport(t *testing.T) {
	var out bytes.Buffer

	ui := NewTUI(&out)
	runErr := errors.New("write failed")

	err := ui.DisplayReport(sampleReport(), runErr)
	assert.ErrorIs(t, err, runErr)

	got := out.String()
	assert.Contains(t, got, "Run run-1: 4 fix(es), 1 crash(es)")
	assert.Contains(t, got, "self-assignment")
	assert.Contains(t, got, "/ws/patches/patch-0")
	assert.Contains(t, got, "run failed: write failed")
}

func TestTUI_DisplayViolationsAndRules(t *testing.T) {
	var out bytes.Buffer

	ui := NewTUI(&out)

	require.NoError(t, ui.DisplayViolations([]m.Violation{
		{RuleKey: "self-assignment", FilePath: "/src/p/s.go", StartLine: 4, StartCol: 2, EndLine: 4, EndCol: 7},
	}, "/src"))
	require.NoError(t, ui.DisplayRules([]m.RuleInfo{{Key: "self-assignment", Name: "Self assignment"}}))

	assert.Contains(t, out.String(), "self-assignment:p/s.go:4:2:4:7")
	assert.Contains(t, out.String(), "Self assignment")
}
