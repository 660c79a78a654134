package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	m "github.com/mouse-blink/gorald/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsCollector(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	at := func(ms int) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }

	mined := []m.Violation{
		{RuleKey: "r", FilePath: "/in/a.go", StartLine: 4, StartCol: 9, EndLine: 4, EndCol: 18, Message: "m1"},
		{RuleKey: "r", FilePath: "/in/b.go", StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 5},
		{RuleKey: "r", FilePath: "/in/c.go", StartLine: 7, StartCol: 3, EndLine: 7, EndCol: 9},
	}

	c := NewStatisticsCollector("run-7", "/src")
	c.now = func() time.Time { return at(1000) }

	ctx := context.Background()
	events := []m.Event{
		{Type: m.EventRuleStart, Time: at(0), RuleKey: "r", Message: "Rule R"},
		{Type: m.EventViolationMined, Time: at(1), RuleKey: "r", Violation: &mined[0]},
		{Type: m.EventViolationMined, Time: at(1), RuleKey: "r", Violation: &mined[1]},
		{Type: m.EventViolationMined, Time: at(1), RuleKey: "r", Violation: &mined[2]},
		{Type: m.EventParseStart, Time: at(10), RuleKey: "r"},
		{Type: m.EventParseEnd, Time: at(40), RuleKey: "r"},
		{Type: m.EventRepairStart, Time: at(40), RuleKey: "r"},
		{Type: m.EventRepairEnd, Time: at(45), RuleKey: "r"},
		{Type: m.EventRepaired, Time: at(45), RuleKey: "r", Violation: &mined[0]},
		{Type: m.EventParseStart, Time: at(50), RuleKey: "r", Segment: 1},
		{Type: m.EventParseEnd, Time: at(70), RuleKey: "r", Segment: 1},
		{
			Type: m.EventCrash, Time: at(70), RuleKey: "r", Segment: 1,
			Files: []m.Path{"/in/b.go", "/in/c.go"}, Err: errors.New("bad"), Message: "bad",
		},
		{Type: m.EventRuleEnd, Time: at(80), RuleKey: "r", Fixes: 1},
	}

	for _, e := range events {
		c.Handle(ctx, e)
	}

	stats := c.Statistics()

	assert.Equal(t, "run-7", stats.RunID)
	assert.Equal(t, "/src", stats.Target)
	assert.Equal(t, at(0), stats.StartedAt)
	assert.Equal(t, at(1000), stats.FinishedAt)
	assert.Equal(t, int64(50), stats.ParseTimeMs)
	assert.Equal(t, int64(5), stats.RepairTimeMs)

	require.Len(t, stats.Rules, 1)
	rule := stats.Rules[0]
	assert.Equal(t, "r", rule.RuleKey)
	assert.Equal(t, "Rule R", rule.RuleName)
	assert.Equal(t, 3, rule.FoundWarnings)
	assert.Equal(t, []m.RepairLocation{
		{File: "/in/a.go", StartLine: 4, StartCol: 9, EndLine: 4, EndCol: 18, Message: "m1"},
	}, rule.PerformedRepairs)
	assert.Equal(t, []m.RepairLocation{
		{File: "/in/b.go", StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 5},
		{File: "/in/c.go", StartLine: 7, StartCol: 3, EndLine: 7, EndCol: 9},
	}, rule.CrashedRepairs)

	assert.Equal(t, []m.CrashRecord{
		{RuleKey: "r", Segment: 1, Files: []string{"/in/b.go", "/in/c.go"}, Message: "bad"},
	}, stats.Crashes)
}

func TestStatisticsCollector_Empty(t *testing.T) {
	stats := NewStatisticsCollector("id", "/src").Statistics()

	assert.Empty(t, stats.Rules)
	assert.Empty(t, stats.Crashes)
	assert.NotNil(t, stats.Crashes, "encodes as an empty list")
}
