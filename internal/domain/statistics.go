package domain

import (
	"context"
	"sort"
	"sync"
	"time"

	m "github.com/mouse-blink/gorald/internal/model"
)

// StatisticsCollector aggregates pipeline events into run statistics.
type StatisticsCollector struct {
	mu  sync.Mutex
	now func() time.Time

	runID     string
	target    m.Path
	startedAt time.Time

	parseTime  time.Duration
	repairTime time.Duration
	parseOpen  time.Time
	repairOpen time.Time

	order   []string
	rules   map[string]*ruleStats
	crashes []m.CrashRecord
}

type ruleStats struct {
	name     string
	mined    map[m.ViolationKey]m.Violation
	repaired map[m.ViolationKey]m.Violation
	crashed  map[m.ViolationKey]m.Violation
}

// NewStatisticsCollector creates a collector for the run.
func NewStatisticsCollector(runID string, target m.Path) *StatisticsCollector {
	return &StatisticsCollector{
		now:    time.Now,
		runID:  runID,
		target: target,
		rules:  map[string]*ruleStats{},
	}
}

// Handle implements EventHandler.
func (c *StatisticsCollector) Handle(_ context.Context, event m.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.startedAt.IsZero() {
		c.startedAt = event.Time
	}

	switch event.Type { //nolint:exhaustive // the remaining events carry no statistics
	case m.EventParseStart:
		c.parseOpen = event.Time
	case m.EventParseEnd:
		c.parseTime += elapsed(c.parseOpen, event.Time)
		c.parseOpen = time.Time{}
	case m.EventRepairStart:
		c.repairOpen = event.Time
	case m.EventRepairEnd:
		c.repairTime += elapsed(c.repairOpen, event.Time)
		c.repairOpen = time.Time{}
	case m.EventViolationMined:
		if event.Violation != nil {
			c.rule(event.RuleKey).mined[event.Violation.Key()] = *event.Violation
		}
	case m.EventRepaired:
		if event.Violation != nil {
			c.rule(event.RuleKey).repaired[event.Violation.Key()] = *event.Violation
		}
	case m.EventCrash:
		c.crash(event)
	case m.EventRuleStart:
		c.rule(event.RuleKey).name = event.Message
	}
}

func (c *StatisticsCollector) rule(key string) *ruleStats {
	rs, ok := c.rules[key]
	if !ok {
		rs = &ruleStats{
			mined:    map[m.ViolationKey]m.Violation{},
			repaired: map[m.ViolationKey]m.Violation{},
			crashed:  map[m.ViolationKey]m.Violation{},
		}
		c.rules[key] = rs
		c.order = append(c.order, key)
	}

	return rs
}

func (c *StatisticsCollector) crash(event m.Event) {
	record := m.CrashRecord{RuleKey: event.RuleKey, Segment: event.Segment, Message: event.Message}

	files := make(map[m.Path]struct{}, len(event.Files))
	for _, f := range event.Files {
		files[f] = struct{}{}
		record.Files = append(record.Files, string(f))
	}

	c.crashes = append(c.crashes, record)

	rs := c.rule(event.RuleKey)
	for key, v := range rs.mined {
		if _, ok := files[v.FilePath]; ok {
			rs.crashed[key] = v
		}
	}
}

// Statistics returns the statistics collected so far.
func (c *StatisticsCollector) Statistics() m.RunStatistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := m.RunStatistics{
		RunID:        c.runID,
		Target:       string(c.target),
		StartedAt:    c.startedAt,
		FinishedAt:   c.now(),
		ParseTimeMs:  c.parseTime.Milliseconds(),
		RepairTimeMs: c.repairTime.Milliseconds(),
		Rules:        make([]m.RuleStatistics, 0, len(c.order)),
		Crashes:      append([]m.CrashRecord{}, c.crashes...),
	}

	for _, key := range c.order {
		rs := c.rules[key]

		crashed := map[m.ViolationKey]m.Violation{}
		for k, v := range rs.crashed {
			if _, fixed := rs.repaired[k]; !fixed {
				crashed[k] = v
			}
		}

		stats.Rules = append(stats.Rules, m.RuleStatistics{
			RuleKey:          key,
			RuleName:         rs.name,
			FoundWarnings:    len(rs.mined),
			PerformedRepairs: locations(rs.repaired),
			CrashedRepairs:   locations(crashed),
		})
	}

	return stats
}

func locations(set map[m.ViolationKey]m.Violation) []m.RepairLocation {
	out := make([]m.RepairLocation, 0, len(set))

	for _, v := range set {
		out = append(out, m.RepairLocation{
			File:      string(v.FilePath),
			StartLine: v.StartLine,
			StartCol:  v.StartCol,
			EndLine:   v.EndLine,
			EndCol:    v.EndCol,
			Message:   v.Message,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}

		if out[i].StartLine != out[j].StartLine {
			return out[i].StartLine < out[j].StartLine
		}

		return out[i].StartCol < out[j].StartCol
	})

	return out
}

func elapsed(start, end time.Time) time.Duration {
	if start.IsZero() || end.Before(start) {
		return 0
	}

	return end.Sub(start)
}
