package model

import "time"

// RepairLocation is the position of a violation in a statistics record.
type RepairLocation struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	StartCol  int    `json:"startColumn"`
	EndLine   int    `json:"endLine"`
	EndCol    int    `json:"endColumn"`
	Message   string `json:"message,omitempty"`
}

// RuleStatistics aggregates the outcome of one rule.
type RuleStatistics struct {
	RuleKey          string           `json:"ruleKey"`
	RuleName         string           `json:"ruleName,omitempty"`
	FoundWarnings    int              `json:"nbFoundWarnings"`
	PerformedRepairs []RepairLocation `json:"performedRepairsLocations"`
	CrashedRepairs   []RepairLocation `json:"crashedRepairsLocations"`
}

// CrashRecord describes one crashed segment.
type CrashRecord struct {
	RuleKey string   `json:"ruleKey"`
	Segment int      `json:"segment"`
	Files   []string `json:"files"`
	Message string   `json:"message"`
}

// RunStatistics is the machine-readable summary of a run.
type RunStatistics struct {
	RunID        string           `json:"runId"`
	Target       string           `json:"target,omitempty"`
	StartedAt    time.Time        `json:"startedAt"`
	FinishedAt   time.Time        `json:"finishedAt"`
	ParseTimeMs  int64            `json:"totalParseTimeMs"`
	RepairTimeMs int64            `json:"totalRepairTimeMs"`
	Rules        []RuleStatistics `json:"repairs"`
	Crashes      []CrashRecord    `json:"crashes"`
}
