package model

import "time"

// EventType identifies a pipeline notification.
type EventType int

// Available EventType values.
const (
	EventRuleStart EventType = iota
	EventParseStart
	EventParseEnd
	EventRepairStart
	EventRepairEnd
	EventViolationMined
	EventRepaired
	EventCrash
	EventRuleEnd
)

var eventNames = map[EventType]string{
	EventRuleStart:      "rule-start",
	EventParseStart:     "parse-start",
	EventParseEnd:       "parse-end",
	EventRepairStart:    "repair-start",
	EventRepairEnd:      "repair-end",
	EventViolationMined: "violation-mined",
	EventRepaired:       "repaired",
	EventCrash:          "crash",
	EventRuleEnd:        "rule-end",
}

// String returns the event name.
func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}

	return "unknown"
}

// Event is a notification emitted by the pipeline. Fields not relevant for the
// type are left zero.
type Event struct {
	Type      EventType
	Time      time.Time
	RuleKey   string
	Segment   int // zero-based segment index, -1 when not segment bound
	Segments  int // number of segments of the rule (rule-start only)
	Violation *Violation
	Files     []Path // crash: files of the failed unit
	Message   string
	Err       error
	Fixes     int // rule-end: fixes applied by the rule
}
