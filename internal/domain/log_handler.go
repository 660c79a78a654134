package domain

import (
	"context"

	"github.com/mouse-blink/gorald/internal/ctxlog"
	m "github.com/mouse-blink/gorald/internal/model"
)

// LogHandler writes pipeline events to the logger carried by the context.
type LogHandler struct{}

// Handle implements EventHandler.
func (LogHandler) Handle(ctx context.Context, event m.Event) {
	log := ctxlog.FromContext(ctx).With("rule", event.RuleKey)

	switch event.Type { //nolint:exhaustive // phase events are traced only
	case m.EventRuleStart:
		log.Info("rule started", "segments", event.Segments)
	case m.EventRuleEnd:
		log.Info("rule finished", "fixes", event.Fixes)
	case m.EventCrash:
		log.Warn("segment crashed", "segment", event.Segment, "files", len(event.Files), "error", event.Err)
	case m.EventRepaired:
		if event.Violation != nil {
			log.Debug("violation repaired",
				"file", event.Violation.FilePath,
				"line", event.Violation.StartLine,
				"col", event.Violation.StartCol)
		}
	case m.EventViolationMined:
		if event.Violation != nil {
			log.Log(ctx, ctxlog.LevelTrace, "violation mined",
				"file", event.Violation.FilePath,
				"line", event.Violation.StartLine)
		}
	default:
		log.Log(ctx, ctxlog.LevelTrace, event.Type.String(), "segment", event.Segment)
	}
}
