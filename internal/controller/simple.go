package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/gorald/internal/model"
)

// SimpleUI implements UI with plain lines on the command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(context.Context) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// Handle prints one line per rule boundary and per crash.
func (s *SimpleUI) Handle(_ context.Context, event m.Event) {
	switch event.Type { //nolint:exhaustive // progress lines only
	case m.EventRuleStart:
		s.printf("%s: %d segment(s)\n", event.RuleKey, event.Segments)
	case m.EventCrash:
		s.printf("%s: segment %d crashed: %s\n", event.RuleKey, event.Segment, event.Message)
	case m.EventRuleEnd:
		s.printf("%s: %d fix(es)\n", event.RuleKey, event.Fixes)
	}
}

// DisplayReport prints the final report, also after a failed run.
func (s *SimpleUI) DisplayReport(report m.RunReport, runErr error) error {
	s.printf("\n%s", reportTable(report))

	if report.OutputDir != "" {
		s.printf("\nOutput: %s\n", report.OutputDir)
	}

	for _, patch := range report.Patches {
		s.printf("Patch: %s\n", patch)
	}

	if runErr != nil {
		s.printf("\nrun failed: %v\n", runErr)
	}

	return runErr
}

// DisplayViolations prints mined violations with their spec strings.
func (s *SimpleUI) DisplayViolations(violations []m.Violation, base m.Path) error {
	s.printf("\n%s", violationsTable(violations, base))
	return nil
}

// DisplayRules prints the registered rules.
func (s *SimpleUI) DisplayRules(rules []m.RuleInfo) error {
	s.printf("\n%s", rulesTable(rules))
	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
