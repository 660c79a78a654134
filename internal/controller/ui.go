// Package controller renders repair runs on the command line.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/gorald/internal/model"
)

// UI displays the progress and the results of gorald commands.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// Start prepares the progress display of a run.
	Start(ctx context.Context) error
	// Handle receives pipeline events. It must not block the pipeline.
	Handle(ctx context.Context, event m.Event)
	// Close ends the progress display and waits until it is flushed.
	Close()
	DisplayReport(report m.RunReport, runErr error) error
	DisplayViolations(violations []m.Violation, base m.Path) error
	DisplayRules(rules []m.RuleInfo) error
}

// NewUI creates a UI based on whether TTY mode is enabled.
// When useTTY is true, it returns a TUI (Bubble Tea).
// When useTTY is false, it returns a SimpleUI (plain text).
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal. Redirected output
// (files, pipes, buffers) is not.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
