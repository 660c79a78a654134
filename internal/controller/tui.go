package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/gorald/internal/model"
)

const eventBuffer = 256

// TUI implements UI using Bubble Tea for interactive display. Events are
// queued without blocking and forwarded to the program by a goroutine; when
// the queue is full the event is dropped from the display only.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	events  chan m.Event
	dropped int
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start runs the progress display until Close is called.
func (t *TUI) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return errors.New("progress display already started")
	}

	t.events = make(chan m.Event, eventBuffer)
	t.done = make(chan struct{})
	t.program = tea.NewProgram(newRepairModel(),
		tea.WithOutput(t.output),
		tea.WithInput(nil),
		tea.WithContext(ctx),
	)

	program, events, done := t.program, t.events, t.done

	go func() {
		defer close(done)

		_, _ = program.Run()
	}()

	go func() {
		for event := range events {
			program.Send(eventMsg{event: event})
		}

		t.mu.Lock()
		dropped := t.dropped
		t.mu.Unlock()

		program.Send(finishMsg{dropped: dropped})
	}()

	return nil
}

// Handle queues the event for display.
func (t *TUI) Handle(_ context.Context, event m.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.events == nil {
		return
	}

	select {
	case t.events <- event:
	default:
		t.dropped++
	}
}

// Close flushes the queued events, stops the progress display and waits for
// its last frame.
func (t *TUI) Close() {
	t.mu.Lock()

	if t.program == nil {
		t.mu.Unlock()
		return
	}

	done := t.done
	close(t.events)
	t.events = nil
	t.program = nil
	t.mu.Unlock()

	<-done
}

// DisplayReport renders the final report.
func (t *TUI) DisplayReport(report m.RunReport, runErr error) error {
	var out string

	title := fmt.Sprintf("Run %s: %d fix(es), %d crash(es)", report.RunID, report.TotalFixes(), report.TotalCrashes())
	out += "\n" + titleStyle.Render(title) + "\n\n" + reportTable(report)

	if report.OutputDir != "" {
		out += "\n" + faintStyle.Render("output: ") + string(report.OutputDir) + "\n"
	}

	for _, patch := range report.Patches {
		out += faintStyle.Render("patch:  ") + string(patch) + "\n"
	}

	if runErr != nil {
		out += "\n" + crashStyle.Render("run failed: "+runErr.Error()) + "\n"
	}

	_, _ = fmt.Fprint(t.output, out)

	return runErr
}

// DisplayViolations renders mined violations.
func (t *TUI) DisplayViolations(violations []m.Violation, base m.Path) error {
	_, err := fmt.Fprintf(t.output, "\n%s\n\n%s", titleStyle.Render("Violations"), violationsTable(violations, base))
	return err
}

// DisplayRules renders the registered rules.
func (t *TUI) DisplayRules(rules []m.RuleInfo) error {
	_, err := fmt.Fprintf(t.output, "\n%s\n\n%s", titleStyle.Render("Rules"), rulesTable(rules))
	return err
}
