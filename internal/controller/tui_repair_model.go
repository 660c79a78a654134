package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/gorald/internal/model"
)

const maxShownCrashes = 5

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	ruleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Width(26)
	crashStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// ruleProgress tracks one rule of the run.
type ruleProgress struct {
	key      string
	segments int
	done     int
	fixes    int
	crashes  int
	finished bool
}

func (r ruleProgress) percent() float64 {
	if r.segments == 0 {
		return 1
	}

	return float64(r.done) / float64(r.segments)
}

// repairModel shows the progress of a repair run.
type repairModel struct {
	spinner     spinner.Model
	progressBar progress.Model
	rules       []ruleProgress
	crashes     []string
	repaired    int
	dropped     int
	width       int
	quitting    bool
}

func newRepairModel() repairModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return repairModel{
		spinner: s,
		progressBar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
	}
}

func (rm repairModel) Init() tea.Cmd {
	return rm.spinner.Tick
}

func (rm repairModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		return rm, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			rm.quitting = true
			return rm, tea.Quit
		}

		return rm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		rm.spinner, cmd = rm.spinner.Update(msg)

		return rm, cmd

	case eventMsg:
		return rm.handleEvent(msg.event), nil

	case finishMsg:
		rm.dropped = msg.dropped
		rm.quitting = true

		return rm, tea.Quit
	}

	return rm, nil
}

func (rm repairModel) handleEvent(event m.Event) repairModel {
	switch event.Type { //nolint:exhaustive // parse and mining events do not move the display
	case m.EventRuleStart:
		rm.rules = append(rm.rules, ruleProgress{key: event.RuleKey, segments: event.Segments})
	case m.EventRepairEnd:
		rm = rm.markDone(event)
	case m.EventRepaired:
		rm.repaired++
	case m.EventCrash:
		rm = rm.markDone(event)
		if r := rm.current(); r != nil {
			r.crashes++
		}

		rm.crashes = append(rm.crashes, fmt.Sprintf("%s #%d: %s", event.RuleKey, event.Segment, event.Message))
	case m.EventRuleEnd:
		if r := rm.current(); r != nil {
			r.fixes = event.Fixes
			r.finished = true
		}
	}

	return rm
}

func (rm repairModel) markDone(event m.Event) repairModel {
	if r := rm.current(); r != nil && event.Segment+1 > r.done {
		r.done = event.Segment + 1
	}

	return rm
}

// current returns the rule being processed. Copies of the model share the
// rules backing array.
func (rm repairModel) current() *ruleProgress {
	if len(rm.rules) == 0 {
		return nil
	}

	return &rm.rules[len(rm.rules)-1]
}

func (rm repairModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("gorald repair"))
	b.WriteString("\n\n")

	for _, r := range rm.rules {
		if r.finished {
			fmt.Fprintf(&b, "%s %s %s\n", doneStyle.Render("✓"), ruleStyle.Render(r.key),
				faintStyle.Render(fmt.Sprintf("%d fix(es), %d crash(es)", r.fixes, r.crashes)))

			continue
		}

		fmt.Fprintf(&b, "%s %s %s %d/%d\n", rm.spinner.View(), ruleStyle.Render(r.key),
			rm.progressBar.ViewAs(r.percent()), r.done, r.segments)
	}

	if len(rm.rules) == 0 && !rm.quitting {
		fmt.Fprintf(&b, "%s mining violations...\n", rm.spinner.View())
	}

	fmt.Fprintf(&b, "\n%s\n", faintStyle.Render(fmt.Sprintf("%d repair(s) applied", rm.repaired)))

	if len(rm.crashes) > 0 {
		b.WriteString("\n")

		shown := rm.crashes
		if len(shown) > maxShownCrashes {
			shown = shown[len(shown)-maxShownCrashes:]
		}

		for _, c := range shown {
			b.WriteString(crashStyle.Render("✗ "+c) + "\n")
		}

		if hidden := len(rm.crashes) - len(shown); hidden > 0 {
			b.WriteString(faintStyle.Render(fmt.Sprintf("  and %d more", hidden)) + "\n")
		}
	}

	if rm.dropped > 0 {
		b.WriteString(faintStyle.Render(fmt.Sprintf("(%d progress update(s) skipped)", rm.dropped)) + "\n")
	}

	return b.String()
}
