package domain

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/mouse-blink/gorald/internal/adapter"
	"github.com/mouse-blink/gorald/internal/ctxlog"
	"github.com/mouse-blink/gorald/internal/domain/rules"
	m "github.com/mouse-blink/gorald/internal/model"
)

// Options configures one pipeline run.
type Options struct {
	Rules              []string
	Target             m.Path
	Workspace          m.Path
	Strategy           m.OutputStrategy
	Printing           m.PrintingMode
	Scope              m.ChangedScope
	MaxFilesPerSegment int
	MaxFixesPerRule    int
	// VCSRoot enables patches; paths in patch headers are relative to it.
	VCSRoot m.Path
	// Pinned violations replace mining when non-empty. Paths are below Target.
	Pinned  m.ViolationSet
	Exclude []*regexp.Regexp
	RunID   string
	// PatchMirrors receive a copy of every patch written to the workspace.
	PatchMirrors []adapter.PatchStore
}

// Pipeline applies rules one after the other, each over the output of the previous.
type Pipeline struct {
	fs        adapter.SourceFSAdapter
	goAdapter adapter.GoFileAdapter
	differ    adapter.PatchAdapter
	registry  *rules.Registry
	scanner   Scanner
	notifier  *Notifier
}

// NewPipeline wires a pipeline.
func NewPipeline(
	fs adapter.SourceFSAdapter,
	goAdapter adapter.GoFileAdapter,
	differ adapter.PatchAdapter,
	registry *rules.Registry,
	scanner Scanner,
	notifier *Notifier,
) *Pipeline {
	return &Pipeline{
		fs:        fs,
		goAdapter: goAdapter,
		differ:    differ,
		registry:  registry,
		scanner:   scanner,
		notifier:  notifier,
	}
}

// run holds the collaborators shared by the stages of one run.
type run struct {
	opts    Options
	report  *m.RunReport
	builder *TreeBuilder
	oracle  *ViolationOracle
	driver  *RepairDriver
	writer  *OutputWriter
}

// Run executes the rules over opts.Target. The returned report covers the
// rules processed so far even when Run fails.
func (p *Pipeline) Run(ctx context.Context, opts Options) (m.RunReport, error) {
	report := m.RunReport{RunID: opts.RunID}

	if err := p.checkTarget(opts); err != nil {
		return report, err
	}

	selected, err := p.registry.Resolve(opts.Rules)
	if err != nil {
		return report, err
	}

	ws := NewWorkspace(opts.Workspace)

	report.OutputDir = ws.FinalOutput
	if opts.Strategy == m.OutputInPlace {
		report.OutputDir = opts.Target
	}

	for _, dir := range []m.Path{ws.Intermediate, ws.FinalOutput, ws.Patches} {
		if err := p.fs.RemoveAll(dir); err != nil {
			return report, &WriteError{Path: dir, Err: err}
		}
	}

	defer func() {
		if err := p.fs.RemoveAll(ws.Intermediate); err != nil {
			ctxlog.FromContext(ctx).Warn("failed to remove staging directory", "dir", ws.Intermediate, "error", err)
		}
	}()

	r := &run{
		opts:    opts,
		report:  &report,
		builder: NewTreeBuilder(p.fs, opts.Exclude, opts.Workspace),
		oracle:  NewViolationOracle(p.scanner, p.notifier, opts.Pinned, opts.Target),
		driver:  NewRepairDriver(p.fs, p.goAdapter, p.notifier),
		writer: NewOutputWriter(p.fs, p.goAdapter, p.differ, p.patchStore(opts, ws), WriterConfig{
			Strategy:  opts.Strategy,
			Printing:  opts.Printing,
			Scope:     opts.Scope,
			TargetDir: opts.Target,
			VCSRoot:   opts.VCSRoot,
		}),
	}

	for i, rule := range selected {
		task := StageTask(i, len(selected), rule.Key(), opts.Strategy, opts.Target, ws)

		ruleReport, err := p.runRule(ctx, r, rule, task)
		report.Rules = append(report.Rules, ruleReport)

		if err != nil {
			return report, fmt.Errorf("rule %s: %w", rule.Key(), err)
		}
	}

	return report, nil
}

func (p *Pipeline) checkTarget(opts Options) error {
	info, err := p.fs.FileInfo(opts.Target)
	if err != nil {
		return fmt.Errorf("failed to read target: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("target %s is not a directory", opts.Target)
	}

	if opts.Workspace == "" || opts.Workspace.Normalize() == opts.Target.Normalize() {
		return fmt.Errorf("workspace %q must be a directory other than the target", opts.Workspace)
	}

	return nil
}

func (p *Pipeline) patchStore(opts Options, ws Workspace) adapter.PatchStore {
	if opts.VCSRoot == "" {
		return nil
	}

	local := adapter.NewLocalPatchStore(p.fs, ws.Patches)
	if len(opts.PatchMirrors) == 0 {
		return local
	}

	return &adapter.MirroredPatchStore{Primary: local, Mirrors: opts.PatchMirrors}
}

func (p *Pipeline) runRule(ctx context.Context, r *run, rule rules.Rule, task m.RuleTask) (m.RuleReport, error) {
	report := m.RuleReport{RuleKey: rule.Key(), RuleName: rule.Name()}
	log := ctxlog.FromContext(ctx).With("rule", rule.Key(), "stage", task.Index)

	if err := p.fs.MkdirAll(task.OutputDir); err != nil {
		return report, &WriteError{Path: task.OutputDir, Err: err}
	}

	tree, err := r.builder.Build(ctx, task.InputDir)
	if err != nil {
		return report, err
	}

	violations, err := r.oracle.Violations(ctx, rule, task.InputDir, tree.Root.AllFiles())
	if err != nil {
		return report, err
	}

	segments := PlanSegments(tree.Root, r.opts.MaxFilesPerSegment)
	report.Mined = len(violations)
	report.Segments = len(segments)

	log.Debug("rule planned", "input", task.InputDir, "output", task.OutputDir,
		"violations", len(violations), "segments", len(segments))
	p.notifier.Fire(ctx, m.Event{
		Type:     m.EventRuleStart,
		RuleKey:  rule.Key(),
		Segment:  -1,
		Segments: len(segments),
		Message:  rule.Name(),
	})

	budget := m.NewFixBudget(r.opts.MaxFixesPerRule)
	base := RepairRequest{
		Rule:       rule,
		InputDir:   task.InputDir,
		Violations: violations,
		Budget:     budget,
		Repaired:   map[m.ViolationKey]struct{}{},
	}

	var fatal error

	for result := range r.driver.Results(ctx, base, segments) {
		report.Processed++

		if result.Err != nil {
			report.Crashes++
			p.fireCrash(ctx, rule.Key(), result)

			if err := p.passThrough(ctx, r, result.Segment.Files(), task); err != nil {
				fatal = err
				break
			}

			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(result.Err, ctxErr) {
				fatal = ctxErr
				break
			}
		} else {
			report.Fixed += result.Fixes

			written, err := r.writer.Write(ctx, result.Program, task)
			p.record(r, task, written)

			if err != nil {
				fatal = err
				break
			}
		}

		if budget.Exhausted() {
			report.BudgetExhausted = true
			break
		}
	}

	if fatal == nil {
		for _, segment := range segments[report.Processed:] {
			if err := p.passThrough(ctx, r, segment.Files(), task); err != nil {
				fatal = err
				break
			}
		}
	}

	p.notifier.Fire(ctx, m.Event{Type: m.EventRuleEnd, RuleKey: rule.Key(), Segment: -1, Fixes: report.Fixed})

	return report, fatal
}

// passThrough carries the files of a segment the rule did not write into the
// stage output so the next stage and the final output still see them.
func (p *Pipeline) passThrough(ctx context.Context, r *run, files []m.Path, task m.RuleTask) error {
	if r.writer.writesAll(task) && task.InputDir != task.OutputDir {
		copied, err := r.writer.CopyThrough(files, task)
		p.record(r, task, WriteResult{Written: copied})

		return err
	}

	carried, err := r.writer.CarryOver(ctx, files, task)
	p.record(r, task, carried)

	return err
}

// record adds a write to the report. Staging writes are not part of the output.
func (p *Pipeline) record(r *run, task m.RuleTask, result WriteResult) {
	if !task.Intermediate {
		r.report.Written = append(r.report.Written, result.Written...)
	}

	for _, patch := range result.Patches {
		r.report.Patches = append(r.report.Patches, m.Path(patch))
	}
}

func (p *Pipeline) fireCrash(ctx context.Context, ruleKey string, result SegmentResult) {
	event := m.Event{
		Type:    m.EventCrash,
		RuleKey: ruleKey,
		Segment: result.Index,
		Files:   result.Segment.Files(),
		Err:     result.Err,
		Message: result.Err.Error(),
	}

	var crash *SegmentCrash
	if errors.As(result.Err, &crash) {
		event.Files = crash.Files
	}

	p.notifier.Fire(ctx, event)
}
