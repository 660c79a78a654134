package domain

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"iter"

	"github.com/mouse-blink/gorald/internal/adapter"
	"github.com/mouse-blink/gorald/internal/domain/rules"
	m "github.com/mouse-blink/gorald/internal/model"
)

// RepairRequest describes the work on one segment for one rule.
type RepairRequest struct {
	Rule       rules.Rule
	Index      int
	Segment    m.Segment
	InputDir   m.Path
	Violations m.ViolationSet
	Budget     *m.FixBudget
	// Repaired holds the violations already fixed by the rule in this run.
	Repaired map[m.ViolationKey]struct{}
}

// SegmentResult is the outcome of one segment. On failure Program is nil and
// Err holds a *SegmentCrash.
type SegmentResult struct {
	Index   int
	Segment m.Segment
	Program *Program
	Fixes   int
	Err     error
}

// RepairDriver parses a segment and applies a rule to it.
type RepairDriver struct {
	fs        adapter.SourceFSAdapter
	goAdapter adapter.GoFileAdapter
	notifier  *Notifier
}

// NewRepairDriver creates a driver.
func NewRepairDriver(fs adapter.SourceFSAdapter, goAdapter adapter.GoFileAdapter, notifier *Notifier) *RepairDriver {
	return &RepairDriver{fs: fs, goAdapter: goAdapter, notifier: notifier}
}

// Results lazily repairs the segments in order. Each call returns a fresh
// sequence; the consumer stops it by breaking out of the range loop.
func (d *RepairDriver) Results(ctx context.Context, base RepairRequest, segments []m.Segment) iter.Seq[SegmentResult] {
	return func(yield func(SegmentResult) bool) {
		for i, segment := range segments {
			req := base
			req.Index = i
			req.Segment = segment

			if !yield(d.RepairUnit(ctx, req)) {
				return
			}
		}
	}
}

// RepairUnit parses the segment's files and repairs every eligible match.
// Failures, panics included, are returned as a *SegmentCrash; fixes made
// before the failure are given back to the budget.
func (d *RepairDriver) RepairUnit(ctx context.Context, req RepairRequest) (result SegmentResult) {
	result = SegmentResult{Index: req.Index, Segment: req.Segment}
	files := req.Segment.Files()
	ruleKey := req.Rule.Key()

	var applied []m.Violation

	defer func() {
		if r := recover(); r != nil {
			result = d.crash(req, files, applied, fmt.Errorf("panic: %v", r))
		}
	}()

	d.fire(ctx, req, m.EventParseStart)
	program, err := d.parse(ctx, req.InputDir, files)
	d.fire(ctx, req, m.EventParseEnd)

	if err != nil {
		return d.crash(req, files, nil, err)
	}

	d.fire(ctx, req, m.EventRepairStart)

	for _, unit := range program.Units {
		if err := ctx.Err(); err != nil {
			d.fire(ctx, req, m.EventRepairEnd)
			return d.crash(req, files, applied, err)
		}

		d.repairUnit(program.Fset, unit, req, &applied)
	}

	d.fire(ctx, req, m.EventRepairEnd)

	for i := range applied {
		d.notifier.Fire(ctx, m.Event{Type: m.EventRepaired, RuleKey: ruleKey, Segment: req.Index, Violation: &applied[i]})
	}

	result.Program = program
	result.Fixes = len(applied)

	return result
}

func (d *RepairDriver) parse(ctx context.Context, inputDir m.Path, files []m.Path) (*Program, error) {
	program := &Program{Fset: token.NewFileSet(), InputDir: inputDir}

	var errs []error

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src, err := d.fs.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read %s: %w", path, err))
			continue
		}

		file, err := d.goAdapter.Parse(program.Fset, string(path), src)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to parse %s: %w", path, err))
			continue
		}

		rel, err := d.fs.RelPath(inputDir, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to locate %s: %w", path, err))
			continue
		}

		program.Units = append(program.Units, newUnit(path, rel, src, file))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return program, nil
}

// repairUnit runs the rule over one unit, appending the violations it fixes to applied.
func (d *RepairDriver) repairUnit(fset *token.FileSet, unit *Unit, req RepairRequest, applied *[]m.Violation) {
	ruleKey := req.Rule.Key()
	ignores := buildIgnoreIndex(unit.File, fset, unit.Src)

	pass := &rules.Pass{Fset: fset, File: unit.File}
	pass.Report = func(match rules.Match) bool {
		pos := fset.Position(match.Node.Pos())

		v, ok := req.Violations.Lookup(ruleKey, unit.Path, pos.Line, pos.Column)
		if !ok {
			return false
		}

		if _, done := req.Repaired[v.Key()]; done {
			return false
		}

		if ignores.suppressed(ruleKey, pos.Line) || !req.Budget.Consume() {
			return false
		}

		req.Repaired[v.Key()] = struct{}{}
		unit.Touch(unit.EnclosingDecl(match.Node.Pos()))
		*applied = append(*applied, v)

		return true
	}

	req.Rule.Run(pass)

	if pass.ImportsChanged() {
		unit.importsChanged = true
	}
}

func (d *RepairDriver) crash(req RepairRequest, files []m.Path, applied []m.Violation, err error) SegmentResult {
	// the segment's program is dropped, so its fixes never land
	req.Budget.Applied -= len(applied)
	for _, v := range applied {
		delete(req.Repaired, v.Key())
	}

	return SegmentResult{
		Index:   req.Index,
		Segment: req.Segment,
		Err: &SegmentCrash{
			RuleKey:     req.Rule.Key(),
			Segment:     req.Index,
			Description: req.Segment.Describe(),
			Files:       files,
			Err:         err,
		},
	}
}

func (d *RepairDriver) fire(ctx context.Context, req RepairRequest, typ m.EventType) {
	d.notifier.Fire(ctx, m.Event{Type: typ, RuleKey: req.Rule.Key(), Segment: req.Index})
}
