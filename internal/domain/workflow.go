package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mouse-blink/gorald/internal/adapter"
	"github.com/mouse-blink/gorald/internal/config"
	"github.com/mouse-blink/gorald/internal/ctxlog"
	"github.com/mouse-blink/gorald/internal/domain/rules"
	m "github.com/mouse-blink/gorald/internal/model"
)

// Workflow defines the operations offered to the command line.
type Workflow interface {
	Repair(ctx context.Context, args RepairArgs) (m.RunReport, error)
	Mine(ctx context.Context, args MineArgs) ([]m.Violation, error)
	Rules() []m.RuleInfo
}

// RepairArgs holds the input of a repair run.
type RepairArgs struct {
	Config config.Config
	// Handlers receive every pipeline event, after the log handler.
	Handlers []EventHandler
}

// MineArgs holds the input of a mining run.
type MineArgs struct {
	Target    string
	Rules     []string // all registered rules when empty
	Exclude   []string
	Workers   int
	StatsFile string
}

// uploaderFunc opens the remote store patches are mirrored to.
type uploaderFunc func(cfg adapter.S3Config, runID string) (adapter.PatchStore, error)

type workflow struct {
	fsAdapter adapter.SourceFSAdapter
	goAdapter adapter.GoFileAdapter
	differ    adapter.PatchAdapter
	reports   adapter.ReportStore
	registry  *rules.Registry
	uploader  uploaderFunc
	newRunID  func() string
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	goAdapter adapter.GoFileAdapter,
	differ adapter.PatchAdapter,
	registry *rules.Registry,
) Workflow {
	return &workflow{
		fsAdapter: fsAdapter,
		goAdapter: goAdapter,
		differ:    differ,
		reports:   adapter.NewReportStore(fsAdapter),
		registry:  registry,
		uploader: func(cfg adapter.S3Config, runID string) (adapter.PatchStore, error) {
			return adapter.NewS3PatchStore(cfg, runID)
		},
		newRunID: uuid.NewString,
	}
}

// Rules lists the registered rules.
func (w *workflow) Rules() []m.RuleInfo {
	return w.registry.Infos()
}

// Repair runs the pipeline described by the configuration. The report is
// returned even when the run fails part way.
func (w *workflow) Repair(ctx context.Context, args RepairArgs) (m.RunReport, error) {
	cfg := args.Config

	if err := cfg.Validate(); err != nil {
		return m.RunReport{}, fmt.Errorf("invalid configuration: %w", err)
	}

	opts, err := NewOptions(cfg)
	if err != nil {
		return m.RunReport{}, err
	}

	opts.RunID = w.newRunID()
	ctx = ctxlog.WithLogger(ctx, ctxlog.FromContext(ctx).With("run", opts.RunID))

	notifier := NewNotifier(LogHandler{})
	for _, h := range args.Handlers {
		notifier.Subscribe(h)
	}

	var stats *StatisticsCollector
	if cfg.StatsOutputFile != "" {
		stats = NewStatisticsCollector(opts.RunID, opts.Target)
		notifier.Subscribe(stats)
	}

	if cfg.PatchUpload != nil {
		mirror, err := w.openUpload(ctx, *cfg.PatchUpload, opts)
		if err != nil {
			return m.RunReport{RunID: opts.RunID}, err
		}

		if mirror != nil {
			opts.PatchMirrors = append(opts.PatchMirrors, mirror)
		}
	}

	scanner := NewLocalScanner(w.fsAdapter, w.goAdapter, cfg.ScanWorkers)
	pipeline := NewPipeline(w.fsAdapter, w.goAdapter, w.differ, w.registry, scanner, notifier)

	report, runErr := pipeline.Run(ctx, opts)

	if stats != nil {
		path := m.Path(cfg.StatsOutputFile).Normalize()
		if err := w.reports.SaveStatistics(path, stats.Statistics()); err != nil {
			return report, errors.Join(runErr, err)
		}
	}

	return report, runErr
}

func (w *workflow) openUpload(ctx context.Context, up config.PatchUpload, opts Options) (adapter.PatchStore, error) {
	if opts.VCSRoot == "" {
		ctxlog.FromContext(ctx).Warn("patch upload configured without a git repository, no patches will be produced")
		return nil, nil
	}

	store, err := w.uploader(adapter.S3Config{
		Endpoint:  up.Endpoint,
		Region:    up.Region,
		AccessKey: up.AccessKey,
		SecretKey: up.SecretKey,
		Bucket:    up.Bucket,
		Prefix:    up.Prefix,
		UseSSL:    up.UseSSL,
	}, opts.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to open patch upload: %w", err)
	}

	return store, nil
}

// Mine scans the target and returns every violation of the selected rules.
func (w *workflow) Mine(ctx context.Context, args MineArgs) ([]m.Violation, error) {
	keys := args.Rules
	if len(keys) == 0 {
		keys = w.registry.Keys()
	}

	selected, err := w.registry.Resolve(keys)
	if err != nil {
		return nil, err
	}

	exclude, err := CompileExcludes(args.Exclude)
	if err != nil {
		return nil, err
	}

	target := m.Path(args.Target).Normalize()

	tree, err := NewTreeBuilder(w.fsAdapter, exclude).Build(ctx, target)
	if err != nil {
		return nil, err
	}

	runID := w.newRunID()
	notifier := NewNotifier()

	var stats *StatisticsCollector
	if args.StatsFile != "" {
		stats = NewStatisticsCollector(runID, target)
		notifier.Subscribe(stats)
	}

	scanner := NewLocalScanner(w.fsAdapter, w.goAdapter, args.Workers)
	files := tree.Root.AllFiles()

	var out []m.Violation

	for _, rule := range selected {
		notifier.Fire(ctx, m.Event{Type: m.EventRuleStart, RuleKey: rule.Key(), Segment: -1, Message: rule.Name()})

		found, err := scanner.Scan(ctx, rule, files)
		if err != nil {
			return out, fmt.Errorf("failed to mine %s: %w", rule.Key(), err)
		}

		for _, v := range found.Sorted() {
			notifier.Fire(ctx, m.Event{Type: m.EventViolationMined, RuleKey: rule.Key(), Segment: -1, Violation: &v})
			out = append(out, v)
		}

		notifier.Fire(ctx, m.Event{Type: m.EventRuleEnd, RuleKey: rule.Key(), Segment: -1})
	}

	if stats != nil {
		if err := w.reports.SaveStatistics(m.Path(args.StatsFile).Normalize(), stats.Statistics()); err != nil {
			return out, err
		}
	}

	return out, nil
}
