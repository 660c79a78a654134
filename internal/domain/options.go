package domain

import (
	"github.com/mouse-blink/gorald/internal/config"
	m "github.com/mouse-blink/gorald/internal/model"
)

// NewOptions turns a configuration into pipeline options. Paths are made
// absolute and violation specs are resolved against the target.
func NewOptions(cfg config.Config) (Options, error) {
	var opts Options

	strategy, err := m.ParseOutputStrategy(cfg.OutputStrategy)
	if err != nil {
		return opts, err
	}

	printing, err := m.ParsePrintingMode(cfg.Printing)
	if err != nil {
		return opts, err
	}

	scope, err := m.ParseChangedScope(cfg.ChangedScope)
	if err != nil {
		return opts, err
	}

	exclude, err := CompileExcludes(cfg.Exclude)
	if err != nil {
		return opts, err
	}

	target := m.Path(cfg.Target).Normalize()

	opts = Options{
		Rules:              cfg.Rules,
		Target:             target,
		Workspace:          m.Path(cfg.Workspace).Normalize(),
		Strategy:           strategy,
		Printing:           printing,
		Scope:              scope,
		MaxFilesPerSegment: cfg.MaxFilesPerSegment,
		MaxFixesPerRule:    cfg.MaxFixesPerRule,
		Exclude:            exclude,
	}

	if cfg.GitRepo != "" {
		opts.VCSRoot = m.Path(cfg.GitRepo).Normalize()
	}

	if len(cfg.ViolationSpecs) > 0 {
		opts.Pinned = m.NewViolationSet()

		for _, spec := range cfg.ViolationSpecs {
			v, err := m.ParseViolationSpec(spec, target)
			if err != nil {
				return opts, err
			}

			opts.Pinned.Add(v)
		}
	}

	return opts, nil
}
