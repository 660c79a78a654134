package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/gorald/internal/config"
	"github.com/mouse-blink/gorald/internal/domain"
)

var repairRulesFlag []string
var repairWorkspaceFlag string
var repairStrategyFlag string
var repairPrintingFlag string
var repairScopeFlag string
var repairMaxFilesFlag int
var repairMaxFixesFlag int
var repairGitRepoFlag string
var repairSpecsFlag []string
var repairStatsFlag string
var repairExcludeFlags []string

const repairLongDescription = `Apply repair rules to a Go source tree.

Rules given with --rule run in order. With the default changed-only strategy,
files touched by any rule are written to <workspace>/final-output; "all" writes
the whole tree there and "in-place" rewrites the target itself.

Pin the violations to repair with --violation-spec
ruleKey:path:startLine:startCol:endLine:endCol (as printed by "gorald mine");
otherwise every violation found by the rule is repaired.

With --git-repo, one unified diff per rewritten file is written to
<workspace>/patches.`

func newRepairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair [target]",
		Short: "Repair rule violations",
		Long:  repairLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				cfg.Target = args[0]
			}

			applyRepairFlags(cmd, &cfg)

			ctx := cmd.Context()
			if err := ui.Start(ctx); err != nil {
				return err
			}

			report, runErr := workflow.Repair(ctx, domain.RepairArgs{
				Config:   cfg,
				Handlers: []domain.EventHandler{ui},
			})
			ui.Close()

			return ui.DisplayReport(report, runErr)
		},
	}
	cmd.Flags().StringArrayVarP(&repairRulesFlag, "rule", "r", nil, "rule to apply, in order (can be repeated)")
	cmd.Flags().StringVar(&repairWorkspaceFlag, "workspace", "", "directory for staging, final output and patches")
	cmd.Flags().StringVar(&repairStrategyFlag, "output-strategy", "", "all, changed-only or in-place")
	cmd.Flags().StringVar(&repairPrintingFlag, "printing", "", "preserve (keep untouched code verbatim) or regenerate")
	cmd.Flags().StringVar(&repairScopeFlag, "changed-scope", "", "run (files changed by any rule) or stage (by the last rule)")
	cmd.Flags().IntVar(&repairMaxFilesFlag, "max-files-per-segment", 0, "files per segment, 0 processes the tree at once")
	cmd.Flags().IntVar(&repairMaxFixesFlag, "max-fixes-per-rule", 0, "repairs per rule, 0 for no limit")
	cmd.Flags().StringVar(&repairGitRepoFlag, "git-repo", "", "repository root; enables patch generation")
	cmd.Flags().StringArrayVar(&repairSpecsFlag, "violation-spec", nil, "violation to repair (can be repeated)")
	cmd.Flags().StringVar(&repairStatsFlag, "stats-output-file", "", "write run statistics as JSON")
	cmd.Flags().StringArrayVarP(&repairExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")

	return cmd
}

// applyRepairFlags overrides cfg with the flags set explicitly.
func applyRepairFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	strs := map[string]struct {
		dst *string
		val string
	}{
		"workspace":         {&cfg.Workspace, repairWorkspaceFlag},
		"output-strategy":   {&cfg.OutputStrategy, repairStrategyFlag},
		"printing":          {&cfg.Printing, repairPrintingFlag},
		"changed-scope":     {&cfg.ChangedScope, repairScopeFlag},
		"git-repo":          {&cfg.GitRepo, repairGitRepoFlag},
		"stats-output-file": {&cfg.StatsOutputFile, repairStatsFlag},
	}
	for name, f := range strs {
		if flags.Changed(name) {
			*f.dst = f.val
		}
	}

	if flags.Changed("max-files-per-segment") {
		cfg.MaxFilesPerSegment = repairMaxFilesFlag
	}

	if flags.Changed("max-fixes-per-rule") {
		cfg.MaxFixesPerRule = repairMaxFixesFlag
	}

	if flags.Changed("rule") {
		cfg.Rules = repairRulesFlag
	}

	if flags.Changed("violation-spec") {
		cfg.ViolationSpecs = repairSpecsFlag
	}

	if flags.Changed("exclude") {
		cfg.Exclude = repairExcludeFlags
	}
}
