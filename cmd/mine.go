package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/gorald/internal/domain"
	m "github.com/mouse-blink/gorald/internal/model"
)

var mineRulesFlag []string
var mineExcludeFlags []string
var mineStatsFlag string
var mineWorkersFlag int

func newMineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine [target]",
		Short: "List rule violations without repairing them",
		Long: `Scan a Go source tree and print every violation of the selected rules
(all rules when none is given) together with the violation spec accepted by
"gorald repair --violation-spec".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			target := cfg.Target
			if len(args) == 1 {
				target = args[0]
			}

			mineArgs := domain.MineArgs{
				Target:    target,
				Rules:     mineRulesFlag,
				Exclude:   cfg.Exclude,
				Workers:   cfg.ScanWorkers,
				StatsFile: mineStatsFlag,
			}
			if cmd.Flags().Changed("exclude") {
				mineArgs.Exclude = mineExcludeFlags
			}

			if cmd.Flags().Changed("workers") {
				mineArgs.Workers = mineWorkersFlag
			}

			violations, err := workflow.Mine(cmd.Context(), mineArgs)
			if err != nil {
				return err
			}

			return ui.DisplayViolations(violations, m.Path(target).Normalize())
		},
	}
	cmd.Flags().StringArrayVarP(&mineRulesFlag, "rule", "r", nil, "rule to scan for (can be repeated)")
	cmd.Flags().StringArrayVarP(&mineExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().StringVar(&mineStatsFlag, "stats-output-file", "", "write mining statistics as JSON")
	cmd.Flags().IntVarP(&mineWorkersFlag, "workers", "w", 4, "files scanned in parallel")

	return cmd
}
