// Package cmd provides the root command and CLI setup for gorald.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/gorald/internal/adapter"
	"github.com/mouse-blink/gorald/internal/config"
	"github.com/mouse-blink/gorald/internal/controller"
	"github.com/mouse-blink/gorald/internal/ctxlog"
	"github.com/mouse-blink/gorald/internal/domain"
	"github.com/mouse-blink/gorald/internal/domain/rules"
)

var fsAdapter adapter.SourceFSAdapter
var goFileAdapter adapter.GoFileAdapter
var workflow domain.Workflow
var ui controller.UI

func init() {
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	goFileAdapter = adapter.NewLocalGoFileAdapter()
	workflow = domain.NewWorkflow(fsAdapter, goFileAdapter, adapter.NewUnifiedPatchAdapter(), rules.Default())
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
}

var configFileFlag string
var envFileFlag string
var logLevelFlag string
var logFormatFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gorald",
		Short: "Repair static-analysis violations in Go source trees",
		Long: `Gorald finds violations of its repair rules in a Go source tree and rewrites
the offending code. Rules run one after the other, each over the output of
the previous one. Large trees are processed in segments so that a file the
repair cannot handle only costs its own segment.

Settings are read from gorald.hcl (or --config), then .env and GORALD_*
environment variables, then command-line flags.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := ctxlog.New(logLevelFlag, logFormatFlag, cmd.ErrOrStderr())
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
		},
	}
	cmd.PersistentFlags().StringVar(&configFileFlag, "config", "", "HCL configuration file (default ./"+config.DefaultFile+" when present)")
	cmd.PersistentFlags().StringVar(&envFileFlag, "env-file", ".env", "dotenv file loaded before reading GORALD_* variables")
	cmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "warn", "log level: trace, debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "text", "log format: text or json")

	cmd.AddCommand(newRepairCmd(), newMineCmd(), newRulesCmd())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadConfig resolves the configuration below the command-line flags.
func loadConfig() (config.Config, error) {
	return config.Load(config.LoadOptions{File: configFileFlag, EnvFile: envFileFlag})
}
