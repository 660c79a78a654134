package cmd

import "github.com/spf13/cobra"

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the available repair rules",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return ui.DisplayRules(workflow.Rules())
		},
	}
}
