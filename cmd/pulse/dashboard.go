package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/client-pulse/internal/tui"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive health dashboard",
		Long: `Browse the portfolio in the terminal: a project table with live health,
a per-project alert pane, and keyboard-driven refresh and dismissal.`,
		RunE: runDashboard,
	}

	cmd.Flags().Bool("llm", false, "enrich sentiment with the configured LLM analyzer")
	_ = viper.BindPFlag("dashboard.llm", cmd.Flags().Lookup("llm"))

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	m, cleanup, err := initMonitor(ctx, viper.GetBool("dashboard.llm"), true)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.Run(ctx, m)
}
