package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

func dismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss PROJECT_ID ALERT_ID",
		Short: "Dismiss an alert",
		Long: `Suppress one alert from reports and the dashboard. The dismissal is
recorded locally and survives refreshes; the underlying condition still
counts toward project health.`,
		Args: cobra.ExactArgs(2),
		RunE: runDismiss,
	}
}

func runDismiss(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	projectID, alertID := args[0], args[1]

	m, cleanup, err := initMonitor(ctx, false, true)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := m.Dismiss(ctx, projectID, alertID, time.Now()); err != nil {
		return err
	}

	slog.Info("Dismissed", "project_id", projectID, "alert_id", alertID)
	return nil
}
