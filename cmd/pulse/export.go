package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/client-pulse/internal/config"
	"github.com/Veraticus/client-pulse/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the health report to Google Sheets",
		Long: `Evaluate the portfolio and write the health report to a Google Sheets
spreadsheet: summary, per-project health table, and active alerts.`,
		RunE: runExport,
	}

	cmd.Flags().String("at", "", "reference date for day math (format: 2006-01-02, default: today)")
	cmd.Flags().Bool("llm", false, "enrich sentiment with the configured LLM analyzer")

	_ = viper.BindPFlag("export.at", cmd.Flags().Lookup("at"))
	_ = viper.BindPFlag("export.llm", cmd.Flags().Lookup("llm"))

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	ref, err := parseReferenceDate(viper.GetString("export.at"))
	if err != nil {
		return err
	}

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return err
	}

	m, cleanup, err := initMonitor(ctx,
		viper.GetBool("export.llm"), true,
		withFetchProgressOption()...)
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := m.Snapshot(ctx, ref)
	if err != nil {
		return err
	}

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return err
	}

	start := time.Now()
	if err := writer.Write(ctx, snap.Projects, snap.Alerts, snap.TakenAt); err != nil {
		return err
	}

	slog.Info("Export complete",
		"projects", len(snap.Projects),
		"alerts", len(snap.Alerts),
		"took", time.Since(start).Round(time.Millisecond))
	return nil
}
