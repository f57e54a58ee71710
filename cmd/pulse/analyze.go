package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/client-pulse/internal/report"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Evaluate the portfolio and print the health report",
		Long: `Fetch every project, score communication sentiment, run the alert rules,
and print the health report with dismissed alerts filtered out.`,
		RunE: runAnalyze,
	}

	cmd.Flags().String("at", "", "reference date for day math (format: 2006-01-02, default: today)")
	cmd.Flags().Bool("llm", false, "enrich sentiment with the configured LLM analyzer")
	cmd.Flags().String("format", "report", "output format (report, json)")

	_ = viper.BindPFlag("analyze.at", cmd.Flags().Lookup("at"))
	_ = viper.BindPFlag("analyze.llm", cmd.Flags().Lookup("llm"))
	_ = viper.BindPFlag("analyze.format", cmd.Flags().Lookup("format"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	ref, err := parseReferenceDate(viper.GetString("analyze.at"))
	if err != nil {
		return err
	}

	m, cleanup, err := initMonitor(ctx,
		viper.GetBool("analyze.llm"), true,
		withFetchProgressOption()...)
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := m.Snapshot(ctx, ref)
	if err != nil {
		return err
	}

	switch format := viper.GetString("analyze.format"); format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
	case "report":
		formatter := report.NewFormatter()
		fmt.Fprintln(os.Stdout, formatter.FormatSnapshot(snap.Projects, snap.Alerts, snap.TakenAt))
	default:
		return fmt.Errorf("invalid output format: %s", format)
	}

	return nil
}

// parseReferenceDate interprets --at as a local-midnight date; empty means
// now.
func parseReferenceDate(at string) (time.Time, error) {
	if at == "" {
		return time.Now(), nil
	}
	ref, err := time.Parse("2006-01-02", at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference date %q: %w", at, err)
	}
	return ref, nil
}
