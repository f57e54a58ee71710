package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/client-pulse/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API",
		Long: `Run the HTTP server backing the dashboard: project snapshots, alert
endpoints, dismissals, and Prometheus metrics. Snapshots refresh on a
fixed interval and on demand.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":3001", "listen address")
	cmd.Flags().Duration("refresh-interval", 5*time.Minute, "snapshot refresh interval")
	cmd.Flags().Bool("llm", false, "enrich sentiment with the configured LLM analyzer")
	cmd.Flags().String("tls-cert-dir", "", "serve HTTPS with a self-signed cert stored in this directory")

	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.refresh_interval", cmd.Flags().Lookup("refresh-interval"))
	_ = viper.BindPFlag("server.llm", cmd.Flags().Lookup("llm"))
	_ = viper.BindPFlag("server.tls_cert_dir", cmd.Flags().Lookup("tls-cert-dir"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	useLLM := viper.GetBool("server.llm")

	m, cleanup, err := initMonitor(ctx, useLLM, true)
	if err != nil {
		return err
	}
	defer cleanup()

	var opts []server.Option
	if useLLM {
		analyzer, err := initAnalyzer(true)
		if err != nil {
			return err
		}
		opts = append(opts, server.WithAnalyzer(analyzer))
	}

	srv := server.New(m, server.Config{
		Addr:            viper.GetString("server.addr"),
		RefreshInterval: viper.GetDuration("server.refresh_interval"),
		TLSCertDir:      viper.GetString("server.tls_cert_dir"),
	}, opts...)

	return srv.Run(ctx)
}
