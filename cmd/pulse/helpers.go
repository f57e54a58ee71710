package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"

	"github.com/Veraticus/client-pulse/internal/config"
	"github.com/Veraticus/client-pulse/internal/hubspot"
	"github.com/Veraticus/client-pulse/internal/llm"
	"github.com/Veraticus/client-pulse/internal/monitor"
	"github.com/Veraticus/client-pulse/internal/service"
	"github.com/Veraticus/client-pulse/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/pulse/pulse.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initSource builds the project source: the demo portfolio when --mock is
// set, the HubSpot API otherwise.
func initSource(opts ...hubspot.SourceOption) (service.ProjectSource, error) {
	if viper.GetBool("source.mock") {
		slog.Debug("Using built-in demo portfolio")
		return hubspot.NewMockSource(), nil
	}

	token, err := config.LoadHubSpotToken()
	if err != nil {
		return nil, err
	}
	client, err := hubspot.NewClient(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create hubspot client: %w", err)
	}
	return hubspot.NewSource(client, opts...), nil
}

// initAnalyzer builds the LLM analyzer when one is configured. A missing API
// key is not an error; the engine falls back to the local heuristic.
func initAnalyzer(useLLM bool) (service.Analyzer, error) {
	if !useLLM {
		return nil, nil
	}

	cfg, err := config.LoadLLMConfig()
	if err != nil {
		return nil, err
	}
	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}
	return client, nil
}

// initMonitor assembles the monitor from source, optional analyzer, and
// optional storage. The returned cleanup closes storage.
func initMonitor(ctx context.Context, useLLM, withStorage bool, srcOpts ...hubspot.SourceOption) (*monitor.Monitor, func(), error) {
	source, err := initSource(srcOpts...)
	if err != nil {
		return nil, nil, err
	}

	var opts []monitor.Option
	cleanup := func() {}

	analyzer, err := initAnalyzer(useLLM)
	if err != nil {
		return nil, nil, err
	}
	if analyzer != nil {
		opts = append(opts, monitor.WithAnalyzer(analyzer))
	}

	if withStorage {
		store, err := initStorage(ctx)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, monitor.WithStorage(store))
		cleanup = func() {
			if err := store.Close(); err != nil {
				slog.Warn("Failed to close storage", "error", err)
			}
		}
	}

	return monitor.New(source, opts...), cleanup, nil
}

// withFetchProgressOption attaches the progress bar for interactive fetches.
func withFetchProgressOption() []hubspot.SourceOption {
	return []hubspot.SourceOption{hubspot.WithProgress(fetchProgress())}
}

// fetchProgress renders a progress bar while deals are pulled from HubSpot.
func fetchProgress() hubspot.ProgressFunc {
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Fetching deals..."),
			)
		}
		_ = bar.Set(done)
		if done >= total {
			_ = bar.Finish()
		}
	}
}
