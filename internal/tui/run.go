// Package tui implements the interactive project health dashboard: a project
// table, a per-project alert pane, and keyboard-driven refresh and dismissal.
package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/client-pulse/internal/monitor"
)

// Run starts the dashboard and blocks until the user quits or the context is
// canceled.
func Run(ctx context.Context, mon *monitor.Monitor, opts ...Option) error {
	if mon == nil {
		return fmt.Errorf("monitor is required")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Restore the terminal even when the program is torn down by a signal.
	cleanupTerminal := func() {
		_, _ = os.Stdout.Write([]byte("\033[?1049l")) // Exit alternate screen
		_, _ = os.Stdout.Write([]byte("\033[?25h"))   // Show cursor
		_, _ = os.Stdout.Write([]byte("\033[m"))      // Reset colors
	}
	defer cleanupTerminal()

	go func() {
		<-sigChan
		cleanupTerminal()
		cancel()
	}()

	cfg := defaultConfig()
	cfg.Monitor = mon
	for _, opt := range opts {
		opt(&cfg)
	}

	program := tea.NewProgram(
		newModel(cfg),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
