package tui

import (
	"github.com/jonboulle/clockwork"

	"github.com/Veraticus/client-pulse/internal/monitor"
)

// Config holds TUI configuration.
type Config struct {
	Monitor *monitor.Monitor
	Clock   clockwork.Clock
	Width   int
	Height  int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Clock:  clockwork.NewRealClock(),
		Width:  100,
		Height: 30,
	}
}

// WithClock overrides the wall clock used for reference times.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
