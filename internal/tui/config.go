package tui

import (
	"time"

	"github.com/Veraticus/budget/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme       themes.Theme
	Now         func() time.Time
	Currency    string
	RecentCount int
	Width       int
	Height      int
	AltScreen   bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:       themes.Default,
		Now:         time.Now,
		Currency:    "$",
		RecentCount: 5,
		Width:       80,
		Height:      24,
		AltScreen:   true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithClock sets the source of "today", which picks the starting month.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithDisplay sets the currency symbol and how many recent transactions
// the dashboard lists.
func WithDisplay(currency string, recentCount int) Option {
	return func(c *Config) {
		c.Currency = currency
		c.RecentCount = recentCount
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
