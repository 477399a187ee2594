// Package theme maps bubbletint color themes onto the preview's window
// borders, titles and status line.
package theme

import (
	"image/color"
	"io"
	"slices"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry and selects themeName. Custom themes
// from the user's themes directory are registered first. An empty name
// disables theming and the fallback palette is used.
func Initialize(themeName string, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir, logger); err != nil {
			logger.Warn("error loading custom themes", "err", err)
		}
	}

	if !tint.SetTintID(themeName) {
		logger.Warn("unknown theme, using default", "theme", themeName)
		tint.SetTintID("default")
	}
	return nil
}

// IsEnabled returns true if theming is enabled.
func IsEnabled() bool {
	return enabled
}

// Current returns the active theme, or nil when theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Names lists every registered theme id, sorted.
func Names() []string {
	tint.NewDefaultRegistry()
	ids := tint.TintIDs()
	slices.Sort(ids)
	return ids
}

// Palette is the set of colors the preview draws with.
type Palette struct {
	Focused    color.Color
	Unfocused  color.Color
	Floating   color.Color
	Fullscreen color.Color
	Title      color.Color

	StatusFg          color.Color
	StatusBg          color.Color
	WorkspaceActive   color.Color
	WorkspaceOccupied color.Color
	WorkspaceEmpty    color.Color
	Desktop           color.Color
}

var fallback = Palette{
	Focused:           lipgloss.Color("#AFFFFF"),
	Unfocused:         lipgloss.Color("#7f7f7f"),
	Floating:          lipgloss.Color("#ffff00"),
	Fullscreen:        lipgloss.Color("#AAFFAA"),
	Title:             lipgloss.Color("#e5e5e5"),
	StatusFg:          lipgloss.Color("#e5e5e5"),
	StatusBg:          lipgloss.Color("#262626"),
	WorkspaceActive:   lipgloss.Color("#5c5cff"),
	WorkspaceOccupied: lipgloss.Color("#00cdcd"),
	WorkspaceEmpty:    lipgloss.Color("#585858"),
	Desktop:           lipgloss.Color("#000000"),
}

// Colors returns the palette for the active theme.
func Colors() Palette {
	t := Current()
	if t == nil {
		return fallback
	}
	return Palette{
		Focused:           t.BrightCyan,
		Unfocused:         t.BrightBlack,
		Floating:          t.Yellow,
		Fullscreen:        t.BrightGreen,
		Title:             t.Fg,
		StatusFg:          t.Fg,
		StatusBg:          t.Black,
		WorkspaceActive:   t.BrightBlue,
		WorkspaceOccupied: t.Cyan,
		WorkspaceEmpty:    t.BrightBlack,
		Desktop:           t.Bg,
	}
}
