package theme

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
)

// GetThemesDir returns ~/.config/tilewm/themes, creating it if needed.
func GetThemesDir() (string, error) {
	keepFile, err := xdg.ConfigFile("tilewm/themes/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get themes directory: %w", err)
	}
	return filepath.Dir(keepFile), nil
}

// LoadCustomThemes registers every *.json theme in themesDir and returns
// the ids it loaded. Bad files are logged and skipped.
func LoadCustomThemes(themesDir string, logger *log.Logger) ([]string, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		t, err := LoadCustomThemeFile(filepath.Join(themesDir, entry.Name()))
		if err != nil {
			logger.Warn("skipping custom theme", "file", entry.Name(), "err", err)
			continue
		}
		tint.Register(t)
		loaded = append(loaded, t.ID)
	}
	return loaded, nil
}

// LoadCustomThemeFile reads one JSON theme. The id defaults to the file
// name and missing colors fall back to xterm values.
func LoadCustomThemeFile(path string) (*tint.Tint, error) {
	// #nosec G304 - reading user themes is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var t tint.Tint
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse theme JSON: %w", err)
	}

	if t.ID == "" {
		base := filepath.Base(path)
		t.ID = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if t.ID == "" {
		return nil, fmt.Errorf("theme has no ID")
	}
	if t.DisplayName == "" {
		t.DisplayName = t.ID
	}

	fillDefaults(&t)
	return &t, nil
}

func fillDefaults(t *tint.Tint) {
	base := []struct {
		c   **tint.Color
		hex string
	}{
		{&t.Fg, "#e5e5e5"},
		{&t.Bg, "#000000"},
		{&t.Black, "#000000"},
		{&t.Red, "#cd0000"},
		{&t.Green, "#00cd00"},
		{&t.Yellow, "#cdcd00"},
		{&t.Blue, "#0000ee"},
		{&t.Purple, "#cd00cd"},
		{&t.Cyan, "#00cdcd"},
		{&t.White, "#e5e5e5"},
	}
	for _, d := range base {
		if *d.c == nil {
			*d.c = tint.FromHex(d.hex)
		}
	}

	// Cursor and bright variants copy their base color.
	derived := []struct{ c, from **tint.Color }{
		{&t.Cursor, &t.Fg},
		{&t.BrightBlack, &t.Black},
		{&t.BrightRed, &t.Red},
		{&t.BrightGreen, &t.Green},
		{&t.BrightYellow, &t.Yellow},
		{&t.BrightBlue, &t.Blue},
		{&t.BrightPurple, &t.Purple},
		{&t.BrightCyan, &t.Cyan},
		{&t.BrightWhite, &t.White},
	}
	for _, d := range derived {
		if *d.c == nil {
			*d.c = copyColor(*d.from)
		}
	}
}

func copyColor(c *tint.Color) *tint.Color {
	if c == nil {
		return nil
	}
	dup := *c
	return &dup
}
