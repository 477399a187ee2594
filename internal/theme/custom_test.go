package theme

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
)

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCustomThemeFile(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		body        string
		wantID      string
		wantDisplay string
		wantErr     bool
	}{
		{
			name:        "explicit id",
			file:        "whatever.json",
			body:        `{"id": "test-full", "display_name": "Test Full", "dark": true, "fg": "#d4d4d4", "bg": "#1e1e2e"}`,
			wantID:      "test-full",
			wantDisplay: "Test Full",
		},
		{
			name:        "id from filename",
			file:        "My-Cool-Theme.json",
			body:        `{"fg": "#ffffff"}`,
			wantID:      "my-cool-theme",
			wantDisplay: "my-cool-theme",
		},
		{
			name:    "invalid json",
			file:    "broken.json",
			body:    `{not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTheme(t, t.TempDir(), tt.file, tt.body)
			got, err := LoadCustomThemeFile(path)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadCustomThemeFile failed: %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("Expected ID %q, got %q", tt.wantID, got.ID)
			}
			if got.DisplayName != tt.wantDisplay {
				t.Errorf("Expected DisplayName %q, got %q", tt.wantDisplay, got.DisplayName)
			}
			if got.BrightWhite == nil || got.Cursor == nil {
				t.Error("Expected missing colors to be filled")
			}
		})
	}
}

func TestFillDefaultsDerivesFromBase(t *testing.T) {
	th := &tint.Tint{Fg: tint.FromHex("#123456"), Red: tint.FromHex("#ff0000")}
	fillDefaults(th)

	if *th.Cursor != *th.Fg {
		t.Error("Expected cursor to copy the foreground")
	}
	if th.Cursor == th.Fg {
		t.Error("Expected cursor to be a copy, not an alias")
	}
	if *th.BrightRed != *th.Red {
		t.Error("Expected bright red to copy red")
	}
	if th.Bg == nil || th.White == nil {
		t.Error("Expected base colors to be filled")
	}
}

func TestLoadCustomThemes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"readme.txt", "notes.md", ".hidden"} {
		writeTheme(t, dir, name, "not a theme")
	}
	writeTheme(t, dir, "bad.json", "{")
	writeTheme(t, dir, "tilewm-test-unique.json", `{"fg": "#ffffff", "bg": "#000000"}`)

	tint.NewDefaultRegistry()
	var buf bytes.Buffer
	loaded, err := LoadCustomThemes(dir, log.New(&buf))
	if err != nil {
		t.Fatalf("LoadCustomThemes failed: %v", err)
	}
	if !slices.Equal(loaded, []string{"tilewm-test-unique"}) {
		t.Errorf("Expected only the valid theme to load, got %v", loaded)
	}
	if !strings.Contains(buf.String(), "bad.json") {
		t.Errorf("Expected the bad file to be logged, got %q", buf.String())
	}
	if !slices.Contains(tint.TintIDs(), "tilewm-test-unique") {
		t.Error("Expected custom theme to be registered")
	}
}

func TestColorsFallbackWhenDisabled(t *testing.T) {
	if err := Initialize("", nil); err != nil {
		t.Fatal(err)
	}
	if IsEnabled() || Current() != nil {
		t.Fatal("Expected theming to be disabled")
	}
	got, want := Colors(), fallback
	r1, g1, b1, _ := got.Focused.RGBA()
	r2, g2, b2, _ := want.Focused.RGBA()
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Error("Expected the fallback palette")
	}
}
