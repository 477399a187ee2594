package preview

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tilewm/internal/app"
	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/geom"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
)

func newModel(t *testing.T, opts Options) *Model {
	t.Helper()
	opts.AltAsSuper = true
	m := New(opts)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 25})
	return m
}

func press(m *Model, code rune, mod tea.KeyMod, text string) tea.Cmd {
	_, cmd := m.Update(tea.KeyPressMsg{Code: code, Mod: mod, Text: text})
	return cmd
}

func TestInitialWindowsTile(t *testing.T) {
	m := newModel(t, Options{Windows: 2})

	if m.WM().Len() != 2 {
		t.Fatalf("Expected 2 windows, got %d", m.WM().Len())
	}
	out, ok := m.WM().Output("preview-0")
	if !ok || out.Rect != geom.R(0, 0, 80, 24) {
		t.Fatalf("Expected preview-0 above the status line, got %v", out.Rect)
	}

	var total int
	for _, w := range m.WM().Stacking("preview-0") {
		r, ok := m.Backend().Frame(w.ID)
		if !ok {
			t.Fatalf("Expected %s to have a frame", w.ID)
		}
		if r.H != 24 || r.W != 40 {
			t.Errorf("Expected 40x24 frame, got %v", r)
		}
		total += r.W
	}
	if total != 80 {
		t.Errorf("Expected frames to tile the width, got %d", total)
	}
	if err := m.WM().CheckInvariants(); err != nil {
		t.Fatal(err)
	}
}

func TestKeysReachManager(t *testing.T) {
	m := newModel(t, Options{Windows: 2})
	first := m.WM().Focused()

	press(m, 'h', tea.ModAlt, "")
	if m.WM().Focused() == first {
		t.Error("Expected alt+h to move focus left")
	}
	if m.lastKey != "super+h" {
		t.Errorf("Expected status to show super+h, got %q", m.lastKey)
	}

	press(m, tea.KeyEnter, tea.ModAlt, "")
	if m.WM().Len() != 3 {
		t.Errorf("Expected exec to map a third window, got %d", m.WM().Len())
	}

	press(m, '3', tea.ModAlt, "3")
	if m.WM().Current().ID != 3 {
		t.Errorf("Expected workspace 3, got %d", m.WM().Current().ID)
	}
}

func TestUnboundKeysAreTyped(t *testing.T) {
	m := newModel(t, Options{Windows: 1})
	id := m.WM().Focused()

	press(m, 'l', 0, "l")
	press(m, 's', 0, "s")
	if got := m.Backend().Typed(id); got != "ls" {
		t.Errorf("Expected typed text %q, got %q", "ls", got)
	}
}

func TestCloseAndQuit(t *testing.T) {
	m := newModel(t, Options{Windows: 1})

	press(m, 'q', tea.ModAlt|tea.ModShift, "")
	if m.WM().Len() != 0 {
		t.Errorf("Expected close to remove the window, got %d", m.WM().Len())
	}

	cmd := press(m, 'c', tea.ModCtrl, "")
	if cmd == nil {
		t.Fatal("Expected ctrl+c to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected a quit message")
	}
}

func TestMultipleOutputs(t *testing.T) {
	m := newModel(t, Options{Outputs: 2, Windows: 1})

	tests := []struct {
		id   app.OutputID
		rect geom.Rect
		ws   int
	}{
		{"preview-0", geom.R(0, 0, 40, 24), 1},
		{"preview-1", geom.R(40, 0, 40, 24), 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			out, ok := m.WM().Output(tt.id)
			if !ok {
				t.Fatal("Expected output to be attached")
			}
			if out.Rect != tt.rect || out.Workspace != tt.ws {
				t.Errorf("Expected %v on workspace %d, got %v on %d", tt.rect, tt.ws, out.Rect, out.Workspace)
			}
		})
	}

	// One column cannot hold two outputs: the empty one is detached and its
	// workspace parked with the window still on it.
	m.Update(tea.WindowSizeMsg{Width: 1, Height: 25})
	if _, ok := m.WM().Output("preview-0"); ok {
		t.Error("Expected preview-0 to be detached")
	}
	if out, ok := m.WM().Output("preview-1"); !ok || out.Rect != geom.R(0, 0, 1, 24) {
		t.Errorf("Expected preview-1 to shrink to one column, got %v", out.Rect)
	}
	if m.WM().Len() != 1 {
		t.Errorf("Expected the window to stay managed, got %d", m.WM().Len())
	}
	if err := m.WM().CheckInvariants(); err != nil {
		t.Fatal(err)
	}
}

func TestConfigReload(t *testing.T) {
	m := newModel(t, Options{})
	cfg := config.DefaultConfig()
	cfg.Bindings = []config.BindingConfig{{Keys: []string{"ctrl+n"}, Action: "exec", Command: "foot --server"}}

	m.Update(ConfigReloadedMsg{Config: cfg})
	if m.notice != "config reloaded" {
		t.Errorf("Expected reload notice, got %q", m.notice)
	}

	press(m, 'n', tea.ModCtrl, "")
	w, ok := m.WM().Window(m.WM().Focused())
	if !ok || w.AppHint != "foot" {
		t.Errorf("Expected a foot window from the new binding, got %+v", w)
	}
}

func TestRenderShowsWindowsAndStatus(t *testing.T) {
	m := newModel(t, Options{Windows: 1})
	w, _ := m.WM().Window(m.WM().Focused())

	out := ansi.Strip(m.Render())
	if !strings.Contains(out, string(w.ID)) {
		t.Errorf("Expected window id %s in frame", w.ID)
	}
	if !strings.Contains(out, "tiled") {
		t.Error("Expected window mode in frame")
	}
	if !strings.Contains(out, "[tiled]") {
		t.Error("Expected status line with the focused window")
	}
}

func TestNeedsASCII(t *testing.T) {
	tests := []struct {
		p    colorprofile.Profile
		want bool
	}{
		{colorprofile.TrueColor, false},
		{colorprofile.ANSI256, false},
		{colorprofile.ANSI, false},
		{colorprofile.Ascii, true},
		{colorprofile.NoTTY, true},
	}
	for _, tt := range tests {
		if got := NeedsASCII(tt.p); got != tt.want {
			t.Errorf("NeedsASCII(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestAppHint(t *testing.T) {
	t.Setenv("TERMINAL", "/usr/bin/alacritty")
	tests := []struct{ cmd, want string }{
		{"$TERMINAL", "alacritty"},
		{"firefox --new-window", "firefox"},
		{"   ", "terminal"},
	}
	for _, tt := range tests {
		if got := appHint(tt.cmd); got != tt.want {
			t.Errorf("appHint(%q) = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}
