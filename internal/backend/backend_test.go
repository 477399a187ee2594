package backend_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/tilewm/internal/app"
	"github.com/Gaurav-Gosain/tilewm/internal/backend"
	"github.com/Gaurav-Gosain/tilewm/internal/geom"
	"github.com/charmbracelet/log"
)

// =============================================================================
// Spawner
// =============================================================================

func TestSpawnEmptyCommand(t *testing.T) {
	s := backend.NewSpawner(nil)
	err := s.Spawn("   ", nil)

	var serr *backend.SpawnError
	if !errors.As(err, &serr) {
		t.Fatalf("Expected *SpawnError, got %v", err)
	}
	if !errors.Is(err, backend.ErrEmptyCommand) {
		t.Errorf("Expected ErrEmptyCommand, got %v", err)
	}
}

func TestSpawnMissingShell(t *testing.T) {
	s := backend.NewSpawner(nil)
	s.Shell = filepath.Join(t.TempDir(), "no-such-shell")

	err := s.Spawn("true", nil)
	var serr *backend.SpawnError
	if !errors.As(err, &serr) {
		t.Fatalf("Expected *SpawnError, got %v", err)
	}
	if serr.Command != "true" {
		t.Errorf("Expected command %q, got %q", "true", serr.Command)
	}
}

func TestSpawnRunsDetachedWithEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	out := filepath.Join(t.TempDir(), "out")
	s := backend.NewSpawner(nil)

	start := time.Now()
	if err := s.Spawn(`sleep 0.1; printf %s "$TILEWM_MARK" > "$TILEWM_OUT"`, []string{
		"TILEWM_MARK=hello",
		"TILEWM_OUT=" + out,
	}); err != nil {
		t.Fatal(err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("Expected Spawn to return without waiting for the process")
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		data, err := os.ReadFile(out)
		if err == nil && string(data) == "hello" {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("Expected spawned process to write %q, got %q (%v)", "hello", data, err)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

// =============================================================================
// Headless
// =============================================================================

func TestHeadlessTracksFramesAndFocus(t *testing.T) {
	var buf bytes.Buffer
	h := backend.NewHeadless(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	wm := app.New(app.Options{Backend: h})

	wm.HandleEvent(app.OutputAttached{ID: "out", Rect: geom.R(0, 0, 1000, 500)})
	wm.HandleEvent(app.SurfaceMapped{ID: "a"})
	wm.HandleEvent(app.SurfaceMapped{ID: "b"})

	tests := []struct {
		id   app.WindowID
		want geom.Rect
	}{
		{"a", geom.R(0, 0, 500, 500)},
		{"b", geom.R(500, 0, 500, 500)},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			got, ok := h.Frame(tt.id)
			if !ok || got != tt.want {
				t.Errorf("Expected %v, got %v (ok=%v)", tt.want, got, ok)
			}
			if !h.Visible(tt.id) {
				t.Errorf("Expected %s visible", tt.id)
			}
		})
	}
	if h.FocusedWindow() != "b" {
		t.Errorf("Expected b focused, got %q", h.FocusedWindow())
	}
	if !strings.Contains(buf.String(), "commit") {
		t.Error("Expected commits to be logged")
	}

	if err := wm.SwitchWorkspace(2); err != nil {
		t.Fatal(err)
	}
	if got := h.VisibleWindows(); len(got) != 0 {
		t.Errorf("Expected nothing visible on workspace 2, got %v", got)
	}
}

func TestHeadlessCloseQueuesUnmap(t *testing.T) {
	h := backend.NewHeadless(nil)
	wm := app.New(app.Options{Backend: h})
	wm.HandleEvent(app.OutputAttached{ID: "out", Rect: geom.R(0, 0, 1000, 500)})
	wm.HandleEvent(app.SurfaceMapped{ID: "a"})

	if !wm.CloseFocused() {
		t.Fatal("Expected close to be sent")
	}
	if _, ok := wm.Window("a"); !ok {
		t.Fatal("Expected a to stay until the client unmaps")
	}

	h.Drain(wm)
	if _, ok := wm.Window("a"); ok {
		t.Error("Expected a to be gone after drain")
	}
	if len(h.TakePending()) != 0 {
		t.Error("Expected the queue to be empty")
	}
}

func TestHeadlessDryRunSpawn(t *testing.T) {
	var buf bytes.Buffer
	h := backend.NewHeadless(log.New(&buf))
	if err := h.SpawnProcess("firefox", nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "firefox") {
		t.Errorf("Expected dry-run spawn to be logged, got %q", buf.String())
	}
}

func TestHeadlessTerminateClosesDone(t *testing.T) {
	h := backend.NewHeadless(nil)
	h.Terminate()
	h.Terminate()

	select {
	case <-h.Done():
	default:
		t.Error("Expected Done to be closed")
	}
}
