package server

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/tilewm/internal/geom"
)

func TestNewSessionSizesOutputs(t *testing.T) {
	tests := []struct {
		name    string
		outputs int
		width   int
		height  int
		want    []geom.Rect
	}{
		{"single output", 1, 100, 31, []geom.Rect{geom.R(0, 0, 100, 30)}},
		{"two outputs", 2, 100, 31, []geom.Rect{geom.R(0, 0, 50, 30), geom.R(50, 0, 50, 30)}},
		{"no size yet", 1, 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, opts := newSession(SessionOptions{Outputs: tt.outputs, Windows: 1}, nil, tt.width, tt.height, nil)
			if len(opts) == 0 {
				t.Error("Expected program options")
			}
			outs := m.WM().Outputs()
			if len(outs) != len(tt.want) {
				t.Fatalf("Expected %d outputs, got %d", len(tt.want), len(outs))
			}
			for i, out := range outs {
				if out.Rect != tt.want[i] {
					t.Errorf("Expected output %d at %v, got %v", i, tt.want[i], out.Rect)
				}
			}
		})
	}
}

func TestNewSessionMapsInitialWindows(t *testing.T) {
	m, _ := newSession(SessionOptions{Windows: 3}, nil, 120, 40, []string{"TERM=xterm-256color"})
	if m.WM().Len() != 3 {
		t.Errorf("Expected 3 windows, got %d", m.WM().Len())
	}
	if err := m.WM().CheckInvariants(); err != nil {
		t.Fatal(err)
	}
}

func TestHostKeyPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	got, err := SSHConfig{}.HostKeyPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != "tilewm_host_key" || !strings.Contains(got, ".ssh") {
		t.Errorf("Unexpected default key path %q", got)
	}

	got, _ = SSHConfig{KeyPath: "/tmp/key"}.HostKeyPath()
	if got != "/tmp/key" {
		t.Errorf("Expected explicit key path, got %q", got)
	}
}
