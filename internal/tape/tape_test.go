package tape_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/tilewm/internal/tape"
	"github.com/charmbracelet/log"
)

func TestPlayTestdata(t *testing.T) {
	tests := []struct {
		file string
		warn string
	}{
		{"testdata/workspaces.yaml", ""},
		{"testdata/collision.yaml", "key binding collision"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			s, err := tape.Load(tt.file)
			if err != nil {
				t.Fatalf("Failed to load: %v", err)
			}

			var buf bytes.Buffer
			res, err := tape.Play(t.Context(), s, tape.WithLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})))
			if err != nil {
				for _, f := range res.Failures {
					t.Log(f)
				}
				t.Fatalf("Expected tape to pass, got %v", err)
			}
			if res.Steps != len(s.Steps) {
				t.Errorf("Expected %d steps played, got %d", len(s.Steps), res.Steps)
			}
			if tt.warn != "" && !strings.Contains(buf.String(), tt.warn) {
				t.Errorf("Expected log to contain %q", tt.warn)
			}
		})
	}
}

func TestPlayReportsFailures(t *testing.T) {
	s, err := tape.Parse([]byte(`
name: wrong
steps:
  - attach: { id: out, rect: { x: 0, y: 0, w: 800, h: 600 } }
  - map: { id: a }
  - expect:
      focused: b
      workspace: 3
      windows:
        a: { mode: floating }
        ghost: { mode: tiled }
`))
	if err != nil {
		t.Fatal(err)
	}

	res, err := tape.Play(t.Context(), s)
	if !errors.Is(err, tape.ErrExpectationFailed) {
		t.Fatalf("Expected ErrExpectationFailed, got %v", err)
	}
	if len(res.Failures) != 4 {
		t.Fatalf("Expected 4 failures, got %v", res.Failures)
	}
	for _, f := range res.Failures {
		if f.Step != 2 {
			t.Errorf("Expected failure on step index 2, got %d", f.Step)
		}
	}
	if !strings.Contains(res.Failures[0].String(), "step 3") {
		t.Errorf("Expected 1-based step in message, got %q", res.Failures[0].String())
	}
}

func TestParseRejectsBadScripts(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"two actions in one step", "steps:\n  - map: { id: a }\n    unmap: a\n"},
		{"empty step", "steps:\n  - {}\n"},
		{"bad chord", "steps:\n  - key: hyper+q\n"},
		{"empty rect", "steps:\n  - attach: { id: out, rect: { x: 0, y: 0, w: 0, h: 10 } }\n"},
		{"map without id", "steps:\n  - map: { app: foot }\n"},
		{"bad mode", "steps:\n  - expect: { windows: { a: { mode: minimized } } }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tape.Parse([]byte(tt.yaml))
			if !errors.Is(err, tape.ErrInvalidStep) {
				t.Fatalf("Expected ErrInvalidStep, got %v", err)
			}
			var serr *tape.StepError
			if !errors.As(err, &serr) || serr.Index != 0 {
				t.Errorf("Expected StepError for the first step, got %v", err)
			}
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := tape.Parse([]byte("steps:\n  - click: a\n"))
	if err == nil {
		t.Fatal("Expected unknown step field to be rejected")
	}
}

func TestPlayStopsOnTerminate(t *testing.T) {
	s, err := tape.Parse([]byte(`
steps:
  - attach: { id: out, rect: { x: 0, y: 0, w: 800, h: 600 } }
  - key: super+shift+escape
  - map: { id: late }
`))
	if err != nil {
		t.Fatal(err)
	}
	res, err := tape.Play(t.Context(), s)
	if err != nil {
		t.Fatal(err)
	}
	if res.Steps != 2 {
		t.Errorf("Expected playback to stop after step 2, got %d", res.Steps)
	}
	if len(res.State.Windows) != 0 {
		t.Errorf("Expected no windows, got %v", res.State.Windows)
	}
}

func TestPlayRulesAndGaps(t *testing.T) {
	s, err := tape.Parse([]byte(`
gaps: 8
rules:
  - app: "pavu*"
    mode: floating
steps:
  - attach: { id: out, rect: { x: 0, y: 0, w: 1000, h: 800 } }
  - map: { id: term, app: foot }
  - map: { id: mixer, app: pavucontrol }
  - expect:
      leaves: { 1: 1 }
      windows:
        term: { mode: tiled, rect: { x: 8, y: 8, w: 984, h: 784 } }
        mixer: { mode: floating }
`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tape.Play(t.Context(), s); err != nil {
		t.Fatal(err)
	}
}
