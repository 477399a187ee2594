package tilewm_test

import (
	"context"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/testutil"
	"github.com/Gaurav-Gosain/tilewm/pkg/tilewm"
)

func TestEngineRun(t *testing.T) {
	fb := testutil.NewFakeBackend()
	eng := tilewm.New(fb, tilewm.WithParanoid(true))

	super := config.MustParseChord("super+shift+escape")
	events := make(chan tilewm.Event, 8)
	events <- tilewm.OutputAttached{ID: "out", Rect: tilewm.Rect{W: 1000, H: 500}}
	events <- tilewm.SurfaceMapped{ID: "a"}
	events <- tilewm.SurfaceMapped{ID: "b"}
	events <- tilewm.KeyPressed{Mods: super.Mods, Key: super.Key}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := eng.Run(ctx, events); err != nil {
		t.Fatalf("Expected clean exit on terminate, got %v", err)
	}

	if !eng.Terminated() {
		t.Error("Expected engine to be terminated")
	}
	if eng.Focused() != "b" {
		t.Errorf("Expected b focused, got %q", eng.Focused())
	}
	commits := fb.Commits()
	if commits["a"] != (tilewm.Rect{W: 500, H: 500}) || commits["b"] != (tilewm.Rect{X: 500, W: 500, H: 500}) {
		t.Errorf("Unexpected layout %v", commits)
	}
}

func TestEngineReload(t *testing.T) {
	fb := testutil.NewFakeBackend()
	eng := tilewm.New(fb)
	eng.HandleEvent(tilewm.OutputAttached{ID: "out", Rect: tilewm.Rect{W: 1000, H: 500}})
	eng.HandleEvent(tilewm.SurfaceMapped{ID: "a"})

	cfg := config.DefaultConfig()
	cfg.Layout.Gaps = 10
	cfg.Bindings = []config.BindingConfig{{Keys: []string{"ctrl+2"}, Action: "switch_workspace", Workspace: 2}}
	eng.HandleEvent(eng.Reload(cfg))

	if got := fb.Commits()["a"]; got != (tilewm.Rect{X: 10, Y: 10, W: 980, H: 480}) {
		t.Errorf("Expected gaps after reload, got %v", got)
	}

	chord := config.MustParseChord("ctrl+2")
	if !eng.HandleEvent(tilewm.KeyPressed{Mods: chord.Mods, Key: chord.Key}) {
		t.Fatal("Expected new binding to be consumed")
	}
	if ws := eng.State().Outputs[0].Workspace; ws != 2 {
		t.Errorf("Expected workspace 2, got %d", ws)
	}
	if err := eng.CheckInvariants(); err != nil {
		t.Fatal(err)
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name  string
		opt   tilewm.Option
		check func(tilewm.Options) bool
	}{
		{"outputs clamp high", tilewm.WithOutputs(99), func(o tilewm.Options) bool { return o.Outputs == 4 }},
		{"outputs clamp low", tilewm.WithOutputs(0), func(o tilewm.Options) bool { return o.Outputs == 1 }},
		{"windows non-negative", tilewm.WithWindows(-3), func(o tilewm.Options) bool { return o.Windows == 0 }},
		{"env appends", tilewm.WithEnv("A=1", "B=2"), func(o tilewm.Options) bool { return len(o.Env) == 2 }},
		{"alt as super off", tilewm.WithAltAsSuper(false), func(o tilewm.Options) bool { return !o.AltAsSuper }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tilewm.DefaultOptions()
			tt.opt(&o)
			if !tt.check(o) {
				t.Errorf("Unexpected options %+v", o)
			}
		})
	}
}

func TestNewPreview(t *testing.T) {
	m := tilewm.NewPreview(tilewm.WithWindows(2))
	if m.WM().Len() != 0 {
		t.Error("Expected windows to wait for the first size")
	}
}
