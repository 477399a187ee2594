package tape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/Gaurav-Gosain/tilewm/internal/app"
	"github.com/Gaurav-Gosain/tilewm/internal/backend"
	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/input"
	"github.com/charmbracelet/log"
)

// ErrExpectationFailed is returned by Play when any expect step failed.
var ErrExpectationFailed = errors.New("tape expectations failed")

// Failure is one unmet expectation.
type Failure struct {
	Step    int    `yaml:"step"`
	Message string `yaml:"message"`
}

func (f Failure) String() string {
	return fmt.Sprintf("step %d: %s", f.Step+1, f.Message)
}

// Result summarizes a playback.
type Result struct {
	Name     string    `yaml:"name"`
	Steps    int       `yaml:"steps"`
	Failures []Failure `yaml:"failures,omitempty"`
	State    app.State `yaml:"state"`
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

type playOptions struct {
	logger *log.Logger
	config *config.UserConfig
}

// Option configures Play.
type Option func(*playOptions)

// WithLogger sends manager and backend logs to logger.
func WithLogger(l *log.Logger) Option {
	return func(o *playOptions) { o.logger = l }
}

// WithConfig starts from cfg instead of the defaults.
func WithConfig(cfg *config.UserConfig) Option {
	return func(o *playOptions) { o.config = cfg }
}

// Play runs s against a fresh headless manager with invariant checking on.
// Exec actions are logged, not run. An invariant violation stops playback
// and is returned as an error.
func Play(ctx context.Context, s *Script, opts ...Option) (res *Result, err error) {
	o := playOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	cfg := scriptConfig(o.config, s)

	hl := backend.NewHeadless(o.logger)
	wm := app.New(app.Options{
		Backend:  hl,
		Logger:   o.logger,
		Config:   cfg,
		Paranoid: true,
	})
	wm.SetKeyHandler(input.NewDispatcher(config.NewKeybindRegistry(cfg.Bindings, o.logger), o.logger))

	res = &Result{Name: s.Name}
	defer func() {
		if r := recover(); r != nil {
			v, ok := r.(*app.InvariantViolation)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("step %d: %w", res.Steps, v)
		}
	}()

	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Steps = i + 1

		switch st.Kind() {
		case "attach":
			wm.HandleEvent(app.OutputAttached{ID: app.OutputID(st.Attach.ID), Rect: st.Attach.Rect})
		case "detach":
			wm.HandleEvent(app.OutputDetached{ID: app.OutputID(st.Detach)})
		case "map":
			wm.HandleEvent(app.SurfaceMapped{ID: app.WindowID(st.Map.ID), AppHint: st.Map.App})
		case "unmap":
			wm.HandleEvent(app.SurfaceUnmapped{ID: app.WindowID(st.Unmap)})
		case "key":
			chord, err := config.ParseChord(st.Key)
			if err != nil {
				return res, &StepError{Index: i, Err: err}
			}
			if !wm.HandleEvent(app.KeyPressed{Mods: chord.Mods, Key: chord.Key}) {
				o.logger.Debug("key passed through", "chord", chord.String())
			}
		case "expect":
			res.Failures = append(res.Failures, check(i, st.Expect, wm, hl)...)
		default:
			return res, &StepError{Index: i, Err: ErrInvalidStep}
		}
		hl.Drain(wm)

		if wm.Terminated() {
			o.logger.Info("tape terminated", "step", i+1)
			break
		}
	}

	res.State = wm.State()
	if !res.Passed() {
		return res, fmt.Errorf("%w: %d failed", ErrExpectationFailed, len(res.Failures))
	}
	return res, nil
}

func scriptConfig(base *config.UserConfig, s *Script) *config.UserConfig {
	if base == nil {
		base = config.DefaultConfig()
	}
	cfg := *base
	if s.Gaps > 0 {
		cfg.Layout.Gaps = s.Gaps
	}
	cfg.Rules = append(slices.Clone(base.Rules), s.Rules...)
	cfg.Bindings = append(slices.Clone(base.Bindings), s.Bindings...)
	return &cfg
}

func check(step int, e *Expect, wm *app.WM, hl *backend.Headless) []Failure {
	var out []Failure
	fail := func(format string, args ...any) {
		out = append(out, Failure{Step: step, Message: fmt.Sprintf(format, args...)})
	}

	if e.Focused != nil && string(wm.Focused()) != *e.Focused {
		fail("focused: expected %q, got %q", *e.Focused, wm.Focused())
	}
	if e.Workspace != 0 && wm.Current().ID != e.Workspace {
		fail("workspace: expected %d, got %d", e.Workspace, wm.Current().ID)
	}

	for _, id := range slices.Sorted(maps.Keys(e.Outputs)) {
		want := e.Outputs[id]
		o, ok := wm.Output(app.OutputID(id))
		switch {
		case !ok:
			fail("output %q: not attached", id)
		case o.Workspace != want:
			fail("output %q: expected workspace %d, got %d", id, want, o.Workspace)
		}
	}

	for _, n := range slices.Sorted(maps.Keys(e.Leaves)) {
		got := 0
		if ws, ok := wm.Workspace(n); ok {
			got = ws.Tree.Len()
		}
		if got != e.Leaves[n] {
			fail("workspace %d: expected %d leaves, got %d", n, e.Leaves[n], got)
		}
	}

	for _, id := range slices.Sorted(maps.Keys(e.Windows)) {
		want := e.Windows[id]
		w, ok := wm.Window(app.WindowID(id))
		if want.Absent {
			if ok {
				fail("window %q: expected absent", id)
			}
			continue
		}
		if !ok {
			fail("window %q: not mapped", id)
			continue
		}
		if want.Mode != "" {
			if mode, _ := app.ParseMode(want.Mode); mode != w.Mode {
				fail("window %q: expected mode %s, got %s", id, mode, w.Mode)
			}
		}
		if want.Workspace != 0 && w.Workspace != want.Workspace {
			fail("window %q: expected workspace %d, got %d", id, want.Workspace, w.Workspace)
		}
		if want.Rect != nil {
			if got, _ := hl.Frame(w.ID); got != *want.Rect {
				fail("window %q: expected rect %v, got %v", id, *want.Rect, got)
			}
		}
		if want.Visible != nil && hl.Visible(w.ID) != *want.Visible {
			fail("window %q: expected visible=%v", id, *want.Visible)
		}
	}
	return out
}
