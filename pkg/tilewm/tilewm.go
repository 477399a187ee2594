// Package tilewm embeds the tiling window manager core in another program.
//
// The host supplies a Backend that carries out commands (geometry commits,
// focus, spawning) and feeds backend events to Run:
//
//	events := make(chan tilewm.Event, 64)
//	eng := tilewm.New(myBackend,
//		tilewm.WithLogger(logger),
//		tilewm.WithConfig(cfg),
//	)
//	go compositor.Forward(events)
//	if err := eng.Run(ctx, events); err != nil {
//		log.Fatal(err)
//	}
//
// # Terminal Preview
//
// NewPreview returns a Bubble Tea model that draws the manager inside a
// terminal, the same one the tilewm command runs:
//
//	p := tea.NewProgram(tilewm.NewPreview(tilewm.WithWindows(3)), tilewm.ProgramOptions()...)
package tilewm

import (
	"context"
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tilewm/internal/app"
	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/geom"
	"github.com/Gaurav-Gosain/tilewm/internal/input"
	"github.com/Gaurav-Gosain/tilewm/internal/preview"
	"github.com/charmbracelet/log"
)

type (
	// Backend receives the manager's commands.
	Backend = app.Backend
	// Event is a backend notification.
	Event = app.Event
	// WindowID identifies a client surface.
	WindowID = app.WindowID
	// OutputID identifies a display.
	OutputID = app.OutputID
	// Rect is an integer rectangle in output coordinates.
	Rect = geom.Rect
	// State is a snapshot of the manager.
	State = app.State
	// Config is the user configuration.
	Config = config.UserConfig
	// Model is the terminal preview model.
	Model = preview.Model
)

// Backend events.
type (
	SurfaceMapped   = app.SurfaceMapped
	SurfaceUnmapped = app.SurfaceUnmapped
	OutputAttached  = app.OutputAttached
	OutputDetached  = app.OutputDetached
	KeyPressed      = app.KeyPressed
)

// Options configures an Engine or a preview.
type Options struct {
	// Logger receives structured logs. Nil discards them.
	Logger *log.Logger

	// Config supplies layout settings, rules and bindings. Nil loads the
	// defaults.
	Config *Config

	// Env is appended to the environment of spawned processes.
	Env []string

	// Paranoid checks every invariant after each event. Slow; meant for
	// tests and debugging.
	Paranoid bool

	// Outputs is the number of side-by-side outputs in the preview.
	Outputs int

	// Windows is the number of simulated windows the preview starts with.
	Windows int

	// AltAsSuper lets the preview treat alt as the super modifier.
	AltAsSuper bool
}

// Option is a functional option for configuring tilewm.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithConfig sets the user configuration.
func WithConfig(cfg *Config) Option {
	return func(o *Options) {
		o.Config = cfg
	}
}

// WithEnv adds environment entries for spawned processes.
func WithEnv(env ...string) Option {
	return func(o *Options) {
		o.Env = append(o.Env, env...)
	}
}

// WithParanoid enables invariant checking after every event.
func WithParanoid(enabled bool) Option {
	return func(o *Options) {
		o.Paranoid = enabled
	}
}

// WithOutputs sets the number of preview outputs.
func WithOutputs(n int) Option {
	return func(o *Options) {
		o.Outputs = min(max(n, 1), preview.MaxOutputs)
	}
}

// WithWindows sets the number of simulated windows the preview starts with.
func WithWindows(n int) Option {
	return func(o *Options) {
		o.Windows = max(n, 0)
	}
}

// WithAltAsSuper maps alt to super in the preview.
func WithAltAsSuper(enabled bool) Option {
	return func(o *Options) {
		o.AltAsSuper = enabled
	}
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Outputs:    1,
		AltAsSuper: true,
	}
}

func buildOptions(opts []Option) Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = log.New(io.Discard)
	}
	if options.Config == nil {
		options.Config = config.DefaultConfig()
	}
	return options
}

// Engine is a window manager bound to a host backend. It is not safe for
// concurrent use: either call Run, or drive it with HandleEvent from a
// single goroutine.
type Engine struct {
	wm   *app.WM
	keys *input.Dispatcher
	log  *log.Logger
}

// New creates an engine that sends its commands to backend.
func New(backend Backend, opts ...Option) *Engine {
	options := buildOptions(opts)
	wm := app.New(app.Options{
		Backend:  backend,
		Logger:   options.Logger,
		Config:   options.Config,
		Env:      options.Env,
		Paranoid: options.Paranoid,
	})
	keys := input.NewDispatcher(config.NewKeybindRegistry(options.Config.Bindings, options.Logger), options.Logger)
	wm.SetKeyHandler(keys)
	return &Engine{wm: wm, keys: keys, log: options.Logger}
}

// Run consumes events until ctx is done, events is closed or a terminate
// action runs.
func (e *Engine) Run(ctx context.Context, events <-chan Event) error {
	return e.wm.Run(ctx, events)
}

// HandleEvent applies one event. For KeyPressed it reports whether a
// binding consumed the chord.
func (e *Engine) HandleEvent(ev Event) bool {
	return e.wm.HandleEvent(ev)
}

// Reload swaps in a new configuration, keeping current split ratios. Call it
// through HandleEvent or from the goroutine running the engine.
func (e *Engine) Reload(cfg *Config) Event {
	return app.Func(func(wm *app.WM) {
		wm.ApplyConfig(cfg)
		e.keys.SetRegistry(config.NewKeybindRegistry(cfg.Bindings, e.log))
	})
}

// State returns a snapshot of windows, workspaces and outputs.
func (e *Engine) State() State {
	return e.wm.State()
}

// Focused returns the focused window, or "".
func (e *Engine) Focused() WindowID {
	return e.wm.Focused()
}

// Terminated reports whether a terminate action ran.
func (e *Engine) Terminated() bool {
	return e.wm.Terminated()
}

// CheckInvariants verifies the manager's internal consistency.
func (e *Engine) CheckInvariants() error {
	return e.wm.CheckInvariants()
}

// NewPreview creates a terminal preview model.
func NewPreview(opts ...Option) *Model {
	options := buildOptions(opts)
	return preview.New(preview.Options{
		Config:     options.Config,
		Logger:     options.Logger,
		Outputs:    options.Outputs,
		Windows:    options.Windows,
		AltAsSuper: options.AltAsSuper,
	})
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// the preview.
func ProgramOptions() []tea.ProgramOption {
	return preview.ProgramOptions()
}
