// Package preview runs the window manager inside a terminal: outputs are
// regions of the screen, windows are bordered boxes and exec bindings open
// simulated surfaces.
package preview

import (
	"fmt"
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tilewm/internal/app"
	"github.com/Gaurav-Gosain/tilewm/internal/backend"
	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/geom"
	"github.com/Gaurav-Gosain/tilewm/internal/input"
	"github.com/charmbracelet/log"
)

// quitChord leaves the preview unless a binding claims it.
var quitChord = config.MustParseChord("ctrl+c")

// statusHeight is the number of rows reserved for the status line.
const statusHeight = 1

// MaxOutputs bounds how many side-by-side outputs the preview simulates.
const MaxOutputs = 4

// Options configures a preview model.
type Options struct {
	Config *config.UserConfig
	Logger *log.Logger
	// Outputs splits the terminal into this many outputs, left to right.
	Outputs int
	// AltAsSuper reports alt as super; most terminals never send super.
	AltAsSuper bool
	// ASCII draws borders without box glyphs. See NeedsASCII.
	ASCII bool
	// Spawner, when set, also starts the real process for exec actions.
	Spawner *backend.Spawner
	// Windows is the number of simulated windows mapped at start.
	Windows int
}

// ConfigReloadedMsg carries a freshly loaded config into the event loop.
type ConfigReloadedMsg struct {
	Config *config.UserConfig
}

// Model is the bubbletea model owning the manager. Every manager call
// happens inside Update, so the manager stays single-threaded.
type Model struct {
	wm      *app.WM
	keys    *input.Dispatcher
	backend *Backend
	logger  *log.Logger

	outputs    int
	altAsSuper bool
	ascii      bool
	initial    int

	width, height int
	lastKey       string
	notice        string
}

// New creates a preview model. The terminal size arrives with the first
// WindowSizeMsg.
func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	outputs := min(max(opts.Outputs, 1), MaxOutputs)

	b := NewBackend(logger, opts.Spawner)
	wm := app.New(app.Options{Backend: b, Logger: logger, Config: cfg})
	keys := input.NewDispatcher(config.NewKeybindRegistry(cfg.Bindings, logger), logger)
	wm.SetKeyHandler(keys)

	return &Model{
		wm:         wm,
		keys:       keys,
		backend:    b,
		logger:     logger,
		outputs:    outputs,
		altAsSuper: opts.AltAsSuper,
		ascii:      config.UseASCIIOnly || opts.ASCII,
		initial:    opts.Windows,
	}
}

// WM exposes the manager for inspection.
func (m *Model) WM() *app.WM { return m.wm }

// Backend exposes the simulated backend.
func (m *Model) Backend() *Backend { return m.backend }

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyPressMsg:
		m.handleKey(msg)

	case ConfigReloadedMsg:
		m.wm.HandleEvent(app.Func(func(wm *app.WM) { wm.ApplyConfig(msg.Config) }))
		m.keys.SetRegistry(config.NewKeybindRegistry(msg.Config.Bindings, m.logger))
		m.notice = "config reloaded"
	}

	m.settle()
	if m.wm.Terminated() {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) {
	chord, ok := input.ChordFromKey(msg, input.KeyOptions{AltAsSuper: m.altAsSuper})
	if !ok {
		return
	}
	m.lastKey = chord.String()
	m.notice = ""

	if m.wm.HandleEvent(app.KeyPressed{Mods: chord.Mods, Key: chord.Key}) {
		return
	}
	if chord == quitChord {
		m.wm.Terminate()
		return
	}
	m.backend.Type(m.wm.Focused(), keyText(msg))
}

// settle feeds queued backend follow-ups (new surfaces, unmaps after close)
// back into the manager.
func (m *Model) settle() {
	m.backend.Drain(m.wm)
}

// resize lays the outputs out side by side above the status line. Outputs
// that no longer fit are detached.
func (m *Model) resize(width, height int) {
	first := m.width == 0 && m.height == 0
	m.width, m.height = width, height

	area := geom.R(0, 0, width, height-statusHeight)
	for i := range MaxOutputs {
		id := outputID(i)
		_, attached := m.wm.Output(id)

		x0, x1 := i*area.W/m.outputs, (i+1)*area.W/m.outputs
		r := geom.R(x0, 0, x1-x0, area.H)
		if i >= m.outputs || r.Empty() {
			if attached {
				m.wm.HandleEvent(app.OutputDetached{ID: id})
			}
			continue
		}
		m.wm.HandleEvent(app.OutputAttached{ID: id, Rect: r})
	}

	if first {
		for range m.initial {
			m.backend.Queue(app.SurfaceMapped{ID: NewSurfaceID(), AppHint: "terminal"})
		}
	}
}

func outputID(i int) app.OutputID {
	return app.OutputID(fmt.Sprintf("%s%d", config.PreviewOutputPrefix, i))
}

func keyText(msg tea.KeyPressMsg) string {
	switch msg.Code {
	case tea.KeyEnter:
		return "⏎"
	case tea.KeySpace:
		return " "
	}
	return msg.Text
}
