// Package app is the window manager core: window modes, workspaces, outputs
// and focus, driven by backend events on a single goroutine.
package app

import (
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/geom"
	"github.com/Gaurav-Gosain/tilewm/internal/layout"
	"github.com/charmbracelet/log"
)

// WindowID identifies a client surface.
type WindowID = layout.WindowID

// OutputID identifies a monitor.
type OutputID string

// Options configures a WM.
type Options struct {
	Backend Backend
	Logger  *log.Logger
	// Config supplies layout settings and rules. Nil means defaults.
	Config *config.UserConfig
	// Env is appended to the environment of spawned processes.
	Env []string
	// Paranoid runs CheckInvariants after every event.
	Paranoid bool
}

type settings struct {
	splitRatio      float64
	resizeStep      float64
	gaps            int
	orientation     string
	floatSize       geom.Size
	focusOnCreation bool
	rules           []config.RuleConfig
	names           map[string]string
}

func settingsFrom(cfg *config.UserConfig) settings {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := settings{
		splitRatio:      cfg.Layout.SplitRatio,
		resizeStep:      cfg.Layout.ResizeStep,
		gaps:            cfg.Layout.Gaps,
		orientation:     strings.ToLower(cfg.Layout.Orientation),
		floatSize:       geom.Size{W: cfg.Floating.DefaultWidth, H: cfg.Floating.DefaultHeight},
		focusOnCreation: cfg.FocusOnCreation(),
		rules:           cfg.Rules,
		names:           cfg.Workspaces,
	}
	if s.splitRatio == 0 {
		s.splitRatio = config.DefaultSplitRatio
	}
	if s.resizeStep == 0 {
		s.resizeStep = config.DefaultResizeStep
	}
	if s.floatSize.W <= 0 || s.floatSize.H <= 0 {
		s.floatSize = geom.Size{W: config.DefaultFloatingWidth, H: config.DefaultFloatingHeight}
	}
	return s
}

// WM is the window manager context. It is not safe for concurrent use; every
// call must come from the goroutine running the event loop.
type WM struct {
	backend  Backend
	log      *log.Logger
	keys     KeyHandler
	settings settings
	env      []string
	paranoid bool

	windows    map[WindowID]*Window
	workspaces [config.MaxWorkspaces + 1]*Workspace
	outputs    []*Output

	focused       WindowID
	focusedOutput OutputID
	// active is the workspace new windows join while no output is focused.
	active     int
	terminated bool
}

// New returns a manager with no outputs and no windows.
func New(opts Options) *WM {
	if opts.Backend == nil {
		panic("app: nil backend")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &WM{
		backend:  opts.Backend,
		log:      logger,
		settings: settingsFrom(opts.Config),
		env:      opts.Env,
		paranoid: opts.Paranoid,
		windows:  make(map[WindowID]*Window),
		active:   config.MinWorkspace,
	}
}

// SetKeyHandler installs the chord dispatcher.
func (m *WM) SetKeyHandler(h KeyHandler) { m.keys = h }

// Logger returns the manager's logger.
func (m *WM) Logger() *log.Logger { return m.log }

// Terminated reports whether a terminate action ran.
func (m *WM) Terminated() bool { return m.terminated }

// ApplyConfig swaps in new layout settings and re-lays out visible
// workspaces. Existing split ratios are kept.
func (m *WM) ApplyConfig(cfg *config.UserConfig) {
	m.settings = settingsFrom(cfg)
	for _, ws := range m.workspaces {
		if ws == nil {
			continue
		}
		ws.Tree.SetDefaultRatio(m.settings.splitRatio)
		ws.Name = m.settings.names[strconv.Itoa(ws.ID)]
		if ws.Visible() {
			m.arrange(ws, false)
		}
	}
	m.log.Info("configuration applied", "gaps", m.settings.gaps, "split_ratio", m.settings.splitRatio)
}

// Spawn starts command detached from the manager. A failure is logged and
// changes nothing.
func (m *WM) Spawn(command string) {
	if err := m.backend.SpawnProcess(command, m.env); err != nil {
		m.log.Error("failed to spawn process", "command", command, "err", err)
		return
	}
	m.log.Debug("spawned", "command", command)
}

// Terminate asks the backend to shut down and stops Run.
func (m *WM) Terminate() {
	if m.terminated {
		return
	}
	m.terminated = true
	m.log.Info("terminating")
	m.backend.Terminate()
}

// ruleMode returns the default mode for appHint from the rule table.
func (m *WM) ruleMode(appHint string) Mode {
	for _, r := range m.settings.rules {
		if r.App == appHint {
			return parseModeOr(r.Mode, Tiled)
		}
		if ok, err := path.Match(r.App, appHint); err == nil && ok {
			return parseModeOr(r.Mode, Tiled)
		}
	}
	return Tiled
}

// commit sends r for id unless it is already the committed rectangle.
func (m *WM) commit(id WindowID, r geom.Rect, force bool) {
	w := m.windows[id]
	if w == nil {
		return
	}
	if !force && w.committed && w.Geometry == r {
		return
	}
	w.Geometry = r
	w.committed = true
	m.backend.CommitGeometry(id, r)
}

// arrange lays ws out on its output and commits every rectangle that
// changed. Parked workspaces are skipped until they become visible.
func (m *WM) arrange(ws *Workspace, force bool) {
	out := m.output(ws.Output)
	if out == nil {
		return
	}
	if ws.bounds != out.Rect {
		if !ws.bounds.Empty() {
			dx, dy := out.Rect.X-ws.bounds.X, out.Rect.Y-ws.bounds.Y
			for _, id := range ws.Floating {
				w := m.windows[id]
				w.floating = w.floating.Translate(dx, dy).ClampInto(out.Rect)
			}
		}
		ws.bounds = out.Rect
	}

	rects := ws.Tree.ComputeGeometries(out.Rect)
	for _, id := range ws.Tree.Leaves() {
		m.commit(id, rects[id].Inset(m.settings.gaps), force)
	}
	for _, id := range ws.Floating {
		w := m.windows[id]
		if !w.hasFloating {
			m.placeFloating(w, out.Rect)
		}
		m.commit(id, w.floating, force)
	}
	if ws.Fullscreen != "" {
		m.commit(ws.Fullscreen, out.Rect, force)
	}
}

// area is the rectangle ws is laid out against: its output, the last output
// it was shown on, or the first attached output.
func (m *WM) area(ws *Workspace) geom.Rect {
	if out := m.output(ws.Output); out != nil {
		return out.Rect
	}
	if !ws.bounds.Empty() {
		return ws.bounds
	}
	if len(m.outputs) > 0 {
		return m.outputs[0].Rect
	}
	return geom.Rect{}
}
