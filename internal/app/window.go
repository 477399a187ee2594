package app

import (
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/tilewm/internal/geom"
	"github.com/Gaurav-Gosain/tilewm/internal/layout"
)

// Mode is a window's placement state.
type Mode int

const (
	// Tiled windows own a leaf of their workspace's tree.
	Tiled Mode = iota
	// Floating windows sit on the workspace's floating stack.
	Floating
	// Fullscreen windows cover their output and are in neither.
	Fullscreen
)

func (m Mode) String() string {
	switch m {
	case Tiled:
		return "tiled"
	case Floating:
		return "floating"
	case Fullscreen:
		return "fullscreen"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode parses "tiled", "floating" or "fullscreen".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tiled":
		return Tiled, nil
	case "floating":
		return Floating, nil
	case "fullscreen":
		return Fullscreen, nil
	}
	return Tiled, fmt.Errorf("unknown window mode %q", s)
}

func parseModeOr(s string, def Mode) Mode {
	if m, err := ParseMode(s); err == nil {
		return m
	}
	return def
}

// Window is a managed client surface.
type Window struct {
	ID        WindowID
	AppHint   string
	Mode      Mode
	Workspace int
	// Geometry is the last rectangle committed to the backend.
	Geometry geom.Rect

	committed   bool
	floating    geom.Rect
	hasFloating bool
	full        *fullscreenSnapshot
}

// fullscreenSnapshot is what a window needs to leave fullscreen exactly as
// it entered.
type fullscreenSnapshot struct {
	prev   Mode
	anchor layout.Anchor
	rect   geom.Rect
}

// FloatingRect returns the remembered floating rectangle.
func (w Window) FloatingRect() (geom.Rect, bool) {
	return w.floating, w.hasFloating
}

// RestoreMode returns the mode a fullscreen window goes back to.
func (w Window) RestoreMode() (Mode, bool) {
	if w.full == nil {
		return w.Mode, false
	}
	return w.full.prev, true
}

// Window returns a copy of the window's state.
func (m *WM) Window(id WindowID) (Window, bool) {
	w, ok := m.windows[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// Len returns the number of managed windows.
func (m *WM) Len() int { return len(m.windows) }

// SetMode moves id into mode. Leaving fullscreen always goes through the
// remembered mode first so the window returns to its old tree position.
func (m *WM) SetMode(id WindowID, mode Mode) error {
	w, ok := m.windows[id]
	if !ok {
		return fmt.Errorf("set mode of %q: %w", id, ErrUnknownWindow)
	}
	if w.Mode == mode {
		return nil
	}
	ws := m.workspaces[w.Workspace]

	if w.Mode == Fullscreen {
		m.exitFullscreen(w, ws)
		if w.Mode == mode {
			m.arrange(ws, false)
			return nil
		}
	}

	switch mode {
	case Floating:
		m.float(w, ws)
	case Tiled:
		m.sink(w, ws)
	case Fullscreen:
		m.enterFullscreen(w, ws)
	}
	m.log.Debug("mode changed", "window", id, "mode", w.Mode)
	m.arrange(ws, false)
	return nil
}

// ToggleFloating flips id between tiled and floating. A fullscreen window
// is restored first.
func (m *WM) ToggleFloating(id WindowID) error {
	w, ok := m.windows[id]
	if !ok {
		return fmt.Errorf("toggle floating of %q: %w", id, ErrUnknownWindow)
	}
	mode := w.Mode
	if mode == Fullscreen {
		mode = w.full.prev
	}
	if mode == Floating {
		return m.SetMode(id, Tiled)
	}
	return m.SetMode(id, Floating)
}

// ToggleFullscreen enters or leaves fullscreen.
func (m *WM) ToggleFullscreen(id WindowID) error {
	w, ok := m.windows[id]
	if !ok {
		return fmt.Errorf("toggle fullscreen of %q: %w", id, ErrUnknownWindow)
	}
	if w.Mode == Fullscreen {
		return m.SetMode(id, w.full.prev)
	}
	return m.SetMode(id, Fullscreen)
}

// float takes a tiled window out of the tree and onto the floating stack.
func (m *WM) float(w *Window, ws *Workspace) {
	if err := ws.Tree.Remove(w.ID); err != nil {
		m.violate("float", w.ID, err)
	}
	m.pushFloating(w, ws)
}

// pushFloating places w on top of the floating stack at its remembered
// rectangle, or centered at the default size.
func (m *WM) pushFloating(w *Window, ws *Workspace) {
	area := m.area(ws)
	if !area.Empty() {
		m.placeFloating(w, area)
	}
	ws.Floating = append(ws.Floating, w.ID)
	w.Mode = Floating
}

// placeFloating gives w its default centered rectangle the first time it
// floats against a non-empty area, then keeps it inside area.
func (m *WM) placeFloating(w *Window, area geom.Rect) {
	if !w.hasFloating {
		w.floating = geom.Centered(area, m.settings.floatSize)
		w.hasFloating = true
	}
	w.floating = w.floating.ClampInto(area)
}

// sink moves a floating window into the tree at the workspace's most
// recently focused tiled window. The floating rectangle is kept.
func (m *WM) sink(w *Window, ws *Workspace) {
	if !ws.removeFloating(w.ID) {
		m.violate("sink", w.ID, fmt.Errorf("not on floating stack of workspace %d", ws.ID))
	}
	m.tile(ws, w.ID)
	w.Mode = Tiled
}

// tile inserts id into ws's tree next to the most recent tiled window.
func (m *WM) tile(ws *Workspace, id WindowID) {
	if area := m.area(ws); ws.Tree.Bounds() != area {
		ws.Tree.ComputeGeometries(area)
	}
	target := m.lastTiled(ws, id)

	var err error
	if axis, ok := m.splitAxis(ws); ok {
		err = ws.Tree.InsertAxis(id, target, axis)
	} else {
		err = ws.Tree.Insert(id, target)
	}
	ws.preselect = nil
	if err != nil {
		m.violate("tile", id, err)
	}
}

// splitAxis returns the forced axis for the next insert in ws: a preselected
// axis, then the configured orientation. Auto lets the tree pick.
func (m *WM) splitAxis(ws *Workspace) (geom.Axis, bool) {
	if ws.preselect != nil {
		return *ws.preselect, true
	}
	if m.settings.orientation == "" || m.settings.orientation == "auto" {
		return geom.Horizontal, false
	}
	axis, err := geom.ParseAxis(m.settings.orientation)
	return axis, err == nil
}

// lastTiled returns the most recently focused tiled window of ws other than
// exclude, or "" to split the root.
func (m *WM) lastTiled(ws *Workspace, exclude WindowID) WindowID {
	for i := len(ws.history) - 1; i >= 0; i-- {
		id := ws.history[i]
		if id != exclude && ws.Tree.Contains(id) {
			return id
		}
	}
	return ""
}

// enterFullscreen snapshots w's placement and detaches it. A workspace holds
// at most one fullscreen window; the previous one is restored.
func (m *WM) enterFullscreen(w *Window, ws *Workspace) {
	if ws.Fullscreen != "" && ws.Fullscreen != w.ID {
		m.exitFullscreen(m.windows[ws.Fullscreen], ws)
	}

	snap := &fullscreenSnapshot{prev: w.Mode, rect: w.Geometry}
	switch w.Mode {
	case Tiled:
		anchor, err := ws.Tree.Detach(w.ID)
		if err != nil {
			m.violate("fullscreen", w.ID, err)
		}
		snap.anchor = anchor
		snap.rect = anchor.Rect
	case Floating:
		if !ws.removeFloating(w.ID) {
			m.violate("fullscreen", w.ID, fmt.Errorf("not on floating stack of workspace %d", ws.ID))
		}
		snap.rect = w.floating
	}
	w.full = snap
	w.Mode = Fullscreen
	ws.Fullscreen = w.ID
}

// exitFullscreen puts w back where the snapshot says: the same tree slot for
// a tiled window, the same rectangle for a floating one.
func (m *WM) exitFullscreen(w *Window, ws *Workspace) {
	snap := w.full
	w.full = nil
	if ws.Fullscreen == w.ID {
		ws.Fullscreen = ""
	}

	switch snap.prev {
	case Tiled:
		exact, err := ws.Tree.Reattach(w.ID, snap.anchor, m.lastTiled(ws, w.ID))
		if err != nil {
			m.violate("unfullscreen", w.ID, err)
		}
		if !exact {
			m.log.Debug("fullscreen anchor gone, inserted at focus", "window", w.ID)
		}
	case Floating:
		w.floating = snap.rect
		w.hasFloating = !snap.rect.Empty()
		ws.Floating = append(ws.Floating, w.ID)
	}
	w.Mode = snap.prev
}

// detach removes w from ws according to its mode. Missing placement is an
// invariant violation.
func (m *WM) detach(w *Window, ws *Workspace, op string) {
	switch w.Mode {
	case Tiled:
		if err := ws.Tree.Remove(w.ID); err != nil {
			m.violate(op, w.ID, err)
		}
	case Floating:
		if !ws.removeFloating(w.ID) {
			m.violate(op, w.ID, fmt.Errorf("not on floating stack of workspace %d", ws.ID))
		}
	case Fullscreen:
		if ws.Fullscreen != w.ID {
			m.violate(op, w.ID, fmt.Errorf("workspace %d fullscreen is %q", ws.ID, ws.Fullscreen))
		}
		ws.Fullscreen = ""
		w.full = nil
	}
}
