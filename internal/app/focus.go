package app

import (
	"fmt"
	"slices"

	"github.com/Gaurav-Gosain/tilewm/internal/geom"
)

// Focused returns the focused window, or "" when nothing has focus.
func (m *WM) Focused() WindowID { return m.focused }

func (m *WM) setFocus(id WindowID) {
	if id == m.focused {
		return
	}
	m.focused = id
	m.backend.Focus(id)
	m.log.Debug("focus changed", "window", id)
}

// focusWindow focuses w, raising it if it floats.
func (m *WM) focusWindow(w *Window, ws *Workspace) {
	ws.touch(w.ID)
	if w.Mode == Floating {
		ws.raise(w.ID)
	}
	m.setFocus(w.ID)
}

// focusWorkspace focuses the most recent window of ws, or nothing.
func (m *WM) focusWorkspace(ws *Workspace) {
	if id := ws.Recent(); id != "" {
		m.focusWindow(m.windows[id], ws)
		return
	}
	m.setFocus("")
}

// Focus gives id keyboard focus. The window must be on a visible workspace;
// its output becomes the focused output.
func (m *WM) Focus(id WindowID) error {
	w, ok := m.windows[id]
	if !ok {
		return fmt.Errorf("focus %q: %w", id, ErrUnknownWindow)
	}
	ws := m.workspaces[w.Workspace]
	if !ws.Visible() {
		return fmt.Errorf("focus %q: workspace %d is not visible", id, ws.ID)
	}
	m.focusedOutput = ws.Output
	m.active = ws.ID
	m.focusWindow(w, ws)
	return nil
}

// FocusDirection moves focus to the window next to the focused one in dir.
// Past the edge of the workspace it crosses to the nearest output that way.
func (m *WM) FocusDirection(dir geom.Direction) bool {
	if id, ok := m.neighbor(dir); ok {
		return m.Focus(id) == nil
	}
	out := m.output(m.focusedOutput)
	if out == nil {
		return false
	}
	next := m.outputToward(out, dir)
	if next == nil {
		return false
	}
	m.focusedOutput = next.ID
	m.active = next.Workspace
	m.focusWorkspace(m.workspaces[next.Workspace])
	return true
}

// neighbor finds the window next to the focused one inside its workspace.
// Tiled windows walk the tree; floating windows pick the closest center.
func (m *WM) neighbor(dir geom.Direction) (WindowID, bool) {
	w, ok := m.windows[m.focused]
	if !ok {
		return "", false
	}
	ws := m.workspaces[w.Workspace]
	if w.Mode == Tiled {
		return ws.Tree.Neighbor(w.ID, dir)
	}
	if w.Mode == Fullscreen {
		return "", false
	}

	from := w.Geometry.Center()
	var best WindowID
	bestDist := -1
	for _, id := range ws.members {
		o := m.windows[id]
		if id == w.ID || o.Mode == Fullscreen {
			continue
		}
		c := o.Geometry.Center()
		dx, dy := c.X-from.X, c.Y-from.Y
		var along, across int
		switch dir {
		case geom.Left:
			along, across = -dx, dy
		case geom.Right:
			along, across = dx, dy
		case geom.Up:
			along, across = -dy, dx
		case geom.Down:
			along, across = dy, dx
		}
		if along <= 0 {
			continue
		}
		if across < 0 {
			across = -across
		}
		if d := along + 2*across; bestDist < 0 || d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, bestDist >= 0
}

// MoveFocused swaps the focused tiled window with its neighbor in dir, or
// nudges a floating window. A tiled window at the workspace edge moves to
// the workspace on the next output that way.
func (m *WM) MoveFocused(dir geom.Direction) bool {
	w, ok := m.windows[m.focused]
	if !ok {
		return false
	}
	ws := m.workspaces[w.Workspace]

	switch w.Mode {
	case Floating:
		area := m.area(ws)
		step := int(m.settings.resizeStep * float64(area.W))
		if dir.Axis() == geom.Vertical {
			step = int(m.settings.resizeStep * float64(area.H))
		}
		dx, dy := 0, 0
		switch dir {
		case geom.Left:
			dx = -step
		case geom.Right:
			dx = step
		case geom.Up:
			dy = -step
		case geom.Down:
			dy = step
		}
		w.floating = w.floating.Translate(dx, dy).ClampInto(area)
		m.arrange(ws, false)
		return true

	case Tiled:
		if other, ok := ws.Tree.Neighbor(w.ID, dir); ok {
			if err := ws.Tree.Swap(w.ID, other); err != nil {
				m.violate("swap", w.ID, err)
			}
			m.arrange(ws, false)
			return true
		}
		out := m.output(ws.Output)
		if out == nil {
			return false
		}
		next := m.outputToward(out, dir)
		if next == nil {
			return false
		}
		id := w.ID
		if err := m.MoveWindow(id, next.Workspace); err != nil {
			return false
		}
		return m.Focus(id) == nil
	}
	return false
}

// ResizeFocused grows the focused window toward dir: the nearest matching
// split for a tiled window, the rectangle edge for a floating one.
func (m *WM) ResizeFocused(dir geom.Direction) bool {
	w, ok := m.windows[m.focused]
	if !ok {
		return false
	}
	ws := m.workspaces[w.Workspace]

	switch w.Mode {
	case Tiled:
		if !ws.Tree.ResizeDirection(w.ID, dir, m.settings.resizeStep) {
			return false
		}
	case Floating:
		area := m.area(ws)
		r := w.floating
		dw := int(m.settings.resizeStep * float64(area.W))
		dh := int(m.settings.resizeStep * float64(area.H))
		switch dir {
		case geom.Left:
			x := max(r.X-dw, area.X)
			r.X, r.W = x, r.W+r.X-x
		case geom.Right:
			r.W = min(r.W+dw, area.X+area.W-r.X)
		case geom.Up:
			y := max(r.Y-dh, area.Y)
			r.Y, r.H = y, r.H+r.Y-y
		case geom.Down:
			r.H = min(r.H+dh, area.Y+area.H-r.Y)
		}
		w.floating = r.ClampInto(area)
	default:
		return false
	}
	m.arrange(ws, false)
	return true
}

// Preselect forces the axis of the next split in the current workspace.
func (m *WM) Preselect(axis geom.Axis) {
	ws := m.Current()
	ws.preselect = &axis
	m.log.Debug("split preselected", "workspace", ws.ID, "axis", axis)
}

// RotateFocused flips the axis of the split holding the focused window.
func (m *WM) RotateFocused() bool {
	w, ok := m.windows[m.focused]
	if !ok || w.Mode != Tiled {
		return false
	}
	ws := m.workspaces[w.Workspace]
	if !ws.Tree.Rotate(w.ID) {
		return false
	}
	m.arrange(ws, false)
	return true
}

// Equalize resets every split of the current workspace to the default
// ratio.
func (m *WM) Equalize() {
	ws := m.Current()
	ws.Tree.Equalize()
	m.arrange(ws, false)
}

// CycleFocus moves focus delta windows along the current workspace in the
// order windows joined it.
func (m *WM) CycleFocus(delta int) bool {
	ws := m.Current()
	n := len(ws.members)
	if n == 0 {
		return false
	}
	i := slices.Index(ws.members, m.focused)
	if i < 0 {
		i = 0
	} else {
		i = ((i+delta)%n + n) % n
	}
	return m.Focus(ws.members[i]) == nil
}

// CloseFocused asks the backend to close the focused window.
func (m *WM) CloseFocused() bool {
	if m.focused == "" {
		return false
	}
	m.backend.Close(m.focused)
	return true
}
