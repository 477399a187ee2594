package app

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/geom"
	"github.com/Gaurav-Gosain/tilewm/internal/layout"
)

// Workspace is a tiled tree plus a floating stack. It is visible on at most
// one output; otherwise it is parked and keeps its windows.
type Workspace struct {
	ID   int
	Name string
	Tree *layout.Tree
	// Floating is the stacking order, bottom first.
	Floating   []WindowID
	Fullscreen WindowID
	// Output is the output showing the workspace, "" when parked.
	Output OutputID

	members   []WindowID
	history   []WindowID
	preselect *geom.Axis
	bounds    geom.Rect
}

// Visible reports whether an output shows the workspace.
func (ws *Workspace) Visible() bool { return ws.Output != "" }

// Windows returns the member windows in the order they joined.
func (ws *Workspace) Windows() []WindowID { return slices.Clone(ws.members) }

// Len returns the number of member windows.
func (ws *Workspace) Len() int { return len(ws.members) }

// Empty reports whether the workspace has no windows.
func (ws *Workspace) Empty() bool { return len(ws.members) == 0 }

// Recent returns the most recently focused window, or "".
func (ws *Workspace) Recent() WindowID {
	if n := len(ws.history); n > 0 {
		return ws.history[n-1]
	}
	return ""
}

func (ws *Workspace) join(id WindowID) {
	if !slices.Contains(ws.members, id) {
		ws.members = append(ws.members, id)
	}
}

// touch marks id as the most recently focused window.
func (ws *Workspace) touch(id WindowID) {
	ws.history = slices.DeleteFunc(ws.history, func(h WindowID) bool { return h == id })
	ws.history = append(ws.history, id)
}

// remember records id as the least recently focused window.
func (ws *Workspace) remember(id WindowID) {
	if !slices.Contains(ws.history, id) {
		ws.history = slices.Insert(ws.history, 0, id)
	}
}

func (ws *Workspace) forget(id WindowID) {
	match := func(h WindowID) bool { return h == id }
	ws.members = slices.DeleteFunc(ws.members, match)
	ws.history = slices.DeleteFunc(ws.history, match)
}

func (ws *Workspace) removeFloating(id WindowID) bool {
	i := slices.Index(ws.Floating, id)
	if i < 0 {
		return false
	}
	ws.Floating = slices.Delete(ws.Floating, i, i+1)
	return true
}

// raise moves a floating window to the top of the stack.
func (ws *Workspace) raise(id WindowID) {
	if ws.removeFloating(id) {
		ws.Floating = append(ws.Floating, id)
	}
}

func validWorkspace(n int) error {
	if n < config.MinWorkspace || n > config.MaxWorkspaces {
		return fmt.Errorf("workspace %d: %w", n, ErrBadWorkspace)
	}
	return nil
}

// CreateIfAbsent returns workspace n, creating it on first reference.
// Workspaces are never destroyed.
func (m *WM) CreateIfAbsent(n int) (*Workspace, error) {
	if err := validWorkspace(n); err != nil {
		return nil, err
	}
	if ws := m.workspaces[n]; ws != nil {
		return ws, nil
	}
	ws := &Workspace{
		ID:   n,
		Name: m.settings.names[strconv.Itoa(n)],
		Tree: layout.New(m.settings.splitRatio),
	}
	m.workspaces[n] = ws
	m.log.Debug("workspace created", "workspace", n)
	return ws, nil
}

// Workspace returns workspace n if it has been created.
func (m *WM) Workspace(n int) (*Workspace, bool) {
	if validWorkspace(n) != nil || m.workspaces[n] == nil {
		return nil, false
	}
	return m.workspaces[n], true
}

// Workspaces returns every created workspace in id order.
func (m *WM) Workspaces() []*Workspace {
	var out []*Workspace
	for _, ws := range m.workspaces {
		if ws != nil {
			out = append(out, ws)
		}
	}
	return out
}

// Current returns the workspace new windows join: the one on the focused
// output, or the last active one while no output is attached.
func (m *WM) Current() *Workspace {
	if out := m.output(m.focusedOutput); out != nil {
		return m.workspaces[out.Workspace]
	}
	ws, _ := m.CreateIfAbsent(m.active)
	return ws
}

// SwitchActive shows workspace n on output. The previously visible workspace
// is unmapped with its tree untouched. If n is visible elsewhere it moves
// here and the other output gets a placeholder workspace.
func (m *WM) SwitchActive(output OutputID, n int) error {
	out := m.output(output)
	if out == nil {
		return fmt.Errorf("switch %q to workspace %d: %w", output, n, ErrUnknownOutput)
	}
	target, err := m.CreateIfAbsent(n)
	if err != nil {
		return err
	}
	if out.Workspace == n {
		return nil
	}

	var other *Output
	var placeholder *Workspace
	if target.Visible() {
		other = m.output(target.Output)
		placeholder = m.placeholder(out.Workspace)
		if placeholder == nil {
			return fmt.Errorf("move workspace %d to %q: %w", n, output, ErrNoFreeWorkspace)
		}
	}

	prev := m.workspaces[out.Workspace]
	m.backend.UnmapWorkspace(out.ID, prev.Windows())
	prev.Output = ""

	if other != nil {
		m.backend.UnmapWorkspace(other.ID, target.Windows())
		m.show(other, placeholder)
		if m.focusedOutput == other.ID {
			m.focusWorkspace(placeholder)
		}
	}

	m.show(out, target)
	if m.focusedOutput == out.ID {
		m.active = n
		m.focusWorkspace(target)
	}
	m.log.Debug("workspace switched", "output", output, "from", prev.ID, "to", n)
	return nil
}

// show maps ws on out and commits every window.
func (m *WM) show(out *Output, ws *Workspace) {
	out.Workspace = ws.ID
	ws.Output = out.ID
	m.backend.MapWorkspace(out.ID, ws.Windows())
	m.arrange(ws, true)
}

// placeholder picks the workspace an output falls back to: the lowest
// unassigned empty one, a new one, or any unassigned one. skip is about to be
// parked and is not eligible.
func (m *WM) placeholder(skip int) *Workspace {
	for _, ws := range m.workspaces {
		if ws != nil && ws.ID != skip && !ws.Visible() && ws.Empty() {
			return ws
		}
	}
	for n := config.MinWorkspace; n <= config.MaxWorkspaces; n++ {
		if m.workspaces[n] == nil {
			ws, _ := m.CreateIfAbsent(n)
			return ws
		}
	}
	for _, ws := range m.workspaces {
		if ws != nil && ws.ID != skip && !ws.Visible() {
			return ws
		}
	}
	return nil
}

// SwitchWorkspace shows n on the focused output.
func (m *WM) SwitchWorkspace(n int) error {
	if m.focusedOutput == "" {
		if _, err := m.CreateIfAbsent(n); err != nil {
			return err
		}
		m.active = n
		return nil
	}
	return m.SwitchActive(m.focusedOutput, n)
}

// CycleWorkspace switches by delta, wrapping within 1..32.
func (m *WM) CycleWorkspace(delta int) error {
	span := config.MaxWorkspaces - config.MinWorkspace + 1
	cur := m.Current().ID - config.MinWorkspace
	next := ((cur+delta)%span+span)%span + config.MinWorkspace
	return m.SwitchWorkspace(next)
}

// MoveWindow moves id onto workspace n. A fullscreen window is restored
// first. Visible workspaces are re-laid out; a window moved onto a parked
// workspace is hidden and laid out when that workspace is shown.
func (m *WM) MoveWindow(id WindowID, n int) error {
	w, ok := m.windows[id]
	if !ok {
		return fmt.Errorf("move %q to workspace %d: %w", id, n, ErrUnknownWindow)
	}
	target, err := m.CreateIfAbsent(n)
	if err != nil {
		return err
	}
	src := m.workspaces[w.Workspace]
	if src == target {
		return nil
	}

	if w.Mode == Fullscreen {
		m.exitFullscreen(w, src)
	}
	m.detach(w, src, "move")
	src.forget(id)

	w.Workspace = n
	target.join(id)
	target.touch(id)
	switch w.Mode {
	case Tiled:
		m.tile(target, id)
	case Floating:
		from, to := m.area(src), m.area(target)
		if !from.Empty() && !to.Empty() {
			w.floating = w.floating.Translate(to.X-from.X, to.Y-from.Y).ClampInto(to)
		}
		target.Floating = append(target.Floating, id)
	}

	if src.Visible() {
		m.arrange(src, false)
	}
	if target.Visible() {
		m.arrange(target, false)
		if !src.Visible() {
			m.backend.MapWindow(id)
		}
	} else {
		w.committed = false
		m.backend.UnmapWindow(id)
	}

	if m.focused == id {
		m.focusWorkspace(src)
	}
	m.log.Debug("window moved", "window", id, "from", src.ID, "to", n)
	return nil
}

// MoveFocusedAndFollow moves the focused window to n and shows n.
func (m *WM) MoveFocusedAndFollow(n int) error {
	id := m.focused
	if id == "" {
		return m.SwitchWorkspace(n)
	}
	if err := m.MoveWindow(id, n); err != nil {
		return err
	}
	if err := m.SwitchWorkspace(n); err != nil {
		return err
	}
	return m.Focus(id)
}
