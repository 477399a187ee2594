package app

import (
	"slices"

	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/geom"
)

// Output is an attached monitor. Exactly one workspace is visible on it.
type Output struct {
	ID        OutputID
	Rect      geom.Rect
	Workspace int
}

func (m *WM) output(id OutputID) *Output {
	if id == "" {
		return nil
	}
	for _, o := range m.outputs {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// Outputs returns a copy of every attached output in attach order.
func (m *WM) Outputs() []Output {
	out := make([]Output, len(m.outputs))
	for i, o := range m.outputs {
		out[i] = *o
	}
	return out
}

// Output returns a copy of output id.
func (m *WM) Output(id OutputID) (Output, bool) {
	if o := m.output(id); o != nil {
		return *o, true
	}
	return Output{}, false
}

// FocusedOutput returns the output holding focus, or "".
func (m *WM) FocusedOutput() OutputID { return m.focusedOutput }

// AttachOutput adds an output and shows the lowest-numbered unassigned
// workspace on it, creating one if every existing workspace is visible.
// Attaching a known id is a resolution change.
func (m *WM) AttachOutput(id OutputID, r geom.Rect) error {
	if id == "" {
		return protocolErr("output_attached", "empty output id")
	}
	if r.Empty() {
		return protocolErr("output_attached", "output %q: %w", id, ErrEmptyRect)
	}

	if out := m.output(id); out != nil {
		m.log.Info("output resized", "output", id, "rect", r)
		out.Rect = r
		m.arrange(m.workspaces[out.Workspace], false)
		return nil
	}

	ws := m.unassigned()
	if ws == nil {
		return protocolErr("output_attached", "output %q: %w", id, ErrNoFreeWorkspace)
	}
	out := &Output{ID: id, Rect: r}
	m.outputs = append(m.outputs, out)
	m.show(out, ws)
	m.log.Info("output attached", "output", id, "rect", r, "workspace", ws.ID)

	if m.focusedOutput == "" {
		m.focusedOutput = id
		m.active = ws.ID
		m.focusWorkspace(ws)
	}
	return nil
}

// unassigned returns the lowest existing parked workspace, else creates the
// lowest absent one.
func (m *WM) unassigned() *Workspace {
	for _, ws := range m.workspaces {
		if ws != nil && !ws.Visible() {
			return ws
		}
	}
	for n := config.MinWorkspace; n <= config.MaxWorkspaces; n++ {
		if m.workspaces[n] == nil {
			ws, _ := m.CreateIfAbsent(n)
			return ws
		}
	}
	return nil
}

// DetachOutput parks the output's workspace. Windows are kept; focus moves
// to another output or is cleared.
func (m *WM) DetachOutput(id OutputID) error {
	out := m.output(id)
	if out == nil {
		return protocolErr("output_detached", "output %q: %w", id, ErrUnknownOutput)
	}
	ws := m.workspaces[out.Workspace]
	m.backend.UnmapWorkspace(id, ws.Windows())
	ws.Output = ""
	m.outputs = slices.DeleteFunc(m.outputs, func(o *Output) bool { return o == out })
	m.log.Info("output detached", "output", id, "parked", ws.ID)

	if m.focusedOutput != id {
		return nil
	}
	m.active = ws.ID
	if len(m.outputs) == 0 {
		m.focusedOutput = ""
		m.setFocus("")
		return nil
	}
	next := m.outputs[0]
	m.focusedOutput = next.ID
	m.active = next.Workspace
	m.focusWorkspace(m.workspaces[next.Workspace])
	return nil
}

// outputToward returns the nearest output lying entirely in direction dir
// from out.
func (m *WM) outputToward(out *Output, dir geom.Direction) *Output {
	var best *Output
	bestDist := 0
	c := out.Rect.Center()
	for _, o := range m.outputs {
		if o == out {
			continue
		}
		var dist int
		r := o.Rect
		switch dir {
		case geom.Left:
			if r.X+r.W > out.Rect.X {
				continue
			}
			dist = c.X - r.Center().X
		case geom.Right:
			if r.X < out.Rect.X+out.Rect.W {
				continue
			}
			dist = r.Center().X - c.X
		case geom.Up:
			if r.Y+r.H > out.Rect.Y {
				continue
			}
			dist = c.Y - r.Center().Y
		case geom.Down:
			if r.Y < out.Rect.Y+out.Rect.H {
				continue
			}
			dist = r.Center().Y - c.Y
		}
		if best == nil || dist < bestDist {
			best, bestDist = o, dist
		}
	}
	return best
}

// outputOf returns the output showing window id.
func (m *WM) outputOf(id WindowID) *Output {
	w := m.windows[id]
	if w == nil {
		return nil
	}
	return m.output(m.workspaces[w.Workspace].Output)
}
