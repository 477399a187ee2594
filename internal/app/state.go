package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Gaurav-Gosain/tilewm/internal/geom"
	"github.com/Gaurav-Gosain/tilewm/internal/layout"
)

// State is a point-in-time dump of the manager, used by the tape runner,
// the preview status line and `--dump-state`.
type State struct {
	Focused       WindowID         `json:"focused" yaml:"focused"`
	FocusedOutput OutputID         `json:"focused_output" yaml:"focused_output"`
	Outputs       []OutputState    `json:"outputs" yaml:"outputs"`
	Workspaces    []WorkspaceState `json:"workspaces" yaml:"workspaces"`
	Windows       []WindowState    `json:"windows" yaml:"windows"`
}

// OutputState describes one output.
type OutputState struct {
	ID        OutputID  `json:"id" yaml:"id"`
	Rect      geom.Rect `json:"rect" yaml:"rect"`
	Workspace int       `json:"workspace" yaml:"workspace"`
}

// WorkspaceState describes one created workspace.
type WorkspaceState struct {
	ID         int                    `json:"id" yaml:"id"`
	Name       string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Output     OutputID               `json:"output,omitempty" yaml:"output,omitempty"`
	Layout     *layout.SerializedNode `json:"layout,omitempty" yaml:"layout,omitempty"`
	Floating   []WindowID             `json:"floating,omitempty" yaml:"floating,omitempty"`
	Fullscreen WindowID               `json:"fullscreen,omitempty" yaml:"fullscreen,omitempty"`
}

// WindowState describes one window.
type WindowState struct {
	ID        WindowID  `json:"id" yaml:"id"`
	AppHint   string    `json:"app,omitempty" yaml:"app,omitempty"`
	Mode      string    `json:"mode" yaml:"mode"`
	Workspace int       `json:"workspace" yaml:"workspace"`
	Geometry  geom.Rect `json:"geometry" yaml:"geometry"`
}

// State returns a snapshot of outputs, workspaces and windows.
func (m *WM) State() State {
	s := State{Focused: m.focused, FocusedOutput: m.focusedOutput}
	for _, o := range m.outputs {
		s.Outputs = append(s.Outputs, OutputState{ID: o.ID, Rect: o.Rect, Workspace: o.Workspace})
	}
	for _, ws := range m.Workspaces() {
		s.Workspaces = append(s.Workspaces, WorkspaceState{
			ID:         ws.ID,
			Name:       ws.Name,
			Output:     ws.Output,
			Layout:     ws.Tree.Serialize(),
			Floating:   slices.Clone(ws.Floating),
			Fullscreen: ws.Fullscreen,
		})
	}
	for _, w := range m.windows {
		s.Windows = append(s.Windows, WindowState{
			ID:        w.ID,
			AppHint:   w.AppHint,
			Mode:      w.Mode.String(),
			Workspace: w.Workspace,
			Geometry:  w.Geometry,
		})
	}
	slices.SortFunc(s.Windows, func(a, b WindowState) int { return strings.Compare(string(a.ID), string(b.ID)) })
	return s
}

// Stacking returns the windows shown on output from bottom to top: tiled
// windows, then the floating stack, then the fullscreen window.
func (m *WM) Stacking(output OutputID) []Window {
	out := m.output(output)
	if out == nil {
		return nil
	}
	ws := m.workspaces[out.Workspace]
	var stack []Window
	for _, id := range ws.Tree.Leaves() {
		stack = append(stack, *m.windows[id])
	}
	for _, id := range ws.Floating {
		stack = append(stack, *m.windows[id])
	}
	if ws.Fullscreen != "" {
		stack = append(stack, *m.windows[ws.Fullscreen])
	}
	return stack
}

// CheckInvariants cross-checks the window table against every tree, stack
// and output. It returns every mismatch found.
func (m *WM) CheckInvariants() error {
	var errs []error
	bad := func(format string, args ...any) { errs = append(errs, fmt.Errorf(format, args...)) }

	counts := make(map[int]map[Mode]int)
	for id, w := range m.windows {
		ws := m.workspaces[w.Workspace]
		if ws == nil {
			bad("window %q on missing workspace %d", id, w.Workspace)
			continue
		}
		if counts[ws.ID] == nil {
			counts[ws.ID] = make(map[Mode]int)
		}
		counts[ws.ID][w.Mode]++
		if !slices.Contains(ws.members, id) {
			bad("window %q not a member of workspace %d", id, ws.ID)
		}
		switch w.Mode {
		case Tiled:
			if !ws.Tree.Contains(id) {
				bad("tiled window %q has no leaf", id)
			}
		case Floating:
			if !slices.Contains(ws.Floating, id) {
				bad("floating window %q not on stack", id)
			}
		case Fullscreen:
			if ws.Fullscreen != id || w.full == nil {
				bad("fullscreen window %q not recorded on workspace %d", id, ws.ID)
			}
		}
	}

	for _, ws := range m.Workspaces() {
		if err := ws.Tree.Validate(); err != nil {
			bad("workspace %d: %w", ws.ID, err)
		}
		if got, want := ws.Tree.Len(), counts[ws.ID][Tiled]; got != want {
			bad("workspace %d has %d leaves for %d tiled windows", ws.ID, got, want)
		}
		if got, want := len(ws.Floating), counts[ws.ID][Floating]; got != want {
			bad("workspace %d stacks %d floating windows, %d exist", ws.ID, got, want)
		}
		if len(ws.members) != len(ws.history) {
			bad("workspace %d focus history out of sync", ws.ID)
		}
		if ws.Visible() {
			if out := m.output(ws.Output); out == nil || out.Workspace != ws.ID {
				bad("workspace %d claims output %q", ws.ID, ws.Output)
			}
		}
	}

	for _, o := range m.outputs {
		ws := m.workspaces[o.Workspace]
		if ws == nil || ws.Output != o.ID {
			bad("output %q shows workspace %d which does not point back", o.ID, o.Workspace)
		}
	}

	if m.focused != "" {
		w, ok := m.windows[m.focused]
		if !ok {
			bad("focused window %q is not managed", m.focused)
		} else if !m.workspaces[w.Workspace].Visible() {
			bad("focused window %q is on a parked workspace", m.focused)
		}
	}
	return errors.Join(errs...)
}
