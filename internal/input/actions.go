// Package input turns key chords into window manager operations.
package input

import (
	"io"

	"github.com/Gaurav-Gosain/tilewm/internal/app"
	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/geom"
	"github.com/charmbracelet/log"
)

// Result describes a dispatched chord.
type Result struct {
	Action config.Action
	// Changed is false when the action had nothing to act on, e.g. closing
	// with no focused window.
	Changed bool
}

// Dispatcher looks chords up in the binding table and runs their actions.
// Matching is exact; unbound chords are left for the focused client.
type Dispatcher struct {
	registry *config.KeybindRegistry
	logger   *log.Logger
}

// NewDispatcher creates a dispatcher over registry.
func NewDispatcher(registry *config.KeybindRegistry, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{registry: registry, logger: logger}
}

// SetRegistry swaps the binding table, e.g. after a config reload.
func (d *Dispatcher) SetRegistry(r *config.KeybindRegistry) { d.registry = r }

// Registry returns the current binding table.
func (d *Dispatcher) Registry() *config.KeybindRegistry { return d.registry }

// Dispatch runs the action bound to chord. The second result is false when
// nothing is bound and the chord should pass through.
func (d *Dispatcher) Dispatch(chord config.Chord, wm *app.WM) (Result, bool) {
	action, ok := d.registry.Lookup(chord)
	if !ok {
		return Result{}, false
	}
	changed := d.Execute(action, wm)
	d.logger.Debug("key dispatched", "chord", chord.String(), "action", action.String(), "changed", changed)
	return Result{Action: action, Changed: changed}, true
}

// HandleKey implements app.KeyHandler.
func (d *Dispatcher) HandleKey(chord config.Chord, wm *app.WM) bool {
	_, consumed := d.Dispatch(chord, wm)
	return consumed
}

// Execute runs a single action against wm and reports whether it changed
// anything. Exec returns as soon as the process is started.
func (d *Dispatcher) Execute(a config.Action, wm *app.WM) bool {
	var err error
	changed := true

	switch a.Kind {
	case config.ActionNone:
		return false
	case config.ActionTerminate:
		wm.Terminate()
	case config.ActionCloseFocused:
		changed = wm.CloseFocused()
	case config.ActionSwitchWorkspace:
		err = wm.SwitchWorkspace(a.Workspace)
	case config.ActionMoveToWorkspace:
		if id := wm.Focused(); id != "" {
			err = wm.MoveWindow(id, a.Workspace)
		} else {
			changed = false
		}
	case config.ActionMoveAndFollow:
		err = wm.MoveFocusedAndFollow(a.Workspace)
	case config.ActionExec:
		wm.Spawn(a.Command)
	case config.ActionToggleFloating:
		if id := wm.Focused(); id != "" {
			err = wm.ToggleFloating(id)
		} else {
			changed = false
		}
	case config.ActionToggleFullscreen:
		if id := wm.Focused(); id != "" {
			err = wm.ToggleFullscreen(id)
		} else {
			changed = false
		}
	case config.ActionFocus:
		changed = wm.FocusDirection(a.Direction)
	case config.ActionMove:
		changed = wm.MoveFocused(a.Direction)
	case config.ActionResize:
		changed = wm.ResizeFocused(a.Direction)
	case config.ActionSplitHorizontal:
		wm.Preselect(geom.Horizontal)
	case config.ActionSplitVertical:
		wm.Preselect(geom.Vertical)
	case config.ActionRotateSplit:
		changed = wm.RotateFocused()
	case config.ActionEqualizeSplits:
		wm.Equalize()
	case config.ActionNextWorkspace:
		err = wm.CycleWorkspace(1)
	case config.ActionPrevWorkspace:
		err = wm.CycleWorkspace(-1)
	case config.ActionNextWindow:
		changed = wm.CycleFocus(1)
	case config.ActionPrevWindow:
		changed = wm.CycleFocus(-1)
	default:
		d.logger.Warn("unhandled action", "action", a.String())
		return false
	}

	if err != nil {
		d.logger.Warn("action failed", "action", a.String(), "err", err)
		return false
	}
	return changed
}
