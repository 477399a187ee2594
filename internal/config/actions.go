package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/tilewm/internal/geom"
)

// ActionKind tags the Action variant.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionTerminate
	ActionCloseFocused
	ActionSwitchWorkspace
	ActionMoveToWorkspace
	ActionMoveAndFollow
	ActionExec
	ActionToggleFloating
	ActionToggleFullscreen
	ActionFocus
	ActionMove
	ActionResize
	ActionSplitHorizontal
	ActionSplitVertical
	ActionRotateSplit
	ActionEqualizeSplits
	ActionNextWorkspace
	ActionPrevWorkspace
	ActionNextWindow
	ActionPrevWindow
)

var actionNames = map[ActionKind]string{
	ActionTerminate:        "terminate",
	ActionCloseFocused:     "close_focused",
	ActionSwitchWorkspace:  "switch_workspace",
	ActionMoveToWorkspace:  "move_to_workspace",
	ActionMoveAndFollow:    "move_and_follow",
	ActionExec:             "exec",
	ActionToggleFloating:   "toggle_floating",
	ActionToggleFullscreen: "toggle_fullscreen",
	ActionFocus:            "focus",
	ActionMove:             "move",
	ActionResize:           "resize",
	ActionSplitHorizontal:  "split_horizontal",
	ActionSplitVertical:    "split_vertical",
	ActionRotateSplit:      "rotate_split",
	ActionEqualizeSplits:   "equalize_splits",
	ActionNextWorkspace:    "next_workspace",
	ActionPrevWorkspace:    "prev_workspace",
	ActionNextWindow:       "next_window",
	ActionPrevWindow:       "prev_window",
}

var actionKinds = func() map[string]ActionKind {
	m := make(map[string]ActionKind, len(actionNames))
	for k, v := range actionNames {
		m[v] = k
	}
	return m
}()

// ErrUnknownAction is wrapped when a binding names no known action.
var ErrUnknownAction = errors.New("unknown action")

func (k ActionKind) String() string {
	if s, ok := actionNames[k]; ok {
		return s
	}
	return fmt.Sprintf("action(%d)", uint8(k))
}

// Action is a bound command. Only the payload field matching Kind is set:
// Workspace for the workspace kinds, Command for exec, Direction for focus,
// move and resize.
type Action struct {
	Kind      ActionKind
	Workspace int
	Command   string
	Direction geom.Direction
}

// String renders the action with its payload, e.g. "switch_workspace(3)".
// Two actions with the same string are the same action.
func (a Action) String() string {
	switch a.Kind {
	case ActionSwitchWorkspace, ActionMoveToWorkspace, ActionMoveAndFollow:
		return fmt.Sprintf("%s(%d)", a.Kind, a.Workspace)
	case ActionExec:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Command)
	case ActionFocus, ActionMove, ActionResize:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Direction)
	default:
		return a.Kind.String()
	}
}

// ParseAction builds an Action from a binding entry.
func ParseAction(b BindingConfig) (Action, error) {
	kind, ok := actionKinds[strings.ToLower(strings.TrimSpace(b.Action))]
	if !ok {
		return Action{}, fmt.Errorf("%w %q", ErrUnknownAction, b.Action)
	}
	a := Action{Kind: kind}

	switch kind {
	case ActionSwitchWorkspace, ActionMoveToWorkspace, ActionMoveAndFollow:
		if b.Workspace < MinWorkspace || b.Workspace > MaxWorkspaces {
			return Action{}, fmt.Errorf("%s: workspace %d outside %d..%d", kind, b.Workspace, MinWorkspace, MaxWorkspaces)
		}
		a.Workspace = b.Workspace
	case ActionExec:
		if strings.TrimSpace(b.Command) == "" {
			return Action{}, fmt.Errorf("%s: empty command", kind)
		}
		a.Command = b.Command
	case ActionFocus, ActionMove, ActionResize:
		dir, err := geom.ParseDirection(b.Direction)
		if err != nil {
			return Action{}, fmt.Errorf("%s: %w", kind, err)
		}
		a.Direction = dir
	}
	return a, nil
}

// Binding returns the config entry that parses back into a.
func (a Action) Binding(keys ...string) BindingConfig {
	b := BindingConfig{Keys: keys, Action: a.Kind.String()}
	switch a.Kind {
	case ActionSwitchWorkspace, ActionMoveToWorkspace, ActionMoveAndFollow:
		b.Workspace = a.Workspace
	case ActionExec:
		b.Command = a.Command
	case ActionFocus, ActionMove, ActionResize:
		b.Direction = a.Direction.String()
	}
	return b
}

// ActionNames lists every action name accepted in [[bindings]].
func ActionNames() []string {
	out := make([]string, 0, len(actionNames))
	for k := ActionTerminate; k <= ActionPrevWindow; k++ {
		out = append(out, actionNames[k])
	}
	return out
}
