package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/Gaurav-Gosain/tilewm/internal/geom"
	"github.com/charmbracelet/log"
)

// BindingConfig is one [[bindings]] entry. Payload fields are only read for
// the actions that take them.
type BindingConfig struct {
	Keys      []string `toml:"keys" yaml:"keys"`
	Action    string   `toml:"action" yaml:"action"`
	Workspace int      `toml:"workspace,omitempty" yaml:"workspace,omitempty"`
	Command   string   `toml:"command,omitempty" yaml:"command,omitempty"`
	Direction string   `toml:"direction,omitempty" yaml:"direction,omitempty"`
}

// Binding is a resolved chord -> action entry.
type Binding struct {
	Chord  Chord
	Action Action
}

// DefaultBindings returns the built-in bindings in load order.
func DefaultBindings() []BindingConfig {
	b := []BindingConfig{
		{Keys: []string{"super+shift+escape"}, Action: "terminate"},
		{Keys: []string{"super+shift+q"}, Action: "close_focused"},
		{Keys: []string{"super+return"}, Action: "exec", Command: DefaultTerminal},
		{Keys: []string{"super+shift+space"}, Action: "toggle_floating"},
		{Keys: []string{"super+f"}, Action: "toggle_fullscreen"},
		{Keys: []string{"super+b"}, Action: "split_horizontal"},
		{Keys: []string{"super+v"}, Action: "split_vertical"},
		{Keys: []string{"super+r"}, Action: "rotate_split"},
		{Keys: []string{"super+="}, Action: "equalize_splits"},
		{Keys: []string{"super+tab"}, Action: "next_workspace"},
		{Keys: []string{"super+shift+tab"}, Action: "prev_workspace"},
		{Keys: []string{"alt+tab"}, Action: "next_window"},
		{Keys: []string{"alt+shift+tab"}, Action: "prev_window"},
	}

	vim := map[geom.Direction]string{geom.Left: "h", geom.Down: "j", geom.Up: "k", geom.Right: "l"}
	for _, dir := range []geom.Direction{geom.Left, geom.Down, geom.Up, geom.Right} {
		b = append(b,
			BindingConfig{Keys: []string{"super+" + vim[dir], "super+" + dir.String()}, Action: "focus", Direction: dir.String()},
			BindingConfig{Keys: []string{"super+shift+" + vim[dir], "super+shift+" + dir.String()}, Action: "move", Direction: dir.String()},
			BindingConfig{Keys: []string{"super+ctrl+" + vim[dir], "super+ctrl+" + dir.String()}, Action: "resize", Direction: dir.String()},
		)
	}

	for n := 1; n <= DefaultWorkspaceKeys; n++ {
		key := fmt.Sprintf("%d", n%10)
		b = append(b,
			BindingConfig{Keys: []string{"super+" + key}, Action: "switch_workspace", Workspace: n},
			BindingConfig{Keys: []string{"super+shift+" + key}, Action: "move_to_workspace", Workspace: n},
			BindingConfig{Keys: []string{"super+ctrl+shift+" + key}, Action: "move_and_follow", Workspace: n},
		)
	}
	return b
}

// KeybindRegistry maps chords to actions. Lookups are exact: a chord only
// matches a binding with the identical modifier set and key.
type KeybindRegistry struct {
	bindings map[Chord]Action
	order    []Chord
}

// NewKeybindRegistry resolves entries in order. When two entries claim the
// same chord the later one wins and a warning is logged. Entries that fail
// to parse are skipped; ValidateConfig reports them.
func NewKeybindRegistry(entries []BindingConfig, logger *log.Logger) *KeybindRegistry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &KeybindRegistry{bindings: make(map[Chord]Action)}
	for _, entry := range entries {
		action, err := ParseAction(entry)
		if err != nil {
			logger.Debug("skipping binding", "action", entry.Action, "err", err)
			continue
		}
		for _, k := range entry.Keys {
			chord, err := ParseChord(k)
			if err != nil {
				logger.Debug("skipping key", "key", k, "err", err)
				continue
			}
			if prev, taken := r.bindings[chord]; taken {
				if prev == action {
					logger.Warn("key binding collision, chord bound twice to the same action",
						"chord", chord.String(), "action", action.String())
				} else {
					logger.Warn("key binding collision, later binding wins",
						"chord", chord.String(), "previous", prev.String(), "action", action.String())
				}
			} else {
				r.order = append(r.order, chord)
			}
			r.bindings[chord] = action
		}
	}
	return r
}

// Lookup returns the action bound to chord.
func (r *KeybindRegistry) Lookup(c Chord) (Action, bool) {
	a, ok := r.bindings[c]
	return a, ok
}

// Len returns the number of bound chords.
func (r *KeybindRegistry) Len() int { return len(r.bindings) }

// Bindings returns every binding in first-bound order.
func (r *KeybindRegistry) Bindings() []Binding {
	out := make([]Binding, 0, len(r.order))
	for _, c := range r.order {
		out = append(out, Binding{Chord: c, Action: r.bindings[c]})
	}
	return out
}

// GetKeys returns the chords bound to action.
func (r *KeybindRegistry) GetKeys(a Action) []string {
	var keys []string
	for _, c := range r.order {
		if r.bindings[c] == a {
			keys = append(keys, c.String())
		}
	}
	return keys
}

// GetKeysForDisplay joins GetKeys for help output.
func (r *KeybindRegistry) GetKeysForDisplay(a Action) string {
	return strings.Join(r.GetKeys(a), ", ")
}

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetKeybindings groups the registry's bindings into help sections.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	sections := []KeybindingSection{
		{Title: "SESSION"},
		{Title: "WINDOWS"},
		{Title: "LAYOUT"},
		{Title: "WORKSPACES"},
		{Title: "EXEC"},
	}
	for _, b := range registry.Bindings() {
		idx, desc := describe(b.Action)
		sections[idx].Bindings = append(sections[idx].Bindings, Keybinding{
			Key:         b.Chord.String(),
			Description: desc,
		})
	}

	out := sections[:0]
	for _, s := range sections {
		if len(s.Bindings) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func describe(a Action) (section int, desc string) {
	switch a.Kind {
	case ActionTerminate:
		return 0, "Quit the window manager"
	case ActionCloseFocused:
		return 1, "Close focused window"
	case ActionToggleFloating:
		return 1, "Toggle floating"
	case ActionToggleFullscreen:
		return 1, "Toggle fullscreen"
	case ActionFocus:
		return 1, "Focus " + a.Direction.String()
	case ActionMove:
		return 1, "Move window " + a.Direction.String()
	case ActionNextWindow:
		return 1, "Next window"
	case ActionPrevWindow:
		return 1, "Previous window"
	case ActionResize:
		return 2, "Grow toward " + a.Direction.String()
	case ActionSplitHorizontal:
		return 2, "Open next window beside"
	case ActionSplitVertical:
		return 2, "Open next window below"
	case ActionRotateSplit:
		return 2, "Rotate split"
	case ActionEqualizeSplits:
		return 2, "Equalize splits"
	case ActionSwitchWorkspace:
		return 3, fmt.Sprintf("Switch to workspace %d", a.Workspace)
	case ActionMoveToWorkspace:
		return 3, fmt.Sprintf("Move window to workspace %d", a.Workspace)
	case ActionMoveAndFollow:
		return 3, fmt.Sprintf("Move to workspace %d and follow", a.Workspace)
	case ActionNextWorkspace:
		return 3, "Next workspace"
	case ActionPrevWorkspace:
		return 3, "Previous workspace"
	case ActionExec:
		return 4, "Run " + a.Command
	}
	return 0, a.String()
}
