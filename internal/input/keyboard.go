package input

import (
	"unicode"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tilewm/internal/config"
)

// keyNames maps bubbletea key codes to the names used in bindings.
var keyNames = map[rune]string{
	tea.KeyEnter:     "return",
	tea.KeySpace:     "space",
	tea.KeyTab:       "tab",
	tea.KeyEscape:    "escape",
	tea.KeyBackspace: "backspace",
	tea.KeyDelete:    "delete",
	tea.KeyInsert:    "insert",
	tea.KeyUp:        "up",
	tea.KeyDown:      "down",
	tea.KeyLeft:      "left",
	tea.KeyRight:     "right",
	tea.KeyHome:      "home",
	tea.KeyEnd:       "end",
	tea.KeyPgUp:      "pageup",
	tea.KeyPgDown:    "pagedown",
	tea.KeyF1:        "f1",
	tea.KeyF2:        "f2",
	tea.KeyF3:        "f3",
	tea.KeyF4:        "f4",
	tea.KeyF5:        "f5",
	tea.KeyF6:        "f6",
	tea.KeyF7:        "f7",
	tea.KeyF8:        "f8",
	tea.KeyF9:        "f9",
	tea.KeyF10:       "f10",
	tea.KeyF11:       "f11",
	tea.KeyF12:       "f12",
}

// KeyOptions controls how terminal key events become chords.
type KeyOptions struct {
	// AltAsSuper reports alt as super. Most terminals never deliver the
	// super modifier, so the preview binds it to alt by default.
	AltAsSuper bool
}

// ChordFromKey converts a bubbletea key press into a chord. It reports false
// for events that carry no usable key.
func ChordFromKey(msg tea.KeyPressMsg, opts KeyOptions) (config.Chord, bool) {
	var mods config.Modifier
	if msg.Mod&tea.ModShift != 0 {
		mods |= config.ModShift
	}
	if msg.Mod&tea.ModCtrl != 0 {
		mods |= config.ModCtrl
	}
	if msg.Mod&(tea.ModAlt|tea.ModMeta) != 0 {
		if opts.AltAsSuper {
			mods |= config.ModSuper
		} else {
			mods |= config.ModAlt
		}
	}
	if msg.Mod&(tea.ModSuper|tea.ModHyper) != 0 {
		mods |= config.ModSuper
	}

	name, ok := keyNames[msg.Code]
	if !ok {
		if msg.Code == 0 || !unicode.IsPrint(msg.Code) {
			return config.Chord{}, false
		}
		if unicode.IsUpper(msg.Code) {
			mods |= config.ModShift
		}
		name = string(unicode.ToLower(msg.Code))
	}
	return config.NewChord(mods, name), true
}
