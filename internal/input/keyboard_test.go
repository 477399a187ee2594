package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tilewm/internal/config"
)

func TestChordFromKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
		opts KeyOptions
		want string
		ok   bool
	}{
		{"plain letter", tea.KeyPressMsg{Code: 'a', Text: "a"}, KeyOptions{}, "a", true},
		{"super letter", tea.KeyPressMsg{Code: 'h', Mod: tea.ModSuper}, KeyOptions{}, "super+h", true},
		{"alt stays alt", tea.KeyPressMsg{Code: 'h', Mod: tea.ModAlt}, KeyOptions{}, "alt+h", true},
		{"alt as super", tea.KeyPressMsg{Code: 'h', Mod: tea.ModAlt}, KeyOptions{AltAsSuper: true}, "super+h", true},
		{"enter", tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModSuper}, KeyOptions{}, "super+return", true},
		{"shifted digit", tea.KeyPressMsg{Code: '3', Mod: tea.ModAlt | tea.ModShift}, KeyOptions{AltAsSuper: true}, "super+shift+3", true},
		{"uppercase implies shift", tea.KeyPressMsg{Code: 'Q', Mod: tea.ModAlt}, KeyOptions{AltAsSuper: true}, "super+shift+q", true},
		{"ctrl arrow", tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModCtrl | tea.ModSuper}, KeyOptions{}, "super+ctrl+left", true},
		{"function key", tea.KeyPressMsg{Code: tea.KeyF5}, KeyOptions{}, "f5", true},
		{"space", tea.KeyPressMsg{Code: tea.KeySpace, Mod: tea.ModShift | tea.ModSuper}, KeyOptions{}, "super+shift+space", true},
		{"no key", tea.KeyPressMsg{}, KeyOptions{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ChordFromKey(tt.msg, tt.opts)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			want := config.MustParseChord(tt.want)
			if got != want {
				t.Errorf("Expected %s, got %s", want, got)
			}
		})
	}
}
