package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Modifier is a bitset of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// ErrInvalidChord is wrapped by every chord parse failure.
var ErrInvalidChord = errors.New("invalid key chord")

var modifierNames = map[string]Modifier{
	"shift":   ModShift,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"opt":     ModAlt,
	"option":  ModAlt,
	"meta":    ModAlt,
	"super":   ModSuper,
	"logo":    ModSuper,
	"mod4":    ModSuper,
	"win":     ModSuper,
	"cmd":     ModSuper,
}

// keyAliases maps alternate spellings onto the canonical key name.
var keyAliases = map[string]string{
	"enter":     "return",
	"esc":       "escape",
	"del":       "delete",
	"bs":        "backspace",
	"spc":       "space",
	" ":         "space",
	"pgup":      "pageup",
	"pgdown":    "pagedown",
	"equal":     "=",
	"minus":     "-",
	"plus":      "+",
	"backslash": "\\",
	"pipe":      "|",
}

// Chord is an exact modifier set plus one key.
type Chord struct {
	Mods Modifier
	Key  string
}

// Has reports whether every modifier in m is held.
func (m Modifier) Has(o Modifier) bool { return m&o == o }

func (m Modifier) String() string {
	var parts []string
	for _, p := range []struct {
		mod  Modifier
		name string
	}{{ModSuper, "super"}, {ModCtrl, "ctrl"}, {ModAlt, "alt"}, {ModShift, "shift"}} {
		if m.Has(p.mod) {
			parts = append(parts, p.name)
		}
	}
	return strings.Join(parts, "+")
}

// String renders the chord canonically: super, ctrl, alt, shift, key.
func (c Chord) String() string {
	if c.Mods == 0 {
		return c.Key
	}
	return c.Mods.String() + "+" + c.Key
}

// NormalizeKey lowercases a key name and resolves aliases.
func NormalizeKey(key string) string {
	if key != " " {
		key = strings.ToLower(strings.TrimSpace(key))
	}
	if alias, ok := keyAliases[key]; ok {
		return alias
	}
	return key
}

// NewChord builds a chord from a backend key event.
func NewChord(mods Modifier, key string) Chord {
	return Chord{Mods: mods, Key: NormalizeKey(key)}
}

// ParseChord parses strings like "super+shift+q". A lone upper-case letter
// implies shift. A trailing "+" names the plus key ("ctrl++").
func ParseChord(s string) (Chord, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Chord{}, fmt.Errorf("%w: empty", ErrInvalidChord)
	}

	var parts []string
	if strings.HasSuffix(raw, "++") {
		parts = append(strings.Split(strings.TrimSuffix(raw, "++"), "+"), "+")
	} else if raw == "+" {
		parts = []string{"+"}
	} else {
		parts = strings.Split(raw, "+")
	}

	var c Chord
	for _, p := range parts[:len(parts)-1] {
		mod, ok := modifierNames[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidChord, p, s)
		}
		c.Mods |= mod
	}

	key := strings.TrimSpace(parts[len(parts)-1])
	if key == "" {
		return Chord{}, fmt.Errorf("%w: missing key in %q", ErrInvalidChord, s)
	}
	if r := []rune(key); len(r) == 1 && unicode.IsUpper(r[0]) {
		c.Mods |= ModShift
	}
	if _, isMod := modifierNames[strings.ToLower(key)]; isMod {
		return Chord{}, fmt.Errorf("%w: %q ends in a modifier", ErrInvalidChord, s)
	}
	c.Key = NormalizeKey(key)
	return c, nil
}

// MustParseChord is ParseChord for literals known to be valid.
func MustParseChord(s string) Chord {
	c, err := ParseChord(s)
	if err != nil {
		panic(err)
	}
	return c
}
