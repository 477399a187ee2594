package preview

import (
	"os"

	"github.com/charmbracelet/colorprofile"
)

// NeedsASCII reports whether p cannot be trusted with box-drawing glyphs.
func NeedsASCII(p colorprofile.Profile) bool {
	return p == colorprofile.Ascii || p == colorprofile.NoTTY
}

// Interactive reports whether both stdin and stdout are terminals, which the
// preview needs to read keys and draw.
func Interactive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}
