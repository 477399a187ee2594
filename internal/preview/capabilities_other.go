//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !windows

package preview

import "golang.org/x/term"

func isTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}
