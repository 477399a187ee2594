//go:build !windows

package backend

import "syscall"

const (
	defaultShell = "/bin/sh"
	shellFlag    = "-c"
)

// detached puts the child in its own session so it outlives the manager and
// never receives the terminal's signals.
func detached() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
