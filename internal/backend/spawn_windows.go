//go:build windows

package backend

import (
	"syscall"

	"golang.org/x/sys/windows"
)

const (
	defaultShell = "cmd.exe"
	shellFlag    = "/C"
)

func detached() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.DETACHED_PROCESS,
	}
}
