// Package backend holds concrete implementations of app.Backend that do not
// need a display server.
package backend

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrEmptyCommand is returned when an exec binding has nothing to run.
var ErrEmptyCommand = errors.New("empty command")

// SpawnError reports a process that could not be started.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Spawner starts processes detached from the caller. Spawn returns once the
// process is running; a reaper goroutine collects its exit status.
type Spawner struct {
	Shell  string
	logger *log.Logger
}

// NewSpawner creates a spawner using the platform shell, so that variables
// like $TERMINAL expand.
func NewSpawner(logger *log.Logger) *Spawner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Spawner{Shell: defaultShell, logger: logger}
}

// Spawn runs command through the shell with env appended to the current
// environment.
func (s *Spawner) Spawn(command string, env []string) error {
	if strings.TrimSpace(command) == "" {
		return &SpawnError{Command: command, Err: ErrEmptyCommand}
	}

	cmd := exec.Command(s.Shell, shellFlag, command)
	cmd.Env = append(os.Environ(), env...)
	cmd.SysProcAttr = detached()

	if err := cmd.Start(); err != nil {
		return &SpawnError{Command: command, Err: err}
	}

	pid := cmd.Process.Pid
	s.logger.Debug("process started", "command", command, "pid", pid)
	go func() {
		err := cmd.Wait()
		s.logger.Debug("process exited", "command", command, "pid", pid, "err", err)
	}()
	return nil
}
