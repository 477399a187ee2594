// Package testutil provides a recording backend for window manager tests.
package testutil

import (
	"slices"
	"sync"

	"github.com/Gaurav-Gosain/tilewm/internal/app"
	"github.com/Gaurav-Gosain/tilewm/internal/geom"
)

// Op names a recorded backend command.
type Op string

const (
	OpCommit      Op = "commit"
	OpMap         Op = "map_workspace"
	OpUnmap       Op = "unmap_workspace"
	OpMapWindow   Op = "map_window"
	OpUnmapWindow Op = "unmap_window"
	OpFocus       Op = "focus"
	OpClose       Op = "close"
	OpSpawn       Op = "spawn"
	OpTerminate   Op = "terminate"
)

// Command is one recorded call.
type Command struct {
	Op      Op
	Window  app.WindowID
	Output  app.OutputID
	Rect    geom.Rect
	Windows []app.WindowID
	Command string
	Env     []string
}

// FakeBackend records every command the manager emits. Close queues a
// SurfaceUnmapped event the way a real client would answer.
type FakeBackend struct {
	mu       sync.Mutex
	commands []Command
	pending  []app.Event

	// SpawnErr, when set, is returned from SpawnProcess.
	SpawnErr error
}

// NewFakeBackend creates an empty recorder.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{}
}

func (f *FakeBackend) record(c Command) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, c)
}

func (f *FakeBackend) CommitGeometry(id app.WindowID, r geom.Rect) {
	f.record(Command{Op: OpCommit, Window: id, Rect: r})
}

func (f *FakeBackend) MapWorkspace(output app.OutputID, windows []app.WindowID) {
	f.record(Command{Op: OpMap, Output: output, Windows: slices.Clone(windows)})
}

func (f *FakeBackend) UnmapWorkspace(output app.OutputID, windows []app.WindowID) {
	f.record(Command{Op: OpUnmap, Output: output, Windows: slices.Clone(windows)})
}

func (f *FakeBackend) MapWindow(id app.WindowID) {
	f.record(Command{Op: OpMapWindow, Window: id})
}

func (f *FakeBackend) UnmapWindow(id app.WindowID) {
	f.record(Command{Op: OpUnmapWindow, Window: id})
}

func (f *FakeBackend) Focus(id app.WindowID) {
	f.record(Command{Op: OpFocus, Window: id})
}

func (f *FakeBackend) Close(id app.WindowID) {
	f.record(Command{Op: OpClose, Window: id})
	f.mu.Lock()
	f.pending = append(f.pending, app.SurfaceUnmapped{ID: id})
	f.mu.Unlock()
}

func (f *FakeBackend) SpawnProcess(command string, env []string) error {
	f.record(Command{Op: OpSpawn, Command: command, Env: slices.Clone(env)})
	return f.SpawnErr
}

func (f *FakeBackend) Terminate() {
	f.record(Command{Op: OpTerminate})
}

// GetCommands returns every recorded command in order.
func (f *FakeBackend) GetCommands() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.commands)
}

// GetOps returns the recorded commands of kind op.
func (f *FakeBackend) GetOps(op Op) []Command {
	var out []Command
	for _, c := range f.GetCommands() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Commits returns the last committed rectangle per window.
func (f *FakeBackend) Commits() map[app.WindowID]geom.Rect {
	out := make(map[app.WindowID]geom.Rect)
	for _, c := range f.GetOps(OpCommit) {
		out[c.Window] = c.Rect
	}
	return out
}

// LastFocus returns the most recent Focus argument and whether Focus was
// called at all.
func (f *FakeBackend) LastFocus() (app.WindowID, bool) {
	focus := f.GetOps(OpFocus)
	if len(focus) == 0 {
		return "", false
	}
	return focus[len(focus)-1].Window, true
}

// ClearCommands forgets everything recorded so far.
func (f *FakeBackend) ClearCommands() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = nil
}

// TakePending returns and clears the queued follow-up events.
func (f *FakeBackend) TakePending() []app.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.pending
	f.pending = nil
	return out
}

// Drain feeds queued follow-up events into wm until none are left.
func (f *FakeBackend) Drain(wm *app.WM) {
	for {
		evs := f.TakePending()
		if len(evs) == 0 {
			return
		}
		for _, ev := range evs {
			wm.HandleEvent(ev)
		}
	}
}
