package app

import (
	"context"
	"errors"

	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/geom"
)

// Backend receives the commands the manager emits. Calls are made from the
// event loop goroutine and must not block on, or call back into, the WM.
// A backend that wants to answer with an event queues it.
type Backend interface {
	CommitGeometry(id WindowID, r geom.Rect)
	MapWorkspace(output OutputID, windows []WindowID)
	UnmapWorkspace(output OutputID, windows []WindowID)
	// MapWindow shows a single window that joined a visible workspace.
	MapWindow(id WindowID)
	// UnmapWindow hides a single window moved onto a parked workspace.
	UnmapWindow(id WindowID)
	// Focus moves keyboard focus; an empty id means no window has focus.
	Focus(id WindowID)
	// Close asks the client to close. The window stays managed until its
	// surface is unmapped.
	Close(id WindowID)
	SpawnProcess(command string, env []string) error
	Terminate()
}

// KeyHandler resolves chords into manager operations. It reports whether
// the chord was consumed.
type KeyHandler interface {
	HandleKey(chord config.Chord, wm *WM) bool
}

// Event is a backend notification.
type Event interface{ event() }

// SurfaceMapped announces a new client surface.
type SurfaceMapped struct {
	ID      WindowID
	AppHint string
}

// SurfaceUnmapped announces that a surface went away.
type SurfaceUnmapped struct {
	ID WindowID
}

// OutputAttached announces a new output, or a new rectangle for a known one.
type OutputAttached struct {
	ID   OutputID
	Rect geom.Rect
}

// OutputDetached announces that an output is gone.
type OutputDetached struct {
	ID OutputID
}

// KeyPressed is a resolved key event.
type KeyPressed struct {
	Mods config.Modifier
	Key  string
}

// Func runs on the event loop. Used for mutations that originate outside the
// backend, such as a config reload.
type Func func(*WM)

func (SurfaceMapped) event()   {}
func (SurfaceUnmapped) event() {}
func (OutputAttached) event()  {}
func (OutputDetached) event()  {}
func (KeyPressed) event()      {}
func (Func) event()            {}

// HandleEvent applies one event. For key events it reports whether the chord
// was consumed; unconsumed chords belong to the focused client. Protocol
// errors are logged and dropped.
func (m *WM) HandleEvent(ev Event) bool {
	var err error
	consumed := false

	switch e := ev.(type) {
	case SurfaceMapped:
		err = m.MapSurface(e.ID, e.AppHint)
	case SurfaceUnmapped:
		err = m.UnmapSurface(e.ID)
	case OutputAttached:
		err = m.AttachOutput(e.ID, e.Rect)
	case OutputDetached:
		err = m.DetachOutput(e.ID)
	case KeyPressed:
		consumed = m.Key(config.NewChord(e.Mods, e.Key))
	case Func:
		e(m)
	}

	var perr *ProtocolError
	if errors.As(err, &perr) {
		m.log.Warn("ignoring backend event", "event", perr.Event, "err", perr.Err)
	} else if err != nil {
		m.log.Warn("event failed", "err", err)
	}

	if m.paranoid {
		if err := m.CheckInvariants(); err != nil {
			m.violate("check", m.focused, err)
		}
	}
	return consumed
}

// Key runs the bound action for chord, if any.
func (m *WM) Key(chord config.Chord) bool {
	if m.keys == nil {
		return false
	}
	return m.keys.HandleKey(chord, m)
}

// Run consumes events until ctx is done, events is closed or a terminate
// action runs. It is the only goroutine that touches the manager.
func (m *WM) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			m.HandleEvent(ev)
			if m.terminated {
				return nil
			}
		}
	}
}
