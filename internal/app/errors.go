package app

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownWindow is returned for operations on an id that was never
	// mapped or was already unmapped.
	ErrUnknownWindow = errors.New("unknown window")
	// ErrDuplicateWindow is returned when a surface is mapped twice.
	ErrDuplicateWindow = errors.New("window already mapped")
	// ErrUnknownOutput is returned for operations on an output that is not
	// attached.
	ErrUnknownOutput = errors.New("unknown output")
	// ErrBadWorkspace is returned for workspace ids outside 1..32.
	ErrBadWorkspace = errors.New("workspace out of range")
	// ErrNoFreeWorkspace is returned when every workspace is visible.
	ErrNoFreeWorkspace = errors.New("no unassigned workspace")
	// ErrEmptyRect is returned when an output reports no area.
	ErrEmptyRect = errors.New("empty output rectangle")
)

// ProtocolError is an unexpected or out-of-order backend event. The event is
// logged and dropped; state is left unchanged.
type ProtocolError struct {
	Event string
	Err   error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Event, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

func protocolErr(event string, format string, args ...any) error {
	return &ProtocolError{Event: event, Err: fmt.Errorf(format, args...)}
}

// InvariantViolation means the window tree and the window table disagree.
// It is raised with panic and never recovered by the manager.
type InvariantViolation struct {
	Op     string
	Window WindowID
	Err    error
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("layout invariant violated during %s of %q: %v", e.Op, e.Window, e.Err)
}

func (e *InvariantViolation) Unwrap() error { return e.Err }

func (m *WM) violate(op string, id WindowID, err error) {
	m.log.Error("layout invariant violated", "op", op, "window", id, "err", err)
	panic(&InvariantViolation{Op: op, Window: id, Err: err})
}
