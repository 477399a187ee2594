package backend

import (
	"io"
	"slices"
	"sync"

	"github.com/Gaurav-Gosain/tilewm/internal/app"
	"github.com/Gaurav-Gosain/tilewm/internal/geom"
	"github.com/charmbracelet/log"
)

// Headless is a backend without a display. It logs every command, keeps the
// last frame of each window and answers Close with a queued unmap, which is
// enough to drive the manager from scripts and tests.
type Headless struct {
	mu      sync.Mutex
	logger  *log.Logger
	spawner *Spawner

	frames  map[app.WindowID]geom.Rect
	visible map[app.WindowID]bool
	focused app.WindowID
	pending []app.Event

	done     chan struct{}
	doneOnce sync.Once
}

// HeadlessOption configures a Headless backend.
type HeadlessOption func(*Headless)

// WithSpawner makes exec actions start real processes. Without it spawns
// are only logged.
func WithSpawner(s *Spawner) HeadlessOption {
	return func(h *Headless) { h.spawner = s }
}

// NewHeadless creates a headless backend.
func NewHeadless(logger *log.Logger, opts ...HeadlessOption) *Headless {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &Headless{
		logger:  logger,
		frames:  make(map[app.WindowID]geom.Rect),
		visible: make(map[app.WindowID]bool),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Headless) CommitGeometry(id app.WindowID, r geom.Rect) {
	h.mu.Lock()
	h.frames[id] = r
	h.mu.Unlock()
	h.logger.Debug("commit", "window", id, "rect", r)
}

func (h *Headless) MapWorkspace(output app.OutputID, windows []app.WindowID) {
	h.setVisible(windows, true)
	h.logger.Debug("map workspace", "output", output, "windows", len(windows))
}

func (h *Headless) UnmapWorkspace(output app.OutputID, windows []app.WindowID) {
	h.setVisible(windows, false)
	h.logger.Debug("unmap workspace", "output", output, "windows", len(windows))
}

func (h *Headless) MapWindow(id app.WindowID) {
	h.setVisible([]app.WindowID{id}, true)
	h.logger.Debug("map window", "window", id)
}

func (h *Headless) UnmapWindow(id app.WindowID) {
	h.setVisible([]app.WindowID{id}, false)
	h.logger.Debug("unmap window", "window", id)
}

func (h *Headless) setVisible(windows []app.WindowID, v bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range windows {
		h.visible[id] = v
	}
}

func (h *Headless) Focus(id app.WindowID) {
	h.mu.Lock()
	h.focused = id
	h.mu.Unlock()
	h.logger.Debug("focus", "window", id)
}

func (h *Headless) Close(id app.WindowID) {
	h.mu.Lock()
	delete(h.frames, id)
	delete(h.visible, id)
	h.pending = append(h.pending, app.SurfaceUnmapped{ID: id})
	h.mu.Unlock()
	h.logger.Debug("close", "window", id)
}

func (h *Headless) SpawnProcess(command string, env []string) error {
	if h.spawner == nil {
		h.logger.Info("spawn (dry run)", "command", command)
		return nil
	}
	return h.spawner.Spawn(command, env)
}

func (h *Headless) Terminate() {
	h.doneOnce.Do(func() { close(h.done) })
	h.logger.Debug("terminate")
}

// Done is closed once the manager asks to terminate.
func (h *Headless) Done() <-chan struct{} { return h.done }

// Frame returns the last rectangle committed for id.
func (h *Headless) Frame(id app.WindowID) (geom.Rect, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.frames[id]
	return r, ok
}

// Visible reports whether id is currently mapped.
func (h *Headless) Visible(id app.WindowID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible[id]
}

// VisibleWindows returns the mapped windows in sorted order.
func (h *Headless) VisibleWindows() []app.WindowID {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []app.WindowID
	for id, v := range h.visible {
		if v {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// FocusedWindow returns the last Focus argument.
func (h *Headless) FocusedWindow() app.WindowID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.focused
}

// Queue appends a follow-up event for the next Drain.
func (h *Headless) Queue(ev app.Event) {
	h.mu.Lock()
	h.pending = append(h.pending, ev)
	h.mu.Unlock()
}

// TakePending returns and clears the queued follow-up events.
func (h *Headless) TakePending() []app.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.pending
	h.pending = nil
	return out
}

// Drain feeds queued follow-up events into wm until none are left.
func (h *Headless) Drain(wm *app.WM) {
	for evs := h.TakePending(); len(evs) > 0; evs = h.TakePending() {
		for _, ev := range evs {
			wm.HandleEvent(ev)
		}
	}
}
