package preview

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Gaurav-Gosain/tilewm/internal/app"
	"github.com/Gaurav-Gosain/tilewm/internal/backend"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// maxTyped bounds the text echoed into a simulated window.
const maxTyped = 256

// Backend simulates a compositor inside the terminal. Exec actions create
// new surfaces instead of processes, unless a real spawner is configured,
// and keys the manager does not consume are echoed into the focused window.
type Backend struct {
	*backend.Headless

	mu    sync.Mutex
	typed map[app.WindowID]string
	real  *backend.Spawner
}

// NewBackend creates a simulated backend. When spawner is non-nil exec
// actions also start the real command.
func NewBackend(logger *log.Logger, spawner *backend.Spawner) *Backend {
	return &Backend{
		Headless: backend.NewHeadless(logger),
		typed:    make(map[app.WindowID]string),
		real:     spawner,
	}
}

// SpawnProcess maps a new simulated surface named after the command.
func (b *Backend) SpawnProcess(command string, env []string) error {
	if b.real != nil {
		if err := b.real.Spawn(command, env); err != nil {
			return err
		}
	}
	b.Queue(app.SurfaceMapped{ID: NewSurfaceID(), AppHint: appHint(command)})
	return nil
}

// Close forgets the echoed text before queueing the unmap.
func (b *Backend) Close(id app.WindowID) {
	b.mu.Lock()
	delete(b.typed, id)
	b.mu.Unlock()
	b.Headless.Close(id)
}

// Type appends text to what id shows, keeping the tail.
func (b *Backend) Type(id app.WindowID, text string) {
	if id == "" || text == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.typed[id] + text
	if r := []rune(s); len(r) > maxTyped {
		s = string(r[len(r)-maxTyped:])
	}
	b.typed[id] = s
}

// Typed returns the text echoed into id.
func (b *Backend) Typed(id app.WindowID) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.typed[id]
}

// NewSurfaceID returns a short random surface id.
func NewSurfaceID() app.WindowID {
	return app.WindowID(uuid.NewString()[:8])
}

// appHint derives an app id from a shell command: the base name of its first
// word after variable expansion.
func appHint(command string) string {
	fields := strings.Fields(os.ExpandEnv(command))
	if len(fields) == 0 {
		return "terminal"
	}
	return filepath.Base(fields[0])
}
