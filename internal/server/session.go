// Package server shares the preview over SSH and the browser. Every
// connection gets its own manager; exec bindings only open simulated
// surfaces, nothing runs on the host.
package server

import (
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/preview"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/log"
)

// SessionOptions configures the manager created for each connection.
type SessionOptions struct {
	Config     *config.UserConfig
	Logger     *log.Logger
	Outputs    int
	Windows    int
	AltAsSuper bool
}

func (o SessionOptions) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// newSession builds a preview model sized for a remote terminal. env is the
// client's environment and picks ASCII borders for dumb terminals.
func newSession(o SessionOptions, logger *log.Logger, width, height int, env []string) (*preview.Model, []tea.ProgramOption) {
	cfg := o.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := preview.New(preview.Options{
		Config:     cfg,
		Logger:     logger,
		Outputs:    o.Outputs,
		Windows:    o.Windows,
		AltAsSuper: o.AltAsSuper,
		ASCII:      preview.NeedsASCII(colorprofile.Env(env)),
	})
	if width > 0 && height > 0 {
		m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	}
	return m, preview.ProgramOptions()
}
