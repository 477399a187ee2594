package preview

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tilewm/internal/config"
)

// ErrNotInteractive is returned by Run when stdin or stdout is not a
// terminal.
var ErrNotInteractive = errors.New("preview needs an interactive terminal")

// ProgramOptions returns the bubbletea options every preview program uses.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithFPS(config.NormalFPS)}
}

// Run shows the preview in the current terminal until the terminate action
// runs or ctx is done. When configPath is set the file is watched and
// reloads are applied live.
func Run(ctx context.Context, opts Options, configPath string) error {
	if !Interactive() {
		return ErrNotInteractive
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(opts)
	p := tea.NewProgram(m, append(ProgramOptions(), tea.WithContext(ctx))...)

	if configPath != "" {
		w, err := config.NewWatcher(configPath, m.logger)
		if err != nil {
			m.logger.Warn("config hot reload disabled", "err", err)
		} else {
			go func() {
				_ = w.Run(ctx, func(cfg *config.UserConfig) {
					p.Send(ConfigReloadedMsg{Config: cfg})
				})
			}()
		}
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
