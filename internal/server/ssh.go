package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/charmbracelet/ssh"
)

// SSHConfig holds configuration for the SSH server.
type SSHConfig struct {
	Host    string
	Port    string
	KeyPath string // defaults to ~/.ssh/tilewm_host_key
	Session SessionOptions
}

// HostKeyPath resolves where the server keeps its host key.
func (c SSHConfig) HostKeyPath() (string, error) {
	if c.KeyPath != "" {
		return c.KeyPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".ssh", "tilewm_host_key"), nil
}

// StartSSH serves the preview over SSH until ctx is done.
func StartSSH(ctx context.Context, cfg SSHConfig) error {
	logger := cfg.Session.logger()
	keyPath, err := cfg.HostKeyPath()
	if err != nil {
		return err
	}

	server, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(sshHandler(cfg.Session)),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting SSH server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("SSH server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down SSH server")
	return server.Shutdown(context.WithoutCancel(ctx))
}

func sshHandler(o SessionOptions) bubbletea.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, active := sess.Pty()
		if !active {
			_, _ = fmt.Fprintln(sess, "tilewm needs an interactive terminal, try ssh -t")
			return nil, nil
		}
		logger := o.logger().With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("session started", "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		env := append(sess.Environ(), "TERM="+pty.Term)
		return newSession(o, logger, pty.Window.Width, pty.Window.Height, env)
	}
}
