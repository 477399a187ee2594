package server

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/sip"
)

// WebConfig holds configuration for the browser terminal server.
type WebConfig struct {
	Host           string
	Port           string
	ReadOnly       bool
	MaxConnections int // 0 means unlimited
	Debug          bool
	Session        SessionOptions
}

// StartWeb serves the preview to browsers until ctx is done.
func StartWeb(ctx context.Context, cfg WebConfig) error {
	sipConfig := sip.DefaultConfig()
	sipConfig.Host = cfg.Host
	sipConfig.Port = cfg.Port
	sipConfig.ReadOnly = cfg.ReadOnly
	sipConfig.MaxConnections = cfg.MaxConnections
	sipConfig.Debug = cfg.Debug

	cfg.Session.logger().Info("starting web server", "host", cfg.Host, "port", cfg.Port, "read_only", cfg.ReadOnly)
	return sip.NewServer(sipConfig).Serve(ctx, webHandler(cfg.Session))
}

func webHandler(o SessionOptions) func(sip.Session) (tea.Model, []tea.ProgramOption) {
	return func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
		pty := sess.Pty()
		// Browsers run xterm.js, which handles truecolor and box glyphs.
		env := []string{"TERM=xterm-256color", "COLORTERM=truecolor"}
		return newSession(o, o.logger().With("transport", "web"), pty.Width, pty.Height, env)
	}
}
