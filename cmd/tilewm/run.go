package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gaurav-Gosain/tilewm/internal/backend"
	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/preview"
	"github.com/Gaurav-Gosain/tilewm/internal/server"
	"github.com/Gaurav-Gosain/tilewm/internal/theme"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/log"
)

// logFileName is where the preview logs while it owns the terminal.
const logFileName = "tilewm/tilewm.log"

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilewm",
	})
}

// openLogFile opens the preview log in the XDG state directory.
func openLogFile() (*os.File, string, error) {
	path, err := xdg.StateFile(logFileName)
	if err != nil {
		return nil, "", fmt.Errorf("could not determine log path: %w", err)
	}
	// #nosec G304 - path comes from xdg
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, "", fmt.Errorf("could not open log file: %w", err)
	}
	return f, path, nil
}

func flagOverrides() config.Overrides {
	return config.Overrides{
		Debug:       debugMode,
		Gaps:        gaps,
		SplitRatio:  splitRatio,
		Orientation: orientation,
		ASCIIOnly:   asciiOnly,
		BorderStyle: borderStyle,
		ThemeName:   themeName,
	}
}

// loadConfig reads --config or the XDG config, applies flag overrides and
// sets the logger's level. A broken file falls back to the defaults. The
// returned path is empty when there is no file to watch.
func loadConfig(logger *log.Logger) (*config.UserConfig, string) {
	path := configFile
	if path == "" {
		if p, err := config.GetConfigPath(); err == nil {
			path = p
		}
	}

	var (
		cfg *config.UserConfig
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadUserConfigFile(configFile, logger)
	} else {
		cfg, err = config.LoadUserConfig(logger)
	}
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}

	for _, w := range config.ApplyOverrides(flagOverrides(), cfg).Warnings {
		logger.Warn("flag ignored", "flag", w.Key, "reason", w.Message)
	}
	logger.SetLevel(config.ParseLogLevel(cfg.General.LogLevel))

	if err := theme.Initialize(config.ThemeName, logger); err != nil {
		logger.Warn("failed to load theme", "theme", config.ThemeName, "err", err)
	}
	return cfg, path
}

func sessionOptions(cfg *config.UserConfig, logger *log.Logger) server.SessionOptions {
	return server.SessionOptions{
		Config:     cfg,
		Logger:     logger,
		Outputs:    numOutputs,
		Windows:    numWindows,
		AltAsSuper: !noAltSuper,
	}
}

func runLocal(ctx context.Context) error {
	logFile, logPath, err := openLogFile()
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	logger := newLogger(logFile)
	cfg, path := loadConfig(logger)
	if debugMode {
		fmt.Printf("Debug log: %s\n", logPath)
	}

	var spawner *backend.Spawner
	if spawnReal {
		spawner = backend.NewSpawner(logger)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = preview.Run(ctx, preview.Options{
		Config:     cfg,
		Logger:     logger,
		Outputs:    numOutputs,
		Windows:    numWindows,
		AltAsSuper: !noAltSuper,
		ASCII:      preview.NeedsASCII(colorprofile.Detect(os.Stdout, os.Environ())),
		Spawner:    spawner,
	}, path)
	if errors.Is(err, preview.ErrNotInteractive) {
		return fmt.Errorf("%w; use `tilewm tape play` to run scenarios headlessly", err)
	}
	return err
}

func runSSHServer(ctx context.Context, host, port, keyPath string) error {
	logger := newLogger(os.Stderr)
	cfg, _ := loadConfig(logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.StartSSH(ctx, server.SSHConfig{
		Host:    host,
		Port:    port,
		KeyPath: keyPath,
		Session: sessionOptions(cfg, logger),
	}); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

func runWebServer(ctx context.Context, host, port string, readOnly bool, maxConnections int) error {
	logger := newLogger(os.Stderr)
	cfg, _ := loadConfig(logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// xterm.js handles truecolor regardless of the server's terminal.
	_ = os.Setenv("COLORTERM", "truecolor")

	return server.StartWeb(ctx, server.WebConfig{
		Host:           host,
		Port:           port,
		ReadOnly:       readOnly,
		MaxConnections: maxConnections,
		Debug:          debugMode,
		Session:        sessionOptions(cfg, logger),
	})
}
