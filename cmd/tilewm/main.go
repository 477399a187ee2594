// Package main implements tilewm, a tiling window manager core with a
// terminal preview. The preview draws outputs as regions of the terminal and
// windows as bordered boxes, so layouts and bindings can be tried without a
// compositor.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	configFile  string
	debugMode   bool
	gaps        int
	splitRatio  float64
	orientation string
	asciiOnly   bool
	borderStyle string
	themeName   string
	numOutputs  int
	numWindows  int
	spawnReal   bool
	noAltSuper  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tilewm",
		Short: "Tiling window manager core",
		Long: `tilewm - Tiling Window Manager

A binary space partitioning window manager core with 32 workspaces,
multi-output support and a keybinding dispatcher. Without a compositor
it runs as a terminal preview: outputs are regions of the terminal,
windows are bordered boxes and exec bindings open simulated windows.

Most terminals never report the super key, so the preview treats alt
as super unless --no-alt-super is given.`,
		Example: `  # Run the preview with two windows
  tilewm

  # Two side-by-side outputs, four windows, gaps between tiles
  tilewm --outputs 2 --windows 4 --gaps 1

  # Also start the real process for exec bindings
  tilewm --spawn

  # Run with a specific theme
  tilewm --theme dracula

  # Serve the preview over SSH
  tilewm ssh --port 2222

  # Replay a scenario headlessly
  tilewm tape play scenario.yaml

  # List all keybindings
  tilewm keybinds list`,
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLocal(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file to use instead of the XDG default")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().IntVar(&gaps, "gaps", -1, fmt.Sprintf("Inset around tiled windows, 0-%d (default: from config)", config.MaxGaps))
	rootCmd.PersistentFlags().Float64Var(&splitRatio, "split-ratio", 0, "Share of a new split kept by the existing window, 0.05-0.95 (default: from config)")
	rootCmd.PersistentFlags().StringVar(&orientation, "orientation", "", "Split orientation: auto, horizontal, vertical (default: from config)")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Draw borders with ASCII characters")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, hidden, ascii (default: from config or rounded)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use standard terminal colors")
	rootCmd.PersistentFlags().IntVar(&numOutputs, "outputs", 1, "Number of side-by-side outputs to simulate (1-4)")
	rootCmd.PersistentFlags().IntVar(&numWindows, "windows", 2, "Number of windows to open at start")
	rootCmd.PersistentFlags().BoolVar(&noAltSuper, "no-alt-super", false, "Do not treat alt as the super modifier")
	rootCmd.Flags().BoolVar(&spawnReal, "spawn", false, "Also start the real process for exec bindings")

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve the preview over SSH",
		Long: `Serve the preview over SSH

Every connection gets its own window manager sized to the client's
terminal. Exec bindings open simulated windows only; nothing runs on
the server. A host key is generated if none exists.`,
		Example: `  # Start SSH server on default port
  tilewm ssh

  # Start on custom port
  tilewm ssh --port 2222

  # Specify custom host key
  tilewm ssh --key-path /path/to/host_key`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSSHServer(cmd.Context(), sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", config.DefaultSSHPort, "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	var webPort, webHost string
	var webReadOnly bool
	var webMaxConnections int

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the preview in the browser",
		Long: `Serve the preview in the browser

Powered by sip (github.com/Gaurav-Gosain/sip): WebTransport with a
WebSocket fallback and a self-signed certificate for development.`,
		Example: `  # Start web server on default port (7681)
  tilewm web

  # Bind to all interfaces, view only
  tilewm web --host 0.0.0.0 --read-only`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWebServer(cmd.Context(), webHost, webPort, webReadOnly, webMaxConnections)
		},
	}

	webCmd.Flags().StringVar(&webPort, "port", config.DefaultWebPort, "Web server port")
	webCmd.Flags().StringVar(&webHost, "host", "localhost", "Web server host")
	webCmd.Flags().BoolVar(&webReadOnly, "read-only", false, "Disable input from clients (view only)")
	webCmd.Flags().IntVar(&webMaxConnections, "max-connections", 0, "Maximum concurrent connections (0 = unlimited)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tilewm configuration",
		Long:  `Manage tilewm configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the tilewm configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the tilewm configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the tilewm configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults(resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")

	configValidateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a configuration file",
		Long: `Check a configuration file and list every entry that would be
ignored. Exits non-zero when there are problems.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := configFile
			if len(args) > 0 {
				path = args[0]
			}
			return validateConfigFile(path)
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd, configValidateCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect tilewm keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long: `Display all configured keybindings. Output is a formatted table on a
terminal and tab-separated otherwise.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	keybindsActionsCmd := &cobra.Command{
		Use:   "actions",
		Short: "List the action names usable in bindings",
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, name := range config.ActionNames() {
				fmt.Println(name)
			}
			return nil
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsActionsCmd)

	var dumpState, useUserConfig bool

	tapeCmd := &cobra.Command{
		Use:   "tape",
		Short: "Run and check scenario scripts",
		Long: `Run and check YAML scenario scripts

A tape attaches outputs, maps surfaces and presses keys against a
headless window manager, checking expectations along the way. Every
invariant is verified after each step.`,
		Example: `  # Run a scenario
  tilewm tape play scenario.yaml

  # Print the final state as YAML
  tilewm tape play --dump-state scenario.yaml

  # Validate tape file syntax
  tilewm tape validate scenario.yaml`,
	}

	tapePlayCmd := &cobra.Command{
		Use:   "play <file.yaml>",
		Short: "Run a tape headlessly",
		Long: `Replay a tape against a headless window manager and report unmet
expectations. Exec actions are logged, not run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTape(cmd.Context(), args[0], dumpState, useUserConfig)
		},
	}
	tapePlayCmd.Flags().BoolVar(&dumpState, "dump-state", false, "Print the final state as YAML")
	tapePlayCmd.Flags().BoolVar(&useUserConfig, "user-config", false, "Start from the user config instead of the defaults")

	tapeValidateCmd := &cobra.Command{
		Use:   "validate <file.yaml>",
		Short: "Validate a tape file without running it",
		Long:  `Check if a tape file is well formed`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return validateTapeFile(args[0])
		},
	}

	tapeCmd.AddCommand(tapePlayCmd, tapeValidateCmd)

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List all available themes",
		RunE: func(_ *cobra.Command, _ []string) error {
			return listThemes()
		},
	}

	rootCmd.AddCommand(sshCmd, webCmd, configCmd, keybindsCmd, tapeCmd, themesCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
