// Package config provides configuration constants, keybinding management, and user settings.
package config

import "time"

// =============================================================================
// Workspaces
// =============================================================================

const (
	// MinWorkspace is the lowest workspace identifier
	MinWorkspace = 1

	// MaxWorkspaces is the highest workspace identifier a binding may reach
	MaxWorkspaces = 32

	// DefaultWorkspaceKeys is how many workspaces get default switch/move bindings
	DefaultWorkspaceKeys = 10
)

// =============================================================================
// Layout Defaults
// =============================================================================

const (
	// DefaultSplitRatio is the ratio given to a newly created split
	DefaultSplitRatio = 0.5

	// DefaultResizeStep is the ratio delta applied by one directional resize
	DefaultResizeStep = 0.05

	// DefaultGaps is the inset in pixels applied around each tiled window
	DefaultGaps = 0

	// MaxGaps bounds the configurable gap width
	MaxGaps = 200

	// OrientationAuto splits along the longer side of the focused leaf
	OrientationAuto = "auto"
)

// =============================================================================
// Floating Defaults
// =============================================================================

const (
	// DefaultFloatingWidth is the width of a window floated for the first time
	DefaultFloatingWidth = 800

	// DefaultFloatingHeight is the height of a window floated for the first time
	DefaultFloatingHeight = 600
)

// =============================================================================
// Files and Processes
// =============================================================================

const (
	// ConfigFileName is the XDG-relative location of the user config
	ConfigFileName = "tilewm/config.toml"

	// DefaultTerminal is the exec command bound to the default terminal key
	DefaultTerminal = "$TERMINAL"

	// DefaultShell runs exec commands
	DefaultShell = "/bin/sh"

	// ReloadDebounce coalesces bursts of config file writes
	ReloadDebounce = 150 * time.Millisecond
)

// =============================================================================
// Preview and Servers
// =============================================================================

const (
	// NormalFPS is the preview refresh rate
	NormalFPS = 60

	// PreviewOutputPrefix names the outputs the terminal preview attaches
	PreviewOutputPrefix = "preview-"

	// DefaultSSHPort is the port for `tilewm ssh`
	DefaultSSHPort = "2222"

	// DefaultWebPort is the port for `tilewm web`
	DefaultWebPort = "7681"
)

// Set by ApplyOverrides; read by the preview and servers.
var (
	// ThemeName is the active theme id, empty for terminal colours
	ThemeName = ""

	// BorderStyle is the preview window border style
	BorderStyle = "rounded"

	// UseASCIIOnly forces ASCII borders in the preview
	UseASCIIOnly = false
)
