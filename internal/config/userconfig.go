package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

// UserConfig represents the user's custom configuration
type UserConfig struct {
	General    GeneralConfig     `toml:"general"`
	Layout     LayoutConfig      `toml:"layout"`
	Floating   FloatingConfig    `toml:"floating"`
	Appearance AppearanceConfig  `toml:"appearance"`
	Workspaces map[string]string `toml:"workspaces"` // Optional names keyed by id, e.g. "1" = "web"
	Rules      []RuleConfig      `toml:"rules"`
	Bindings   []BindingConfig   `toml:"bindings"`
}

// GeneralConfig holds process-wide settings
type GeneralConfig struct {
	LogLevel        string `toml:"log_level"`         // debug, info, warn, error (default: info)
	FocusOnCreation *bool  `toml:"focus_on_creation"` // Focus newly mapped windows (default: true)
	Shell           string `toml:"shell"`             // Shell used for exec bindings (default: /bin/sh)
}

// LayoutConfig holds tiling settings
type LayoutConfig struct {
	SplitRatio  float64 `toml:"split_ratio"`  // Ratio of new splits (default: 0.5, range 0.05-0.95)
	ResizeStep  float64 `toml:"resize_step"`  // Ratio delta per resize key (default: 0.05)
	Gaps        int     `toml:"gaps"`         // Inset around tiled windows (default: 0)
	Orientation string  `toml:"orientation"`  // auto, horizontal, vertical (default: auto)
}

// FloatingConfig holds the geometry of windows floated for the first time
type FloatingConfig struct {
	DefaultWidth  int `toml:"default_width"`
	DefaultHeight int `toml:"default_height"`
}

// AppearanceConfig holds preview rendering settings
type AppearanceConfig struct {
	Theme       string `toml:"theme"`        // Color theme name (e.g., dracula, nord)
	BorderStyle string `toml:"border_style"` // rounded, normal, thick, double, ascii
}

// RuleConfig assigns a default mode to windows whose app hint matches.
type RuleConfig struct {
	App  string `toml:"app" yaml:"app"`   // Exact app hint or a path.Match glob
	Mode string `toml:"mode" yaml:"mode"` // tiled, floating, fullscreen
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	focus := true
	return &UserConfig{
		General: GeneralConfig{
			LogLevel:        "info",
			FocusOnCreation: &focus,
			Shell:           DefaultShell,
		},
		Layout: LayoutConfig{
			SplitRatio:  DefaultSplitRatio,
			ResizeStep:  DefaultResizeStep,
			Gaps:        DefaultGaps,
			Orientation: OrientationAuto,
		},
		Floating: FloatingConfig{
			DefaultWidth:  DefaultFloatingWidth,
			DefaultHeight: DefaultFloatingHeight,
		},
		Appearance: AppearanceConfig{
			BorderStyle: "rounded",
		},
		Workspaces: map[string]string{},
		Bindings:   DefaultBindings(),
	}
}

// FocusOnCreation reports the effective focus_on_creation value.
func (c *UserConfig) FocusOnCreation() bool {
	return c.General.FocusOnCreation == nil || *c.General.FocusOnCreation
}

// WorkspaceName returns the configured name of workspace id, if any.
func (c *UserConfig) WorkspaceName(id int) string {
	return c.Workspaces[fmt.Sprintf("%d", id)]
}

// LoadUserConfig loads the user configuration from XDG config directory,
// writing the defaults on first run.
func LoadUserConfig(logger *log.Logger) (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(ConfigFileName)
	if err != nil {
		return createDefaultConfig()
	}
	return LoadUserConfigFile(configPath, logger)
}

// LoadUserConfigFile parses path. Invalid entries are reported as warnings
// and replaced by their defaults; only an unreadable or unparseable file
// is an error.
func LoadUserConfigFile(path string, logger *log.Logger) (*UserConfig, error) {
	// #nosec G304 - reading the user's own config is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseUserConfig(data, logger)
}

// ParseUserConfig decodes TOML, validates it and fills gaps from defaults.
func ParseUserConfig(data []byte, logger *log.Logger) (*UserConfig, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	validation := ValidateConfig(&cfg)
	for _, warn := range validation.Warnings {
		logger.Warn("config entry ignored, using default",
			"section", warn.Field, "key", warn.Key, "reason", warn.Message)
	}

	defaultCfg := DefaultConfig()
	fillMissingGeneral(&cfg, defaultCfg)
	fillMissingLayout(&cfg, defaultCfg)
	fillMissingFloating(&cfg, defaultCfg)
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingBindings(&cfg, defaultCfg)
	if cfg.Workspaces == nil {
		cfg.Workspaces = map[string]string{}
	}
	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	configPath, err := xdg.ConfigFile(ConfigFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	if err := WriteConfigFile(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfigFile writes cfg to path with a commented header.
func WriteConfigFile(configPath string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# tilewm configuration\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("# For keybindings documentation, run: tilewm keybinds list\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# layout.split_ratio: share of a new split given to the existing window\n")
	sb.WriteString("#   Range: 0.05 to 0.95. Default: 0.5\n")
	sb.WriteString("# layout.orientation: auto splits the longer side of the focused window\n")
	sb.WriteString("#   Options: auto, horizontal, vertical. Default: auto\n")
	sb.WriteString("#\n")
	sb.WriteString("# [[rules]] app = \"pavucontrol\" mode = \"floating\"\n")
	sb.WriteString("#   Modes: tiled, floating, fullscreen\n")
	sb.WriteString("#\n")
	sb.WriteString("# [[bindings]] keys = [\"super+1\"] action = \"switch_workspace\" workspace = 1\n")
	sb.WriteString("#   Later bindings win when two claim the same chord.\n")
	sb.WriteString("#   Actions: " + strings.Join(ActionNames(), ", ") + "\n")
	sb.WriteString("# ============================================================================\n\n")
	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func fillMissingGeneral(cfg, defaultCfg *UserConfig) {
	if cfg.General.LogLevel == "" {
		cfg.General.LogLevel = defaultCfg.General.LogLevel
	}
	if cfg.General.FocusOnCreation == nil {
		cfg.General.FocusOnCreation = defaultCfg.General.FocusOnCreation
	}
	if cfg.General.Shell == "" {
		cfg.General.Shell = defaultCfg.General.Shell
	}
}

func fillMissingLayout(cfg, defaultCfg *UserConfig) {
	if cfg.Layout.SplitRatio == 0 {
		cfg.Layout.SplitRatio = defaultCfg.Layout.SplitRatio
	}
	if cfg.Layout.ResizeStep == 0 {
		cfg.Layout.ResizeStep = defaultCfg.Layout.ResizeStep
	}
	if cfg.Layout.Orientation == "" {
		cfg.Layout.Orientation = defaultCfg.Layout.Orientation
	}
}

func fillMissingFloating(cfg, defaultCfg *UserConfig) {
	if cfg.Floating.DefaultWidth <= 0 {
		cfg.Floating.DefaultWidth = defaultCfg.Floating.DefaultWidth
	}
	if cfg.Floating.DefaultHeight <= 0 {
		cfg.Floating.DefaultHeight = defaultCfg.Floating.DefaultHeight
	}
}

func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
}

// fillMissingBindings puts every default binding whose action the user did
// not bind in front of the user's entries, dropping chords the user already
// claimed so user bindings never collide with a filled default.
func fillMissingBindings(cfg, defaultCfg *UserConfig) {
	bound := make(map[string]bool)
	taken := make(map[Chord]bool)
	for _, b := range cfg.Bindings {
		if a, err := ParseAction(b); err == nil {
			bound[a.String()] = true
		}
		for _, k := range b.Keys {
			if c, err := ParseChord(k); err == nil {
				taken[c] = true
			}
		}
	}

	var filled []BindingConfig
	for _, d := range defaultCfg.Bindings {
		a, err := ParseAction(d)
		if err != nil || bound[a.String()] {
			continue
		}
		var keys []string
		for _, k := range d.Keys {
			if c, err := ParseChord(k); err == nil && !taken[c] {
				keys = append(keys, k)
			}
		}
		if len(keys) > 0 {
			d.Keys = keys
			filled = append(filled, d)
		}
	}
	cfg.Bindings = append(filled, cfg.Bindings...)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(ConfigFileName)
	if err != nil {
		return xdg.ConfigFile(ConfigFileName)
	}
	return path, nil
}

// ParseLogLevel maps the config's log_level onto a logger level.
func ParseLogLevel(s string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
