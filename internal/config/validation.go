package config

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/Gaurav-Gosain/tilewm/internal/geom"
	"github.com/charmbracelet/log"
)

// ValidationError describes one rejected config entry.
type ValidationError struct {
	Field   string
	Key     string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Field, e.Key, e.Message)
}

// ValidationResult collects config problems. Problems never stop startup:
// each offending entry is dropped so the default takes its place.
type ValidationResult struct {
	Warnings []ValidationError
}

// HasWarnings reports whether any entry was rejected.
func (v *ValidationResult) HasWarnings() bool { return len(v.Warnings) > 0 }

func (v *ValidationResult) warn(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationError{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

var borderStyles = map[string]bool{
	"rounded": true, "normal": true, "thick": true, "double": true, "ascii": true, "hidden": true,
}

// ValidateConfig checks cfg and clears every invalid entry in place.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	if lvl := cfg.General.LogLevel; lvl != "" {
		if _, err := log.ParseLevel(strings.ToLower(lvl)); err != nil {
			v.warn("general", "log_level", "unknown level %q", lvl)
			cfg.General.LogLevel = ""
		}
	}

	if r := cfg.Layout.SplitRatio; r != 0 && (r < geom.MinRatio || r > geom.MaxRatio) {
		v.warn("layout", "split_ratio", "%v outside %v..%v", r, geom.MinRatio, geom.MaxRatio)
		cfg.Layout.SplitRatio = 0
	}
	if s := cfg.Layout.ResizeStep; s < 0 || s > 0.5 {
		v.warn("layout", "resize_step", "%v outside 0..0.5", s)
		cfg.Layout.ResizeStep = 0
	}
	if g := cfg.Layout.Gaps; g < 0 || g > MaxGaps {
		v.warn("layout", "gaps", "%d outside 0..%d", g, MaxGaps)
		cfg.Layout.Gaps = 0
	}
	if o := cfg.Layout.Orientation; o != "" && o != OrientationAuto {
		if _, err := geom.ParseAxis(o); err != nil {
			v.warn("layout", "orientation", "%v", err)
			cfg.Layout.Orientation = ""
		}
	}

	if cfg.Floating.DefaultWidth < 0 {
		v.warn("floating", "default_width", "negative width %d", cfg.Floating.DefaultWidth)
		cfg.Floating.DefaultWidth = 0
	}
	if cfg.Floating.DefaultHeight < 0 {
		v.warn("floating", "default_height", "negative height %d", cfg.Floating.DefaultHeight)
		cfg.Floating.DefaultHeight = 0
	}

	if s := cfg.Appearance.BorderStyle; s != "" && !borderStyles[s] {
		v.warn("appearance", "border_style", "unknown style %q", s)
		cfg.Appearance.BorderStyle = ""
	}

	for k := range cfg.Workspaces {
		id, err := strconv.Atoi(k)
		if err != nil || id < MinWorkspace || id > MaxWorkspaces {
			v.warn("workspaces", k, "not a workspace id in %d..%d", MinWorkspace, MaxWorkspaces)
			delete(cfg.Workspaces, k)
		}
	}

	rules := cfg.Rules[:0]
	for i, r := range cfg.Rules {
		key := fmt.Sprintf("rules[%d]", i)
		if strings.TrimSpace(r.App) == "" {
			v.warn("rules", key, "empty app pattern")
			continue
		}
		if _, err := path.Match(r.App, ""); err != nil {
			v.warn("rules", key, "bad pattern %q: %v", r.App, err)
			continue
		}
		switch strings.ToLower(r.Mode) {
		case "tiled", "floating", "fullscreen":
		default:
			v.warn("rules", key, "unknown mode %q", r.Mode)
			continue
		}
		rules = append(rules, r)
	}
	cfg.Rules = rules

	bindings := cfg.Bindings[:0]
	for i, b := range cfg.Bindings {
		key := fmt.Sprintf("bindings[%d]", i)
		if _, err := ParseAction(b); err != nil {
			v.warn("bindings", key, "%v", err)
			continue
		}
		var keys []string
		for _, k := range b.Keys {
			if _, err := ParseChord(k); err != nil {
				v.warn("bindings", key, "%v", err)
				continue
			}
			keys = append(keys, k)
		}
		if len(keys) == 0 {
			v.warn("bindings", key, "no usable keys for %s", b.Action)
			continue
		}
		b.Keys = keys
		bindings = append(bindings, b)
	}
	cfg.Bindings = bindings

	return v
}
