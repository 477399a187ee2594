package config

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// Debug forces the debug log level
	Debug bool

	// Gaps overrides layout.gaps (negative means unset)
	Gaps int

	// SplitRatio overrides layout.split_ratio (0 means unset)
	SplitRatio float64

	// Orientation overrides layout.orientation
	Orientation string

	// ASCIIOnly uses ASCII borders in the preview
	ASCIIOnly bool

	// BorderStyle overrides the preview border style
	BorderStyle string

	// ThemeName is the theme to load
	ThemeName string
}

// NoOverrides returns Overrides with every field unset.
func NoOverrides() Overrides {
	return Overrides{Gaps: -1}
}

// ApplyOverrides applies CLI flag overrides onto userConfig and the preview
// globals. A CLI flag takes precedence over the config file. It returns the
// warnings for flag values that were out of range and ignored.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	if overrides.Debug {
		userConfig.General.LogLevel = "debug"
	}

	if overrides.Gaps >= 0 {
		if overrides.Gaps > MaxGaps {
			v.warn("flags", "gaps", "%d outside 0..%d", overrides.Gaps, MaxGaps)
		} else {
			userConfig.Layout.Gaps = overrides.Gaps
		}
	}

	if overrides.SplitRatio != 0 {
		probe := UserConfig{Layout: LayoutConfig{SplitRatio: overrides.SplitRatio}}
		if ValidateConfig(&probe).HasWarnings() {
			v.warn("flags", "split-ratio", "%v out of range", overrides.SplitRatio)
		} else {
			userConfig.Layout.SplitRatio = overrides.SplitRatio
		}
	}

	if overrides.Orientation != "" {
		probe := UserConfig{Layout: LayoutConfig{Orientation: overrides.Orientation}}
		if ValidateConfig(&probe).HasWarnings() {
			v.warn("flags", "orientation", "unknown orientation %q", overrides.Orientation)
		} else {
			userConfig.Layout.Orientation = overrides.Orientation
		}
	}

	if overrides.ASCIIOnly {
		UseASCIIOnly = true
	}

	// Border Style - CLI flag takes precedence, otherwise use user config
	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	// Theme - CLI flag takes precedence, otherwise use user config
	ThemeName = overrides.ThemeName
	if ThemeName == "" {
		ThemeName = userConfig.Appearance.Theme
	}

	return v
}
