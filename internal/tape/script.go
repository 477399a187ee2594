// Package tape loads YAML scripts of backend events and key presses and
// replays them against a headless window manager, checking expectations
// along the way.
package tape

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/Gaurav-Gosain/tilewm/internal/app"
	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/geom"
	"gopkg.in/yaml.v3"
)

// ErrInvalidStep is wrapped by every script validation failure.
var ErrInvalidStep = errors.New("invalid step")

// Script is a named sequence of steps. Bindings are loaded after the
// defaults, so they override colliding chords.
type Script struct {
	Name     string                 `yaml:"name"`
	Gaps     int                    `yaml:"gaps,omitempty"`
	Bindings []config.BindingConfig `yaml:"bindings,omitempty"`
	Rules    []config.RuleConfig    `yaml:"rules,omitempty"`
	Steps    []Step                 `yaml:"steps"`
}

// Step holds exactly one of its fields.
type Step struct {
	Attach *OutputStep `yaml:"attach,omitempty"`
	Detach string      `yaml:"detach,omitempty"`
	Map    *MapStep    `yaml:"map,omitempty"`
	Unmap  string      `yaml:"unmap,omitempty"`
	Key    string      `yaml:"key,omitempty"`
	Expect *Expect     `yaml:"expect,omitempty"`
}

// OutputStep attaches (or resizes) an output.
type OutputStep struct {
	ID   string    `yaml:"id"`
	Rect geom.Rect `yaml:"rect"`
}

// MapStep maps a new surface.
type MapStep struct {
	ID  string `yaml:"id"`
	App string `yaml:"app,omitempty"`
}

// Expect lists assertions against the manager after the previous step.
// Unset fields are not checked.
type Expect struct {
	Focused   *string                 `yaml:"focused,omitempty"`
	Workspace int                     `yaml:"workspace,omitempty"`
	Outputs   map[string]int          `yaml:"outputs,omitempty"`
	Leaves    map[int]int             `yaml:"leaves,omitempty"`
	Windows   map[string]WindowExpect `yaml:"windows,omitempty"`
}

// WindowExpect describes one window. Absent asserts the window is gone.
type WindowExpect struct {
	Mode      string     `yaml:"mode,omitempty"`
	Workspace int        `yaml:"workspace,omitempty"`
	Rect      *geom.Rect `yaml:"rect,omitempty"`
	Visible   *bool      `yaml:"visible,omitempty"`
	Absent    bool       `yaml:"absent,omitempty"`
}

// Kind names the populated field, or "" when the step is empty.
func (s Step) Kind() string {
	switch {
	case s.Attach != nil:
		return "attach"
	case s.Detach != "":
		return "detach"
	case s.Map != nil:
		return "map"
	case s.Unmap != "":
		return "unmap"
	case s.Key != "":
		return "key"
	case s.Expect != nil:
		return "expect"
	}
	return ""
}

func (s Step) fields() int {
	n := 0
	for _, set := range []bool{s.Attach != nil, s.Detach != "", s.Map != nil, s.Unmap != "", s.Key != "", s.Expect != nil} {
		if set {
			n++
		}
	}
	return n
}

// StepError locates a validation failure.
type StepError struct {
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Index+1, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tape: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse tape: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every step without running anything. All failures are
// returned joined.
func (s *Script) Validate() error {
	var errs []error
	bad := func(i int, format string, args ...any) {
		errs = append(errs, &StepError{Index: i, Err: fmt.Errorf("%w: "+format, append([]any{ErrInvalidStep}, args...)...)})
	}

	for i, st := range s.Steps {
		if n := st.fields(); n != 1 {
			bad(i, "expected exactly one action, got %d", n)
			continue
		}
		switch st.Kind() {
		case "attach":
			if st.Attach.ID == "" {
				bad(i, "attach without id")
			}
			if st.Attach.Rect.Empty() {
				bad(i, "attach %q with empty rect", st.Attach.ID)
			}
		case "map":
			if st.Map.ID == "" {
				bad(i, "map without id")
			}
		case "key":
			if _, err := config.ParseChord(st.Key); err != nil {
				bad(i, "%v", err)
			}
		case "expect":
			for id, w := range st.Expect.Windows {
				if w.Mode != "" {
					if _, err := app.ParseMode(w.Mode); err != nil {
						bad(i, "window %q: %v", id, err)
					}
				}
			}
		}
	}
	return errors.Join(errs...)
}
