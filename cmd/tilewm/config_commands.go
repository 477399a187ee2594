package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/pelletier/go-toml/v2"
)

// errConfigProblems is returned by validate so the exit status is non-zero.
var errConfigProblems = errors.New("configuration has problems")

// printConfigPath prints the config file path
func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	// Ensure config file exists (create default if needed)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if err := config.WriteConfigFile(configPath, config.DefaultConfig()); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	// #nosec G204 - the editor is the user's choice
	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return validateConfigFile(configPath)
}

func findEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}

// resetConfigToDefaults resets the configuration file to default settings
func resetConfigToDefaults(yes bool) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil && !yes {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		var response string
		_, _ = fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))

		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.WriteConfigFile(configPath, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", configPath)
	fmt.Println("\nYou can customize it with: tilewm config edit")
	return nil
}

// validateConfigFile reports every entry of path that would be ignored.
func validateConfigFile(path string) error {
	if path == "" {
		p, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("could not determine config path: %w", err)
		}
		path = p
	}

	// #nosec G304 - reading the user's own config is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	problems, err := configProblems(data, os.Stderr)
	if err != nil {
		return err
	}

	if len(problems) == 0 {
		fmt.Printf("%s: ok\n", path)
		return nil
	}
	for _, p := range problems {
		fmt.Printf("%s: %s\n", path, p)
	}
	return fmt.Errorf("%w: %d entries ignored", errConfigProblems, len(problems))
}

// configProblems decodes data and returns the validation warnings. Binding
// collisions are logged to w.
func configProblems(data []byte, w io.Writer) ([]config.ValidationError, error) {
	var cfg config.UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	warnings := config.ValidateConfig(&cfg).Warnings
	config.NewKeybindRegistry(cfg.Bindings, newLogger(w))
	return warnings, nil
}
