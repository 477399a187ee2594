package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Gaurav-Gosain/tilewm/internal/config"
	"github.com/Gaurav-Gosain/tilewm/internal/tape"
	"gopkg.in/yaml.v3"
)

// runTape replays path headlessly and prints a summary. Unmet expectations
// make the command fail.
func runTape(ctx context.Context, path string, dumpState, useUserConfig bool) error {
	s, err := tape.Load(path)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr)
	logger.SetLevel(config.ParseLogLevel("warn"))
	if debugMode {
		logger.SetLevel(config.ParseLogLevel("debug"))
	}

	opts := []tape.Option{tape.WithLogger(logger)}
	if useUserConfig {
		cfg, _ := loadConfig(logger)
		opts = append(opts, tape.WithConfig(cfg))
	}

	res, playErr := tape.Play(ctx, s, opts...)
	if res != nil {
		if err := printTapeResult(os.Stdout, res, dumpState); err != nil {
			return err
		}
	}
	if errors.Is(playErr, tape.ErrExpectationFailed) {
		return playErr
	}
	if playErr != nil {
		return fmt.Errorf("tape %s: %w", path, playErr)
	}
	return nil
}

func printTapeResult(w io.Writer, res *tape.Result, dumpState bool) error {
	name := res.Name
	if name == "" {
		name = "tape"
	}
	status := "PASS"
	if !res.Passed() {
		status = "FAIL"
	}
	_, _ = fmt.Fprintf(w, "%s %s (%d steps)\n", status, name, res.Steps)
	for _, f := range res.Failures {
		_, _ = fmt.Fprintf(w, "  %s\n", f)
	}

	if !dumpState {
		return nil
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res.State); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return enc.Close()
}

// validateTapeFile checks that a tape parses and every step is well formed.
func validateTapeFile(path string) error {
	s, err := tape.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s: ok (%d steps)\n", path, len(s.Steps))
	return nil
}
