package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kingrea/windscout/internal/config"
)

const latestRunFile = "latest.json"

// ErrNoRun is returned when no run has been persisted yet.
var ErrNoRun = errors.New("pipeline: no run recorded")

// SaveLatest serializes the run into .windscout/runs/latest.json so the
// TUI and the results server can read it after the process exits.
func SaveLatest(cfg *config.Config, run Run) error {
	if cfg == nil {
		return fmt.Errorf("pipeline: config is required")
	}
	if err := os.MkdirAll(cfg.RunsDir(), 0o755); err != nil {
		return fmt.Errorf("pipeline: ensure runs dir: %w", err)
	}
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("pipeline: encode run: %w", err)
	}
	path := filepath.Join(cfg.RunsDir(), latestRunFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("pipeline: write %s: %w", path, err)
	}
	return nil
}

// LoadLatest reads the most recently persisted run.
func LoadLatest(cfg *config.Config) (Run, error) {
	if cfg == nil {
		return Run{}, fmt.Errorf("pipeline: config is required")
	}
	path := filepath.Join(cfg.RunsDir(), latestRunFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Run{}, ErrNoRun
		}
		return Run{}, fmt.Errorf("pipeline: read %s: %w", path, err)
	}
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return Run{}, fmt.Errorf("pipeline: parse %s: %w", path, err)
	}
	return run, nil
}
