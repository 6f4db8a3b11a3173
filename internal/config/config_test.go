package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ui:
  theme: catppuccin-mocha
filter:
  debounce_ms: 250
  check_columns: [1, 3]
data:
  source: csv
  path: /tmp/people.csv
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.UI.Theme != "catppuccin-mocha" {
		t.Errorf("expected theme catppuccin-mocha, got %s", cfg.UI.Theme)
	}
	if cfg.Filter.DebounceMs != 250 {
		t.Errorf("expected debounce 250, got %d", cfg.Filter.DebounceMs)
	}
	if len(cfg.Filter.CheckColumns) != 2 || cfg.Filter.CheckColumns[1] != 3 {
		t.Errorf("expected check columns [1 3], got %v", cfg.Filter.CheckColumns)
	}
	if cfg.Data.Source != "csv" || cfg.Data.Path != "/tmp/people.csv" {
		t.Errorf("unexpected data config: %+v", cfg.Data)
	}
	// Untouched keys keep their defaults
	if cfg.Data.DemoRows != 250000 {
		t.Errorf("expected default demo rows, got %d", cfg.Data.DemoRows)
	}
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data:\n  source: sqlite\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("source", "demo", "")
	flags.Int("rows", 0, "")
	if err := flags.Parse([]string{"--source", "postgres", "--rows", "10"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Data.Source != "postgres" {
		t.Errorf("expected flag to win, got %s", cfg.Data.Source)
	}
	if cfg.Data.DemoRows != 10 {
		t.Errorf("expected 10 demo rows, got %d", cfg.Data.DemoRows)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestGetDefaults(t *testing.T) {
	cfg := GetDefaults()
	if cfg.Filter.DebounceMs != 500 {
		t.Errorf("expected 500ms debounce, got %d", cfg.Filter.DebounceMs)
	}
	if cfg.Data.Source != "demo" {
		t.Errorf("expected demo source, got %s", cfg.Data.Source)
	}
}
