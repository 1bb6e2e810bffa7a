package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soar/joyshop/internal/gamepad"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != "127.0.0.1:8080" || !cfg.Overlay || cfg.DryRun || cfg.Bindings != "bindings.yaml" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.PollInterval != 16*time.Millisecond {
		t.Errorf("PollInterval = %s", cfg.PollInterval)
	}
	if got := cfg.Classifier(); got != gamepad.DefaultClassifier() {
		t.Errorf("Classifier() = %+v, want %+v", got, gamepad.DefaultClassifier())
	}
	if cfg.Haptic.Duration != 30*time.Millisecond || cfg.Haptic.Intensity != 1.0 {
		t.Errorf("Haptic = %+v", cfg.Haptic)
	}
}

func TestFlags(t *testing.T) {
	cfg, err := Load([]string{"--dry-run", "--listen", ":9000", "--poll-interval", "8ms", "-v"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.DryRun || !cfg.Verbose || cfg.Listen != ":9000" || cfg.PollInterval != 8*time.Millisecond {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if !cfg.LoopOptions().Verbose {
		t.Error("LoopOptions did not carry verbose")
	}
}

func TestFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "joyshop.yaml")
	data := `
listen: 0.0.0.0:7000
overlay: false
stick:
  enter_radius: 900
  exit_radius: 400
haptic:
  duration: 50ms
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JOYSHOP_STICK_EXIT_RADIUS", "300")
	t.Setenv("JOYSHOP_LISTEN", "127.0.0.1:7100")

	cfg, err := Load([]string{"--config", path, "--listen", ":7200"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.File != path {
		t.Errorf("File = %q, want %q", cfg.File, path)
	}
	if cfg.Overlay {
		t.Error("overlay from file ignored")
	}
	if cfg.Stick.EnterRadius != 900 {
		t.Errorf("EnterRadius = %g, want 900 from file", cfg.Stick.EnterRadius)
	}
	if cfg.Stick.ExitRadius != 300 {
		t.Errorf("ExitRadius = %g, want 300 from env", cfg.Stick.ExitRadius)
	}
	if cfg.Listen != ":7200" {
		t.Errorf("Listen = %q, want flag value", cfg.Listen)
	}
	if cfg.Haptic.Duration != 50*time.Millisecond {
		t.Errorf("Haptic.Duration = %s", cfg.Haptic.Duration)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(nil)
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"slots not dividing 360", func(c *Config) { c.Stick.Slots = 7 }, "divide 360"},
		{"zero slots", func(c *Config) { c.Stick.Slots = 0 }, "divide 360"},
		{"exit above enter", func(c *Config) { c.Stick.ExitRadius = 900 }, "exit_radius"},
		{"exit equals enter", func(c *Config) { c.Stick.ExitRadius = c.Stick.EnterRadius }, "exit_radius"},
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }, "poll_interval"},
		{"intensity above one", func(c *Config) { c.Haptic.Intensity = 1.5 }, "haptic"},
		{"empty bindings", func(c *Config) { c.Bindings = "" }, "bindings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}

	if err := base().Validate(); err != nil {
		t.Errorf("defaults rejected: %v", err)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "joyshop.yaml")
	if err := os.WriteFile(path, []byte("stick:\n  slots: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load([]string{"--config", path}); err == nil {
		t.Error("Load accepted stick.slots = 7")
	}
}
