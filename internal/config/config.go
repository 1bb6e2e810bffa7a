// Package config loads joyshop's runtime settings from flags, JOYSHOP_*
// environment variables and an optional joyshop.yaml file.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soar/joyshop/internal/engine"
	"github.com/soar/joyshop/internal/gamepad"
)

const envPrefix = "JOYSHOP"

type Config struct {
	Listen       string        `mapstructure:"listen"`
	Overlay      bool          `mapstructure:"overlay"`
	Tray         bool          `mapstructure:"tray"`
	DryRun       bool          `mapstructure:"dry_run"`
	Verbose      bool          `mapstructure:"verbose"`
	Watch        bool          `mapstructure:"watch"`
	Bindings     string        `mapstructure:"bindings"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Stick        Stick         `mapstructure:"stick"`
	Haptic       Haptic        `mapstructure:"haptic"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type Stick struct {
	Slots       int     `mapstructure:"slots"`
	Offset      int     `mapstructure:"offset"`
	EnterRadius float64 `mapstructure:"enter_radius"`
	ExitRadius  float64 `mapstructure:"exit_radius"`
}

type Haptic struct {
	Duration  time.Duration `mapstructure:"duration"`
	Intensity float64       `mapstructure:"intensity"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "127.0.0.1:8080")
	v.SetDefault("overlay", true)
	v.SetDefault("tray", runtime.GOOS == "windows" || runtime.GOOS == "darwin")
	v.SetDefault("dry_run", false)
	v.SetDefault("verbose", false)
	v.SetDefault("watch", false)
	v.SetDefault("bindings", "bindings.yaml")
	v.SetDefault("poll_interval", 16*time.Millisecond)
	v.SetDefault("stick.slots", gamepad.DefaultSlots)
	v.SetDefault("stick.offset", 0)
	v.SetDefault("stick.enter_radius", gamepad.DefaultEnterRadius)
	v.SetDefault("stick.exit_radius", gamepad.DefaultExitRadius)
	v.SetDefault("haptic.duration", engine.DefaultHapticDuration)
	v.SetDefault("haptic.intensity", engine.DefaultHapticIntensity)
}

// newFlagSet declares the command line. Flag names use dashes; the config
// key each one overrides is given in flagKeys.
func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("joyshop", pflag.ContinueOnError)
	fs.String("config", "", "config file (default joyshop.yaml in . or the user config dir)")
	fs.String("listen", "127.0.0.1:8080", "overlay server address")
	fs.Bool("overlay", true, "publish activations to the overlay")
	fs.Bool("tray", false, "show the system tray icon")
	fs.Bool("dry-run", false, "log key events instead of injecting them")
	fs.BoolP("verbose", "v", false, "log every activation")
	fs.Bool("watch", false, "print activations from a running instance and exit")
	fs.String("bindings", "bindings.yaml", "binding table file")
	fs.Duration("poll-interval", 16*time.Millisecond, "controller poll interval")
	return fs
}

var flagKeys = map[string]string{
	"listen":        "listen",
	"overlay":       "overlay",
	"tray":          "tray",
	"dry-run":       "dry_run",
	"verbose":       "verbose",
	"watch":         "watch",
	"bindings":      "bindings",
	"poll-interval": "poll_interval",
}

// Load parses args and merges every configuration source. Flags win over
// the environment, which wins over the file, which wins over defaults.
func Load(args []string) (*Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, errors.Wrapf(err, "bind flag %s", name)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file, _ := fs.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("joyshop")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "joyshop"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the zone classifier relies on.
func (c *Config) Validate() error {
	s := c.Stick
	if s.Slots <= 0 || 360%s.Slots != 0 {
		return errors.Errorf("stick.slots must divide 360, got %d", s.Slots)
	}
	if s.EnterRadius <= 0 || s.ExitRadius < 0 {
		return errors.Errorf("stick radii must be positive, got enter %g exit %g", s.EnterRadius, s.ExitRadius)
	}
	if s.ExitRadius >= s.EnterRadius {
		return errors.Errorf("stick.exit_radius (%g) must be below stick.enter_radius (%g)", s.ExitRadius, s.EnterRadius)
	}
	if c.PollInterval <= 0 {
		return errors.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.Haptic.Duration < 0 || c.Haptic.Intensity < 0 || c.Haptic.Intensity > 1 {
		return errors.Errorf("haptic settings out of range: duration %s intensity %g", c.Haptic.Duration, c.Haptic.Intensity)
	}
	if c.Bindings == "" {
		return errors.New("bindings file must be set")
	}
	return nil
}

func (c *Config) Classifier() gamepad.Classifier {
	return gamepad.Classifier{
		Slots:       c.Stick.Slots,
		Offset:      c.Stick.Offset,
		EnterRadius: c.Stick.EnterRadius,
		ExitRadius:  c.Stick.ExitRadius,
	}
}

// LoopOptions returns the polling loop settings.
func (c *Config) LoopOptions() engine.Options {
	return engine.Options{
		Classifier:      c.Classifier(),
		HapticDuration:  c.Haptic.Duration,
		HapticIntensity: c.Haptic.Intensity,
		Verbose:         c.Verbose,
	}
}
