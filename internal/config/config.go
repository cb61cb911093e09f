// Package config provides configuration types for the growlist tool.
package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/vajrock/growlist/container"
)

// DefaultExtension is the file extension of growlist scripts.
const DefaultExtension = ".gl"

// MaxCapacity is the largest initial capacity a configuration or a script's
// new operation may ask for.
const MaxCapacity = 1 << 20

// Config holds the configuration for the growlist tool.
type Config struct {
	// InitialCapacity is the capacity of the container each script starts with.
	InitialCapacity int `toml:"initial_capacity"`

	// Growth is the growth policy name: "linear" or "doubling".
	Growth string `toml:"growth"`

	// Removal is the remove-by-value mode name: "filter" or "scan".
	Removal string `toml:"removal"`

	// StrictRender makes render fail on a container without elements.
	StrictRender bool `toml:"strict_render"`

	// Extension selects which files a directory walk picks up.
	Extension string `toml:"extension"`

	// Write writes each transcript next to its script instead of stdout.
	Write bool `toml:"-"`

	// List lists scripts with failing operations without printing transcripts.
	List bool `toml:"-"`

	// Verbose enables verbose output.
	Verbose bool `toml:"-"`
}

// DefaultConfig returns a Config with default settings.
func DefaultConfig() *Config {
	return &Config{
		InitialCapacity: container.DefaultCapacity,
		Growth:          container.GrowthLinear.String(),
		Removal:         container.RemovalFilter.String(),
		StrictRender:    false,
		Extension:       DefaultExtension,
		Write:           false,
		List:            false,
		Verbose:         false,
	}
}

// LoadFile reads a TOML file on top of the default configuration.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, errors.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks that the policy names and the capacity make sense.
func (c *Config) Validate() error {
	if c.InitialCapacity < 0 {
		return errors.Errorf("initial capacity must not be negative, got %d", c.InitialCapacity)
	}
	if c.InitialCapacity > MaxCapacity {
		return errors.Errorf("initial capacity %d exceeds the maximum of %d", c.InitialCapacity, MaxCapacity)
	}
	if _, err := ParseGrowth(c.Growth); err != nil {
		return err
	}
	if _, err := ParseRemoval(c.Removal); err != nil {
		return err
	}
	if c.Extension == "" || !strings.HasPrefix(c.Extension, ".") {
		return errors.Errorf("extension must start with a dot, got %q", c.Extension)
	}
	return nil
}

// ContainerOptions converts the configuration into container options.
// The configuration must be valid.
func (c *Config) ContainerOptions() container.Options {
	growth, _ := ParseGrowth(c.Growth)
	removal, _ := ParseRemoval(c.Removal)
	return container.Options{
		container.OptionInitialCapacity(c.InitialCapacity),
		container.OptionGrowth(growth),
		container.OptionRemoval(removal),
		container.OptionStrictRender(c.StrictRender),
	}
}

// ParseGrowth returns the growth policy with the given name.
func ParseGrowth(name string) (container.Growth, error) {
	for _, g := range []container.Growth{container.GrowthLinear, container.GrowthDoubling} {
		if g.String() == name {
			return g, nil
		}
	}
	return 0, errors.Errorf("unknown growth policy %q", name)
}

// ParseRemoval returns the removal mode with the given name.
func ParseRemoval(name string) (container.Removal, error) {
	for _, r := range []container.Removal{container.RemovalFilter, container.RemovalScan} {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, errors.Errorf("unknown removal mode %q", name)
}
