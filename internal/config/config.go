package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides. A double underscore descends into
// a section: FORCETREE_VIEW__CLOSE_ALL_ON_LOAD=true.
const EnvPrefix = "FORCETREE_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FORCETREE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: FORCETREE_DATA_PATH -> data_path,
	// FORCETREE_COLOR__MODE -> color.mode.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("data_path is required")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.JournalRetentionDays < 0 {
		return fmt.Errorf("journal_retention_days must not be negative")
	}

	if c.View.SentinelName == "" {
		return fmt.Errorf("view.sentinel_name is required")
	}
	if c.View.RadiusScale <= 0 {
		return fmt.Errorf("view.radius_scale must be positive")
	}
	if c.View.DefaultRadius <= 0 {
		return fmt.Errorf("view.default_radius must be positive")
	}

	if err := c.Palette().Validate(); err != nil {
		return fmt.Errorf("color: %w", err)
	}

	if c.Simulation.LinkDistance <= 0 {
		return fmt.Errorf("simulation.link_distance must be positive")
	}
	if c.Simulation.Width <= 0 || c.Simulation.Height <= 0 {
		return fmt.Errorf("simulation width and height must be positive")
	}

	return nil
}
