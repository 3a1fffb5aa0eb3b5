package config

// Config is the top-level forcetree configuration, corresponding to .forcetree.yml.
type Config struct {
	DataPath        string `yaml:"data_path" koanf:"data_path"`
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Watch           bool   `yaml:"watch" koanf:"watch"`
	JournalPath     string `yaml:"journal_path" koanf:"journal_path"`
	// JournalRetentionDays prunes older journal entries at startup; 0 keeps everything.
	JournalRetentionDays int              `yaml:"journal_retention_days" koanf:"journal_retention_days"`
	View                 ViewConfig       `yaml:"view" koanf:"view"`
	Color                ColorConfig      `yaml:"color" koanf:"color"`
	Simulation           SimulationConfig `yaml:"simulation" koanf:"simulation"`
}

// ViewConfig holds the expand/collapse and aggregate settings.
type ViewConfig struct {
	SentinelName        string  `yaml:"sentinel_name" koanf:"sentinel_name"`
	CloseAllOnLoad      bool    `yaml:"close_all_on_load" koanf:"close_all_on_load"`
	ResetBoundsOnReload bool    `yaml:"reset_bounds_on_reload" koanf:"reset_bounds_on_reload"`
	AggregateHidden     bool    `yaml:"aggregate_hidden" koanf:"aggregate_hidden"`
	RadiusScale         float64 `yaml:"radius_scale" koanf:"radius_scale"`
	DefaultRadius       float64 `yaml:"default_radius" koanf:"default_radius"`
}

// ColorConfig holds the color scale. Mid is optional.
type ColorConfig struct {
	Mode      string `yaml:"mode" koanf:"mode"`
	Low       string `yaml:"low" koanf:"low"`
	Mid       string `yaml:"mid,omitempty" koanf:"mid"`
	High      string `yaml:"high" koanf:"high"`
	Neutral   string `yaml:"neutral" koanf:"neutral"`
	Collapsed string `yaml:"collapsed" koanf:"collapsed"`
	Expanded  string `yaml:"expanded" koanf:"expanded"`
	Leaf      string `yaml:"leaf" koanf:"leaf"`
}

// SimulationConfig holds the force layout parameters.
type SimulationConfig struct {
	LinkDistance float64 `yaml:"link_distance" koanf:"link_distance"`
	Charge       float64 `yaml:"charge" koanf:"charge"`
	Gravity      float64 `yaml:"gravity" koanf:"gravity"`
	LinkStrength float64 `yaml:"link_strength" koanf:"link_strength"`
	Width        int     `yaml:"width" koanf:"width"`
	Height       int     `yaml:"height" koanf:"height"`
}
