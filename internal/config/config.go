package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for FeedStalk.
type Config struct {
	Harvest Harvest `mapstructure:"harvest" yaml:"harvest"`
	Browser Browser `mapstructure:"browser" yaml:"browser"`
	Feed    Feed    `mapstructure:"feed"    yaml:"feed"`
	Storage Storage `mapstructure:"storage" yaml:"storage"`
	Logging Logging `mapstructure:"logging" yaml:"logging"`
	Metrics Metrics `mapstructure:"metrics" yaml:"metrics"`
}

// Harvest controls the convergence loop and extraction.
type Harvest struct {
	// Target is the number of records the run tries to collect.
	Target int `mapstructure:"target" yaml:"target"`

	// StallLimit is how many consecutive non-growing reveal iterations
	// are tolerated before giving up with a partial result.
	StallLimit int `mapstructure:"stall_limit" yaml:"stall_limit"`

	// MaxIterations is the hard ceiling on reveal iterations.
	MaxIterations int `mapstructure:"max_iterations" yaml:"max_iterations"`

	// RevealDelay is the wait after each reveal action, giving the
	// renderer time to settle.
	RevealDelay time.Duration `mapstructure:"reveal_delay" yaml:"reveal_delay"`

	// Metric selects the engagement counter to extract:
	// reactions, comments or shares.
	Metric string `mapstructure:"metric" yaml:"metric"`

	// MinEngagement drops records whose extracted counter is known and
	// below this value. 0 keeps everything.
	MinEngagement int64 `mapstructure:"min_engagement" yaml:"min_engagement"`
}

// Browser controls the headless browser collaborator.
type Browser struct {
	Headless      bool          `mapstructure:"headless"        yaml:"headless"`
	Stealth       bool          `mapstructure:"stealth"         yaml:"stealth"`
	UserAgent     string        `mapstructure:"user_agent"      yaml:"user_agent"`
	NavTimeout    time.Duration `mapstructure:"nav_timeout"     yaml:"nav_timeout"`
	NavRetries    int           `mapstructure:"nav_retries"     yaml:"nav_retries"`
	NavRetryDelay time.Duration `mapstructure:"nav_retry_delay" yaml:"nav_retry_delay"`
	SettleWindow  time.Duration `mapstructure:"settle_window"   yaml:"settle_window"`
	WindowSize    string        `mapstructure:"window_size"     yaml:"window_size"`
	UserDataDir   string        `mapstructure:"user_data_dir"   yaml:"user_data_dir"`
}

// Feed controls how rendered items are located in the document.
type Feed struct {
	// ItemSelector locates one feed item element.
	ItemSelector string `mapstructure:"item_selector" yaml:"item_selector"`

	// SelectorType is "css" or "xpath".
	SelectorType string `mapstructure:"selector_type" yaml:"selector_type"`
}

// Storage controls the record sink.
type Storage struct {
	Type       string `mapstructure:"type"        yaml:"type"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`

	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// Logging controls logging behavior.
type Logging struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// Metrics controls the metrics endpoint.
type Metrics struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Port    int    `mapstructure:"port"    yaml:"port"`
	Path    string `mapstructure:"path"    yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Harvest: Harvest{
			Target:        50,
			StallLimit:    3,
			MaxIterations: 60,
			RevealDelay:   1500 * time.Millisecond,
			Metric:        "reactions",
		},
		Browser: Browser{
			Headless:      true,
			Stealth:       true,
			UserAgent:     "Mozilla/5.0 (Linux; Android 10; K) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			NavTimeout:    30 * time.Second,
			NavRetries:    3,
			NavRetryDelay: 2 * time.Second,
			SettleWindow:  500 * time.Millisecond,
		},
		Feed: Feed{
			ItemSelector: `div[role="article"]`,
			SelectorType: "css",
		},
		Storage: Storage{
			Type:       "json",
			OutputPath: "./output/records.json",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Metrics: Metrics{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
	}
}
