package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Harvest.Target < 1 {
		return fmt.Errorf("harvest.target must be >= 1, got %d", cfg.Harvest.Target)
	}
	if cfg.Harvest.StallLimit < 1 {
		return fmt.Errorf("harvest.stall_limit must be >= 1, got %d", cfg.Harvest.StallLimit)
	}
	if cfg.Harvest.MaxIterations < 1 {
		return fmt.Errorf("harvest.max_iterations must be >= 1, got %d", cfg.Harvest.MaxIterations)
	}
	if cfg.Harvest.RevealDelay < 0 {
		return fmt.Errorf("harvest.reveal_delay must be >= 0")
	}
	if cfg.Harvest.MinEngagement < 0 {
		return fmt.Errorf("harvest.min_engagement must be >= 0, got %d", cfg.Harvest.MinEngagement)
	}
	switch cfg.Harvest.Metric {
	case "reactions", "comments", "shares":
	default:
		return fmt.Errorf("harvest.metric must be 'reactions', 'comments' or 'shares', got %q", cfg.Harvest.Metric)
	}

	if cfg.Browser.NavTimeout <= 0 {
		return fmt.Errorf("browser.nav_timeout must be > 0")
	}
	if cfg.Browser.NavRetries < 1 {
		return fmt.Errorf("browser.nav_retries must be >= 1, got %d", cfg.Browser.NavRetries)
	}
	if cfg.Browser.NavRetryDelay < 0 {
		return fmt.Errorf("browser.nav_retry_delay must be >= 0")
	}

	if strings.TrimSpace(cfg.Feed.ItemSelector) == "" {
		return fmt.Errorf("feed.item_selector must not be empty")
	}
	if cfg.Feed.SelectorType != "css" && cfg.Feed.SelectorType != "xpath" {
		return fmt.Errorf("feed.selector_type must be 'css' or 'xpath', got %q", cfg.Feed.SelectorType)
	}

	validStorageTypes := map[string]bool{
		"json": true, "jsonl": true, "csv": true, "mongodb": true, "none": true,
	}
	if !validStorageTypes[cfg.Storage.Type] {
		return fmt.Errorf("storage.type %q is not supported (valid: json, jsonl, csv, mongodb, none)", cfg.Storage.Type)
	}
	if cfg.Storage.Type == "mongodb" && cfg.Storage.MongoURI == "" {
		return fmt.Errorf("storage.mongo_uri is required for mongodb storage")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level %q is not supported (valid: debug, info, warn, error)", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Port < 1 || cfg.Metrics.Port > 65535 {
			return fmt.Errorf("metrics.port must be in 1..65535, got %d", cfg.Metrics.Port)
		}
	}

	return nil
}

// ValidateURL checks that a source URL is absolute http(s).
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL host must not be empty")
	}
	return nil
}
