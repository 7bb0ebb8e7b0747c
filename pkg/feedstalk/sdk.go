// Package feedstalk provides a public SDK for embedding FeedStalk as a
// library.
//
// Example usage:
//
//	client := feedstalk.New(
//	    feedstalk.WithTarget(100),
//	    feedstalk.WithMetric("comments"),
//	    feedstalk.WithOutput("jsonl", "./output/records.jsonl"),
//	)
//
//	result, err := client.Harvest(ctx, "https://m.example.com/somepage")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range result.Records {
//	    fmt.Println(rec.Text)
//	}
package feedstalk

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/IshaanNene/FeedStalk/internal/config"
	"github.com/IshaanNene/FeedStalk/internal/engine"
	"github.com/IshaanNene/FeedStalk/internal/feed"
	"github.com/IshaanNene/FeedStalk/internal/storage"
	"github.com/IshaanNene/FeedStalk/internal/types"
)

// Record is a harvested feed post.
type Record = types.Record

// Result is the outcome of one harvest.
type Result = engine.Result

// Client is the high-level API for using FeedStalk as a library.
type Client struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*config.Config)

// WithTarget sets how many records a harvest tries to collect.
func WithTarget(n int) Option {
	return func(c *config.Config) { c.Harvest.Target = n }
}

// WithMetric selects the engagement counter to extract: reactions,
// comments or shares.
func WithMetric(metric string) Option {
	return func(c *config.Config) { c.Harvest.Metric = metric }
}

// WithStallLimit sets how many barren reveal rounds are tolerated
// before a harvest gives up with a partial result.
func WithStallLimit(n int) Option {
	return func(c *config.Config) { c.Harvest.StallLimit = n }
}

// WithRevealDelay sets the wait after each reveal action.
func WithRevealDelay(d time.Duration) Option {
	return func(c *config.Config) { c.Harvest.RevealDelay = d }
}

// WithMinEngagement drops records whose extracted counter is known and
// below the floor.
func WithMinEngagement(n int64) Option {
	return func(c *config.Config) { c.Harvest.MinEngagement = n }
}

// WithItemSelector overrides the selector locating one feed item.
func WithItemSelector(selector, selectorType string) Option {
	return func(c *config.Config) {
		c.Feed.ItemSelector = selector
		c.Feed.SelectorType = selectorType
	}
}

// WithOutput sets the output format and path. Without this option,
// harvests return records in memory only.
func WithOutput(format, path string) Option {
	return func(c *config.Config) {
		c.Storage.Type = format
		c.Storage.OutputPath = path
	}
}

// WithUserAgent sets a custom browser User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *config.Config) { c.Browser.UserAgent = ua }
}

// WithHeadful runs the browser with a visible window.
func WithHeadful() Option {
	return func(c *config.Config) { c.Browser.Headless = false }
}

// WithVerbose enables debug-level logging.
func WithVerbose() Option {
	return func(c *config.Config) { c.Logging.Level = "debug" }
}

// New creates a Client with the given options. Without WithOutput, the
// storage type defaults to none and records are only returned in memory.
func New(opts ...Option) *Client {
	cfg := config.DefaultConfig()
	cfg.Storage.Type = "none"
	for _, opt := range opts {
		opt(cfg)
	}

	level := slog.LevelInfo
	if cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return &Client{cfg: cfg, logger: logger}
}

// Harvest drives a browser session against url and returns the
// extracted records.
func (c *Client) Harvest(ctx context.Context, url string) (*Result, error) {
	if err := config.Validate(c.cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := config.ValidateURL(url); err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", url, err)
	}

	session, err := feed.NewBrowserSession(c.cfg, c.logger)
	if err != nil {
		return nil, fmt.Errorf("open browser: %w", err)
	}
	defer session.Close()

	return c.run(ctx, session, url)
}

// HarvestSnapshot extracts records from a saved HTML document instead
// of a live browser session. ref is a file path or an http(s) URL.
func (c *Client) HarvestSnapshot(ctx context.Context, ref string) (*Result, error) {
	if err := config.Validate(c.cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	src, err := feed.LoadSnapshot(ctx, ref, c.cfg.Feed, c.logger)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	return c.run(ctx, src, ref)
}

// HarvestSource extracts records from a caller-supplied feed source.
func (c *Client) HarvestSource(ctx context.Context, src feed.Source, url string) (*Result, error) {
	if err := config.Validate(c.cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c.run(ctx, src, url)
}

func (c *Client) run(ctx context.Context, src feed.Source, url string) (*Result, error) {
	harvester := engine.NewHarvester(c.cfg, c.logger, nil)

	res, err := harvester.Run(ctx, src, url)
	if err != nil {
		return nil, err
	}

	if c.cfg.Storage.Type != "none" && c.cfg.Storage.Type != "" {
		store, err := storage.New(c.cfg.Storage, c.logger)
		if err != nil {
			return nil, fmt.Errorf("create storage: %w", err)
		}
		if err := store.Store(res.Records); err != nil {
			store.Close()
			return nil, fmt.Errorf("store records: %w", err)
		}
		if err := store.Close(); err != nil {
			return nil, fmt.Errorf("close storage: %w", err)
		}
	}

	return res, nil
}
