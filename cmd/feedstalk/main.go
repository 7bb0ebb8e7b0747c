package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/FeedStalk/internal/config"
	"github.com/IshaanNene/FeedStalk/internal/engine"
	"github.com/IshaanNene/FeedStalk/internal/feed"
	"github.com/IshaanNene/FeedStalk/internal/observability"
	"github.com/IshaanNene/FeedStalk/internal/storage"
)

var (
	cfgFile      string
	verbose      bool
	outputPath   string
	outputType   string
	target       int
	metric       string
	stallLimit   int
	revealDelay  string
	itemSelector string
	selectorType string
	snapshot     string
	headful      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "feedstalk",
		Short: "FeedStalk — convergence-driven feed extraction",
		Long: `FeedStalk extracts post records from virtually-scrolled social feeds.

It drives a headless browser (or replays a saved snapshot), reveals
more of the feed until the requested number of items is present or
growth stalls, then extracts text, engagement counts and timestamps
from every visible item. English and Arabic feeds are supported,
including Arabic-Indic digits, magnitude words and month names.

Output goes to JSON, JSONL, CSV or MongoDB.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(harvestCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// harvestCmd creates the "harvest" subcommand.
func harvestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest [url]",
		Short: "Harvest records from a feed URL",
		Long:  "Navigate to the feed URL, load items until the target count is reached or growth stalls, and extract records.",
		Args:  cobra.ExactArgs(1),
		RunE:  runHarvest,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path")
	cmd.Flags().StringVarP(&outputType, "format", "f", "", "output format: json, jsonl, csv, mongodb, none")
	cmd.Flags().IntVarP(&target, "target", "n", 0, "number of records to collect (0 = config default)")
	cmd.Flags().StringVarP(&metric, "metric", "m", "", "engagement metric: reactions, comments, shares")
	cmd.Flags().IntVar(&stallLimit, "stall-limit", 0, "barren reveal rounds tolerated before giving up")
	cmd.Flags().StringVar(&revealDelay, "reveal-delay", "", "wait after each reveal, e.g. 1500ms")
	cmd.Flags().StringVar(&itemSelector, "item-selector", "", "selector locating one feed item")
	cmd.Flags().StringVar(&selectorType, "selector-type", "", "selector type: css or xpath")
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "harvest a saved HTML snapshot (file path or URL) instead of driving a browser")
	cmd.Flags().BoolVar(&headful, "headful", false, "run the browser with a visible window")

	return cmd
}

// runHarvest executes the harvest command.
func runHarvest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	applyCLIOverrides(cfg)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg)

	url := args[0]
	if snapshot == "" {
		if err := config.ValidateURL(url); err != nil {
			return fmt.Errorf("invalid URL %q: %w", url, err)
		}
	}

	logger.Info("starting harvest",
		"url", url,
		"target", cfg.Harvest.Target,
		"metric", cfg.Harvest.Metric,
		"output", cfg.Storage.OutputPath,
		"format", cfg.Storage.Type,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down...", "signal", sig)
		cancel()
	}()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(logger)
		if err := metrics.StartServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Warn("failed to start metrics server", "error", err)
		}
	}

	src, closeSrc, err := openSource(ctx, cfg, url, logger)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer closeSrc()

	if session, ok := src.(*feed.BrowserSession); ok && metrics != nil {
		session.SetMetrics(metrics)
	}

	store, err := storage.New(cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}

	harvester := engine.NewHarvester(cfg, logger, metrics)

	start := time.Now()
	res, err := harvester.Run(ctx, src, url)
	if err != nil {
		return fmt.Errorf("harvest: %w", err)
	}

	if err := store.Store(res.Records); err != nil {
		return fmt.Errorf("store records: %w", err)
	}
	if metrics != nil {
		metrics.ItemsStored.Add(int64(len(res.Records)))
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}

	elapsed := time.Since(start)
	logger.Info("harvest complete",
		"elapsed", elapsed,
		"records", len(res.Records),
		"loaded", res.LoadedCount,
		"target_reached", res.TargetReached,
	)

	fmt.Printf("\n✅ Harvest complete in %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("   Records:  %d collected (%d items loaded)\n", len(res.Records), res.LoadedCount)
	if !res.TargetReached {
		fmt.Printf("   Note:     feed stopped growing before the target of %d\n", cfg.Harvest.Target)
	}
	if store.Name() != "none" {
		fmt.Printf("   Output:   %s (%s)\n", cfg.Storage.OutputPath, store.Name())
	}

	return nil
}

// openSource picks the feed source: a saved snapshot when --snapshot is
// set, a live browser session otherwise.
func openSource(ctx context.Context, cfg *config.Config, url string, logger *slog.Logger) (feed.Source, func(), error) {
	if snapshot != "" {
		src, err := feed.LoadSnapshot(ctx, snapshot, cfg.Feed, logger)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	}

	session, err := feed.NewBrowserSession(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return session, func() {
		if err := session.Close(); err != nil {
			logger.Warn("browser close failed", "error", err)
		}
	}, nil
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("FeedStalk %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Harvest:\n")
			fmt.Printf("  Target:           %d\n", cfg.Harvest.Target)
			fmt.Printf("  Stall Limit:      %d\n", cfg.Harvest.StallLimit)
			fmt.Printf("  Max Iterations:   %d\n", cfg.Harvest.MaxIterations)
			fmt.Printf("  Reveal Delay:     %s\n", cfg.Harvest.RevealDelay)
			fmt.Printf("  Metric:           %s\n", cfg.Harvest.Metric)
			fmt.Printf("  Min Engagement:   %d\n", cfg.Harvest.MinEngagement)
			fmt.Printf("\nBrowser:\n")
			fmt.Printf("  Headless:         %v\n", cfg.Browser.Headless)
			fmt.Printf("  Stealth:          %v\n", cfg.Browser.Stealth)
			fmt.Printf("  Nav Timeout:      %s\n", cfg.Browser.NavTimeout)
			fmt.Printf("  Nav Retries:      %d\n", cfg.Browser.NavRetries)
			fmt.Printf("  Settle Window:    %s\n", cfg.Browser.SettleWindow)
			fmt.Printf("\nFeed:\n")
			fmt.Printf("  Item Selector:    %s\n", cfg.Feed.ItemSelector)
			fmt.Printf("  Selector Type:    %s\n", cfg.Feed.SelectorType)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Type:             %s\n", cfg.Storage.Type)
			fmt.Printf("  Output Path:      %s\n", cfg.Storage.OutputPath)
			fmt.Printf("\nMetrics:\n")
			fmt.Printf("  Enabled:          %v\n", cfg.Metrics.Enabled)
			fmt.Printf("  Port:             %d\n", cfg.Metrics.Port)
			return nil
		},
	}
	return cmd
}

// setupLogger creates a structured logger per the logging config. The
// --verbose flag forces debug level regardless of the configured one.
func setupLogger(cfg *config.Config) *slog.Logger {
	var w io.Writer = os.Stderr
	if cfg.Logging.Output == "stdout" {
		w = os.Stdout
	}
	return slog.New(logHandler(cfg, w))
}

// logHandler builds the slog handler selected by the logging config.
func logHandler(cfg *config.Config, w io.Writer) slog.Handler {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.Logging.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// applyCLIOverrides applies command-line flag values to the config.
func applyCLIOverrides(cfg *config.Config) {
	if target > 0 {
		cfg.Harvest.Target = target
	}
	if metric != "" {
		cfg.Harvest.Metric = strings.ToLower(metric)
	}
	if stallLimit > 0 {
		cfg.Harvest.StallLimit = stallLimit
	}
	if revealDelay != "" {
		if d, err := time.ParseDuration(revealDelay); err == nil {
			cfg.Harvest.RevealDelay = d
		}
	}
	if itemSelector != "" {
		cfg.Feed.ItemSelector = itemSelector
	}
	if selectorType != "" {
		cfg.Feed.SelectorType = strings.ToLower(selectorType)
	}
	if outputPath != "" {
		cfg.Storage.OutputPath = outputPath
	}
	if outputType != "" {
		cfg.Storage.Type = strings.ToLower(outputType)
	}
	if headful {
		cfg.Browser.Headless = false
	}
}
