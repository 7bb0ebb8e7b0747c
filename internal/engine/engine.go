package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/IshaanNene/FeedStalk/internal/config"
	"github.com/IshaanNene/FeedStalk/internal/extract"
	"github.com/IshaanNene/FeedStalk/internal/feed"
	"github.com/IshaanNene/FeedStalk/internal/observability"
	"github.com/IshaanNene/FeedStalk/internal/pipeline"
	"github.com/IshaanNene/FeedStalk/internal/types"
)

// Result is the outcome of a single harvest run.
type Result struct {
	// Records are the deduplicated records, in first-seen order,
	// truncated to the configured target.
	Records []*types.Record

	// LoadedCount is how many feed items the document held when the
	// load loop stopped.
	LoadedCount int

	// TargetReached is true when the load loop stopped because enough
	// items were present, false for a best-effort partial result.
	TargetReached bool

	// Convergence is the final load-loop state, for diagnostics.
	Convergence ConvergenceState
}

// Harvester runs the full collect cycle: load the feed until it
// converges, extract records from every visible item, normalize them
// through the pipeline, and deduplicate.
type Harvester struct {
	cfg        *config.Config
	logger     *slog.Logger
	metrics    *observability.Metrics
	controller *Controller
	extractor  *extract.Extractor
	pipe       *pipeline.Pipeline
}

// NewHarvester wires a Harvester from configuration. The metrics
// argument may be nil when metrics are disabled.
func NewHarvester(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Harvester {
	h := &Harvester{
		cfg:     cfg,
		logger:  logger.With("component", "harvester"),
		metrics: metrics,
		controller: NewController(
			cfg.Harvest.Target,
			cfg.Harvest.StallLimit,
			cfg.Harvest.MaxIterations,
			cfg.Harvest.RevealDelay,
			logger,
		),
		extractor: extract.New(types.Metric(cfg.Harvest.Metric), logger),
		pipe:      pipeline.New(logger),
	}

	h.pipe.Use(&pipeline.TrimMiddleware{})
	h.pipe.Use(&pipeline.RequiredTextMiddleware{})
	h.pipe.Use(&pipeline.TimestampMiddleware{Now: time.Now, Logger: h.logger})
	if cfg.Harvest.MinEngagement > 0 {
		h.pipe.Use(&pipeline.EngagementFloorMiddleware{Min: cfg.Harvest.MinEngagement})
	}

	return h
}

// Run executes one harvest against src. When src also implements
// feed.Navigator and url is non-empty, it navigates first. The returned
// Result is valid even when the feed stopped growing short of the
// target; an error means the source itself failed.
func (h *Harvester) Run(ctx context.Context, src feed.Source, url string) (*Result, error) {
	if nav, ok := src.(feed.Navigator); ok && url != "" {
		if h.metrics != nil {
			h.metrics.NavigationsTotal.Add(1)
		}
		if err := nav.Navigate(ctx, url); err != nil {
			if h.metrics != nil {
				h.metrics.NavigationsFailed.Add(1)
			}
			return nil, err
		}
	}

	state, err := h.controller.Converge(ctx, src)
	if err != nil {
		return nil, err
	}
	if h.metrics != nil {
		h.metrics.RevealsTotal.Add(int64(state.Reveals))
		h.metrics.StallsTotal.Add(int64(state.StallCount))
	}

	items, err := src.Items(ctx)
	if err != nil {
		return nil, &types.SourceError{Op: "items", Err: err}
	}
	if h.metrics != nil {
		h.metrics.ItemsObserved.Add(int64(len(items)))
	}

	extracted := h.extractor.ExtractAll(items, url)
	if h.metrics != nil {
		h.metrics.ItemsExtracted.Add(int64(len(extracted)))
	}

	dedup := NewDeduplicator(len(extracted))
	records := make([]*types.Record, 0, len(extracted))

	for _, rec := range extracted {
		processed, err := h.pipe.Process(rec)
		if err != nil {
			h.logger.Warn("pipeline error, record skipped", "error", err)
			continue
		}
		if processed == nil {
			if h.metrics != nil {
				h.metrics.ItemsDropped.Add(1)
			}
			continue
		}

		if dedup.IsSeen(processed.Text) {
			if h.metrics != nil {
				h.metrics.ItemsDeduped.Add(1)
			}
			continue
		}
		dedup.MarkSeen(processed.Text)

		records = append(records, processed)
		if h.cfg.Harvest.Target > 0 && len(records) >= h.cfg.Harvest.Target {
			break
		}
	}

	h.logger.Info("harvest complete",
		"records", len(records),
		"loaded", state.LastObservedCount,
		"phase", state.Phase.String(),
	)

	return &Result{
		Records:       records,
		LoadedCount:   state.LastObservedCount,
		TargetReached: state.Phase == PhaseSatisfied,
		Convergence:   state,
	}, nil
}
