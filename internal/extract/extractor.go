package extract

import (
	"log/slog"

	"github.com/IshaanNene/FeedStalk/internal/types"
)

// engagementStrategy is one step of the engagement cascade: a pure
// function from an item to a count, or nothing.
type engagementStrategy struct {
	name string
	fn   func(types.ContentItem, types.Metric) (int64, bool)
}

// temporalStrategy is one step of the temporal cascade: a pure
// function from an item to a raw temporal substring, or nothing.
type temporalStrategy struct {
	name string
	fn   func(types.ContentItem) (string, bool)
}

// Extractor recovers text, an engagement counter and a raw temporal
// expression from one ContentItem. The three sub-extractions are
// independent: a miss in one never blocks the others. Each cascade is
// an ordered strategy chain, first success wins.
type Extractor struct {
	metric     types.Metric
	logger     *slog.Logger
	engagement []engagementStrategy
	temporal   []temporalStrategy
}

// New creates an Extractor targeting the given engagement metric.
func New(metric types.Metric, logger *slog.Logger) *Extractor {
	return &Extractor{
		metric: metric,
		logger: logger.With("component", "extractor"),
		engagement: []engagementStrategy{
			{"interaction_summary", interactionSummary},
			{"accessible_label", accessibleLabels},
			{"labeled_fragment", labeledFragments},
		},
		temporal: []temporalStrategy{
			{"machine_attribute", machineAttribute},
			{"permalink_text", permalinkText},
			{"leading_text", leadingText},
		},
	}
}

// Extract builds a record from one item. The second return value is
// false when the cleaned text came out empty; such items carry no
// content and are excluded from the result set entirely.
func (e *Extractor) Extract(item types.ContentItem, sourceURL string) (*types.Record, bool) {
	rec := types.NewRecord(sourceURL)
	rec.Text = CleanText(item.Text())

	for _, s := range e.engagement {
		if n, ok := s.fn(item, e.metric); ok {
			rec.SetEngagement(n)
			e.logger.Debug("engagement extracted", "strategy", s.name, "metric", e.metric, "count", n)
			break
		}
	}

	for _, s := range e.temporal {
		if raw, ok := s.fn(item); ok {
			rec.RawTimestamp = raw
			e.logger.Debug("temporal expression extracted", "strategy", s.name, "raw", raw)
			break
		}
	}

	return rec, rec.Text != ""
}

// ExtractAll runs Extract over a snapshot of items, keeping only items
// with non-empty cleaned text.
func (e *Extractor) ExtractAll(items []types.ContentItem, sourceURL string) []*types.Record {
	records := make([]*types.Record, 0, len(items))
	for _, item := range items {
		rec, ok := e.Extract(item, sourceURL)
		if !ok {
			e.logger.Debug("item dropped, empty text after cleaning")
			continue
		}
		records = append(records, rec)
	}
	return records
}
