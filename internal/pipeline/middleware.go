package pipeline

import (
	"log/slog"
	"strings"
	"time"

	"github.com/IshaanNene/FeedStalk/internal/locale"
	"github.com/IshaanNene/FeedStalk/internal/types"
)

// --- Built-in Middleware ---

// TrimMiddleware collapses whitespace in the record's string fields.
type TrimMiddleware struct{}

func (m *TrimMiddleware) Name() string { return "trim" }

func (m *TrimMiddleware) Process(rec *types.Record) (*types.Record, error) {
	rec.Text = strings.Join(strings.Fields(rec.Text), " ")
	rec.RawTimestamp = strings.TrimSpace(rec.RawTimestamp)
	return rec, nil
}

// RequiredTextMiddleware drops records whose cleaned text is empty.
// Such records carry no content and must never reach a sink.
type RequiredTextMiddleware struct{}

func (m *RequiredTextMiddleware) Name() string { return "required_text" }

func (m *RequiredTextMiddleware) Process(rec *types.Record) (*types.Record, error) {
	if rec.Text == "" {
		return nil, nil // Drop record
	}
	return rec, nil
}

// TimestampMiddleware is the post-pass that derives PostedAt from the
// raw temporal expression. PostedAt is only ever set when the raw
// expression parses; it is never fabricated.
type TimestampMiddleware struct {
	// Now supplies the reference time for relative expressions. Left
	// nil, time.Now is used; tests inject a fixed clock.
	Now func() time.Time

	// Logger, when set, reports suspicious derivations.
	Logger *slog.Logger
}

func (m *TimestampMiddleware) Name() string { return "timestamp" }

func (m *TimestampMiddleware) Process(rec *types.Record) (*types.Record, error) {
	if rec.RawTimestamp == "" {
		return rec, nil
	}
	now := time.Now()
	if m.Now != nil {
		now = m.Now()
	}
	t, ok := locale.ParseTimestamp(rec.RawTimestamp, now)
	if !ok {
		return rec, nil
	}
	rec.PostedAt = t.Format(time.RFC3339)
	if t.After(now) && m.Logger != nil {
		// A year-less absolute date resolved against the current year
		// can land ahead of now around the year boundary. The raw
		// expression stays on the record for re-disambiguation.
		m.Logger.Debug("derived timestamp is in the future",
			"raw", rec.RawTimestamp, "posted_at", rec.PostedAt)
	}
	return rec, nil
}

// EngagementFloorMiddleware drops records whose engagement counter is
// known and below a threshold. Records with an absent counter pass
// through; absence means "not parsable", not zero.
type EngagementFloorMiddleware struct {
	Min int64
}

func (m *EngagementFloorMiddleware) Name() string { return "engagement_floor" }

func (m *EngagementFloorMiddleware) Process(rec *types.Record) (*types.Record, error) {
	if rec.Engagement != nil && *rec.Engagement < m.Min {
		return nil, nil // Drop record
	}
	return rec, nil
}
