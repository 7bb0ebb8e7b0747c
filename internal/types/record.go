package types

import (
	"encoding/json"
	"strconv"
	"time"
)

// Record is a single canonical post extracted from a feed.
type Record struct {
	// Text is the cleaned primary content. Records with empty text are
	// dropped before they reach any sink.
	Text string `json:"text" bson:"text"`

	// Engagement is the best-effort engagement counter for the metric
	// the run was configured with. Nil when no extraction strategy
	// succeeded.
	Engagement *int64 `json:"engagement,omitempty" bson:"engagement,omitempty"`

	// RawTimestamp is the matched date/time substring as it appeared in
	// the feed, before normalization.
	RawTimestamp string `json:"raw_timestamp,omitempty" bson:"raw_timestamp,omitempty"`

	// PostedAt is the RFC 3339 form derived from RawTimestamp. Empty
	// when RawTimestamp is empty or did not parse; never fabricated.
	PostedAt string `json:"posted_at,omitempty" bson:"posted_at,omitempty"`

	// SourceURL is the page the record was extracted from.
	SourceURL string `json:"source_url,omitempty" bson:"source_url,omitempty"`

	// ExtractedAt is when the extraction run produced this record.
	ExtractedAt time.Time `json:"extracted_at" bson:"extracted_at"`
}

// NewRecord creates a Record with its extraction timestamp set.
func NewRecord(sourceURL string) *Record {
	return &Record{
		SourceURL:   sourceURL,
		ExtractedAt: time.Now(),
	}
}

// SetEngagement stores an engagement count on the record.
func (r *Record) SetEngagement(n int64) {
	r.Engagement = &n
}

// EngagementOr returns the engagement count, or def when absent.
func (r *Record) EngagementOr(def int64) int64 {
	if r.Engagement == nil {
		return def
	}
	return *r.Engagement
}

// ToJSON serializes the record to JSON bytes.
func (r *Record) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

// ToFlatMap returns a flat map suitable for CSV export.
func (r *Record) ToFlatMap() map[string]string {
	flat := map[string]string{
		"text":          r.Text,
		"raw_timestamp": r.RawTimestamp,
		"posted_at":     r.PostedAt,
		"source_url":    r.SourceURL,
		"extracted_at":  r.ExtractedAt.Format(time.RFC3339),
	}
	if r.Engagement != nil {
		flat["engagement"] = strconv.FormatInt(*r.Engagement, 10)
	} else {
		flat["engagement"] = ""
	}
	return flat
}

// Clone creates a copy of the record.
func (r *Record) Clone() *Record {
	clone := *r
	if r.Engagement != nil {
		n := *r.Engagement
		clone.Engagement = &n
	}
	return &clone
}
