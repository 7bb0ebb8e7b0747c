package types

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestEngagementOr(t *testing.T) {
	r := NewRecord("https://example.com")
	if got := r.EngagementOr(-1); got != -1 {
		t.Errorf("absent engagement: got %d, want -1", got)
	}
	r.SetEngagement(42)
	if got := r.EngagementOr(-1); got != 42 {
		t.Errorf("set engagement: got %d, want 42", got)
	}
}

func TestAbsentEngagementOmittedFromJSON(t *testing.T) {
	r := NewRecord("https://example.com")
	r.Text = "hello"

	data, err := r.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	if strings.Contains(string(data), "engagement") {
		t.Errorf("absent engagement must be omitted, got %s", data)
	}

	r.SetEngagement(0)
	data, _ = r.ToJSON()
	var decoded Record
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Engagement == nil || *decoded.Engagement != 0 {
		t.Error("an explicit zero count must survive the round trip")
	}
}

func TestToFlatMap(t *testing.T) {
	r := NewRecord("https://example.com/feed")
	r.Text = "post body"
	r.SetEngagement(1500)
	r.RawTimestamp = "3 hours"

	flat := r.ToFlatMap()
	if flat["text"] != "post body" {
		t.Errorf("text = %q", flat["text"])
	}
	if flat["engagement"] != "1500" {
		t.Errorf("engagement = %q, want 1500", flat["engagement"])
	}

	r.Engagement = nil
	if got := r.ToFlatMap()["engagement"]; got != "" {
		t.Errorf("absent engagement must flatten to empty, got %q", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := NewRecord("https://example.com")
	r.SetEngagement(7)

	c := r.Clone()
	c.SetEngagement(99)
	if *r.Engagement != 7 {
		t.Errorf("mutating the clone changed the original: %d", *r.Engagement)
	}
}

func TestErrorUnwrapping(t *testing.T) {
	base := errors.New("boom")

	wrapped := []error{
		&NavigationError{URL: "https://example.com", Attempts: 3, Err: base},
		&SourceError{Op: "reveal", Err: base},
		&StorageError{Backend: "mongodb", Err: base},
		&PipelineError{Stage: "trim", Err: base},
	}
	for _, err := range wrapped {
		if !errors.Is(err, base) {
			t.Errorf("%T should unwrap to the base error", err)
		}
	}
}
