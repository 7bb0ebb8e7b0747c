package extract

import (
	"log/slog"
	"os"
	"testing"

	"github.com/IshaanNene/FeedStalk/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeItem is a hand-built ContentItem for extractor tests.
type fakeItem struct {
	text      string
	attrs     map[string]string
	children  []*fakeItem
	fragments []string
}

func (f *fakeItem) Text() string { return f.text }

func (f *fakeItem) Attr(name string) (string, bool) {
	v, ok := f.attrs[name]
	return v, ok
}

func (f *fakeItem) Children() []types.ContentItem {
	out := make([]types.ContentItem, len(f.children))
	for i, c := range f.children {
		out[i] = c
	}
	return out
}

func (f *fakeItem) Fragments() []string { return f.fragments }

// --- Text cleaning ---

func TestCleanTextStripsChrome(t *testing.T) {
	got := CleanText("Hello   world See more Like Comment Share")
	if got != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", got)
	}
}

func TestCleanTextArabicChrome(t *testing.T) {
	got := CleanText("مرحبا بالعالم عرض المزيد أعجبني تعليق مشاركة")
	if got != "مرحبا بالعالم" {
		t.Errorf("expected cleaned Arabic text, got %q", got)
	}
}

func TestCleanTextEmptyAfterCleaning(t *testing.T) {
	if got := CleanText("Like Comment Share"); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

// --- Engagement cascade ---

func TestInteractionSummaryFullRun(t *testing.T) {
	item := &fakeItem{text: "Post body All reactions: 1.2k 45 300 12 Like Comment Share"}

	cases := []struct {
		metric types.Metric
		want   int64
	}{
		{types.MetricReactions, 1200},
		{types.MetricComments, 300},
		{types.MetricShares, 12},
	}
	for _, c := range cases {
		e := New(c.metric, testLogger)
		rec, ok := e.Extract(item, "https://example.com/feed")
		if !ok {
			t.Fatalf("metric %s: expected record", c.metric)
		}
		if rec.Engagement == nil {
			t.Fatalf("metric %s: expected engagement", c.metric)
		}
		if *rec.Engagement != c.want {
			t.Errorf("metric %s: expected %d, got %d", c.metric, c.want, *rec.Engagement)
		}
	}
}

func TestInteractionSummaryShortRun(t *testing.T) {
	item := &fakeItem{text: "Body كل التفاعلات: 250 13 تعليق"}

	e := New(types.MetricComments, testLogger)
	rec, _ := e.Extract(item, "")
	if rec.EngagementOr(-1) != 13 {
		t.Errorf("expected comments 13, got %d", rec.EngagementOr(-1))
	}

	e = New(types.MetricShares, testLogger)
	rec, _ = e.Extract(item, "")
	if rec.EngagementOr(-1) != 0 {
		t.Errorf("expected shares to default to 0, got %d", rec.EngagementOr(-1))
	}
}

func TestInteractionSummarySingleCount(t *testing.T) {
	item := &fakeItem{
		text:      "Body All reactions: 99",
		fragments: []string{"Body"},
	}

	e := New(types.MetricReactions, testLogger)
	rec, _ := e.Extract(item, "")
	if rec.EngagementOr(-1) != 99 {
		t.Errorf("expected reactions 99, got %d", rec.EngagementOr(-1))
	}

	// Comments are unknown from a single-count run; with no other
	// strategy succeeding the counter stays absent.
	e = New(types.MetricComments, testLogger)
	rec, _ = e.Extract(item, "")
	if rec.Engagement != nil {
		t.Errorf("expected absent comments, got %d", *rec.Engagement)
	}
}

func TestAccessibleLabelFallback(t *testing.T) {
	item := &fakeItem{
		text: "Some post",
		children: []*fakeItem{
			{text: "", attrs: map[string]string{"aria-label": "٣٤٥ تعليقات"}},
		},
	}
	e := New(types.MetricComments, testLogger)
	rec, _ := e.Extract(item, "")
	if rec.EngagementOr(-1) != 345 {
		t.Errorf("expected 345 from accessible label, got %d", rec.EngagementOr(-1))
	}
}

func TestLabeledFragmentFallback(t *testing.T) {
	item := &fakeItem{
		text:      "Some post",
		fragments: []string{"Some post", "4.7k shares"},
	}
	e := New(types.MetricShares, testLogger)
	rec, _ := e.Extract(item, "")
	if rec.EngagementOr(-1) != 4700 {
		t.Errorf("expected 4700 from fragment, got %d", rec.EngagementOr(-1))
	}
}

func TestEngagementAbsent(t *testing.T) {
	item := &fakeItem{text: "Nothing countable here", fragments: []string{"Nothing countable here"}}
	e := New(types.MetricReactions, testLogger)
	rec, _ := e.Extract(item, "")
	if rec.Engagement != nil {
		t.Errorf("expected absent engagement, got %d", *rec.Engagement)
	}
}

// --- Temporal cascade ---

func TestMachineAttributePreferred(t *testing.T) {
	item := &fakeItem{
		text: "Posted 3 hours ago",
		children: []*fakeItem{
			{attrs: map[string]string{"datetime": "2024-01-10T09:00:00Z"}},
		},
	}
	e := New(types.MetricReactions, testLogger)
	rec, _ := e.Extract(item, "")
	if rec.RawTimestamp != "2024-01-10T09:00:00Z" {
		t.Errorf("expected machine attribute to win, got %q", rec.RawTimestamp)
	}
}

func TestMachineAttributeEpoch(t *testing.T) {
	item := &fakeItem{
		text: "Post",
		children: []*fakeItem{
			{attrs: map[string]string{"data-utime": "1704877200"}},
		},
	}
	e := New(types.MetricReactions, testLogger)
	rec, _ := e.Extract(item, "")
	if rec.RawTimestamp != "2024-01-10T09:00:00Z" {
		t.Errorf("expected epoch rewritten to ISO, got %q", rec.RawTimestamp)
	}
}

func TestPermalinkTextFallback(t *testing.T) {
	item := &fakeItem{
		text: "A post about things",
		children: []*fakeItem{
			{text: "3 hours", attrs: map[string]string{"href": "/groups/x/posts/123", "role": "link"}},
		},
	}
	e := New(types.MetricReactions, testLogger)
	rec, _ := e.Extract(item, "")
	if rec.RawTimestamp != "3 hours" {
		t.Errorf("expected %q, got %q", "3 hours", rec.RawTimestamp)
	}
}

func TestLeadingTextFallback(t *testing.T) {
	item := &fakeItem{text: "Someone shared this 12 March at 7:45 PM and it went around"}
	e := New(types.MetricReactions, testLogger)
	rec, _ := e.Extract(item, "")
	if rec.RawTimestamp != "12 March at 7:45 PM" {
		t.Errorf("expected absolute expression, got %q", rec.RawTimestamp)
	}
}

func TestTemporalAbsent(t *testing.T) {
	item := &fakeItem{text: "No dates in sight"}
	e := New(types.MetricReactions, testLogger)
	rec, _ := e.Extract(item, "")
	if rec.RawTimestamp != "" {
		t.Errorf("expected absent raw timestamp, got %q", rec.RawTimestamp)
	}
}

// --- Drop semantics ---

func TestExtractAllDropsEmptyText(t *testing.T) {
	items := []types.ContentItem{
		&fakeItem{text: "First real post Like Comment Share"},
		&fakeItem{text: "Like Comment Share"},
		&fakeItem{text: "Second real post"},
	}
	e := New(types.MetricReactions, testLogger)
	records := e.ExtractAll(items, "https://example.com/feed")
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Text != "First real post" || records[1].Text != "Second real post" {
		t.Errorf("unexpected texts: %q, %q", records[0].Text, records[1].Text)
	}
}
