package integration

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/IshaanNene/FeedStalk/internal/config"
	"github.com/IshaanNene/FeedStalk/internal/engine"
	"github.com/IshaanNene/FeedStalk/internal/feed"
	"github.com/IshaanNene/FeedStalk/internal/storage"
	"github.com/IshaanNene/FeedStalk/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// feedDocument is a trimmed mobile feed page: three posts with mixed
// English/Arabic engagement and timestamps, one of them a duplicate
// rendering of the first.
const feedDocument = `<!DOCTYPE html>
<html>
<body>
<div id="feed">
  <div role="article">
    <span>Community cleanup this weekend, volunteers welcome. See more</span>
    <div aria-label="1.2k reactions"></div>
    <span>Like</span><span>Comment</span><span>Share</span>
    <a role="link" href="/posts/1001">3 hours</a>
  </div>
  <div role="article">
    <span>مباراة اليوم كانت رائعة</span>
    <div aria-label="٣ آلاف تعليق"></div>
    <span>أعجبني</span><span>تعليق</span><span>مشاركة</span>
    <a role="link" href="/posts/1002">٢٥ أكتوبر في ٩:١٥ م</a>
  </div>
  <div role="article">
    <span>Community cleanup this weekend,   volunteers welcome.</span>
    <span>Like</span><span>Comment</span><span>Share</span>
    <a role="link" href="/posts/1001">3 hours</a>
  </div>
</div>
</body>
</html>`

func harvestConfig(target int, metric string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Harvest.Target = target
	cfg.Harvest.Metric = metric
	cfg.Harvest.RevealDelay = 0
	return cfg
}

// TestSnapshotHarvest runs the whole path: parse document, converge,
// extract, normalize, dedup.
func TestSnapshotHarvest(t *testing.T) {
	cfg := harvestConfig(10, "reactions")

	src, err := feed.NewSnapshotSource(feedDocument, cfg.Feed, testLogger)
	if err != nil {
		t.Fatalf("create source: %v", err)
	}

	h := engine.NewHarvester(cfg, testLogger, nil)
	res, err := h.Run(context.Background(), src, "https://m.example.com/feed")
	if err != nil {
		t.Fatalf("harvest: %v", err)
	}

	if res.TargetReached {
		t.Error("a 3-item document must not satisfy a target of 10")
	}
	if res.LoadedCount != 3 {
		t.Errorf("LoadedCount = %d, want 3", res.LoadedCount)
	}
	// Third item is a re-rendering of the first and must collapse.
	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}

	first := res.Records[0]
	if first.Text != "Community cleanup this weekend, volunteers welcome." {
		t.Errorf("Text = %q", first.Text)
	}
	if first.EngagementOr(-1) != 1200 {
		t.Errorf("Engagement = %d, want 1200", first.EngagementOr(-1))
	}
	if first.RawTimestamp != "3 hours" {
		t.Errorf("RawTimestamp = %q, want %q", first.RawTimestamp, "3 hours")
	}
	if first.PostedAt == "" {
		t.Error("PostedAt should be derived from a relative timestamp")
	}

	second := res.Records[1]
	if second.Text != "مباراة اليوم كانت رائعة" {
		t.Errorf("Text = %q", second.Text)
	}
	if second.PostedAt == "" {
		t.Error("PostedAt should be derived from an Arabic absolute timestamp")
	}
}

// TestSnapshotHarvestArabicMetric extracts the comments counter from
// an Arabic labeled count.
func TestSnapshotHarvestArabicMetric(t *testing.T) {
	cfg := harvestConfig(10, "comments")

	src, err := feed.NewSnapshotSource(feedDocument, cfg.Feed, testLogger)
	if err != nil {
		t.Fatalf("create source: %v", err)
	}

	h := engine.NewHarvester(cfg, testLogger, nil)
	res, err := h.Run(context.Background(), src, "https://m.example.com/feed")
	if err != nil {
		t.Fatalf("harvest: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}

	// "٣ آلاف تعليق" is 3 thousand comments.
	arabic := res.Records[1]
	if arabic.EngagementOr(-1) != 3000 {
		t.Errorf("Engagement = %d, want 3000", arabic.EngagementOr(-1))
	}
}

// TestHarvestToJSONStorage persists a harvest and reads it back.
func TestHarvestToJSONStorage(t *testing.T) {
	cfg := harvestConfig(10, "reactions")
	cfg.Storage.Type = "json"
	cfg.Storage.OutputPath = filepath.Join(t.TempDir(), "records.json")

	src, err := feed.NewSnapshotSource(feedDocument, cfg.Feed, testLogger)
	if err != nil {
		t.Fatalf("create source: %v", err)
	}

	h := engine.NewHarvester(cfg, testLogger, nil)
	res, err := h.Run(context.Background(), src, "https://m.example.com/feed")
	if err != nil {
		t.Fatalf("harvest: %v", err)
	}

	store, err := storage.New(cfg.Storage, testLogger)
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}
	if err := store.Store(res.Records); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(cfg.Storage.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var got []types.Record
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if len(got) != len(res.Records) {
		t.Errorf("persisted %d records, harvested %d", len(got), len(res.Records))
	}
	if got[0].SourceURL != "https://m.example.com/feed" {
		t.Errorf("SourceURL = %q", got[0].SourceURL)
	}
}
