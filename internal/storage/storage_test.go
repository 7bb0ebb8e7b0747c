package storage

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/IshaanNene/FeedStalk/internal/config"
	"github.com/IshaanNene/FeedStalk/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func sampleRecords() []*types.Record {
	a := types.NewRecord("https://example.com/feed")
	a.Text = "first post"
	a.SetEngagement(120)
	a.RawTimestamp = "3 hours"
	a.PostedAt = "2024-01-10T09:00:00Z"

	b := types.NewRecord("https://example.com/feed")
	b.Text = "second post"
	return []*types.Record{a, b}
}

func TestJSONStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	s, err := NewJSONStorage(path, testLogger)
	if err != nil {
		t.Fatalf("NewJSONStorage() error = %v", err)
	}
	if err := s.Store(sampleRecords()); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var got []types.Record
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Text != "first post" {
		t.Errorf("Text = %q", got[0].Text)
	}
	if got[0].Engagement == nil || *got[0].Engagement != 120 {
		t.Errorf("Engagement = %v, want 120", got[0].Engagement)
	}
	if got[1].Engagement != nil {
		t.Error("absent engagement must stay null, not zero")
	}
}

func TestJSONLStorageOneObjectPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	s, err := NewJSONLStorage(path, testLogger)
	if err != nil {
		t.Fatalf("NewJSONLStorage() error = %v", err)
	}
	if err := s.Store(sampleRecords()); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	lines := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec types.Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("line %d: %v", lines, err)
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("lines = %d, want 2", lines)
	}
}

func TestCSVStorageHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	s, err := NewCSVStorage(path, testLogger)
	if err != nil {
		t.Fatalf("NewCSVStorage() error = %v", err)
	}
	if err := s.Store(sampleRecords()); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if len(rows[0]) == 0 {
		t.Fatal("empty header row")
	}
}

func TestFactoryUnknownType(t *testing.T) {
	_, err := New(config.Storage{Type: "sqlite"}, testLogger)
	if !errors.Is(err, types.ErrUnknownStorage) {
		t.Fatalf("err = %v, want ErrUnknownStorage", err)
	}
}

func TestFactoryNone(t *testing.T) {
	s, err := New(config.Storage{Type: "none"}, testLogger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.Name() != "none" {
		t.Errorf("Name() = %q", s.Name())
	}
	if err := s.Store(sampleRecords()); err != nil {
		t.Errorf("Store() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
