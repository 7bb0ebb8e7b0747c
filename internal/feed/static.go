package feed

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/IshaanNene/FeedStalk/internal/config"
	"github.com/IshaanNene/FeedStalk/internal/types"
)

// SnapshotSource serves a saved rendered document as a Source. The
// document is fully materialized up front, so RevealMore is a no-op
// and the convergence loop terminates on its stall path (or on target,
// when the snapshot holds enough items). Useful for offline runs and
// static mobile-site mirrors.
type SnapshotSource struct {
	items  []types.ContentItem
	logger *slog.Logger
}

// NewSnapshotSource parses a rendered document into a source.
func NewSnapshotSource(document string, feedCfg config.Feed, logger *slog.Logger) (*SnapshotSource, error) {
	if strings.TrimSpace(document) == "" {
		return nil, types.ErrEmptyDocument
	}
	items, err := SelectItems(document, feedCfg.ItemSelector, feedCfg.SelectorType)
	if err != nil {
		return nil, err
	}
	return &SnapshotSource{
		items:  items,
		logger: logger.With("component", "snapshot_source"),
	}, nil
}

// LoadSnapshot builds a SnapshotSource from a local file path or an
// http(s) URL.
func LoadSnapshot(ctx context.Context, ref string, feedCfg config.Feed, logger *slog.Logger) (*SnapshotSource, error) {
	var document string
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		body, err := fetchDocument(ctx, ref)
		if err != nil {
			return nil, err
		}
		document = body
	} else {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		document = string(data)
	}
	return NewSnapshotSource(document, feedCfg, logger)
}

// Items implements Source.
func (s *SnapshotSource) Items(ctx context.Context) ([]types.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.items, nil
}

// RevealMore implements Source. A snapshot has nothing more to reveal.
func (s *SnapshotSource) RevealMore(ctx context.Context) error {
	return ctx.Err()
}

// ItemCount implements Source.
func (s *SnapshotSource) ItemCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.items), nil
}

// fetchDocument retrieves a snapshot over HTTP, handling gzip, deflate
// and brotli content encodings.
func fetchDocument(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DisableCompression: true, // decompression handled below, including brotli
		},
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch snapshot: HTTP %d", resp.StatusCode)
	}

	reader, err := decompressReader(resp, resp.Body)
	if err != nil {
		return "", err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// decompressReader wraps a reader with the appropriate decompressor.
func decompressReader(resp *http.Response, reader io.Reader) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(reader)
	case "deflate":
		return flate.NewReader(reader), nil
	case "br":
		return brotli.NewReader(reader), nil
	default:
		return reader, nil
	}
}
