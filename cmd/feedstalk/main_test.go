package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/IshaanNene/FeedStalk/internal/config"
)

func TestLogHandlerJSONFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.Format = "json"

	var buf bytes.Buffer
	logger := slog.New(logHandler(cfg, &buf))
	logger.Info("harvest starting", "target", 50)

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", line, err)
	}
	if entry["msg"] != "harvest starting" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

func TestLogHandlerTextFormat(t *testing.T) {
	cfg := config.DefaultConfig()

	var buf bytes.Buffer
	logger := slog.New(logHandler(cfg, &buf))
	logger.Info("harvest starting")

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("default format should be text, got %q", out)
	}
	if !strings.Contains(out, "harvest starting") {
		t.Errorf("missing message in %q", out)
	}
}

func TestLogHandlerLevelFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	logger := slog.New(logHandler(cfg, &buf))
	logger.Info("suppressed")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("info should be suppressed at warn level")
	}
	if !strings.Contains(out, "kept") {
		t.Error("warn should pass at warn level")
	}
}
