package observability

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// Metrics tracks operational metrics for a harvest run.
type Metrics struct {
	// Navigation metrics
	NavigationsTotal  atomic.Int64
	NavigationRetries atomic.Int64
	NavigationsFailed atomic.Int64

	// Convergence metrics
	RevealsTotal atomic.Int64
	StallsTotal  atomic.Int64

	// Item metrics
	ItemsObserved  atomic.Int64
	ItemsExtracted atomic.Int64
	ItemsDropped   atomic.Int64
	ItemsDeduped   atomic.Int64
	ItemsStored    atomic.Int64

	logger *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger.With("component", "metrics"),
	}
}

// ServeHTTP serves metrics in Prometheus text exposition format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	metrics := []struct {
		name  string
		help  string
		value int64
	}{
		{"feedstalk_navigations_total", "Total page navigations attempted", m.NavigationsTotal.Load()},
		{"feedstalk_navigation_retries_total", "Total navigation retries", m.NavigationRetries.Load()},
		{"feedstalk_navigations_failed_total", "Total navigations that exhausted retries", m.NavigationsFailed.Load()},
		{"feedstalk_reveals_total", "Total reveal gestures issued", m.RevealsTotal.Load()},
		{"feedstalk_stalls_total", "Total reveal rounds with no item growth", m.StallsTotal.Load()},
		{"feedstalk_items_observed_total", "Total feed items observed in the document", m.ItemsObserved.Load()},
		{"feedstalk_items_extracted_total", "Total records extracted", m.ItemsExtracted.Load()},
		{"feedstalk_items_dropped_total", "Total records dropped by the pipeline", m.ItemsDropped.Load()},
		{"feedstalk_items_deduped_total", "Total records discarded as duplicates", m.ItemsDeduped.Load()},
		{"feedstalk_items_stored_total", "Total records written to storage", m.ItemsStored.Load()},
	}

	for _, metric := range metrics {
		fmt.Fprintf(w, "# HELP %s %s\n", metric.name, metric.help)
		fmt.Fprintf(w, "# TYPE %s counter\n", metric.name)
		fmt.Fprintf(w, "%s %d\n", metric.name, metric.value)
	}
}

// StartServer starts the metrics HTTP server.
func (m *Metrics) StartServer(port int, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, m)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	addr := fmt.Sprintf(":%d", port)
	m.logger.Info("metrics server starting", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			m.logger.Error("metrics server error", "error", err)
		}
	}()

	return nil
}

// Snapshot returns all metrics as a map.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"navigations_total":  m.NavigationsTotal.Load(),
		"navigation_retries": m.NavigationRetries.Load(),
		"navigations_failed": m.NavigationsFailed.Load(),
		"reveals_total":      m.RevealsTotal.Load(),
		"stalls_total":       m.StallsTotal.Load(),
		"items_observed":     m.ItemsObserved.Load(),
		"items_extracted":    m.ItemsExtracted.Load(),
		"items_dropped":      m.ItemsDropped.Load(),
		"items_deduped":      m.ItemsDeduped.Load(),
		"items_stored":       m.ItemsStored.Load(),
	}
}
