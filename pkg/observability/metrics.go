// Package observability provides Prometheus metrics for monitoring
// parser throughput and error rates in processes embedding pkg/toolcall.
// The parser core itself never touches this package; metrics are
// recorded by the caller (cmd/toolstream-demo, or any embedding service)
// from inside its OnBlock/OnError callbacks.
package observability

import "github.com/prometheus/client_golang/prometheus"

// ChunkSizeBuckets covers chunk sizes from a single character (the
// smallest unit a streaming transport might deliver) up to a few
// kilobytes.
var ChunkSizeBuckets = []float64{1, 4, 16, 64, 256, 1024, 4096}

var (
	// BlocksEmittedTotal counts content blocks emitted by the parser,
	// labeled by kind ("text"/"tool_use") and whether the block was
	// partial or final.
	BlocksEmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolstream_blocks_emitted_total",
			Help: "Content blocks emitted by the parser",
		},
		[]string{"kind", "partial"},
	)

	// ErrorsEmittedTotal counts parse advisories emitted through the
	// error event, labeled by their stable taxonomy prefix (e.g.
	// "Invalid tool name", "Mismatched closing tag"; see ErrorPrefix).
	ErrorsEmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolstream_errors_emitted_total",
			Help: "Parse advisories emitted by the parser, by taxonomy prefix",
		},
		[]string{"prefix"},
	)

	// CharsProcessed records the number of characters passed to a single
	// ProcessChunk call.
	CharsProcessed = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "toolstream_chars_processed",
			Help:    "Characters processed per ProcessChunk call",
			Buckets: ChunkSizeBuckets,
		},
	)

	// ActiveParsers tracks the number of parser instances currently
	// constructed and not yet finalized.
	ActiveParsers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "toolstream_active_parsers",
			Help: "Parser instances currently in use",
		},
	)
)

func init() {
	prometheus.MustRegister(
		BlocksEmittedTotal,
		ErrorsEmittedTotal,
		CharsProcessed,
		ActiveParsers,
	)
}
