// Command toolstream-demo feeds chunked input through pkg/toolcall and
// prints every block and error event as it is emitted.
//
// Configuration can be provided via:
//   - YAML config file (--config flag, TOOLSTREAM_CONFIG env, ./toolstream.yaml,
//     /etc/toolstream/config.yaml)
//   - Environment variables with TOOLSTREAM_ prefix
//
// Input is read from stdin by default, split into chunks of --chunk-size
// bytes (default 16) to exercise the parser's chunk-boundary behavior; or
// from a fixture file via --fixture, which is fed as a sequence of chunks
// separated by a "---" line so a scenario can choose its own chunking.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rhuss/toolstream/pkg/config"
	"github.com/rhuss/toolstream/pkg/observability"
	"github.com/rhuss/toolstream/pkg/toolcall"
)

func main() {
	if err := run(); err != nil {
		slog.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	fixturePath := flag.String("fixture", "", "path to a fixture file of '---'-separated chunks; defaults to stdin")
	chunkSize := flag.Int("chunk-size", 16, "bytes per chunk when reading stdin (ignored for --fixture)")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090) before processing input")
	flag.Parse()

	// Blocks are logged at Debug; lower the default logger's level so
	// they are printed.
	slog.SetLogLoggerLevel(slog.LevelDebug)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	root, err := cfg.ToSchema()
	if err != nil {
		return fmt.Errorf("building schema: %w", err)
	}

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			slog.Info("serving metrics", "addr", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	chunks, err := loadChunks(*fixturePath, *chunkSize)
	if err != nil {
		return fmt.Errorf("loading input: %w", err)
	}

	runID := uuid.NewString()
	log := slog.With("run_id", runID)

	p := toolcall.New(root, toolcall.Options{RelaxedMode: cfg.Parser.RelaxedMode})
	p.OnBlock(func(b toolcall.Block) {
		observability.RecordBlock(string(b.Kind), b.Partial)
		logBlock(log, b)
	})
	p.OnError(func(msg string) {
		observability.RecordError(msg)
		log.Warn("parse advisory", "message", msg, "prefix", observability.ErrorPrefix(msg))
	})

	observability.ActiveParsers.Inc()
	defer observability.ActiveParsers.Dec()

	for _, chunk := range chunks {
		observability.RecordChunk(utf8.RuneCountInString(chunk))
		p.ProcessChunk(chunk)
	}
	p.Finalize()

	return nil
}

// loadChunks returns the sequence of chunks to feed the parser: either
// the "---"-delimited sections of a fixture file, or stdin split every
// chunkSize bytes.
func loadChunks(fixturePath string, chunkSize int) ([]string, error) {
	if fixturePath != "" {
		data, err := os.ReadFile(fixturePath)
		if err != nil {
			return nil, err
		}
		return strings.Split(string(data), "\n---\n"), nil
	}

	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = len(data)
	}
	if chunkSize == 0 {
		return nil, nil
	}

	s := string(data)
	var chunks []string
	for len(s) > 0 {
		n := chunkSize
		if n > len(s) {
			n = len(s)
		}
		chunks = append(chunks, s[:n])
		s = s[n:]
	}
	return chunks, nil
}

func logBlock(log *slog.Logger, b toolcall.Block) {
	switch b.Kind {
	case toolcall.BlockText:
		log.Debug("text block", "partial", b.Partial, "content", b.Text)
	case toolcall.BlockToolUse:
		log.Debug("tool_use block", "partial", b.Partial, "tool", b.ToolName, "params", b.Params)
	}
}
