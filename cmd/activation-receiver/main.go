package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/homebridge-ai/clarity/internal/activation"
	"github.com/homebridge-ai/clarity/internal/config"
	"github.com/homebridge-ai/clarity/internal/logging"
)

const maxEventBytes = 1 << 20

func main() {
	addr := flag.String("addr", ":8099", "listen address for activation receiver")
	format := flag.String("log-format", "console", "log format: json or console")
	dump := flag.Bool("dump", false, "also log each full event as redacted JSON")
	flag.Parse()

	logger, restore, err := logging.Setup(config.LoggingConfig{Level: "info", Format: *format})
	if err != nil {
		panic(err)
	}
	defer restore()

	mux := http.NewServeMux()
	mux.HandleFunc("/activation", handleActivation(logger, *dump))
	mux.HandleFunc("/", handleActivation(logger, *dump))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("activation receiver listening (POST JSON to /activation)", zap.String("addr", *addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("receiver error", zap.Error(err))
	}
}

// handleActivation logs a summary of each event. With dump set the whole
// event follows through activation.LogEvent on the global logger.
func handleActivation(logger *zap.Logger, dump bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBytes))
		_ = r.Body.Close()
		if err != nil {
			http.Error(w, "read error", http.StatusBadRequest)
			return
		}

		var ev activation.Event
		if err := json.Unmarshal(body, &ev); err != nil {
			logger.Warn("undecodable activation event", zap.Int("len", len(body)), zap.Error(err))
			http.Error(w, "invalid event", http.StatusBadRequest)
			return
		}

		logger.Info("received activation event",
			zap.String("request_id", ev.RequestID),
			zap.String("header_request_id", r.Header.Get("X-Clarity-Request-Id")),
			zap.String("client_id", ev.Meta.ClientID),
			zap.String("endpoint", ev.Meta.Endpoint),
			zap.String("decision", string(ev.Summary.Decision)),
			zap.String("issue_category", ev.Summary.IssueCategory),
			zap.String("confidence", string(ev.Summary.Confidence)),
			zap.Strings("categories", ev.Summary.Categories),
			zap.Int("input_chars", ev.Analysis.InputChars),
			zap.Float64("total_ms", ev.TimingMs.Total),
		)
		if dump {
			activation.LogEvent(&ev)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintln(w, `{"status":"ok"}`)
	}
}
