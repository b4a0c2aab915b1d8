// Package server exposes the clarity engine and the onboarding adapter over
// HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/homebridge-ai/clarity/internal/activation"
	"github.com/homebridge-ai/clarity/internal/auth"
	"github.com/homebridge-ai/clarity/internal/clarity"
	"github.com/homebridge-ai/clarity/internal/config"
	"github.com/homebridge-ai/clarity/internal/console"
	"github.com/homebridge-ai/clarity/internal/onboarding"
	"github.com/homebridge-ai/clarity/internal/telemetry"
)

// Server wraps the HTTP server components for Clarity.
type Server struct {
	mux          *http.ServeMux
	cfg          *config.Config
	auth         *auth.Auth
	engine       *clarity.Engine
	onboarding   *onboarding.Adapter
	activation   activation.Emitter
	telemetry    *telemetry.Provider
	requestStore *requestStore
	inFlight     *semaphore.Weighted
	loggingLevel string
	log          *zap.Logger
	ready        atomic.Bool
}

// Option customises a Server built by New.
type Option func(*Server)

// WithEngine replaces the default clarity engine.
func WithEngine(e *clarity.Engine) Option {
	return func(s *Server) { s.engine = e }
}

// WithEmitter replaces the emitter that would otherwise be built from
// cfg.Activation.
func WithEmitter(e activation.Emitter) Option {
	return func(s *Server) { s.activation = e }
}

// WithTelemetry sets the telemetry provider. Without it telemetry is a no-op.
func WithTelemetry(p *telemetry.Provider) Option {
	return func(s *Server) { s.telemetry = p }
}

// WithLogger sets the logger. Without it the zap global logger is used.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.log = l }
}

// New creates a new Clarity server with all routes registered.
func New(cfg *config.Config, authz *auth.Auth, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: config is nil")
	}

	s := &Server{
		mux:          http.NewServeMux(),
		cfg:          cfg,
		auth:         authz,
		loggingLevel: strings.ToLower(cfg.Logging.ActivationLevel),
		requestStore: newRequestStore(cfg.RequestStore.TTL.Std()),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		s.log = zap.L()
	}
	s.log = s.log.Named("server")
	if s.engine == nil {
		s.engine = clarity.Default()
	}
	s.onboarding = onboarding.New(s.engine)
	if s.telemetry == nil {
		s.telemetry, _ = telemetry.NewProvider(context.Background(), telemetry.Config{})
	}
	if s.activation == nil {
		em, err := activation.NewEmitterFromConfig(cfg.Activation, s.log)
		if err != nil {
			return nil, fmt.Errorf("server: activation: %w", err)
		}
		s.activation = em
	}
	if n := cfg.Server.MaxInFlightRequests; n > 0 {
		s.inFlight = semaphore.NewWeighted(n)
	}

	// Routes
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/readyz", s.handleReady)
	s.mux.HandleFunc("/clarity", s.limit(s.handleClarity))
	s.mux.HandleFunc("/onboarding", s.limit(s.handleOnboarding))
	s.mux.HandleFunc("/onboarding/questions", s.handleQuestions)
	s.mux.HandleFunc("/categories", s.handleCategories)
	s.mux.HandleFunc("/requests/", s.handleRequestStatus)
	s.mux.Handle("/console", console.Handler())
	s.mux.Handle("/console/static/", console.Handler())

	s.ready.Store(s.engine.Registry().Len() > 0)
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves on cfg.Server.Addr until ctx is cancelled, then drains
// in-flight requests and closes the activation emitter.
func (s *Server) Start(ctx context.Context) error {
	sc := s.cfg.Server
	httpSrv := &http.Server{
		Addr:              sc.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: sc.ReadHeaderTimeout.Std(),
		ReadTimeout:       sc.ReadTimeout.Std(),
		WriteTimeout:      sc.WriteTimeout.Std(),
		IdleTimeout:       sc.IdleTimeout.Std(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("clarity service listening", zap.String("addr", sc.Addr), zap.Int("categories", s.engine.Registry().Len()))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		_ = s.Close(context.Background())
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.ready.Store(false)
	s.log.Info("shutting down", zap.Duration("timeout", sc.ShutdownTimeout.Std()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), sc.ShutdownTimeout.Std())
	defer cancel()

	shutdownErr := httpSrv.Shutdown(shutdownCtx)
	<-errCh
	closeErr := s.Close(shutdownCtx)
	return errors.Join(shutdownErr, closeErr)
}

// Close flushes activation events and telemetry.
func (s *Server) Close(ctx context.Context) error {
	s.ready.Store(false)
	err := s.activation.Close(ctx)
	s.telemetry.Shutdown(ctx)
	return err
}
