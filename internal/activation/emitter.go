package activation

import (
	"context"
	"maps"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sink consumes activation events (stdout, file, webhook).
type Sink interface {
	Name() string
	Deliver(context.Context, *Event) error
	Close(context.Context) error
}

// Emitter is what request handlers depend on. *AsyncEmitter and Discard
// implement it.
type Emitter interface {
	Emit(ctx context.Context, ev *Event) bool
	Close(ctx context.Context) error
	Metrics() Metrics
}

// Metrics is a point-in-time copy of the delivery counters.
type Metrics struct {
	Enqueued    uint64            `json:"enqueued"`
	Dropped     uint64            `json:"dropped"`
	SinkSuccess map[string]uint64 `json:"sink_success"`
	SinkFailure map[string]uint64 `json:"sink_failure"`
}

// AsyncEmitter buffers events and delivers them to sinks from a fixed pool
// of workers. Emit never blocks: a full queue drops the event.
type AsyncEmitter struct {
	queue           chan *Event
	sinks           []Sink
	shutdownTimeout time.Duration
	deliverTimeout  time.Duration
	log             *zap.Logger

	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	counts  sync.Mutex
	metrics Metrics
}

// EmitterConfig controls worker and queue sizing.
type EmitterConfig struct {
	QueueSize       int
	Workers         int
	ShutdownTimeout time.Duration
	// DeliverTimeout bounds one Deliver call per sink. Zero means 5s.
	DeliverTimeout time.Duration
	Logger         *zap.Logger
}

// NewEmitter starts background workers to deliver events to the provided sinks.
func NewEmitter(cfg EmitterConfig, sinks []Sink) *AsyncEmitter {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1000
	}
	workerCount := cfg.Workers
	if workerCount <= 0 {
		workerCount = 1
	}
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 2 * time.Second
	}
	deliverTimeout := cfg.DeliverTimeout
	if deliverTimeout <= 0 {
		deliverTimeout = 5 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.L()
	}

	em := &AsyncEmitter{
		queue:           make(chan *Event, queueSize),
		sinks:           sinks,
		shutdownTimeout: shutdownTimeout,
		deliverTimeout:  deliverTimeout,
		log:             logger.Named("activation"),
		metrics: Metrics{
			SinkSuccess: make(map[string]uint64, len(sinks)),
			SinkFailure: make(map[string]uint64, len(sinks)),
		},
	}
	for _, s := range sinks {
		em.metrics.SinkSuccess[s.Name()] = 0
		em.metrics.SinkFailure[s.Name()] = 0
	}

	for i := 0; i < workerCount; i++ {
		em.wg.Add(1)
		go em.worker()
	}

	return em
}

// Emit attempts to enqueue the event and reports whether it was accepted.
func (e *AsyncEmitter) Emit(_ context.Context, ev *Event) bool {
	if e == nil || ev == nil {
		return false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		e.count(func(m *Metrics) { m.Dropped++ })
		return false
	}

	select {
	case e.queue <- ev:
		e.count(func(m *Metrics) { m.Enqueued++ })
		return true
	default:
		e.count(func(m *Metrics) { m.Dropped++ })
		e.log.Debug("queue full, dropping event", zap.String("request_id", ev.RequestID))
		return false
	}
}

// Close stops accepting new events, waits up to the shutdown timeout for the
// queue to drain and then closes every sink. It returns the context error if
// draining did not finish in time.
func (e *AsyncEmitter) Close(ctx context.Context) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	close(e.queue)
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	waitCtx, cancel := context.WithTimeout(ctx, e.shutdownTimeout)
	defer cancel()

	var drainErr error
	select {
	case <-done:
	case <-waitCtx.Done():
		drainErr = waitCtx.Err()
		e.log.Warn("shutdown timed out before queue drained", zap.Int("pending", len(e.queue)))
	}

	for _, s := range e.sinks {
		if err := s.Close(waitCtx); err != nil {
			e.log.Warn("sink close error", zap.String("sink", s.Name()), zap.Error(err))
		}
	}
	return drainErr
}

// Metrics safely copies current counters.
func (e *AsyncEmitter) Metrics() Metrics {
	if e == nil {
		return Metrics{}
	}
	e.counts.Lock()
	defer e.counts.Unlock()
	out := e.metrics
	out.SinkSuccess = maps.Clone(e.metrics.SinkSuccess)
	out.SinkFailure = maps.Clone(e.metrics.SinkFailure)
	return out
}

func (e *AsyncEmitter) count(f func(*Metrics)) {
	e.counts.Lock()
	f(&e.metrics)
	e.counts.Unlock()
}

func (e *AsyncEmitter) worker() {
	defer e.wg.Done()
	for ev := range e.queue {
		e.deliver(ev)
	}
}

func (e *AsyncEmitter) deliver(ev *Event) {
	for _, s := range e.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), e.deliverTimeout)
		err := s.Deliver(ctx, ev)
		cancel()

		name := s.Name()
		if err != nil {
			e.log.Warn("sink delivery failed", zap.String("sink", name), zap.String("request_id", ev.RequestID), zap.Error(err))
			e.count(func(m *Metrics) { m.SinkFailure[name]++ })
			continue
		}
		e.count(func(m *Metrics) { m.SinkSuccess[name]++ })
	}
}

// Discard is an Emitter that drops every event. Used when no sinks are
// configured.
type Discard struct{}

func (Discard) Emit(context.Context, *Event) bool { return false }
func (Discard) Close(context.Context) error       { return nil }
func (Discard) Metrics() Metrics                  { return Metrics{} }
