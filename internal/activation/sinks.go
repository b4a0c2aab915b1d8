package activation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/homebridge-ai/clarity/internal/config"
)

// SinksFromConfig builds the sinks listed in cfg. On error any sink that was
// already opened is closed.
func SinksFromConfig(cfg config.ActivationConfig) ([]Sink, error) {
	sinks := make([]Sink, 0, len(cfg.Sinks))
	fail := func(err error) ([]Sink, error) {
		for _, s := range sinks {
			_ = s.Close(context.Background())
		}
		return nil, err
	}

	for i, sc := range cfg.Sinks {
		switch strings.ToLower(strings.TrimSpace(sc.Type)) {
		case "stdout":
			sinks = append(sinks, NewStdoutSink(nil))
		case "file_jsonl":
			fs, err := NewFileSink(sc.Path)
			if err != nil {
				return fail(fmt.Errorf("activation sink %d: %w", i, err))
			}
			sinks = append(sinks, fs)
		case "webhook":
			ws, err := NewWebhookSink(sc.URL, sc.Headers, sc.Timeout.Std())
			if err != nil {
				return fail(fmt.Errorf("activation sink %d: %w", i, err))
			}
			sinks = append(sinks, ws)
		default:
			return fail(fmt.Errorf("activation sink %d has unknown type %q", i, sc.Type))
		}
	}
	return sinks, nil
}

// NewEmitterFromConfig builds sinks and starts an emitter over them. With no
// sinks configured it returns Discard.
func NewEmitterFromConfig(cfg config.ActivationConfig, logger *zap.Logger) (Emitter, error) {
	sinks, err := SinksFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if len(sinks) == 0 {
		return Discard{}, nil
	}
	return NewEmitter(EmitterConfig{
		QueueSize:       cfg.QueueSize,
		Workers:         cfg.Workers,
		ShutdownTimeout: cfg.ShutdownTimeout.Std(),
		Logger:          logger,
	}, sinks), nil
}
