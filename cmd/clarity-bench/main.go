package main

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/homebridge-ai/clarity/internal/clarity"
	"github.com/homebridge-ai/clarity/internal/config"
	"github.com/homebridge-ai/clarity/internal/logging"
	"github.com/homebridge-ai/clarity/internal/onboarding"
)

type stats struct {
	n             int
	avg, p50, p95 float64
}

func main() {
	n := flag.Int("n", 2000, "number of iterations")
	concurrency := flag.Int("c", 4, "concurrent workers")
	text := flag.String("text", "We don't have POA, the hospital needs paperwork, my siblings are out of state.", "situation text to analyze")
	concern := flag.String("concern", "", "bench the onboarding adapter with this biggest_concern answer instead")
	flag.Parse()

	logger, restore, err := logging.Setup(config.LoggingConfig{Level: "info", Format: "console"})
	if err != nil {
		panic(err)
	}
	defer restore()

	run := func() { clarity.AnalyzeSituation(*text) }
	mode := "clarity"
	if *concern != "" {
		responses := onboarding.Responses{onboarding.QuestionBiggestConcern: *concern}
		run = func() { onboarding.AnalyzeResponses(responses) }
		mode = "onboarding"
	}

	// Warmup
	for i := 0; i < 5; i++ {
		run()
	}

	durations, err := bench(context.Background(), *n, *concurrency, run)
	if err != nil {
		logger.Fatal("bench failed", zap.Error(err))
	}
	s := summarize(durations)

	fmt.Printf("bench: mode=%s n=%d c=%d avg_ms=%.4f p50_ms=%.4f p95_ms=%.4f\n",
		mode, s.n, *concurrency, s.avg, s.p50, s.p95)
}

// bench runs fn n times spread over c workers and returns every duration.
func bench(ctx context.Context, n, c int, fn func()) ([]time.Duration, error) {
	if n <= 0 {
		n = 1
	}
	if c <= 0 {
		c = 1
	}

	var (
		mu        sync.Mutex
		durations = make([]time.Duration, 0, n)
	)
	jobs := make(chan struct{})
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < n; i++ {
			select {
			case jobs <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < c; w++ {
		g.Go(func() error {
			local := make([]time.Duration, 0, n/c+1)
			for range jobs {
				start := time.Now()
				fn()
				local = append(local, time.Since(start))
			}
			mu.Lock()
			durations = append(durations, local...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return durations, nil
}

func summarize(durations []time.Duration) stats {
	if len(durations) == 0 {
		return stats{}
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	var total time.Duration
	for _, d := range durations {
		total += d
	}
	ms := func(d time.Duration) float64 { return float64(d.Nanoseconds()) / 1e6 }

	return stats{
		n:   len(durations),
		avg: ms(total) / float64(len(durations)),
		p50: ms(durations[len(durations)/2]),
		p95: ms(durations[int(float64(len(durations))*0.95)]),
	}
}
