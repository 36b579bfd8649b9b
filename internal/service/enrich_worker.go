package service

import (
	"context"
	"log"
	"time"
)

// EnrichWorker is a periodic background job that genre-annotates approved
// channels which have no genre data yet, one small batch per tick so the
// lookup APIs never see a burst.
type EnrichWorker struct {
	enrich   *EnrichService
	interval time.Duration
	stopCh   chan struct{}
}

// NewEnrichWorker creates a worker that ticks every interval.
func NewEnrichWorker(enrich *EnrichService, interval time.Duration) *EnrichWorker {
	return &EnrichWorker{
		enrich:   enrich,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic enrichment loop. It runs one tick immediately,
// then every interval.
func (w *EnrichWorker) Start(ctx context.Context) {
	log.Printf("enrich-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("enrich-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("enrich-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *EnrichWorker) Stop() {
	close(w.stopCh)
}

func (w *EnrichWorker) tick(ctx context.Context) {
	start := time.Now()

	result, err := w.enrich.EnrichBatch(ctx, maxEnrichBatch, "both")
	if err != nil {
		log.Printf("enrich-worker: error: %v", err)
		return
	}
	if result.Enriched == 0 && len(result.Failed) == 0 {
		return
	}

	log.Printf("enrich-worker: tick complete — %d channels enriched, %d failed (%s)",
		result.Enriched, len(result.Failed), time.Since(start).Round(time.Millisecond))
}
