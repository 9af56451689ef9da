package service

import (
	"context"
	"log"
	"sync"
	"time"

	"descgate/internal/port"
)

// ScanQueueConfig holds settings for the scan queue worker.
type ScanQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
}

// ScanQueueWorker polls for queued submissions and dispatches them through
// the gate.
type ScanQueueWorker struct {
	recordRepo port.GateRecordRepository
	gate       GateService
	cfg        ScanQueueConfig
	wg         sync.WaitGroup
}

// NewScanQueueWorker creates a new ScanQueueWorker.
func NewScanQueueWorker(recordRepo port.GateRecordRepository, gate GateService, cfg ScanQueueConfig) *ScanQueueWorker {
	return &ScanQueueWorker{
		recordRepo: recordRepo,
		gate:       gate,
		cfg:        cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight submissions have finished.
func (w *ScanQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("scanQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			log.Printf("scanQueueWorker: shutting down, waiting for in-flight submissions...")
			w.wg.Wait()
			log.Printf("scanQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			recs, err := w.recordRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					// Context canceled during poll — exit gracefully
					continue
				}
				log.Printf("scanQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range recs {
				rec := recs[i] // copy for goroutine
				rec.Attempts++

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight submissions complete even during shutdown.
					gateCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
					defer cancel()

					log.Printf("scanQueueWorker: dispatching record %s (attempt %d)", rec.ID, rec.Attempts)
					w.gate.ProcessRecord(gateCtx, &rec, w.cfg.MaxRetries)
				}()
			}
		}
	}
}
