package service

import (
	"context"
	"log"
	"sync"
	"time"
)

// Warmer keeps the generation model responsive by pinging it periodically.
// It owns its lifecycle explicitly: Start launches the loop, Stop halts it.
type Warmer struct {
	interval time.Duration
	ping     func(ctx context.Context) error

	mu      sync.Mutex
	stop    chan struct{}
	stopped sync.WaitGroup
}

// NewWarmer creates a warmer around a ping function. The ping function is
// injected so tests can substitute a fake.
func NewWarmer(interval time.Duration, ping func(ctx context.Context) error) *Warmer {
	return &Warmer{interval: interval, ping: ping}
}

// Start begins periodic warm-up. Calling Start on a running warmer is a no-op.
func (w *Warmer) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stop != nil {
		return
	}
	w.stop = make(chan struct{})
	stop := w.stop

	w.stopped.Add(1)
	go func() {
		defer w.stopped.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := w.ping(ctx); err != nil {
					log.Printf("model warm-up ping failed: %v", err)
				}
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the warm-up loop and waits for it to exit.
func (w *Warmer) Stop() {
	w.mu.Lock()
	if w.stop == nil {
		w.mu.Unlock()
		return
	}
	close(w.stop)
	w.stop = nil
	w.mu.Unlock()
	w.stopped.Wait()
}
