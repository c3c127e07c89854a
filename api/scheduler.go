/*
scheduler.go - Stale override pruner

PURPOSE:
  Periodically removes per-cycle reschedules whose cycle has fully elapsed,
  so long-lived task records do not accumulate one entry per moved occurrence.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Cutoff is today minus RetentionDays; newer history is left intact so
    recent calendar months still show moved occurrences
  - Anchors are never pruned

CONFIGURATION:
  - CheckInterval: How often to check (default: 24 hours)
  - RetentionDays: How much history to keep (default: 90)
  - Enabled:       Whether scheduler is active (default: true)

USAGE:
  pruner := NewOverridePruner(service)
  pruner.Start()
  // ... later
  pruner.Stop()

SEE ALSO:
  - chores/service.go: PruneOverrides
  - handlers.go: ClearReschedule endpoint (manual removal)
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/henleyisabel12/teaco-chores/chores"
)

// OverridePruner handles automated override cleanup.
type OverridePruner struct {
	Service       *chores.Service
	CheckInterval time.Duration
	RetentionDays int
	Enabled       bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewOverridePruner creates a new pruner.
func NewOverridePruner(svc *chores.Service) *OverridePruner {
	return &OverridePruner{
		Service:       svc,
		CheckInterval: 24 * time.Hour,
		RetentionDays: 90,
		Enabled:       true,
	}
}

// Start begins the pruner.
func (p *OverridePruner) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.Enabled || p.RetentionDays <= 0 {
		log.Println("[Pruner] Disabled, not starting")
		return
	}
	if p.ticker != nil {
		return
	}

	p.ticker = time.NewTicker(p.CheckInterval)
	p.stop = make(chan struct{})
	p.wg.Add(1)

	go p.run(p.ticker, p.stop)

	log.Printf("[Pruner] Started with check interval %v, keeping %d days", p.CheckInterval, p.RetentionDays)
}

// Stop stops the pruner.
func (p *OverridePruner) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ticker != nil {
		p.ticker.Stop()
		close(p.stop)
		p.wg.Wait()
		p.ticker = nil
		log.Println("[Pruner] Stopped")
	}
}

func (p *OverridePruner) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer p.wg.Done()

	// Run immediately on start
	p.RunOnce(context.Background())

	for {
		select {
		case <-ticker.C:
			p.RunOnce(context.Background())
		case <-stop:
			return
		}
	}
}

// RunOnce prunes overrides older than the retention window.
// Returns the number removed.
func (p *OverridePruner) RunOnce(ctx context.Context) int {
	cutoff := p.Service.Today().AddDays(-p.RetentionDays)
	n, err := p.Service.PruneOverrides(ctx, cutoff)
	if err != nil {
		log.Printf("[Pruner] Error pruning overrides before %s: %v", cutoff, err)
	}
	return n
}
