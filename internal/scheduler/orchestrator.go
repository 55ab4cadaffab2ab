package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/emitter"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/ingest"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/refdata"
)

// Orchestrator runs the live polling loop and periodic reference data
// reloads, and keeps the latest poll results for the serving layer
type Orchestrator struct {
	ingester *ingest.LiveIngester
	emitter  *emitter.Emitter
	refdata  *refdata.Store
	config   *Config
	cancel   context.CancelFunc

	mu     sync.RWMutex
	latest []*ingest.GameUpdate

	pollCtx       context.Context
	pollCancel    context.CancelFunc
	refdataCtx    context.Context
	refdataCancel context.CancelFunc
}

// Config holds scheduler configuration
type Config struct {
	LivePollInterval  time.Duration // Default: 20s
	RefdataInterval   time.Duration // Default: 45m
	EnableLivePolling bool          // Default: true
	MaxRetries        int           // Default: 3
	RetryDelay        time.Duration // Default: 5s
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		LivePollInterval:  20 * time.Second,
		RefdataInterval:   refdata.DefaultTTL,
		EnableLivePolling: true,
		MaxRetries:        3,
		RetryDelay:        5 * time.Second,
	}
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(ingester *ingest.LiveIngester, em *emitter.Emitter, ref *refdata.Store, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Orchestrator{
		ingester: ingester,
		emitter:  em,
		refdata:  ref,
		config:   config,
	}
}

// Start begins all scheduled tasks and blocks until the context is done
func (o *Orchestrator) Start(ctx context.Context) {
	log.Println("╔════════════════════════════════════════╗")
	log.Println("║   Underwatch Scheduler Orchestrator    ║")
	log.Println("╚════════════════════════════════════════╝")
	log.Printf("Live polling: %v (interval: %v)", o.config.EnableLivePolling, o.config.LivePollInterval)
	log.Printf("Refdata reload interval: %v", o.config.RefdataInterval)
	log.Println()

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	if o.config.EnableLivePolling {
		o.pollCtx, o.pollCancel = context.WithCancel(ctx)
		go o.runLivePolling(o.pollCtx)
	}

	if o.refdata != nil {
		o.refdataCtx, o.refdataCancel = context.WithCancel(ctx)
		go o.runRefdataReload(o.refdataCtx)
	}

	<-ctx.Done()
	log.Println("Scheduler orchestrator stopping...")
}

// LatestUpdates returns the most recent poll cycle's results
func (o *Orchestrator) LatestUpdates() []*ingest.GameUpdate {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.latest
}

// runLivePolling polls the live feeds on a fixed interval
func (o *Orchestrator) runLivePolling(ctx context.Context) {
	log.Printf("→ Live polling started (interval: %v)", o.config.LivePollInterval)
	log.Println("  Source priority: ESPN (primary) → Google (fallback)")

	ticker := time.NewTicker(o.config.LivePollInterval)
	defer ticker.Stop()

	consecutiveErrors := 0
	maxConsecutiveErrors := 5

	// Run immediately on start
	o.pollWithRetry(ctx, &consecutiveErrors, maxConsecutiveErrors)

	for {
		select {
		case <-ctx.Done():
			log.Println("→ Live polling stopped")
			return
		case <-ticker.C:
			o.pollWithRetry(ctx, &consecutiveErrors, maxConsecutiveErrors)
		}
	}
}

// pollWithRetry runs one cycle with retry logic
func (o *Orchestrator) pollWithRetry(ctx context.Context, consecutiveErrors *int, maxConsecutiveErrors int) {
	var updates []*ingest.GameUpdate
	var err error

	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		updates, err = o.ingester.Poll(ctx)

		if err == nil {
			*consecutiveErrors = 0
			break
		}

		log.Printf("  ⚠️  Polling attempt %d/%d failed: %v", attempt, o.config.MaxRetries, err)

		if attempt < o.config.MaxRetries {
			log.Printf("  Retrying in %v...", o.config.RetryDelay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(o.config.RetryDelay):
			}
		}
	}

	if err != nil {
		*consecutiveErrors++
		log.Printf("  ❌ All %d retry attempts failed. Consecutive errors: %d/%d",
			o.config.MaxRetries, *consecutiveErrors, maxConsecutiveErrors)

		// Back off under sustained failure so we don't hammer a feed
		// that is clearly down
		if *consecutiveErrors >= maxConsecutiveErrors {
			log.Printf("  ⚠️  High error rate detected. Slowing polling...")
			select {
			case <-ctx.Done():
			case <-time.After(20 * time.Second):
			}
		}
		return
	}

	o.mu.Lock()
	o.latest = updates
	o.mu.Unlock()

	if o.emitter != nil {
		o.emitter.Emit(ctx, updates)
	}

	liveCount := 0
	for _, update := range updates {
		if update.Game.Status == "in_progress" {
			liveCount++
		}
	}
	if liveCount > 0 {
		log.Printf("  ✓ Polling cycle complete: %d live of %d games", liveCount, len(updates))
	}
}

// runRefdataReload refreshes the reference tables when they go stale
func (o *Orchestrator) runRefdataReload(ctx context.Context) {
	log.Printf("→ Refdata reload started (interval: %v)", o.config.RefdataInterval)

	ticker := time.NewTicker(o.config.RefdataInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("→ Refdata reload stopped")
			return
		case <-ticker.C:
			if !o.refdata.Stale() {
				continue
			}
			if err := o.refdata.Load(); err != nil {
				// Keep serving the previous tables
				log.Printf("  ⚠️  Refdata reload failed: %v", err)
				continue
			}
			log.Println("  ✓ Refdata reloaded")
		}
	}
}

// Stop gracefully stops the scheduler
func (o *Orchestrator) Stop() {
	log.Println("Stopping scheduler orchestrator...")

	if o.pollCancel != nil {
		o.pollCancel()
	}
	if o.refdataCancel != nil {
		o.refdataCancel()
	}
	if o.cancel != nil {
		o.cancel()
	}

	log.Println("✓ Scheduler orchestrator stopped")
}

// GetStatus returns current scheduler status
func (o *Orchestrator) GetStatus() map[string]interface{} {
	o.mu.RLock()
	tracked := len(o.latest)
	o.mu.RUnlock()

	return map[string]interface{}{
		"live_polling_enabled": o.config.EnableLivePolling,
		"live_poll_interval":   o.config.LivePollInterval.String(),
		"refdata_interval":     o.config.RefdataInterval.String(),
		"tracked_games":        tracked,
	}
}
