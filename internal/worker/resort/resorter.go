// Package resort reorders the lead sheet on a timer so premium-budget
// inquiries stay at the top.
package resort

import (
	"context"
	"sync"
	"time"

	"github.com/adlweddings/wedding-lead-platform/internal/leads"
	"github.com/adlweddings/wedding-lead-platform/internal/observability/metrics"
	"github.com/adlweddings/wedding-lead-platform/pkg/logging"
)

// Resorter runs periodic re-sort passes against the lead sheet.
type Resorter struct {
	sheet    leads.Sheet
	logger   *logging.Logger
	metrics  *metrics.LeadMetrics
	interval time.Duration
}

// NewResorter creates a resorter with a one hour default interval.
func NewResorter(sheet leads.Sheet, m *metrics.LeadMetrics, logger *logging.Logger) *Resorter {
	if logger == nil {
		logger = logging.Default()
	}
	return &Resorter{
		sheet:    sheet,
		logger:   logger,
		metrics:  m,
		interval: time.Hour,
	}
}

// WithInterval overrides the tick interval.
func (r *Resorter) WithInterval(d time.Duration) *Resorter {
	if d > 0 {
		r.interval = d
	}
	return r
}

// Run ticks until ctx is cancelled. Each tick is one re-sort pass; a failed
// pass is logged and retried on the next tick.
func (r *Resorter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.resort(ctx)
		}
	}
}

func (r *Resorter) resort(ctx context.Context) {
	if r.sheet == nil {
		return
	}
	if err := r.sheet.Resort(ctx); err != nil {
		r.logger.Error("lead resort failed", "error", err)
		return
	}
	r.metrics.ObserveResort()
	r.logger.Info("leads sorted by priority")
}

// Scheduler owns the time-based triggers driving the resorter. Setup clears
// every previously registered trigger before registering a new one, so
// repeated setup calls leave exactly one trigger running.
type Scheduler struct {
	mu       sync.Mutex
	triggers []context.CancelFunc
	wg       sync.WaitGroup
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Setup registers r as the sole hourly trigger, cancelling any prior ones.
func (s *Scheduler) Setup(ctx context.Context, r *Resorter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cancel := range s.triggers {
		cancel()
	}
	s.triggers = s.triggers[:0]

	runCtx, cancel := context.WithCancel(ctx)
	s.triggers = append(s.triggers, cancel)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		r.Run(runCtx)
	}()
}

// TriggerCount returns the number of registered triggers.
func (s *Scheduler) TriggerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.triggers)
}

// Stop cancels all triggers and waits for their loops to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	for _, cancel := range s.triggers {
		cancel()
	}
	s.triggers = nil
	s.mu.Unlock()
	s.wg.Wait()
}
