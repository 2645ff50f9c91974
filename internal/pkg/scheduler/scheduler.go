package scheduler

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"

	"github.com/appetyte/appetyte/internal/pkg/autoorder"
	"github.com/appetyte/appetyte/internal/pkg/env"
)

// Scheduler drives the nightly auto-order batch. It owns a single cron
// entry; everything else (per-pair isolation, error collection) lives in the
// batch service.
type Scheduler struct {
	cron  *cron.Cron
	batch *autoorder.Service

	mu      sync.Mutex
	running bool
}

var (
	globalScheduler *Scheduler
	schedulerOnce   sync.Once
)

// Setup initializes the global scheduler around the given batch service.
func Setup(batch *autoorder.Service) *Scheduler {
	schedulerOnce.Do(func() {
		globalScheduler = &Scheduler{
			cron:  cron.New(),
			batch: batch,
		}
	})
	return globalScheduler
}

// Get returns the global scheduler instance.
func Get() *Scheduler {
	if globalScheduler == nil {
		panic("Scheduler not initialized. Call Setup first.")
	}
	return globalScheduler
}

// Start registers the daily auto-order entry and starts the cron loop.
// The spec is configurable via AUTO_ORDER_CRON; the default fires at 00:30.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	spec := env.GetEnv("AUTO_ORDER_CRON", "30 0 * * *")
	if _, err := s.cron.AddFunc(spec, s.runBatch); err != nil {
		return err
	}

	s.cron.Start()
	s.running = true
	log.Infof("[Scheduler] auto-order scheduled with spec %q", spec)
	return nil
}

// Stop halts the cron loop and waits for a running batch to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	log.Info("[Scheduler] stopped")
}

func (s *Scheduler) runBatch() {
	summary, err := s.batch.Run(context.Background())
	if err != nil {
		log.Errorf("[Scheduler] auto-order run failed: %v", err)
		return
	}
	log.Infof("[Scheduler] auto-order for %s: %d created, %d errors",
		summary.Date, summary.OrdersCreated, len(summary.Errors))
}
