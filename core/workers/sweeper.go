// ABOUTME: Sweeper worker evicts expired pending digests on a cron schedule
// ABOUTME: Complements the lazy eviction done on every cache read

package workers

import (
	"context"
	"errors"
	"sync"

	"linkdigest-api/core/interfaces"
	"linkdigest-api/pkg/featureflags"

	"github.com/robfig/cron/v3"
)

var (
	// ErrAlreadyRunning is returned when Start is called twice
	ErrAlreadyRunning = errors.New("sweeper already running")

	// ErrNoSchedule is returned when Start is called without a schedule
	ErrNoSchedule = errors.New("sweeper has no schedule")
)

// Evicter removes expired entries and reports how many were dropped
type Evicter interface {
	DeleteExpired() int
	Len() int
}

// SweeperConfig holds configuration for the sweeper
type SweeperConfig struct {
	// Schedule is a standard cron expression or descriptor such as "@every 5m"
	Schedule string

	// Flags gates each run on featureflags.SweepEnabled when set
	Flags featureflags.Manager
}

// Sweeper periodically evicts expired cache entries
type Sweeper struct {
	cache  Evicter
	logger interfaces.Logger
	config SweeperConfig

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// NewSweeper creates a sweeper for cache
func NewSweeper(cache Evicter, logger interfaces.Logger, config SweeperConfig) *Sweeper {
	return &Sweeper{
		cache:  cache,
		logger: logger,
		config: config,
	}
}

// Start schedules the sweep
func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}
	if s.config.Schedule == "" {
		return ErrNoSchedule
	}

	c := cron.New()
	if _, err := c.AddFunc(s.config.Schedule, s.Sweep); err != nil {
		return err
	}
	c.Start()

	s.cron = c
	s.running = true
	s.logger.Info("Digest sweeper started", map[string]interface{}{
		"schedule": s.config.Schedule,
	})
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish
func (s *Sweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	done := s.cron.Stop()
	s.running = false

	select {
	case <-done.Done():
		s.logger.Info("Digest sweeper stopped", nil)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sweep runs one eviction pass
func (s *Sweeper) Sweep() {
	if s.config.Flags != nil && !s.config.Flags.IsEnabled(context.Background(), featureflags.SweepEnabled) {
		s.logger.Debug("Digest sweep skipped, flag disabled", nil)
		return
	}

	removed := s.cache.DeleteExpired()
	if removed > 0 {
		s.logger.Info("Evicted expired digests", map[string]interface{}{
			"removed":   removed,
			"remaining": s.cache.Len(),
		})
	}
}
