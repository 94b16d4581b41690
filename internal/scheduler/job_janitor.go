package scheduler

import (
	"context"
	"time"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/logger"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/organize"
)

const (
	// DefaultRetention is how long terminal job snapshots are kept around
	// for polling before being evicted.
	DefaultRetention = 24 * time.Hour
)

// JobJanitor evicts finished classification jobs from the job table. The
// table is never required to be cleared for correctness; this is memory
// hygiene for a long-running process.
type JobJanitor struct {
	manager   *organize.Manager
	logger    logger.Logger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
}

// NewJobJanitor creates a new job janitor.
func NewJobJanitor(manager *organize.Manager, log logger.Logger, interval, retention time.Duration) *JobJanitor {
	if retention == 0 {
		retention = DefaultRetention
	}

	return &JobJanitor{
		manager:   manager,
		logger:    log,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic eviction process.
func (j *JobJanitor) Start(ctx context.Context) error {
	// Run immediately on start
	j.Collect(time.Now())

	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				j.Collect(time.Now())
			case <-j.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the janitor.
func (j *JobJanitor) Stop() {
	close(j.stopCh)
}

// Collect removes terminal jobs that finished longer than the retention ago.
func (j *JobJanitor) Collect(now time.Time) int {
	evicted := 0
	for _, snap := range j.manager.List() {
		if !snap.Status.Terminal() {
			continue
		}
		finished := snap.UpdatedAt
		if snap.FinishedAt != nil {
			finished = *snap.FinishedAt
		}
		if now.Sub(finished) < j.retention {
			continue
		}

		j.manager.Remove(snap.ID)
		j.logger.Debug("evicted finished classification job",
			logger.String("job_id", snap.ID),
			logger.String("status", string(snap.Status)))
		evicted++
	}

	if evicted > 0 {
		j.logger.Info("job table cleanup completed",
			logger.Int("jobs_evicted", evicted))
	}
	return evicted
}
