package organize

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/logger"
)

// DefaultMaxAttempts is how many times one job may call the classification
// endpoint. Only content-level failures (unparsable or invalid plans) consume
// a retry; transport errors, timeouts and cancellation are terminal.
const DefaultMaxAttempts = 2

// ErrUnknownStrategy is returned by Create for a strategy id not in the catalog.
var ErrUnknownStrategy = errors.New("unknown classification strategy")

// ErrNoBookmarks is returned by Create when the input set is empty.
var ErrNoBookmarks = errors.New("no bookmarks to classify")

// CreateRequest is the caller-facing input for one classification job.
type CreateRequest struct {
	Strategy  string          `json:"strategy"`
	Bookmarks []InputBookmark `json:"bookmarks"`
	Locale    string          `json:"locale,omitempty"`
}

// Manager owns the job table and drives every job to completion on a
// background goroutine. All snapshot updates are serialized read-modify-write
// cycles under one mutex; the HTTP caller and the background task only ever
// communicate through snapshots and the per-job cancel signal.
type Manager struct {
	store       JobStore
	client      CompletionClient
	catalog     *Catalog
	logger      logger.Logger
	maxAttempts int

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	inputs  map[string][]InputBookmark
}

// NewManager wires a job manager.
func NewManager(store JobStore, client CompletionClient, catalog *Catalog, log logger.Logger) *Manager {
	return &Manager{
		store:       store,
		client:      client,
		catalog:     catalog,
		logger:      log,
		maxAttempts: DefaultMaxAttempts,
		cancels:     make(map[string]context.CancelFunc),
		inputs:      make(map[string][]InputBookmark),
	}
}

// Create registers a new pending job and starts its background task.
func (m *Manager) Create(req CreateRequest) (Snapshot, error) {
	strategy, ok := m.catalog.Get(req.Strategy)
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, req.Strategy)
	}
	if len(req.Bookmarks) == 0 {
		return Snapshot{}, ErrNoBookmarks
	}

	now := time.Now()
	snap := Snapshot{
		ID:             uuid.New().String(),
		Status:         StatusPending,
		Strategy:       strategy.ID,
		StrategyLabel:  strategy.Label,
		Locale:         req.Locale,
		TotalBookmarks: len(req.Bookmarks),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	m.mu.Lock()
	m.store.Set(snap)
	m.inputs[snap.ID] = req.Bookmarks
	m.mu.Unlock()

	m.logger.Info("classification job created",
		logger.String("job_id", snap.ID),
		logger.String("strategy", strategy.ID),
		logger.Int("bookmarks", len(req.Bookmarks)))

	go m.run(snap.ID, strategy)

	return snap, nil
}

// Get returns the current snapshot of a job.
func (m *Manager) Get(id string) (Snapshot, bool) {
	return m.store.Get(id)
}

// List returns snapshots of every known job.
func (m *Manager) List() []Snapshot {
	return m.store.List()
}

// Inputs returns the bookmarks a job was created with. They are kept until
// the job is removed so a succeeded plan can be applied later.
func (m *Manager) Inputs(id string) ([]InputBookmark, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	input, ok := m.inputs[id]
	return input, ok
}

// Cancel requests cancellation. A pending or running job flips to cancelled
// immediately and any in-flight request is aborted; a terminal job only
// records that the cancel was asked for.
func (m *Manager) Cancel(id string) (Snapshot, bool) {
	m.mu.Lock()
	snap, ok := m.store.Get(id)
	if !ok {
		m.mu.Unlock()
		return Snapshot{}, false
	}

	snap.CancelRequested = true
	if !snap.Status.Terminal() {
		now := time.Now()
		snap.Status = StatusCancelled
		snap.FinishedAt = &now
	}
	snap.UpdatedAt = time.Now()
	m.store.Set(snap)
	cancel := m.cancels[id]
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	m.logger.Info("classification job cancel requested",
		logger.String("job_id", id),
		logger.String("status", string(snap.Status)))
	return snap, true
}

// Remove drops a job and its retained input from the table.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.Delete(id)
	delete(m.inputs, id)
	delete(m.cancels, id)
}

// run drives one job to a terminal state. It never runs on a request path.
func (m *Manager) run(id string, strategy Strategy) {
	m.mu.Lock()
	snap, ok := m.store.Get(id)
	if !ok || snap.Status != StatusPending {
		// Cancelled (or removed) before start: skip the external call.
		m.mu.Unlock()
		return
	}
	now := time.Now()
	snap.Status = StatusRunning
	snap.StartedAt = &now
	snap.UpdatedAt = now
	m.store.Set(snap)

	ctx, cancel := context.WithCancel(context.Background())
	m.cancels[id] = cancel
	input := m.inputs[id]
	locale := snap.Locale
	m.mu.Unlock()

	defer func() {
		cancel()
		m.mu.Lock()
		delete(m.cancels, id)
		m.mu.Unlock()
	}()

	knownIDs := make(map[string]bool, len(input))
	for _, bm := range input {
		knownIDs[bm.ID] = true
	}

	var lastErr error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		if m.cancelled(id) {
			return
		}

		prompt := BuildPrompt(strategy, locale, input, attempt)
		res, err := m.client.Complete(ctx, prompt)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				// Cancellation is an outcome, not an error.
				m.finishCancelled(id)
				return
			}
			m.fail(id, err)
			return
		}

		plan, err := DecodePlan(res.Content, knownIDs)
		if err != nil {
			lastErr = err
			m.logger.Warn("classification attempt produced no usable plan",
				logger.String("job_id", id),
				logger.Int("attempt", attempt),
				logger.Error(err))
			continue
		}

		m.succeed(id, plan, res)
		return
	}

	m.fail(id, lastErr)
}

func (m *Manager) cancelled(id string) bool {
	snap, ok := m.store.Get(id)
	return !ok || snap.Status == StatusCancelled || snap.CancelRequested
}

// succeed records the result unless a cancel won the race; a cancel observed
// at completion time always beats a late success.
func (m *Manager) succeed(id string, plan *Plan, res *ChatResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, ok := m.store.Get(id)
	if !ok || snap.Status.Terminal() {
		return
	}
	now := time.Now()
	if snap.CancelRequested {
		snap.Status = StatusCancelled
	} else {
		snap.Status = StatusSucceeded
		snap.Result = &Result{Plan: plan, RawContent: res.Content, Usage: res.Usage}
	}
	snap.FinishedAt = &now
	snap.UpdatedAt = now
	m.store.Set(snap)

	m.logger.Info("classification job finished",
		logger.String("job_id", id),
		logger.String("status", string(snap.Status)))
}

func (m *Manager) fail(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, ok := m.store.Get(id)
	if !ok || snap.Status.Terminal() {
		// A cancelled job suppresses any error from the aborted attempt.
		return
	}
	now := time.Now()
	snap.Status = StatusFailed
	if err != nil {
		snap.Error = err.Error()
	} else {
		snap.Error = "classification failed"
	}
	snap.FinishedAt = &now
	snap.UpdatedAt = now
	m.store.Set(snap)

	m.logger.Warn("classification job failed",
		logger.String("job_id", id),
		logger.Error(err))
}

func (m *Manager) finishCancelled(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, ok := m.store.Get(id)
	if !ok || snap.Status.Terminal() {
		return
	}
	now := time.Now()
	snap.Status = StatusCancelled
	snap.FinishedAt = &now
	snap.UpdatedAt = now
	m.store.Set(snap)
}
