package organize

import "sync"

// JobStore is the process-wide job table. It is injectable so tests can run
// against an isolated instance. Implementations must make Set a plain
// whole-record replace; the Manager serializes read-modify-write cycles.
type JobStore interface {
	Get(id string) (Snapshot, bool)
	Set(snap Snapshot)
	Delete(id string)
	List() []Snapshot
}

// MemoryJobStore is the default in-process JobStore.
type MemoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]Snapshot
}

// NewMemoryJobStore creates an empty job table.
func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{jobs: make(map[string]Snapshot)}
}

func (s *MemoryJobStore) Get(id string) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.jobs[id]
	return snap, ok
}

func (s *MemoryJobStore) Set(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[snap.ID] = snap
}

func (s *MemoryJobStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}

func (s *MemoryJobStore) List() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Snapshot, 0, len(s.jobs))
	for _, snap := range s.jobs {
		out = append(out, snap)
	}
	return out
}
