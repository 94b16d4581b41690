package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
)

// MemoryStore is an in-process DocumentStore used for tests and redis-less
// development runs. Documents are stored as JSON blobs so Load always hands
// out an independent copy, same as a real backend would.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, owner string) (*bookmarks.Document, error) {
	s.mu.RLock()
	data, ok := s.docs[owner]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var doc bookmarks.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &doc, nil
}

func (s *MemoryStore) Save(_ context.Context, owner string, doc *bookmarks.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	s.mu.Lock()
	s.docs[owner] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, owner string) error {
	s.mu.Lock()
	delete(s.docs, owner)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Owners(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owners := make([]string, 0, len(s.docs))
	for owner := range s.docs {
		owners = append(owners, owner)
	}
	return owners, nil
}
