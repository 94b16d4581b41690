package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/store"
)

// Store persists bookmark documents in Redis, one JSON blob per owner plus a
// set of known owners. Documents never expire; an upload is the user's data.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis document store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Save stores the document as the owner's current one.
func (s *Store) Save(ctx context.Context, owner string, doc *bookmarks.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, DocumentKey(owner), data, 0)
	pipe.SAdd(ctx, OwnersKey(), owner)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Load retrieves the owner's document.
func (s *Store) Load(ctx context.Context, owner string) (*bookmarks.Document, error) {
	data, err := s.client.Get(ctx, DocumentKey(owner)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	var doc bookmarks.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return &doc, nil
}

// Delete removes the owner's document.
func (s *Store) Delete(ctx context.Context, owner string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, DocumentKey(owner))
	pipe.SRem(ctx, OwnersKey(), owner)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// Owners lists every owner with a stored document.
func (s *Store) Owners(ctx context.Context) ([]string, error) {
	owners, err := s.client.SMembers(ctx, OwnersKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get owners: %w", err)
	}
	return owners, nil
}
