package store

import (
	"context"
	"errors"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
)

// ErrNotFound is returned when no document exists for an owner.
var ErrNotFound = errors.New("document not found")

// DocumentStore is the persistence port for bookmark documents. The core
// never assumes a storage technology; adapters live in subpackages.
type DocumentStore interface {
	// Load returns the current document for an owner, or ErrNotFound.
	Load(ctx context.Context, owner string) (*bookmarks.Document, error)
	// Save stores the document as the owner's current one.
	Save(ctx context.Context, owner string, doc *bookmarks.Document) error
	// Delete removes the owner's document. Deleting a missing document is a no-op.
	Delete(ctx context.Context, owner string) error
	// Owners lists every owner with a stored document.
	Owners(ctx context.Context) ([]string, error)
}
