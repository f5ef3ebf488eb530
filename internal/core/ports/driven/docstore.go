package driven

import (
	"context"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
)

// DocumentStore persists the document collection.
// The collection is small (tens to hundreds of documents); every search
// reads the full set, so listing must be cheap. Implementations that back
// onto a shared file reload it before reads when it changed externally.
type DocumentStore interface {
	// SaveDocument stores a document with its chunks.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if the ID is unknown.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents in insertion order.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// FindByContentHash returns the document with the given content hash,
	// or nil when no document matches or the hash is empty.
	FindByContentHash(ctx context.Context, hash string) (*domain.Document, error)

	// DeleteDocument removes a document. Returns domain.ErrNotFound if
	// the ID is unknown.
	DeleteDocument(ctx context.Context, id string) error
}
