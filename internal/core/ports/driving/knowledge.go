package driving

import (
	"context"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
)

// AddDocumentInput carries everything needed to store one extracted
// document. Text is the raw extraction output; cleaning and chunking
// happen synchronously inside the service.
type AddDocumentInput struct {
	Filename      string
	Text          string
	SourceType    string
	Confidence    float64
	Blocks        []domain.Block
	FileSizeBytes int64
	MimeType      string
	ContentHash   string
}

// KnowledgeService manages the document collection.
type KnowledgeService interface {
	// AddDocument cleans, chunks, and stores a new document.
	// Returns domain.ErrDuplicateDocument when a document with the same
	// content hash already exists.
	AddDocument(ctx context.Context, input AddDocumentInput) (*domain.Document, error)

	// AddFile extracts text from file bytes and stores the result.
	AddFile(ctx context.Context, content []byte, filename string) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all stored documents.
	List(ctx context.Context) ([]domain.Document, error)

	// FindByContentHash returns the document with the given hash, or nil.
	FindByContentHash(ctx context.Context, hash string) (*domain.Document, error)

	// Delete removes a document. Returns true if a document was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// Stats summarises the collection.
	Stats(ctx context.Context) (domain.Stats, error)
}
