package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driven"
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driving"
	"github.com/docfox-labs/docfox-cli/internal/logger"
	"github.com/docfox-labs/docfox-cli/internal/normalisers/ocrtext"
	"github.com/docfox-labs/docfox-cli/internal/postprocessors/chunker"
)

var _ driving.KnowledgeService = (*Knowledge)(nil)

// Knowledge owns the document lifecycle: extraction, cleaning, chunking
// and persistence. Writes are serialised through a single mutex; reads
// go straight to the store.
type Knowledge struct {
	store      driven.DocumentStore
	chunks     *chunker.Processor
	extractors []driven.TextExtractor

	writeMu sync.Mutex
}

// NewKnowledge creates the document lifecycle service. Extractors are
// tried in order when ingesting files.
func NewKnowledge(store driven.DocumentStore, chunks *chunker.Processor, extractors ...driven.TextExtractor) *Knowledge {
	if chunks == nil {
		chunks = chunker.New()
	}
	return &Knowledge{
		store:      store,
		chunks:     chunks,
		extractors: extractors,
	}
}

// AddDocument cleans, chunks and stores raw text as a new document.
// A document whose content hash is already stored is rejected with
// ErrDuplicateDocument; the existing document is returned alongside the
// error so callers can point at it.
func (k *Knowledge) AddDocument(ctx context.Context, input driving.AddDocumentInput) (*domain.Document, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, fmt.Errorf("%w: document text is empty", domain.ErrInvalidInput)
	}

	filename := strings.TrimSpace(input.Filename)
	if filename == "" {
		filename = "unknown"
	}

	contentHash := input.ContentHash
	if contentHash == "" {
		contentHash = hashContent([]byte(input.Text))
	}

	k.writeMu.Lock()
	defer k.writeMu.Unlock()

	if existing, err := k.store.FindByContentHash(ctx, contentHash); err == nil && existing != nil {
		logger.Debug("Duplicate content hash %s matches document %s", contentHash, existing.ID)
		return existing, fmt.Errorf("%w: content already stored as %s (%s)",
			domain.ErrDuplicateDocument, existing.ID, existing.Filename)
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check content hash: %w", err)
	}

	logger.Section("Document Ingestion")
	logger.Debug("Cleaning %d chars from %s", len(input.Text), filename)

	cleaned := ocrtext.Clean(input.Text)
	chunks := k.chunks.Process(cleaned)
	logger.Debug("Chunked into %d parts: %v", len(chunks), chunkLabels(chunks))

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:            uuid.New().String()[:8],
		Filename:      filename,
		RawText:       input.Text,
		CleanedText:   cleaned,
		Chunks:        chunks,
		SourceType:    input.SourceType,
		Confidence:    input.Confidence,
		ContentHash:   contentHash,
		BlockCount:    len(input.Blocks),
		FileSizeBytes: input.FileSizeBytes,
		MimeType:      input.MimeType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := k.store.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	logger.Info("Document stored: %s - %s (%d chunks)", doc.ID, doc.Filename, len(doc.Chunks))
	return doc, nil
}

// AddFile extracts text from raw file content and ingests the result.
// The extractor is chosen by file extension; unsupported extensions
// fail with ErrUnsupportedType.
func (k *Knowledge) AddFile(ctx context.Context, content []byte, filename string) (*domain.Document, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: file content is empty", domain.ErrInvalidInput)
	}

	extractor, err := k.extractorFor(filename)
	if err != nil {
		return nil, err
	}

	result, err := extractor.Extract(ctx, content, filename)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}

	return k.AddDocument(ctx, driving.AddDocumentInput{
		Filename:      filepath.Base(filename),
		Text:          result.Text,
		SourceType:    result.SourceType,
		Confidence:    result.AvgConfidence,
		Blocks:        result.Blocks,
		FileSizeBytes: int64(len(content)),
		ContentHash:   hashContent(content),
	})
}

// Get retrieves a document by ID.
func (k *Knowledge) Get(ctx context.Context, id string) (*domain.Document, error) {
	return k.store.GetDocument(ctx, id)
}

// List returns all stored documents.
func (k *Knowledge) List(ctx context.Context) ([]domain.Document, error) {
	return k.store.ListDocuments(ctx)
}

// FindByContentHash looks up a document by its content hash.
func (k *Knowledge) FindByContentHash(ctx context.Context, hash string) (*domain.Document, error) {
	return k.store.FindByContentHash(ctx, hash)
}

// Delete removes a document. Deleting an unknown ID reports false
// without an error so removal is idempotent.
func (k *Knowledge) Delete(ctx context.Context, id string) (bool, error) {
	k.writeMu.Lock()
	defer k.writeMu.Unlock()

	err := k.store.DeleteDocument(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete document %s: %w", id, err)
	}

	logger.Info("Document deleted: %s", id)
	return true, nil
}

// Stats summarises the collection.
func (k *Knowledge) Stats(ctx context.Context) (domain.Stats, error) {
	docs, err := k.store.ListDocuments(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	stats := domain.Stats{TotalDocuments: len(docs)}
	var confidenceSum float64
	for i := range docs {
		stats.TotalChunks += len(docs[i].Chunks)
		stats.TotalCharacters += len(docs[i].CleanedText)
		confidenceSum += docs[i].Confidence
	}
	if len(docs) > 0 {
		stats.AvgConfidence = confidenceSum / float64(len(docs))
	}
	return stats, nil
}

func (k *Knowledge) extractorFor(filename string) (driven.TextExtractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range k.extractors {
		for _, supported := range e.SupportedExtensions() {
			if ext == supported {
				return e, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: no extractor for %q", domain.ErrUnsupportedType, ext)
}

func hashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func chunkLabels(chunks []domain.Chunk) []string {
	labels := make([]string, len(chunks))
	for i, c := range chunks {
		labels[i] = c.Label
	}
	return labels
}
