// Package jsonfile provides the default document store: a single
// human-readable JSON file under the data directory.
//
// The whole collection is held in memory and rewritten atomically on
// every mutation (temp file plus rename). A filesystem watcher marks
// the cache stale when another process rewrites the file; the next
// read reloads it. A corrupt file is set aside and the store restarts
// empty rather than failing open.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driven"
	"github.com/docfox-labs/docfox-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

const fileVersion = 1

// fileEnvelope is the on-disk layout.
type fileEnvelope struct {
	Version   int            `json:"version"`
	UpdatedAt time.Time      `json:"updated_at"`
	Documents []fileDocument `json:"documents"`
}

type fileDocument struct {
	ID            string      `json:"id"`
	Filename      string      `json:"filename"`
	RawText       string      `json:"raw_text"`
	CleanedText   string      `json:"cleaned_text"`
	Chunks        []fileChunk `json:"chunks"`
	SourceType    string      `json:"source_type,omitempty"`
	Confidence    float64     `json:"confidence,omitempty"`
	ContentHash   string      `json:"content_hash,omitempty"`
	BlockCount    int         `json:"block_count,omitempty"`
	FileSizeBytes int64       `json:"file_size_bytes,omitempty"`
	MimeType      string      `json:"mime_type,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type fileChunk struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Store is a JSON-file-backed document store.
type Store struct {
	path string

	mu        sync.Mutex
	documents map[string]domain.Document
	order     []string

	watcher *fsnotify.Watcher
	stale   atomic.Bool
	done    chan struct{}
}

// NewStore creates a JSON file store in the specified data directory.
// If dataDir is empty, defaults to ~/.docfox/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docfox", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	s := &Store{
		path:      filepath.Join(dataDir, "documents.json"),
		documents: make(map[string]domain.Document),
		done:      make(chan struct{}),
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	// Watch the directory, not the file: atomic rename replaces the
	// inode, which would silently detach a file-level watch.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dataDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching data directory: %w", err)
	}
	s.watcher = watcher
	go s.watch()

	return s, nil
}

// Close stops the filesystem watcher.
func (s *Store) Close() error {
	close(s.done)
	return s.watcher.Close()
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) watch() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Name != s.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				s.stale.Store(true)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Data file watcher: %v", err)
		}
	}
}

// load reads the data file into memory. Caller must hold mu or be the
// constructor.
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.documents = make(map[string]domain.Document)
		s.order = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading data file: %w", err)
	}

	var envelope fileEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		// Keep the broken file for inspection, then start empty.
		quarantine := s.path + ".corrupt"
		logger.Error("Data file is corrupt (%v), moving to %s", err, quarantine)
		if renameErr := os.Rename(s.path, quarantine); renameErr != nil {
			logger.Error("Could not quarantine data file: %v", renameErr)
		}
		s.documents = make(map[string]domain.Document)
		s.order = nil
		return nil
	}

	if envelope.Version > fileVersion {
		logger.Warn("Data file version %d is newer than supported %d", envelope.Version, fileVersion)
	}

	s.documents = make(map[string]domain.Document, len(envelope.Documents))
	s.order = make([]string, 0, len(envelope.Documents))
	for _, fd := range envelope.Documents {
		s.documents[fd.ID] = fromFileDocument(fd)
		s.order = append(s.order, fd.ID)
	}

	logger.Debug("Loaded %d documents from %s", len(s.order), s.path)
	return nil
}

// ensureFresh reloads the file when the watcher flagged an external
// change. Caller must hold mu.
func (s *Store) ensureFresh() error {
	if !s.stale.Swap(false) {
		return nil
	}
	return s.load()
}

// persist writes the collection atomically. Caller must hold mu.
func (s *Store) persist() error {
	envelope := fileEnvelope{
		Version:   fileVersion,
		UpdatedAt: time.Now().UTC(),
		Documents: make([]fileDocument, 0, len(s.order)),
	}
	for _, id := range s.order {
		envelope.Documents = append(envelope.Documents, toFileDocument(s.documents[id]))
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling data file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".documents-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing data file: %w", err)
	}

	// The rename fires our own watcher; the state on disk matches
	// memory, so the pending reload is a no-op.
	s.stale.Store(false)
	return nil
}

// SaveDocument stores or updates a document.
func (s *Store) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFresh(); err != nil {
		return err
	}

	if _, exists := s.documents[doc.ID]; !exists {
		s.order = append(s.order, doc.ID)
	}
	s.documents[doc.ID] = *doc

	return s.persist()
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFresh(); err != nil {
		return nil, err
	}

	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns all documents in insertion order.
func (s *Store) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFresh(); err != nil {
		return nil, err
	}

	if len(s.order) == 0 {
		return nil, nil
	}
	result := make([]domain.Document, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.documents[id])
	}
	return result, nil
}

// FindByContentHash returns the document with the given content hash,
// or nil when nothing matches.
func (s *Store) FindByContentHash(_ context.Context, hash string) (*domain.Document, error) {
	if hash == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFresh(); err != nil {
		return nil, err
	}

	for _, id := range s.order {
		doc := s.documents[id]
		if doc.ContentHash == hash {
			return &doc, nil
		}
	}
	return nil, nil
}

// DeleteDocument removes a document.
func (s *Store) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFresh(); err != nil {
		return err
	}

	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return s.persist()
}

func toFileDocument(doc domain.Document) fileDocument {
	chunks := make([]fileChunk, len(doc.Chunks))
	for i, c := range doc.Chunks {
		chunks[i] = fileChunk{Label: c.Label, Text: c.Text}
	}
	return fileDocument{
		ID:            doc.ID,
		Filename:      doc.Filename,
		RawText:       doc.RawText,
		CleanedText:   doc.CleanedText,
		Chunks:        chunks,
		SourceType:    doc.SourceType,
		Confidence:    doc.Confidence,
		ContentHash:   doc.ContentHash,
		BlockCount:    doc.BlockCount,
		FileSizeBytes: doc.FileSizeBytes,
		MimeType:      doc.MimeType,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

func fromFileDocument(fd fileDocument) domain.Document {
	chunks := make([]domain.Chunk, len(fd.Chunks))
	for i, c := range fd.Chunks {
		chunks[i] = domain.Chunk{Label: c.Label, Text: c.Text}
	}
	return domain.Document{
		ID:            fd.ID,
		Filename:      fd.Filename,
		RawText:       fd.RawText,
		CleanedText:   fd.CleanedText,
		Chunks:        chunks,
		SourceType:    fd.SourceType,
		Confidence:    fd.Confidence,
		ContentHash:   fd.ContentHash,
		BlockCount:    fd.BlockCount,
		FileSizeBytes: fd.FileSizeBytes,
		MimeType:      fd.MimeType,
		CreatedAt:     fd.CreatedAt,
		UpdatedAt:     fd.UpdatedAt,
	}
}
