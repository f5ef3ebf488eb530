package tui

import (
	"context"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results     []domain.ScoredDocument
	contextText string
	bundle      *domain.ContextBundle
	err         error
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	_ int,
) ([]domain.ScoredDocument, error) {
	return m.results, m.err
}

func (m *mockSearchService) ContextForQuery(
	_ context.Context,
	_ string,
	_ int,
) (string, error) {
	return m.contextText, m.err
}

func (m *mockSearchService) BuildContext(
	_ context.Context,
	_ string,
	_ int,
) (*domain.ContextBundle, error) {
	return m.bundle, m.err
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	answer *driving.Answer
	err    error
}

func (m *mockChatService) Ask(_ context.Context, _ string) (*driving.Answer, error) {
	return m.answer, m.err
}

// mockKnowledgeService is a mock implementation of driving.KnowledgeService.
type mockKnowledgeService struct {
	documents []domain.Document
	document  *domain.Document
	stats     domain.Stats
	removed   bool
	err       error
}

func (m *mockKnowledgeService) AddDocument(
	_ context.Context,
	_ driving.AddDocumentInput,
) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockKnowledgeService) AddFile(
	_ context.Context,
	_ []byte,
	_ string,
) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockKnowledgeService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockKnowledgeService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockKnowledgeService) FindByContentHash(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockKnowledgeService) Delete(_ context.Context, _ string) (bool, error) {
	return m.removed, m.err
}

func (m *mockKnowledgeService) Stats(_ context.Context) (domain.Stats, error) {
	return m.stats, m.err
}
