package cli

import (
	"context"
	"errors"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driving"
)

// setupTestServices installs mock services and returns a cleanup function
// restoring the previous wiring.
func setupTestServices() func() {
	oldSearch := searchService
	oldKnowledge := knowledgeService
	oldChat := chatService

	searchService = &mockSearchService{
		results: []domain.ScoredDocument{
			{DocumentID: "doc-1", Filename: "policy.pdf", Score: 140, MatchedChunks: []string{"S2"}},
			{DocumentID: "doc-2", Filename: "notes.txt", Score: 40},
		},
		contextText: "[From: policy.pdf]\nDeadline is Friday.",
	}
	knowledgeService = &mockKnowledgeService{
		documents: []domain.Document{
			{
				ID:          "doc-1",
				Filename:    "policy.pdf",
				CleanedText: "S1. Terms. S2. Deadline is Friday.",
				SourceType:  "pdf",
				Confidence:  0.9,
				Chunks: []domain.Chunk{
					{Label: "S1", Text: "Terms."},
					{Label: "S2", Text: "Deadline is Friday."},
				},
			},
		},
		document: &domain.Document{
			ID:          "doc-1",
			Filename:    "policy.pdf",
			CleanedText: "S1. Terms. S2. Deadline is Friday.",
			Chunks: []domain.Chunk{
				{Label: "S1", Text: "Terms."},
				{Label: "S2", Text: "Deadline is Friday."},
			},
		},
		stats:   domain.Stats{TotalDocuments: 1, TotalChunks: 2, TotalCharacters: 34, AvgConfidence: 0.9},
		removed: true,
	}
	chatService = &mockChatService{
		answer: &driving.Answer{
			Text:    "**Friday**",
			Sources: []driving.SourceRef{{DocumentID: "doc-1", Filename: "policy.pdf"}},
		},
	}

	return func() {
		searchService = oldSearch
		knowledgeService = oldKnowledge
		chatService = oldChat
	}
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results     []domain.ScoredDocument
	contextText string
	bundle      *domain.ContextBundle
	err         error
}

func (m *mockSearchService) Search(_ context.Context, _ string, _ int) ([]domain.ScoredDocument, error) {
	return m.results, m.err
}

func (m *mockSearchService) ContextForQuery(_ context.Context, _ string, _ int) (string, error) {
	return m.contextText, m.err
}

func (m *mockSearchService) BuildContext(_ context.Context, _ string, _ int) (*domain.ContextBundle, error) {
	return m.bundle, m.err
}

// mockSearchServiceError always fails.
type mockSearchServiceError struct{}

func (m *mockSearchServiceError) Search(_ context.Context, _ string, _ int) ([]domain.ScoredDocument, error) {
	return nil, errors.New("index unavailable")
}

func (m *mockSearchServiceError) ContextForQuery(_ context.Context, _ string, _ int) (string, error) {
	return "", errors.New("index unavailable")
}

func (m *mockSearchServiceError) BuildContext(_ context.Context, _ string, _ int) (*domain.ContextBundle, error) {
	return nil, errors.New("index unavailable")
}

// mockKnowledgeService is a mock implementation of driving.KnowledgeService.
type mockKnowledgeService struct {
	documents []domain.Document
	document  *domain.Document
	stats     domain.Stats
	removed   bool
	err       error
}

func (m *mockKnowledgeService) AddDocument(_ context.Context, _ driving.AddDocumentInput) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockKnowledgeService) AddFile(_ context.Context, _ []byte, _ string) (*domain.Document, error) {
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

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	answer *driving.Answer
	err    error
}

func (m *mockChatService) Ask(_ context.Context, _ string) (*driving.Answer, error) {
	return m.answer, m.err
}
