package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driven"
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driving"
	"github.com/docfox-labs/docfox-cli/internal/logger"
)

var _ driving.ChatService = (*Chat)(nil)

// Built-in prompts used when no prompt store is configured. Small local
// models follow short imperative instructions far better than verbose
// ones, so these stay terse.
const (
	defaultGroundedSystem = "You are a direct data extractor. Answer using ONLY the provided context. " +
		"Use bold bullet points. If the context says 'NOT FOUND', answer 'Not found'."

	defaultNoContext = "Tell the user that no scanned document is available to answer from. Question: %s"
)

// groundedTemplate wraps retrieved context and the question into the
// final user message.
const groundedTemplate = "Context:\n%s\n\nQuestion: %s\nAnswer:"

// Chat answers questions grounded in the stored documents. Retrieval
// runs first; the model only ever sees retrieved context plus the
// question, never the whole collection.
type Chat struct {
	search  driving.SearchService
	llm     driven.LLMService
	prompts driven.PromptStore

	maxContextChars int
}

// ChatOption configures the chat service.
type ChatOption func(*Chat)

// WithPromptStore overrides the built-in prompts with stored templates.
func WithPromptStore(store driven.PromptStore) ChatOption {
	return func(c *Chat) { c.prompts = store }
}

// WithMaxContextChars sets the context budget passed to retrieval.
func WithMaxContextChars(n int) ChatOption {
	return func(c *Chat) {
		if n > 0 {
			c.maxContextChars = n
		}
	}
}

// NewChat creates the grounded question-answering service.
func NewChat(search driving.SearchService, llm driven.LLMService, opts ...ChatOption) *Chat {
	c := &Chat{
		search:          search,
		llm:             llm,
		maxContextChars: DefaultContextChars,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ask answers a question using retrieved document context. Without an
// LLM backend it fails with ErrLLMUnavailable; retrieval itself never
// needs the model.
func (c *Chat) Ask(ctx context.Context, question string) (*driving.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}
	if c.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	logger.Section("Grounded Chat")

	grounding, err := c.search.ContextForQuery(ctx, question, c.maxContextChars)
	if err != nil {
		return nil, fmt.Errorf("build context: %w", err)
	}

	var userMsg string
	if grounding != "" {
		userMsg = fmt.Sprintf(groundedTemplate, grounding, question)
	} else {
		userMsg = fmt.Sprintf(c.prompt(driven.PromptNoContext, defaultNoContext), question)
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: c.prompt(driven.PromptGroundedSystem, defaultGroundedSystem)},
		{Role: "user", Content: userMsg},
	}

	logger.Debug("Asking %s with %d context chars", c.llm.ModelName(), len(grounding))
	reply, err := c.llm.Chat(ctx, messages, driven.ChatOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}

	answer := &driving.Answer{Text: strings.TrimSpace(reply)}
	if grounding != "" {
		answer.Sources = c.sources(ctx, question)
	}
	return answer, nil
}

// sources lists the documents that fed the context. Failures here only
// cost attribution, never the answer.
func (c *Chat) sources(ctx context.Context, question string) []driving.SourceRef {
	results, err := c.search.Search(ctx, question, contextTopK)
	if err != nil {
		logger.Warn("Source attribution failed: %v", err)
		return nil
	}
	refs := make([]driving.SourceRef, 0, len(results))
	for _, res := range results {
		refs = append(refs, driving.SourceRef{
			DocumentID: res.DocumentID,
			Filename:   res.Filename,
		})
	}
	return refs
}

func (c *Chat) prompt(name, fallback string) string {
	if c.prompts == nil {
		return fallback
	}
	text, err := c.prompts.Load(name)
	if err != nil || strings.TrimSpace(text) == "" {
		logger.Debug("Prompt %q unavailable, using built-in", name)
		return fallback
	}
	return text
}
