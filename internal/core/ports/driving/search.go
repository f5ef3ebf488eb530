package driving

import (
	"context"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
)

// SearchService ranks documents against free-text queries and assembles
// length-bounded grounding context.
type SearchService interface {
	// Search scores every document against the query and returns the
	// top-K with score > 0, sorted by score descending (stable).
	// An empty or blank query returns no results.
	Search(ctx context.Context, query string, topK int) ([]domain.ScoredDocument, error)

	// ContextForQuery assembles the grounding context string for a query,
	// truncated to maxChars. An empty result means "no grounding
	// available", not an error.
	ContextForQuery(ctx context.Context, query string, maxChars int) (string, error)

	// BuildContext is ContextForQuery with structure preserved, for
	// callers that need per-fragment attribution.
	BuildContext(ctx context.Context, query string, maxChars int) (*domain.ContextBundle, error)
}
