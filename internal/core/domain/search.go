package domain

// ScoredDocument is the ephemeral result of ranking one document against
// a query. It is never persisted.
type ScoredDocument struct {
	// DocumentID identifies the matched document.
	DocumentID string

	// Filename is the matched document's upload name.
	Filename string

	// Score is the additive integer relevance score. Always positive in
	// results; zero-scoring documents are excluded entirely.
	Score int

	// MatchedChunks lists chunk labels that contributed a section bonus.
	MatchedChunks []string
}

// ContextFragment is one labelled piece of assembled context.
type ContextFragment struct {
	// SourceFilename names the document the fragment came from.
	// Empty for "NOT FOUND" report lines.
	SourceFilename string

	// Label is the chunk label for section reports, empty for snippets.
	Label string

	// Text is the fragment body as it appears in the rendered context.
	Text string
}

// ContextBundle is the ephemeral output of context aggregation: the
// ordered fragments handed to the LLM plus a truncation flag.
type ContextBundle struct {
	Fragments []ContextFragment
	Truncated bool
}
