package driving

import "context"

// SourceRef identifies a document that contributed grounding context.
type SourceRef struct {
	DocumentID string
	Filename   string
}

// Answer is a generated reply plus the documents it was grounded on.
type Answer struct {
	Text    string
	Sources []SourceRef
}

// ChatService answers questions grounded in the document collection.
type ChatService interface {
	// Ask retrieves context for the question and queries the LLM.
	// When no context is available the model is told so rather than
	// being allowed to improvise.
	Ask(ctx context.Context, question string) (*Answer, error)
}
