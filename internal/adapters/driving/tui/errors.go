package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrNoChatService signals that grounded answering is unavailable.
// Search still works without it.
var ErrNoChatService = errors.New("tui: no LLM configured, ask mode unavailable")
