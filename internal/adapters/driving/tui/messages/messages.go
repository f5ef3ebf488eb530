// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/docfox-labs/docfox-cli/internal/core/domain"
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driving"
)

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Query   string
	Results []domain.ScoredDocument
	Err     error
}

// AnswerReceived carries a grounded LLM answer back to the model.
type AnswerReceived struct {
	Question string
	Answer   *driving.Answer
	Err      error
}

// StatsLoaded carries the collection summary for the header.
type StatsLoaded struct {
	Stats domain.Stats
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
