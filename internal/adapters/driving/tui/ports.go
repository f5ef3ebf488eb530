// Package tui provides an interactive terminal user interface for docfox.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search ranks documents and assembles grounding context.
	Search driving.SearchService

	// Chat answers questions grounded in the collection. Optional; when
	// nil the ask mode reports that no LLM is configured.
	Chat driving.ChatService

	// Knowledge manages the document collection. Optional; used for the
	// collection summary in the header.
	Knowledge driving.KnowledgeService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchService,
	chat driving.ChatService,
	knowledge driving.KnowledgeService,
) *Ports {
	return &Ports{
		Search:    search,
		Chat:      chat,
		Knowledge: knowledge,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
