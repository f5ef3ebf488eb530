package mcp

import (
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search ranks documents and assembles grounding context.
	Search driving.SearchService

	// Knowledge manages the document collection.
	Knowledge driving.KnowledgeService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Knowledge is optional; without it the document resources are empty.
	return nil
}
