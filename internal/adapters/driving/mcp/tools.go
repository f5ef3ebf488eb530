package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the query to rank documents against"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID    string   `json:"document_id"`
	Filename      string   `json:"filename"`
	Score         int      `json:"score"`
	MatchedChunks []string `json:"matched_chunks,omitempty"`
}

// ContextInput is the input schema for the get_context tool.
type ContextInput struct {
	Query    string `json:"query" jsonschema:"the question or query to assemble grounding context for"`
	MaxChars int    `json:"max_chars,omitempty" jsonschema:"context length budget in characters (default 2500)"`
}

// ContextOutput is the output schema for the get_context tool.
type ContextOutput struct {
	Context string `json:"context"`
	Empty   bool   `json:"empty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Rank stored documents against a query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_context",
		Description: "Assemble grounding context from the document collection for a query",
	}, s.handleGetContext)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 5
	}

	results, err := s.ports.Search.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID:    results[i].DocumentID,
			Filename:      results[i].Filename,
			Score:         results[i].Score,
			MatchedChunks: results[i].MatchedChunks,
		}
	}

	return nil, output, nil
}

// handleGetContext handles the get_context tool invocation.
func (s *Server) handleGetContext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ContextInput,
) (*mcp.CallToolResult, ContextOutput, error) {
	maxChars := input.MaxChars
	if maxChars <= 0 {
		maxChars = 2500
	}

	rendered, err := s.ports.Search.ContextForQuery(ctx, input.Query, maxChars)
	if err != nil {
		return nil, ContextOutput{}, err
	}

	return nil, ContextOutput{
		Context: rendered,
		Empty:   rendered == "",
	}, nil
}
