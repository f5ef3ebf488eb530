// Package mcp provides an MCP (Model Context Protocol) server adapter for
// DocFox. It lets AI assistants search the document collection and pull
// grounding context directly.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
