// Package domain defines the core business entities for Docfox.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A scanned document with its cleaned text and chunks
//   - Chunk: A labelled contiguous span of one document's text
//   - ScoredDocument: A ranking result for one query
//   - ContextBundle: Assembled grounding context for the LLM
//   - ExtractionResult: The text extraction collaborator's output
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
