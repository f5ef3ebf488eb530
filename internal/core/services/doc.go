// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The retrieval services (ranking, snippet extraction, context
// aggregation) recompute their work fresh per request over the full
// in-memory collection. This is a deliberate linear-scan design for
// collections in the tens to hundreds of documents.
package services
