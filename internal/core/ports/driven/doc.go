// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: Document persistence (JSON file, SQLite, or memory)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Grounded answering. Without it, search and context
//     assembly still work; only `ask` is disabled.
//   - TextExtractor: Turns source files into text. Without it, documents
//     can only be added from pre-extracted text.
//   - PromptStore: Prompt template overrides. Without it, hardcoded
//     defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, normaliser, or chunker package
package driven
