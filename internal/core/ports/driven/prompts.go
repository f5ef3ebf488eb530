package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// Useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptGroundedSystem is the system prompt for document-grounded
	// answering. It instructs the model to treat the provided context as
	// ground truth and to say when information is absent. No placeholders.
	PromptGroundedSystem = "grounded_system"

	// PromptNoContext is the user-message template used when no grounding
	// context is available. Expects a %s placeholder for the question.
	PromptNoContext = "no_context"
)
