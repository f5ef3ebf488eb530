package driven

import (
	"context"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
)

// TextExtractor turns source file bytes into raw text plus per-block
// confidence. OCR transcription and native PDF/Word extraction are
// external collaborators behind this interface; the engine only consumes
// the ExtractionResult shape.
type TextExtractor interface {
	// Extract produces the raw text for a file.
	Extract(ctx context.Context, content []byte, filename string) (*domain.ExtractionResult, error)

	// SupportedExtensions lists the file extensions this extractor
	// handles, lowercase with leading dot.
	SupportedExtensions() []string
}
