// Package plaintext provides a text extractor for native text files.
// There is no OCR involved, so every line becomes a block with full
// confidence.
package plaintext

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor reads native text files.
type Extractor struct{}

// New creates a plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions lists the file extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".txt", ".md", ".text", ".log", ".csv"}
}

// Extract converts file content into an extraction result. Each
// non-empty line becomes one block with confidence 1.0.
func (e *Extractor) Extract(_ context.Context, content []byte, filename string) (*domain.ExtractionResult, error) {
	start := time.Now()

	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8 text", domain.ErrInvalidInput, filename)
	}

	text := string(content)

	var blocks []domain.Block
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		blocks = append(blocks, domain.Block{Text: line, Confidence: 1.0})
	}

	return &domain.ExtractionResult{
		Text:              text,
		Blocks:            blocks,
		AvgConfidence:     1.0,
		SourceType:        "text",
		ProcessingSeconds: time.Since(start).Seconds(),
	}, nil
}
