package domain

// Block is one positioned text region from the extraction collaborator.
type Block struct {
	// Text is the transcribed line or region text.
	Text string

	// Confidence is the per-block transcription confidence in [0,1].
	Confidence float64

	// BBox is the bounding box as [x1, y1, x2, y2]. Empty for native
	// (non-OCR) extraction.
	BBox []int
}

// ExtractionResult is the output shape of the OCR / native-text
// extraction collaborator, consumed by the knowledge service.
type ExtractionResult struct {
	// Text is the full raw transcription.
	Text string

	// Blocks are the per-line regions with confidence and position.
	Blocks []Block

	// AvgConfidence is the mean block confidence in [0,1].
	AvgConfidence float64

	// SourceType records the extraction path ("text", "pdf", "docx", ...).
	SourceType string

	// ProcessingSeconds is how long extraction took.
	ProcessingSeconds float64
}
