package domain

import "time"

// Chunk labels produced by the chunking strategies.
const (
	// LabelIntro marks leading unlabelled text.
	LabelIntro = "Intro"

	// LabelFullText is the last-resort label when no strategy produced
	// a usable split for non-empty text.
	LabelFullText = "Full Text"
)

// Document represents a scanned or extracted document in the knowledge base.
// It is the canonical representation after cleaning and chunking.
// Documents are immutable once chunked; the only mutation is deletion.
type Document struct {
	// ID is the unique identifier for the document's lifetime.
	ID string

	// Filename is the original upload name.
	Filename string

	// RawText is the text as produced by OCR or native extraction.
	RawText string

	// CleanedText is the normalised text that chunking operates on.
	CleanedText string

	// Chunks are the labelled spans, ordered as they appear in the source.
	// Labels are unique within one document; on duplicates the first
	// occurrence wins on lookup.
	Chunks []Chunk

	// SourceType records how the text was obtained ("upload", "camera",
	// "pdf", "docx", "text", ...).
	SourceType string

	// Confidence is the extraction confidence in [0,1].
	Confidence float64

	// ContentHash is a digest of the source bytes, used for duplicate
	// detection. Optional; not required to be unique for malformed input.
	ContentHash string

	// BlockCount is the number of extraction blocks the source produced.
	BlockCount int

	// FileSizeBytes is the size of the source file.
	FileSizeBytes int64

	// MimeType is the source content type.
	MimeType string

	// CreatedAt is when the document was stored.
	CreatedAt time.Time

	// UpdatedAt is when the document record was last written.
	UpdatedAt time.Time
}

// Chunk is a labelled contiguous span of one document's cleaned text.
// Labels are section markers ("S3"), page markers ("Page 2"), synthetic
// window labels ("Part 1"), or "Intro" for leading unlabelled text.
type Chunk struct {
	Label string
	Text  string
}

// ChunkLabels returns the labels of all chunks in document order.
func (d *Document) ChunkLabels() []string {
	if len(d.Chunks) == 0 {
		return nil
	}
	labels := make([]string, len(d.Chunks))
	for i := range d.Chunks {
		labels[i] = d.Chunks[i].Label
	}
	return labels
}

// ChunkByLabel returns the first chunk with the given label.
// Duplicate labels within one document are legal but ambiguous; the
// first occurrence wins.
func (d *Document) ChunkByLabel(label string) (Chunk, bool) {
	for i := range d.Chunks {
		if d.Chunks[i].Label == label {
			return d.Chunks[i], true
		}
	}
	return Chunk{}, false
}

// Stats summarises the knowledge base contents.
type Stats struct {
	TotalDocuments  int
	TotalChunks     int
	TotalCharacters int
	AvgConfidence   float64
}
