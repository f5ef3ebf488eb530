// Package chunker splits cleaned document text into an ordered sequence
// of labelled chunks. Strategy selection is a priority chain, not a
// union: section markers win over page markers, which win over the
// sliding-window fallback. Each strategy either produces a usable result
// or declares itself not applicable.
package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
)

// DefaultWindowSize is the window strategy's chunk size in characters.
const DefaultWindowSize = 1000

// DefaultWindowOverlap is the zone searched for a sentence boundary
// before each window cut point.
const DefaultWindowOverlap = 200

// DefaultSmallDocThreshold is the length under which a document becomes
// a single Intro chunk instead of being windowed.
const DefaultSmallDocThreshold = 1500

var (
	// Section markers sit at text start or after an injected blank line
	// once the normaliser has run.
	sectionMarker = regexp.MustCompile(`(^|\n\n)(S(\d+)\.)`)

	pageMarker = regexp.MustCompile(`--- Page (\d+) ---`)

	// A leading segment that is nothing but a page-label echo ("Page 1"
	// before the real "--- Page 1 ---" marker) is transcription noise,
	// not an introduction.
	barePageLabel = regexp.MustCompile(`^(?:Page \d+\s*)+$`)
)

// strategy produces chunks for one splitting approach, or reports that
// the approach does not apply to this text.
type strategy interface {
	name() string
	apply(text string) ([]domain.Chunk, bool)
}

// Processor runs the strategy chain over cleaned text.
type Processor struct {
	windowSize        int
	windowOverlap     int
	smallDocThreshold int
	strategies        []strategy
}

// Option configures the chunking processor.
type Option func(*Processor)

// WithWindowSize sets the fallback window size in characters.
func WithWindowSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.windowSize = size
		}
	}
}

// WithWindowOverlap sets the sentence-boundary search zone in characters.
func WithWindowOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.windowOverlap = overlap
		}
	}
}

// WithSmallDocThreshold sets the single-chunk cutoff in characters.
func WithSmallDocThreshold(threshold int) Option {
	return func(p *Processor) {
		if threshold > 0 {
			p.smallDocThreshold = threshold
		}
	}
}

// New creates a chunking processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		windowSize:        DefaultWindowSize,
		windowOverlap:     DefaultWindowOverlap,
		smallDocThreshold: DefaultSmallDocThreshold,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure the search zone doesn't swallow the whole window.
	if p.windowOverlap >= p.windowSize {
		p.windowOverlap = p.windowSize / 4
	}

	p.strategies = []strategy{
		sectionStrategy{},
		pageStrategy{},
		windowStrategy{
			size:      p.windowSize,
			overlap:   p.windowOverlap,
			threshold: p.smallDocThreshold,
		},
	}

	return p
}

// Process splits cleaned text into labelled chunks. Empty text produces
// no chunks; non-empty text always produces at least one, falling back
// to a single Full Text chunk if every strategy comes up empty.
func (p *Processor) Process(text string) []domain.Chunk {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	for _, s := range p.strategies {
		if chunks, ok := s.apply(text); ok && len(chunks) > 0 {
			return chunks
		}
	}

	return []domain.Chunk{{Label: domain.LabelFullText, Text: trimmed}}
}

// sectionStrategy splits at line-initial S<n>. markers.
type sectionStrategy struct{}

func (sectionStrategy) name() string { return "section" }

func (sectionStrategy) apply(text string) ([]domain.Chunk, bool) {
	matches := sectionMarker.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil, false
	}

	var chunks []domain.Chunk

	// Leading unlabelled text before the first marker.
	intro := strings.TrimSpace(text[:matches[0][4]])
	if intro != "" {
		chunks = append(chunks, domain.Chunk{Label: domain.LabelIntro, Text: intro})
	}

	for i, m := range matches {
		segEnd := len(text)
		if i+1 < len(matches) {
			segEnd = matches[i+1][4]
		}

		label := "S" + text[m[6]:m[7]]
		body := strings.TrimSpace(text[m[5]:segEnd])
		if body == "" {
			continue
		}

		chunks = append(chunks, domain.Chunk{Label: label, Text: body})
	}

	// A single segment means the split bought nothing; let the next
	// strategy try rather than emitting one giant chunk.
	if len(chunks) <= 1 {
		return nil, false
	}

	return chunks, true
}

// pageStrategy splits at --- Page <n> --- markers.
type pageStrategy struct{}

func (pageStrategy) name() string { return "page" }

func (pageStrategy) apply(text string) ([]domain.Chunk, bool) {
	matches := pageMarker.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil, false
	}

	var chunks []domain.Chunk

	intro := strings.TrimSpace(text[:matches[0][0]])
	if intro != "" && !barePageLabel.MatchString(intro) {
		chunks = append(chunks, domain.Chunk{Label: domain.LabelIntro, Text: intro})
	}

	for i, m := range matches {
		segEnd := len(text)
		if i+1 < len(matches) {
			segEnd = matches[i+1][0]
		}

		label := "Page " + text[m[2]:m[3]]
		body := strings.TrimSpace(text[m[1]:segEnd])
		if body == "" {
			continue
		}

		chunks = append(chunks, domain.Chunk{Label: label, Text: body})
	}

	if len(chunks) == 0 {
		return nil, false
	}

	return chunks, true
}

// windowStrategy slides contiguous fixed-size windows over unmarked
// text, pulling each cut point back to the last sentence boundary found
// within the overlap zone.
type windowStrategy struct {
	size      int
	overlap   int
	threshold int
}

func (windowStrategy) name() string { return "window" }

func (w windowStrategy) apply(text string) ([]domain.Chunk, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}

	if len(trimmed) <= w.threshold {
		return []domain.Chunk{{Label: domain.LabelIntro, Text: trimmed}}, true
	}

	var chunks []domain.Chunk
	part := 1
	start := 0

	for start < len(trimmed) {
		end := start + w.size
		if end >= len(trimmed) {
			end = len(trimmed)
		} else {
			end = w.snapToSentence(trimmed, start, end)
		}

		body := strings.TrimSpace(trimmed[start:end])
		if body != "" {
			chunks = append(chunks, domain.Chunk{
				Label: fmt.Sprintf("Part %d", part),
				Text:  body,
			})
			part++
		}

		start = end
	}

	return chunks, true
}

// snapToSentence searches the overlap zone before end for the last
// period-plus-space or newline and cuts there instead of mid-sentence.
func (w windowStrategy) snapToSentence(text string, start, end int) int {
	zoneStart := end - w.overlap
	if zoneStart <= start {
		zoneStart = start + 1
	}
	zone := text[zoneStart:end]

	cut := -1
	if idx := strings.LastIndex(zone, ". "); idx >= 0 {
		cut = zoneStart + idx + 2
	}
	if idx := strings.LastIndex(zone, "\n"); idx >= 0 && zoneStart+idx+1 > cut {
		cut = zoneStart + idx + 1
	}

	if cut > start {
		return cut
	}
	return end
}
