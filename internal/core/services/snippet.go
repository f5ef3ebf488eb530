package services

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
	"github.com/docfox-labs/docfox-cli/internal/logger"
)

// Snippet window sizing. The window around a located match grows with
// match quality: a verbatim hit earns the full 1500 characters, a
// barely-accepted fuzzy hit stays near the 600-character base.
const (
	snippetBaseSize  = 600
	snippetSizeBonus = 900

	// Fallback excerpt length when nothing in the document matches.
	snippetFallbackSize = 600

	// How far beyond the computed window edges to look for a paragraph
	// break to snap to.
	snippetSnapRange = 200

	// Extra words added to the scan window so a query phrase can match
	// even when the document inserts a word or two.
	snippetWindowSlack = 2
)

const sectionNotFoundLine = "NOT FOUND in this document."

const ellipsis = "…"

// ExtractSnippet returns the span of one document most relevant to the
// query.
//
// Section-reference queries ("what does S2 say") get a per-label report:
// one entry per distinct requested label, either the chunk body or an
// explicit not-found line, in request order. Keyword queries get a
// quality-sized window around the best match, verbatim first, then a
// fuzzy word-window scan. When nothing matches, the document's opening
// text is returned so the caller always has something to show.
func ExtractSnippet(doc *domain.Document, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return fallbackExcerpt(doc.CleanedText)
	}
	queryLower := strings.ToLower(query)

	if requested := dedupeLabels(parseSectionRefs(queryLower)); len(requested) > 0 {
		return sectionReport(doc, requested)
	}

	text := doc.CleanedText

	// Verbatim beats fuzzy: an exact occurrence is always the best anchor.
	if idx := strings.Index(strings.ToLower(text), queryLower); idx >= 0 {
		return windowAround(text, idx, len(query), 1.0)
	}

	if idx, matchLen, sim := scanFuzzy(text, queryLower); sim > snippetScanCutoff {
		logger.Debug("Fuzzy snippet hit at offset %d (similarity %d)", idx, sim)
		return windowAround(text, idx, matchLen, float64(sim)/100)
	}

	return fallbackExcerpt(text)
}

// sectionReport renders one line per requested label, keeping the
// request order and flagging misses explicitly.
func sectionReport(doc *domain.Document, requested []string) string {
	lines := make([]string, 0, len(requested))
	for _, req := range requested {
		if chunk, ok := doc.ChunkByLabel(req); ok {
			lines = append(lines, "["+req+"]: "+chunk.Text)
		} else {
			lines = append(lines, "["+req+"]: "+sectionNotFoundLine)
		}
	}
	return strings.Join(lines, "\n\n")
}

// scanFuzzy slides a word window of query length plus slack across the
// text, one word at a time, and returns the best window's character
// offset, length and similarity.
func scanFuzzy(text, queryLower string) (int, int, int) {
	words, offsets := fieldsWithOffsets(text)
	windowWords := len(strings.Fields(queryLower)) + snippetWindowSlack
	if len(words) < windowWords {
		return 0, 0, 0
	}

	bestIdx, bestLen, bestSim := 0, 0, 0
	for i := 0; i+windowWords <= len(words); i++ {
		start := offsets[i]
		last := i + windowWords - 1
		end := offsets[last] + len(words[last])

		sim := fuzzy.Ratio(queryLower, strings.ToLower(text[start:end]))
		if sim > bestSim {
			bestIdx, bestLen, bestSim = start, end-start, sim
		}
	}

	return bestIdx, bestLen, bestSim
}

// fieldsWithOffsets splits on whitespace like strings.Fields but also
// reports each word's byte offset in the original text.
func fieldsWithOffsets(text string) ([]string, []int) {
	var words []string
	var offsets []int

	inWord := false
	start := 0
	for i := 0; i < len(text); i++ {
		isSpace := text[i] == ' ' || text[i] == '\t' || text[i] == '\n' || text[i] == '\r'
		if !inWord && !isSpace {
			inWord = true
			start = i
		} else if inWord && isSpace {
			inWord = false
			words = append(words, text[start:i])
			offsets = append(offsets, start)
		}
	}
	if inWord {
		words = append(words, text[start:])
		offsets = append(offsets, start)
	}

	return words, offsets
}

// windowAround cuts a quality-sized window centred on the match and
// snaps its edges outward to nearby paragraph breaks so snippets start
// and end on natural boundaries. Edges that cut into surrounding text
// are marked with an ellipsis.
func windowAround(text string, matchIdx, matchLen int, quality float64) string {
	size := snippetBaseSize + int(quality*snippetSizeBonus)

	center := matchIdx + matchLen/2
	from := center - size/2
	to := center + size/2
	if from < 0 {
		from = 0
	}
	if to > len(text) {
		to = len(text)
	}

	// Snap outward, never inward, so the match stays inside the window.
	if from > 0 {
		zoneStart := from - snippetSnapRange
		if zoneStart < 0 {
			zoneStart = 0
		}
		if br := strings.LastIndex(text[zoneStart:from], "\n\n"); br >= 0 {
			from = zoneStart + br + 2
		}
	}
	if to < len(text) {
		zoneEnd := to + snippetSnapRange
		if zoneEnd > len(text) {
			zoneEnd = len(text)
		}
		if br := strings.Index(text[to:zoneEnd], "\n\n"); br >= 0 {
			to += br
		}
	}

	snippet := strings.TrimSpace(text[from:to])
	if from > 0 {
		snippet = ellipsis + snippet
	}
	if to < len(text) {
		snippet += ellipsis
	}
	return snippet
}

// fallbackExcerpt returns the document's opening text when no span can
// be tied to the query.
func fallbackExcerpt(text string) string {
	text = strings.TrimSpace(text)
	if len(text) <= snippetFallbackSize {
		return text
	}
	return text[:snippetFallbackSize] + ellipsis
}
