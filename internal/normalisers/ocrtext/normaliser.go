// Package ocrtext cleans raw transcribed text into a stable, structured
// form. The pipeline is idempotent: cleaning already-clean text is a
// no-op, so stored documents can be re-cleaned safely.
package ocrtext

import (
	"regexp"
	"strings"
)

// artifactReplacements fixes known transcription misreads. These are
// literal substitutions applied greedily in order; when patterns overlap,
// earlier entries win, so the ordering is part of the behaviour.
var artifactReplacements = []struct {
	old string
	new string
}{
	{"websitelapp", "website/app"},
	{"changelmodify", "change/modify"},
	{"whenan", "when an"},
	{"a8", "as"},
	{"S1O", "S10"},
	{"SI:", "S1."},
	{"S2 ", "S2. "},
	{`(e.g"`, "(e.g."},
	{"Depending o ", "Depending on "},
}

var (
	horizontalRuns   = regexp.MustCompile(`[ \t]{2,}`)
	spaceBeforePunct = regexp.MustCompile(`\s+([;:,.])`)
	newlineRuns      = regexp.MustCompile(`\n{3,}`)

	// Markers found mid-line get a blank line injected before them so the
	// chunker can split at line starts. A marker already at line start is
	// left alone, which keeps the pass idempotent.
	inlineSectionMarker = regexp.MustCompile(`([^\n])[ \t]*(S\d+[.:])`)
	inlinePageMarker    = regexp.MustCompile(`([^\n])[ \t]*(--- Page \d+ ---)`)

	decimalRef      = regexp.MustCompile(`\d+\.\d+`)
	colonAtLineEnd  = regexp.MustCompile(`:\s*\n`)
)

// Clean runs the full normalisation pipeline over raw transcribed text.
// Empty input is returned unchanged; there are no error conditions.
func Clean(raw string) string {
	if raw == "" {
		return raw
	}

	text := fixArtifacts(raw)
	text = normaliseWhitespace(text)
	text = isolateMarkers(text)
	text = fixPunctuation(text)

	return strings.TrimSpace(text)
}

// fixArtifacts applies the ordered literal substitution table.
func fixArtifacts(text string) string {
	for _, r := range artifactReplacements {
		text = strings.ReplaceAll(text, r.old, r.new)
	}
	return text
}

// normaliseWhitespace collapses space runs, strips spaces before
// punctuation, and caps newline runs at two.
func normaliseWhitespace(text string) string {
	text = horizontalRuns.ReplaceAllString(text, " ")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = newlineRuns.ReplaceAllString(text, "\n\n")
	return text
}

// isolateMarkers rewrites structural markers onto their own lines:
// a blank line before every mid-line section marker (S<n>. or S<n>:)
// and page marker (--- Page <n> ---), and bare decimal references like
// 43.1 bracketed as [43.1] followed by a line break.
func isolateMarkers(text string) string {
	text = inlineSectionMarker.ReplaceAllString(text, "${1}\n\n${2}")
	text = inlinePageMarker.ReplaceAllString(text, "${1}\n\n${2}")
	text = bracketDecimalRefs(text)
	return text
}

// bracketDecimalRefs wraps bare mid-line <digits>.<digits> references in
// square brackets with a trailing line break. References that are already
// bracketed, or that start a line, are left untouched.
func bracketDecimalRefs(text string) string {
	matches := decimalRef.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 4*len(matches))
	last := 0

	for _, loc := range matches {
		start, end := loc[0], loc[1]
		if start < last {
			continue
		}
		if start == 0 || text[start-1] == '\n' {
			continue
		}
		if text[start-1] == '[' && end < len(text) && text[end] == ']' {
			continue
		}

		// Absorb horizontal whitespace on both sides of the reference.
		ws := start
		for ws > last && (text[ws-1] == ' ' || text[ws-1] == '\t') {
			ws--
		}
		b.WriteString(text[last:ws])
		b.WriteString(" [")
		b.WriteString(text[start:end])
		b.WriteString("]\n")

		last = end
		for last < len(text) && (text[last] == ' ' || text[last] == '\t') {
			last++
		}
	}

	b.WriteString(text[last:])
	return b.String()
}

// fixPunctuation repairs sentence boundaries: a trailing colon directly
// before a newline is almost always a misread full stop.
func fixPunctuation(text string) string {
	return colonAtLineEnd.ReplaceAllString(text, ".\n")
}
