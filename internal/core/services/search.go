package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driven"
	"github.com/docfox-labs/docfox-cli/internal/core/ports/driving"
	"github.com/docfox-labs/docfox-cli/internal/logger"
)

// Ensure Ranker implements the interface.
var _ driving.SearchService = (*Ranker)(nil)

// Scoring weights. Hand-tuned; a section hit must dominate generic
// keyword hits so "what does S8 say" outranks documents that merely
// mention the query words.
const (
	scoreVerbatimQuery = 100
	scoreVerbatimWord  = 40
	scoreFuzzyWord     = 30
	scoreSectionMatch  = 150
)

// Fuzzy-match thresholds. These are exact constants for reproducibility:
// a similarity of exactly 85 does NOT match, 86 does. Tunable parameters,
// not architecture.
const (
	wordMatchThreshold  = 85
	labelMatchThreshold = 85
	snippetScanCutoff   = 70
)

// minKeywordLen filters noise tokens out of queries; words this short
// ("is", "the", "s2x") carry no signal on their own.
const minKeywordLen = 3

// DefaultTopK is the default number of ranked results.
const DefaultTopK = 5

// sectionRefPattern extracts candidate section numbers from a query.
// It is deliberately permissive: transcription and typing noise turn
// "S12" into "sz12" or "s 12", so an optional s/z prefix and stray
// whitespace are tolerated.
var sectionRefPattern = regexp.MustCompile(`[sz]?\s*(\d+)`)

// Ranker scores every stored document against free-text queries and
// assembles grounding context. It is stateless between requests; each
// call re-reads the collection.
type Ranker struct {
	store driven.DocumentStore
}

// NewRanker creates a new ranking service.
func NewRanker(store driven.DocumentStore) *Ranker {
	return &Ranker{store: store}
}

// Search scores all documents against the query and returns the top-K
// with score > 0, sorted by score descending. Ties preserve insertion
// order. An empty query returns no results rather than a "most recent"
// fallback.
func (r *Ranker) Search(ctx context.Context, query string, topK int) ([]domain.ScoredDocument, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.ScoredDocument{}, nil
	}

	if topK <= 0 {
		topK = DefaultTopK
	}

	docs, err := r.store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	queryLower := strings.ToLower(query)
	requested := parseSectionRefs(queryLower)
	keywords := parseKeywords(queryLower)
	logger.Debug("Requested labels: %v, keywords: %v", requested, keywords)

	scored := make([]domain.ScoredDocument, 0, len(docs))
	for i := range docs {
		doc := &docs[i]
		score, matched := r.scoreDocument(doc, queryLower, keywords, requested)
		if score > 0 {
			scored = append(scored, domain.ScoredDocument{
				DocumentID:    doc.ID,
				Filename:      doc.Filename,
				Score:         score,
				MatchedChunks: matched,
			})
		}
	}

	// Stable: equal scores keep collection order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	logger.Info("Search %q: %d results", query, len(scored))
	return scored, nil
}

// scoreDocument computes the additive integer score for one document.
func (r *Ranker) scoreDocument(
	doc *domain.Document, queryLower string, keywords, requested []string,
) (int, []string) {
	textLower := strings.ToLower(doc.CleanedText)
	score := 0

	// Verbatim occurrence of the whole query dominates keyword hits.
	if strings.Contains(textLower, queryLower) {
		score += scoreVerbatimQuery
	}

	for _, word := range keywords {
		if strings.Contains(textLower, word) {
			score += scoreVerbatimWord
		} else if fuzzy.PartialRatio(word, textLower) > wordMatchThreshold {
			// Substring-tolerant: "securit" should still hit "security".
			score += scoreFuzzyWord
		}
	}

	var matched []string
	if len(requested) > 0 {
		labels := doc.ChunkLabels()
		if len(labels) > 0 {
			for _, req := range requested {
				best, sim := bestLabelMatch(req, labels)
				if sim > labelMatchThreshold {
					score += scoreSectionMatch
					matched = append(matched, best)
				}
			}
		}
	}

	return score, matched
}

// parseSectionRefs extracts requested section labels (S<n>) from a
// lowercased query, tolerating OCR/typo noise in the reference itself.
func parseSectionRefs(queryLower string) []string {
	matches := sectionRefPattern.FindAllStringSubmatch(queryLower, -1)
	if len(matches) == 0 {
		return nil
	}
	labels := make([]string, 0, len(matches))
	for _, m := range matches {
		labels = append(labels, "S"+m[1])
	}
	return labels
}

// dedupeLabels removes repeated requests, preserving first-seen order.
func dedupeLabels(labels []string) []string {
	if len(labels) < 2 {
		return labels
	}
	seen := make(map[string]bool, len(labels))
	out := labels[:0:0]
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// parseKeywords splits a lowercased query into tokens worth matching.
func parseKeywords(queryLower string) []string {
	var words []string
	for _, w := range strings.Fields(queryLower) {
		if len(w) > minKeywordLen {
			words = append(words, w)
		}
	}
	return words
}

// bestLabelMatch returns the chunk label most similar to the requested
// label and its similarity score (0-100).
func bestLabelMatch(requested string, labels []string) (string, int) {
	best := ""
	bestScore := -1
	for _, label := range labels {
		if s := fuzzy.Ratio(requested, label); s > bestScore {
			best = label
			bestScore = s
		}
	}
	return best, bestScore
}
