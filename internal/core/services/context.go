package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
	"github.com/docfox-labs/docfox-cli/internal/logger"
)

// DefaultContextChars caps assembled context so it fits a small local
// model's window with room for the question and answer.
const DefaultContextChars = 2500

// contextTopK is how many ranked documents feed the context bundle.
const contextTopK = 3

const (
	contextSeparator  = "\n\n---\n\n"
	truncationMarker  = "... [Context truncated for length]"
	bundleNotFoundMsg = "NOT FOUND in any document."
)

// BuildContext assembles grounding fragments for a query from the top
// ranked documents. Section-reference queries produce exactly one
// fragment per distinct requested label, searched across all top
// documents; labels found nowhere become explicit not-found fragments
// so the model can say so instead of guessing. Keyword queries produce
// one snippet fragment per ranked document.
func (r *Ranker) BuildContext(ctx context.Context, query string, maxChars int) (*domain.ContextBundle, error) {
	fragments, _, truncated, err := r.assembleContext(ctx, query, maxChars)
	if err != nil {
		return nil, err
	}
	return &domain.ContextBundle{Fragments: fragments, Truncated: truncated}, nil
}

// ContextForQuery returns the rendered context block for a query, ready
// to paste into a prompt. Empty when nothing relevant is stored.
func (r *Ranker) ContextForQuery(ctx context.Context, query string, maxChars int) (string, error) {
	_, rendered, _, err := r.assembleContext(ctx, query, maxChars)
	return rendered, err
}

func (r *Ranker) assembleContext(ctx context.Context, query string, maxChars int) ([]domain.ContextFragment, string, bool, error) {
	if maxChars <= 0 {
		maxChars = DefaultContextChars
	}

	results, err := r.Search(ctx, query, contextTopK)
	if err != nil {
		return nil, "", false, err
	}
	if len(results) == 0 {
		return nil, "", false, nil
	}

	docs := make([]*domain.Document, 0, len(results))
	for _, res := range results {
		doc, err := r.store.GetDocument(ctx, res.DocumentID)
		if err != nil {
			return nil, "", false, fmt.Errorf("load ranked document %s: %w", res.DocumentID, err)
		}
		docs = append(docs, doc)
	}

	queryLower := strings.ToLower(strings.TrimSpace(query))
	requested := dedupeLabels(parseSectionRefs(queryLower))

	var fragments []domain.ContextFragment
	if len(requested) > 0 {
		fragments = sectionFragments(docs, requested)
	} else {
		fragments = snippetFragments(docs, query)
	}

	rendered, truncated := renderFragments(fragments, maxChars)
	logger.Debug("Context for %q: %d fragments, %d chars, truncated=%v",
		query, len(fragments), len(rendered), truncated)
	return fragments, rendered, truncated, nil
}

// sectionFragments resolves each requested label against the ranked
// documents in rank order, taking the first document whose chunk labels
// fuzzily match.
func sectionFragments(docs []*domain.Document, requested []string) []domain.ContextFragment {
	fragments := make([]domain.ContextFragment, 0, len(requested))
	for _, req := range requested {
		found := false
		for _, doc := range docs {
			labels := doc.ChunkLabels()
			if len(labels) == 0 {
				continue
			}
			best, sim := bestLabelMatch(req, labels)
			if sim <= labelMatchThreshold {
				continue
			}
			chunk, ok := doc.ChunkByLabel(best)
			if !ok {
				continue
			}
			fragments = append(fragments, domain.ContextFragment{
				SourceFilename: doc.Filename,
				Label:          best,
				Text:           chunk.Text,
			})
			found = true
			break
		}
		if !found {
			fragments = append(fragments, domain.ContextFragment{
				Label: req,
				Text:  bundleNotFoundMsg,
			})
		}
	}
	return fragments
}

// snippetFragments extracts one snippet per ranked document.
func snippetFragments(docs []*domain.Document, query string) []domain.ContextFragment {
	fragments := make([]domain.ContextFragment, 0, len(docs))
	for _, doc := range docs {
		fragments = append(fragments, domain.ContextFragment{
			SourceFilename: doc.Filename,
			Text:           ExtractSnippet(doc, query),
		})
	}
	return fragments
}

// renderFragments turns fragments into the prompt-ready block and
// enforces the character budget. The rendered result never exceeds
// maxChars plus the truncation marker.
func renderFragments(fragments []domain.ContextFragment, maxChars int) (string, bool) {
	if len(fragments) == 0 {
		return "", false
	}

	parts := make([]string, 0, len(fragments))
	sectionStyle := fragments[0].Label != ""
	for _, f := range fragments {
		switch {
		case f.Label != "" && f.SourceFilename != "":
			parts = append(parts, fmt.Sprintf("[%s] (Source: %s): %s", f.Label, f.SourceFilename, f.Text))
		case f.Label != "":
			parts = append(parts, fmt.Sprintf("[%s]: %s", f.Label, f.Text))
		default:
			parts = append(parts, fmt.Sprintf("[From: %s]\n%s", f.SourceFilename, f.Text))
		}
	}

	sep := contextSeparator
	if sectionStyle {
		sep = "\n"
	}
	rendered := strings.Join(parts, sep)

	if len(rendered) > maxChars {
		return rendered[:maxChars] + truncationMarker, true
	}
	return rendered, false
}
