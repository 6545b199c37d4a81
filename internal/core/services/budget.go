package services

import (
	"unicode/utf8"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

// Default character budgets for the two allocation modes. The
// sequential budget is higher because it feeds a single combined view
// rather than N independent slices.
const (
	DefaultFairShareBudget  = 15000
	DefaultSequentialBudget = 24000
)

// AllocateFairShare splits budget equally across the documents: each
// excerpt gets at most budget/len(docs) characters. No document is
// skipped, so a large document can never starve the others of
// representation.
func AllocateFairShare(docs []domain.Document, budget int) *domain.ContextBundle {
	bundle := &domain.ContextBundle{Mode: domain.ModeFairShare}
	if len(docs) == 0 || budget <= 0 {
		return bundle
	}

	perDoc := budget / len(docs)
	for _, doc := range docs {
		text, truncated := truncateRunes(doc.Text, perDoc)
		bundle.Excerpts = append(bundle.Excerpts, domain.Excerpt{
			DocName: doc.Name,
			DocKind: doc.Metadata.Kind,
			Text:    text,
		})
		bundle.TotalCharacters += utf8.RuneCountInString(text)
		if truncated {
			bundle.Truncated = append(bundle.Truncated, doc.Name)
		}
	}
	return bundle
}

// AllocateSequential fills budget in document order: whole documents
// are appended until the next one would overflow, that one is
// truncated to the remainder, and everything after it is skipped and
// reported in Skipped.
func AllocateSequential(docs []domain.Document, budget int) *domain.ContextBundle {
	bundle := &domain.ContextBundle{Mode: domain.ModeSequentialFill}
	if budget <= 0 {
		for _, doc := range docs {
			bundle.Skipped = append(bundle.Skipped, doc.Name)
		}
		return bundle
	}

	remaining := budget
	for _, doc := range docs {
		if remaining <= 0 {
			bundle.Skipped = append(bundle.Skipped, doc.Name)
			continue
		}
		text, truncated := truncateRunes(doc.Text, remaining)
		bundle.Excerpts = append(bundle.Excerpts, domain.Excerpt{
			DocName: doc.Name,
			DocKind: doc.Metadata.Kind,
			Text:    text,
		})
		used := utf8.RuneCountInString(text)
		bundle.TotalCharacters += used
		remaining -= used
		if truncated {
			bundle.Truncated = append(bundle.Truncated, doc.Name)
		}
	}
	return bundle
}

// truncateRunes cuts s to at most n runes, reporting whether anything
// was cut. Rune-based so multi-byte text never splits mid-character.
func truncateRunes(s string, n int) (string, bool) {
	if n <= 0 {
		return "", s != ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:n]), true
}
