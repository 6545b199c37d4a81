package domain

import "fmt"

// AllocationMode names a content-budget allocation policy.
type AllocationMode string

// Allocation modes. They trade off differently: fair share guarantees
// every document representation, sequential fill preserves whole
// documents in priority order.
const (
	ModeFairShare      AllocationMode = "fair-share"
	ModeSequentialFill AllocationMode = "sequential-fill"
)

// Excerpt is one document's budgeted slice with its attribution.
type Excerpt struct {
	// DocName is the source document's name.
	DocName string

	// DocKind is the source document's format.
	DocKind DocumentKind

	// Text is the budgeted slice of the document text, without markers.
	Text string
}

// Marked returns the excerpt wrapped in start/end markers naming its
// source document, so attribution survives truncation and
// concatenation.
func (e Excerpt) Marked() string {
	return fmt.Sprintf("=== DOCUMENT: %s ===\n%s\n=== END OF %s ===", e.DocName, e.Text, e.DocName)
}

// ContextBundle is the bounded, attributed text assembled for one
// question. It is created fresh per question and never shared across
// in-flight queries.
type ContextBundle struct {
	// Mode is the allocation policy that produced the bundle.
	Mode AllocationMode

	// Excerpts holds the per-document slices in selection order.
	Excerpts []Excerpt

	// TotalCharacters is the summed character count of all excerpt
	// text, excluding markers.
	TotalCharacters int

	// Truncated lists documents that did not fit whole.
	// Informational: truncation never blocks a query.
	Truncated []string

	// Skipped lists documents omitted entirely because the budget ran
	// out (sequential fill only).
	Skipped []string
}
