package driven

import (
	"context"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

// ExtractionResult carries the text recovered from a single document
// together with the structural counts the strategy could observe.
type ExtractionResult struct {
	// Text is the raw extracted text, before normalisation.
	Text string

	// PageOrParagraphCount is pages for paginated formats and
	// paragraphs for flowed formats. Zero when the strategy cannot
	// tell.
	PageOrParagraphCount int

	// TableCount is the number of tables encountered, when the
	// strategy understands tables. Zero otherwise.
	TableCount int
}

// ExtractionStrategy is one algorithm for recovering text from the raw
// bytes of a document. Strategies for the same format are tried in
// order until one produces enough content.
//
// Extract returns an error when the bytes cannot be parsed at all. A
// successful parse that recovers little or no text returns a result
// with short Text and a nil error; the caller decides whether the
// output is usable.
type ExtractionStrategy interface {
	// Name identifies the strategy in reports and logs, e.g.
	// "structured-xml" or "content-stream".
	Name() string

	// Kind reports the document kind this strategy understands.
	Kind() domain.DocumentKind

	// Extract recovers text from data. The slice must not be
	// mutated.
	Extract(ctx context.Context, data []byte) (*ExtractionResult, error)
}

// StrategyProvider maps file extensions to their ordered strategy
// cascades.
type StrategyProvider interface {
	// StrategiesFor returns the cascade for a file extension, first
	// choice first. ok is false for unsupported extensions.
	StrategiesFor(ext string) (strategies []ExtractionStrategy, ok bool)

	// KindFor reports the document kind a file extension maps to.
	KindFor(ext string) (domain.DocumentKind, bool)

	// SupportedExtensions lists every registered extension,
	// lower-case with leading dot.
	SupportedExtensions() []string
}
