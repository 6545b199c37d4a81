// Package extractors wires the per-format strategy cascades into a
// single registry keyed by file extension.
package extractors

import (
	"strings"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
	"github.com/docentlabs/docent-cli/internal/extractors/docx"
	"github.com/docentlabs/docent-cli/internal/extractors/pdf"
)

// Ensure Registry implements the interface.
var _ driven.StrategyProvider = (*Registry)(nil)

// Registry holds the ordered strategy cascade for each supported file
// extension. Cascade order is fixed at construction; the orchestrator
// tries strategies strictly in that order.
type Registry struct {
	order      []string
	strategies map[string][]driven.ExtractionStrategy
}

// NewRegistry creates a registry with the built-in cascades.
func NewRegistry() *Registry {
	r := &Registry{
		strategies: make(map[string][]driven.ExtractionStrategy),
	}
	r.register(".pdf", pdf.NewContentStream(), pdf.NewLayout())
	r.register(".docx", docx.NewStructured(), docx.NewRawText(), docx.NewScrape())
	return r
}

func (r *Registry) register(ext string, strategies ...driven.ExtractionStrategy) {
	r.order = append(r.order, ext)
	r.strategies[ext] = strategies
}

// StrategiesFor returns the cascade for ext, first choice first.
func (r *Registry) StrategiesFor(ext string) ([]driven.ExtractionStrategy, bool) {
	strategies, ok := r.strategies[normaliseExt(ext)]
	return strategies, ok
}

// KindFor reports the document kind ext maps to.
func (r *Registry) KindFor(ext string) (domain.DocumentKind, bool) {
	strategies, ok := r.strategies[normaliseExt(ext)]
	if !ok || len(strategies) == 0 {
		return "", false
	}
	return strategies[0].Kind(), true
}

// SupportedExtensions lists every registered extension in registration
// order, lower-case with leading dot.
func (r *Registry) SupportedExtensions() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// normaliseExt lower-cases an extension and ensures the leading dot,
// so ".PDF", ".pdf" and "pdf" all address the same cascade.
func normaliseExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
