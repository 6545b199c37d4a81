package driven

import (
	"github.com/docentlabs/docent-cli/internal/core/domain"
)

// CorpusComputeFunc builds a corpus from scratch for a location. It is
// called by the cache on a miss.
type CorpusComputeFunc func() (*domain.Corpus, *domain.LoadReport, error)

// CorpusCache memoises corpus load results keyed by location.
//
// Entries never expire on their own; staleness is handled by explicit
// invalidation (a CLI flag, a filesystem watcher, or an operator
// action).
type CorpusCache interface {
	// GetOrCompute returns the cached corpus for location, or calls
	// compute, stores the result, and returns it. A compute error is
	// returned without caching anything.
	GetOrCompute(location string, compute CorpusComputeFunc) (*domain.Corpus, *domain.LoadReport, error)

	// Invalidate drops the entry for location, if any.
	Invalidate(location string)

	// InvalidateAll drops every entry.
	InvalidateAll()
}
