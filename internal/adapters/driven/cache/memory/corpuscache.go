// Package memory provides the in-memory corpus cache.
package memory

import (
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
)

// Ensure CorpusCache implements the interface.
var _ driven.CorpusCache = (*CorpusCache)(nil)

// corpusEntry pairs the two values a load produces.
type corpusEntry struct {
	corpus *domain.Corpus
	report *domain.LoadReport
}

// CorpusCache memoises load results keyed by location. Entries never
// expire on their own; staleness is handled by explicit invalidation
// only. A computed entry is published atomically, after the compute
// finished, so readers never observe a partially built corpus.
type CorpusCache struct {
	mu    sync.Mutex
	store *gocache.Cache
}

// NewCorpusCache creates an empty cache.
func NewCorpusCache() *CorpusCache {
	return &CorpusCache{
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

// GetOrCompute returns the cached entry for location or computes,
// stores, and returns a fresh one. Compute errors are returned without
// caching anything, so the next call retries.
func (c *CorpusCache) GetOrCompute(location string, compute driven.CorpusComputeFunc) (*domain.Corpus, *domain.LoadReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.store.Get(location); ok {
		entry := v.(corpusEntry)
		return entry.corpus, entry.report, nil
	}

	corpus, report, err := compute()
	if err != nil {
		return nil, nil, err
	}

	c.store.Set(location, corpusEntry{corpus: corpus, report: report}, gocache.NoExpiration)
	return corpus, report, nil
}

// Invalidate drops the entry for location, if any.
func (c *CorpusCache) Invalidate(location string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Delete(location)
}

// InvalidateAll drops every entry.
func (c *CorpusCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Flush()
}
