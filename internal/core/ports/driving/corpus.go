package driving

import (
	"context"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

// CorpusService loads document collections from the filesystem.
//
// Load results are cached per location; Reload and Invalidate give
// callers explicit control over staleness.
type CorpusService interface {
	// Load returns the corpus for location, reusing a cached result
	// when one exists. The report describes what was found even when
	// every file failed, so it is non-nil whenever the error is nil.
	Load(ctx context.Context, location string) (*domain.Corpus, *domain.LoadReport, error)

	// Reload drops any cached result for location and loads it
	// fresh.
	Reload(ctx context.Context, location string) (*domain.Corpus, *domain.LoadReport, error)

	// Invalidate drops the cached result for location without
	// loading.
	Invalidate(location string)

	// SupportedExtensions lists the file extensions Load considers,
	// lower-case with leading dot.
	SupportedExtensions() []string
}
