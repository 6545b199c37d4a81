package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
	"github.com/docentlabs/docent-cli/internal/core/ports/driving"
	"github.com/docentlabs/docent-cli/internal/logger"
)

// Ensure LoaderService implements the interface.
var _ driving.CorpusService = (*LoaderService)(nil)

// Default discovery settings. Office lock files start with "~$" and
// are excluded out of the box.
var (
	DefaultExtensions   = []string{".pdf", ".docx"}
	DefaultExcludeGlobs = []string{"~$*"}
)

// LoaderService discovers documents in a directory, extracts each one,
// and accumulates a corpus plus a load report. Results are memoised
// per location in the injected cache; staleness is handled purely by
// explicit invalidation.
type LoaderService struct {
	extractor  DocumentExtractor
	cache      driven.CorpusCache
	extensions []string
	excludes   []string
}

// NewLoaderService creates a loader. Nil extensions or excludes select
// the defaults.
func NewLoaderService(extractor DocumentExtractor, cache driven.CorpusCache, extensions, excludes []string) *LoaderService {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if excludes == nil {
		excludes = DefaultExcludeGlobs
	}
	lowered := make([]string, len(extensions))
	for i, ext := range extensions {
		lowered[i] = strings.ToLower(ext)
	}
	return &LoaderService{
		extractor:  extractor,
		cache:      cache,
		extensions: lowered,
		excludes:   excludes,
	}
}

// Load returns the corpus for location, reusing a cached result when
// one exists.
func (s *LoaderService) Load(ctx context.Context, location string) (*domain.Corpus, *domain.LoadReport, error) {
	return s.cache.GetOrCompute(location, func() (*domain.Corpus, *domain.LoadReport, error) {
		return s.load(ctx, location)
	})
}

// Reload drops any cached result for location and loads it fresh.
func (s *LoaderService) Reload(ctx context.Context, location string) (*domain.Corpus, *domain.LoadReport, error) {
	s.cache.Invalidate(location)
	return s.Load(ctx, location)
}

// Invalidate drops the cached result for location without loading.
func (s *LoaderService) Invalidate(location string) {
	s.cache.Invalidate(location)
}

// SupportedExtensions lists the extensions Load considers.
func (s *LoaderService) SupportedExtensions() []string {
	out := make([]string, len(s.extensions))
	copy(out, s.extensions)
	return out
}

// load performs one full discovery and extraction pass.
func (s *LoaderService) load(ctx context.Context, location string) (*domain.Corpus, *domain.LoadReport, error) {
	logger.Section("Corpus Load")
	logger.Debug("Location: %q", location)

	entries, err := os.ReadDir(location)
	if err != nil {
		return nil, nil, fmt.Errorf("read corpus location: %w", err)
	}

	var candidates []string
	var others []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !s.supported(name) {
			others = append(others, name)
			continue
		}
		if s.excluded(name) {
			logger.Debug("Excluding %s", name)
			continue
		}
		candidates = append(candidates, name)
	}
	logger.Debug("Discovered %d candidate files", len(candidates))

	corpus := domain.NewCorpus()

	if len(candidates) == 0 {
		report := &domain.LoadReport{
			Location: location,
			Status:   domain.LoadStatusEmpty,
			Message:  emptyMessage(location, others),
		}
		return corpus, report, nil
	}

	var failures []domain.FileFailure
	var totals domain.LoadTotals

	for _, name := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		doc, err := s.extractor.Extract(ctx, filepath.Join(location, name))
		if err != nil {
			logger.Warn("Failed to load %s: %v", name, err)
			failures = append(failures, domain.FileFailure{File: name, Reason: failureReason(err)})
			continue
		}

		corpus.Add(*doc)
		totals.Words += doc.Metadata.WordCount
		totals.Pages += doc.Metadata.PageOrParagraphCount
		totals.Bytes += doc.Metadata.ByteSize
		logger.Info("Loaded %s (%s, %d words)", name, domain.FormatByteSize(doc.Metadata.ByteSize), doc.Metadata.WordCount)
	}

	report := &domain.LoadReport{
		Location:                location,
		FilesDiscovered:         len(candidates),
		Succeeded:               corpus.Len(),
		Failed:                  failures,
		Totals:                  totals,
		EstimatedReadingMinutes: domain.EstimateReadingMinutes(totals.Words),
	}

	switch {
	case corpus.Len() == 0:
		report.Status = domain.LoadStatusFailed
		report.Message = fmt.Sprintf("all %d documents failed to load", len(candidates))
	case len(failures) > 0:
		report.Status = domain.LoadStatusPartial
		report.Message = fmt.Sprintf("loaded %d of %d documents (%d failed)",
			corpus.Len(), len(candidates), len(failures))
	default:
		report.Status = domain.LoadStatusFull
		report.Message = fmt.Sprintf("loaded %d documents (%d words, about %d min of reading)",
			corpus.Len(), totals.Words, report.EstimatedReadingMinutes)
	}
	logger.Info("%s", report.Message)

	return corpus, report, nil
}

func (s *LoaderService) supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range s.extensions {
		if ext == supported {
			return true
		}
	}
	return false
}

func (s *LoaderService) excluded(name string) bool {
	for _, pattern := range s.excludes {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// failureReason prefers the structured extraction reason over the raw
// error chain.
func failureReason(err error) string {
	var extractionErr *domain.ExtractionError
	if errors.As(err, &extractionErr) {
		return extractionErr.Reason
	}
	return err.Error()
}

// emptyMessage describes what the directory actually holds, so an
// operator pointing at the wrong folder can see why nothing loaded.
func emptyMessage(location string, others []string) string {
	if len(others) == 0 {
		return fmt.Sprintf("no supported documents found in %s; the directory is empty", location)
	}
	return fmt.Sprintf("no supported documents found in %s; directory contains: %s",
		location, strings.Join(others, ", "))
}
