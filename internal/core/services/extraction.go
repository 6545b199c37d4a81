package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
	"github.com/docentlabs/docent-cli/internal/logger"
	"github.com/docentlabs/docent-cli/internal/textnorm"
)

// DefaultMinContentThreshold is the minimum number of characters, after
// cleaning, a strategy must recover for its output to be accepted.
// Calibrated to reject near-empty scans while letting short one-page
// notices through.
const DefaultMinContentThreshold = 50

// DocumentExtractor turns one file into a document.
type DocumentExtractor interface {
	Extract(ctx context.Context, path string) (*domain.Document, error)
}

// Ensure ExtractionService implements the interface.
var _ DocumentExtractor = (*ExtractionService)(nil)

// ExtractionService drives the per-format strategy cascade against one
// file. Strategies run strictly in registry order; the first whose
// cleaned output clears the content threshold wins. A strategy error
// moves on to the next strategy, never out of the service.
type ExtractionService struct {
	provider  driven.StrategyProvider
	threshold int
}

// NewExtractionService creates an extraction service. A threshold of
// zero or less selects DefaultMinContentThreshold.
func NewExtractionService(provider driven.StrategyProvider, threshold int) *ExtractionService {
	if threshold <= 0 {
		threshold = DefaultMinContentThreshold
	}
	return &ExtractionService{
		provider:  provider,
		threshold: threshold,
	}
}

// Extract reads the file at path and runs its format's cascade. On
// failure the returned error is a *domain.ExtractionError carrying the
// file name and a human-readable reason.
func (s *ExtractionService) Extract(ctx context.Context, path string) (*domain.Document, error) {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ExtractionError{File: name, Reason: "cannot read file", Err: err}
	}
	if len(data) == 0 {
		return nil, &domain.ExtractionError{File: name, Reason: "file is empty", Err: domain.ErrEmptyFile}
	}

	ext := filepath.Ext(name)
	strategies, ok := s.provider.StrategiesFor(ext)
	if !ok {
		return nil, &domain.ExtractionError{
			File:   name,
			Reason: fmt.Sprintf("unsupported file type %q", ext),
			Err:    domain.ErrUnsupportedFormat,
		}
	}
	kind, _ := s.provider.KindFor(ext)

	for i, strategy := range strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := strategy.Extract(ctx, data)
		if err != nil {
			logger.Debug("%s: strategy %s failed: %v", name, strategy.Name(), err)
			continue
		}

		text := textnorm.Clean(result.Text)
		length := utf8.RuneCountInString(strings.TrimSpace(text))
		if length <= s.threshold {
			logger.Debug("%s: strategy %s produced %d chars, below threshold", name, strategy.Name(), length)
			continue
		}

		logger.Debug("%s: extracted via %s (%d chars)", name, strategy.Name(), length)
		return &domain.Document{
			Name:       name,
			Text:       text,
			SourcePath: path,
			Metadata: domain.DocumentMetadata{
				ByteSize:             int64(len(data)),
				Kind:                 kind,
				PageOrParagraphCount: result.PageOrParagraphCount,
				TableCount:           result.TableCount,
				WordCount:            len(strings.Fields(text)),
				CharacterCount:       utf8.RuneCountInString(text),
				ExtractionMethod:     domain.MethodForAttempt(i),
			},
		}, nil
	}

	return nil, &domain.ExtractionError{
		File:   name,
		Reason: "no extraction method produced usable text",
		Err:    domain.ErrBelowThreshold,
	}
}
