package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
	"github.com/docentlabs/docent-cli/internal/logger"
)

// Ensure Layout implements the interface.
var _ driven.ExtractionStrategy = (*Layout)(nil)

// Layout reads text fragments in layout order. It handles some
// encodings the content-stream parser misses, at the cost of losing
// line structure. The underlying reader panics on malformed input, so
// every call into it is wrapped in a recover.
type Layout struct{}

// NewLayout creates the text-layout PDF strategy.
func NewLayout() *Layout {
	return &Layout{}
}

// Name identifies the strategy in reports and logs.
func (s *Layout) Name() string {
	return "text-layout"
}

// Kind reports the document kind this strategy understands.
func (s *Layout) Kind() domain.DocumentKind {
	return domain.KindPDF
}

// Extract walks the pages, skipping any page the reader chokes on.
func (s *Layout) Extract(_ context.Context, data []byte) (result *driven.ExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("pdf layout reader: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("pdf layout reader: %w", err)
	}

	pages := 0
	func() {
		defer func() { _ = recover() }()
		pages = reader.NumPage()
	}()
	if pages <= 0 {
		return &driven.ExtractionResult{}, nil
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Debug("page %d: %v", i, r)
				}
			}()
			page := reader.Page(i)
			if page.V.IsNull() {
				return
			}
			var b strings.Builder
			for _, item := range page.Content().Text {
				b.WriteString(item.S)
				b.WriteByte(' ')
			}
			pageText := strings.TrimSpace(b.String())
			if pageText == "" {
				return
			}
			fmt.Fprintf(&sb, "\n--- Page %d ---\n", i)
			sb.WriteString(pageText)
		}()
	}

	return &driven.ExtractionResult{
		Text:                 sb.String(),
		PageOrParagraphCount: pages,
	}, nil
}
