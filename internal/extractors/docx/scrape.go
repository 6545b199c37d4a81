package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
)

// Ensure Scrape implements the interface.
var _ driven.ExtractionStrategy = (*Scrape)(nil)

// tagRe matches any XML tag.
var tagRe = regexp.MustCompile(`<[^>]*>`)

// Scrape strips markup from word/document.xml wholesale. It is the
// last resort for archives whose XML the decoders reject.
type Scrape struct{}

// NewScrape creates the tag-scrape DOCX strategy.
func NewScrape() *Scrape {
	return &Scrape{}
}

// Name identifies the strategy in reports and logs.
func (s *Scrape) Name() string {
	return "tag-scrape"
}

// Kind reports the document kind this strategy understands.
func (s *Scrape) Kind() domain.DocumentKind {
	return domain.KindWordProcessor
}

// Extract replaces every tag with a space and decodes the basic XML
// entities.
func (s *Scrape) Extract(_ context.Context, data []byte) (*driven.ExtractionResult, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	content, err := readArchiveFile(reader, "word/document.xml")
	if err != nil {
		return nil, err
	}

	text := tagRe.ReplaceAllString(string(content), " ")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&quot;", `"`)
	text = strings.ReplaceAll(text, "&apos;", "'")

	return &driven.ExtractionResult{
		Text: strings.TrimSpace(text),
	}, nil
}
