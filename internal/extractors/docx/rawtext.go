package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
)

// Ensure RawText implements the interface.
var _ driven.ExtractionStrategy = (*RawText)(nil)

// RawText streams the document body and keeps only the text runs, one
// line per paragraph, in document order. Styles and table structure
// are ignored, which makes it tolerant of documents the structured
// walk cannot model.
type RawText struct{}

// NewRawText creates the raw-text DOCX strategy.
func NewRawText() *RawText {
	return &RawText{}
}

// Name identifies the strategy in reports and logs.
func (s *RawText) Name() string {
	return "raw-text"
}

// Kind reports the document kind this strategy understands.
func (s *RawText) Kind() domain.DocumentKind {
	return domain.KindWordProcessor
}

// Extract decodes word/document.xml token by token. A decoder error
// mid-stream ends the walk but keeps the text accumulated so far.
func (s *RawText) Extract(_ context.Context, data []byte) (*driven.ExtractionResult, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	content, err := readArchiveFile(reader, "word/document.xml")
	if err != nil {
		return nil, err
	}

	decoder := xml.NewDecoder(bytes.NewReader(content))

	var out strings.Builder
	var para strings.Builder
	inText := false
	paragraphs := 0

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				para.WriteByte(' ')
			case "br":
				para.WriteByte('\n')
			}

		case xml.CharData:
			if inText {
				para.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				text := strings.TrimSpace(para.String())
				para.Reset()
				if text == "" {
					continue
				}
				if out.Len() > 0 {
					out.WriteByte('\n')
				}
				out.WriteString(text)
				paragraphs++
			}
		}
	}

	return &driven.ExtractionResult{
		Text:                 out.String(),
		PageOrParagraphCount: paragraphs,
	}, nil
}
