// Package pdf extracts text from PDF documents.
//
// Two strategies are provided: ContentStream parses page content
// streams directly for text-show operators, and Layout falls back to
// a text-position reader for files the stream parser cannot handle.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
	"github.com/docentlabs/docent-cli/internal/logger"
)

// Ensure ContentStream implements the interface.
var _ driven.ExtractionStrategy = (*ContentStream)(nil)

// ContentStream extracts text per page from PDF content streams. Each
// non-empty page is introduced by a "--- Page N ---" marker so page
// attribution survives downstream truncation.
type ContentStream struct{}

// NewContentStream creates the content-stream PDF strategy.
func NewContentStream() *ContentStream {
	return &ContentStream{}
}

// Name identifies the strategy in reports and logs.
func (s *ContentStream) Name() string {
	return "content-stream"
}

// Kind reports the document kind this strategy understands.
func (s *ContentStream) Kind() domain.DocumentKind {
	return domain.KindPDF
}

// Extract parses the document once, then walks every page. Pages that
// fail to yield text are skipped, not fatal.
func (s *ContentStream) Extract(_ context.Context, data []byte) (*driven.ExtractionResult, error) {
	conf := model.NewDefaultConfiguration()
	pctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	var sb strings.Builder
	for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
		pageText := extractPageText(pctx, pageNr)
		if pageText == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n--- Page %d ---\n", pageNr)
		sb.WriteString(pageText)
	}

	return &driven.ExtractionResult{
		Text:                 sb.String(),
		PageOrParagraphCount: pctx.PageCount,
	}, nil
}

// extractPageText pulls one page's content stream and parses it for
// text. Any failure skips the page.
func extractPageText(pctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pctx, pageNr)
	if err != nil {
		logger.Debug("page %d: %v", pageNr, err)
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		if err != nil {
			logger.Debug("page %d: %v", pageNr, err)
		}
		return ""
	}
	return parseContentStream(data)
}

// parseContentStream scans content-stream lines for the text-show
// operators (Tj, TJ, ') and the positioning operators that imply
// breaks (Td, TD, T*).
func parseContentStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		// (text) Tj and [(text) -100 (more)] TJ show text.
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range literalStrings(line) {
				sb.WriteString(m)
			}

		// (text) ' moves to the next line and shows text.
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range literalStrings(line) {
				sb.WriteByte('\n')
				sb.WriteString(m)
			}

		// Td/TD reposition the text cursor.
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}

		// T* moves to the start of the next line.
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return collapsePrintable(sb.String())
}

// literalStrings decodes every parenthesised string literal on a line.
func literalStrings(line []byte) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			if depth > 0 {
				depth--
				if depth == 0 {
					if text := decodeLiteral(line[start:i]); text != "" {
						out = append(out, text)
					}
				}
			}
		}
	}
	return out
}

// decodeLiteral handles the PDF string escape sequences, including
// octal escapes like \040.
func decodeLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for j := 0; j < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; j++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// collapsePrintable keeps printable runes and collapses whitespace
// runs, dropping the control bytes content streams tend to leak.
func collapsePrintable(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
