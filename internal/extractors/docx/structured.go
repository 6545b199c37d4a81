// Package docx extracts text from Office Open XML word-processing
// documents.
//
// Three strategies are provided, in decreasing order of fidelity:
// Structured walks the document body with styles, tables, headers and
// footers; RawText decodes body paragraphs only; Scrape strips markup
// from the raw XML as a last resort.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
	"github.com/docentlabs/docent-cli/internal/logger"
)

// Ensure Structured implements the interface.
var _ driven.ExtractionStrategy = (*Structured)(nil)

// Structured extracts body paragraphs with heading styles, tables with
// row structure, and page headers and footers.
type Structured struct{}

// NewStructured creates the structured DOCX strategy.
func NewStructured() *Structured {
	return &Structured{}
}

// Name identifies the strategy in reports and logs.
func (s *Structured) Name() string {
	return "structured-xml"
}

// Kind reports the document kind this strategy understands.
func (s *Structured) Kind() domain.DocumentKind {
	return domain.KindWordProcessor
}

// Extract converts the archive into text. Headings become "## " lines,
// tables are rendered row by row between table markers, and header and
// footer paragraphs are appended in bracketed form.
func (s *Structured) Extract(_ context.Context, data []byte) (*driven.ExtractionResult, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	content, err := readArchiveFile(reader, "word/document.xml")
	if err != nil {
		return nil, err
	}

	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse document xml: %w", err)
	}

	var parts []string
	paragraphs := 0

	for _, para := range doc.Body.Paragraphs {
		text := para.text()
		if text == "" {
			continue
		}
		if strings.HasPrefix(para.style(), "Heading") {
			parts = append(parts, fmt.Sprintf("\n## %s\n", text))
		} else {
			parts = append(parts, text)
		}
		paragraphs++
	}

	for i, table := range doc.Body.Tables {
		parts = append(parts, fmt.Sprintf("\n--- Table %d ---", i+1))
		for _, row := range table.Rows {
			var cells []string
			for _, cell := range row.Cells {
				var cellParts []string
				for _, para := range cell.Paragraphs {
					if text := para.text(); text != "" {
						cellParts = append(cellParts, text)
					}
				}
				if len(cellParts) > 0 {
					cells = append(cells, strings.Join(cellParts, " "))
				}
			}
			if len(cells) > 0 {
				parts = append(parts, strings.Join(cells, " | "))
			}
		}
		parts = append(parts, "--- End Table ---\n")
	}

	parts = append(parts, marginalParts(reader, "word/header", "Header")...)
	parts = append(parts, marginalParts(reader, "word/footer", "Footer")...)

	return &driven.ExtractionResult{
		Text:                 strings.Join(parts, "\n"),
		PageOrParagraphCount: paragraphs,
		TableCount:           len(doc.Body.Tables),
	}, nil
}

// documentXML mirrors the parts of word/document.xml this strategy
// reads. Table-cell paragraphs live under tables, so the body-level
// paragraph list holds flowing text only.
type documentXML struct {
	Body struct {
		Paragraphs []paragraphXML `xml:"p"`
		Tables     []tableXML     `xml:"tbl"`
	} `xml:"body"`
}

type paragraphXML struct {
	Properties struct {
		Style struct {
			Val string `xml:"val,attr"`
		} `xml:"pStyle"`
	} `xml:"pPr"`
	Runs []runXML `xml:"r"`
}

type runXML struct {
	Text []textElementXML `xml:"t"`
}

type textElementXML struct {
	Content string `xml:",chardata"`
}

type tableXML struct {
	Rows []struct {
		Cells []struct {
			Paragraphs []paragraphXML `xml:"p"`
		} `xml:"tc"`
	} `xml:"tr"`
}

// marginalXML covers both w:hdr and w:ftr roots.
type marginalXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

func (p paragraphXML) style() string {
	return p.Properties.Style.Val
}

func (p paragraphXML) text() string {
	var sb strings.Builder
	for _, run := range p.Runs {
		for _, t := range run.Text {
			sb.WriteString(t.Content)
		}
	}
	return strings.TrimSpace(sb.String())
}

// marginalParts renders header or footer paragraphs as bracketed
// lines, e.g. "[Header: Course handbook]". Unreadable parts are
// skipped.
func marginalParts(reader *zip.Reader, prefix, label string) []string {
	var names []string
	for _, file := range reader.File {
		if strings.HasPrefix(file.Name, prefix) && strings.HasSuffix(file.Name, ".xml") {
			names = append(names, file.Name)
		}
	}
	sort.Strings(names)

	var parts []string
	for _, name := range names {
		content, err := readArchiveFile(reader, name)
		if err != nil {
			logger.Debug("skipping %s: %v", name, err)
			continue
		}
		var marginal marginalXML
		if err := xml.Unmarshal(content, &marginal); err != nil {
			logger.Debug("skipping %s: %v", name, err)
			continue
		}
		for _, para := range marginal.Paragraphs {
			if text := para.text(); text != "" {
				parts = append(parts, fmt.Sprintf("[%s: %s]", label, text))
			}
		}
	}
	return parts
}

// readArchiveFile reads one named file out of the archive.
func readArchiveFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}
