package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question  string   `json:"question" jsonschema:"the question to answer from the loaded documents"`
	Documents []string `json:"documents,omitempty" jsonschema:"restrict the answer to these document names (default all)"`
	Mode      string   `json:"mode,omitempty" jsonschema:"context allocation mode: fair or sequential (default fair)"`
	Language  string   `json:"language,omitempty" jsonschema:"response language code such as en or ar (default from settings)"`
	Dir       string   `json:"dir,omitempty" jsonschema:"documents directory to load (default from settings)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer    string   `json:"answer"`
	Greeting  bool     `json:"greeting,omitempty"`
	Category  string   `json:"category,omitempty"`
	Truncated []string `json:"truncated,omitempty"`
	Skipped   []string `json:"skipped,omitempty"`
}

// LoadInput is the input schema for the load_corpus tool.
type LoadInput struct {
	Dir   string `json:"dir,omitempty" jsonschema:"documents directory to load (default from settings)"`
	Fresh bool   `json:"fresh,omitempty" jsonschema:"bypass the cache and re-extract every file"`
}

// LoadOutput is the output schema for the load_corpus tool.
type LoadOutput struct {
	Location        string        `json:"location"`
	Status          string        `json:"status"`
	Message         string        `json:"message"`
	FilesDiscovered int           `json:"files_discovered"`
	Succeeded       int           `json:"succeeded"`
	Documents       []string      `json:"documents"`
	Failures        []FailureInfo `json:"failures,omitempty"`
	TotalWords      int           `json:"total_words"`
	ReadingMinutes  int           `json:"reading_minutes"`
}

// FailureInfo describes one file that could not be extracted.
type FailureInfo struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// StatusInput is the input schema for the corpus_status tool.
type StatusInput struct {
	Dir string `json:"dir,omitempty" jsonschema:"documents directory to inspect (default from settings)"`
}

// StatusOutput is the output schema for the corpus_status tool.
type StatusOutput struct {
	Location   string         `json:"location"`
	Status     string         `json:"status"`
	Message    string         `json:"message"`
	Documents  []DocumentInfo `json:"documents"`
	TotalWords int            `json:"total_words"`
	TotalSize  string         `json:"total_size"`
}

// DocumentInfo describes one loaded document.
type DocumentInfo struct {
	Name              string `json:"name"`
	Kind              string `json:"kind"`
	Words             int    `json:"words"`
	Characters        int    `json:"characters"`
	PagesOrParagraphs int    `json:"pages_or_paragraphs"`
	Tables            int    `json:"tables,omitempty"`
	Size              string `json:"size"`
	ExtractionMethod  string `json:"extraction_method"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question from the loaded documents",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_corpus",
		Description: "Load the documents directory and report what was found",
	}, s.handleLoadCorpus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "corpus_status",
		Description: "Describe each loaded document and the corpus totals",
	}, s.handleCorpusStatus)
}

// handleAsk handles the ask tool invocation. Each call runs in a fresh
// session; conversational continuity is the calling agent's concern.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	settings := s.currentSettings()

	lang := input.Language
	if lang == "" {
		lang = settings.Language
	}
	dir := input.Dir
	if dir == "" {
		dir = settings.Documents.Dir
	}

	mode, err := parseMode(input.Mode)
	if err != nil {
		return nil, AskOutput{}, err
	}

	corpus, report, err := s.ports.Corpus.Load(ctx, dir)
	if err != nil {
		return nil, AskOutput{}, fmt.Errorf("loading corpus: %w", err)
	}

	session := domain.NewSession(lang, settings.Speech.Voice)
	session.SetCorpus(corpus, report)

	answer, err := s.ports.Assistant.Ask(ctx, session, input.Question, domain.AskOptions{
		DocumentNames: input.Documents,
		Mode:          mode,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, AskOutput{}, fmt.Errorf("unknown document in selection (have: %s): %w",
				strings.Join(corpus.Names(), ", "), err)
		}
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:    answer.Text,
		Greeting:  answer.Greeting,
		Category:  string(answer.Category),
		Truncated: answer.Truncated,
		Skipped:   answer.Skipped,
	}
	if answer.Failed() {
		output.Answer = s.failureMessage(lang, answer.Category)
	}

	return nil, output, nil
}

// handleLoadCorpus handles the load_corpus tool invocation.
func (s *Server) handleLoadCorpus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadInput,
) (*mcp.CallToolResult, LoadOutput, error) {
	dir := input.Dir
	if dir == "" {
		dir = s.currentSettings().Documents.Dir
	}

	load := s.ports.Corpus.Load
	if input.Fresh {
		load = s.ports.Corpus.Reload
	}

	corpus, report, err := load(ctx, dir)
	if err != nil {
		return nil, LoadOutput{}, fmt.Errorf("loading corpus: %w", err)
	}

	output := LoadOutput{
		Location:        report.Location,
		Status:          string(report.Status),
		Message:         report.Message,
		FilesDiscovered: report.FilesDiscovered,
		Succeeded:       report.Succeeded,
		Documents:       corpus.Names(),
		TotalWords:      report.Totals.Words,
		ReadingMinutes:  report.EstimatedReadingMinutes,
	}
	for _, failure := range report.Failed {
		output.Failures = append(output.Failures, FailureInfo{
			File:   failure.File,
			Reason: failure.Reason,
		})
	}

	return nil, output, nil
}

// handleCorpusStatus handles the corpus_status tool invocation.
func (s *Server) handleCorpusStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	dir := input.Dir
	if dir == "" {
		dir = s.currentSettings().Documents.Dir
	}

	corpus, report, err := s.ports.Corpus.Load(ctx, dir)
	if err != nil {
		return nil, StatusOutput{}, fmt.Errorf("loading corpus: %w", err)
	}

	output := StatusOutput{
		Location:   report.Location,
		Status:     string(report.Status),
		Message:    report.Message,
		Documents:  make([]DocumentInfo, 0, corpus.Len()),
		TotalWords: report.Totals.Words,
		TotalSize:  domain.FormatByteSize(report.Totals.Bytes),
	}
	for _, doc := range corpus.Documents() {
		output.Documents = append(output.Documents, DocumentInfo{
			Name:              doc.Name,
			Kind:              doc.Metadata.Kind.Label(),
			Words:             doc.Metadata.WordCount,
			Characters:        doc.Metadata.CharacterCount,
			PagesOrParagraphs: doc.Metadata.PageOrParagraphCount,
			Tables:            doc.Metadata.TableCount,
			Size:              domain.FormatByteSize(doc.Metadata.ByteSize),
			ExtractionMethod:  string(doc.Metadata.ExtractionMethod),
		})
	}

	return nil, output, nil
}

// parseMode maps the mode argument onto an allocation policy.
func parseMode(mode string) (domain.AllocationMode, error) {
	switch mode {
	case "", "fair", string(domain.ModeFairShare):
		return domain.ModeFairShare, nil
	case "sequential", string(domain.ModeSequentialFill):
		return domain.ModeSequentialFill, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want fair or sequential)", mode)
	}
}
