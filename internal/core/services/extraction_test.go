package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockStrategy implements driven.ExtractionStrategy for testing.
type mockStrategy struct {
	name   string
	kind   domain.DocumentKind
	result *driven.ExtractionResult
	err    error
	calls  int
}

func (m *mockStrategy) Name() string {
	return m.name
}

func (m *mockStrategy) Kind() domain.DocumentKind {
	return m.kind
}

func (m *mockStrategy) Extract(_ context.Context, _ []byte) (*driven.ExtractionResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockProvider implements driven.StrategyProvider for testing.
type mockProvider struct {
	cascades map[string][]driven.ExtractionStrategy
}

func (m *mockProvider) StrategiesFor(ext string) ([]driven.ExtractionStrategy, bool) {
	strategies, ok := m.cascades[strings.ToLower(ext)]
	return strategies, ok
}

func (m *mockProvider) KindFor(ext string) (domain.DocumentKind, bool) {
	strategies, ok := m.cascades[strings.ToLower(ext)]
	if !ok || len(strategies) == 0 {
		return "", false
	}
	return strategies[0].Kind(), true
}

func (m *mockProvider) SupportedExtensions() []string {
	var out []string
	for ext := range m.cascades {
		out = append(out, ext)
	}
	return out
}

func providerWith(strategies ...driven.ExtractionStrategy) *mockProvider {
	return &mockProvider{cascades: map[string][]driven.ExtractionStrategy{".pdf": strategies}}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// longText comfortably clears the default content threshold.
func longText() string {
	return strings.Repeat("lecture notes on research ethics ", 5)
}

// --- Tests ---

func TestExtractionService_EmptyFile(t *testing.T) {
	strategy := &mockStrategy{name: "primary", kind: domain.KindPDF}
	svc := NewExtractionService(providerWith(strategy), 0)

	path := writeFile(t, t.TempDir(), "empty.pdf", "")

	_, err := svc.Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyFile)

	var extractionErr *domain.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "empty.pdf", extractionErr.File)
	assert.Equal(t, "file is empty", extractionErr.Reason)

	assert.Zero(t, strategy.calls, "strategies must not run for empty files")
}

func TestExtractionService_UnsupportedExtension(t *testing.T) {
	svc := NewExtractionService(providerWith(&mockStrategy{name: "primary"}), 0)

	path := writeFile(t, t.TempDir(), "notes.txt", "some plain text")

	_, err := svc.Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	var extractionErr *domain.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Contains(t, extractionErr.Reason, "unsupported file type")
}

func TestExtractionService_MissingFile(t *testing.T) {
	svc := NewExtractionService(providerWith(&mockStrategy{name: "primary"}), 0)

	_, err := svc.Extract(context.Background(), filepath.Join(t.TempDir(), "ghost.pdf"))
	require.Error(t, err)

	var extractionErr *domain.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "cannot read file", extractionErr.Reason)
}

func TestExtractionService_PrimarySucceeds(t *testing.T) {
	primary := &mockStrategy{
		name: "primary",
		kind: domain.KindPDF,
		result: &driven.ExtractionResult{
			Text:                 longText(),
			PageOrParagraphCount: 4,
			TableCount:           1,
		},
	}
	fallback := &mockStrategy{name: "fallback", kind: domain.KindPDF}
	svc := NewExtractionService(providerWith(primary, fallback), 0)

	content := "fake pdf bytes"
	path := writeFile(t, t.TempDir(), "guide.pdf", content)

	doc, err := svc.Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "guide.pdf", doc.Name)
	assert.Equal(t, path, doc.SourcePath)
	assert.Equal(t, domain.MethodPrimary, doc.Metadata.ExtractionMethod)
	assert.Equal(t, domain.KindPDF, doc.Metadata.Kind)
	assert.Equal(t, int64(len(content)), doc.Metadata.ByteSize)
	assert.Equal(t, 4, doc.Metadata.PageOrParagraphCount)
	assert.Equal(t, 1, doc.Metadata.TableCount)
	assert.Equal(t, len(strings.Fields(doc.Text)), doc.Metadata.WordCount)
	assert.NotZero(t, doc.Metadata.CharacterCount)

	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, fallback.calls, "cascade must stop at the first success")
}

func TestExtractionService_FallbackOnThreshold(t *testing.T) {
	primary := &mockStrategy{
		name:   "primary",
		kind:   domain.KindPDF,
		result: &driven.ExtractionResult{Text: "too short"},
	}
	fallback := &mockStrategy{
		name:   "fallback",
		kind:   domain.KindPDF,
		result: &driven.ExtractionResult{Text: longText()},
	}
	svc := NewExtractionService(providerWith(primary, fallback), 0)

	path := writeFile(t, t.TempDir(), "scan.pdf", "bytes")

	doc, err := svc.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, domain.MethodFallback1, doc.Metadata.ExtractionMethod)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestExtractionService_FallbackOnError(t *testing.T) {
	primary := &mockStrategy{name: "primary", kind: domain.KindPDF, err: errors.New("parse exploded")}
	fallback := &mockStrategy{
		name:   "fallback",
		kind:   domain.KindPDF,
		result: &driven.ExtractionResult{Text: longText()},
	}
	svc := NewExtractionService(providerWith(primary, fallback), 0)

	path := writeFile(t, t.TempDir(), "odd.pdf", "bytes")

	doc, err := svc.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, domain.MethodFallback1, doc.Metadata.ExtractionMethod)
}

func TestExtractionService_AllStrategiesFail(t *testing.T) {
	broken := &mockStrategy{name: "primary", kind: domain.KindPDF, err: errors.New("bad bytes")}
	thin := &mockStrategy{name: "fallback", kind: domain.KindPDF, result: &driven.ExtractionResult{Text: "x"}}
	svc := NewExtractionService(providerWith(broken, thin), 0)

	path := writeFile(t, t.TempDir(), "hopeless.pdf", "bytes")

	_, err := svc.Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBelowThreshold)

	var extractionErr *domain.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "no extraction method produced usable text", extractionErr.Reason)
}

func TestExtractionService_ThresholdBoundary(t *testing.T) {
	dir := t.TempDir()

	atThreshold := &mockStrategy{
		name:   "primary",
		kind:   domain.KindPDF,
		result: &driven.ExtractionResult{Text: strings.Repeat("a", 50)},
	}
	svc := NewExtractionService(providerWith(atThreshold), 0)
	path := writeFile(t, dir, "at.pdf", "bytes")
	_, err := svc.Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrBelowThreshold, "exactly the threshold is rejected")

	overThreshold := &mockStrategy{
		name:   "primary",
		kind:   domain.KindPDF,
		result: &driven.ExtractionResult{Text: strings.Repeat("a", 51)},
	}
	svc = NewExtractionService(providerWith(overThreshold), 0)
	path = writeFile(t, dir, "over.pdf", "bytes")
	doc, err := svc.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 51, doc.Metadata.CharacterCount)
}

func TestExtractionService_CustomThreshold(t *testing.T) {
	strategy := &mockStrategy{
		name:   "primary",
		kind:   domain.KindPDF,
		result: &driven.ExtractionResult{Text: "short but fine"},
	}
	svc := NewExtractionService(providerWith(strategy), 5)

	path := writeFile(t, t.TempDir(), "note.pdf", "bytes")

	doc, err := svc.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "short but fine", doc.Text)
}

func TestExtractionService_ThresholdCountsRunesNotBytes(t *testing.T) {
	// 30 Arabic letters are 60 bytes; with a threshold of 40 the rune
	// count must decide, so this is rejected.
	strategy := &mockStrategy{
		name:   "primary",
		kind:   domain.KindPDF,
		result: &driven.ExtractionResult{Text: strings.Repeat("م", 30)},
	}
	svc := NewExtractionService(providerWith(strategy), 40)

	path := writeFile(t, t.TempDir(), "arabic.pdf", "bytes")

	_, err := svc.Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrBelowThreshold)
}

func TestExtractionService_CleansText(t *testing.T) {
	raw := "“Assessment”  is   by coursework — see the module handbook for all details."
	strategy := &mockStrategy{
		name:   "primary",
		kind:   domain.KindWordProcessor,
		result: &driven.ExtractionResult{Text: raw},
	}
	svc := NewExtractionService(&mockProvider{
		cascades: map[string][]driven.ExtractionStrategy{".docx": {strategy}},
	}, 0)

	path := writeFile(t, t.TempDir(), "handbook.docx", "bytes")

	doc, err := svc.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, `"Assessment" is by coursework - see the module handbook for all details.`, doc.Text)
}

func TestExtractionService_ContextCancelled(t *testing.T) {
	strategy := &mockStrategy{name: "primary", kind: domain.KindPDF, result: &driven.ExtractionResult{Text: longText()}}
	svc := NewExtractionService(providerWith(strategy), 0)

	path := writeFile(t, t.TempDir(), "doc.pdf", "bytes")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Extract(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, strategy.calls)
}
