package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

func TestRegistry_StrategiesFor(t *testing.T) {
	r := NewRegistry()

	pdfStrategies, ok := r.StrategiesFor(".pdf")
	require.True(t, ok)
	require.Len(t, pdfStrategies, 2)
	assert.Equal(t, "content-stream", pdfStrategies[0].Name())
	assert.Equal(t, "text-layout", pdfStrategies[1].Name())

	docxStrategies, ok := r.StrategiesFor(".docx")
	require.True(t, ok)
	require.Len(t, docxStrategies, 3)
	assert.Equal(t, "structured-xml", docxStrategies[0].Name())
	assert.Equal(t, "raw-text", docxStrategies[1].Name())
	assert.Equal(t, "tag-scrape", docxStrategies[2].Name())
}

func TestRegistry_StrategiesFor_Normalisation(t *testing.T) {
	r := NewRegistry()

	for _, ext := range []string{".PDF", "pdf", " .pdf "} {
		_, ok := r.StrategiesFor(ext)
		assert.True(t, ok, "extension %q should resolve", ext)
	}
}

func TestRegistry_StrategiesFor_Unsupported(t *testing.T) {
	r := NewRegistry()

	for _, ext := range []string{".txt", ".xlsx", "", ".doc"} {
		_, ok := r.StrategiesFor(ext)
		assert.False(t, ok, "extension %q should not resolve", ext)
	}
}

func TestRegistry_KindFor(t *testing.T) {
	r := NewRegistry()

	kind, ok := r.KindFor(".pdf")
	require.True(t, ok)
	assert.Equal(t, domain.KindPDF, kind)

	kind, ok = r.KindFor("docx")
	require.True(t, ok)
	assert.Equal(t, domain.KindWordProcessor, kind)

	_, ok = r.KindFor(".md")
	assert.False(t, ok)
}

func TestRegistry_SupportedExtensions(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{".pdf", ".docx"}, r.SupportedExtensions())

	// Callers must not be able to mutate the registry's view.
	exts := r.SupportedExtensions()
	exts[0] = ".corrupted"
	assert.Equal(t, []string{".pdf", ".docx"}, r.SupportedExtensions())
}
