package docx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

func TestScrape_Identity(t *testing.T) {
	s := NewScrape()
	assert.Equal(t, "tag-scrape", s.Name())
	assert.Equal(t, domain.KindWordProcessor, s.Kind())
}

func TestScrape_Extract(t *testing.T) {
	data := buildArchive(t, map[string]string{
		"word/document.xml": sampleDocumentXML,
	})

	result, err := NewScrape().Extract(context.Background(), data)
	require.NoError(t, err)

	assert.Contains(t, result.Text, "Module Handbook")
	assert.Contains(t, result.Text, "Welcome to the module.")
	assert.Contains(t, result.Text, "Introduction")
	assert.NotContains(t, result.Text, "<")
	assert.NotContains(t, result.Text, ">")
}

func TestScrape_Extract_DecodesEntities(t *testing.T) {
	const doc = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body><w:p><w:r><w:t>Terms &amp; Conditions &quot;apply&quot;</w:t></w:r></w:p></w:body>
</w:document>`

	data := buildArchive(t, map[string]string{
		"word/document.xml": doc,
	})

	result, err := NewScrape().Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Contains(t, result.Text, `Terms & Conditions "apply"`)
}

func TestScrape_Extract_NotAnArchive(t *testing.T) {
	_, err := NewScrape().Extract(context.Background(), []byte("nope"))
	assert.Error(t, err)
}

func TestScrape_Extract_MissingDocumentXML(t *testing.T) {
	data := buildArchive(t, map[string]string{
		"docProps/core.xml": "<core/>",
	})

	_, err := NewScrape().Extract(context.Background(), data)
	assert.Error(t, err)
}
