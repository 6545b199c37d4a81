package docx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

func TestRawText_Identity(t *testing.T) {
	s := NewRawText()
	assert.Equal(t, "raw-text", s.Name())
	assert.Equal(t, domain.KindWordProcessor, s.Kind())
}

func TestRawText_Extract(t *testing.T) {
	data := buildArchive(t, map[string]string{
		"word/document.xml": sampleDocumentXML,
	})

	result, err := NewRawText().Extract(context.Background(), data)
	require.NoError(t, err)

	// Document order, one line per paragraph, table cells included.
	want := "Module Handbook\n" +
		"Welcome to the module. Assessment is by coursework.\n" +
		"Week\nTopic\n1\nIntroduction"
	assert.Equal(t, want, result.Text)
	assert.Equal(t, 6, result.PageOrParagraphCount)
}

func TestRawText_Extract_BreaksAndTabs(t *testing.T) {
	const doc = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>line one</w:t><w:br/><w:t>line two</w:t></w:r></w:p>
    <w:p><w:r><w:t>left</w:t><w:tab/><w:t>right</w:t></w:r></w:p>
  </w:body>
</w:document>`

	data := buildArchive(t, map[string]string{
		"word/document.xml": doc,
	})

	result, err := NewRawText().Extract(context.Background(), data)
	require.NoError(t, err)

	assert.Contains(t, result.Text, "line one\nline two")
	assert.Contains(t, result.Text, "left right")
}

func TestRawText_Extract_NotAnArchive(t *testing.T) {
	_, err := NewRawText().Extract(context.Background(), []byte{0x00, 0x01})
	assert.Error(t, err)
}

func TestRawText_Extract_TruncatedXMLKeepsText(t *testing.T) {
	// The decoder hits the truncation after the first full paragraph;
	// everything read so far is kept.
	const doc = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>survives</w:t></w:r></w:p>
    <w:p><w:r><w:t>lost`

	data := buildArchive(t, map[string]string{
		"word/document.xml": doc,
	})

	result, err := NewRawText().Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "survives", result.Text)
	assert.Equal(t, 1, result.PageOrParagraphCount)
}
