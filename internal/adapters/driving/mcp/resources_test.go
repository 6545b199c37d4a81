package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

func TestExtractDocumentName(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "docent://documents/handbook.pdf",
			expected: "handbook.pdf",
		},
		{
			name:     "percent-encoded name",
			uri:      "docent://documents/lab%20notes.docx",
			expected: "lab notes.docx",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/handbook.pdf",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractDocumentName(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the manifest", func(t *testing.T) {
		corpus := testCorpus(
			domain.Document{
				Name:     "handbook.pdf",
				Text:     "text",
				Metadata: domain.DocumentMetadata{Kind: domain.KindPDF, WordCount: 300},
			},
			domain.Document{
				Name:     "lab notes.docx",
				Text:     "text",
				Metadata: domain.DocumentMetadata{Kind: domain.KindWordProcessor, WordCount: 120},
			},
		)

		server, err := NewServer(&Ports{
			Corpus:    &mockCorpusService{corpus: corpus, report: &domain.LoadReport{}},
			Assistant: &mockAssistantService{},
		})
		require.NoError(t, err)

		req := makeReadResourceRequest("docent://documents")
		result, err := server.handleDocumentsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "handbook.pdf")
		assert.Contains(t, result.Contents[0].Text, "PDF")
		assert.Contains(t, result.Contents[0].Text, "docent://documents/lab%20notes.docx")
	})

	t.Run("empty corpus returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Corpus:    &mockCorpusService{corpus: testCorpus(), report: &domain.LoadReport{}},
			Assistant: &mockAssistantService{},
		})
		require.NoError(t, err)

		req := makeReadResourceRequest("docent://documents")
		result, err := server.handleDocumentsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on load failure", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Corpus:    &mockCorpusService{err: errors.New("disk gone")},
			Assistant: &mockAssistantService{},
		})
		require.NoError(t, err)

		req := makeReadResourceRequest("docent://documents")
		_, err = server.handleDocumentsResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading corpus")
	})
}

func TestServer_handleDocumentTextResource(t *testing.T) {
	ctx := context.Background()

	newServer := func(t *testing.T, corpus *domain.Corpus) *Server {
		t.Helper()
		server, err := NewServer(&Ports{
			Corpus:    &mockCorpusService{corpus: corpus, report: &domain.LoadReport{}},
			Assistant: &mockAssistantService{},
		})
		require.NoError(t, err)
		return server
	}

	t.Run("returns the document text", func(t *testing.T) {
		corpus := testCorpus(domain.Document{Name: "handbook.pdf", Text: "Always wear goggles."})
		server := newServer(t, corpus)

		req := makeReadResourceRequest("docent://documents/handbook.pdf")
		result, err := server.handleDocumentTextResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "Always wear goggles.", result.Contents[0].Text)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
	})

	t.Run("resolves percent-encoded names", func(t *testing.T) {
		corpus := testCorpus(domain.Document{Name: "lab notes.docx", Text: "Week one."})
		server := newServer(t, corpus)

		req := makeReadResourceRequest("docent://documents/lab%20notes.docx")
		result, err := server.handleDocumentTextResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "Week one.", result.Contents[0].Text)
	})

	t.Run("unknown document returns not found", func(t *testing.T) {
		server := newServer(t, testCorpus())

		req := makeReadResourceRequest("docent://documents/ghost.pdf")
		_, err := server.handleDocumentTextResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server := newServer(t, testCorpus())

		req := makeReadResourceRequest("docent://invalid/uri")
		_, err := server.handleDocumentTextResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("returns error on load failure", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Corpus:    &mockCorpusService{err: errors.New("disk gone")},
			Assistant: &mockAssistantService{},
		})
		require.NoError(t, err)

		req := makeReadResourceRequest("docent://documents/handbook.pdf")
		_, err = server.handleDocumentTextResource(ctx, req)

		require.Error(t, err)
	})
}
