package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for docent resources.
	uriScheme = "docent://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the document manifest.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Manifest of all loaded documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for document text.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{name}",
		Name:        "document-text",
		Description: "Extracted text of a specific document",
		MIMEType:    "text/plain",
	}, s.handleDocumentTextResource)
}

// handleDocumentsResource returns the manifest of loaded documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	corpus, _, err := s.ports.Corpus.Load(ctx, s.currentSettings().Documents.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}

	// Build simplified document list.
	type docInfo struct {
		Name  string `json:"name"`
		Kind  string `json:"kind"`
		Words int    `json:"words"`
		URI   string `json:"uri"`
	}

	infos := make([]docInfo, 0, corpus.Len())
	for _, doc := range corpus.Documents() {
		infos = append(infos, docInfo{
			Name:  doc.Name,
			Kind:  doc.Metadata.Kind.Label(),
			Words: doc.Metadata.WordCount,
			URI:   uriScheme + "documents/" + url.PathEscape(doc.Name),
		})
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentTextResource returns the extracted text of one document.
func (s *Server) handleDocumentTextResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractDocumentName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	corpus, _, err := s.ports.Corpus.Load(ctx, s.currentSettings().Documents.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}

	doc, ok := corpus.Get(name)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     doc.Text,
		}},
	}, nil
}

// extractDocumentName extracts the document name from a URI like
// docent://documents/{name}. Percent-encoded names are decoded so file
// names with spaces resolve.
func extractDocumentName(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return name
}
