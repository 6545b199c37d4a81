package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server wraps the MCP server with docent services.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	impl := &mcp.Implementation{
		Name:    "docent",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server on stdio transport. It blocks until the
// context is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// currentSettings returns the stored settings, or the defaults when no
// settings service is wired.
func (s *Server) currentSettings() domain.Settings {
	if s.ports.Settings == nil {
		return domain.DefaultSettings()
	}
	settings, err := s.ports.Settings.Get()
	if err != nil || settings == nil {
		return domain.DefaultSettings()
	}
	return *settings
}

// failureMessage renders a categorized failure in the given language.
func (s *Server) failureMessage(lang string, category domain.AnswerCategory) string {
	if s.ports.Catalog != nil {
		return s.ports.Catalog.Message(lang, string(category))
	}
	return string(category)
}
