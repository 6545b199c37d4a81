// Package mcp provides the Model Context Protocol (MCP) server,
// exposing the document assistant to agent hosts over stdio.
package mcp

import "errors"

// Errors returned when required services are missing from Ports.
var (
	ErrMissingCorpusService    = errors.New("mcp: corpus service is required")
	ErrMissingAssistantService = errors.New("mcp: assistant service is required")
)
