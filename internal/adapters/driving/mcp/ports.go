package mcp

import (
	"github.com/docentlabs/docent-cli/internal/core/ports/driving"
	"github.com/docentlabs/docent-cli/internal/localization"
)

// Ports contains the driving ports (services) the MCP server exposes.
type Ports struct {
	// Corpus is the corpus loading service (required).
	Corpus driving.CorpusService

	// Assistant is the question-answering service (required).
	Assistant driving.AssistantService

	// Settings supplies the documents directory, language and voice
	// defaults (optional).
	Settings driving.SettingsService

	// Catalog renders categorized failures as localized messages
	// (optional).
	Catalog *localization.Catalog
}

// Validate checks that required ports are set.
func (p *Ports) Validate() error {
	if p.Corpus == nil {
		return ErrMissingCorpusService
	}
	if p.Assistant == nil {
		return ErrMissingAssistantService
	}
	return nil
}
