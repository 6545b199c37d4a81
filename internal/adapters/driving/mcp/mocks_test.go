package mcp

import (
	"context"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	corpus *domain.Corpus
	report *domain.LoadReport
	err    error

	loads   int
	reloads int
	lastDir string
}

func (m *mockCorpusService) Load(_ context.Context, location string) (*domain.Corpus, *domain.LoadReport, error) {
	m.loads++
	m.lastDir = location
	return m.corpus, m.report, m.err
}

func (m *mockCorpusService) Reload(_ context.Context, location string) (*domain.Corpus, *domain.LoadReport, error) {
	m.reloads++
	m.lastDir = location
	return m.corpus, m.report, m.err
}

func (m *mockCorpusService) Invalidate(_ string) {}

func (m *mockCorpusService) SupportedExtensions() []string {
	return []string{".pdf", ".docx"}
}

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	answer *domain.Answer
	audio  []byte
	err    error

	lastOpts     domain.AskOptions
	lastLanguage string
}

func (m *mockAssistantService) Ask(
	_ context.Context,
	session *domain.Session,
	_ string,
	opts domain.AskOptions,
) (*domain.Answer, error) {
	m.lastOpts = opts
	if session != nil {
		m.lastLanguage = session.Language
	}
	return m.answer, m.err
}

func (m *mockAssistantService) Speak(_ context.Context, _ *domain.Session, _ string) ([]byte, error) {
	return m.audio, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) { return m.settings, m.err }
func (m *mockSettingsService) Save(_ *domain.Settings) error  { return m.err }
func (m *mockSettingsService) SetLanguage(_ string) error     { return m.err }
func (m *mockSettingsService) SetVoice(_ string) error        { return m.err }
func (m *mockSettingsService) SetAPIKey(_ string) error       { return m.err }
func (m *mockSettingsService) Validate() error                { return m.err }
func (m *mockSettingsService) GetDefaults() domain.Settings   { return domain.DefaultSettings() }

// testCorpus builds a corpus from the given documents.
func testCorpus(docs ...domain.Document) *domain.Corpus {
	corpus := domain.NewCorpus()
	for _, doc := range docs {
		corpus.Add(doc)
	}
	return corpus
}
