package cli

import (
	"context"

	"github.com/docentlabs/docent-cli/internal/adapters/driven/config/memory"
	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
	"github.com/docentlabs/docent-cli/internal/core/services"
	"github.com/docentlabs/docent-cli/internal/localization"
)

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	corpus *domain.Corpus
	report *domain.LoadReport
	err    error

	loads       int
	reloads     int
	lastDir     string
	invalidated []string
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

func (m *mockCorpusService) Invalidate(location string) {
	m.invalidated = append(m.invalidated, location)
}

func (m *mockCorpusService) SupportedExtensions() []string {
	return []string{".pdf", ".docx"}
}

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	answer   *domain.Answer
	audio    []byte
	askErr   error
	speakErr error

	lastQuestion string
	lastOpts     domain.AskOptions
	lastSession  *domain.Session
}

func (m *mockAssistantService) Ask(
	_ context.Context,
	session *domain.Session,
	question string,
	opts domain.AskOptions,
) (*domain.Answer, error) {
	m.lastQuestion = question
	m.lastOpts = opts
	m.lastSession = session
	return m.answer, m.askErr
}

func (m *mockAssistantService) Speak(_ context.Context, session *domain.Session, _ string) ([]byte, error) {
	m.lastSession = session
	return m.audio, m.speakErr
}

// mockCompletionService is a mock implementation of driven.CompletionService.
type mockCompletionService struct {
	pingErr error
}

func (m *mockCompletionService) Complete(_ context.Context, _ driven.CompletionRequest) (string, error) {
	return "mock completion", nil
}

func (m *mockCompletionService) SynthesizeSpeech(_ context.Context, _, _ string) ([]byte, error) {
	return []byte("mp3"), nil
}

func (m *mockCompletionService) ModelName() string { return "gpt-4o-mini" }

func (m *mockCompletionService) Ping(_ context.Context) error { return m.pingErr }

func (m *mockCompletionService) Close() error { return nil }

// mockModuleRegistry is a mock implementation of driven.ModuleRegistry.
type mockModuleRegistry struct {
	assignment *domain.ModuleAssignment
	entries    []domain.RegistryEntry
	resolveErr error
	entriesErr error

	lastStudentID  string
	lastAccessCode string
}

func (m *mockModuleRegistry) Resolve(_ context.Context, studentID, accessCode string) (*domain.ModuleAssignment, error) {
	m.lastStudentID = studentID
	m.lastAccessCode = accessCode
	return m.assignment, m.resolveErr
}

func (m *mockModuleRegistry) Entries(_ context.Context) ([]domain.RegistryEntry, error) {
	return m.entries, m.entriesErr
}

// testCorpus builds a corpus from the given documents.
func testCorpus(docs ...domain.Document) *domain.Corpus {
	corpus := domain.NewCorpus()
	for _, doc := range docs {
		corpus.Add(doc)
	}
	return corpus
}

// loadedTestCorpus is the canned two-document corpus installed by
// setupTestServices.
func loadedTestCorpus() (*domain.Corpus, *domain.LoadReport) {
	corpus := testCorpus(
		domain.Document{
			Name: "handbook.pdf",
			Text: "Always wear goggles in the lab. Gloves are mandatory when handling acids.",
			Metadata: domain.DocumentMetadata{
				ByteSize:             2048,
				Kind:                 domain.KindPDF,
				PageOrParagraphCount: 3,
				WordCount:            300,
				CharacterCount:       1800,
				ExtractionMethod:     domain.MethodPrimary,
			},
		},
		domain.Document{
			Name: "syllabus.docx",
			Text: "Week one covers laboratory safety and equipment.",
			Metadata: domain.DocumentMetadata{
				ByteSize:             1024,
				Kind:                 domain.KindWordProcessor,
				PageOrParagraphCount: 12,
				TableCount:           1,
				WordCount:            150,
				CharacterCount:       900,
				ExtractionMethod:     domain.MethodPrimary,
			},
		},
	)
	report := &domain.LoadReport{
		Location:                "data",
		FilesDiscovered:         2,
		Succeeded:               2,
		Totals:                  domain.LoadTotals{Words: 450, Pages: 15, Bytes: 3072},
		EstimatedReadingMinutes: 2,
		Status:                  domain.LoadStatusFull,
		Message:                 "loaded 2 documents (450 words, about 2 min of reading)",
	}
	return corpus, report
}

// setupTestServices installs mock services with canned data and returns
// a cleanup that restores the previous wiring.
func setupTestServices() func() {
	oldCorpus := corpusService
	oldAssistant := assistantService
	oldSettings := settingsService
	oldCompletion := completionService
	oldRegistry := moduleRegistry
	oldCatalog := catalog

	corpus, report := loadedTestCorpus()
	corpusService = &mockCorpusService{corpus: corpus, report: report}
	assistantService = &mockAssistantService{
		answer: &domain.Answer{Text: "Wear goggles and gloves."},
		audio:  []byte("mp3-bytes"),
	}
	settingsService = services.NewSettingsService(memory.NewConfigStore())
	completionService = &mockCompletionService{}
	moduleRegistry = &mockModuleRegistry{
		assignment: &domain.ModuleAssignment{
			StudentID: "S-100",
			Programme: "Chemistry",
			Module:    "CHEM101",
			Files:     []string{"handbook.pdf"},
		},
		entries: []domain.RegistryEntry{
			{StudentID: "S-100", AccessCode: "1234", Programme: "Chemistry", Module: "CHEM101", FileName: "handbook.pdf"},
		},
	}
	catalog, _ = localization.Load()

	return func() {
		corpusService = oldCorpus
		assistantService = oldAssistant
		settingsService = oldSettings
		completionService = oldCompletion
		moduleRegistry = oldRegistry
		catalog = oldCatalog
	}
}
