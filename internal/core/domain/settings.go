package domain

// DocumentSettings configure corpus discovery and display.
type DocumentSettings struct {
	// Dir is the documents directory the corpus is loaded from.
	Dir string

	// Extensions are the supported file extensions, with leading dots.
	Extensions []string

	// ExcludeGlobs are glob patterns matched against base file names;
	// matches are skipped during discovery.
	ExcludeGlobs []string

	// PreviewLength caps document content previews, in characters.
	PreviewLength int
}

// ExtractionSettings configure the extraction cascade.
type ExtractionSettings struct {
	// MinContentThreshold is the minimum usable text length, in
	// characters, for an extraction attempt to count as a success.
	MinContentThreshold int
}

// BudgetSettings configure context allocation, in characters.
type BudgetSettings struct {
	FairShare  int
	Sequential int
}

// CompletionSettings configure the remote completion provider.
type CompletionSettings struct {
	Model       string
	BaseURL     string
	APIKey      string
	MaxTokens   int
	Temperature float64
}

// IsConfigured returns true when the provider can be called.
func (s CompletionSettings) IsConfigured() bool {
	return s.APIKey != ""
}

// SpeechSettings configure speech synthesis.
type SpeechSettings struct {
	Model string
	Voice string
}

// Settings are the assembled application settings.
type Settings struct {
	Documents  DocumentSettings
	Extraction ExtractionSettings
	Budget     BudgetSettings
	Completion CompletionSettings
	Speech     SpeechSettings

	// Language is the response language code.
	Language string

	// RegistryPath locates the student/module registry spreadsheet.
	// Empty disables registry-gated selection.
	RegistryPath string

	// WatchEnabled turns on the documents-directory watcher.
	WatchEnabled bool
}

// DefaultSettings returns the default application settings.
func DefaultSettings() Settings {
	return Settings{
		Documents: DocumentSettings{
			Dir:           "data",
			Extensions:    []string{".pdf", ".docx"},
			ExcludeGlobs:  []string{"~$*"},
			PreviewLength: 800,
		},
		Extraction: ExtractionSettings{
			MinContentThreshold: 50,
		},
		Budget: BudgetSettings{
			FairShare:  15000,
			Sequential: 24000,
		},
		Completion: CompletionSettings{
			Model:       "gpt-4o-mini",
			MaxTokens:   1500,
			Temperature: 0.3,
		},
		Speech: SpeechSettings{
			Model: "tts-1",
			Voice: "alloy",
		},
		Language: "en",
	}
}
