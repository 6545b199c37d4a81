package services

import (
	"fmt"
	"strings"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
	"github.com/docentlabs/docent-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDocumentsDir    = "documents.dir"
	keyExtensions      = "documents.extensions"
	keyExcludeGlobs    = "documents.exclude"
	keyPreviewLength   = "documents.preview_length"
	keyMinThreshold    = "extraction.min_content_threshold"
	keyFairShareBudget = "budget.fair_share"
	keySequential      = "budget.sequential"
	keyModel           = "completion.model"
	keyBaseURL         = "completion.base_url"
	keyAPIKey          = "completion.api_key"
	keyMaxTokens       = "completion.max_tokens"
	keyTemperature     = "completion.temperature"
	keySpeechModel     = "speech.model"
	keyVoice           = "speech.voice"
	keyLanguage        = "language"
	keyRegistryPath    = "registry.path"
	keyWatchEnabled    = "watch.enabled"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, falling back to defaults
// for unset keys.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Documents: domain.DocumentSettings{
			Dir:           s.getString(keyDocumentsDir, defaults.Documents.Dir),
			Extensions:    s.getStringSlice(keyExtensions, defaults.Documents.Extensions),
			ExcludeGlobs:  s.getStringSlice(keyExcludeGlobs, defaults.Documents.ExcludeGlobs),
			PreviewLength: s.getInt(keyPreviewLength, defaults.Documents.PreviewLength),
		},
		Extraction: domain.ExtractionSettings{
			MinContentThreshold: s.getInt(keyMinThreshold, defaults.Extraction.MinContentThreshold),
		},
		Budget: domain.BudgetSettings{
			FairShare:  s.getInt(keyFairShareBudget, defaults.Budget.FairShare),
			Sequential: s.getInt(keySequential, defaults.Budget.Sequential),
		},
		Completion: domain.CompletionSettings{
			Model:       s.getString(keyModel, defaults.Completion.Model),
			BaseURL:     s.configStore.GetString(keyBaseURL), // No default - empty selects the provider's own
			APIKey:      s.configStore.GetString(keyAPIKey),
			MaxTokens:   s.getInt(keyMaxTokens, defaults.Completion.MaxTokens),
			Temperature: s.getFloat(keyTemperature, defaults.Completion.Temperature),
		},
		Speech: domain.SpeechSettings{
			Model: s.getString(keySpeechModel, defaults.Speech.Model),
			Voice: s.getString(keyVoice, defaults.Speech.Voice),
		},
		Language:     s.getString(keyLanguage, defaults.Language),
		RegistryPath: s.configStore.GetString(keyRegistryPath),
		WatchEnabled: s.getBool(keyWatchEnabled, defaults.WatchEnabled),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	pairs := []struct {
		key   string
		value any
	}{
		{keyDocumentsDir, settings.Documents.Dir},
		{keyExtensions, settings.Documents.Extensions},
		{keyExcludeGlobs, settings.Documents.ExcludeGlobs},
		{keyPreviewLength, settings.Documents.PreviewLength},
		{keyMinThreshold, settings.Extraction.MinContentThreshold},
		{keyFairShareBudget, settings.Budget.FairShare},
		{keySequential, settings.Budget.Sequential},
		{keyModel, settings.Completion.Model},
		{keyBaseURL, settings.Completion.BaseURL},
		{keyMaxTokens, settings.Completion.MaxTokens},
		{keyTemperature, settings.Completion.Temperature},
		{keySpeechModel, settings.Speech.Model},
		{keyVoice, settings.Speech.Voice},
		{keyLanguage, settings.Language},
		{keyRegistryPath, settings.RegistryPath},
		{keyWatchEnabled, settings.WatchEnabled},
	}
	for _, pair := range pairs {
		if err := s.configStore.Set(pair.key, pair.value); err != nil {
			return fmt.Errorf("save %s: %w", pair.key, err)
		}
	}

	// Never clobber a stored key with an empty one.
	if settings.Completion.APIKey != "" {
		if err := s.configStore.Set(keyAPIKey, settings.Completion.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyAPIKey, err)
		}
	}
	return nil
}

// SetLanguage updates the response language.
func (s *SettingsService) SetLanguage(code string) error {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return fmt.Errorf("language code is required: %w", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyLanguage, code)
}

// SetVoice updates the speech-synthesis voice.
func (s *SettingsService) SetVoice(voice string) error {
	voice = strings.TrimSpace(voice)
	if voice == "" {
		return fmt.Errorf("voice name is required: %w", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyVoice, voice)
}

// SetAPIKey stores the completion provider API key.
func (s *SettingsService) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key is required: %w", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyAPIKey, key)
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Documents.Dir == "" {
		return fmt.Errorf("documents directory is not set")
	}
	if len(settings.Documents.Extensions) == 0 {
		return fmt.Errorf("no supported extensions configured")
	}
	for _, ext := range settings.Documents.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	if settings.Extraction.MinContentThreshold <= 0 {
		return fmt.Errorf("minimum content threshold must be positive")
	}
	if settings.Budget.FairShare <= 0 || settings.Budget.Sequential <= 0 {
		return fmt.Errorf("content budgets must be positive")
	}
	if settings.Completion.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive")
	}
	if settings.Completion.Temperature < 0 || settings.Completion.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

// getFloat treats presence, not value, as the signal: zero is a valid
// temperature.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}
