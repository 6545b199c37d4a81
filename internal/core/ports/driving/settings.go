package driving

import "github.com/docentlabs/docent-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// SetLanguage updates the response language.
	SetLanguage(code string) error

	// SetVoice updates the speech-synthesis voice.
	SetVoice(voice string) error

	// SetAPIKey stores the completion provider API key.
	SetAPIKey(key string) error

	// Validate checks that the current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
