// Package cli implements the docent command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/docentlabs/docent-cli/internal/core/domain"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
	"github.com/docentlabs/docent-cli/internal/core/ports/driving"
	"github.com/docentlabs/docent-cli/internal/localization"
	"github.com/docentlabs/docent-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Services the commands run against. Wired by SetServices before
// Execute; commands that need an unwired service fail with a clear
// error instead of panicking.
var (
	corpusService     driving.CorpusService
	assistantService  driving.AssistantService
	settingsService   driving.SettingsService
	completionService driven.CompletionService
	moduleRegistry    driven.ModuleRegistry
	catalog           *localization.Catalog
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docent",
	Short: "Ask questions about your local documents",
	Long: `Docent answers questions about the PDF and Word documents in a local
folder. Documents are extracted locally; answers come from a remote
completion service and can optionally be read aloud via speech
synthesis.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
}

// Services bundles the implementations the commands depend on.
type Services struct {
	Corpus     driving.CorpusService
	Assistant  driving.AssistantService
	Settings   driving.SettingsService
	Completion driven.CompletionService
	Registry   driven.ModuleRegistry
	Catalog    *localization.Catalog
}

// SetServices wires the given implementations into the command tree.
func SetServices(s Services) {
	corpusService = s.Corpus
	assistantService = s.Assistant
	settingsService = s.Settings
	completionService = s.Completion
	moduleRegistry = s.Registry
	catalog = s.Catalog
}

// SetVersion records the build version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command under ctx, so long operations
// stop on Ctrl-C.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// currentSettings returns the stored settings, or the defaults when no
// settings service is wired.
func currentSettings() domain.Settings {
	if settingsService == nil {
		return domain.DefaultSettings()
	}
	settings, err := settingsService.Get()
	if err != nil || settings == nil {
		logger.Warn("Falling back to default settings: %v", err)
		return domain.DefaultSettings()
	}
	return *settings
}

// messageFor renders an answer category as user-facing text in the
// given language.
func messageFor(lang string, category domain.AnswerCategory) string {
	if catalog != nil {
		return catalog.Message(lang, string(category))
	}
	return string(category)
}
