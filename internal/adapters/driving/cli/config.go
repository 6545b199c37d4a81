package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change settings: documents directory, content budgets,
completion provider, speech voice and response language.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Show the default settings",
	RunE:  runConfigDefaults,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Changes one setting and persists it to the config file.

Keys:
  documents.dir                    documents directory
  documents.extensions             comma-separated, e.g. ".pdf,.docx"
  documents.exclude                comma-separated glob patterns
  documents.preview_length         preview length in characters
  extraction.min_content_threshold minimum usable text length
  budget.fair_share                fair-share content budget
  budget.sequential                sequential content budget
  completion.model                 completion model name
  completion.base_url              completion API base URL
  completion.api_key               completion API key
  completion.max_tokens            completion token cap
  completion.temperature           sampling temperature (0-2)
  speech.model                     speech synthesis model
  speech.voice                     speech synthesis voice
  language                         response language code
  registry.path                    module registry spreadsheet
  watch.enabled                    watch the documents directory`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate settings and ping the completion service",
	RunE:  runConfigVerify,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configDefaultsCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configVerifyCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	printSettings(cmd, *settings)

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("\nWarning: %v\n", err)
		cmd.Println("Run 'docent config set' to fix configuration issues.")
	} else {
		cmd.Println("\nConfiguration is valid.")
	}
	return nil
}

func runConfigDefaults(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Default Settings")
	cmd.Println("================")
	printSettings(cmd, settingsService.GetDefaults())
	return nil
}

func printSettings(cmd *cobra.Command, settings domain.Settings) {
	cmd.Println()
	cmd.Println("[Documents]")
	cmd.Printf("  Directory:      %s\n", settings.Documents.Dir)
	cmd.Printf("  Extensions:     %s\n", strings.Join(settings.Documents.Extensions, ", "))
	cmd.Printf("  Exclude:        %s\n", strings.Join(settings.Documents.ExcludeGlobs, ", "))
	cmd.Printf("  Preview length: %d\n", settings.Documents.PreviewLength)
	cmd.Println()

	cmd.Println("[Extraction]")
	cmd.Printf("  Min content threshold: %d\n", settings.Extraction.MinContentThreshold)
	cmd.Println()

	cmd.Println("[Budget]")
	cmd.Printf("  Fair share: %d\n", settings.Budget.FairShare)
	cmd.Printf("  Sequential: %d\n", settings.Budget.Sequential)
	cmd.Println()

	cmd.Println("[Completion]")
	cmd.Printf("  Model:       %s\n", settings.Completion.Model)
	if settings.Completion.BaseURL != "" {
		cmd.Printf("  Base URL:    %s\n", settings.Completion.BaseURL)
	}
	if settings.Completion.APIKey != "" {
		cmd.Printf("  API Key:     %s\n", maskAPIKey(settings.Completion.APIKey))
	} else {
		cmd.Printf("  API Key:     (not set)\n")
	}
	cmd.Printf("  Max tokens:  %d\n", settings.Completion.MaxTokens)
	cmd.Printf("  Temperature: %.2f\n", settings.Completion.Temperature)
	status := "configured"
	if !settings.Completion.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status:      %s\n", status)
	cmd.Println()

	cmd.Println("[Speech]")
	cmd.Printf("  Model: %s\n", settings.Speech.Model)
	cmd.Printf("  Voice: %s\n", settings.Speech.Voice)
	cmd.Println()

	cmd.Println("[Registry]")
	if settings.RegistryPath != "" {
		cmd.Printf("  Path: %s\n", settings.RegistryPath)
	} else {
		cmd.Printf("  Path: (not set)\n")
	}
	cmd.Println()

	cmd.Printf("Language: %s\n", settings.Language)
	watch := "off"
	if settings.WatchEnabled {
		watch = "on"
	}
	cmd.Printf("Watch:    %s\n", watch)
}

//nolint:gocyclo // One case per settings key; complexity is the key count.
func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]

	// Keys with dedicated setters persist on their own.
	switch key {
	case "language":
		if err := settingsService.SetLanguage(value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		cmd.Printf("Set %s = %s\n", key, strings.ToLower(strings.TrimSpace(value)))
		return nil
	case "speech.voice":
		if err := settingsService.SetVoice(value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		cmd.Printf("Set %s = %s\n", key, strings.TrimSpace(value))
		return nil
	case "completion.api_key":
		if err := settingsService.SetAPIKey(value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		cmd.Printf("Set %s = %s\n", key, maskAPIKey(strings.TrimSpace(value)))
		return nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	switch key {
	case "documents.dir":
		settings.Documents.Dir = value
	case "documents.extensions":
		settings.Documents.Extensions = splitList(value)
	case "documents.exclude":
		settings.Documents.ExcludeGlobs = splitList(value)
	case "documents.preview_length":
		settings.Documents.PreviewLength, err = parseIntValue(key, value)
	case "extraction.min_content_threshold":
		settings.Extraction.MinContentThreshold, err = parseIntValue(key, value)
	case "budget.fair_share":
		settings.Budget.FairShare, err = parseIntValue(key, value)
	case "budget.sequential":
		settings.Budget.Sequential, err = parseIntValue(key, value)
	case "completion.model":
		settings.Completion.Model = value
	case "completion.base_url":
		settings.Completion.BaseURL = value
	case "completion.max_tokens":
		settings.Completion.MaxTokens, err = parseIntValue(key, value)
	case "completion.temperature":
		settings.Completion.Temperature, err = parseFloatValue(key, value)
	case "speech.model":
		settings.Speech.Model = value
	case "registry.path":
		settings.RegistryPath = value
	case "watch.enabled":
		settings.WatchEnabled, err = parseBoolValue(key, value)
	default:
		return fmt.Errorf("unknown setting %q (see 'docent config set --help')", key)
	}
	if err != nil {
		return err
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("Set %s = %s\n", key, value)

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runConfigVerify(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("Checking settings... ")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("settings validation failed: %w", err)
	}
	cmd.Println("OK")

	if completionService == nil {
		cmd.Println("Completion service not configured; skipping ping.")
		return nil
	}

	cmd.Printf("Pinging completion service (%s)... ", completionService.ModelName())
	if err := completionService.Ping(cmd.Context()); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("completion service ping failed: %w", err)
	}
	cmd.Println("OK")
	return nil
}

// Helper functions.

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseIntValue(key, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s wants a number, got %q", key, value)
	}
	return n, nil
}

func parseFloatValue(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%s wants a number, got %q", key, value)
	}
	return f, nil
}

func parseBoolValue(key, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%s wants true or false, got %q", key, value)
	}
	return b, nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo first.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input.
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
