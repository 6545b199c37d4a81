// Command docent is a conversational assistant for local PDF and Word
// documents. It extracts text locally and answers questions through a
// remote completion service.
//
// Usage:
//
//	docent load                        # scan the documents folder
//	docent ask "what does week 1 cover?"
//	docent config set completion.api_key sk-...
//	docent mcp serve                   # expose the assistant over MCP
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	cachemem "github.com/docentlabs/docent-cli/internal/adapters/driven/cache/memory"
	"github.com/docentlabs/docent-cli/internal/adapters/driven/completion/openai"
	configfile "github.com/docentlabs/docent-cli/internal/adapters/driven/config/file"
	"github.com/docentlabs/docent-cli/internal/adapters/driven/registry/xlsx"
	"github.com/docentlabs/docent-cli/internal/adapters/driving/cli"
	"github.com/docentlabs/docent-cli/internal/adapters/driving/watch"
	"github.com/docentlabs/docent-cli/internal/core/ports/driven"
	"github.com/docentlabs/docent-cli/internal/core/services"
	"github.com/docentlabs/docent-cli/internal/extractors"
	"github.com/docentlabs/docent-cli/internal/localization"
	"github.com/docentlabs/docent-cli/internal/logger"
)

// version is stamped by the release build via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx))
}

func run(ctx context.Context) int {
	confDir := configDir()

	configStore, err := configfile.NewConfigStore(confDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docent: opening config store: %v\n", err)
		return 1
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "docent: reading settings: %v\n", err)
		return 1
	}

	// Language catalog: built-in packs, then user packs layered over them.
	catalog, err := localization.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "docent: loading language catalog: %v\n", err)
		return 1
	}
	if err := catalog.MergeDir(filepath.Join(confDir, "packs")); err != nil {
		fmt.Fprintf(os.Stderr, "docent: ignoring user language packs: %v\n", err)
	}

	// Corpus pipeline: extractor strategies behind a cache-backed loader.
	strategies := extractors.NewRegistry()
	extraction := services.NewExtractionService(strategies, settings.Extraction.MinContentThreshold)
	corpusCache := cachemem.NewCorpusCache()
	loader := services.NewLoaderService(extraction, corpusCache,
		settings.Documents.Extensions, settings.Documents.ExcludeGlobs)

	// Completion gateway. The API key can come from settings or the
	// environment; without one the assistant still answers greetings
	// and reports everything else as not configured.
	var completion driven.CompletionService
	apiKey := settings.Completion.APIKey
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		apiKey = key
	}
	if apiKey != "" {
		client, err := openai.NewCompletionService(openai.Config{
			APIKey:      apiKey,
			BaseURL:     settings.Completion.BaseURL,
			Model:       settings.Completion.Model,
			SpeechModel: settings.Speech.Model,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "docent: completion service: %v\n", err)
			return 1
		}
		defer client.Close()
		completion = client
	}

	prompt := services.NewPromptService(catalog.Profiles())
	temperature := settings.Completion.Temperature
	assistant := services.NewAssistantService(completion, prompt, services.AssistantOptions{
		FairShareBudget:  settings.Budget.FairShare,
		SequentialBudget: settings.Budget.Sequential,
		MaxTokens:        settings.Completion.MaxTokens,
		Temperature:      &temperature,
	})

	// Student registry is optional; a broken spreadsheet should not
	// take down unrelated commands.
	var moduleRegistry driven.ModuleRegistry
	if settings.RegistryPath != "" {
		registry, err := xlsx.NewRegistry(settings.RegistryPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "docent: module registry unavailable: %v\n", err)
		} else {
			moduleRegistry = registry
		}
	}

	if settings.WatchEnabled {
		watcher, err := watch.New(watch.Config{
			Dir:          settings.Documents.Dir,
			Extensions:   settings.Documents.Extensions,
			ExcludeGlobs: settings.Documents.ExcludeGlobs,
		}, loader)
		if err != nil {
			fmt.Fprintf(os.Stderr, "docent: documents watcher disabled: %v\n", err)
		} else {
			defer watcher.Close()
			go func() {
				if err := watcher.Run(ctx); err != nil {
					logger.Warn("Documents watcher stopped: %v", err)
				}
			}()
		}
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Corpus:     loader,
		Assistant:  assistant,
		Settings:   settingsService,
		Completion: completion,
		Registry:   moduleRegistry,
		Catalog:    catalog,
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		// Cobra already reported the error on stderr.
		return 1
	}
	return 0
}

// configDir returns the directory holding config.toml and user language
// packs. DOCENT_CONFIG_DIR overrides the default ~/.docent.
func configDir() string {
	if dir := os.Getenv("DOCENT_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docent"
	}
	return filepath.Join(home, ".docent")
}
