package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docentlabs/docent-cli/internal/core/domain"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "docent", rootCmd.Use)
}

func TestRootCmd_Short(t *testing.T) {
	assert.Equal(t, "Ask questions about your local documents", rootCmd.Short)
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag, "verbose flag should exist")
	assert.Equal(t, "v", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "ask")
	assert.Contains(t, commandNames, "load")
	assert.Contains(t, commandNames, "corpus")
	assert.Contains(t, commandNames, "speak")
	assert.Contains(t, commandNames, "config")
	assert.Contains(t, commandNames, "registry")
	assert.Contains(t, commandNames, "mcp")
	assert.Contains(t, commandNames, "version")
}

func TestSetVersion(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	// Empty values keep the previous version.
	SetVersion("")
	assert.Equal(t, "1.2.3", version)
}

func TestCurrentSettings_DefaultsWithoutService(t *testing.T) {
	oldService := settingsService
	settingsService = nil
	defer func() { settingsService = oldService }()

	settings := currentSettings()

	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestMessageFor_WithoutCatalog(t *testing.T) {
	oldCatalog := catalog
	catalog = nil
	defer func() { catalog = oldCatalog }()

	msg := messageFor("en", domain.CategoryRateLimited)

	assert.Equal(t, string(domain.CategoryRateLimited), msg)
}

func TestMessageFor_WithCatalog(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	msg := messageFor("en", domain.CategoryNotConfigured)

	assert.Equal(t, "OpenAI API key not configured.", msg)
}
