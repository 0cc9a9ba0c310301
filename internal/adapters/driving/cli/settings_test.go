package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// Test helper functions in settings.go

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Very long key",
			input:    "sk-proj-1234567890abcdefghijklmnop",
			expected: "sk-p...mnop",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Settings command tests

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	commands := settingsCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "wizard")
	assert.Contains(t, commandNames, "mode")
	assert.Contains(t, commandNames, "embedding")
	assert.Contains(t, commandNames, "index")
}

func TestSettingsShowCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Current Settings")
	assert.Contains(t, buf.String(), "Semantic (vector similarity)")
	assert.Contains(t, buf.String(), "Hash (deterministic, offline)")
	assert.Contains(t, buf.String(), "fnv-256")
	assert.Contains(t, buf.String(), "Configuration is valid.")
}

func TestSettingsShowCmd_ServiceNotConfigured(t *testing.T) {
	oldService := settingsService
	settingsService = nil
	defer func() {
		settingsService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestSettingsModeCmd_SetsMode(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := newMockSettingsService()
	settingsService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("2\n"))
	rootCmd.SetArgs([]string{"settings", "mode"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, domain.SearchModeKeyword, mock.modeSet)
	assert.Contains(t, buf.String(), "Search mode set to")
}

func TestSettingsModeCmd_InvalidSelection(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader("oops\n"))
	rootCmd.SetArgs([]string{"settings", "mode"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid selection")
}

func TestSettingsIndexCmd_SetsKind(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := newMockSettingsService()
	settingsService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("2\n"))
	rootCmd.SetArgs([]string{"settings", "index"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, domain.IndexKindHNSW, mock.indexSet)
	assert.Contains(t, buf.String(), "HNSW")
}

func TestSettingsWizardCmd_DefaultsEndToEnd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := newMockSettingsService()
	settingsService = mock

	// Accept every default: semantic mode, hash embedder, linear index
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("\n\n\n\n"))
	rootCmd.SetArgs([]string{"settings", "wizard"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, domain.SearchModeSemantic, mock.modeSet)
	assert.Equal(t, domain.EmbeddingProviderHash, mock.providerSet)
	assert.Equal(t, "fnv-256", mock.modelSet)
	assert.Equal(t, domain.IndexKindLinear, mock.indexSet)
	assert.Contains(t, buf.String(), "Configuration Complete!")
	assert.Contains(t, buf.String(), "All settings are valid and saved.")
}

func TestSettingsWizardCmd_KeywordModeSkipsEmbedding(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := newMockSettingsService()
	settingsService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("2\n"))
	rootCmd.SetArgs([]string{"settings", "wizard"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, domain.SearchModeKeyword, mock.modeSet)
	assert.Empty(t, mock.providerSet, "embedding step should be skipped")
	assert.Contains(t, buf.String(), "Embedding Provider (skipped)")
}
