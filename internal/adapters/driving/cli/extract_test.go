package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

func TestExtractCmd_Use(t *testing.T) {
	assert.Equal(t, "extract [file|-]", extractCmd.Use)
}

func TestExtractCmd_CleanByDefault(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockExtractService{}
	extractService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("  raw   text  "))
	rootCmd.SetArgs([]string{"extract"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, domain.ExtractClean, mock.lastOp)
	assert.Contains(t, buf.String(), "processed text")
	assert.Contains(t, buf.String(), "(42 words in input)")
}

func TestExtractCmd_ChunkOperation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockExtractService{}
	extractService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("some text"))
	rootCmd.SetArgs([]string{"extract", "--op", "chunk"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		extractOp = "clean"
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, domain.ExtractChunk, mock.lastOp)
	assert.Contains(t, buf.String(), "Chunks: 2")
	assert.Contains(t, buf.String(), "1. chunk one")
	assert.Contains(t, buf.String(), "2. chunk two")
}

func TestExtractCmd_KeywordsOperation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockExtractService{}
	extractService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("some text"))
	rootCmd.SetArgs([]string{"extract", "--op", "keywords", "--top-n", "2"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		extractOp = "clean"
		extractTopN = 0
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, domain.ExtractKeywords, mock.lastOp)
	assert.Equal(t, 2, mock.lastOpts.TopN)
	assert.Contains(t, buf.String(), "alpha")
	assert.Contains(t, buf.String(), "beta")
}

func TestExtractCmd_SummarizeMaxLength(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockExtractService{}
	extractService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("some text"))
	rootCmd.SetArgs([]string{"extract", "--op", "summarize", "--max-length", "120"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		extractOp = "clean"
		extractMaxLength = 0
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, domain.ExtractSummarize, mock.lastOp)
	assert.Equal(t, 120, mock.lastOpts.MaxLength)
}

func TestExtractCmd_UnknownOperation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract", "--op", "translate"})
	defer func() {
		rootCmd.SetArgs(nil)
		extractOp = "clean"
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operation")
}

func TestExtractCmd_ServiceNotConfigured(t *testing.T) {
	oldService := extractService
	extractService = nil
	defer func() {
		extractService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "extract service not configured")
}
