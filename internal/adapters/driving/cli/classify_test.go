package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCmd_Use(t *testing.T) {
	assert.Equal(t, "classify [file|-]", classifyCmd.Use)
}

func TestClassifyCmd_ClassifiesStdin(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockClassifyService{}
	classifyService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("Hi, can you tell me about pricing?"))
	rootCmd.SetArgs([]string{"classify"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "Hi, can you tell me about pricing?", mock.lastText)
	assert.Contains(t, buf.String(), "Intent: inquiry (75% confidence)")
	assert.Contains(t, buf.String(), "Matched 3 inquiry patterns")
	assert.Contains(t, buf.String(), "request (50%)")
}

func TestClassifyCmd_FeaturesFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("Hi there"))
	rootCmd.SetArgs([]string{"classify", "--features"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		classifyFeatures = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Features:")
	assert.Contains(t, buf.String(), "Greeting:      yes")
	assert.Contains(t, buf.String(), "Questions:     2")
}

func TestClassifyCmd_ServiceNotConfigured(t *testing.T) {
	oldService := classifyService
	classifyService = nil
	defer func() {
		classifyService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"classify"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "classify service not configured")
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}
