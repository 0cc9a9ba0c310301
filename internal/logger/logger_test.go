package logger

import (
	"bytes"
	"os"
	"testing"
)

func restore() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer restore()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestLevels_WhenVerbose(t *testing.T) {
	defer restore()

	tests := []struct {
		name string
		log  func()
		want string
	}{
		{name: "debug", log: func() { Debug("chunked %d words", 9) }, want: "[DEBUG] chunked 9 words\n"},
		{name: "info", log: func() { Info("indexed %d entries", 2) }, want: "[INFO] indexed 2 entries\n"},
		{name: "warn", log: func() { Warn("cache miss") }, want: "[WARN] cache miss\n"},
		{name: "error", log: func() { Error("embed failed: %s", "timeout") }, want: "[ERROR] embed failed: timeout\n"},
		{name: "section", log: func() { Section("Query") }, want: "\n=== Query ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetOutput(&buf)
			SetVerbose(true)

			tt.log()
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestQuietLevels_WhenNotVerbose(t *testing.T) {
	defer restore()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	if buf.Len() > 0 {
		t.Errorf("expected no output when verbose is disabled, got %q", buf.String())
	}
}

func TestError_AlwaysPrints(t *testing.T) {
	defer restore()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("index unavailable")
	if buf.String() != "[ERROR] index unavailable\n" {
		t.Errorf("unexpected error output: %q", buf.String())
	}
}

func TestConcurrentAccess(t *testing.T) {
	defer restore()

	var buf bytes.Buffer
	SetOutput(&buf)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
	// Test passes if no race conditions
}
