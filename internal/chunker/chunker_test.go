package chunker

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.chunkSize)
		}
		if c.overlap != DefaultOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultOverlap, c.overlap)
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		c := New(WithChunkSize(50))
		if c.chunkSize != 50 {
			t.Errorf("expected chunkSize 50, got %d", c.chunkSize)
		}
	})

	t.Run("custom overlap", func(t *testing.T) {
		c := New(WithOverlap(10))
		if c.overlap != 10 {
			t.Errorf("expected overlap 10, got %d", c.overlap)
		}
	})

	t.Run("overlap reaching chunk size is clamped", func(t *testing.T) {
		c := New(WithChunkSize(10), WithOverlap(15))
		if c.overlap >= c.chunkSize {
			t.Errorf("overlap %d not clamped below chunk size %d", c.overlap, c.chunkSize)
		}
	})

	t.Run("non-positive values ignored", func(t *testing.T) {
		c := New(WithChunkSize(0), WithOverlap(-1))
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", c.chunkSize)
		}
		if c.overlap != DefaultOverlap {
			t.Errorf("expected default overlap, got %d", c.overlap)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
		wantErr   bool
	}{
		{name: "valid", chunkSize: 200, overlap: 40, wantErr: false},
		{name: "zero overlap", chunkSize: 5, overlap: 0, wantErr: false},
		{name: "zero chunk size", chunkSize: 0, overlap: 0, wantErr: true},
		{name: "negative chunk size", chunkSize: -3, overlap: 0, wantErr: true},
		{name: "negative overlap", chunkSize: 5, overlap: -1, wantErr: true},
		{name: "overlap equals chunk size", chunkSize: 5, overlap: 5, wantErr: true},
		{name: "overlap above chunk size", chunkSize: 5, overlap: 8, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.chunkSize, tt.overlap)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestChunk_EmptyText(t *testing.T) {
	c := New(WithChunkSize(5), WithOverlap(1))

	for _, text := range []string{"", "   ", "\t\n  \n"} {
		if spans := c.Chunk(text); len(spans) != 0 {
			t.Errorf("Chunk(%q) = %d spans, want 0", text, len(spans))
		}
	}
}

func TestChunk_SingleWindow(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(2))

	spans := c.Chunk("only four words here")
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Text != "only four words here" {
		t.Errorf("unexpected span text %q", spans[0].Text)
	}
}

func TestChunk_OverlappingWindows(t *testing.T) {
	c := New(WithChunkSize(5), WithOverlap(1))

	spans := c.Chunk("The quick brown fox jumps over the lazy dog")
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Text != "The quick brown fox jumps" {
		t.Errorf("first span = %q", spans[0].Text)
	}
	if spans[1].Text != "jumps over the lazy dog" {
		t.Errorf("second span = %q", spans[1].Text)
	}
}

func TestChunk_Count(t *testing.T) {
	tests := []struct {
		words     int
		chunkSize int
		overlap   int
		want      int
	}{
		{words: 1, chunkSize: 5, overlap: 1, want: 1},
		{words: 5, chunkSize: 5, overlap: 1, want: 1},
		{words: 6, chunkSize: 5, overlap: 1, want: 2},
		{words: 9, chunkSize: 5, overlap: 1, want: 2},
		{words: 10, chunkSize: 5, overlap: 1, want: 3},
		{words: 20, chunkSize: 5, overlap: 0, want: 4},
		{words: 7, chunkSize: 3, overlap: 2, want: 5},
		{words: 100, chunkSize: 10, overlap: 3, want: 14},
		{words: 250, chunkSize: 200, overlap: 40, want: 2},
	}

	for _, tt := range tests {
		name := fmt.Sprintf("L%d_C%d_O%d", tt.words, tt.chunkSize, tt.overlap)
		t.Run(name, func(t *testing.T) {
			c := New(WithChunkSize(tt.chunkSize), WithOverlap(tt.overlap))
			spans := c.Chunk(manyWords(tt.words))
			if len(spans) != tt.want {
				t.Errorf("got %d spans, want %d", len(spans), tt.want)
			}
		})
	}
}

func TestChunk_AllButLastFull(t *testing.T) {
	c := New(WithChunkSize(7), WithOverlap(2))

	spans := c.Chunk(manyWords(33))
	for i, span := range spans[:len(spans)-1] {
		if got := len(strings.Fields(span.Text)); got != 7 {
			t.Errorf("span %d has %d words, want 7", i, got)
		}
	}
}

func TestChunk_ConsecutiveOverlap(t *testing.T) {
	c := New(WithChunkSize(5), WithOverlap(2))

	spans := c.Chunk(manyWords(17))
	for i := 1; i < len(spans); i++ {
		prev := strings.Fields(spans[i-1].Text)
		cur := strings.Fields(spans[i].Text)
		shared := prev[len(prev)-2:]
		if cur[0] != shared[0] || cur[1] != shared[1] {
			t.Errorf("spans %d/%d do not share 2 words: %v vs %v", i-1, i, shared, cur[:2])
		}
	}
}

func TestChunk_Offsets(t *testing.T) {
	texts := []string{
		"The quick brown fox jumps over the lazy dog",
		"  leading and   irregular\twhitespace between words  ",
		"punctuation, stays. attached! to? words",
		"unicode spaces split words too when repeated often enough",
	}

	c := New(WithChunkSize(3), WithOverlap(1))
	for _, text := range texts {
		for i, span := range c.Chunk(text) {
			if got := text[span.Start:span.End]; got != span.Text {
				t.Errorf("span %d of %q: offsets [%d,%d) give %q, want %q",
					i, text, span.Start, span.End, got, span.Text)
			}
			if strings.TrimSpace(span.Text) != span.Text {
				t.Errorf("span %d of %q not trimmed to word boundaries: %q", i, text, span.Text)
			}
		}
	}
}

// manyWords builds a text of n distinct words.
func manyWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(words, " ")
}
