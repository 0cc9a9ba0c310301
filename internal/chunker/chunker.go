// Package chunker splits text into overlapping windows of whole words.
package chunker

import (
	"fmt"
	"unicode"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// DefaultChunkSize is the default window size in words.
const DefaultChunkSize = 200

// DefaultOverlap is the default number of words shared by consecutive windows.
const DefaultOverlap = 40

// Span is one window cut from a text. Start and End are byte offsets
// into the original text, covering the window's first through last
// word. Text equals the original text sliced at [Start, End).
type Span struct {
	Text  string
	Start int
	End   int
}

// Chunker splits text into overlapping windows of whole words.
// Windows hold chunkSize words and advance chunkSize-overlap words
// per step, so consecutive windows share overlap words of context.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the window size in words.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between windows in words.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap stays below chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Validate rejects chunking parameters outside the supported range:
// chunk size must be positive and overlap must satisfy
// 0 <= overlap < chunk size.
func Validate(chunkSize, overlap int) error {
	if chunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be > 0, got %d", domain.ErrInvalidInput, chunkSize)
	}
	if overlap < 0 {
		return fmt.Errorf("%w: overlap must be >= 0, got %d", domain.ErrInvalidInput, overlap)
	}
	if overlap >= chunkSize {
		return fmt.Errorf("%w: overlap (%d) must be below chunk_size (%d)", domain.ErrInvalidInput, overlap, chunkSize)
	}
	return nil
}

// Chunk splits text into windows of whole words. The final window may
// be shorter than the configured size; text that fits in one window
// yields exactly one span; empty or all-whitespace text yields none.
func (c *Chunker) Chunk(text string) []Span {
	words := wordBounds(text)
	if len(words) == 0 {
		return nil
	}

	step := c.chunkSize - c.overlap
	spans := make([]Span, 0, (len(words)+step-1)/step)

	for start := 0; ; start += step {
		end := start + c.chunkSize
		if end > len(words) {
			end = len(words)
		}

		first := words[start]
		last := words[end-1]
		spans = append(spans, Span{
			Text:  text[first.start:last.end],
			Start: first.start,
			End:   last.end,
		})

		// The window that reaches the last word is final.
		if end == len(words) {
			break
		}
	}

	return spans
}

// wordBound marks one word's byte range within the source text.
type wordBound struct {
	start int
	end   int
}

// wordBounds locates every whitespace-separated word in text.
// Word boundaries follow unicode.IsSpace, matching strings.Fields.
func wordBounds(text string) []wordBound {
	var bounds []wordBound
	start := -1

	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				bounds = append(bounds, wordBound{start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		bounds = append(bounds, wordBound{start: start, end: len(text)})
	}

	return bounds
}
