package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/loupe-labs/loupe-cli/internal/chunker"
	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driving"
	"github.com/loupe-labs/loupe-cli/internal/logger"
)

// Ensure ExtractService implements the interface.
var _ driving.ExtractService = (*ExtractService)(nil)

const (
	// DefaultSummaryLength is the character budget for summarize when
	// the caller does not set one.
	DefaultSummaryLength = 500

	// DefaultKeywordCount is how many keywords to return by default.
	DefaultKeywordCount = 10
)

// keywordMinLength filters out short filler words before counting.
const keywordMinLength = 3

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	wordPattern   = regexp.MustCompile(`[a-z]+`)
)

// stopwords are common English words excluded from keyword extraction.
// Words of keywordMinLength or fewer characters are filtered before
// this set applies, so only longer fillers are listed.
var stopwords = map[string]struct{}{
	"about": {}, "above": {}, "after": {}, "again": {}, "because": {},
	"been": {}, "before": {}, "being": {}, "below": {}, "between": {},
	"both": {}, "cannot": {}, "could": {}, "does": {}, "doing": {},
	"down": {}, "during": {}, "each": {}, "from": {}, "further": {},
	"have": {}, "having": {}, "here": {}, "into": {}, "itself": {},
	"just": {}, "more": {}, "most": {}, "must": {}, "only": {},
	"other": {}, "over": {}, "same": {}, "should": {}, "some": {},
	"such": {}, "than": {}, "that": {}, "their": {}, "them": {},
	"then": {}, "there": {}, "these": {}, "they": {}, "this": {},
	"those": {}, "through": {}, "under": {}, "until": {}, "very": {},
	"were": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"while": {}, "will": {}, "with": {}, "would": {}, "your": {},
}

// ExtractService performs text extraction operations: cleaning,
// summarising, chunking and keyword extraction.
type ExtractService struct {
	chunks *chunker.Chunker
}

// NewExtractService creates a new extraction service. The chunker is
// used for the chunk operation; nil falls back to default chunking.
func NewExtractService(chunks *chunker.Chunker) *ExtractService {
	if chunks == nil {
		chunks = chunker.New()
	}
	return &ExtractService{chunks: chunks}
}

// Extract applies one operation to a text.
func (s *ExtractService) Extract(ctx context.Context, text string, op domain.ExtractOperation, opts domain.ExtractOptions) (*domain.ExtractResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is empty", domain.ErrInvalidInput)
	}
	if !op.IsValid() {
		return nil, fmt.Errorf("%w: unknown operation %q", domain.ErrInvalidInput, op)
	}

	logger.Debug("Extract: op=%s input=%d chars", op, len(text))

	result := &domain.ExtractResult{
		Operation:      op,
		WordCount:      len(strings.Fields(text)),
		OriginalLength: len(text),
	}

	switch op {
	case domain.ExtractClean:
		result.Text = cleanText(text)

	case domain.ExtractSummarize:
		maxLength := opts.MaxLength
		if maxLength <= 0 {
			maxLength = DefaultSummaryLength
		}
		result.Text = summarize(text, maxLength)

	case domain.ExtractChunk:
		spans := s.chunks.Chunk(text)
		result.Chunks = make([]string, len(spans))
		for i, span := range spans {
			result.Chunks[i] = span.Text
		}

	case domain.ExtractKeywords:
		topN := opts.TopN
		if topN <= 0 {
			topN = DefaultKeywordCount
		}
		result.Keywords = extractKeywords(text, topN)
	}

	return result, nil
}

// ExtractBatch applies one operation to several texts, preserving input
// order. A failing item does not fail its neighbours.
func (s *ExtractService) ExtractBatch(ctx context.Context, texts []string, op domain.ExtractOperation, opts domain.ExtractOptions) []driving.ExtractOutcome {
	outcomes := make([]driving.ExtractOutcome, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			outcomes[i] = driving.ExtractOutcome{Err: err}
			continue
		}
		result, err := s.Extract(ctx, text, op, opts)
		outcomes[i] = driving.ExtractOutcome{Result: result, Err: err}
	}
	return outcomes
}

// cleanText drops non-printable characters and collapses whitespace
// runs to single spaces.
func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(b.String(), " "))
}

// summarize keeps leading whole sentences while they fit in maxLength
// characters. A first sentence longer than the budget is cut at a word
// boundary so the summary is never empty.
func summarize(text string, maxLength int) string {
	text = cleanText(text)
	if len(text) <= maxLength {
		return text
	}

	var b strings.Builder
	for _, sentence := range splitSentences(text) {
		needed := len(sentence)
		if b.Len() > 0 {
			needed++ // joining space
		}
		if b.Len()+needed > maxLength {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sentence)
	}

	if b.Len() > 0 {
		return b.String()
	}

	// No whole sentence fits.
	cut := text[:maxLength]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut
}

// splitSentences splits cleaned text on '.', '!' and '?' boundaries,
// keeping the terminator with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if i+1 == len(text) || text[i+1] == ' ' {
				if s := strings.TrimSpace(text[start : i+1]); s != "" {
					sentences = append(sentences, s)
				}
				start = i + 1
			}
		}
	}
	if start < len(text) {
		if s := strings.TrimSpace(text[start:]); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// extractKeywords returns the topN most frequent significant words.
// Ties are broken alphabetically so the result is deterministic.
func extractKeywords(text string, topN int) []string {
	counts := make(map[string]int)
	for _, word := range wordPattern.FindAllString(strings.ToLower(cleanText(text)), -1) {
		if len(word) <= keywordMinLength {
			continue
		}
		if _, skip := stopwords[word]; skip {
			continue
		}
		counts[word]++
	}

	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > topN {
		words = words[:topN]
	}
	return words
}
