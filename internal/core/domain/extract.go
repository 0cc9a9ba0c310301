package domain

// ExtractOperation selects what the text extraction service does
// with its input.
type ExtractOperation string

const (
	// ExtractClean collapses whitespace and strips control characters.
	ExtractClean ExtractOperation = "clean"
	// ExtractSummarize keeps leading whole sentences within a length budget.
	ExtractSummarize ExtractOperation = "summarize"
	// ExtractChunk splits the text into overlapping word windows.
	ExtractChunk ExtractOperation = "chunk"
	// ExtractKeywords returns the most frequent significant words.
	ExtractKeywords ExtractOperation = "keywords"
)

// IsValid returns true for a known extraction operation.
func (o ExtractOperation) IsValid() bool {
	switch o {
	case ExtractClean, ExtractSummarize, ExtractChunk, ExtractKeywords:
		return true
	default:
		return false
	}
}

// ExtractOperations lists the supported operations in display order.
func ExtractOperations() []ExtractOperation {
	return []ExtractOperation{ExtractClean, ExtractSummarize, ExtractChunk, ExtractKeywords}
}

// ExtractOptions tunes an extraction operation. Zero values mean
// service defaults.
type ExtractOptions struct {
	// MaxLength is the character budget for summarize.
	MaxLength int

	// TopN is how many keywords to return.
	TopN int
}

// ExtractResult is the outcome of one extraction operation. Only the
// fields relevant to the operation are populated.
type ExtractResult struct {
	// Operation is the operation that produced this result.
	Operation ExtractOperation

	// Text holds the clean or summarize output.
	Text string

	// Chunks holds the chunk output in order.
	Chunks []string

	// Keywords holds the keyword output, most frequent first.
	Keywords []string

	// WordCount is the word count of the input text.
	WordCount int

	// OriginalLength is the character length of the input text.
	OriginalLength int
}
