package domain

// ConvertFormat names a file conversion target.
type ConvertFormat string

const (
	// ConvertTxt targets plain text.
	ConvertTxt ConvertFormat = "txt"
	// ConvertCSV targets comma-separated values.
	ConvertCSV ConvertFormat = "csv"
	// ConvertMarkdown targets markdown.
	ConvertMarkdown ConvertFormat = "md"
)

// IsValid returns true for a supported conversion target.
func (f ConvertFormat) IsValid() bool {
	switch f {
	case ConvertTxt, ConvertCSV, ConvertMarkdown:
		return true
	default:
		return false
	}
}

// ConvertFormats lists the supported targets in display order.
func ConvertFormats() []ConvertFormat {
	return []ConvertFormat{ConvertTxt, ConvertCSV, ConvertMarkdown}
}

// ConvertRequest describes a file conversion.
type ConvertRequest struct {
	// InputPath is the file to convert. The source format is
	// derived from its extension.
	InputPath string

	// OutputFormat is the target format.
	OutputFormat ConvertFormat

	// OutputPath is where to write the result. Empty means the
	// input path with the target extension.
	OutputPath string
}

// ConvertResult reports a completed conversion.
type ConvertResult struct {
	// OutputPath is where the converted file was written.
	OutputPath string

	// Format is the target format used.
	Format ConvertFormat

	// Bytes is the size of the written output.
	Bytes int
}
