package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

var (
	extractOp        string
	extractMaxLength int
	extractTopN      int
)

var extractCmd = &cobra.Command{
	Use:   "extract [file|-]",
	Short: "Extract text features",
	Long: `Applies a text extraction operation to the named file or stdin.

Available operations:
  clean      - collapse whitespace and strip control characters
  summarize  - keep leading whole sentences within a length budget
  chunk      - split into overlapping word windows
  keywords   - list the most frequent significant words`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractOp, "op", "clean", "operation: clean, summarize, chunk, or keywords")
	extractCmd.Flags().IntVar(&extractMaxLength, "max-length", 0, "character budget for summarize (0 = default)")
	extractCmd.Flags().IntVar(&extractTopN, "top-n", 0, "keyword count for keywords (0 = default)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractService == nil {
		return errors.New("extract service not configured")
	}

	op := domain.ExtractOperation(extractOp)
	if !op.IsValid() {
		return fmt.Errorf("unknown operation %q", extractOp)
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	ctx := context.Background()

	result, err := extractService.Extract(ctx, text, op, domain.ExtractOptions{
		MaxLength: extractMaxLength,
		TopN:      extractTopN,
	})
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	switch result.Operation {
	case domain.ExtractChunk:
		cmd.Printf("Chunks: %d\n\n", len(result.Chunks))
		for i, chunk := range result.Chunks {
			cmd.Printf("%d. %s\n", i+1, chunk)
		}
	case domain.ExtractKeywords:
		cmd.Printf("Keywords: %d\n\n", len(result.Keywords))
		for _, kw := range result.Keywords {
			cmd.Printf("  %s\n", kw)
		}
	default:
		cmd.Println(result.Text)
	}

	cmd.Printf("\n(%d words in input)\n", result.WordCount)
	return nil
}
