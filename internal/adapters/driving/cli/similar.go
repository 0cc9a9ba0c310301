package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var similarLimit int

var similarCmd = &cobra.Command{
	Use:   "similar [doc-id]",
	Short: "Find chunks similar to a document",
	Long: `Finds the chunks most similar to a document's content, excluding
the document's own chunks. Useful for spotting related or duplicated
material in the corpus.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

func init() {
	similarCmd.Flags().IntVarP(&similarLimit, "limit", "n", 5, "maximum number of results")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	results, err := searchService.Similar(ctx, docID, similarLimit)
	if err != nil {
		return fmt.Errorf("similar search failed: %w", err)
	}

	if len(results) == 0 {
		cmd.Printf("No chunks similar to %s found.\n", docID)
		return nil
	}

	cmd.Printf("Chunks similar to %s:\n\n", docID)
	return outputSearchTable(cmd, results)
}
