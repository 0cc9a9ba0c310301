package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard all indexed documents",
	Long: `Removes every document, chunk, and index entry. The configured
embedding dimension and search mode are kept. This cannot be undone.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	if !resetYes {
		cmd.Print("This discards all indexed documents. Continue? [y/N]: ")
		answer := readLine(bufio.NewReader(cmd.InOrStdin()))
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			cmd.Println("Aborted.")
			return nil
		}
	}

	ctx := context.Background()

	if err := searchService.Reset(ctx); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	cmd.Println("Index cleared.")
	return nil
}
