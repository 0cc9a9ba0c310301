package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := context.Background()

	stats, err := searchService.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	cmd.Println("Index Statistics")
	cmd.Println("================")
	cmd.Printf("  Documents:     %d\n", stats.Documents)
	cmd.Printf("  Chunks:        %d\n", stats.Chunks)
	cmd.Printf("  Index entries: %d\n", stats.IndexEntries)
	cmd.Printf("  Dimensions:    %d\n", stats.Dimensions)
	if stats.Model != "" {
		cmd.Printf("  Model:         %s\n", stats.Model)
	}
	cmd.Printf("  Mode:          %s\n", stats.Mode)
	return nil
}
