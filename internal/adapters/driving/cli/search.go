package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

var (
	searchLimit     int
	searchJSON      bool
	searchThreshold float64
	searchDedup     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Runs a similarity query against the indexed corpus and prints the
best matching chunks. Scores are raw cosine similarities in [-1, 1];
higher is more similar.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", 0, "drop results scoring below this (semantic mode only)")
	searchCmd.Flags().BoolVar(&searchDedup, "dedup", false, "keep at most one result per document")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	query := args[0]
	ctx := context.Background()

	opts := domain.QueryOptions{
		TopK:            searchLimit,
		DedupByDocument: searchDedup,
	}
	if cmd.Flags().Changed("threshold") {
		t := searchThreshold
		opts.Threshold = &t
	}

	results, err := searchService.Query(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.QueryResult) error {
	if len(results) == 0 {
		cmd.Println("[]")
		return nil
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.QueryResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results: %d\n\n", len(results))
	for i, r := range results {
		title := r.Title
		if title == "" {
			title = r.DocumentID
		}
		cmd.Printf("%d. %s (score %.4f)\n", i+1, title, r.Score)
		cmd.Printf("   chunk: %s\n", r.ChunkID)
		if r.Origin != "" {
			cmd.Printf("   origin: %s\n", r.Origin)
		}
		cmd.Printf("   %s\n\n", snippet(r.Content, 200))
	}
	return nil
}

// snippet truncates s to at most n runes for table display.
func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
