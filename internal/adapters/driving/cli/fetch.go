package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

var (
	fetchLinks   bool
	fetchRaw     bool
	fetchNoCache bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [url]",
	Short: "Fetch a web page",
	Long: `Retrieves a URL and prints its readable text. GitHub repository
URLs go through the GitHub API (README or file content); everything
else is a plain HTTP fetch. Responses are cached locally.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchLinks, "links", false, "also list the page's links")
	fetchCmd.Flags().BoolVar(&fetchRaw, "raw", false, "print the raw body instead of extracted text")
	fetchCmd.Flags().BoolVar(&fetchNoCache, "no-cache", false, "bypass the local fetch cache")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if fetchService == nil {
		return errors.New("fetch service not configured")
	}

	url := args[0]
	ctx := context.Background()

	page, err := fetchService.Fetch(ctx, url, domain.FetchOptions{
		TextOnly:     !fetchRaw,
		IncludeLinks: fetchLinks,
		BypassCache:  fetchNoCache,
	})
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if page.Title != "" {
		cmd.Printf("Title: %s\n", page.Title)
	}
	cmd.Printf("Status: %d  Type: %s", page.StatusCode, page.ContentType)
	if page.FromCache {
		cmd.Print("  (cached)")
	}
	cmd.Println()
	cmd.Println()
	cmd.Println(page.Content)

	if fetchLinks {
		cmd.Printf("\nLinks: %d\n", len(page.Links))
		for _, link := range page.Links {
			text := link.Text
			if text == "" {
				text = "(no text)"
			}
			cmd.Printf("  %s -> %s\n", text, link.HRef)
		}
	}

	return nil
}
