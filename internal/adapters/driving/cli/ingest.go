package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

var (
	ingestID    string
	ingestTitle string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file|-]",
	Short: "Ingest a document into the index",
	Long: `Chunks, embeds, and indexes one document. Reads the named file, or
stdin when the argument is "-" or absent. Re-ingesting the same
content indexes it again under a new identity.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestID, "id", "", "document ID (generated when empty)")
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "document title (derived from the filename when empty)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	doc := domain.Document{
		ID:      ingestID,
		Title:   ingestTitle,
		Content: text,
		Origin:  "inline",
	}
	if len(args) > 0 && args[0] != "-" {
		doc.Origin = args[0]
		if doc.Title == "" {
			doc.Title = titleFromPath(args[0])
		}
	}

	ctx := context.Background()

	receipt, err := searchService.Ingest(ctx, doc)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested document %s (%d chunks).\n", receipt.DocumentID, receipt.ChunkCount)
	return nil
}

// titleFromPath turns a file path into a display title: the base name
// without extension, with underscores and dashes as spaces.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return strings.TrimSpace(base)
}
