package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var loadWatch bool

var loadCmd = &cobra.Command{
	Use:   "load [dir]",
	Short: "Load a directory of documents",
	Long: `Walks a directory and ingests every supported file (.txt, .md,
.html, .csv, .json). With --watch, keeps running and re-ingests
files as they change until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&loadWatch, "watch", false, "watch the directory and re-ingest on changes")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	root := args[0]
	ctx := cmd.Context()

	if loadWatch {
		cmd.Printf("Watching %s (ctrl-c to stop)...\n", root)
		if err := corpusService.WatchDirectory(ctx, root); err != nil {
			return fmt.Errorf("watch failed: %w", err)
		}
		return nil
	}

	count, err := corpusService.LoadDirectory(ctx, root)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	cmd.Printf("Loaded %d documents from %s.\n", count, root)
	return nil
}
