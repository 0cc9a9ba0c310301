// Package cli implements the loupe command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/loupe-labs/loupe-cli/internal/core/ports/driving"
	"github.com/loupe-labs/loupe-cli/internal/logger"
	"github.com/loupe-labs/loupe-cli/internal/metrics"
)

// version is the build version, overridden at release time via ldflags.
var version = "dev"

// Service handles used by the commands. Populated by SetServices
// before Execute; commands guard against nil for partial wiring.
var (
	searchService   driving.SearchService
	documentService driving.DocumentService
	corpusService   driving.CorpusService
	extractService  driving.ExtractService
	fetchService    driving.FetchService
	classifyService driving.ClassifyService
	kpiService      driving.KPIService
	chartService    driving.ChartService
	convertService  driving.ConvertService
	settingsService driving.SettingsService
	appMetrics      *metrics.Metrics
)

// verbose enables debug logging for all commands.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "loupe",
	Short: "Local semantic search over your documents",
	Long: `Loupe chunks, embeds, and indexes text on your machine, then answers
similarity queries over it. The default configuration runs fully
offline using a deterministic hash embedder.

Ingest content with 'ingest' or 'load', then query with 'search'.
The same engine is available to AI assistants through 'mcp serve'
and interactively through 'tui'.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services aggregates the driving services the commands depend on.
// A nil field disables the commands that need it.
type Services struct {
	Search   driving.SearchService
	Document driving.DocumentService
	Corpus   driving.CorpusService
	Extract  driving.ExtractService
	Fetch    driving.FetchService
	Classify driving.ClassifyService
	KPI      driving.KPIService
	Chart    driving.ChartService
	Convert  driving.ConvertService
	Settings driving.SettingsService
	Metrics  *metrics.Metrics
}

// SetServices injects the service implementations used by the commands.
func SetServices(s Services) {
	searchService = s.Search
	documentService = s.Document
	corpusService = s.Corpus
	extractService = s.Extract
	fetchService = s.Fetch
	classifyService = s.Classify
	kpiService = s.KPI
	chartService = s.Chart
	convertService = s.Convert
	settingsService = s.Settings
	appMetrics = s.Metrics
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to stderr")
}

// readInput resolves a [file|-] argument: the named file's contents,
// or stdin when the argument is "-" or absent.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}
