// Command loupe is a local document search tool. It chunks and embeds
// ingested text, serves semantic, keyword, and hybrid queries, and
// exposes the same services over a CLI, a TUI, and an MCP server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/loupe-labs/loupe-cli/internal/adapters/driven/ai"
	"github.com/loupe-labs/loupe-cli/internal/adapters/driven/config/file"
	"github.com/loupe-labs/loupe-cli/internal/adapters/driven/search/bleve"
	"github.com/loupe-labs/loupe-cli/internal/adapters/driven/storage/memory"
	"github.com/loupe-labs/loupe-cli/internal/adapters/driven/storage/sqlite"
	"github.com/loupe-labs/loupe-cli/internal/adapters/driven/vector/hnsw"
	"github.com/loupe-labs/loupe-cli/internal/adapters/driven/vector/linear"
	"github.com/loupe-labs/loupe-cli/internal/adapters/driving/cli"
	"github.com/loupe-labs/loupe-cli/internal/chunker"
	"github.com/loupe-labs/loupe-cli/internal/connectors/filesystem"
	"github.com/loupe-labs/loupe-cli/internal/connectors/github"
	"github.com/loupe-labs/loupe-cli/internal/connectors/web"
	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driven"
	"github.com/loupe-labs/loupe-cli/internal/core/services"
	"github.com/loupe-labs/loupe-cli/internal/metrics"
	"github.com/loupe-labs/loupe-cli/internal/normalisers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configStore, err := file.NewConfigStore(os.Getenv("LOUPE_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// Secrets may come from the environment (or a .env file) instead
	// of the config file.
	if settings.Embedding.APIKey == "" {
		settings.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if settings.Fetch.GitHubToken == "" {
		settings.Fetch.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}

	// Keyword-only mode runs without an embedding provider, so skip
	// the connectivity ping entirely. A failed ping elsewhere degrades
	// to keyword search rather than blocking startup; 'loupe settings'
	// has to stay reachable to fix a broken provider.
	var embedder driven.EmbeddingService
	if settings.Search.Mode != domain.SearchModeKeyword {
		embedder, err = ai.CreateAndValidateEmbeddingService(&settings.Embedding)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	if embedder != nil {
		defer embedder.Close()
	}

	var vectors driven.VectorIndex
	if embedder != nil {
		switch settings.Index {
		case domain.IndexKindHNSW:
			vectors, err = hnsw.New(embedder.Dimensions())
		default:
			vectors, err = linear.New(embedder.Dimensions())
		}
		if err != nil {
			return fmt.Errorf("create vector index: %w", err)
		}
		defer vectors.Close()
	}

	var keyword driven.SearchEngine
	if settings.Search.Mode != domain.SearchModeSemantic {
		keyword, err = bleve.NewEngine()
		if err != nil {
			return fmt.Errorf("create keyword engine: %w", err)
		}
		defer keyword.Close()
	}

	docStore := memory.NewDocumentStore()
	chunks := chunker.New(
		chunker.WithChunkSize(settings.Chunker.ChunkSize),
		chunker.WithOverlap(settings.Chunker.Overlap),
	)
	m := metrics.New()

	var cache driven.FetchCache
	if settings.Fetch.CacheEnabled {
		sqliteCache, err := sqlite.NewCache("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: fetch cache disabled: %v\n", err)
		} else {
			cache = sqliteCache
			defer sqliteCache.Close()
		}
	}

	var gh *github.Fetcher
	if settings.Fetch.GitHubToken != "" {
		gh = github.NewFetcher(github.NewClient(context.Background(), settings.Fetch.GitHubToken))
	}

	fetcher := web.NewFetcher(web.Config{
		Settings: settings.Fetch,
		Cache:    cache,
		GitHub:   gh,
		Metrics:  m,
	})

	searchService := services.NewSearchService(docStore, keyword, vectors, embedder, chunks, settings.Search)

	cli.SetServices(cli.Services{
		Search:   searchService,
		Document: services.NewDocumentService(docStore),
		Corpus:   services.NewCorpusService(filesystem.New(), normalisers.NewDefaultRegistry(), searchService),
		Extract:  services.NewExtractService(chunks),
		Fetch:    services.NewFetchService(fetcher),
		Classify: services.NewClassifyService(),
		KPI:      services.NewKPIService(),
		Chart:    services.NewChartService(),
		Convert:  services.NewConvertService(),
		Settings: settingsService,
		Metrics:  m,
	})

	return cli.Execute()
}
