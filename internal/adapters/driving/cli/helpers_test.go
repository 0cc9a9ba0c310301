package cli

import (
	"context"
	"errors"
	"time"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driving"
)

// --- Test helpers ---

// setupTestServices installs working mocks for every service and
// returns a cleanup that restores the previous wiring.
func setupTestServices() func() {
	prev := Services{
		Search:   searchService,
		Document: documentService,
		Corpus:   corpusService,
		Extract:  extractService,
		Fetch:    fetchService,
		Classify: classifyService,
		KPI:      kpiService,
		Chart:    chartService,
		Convert:  convertService,
		Settings: settingsService,
		Metrics:  appMetrics,
	}
	SetServices(Services{
		Search:   &mockSearchService{},
		Document: &mockDocumentService{},
		Corpus:   &mockCorpusService{},
		Extract:  &mockExtractService{},
		Fetch:    &mockFetchService{},
		Classify: &mockClassifyService{},
		KPI:      &mockKPIService{},
		Chart:    &mockChartService{},
		Convert:  &mockConvertService{},
		Settings: newMockSettingsService(),
	})
	return func() { SetServices(prev) }
}

// --- Mock implementations ---

type mockSearchService struct {
	lastQuery   string
	lastOpts    domain.QueryOptions
	lastDoc     domain.Document
	resetCalled bool
}

func (m *mockSearchService) Ingest(_ context.Context, doc domain.Document) (*domain.IngestReceipt, error) {
	m.lastDoc = doc
	id := doc.ID
	if id == "" {
		id = "generated-id"
	}
	return &domain.IngestReceipt{DocumentID: id, ChunkCount: 2}, nil
}

func (m *mockSearchService) Query(_ context.Context, query string, opts domain.QueryOptions) ([]domain.QueryResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return []domain.QueryResult{
		{
			ChunkID:    "doc-1:0",
			DocumentID: "doc-1",
			Score:      0.82,
			Content:    "the quick brown fox jumps over the lazy dog",
			Title:      "Test Document 1",
			Origin:     "inline",
		},
		{
			ChunkID:    "doc-2:1",
			DocumentID: "doc-2",
			Score:      0.41,
			Content:    "a second document about something else",
			Title:      "Test Document 2",
			Origin:     "notes/second.md",
		},
	}, nil
}

func (m *mockSearchService) Similar(_ context.Context, _ string, _ int) ([]domain.QueryResult, error) {
	return []domain.QueryResult{
		{
			ChunkID:    "doc-2:0",
			DocumentID: "doc-2",
			Score:      0.67,
			Content:    "related material in another document",
			Title:      "Test Document 2",
		},
	}, nil
}

func (m *mockSearchService) Reset(_ context.Context) error {
	m.resetCalled = true
	return nil
}

func (m *mockSearchService) Stats(_ context.Context) (*domain.IndexStats, error) {
	return &domain.IndexStats{
		Documents:    2,
		Chunks:       4,
		IndexEntries: 4,
		Dimensions:   256,
		Model:        "fnv-256",
		Mode:         domain.SearchModeSemantic,
	}, nil
}

// mockSearchServiceError fails every operation.
type mockSearchServiceError struct{}

func (m *mockSearchServiceError) Ingest(_ context.Context, _ domain.Document) (*domain.IngestReceipt, error) {
	return nil, errors.New("ingest exploded")
}

func (m *mockSearchServiceError) Query(_ context.Context, _ string, _ domain.QueryOptions) ([]domain.QueryResult, error) {
	return nil, errors.New("query exploded")
}

func (m *mockSearchServiceError) Similar(_ context.Context, _ string, _ int) ([]domain.QueryResult, error) {
	return nil, errors.New("similar exploded")
}

func (m *mockSearchServiceError) Reset(_ context.Context) error {
	return errors.New("reset exploded")
}

func (m *mockSearchServiceError) Stats(_ context.Context) (*domain.IndexStats, error) {
	return nil, errors.New("stats exploded")
}

type mockDocumentService struct{}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return []domain.Document{
		{ID: "doc-1", Title: "Test Document 1", Origin: "inline"},
		{ID: "doc-2", Title: "Test Document 2", Origin: "notes/second.md"},
	}, nil
}

func (m *mockDocumentService) Get(_ context.Context, documentID string) (*domain.Document, error) {
	return &domain.Document{
		ID:        documentID,
		Title:     "Test Document 1",
		Content:   "full document content",
		Origin:    "inline",
		Metadata:  map[string]string{"path": "/tmp/doc.txt"},
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return "full document content", nil
}

func (m *mockDocumentService) GetDetails(_ context.Context, documentID string) (*driving.DocumentDetails, error) {
	return &driving.DocumentDetails{
		ID:         documentID,
		Title:      "Test Document 1",
		Origin:     "inline",
		ChunkCount: 2,
		WordCount:  3,
		CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Metadata:   map[string]string{"path": "/tmp/doc.txt"},
	}, nil
}

type mockCorpusService struct {
	lastRoot string
}

func (m *mockCorpusService) LoadDirectory(_ context.Context, root string) (int, error) {
	m.lastRoot = root
	return 3, nil
}

func (m *mockCorpusService) WatchDirectory(_ context.Context, root string) error {
	m.lastRoot = root
	return nil
}

type mockExtractService struct {
	lastText string
	lastOp   domain.ExtractOperation
	lastOpts domain.ExtractOptions
}

func (m *mockExtractService) Extract(_ context.Context, text string, op domain.ExtractOperation, opts domain.ExtractOptions) (*domain.ExtractResult, error) {
	m.lastText = text
	m.lastOp = op
	m.lastOpts = opts
	result := &domain.ExtractResult{Operation: op, WordCount: 42, OriginalLength: len(text)}
	switch op {
	case domain.ExtractChunk:
		result.Chunks = []string{"chunk one", "chunk two"}
	case domain.ExtractKeywords:
		result.Keywords = []string{"alpha", "beta"}
	default:
		result.Text = "processed text"
	}
	return result, nil
}

func (m *mockExtractService) ExtractBatch(ctx context.Context, texts []string, op domain.ExtractOperation, opts domain.ExtractOptions) []driving.ExtractOutcome {
	outcomes := make([]driving.ExtractOutcome, len(texts))
	for i, text := range texts {
		result, err := m.Extract(ctx, text, op, opts)
		outcomes[i] = driving.ExtractOutcome{Result: result, Err: err}
	}
	return outcomes
}

type mockFetchService struct {
	lastURL  string
	lastOpts domain.FetchOptions
}

func (m *mockFetchService) Fetch(_ context.Context, url string, opts domain.FetchOptions) (*domain.FetchedPage, error) {
	m.lastURL = url
	m.lastOpts = opts
	page := &domain.FetchedPage{
		URL:         url,
		Title:       "Example Page",
		StatusCode:  200,
		ContentType: "text/html",
		Content:     "Example body text.",
	}
	if opts.IncludeLinks {
		page.Links = []domain.Link{{Text: "Docs", HRef: "https://example.com/docs"}}
	}
	return page, nil
}

func (m *mockFetchService) Links(_ context.Context, url string) ([]domain.Link, error) {
	m.lastURL = url
	return []domain.Link{{Text: "Docs", HRef: "https://example.com/docs"}}, nil
}

type mockClassifyService struct {
	lastText string
}

func (m *mockClassifyService) Classify(_ context.Context, text string) (*domain.IntentResult, error) {
	m.lastText = text
	return &domain.IntentResult{
		Intent:      "inquiry",
		Confidence:  0.75,
		Explanation: "Matched 3 inquiry patterns",
		Secondary:   []domain.IntentScore{{Intent: "request", Confidence: 0.5}},
		EmailLength: len(text),
		WordCount:   9,
	}, nil
}

func (m *mockClassifyService) ClassifyBatch(ctx context.Context, texts []string) (*domain.IntentBatch, error) {
	batch := &domain.IntentBatch{Distribution: map[string]int{}, Total: len(texts)}
	for _, text := range texts {
		result, _ := m.Classify(ctx, text) //nolint:errcheck // mock never fails
		batch.Results = append(batch.Results, *result)
		batch.Distribution[result.Intent]++
	}
	return batch, nil
}

func (m *mockClassifyService) Features(_ context.Context, text string) (*domain.EmailFeatures, error) {
	m.lastText = text
	return &domain.EmailFeatures{
		HasGreeting:   true,
		QuestionCount: 2,
		HasURL:        true,
	}, nil
}

type mockKPIService struct {
	lastData    string
	lastMetrics []domain.KPIMetric
}

func (m *mockKPIService) Generate(_ context.Context, data string, metrics []domain.KPIMetric) (*domain.KPIReport, error) {
	m.lastData = data
	m.lastMetrics = metrics
	return &domain.KPIReport{
		KPIs: map[domain.KPIMetric]domain.KPIGroup{
			domain.KPIRevenue: {"total_revenue": 50000, "profit_margin": 20},
		},
		Trends:          []string{"Revenue is trending up"},
		Summary:         "Analyzed 4 data points across 1 metric groups.",
		MetricsAnalyzed: []domain.KPIMetric{domain.KPIRevenue},
		DataPoints:      4,
	}, nil
}

type mockChartService struct {
	lastReq domain.ChartRequest
}

func (m *mockChartService) Render(_ context.Context, req domain.ChartRequest) (*domain.Chart, error) {
	m.lastReq = req
	return &domain.Chart{
		Title:     "Revenue by Quarter",
		Type:      domain.ChartBar,
		Rendering: "Revenue by Quarter\n\nQ1 | #### 100",
		Points:    4,
	}, nil
}

type mockConvertService struct {
	lastReq domain.ConvertRequest
}

func (m *mockConvertService) Convert(_ context.Context, req domain.ConvertRequest) (*domain.ConvertResult, error) {
	m.lastReq = req
	return &domain.ConvertResult{
		OutputPath: "report.md",
		Format:     domain.ConvertMarkdown,
		Bytes:      128,
	}, nil
}

type mockSettingsService struct {
	settings      domain.Settings
	modeSet       domain.SearchMode
	providerSet   domain.EmbeddingProvider
	modelSet      string
	indexSet      domain.IndexKind
	validateErr   error
	savedSettings *domain.Settings
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultSettings()}
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.Settings) error {
	m.savedSettings = settings
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) SetSearchMode(mode domain.SearchMode) error {
	m.modeSet = mode
	m.settings.Search.Mode = mode
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.EmbeddingProvider, model, apiKey string) error {
	m.providerSet = provider
	m.modelSet = model
	m.settings.Embedding.Provider = provider
	m.settings.Embedding.Model = model
	m.settings.Embedding.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) SetIndexKind(kind domain.IndexKind) error {
	m.indexSet = kind
	m.settings.Index = kind
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

func (m *mockSettingsService) RequiresEmbedding() bool {
	return m.settings.Search.Mode.RequiresEmbedding()
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (m *mockSettingsService) ValidateEmbeddingConfig() error {
	return nil
}
