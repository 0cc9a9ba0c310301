package mcp

import (
	"context"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	ingested        []domain.Document
	ingestErr       error
	results         []domain.QueryResult
	queryErr        error
	lastQuery       string
	lastOpts        domain.QueryOptions
	similarResults  []domain.QueryResult
	similarErr      error
	lastSimilarID   string
	lastSimilarTopK int
	resetCalled     bool
	resetErr        error
	stats           *domain.IndexStats
	statsErr        error
}

func (m *mockSearchService) Ingest(_ context.Context, doc domain.Document) (*domain.IngestReceipt, error) {
	if m.ingestErr != nil {
		return nil, m.ingestErr
	}
	m.ingested = append(m.ingested, doc)

	id := doc.ID
	if id == "" {
		id = "generated-id"
	}
	return &domain.IngestReceipt{DocumentID: id, ChunkCount: 2}, nil
}

func (m *mockSearchService) Query(_ context.Context, query string, opts domain.QueryOptions) ([]domain.QueryResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.queryErr
}

func (m *mockSearchService) Similar(_ context.Context, documentID string, topK int) ([]domain.QueryResult, error) {
	m.lastSimilarID = documentID
	m.lastSimilarTopK = topK
	return m.similarResults, m.similarErr
}

func (m *mockSearchService) Reset(_ context.Context) error {
	if m.resetErr != nil {
		return m.resetErr
	}
	m.resetCalled = true
	return nil
}

func (m *mockSearchService) Stats(_ context.Context) (*domain.IndexStats, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	if m.stats != nil {
		return m.stats, nil
	}
	return &domain.IndexStats{}, nil
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	content   string
	details   *driving.DocumentDetails
	err       error
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return m.content, m.err
}

func (m *mockDocumentService) GetDetails(_ context.Context, _ string) (*driving.DocumentDetails, error) {
	return m.details, m.err
}

// mockExtractService is a mock implementation of driving.ExtractService.
type mockExtractService struct {
	result   *domain.ExtractResult
	err      error
	lastText string
	lastOp   domain.ExtractOperation
	lastOpts domain.ExtractOptions
}

func (m *mockExtractService) Extract(_ context.Context, text string, op domain.ExtractOperation, opts domain.ExtractOptions) (*domain.ExtractResult, error) {
	m.lastText = text
	m.lastOp = op
	m.lastOpts = opts
	return m.result, m.err
}

func (m *mockExtractService) ExtractBatch(_ context.Context, texts []string, _ domain.ExtractOperation, _ domain.ExtractOptions) []driving.ExtractOutcome {
	outcomes := make([]driving.ExtractOutcome, len(texts))
	for i := range texts {
		outcomes[i] = driving.ExtractOutcome{Result: m.result, Err: m.err}
	}
	return outcomes
}

// mockFetchService is a mock implementation of driving.FetchService.
type mockFetchService struct {
	page     *domain.FetchedPage
	links    []domain.Link
	err      error
	lastURL  string
	lastOpts domain.FetchOptions
}

func (m *mockFetchService) Fetch(_ context.Context, url string, opts domain.FetchOptions) (*domain.FetchedPage, error) {
	m.lastURL = url
	m.lastOpts = opts
	return m.page, m.err
}

func (m *mockFetchService) Links(_ context.Context, url string) ([]domain.Link, error) {
	m.lastURL = url
	return m.links, m.err
}

// mockClassifyService is a mock implementation of driving.ClassifyService.
type mockClassifyService struct {
	result   *domain.IntentResult
	batch    *domain.IntentBatch
	features *domain.EmailFeatures
	err      error
	lastText string
}

func (m *mockClassifyService) Classify(_ context.Context, text string) (*domain.IntentResult, error) {
	m.lastText = text
	return m.result, m.err
}

func (m *mockClassifyService) ClassifyBatch(_ context.Context, _ []string) (*domain.IntentBatch, error) {
	return m.batch, m.err
}

func (m *mockClassifyService) Features(_ context.Context, _ string) (*domain.EmailFeatures, error) {
	return m.features, m.err
}

// mockKPIService is a mock implementation of driving.KPIService.
type mockKPIService struct {
	report      *domain.KPIReport
	err         error
	lastData    string
	lastMetrics []domain.KPIMetric
}

func (m *mockKPIService) Generate(_ context.Context, data string, metrics []domain.KPIMetric) (*domain.KPIReport, error) {
	m.lastData = data
	m.lastMetrics = metrics
	return m.report, m.err
}

// mockChartService is a mock implementation of driving.ChartService.
type mockChartService struct {
	chart   *domain.Chart
	err     error
	lastReq domain.ChartRequest
}

func (m *mockChartService) Render(_ context.Context, req domain.ChartRequest) (*domain.Chart, error) {
	m.lastReq = req
	return m.chart, m.err
}

// mockConvertService is a mock implementation of driving.ConvertService.
type mockConvertService struct {
	result  *domain.ConvertResult
	err     error
	lastReq domain.ConvertRequest
}

func (m *mockConvertService) Convert(_ context.Context, req domain.ConvertRequest) (*domain.ConvertResult, error) {
	m.lastReq = req
	return m.result, m.err
}
