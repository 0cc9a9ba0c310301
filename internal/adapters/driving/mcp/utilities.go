package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

// ExtractInput is the input schema for the extract tool.
type ExtractInput struct {
	Text      string `json:"text" jsonschema:"the text to process"`
	Operation string `json:"operation" jsonschema:"one of clean, summarize, chunk, keywords"`
	MaxLength int    `json:"max_length,omitempty" jsonschema:"character budget for summarize (default 500)"`
	TopN      int    `json:"top_n,omitempty" jsonschema:"how many keywords to return (default 10)"`
}

// ExtractOutput is the output schema for the extract tool. Only the
// fields relevant to the operation are populated.
type ExtractOutput struct {
	Operation      string   `json:"operation"`
	Text           string   `json:"text,omitempty"`
	Chunks         []string `json:"chunks,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	WordCount      int      `json:"word_count"`
	OriginalLength int      `json:"original_length"`
}

// FetchInput is the input schema for the fetch tool.
type FetchInput struct {
	URL          string `json:"url" jsonschema:"the URL to fetch"`
	TextOnly     *bool  `json:"text_only,omitempty" jsonschema:"strip markup and return readable text (default true)"`
	IncludeLinks bool   `json:"include_links,omitempty" jsonschema:"also return the page's links"`
	BypassCache  bool   `json:"bypass_cache,omitempty" jsonschema:"force a network fetch even when cached"`
}

// FetchOutput is the output schema for the fetch tool.
type FetchOutput struct {
	URL         string       `json:"url"`
	Title       string       `json:"title,omitempty"`
	StatusCode  int          `json:"status_code"`
	ContentType string       `json:"content_type"`
	Content     string       `json:"content"`
	Links       []LinkOutput `json:"links,omitempty"`
	Cached      bool         `json:"cached"`
}

// LinkOutput is one anchor found on a fetched page.
type LinkOutput struct {
	Text string `json:"text"`
	HRef string `json:"href"`
}

// ClassifyInput is the input schema for the classify tool.
type ClassifyInput struct {
	Text string `json:"text" jsonschema:"the email text to classify"`
}

// ClassifyOutput is the output schema for the classify tool.
type ClassifyOutput struct {
	Intent           string              `json:"intent"`
	Confidence       float64             `json:"confidence"`
	SecondaryIntents []IntentScoreOutput `json:"secondary_intents,omitempty"`
	Explanation      string              `json:"explanation"`
	EmailLength      int                 `json:"email_length"`
	WordCount        int                 `json:"word_count"`
}

// IntentScoreOutput pairs an intent label with its confidence.
type IntentScoreOutput struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// KPIInput is the input schema for the kpi tool.
type KPIInput struct {
	Data    string   `json:"data" jsonschema:"JSON object of business figures, e.g. {\"revenue\": 50000, \"costs\": 30000}"`
	Metrics []string `json:"metrics,omitempty" jsonschema:"metric groups to compute: revenue, growth, efficiency, customer, operational (default revenue, growth, efficiency)"`
}

// KPIOutput is the output schema for the kpi tool.
type KPIOutput struct {
	KPIs            map[string]map[string]float64 `json:"kpis"`
	Trends          []string                      `json:"trends"`
	Summary         string                        `json:"summary"`
	MetricsAnalyzed []string                      `json:"metrics_analyzed"`
	DataPoints      int                           `json:"data_points"`
}

// ChartInput is the input schema for the chart tool.
type ChartInput struct {
	Data      string `json:"data" jsonschema:"tabular data as JSON column arrays, JSON row objects, or CSV with a header"`
	ChartType string `json:"chart_type,omitempty" jsonschema:"bar, line, pie, or scatter (default bar)"`
	XColumn   string `json:"x_column,omitempty" jsonschema:"category or x-value column (default first column)"`
	YColumn   string `json:"y_column,omitempty" jsonschema:"value column (default second column)"`
	Title     string `json:"title,omitempty" jsonschema:"chart heading"`
}

// ChartOutput is the output schema for the chart tool.
type ChartOutput struct {
	Chart  string `json:"chart"`
	Type   string `json:"type"`
	Points int    `json:"points"`
}

// ConvertInput is the input schema for the convert tool.
type ConvertInput struct {
	InputPath    string `json:"input_path" jsonschema:"path of the file to convert"`
	OutputFormat string `json:"output_format" jsonschema:"target format: txt, csv, or md"`
	OutputPath   string `json:"output_path,omitempty" jsonschema:"destination path (default input path with the target extension)"`
}

// ConvertOutput is the output schema for the convert tool.
type ConvertOutput struct {
	OutputPath string `json:"output_path"`
	Format     string `json:"format"`
	Bytes      int    `json:"bytes"`
}

// registerUtilityTools registers the non-search tools for every
// wired utility service.
func (s *Server) registerUtilityTools() {
	if s.ports.Extract != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "extract",
			Description: "Clean, summarize, chunk, or extract keywords from a text",
		}, s.handleExtract)
	}

	if s.ports.Fetch != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "fetch",
			Description: "Fetch a web page or GitHub repository content",
		}, s.handleFetch)
	}

	if s.ports.Classify != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "classify",
			Description: "Classify the intent of an email text",
		}, s.handleClassify)
	}

	if s.ports.KPI != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "kpi",
			Description: "Compute business KPIs from a JSON object of figures",
		}, s.handleKPI)
	}

	if s.ports.Chart != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "chart",
			Description: "Render tabular data as a text chart",
		}, s.handleChart)
	}

	if s.ports.Convert != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "convert",
			Description: "Convert a file between txt, csv, and md formats",
		}, s.handleConvert)
	}
}

// handleExtract handles the extract tool invocation.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	opts := domain.ExtractOptions{
		MaxLength: input.MaxLength,
		TopN:      input.TopN,
	}

	result, err := s.ports.Extract.Extract(ctx, input.Text, domain.ExtractOperation(input.Operation), opts)
	if err != nil {
		return nil, ExtractOutput{}, err
	}

	return nil, ExtractOutput{
		Operation:      string(result.Operation),
		Text:           result.Text,
		Chunks:         result.Chunks,
		Keywords:       result.Keywords,
		WordCount:      result.WordCount,
		OriginalLength: result.OriginalLength,
	}, nil
}

// handleFetch handles the fetch tool invocation.
func (s *Server) handleFetch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchInput,
) (*mcp.CallToolResult, FetchOutput, error) {
	textOnly := true
	if input.TextOnly != nil {
		textOnly = *input.TextOnly
	}

	opts := domain.FetchOptions{
		TextOnly:     textOnly,
		IncludeLinks: input.IncludeLinks,
		BypassCache:  input.BypassCache,
	}

	page, err := s.ports.Fetch.Fetch(ctx, input.URL, opts)
	if err != nil {
		return nil, FetchOutput{}, err
	}

	output := FetchOutput{
		URL:         page.URL,
		Title:       page.Title,
		StatusCode:  page.StatusCode,
		ContentType: page.ContentType,
		Content:     page.Content,
		Cached:      page.FromCache,
	}
	for _, link := range page.Links {
		output.Links = append(output.Links, LinkOutput{Text: link.Text, HRef: link.HRef})
	}

	return nil, output, nil
}

// handleClassify handles the classify tool invocation.
func (s *Server) handleClassify(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	result, err := s.ports.Classify.Classify(ctx, input.Text)
	if err != nil {
		return nil, ClassifyOutput{}, err
	}

	output := ClassifyOutput{
		Intent:      result.Intent,
		Confidence:  result.Confidence,
		Explanation: result.Explanation,
		EmailLength: result.EmailLength,
		WordCount:   result.WordCount,
	}
	for _, sec := range result.Secondary {
		output.SecondaryIntents = append(output.SecondaryIntents, IntentScoreOutput{
			Intent:     sec.Intent,
			Confidence: sec.Confidence,
		})
	}

	return nil, output, nil
}

// handleKPI handles the kpi tool invocation.
func (s *Server) handleKPI(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input KPIInput,
) (*mcp.CallToolResult, KPIOutput, error) {
	var metrics []domain.KPIMetric
	for _, m := range input.Metrics {
		metrics = append(metrics, domain.KPIMetric(m))
	}

	report, err := s.ports.KPI.Generate(ctx, input.Data, metrics)
	if err != nil {
		return nil, KPIOutput{}, err
	}

	output := KPIOutput{
		KPIs:       make(map[string]map[string]float64, len(report.KPIs)),
		Trends:     report.Trends,
		Summary:    report.Summary,
		DataPoints: report.DataPoints,
	}
	for group, kpis := range report.KPIs {
		output.KPIs[string(group)] = kpis
	}
	for _, m := range report.MetricsAnalyzed {
		output.MetricsAnalyzed = append(output.MetricsAnalyzed, string(m))
	}

	return nil, output, nil
}

// handleChart handles the chart tool invocation.
func (s *Server) handleChart(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChartInput,
) (*mcp.CallToolResult, ChartOutput, error) {
	req := domain.ChartRequest{
		Data:    input.Data,
		Type:    domain.ChartType(input.ChartType),
		XColumn: input.XColumn,
		YColumn: input.YColumn,
		Title:   input.Title,
	}

	chart, err := s.ports.Chart.Render(ctx, req)
	if err != nil {
		return nil, ChartOutput{}, err
	}

	return nil, ChartOutput{
		Chart:  chart.Rendering,
		Type:   string(chart.Type),
		Points: chart.Points,
	}, nil
}

// handleConvert handles the convert tool invocation.
func (s *Server) handleConvert(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConvertInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	req := domain.ConvertRequest{
		InputPath:    input.InputPath,
		OutputFormat: domain.ConvertFormat(input.OutputFormat),
		OutputPath:   input.OutputPath,
	}

	result, err := s.ports.Convert.Convert(ctx, req)
	if err != nil {
		return nil, ConvertOutput{}, err
	}

	return nil, ConvertOutput{
		OutputPath: result.OutputPath,
		Format:     string(result.Format),
		Bytes:      result.Bytes,
	}, nil
}
