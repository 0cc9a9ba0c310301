package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driving"
	"github.com/loupe-labs/loupe-cli/internal/logger"
)

// Ensure ChartService implements the interface.
var _ driving.ChartService = (*ChartService)(nil)

// DefaultChartTitle is used when the request carries no title.
const DefaultChartTitle = "Data Visualization"

const (
	maxBarWidth    = 40
	plotHeight     = 8
	scatterWidth   = 40
	chartIndent    = "  "
	barGlyph       = "█"
	pointGlyph     = "●"
	swatchGlyph    = "■"
	axisVertical   = "│"
	axisCorner     = "└"
	axisHorizontal = "─"
)

// Chart styles. The palette cycles per series entry; lipgloss drops
// the colour codes when stdout is not a terminal.
var (
	chartTitleStyle = lipgloss.NewStyle().Bold(true)
	chartAxisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	chartLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	chartPalette    = []lipgloss.Color{
		"#7C3AED", // purple
		"#06B6D4", // cyan
		"#A6E3A1", // green
		"#F9E2AF", // yellow
		"#F38BA8", // red
		"#89B4FA", // blue
	}
)

// ChartService renders tabular data as terminal charts.
type ChartService struct{}

// NewChartService creates a new chart service.
func NewChartService() *ChartService {
	return &ChartService{}
}

// Render parses the request's data and renders it in the requested
// style.
func (s *ChartService) Render(ctx context.Context, req domain.ChartRequest) (*domain.Chart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chartType := req.Type
	if chartType == "" {
		chartType = domain.ChartBar
	}
	if !chartType.IsValid() {
		return nil, fmt.Errorf("%w: unknown chart type %q", domain.ErrInvalidInput, chartType)
	}

	table, err := parseChartTable(req.Data)
	if err != nil {
		return nil, err
	}
	if table.rows == 0 {
		return nil, fmt.Errorf("%w: data is empty", domain.ErrInvalidInput)
	}

	xColumn, yColumn := resolveColumns(table, req.XColumn, req.YColumn)
	if !table.hasColumn(xColumn) {
		return nil, fmt.Errorf("%w: column %q not found in data", domain.ErrInvalidInput, xColumn)
	}
	if !table.hasColumn(yColumn) {
		return nil, fmt.Errorf("%w: column %q not found in data", domain.ErrInvalidInput, yColumn)
	}

	values, err := table.numbers(yColumn)
	if err != nil {
		return nil, err
	}
	labels := table.labels(xColumn)

	title := req.Title
	if title == "" {
		title = DefaultChartTitle
	}

	var body string
	switch chartType {
	case domain.ChartBar:
		body = renderBarChart(labels, values)
	case domain.ChartLine:
		body = renderLineChart(labels, values)
	case domain.ChartPie:
		body = renderPieChart(labels, values)
	case domain.ChartScatter:
		// Non-numeric x values fall back to their row index.
		xs, xErr := table.numbers(xColumn)
		if xErr != nil {
			xs = make([]float64, len(values))
			for i := range xs {
				xs[i] = float64(i)
			}
		}
		body = renderScatterChart(xs, values)
	}

	logger.Debug("Chart: type=%s points=%d x=%s y=%s", chartType, table.rows, xColumn, yColumn)

	return &domain.Chart{
		Title:     title,
		Type:      chartType,
		Rendering: chartTitleStyle.Render(title) + "\n\n" + body,
		Points:    table.rows,
	}, nil
}

// resolveColumns applies the default column selection: x is the first
// column, y the second, or the first again when only one exists.
func resolveColumns(table *chartTable, x, y string) (string, string) {
	if x == "" && len(table.columns) > 0 {
		x = table.columns[0]
	}
	if y == "" {
		if len(table.columns) > 1 {
			y = table.columns[1]
		} else if len(table.columns) > 0 {
			y = table.columns[0]
		}
	}
	return x, y
}

// chartTable is parsed tabular data: named columns of string cells,
// in document order.
type chartTable struct {
	columns []string
	cells   map[string][]string
	rows    int
}

func (t *chartTable) hasColumn(name string) bool {
	_, ok := t.cells[name]
	return ok
}

func (t *chartTable) labels(name string) []string {
	return t.cells[name]
}

// numbers parses a column as floats.
func (t *chartTable) numbers(name string) ([]float64, error) {
	cells := t.cells[name]
	values := make([]float64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q is not numeric (row %d: %q)",
				domain.ErrInvalidInput, name, i, cell)
		}
		values[i] = v
	}
	return values, nil
}

// parseChartTable accepts a JSON object of column arrays, a JSON array
// of row objects, or CSV with a header row. Data that parses as JSON
// but has the wrong shape is rejected without a CSV attempt.
func parseChartTable(data string) (*chartTable, error) {
	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: data is empty", domain.ErrInvalidInput)
	}

	if json.Valid([]byte(trimmed)) {
		return parseJSONTable(trimmed)
	}
	return parseCSVTable(trimmed)
}

func parseJSONTable(data string) (*chartTable, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", domain.ErrInvalidInput, err)
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, fmt.Errorf("%w: JSON data must be an object of column arrays or an array of row objects", domain.ErrInvalidInput)
	}

	switch delim {
	case '{':
		return parseColumnArrays(dec)
	case '[':
		return parseRowObjects(dec)
	default:
		return nil, fmt.Errorf("%w: JSON data must be an object of column arrays or an array of row objects", domain.ErrInvalidInput)
	}
}

// parseColumnArrays reads {"col": [v, ...], ...} preserving key order.
func parseColumnArrays(dec *json.Decoder) (*chartTable, error) {
	table := &chartTable{cells: make(map[string][]string)}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: invalid JSON: %v", domain.ErrInvalidInput, err)
		}
		key, _ := keyTok.(string)

		var values []any
		if err := dec.Decode(&values); err != nil {
			return nil, fmt.Errorf("%w: column %q must be an array", domain.ErrInvalidInput, key)
		}

		cells := make([]string, len(values))
		for i, v := range values {
			cell, err := cellString(v)
			if err != nil {
				return nil, fmt.Errorf("%w: column %q row %d: %v", domain.ErrInvalidInput, key, i, err)
			}
			cells[i] = cell
		}

		if len(table.columns) > 0 && len(cells) != table.rows {
			return nil, fmt.Errorf("%w: column %q has %d values, expected %d",
				domain.ErrInvalidInput, key, len(cells), table.rows)
		}
		table.columns = append(table.columns, key)
		table.cells[key] = cells
		table.rows = len(cells)
	}

	return table, nil
}

// parseRowObjects reads [{"col": v, ...}, ...]. Column order follows
// first appearance; missing cells become empty strings.
func parseRowObjects(dec *json.Decoder) (*chartTable, error) {
	table := &chartTable{cells: make(map[string][]string)}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil || tok != json.Delim('{') {
			return nil, fmt.Errorf("%w: JSON array elements must be row objects", domain.ErrInvalidInput)
		}

		rowValues := make(map[string]string)
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("%w: invalid JSON: %v", domain.ErrInvalidInput, err)
			}
			key, _ := keyTok.(string)

			var value any
			if err := dec.Decode(&value); err != nil {
				return nil, fmt.Errorf("%w: invalid JSON: %v", domain.ErrInvalidInput, err)
			}
			cell, err := cellString(value)
			if err != nil {
				return nil, fmt.Errorf("%w: column %q row %d: %v", domain.ErrInvalidInput, key, table.rows, err)
			}

			if !table.hasColumn(key) {
				table.columns = append(table.columns, key)
				table.cells[key] = nil
			}
			rowValues[key] = cell
		}
		if _, err := dec.Token(); err != nil { // closing brace
			return nil, fmt.Errorf("%w: invalid JSON: %v", domain.ErrInvalidInput, err)
		}

		for _, col := range table.columns {
			for len(table.cells[col]) < table.rows {
				table.cells[col] = append(table.cells[col], "")
			}
			table.cells[col] = append(table.cells[col], rowValues[col])
		}
		table.rows++
	}

	return table, nil
}

func parseCSVTable(data string) (*chartTable, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: data is neither valid JSON nor CSV: %v", domain.ErrInvalidInput, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: data is empty", domain.ErrInvalidInput)
	}

	table := &chartTable{cells: make(map[string][]string)}
	for _, name := range records[0] {
		name = strings.TrimSpace(name)
		table.columns = append(table.columns, name)
		table.cells[name] = nil
	}

	for _, record := range records[1:] {
		for i, col := range table.columns {
			cell := ""
			if i < len(record) {
				cell = record[i]
			}
			table.cells[col] = append(table.cells[col], cell)
		}
		table.rows++
	}

	return table, nil
}

// cellString renders one scalar JSON value as cell text.
func cellString(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		return "", fmt.Errorf("unsupported value %v", v)
	}
}

func renderBarChart(labels []string, values []float64) string {
	labelWidth := 0
	for _, label := range labels {
		if len(label) > labelWidth {
			labelWidth = len(label)
		}
	}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}

	var b strings.Builder
	for i, v := range values {
		width := 0
		if maxVal > 0 && v > 0 {
			width = int(math.Round(v / maxVal * maxBarWidth))
			if width == 0 {
				width = 1
			}
		}
		bar := seriesStyle(i).Render(strings.Repeat(barGlyph, width))
		b.WriteString(fmt.Sprintf("%s%-*s  %s %s\n",
			chartIndent, labelWidth, labels[i], bar, formatChartValue(v)))
	}
	return b.String()
}

func renderLineChart(labels []string, values []float64) string {
	minVal, maxVal := valueRange(values)
	span := maxVal - minVal
	if span == 0 {
		span = 1
	}

	width := 2*len(values) - 1
	grid := newPlotGrid(plotHeight, width)
	for i, v := range values {
		row := int(math.Round((maxVal - v) / span * float64(plotHeight-1)))
		grid[row][2*i] = []rune(pointGlyph)[0]
	}

	return renderPlot(grid, formatChartValue(maxVal), formatChartValue(minVal), firstLast(labels))
}

func renderScatterChart(xs, ys []float64) string {
	minX, maxX := valueRange(xs)
	minY, maxY := valueRange(ys)
	spanX := maxX - minX
	if spanX == 0 {
		spanX = 1
	}
	spanY := maxY - minY
	if spanY == 0 {
		spanY = 1
	}

	grid := newPlotGrid(plotHeight, scatterWidth)
	for i := range xs {
		col := int(math.Round((xs[i] - minX) / spanX * float64(scatterWidth-1)))
		row := int(math.Round((maxY - ys[i]) / spanY * float64(plotHeight-1)))
		grid[row][col] = []rune(pointGlyph)[0]
	}

	xCaption := []string{formatChartValue(minX), formatChartValue(maxX)}
	return renderPlot(grid, formatChartValue(maxY), formatChartValue(minY), xCaption)
}

func renderPieChart(labels []string, values []float64) string {
	total := 0.0
	for _, v := range values {
		total += v
	}

	labelWidth := 0
	for _, label := range labels {
		if len(label) > labelWidth {
			labelWidth = len(label)
		}
	}

	var b strings.Builder
	for i, v := range values {
		share := safeDivide(v*100, total)
		swatch := seriesStyle(i).Render(swatchGlyph)
		b.WriteString(fmt.Sprintf("%s%s %-*s  %5.1f%% (%s)\n",
			chartIndent, swatch, labelWidth, labels[i], share, formatChartValue(v)))
	}
	return b.String()
}

func newPlotGrid(height, width int) [][]rune {
	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = make([]rune, width)
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}
	return grid
}

// renderPlot frames a dot grid with a y-axis labelled at its extremes
// and an x caption row spread under the axis.
func renderPlot(grid [][]rune, topLabel, bottomLabel string, xCaption []string) string {
	gutter := len(topLabel)
	if len(bottomLabel) > gutter {
		gutter = len(bottomLabel)
	}

	var b strings.Builder
	for r, row := range grid {
		label := ""
		switch r {
		case 0:
			label = topLabel
		case len(grid) - 1:
			label = bottomLabel
		}
		b.WriteString(fmt.Sprintf("%s%*s %s %s\n",
			chartIndent, gutter, label,
			chartAxisStyle.Render(axisVertical),
			chartLabelStyle.Render(string(row))))
	}

	width := len(grid[0])
	b.WriteString(fmt.Sprintf("%s%*s %s\n",
		chartIndent, gutter, "",
		chartAxisStyle.Render(axisCorner+strings.Repeat(axisHorizontal, width))))

	if len(xCaption) == 2 && (xCaption[0] != "" || xCaption[1] != "") {
		gap := width - len(xCaption[0]) - len(xCaption[1])
		if gap < 1 {
			gap = 1
		}
		b.WriteString(fmt.Sprintf("%s%*s  %s%s%s\n",
			chartIndent, gutter, "",
			xCaption[0], strings.Repeat(" ", gap), xCaption[1]))
	}

	return b.String()
}

func seriesStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(chartPalette[i%len(chartPalette)])
}

func formatChartValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func valueRange(values []float64) (float64, float64) {
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

func firstLast(labels []string) []string {
	if len(labels) == 0 {
		return nil
	}
	if len(labels) == 1 {
		return []string{labels[0], ""}
	}
	return []string{labels[0], labels[len(labels)-1]}
}
