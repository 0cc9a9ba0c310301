package domain

// ChartType selects the rendering style for a chart.
type ChartType string

const (
	// ChartBar renders scaled horizontal bars per category.
	ChartBar ChartType = "bar"
	// ChartLine renders values as a dot grid over the value range.
	ChartLine ChartType = "line"
	// ChartPie renders a percentage legend with share swatches.
	ChartPie ChartType = "pie"
	// ChartScatter renders x/y pairs on a two-dimensional grid.
	ChartScatter ChartType = "scatter"
)

// IsValid returns true for a known chart type.
func (t ChartType) IsValid() bool {
	switch t {
	case ChartBar, ChartLine, ChartPie, ChartScatter:
		return true
	default:
		return false
	}
}

// ChartTypes lists the supported chart types in display order.
func ChartTypes() []ChartType {
	return []ChartType{ChartBar, ChartLine, ChartPie, ChartScatter}
}

// ChartRequest describes a chart to render.
type ChartRequest struct {
	// Data is the tabular input: a JSON object of column arrays,
	// a JSON array of row objects, or CSV with a header row.
	Data string

	// Type is the chart style. Defaults to bar.
	Type ChartType

	// XColumn names the column of categories or x values.
	// Defaults to the first column.
	XColumn string

	// YColumn names the column of values. Defaults to the second
	// column, or the first when only one exists.
	YColumn string

	// Title is the chart heading.
	Title string
}

// Chart is a rendered chart ready for a terminal or text transport.
type Chart struct {
	// Title is the chart heading.
	Title string

	// Type is the rendering style used.
	Type ChartType

	// Rendering is the chart as styled text lines.
	Rendering string

	// Points is the number of data points plotted.
	Points int
}
