package domain

// KPIMetric names a group of related key performance indicators.
type KPIMetric string

const (
	// KPIRevenue covers totals, margins, and per-customer revenue.
	KPIRevenue KPIMetric = "revenue"
	// KPIGrowth covers period-over-period revenue and customer growth.
	KPIGrowth KPIMetric = "growth"
	// KPIEfficiency covers acquisition cost, ROI, and operating ratios.
	KPIEfficiency KPIMetric = "efficiency"
	// KPICustomer covers lifetime value, churn, and retention.
	KPICustomer KPIMetric = "customer"
	// KPIOperational covers inventory, fulfilment, and response times.
	KPIOperational KPIMetric = "operational"
)

// IsValid returns true for a known metric group.
func (m KPIMetric) IsValid() bool {
	switch m {
	case KPIRevenue, KPIGrowth, KPIEfficiency, KPICustomer, KPIOperational:
		return true
	default:
		return false
	}
}

// DefaultKPIMetrics returns the groups analysed when the caller
// does not choose.
func DefaultKPIMetrics() []KPIMetric {
	return []KPIMetric{KPIRevenue, KPIGrowth, KPIEfficiency}
}

// KPIGroup maps indicator names to computed values within one
// metric group.
type KPIGroup map[string]float64

// KPIReport is the outcome of a KPI analysis run.
type KPIReport struct {
	// KPIs holds the computed indicators keyed by metric group.
	// Groups with no applicable input figures are absent.
	KPIs map[KPIMetric]KPIGroup

	// Trends lists human-readable trend statements derived from
	// the computed indicators.
	Trends []string

	// Summary is an executive summary of the analysis.
	Summary string

	// MetricsAnalyzed lists the groups that were requested.
	MetricsAnalyzed []KPIMetric

	// DataPoints is the number of input figures provided.
	DataPoints int
}
