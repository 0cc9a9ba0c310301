package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

func TestNewKPIService(t *testing.T) {
	service := NewKPIService()

	require.NotNil(t, service)
}

func TestKPIService_Generate_EmptyData(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	_, err := service.Generate(ctx, "   ", nil)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "data is empty")
}

func TestKPIService_Generate_InvalidJSON(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	_, err := service.Generate(ctx, "{not json", nil)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestKPIService_Generate_UnknownMetric(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	_, err := service.Generate(ctx, `{"revenue": 100}`, []domain.KPIMetric{"velocity"})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "unknown metric group")
}

func TestKPIService_Generate_CancelledContext(t *testing.T) {
	service := NewKPIService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Generate(ctx, `{"revenue": 100}`, nil)

	require.ErrorIs(t, err, context.Canceled)
}

func TestKPIService_Generate_RevenueScalar(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	data := `{"revenue": 100000, "costs": 60000, "customers": 500}`

	report, err := service.Generate(ctx, data, []domain.KPIMetric{domain.KPIRevenue})

	require.NoError(t, err)
	group := report.KPIs[domain.KPIRevenue]
	require.NotNil(t, group)
	assert.InDelta(t, 100000, group["total_revenue"], 1e-9)
	assert.InDelta(t, 200, group["revenue_per_customer"], 1e-9)
	assert.InDelta(t, 40000, group["profit"], 1e-9)
	assert.InDelta(t, 40, group["profit_margin_percent"], 1e-9)
	assert.Equal(t, 3, report.DataPoints)
}

func TestKPIService_Generate_RevenueSeries(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	data := `{"revenue": [100, 200, 300]}`

	report, err := service.Generate(ctx, data, []domain.KPIMetric{domain.KPIRevenue})

	require.NoError(t, err)
	group := report.KPIs[domain.KPIRevenue]
	require.Len(t, group, 4)
	assert.InDelta(t, 600, group["total_revenue"], 1e-9)
	assert.InDelta(t, 200, group["average_revenue"], 1e-9)
	assert.InDelta(t, 100, group["min_revenue"], 1e-9)
	assert.InDelta(t, 300, group["max_revenue"], 1e-9)

	// Nothing to read a trend from.
	assert.Equal(t, []string{"Insufficient data for trend analysis"}, report.Trends)
}

func TestKPIService_Generate_Growth(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	data := `{
		"current_revenue": 120,
		"previous_revenue": 100,
		"current_customers": 55,
		"previous_customers": 50,
		"monthly_revenue": [10, 20, 25]
	}`

	report, err := service.Generate(ctx, data, []domain.KPIMetric{domain.KPIGrowth})

	require.NoError(t, err)
	group := report.KPIs[domain.KPIGrowth]
	assert.InDelta(t, 20, group["revenue_growth"], 1e-9)
	assert.InDelta(t, 20, group["revenue_growth_rate_percent"], 1e-9)
	assert.InDelta(t, 5, group["customer_growth"], 1e-9)
	assert.InDelta(t, 10, group["customer_growth_rate_percent"], 1e-9)
	assert.InDelta(t, 25, group["recent_monthly_growth_percent"], 1e-9)

	// 20% sits on the boundary: positive but not "strong".
	require.NotEmpty(t, report.Trends)
	assert.Equal(t, "Positive revenue growth of 20.0%", report.Trends[0])
}

func TestKPIService_Generate_StrongGrowthTrend(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	data := `{"current_revenue": 130, "previous_revenue": 100}`

	report, err := service.Generate(ctx, data, []domain.KPIMetric{domain.KPIGrowth})

	require.NoError(t, err)
	require.NotEmpty(t, report.Trends)
	assert.Equal(t, "Strong revenue growth of 30.0%", report.Trends[0])
}

func TestKPIService_Generate_Efficiency(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	data := `{
		"revenue": 200000,
		"investment": 50000,
		"employees": 10,
		"operational_costs": 80000,
		"marketing_costs": 5000,
		"new_customers": 100
	}`

	report, err := service.Generate(ctx, data, []domain.KPIMetric{domain.KPIEfficiency})

	require.NoError(t, err)
	group := report.KPIs[domain.KPIEfficiency]
	assert.InDelta(t, 50, group["cost_per_acquisition"], 1e-9)
	assert.InDelta(t, 2.5, group["operational_efficiency_ratio"], 1e-9)
	assert.InDelta(t, 20000, group["revenue_per_employee"], 1e-9)
	assert.InDelta(t, 300, group["roi_percent"], 1e-9)

	require.NotEmpty(t, report.Trends)
	assert.Equal(t, "Excellent ROI of 300.0%", report.Trends[0])
}

func TestKPIService_Generate_Customer(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	data := `{
		"average_purchase_value": 50,
		"purchase_frequency": 4,
		"customer_lifespan": 3,
		"total_customers": 1000,
		"churned_customers": 50,
		"retained_customers": 950,
		"nps_score": 42
	}`

	report, err := service.Generate(ctx, data, []domain.KPIMetric{domain.KPICustomer})

	require.NoError(t, err)
	group := report.KPIs[domain.KPICustomer]
	assert.InDelta(t, 600, group["customer_lifetime_value"], 1e-9)
	assert.InDelta(t, 5, group["churn_rate_percent"], 1e-9)
	assert.InDelta(t, 95, group["retention_rate_percent"], 1e-9)
	assert.InDelta(t, 42, group["net_promoter_score"], 1e-9)

	require.NotEmpty(t, report.Trends)
	assert.Equal(t, "Healthy churn rate of 5.0%", report.Trends[0])
}

func TestKPIService_Generate_HighChurnTrend(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	data := `{"total_customers": 100, "churned_customers": 25}`

	report, err := service.Generate(ctx, data, []domain.KPIMetric{domain.KPICustomer})

	require.NoError(t, err)
	require.NotEmpty(t, report.Trends)
	assert.Equal(t, "High customer churn rate of 25.0%", report.Trends[0])
}

func TestKPIService_Generate_Operational(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	data := `{
		"cost_of_goods_sold": 500,
		"average_inventory": 100,
		"orders_fulfilled": 98,
		"total_orders": 100,
		"total_response_time": 300,
		"ticket_count": 60
	}`

	report, err := service.Generate(ctx, data, []domain.KPIMetric{domain.KPIOperational})

	require.NoError(t, err)
	group := report.KPIs[domain.KPIOperational]
	assert.InDelta(t, 5, group["inventory_turnover"], 1e-9)
	assert.InDelta(t, 98, group["fulfillment_rate_percent"], 1e-9)
	assert.InDelta(t, 5, group["average_response_time"], 1e-9)
}

func TestKPIService_Generate_DefaultMetrics(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	report, err := service.Generate(ctx, `{"revenue": 100}`, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultKPIMetrics(), report.MetricsAnalyzed)

	// Only revenue produced indicators; empty groups stay absent.
	assert.Contains(t, report.KPIs, domain.KPIRevenue)
	assert.NotContains(t, report.KPIs, domain.KPIGrowth)
	assert.NotContains(t, report.KPIs, domain.KPIEfficiency)
}

func TestKPIService_Generate_ZeroDenominator(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	data := `{"revenue": 100, "customers": 0}`

	report, err := service.Generate(ctx, data, []domain.KPIMetric{domain.KPIRevenue})

	require.NoError(t, err)
	group := report.KPIs[domain.KPIRevenue]
	assert.InDelta(t, 0, group["revenue_per_customer"], 1e-9)
}

func TestKPIService_Generate_NonNumericFieldsCounted(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	data := `{"revenue": 100, "company": "acme", "tags": ["a", "b"]}`

	report, err := service.Generate(ctx, data, []domain.KPIMetric{domain.KPIRevenue})

	require.NoError(t, err)
	assert.Equal(t, 3, report.DataPoints)

	group := report.KPIs[domain.KPIRevenue]
	require.Len(t, group, 1)
	assert.InDelta(t, 100, group["total_revenue"], 1e-9)
}

func TestKPIService_Generate_LossTrend(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	data := `{"revenue": 100, "costs": 150}`

	report, err := service.Generate(ctx, data, []domain.KPIMetric{domain.KPIRevenue})

	require.NoError(t, err)
	require.NotEmpty(t, report.Trends)
	assert.Equal(t, "Operating at a loss with 50.0% negative margin", report.Trends[0])
}

func TestKPIService_Generate_SummaryFormat(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	data := `{"revenue": 100000, "costs": 60000}`

	report, err := service.Generate(ctx, data, []domain.KPIMetric{domain.KPIRevenue})

	require.NoError(t, err)

	want := "Executive KPI Summary:\n" +
		"- Analyzed 3 key performance indicators\n" +
		"- Key insights:\n" +
		"  • Healthy profit margin at 40.0%"
	assert.Equal(t, want, report.Summary)
}

func TestKPIService_Generate_SummaryCapsInsights(t *testing.T) {
	service := NewKPIService()
	ctx := context.Background()

	// Four trend statements: growth, margin, ROI, and churn.
	data := `{
		"revenue": 200,
		"costs": 100,
		"investment": 50,
		"current_revenue": 130,
		"previous_revenue": 100,
		"total_customers": 100,
		"churned_customers": 25
	}`

	report, err := service.Generate(ctx, data, []domain.KPIMetric{
		domain.KPIRevenue, domain.KPIGrowth, domain.KPIEfficiency, domain.KPICustomer,
	})

	require.NoError(t, err)
	require.Len(t, report.Trends, 4)

	// The summary keeps only the first three insights.
	assert.Contains(t, report.Summary, "Strong revenue growth")
	assert.Contains(t, report.Summary, "Healthy profit margin")
	assert.Contains(t, report.Summary, "Excellent ROI")
	assert.NotContains(t, report.Summary, "churn")
}
