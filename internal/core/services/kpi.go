package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driving"
	"github.com/loupe-labs/loupe-cli/internal/logger"
)

// Ensure KPIService implements the interface.
var _ driving.KPIService = (*KPIService)(nil)

// maxSummaryTrends bounds the executive summary's insight list.
const maxSummaryTrends = 3

// KPIService computes key performance indicators from JSON business
// figures.
type KPIService struct{}

// NewKPIService creates a new KPI service.
func NewKPIService() *KPIService {
	return &KPIService{}
}

// Generate parses a JSON object of business figures and computes the
// requested metric groups. Nil metrics means the defaults.
func (s *KPIService) Generate(ctx context.Context, data string, metrics []domain.KPIMetric) (*domain.KPIReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(data) == "" {
		return nil, fmt.Errorf("%w: data is empty", domain.ErrInvalidInput)
	}

	figures, dataPoints, err := parseFigures(data)
	if err != nil {
		return nil, err
	}

	if len(metrics) == 0 {
		metrics = domain.DefaultKPIMetrics()
	}
	for _, metric := range metrics {
		if !metric.IsValid() {
			return nil, fmt.Errorf("%w: unknown metric group %q", domain.ErrInvalidInput, metric)
		}
	}

	report := &domain.KPIReport{
		KPIs:            make(map[domain.KPIMetric]domain.KPIGroup),
		MetricsAnalyzed: metrics,
		DataPoints:      dataPoints,
	}

	for _, metric := range metrics {
		var group domain.KPIGroup
		switch metric {
		case domain.KPIRevenue:
			group = revenueKPIs(figures)
		case domain.KPIGrowth:
			group = growthKPIs(figures)
		case domain.KPIEfficiency:
			group = efficiencyKPIs(figures)
		case domain.KPICustomer:
			group = customerKPIs(figures)
		case domain.KPIOperational:
			group = operationalKPIs(figures)
		}
		if len(group) > 0 {
			report.KPIs[metric] = group
		}
	}

	report.Trends = identifyTrends(report.KPIs)
	report.Summary = buildSummary(countIndicators(report.KPIs), report.Trends)

	logger.Debug("KPI: groups=%d indicators=%d trends=%d",
		len(report.KPIs), countIndicators(report.KPIs), len(report.Trends))

	return report, nil
}

// figure is one parsed business figure: a scalar or a number series.
type figure struct {
	values []float64
	isList bool
}

// scalar collapses the figure to a single number. Series are summed.
func (f figure) scalar() float64 {
	if f.isList {
		return f.sum()
	}
	return f.values[0]
}

func (f figure) sum() float64 {
	total := 0.0
	for _, v := range f.values {
		total += v
	}
	return total
}

func (f figure) min() float64 {
	lowest := f.values[0]
	for _, v := range f.values[1:] {
		if v < lowest {
			lowest = v
		}
	}
	return lowest
}

func (f figure) max() float64 {
	highest := f.values[0]
	for _, v := range f.values[1:] {
		if v > highest {
			highest = v
		}
	}
	return highest
}

// parseFigures decodes the input into named figures. Non-numeric
// fields are ignored but still count as data points.
func parseFigures(data string) (map[string]figure, int, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: invalid JSON: %v", domain.ErrInvalidInput, err)
	}

	figures := make(map[string]figure, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case float64:
			figures[key] = figure{values: []float64{v}}
		case []any:
			values := make([]float64, 0, len(v))
			numeric := true
			for _, item := range v {
				num, ok := item.(float64)
				if !ok {
					numeric = false
					break
				}
				values = append(values, num)
			}
			if numeric && len(values) > 0 {
				figures[key] = figure{values: values, isList: true}
			}
		}
	}

	return figures, len(raw), nil
}

// safeDivide returns zero instead of dividing by zero.
func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func revenueKPIs(figures map[string]figure) domain.KPIGroup {
	group := domain.KPIGroup{}

	revenue, ok := figures["revenue"]
	if !ok {
		return group
	}

	if revenue.isList {
		group["total_revenue"] = revenue.sum()
		group["average_revenue"] = revenue.sum() / float64(len(revenue.values))
		group["min_revenue"] = revenue.min()
		group["max_revenue"] = revenue.max()
	} else {
		group["total_revenue"] = revenue.scalar()
	}

	if customers, ok := figures["customers"]; ok {
		group["revenue_per_customer"] = safeDivide(revenue.scalar(), customers.scalar())
	}

	if costs, ok := figures["costs"]; ok {
		profit := revenue.scalar() - costs.scalar()
		group["profit"] = profit
		group["profit_margin_percent"] = safeDivide(profit*100, revenue.scalar())
	}

	return group
}

func growthKPIs(figures map[string]figure) domain.KPIGroup {
	group := domain.KPIGroup{}

	if current, ok := figures["current_revenue"]; ok {
		if previous, ok := figures["previous_revenue"]; ok {
			growth := current.scalar() - previous.scalar()
			group["revenue_growth"] = growth
			group["revenue_growth_rate_percent"] = safeDivide(growth*100, previous.scalar())
		}
	}

	if current, ok := figures["current_customers"]; ok {
		if previous, ok := figures["previous_customers"]; ok {
			growth := current.scalar() - previous.scalar()
			group["customer_growth"] = growth
			group["customer_growth_rate_percent"] = safeDivide(growth*100, previous.scalar())
		}
	}

	if monthly, ok := figures["monthly_revenue"]; ok && monthly.isList && len(monthly.values) >= 2 {
		last := monthly.values[len(monthly.values)-1]
		previous := monthly.values[len(monthly.values)-2]
		group["recent_monthly_growth_percent"] = safeDivide((last-previous)*100, previous)
	}

	return group
}

func efficiencyKPIs(figures map[string]figure) domain.KPIGroup {
	group := domain.KPIGroup{}

	if costs, ok := figures["marketing_costs"]; ok {
		if acquired, ok := figures["new_customers"]; ok {
			group["cost_per_acquisition"] = safeDivide(costs.scalar(), acquired.scalar())
		}
	}

	revenue, hasRevenue := figures["revenue"]

	if costs, ok := figures["operational_costs"]; ok && hasRevenue {
		group["operational_efficiency_ratio"] = safeDivide(revenue.scalar(), costs.scalar())
	}

	if employees, ok := figures["employees"]; ok && hasRevenue {
		group["revenue_per_employee"] = safeDivide(revenue.scalar(), employees.scalar())
	}

	if investment, ok := figures["investment"]; ok && hasRevenue {
		group["roi_percent"] = safeDivide((revenue.scalar()-investment.scalar())*100, investment.scalar())
	}

	return group
}

func customerKPIs(figures map[string]figure) domain.KPIGroup {
	group := domain.KPIGroup{}

	purchase, hasPurchase := figures["average_purchase_value"]
	frequency, hasFrequency := figures["purchase_frequency"]
	lifespan, hasLifespan := figures["customer_lifespan"]
	if hasPurchase && hasFrequency && hasLifespan {
		group["customer_lifetime_value"] = purchase.scalar() * frequency.scalar() * lifespan.scalar()
	}

	total, hasTotal := figures["total_customers"]

	if churned, ok := figures["churned_customers"]; ok && hasTotal {
		group["churn_rate_percent"] = safeDivide(churned.scalar()*100, total.scalar())
	}

	if retained, ok := figures["retained_customers"]; ok && hasTotal {
		group["retention_rate_percent"] = safeDivide(retained.scalar()*100, total.scalar())
	}

	if nps, ok := figures["nps_score"]; ok {
		group["net_promoter_score"] = nps.scalar()
	}

	return group
}

func operationalKPIs(figures map[string]figure) domain.KPIGroup {
	group := domain.KPIGroup{}

	if cogs, ok := figures["cost_of_goods_sold"]; ok {
		if inventory, ok := figures["average_inventory"]; ok {
			group["inventory_turnover"] = safeDivide(cogs.scalar(), inventory.scalar())
		}
	}

	if fulfilled, ok := figures["orders_fulfilled"]; ok {
		if total, ok := figures["total_orders"]; ok {
			group["fulfillment_rate_percent"] = safeDivide(fulfilled.scalar()*100, total.scalar())
		}
	}

	if responseTime, ok := figures["total_response_time"]; ok {
		if tickets, ok := figures["ticket_count"]; ok {
			group["average_response_time"] = safeDivide(responseTime.scalar(), tickets.scalar())
		}
	}

	return group
}

// identifyTrends derives human-readable statements from the computed
// indicators. The thresholds are fixed business conventions.
func identifyTrends(kpis map[domain.KPIMetric]domain.KPIGroup) []string {
	var trends []string

	if rate, ok := kpis[domain.KPIGrowth]["revenue_growth_rate_percent"]; ok {
		switch {
		case rate > 20:
			trends = append(trends, fmt.Sprintf("Strong revenue growth of %.1f%%", rate))
		case rate > 0:
			trends = append(trends, fmt.Sprintf("Positive revenue growth of %.1f%%", rate))
		default:
			trends = append(trends, fmt.Sprintf("Revenue decline of %.1f%%", -rate))
		}
	}

	if margin, ok := kpis[domain.KPIRevenue]["profit_margin_percent"]; ok {
		switch {
		case margin > 20:
			trends = append(trends, fmt.Sprintf("Healthy profit margin at %.1f%%", margin))
		case margin > 0:
			trends = append(trends, fmt.Sprintf("Modest profit margin at %.1f%%", margin))
		default:
			trends = append(trends, fmt.Sprintf("Operating at a loss with %.1f%% negative margin", -margin))
		}
	}

	if roi, ok := kpis[domain.KPIEfficiency]["roi_percent"]; ok {
		switch {
		case roi > 100:
			trends = append(trends, fmt.Sprintf("Excellent ROI of %.1f%%", roi))
		case roi > 0:
			trends = append(trends, fmt.Sprintf("Positive ROI of %.1f%%", roi))
		}
	}

	if churn, ok := kpis[domain.KPICustomer]["churn_rate_percent"]; ok {
		if churn > 10 {
			trends = append(trends, fmt.Sprintf("High customer churn rate of %.1f%%", churn))
		} else {
			trends = append(trends, fmt.Sprintf("Healthy churn rate of %.1f%%", churn))
		}
	}

	if len(trends) == 0 {
		return []string{"Insufficient data for trend analysis"}
	}
	return trends
}

// buildSummary renders the executive summary block.
func buildSummary(kpiCount int, trends []string) string {
	parts := []string{
		"Executive KPI Summary:",
		fmt.Sprintf("- Analyzed %d key performance indicators", kpiCount),
	}

	if len(trends) > 0 {
		parts = append(parts, "- Key insights:")
		for _, trend := range trends[:min(maxSummaryTrends, len(trends))] {
			parts = append(parts, "  • "+trend)
		}
	}

	return strings.Join(parts, "\n")
}

// countIndicators totals the indicators across all groups.
func countIndicators(kpis map[domain.KPIMetric]domain.KPIGroup) int {
	count := 0
	for _, group := range kpis {
		count += len(group)
	}
	return count
}
