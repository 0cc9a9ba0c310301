package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

var kpiMetrics []string

var kpiCmd = &cobra.Command{
	Use:   "kpi [file|-]",
	Short: "Compute KPIs from business data",
	Long: `Parses a JSON object of business figures (revenue, costs, customer
counts, and so on) and computes key performance indicators.

Available metric groups: revenue, growth, efficiency, customer,
operational. The default is revenue, growth, and efficiency.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKPI,
}

func init() {
	kpiCmd.Flags().StringSliceVarP(&kpiMetrics, "metrics", "m", nil, "metric groups to compute")
	rootCmd.AddCommand(kpiCmd)
}

func runKPI(cmd *cobra.Command, args []string) error {
	if kpiService == nil {
		return errors.New("kpi service not configured")
	}

	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	var metrics []domain.KPIMetric
	for _, m := range kpiMetrics {
		metric := domain.KPIMetric(m)
		if !metric.IsValid() {
			return fmt.Errorf("unknown metric group %q", m)
		}
		metrics = append(metrics, metric)
	}

	ctx := context.Background()

	report, err := kpiService.Generate(ctx, data, metrics)
	if err != nil {
		return fmt.Errorf("kpi generation failed: %w", err)
	}

	cmd.Println(report.Summary)
	cmd.Println()

	for _, group := range report.MetricsAnalyzed {
		indicators, ok := report.KPIs[group]
		if !ok {
			continue
		}
		cmd.Printf("[%s]\n", group)
		names := make([]string, 0, len(indicators))
		for name := range indicators {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cmd.Printf("  %-28s %.2f\n", name, indicators[name])
		}
		cmd.Println()
	}

	if len(report.Trends) > 0 {
		cmd.Println("Trends:")
		for _, trend := range report.Trends {
			cmd.Printf("  - %s\n", trend)
		}
	}

	return nil
}
