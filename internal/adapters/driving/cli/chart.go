package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

var (
	chartType  string
	chartX     string
	chartY     string
	chartTitle string
)

var chartCmd = &cobra.Command{
	Use:   "chart [file|-]",
	Short: "Render data as a terminal chart",
	Long: `Renders tabular data as a text chart. Accepts a JSON object of
column arrays, a JSON array of row objects, or CSV with a header
row. Chart types: bar, line, pie, scatter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChart,
}

func init() {
	chartCmd.Flags().StringVarP(&chartType, "type", "t", "bar", "chart type: bar, line, pie, or scatter")
	chartCmd.Flags().StringVarP(&chartX, "x-column", "x", "", "category/x column (default: first column)")
	chartCmd.Flags().StringVarP(&chartY, "y-column", "y", "", "value column (default: second column)")
	chartCmd.Flags().StringVar(&chartTitle, "title", "", "chart heading")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	if chartService == nil {
		return errors.New("chart service not configured")
	}

	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	ctx := context.Background()

	chart, err := chartService.Render(ctx, domain.ChartRequest{
		Data:    data,
		Type:    domain.ChartType(chartType),
		XColumn: chartX,
		YColumn: chartY,
		Title:   chartTitle,
	})
	if err != nil {
		return fmt.Errorf("chart rendering failed: %w", err)
	}

	cmd.Println(chart.Rendering)
	return nil
}
