package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
)

var (
	convertTo     string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a file to another text format",
	Long: `Converts a file between text-shaped formats. The source format
comes from the input extension; supported targets are txt, csv,
and md.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "", "target format: txt, csv, or md (required)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output path (default: input path with the target extension)")
	_ = convertCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if convertService == nil {
		return errors.New("convert service not configured")
	}

	format := domain.ConvertFormat(convertTo)
	if !format.IsValid() {
		return fmt.Errorf("unsupported target format %q", convertTo)
	}

	ctx := context.Background()

	result, err := convertService.Convert(ctx, domain.ConvertRequest{
		InputPath:    args[0],
		OutputFormat: format,
		OutputPath:   convertOutput,
	})
	if err != nil {
		return fmt.Errorf("convert failed: %w", err)
	}

	cmd.Printf("Wrote %s (%d bytes, %s).\n", result.OutputPath, result.Bytes, result.Format)
	return nil
}
