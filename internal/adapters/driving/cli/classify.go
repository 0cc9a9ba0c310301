package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var classifyFeatures bool

var classifyCmd = &cobra.Command{
	Use:   "classify [file|-]",
	Short: "Classify an email's intent",
	Long: `Determines what an email is asking for using rule-based pattern
matching. Recognised intents include inquiry, complaint, request,
feedback, and scheduling; unmatched text falls back to general.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyFeatures, "features", false, "also show surface signals (greeting, URLs, questions)")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if classifyService == nil {
		return errors.New("classify service not configured")
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	ctx := context.Background()

	result, err := classifyService.Classify(ctx, text)
	if err != nil {
		return fmt.Errorf("classify failed: %w", err)
	}

	cmd.Printf("Intent: %s (%.0f%% confidence)\n", result.Intent, result.Confidence*100)
	cmd.Printf("  %s\n", result.Explanation)

	if len(result.Secondary) > 0 {
		cmd.Println("\nSecondary intents:")
		for _, s := range result.Secondary {
			cmd.Printf("  %s (%.0f%%)\n", s.Intent, s.Confidence*100)
		}
	}

	cmd.Printf("\nLength: %d chars, %d words\n", result.EmailLength, result.WordCount)

	if classifyFeatures {
		features, err := classifyService.Features(ctx, text)
		if err != nil {
			return fmt.Errorf("feature extraction failed: %w", err)
		}
		cmd.Println("\nFeatures:")
		cmd.Printf("  Greeting:      %s\n", yesNo(features.HasGreeting))
		cmd.Printf("  Closing:       %s\n", yesNo(features.HasClosing))
		cmd.Printf("  Questions:     %d\n", features.QuestionCount)
		cmd.Printf("  Exclamations:  %d\n", features.ExclamationCount)
		cmd.Printf("  Contains URL:  %s\n", yesNo(features.HasURL))
		cmd.Printf("  Contains email: %s\n", yesNo(features.HasEmailAddress))
	}

	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
