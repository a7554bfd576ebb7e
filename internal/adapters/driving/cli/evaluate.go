package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/versewell/lumen/internal/core/domain"
)

var evaluateJSON bool

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [type] [slug]",
	Short: "Run the publish quality gate on a record",
	Long: `Evaluates a catalog record against the publish quality gate and
prints the metrics, the 0-100 score and the ordered failure reasons.`,
	Args: cobra.ExactArgs(2),
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if gateService == nil {
		return errors.New("quality gate not configured")
	}

	record, err := loadRecord(cmd, args)
	if err != nil {
		return err
	}

	result := gateService.Evaluate(record)

	if evaluateJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputEvaluateTable(cmd, record, result)
}

func outputEvaluateTable(cmd *cobra.Command, record domain.Record, result domain.QualityResult) error {
	meta := record.Meta()
	cmd.Printf("Record: %s/%s\n", record.EntityType(), meta.Slug)
	cmd.Printf("Score:  %d / 100\n", result.Score)
	if result.OK {
		cmd.Println("Gate:   PASS")
	} else {
		cmd.Println("Gate:   FAIL")
	}
	cmd.Println()

	m := result.Metrics
	cmd.Println("Metrics:")
	cmd.Printf("  Word count:      %d\n", m.WordCount)
	cmd.Printf("  Internal links:  %d\n", m.InternalLinkCount)
	cmd.Printf("  Entity links:    %s\n", yesNo(m.EntityLinksPresent))
	cmd.Printf("  Introduction:    %s\n", yesNo(m.HasIntro))
	cmd.Printf("  Conclusion:      %s\n", yesNo(m.HasConclusion))
	cmd.Printf("  Entity density:  %d\n", m.EntityDensityScore)

	if len(result.Reasons) > 0 {
		cmd.Println()
		cmd.Println("Reasons:")
		for _, reason := range result.Reasons {
			cmd.Printf("  - %s\n", reason)
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
