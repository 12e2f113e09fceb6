package commands

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/core/validate"
	"github.com/penwyp/go-activity-tracker/internal/presentation/formatter"
)

var (
	validateOutput     string
	validateOverlap    bool
	validateDuplicates bool
	validateThreshold  int
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a batch of activity records",
	Long: `Validates activity records from a JSON file: required fields, time
ranges, duration consistency, category and tag references. Optionally
cross-checks the batch for time overlaps and likely duplicates.

The file holds a JSON array of activity records. Exits non-zero when any
record fails validation.

Examples:
  go-activity-tracker validate activities.json
  go-activity-tracker validate activities.json --check-overlap --check-duplicates
  go-activity-tracker validate activities.json --duplicate-threshold 70 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "text",
		"Output format (text, json)")
	validateCmd.Flags().BoolVar(&validateOverlap, "check-overlap", false,
		"Report time overlaps between records in the batch")
	validateCmd.Flags().BoolVar(&validateDuplicates, "check-duplicates", false,
		"Report likely duplicates within the batch")
	validateCmd.Flags().IntVar(&validateThreshold, "duplicate-threshold", validate.DefaultDuplicateThreshold,
		"Similarity score at or above which records count as duplicates (0-100)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	initRuntime()

	if validateOutput != "text" && validateOutput != "json" {
		return fmt.Errorf("invalid output format %q: must be 'text' or 'json'", validateOutput)
	}
	if validateThreshold < 0 || validateThreshold > 100 {
		return fmt.Errorf("duplicate-threshold must be between 0 and 100")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	var activities []model.Activity
	if err := sonic.Unmarshal(data, &activities); err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	report := buildValidationReport(activities)

	// Errors past this point are the batch's fault, not a usage mistake
	cmd.SilenceUsage = true

	if validateOutput == "json" {
		encoder := sonic.ConfigDefault.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return err
		}
	} else {
		fmt.Print(formatter.RenderValidationReport(report))
	}

	if report.HasFailures() {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func buildValidationReport(activities []model.Activity) *formatter.ValidationReport {
	report := &formatter.ValidationReport{
		Results: validate.ValidateBatch(activities),
	}

	if validateOverlap {
		report.Overlaps = make(map[string]validate.OverlapResult, len(activities))
		for i, activity := range activities {
			result := validate.CheckOverlap(activity, activities)
			if result.HasOverlap {
				report.Overlaps[batchKey(activity, i)] = result
			}
		}
	}

	if validateDuplicates {
		report.Duplicates = make(map[string]validate.DuplicateResult, len(activities))
		for i, activity := range activities {
			result := validate.DetectDuplicates(activity, activities, validateThreshold)
			if result.HasDuplicates {
				report.Duplicates[batchKey(activity, i)] = result
			}
		}
	}

	return report
}

// batchKey mirrors the keying used by ValidateBatch so the report sections
// line up.
func batchKey(activity model.Activity, index int) string {
	if activity.ID != "" {
		return activity.ID
	}
	return fmt.Sprintf("activity[%d]", index)
}
