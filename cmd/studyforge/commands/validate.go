package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studyforge/studyforge/pkg/cli"
	"github.com/studyforge/studyforge/pkg/course"
	"github.com/studyforge/studyforge/pkg/review"
)

var validateCmd = &cobra.Command{
	Use:   "validate <draft-id|file>",
	Short: "Review a course against the rule catalog",
	Long: `Review a course and report findings.

The argument is a saved draft ID, or a path to a course JSON file. Error
findings mark the course invalid and set a non-zero exit status;
suggestions are advisory.

With --check-sources, reference paths recorded on the course are checked
for readability.

Examples:
  studyforge validate 3f2a...
  studyforge validate course.json --check-sources
  studyforge validate 3f2a... --format json -q '.findings'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checkSources, _ := cmd.Flags().GetBool("check-sources")

		c, err := loadCourse(cmd, args[0])
		if err != nil {
			return err
		}

		var report *review.Report
		if checkSources {
			report = review.CheckWithSources(cmd.Context(), c)
		} else {
			report = review.Check(c)
		}

		if outputFmt == "" && outputFile == "" && queryExpr == "" {
			fmt.Print(cli.RenderReport(report, cli.DefaultTheme))
		} else if err := outputResult(report); err != nil {
			return err
		}

		if !report.Valid {
			return fmt.Errorf("course is invalid (%d error finding(s))",
				len(report.Failed(review.SeverityError)))
		}
		return nil
	},
}

// loadCourse resolves the argument as a course file first, then as a draft
// ID.
func loadCourse(cmd *cobra.Command, arg string) (*course.Course, error) {
	if data, err := os.ReadFile(arg); err == nil {
		return course.Decode(string(data))
	}

	store, err := openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()
	d, err := store.Get(cmd.Context(), arg)
	if err != nil {
		return nil, fmt.Errorf("%q is neither a readable file nor a saved draft: %w", arg, err)
	}
	return d.Course, nil
}

func init() {
	validateCmd.Flags().Bool("check-sources", false, "verify reference paths are readable")
}
