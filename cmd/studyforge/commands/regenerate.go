package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studyforge/studyforge/pkg/author"
	"github.com/studyforge/studyforge/pkg/cli"
	"github.com/studyforge/studyforge/pkg/course"
)

var regenerateCmd = &cobra.Command{
	Use:   "regenerate <draft-id> [instructions]",
	Short: "Regenerate targeted sections of a saved draft",
	Long: `Regenerate sections of a draft in place.

Sections are addressed by 1-based position in document order, counting
across module boundaries. Without --sections every section is redone.
Untargeted sections and course metadata are left untouched.

Examples:
  studyforge regenerate 3f2a... --sections 2,4 "make the exercises harder"
  studyforge regenerate 3f2a... --all --refs notes/feedback.md
  studyforge regenerate 3f2a... -f request.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reqFile, _ := cmd.Flags().GetString("file")
		sections, _ := cmd.Flags().GetIntSlice("sections")
		all, _ := cmd.Flags().GetBool("all")
		refs, _ := cmd.Flags().GetStringSlice("refs")

		var req cli.GenerateRequest
		if reqFile != "" {
			if err := cli.LoadRequest(reqFile, &req); err != nil {
				return err
			}
		}
		if len(args) == 2 {
			req.Prompt = args[1]
		}
		if len(sections) > 0 {
			req.Sections = sections
		}
		if len(refs) > 0 {
			req.References = append(req.References, refs...)
		}

		var targets course.Targets
		switch {
		case all:
			targets = course.AllSections()
		case len(req.Sections) > 0:
			targets = course.SectionIndices(req.Sections...)
		default:
			return fmt.Errorf("no sections targeted (use --sections, --all or a request file)")
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		d, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		gc, err := getContext()
		if err != nil {
			return err
		}
		sess, err := newSession(cmd.Context(), gc)
		if err != nil {
			return err
		}

		report, err := author.Regenerate(cmd.Context(), sess, d.Course, targets, req.Prompt, req.References)
		if err != nil {
			return err
		}
		if report.Mismatch() {
			missing := make([]string, len(report.Missing))
			for i, flat := range report.Missing {
				missing[i] = fmt.Sprintf("%d", flat)
			}
			cli.PrintWarning("updated %d of %d sections; unresolved: %s",
				report.Updated, report.Requested, strings.Join(missing, ", "))
		} else {
			cli.PrintSuccess("Updated %d section(s)", report.Updated)
		}

		if err := store.Put(cmd.Context(), d); err != nil {
			return err
		}
		return outputResult(d.Course)
	},
}

func init() {
	regenerateCmd.Flags().StringP("file", "f", "", "request file (YAML or JSON, - for stdin)")
	regenerateCmd.Flags().IntSlice("sections", nil, "1-based flat section positions to regenerate")
	regenerateCmd.Flags().Bool("all", false, "regenerate every section")
	regenerateCmd.Flags().StringSlice("refs", nil, "source references to record on the course")
}
