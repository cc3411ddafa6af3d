package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studyforge/studyforge/pkg/author"
	"github.com/studyforge/studyforge/pkg/cli"
	"github.com/studyforge/studyforge/pkg/drafts"
	"github.com/studyforge/studyforge/pkg/review"
)

var generateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Generate a course from a prompt",
	Long: `Generate a course from a prompt and save it as a draft.

The prompt comes from the argument or from a request file (-f). The
generated course is reviewed immediately; findings go to stderr and the
course itself to stdout.

Examples:
  studyforge generate "a 60 minute Go course for Python developers"
  studyforge generate -f request.yaml
  studyforge generate -f - < request.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reqFile, _ := cmd.Flags().GetString("file")
		noSave, _ := cmd.Flags().GetBool("no-save")

		var req cli.GenerateRequest
		if reqFile != "" {
			if err := cli.LoadRequest(reqFile, &req); err != nil {
				return err
			}
		}
		if len(args) == 1 {
			req.Prompt = args[0]
		}
		if strings.TrimSpace(req.Prompt) == "" {
			return fmt.Errorf("no prompt given (argument or -f request file)")
		}

		gc, err := getContext()
		if err != nil {
			return err
		}
		sess, err := newSession(cmd.Context(), gc)
		if err != nil {
			return err
		}

		course, err := author.Generate(cmd.Context(), sess, req.Prompt)
		if err != nil {
			return err
		}
		if len(req.References) > 0 {
			course.References = append(course.References, req.References...)
		}

		report := review.Check(course)
		fmt.Fprint(os.Stderr, cli.RenderReport(report, cli.DefaultTheme))

		if !noSave {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			d := drafts.New(course, req.Prompt)
			if err := store.Put(cmd.Context(), d); err != nil {
				return err
			}
			cli.PrintSuccess("Draft saved: %s", d.ID)
		}

		return outputResult(course)
	},
}

func init() {
	generateCmd.Flags().StringP("file", "f", "", "request file (YAML or JSON, - for stdin)")
	generateCmd.Flags().Bool("no-save", false, "do not save the result as a draft")
}
