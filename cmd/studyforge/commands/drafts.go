package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyforge/studyforge/pkg/cli"
	"github.com/studyforge/studyforge/pkg/course"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Manage saved drafts",
}

// draftRow is the list view of a draft.
type draftRow struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Minutes  int    `json:"minutes"`
	Sections int    `json:"sections"`
	Created  string `json:"created"`
	Updated  string `json:"updated"`
}

var draftsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		all, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([]draftRow, len(all))
		for i, d := range all {
			rows[i] = draftRow{
				ID:       d.ID,
				Title:    d.Course.Title,
				Minutes:  d.Course.Minutes,
				Sections: course.NewLocator(d.Course).Count(),
				Created:  d.CreatedAt.Format("2006-01-02 15:04"),
				Updated:  d.UpdatedAt.Format("2006-01-02 15:04"),
			}
		}
		return outputResult(rows)
	},
}

var draftsGetCmd = &cobra.Command{
	Use:   "get <draft-id>",
	Short: "Print a saved draft's course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		d, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return outputResult(d.Course)
	},
}

var draftsDeleteCmd = &cobra.Command{
	Use:   "delete <draft-id>",
	Short: "Delete a saved draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		// Confirm the draft exists so a typo does not silently succeed.
		if _, err := store.Get(cmd.Context(), args[0]); err != nil {
			return err
		}
		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Draft %s deleted", args[0])
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the studyforge version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("studyforge", version)
	},
}

// version is stamped at build time via -ldflags.
var version = "dev"

func init() {
	draftsCmd.AddCommand(draftsListCmd)
	draftsCmd.AddCommand(draftsGetCmd)
	draftsCmd.AddCommand(draftsDeleteCmd)
}
