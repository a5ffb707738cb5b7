package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kusaridev/skootrs/internal/model"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <project-url>",
	Short: "Archive a project's repo and drop it from the reference cache",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchive,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	initialized, err := eng.project.Get(cmd.Context(), model.ProjectGetParams{ProjectURL: args[0]})
	if err != nil {
		return fmt.Errorf("fetching project: %w", err)
	}
	url, err := eng.project.Archive(cmd.Context(), model.ProjectArchiveParams{InitializedProject: initialized})
	if err != nil {
		return fmt.Errorf("archiving project: %w", err)
	}
	fmt.Println(url)
	return nil
}
