package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kusaridev/skootrs/internal/model"
)

var getCmd = &cobra.Command{
	Use:   "get <project-url>",
	Short: "Fetch an existing project's manifest from the forge",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	initialized, err := eng.project.Get(cmd.Context(), model.ProjectGetParams{ProjectURL: args[0]})
	if err != nil {
		return fmt.Errorf("fetching project: %w", err)
	}
	return printJSON(initialized)
}
