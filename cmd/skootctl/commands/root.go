// Package commands implements skootctl's cobra command tree: a thin
// flag-driven entrypoint over the engine, not the interactive/file-driven
// CLI collaborator the spec excludes.
package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skootctl",
	Short: "Bootstrap and inspect security-postured projects",
	Long: `skootctl wires the repo, source, ecosystem, facet, output, and state
collaborators together to bootstrap new projects and inspect existing ones.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
