package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kusaridev/skootrs/internal/model"
)

var (
	outputReleaseTag string
	outputName       string
)

var listOutputsCmd = &cobra.Command{
	Use:   "list-outputs <project-url>",
	Short: "List a release's output assets (SBOMs, attestations, etc.)",
	Args:  cobra.ExactArgs(1),
	RunE:  runListOutputs,
}

var getOutputCmd = &cobra.Command{
	Use:   "get-output <project-url>",
	Short: "Fetch one named output asset's content",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetOutput,
}

func init() {
	rootCmd.AddCommand(listOutputsCmd)
	rootCmd.AddCommand(getOutputCmd)

	listOutputsCmd.Flags().StringVar(&outputReleaseTag, "tag", "", "release tag (default: latest release)")
	getOutputCmd.Flags().StringVar(&outputReleaseTag, "tag", "", "release tag (default: latest release)")
	getOutputCmd.Flags().StringVar(&outputName, "name", "", "exact asset name to fetch")
	_ = getOutputCmd.MarkFlagRequired("name")
}

func releaseParam() model.ProjectReleaseParam {
	if outputReleaseTag == "" {
		return model.ReleaseLatest()
	}
	return model.ReleaseByTag(outputReleaseTag)
}

func runListOutputs(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	initialized, err := eng.project.Get(cmd.Context(), model.ProjectGetParams{ProjectURL: args[0]})
	if err != nil {
		return fmt.Errorf("fetching project: %w", err)
	}
	refs, err := eng.output.List(cmd.Context(), model.ProjectOutputsListParams{
		InitializedProject: initialized,
		Release:            releaseParam(),
	})
	if err != nil {
		return fmt.Errorf("listing outputs: %w", err)
	}
	for _, r := range refs {
		fmt.Printf("%s\t%s\n", r.Name, r.OutputType.Kind)
	}
	return nil
}

func runGetOutput(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	initialized, err := eng.project.Get(cmd.Context(), model.ProjectGetParams{ProjectURL: args[0]})
	if err != nil {
		return fmt.Errorf("fetching project: %w", err)
	}
	out, err := eng.output.Get(cmd.Context(), model.ProjectOutputParams{
		InitializedProject: initialized,
		Release:            releaseParam(),
		Name:               outputName,
	})
	if err != nil {
		return fmt.Errorf("fetching output: %w", err)
	}
	fmt.Println(out.Output)
	return nil
}
