package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kusaridev/skootrs/internal/model"
)

var listFacetsCmd = &cobra.Command{
	Use:   "list-facets <project-url>",
	Short: "List the facets applied to a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runListFacets,
}

var getFacetFlagName string

var getFacetCmd = &cobra.Command{
	Use:   "get-facet <project-url>",
	Short: "Fetch a single facet's current content from the forge",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetFacet,
}

func init() {
	rootCmd.AddCommand(listFacetsCmd)
	rootCmd.AddCommand(getFacetCmd)
	getFacetCmd.Flags().StringVar(&getFacetFlagName, "type", "", "facet type to fetch, e.g. Readme")
	_ = getFacetCmd.MarkFlagRequired("type")
}

func runListFacets(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	keys, err := eng.project.ListFacets(cmd.Context(), model.ProjectGetParams{ProjectURL: args[0]})
	if err != nil {
		return fmt.Errorf("listing facets: %w", err)
	}
	for _, k := range keys {
		fmt.Println(k.String())
	}
	return nil
}

func runGetFacet(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	facetType, err := model.ParseFacetType(getFacetFlagName)
	if err != nil {
		return err
	}
	f, err := eng.project.GetFacetWithContent(cmd.Context(), model.FacetGetParams{
		ProjectGetParams: model.ProjectGetParams{ProjectURL: args[0]},
		FacetMapKey:      model.ByType(facetType),
	})
	if err != nil {
		return fmt.Errorf("fetching facet: %w", err)
	}
	return printJSON(f)
}
