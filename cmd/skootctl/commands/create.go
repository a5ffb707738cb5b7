package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kusaridev/skootrs/internal/model"
)

var (
	createOrg         string
	createDescription string
	createGoHost      string
	createMavenGroup  string
	createMavenArt    string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Bootstrap a new project: create the repo, clone it, and apply the default facet set",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&createOrg, "org", "", "Github organization to create the repo under (default: a user account named after the project)")
	createCmd.Flags().StringVar(&createDescription, "description", "", "repository description")
	createCmd.Flags().StringVar(&createGoHost, "go-host", "github.com", "Go module host prefix")
	createCmd.Flags().StringVar(&createMavenGroup, "maven-group", "", "Maven group id (selects the Maven ecosystem instead of Go)")
	createCmd.Flags().StringVar(&createMavenArt, "maven-artifact", "", "Maven artifact id")
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	eng, err := newEngine()
	if err != nil {
		return err
	}

	owner := model.NewGithubUserUser(name)
	if createOrg != "" {
		owner = model.NewGithubUserOrganization(createOrg)
	}

	ecosystemParams := model.NewGoEcosystemParams(model.GoParams{Name: name, Host: createGoHost})
	if createMavenGroup != "" {
		ecosystemParams = model.NewMavenEcosystemParams(model.MavenParams{GroupID: createMavenGroup, ArtifactID: createMavenArt})
	}

	params := model.ProjectCreateParams{
		Name: name,
		RepoParams: model.NewGithubRepoCreateParams(model.GithubRepoParams{
			Name:         name,
			Description:  createDescription,
			Organization: owner,
		}),
		EcosystemParams: ecosystemParams,
		SourceParams:    model.SourceInitializeParams{ParentPath: eng.cfg.LocalProjectPath},
	}

	initialized, err := eng.project.Initialize(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("initializing project: %w", err)
	}
	return printJSON(initialized)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
