package commands

import (
	"github.com/kusaridev/skootrs/internal/config"
	"github.com/kusaridev/skootrs/internal/ecosystem"
	"github.com/kusaridev/skootrs/internal/facet"
	"github.com/kusaridev/skootrs/internal/logging"
	"github.com/kusaridev/skootrs/internal/output"
	"github.com/kusaridev/skootrs/internal/project"
	"github.com/kusaridev/skootrs/internal/repo"
	"github.com/kusaridev/skootrs/internal/source"
	"github.com/kusaridev/skootrs/internal/state"
)

// engine bundles every collaborator a command needs, built once per
// invocation from the process environment.
type engine struct {
	log     logging.Logger
	cfg     config.Config
	project *project.LocalService
	output  *output.GithubService
}

func newEngine() (*engine, error) {
	cfg := config.Load()
	log := logging.New(logging.DefaultLogger())

	token, err := cfg.RequireGitHubToken()
	if err != nil {
		return nil, err
	}

	cache, err := state.Open(cfg.ReferenceCachePath)
	if err != nil {
		return nil, err
	}

	repoSvc := repo.NewGithubService(log.WithName("repo"), token)
	sourceSvc := source.NewLocalService(log.WithName("source"))
	ecosystemSvc := ecosystem.NewLocalService(log.WithName("ecosystem"))
	facetSvc := facet.NewLocalService(log.WithName("facet"), sourceSvc, token)
	outputSvc := output.NewGithubService(log.WithName("output"), token)

	projectSvc := project.NewLocalService(log.WithName("project"), repoSvc, sourceSvc, ecosystemSvc, facetSvc, cache)

	return &engine{log: log, cfg: cfg, project: projectSvc, output: outputSvc}, nil
}
