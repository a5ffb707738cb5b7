// Package project orchestrates the other drivers into the end-to-end
// project lifecycle: bootstrap, fetch, inspect facets, archive.
package project

import (
	"context"

	"github.com/kusaridev/skootrs/internal/ecosystem"
	"github.com/kusaridev/skootrs/internal/facet"
	"github.com/kusaridev/skootrs/internal/logging"
	"github.com/kusaridev/skootrs/internal/model"
	"github.com/kusaridev/skootrs/internal/repo"
	"github.com/kusaridev/skootrs/internal/source"
	"github.com/kusaridev/skootrs/internal/state"
)

// Service is the project orchestrator: the single entrypoint that drives the
// repo, source, ecosystem, and facet collaborators through a project's
// lifecycle.
type Service interface {
	Initialize(ctx context.Context, params model.ProjectCreateParams) (model.InitializedProject, error)
	Get(ctx context.Context, params model.ProjectGetParams) (model.InitializedProject, error)
	ListFacets(ctx context.Context, params model.ProjectGetParams) ([]model.FacetMapKey, error)
	GetFacetWithContent(ctx context.Context, params model.FacetGetParams) (model.Facet, error)
	Archive(ctx context.Context, params model.ProjectArchiveParams) (string, error)
}

// LocalService wires the local drivers together the way a single-machine
// skootctl invocation needs them.
type LocalService struct {
	Log       logging.Logger
	Repo      repo.Service
	Source    source.Service
	Ecosystem ecosystem.Service
	Facet     facet.Service
	Cache     *state.ReferenceCache
}

func NewLocalService(log logging.Logger, repoSvc repo.Service, sourceSvc source.Service, ecosystemSvc ecosystem.Service, facetSvc facet.Service, cache *state.ReferenceCache) *LocalService {
	return &LocalService{
		Log:       log,
		Repo:      repoSvc,
		Source:    sourceSvc,
		Ecosystem: ecosystemSvc,
		Facet:     facetSvc,
		Cache:     cache,
	}
}

// Initialize bootstraps a brand-new project: create the repo, clone it
// locally, initialize its ecosystem tooling, apply the default facet set in
// two ordered phases (source-bundle, then api-bundle, separated by a
// commit-and-push barrier), and persist the resulting manifest.
func (s *LocalService) Initialize(ctx context.Context, params model.ProjectCreateParams) (model.InitializedProject, error) {
	s.Log.Debug("starting repo initialization")
	initializedRepo, err := s.Repo.Create(ctx, params.RepoParams)
	if err != nil {
		return model.InitializedProject{}, err
	}

	s.Log.Debug("starting source initialization")
	initializedSource, err := s.Source.Initialize(ctx, params.SourceParams, initializedRepo)
	if err != nil {
		return model.InitializedProject{}, err
	}

	s.Log.Debug("starting ecosystem initialization")
	initializedEcosystem, err := s.Ecosystem.Initialize(ctx, params.EcosystemParams, initializedSource)
	if err != nil {
		return model.InitializedProject{}, err
	}

	s.Log.Debug("starting facet initialization")
	common := model.CommonFacetCreateParams{
		ProjectName: params.Name,
		Source:      initializedSource,
		Repo:        initializedRepo,
		Ecosystem:   initializedEcosystem,
	}
	planGen := facet.PlanGenerator{}
	sourcePlan := planGen.GenerateDefaultSourceBundle(common)
	apiPlan := planGen.GenerateDefaultAPIBundle(common)

	sourceFacets, err := s.Facet.InitializeAll(ctx, sourcePlan)
	if err != nil {
		return model.InitializedProject{}, err
	}

	if err := s.Source.CommitAndPush(ctx, initializedSource, "Initialized project"); err != nil {
		return model.InitializedProject{}, err
	}

	apiFacets, err := s.Facet.InitializeAll(ctx, apiPlan)
	if err != nil {
		return model.InitializedProject{}, err
	}

	facets := make(map[model.FacetMapKey]model.Facet, len(sourceFacets)+len(apiFacets))
	for _, f := range append(sourceFacets, apiFacets...) {
		facets[model.ByType(f.FacetType())] = f
	}

	initialized := model.InitializedProject{
		Repo:      initializedRepo,
		Ecosystem: initializedEcosystem,
		Source:    initializedSource,
		Facets:    facets,
	}

	if err := state.SaveManifest(ctx, s.Source, initialized, "Initialized project"); err != nil {
		return model.InitializedProject{}, err
	}
	if s.Cache != nil {
		if err := s.Cache.Set(initializedRepo.FullURL()); err != nil {
			return model.InitializedProject{}, err
		}
	}

	s.Log.Debug("completed project initialization")
	return initialized, nil
}

// Get parses a project URL into a repo descriptor, then fetches and decodes
// its manifest from the forge.
func (s *LocalService) Get(ctx context.Context, params model.ProjectGetParams) (model.InitializedProject, error) {
	initializedRepo, err := s.Repo.Get(ctx, model.InitializedRepoGetParams{RepoURL: params.ProjectURL})
	if err != nil {
		return model.InitializedProject{}, err
	}
	return state.LoadManifest(ctx, s.Repo, initializedRepo)
}

// ListFacets fetches the project's manifest and returns its facet keys.
func (s *LocalService) ListFacets(ctx context.Context, params model.ProjectGetParams) ([]model.FacetMapKey, error) {
	initialized, err := s.Get(ctx, params)
	if err != nil {
		return nil, err
	}
	keys := make([]model.FacetMapKey, 0, len(initialized.Facets))
	for k := range initialized.Facets {
		keys = append(keys, k)
	}
	return keys, nil
}

// GetFacetWithContent fetches the project's manifest, looks up the named
// facet, and resolves its current content from the forge.
func (s *LocalService) GetFacetWithContent(ctx context.Context, params model.FacetGetParams) (model.Facet, error) {
	initialized, err := s.Get(ctx, params.ProjectGetParams)
	if err != nil {
		return model.Facet{}, err
	}
	f, ok := initialized.Facets[params.FacetMapKey]
	if !ok {
		return model.Facet{}, model.NewError(model.KindNotFound, "facet not found in project manifest")
	}
	return s.Facet.FetchContent(ctx, s.Repo, initialized.Repo, f)
}

// Archive archives the project's repo and drops it from the reference cache.
func (s *LocalService) Archive(ctx context.Context, params model.ProjectArchiveParams) (string, error) {
	url, err := s.Repo.Archive(ctx, params.InitializedProject.Repo)
	if err != nil {
		return "", err
	}
	if s.Cache != nil {
		if err := s.Cache.Delete(url); err != nil {
			return "", err
		}
	}
	return url, nil
}
