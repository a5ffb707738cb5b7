// Package facet is the Facet Engine: the catalogue of security-posture
// facets, their content generators, and the algorithms that apply a facet
// set to a project (writing files, calling forge APIs) and fetch a facet's
// content back from the forge.
package facet

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kusaridev/skootrs/internal/logging"
	"github.com/kusaridev/skootrs/internal/model"
	"github.com/kusaridev/skootrs/internal/repo"
	"github.com/kusaridev/skootrs/internal/source"
)

// Service is the root facet engine: initialize a single facet, initialize a
// whole set concurrently, and fetch a previously-applied facet's content
// back from the forge.
type Service interface {
	Initialize(ctx context.Context, params model.FacetCreateParams) (model.Facet, error)
	InitializeAll(ctx context.Context, params model.FacetSetCreateParams) ([]model.Facet, error)
	FetchContent(ctx context.Context, repoSvc repo.Service, initializedRepo model.InitializedRepo, f model.Facet) (model.Facet, error)
}

// LocalService dispatches source-bundle facets to the local Source driver
// and API-bundle facets to the Github forge, per the catalogue in
// ecosystemSpecificFacets and the generators in templates.go /
// security_insights.go (ecosystem-independent) and content_go_github.go.
type LocalService struct {
	Log         logging.Logger
	Source      source.Service
	GithubToken string
}

func NewLocalService(log logging.Logger, src source.Service, githubToken string) *LocalService {
	return &LocalService{Log: log, Source: src, GithubToken: githubToken}
}

// ecosystemSpecificFacets is the set of FacetTypes whose content generator
// is dispatched on the project's ecosystem variant rather than being
// ecosystem-independent. This is the catalogue-as-data table spec.md's
// design notes call for: FacetType -> generator tier.
var ecosystemSpecificFacets = map[model.FacetType]bool{
	model.FacetGitignore:            true,
	model.FacetSLSABuild:            true,
	model.FacetDependencyUpdateTool: true,
	model.FacetFuzzing:              true,
	model.FacetDefaultSourceCode:    true,
}

// Initialize applies a single facet: generating and writing files for a
// SourceBundle facet, or issuing forge API calls for an APIBundle facet.
func (s *LocalService) Initialize(ctx context.Context, params model.FacetCreateParams) (model.Facet, error) {
	switch params.Kind {
	case "SourceBundle":
		return s.initializeSourceBundle(params)
	case "APIBundle":
		return s.initializeAPIBundle(ctx, params)
	default:
		return model.Facet{}, model.NewError(model.KindInput, fmt.Sprintf("unknown facet create params kind %q", params.Kind))
	}
}

// InitializeAll applies every facet in params concurrently, joining with
// all-or-first-error semantics. Safe because source-bundle facets write
// disjoint paths by construction and API-bundle facets target disjoint
// endpoints; the two phases are serialized by the caller (the project
// orchestrator), not here.
func (s *LocalService) InitializeAll(ctx context.Context, params model.FacetSetCreateParams) ([]model.Facet, error) {
	results := make([]model.Facet, len(params.FacetsParams))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range params.FacetsParams {
		i, p := i, p
		g.Go(func() error {
			f, err := s.Initialize(gctx, p)
			if err != nil {
				return err
			}
			results[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *LocalService) initializeSourceBundle(params model.FacetCreateParams) (model.Facet, error) {
	contents, err := s.generateSourceBundleContent(params)
	if err != nil {
		return model.Facet{}, err
	}

	sourceFiles := make([]model.SourceFile, 0, len(contents))
	for _, c := range contents {
		s.Log.Debug("writing facet file", "facet", params.FacetType, "path", c.Path, "name", c.Name)
		if err := s.Source.WriteFile(params.Common.Source, c.Path, c.Name, c.Content); err != nil {
			return model.Facet{}, err
		}
		hash, err := s.Source.HashFile(params.Common.Source, c.Path, c.Name)
		if err != nil {
			return model.Facet{}, err
		}
		sourceFiles = append(sourceFiles, model.SourceFile{Name: c.Name, Path: c.Path, Hash: hash})
	}

	return model.NewSourceBundleFacet(model.SourceBundleFacet{
		FacetType:   params.FacetType,
		SourceFiles: sourceFiles,
	}), nil
}

// generateSourceBundleContent is the table-driven tier dispatch: ecosystem-
// independent facet types go to the default generator, the rest go to the
// generator keyed on the project's ecosystem variant.
func (s *LocalService) generateSourceBundleContent(params model.FacetCreateParams) ([]model.SourceFileContent, error) {
	if !ecosystemSpecificFacets[params.FacetType] {
		return generateDefaultContent(params)
	}
	switch params.Common.Ecosystem.Kind {
	case "Go":
		return generateGoGithubContent(params)
	case "Maven":
		return nil, model.NewError(model.KindUnsupported, fmt.Sprintf("facet %q is not implemented for the Maven ecosystem", params.FacetType))
	default:
		return nil, model.NewError(model.KindUnsupported, fmt.Sprintf("unsupported ecosystem variant %q", params.Common.Ecosystem.Kind))
	}
}

func (s *LocalService) initializeAPIBundle(ctx context.Context, params model.FacetCreateParams) (model.Facet, error) {
	if params.Common.Repo.Kind != "Github" {
		return model.Facet{}, model.NewError(model.KindUnsupported, fmt.Sprintf("unsupported repo variant %q for api bundle facets", params.Common.Repo.Kind))
	}
	handler := githubAPIBundleHandler{Log: s.Log, Token: s.GithubToken}
	return handler.generate(ctx, params)
}

// FetchContent resolves a SourceBundle facet's tracked files into their
// current forge content; an APIBundle facet is returned unchanged since its
// content is already fully captured at application time.
func (s *LocalService) FetchContent(ctx context.Context, repoSvc repo.Service, initializedRepo model.InitializedRepo, f model.Facet) (model.Facet, error) {
	if f.Kind != "SourceBundle" {
		return f, nil
	}
	return fetchSourceBundleContent(ctx, repoSvc, initializedRepo, *f.SourceBundle)
}
