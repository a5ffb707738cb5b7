package project

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"

	"github.com/kusaridev/skootrs/internal/facet"
	"github.com/kusaridev/skootrs/internal/logging"
	"github.com/kusaridev/skootrs/internal/model"
	"github.com/kusaridev/skootrs/internal/repo"
	"github.com/kusaridev/skootrs/internal/state"
)

// fakeRepoService and friends mirror the hand-rolled mocks the orchestrator
// was originally tested with: each flags an "error" sentinel value to force
// a failure path without touching the network.

type fakeRepoService struct{}

func (fakeRepoService) Create(_ context.Context, params model.RepoCreateParams) (model.InitializedRepo, error) {
	if params.Github.Name == "error" {
		return model.InitializedRepo{}, model.NewError(model.KindRemote, "create failed")
	}
	return model.NewInitializedGithubRepo(model.InitializedGithubRepo{
		Name:         params.Github.Name,
		Organization: params.Github.Organization,
	}), nil
}

func (fakeRepoService) Get(context.Context, model.InitializedRepoGetParams) (model.InitializedRepo, error) {
	return model.InitializedRepo{}, nil
}

func (fakeRepoService) FetchFileContent(context.Context, model.InitializedRepo, string) (string, error) {
	return "", nil
}

func (fakeRepoService) Archive(context.Context, model.InitializedRepo) (string, error) {
	return "https://github.com/alice/demo", nil
}

type fakeSourceService struct {
	parentPath string
}

func (s fakeSourceService) Initialize(_ context.Context, params model.SourceInitializeParams, initializedRepo model.InitializedRepo) (model.InitializedSource, error) {
	if params.ParentPath == "error" {
		return model.InitializedSource{}, model.NewError(model.KindIO, "initialize failed")
	}
	return model.InitializedSource{Path: filepath.Join(params.ParentPath, initializedRepo.Github.Name)}, nil
}

func (fakeSourceService) CloneLocalOrPull(context.Context, model.InitializedRepo, string) (model.InitializedSource, error) {
	return model.InitializedSource{}, nil
}

func (fakeSourceService) WriteFile(model.InitializedSource, string, string, []byte) error { return nil }

func (fakeSourceService) ReadFile(model.InitializedSource, string, string) (string, error) {
	return "", nil
}

func (fakeSourceService) HashFile(model.InitializedSource, string, string) (string, error) {
	return "", nil
}

func (fakeSourceService) CommitAndPush(context.Context, model.InitializedSource, string) error {
	return nil
}

func (fakeSourceService) PullUpdates(context.Context, model.InitializedSource) error { return nil }

type fakeEcosystemService struct{}

func (fakeEcosystemService) Initialize(_ context.Context, params model.EcosystemParams, _ model.InitializedSource) (model.InitializedEcosystem, error) {
	if params.Kind == "Go" && params.Go.Host == "error" {
		return model.InitializedEcosystem{}, model.NewError(model.KindSubprocess, "ecosystem init failed")
	}
	return model.NewInitializedGoEcosystem(model.InitializedGo{Name: params.Go.Name, Host: params.Go.Host}), nil
}

type fakeFacetService struct{}

func (fakeFacetService) Initialize(_ context.Context, params model.FacetCreateParams) (model.Facet, error) {
	if params.Common.ProjectName == "error" {
		return model.Facet{}, model.NewError(model.KindRemote, "facet init failed")
	}
	switch params.Kind {
	case "SourceBundle":
		return model.NewSourceBundleFacet(model.SourceBundleFacet{
			FacetType:   params.FacetType,
			SourceFiles: []model.SourceFile{{Name: "README.md", Path: "./", Hash: "deadbeef"}},
		}), nil
	default:
		return model.NewAPIBundleFacet(model.APIBundleFacet{
			FacetType: params.FacetType,
			APIs:      []model.APIContent{{Name: "test", URL: "https://foo.bar/test", Response: "worked"}},
		}), nil
	}
}

func (f fakeFacetService) InitializeAll(ctx context.Context, params model.FacetSetCreateParams) ([]model.Facet, error) {
	out := make([]model.Facet, 0, len(params.FacetsParams))
	for _, p := range params.FacetsParams {
		initialized, err := f.Initialize(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, initialized)
	}
	return out, nil
}

func (fakeFacetService) FetchContent(context.Context, repo.Service, model.InitializedRepo, model.Facet) (model.Facet, error) {
	return model.Facet{}, nil
}

func newTestOrchestrator(t *testing.T) *LocalService {
	t.Helper()
	cache, err := state.Open(filepath.Join(t.TempDir(), "skootcache"))
	if err != nil {
		t.Fatalf("Open cache: %v", err)
	}
	return &LocalService{
		Log:       logging.New(logr.Discard()),
		Repo:      fakeRepoService{},
		Source:    fakeSourceService{},
		Ecosystem: fakeEcosystemService{},
		Facet:     fakeFacetService{},
		Cache:     cache,
	}
}

func TestInitializeProject(t *testing.T) {
	svc := newTestOrchestrator(t)

	params := model.ProjectCreateParams{
		Name: "test",
		RepoParams: model.NewGithubRepoCreateParams(model.GithubRepoParams{
			Name:         "test",
			Description:  "foobar",
			Organization: model.NewGithubUserUser("testuser"),
		}),
		EcosystemParams: model.NewGoEcosystemParams(model.GoParams{Name: "test", Host: "github.com"}),
		SourceParams:    model.SourceInitializeParams{ParentPath: "test"},
	}

	initialized, err := svc.Initialize(context.Background(), params)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if got := initialized.Repo.FullURL(); got != "https://github.com/testuser/test" {
		t.Fatalf("unexpected repo url %q", got)
	}
	if initialized.Ecosystem.Go.Name != "test" {
		t.Fatalf("unexpected ecosystem %+v", initialized.Ecosystem)
	}
	if initialized.Source.Path != "test/test" {
		t.Fatalf("unexpected source path %q", initialized.Source.Path)
	}
	wantFacets := len(facetPlanLength())
	if len(initialized.Facets) != wantFacets {
		t.Fatalf("expected %d facets, got %d", wantFacets, len(initialized.Facets))
	}
	if !svc.Cache.Get(initialized.Repo.FullURL()) {
		t.Fatalf("expected repo url to be recorded in reference cache")
	}
}

func TestInitializeProjectPropagatesRepoError(t *testing.T) {
	svc := newTestOrchestrator(t)
	params := model.ProjectCreateParams{
		Name: "error",
		RepoParams: model.NewGithubRepoCreateParams(model.GithubRepoParams{
			Name:         "error",
			Organization: model.NewGithubUserUser("testuser"),
		}),
		EcosystemParams: model.NewGoEcosystemParams(model.GoParams{Name: "test", Host: "github.com"}),
		SourceParams:    model.SourceInitializeParams{ParentPath: "test"},
	}

	if _, err := svc.Initialize(context.Background(), params); err == nil {
		t.Fatalf("expected error from repo creation")
	}
}

// facetPlanLength returns the default plan's facet params, whose length is
// the plan's total facet count, without importing facet's unexported slices
// directly.
func facetPlanLength() []model.FacetCreateParams {
	common := model.CommonFacetCreateParams{}
	return facet.PlanGenerator{}.GenerateDefault(common).FacetsParams
}
