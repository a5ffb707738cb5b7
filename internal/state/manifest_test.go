package state

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-logr/logr"

	"github.com/kusaridev/skootrs/internal/logging"
	"github.com/kusaridev/skootrs/internal/model"
	"github.com/kusaridev/skootrs/internal/source"
)

// fakeRepoService returns a fixed manifest's content for FetchFileContent and
// stubs the other repo.Service methods.
type fakeRepoService struct {
	content string
}

func (f *fakeRepoService) Create(context.Context, model.RepoCreateParams) (model.InitializedRepo, error) {
	return model.InitializedRepo{}, nil
}

func (f *fakeRepoService) Get(context.Context, model.InitializedRepoGetParams) (model.InitializedRepo, error) {
	return model.InitializedRepo{}, nil
}

func (f *fakeRepoService) FetchFileContent(context.Context, model.InitializedRepo, string) (string, error) {
	return f.content, nil
}

func (f *fakeRepoService) Archive(context.Context, model.InitializedRepo) (string, error) {
	return "", nil
}

func TestLoadManifestDecodesFetchedContent(t *testing.T) {
	project := model.InitializedProject{
		Repo: model.NewInitializedGithubRepo(model.InitializedGithubRepo{
			Name:         "demo",
			Organization: model.NewGithubUserUser("alice"),
		}),
		Ecosystem: model.NewInitializedGoEcosystem(model.InitializedGo{Name: "demo", Host: "github.com/alice"}),
		Source:    model.InitializedSource{Path: "/tmp/demo"},
		Facets:    map[model.FacetMapKey]model.Facet{},
	}
	data, err := json.Marshal(project)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	loaded, err := LoadManifest(context.Background(), &fakeRepoService{content: string(data)}, project.Repo)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if loaded.Source.Path != project.Source.Path {
		t.Fatalf("expected source path %q, got %q", project.Source.Path, loaded.Source.Path)
	}
}

func TestSaveManifestWritesFile(t *testing.T) {
	src := source.NewLocalService(logging.New(logr.Discard()))
	initializedSource := model.InitializedSource{Path: t.TempDir()}
	project := model.InitializedProject{
		Source: initializedSource,
		Facets: map[model.FacetMapKey]model.Facet{},
	}

	// SaveManifest's CommitAndPush step fails outside a git repo; the write
	// step that precedes it is what this test exercises.
	if err := SaveManifest(context.Background(), src, project, "Initialized project"); err == nil {
		t.Fatalf("expected SaveManifest to fail at CommitAndPush outside a git repo")
	}

	content, err := src.ReadFile(initializedSource, "./", manifestName)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var roundTripped model.InitializedProject
	if err := json.Unmarshal([]byte(content), &roundTripped); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if roundTripped.Source.Path != initializedSource.Path {
		t.Fatalf("expected path %q, got %q", initializedSource.Path, roundTripped.Source.Path)
	}
}
