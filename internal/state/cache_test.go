package state

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/kusaridev/skootrs/internal/model"
)

func TestReferenceCacheCreatesFileIfMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "skootcache")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(c.List()) != 0 {
		t.Fatalf("expected empty cache, got %v", c.List())
	}
}

func TestReferenceCacheSetGetDeletePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skootcache")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	url := "https://github.com/alice/demo"
	if err := c.Set(url); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !c.Get(url) {
		t.Fatalf("expected %q to be tracked", url)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reopened.Get(url) {
		t.Fatalf("expected %q to survive reopen", url)
	}

	if err := c.Delete(url); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if c.Get(url) {
		t.Fatalf("expected %q to be removed", url)
	}
}

func TestReferenceCacheGetProjectResolvesViaRepoDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skootcache")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

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

	url := project.Repo.FullURL()
	if err := c.Set(url); err != nil {
		t.Fatalf("Set: %v", err)
	}

	resolved, err := c.GetProject(context.Background(), &fakeRepoService{content: string(data)}, url)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if resolved.Source.Path != project.Source.Path {
		t.Fatalf("expected source path %q, got %q", project.Source.Path, resolved.Source.Path)
	}
}
