package state

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/kusaridev/skootrs/internal/model"
	"github.com/kusaridev/skootrs/internal/repo"
)

// ReferenceCache is a local JSON set of project URLs the engine has
// bootstrapped: the orchestrator adds a URL on `create` and removes it on
// `archive`. Membership checks (Get, List) are local; resolving a URL to its
// project (GetProject) always fetches the manifest from the forge. It plays
// the same "local index of known projects"
// role the original implementation's SurrealDB-backed statestore played,
// reshaped as a flat file store the way the teacher shapes its sqlite store.
type ReferenceCache struct {
	path string
	mu   sync.Mutex
	urls map[string]struct{}
}

// Open loads path's JSON array of URLs into memory, creating an empty file
// if it doesn't exist yet.
func Open(path string) (*ReferenceCache, error) {
	if path == "" {
		return nil, model.NewError(model.KindInput, "reference cache path required")
	}
	c := &ReferenceCache{path: path, urls: make(map[string]struct{})}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ReferenceCache) load() error {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return c.saveLocked()
	}
	if err != nil {
		return model.WrapError(model.KindIO, "reading reference cache", err)
	}
	var urls []string
	if len(data) > 0 {
		if err := json.Unmarshal(data, &urls); err != nil {
			return model.WrapError(model.KindDecoding, "decoding reference cache", err)
		}
	}
	for _, u := range urls {
		c.urls[u] = struct{}{}
	}
	return nil
}

// saveLocked persists the current set to disk. Caller must hold c.mu.
func (c *ReferenceCache) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return model.WrapError(model.KindIO, "creating reference cache directory", err)
	}
	urls := make([]string, 0, len(c.urls))
	for u := range c.urls {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	data, err := json.MarshalIndent(urls, "", "  ")
	if err != nil {
		return model.WrapError(model.KindDecoding, "encoding reference cache", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return model.WrapError(model.KindIO, "writing reference cache", err)
	}
	return nil
}

// List returns every known project URL.
func (c *ReferenceCache) List() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	urls := make([]string, 0, len(c.urls))
	for u := range c.urls {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// Get reports whether url is tracked.
func (c *ReferenceCache) Get(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.urls[url]
	return ok
}

// GetProject resolves a cached url to its current InitializedProject by
// fetching the manifest through repoSvc, per spec.md §4.7 ("get(url) ->
// InitializedProject, resolves by fetching .skootrs through the Repo
// driver"). It does not require url to already be tracked; callers that
// want membership-only semantics should use Get instead.
func (c *ReferenceCache) GetProject(ctx context.Context, repoSvc repo.Service, url string) (model.InitializedProject, error) {
	initializedRepo, err := repoSvc.Get(ctx, model.InitializedRepoGetParams{RepoURL: url})
	if err != nil {
		return model.InitializedProject{}, err
	}
	return LoadManifest(ctx, repoSvc, initializedRepo)
}

// Set records url as known, persisting immediately.
func (c *ReferenceCache) Set(url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.urls[url] = struct{}{}
	return c.saveLocked()
}

// Delete removes url, persisting immediately. A no-op if url was never tracked.
func (c *ReferenceCache) Delete(url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.urls, url)
	return c.saveLocked()
}
