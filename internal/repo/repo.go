// Package repo drives a forge (currently Github) repository: create, fetch
// metadata, fetch file content, archive.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/kusaridev/skootrs/internal/logging"
	"github.com/kusaridev/skootrs/internal/model"
)

// Service drives a project's source code repository at a forge.
type Service interface {
	Create(ctx context.Context, params model.RepoCreateParams) (model.InitializedRepo, error)
	Get(ctx context.Context, params model.InitializedRepoGetParams) (model.InitializedRepo, error)
	FetchFileContent(ctx context.Context, repo model.InitializedRepo, path string) (string, error)
	Archive(ctx context.Context, repo model.InitializedRepo) (string, error)
}

// GithubService implements Service against the Github REST API.
type GithubService struct {
	Log   logging.Logger
	token string
	http  *http.Client
}

// NewGithubService builds a Github-backed repo driver authenticated with a
// personal access token (spec requires only GITHUB_TOKEN, not a GitHub App).
func NewGithubService(log logging.Logger, token string) *GithubService {
	return &GithubService{
		Log:   log,
		token: token,
		http:  oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})),
	}
}

// NewClient builds a freshly authenticated Github client scoped to token.
// It is exported so other forge-touching collaborators (the facet engine's
// API-bundle handlers, the output driver) construct their client the same
// way instead of hand-rolling a second oauth2 wiring.
func NewClient(token string) *github.Client {
	httpClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	return github.NewClient(httpClient)
}

// client returns the long-lived client used for read-only calls.
func (s *GithubService) client() *github.Client {
	return github.NewClient(s.http)
}

// session returns a freshly constructed client scoped to the current token,
// used by this driver's write endpoints (create, archive). The facet
// engine's branch-protection and vulnerability-reporting handlers build
// their client the same way, through NewClient. See SPEC_FULL.md §4.8 for
// why this mirrors the original implementation's re-authentication quirk
// instead of eliminating it.
func (s *GithubService) session() *github.Client {
	return NewClient(s.token)
}

func (s *GithubService) Create(ctx context.Context, params model.RepoCreateParams) (model.InitializedRepo, error) {
	if params.Kind != "Github" {
		return model.InitializedRepo{}, model.NewError(model.KindUnsupported, fmt.Sprintf("unsupported repo variant %q", params.Kind))
	}
	g := params.Github

	newRepo := &github.Repository{
		Name:        github.String(g.Name),
		Description: github.String(g.Description),
		Private:     github.Bool(false),
		HasIssues:   github.Bool(true),
		HasProjects: github.Bool(true),
		HasWiki:     github.Bool(true),
	}

	org := ""
	if g.Organization.IsOrganization() {
		org = g.Organization.Name
	}
	created, _, err := s.session().Repositories.Create(ctx, org, newRepo)
	if err != nil {
		return model.InitializedRepo{}, model.WrapError(model.KindRemote, fmt.Sprintf("creating repo %s/%s", g.Organization.Name, g.Name), err)
	}

	initialized := model.NewInitializedGithubRepo(model.InitializedGithubRepo{
		Name:         created.GetName(),
		Organization: g.Organization,
	})

	s.emitRepositoryCreatedEvent(g, initialized)

	return initialized, nil
}

func (s *GithubService) Get(ctx context.Context, params model.InitializedRepoGetParams) (model.InitializedRepo, error) {
	initialized, err := model.ParseRepoURL(params.RepoURL)
	if err != nil {
		return model.InitializedRepo{}, err
	}
	g := initialized.Github
	_, resp, err := s.client().Repositories.Get(ctx, g.Organization.Name, g.Name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return model.InitializedRepo{}, model.WrapError(model.KindNotFound, fmt.Sprintf("repo %s does not exist", params.RepoURL), err)
		}
		return model.InitializedRepo{}, model.WrapError(model.KindRemote, fmt.Sprintf("fetching repo %s", params.RepoURL), err)
	}
	return initialized, nil
}

func (s *GithubService) FetchFileContent(ctx context.Context, repo model.InitializedRepo, path string) (string, error) {
	if repo.Kind != "Github" {
		return "", model.NewError(model.KindUnsupported, fmt.Sprintf("unsupported repo variant %q", repo.Kind))
	}
	g := repo.Github
	file, _, resp, err := s.client().Repositories.GetContents(ctx, g.Organization.Name, g.Name, path, &github.RepositoryContentGetOptions{Ref: "main"})
	if err != nil || file == nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", model.NewError(model.KindNotFound, fmt.Sprintf("failed to get %s from %s", path, repo.FullURL()))
		}
		return "", model.WrapError(model.KindRemote, fmt.Sprintf("fetching %s from %s", path, repo.FullURL()), err)
	}
	content, err := file.GetContent()
	if err != nil {
		return "", model.WrapError(model.KindDecoding, fmt.Sprintf("decoding content from %s", path), err)
	}
	if content == "" {
		return "", model.NewError(model.KindNotFound, fmt.Sprintf("%s is empty in %s", path, repo.FullURL()))
	}
	return content, nil
}

func (s *GithubService) Archive(ctx context.Context, repo model.InitializedRepo) (string, error) {
	if repo.Kind != "Github" {
		return "", model.NewError(model.KindUnsupported, fmt.Sprintf("unsupported repo variant %q", repo.Kind))
	}
	g := repo.Github
	s.Log.Info("archiving repo", "owner", g.Organization.Name, "repo", g.Name)

	body := struct {
		Archived bool `json:"archived"`
	}{Archived: true}

	req, err := s.session().NewRequest(http.MethodPatch, fmt.Sprintf("repos/%s/%s", g.Organization.Name, g.Name), body)
	if err != nil {
		return "", model.WrapError(model.KindRemote, "building archive request", err)
	}
	var result json.RawMessage
	if _, err := s.session().Do(ctx, req, &result); err != nil {
		return "", model.WrapError(model.KindRemote, fmt.Sprintf("archiving %s", repo.FullURL()), err)
	}
	s.Log.Info("archived", "repo", repo.FullURL())
	return repo.FullURL(), nil
}

// RepositoryCreatedEvent is the CDEvents repository.created payload emitted
// to the log stream on successful repo creation.
type RepositoryCreatedEvent struct {
	Context RepositoryCreatedEventContext `json:"context"`
	Subject RepositoryCreatedEventSubject `json:"subject"`
}

type RepositoryCreatedEventContext struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Version   string    `json:"version"`
}

type RepositoryCreatedEventSubject struct {
	ID      string                                `json:"id"`
	Source  string                                `json:"source"`
	Type    string                                `json:"type"`
	Content RepositoryCreatedEventSubjectContent `json:"content"`
}

type RepositoryCreatedEventSubjectContent struct {
	Name    string `json:"name"`
	Owner   string `json:"owner"`
	URL     string `json:"url"`
	ViewURL string `json:"viewUrl"`
}

func (s *GithubService) emitRepositoryCreatedEvent(params *model.GithubRepoParams, initialized model.InitializedRepo) {
	owner := params.Organization.Name
	id := fmt.Sprintf("%s/%s", owner, params.Name)
	event := RepositoryCreatedEvent{
		Context: RepositoryCreatedEventContext{
			ID:        id,
			Source:    "skootrs.github.creator",
			Timestamp: time.Now().UTC(),
			Type:      "dev.cdevents.repository.created.0.1.1",
			Version:   "0.3.0",
		},
		Subject: RepositoryCreatedEventSubject{
			ID:     id,
			Source: "skootrs.github.creator",
			Type:   "Repository",
			Content: RepositoryCreatedEventSubjectContent{
				Name:    params.Name,
				Owner:   owner,
				URL:     initialized.FullURL(),
				ViewURL: initialized.FullURL(),
			},
		},
	}
	encoded, err := json.Marshal(event)
	if err != nil {
		s.Log.Error(err, "failed to encode repository-created event")
		return
	}
	s.Log.Info("github repo created", "event", string(encoded))
}
