package model

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// GithubUser tags a repo owner as either a user account or an organization,
// since Github's create-repo API has a distinct endpoint for each.
type GithubUser struct {
	Kind string // "User" or "Organization"
	Name string
}

func NewGithubUserUser(name string) GithubUser {
	return GithubUser{Kind: "User", Name: name}
}

func NewGithubUserOrganization(name string) GithubUser {
	return GithubUser{Kind: "Organization", Name: name}
}

func (u GithubUser) IsOrganization() bool {
	return u.Kind == "Organization"
}

type githubUserWire struct {
	User         *string `json:"User,omitempty"`
	Organization *string `json:"Organization,omitempty"`
}

func (u GithubUser) MarshalJSON() ([]byte, error) {
	var wire githubUserWire
	switch u.Kind {
	case "User":
		wire.User = &u.Name
	case "Organization":
		wire.Organization = &u.Name
	default:
		return nil, NewError(KindInput, fmt.Sprintf("unknown GithubUser kind %q", u.Kind))
	}
	return json.Marshal(wire)
}

func (u *GithubUser) UnmarshalJSON(data []byte) error {
	var wire githubUserWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return WrapError(KindDecoding, "decoding GithubUser", err)
	}
	switch {
	case wire.User != nil:
		*u = NewGithubUserUser(*wire.User)
	case wire.Organization != nil:
		*u = NewGithubUserOrganization(*wire.Organization)
	default:
		return NewError(KindDecoding, "GithubUser has neither User nor Organization")
	}
	return nil
}

// GithubRepoParams are the parameters for creating a Github repository.
type GithubRepoParams struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Organization GithubUser `json:"organization"`
}

func (p GithubRepoParams) HostURL() string {
	return "https://github.com"
}

func (p GithubRepoParams) FullURL() string {
	return fmt.Sprintf("%s/%s/%s", p.HostURL(), p.Organization.Name, p.Name)
}

// RepoCreateParams is the tagged-variant parameter set for creating a repo
// at a forge. Github is currently the only supported variant.
type RepoCreateParams struct {
	Kind   string // "Github"
	Github *GithubRepoParams
}

func NewGithubRepoCreateParams(p GithubRepoParams) RepoCreateParams {
	return RepoCreateParams{Kind: "Github", Github: &p}
}

type repoCreateParamsWire struct {
	Github *GithubRepoParams `json:"Github,omitempty"`
}

func (p RepoCreateParams) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case "Github":
		return json.Marshal(repoCreateParamsWire{Github: p.Github})
	default:
		return nil, NewError(KindInput, fmt.Sprintf("unknown RepoCreateParams kind %q", p.Kind))
	}
}

func (p *RepoCreateParams) UnmarshalJSON(data []byte) error {
	var wire repoCreateParamsWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return WrapError(KindDecoding, "decoding RepoCreateParams", err)
	}
	if wire.Github == nil {
		return NewError(KindDecoding, "RepoCreateParams has no recognized variant")
	}
	*p = RepoCreateParams{Kind: "Github", Github: wire.Github}
	return nil
}

// InitializedGithubRepo is the post-creation state of a Github repository.
type InitializedGithubRepo struct {
	Name         string     `json:"name"`
	Organization GithubUser `json:"organization"`
}

func (r InitializedGithubRepo) HostURL() string {
	return "https://github.com"
}

// FullURL is an invariant: hostURL + "/" + owner + "/" + name.
func (r InitializedGithubRepo) FullURL() string {
	return fmt.Sprintf("%s/%s/%s", r.HostURL(), r.Organization.Name, r.Name)
}

// InitializedRepo is the tagged-variant result of creating or fetching a
// repo. Github is currently the only supported variant.
type InitializedRepo struct {
	Kind   string // "Github"
	Github *InitializedGithubRepo
}

func NewInitializedGithubRepo(r InitializedGithubRepo) InitializedRepo {
	return InitializedRepo{Kind: "Github", Github: &r}
}

func (r InitializedRepo) HostURL() string {
	switch r.Kind {
	case "Github":
		return r.Github.HostURL()
	default:
		return ""
	}
}

func (r InitializedRepo) FullURL() string {
	switch r.Kind {
	case "Github":
		return r.Github.FullURL()
	default:
		return ""
	}
}

type initializedRepoWire struct {
	Github *InitializedGithubRepo `json:"Github,omitempty"`
}

func (r InitializedRepo) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case "Github":
		return json.Marshal(initializedRepoWire{Github: r.Github})
	default:
		return nil, NewError(KindInput, fmt.Sprintf("unknown InitializedRepo kind %q", r.Kind))
	}
}

func (r *InitializedRepo) UnmarshalJSON(data []byte) error {
	var wire initializedRepoWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return WrapError(KindDecoding, "decoding InitializedRepo", err)
	}
	if wire.Github == nil {
		return NewError(KindDecoding, "InitializedRepo has no recognized variant")
	}
	*r = InitializedRepo{Kind: "Github", Github: wire.Github}
	return nil
}

// ParseRepoURL parses a repo URL of the form "https://github.com/<owner>/<name>"
// into an InitializedRepo. Any host other than github.com is Unsupported;
// a malformed URL or wrong path shape is Input.
func ParseRepoURL(repoURL string) (InitializedRepo, error) {
	parsed, err := url.Parse(repoURL)
	if err != nil {
		return InitializedRepo{}, WrapError(KindInput, fmt.Sprintf("invalid repo URL %q", repoURL), err)
	}
	if parsed.Host != "github.com" {
		return InitializedRepo{}, NewError(KindUnsupported, fmt.Sprintf("unsupported repo host %q", parsed.Host))
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return InitializedRepo{}, NewError(KindInput, fmt.Sprintf("invalid repo URL %q", repoURL))
	}
	return NewInitializedGithubRepo(InitializedGithubRepo{
		Name:         parts[1],
		Organization: NewGithubUserUser(parts[0]),
	}), nil
}

// InitializedRepoGetParams are the parameters for fetching an existing repo's
// metadata abstraction.
type InitializedRepoGetParams struct {
	RepoURL string `json:"repo_url"`
}
