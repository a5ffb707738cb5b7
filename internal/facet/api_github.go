package facet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kusaridev/skootrs/internal/logging"
	"github.com/kusaridev/skootrs/internal/model"
	"github.com/kusaridev/skootrs/internal/repo"
)

// githubAPIBundleHandler issues the forge API calls an APIBundle facet
// represents. Each call builds its own client via repo.NewClient, mirroring
// the re-authentication quirk documented for the repo driver's write
// endpoints (see SPEC_FULL.md §4.8) rather than reusing a long-lived one.
type githubAPIBundleHandler struct {
	Log   logging.Logger
	Token string
}

func (h githubAPIBundleHandler) generate(ctx context.Context, params model.FacetCreateParams) (model.Facet, error) {
	g := params.Common.Repo.Github
	if g == nil {
		return model.Facet{}, model.NewError(model.KindUnsupported, "api bundle facets require a Github repo")
	}
	switch params.FacetType {
	case model.FacetBranchProtection:
		return h.branchProtection(ctx, g)
	case model.FacetVulnerabilityReporting:
		return h.vulnerabilityReporting(ctx, g)
	default:
		return model.Facet{}, model.NewError(model.KindUnsupported, fmt.Sprintf("unsupported api bundle facet %q", params.FacetType))
	}
}

func (h githubAPIBundleHandler) branchProtection(ctx context.Context, g *model.InitializedGithubRepo) (model.Facet, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/branches/main/protection", g.Organization.Name, g.Name)
	h.Log.Info("enabling branch protection", "endpoint", endpoint)

	body := map[string]any{
		"enforce_admins":                true,
		"required_pull_request_reviews": nil,
		"required_status_checks":        nil,
		"restrictions":                  nil,
		"required_linear_history":       true,
		"allow_force_pushes":            false,
		"allow_deletions":               nil,
	}

	client := repo.NewClient(h.Token)
	req, err := client.NewRequest(http.MethodPut, endpoint, body)
	if err != nil {
		return model.Facet{}, model.WrapError(model.KindRemote, "building branch protection request", err)
	}
	var result json.RawMessage
	if _, err := client.Do(ctx, req, &result); err != nil {
		return model.Facet{}, model.WrapError(model.KindRemote, fmt.Sprintf("enforcing branch protection via %s", endpoint), err)
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		pretty = result
	}

	return model.NewAPIBundleFacet(model.APIBundleFacet{
		FacetType: model.FacetBranchProtection,
		APIs: []model.APIContent{{
			Name:     "Enforce Branch Protection",
			URL:      endpoint,
			Response: string(pretty),
		}},
	}), nil
}

func (h githubAPIBundleHandler) vulnerabilityReporting(ctx context.Context, g *model.InitializedGithubRepo) (model.Facet, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/private-vulnerability-reporting", g.Organization.Name, g.Name)
	h.Log.Info("enabling vulnerability reporting", "endpoint", endpoint)

	client := repo.NewClient(h.Token)
	req, err := client.NewRequest(http.MethodPut, endpoint, nil)
	if err != nil {
		return model.Facet{}, model.WrapError(model.KindRemote, "building vulnerability reporting request", err)
	}
	// This endpoint returns a bare 2xx with no JSON body; passing a non-nil
	// decode target here would fail decoding an empty response.
	if _, err := client.Do(ctx, req, nil); err != nil {
		return model.Facet{}, model.WrapError(model.KindRemote, fmt.Sprintf("enabling vulnerability reporting via %s", endpoint), err)
	}

	return model.NewAPIBundleFacet(model.APIBundleFacet{
		FacetType: model.FacetVulnerabilityReporting,
		APIs: []model.APIContent{{
			Name:     "Enabling vulnerability reporting",
			URL:      endpoint,
			Response: "Success",
		}},
	}), nil
}
