package facet

import "github.com/kusaridev/skootrs/internal/model"

// defaultSourceBundleFacets is the ordered source-bundle phase of the
// default plan. Order matters only for readability here; within the phase
// itself the application algorithm is unordered (see InitializeAll).
var defaultSourceBundleFacets = []model.FacetType{
	model.FacetReadme,
	model.FacetLicense,
	model.FacetGitignore,
	model.FacetSecurityPolicy,
	model.FacetSecurityInsights,
	model.FacetSLSABuild,
	model.FacetDependencyUpdateTool,
	model.FacetScorecard,
	model.FacetSAST,
	model.FacetDefaultSourceCode,
}

// defaultAPIBundleFacets is the ordered api-bundle phase of the default
// plan. It must run after the source-bundle phase's commit-and-push: branch
// protection would otherwise reject the initial push.
var defaultAPIBundleFacets = []model.FacetType{
	model.FacetBranchProtection,
	model.FacetVulnerabilityReporting,
}

// PlanGenerator builds the default facet-set params for a new project.
type PlanGenerator struct{}

// GenerateDefaultSourceBundle builds the source-bundle phase of the default
// plan.
func (PlanGenerator) GenerateDefaultSourceBundle(common model.CommonFacetCreateParams) model.FacetSetCreateParams {
	params := make([]model.FacetCreateParams, 0, len(defaultSourceBundleFacets))
	for _, ft := range defaultSourceBundleFacets {
		params = append(params, model.NewSourceBundleCreateParams(common, ft))
	}
	return model.FacetSetCreateParams{FacetsParams: params}
}

// GenerateDefaultAPIBundle builds the api-bundle phase of the default plan.
func (PlanGenerator) GenerateDefaultAPIBundle(common model.CommonFacetCreateParams) model.FacetSetCreateParams {
	params := make([]model.FacetCreateParams, 0, len(defaultAPIBundleFacets))
	for _, ft := range defaultAPIBundleFacets {
		params = append(params, model.NewAPIBundleCreateParams(common, ft))
	}
	return model.FacetSetCreateParams{FacetsParams: params}
}

// GenerateDefault concatenates both phases, source-bundle first. Every
// source-bundle facet appears before any api-bundle facet in the result, an
// invariant the orchestrator and this ordering both rely on.
func (g PlanGenerator) GenerateDefault(common model.CommonFacetCreateParams) model.FacetSetCreateParams {
	sourceBundle := g.GenerateDefaultSourceBundle(common)
	apiBundle := g.GenerateDefaultAPIBundle(common)
	return model.FacetSetCreateParams{
		FacetsParams: append(sourceBundle.FacetsParams, apiBundle.FacetsParams...),
	}
}
