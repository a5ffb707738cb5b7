package facet

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"

	"github.com/kusaridev/skootrs/internal/logging"
	"github.com/kusaridev/skootrs/internal/model"
	"github.com/kusaridev/skootrs/internal/source"
)

func testCommonParams(t *testing.T) model.CommonFacetCreateParams {
	t.Helper()
	return model.CommonFacetCreateParams{
		ProjectName: "demo",
		Source:      model.InitializedSource{Path: t.TempDir()},
		Repo: model.NewInitializedGithubRepo(model.InitializedGithubRepo{
			Name:         "demo",
			Organization: model.NewGithubUserUser("alice"),
		}),
		Ecosystem: model.NewInitializedGoEcosystem(model.InitializedGo{Name: "demo", Host: "github.com/alice"}),
	}
}

func TestDefaultPlanOrdering(t *testing.T) {
	common := testCommonParams(t)
	plan := PlanGenerator{}.GenerateDefault(common)

	if len(plan.FacetsParams) != len(defaultSourceBundleFacets)+len(defaultAPIBundleFacets) {
		t.Fatalf("unexpected plan length %d", len(plan.FacetsParams))
	}

	sawAPIBundle := false
	for _, p := range plan.FacetsParams {
		if p.Kind == "APIBundle" {
			sawAPIBundle = true
			continue
		}
		if sawAPIBundle {
			t.Fatalf("source-bundle facet %q appears after an api-bundle facet", p.FacetType)
		}
	}
}

func TestInitializeSourceBundleWritesAndHashes(t *testing.T) {
	common := testCommonParams(t)
	svc := NewLocalService(logging.New(logr.Discard()), source.NewLocalService(logging.New(logr.Discard())), "")

	f, err := svc.Initialize(context.Background(), model.NewSourceBundleCreateParams(common, model.FacetReadme))
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if f.Kind != "SourceBundle" {
		t.Fatalf("expected SourceBundle facet, got %q", f.Kind)
	}
	if len(f.SourceBundle.SourceFiles) != 1 {
		t.Fatalf("expected 1 source file, got %d", len(f.SourceBundle.SourceFiles))
	}
	sf := f.SourceBundle.SourceFiles[0]
	if sf.Name != "README.md" || sf.Hash == "" {
		t.Fatalf("unexpected source file %+v", sf)
	}
}

func TestInitializeAllConcurrentSourceBundle(t *testing.T) {
	common := testCommonParams(t)
	svc := NewLocalService(logging.New(logr.Discard()), source.NewLocalService(logging.New(logr.Discard())), "")

	plan := PlanGenerator{}.GenerateDefaultSourceBundle(common)
	facets, err := svc.InitializeAll(context.Background(), plan)
	if err != nil {
		t.Fatalf("InitializeAll: %v", err)
	}
	if len(facets) != len(defaultSourceBundleFacets) {
		t.Fatalf("expected %d facets, got %d", len(defaultSourceBundleFacets), len(facets))
	}
	for i, f := range facets {
		if f.FacetType() != defaultSourceBundleFacets[i] {
			t.Fatalf("facet %d: expected type %q, got %q", i, defaultSourceBundleFacets[i], f.FacetType())
		}
	}
}

func TestGenerateSecurityInsightsContent(t *testing.T) {
	common := testCommonParams(t)
	contents, err := generateSecurityInsightsContent(model.NewSourceBundleCreateParams(common, model.FacetSecurityInsights))
	if err != nil {
		t.Fatalf("generateSecurityInsightsContent: %v", err)
	}
	if len(contents) != 1 || contents[0].Name != "SECURITY-INSIGHTS.yml" {
		t.Fatalf("unexpected contents %+v", contents)
	}

	var parsed securityInsights
	if err := yaml.Unmarshal(contents[0].Content, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.Header.ProjectURL != "https://github.com/alice/demo" {
		t.Fatalf("unexpected project url %q", parsed.Header.ProjectURL)
	}
	if parsed.VulnerabilityReporting.SecurityPolicy != "https://github.com/alice/demo/blob/main/SECURITY.md" {
		t.Fatalf("unexpected security policy url %q", parsed.VulnerabilityReporting.SecurityPolicy)
	}
	if parsed.Dependencies == nil || len(parsed.Dependencies.SBOM) != 5 {
		t.Fatalf("expected 5 SBOM entries, got %+v", parsed.Dependencies)
	}
}

func TestUnsupportedEcosystemFacetCombination(t *testing.T) {
	common := testCommonParams(t)
	common.Ecosystem = model.NewInitializedMavenEcosystem(model.InitializedMaven{GroupID: "org.example", ArtifactID: "demo"})

	svc := NewLocalService(logging.New(logr.Discard()), source.NewLocalService(logging.New(logr.Discard())), "")
	_, err := svc.Initialize(context.Background(), model.NewSourceBundleCreateParams(common, model.FacetSLSABuild))
	if model.KindOf(err) != model.KindUnsupported {
		t.Fatalf("expected Unsupported error, got %v", err)
	}
}
