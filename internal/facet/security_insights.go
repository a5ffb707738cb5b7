package facet

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kusaridev/skootrs/internal/model"
)

// securityInsights is a Go rendering of the OSSF SECURITY-INSIGHTS 1.0.0
// schema, restricted to the fields this engine actually populates. See
// https://github.com/ossf/security-insights-spec for the full schema.
type securityInsights struct {
	Header                 securityInsightsHeader                 `yaml:"header"`
	ProjectLifecycle       securityInsightsProjectLifecycle       `yaml:"project-lifecycle"`
	ContributionPolicy     securityInsightsContributionPolicy     `yaml:"contribution-policy"`
	VulnerabilityReporting securityInsightsVulnerabilityReporting `yaml:"vulnerability-reporting"`
	Dependencies           *securityInsightsDependencies          `yaml:"dependencies,omitempty"`
}

type securityInsightsHeader struct {
	SchemaVersion  string    `yaml:"schema-version"`
	ExpirationDate time.Time `yaml:"expiration-date"`
	LastReviewed   time.Time `yaml:"last-reviewed"`
	LastUpdated    time.Time `yaml:"last-updated"`
	ProjectURL     string    `yaml:"project-url"`
	License        string    `yaml:"license"`
}

type securityInsightsProjectLifecycle struct {
	Status        string `yaml:"status"`
	BugFixesOnly  bool   `yaml:"bug-fixes-only"`
}

type securityInsightsContributionPolicy struct {
	AcceptsPullRequests          bool `yaml:"accepts-pull-requests"`
	AcceptsAutomatedPullRequests bool `yaml:"accepts-automated-pull-requests"`
}

type securityInsightsVulnerabilityReporting struct {
	AcceptsVulnerabilityReports bool   `yaml:"accepts-vulnerability-reports"`
	SecurityPolicy              string `yaml:"security-policy"`
}

type securityInsightsDependencies struct {
	DependenciesLists []string                  `yaml:"dependencies-lists"`
	SBOM              []securityInsightsSBOMItem `yaml:"sbom"`
}

type securityInsightsSBOMItem struct {
	SBOMCreation string `yaml:"sbom-creation"`
	SBOMFile     string `yaml:"sbom-file"`
	SBOMFormat   string `yaml:"sbom-format"`
	SBOMURL      string `yaml:"sbom-url"`
}

// goreleaserSBOMNames is the hard-coded set of GoReleaser output names the
// SecurityInsights facet enumerates SBOM references for. See spec.md §9
// Open Question 3 / DESIGN.md: kept hard-coded rather than derived from an
// actual release, matching original_source exactly.
var goreleaserSBOMNames = []string{
	"main-linux-amd64",
	"main-linux-arm",
	"main-linux-arm64",
	"main-windows-amd64.exe",
	"main",
}

func generateSecurityInsightsContent(params model.FacetCreateParams) ([]model.SourceFileContent, error) {
	projectURL := params.Common.Repo.FullURL()
	now := time.Now().UTC()

	insights := securityInsights{
		Header: securityInsightsHeader{
			SchemaVersion:  "1.0.0",
			ExpirationDate: now.AddDate(1, 0, 0),
			LastReviewed:   now,
			LastUpdated:    now,
			ProjectURL:     projectURL,
			License:        fmt.Sprintf("%s/blob/main/LICENSE", projectURL),
		},
		ProjectLifecycle: securityInsightsProjectLifecycle{
			Status:       "Active",
			BugFixesOnly: false,
		},
		ContributionPolicy: securityInsightsContributionPolicy{
			AcceptsPullRequests:          true,
			AcceptsAutomatedPullRequests: true,
		},
		VulnerabilityReporting: securityInsightsVulnerabilityReporting{
			AcceptsVulnerabilityReports: true,
			SecurityPolicy:              fmt.Sprintf("%s/blob/main/SECURITY.md", projectURL),
		},
	}

	if params.Common.Ecosystem.Kind == "Go" && params.Common.Repo.Kind == "Github" {
		sbom := make([]securityInsightsSBOMItem, 0, len(goreleaserSBOMNames))
		for _, name := range goreleaserSBOMNames {
			sbom = append(sbom, securityInsightsSBOMItem{
				SBOMCreation: "Created by goreleaser",
				SBOMFile:     fmt.Sprintf("%s/releases/latest/download/%s.spdx.sbom.json", projectURL, name),
				SBOMFormat:   "SPDX",
				SBOMURL:      "https://spdx.github.io/spdx-spec/v2.3/",
			})
		}
		insights.Dependencies = &securityInsightsDependencies{
			DependenciesLists: []string{fmt.Sprintf("%s/blob/main/go.mod", projectURL)},
			SBOM:              sbom,
		}
	}

	content, err := yaml.Marshal(insights)
	if err != nil {
		return nil, model.WrapError(model.KindDecoding, "marshaling SECURITY-INSIGHTS.yml", err)
	}

	return []model.SourceFileContent{{Name: "SECURITY-INSIGHTS.yml", Path: "./", Content: content}}, nil
}
