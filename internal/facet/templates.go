package facet

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/kusaridev/skootrs/internal/model"
)

// render executes a named template against data and returns its bytes. This
// is the standard-library stand-in for the original implementation's
// compile-time askama templates; see DESIGN.md for why text/template (not a
// third-party templating library) is the right fit here.
func render(name, tmplText string, data any) ([]byte, error) {
	tmpl, err := template.New(name).Parse(tmplText)
	if err != nil {
		return nil, model.WrapError(model.KindIO, fmt.Sprintf("parsing %s template", name), err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, model.WrapError(model.KindIO, fmt.Sprintf("rendering %s template", name), err)
	}
	return buf.Bytes(), nil
}

const readmeTemplate = `# {{.ProjectName}}

TODO: describe what {{.ProjectName}} does.

## Security

See [SECURITY.md](./SECURITY.md) for how to report a vulnerability, and
[SECURITY-INSIGHTS.yml](./SECURITY-INSIGHTS.yml) for this project's security
posture metadata.
`

const licenseTemplate = `                                 Apache License
                           Version 2.0, January 2004

Copyright {{.Year}} {{.ProjectName}} Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
`

const securityPolicyTemplate = `# Security Policy

## Reporting a Vulnerability

Please report security vulnerabilities privately, using Github's private
vulnerability reporting feature on this repository, rather than filing a
public issue.

We will acknowledge reports within 5 business days.
`

const scorecardTemplate = `name: Scorecard supply-chain security
on:
  branch_protection_rule:
  schedule:
    - cron: '30 1 * * 6'
  push:
    branches: [main]

permissions: read-all

jobs:
  analysis:
    name: Scorecard analysis
    runs-on: ubuntu-latest
    permissions:
      security-events: write
      id-token: write
    steps:
      - name: Checkout code
        uses: actions/checkout@v4
        with:
          persist-credentials: false
      - name: Run analysis
        uses: ossf/scorecard-action@v2
        with:
          results_file: results.sarif
          results_format: sarif
          publish_results: true
      - name: Upload to code-scanning
        uses: github/codeql-action/upload-sarif@v3
        with:
          sarif_file: results.sarif
`

const codeqlTemplate = `name: CodeQL
on:
  push:
    branches: [main]
  pull_request:
    branches: [main]
  schedule:
    - cron: '22 4 * * 1'

jobs:
  analyze:
    name: Analyze
    runs-on: ubuntu-latest
    permissions:
      security-events: write
    strategy:
      matrix:
        language: ['go']
    steps:
      - name: Checkout repository
        uses: actions/checkout@v4
      - name: Initialize CodeQL
        uses: github/codeql-action/init@v3
        with:
          languages: ${{ matrix.language }}
      - name: Autobuild
        uses: github/codeql-action/autobuild@v3
      - name: Perform CodeQL Analysis
        uses: github/codeql-action/analyze@v3
`

type readmeData struct {
	ProjectName string
}

type licenseData struct {
	ProjectName string
	Year        int
}

// generateDefaultContent handles the facet types whose content generator is
// ecosystem-independent: Readme, License, SecurityPolicy, Scorecard, SAST,
// SecurityInsights.
func generateDefaultContent(params model.FacetCreateParams) ([]model.SourceFileContent, error) {
	switch params.FacetType {
	case model.FacetReadme:
		return generateReadmeContent(params)
	case model.FacetLicense:
		return generateLicenseContent(params)
	case model.FacetSecurityPolicy:
		return generateSecurityPolicyContent(params)
	case model.FacetScorecard:
		return generateScorecardContent(params)
	case model.FacetSAST:
		return generateSASTContent(params)
	case model.FacetSecurityInsights:
		return generateSecurityInsightsContent(params)
	default:
		return nil, model.NewError(model.KindUnsupported, fmt.Sprintf("no default content generator for facet %q", params.FacetType))
	}
}

func generateReadmeContent(params model.FacetCreateParams) ([]model.SourceFileContent, error) {
	content, err := render("README.md", readmeTemplate, readmeData{ProjectName: params.Common.ProjectName})
	if err != nil {
		return nil, err
	}
	return []model.SourceFileContent{{Name: "README.md", Path: "./", Content: content}}, nil
}

func generateLicenseContent(params model.FacetCreateParams) ([]model.SourceFileContent, error) {
	content, err := render("LICENSE", licenseTemplate, licenseData{
		ProjectName: params.Common.ProjectName,
		Year:        currentYear(),
	})
	if err != nil {
		return nil, err
	}
	return []model.SourceFileContent{{Name: "LICENSE", Path: "./", Content: content}}, nil
}

func generateSecurityPolicyContent(_ model.FacetCreateParams) ([]model.SourceFileContent, error) {
	content, err := render("SECURITY.md", securityPolicyTemplate, nil)
	if err != nil {
		return nil, err
	}
	return []model.SourceFileContent{{Name: "SECURITY.md", Path: "./", Content: content}}, nil
}

func generateScorecardContent(_ model.FacetCreateParams) ([]model.SourceFileContent, error) {
	content, err := render("scorecard.yml", scorecardTemplate, nil)
	if err != nil {
		return nil, err
	}
	return []model.SourceFileContent{{Name: "scorecard.yml", Path: "./.github/workflows", Content: content}}, nil
}

func generateSASTContent(_ model.FacetCreateParams) ([]model.SourceFileContent, error) {
	content, err := render("codeql.yml", codeqlTemplate, nil)
	if err != nil {
		return nil, err
	}
	return []model.SourceFileContent{{Name: "codeql.yml", Path: "./.github/workflows", Content: content}}, nil
}
