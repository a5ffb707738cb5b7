package facet

import (
	"fmt"

	"github.com/kusaridev/skootrs/internal/model"
)

// Ecosystem-specific facet content, currently for Go projects hosted on
// Github: .gitignore, goreleaser-driven SLSA build, dependabot, cifuzz, and
// a minimal default main.go.

const goGitignoreTemplate = `# Binaries
*.exe
*.exe~
*.dll
*.so
*.dylib

# Test binary, built with 'go test -c'
*.test

# Output of the go coverage tool
*.out

# Dependency directories
vendor/

# goreleaser
dist/
`

const goReleasesWorkflowTemplate = `name: goreleaser

on:
  push:
    tags:
      - 'v*'

permissions:
  contents: write
  id-token: write

jobs:
  goreleaser:
    runs-on: ubuntu-latest
    steps:
      - name: Checkout
        uses: actions/checkout@v4
        with:
          fetch-depth: 0
      - name: Set up Go
        uses: actions/setup-go@v5
        with:
          go-version-file: go.mod
      - name: Run GoReleaser
        uses: goreleaser/goreleaser-action@v6
        with:
          distribution: goreleaser
          version: latest
          args: release --clean
        env:
          GITHUB_TOKEN: ${{ secrets.GITHUB_TOKEN }}
`

const dockerfileGoreleaserTemplate = `FROM gcr.io/distroless/static:nonroot
COPY {{.ProjectName}} /{{.ProjectName}}
ENTRYPOINT ["/{{.ProjectName}}"]
`

const goreleaserYmlTemplate = `version: 2
project_name: {{.ProjectName}}

builds:
  - id: {{.ProjectName}}
    main: ./main.go
    binary: {{.ProjectName}}
    env:
      - CGO_ENABLED=0
    goos:
      - linux
      - windows
    goarch:
      - amd64
      - arm
      - arm64

sboms:
  - artifacts: binary

dockers:
  - image_templates:
      - "ghcr.io/{{.ModuleName}}:{{"{{"}} .Tag {{"}}"}}"
    dockerfile: Dockerfile.goreleaser
`

const dependabotTemplate = `version: 2
updates:
  - package-ecosystem: "{{.Ecosystem}}"
    directory: "/"
    schedule:
      interval: "daily"
`

const cifuzzTemplate = `name: CIFuzz

on: [pull_request]

jobs:
  Fuzzing:
    runs-on: ubuntu-latest
    steps:
      - name: Build Fuzzers
        id: build
        uses: google/oss-fuzz/infra/cifuzz/actions/build_fuzzers@master
        with:
          oss-fuzz-project-name: '{{.ProjectName}}'
          language: {{.Language}}
      - name: Run Fuzzers
        uses: google/oss-fuzz/infra/cifuzz/actions/run_fuzzers@master
        with:
          oss-fuzz-project-name: '{{.ProjectName}}'
          fuzz-seconds: 300
          language: {{.Language}}
`

const mainGoTemplate = `package main

import "fmt"

func main() {
	fmt.Println("Hello from {{.ProjectName}}!")
}
`

type dockerfileData struct {
	ProjectName string
}

type goreleaserData struct {
	ProjectName string
	ModuleName  string
}

type dependabotData struct {
	Ecosystem string
}

type fuzzingData struct {
	ProjectName string
	Language    string
}

type mainGoData struct {
	ProjectName string
}

// generateGoGithubContent handles the facet types whose content generator is
// specific to the Go ecosystem on Github: Gitignore, SLSABuild,
// DependencyUpdateTool, Fuzzing, DefaultSourceCode.
func generateGoGithubContent(params model.FacetCreateParams) ([]model.SourceFileContent, error) {
	switch params.FacetType {
	case model.FacetGitignore:
		return generateGitignoreContent(params)
	case model.FacetSLSABuild:
		return generateSLSABuildContent(params)
	case model.FacetDependencyUpdateTool:
		return generateDependencyUpdateToolContent(params)
	case model.FacetFuzzing:
		return generateFuzzingContent(params)
	case model.FacetDefaultSourceCode:
		return generateDefaultSourceCodeContent(params)
	default:
		return nil, model.NewError(model.KindUnsupported, fmt.Sprintf("no Go/Github content generator for facet %q", params.FacetType))
	}
}

func generateGitignoreContent(_ model.FacetCreateParams) ([]model.SourceFileContent, error) {
	content, err := render(".gitignore", goGitignoreTemplate, nil)
	if err != nil {
		return nil, err
	}
	return []model.SourceFileContent{{Name: ".gitignore", Path: "./", Content: content}}, nil
}

// generateSLSABuildContent produces the goreleaser-driven release pipeline.
// GoReleaser also generates SBOMs for the built binaries (the sboms block of
// .goreleaser.yml) as a side effect, so this single facet covers what would
// otherwise be a separate
// SBOMGenerator facet (see spec.md §9 design note 3 and DESIGN.md).
func generateSLSABuildContent(params model.FacetCreateParams) ([]model.SourceFileContent, error) {
	if params.Common.Ecosystem.Kind != "Go" {
		return nil, model.NewError(model.KindUnsupported, "SLSABuild is only implemented for the Go ecosystem")
	}
	module := params.Common.Ecosystem.Go.Module()

	workflow, err := render("releases.yml", goReleasesWorkflowTemplate, nil)
	if err != nil {
		return nil, err
	}
	dockerfile, err := render("Dockerfile.goreleaser", dockerfileGoreleaserTemplate, dockerfileData{ProjectName: params.Common.ProjectName})
	if err != nil {
		return nil, err
	}
	goreleaser, err := render(".goreleaser.yml", goreleaserYmlTemplate, goreleaserData{
		ProjectName: params.Common.ProjectName,
		ModuleName:  module,
	})
	if err != nil {
		return nil, err
	}

	return []model.SourceFileContent{
		{Name: "releases.yml", Path: ".github/workflows/", Content: workflow},
		{Name: "Dockerfile.goreleaser", Path: "./", Content: dockerfile},
		{Name: ".goreleaser.yml", Path: "./", Content: goreleaser},
	}, nil
}

func generateDependencyUpdateToolContent(_ model.FacetCreateParams) ([]model.SourceFileContent, error) {
	content, err := render("dependabot.yml", dependabotTemplate, dependabotData{Ecosystem: "gomod"})
	if err != nil {
		return nil, err
	}
	return []model.SourceFileContent{{Name: "dependabot.yml", Path: ".github/", Content: content}}, nil
}

func generateFuzzingContent(params model.FacetCreateParams) ([]model.SourceFileContent, error) {
	content, err := render("cifuzz.yml", cifuzzTemplate, fuzzingData{
		ProjectName: params.Common.ProjectName,
		Language:    "go",
	})
	if err != nil {
		return nil, err
	}
	return []model.SourceFileContent{{Name: "cifuzz.yml", Path: ".github/workflows/", Content: content}}, nil
}

func generateDefaultSourceCodeContent(params model.FacetCreateParams) ([]model.SourceFileContent, error) {
	content, err := render("main.go", mainGoTemplate, mainGoData{ProjectName: params.Common.ProjectName})
	if err != nil {
		return nil, err
	}
	return []model.SourceFileContent{{Name: "main.go", Path: "./", Content: content}}, nil
}
