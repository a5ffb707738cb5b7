package model

import "encoding/json"

// ProjectCreateParams are the parameters for bootstrapping a new project:
// a name, the forge-specific repo-create variant, the ecosystem-init
// variant, and the local source parent path.
type ProjectCreateParams struct {
	Name            string
	RepoParams      RepoCreateParams
	EcosystemParams EcosystemParams
	SourceParams    SourceInitializeParams
}

// ProjectGetParams identify an existing project by its repo URL.
type ProjectGetParams struct {
	ProjectURL string `json:"project_url"`
}

// ProjectArchiveParams carry the project to archive.
type ProjectArchiveParams struct {
	InitializedProject InitializedProject
}

// FacetGetParams identify a single facet within a project.
type FacetGetParams struct {
	ProjectGetParams ProjectGetParams
	FacetMapKey      FacetMapKey
}

// InitializedProject is the full state of a bootstrapped project: its repo,
// ecosystem, source working copy, and the facets applied to it. This is the
// type serialized to `.skootrs` at the repo root.
type InitializedProject struct {
	Repo      InitializedRepo
	Ecosystem InitializedEcosystem
	Source    InitializedSource
	Facets    map[FacetMapKey]Facet
}

type initializedProjectWire struct {
	Repo      InitializedRepo       `json:"repo"`
	Ecosystem InitializedEcosystem  `json:"ecosystem"`
	Source    InitializedSource     `json:"source"`
	Facets    map[string]Facet      `json:"facets"`
}

func (p InitializedProject) MarshalJSON() ([]byte, error) {
	wire := initializedProjectWire{
		Repo:      p.Repo,
		Ecosystem: p.Ecosystem,
		Source:    p.Source,
		Facets:    make(map[string]Facet, len(p.Facets)),
	}
	for k, v := range p.Facets {
		wire.Facets[k.String()] = v
	}
	return json.Marshal(wire)
}

func (p *InitializedProject) UnmarshalJSON(data []byte) error {
	var wire initializedProjectWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return WrapError(KindDecoding, "decoding InitializedProject", err)
	}
	facets := make(map[FacetMapKey]Facet, len(wire.Facets))
	for k, v := range wire.Facets {
		key, err := ParseFacetMapKey(k)
		if err != nil {
			return err
		}
		facets[key] = v
	}
	*p = InitializedProject{Repo: wire.Repo, Ecosystem: wire.Ecosystem, Source: wire.Source, Facets: facets}
	return nil
}

// ProjectReleaseParam selects either a tagged release or the latest one.
type ProjectReleaseParam struct {
	Latest bool
	Tag    string
}

func ReleaseByTag(tag string) ProjectReleaseParam {
	return ProjectReleaseParam{Tag: tag}
}

func ReleaseLatest() ProjectReleaseParam {
	return ProjectReleaseParam{Latest: true}
}

// ProjectOutputType classifies a release asset: SBOM, InToto, or an
// unrecognized custom kind.
type ProjectOutputType struct {
	Kind   string // "SBOM", "InToto", or "Custom"
	Custom string
}

func OutputSBOM() ProjectOutputType          { return ProjectOutputType{Kind: "SBOM"} }
func OutputInToto() ProjectOutputType        { return ProjectOutputType{Kind: "InToto"} }
func OutputCustom(name string) ProjectOutputType {
	return ProjectOutputType{Kind: "Custom", Custom: name}
}

// ProjectOutputReference names a release asset and its classification.
type ProjectOutputReference struct {
	Name       string
	OutputType ProjectOutputType
}

// ProjectOutput is a fetched release asset with its text content.
type ProjectOutput struct {
	Reference ProjectOutputReference
	Output    string
}

// ProjectOutputsListParams request the outputs of a release.
type ProjectOutputsListParams struct {
	InitializedProject InitializedProject
	Release            ProjectReleaseParam
}

// ProjectOutputParams request a single named output of a release.
type ProjectOutputParams struct {
	InitializedProject InitializedProject
	Release            ProjectReleaseParam
	Name               string
}

// Config is the root configuration the engine's collaborators are
// constructed from.
type Config struct {
	// LocalProjectPath is the parent directory working copies are cloned
	// under.
	LocalProjectPath string
	// ReferenceCachePath is the path to the local JSON set of known
	// project URLs.
	ReferenceCachePath string
}

func DefaultConfig() Config {
	return Config{
		LocalProjectPath:   ".",
		ReferenceCachePath: "./skootcache",
	}
}
