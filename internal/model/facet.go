package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FacetType is the closed enumeration of facet kinds the engine knows how
// to generate and apply. New values must not be added outside this file:
// the catalogue is data, not an open extension point.
type FacetType string

const (
	FacetReadme                FacetType = "Readme"
	FacetLicense               FacetType = "License"
	FacetSecurityPolicy        FacetType = "SecurityPolicy"
	FacetSecurityInsights      FacetType = "SecurityInsights"
	FacetScorecard             FacetType = "Scorecard"
	FacetGitignore             FacetType = "Gitignore"
	FacetSLSABuild             FacetType = "SLSABuild"
	FacetDependencyUpdateTool  FacetType = "DependencyUpdateTool"
	FacetFuzzing               FacetType = "Fuzzing"
	FacetDefaultSourceCode     FacetType = "DefaultSourceCode"
	FacetSAST                  FacetType = "SAST"
	FacetBranchProtection      FacetType = "BranchProtection"
	FacetVulnerabilityReporting FacetType = "VulnerabilityReporting"

	// Reserved tags: recognized as valid FacetType values so they round-trip
	// through FacetMapKey/JSON, but no generator in the catalogue produces
	// them yet.
	FacetSBOMGenerator        FacetType = "SBOMGenerator"
	FacetStaticCodeAnalysis   FacetType = "StaticCodeAnalysis"
	FacetCodeReview           FacetType = "CodeReview"
	FacetPublishPackages      FacetType = "PublishPackages"
	FacetPinnedDependencies   FacetType = "PinnedDependencies"
	FacetVulnerabilityScanner FacetType = "VulnerabilityScanner"
	FacetGUACForwardingConfig FacetType = "GUACForwardingConfig"
	FacetAllstar              FacetType = "Allstar"
	FacetOther                FacetType = "Other"
)

// allFacetTypes is used only to validate that a parsed FacetType string is
// one of the closed set.
var allFacetTypes = map[FacetType]struct{}{
	FacetReadme: {}, FacetLicense: {}, FacetSecurityPolicy: {}, FacetSecurityInsights: {},
	FacetScorecard: {}, FacetGitignore: {}, FacetSLSABuild: {}, FacetDependencyUpdateTool: {},
	FacetFuzzing: {}, FacetDefaultSourceCode: {}, FacetSAST: {}, FacetBranchProtection: {},
	FacetVulnerabilityReporting: {}, FacetSBOMGenerator: {}, FacetStaticCodeAnalysis: {},
	FacetCodeReview: {}, FacetPublishPackages: {}, FacetPinnedDependencies: {},
	FacetVulnerabilityScanner: {}, FacetGUACForwardingConfig: {}, FacetAllstar: {}, FacetOther: {},
}

func ParseFacetType(s string) (FacetType, error) {
	ft := FacetType(s)
	if _, ok := allFacetTypes[ft]; !ok {
		return "", NewError(KindInput, fmt.Sprintf("unknown facet type %q", s))
	}
	return ft, nil
}

// FacetMapKey is the key type for InitializedProject.Facets. It carries a
// discriminator (ByType vs. ByName) and round-trips through the string
// forms "Type: <FacetType>" and "Name: <string>".
type FacetMapKey struct {
	Kind string // "Type" or "Name"
	Type FacetType
	Name string
}

func ByType(t FacetType) FacetMapKey {
	return FacetMapKey{Kind: "Type", Type: t}
}

func ByName(name string) FacetMapKey {
	return FacetMapKey{Kind: "Name", Name: name}
}

func (k FacetMapKey) String() string {
	switch k.Kind {
	case "Type":
		return fmt.Sprintf("Type: %s", k.Type)
	case "Name":
		return fmt.Sprintf("Name: %s", k.Name)
	default:
		return ""
	}
}

// ParseFacetMapKey parses the wire form of a FacetMapKey.
func ParseFacetMapKey(s string) (FacetMapKey, error) {
	parts := strings.SplitN(s, ": ", 2)
	if len(parts) != 2 {
		return FacetMapKey{}, NewError(KindDecoding, fmt.Sprintf("invalid facet map key %q", s))
	}
	switch parts[0] {
	case "Name":
		return ByName(parts[1]), nil
	case "Type":
		t, err := ParseFacetType(parts[1])
		if err != nil {
			return FacetMapKey{}, WrapError(KindDecoding, fmt.Sprintf("invalid facet map key %q", s), err)
		}
		return ByType(t), nil
	default:
		return FacetMapKey{}, NewError(KindDecoding, fmt.Sprintf("invalid facet map key %q", s))
	}
}

func (k FacetMapKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *FacetMapKey) UnmarshalText(text []byte) error {
	parsed, err := ParseFacetMapKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// SourceFile is a content-addressed record of a written file: its name,
// its path relative to the source root, and the lowercase hex SHA-256 of
// its bytes at the moment of facet application. It serializes as the single
// string "name:path:hash", including when used as a map key.
type SourceFile struct {
	Name string
	Path string
	Hash string
}

func (f SourceFile) String() string {
	return fmt.Sprintf("%s:%s:%s", f.Name, f.Path, f.Hash)
}

func ParseSourceFile(s string) (SourceFile, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return SourceFile{}, NewError(KindDecoding, fmt.Sprintf("invalid source file encoding %q", s))
	}
	return SourceFile{Name: parts[0], Path: parts[1], Hash: parts[2]}, nil
}

func (f SourceFile) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *SourceFile) UnmarshalText(text []byte) error {
	parsed, err := ParseSourceFile(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// SourceFileContent is the transient (name, path, bytes) triple produced by
// a content generator before it is written to disk, or fetched back from
// the forge on demand. It is never persisted in the manifest.
type SourceFileContent struct {
	Name    string
	Path    string
	Content []byte
}

// RelPath is the file's path joined with its name, with any leading "./"
// stripped, matching the join getFacetWithContent performs against forge
// paths.
func (c SourceFileContent) RelPath() string {
	return JoinFacetPath(c.Path, c.Name)
}

// JoinFacetPath joins a facet-relative directory and file name into a single
// repo-relative path, stripping any leading "./".
func JoinFacetPath(path, name string) string {
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimSuffix(path, "/")
	if path == "" || path == "." {
		return name
	}
	return path + "/" + name
}

// APIContent is one record of a forge API call made by an APIBundle facet.
type APIContent struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Response string `json:"response"`
}

// SourceBundleFacet is a file-producing facet. Exactly one of SourceFiles
// (the persisted, hash-tracked form) and SourceFilesContent (the transient
// fetched-content form) is populated at any time.
type SourceBundleFacet struct {
	FacetType          FacetType
	SourceFiles        []SourceFile
	SourceFilesContent map[SourceFile][]byte
}

// APIBundleFacet is a forge-API-producing facet.
type APIBundleFacet struct {
	FacetType FacetType      `json:"facet_type"`
	APIs      []APIContent   `json:"apis"`
}

// Facet is the tagged-variant union of SourceBundleFacet and APIBundleFacet.
type Facet struct {
	Kind          string // "SourceBundle" or "APIBundle"
	SourceBundle  *SourceBundleFacet
	APIBundle     *APIBundleFacet
}

func NewSourceBundleFacet(f SourceBundleFacet) Facet {
	return Facet{Kind: "SourceBundle", SourceBundle: &f}
}

func NewAPIBundleFacet(f APIBundleFacet) Facet {
	return Facet{Kind: "APIBundle", APIBundle: &f}
}

func (f Facet) FacetType() FacetType {
	switch f.Kind {
	case "SourceBundle":
		return f.SourceBundle.FacetType
	case "APIBundle":
		return f.APIBundle.FacetType
	default:
		return ""
	}
}

type sourceBundleFacetWire struct {
	FacetType          FacetType         `json:"facet_type"`
	SourceFiles        []SourceFile      `json:"source_files,omitempty"`
	SourceFilesContent map[string]string `json:"source_files_content,omitempty"`
}

// marshalWire renders SourceFiles as their "name:path:hash" string form and
// SourceFilesContent keyed the same way, carrying each file's bytes as a
// plain JSON string (not base64).
func (f SourceBundleFacet) marshalWire() (sourceBundleFacetWire, error) {
	wire := sourceBundleFacetWire{FacetType: f.FacetType, SourceFiles: f.SourceFiles}
	if len(f.SourceFilesContent) > 0 {
		wire.SourceFilesContent = make(map[string]string, len(f.SourceFilesContent))
		for k, v := range f.SourceFilesContent {
			wire.SourceFilesContent[k.String()] = string(v)
		}
	}
	return wire, nil
}

type facetWire struct {
	SourceBundle *sourceBundleFacetWire `json:"SourceBundle,omitempty"`
	APIBundle    *APIBundleFacet        `json:"APIBundle,omitempty"`
}

func (f Facet) MarshalJSON() ([]byte, error) {
	switch f.Kind {
	case "SourceBundle":
		wire, err := f.SourceBundle.marshalWire()
		if err != nil {
			return nil, err
		}
		return json.Marshal(facetWire{SourceBundle: &wire})
	case "APIBundle":
		return json.Marshal(facetWire{APIBundle: f.APIBundle})
	default:
		return nil, NewError(KindInput, fmt.Sprintf("unknown Facet kind %q", f.Kind))
	}
}

func (f *Facet) UnmarshalJSON(data []byte) error {
	var wire facetWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return WrapError(KindDecoding, "decoding Facet", err)
	}
	switch {
	case wire.SourceBundle != nil:
		sb := SourceBundleFacet{FacetType: wire.SourceBundle.FacetType, SourceFiles: wire.SourceBundle.SourceFiles}
		if len(wire.SourceBundle.SourceFilesContent) > 0 {
			sb.SourceFilesContent = make(map[SourceFile][]byte, len(wire.SourceBundle.SourceFilesContent))
			for k, v := range wire.SourceBundle.SourceFilesContent {
				sf, err := ParseSourceFile(k)
				if err != nil {
					return err
				}
				sb.SourceFilesContent[sf] = []byte(v)
			}
		}
		*f = NewSourceBundleFacet(sb)
		return nil
	case wire.APIBundle != nil:
		*f = NewAPIBundleFacet(*wire.APIBundle)
		return nil
	default:
		return NewError(KindDecoding, "Facet has no recognized variant")
	}
}

// CommonFacetCreateParams carries the shared context every facet generator
// needs regardless of facet type.
type CommonFacetCreateParams struct {
	ProjectName string
	Source      InitializedSource
	Repo        InitializedRepo
	Ecosystem   InitializedEcosystem
}

// FacetCreateParams is the tagged-variant parameter set for creating a
// single facet: either a SourceBundle or an APIBundle request.
type FacetCreateParams struct {
	Kind              string // "SourceBundle" or "APIBundle"
	Common            CommonFacetCreateParams
	FacetType         FacetType
}

func NewSourceBundleCreateParams(common CommonFacetCreateParams, ft FacetType) FacetCreateParams {
	return FacetCreateParams{Kind: "SourceBundle", Common: common, FacetType: ft}
}

func NewAPIBundleCreateParams(common CommonFacetCreateParams, ft FacetType) FacetCreateParams {
	return FacetCreateParams{Kind: "APIBundle", Common: common, FacetType: ft}
}

// FacetSetCreateParams is an ordered sequence of facet-create params; order
// matters for the default plan split between source-bundle and api-bundle
// phases.
type FacetSetCreateParams struct {
	FacetsParams []FacetCreateParams
}
