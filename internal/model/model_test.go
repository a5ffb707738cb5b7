package model

import "testing"

func TestInitializedGithubRepoFullURL(t *testing.T) {
	repo := NewInitializedGithubRepo(InitializedGithubRepo{
		Name:         "skootrs",
		Organization: NewGithubUserOrganization("kusaridev"),
	})
	if got := repo.HostURL(); got != "https://github.com" {
		t.Fatalf("HostURL() = %q, want https://github.com", got)
	}
	if got := repo.FullURL(); got != "https://github.com/kusaridev/skootrs" {
		t.Fatalf("FullURL() = %q, want https://github.com/kusaridev/skootrs", got)
	}
}

func TestParseRepoURL(t *testing.T) {
	repo, err := ParseRepoURL("https://github.com/kusaridev/skootrs")
	if err != nil {
		t.Fatalf("ParseRepoURL: %v", err)
	}
	if repo.FullURL() != "https://github.com/kusaridev/skootrs" {
		t.Fatalf("FullURL() = %q", repo.FullURL())
	}

	if _, err := ParseRepoURL("https://gitlab.com/kusaridev/skootrs"); KindOf(err) != KindUnsupported {
		t.Fatalf("expected Unsupported error for non-github host, got %v", err)
	}

	if _, err := ParseRepoURL("not a url \x7f"); KindOf(err) != KindInput {
		t.Fatalf("expected Input error for malformed URL, got %v", err)
	}
}

func TestFacetMapKeyRoundTrip(t *testing.T) {
	cases := []string{"Type: Readme", "Type: SecurityInsights", "Name: custom-thing"}
	for _, s := range cases {
		key, err := ParseFacetMapKey(s)
		if err != nil {
			t.Fatalf("ParseFacetMapKey(%q): %v", s, err)
		}
		if got := key.String(); got != s {
			t.Fatalf("round trip %q -> %q", s, got)
		}
	}

	key, err := ParseFacetMapKey("Type: Readme")
	if err != nil {
		t.Fatalf("ParseFacetMapKey: %v", err)
	}
	if key.Kind != "Type" || key.Type != FacetReadme {
		t.Fatalf("unexpected key %+v", key)
	}

	nameKey, err := ParseFacetMapKey("Name: x")
	if err != nil {
		t.Fatalf("ParseFacetMapKey: %v", err)
	}
	if nameKey.Kind != "Name" || nameKey.Name != "x" {
		t.Fatalf("unexpected key %+v", nameKey)
	}
}

func TestSourceFileRoundTrip(t *testing.T) {
	f := SourceFile{Name: "README.md", Path: "./", Hash: "deadbeef"}
	s := f.String()
	parsed, err := ParseSourceFile(s)
	if err != nil {
		t.Fatalf("ParseSourceFile(%q): %v", s, err)
	}
	if parsed != f {
		t.Fatalf("round trip mismatch: got %+v, want %+v", parsed, f)
	}
}

func TestJoinFacetPath(t *testing.T) {
	cases := []struct {
		path, name, want string
	}{
		{"./", "README.md", "README.md"},
		{".github/workflows", "codeql.yml", ".github/workflows/codeql.yml"},
		{"./.github/workflows", "scorecard.yml", ".github/workflows/scorecard.yml"},
	}
	for _, c := range cases {
		if got := JoinFacetPath(c.path, c.name); got != c.want {
			t.Fatalf("JoinFacetPath(%q, %q) = %q, want %q", c.path, c.name, got, c.want)
		}
	}
}

func TestInitializedProjectJSONRoundTrip(t *testing.T) {
	p := InitializedProject{
		Repo: NewInitializedGithubRepo(InitializedGithubRepo{
			Name:         "demo",
			Organization: NewGithubUserUser("alice"),
		}),
		Ecosystem: NewInitializedGoEcosystem(InitializedGo{Name: "demo", Host: "github.com/alice"}),
		Source:    InitializedSource{Path: "/tmp/demo"},
		Facets: map[FacetMapKey]Facet{
			ByType(FacetReadme): NewSourceBundleFacet(SourceBundleFacet{
				FacetType:   FacetReadme,
				SourceFiles: []SourceFile{{Name: "README.md", Path: "./", Hash: "abc123"}},
			}),
			ByType(FacetBranchProtection): NewAPIBundleFacet(APIBundleFacet{
				FacetType: FacetBranchProtection,
				APIs: []APIContent{
					{Name: "Enforce Branch Protection", URL: "/repos/alice/demo/branches/main/protection", Response: "{}"},
				},
			}),
		},
	}

	data, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var got InitializedProject
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}

	if got.Repo.FullURL() != p.Repo.FullURL() {
		t.Fatalf("repo mismatch: %q vs %q", got.Repo.FullURL(), p.Repo.FullURL())
	}
	if len(got.Facets) != len(p.Facets) {
		t.Fatalf("facet count mismatch: %d vs %d", len(got.Facets), len(p.Facets))
	}
	readme, ok := got.Facets[ByType(FacetReadme)]
	if !ok || readme.Kind != "SourceBundle" || len(readme.SourceBundle.SourceFiles) != 1 {
		t.Fatalf("unexpected readme facet: %+v", readme)
	}
}
