package output

import (
	"testing"

	"github.com/google/go-github/v66/github"

	"github.com/kusaridev/skootrs/internal/model"
)

func TestAssetOutputType(t *testing.T) {
	cases := []struct {
		name string
		want model.ProjectOutputType
	}{
		{"app-linux-amd64.spdx.sbom.json", model.OutputSBOM()},
		{"app-linux-amd64.cdx.sbom.json", model.OutputSBOM()},
		{"app.intoto.jsonl", model.OutputInToto()},
		{"checksums.txt", model.OutputCustom("Unknown")},
	}
	for _, c := range cases {
		asset := github.ReleaseAsset{Name: github.String(c.name)}
		got := assetOutputType(asset)
		if got != c.want {
			t.Fatalf("assetOutputType(%q) = %+v, want %+v", c.name, got, c.want)
		}
	}
}
