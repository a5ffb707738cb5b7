package facet

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kusaridev/skootrs/internal/model"
	"github.com/kusaridev/skootrs/internal/repo"
)

// fetchSourceBundleContent concurrently fetches every tracked SourceFile's
// current bytes from the forge, returning a SourceBundleFacet with
// SourceFilesContent populated and SourceFiles left empty (exactly one of
// the two is populated at a time, per the model).
func fetchSourceBundleContent(ctx context.Context, repoSvc repo.Service, initializedRepo model.InitializedRepo, sb model.SourceBundleFacet) (model.Facet, error) {
	content := make(map[model.SourceFile][]byte, len(sb.SourceFiles))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, sf := range sb.SourceFiles {
		sf := sf
		g.Go(func() error {
			relPath := model.JoinFacetPath(sf.Path, sf.Name)
			text, err := repoSvc.FetchFileContent(gctx, initializedRepo, relPath)
			if err != nil {
				return err
			}
			mu.Lock()
			content[sf] = []byte(text)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Facet{}, err
	}

	return model.NewSourceBundleFacet(model.SourceBundleFacet{
		FacetType:          sb.FacetType,
		SourceFilesContent: content,
	}), nil
}
