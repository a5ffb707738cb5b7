package state

import (
	"context"
	"encoding/json"

	"github.com/kusaridev/skootrs/internal/model"
	"github.com/kusaridev/skootrs/internal/repo"
	"github.com/kusaridev/skootrs/internal/source"
)

// manifestName is the file a project's full InitializedProject state is
// serialized to at the repository root.
const manifestName = ".skootrs"

// SaveManifest serializes project and writes it into the local working copy,
// then commits and pushes it so the manifest is the forge's source of truth
// for `get`.
func SaveManifest(ctx context.Context, src source.Service, project model.InitializedProject, message string) error {
	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return model.WrapError(model.KindDecoding, "encoding project manifest", err)
	}
	if err := src.WriteFile(project.Source, "./", manifestName, data); err != nil {
		return err
	}
	return src.CommitAndPush(ctx, project.Source, message)
}

// LoadManifest fetches and decodes a project's manifest from the forge
// directly, rather than from the local working copy, since `get` must work
// without a prior local clone.
func LoadManifest(ctx context.Context, repoSvc repo.Service, initializedRepo model.InitializedRepo) (model.InitializedProject, error) {
	content, err := repoSvc.FetchFileContent(ctx, initializedRepo, manifestName)
	if err != nil {
		return model.InitializedProject{}, err
	}
	var project model.InitializedProject
	if err := json.Unmarshal([]byte(content), &project); err != nil {
		return model.InitializedProject{}, model.WrapError(model.KindDecoding, "decoding project manifest", err)
	}
	return project, nil
}
