// Package ecosystem initializes the language/packaging tooling of a newly
// cloned working copy.
package ecosystem

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/kusaridev/skootrs/internal/logging"
	"github.com/kusaridev/skootrs/internal/model"
)

// Service initializes a project's ecosystem tooling.
type Service interface {
	Initialize(ctx context.Context, params model.EcosystemParams, source model.InitializedSource) (model.InitializedEcosystem, error)
}

// LocalService runs ecosystem initialization tooling as a subprocess on the
// local machine.
type LocalService struct {
	Log logging.Logger
}

func NewLocalService(log logging.Logger) *LocalService {
	return &LocalService{Log: log}
}

func (s *LocalService) Initialize(ctx context.Context, params model.EcosystemParams, source model.InitializedSource) (model.InitializedEcosystem, error) {
	switch params.Kind {
	case "Maven":
		if err := initializeMaven(ctx, source.Path, *params.Maven); err != nil {
			return model.InitializedEcosystem{}, err
		}
		s.Log.Info("initialized maven project", "artifactId", params.Maven.ArtifactID)
		return model.NewInitializedMavenEcosystem(model.InitializedMaven{
			GroupID:    params.Maven.GroupID,
			ArtifactID: params.Maven.ArtifactID,
		}), nil
	case "Go":
		if err := initializeGo(ctx, source.Path, *params.Go); err != nil {
			return model.InitializedEcosystem{}, err
		}
		s.Log.Info("initialized go module", "name", params.Go.Name)
		return model.NewInitializedGoEcosystem(model.InitializedGo{
			Name: params.Go.Name,
			Host: params.Go.Host,
		}), nil
	default:
		return model.InitializedEcosystem{}, model.NewError(model.KindUnsupported, fmt.Sprintf("unsupported ecosystem %q", params.Kind))
	}
}

func initializeMaven(ctx context.Context, path string, params model.MavenParams) error {
	cmd := exec.CommandContext(ctx, "mvn",
		"archetype:generate",
		fmt.Sprintf("-DgroupId=%s", params.GroupID),
		fmt.Sprintf("-DartifactId=%s", params.ArtifactID),
		"-DarchetypeArtifactId=maven-archetype-quickstart",
		"-DinteractiveMode=false",
	)
	cmd.Dir = path
	out, err := cmd.CombinedOutput()
	if err != nil {
		return model.WrapError(model.KindSubprocess, fmt.Sprintf("mvn archetype:generate failed: %s", out), err)
	}
	return nil
}

func initializeGo(ctx context.Context, path string, params model.GoParams) error {
	cmd := exec.CommandContext(ctx, "go", "mod", "init", params.Module())
	cmd.Dir = path
	out, err := cmd.CombinedOutput()
	if err != nil {
		return model.WrapError(model.KindSubprocess, fmt.Sprintf("go mod init failed: %s", out), err)
	}
	return nil
}
