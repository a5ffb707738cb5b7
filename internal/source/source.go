// Package source drives a local git working copy: clone, read, write, hash,
// commit-and-push.
package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/kusaridev/skootrs/internal/logging"
	"github.com/kusaridev/skootrs/internal/model"
)

// Service drives a local working copy of a project's source code.
type Service interface {
	Initialize(ctx context.Context, params model.SourceInitializeParams, repo model.InitializedRepo) (model.InitializedSource, error)
	CloneLocalOrPull(ctx context.Context, repo model.InitializedRepo, path string) (model.InitializedSource, error)
	WriteFile(source model.InitializedSource, relPath, name string, content []byte) error
	ReadFile(source model.InitializedSource, relPath, name string) (string, error)
	HashFile(source model.InitializedSource, relPath, name string) (string, error)
	CommitAndPush(ctx context.Context, source model.InitializedSource, message string) error
	PullUpdates(ctx context.Context, source model.InitializedSource) error
}

// LocalService runs VCS operations as subprocesses on the local machine.
type LocalService struct {
	Log logging.Logger
}

func NewLocalService(log logging.Logger) *LocalService {
	return &LocalService{Log: log}
}

// Initialize clones repo.FullUrl() into parentPath/<repoName>.
func (s *LocalService) Initialize(ctx context.Context, params model.SourceInitializeParams, repo model.InitializedRepo) (model.InitializedSource, error) {
	name := repoName(repo)
	cmd := exec.CommandContext(ctx, "git", "clone", repo.FullURL())
	cmd.Dir = params.ParentPath
	if out, err := cmd.CombinedOutput(); err != nil {
		return model.InitializedSource{}, model.WrapError(model.KindSubprocess, fmt.Sprintf("git clone failed: %s", out), err)
	}
	return model.InitializedSource{Path: params.Path(name)}, nil
}

// CloneLocalOrPull pulls if path is already a working copy (a `git status`
// query succeeds there), otherwise clones fresh.
func (s *LocalService) CloneLocalOrPull(ctx context.Context, repo model.InitializedRepo, path string) (model.InitializedSource, error) {
	statusCmd := exec.CommandContext(ctx, "git", "status")
	statusCmd.Dir = path
	if err := statusCmd.Run(); err == nil {
		pullCmd := exec.CommandContext(ctx, "git", "pull")
		pullCmd.Dir = path
		if out, err := pullCmd.CombinedOutput(); err != nil {
			return model.InitializedSource{}, model.WrapError(model.KindSubprocess, fmt.Sprintf("git pull failed: %s", out), err)
		}
		return model.InitializedSource{Path: path}, nil
	}

	name := repoName(repo)
	cloneCmd := exec.CommandContext(ctx, "git", "clone", repo.FullURL())
	cloneCmd.Dir = path
	if out, err := cloneCmd.CombinedOutput(); err != nil {
		return model.InitializedSource{}, model.WrapError(model.KindSubprocess, fmt.Sprintf("git clone failed: %s", out), err)
	}
	return model.InitializedSource{Path: filepath.Join(path, name)}, nil
}

// WriteFile mkdir-ps source.Path/relPath, then writes the full bytes.
func (s *LocalService) WriteFile(source model.InitializedSource, relPath, name string, content []byte) error {
	dir := filepath.Join(source.Path, relPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return model.WrapError(model.KindIO, fmt.Sprintf("creating directory %s", dir), err)
	}
	full := filepath.Join(dir, name)
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return model.WrapError(model.KindIO, fmt.Sprintf("writing file %s", full), err)
	}
	return nil
}

// ReadFile reads the full content of source.Path/relPath/name as text.
func (s *LocalService) ReadFile(source model.InitializedSource, relPath, name string) (string, error) {
	full := filepath.Join(source.Path, relPath, name)
	data, err := os.ReadFile(full)
	if err != nil {
		return "", model.WrapError(model.KindIO, fmt.Sprintf("reading file %s", full), err)
	}
	return string(data), nil
}

// HashFile streams the file's bytes through SHA-256 and returns the
// lowercase hex digest.
func (s *LocalService) HashFile(source model.InitializedSource, relPath, name string) (string, error) {
	full := filepath.Join(source.Path, relPath, name)
	f, err := os.Open(full)
	if err != nil {
		return "", model.WrapError(model.KindIO, fmt.Sprintf("opening file %s", full), err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", model.WrapError(model.KindIO, fmt.Sprintf("hashing file %s", full), err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// CommitAndPush stages everything, commits with message, and pushes to the
// remote's default branch. Every sub-operation must succeed.
func (s *LocalService) CommitAndPush(ctx context.Context, source model.InitializedSource, message string) error {
	steps := [][]string{
		{"add", "."},
		{"commit", "-m", message},
		{"push"},
	}
	for _, args := range steps {
		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = source.Path
		if out, err := cmd.CombinedOutput(); err != nil {
			return model.WrapError(model.KindSubprocess, fmt.Sprintf("git %v failed: %s", args, out), err)
		}
	}
	s.Log.Info("committed and pushed", "path", source.Path, "message", message)
	return nil
}

// PullUpdates fast-forward pulls the working copy.
func (s *LocalService) PullUpdates(ctx context.Context, source model.InitializedSource) error {
	cmd := exec.CommandContext(ctx, "git", "pull")
	cmd.Dir = source.Path
	if out, err := cmd.CombinedOutput(); err != nil {
		return model.WrapError(model.KindSubprocess, fmt.Sprintf("git pull failed: %s", out), err)
	}
	return nil
}

func repoName(repo model.InitializedRepo) string {
	switch repo.Kind {
	case "Github":
		return repo.Github.Name
	default:
		return ""
	}
}
