// Package config loads the engine's environment-based configuration.
package config

import (
	"os"
	"strings"

	"github.com/kusaridev/skootrs/internal/model"
)

// Config is the environment-derived configuration the engine's
// collaborators are constructed from.
type Config struct {
	model.Config

	// GitHubToken authenticates every forge-touching operation. It is not
	// validated eagerly by Load: per the external interface contract, the
	// credential is only required once a forge operation is actually
	// attempted, not at process start.
	GitHubToken string
}

// Load reads the process environment into a Config. SKOOTRS_PROJECT_PATH
// and SKOOTRS_REFERENCE_CACHE fall back to their documented defaults;
// GITHUB_TOKEN is read as-is and validated lazily by whichever driver needs
// it (RequireGitHubToken).
func Load() Config {
	defaults := model.DefaultConfig()
	return Config{
		Config: model.Config{
			LocalProjectPath:   env("SKOOTRS_PROJECT_PATH", defaults.LocalProjectPath),
			ReferenceCachePath: env("SKOOTRS_REFERENCE_CACHE", defaults.ReferenceCachePath),
		},
		GitHubToken: env("GITHUB_TOKEN", ""),
	}
}

// RequireGitHubToken returns the configured token or an Auth error if it is
// unset, for use at the point a forge operation actually needs it.
func (c Config) RequireGitHubToken() (string, error) {
	if strings.TrimSpace(c.GitHubToken) == "" {
		return "", model.NewError(model.KindAuth, "GITHUB_TOKEN environment variable is required for forge operations")
	}
	return c.GitHubToken, nil
}

func env(key, def string) string {
	if v := os.Getenv(key); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}
