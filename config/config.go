// Package config centralizes everything this tool reads from the process
// environment. The credentials of the external collaborators (TestRail URL, user,
// password, project and test-setting identifiers) are deliberately not modeled
// here: the sequencer passes them through to the collaborator subprocesses
// opaquely, via the per-step env injection in the workflow definition and the
// inherited process environment.
package config

import (
	"os"

	o "github.com/magicpod-ci/pipeline/framework/opt"
)

const (
	// EnvAPIToken holds the bearer token for the vendor API. Required by the
	// fetch-client step; checked there, before any network I/O.
	EnvAPIToken = "MAGICPOD_API_TOKEN"

	// EnvArtifactsBucket and EnvArtifactsPrefix configure the upload-artifacts
	// step. A workflow definition's own bucket/prefix fields take precedence; the
	// step skips itself if neither source names a bucket.
	EnvArtifactsBucket = "PIPELINE_ARTIFACTS_BUCKET"
	EnvArtifactsPrefix = "PIPELINE_ARTIFACTS_PREFIX"
)

type Config struct {
	APIToken        string
	ArtifactsBucket o.Maybe[string]
	ArtifactsPrefix o.Maybe[string]
}

// FromEnv snapshots the relevant environment variables. Nothing is validated
// here; each step validates what it actually needs so that, for instance, a
// missing API token does not break a run whose filters exclude fetch-client.
func FromEnv() Config {
	c := Config{APIToken: os.Getenv(EnvAPIToken)}
	if v, ok := os.LookupEnv(EnvArtifactsBucket); ok && v != "" {
		c.ArtifactsBucket = o.Some(v)
	}
	if v, ok := os.LookupEnv(EnvArtifactsPrefix); ok && v != "" {
		c.ArtifactsPrefix = o.Some(v)
	}
	return c
}
