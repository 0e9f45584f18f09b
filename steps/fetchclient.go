package steps

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/magicpod-ci/pipeline/config"
	"github.com/magicpod-ci/pipeline/pipeline"
	"github.com/magicpod-ci/pipeline/vendorclient"
)

// Workdir-relative defaults, overridable per step in the workflow definition.
const (
	DefaultArchiveName = "magicpod-api-client.zip"
	DefaultExtractDir  = "magicpod-api-client"
)

// newFetchClientStep builds the fetch/validate/extract sequence for the vendor
// client archive. Token resolution prefers the step's injected env over the
// process env, so a definition can point a local run at a different account.
func newFetchClientStep(cfg config.Config, def pipeline.StepDefinition) (pipeline.StepFunc, error) {
	endpoint := def.URL.OrElse(vendorclient.DefaultEndpoint)
	archiveName := def.Archive.OrElse(DefaultArchiveName)
	extractDir := def.Dir.OrElse(DefaultExtractDir)

	return func(ctx context.Context, sc *pipeline.StepContext) error {
		token := cfg.APIToken
		if v := sc.Env[config.EnvAPIToken]; v != "" {
			token = v
		}
		fetcher, err := vendorclient.NewFetcher(token,
			vendorclient.WithEndpoint(endpoint),
			vendorclient.WithLogger(sc.Logger))
		if err != nil {
			return fmt.Errorf("%s: %w", config.EnvAPIToken, err)
		}

		archivePath := filepath.Join(sc.Workdir, archiveName)
		dl, err := fetcher.Fetch(ctx, archivePath)
		if err != nil {
			return err
		}
		if err := vendorclient.Validate(dl); err != nil {
			return err
		}

		destDir := filepath.Join(sc.Workdir, extractDir)
		names, err := vendorclient.Extract(archivePath, destDir)
		if err != nil {
			return err
		}
		sc.Logger.Printf("Extracted %d entries to %s:", len(names), destDir)
		for _, name := range names {
			sc.Logger.Printf("  - %s", name)
		}
		return nil
	}, nil
}
