package steps

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/magicpod-ci/pipeline/config"
	"github.com/magicpod-ci/pipeline/pipeline"
)

// objectPutter is the slice of the S3 API the upload step uses.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Replaced in tests; the default builds a real client from the ambient AWS config.
var newObjectPutter = func(ctx context.Context) (objectPutter, error) { //nolint:gochecknoglobals
	awscfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}
	return s3.NewFromConfig(awscfg), nil
}

// newUploadStep copies the configured artifact files to S3. It is meant to run
// with "when: always" so results reach the bucket even after a failed run. When
// no bucket or no paths are configured, the step skips itself rather than
// failing; single-shot CI glue should not demand an artifact store it was never
// given. Like everything else in the run there are no retries.
func newUploadStep(cfg config.Config, def pipeline.StepDefinition) (pipeline.StepFunc, error) {
	bucket := def.Bucket.OrElse(cfg.ArtifactsBucket.OrElse(""))
	prefix := def.Prefix.OrElse(cfg.ArtifactsPrefix.OrElse(""))
	patterns := def.Paths

	return func(ctx context.Context, sc *pipeline.StepContext) error {
		if bucket == "" {
			return pipeline.SkipError{Reason: "no artifact bucket configured"}
		}
		if len(patterns) == 0 {
			return pipeline.SkipError{Reason: "no artifact paths configured"}
		}

		client, err := newObjectPutter(ctx)
		if err != nil {
			return err
		}

		uploaded := 0
		for _, pattern := range patterns {
			matches, err := filepath.Glob(filepath.Join(sc.Workdir, pattern))
			if err != nil {
				return fmt.Errorf("bad artifact pattern %q: %w", pattern, err)
			}
			if len(matches) == 0 {
				sc.Logger.Printf("no files match artifact pattern %q", pattern)
				continue
			}
			for _, match := range matches {
				n, err := uploadTree(ctx, client, sc, bucket, prefix, match)
				if err != nil {
					return err
				}
				uploaded += n
			}
		}
		sc.Logger.Printf("uploaded %d file(s) to s3://%s/%s", uploaded, bucket, prefix)
		return nil
	}, nil
}

// uploadTree uploads a single file, or every file under a directory.
func uploadTree(ctx context.Context, client objectPutter, sc *pipeline.StepContext,
	bucket, prefix, root string) (int, error) {
	count := 0
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(sc.Workdir, p)
		if err != nil {
			return err
		}
		key := path.Join(prefix, filepath.ToSlash(rel))

		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck

		_, err = client.PutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
			Body:   f,
		})
		if err != nil {
			return fmt.Errorf("uploading %s: %w", rel, err)
		}
		sc.Logger.Printf("uploaded %s -> s3://%s/%s", rel, bucket, key)
		count++
		return nil
	})
	return count, err
}
