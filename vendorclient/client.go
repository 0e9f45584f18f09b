package vendorclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/magicpod-ci/pipeline/framework"
	"github.com/magicpod-ci/pipeline/framework/helpers"
)

// DefaultEndpoint is the fixed vendor URL that serves the API client archive.
const DefaultEndpoint = "https://app.magicpod.com/api/v1.0/client/"

const defaultUserAgent = "magicpod-ci-pipeline/1.0"

const fetchTimeout = time.Second * 30

// Download is the result of fetching the client archive: the file the response body
// was written to, plus the response metadata that the validation stages inspect.
// The status code is captured separately from the body on purpose; a non-200
// response body is still written to disk so diagnostics can quote a sanitized
// excerpt of it.
type Download struct {
	Path        string
	StatusCode  int
	ContentType string
	Size        int64
}

// Fetcher issues the single authenticated GET for the client archive.
type Fetcher struct {
	endpoint   string
	token      string
	userAgent  string
	httpClient *http.Client
	logger     framework.Logger
}

type FetcherOption helpers.ConfigOption[Fetcher]

type fetcherOptionEndpoint struct{ url string }

func (o fetcherOptionEndpoint) Configure(f *Fetcher) error {
	f.endpoint = o.url
	return nil
}

// WithEndpoint overrides the vendor URL. Tests point this at a mock service.
func WithEndpoint(url string) FetcherOption {
	return fetcherOptionEndpoint{url}
}

type fetcherOptionHTTPClient struct{ client *http.Client }

func (o fetcherOptionHTTPClient) Configure(f *Fetcher) error {
	f.httpClient = o.client
	return nil
}

func WithHTTPClient(client *http.Client) FetcherOption {
	return fetcherOptionHTTPClient{client}
}

type fetcherOptionLogger struct{ logger framework.Logger }

func (o fetcherOptionLogger) Configure(f *Fetcher) error {
	f.logger = o.logger
	return nil
}

func WithLogger(logger framework.Logger) FetcherOption {
	return fetcherOptionLogger{logger}
}

// NewFetcher creates a Fetcher for the given API token. A missing token is a
// configuration error and is rejected here, before any network I/O happens.
func NewFetcher(token string, options ...FetcherOption) (*Fetcher, error) {
	if token == "" {
		return nil, errors.New("API token is not set")
	}
	f := &Fetcher{
		endpoint:   DefaultEndpoint,
		token:      token,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: fetchTimeout},
		logger:     framework.NullLogger(),
	}
	if err := helpers.ApplyOptions(f, options...); err != nil {
		return nil, err
	}
	return f, nil
}

// Fetch performs exactly one GET against the vendor endpoint and streams the
// response body to destPath. It does not judge the response: a non-200 status is
// recorded in the returned Download and left for Validate to reject. Only
// transport-level failures (connection refused, timeout, unwritable destination)
// produce an error here.
func (f *Fetcher) Fetch(ctx context.Context, destPath string) (*Download, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", f.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+f.token)
	req.Header.Set("Accept", "application/zip")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to vendor API failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	f.logger.Printf("HTTP status code: %d", resp.StatusCode)
	f.logger.Printf("Content-Type: %s", resp.Header.Get("Content-Type"))

	out, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("cannot create archive file: %w", err)
	}
	size, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("writing archive file: %w", err)
	}
	f.logger.Printf("Downloaded %d bytes to %s", size, destPath)

	return &Download{
		Path:        destPath,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Size:        size,
	}, nil
}
