// Package fetch downloads remote template and framework artifacts.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	oerrors "github.com/nawah-io/cli/internal/errors"
	"github.com/nawah-io/cli/internal/output"
)

// Fetcher retrieves a remote resource onto the local filesystem.
type Fetcher interface {
	// Fetch downloads url to dst, replacing any existing file, and returns
	// the number of bytes written.
	Fetch(ctx context.Context, url, dst string) (int64, error)

	// FetchTemp downloads url to a new temporary file and returns its path.
	// The caller removes it.
	FetchTemp(ctx context.Context, url string) (string, error)
}

// DefaultTimeout bounds a single transfer.
const DefaultTimeout = 5 * time.Minute

// HTTPFetcher issues plain GET requests. There is no retry and no checksum
// verification.
type HTTPFetcher struct {
	client  *http.Client
	fs      afero.Fs
	logger  *log.Logger
	tempDir string
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTempDir sets where FetchTemp creates files. Empty means the OS default.
func WithTempDir(dir string) Option {
	return func(f *HTTPFetcher) {
		f.tempDir = dir
	}
}

// NewHTTPFetcher creates a fetcher writing to fs.
func NewHTTPFetcher(fs afero.Fs, logger *log.Logger, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client: &http.Client{Timeout: DefaultTimeout},
		fs:     fs,
		logger: logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url, dst string) (int64, error) {
	f.logger.Info("Downloading", "url", url)

	var n int64
	err := output.RunWithSpinner(ctx, func() error {
		var err error
		n, err = f.download(ctx, url, dst)
		return err
	}, output.WithTitle("Downloading "+filepath.Base(dst)))
	if err != nil {
		return 0, err
	}

	f.logger.Info("Downloaded", "file", dst, "size", humanize.Bytes(uint64(n)))
	return n, nil
}

// FetchTemp implements Fetcher.
func (f *HTTPFetcher) FetchTemp(ctx context.Context, url string) (string, error) {
	tmp, err := afero.TempFile(f.fs, f.tempDir, "nawah-download-*")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	name := tmp.Name()
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}

	if _, err := f.Fetch(ctx, url, name); err != nil {
		_ = f.fs.Remove(name)
		return "", err
	}
	return name, nil
}

func (f *HTTPFetcher) download(ctx context.Context, url, dst string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, oerrors.NewTransportError(url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, oerrors.NewTransportError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, oerrors.NewTransportError(url, fmt.Errorf("unexpected status %s", resp.Status))
	}

	if resp.ContentLength > 0 {
		f.logger.Debug("Transfer started", "url", url, "size", humanize.Bytes(uint64(resp.ContentLength)))
	}

	if err := f.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}
	out, err := f.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", dst, err)
	}

	n, err := io.Copy(out, resp.Body)
	if err != nil {
		out.Close()
		return n, oerrors.NewTransportError(url, err)
	}
	if err := out.Close(); err != nil {
		return n, fmt.Errorf("writing %s: %w", dst, err)
	}
	return n, nil
}
