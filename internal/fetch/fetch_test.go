package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/nawah-io/cli/internal/errors"
	"github.com/nawah-io/cli/internal/testutil"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/1.0/nawah.whl", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("wheel-bytes"))
	})
	mux.HandleFunc("/1.0/requirements.txt", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pymongo\n"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestFetcher(fs afero.Fs) (*HTTPFetcher, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	return NewHTTPFetcher(fs, logger, WithTempDir("/tmp")), &buf
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	srv := newServer(t)
	fs := afero.NewMemMapFs()
	f, logs := newTestFetcher(fs)

	n, err := f.Fetch(context.Background(), srv.URL+"/1.0/nawah.whl", "/work/app/framework-1.0.whl")
	require.NoError(t, err)

	assert.Equal(t, int64(len("wheel-bytes")), n)
	assert.Equal(t, "wheel-bytes", testutil.ReadFile(t, fs, "/work/app/framework-1.0.whl"))
	assert.Contains(t, logs.String(), "11 B")
}

func TestHTTPFetcher_FetchOverwrites(t *testing.T) {
	srv := newServer(t)
	fs := afero.NewMemMapFs()
	testutil.WriteFile(t, fs, "/work", "requirements.txt", "stale content that is longer")
	f, _ := newTestFetcher(fs)

	_, err := f.Fetch(context.Background(), srv.URL+"/1.0/requirements.txt", "/work/requirements.txt")
	require.NoError(t, err)
	assert.Equal(t, "pymongo\n", testutil.ReadFile(t, fs, "/work/requirements.txt"))
}

func TestHTTPFetcher_NotFoundIsTransportError(t *testing.T) {
	srv := newServer(t)
	fs := afero.NewMemMapFs()
	f, _ := newTestFetcher(fs)

	_, err := f.Fetch(context.Background(), srv.URL+"/9.9/nawah.whl", "/work/x.whl")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrTransport)
	assert.Contains(t, err.Error(), "404")
	assert.False(t, testutil.Exists(t, fs, "/work/x.whl"))
}

func TestHTTPFetcher_UnreachableHost(t *testing.T) {
	srv := newServer(t)
	url := srv.URL + "/1.0/nawah.whl"
	srv.Close()

	f, _ := newTestFetcher(afero.NewMemMapFs())
	_, err := f.Fetch(context.Background(), url, "/work/x.whl")
	assert.ErrorIs(t, err, oerrors.ErrTransport)
}

func TestHTTPFetcher_CancelledContext(t *testing.T) {
	srv := newServer(t)
	f, _ := newTestFetcher(afero.NewMemMapFs())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, srv.URL+"/1.0/nawah.whl", "/work/x.whl")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetcher_FetchTemp(t *testing.T) {
	srv := newServer(t)
	fs := afero.NewMemMapFs()
	f, _ := newTestFetcher(fs)

	p, err := f.FetchTemp(context.Background(), srv.URL+"/1.0/requirements.txt")
	require.NoError(t, err)
	assert.Contains(t, p, "nawah-download-")
	assert.Equal(t, "pymongo\n", testutil.ReadFile(t, fs, p))
}

func TestHTTPFetcher_FetchTempCleansUpOnFailure(t *testing.T) {
	srv := newServer(t)
	fs := afero.NewMemMapFs()
	f, _ := newTestFetcher(fs)

	_, err := f.FetchTemp(context.Background(), srv.URL+"/missing")
	require.Error(t, err)

	entries, err := afero.ReadDir(fs, "/tmp")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
