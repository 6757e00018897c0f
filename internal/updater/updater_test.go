package updater

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(apiURL, version string) *Checker {
	c := NewChecker(apiURL, 5*time.Second)
	c.currentVersion = version
	return c
}

func releaseJSON(tag string, assets ...Asset) string {
	body := fmt.Sprintf(`{"tag_name": %q, "html_url": "https://example.com/r", "assets": [`, tag)
	for i, a := range assets {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"name": %q, "browser_download_url": %q, "size": %d}`, a.Name, a.BrowserDownloadURL, a.Size)
	}
	return body + "]}"
}

func TestChecker_Check(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		currentVersion string
		responseCode   int
		responseBody   string
		wantAvailable  bool
		wantLatest     string
		wantErr        bool
	}{
		"update available": {
			currentVersion: "0.1.0",
			responseCode:   http.StatusOK,
			responseBody:   releaseJSON("v0.2.0"),
			wantAvailable:  true,
			wantLatest:     "0.2.0",
		},
		"already up to date": {
			currentVersion: "0.2.0",
			responseCode:   http.StatusOK,
			responseBody:   releaseJSON("v0.2.0"),
			wantLatest:     "0.2.0",
		},
		"current newer than latest": {
			currentVersion: "0.3.0",
			responseCode:   http.StatusOK,
			responseBody:   releaseJSON("v0.2.0"),
			wantLatest:     "0.2.0",
		},
		"dev build is never updated": {
			currentVersion: "dev",
			responseCode:   http.StatusOK,
			responseBody:   releaseJSON("v9.0.0"),
			wantLatest:     "9.0.0",
		},
		"no releases yet": {
			currentVersion: "0.1.0",
			responseCode:   http.StatusNotFound,
			responseBody:   `{"message": "Not Found"}`,
		},
		"rate limited": {
			currentVersion: "0.1.0",
			responseCode:   http.StatusForbidden,
			responseBody:   `{"message": "rate limit exceeded"}`,
			wantErr:        true,
		},
		"malformed body": {
			currentVersion: "0.1.0",
			responseCode:   http.StatusOK,
			responseBody:   `{"tag_name": `,
			wantErr:        true,
		},
		"bad tag": {
			currentVersion: "0.1.0",
			responseCode:   http.StatusOK,
			responseBody:   releaseJSON("nightly"),
			wantErr:        true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
				w.WriteHeader(tt.responseCode)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			c := newTestChecker(server.URL, tt.currentVersion)
			result, err := c.Check(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, result.Available)
			assert.Equal(t, tt.wantLatest, result.LatestVersion)
			assert.Equal(t, tt.currentVersion, result.CurrentVersion)

			available, err := c.Available(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, available)
		})
	}
}

func TestChecker_CheckNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := newTestChecker(url, "0.1.0")
	_, err := c.Available(context.Background())
	assert.Error(t, err)
}

func TestChecker_CheckCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(releaseJSON("v1.0.0")))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestChecker(server.URL, "0.1.0").Check(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// releaseServer serves a release with this platform's asset.
func releaseServer(t *testing.T, tag string, assetStatus int, payload string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/latest", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(releaseJSON(tag, Asset{
			Name:               AssetName(),
			BrowserDownloadURL: server.URL + "/asset",
			Size:               int64(len(payload)),
		})))
	})
	mux.HandleFunc("/asset", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(assetStatus)
		_, _ = w.Write([]byte(payload))
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func fakeExecutable(t *testing.T) string {
	t.Helper()
	exe := filepath.Join(t.TempDir(), "hammeroverlay")
	require.NoError(t, os.WriteFile(exe, []byte("old"), 0755))
	return exe
}

func TestChecker_Install(t *testing.T) {
	server := releaseServer(t, "v0.2.0", http.StatusOK, "new")
	exe := fakeExecutable(t)

	c := newTestChecker(server.URL+"/latest", "0.1.0")
	c.executable = func() (string, error) { return exe, nil }

	result, err := c.Install(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", result.LatestVersion)

	data, err := os.ReadFile(exe)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestChecker_InstallNoUpdate(t *testing.T) {
	server := releaseServer(t, "v0.1.0", http.StatusOK, "new")
	exe := fakeExecutable(t)

	c := newTestChecker(server.URL+"/latest", "0.1.0")
	c.executable = func() (string, error) { return exe, nil }

	_, err := c.Install(context.Background())
	assert.ErrorIs(t, err, ErrNoUpdate)

	data, _ := os.ReadFile(exe)
	assert.Equal(t, "old", string(data))
}

func TestChecker_InstallDownloadFailure(t *testing.T) {
	server := releaseServer(t, "v0.2.0", http.StatusInternalServerError, "")
	exe := fakeExecutable(t)

	c := newTestChecker(server.URL+"/latest", "0.1.0")
	c.executable = func() (string, error) { return exe, nil }

	_, err := c.Install(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoUpdate), "download failure must be distinct from no update")

	data, _ := os.ReadFile(exe)
	assert.Equal(t, "old", string(data))
}

func TestChecker_InstallMissingAsset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(releaseJSON("v0.2.0", Asset{Name: "hammeroverlay-plan9-mips"})))
	}))
	defer server.Close()

	_, err := newTestChecker(server.URL, "0.1.0").Install(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoUpdate)
}

// closeFailFile writes normally but reports an error on Close, as a full
// disk does when buffered data is flushed.
type closeFailFile struct {
	*os.File
}

func (f closeFailFile) Close() error {
	f.File.Close()
	return errors.New("no space left on device")
}

func TestChecker_DownloadAssetCloseFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("new binary"))
	}))
	defer server.Close()

	var created string
	c := newTestChecker(server.URL, "1.0.0")
	c.createTemp = func() (tempFile, error) {
		f, err := os.CreateTemp(t.TempDir(), "download-*")
		if err != nil {
			return nil, err
		}
		created = f.Name()
		return closeFailFile{f}, nil
	}

	path, err := c.DownloadAsset(context.Background(), &Asset{BrowserDownloadURL: server.URL})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "close temp file")
	assert.Empty(t, path)
	require.NotEmpty(t, created)
	assert.NoFileExists(t, created)
}

func TestChecker_DownloadAsset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("new binary"))
	}))
	defer server.Close()

	c := newTestChecker(server.URL, "1.0.0")
	path, err := c.DownloadAsset(context.Background(), &Asset{BrowserDownloadURL: server.URL})
	require.NoError(t, err)
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new binary", string(data))
}

func TestAssetName(t *testing.T) {
	assert.Equal(t, "hammeroverlay-linux-amd64", assetName("linux", "amd64"))
	assert.Equal(t, "hammeroverlay-darwin-arm64", assetName("darwin", "arm64"))
	assert.Equal(t, "hammeroverlay-windows-amd64.exe", assetName("windows", "amd64"))
	assert.Equal(t, assetName(runtime.GOOS, runtime.GOARCH), AssetName())
}

func TestReplaceBinary(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "app")
	src := filepath.Join(dir, "app.new")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0755))
	require.NoError(t, os.WriteFile(src, []byte("new"), 0755))

	require.NoError(t, ReplaceBinary(dest, src))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}

func TestReplaceBinaryMissingDest(t *testing.T) {
	dir := t.TempDir()
	err := ReplaceBinary(filepath.Join(dir, "missing"), filepath.Join(dir, "new"))
	assert.Error(t, err)
}
