// Package updater checks for updates via GitHub Releases and replaces the
// running binary.
package updater

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/hammeroverlay/hammeroverlay/internal/buildinfo"
)

// ErrNoUpdate is returned by Install when the running version is current.
var ErrNoUpdate = errors.New("no update available")

// DefaultTimeout bounds each HTTP request when the caller supplies none.
const DefaultTimeout = 30 * time.Second

// ReleaseInfo contains information about a GitHub release.
type ReleaseInfo struct {
	TagName string  `json:"tag_name"`
	HTMLURL string  `json:"html_url"`
	Body    string  `json:"body"`
	Assets  []Asset `json:"assets"`
}

// Asset represents a downloadable file in a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// Result contains the result of an update check.
type Result struct {
	Available      bool
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
	Release        *ReleaseInfo
}

// Checker queries a GitHub "latest release" endpoint.
type Checker struct {
	httpClient     *http.Client
	apiURL         string
	currentVersion string
	executable     func() (string, error)
	createTemp     func() (tempFile, error)
}

// tempFile is the download target.
type tempFile interface {
	io.Writer
	Name() string
	Close() error
}

func createTempFile() (tempFile, error) {
	return os.CreateTemp("", "hammeroverlay-update-*")
}

// NewChecker creates a checker for apiURL. A zero timeout means DefaultTimeout.
func NewChecker(apiURL string, timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{
		httpClient:     &http.Client{Timeout: timeout},
		apiURL:         apiURL,
		currentVersion: buildinfo.Version,
		executable:     os.Executable,
		createTemp:     createTempFile,
	}
}

// Check queries the releases API for a newer version.
func (c *Checker) Check(ctx context.Context) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch releases: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// No releases yet
		return &Result{CurrentVersion: c.currentVersion}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}

	var release ReleaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}

	latestVersion := strings.TrimPrefix(release.TagName, "v")
	latest, err := ParseSemver(latestVersion)
	if err != nil {
		return nil, fmt.Errorf("parse latest version %q: %w", latestVersion, err)
	}

	result := &Result{
		CurrentVersion: c.currentVersion,
		LatestVersion:  latestVersion,
		ReleaseURL:     release.HTMLURL,
		Release:        &release,
	}

	current, err := ParseSemver(c.currentVersion)
	if err != nil {
		// "dev" or unparseable builds never self-update
		log.Printf("[update] Current version %q is not a release, skipping", c.currentVersion)
		return result, nil
	}
	result.Available = current.LessThan(latest)
	return result, nil
}

// Available reports whether a newer release exists.
func (c *Checker) Available(ctx context.Context) (bool, error) {
	result, err := c.Check(ctx)
	if err != nil {
		return false, err
	}
	return result.Available, nil
}

// Install re-checks for an update and replaces the running executable with
// the release asset for this platform. It returns ErrNoUpdate when nothing
// newer exists. The new binary takes effect on the next launch.
func (c *Checker) Install(ctx context.Context) (*Result, error) {
	result, err := c.Check(ctx)
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return result, ErrNoUpdate
	}

	name := AssetName()
	asset := FindAsset(result.Release, name)
	if asset == nil {
		return result, fmt.Errorf("release %s has no asset %s", result.LatestVersion, name)
	}

	log.Printf("[update] Downloading %s (%d bytes)", asset.Name, asset.Size)
	tmpPath, err := c.DownloadAsset(ctx, asset)
	if err != nil {
		return result, err
	}
	defer os.Remove(tmpPath)

	exe, err := c.executable()
	if err != nil {
		return result, fmt.Errorf("locate executable: %w", err)
	}
	if err := ReplaceBinary(exe, tmpPath); err != nil {
		return result, err
	}

	log.Printf("[update] Installed version %s", result.LatestVersion)
	return result, nil
}

// AssetName returns the expected release asset name for this platform.
func AssetName() string {
	return assetName(runtime.GOOS, runtime.GOARCH)
}

func assetName(goos, goarch string) string {
	name := fmt.Sprintf("hammeroverlay-%s-%s", goos, goarch)
	if goos == "windows" {
		name += ".exe"
	}
	return name
}

// FindAsset finds an asset by name in a release.
func FindAsset(release *ReleaseInfo, name string) *Asset {
	if release == nil {
		return nil
	}
	for _, a := range release.Assets {
		if a.Name == name {
			return &a
		}
	}
	return nil
}

// DownloadAsset downloads a release asset to a temp file and returns the path.
func (c *Checker) DownloadAsset(ctx context.Context, asset *Asset) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.BrowserDownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned %d", resp.StatusCode)
	}

	tmpFile, err := c.createTemp()
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}

	// Make executable
	if err := os.Chmod(tmpFile.Name(), 0755); err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("chmod temp file: %w", err)
	}

	return tmpFile.Name(), nil
}

// ReplaceBinary replaces the binary at destPath with the one at newPath,
// keeping a backup until the new file is in place.
func ReplaceBinary(destPath, newPath string) error {
	destPath, err := filepath.EvalSymlinks(destPath)
	if err != nil {
		return fmt.Errorf("resolve symlink: %w", err)
	}

	bakPath := destPath + ".bak"

	// Remove any stale backup
	os.Remove(bakPath)

	// Rename current → backup
	if err := os.Rename(destPath, bakPath); err != nil {
		return fmt.Errorf("backup old binary: %w", err)
	}

	// Move new → target. The temp file may live on another volume.
	if err := os.Rename(newPath, destPath); err != nil {
		if cerr := copyFile(newPath, destPath); cerr != nil {
			os.Remove(destPath)
			_ = os.Rename(bakPath, destPath)
			return fmt.Errorf("install new binary: %w", errors.Join(err, cerr))
		}
	}

	// A running Windows executable cannot be deleted; leave the backup.
	if runtime.GOOS != "windows" {
		os.Remove(bakPath)
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
