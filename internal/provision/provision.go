// Package provision guarantees a standalone CPython distribution exists
// locally for a requested version.
//
// Distributions come from the python-build-standalone project, whose
// builds are relocatable as long as the embedding host registers the
// installation root as the python home.
package provision

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/chainguard-dev/clog"

	"pyrun/internal/interp"
)

// HomeEnv overrides provisioning entirely with an existing installation
// root.
const HomeEnv = "PYRUN_PYTHON_HOME"

// UnsupportedVersionError reports a version with no known standalone
// build.
type UnsupportedVersionError struct {
	Version interp.Version
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("no standalone cpython build known for version %s", e.Version)
}

// Builds known to this binary, keyed by minor version.
// python-build-standalone tags releases by date, so these pins only move
// when the table is updated.
var builds = map[int]struct {
	patch   int
	release string
}{
	9:  {18, "20240224"},
	10: {13, "20240224"},
	11: {8, "20240224"},
	12: {2, "20240224"},
}

const releaseBase = "https://github.com/indygreg/python-build-standalone/releases/download"

// Provisioner resolves and, when needed, downloads CPython
// distributions into a cache directory.
type Provisioner struct {
	cacheDir string
	client   *http.Client
}

// New creates a Provisioner caching under cacheDir.
func New(cacheDir string) *Provisioner {
	return &Provisioner{
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: 5 * time.Minute},
	}
}

// Python returns the launcher executable and installation root for the
// requested version, downloading a standalone build on first use.
func (p *Provisioner) Python(ctx context.Context, v interp.Version) (launcher, home string, err error) {
	log := clog.FromContext(ctx)

	if override := os.Getenv(HomeEnv); override != "" {
		log.Debug("using python home override", "home", override)
		return launcherIn(override), override, nil
	}

	home = filepath.Join(p.cacheDir, fmt.Sprintf("cpython-%d.%d", v.Major, v.Minor))
	launcher = launcherIn(home)
	if _, err := os.Stat(launcher); err == nil {
		log.Debug("using cached python", "home", home)
		return launcher, home, nil
	}

	log.Info("downloading python", "version", v)
	if err := p.download(ctx, v, home); err != nil {
		return "", "", err
	}
	if _, err := os.Stat(launcher); err != nil {
		return "", "", fmt.Errorf("downloaded distribution has no interpreter at %s: %w", launcher, err)
	}
	return launcher, home, nil
}

// launcherIn returns the interpreter executable inside an installation
// root.
func launcherIn(home string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(home, "python.exe")
	}
	return filepath.Join(home, "bin", "python3")
}

// targetTriple maps the host platform onto python-build-standalone's
// target naming.
func targetTriple() (string, error) {
	switch runtime.GOOS + "/" + runtime.GOARCH {
	case "linux/amd64":
		return "x86_64-unknown-linux-gnu", nil
	case "linux/arm64":
		return "aarch64-unknown-linux-gnu", nil
	case "darwin/amd64":
		return "x86_64-apple-darwin", nil
	case "darwin/arm64":
		return "aarch64-apple-darwin", nil
	case "windows/amd64":
		return "x86_64-pc-windows-msvc-shared", nil
	default:
		return "", fmt.Errorf("no standalone cpython build for %s/%s", runtime.GOOS, runtime.GOARCH)
	}
}

// archiveURL builds the release asset URL for a version.
func archiveURL(v interp.Version) (string, error) {
	build, ok := builds[v.Minor]
	if v.Major != 3 || !ok {
		return "", &UnsupportedVersionError{Version: v}
	}
	triple, err := targetTriple()
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("cpython-%d.%d.%d+%s-%s-pgo+lto-full.tar.zst",
		v.Major, v.Minor, build.patch, build.release, triple)
	return fmt.Sprintf("%s/%s/%s", releaseBase, build.release, name), nil
}

// download fetches and unpacks a distribution into home. The archive is
// staged next to the final location so a torn download never looks like
// a valid cache entry.
func (p *Provisioner) download(ctx context.Context, v interp.Version, home string) error {
	url, err := archiveURL(v)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(p.cacheDir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	staging, err := os.MkdirTemp(p.cacheDir, ".download-*")
	if err != nil {
		return fmt.Errorf("creating staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building download request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: unexpected status %s", url, resp.Status)
	}

	if err := extractTarZst(resp.Body, staging); err != nil {
		return fmt.Errorf("unpacking %s: %w", url, err)
	}

	// Full archives carry build artifacts too; only python/install is
	// the usable distribution.
	install := filepath.Join(staging, "python", "install")
	if _, err := os.Stat(install); err != nil {
		return fmt.Errorf("archive has no python/install directory: %w", err)
	}
	if err := os.Rename(install, home); err != nil {
		return fmt.Errorf("moving distribution into cache: %w", err)
	}
	return nil
}
