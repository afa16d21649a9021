package provision

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"pyrun/internal/interp"
)

// failingTransport proves a code path never touches the network.
type failingTransport struct{ t *testing.T }

func (ft failingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ft.t.Errorf("unexpected network request to %s", req.URL)
	return nil, fmt.Errorf("network disabled in test")
}

func offlineProvisioner(t *testing.T, cacheDir string) *Provisioner {
	t.Helper()
	return &Provisioner{
		cacheDir: cacheDir,
		client:   &http.Client{Transport: failingTransport{t: t}},
	}
}

func seedDistribution(t *testing.T, home string) string {
	t.Helper()
	launcher := launcherIn(home)
	if err := os.MkdirAll(filepath.Dir(launcher), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(launcher, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return launcher
}

func TestPythonCacheHit(t *testing.T) {
	cacheDir := t.TempDir()
	v := interp.Version{Major: 3, Minor: 12}
	want := seedDistribution(t, filepath.Join(cacheDir, "cpython-3.12"))

	p := offlineProvisioner(t, cacheDir)
	launcher, home, err := p.Python(context.Background(), v)
	if err != nil {
		t.Fatalf("Python() error = %v", err)
	}
	if launcher != want {
		t.Errorf("Python() launcher = %q, want %q", launcher, want)
	}
	if home != filepath.Join(cacheDir, "cpython-3.12") {
		t.Errorf("Python() home = %q", home)
	}
}

func TestPythonHomeOverride(t *testing.T) {
	override := t.TempDir()
	seedDistribution(t, override)
	t.Setenv(HomeEnv, override)

	p := offlineProvisioner(t, t.TempDir())
	launcher, home, err := p.Python(context.Background(), interp.Version{Major: 3, Minor: 10})
	if err != nil {
		t.Fatalf("Python() error = %v", err)
	}
	if home != override {
		t.Errorf("Python() home = %q, want %q", home, override)
	}
	if launcher != launcherIn(override) {
		t.Errorf("Python() launcher = %q", launcher)
	}
}

func TestPythonUnsupportedVersion(t *testing.T) {
	p := offlineProvisioner(t, t.TempDir())
	_, _, err := p.Python(context.Background(), interp.Version{Major: 3, Minor: 42})

	var uv *UnsupportedVersionError
	if !errors.As(err, &uv) {
		t.Fatalf("Python() error = %v, want UnsupportedVersionError", err)
	}
}

func TestArchiveURL(t *testing.T) {
	url, err := archiveURL(interp.Version{Major: 3, Minor: 10})
	if err != nil {
		t.Fatalf("archiveURL() error = %v", err)
	}
	if !strings.HasPrefix(url, releaseBase+"/20240224/cpython-3.10.13+20240224-") {
		t.Errorf("archiveURL() = %q", url)
	}
	if !strings.HasSuffix(url, "-pgo+lto-full.tar.zst") {
		t.Errorf("archiveURL() = %q", url)
	}
}

// tarZst assembles an in-memory zstd-compressed tar stream.
func tarZst(t *testing.T, entries []tar.Header) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	tw := tar.NewWriter(zw)
	for _, hdr := range entries {
		hdr := hdr
		if err := tw.WriteHeader(&hdr); err != nil {
			t.Fatal(err)
		}
		if hdr.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte("payload")); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestExtractTarZst(t *testing.T) {
	dir := t.TempDir()
	archive := tarZst(t, []tar.Header{
		{Name: "python/install/", Typeflag: tar.TypeDir, Mode: 0o755},
		{Name: "python/install/bin/python3.12", Typeflag: tar.TypeReg, Mode: 0o755, Size: 7},
		{Name: "python/install/bin/python3", Typeflag: tar.TypeSymlink, Linkname: "python3.12"},
	})

	if err := extractTarZst(archive, dir); err != nil {
		t.Fatalf("extractTarZst() error = %v", err)
	}

	link := filepath.Join(dir, "python", "install", "bin", "python3")
	got, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("Readlink() error = %v", err)
	}
	if got != "python3.12" {
		t.Errorf("Readlink() = %q, want python3.12", got)
	}
	data, err := os.ReadFile(filepath.Join(dir, "python", "install", "bin", "python3.12"))
	if err != nil || string(data) != "payload" {
		t.Errorf("extracted file = %q, %v", data, err)
	}
}

func TestExtractTarZstRejectsEscapingSymlink(t *testing.T) {
	tests := []struct {
		name     string
		linkname string
	}{
		{name: "absolute target", linkname: "/etc/passwd"},
		{name: "relative escape", linkname: "../../../../etc/passwd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			archive := tarZst(t, []tar.Header{
				{Name: "python/install/bin/python3", Typeflag: tar.TypeSymlink, Linkname: tt.linkname},
			})
			if err := extractTarZst(archive, dir); err == nil {
				t.Fatal("extractTarZst() expected error for escaping symlink")
			}
			if _, err := os.Lstat(filepath.Join(dir, "python", "install", "bin", "python3")); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("escaping symlink was created anyway: %v", err)
			}
		})
	}
}

func TestSanitizeLink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "bin", "python3")
	if err := sanitizeLink(dir, link, "python3.12"); err != nil {
		t.Errorf("sanitizeLink(sibling) error = %v", err)
	}
	if err := sanitizeLink(dir, link, "../lib/libpython3.so"); err != nil {
		t.Errorf("sanitizeLink(within-tree parent) error = %v", err)
	}
	if err := sanitizeLink(dir, link, "/etc/passwd"); err == nil {
		t.Error("sanitizeLink(absolute) expected error")
	}
	if err := sanitizeLink(dir, link, "../../escape"); err == nil {
		t.Error("sanitizeLink(escape) expected error")
	}
}

func TestSanitizePath(t *testing.T) {
	dir := t.TempDir()
	if _, err := sanitizePath(dir, "python/install/bin/python3"); err != nil {
		t.Errorf("sanitizePath(clean) error = %v", err)
	}
	if _, err := sanitizePath(dir, "../escape"); err == nil {
		t.Error("sanitizePath(../escape) expected error")
	}
}
