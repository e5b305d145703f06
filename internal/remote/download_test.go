package remote

import (
	"archive/tar"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/forgekit/forge/internal/models"
	"github.com/forgekit/forge/internal/utils"
	"github.com/klauspost/compress/gzip"
)

// buildArtifact produces an in-memory tar.gz with the given files
func buildArtifact(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for name, content := range files {
		hdr := &tar.Header{Name: name, Mode: 0644, Size: int64(len(content))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("tar header: %v", err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatalf("tar write: %v", err)
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("tar close: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestDownloadVerifiesAndExtracts(t *testing.T) {
	artifact := buildArtifact(t, map[string]string{
		"include/glfw3.h": "// glfw header\n",
		"lib/libglfw3.a":  "binary",
	})

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.Write(artifact)
	}))
	defer srv.Close()

	tmpDir, err := os.MkdirTemp("", "forge-dl-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	res := &Resolution{
		Ref:     models.Ref{Name: "glfw", Version: "3.2.1"},
		Version: "3.2.1",
		URL:     srv.URL + "/glfw-3.2.1.tar.gz",
		SHA256:  utils.DataChecksum(artifact),
	}

	dir := filepath.Join(tmpDir, "pkg")
	if err := Download(context.Background(), res, dir); err != nil {
		t.Fatalf("Download failed: %v", err)
	}

	header, err := os.ReadFile(filepath.Join(dir, "include", "glfw3.h"))
	if err != nil {
		t.Fatalf("Extracted header missing: %v", err)
	}
	if string(header) != "// glfw header\n" {
		t.Errorf("Wrong header content: %q", header)
	}
	if _, err := os.Stat(filepath.Join(dir, "lib", "libglfw3.a")); err != nil {
		t.Errorf("Extracted library missing: %v", err)
	}
}

func TestDownloadRejectsChecksumMismatch(t *testing.T) {
	artifact := buildArtifact(t, map[string]string{"file.txt": "data"})

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.Write(artifact)
	}))
	defer srv.Close()

	tmpDir, err := os.MkdirTemp("", "forge-dl-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	res := &Resolution{
		Ref:    models.Ref{Name: "x", Version: "1"},
		URL:    srv.URL + "/x-1.tar.gz",
		SHA256: "0000000000000000000000000000000000000000000000000000000000000000",
	}

	dir := filepath.Join(tmpDir, "pkg")
	if err := Download(context.Background(), res, dir); err == nil {
		t.Fatalf("Expected checksum mismatch error")
	}

	// nothing may have been extracted
	if _, err := os.Stat(filepath.Join(dir, "file.txt")); !os.IsNotExist(err) {
		t.Errorf("Artifact extracted despite checksum mismatch")
	}
}

func TestDownloadCleansUpTruncatedFetch(t *testing.T) {
	scratch := t.TempDir()
	t.Setenv("TMPDIR", scratch)

	// announce more bytes than are sent, so the client's copy fails
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.Header().Set("Content-Length", "4096")
		rw.Write([]byte("short"))
	}))
	defer srv.Close()

	res := &Resolution{
		Ref: models.Ref{Name: "x", Version: "1"},
		URL: srv.URL + "/x-1.tar.gz",
	}

	if err := Download(context.Background(), res, filepath.Join(scratch, "pkg")); err == nil {
		t.Fatalf("Expected truncated download error")
	}

	leftover, err := filepath.Glob(filepath.Join(scratch, "forge-dl-*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftover) != 0 {
		t.Errorf("Temp dirs leaked: %v", leftover)
	}
}
