package packager

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forgekit/forge/internal/models"
	"github.com/forgekit/forge/internal/utils"
)

func testRecipe() *models.Recipe {
	return &models.Recipe{
		Name:    "shiny",
		Version: "0.1",
		License: "MIT",
		Info:    models.PackageInfo{Libs: []string{"hello"}},
	}
}

func TestManifestRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "forge-manifest-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := &models.ClientConfig{
		Settings: map[string]string{"os": "Linux", "build_type": "Release"},
		Options:  map[string]string{"shared": "False"},
	}

	staged := []StagedFile{
		{Path: "lib/hello.lib", SHA256: "bbb", Size: 2},
		{Path: "include/vk/instance.h", SHA256: "aaa", Size: 1},
	}

	m := BuildManifest(testRecipe(), cfg, "abcd1234", staged)

	if m.Ref != "shiny/0.1" {
		t.Errorf("Wrong ref: %s", m.Ref)
	}
	if m.PackageID != "abcd1234" {
		t.Errorf("Wrong package id: %s", m.PackageID)
	}
	// files are sorted by path for a stable manifest
	if m.Files[0].Path != "include/vk/instance.h" {
		t.Errorf("Files not sorted: %v", m.Files)
	}

	if err := m.Write(tmpDir, nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// unsigned packages ship no signature or key
	if _, err := os.Stat(filepath.Join(tmpDir, ManifestName+".asc")); !os.IsNotExist(err) {
		t.Errorf("Signature file present for unsigned package")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, PublicKeyName)); !os.IsNotExist(err) {
		t.Errorf("Public key present for unsigned package")
	}

	loaded, err := ReadManifest(tmpDir)
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if loaded.Ref != m.Ref || loaded.PackageID != m.PackageID {
		t.Errorf("Round trip lost identity: %+v", loaded)
	}
	if len(loaded.Files) != 2 || loaded.Files[1].SHA256 != "bbb" {
		t.Errorf("Round trip lost files: %+v", loaded.Files)
	}
	if len(loaded.Libs) != 1 || loaded.Libs[0] != "hello" {
		t.Errorf("Round trip lost libs: %+v", loaded.Libs)
	}
}

type staticSigner struct{}

func (staticSigner) SignDetached(data []byte) ([]byte, error) {
	return []byte("-----BEGIN PGP SIGNATURE-----\nfake\n-----END PGP SIGNATURE-----\n"), nil
}

func (staticSigner) PublicKey() ([]byte, error) {
	return []byte("-----BEGIN PGP PUBLIC KEY BLOCK-----\nfake\n-----END PGP PUBLIC KEY BLOCK-----\n"), nil
}

func TestManifestWriteSigned(t *testing.T) {
	dir := t.TempDir()

	m := BuildManifest(testRecipe(), &models.ClientConfig{}, "abcd1234", nil)
	if err := m.Write(dir, staticSigner{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	sig, err := os.ReadFile(filepath.Join(dir, ManifestName+".asc"))
	if err != nil {
		t.Fatalf("Signature missing: %v", err)
	}
	if !strings.Contains(string(sig), "PGP SIGNATURE") {
		t.Errorf("Unexpected signature content: %q", sig)
	}

	pub, err := os.ReadFile(filepath.Join(dir, PublicKeyName))
	if err != nil {
		t.Fatalf("Public key missing: %v", err)
	}
	if !strings.Contains(string(pub), "PGP PUBLIC KEY BLOCK") {
		t.Errorf("Unexpected public key content: %q", pub)
	}
}

func TestArchiveReproducesLayout(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "forge-archive-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	pkgDir := filepath.Join(tmpDir, "pkg")
	writeTree(t, pkgDir, []string{
		"include/vk/instance.h",
		"lib/hello.lib",
	})

	out, err := Archive(testRecipe(), pkgDir)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if filepath.Base(out) != "shiny-0.1.tgz" {
		t.Errorf("Wrong archive name: %s", out)
	}

	extracted := filepath.Join(tmpDir, "extracted")
	if err := os.MkdirAll(extracted, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := utils.ExtractArchive(out, extracted, false); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(extracted, "include", "vk", "instance.h"))
	if err != nil {
		t.Fatalf("Extracted file missing: %v", err)
	}
	if string(content) != "include/vk/instance.h" {
		t.Errorf("Extracted content mangled: %q", content)
	}
}
