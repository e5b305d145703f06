package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/forgekit/forge/internal/models"
	"github.com/forgekit/forge/internal/utils"
)

// Cache is the local package store. Each reference owns a subtree
// data/{name}/{version}/{channel}/ with export, source, build and
// per-configuration package directories.
type Cache struct {
	root string
}

// New opens (and creates if needed) a cache rooted at dir
func New(dir string) (*Cache, error) {
	if err := utils.EnsureDir(filepath.Join(dir, "data")); err != nil {
		return nil, &models.ForgeError{Type: models.ErrFileOp, Err: err}
	}
	return &Cache{root: dir}, nil
}

// Root returns the cache root directory
func (c *Cache) Root() string {
	return c.root
}

func (c *Cache) refDir(ref models.Ref) string {
	channel := ref.Channel
	if channel == "" {
		channel = "_"
	}
	// channel is owner/name; keep it as a two-level path
	channel = filepath.FromSlash(channel)
	return filepath.Join(c.root, "data", ref.Name, ref.Version, channel)
}

// ExportDir is where the recipe copy lives for a reference
func (c *Cache) ExportDir(ref models.Ref) string {
	return filepath.Join(c.refDir(ref), "export")
}

// SourceDir is the fetched project source tree for a reference
func (c *Cache) SourceDir(ref models.Ref) string {
	return filepath.Join(c.refDir(ref), "source")
}

// BuildDir is the build tree for a reference
func (c *Cache) BuildDir(ref models.Ref) string {
	return filepath.Join(c.refDir(ref), "build")
}

// PackageDir is the staged package tree for one build configuration
func (c *Cache) PackageDir(ref models.Ref, packageID string) string {
	return filepath.Join(c.refDir(ref), "package", packageID)
}

// Export copies a recipe file into the cache export dir for its reference
func (c *Cache) Export(ref models.Ref, recipePath string) (string, error) {
	dst := filepath.Join(c.ExportDir(ref), "forge.hcl")
	if err := utils.CopyFile(recipePath, dst); err != nil {
		return "", &models.ForgeError{Type: models.ErrFileOp, Ref: ref.String(), Err: err}
	}
	return dst, nil
}

// Clean removes everything stored for a reference
func (c *Cache) Clean(ref models.Ref) error {
	if err := os.RemoveAll(c.refDir(ref)); err != nil {
		return &models.ForgeError{Type: models.ErrFileOp, Ref: ref.String(), Err: err}
	}
	return nil
}

// PackageID derives the short configuration hash that distinguishes
// packages of the same reference built with different settings or
// options. Stable across runs: the input is the sorted canonical
// settings+options rendering.
func PackageID(cfg *models.ClientConfig) string {
	canonical := cfg.BuildConfigID()
	if strings.TrimSpace(canonical) == "" {
		canonical = "default"
	}
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])[:16]
}
