package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/forgekit/forge/internal/models"
	"github.com/forgekit/forge/internal/utils"
	"github.com/sirupsen/logrus"
)

// Fetch retrieves the project source described by the recipe's source
// block into dir: a git clone, or an archive download + extraction.
// Archives with a single top-level directory are unwrapped so the
// project root lands directly in dir.
func Fetch(ctx context.Context, src *models.Source, dir string) (*CloneResult, error) {
	if src == nil {
		return nil, &models.ForgeError{
			Type: models.ErrSource,
			Err:  fmt.Errorf("recipe has no source block"),
		}
	}
	if src.Git != "" {
		return Clone(ctx, src, dir)
	}
	return fetchArchive(ctx, src, dir)
}

func fetchArchive(ctx context.Context, src *models.Source, dir string) (*CloneResult, error) {
	logrus.Infof("Downloading source archive %s", src.Archive)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Archive, nil)
	if err != nil {
		return nil, sourceErr(src.Archive, err)
	}

	client := &http.Client{Timeout: 10 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return nil, sourceErr(src.Archive, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, sourceErr(src.Archive, fmt.Errorf("download failed: %s", resp.Status))
	}

	tmpDir, err := os.MkdirTemp("", "forge-src-")
	if err != nil {
		return nil, sourceErr(src.Archive, err)
	}
	defer os.RemoveAll(tmpDir)

	archive := filepath.Join(tmpDir, path.Base(req.URL.Path))
	out, err := os.Create(archive)
	if err != nil {
		return nil, sourceErr(src.Archive, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return nil, sourceErr(src.Archive, err)
	}
	if err := out.Close(); err != nil {
		return nil, sourceErr(src.Archive, err)
	}

	sum, err := utils.FileChecksum(archive)
	if err != nil {
		return nil, sourceErr(src.Archive, err)
	}
	if src.SHA256 != "" && sum.SHA256 != src.SHA256 {
		return nil, sourceErr(src.Archive,
			fmt.Errorf("checksum mismatch: expected %s, got %s", src.SHA256, sum.SHA256))
	}

	if err := utils.EnsureDir(dir); err != nil {
		return nil, sourceErr(src.Archive, err)
	}
	if err := utils.ExtractArchive(archive, dir, true); err != nil {
		return nil, sourceErr(src.Archive, err)
	}

	return &CloneResult{
		Dir:      dir,
		URL:      src.Archive,
		Revision: sum.SHA256,
	}, nil
}
