package remote

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

// Download fetches a resolved artifact and extracts it into dir. The
// downloaded archive is verified against the index's sha256 before
// extraction; a mismatch discards it.
func Download(ctx context.Context, res *Resolution, dir string) error {
	if err := utils.EnsureDir(dir); err != nil {
		return &models.ForgeError{Type: models.ErrFileOp, Ref: res.Ref.String(), Err: err}
	}

	logrus.Infof("Downloading %s from %s", res.Ref, res.Remote)

	tmp, err := fetch(ctx, res.URL)
	if err != nil {
		return &models.ForgeError{Type: models.ErrResolve, Ref: res.Ref.String(), Err: err}
	}
	defer os.RemoveAll(filepath.Dir(tmp))

	if res.SHA256 != "" {
		sum, err := utils.FileChecksum(tmp)
		if err != nil {
			return &models.ForgeError{Type: models.ErrFileOp, Ref: res.Ref.String(), Err: err}
		}
		if sum.SHA256 != res.SHA256 {
			return &models.ForgeError{
				Type: models.ErrResolve,
				Ref:  res.Ref.String(),
				Err:  fmt.Errorf("checksum mismatch: expected %s, got %s", res.SHA256, sum.SHA256),
			}
		}
	}

	if err := utils.ExtractArchive(tmp, dir, false); err != nil {
		return &models.ForgeError{Type: models.ErrPackage, Ref: res.Ref.String(), Err: err}
	}

	logrus.Debugf("Extracted %s into %s", res.Ref, dir)
	return nil
}

// fetch downloads a URL into a temp file named after the remote
// artifact, so the extension survives for format detection.
func fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	client := &http.Client{Timeout: 10 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: %s", resp.Status)
	}

	tmpDir, err := os.MkdirTemp("", "forge-dl-")
	if err != nil {
		return "", err
	}

	target := filepath.Join(tmpDir, path.Base(req.URL.Path))
	out, err := os.Create(target)
	if err != nil {
		os.RemoveAll(tmpDir)
		return "", err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.RemoveAll(tmpDir)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.RemoveAll(tmpDir)
		return "", err
	}

	return target, nil
}
