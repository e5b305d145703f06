package packager

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/forgekit/forge/internal/models"
	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
)

// Archive packs a staged package dir into {name}-{version}.tgz next to
// it and returns the archive path. Entries are relative to the package
// root, so extracting reproduces the staged layout.
func Archive(rec *models.Recipe, packageDir string) (string, error) {
	out := filepath.Join(filepath.Dir(packageDir),
		fmt.Sprintf("%s-%s.tgz", rec.Name, rec.Version))

	f, err := os.Create(out)
	if err != nil {
		return "", &models.ForgeError{Type: models.ErrFileOp, Ref: rec.Ref().String(), Err: err}
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	err = filepath.Walk(packageDir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(packageDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = io.Copy(tw, src)
		return err
	})
	if err != nil {
		return "", packageErr(err)
	}

	if err := tw.Close(); err != nil {
		return "", packageErr(err)
	}
	if err := gz.Close(); err != nil {
		return "", packageErr(err)
	}
	if err := f.Sync(); err != nil {
		return "", packageErr(err)
	}

	logrus.Infof("Archived package to %s", out)
	return out, nil
}
