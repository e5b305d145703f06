package utils

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// ExtractArchive unpacks a .tar.gz/.tgz or .tar.xz archive into dir.
// When stripRoot is set and every entry lives under a single top-level
// directory, that directory is dropped from the extracted paths.
func ExtractArchive(path, dir string, stripRoot bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader
	switch {
	case strings.HasSuffix(path, ".tar.gz") || strings.HasSuffix(path, ".tgz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		reader = gz
	case strings.HasSuffix(path, ".tar.xz") || strings.HasSuffix(path, ".txz"):
		xzr, err := xz.NewReader(f)
		if err != nil {
			return fmt.Errorf("xz: %w", err)
		}
		reader = xzr
	case strings.HasSuffix(path, ".tar"):
		reader = f
	default:
		return fmt.Errorf("unsupported archive format: %s", filepath.Base(path))
	}

	return extractTar(reader, dir, stripRoot)
}

func extractTar(r io.Reader, dir string, stripRoot bool) error {
	tr := tar.NewReader(r)
	root := ""

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tar: %w", err)
		}

		name := filepath.Clean(hdr.Name)
		if name == "." || strings.HasPrefix(name, "..") {
			continue
		}
		if stripRoot {
			parts := strings.SplitN(name, string(filepath.Separator), 2)
			if root == "" {
				root = parts[0]
			} else if parts[0] != root {
				return fmt.Errorf("cannot strip root: %s is outside top-level directory %s", hdr.Name, root)
			}
			if len(parts) < 2 {
				if hdr.Typeflag != tar.TypeDir {
					return fmt.Errorf("cannot strip root: %s is a top-level file", hdr.Name)
				}
				continue
			}
			name = parts[1]
		}

		target := filepath.Join(dir, name)
		// refuse entries escaping the destination
		if !strings.HasPrefix(target, filepath.Clean(dir)+string(filepath.Separator)) {
			return fmt.Errorf("tar entry escapes destination: %s", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(hdr.Mode).Perm())
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := checkLinkTarget(dir, target, hdr); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		}
	}
}

// checkLinkTarget confines symlink targets to the destination the same
// way entry names are confined. A link resolving outside dir would let
// later entries write through it.
func checkLinkTarget(dir, target string, hdr *tar.Header) error {
	if filepath.IsAbs(hdr.Linkname) {
		return fmt.Errorf("tar symlink escapes destination: %s -> %s", hdr.Name, hdr.Linkname)
	}
	resolved := filepath.Join(filepath.Dir(target), hdr.Linkname)
	clean := filepath.Clean(dir)
	if resolved != clean && !strings.HasPrefix(resolved, clean+string(filepath.Separator)) {
		return fmt.Errorf("tar symlink escapes destination: %s -> %s", hdr.Name, hdr.Linkname)
	}
	return nil
}
