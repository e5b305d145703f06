package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/forgekit/forge/internal/models"
	"github.com/sirupsen/logrus"
)

// CloneResult records what the git fetch produced
type CloneResult struct {
	Dir      string
	URL      string
	Ref      string
	Revision string
}

// Clone fetches a git repository into dir. An existing checkout is
// reused only when its origin matches the requested URL; anything else
// in the way is an error rather than silently overwritten.
func Clone(ctx context.Context, src *models.Source, dir string) (*CloneResult, error) {
	existing, err := isCheckoutOf(ctx, dir, src.Git)
	if err != nil {
		return nil, sourceErr(src.Git, err)
	}

	if existing {
		logrus.Debugf("Reusing existing checkout in %s", dir)
	} else {
		if err := ensureEmpty(dir); err != nil {
			return nil, sourceErr(src.Git, err)
		}

		args := []string{"clone"}
		if src.GitRef != "" {
			args = append(args, "--branch", src.GitRef)
		}
		args = append(args, src.Git, dir)

		logrus.Infof("Cloning %s", src.Git)
		if out, err := run(ctx, "", "git", args...); err != nil {
			return nil, sourceErr(src.Git, fmt.Errorf("git clone: %w: %s", err, out))
		}
	}

	rev, err := run(ctx, dir, "git", "rev-parse", "HEAD")
	if err != nil {
		return nil, sourceErr(src.Git, fmt.Errorf("git rev-parse: %w", err))
	}

	return &CloneResult{
		Dir:      dir,
		URL:      src.Git,
		Ref:      src.GitRef,
		Revision: strings.TrimSpace(rev),
	}, nil
}

// isCheckoutOf reports whether dir is a git checkout whose origin is url
func isCheckoutOf(ctx context.Context, dir, url string) (bool, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return false, nil
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); os.IsNotExist(err) {
		return false, nil
	}

	out, err := run(ctx, dir, "git", "remote", "get-url", "origin")
	if err != nil {
		return false, nil
	}
	if strings.TrimSpace(out) != url {
		return false, fmt.Errorf("directory %s is a checkout of %s, not %s",
			dir, strings.TrimSpace(out), url)
	}
	return true, nil
}

// ensureEmpty makes sure dir exists and holds nothing
func ensureEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("directory %s is not empty", dir)
	}
	return nil
}

func run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.String(), err
}

func sourceErr(ref string, err error) error {
	return &models.ForgeError{Type: models.ErrSource, Ref: ref, Err: err}
}
