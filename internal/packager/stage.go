package packager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forgekit/forge/internal/models"
	"github.com/forgekit/forge/internal/utils"
	"github.com/sirupsen/logrus"
)

// StagedFile is one artifact copied into the package layout
type StagedFile struct {
	// Path relative to the package root, e.g. include/vk/instance.h
	Path string
	// Source the file was copied from
	Source string
	SHA256 string
	Size   int64
}

// Stage applies the recipe's files rules against the build tree (and
// the source tree for rules whose artifacts only exist there, such as
// headers) and copies matches into packageDir.
//
// A rule matching nothing is reported; every rule matching nothing is
// a hard packaging error, since the recipe then produced an empty
// package.
func Stage(rules []models.FileRule, srcDir, buildDir, packageDir string) ([]StagedFile, error) {
	if len(rules) == 0 {
		return nil, packageErr(fmt.Errorf("recipe has no files rules"))
	}

	if err := utils.EnsureDir(packageDir); err != nil {
		return nil, packageErr(err)
	}

	var staged []StagedFile
	matchedAny := false

	for _, rule := range rules {
		files, err := applyRule(rule, srcDir, buildDir, packageDir)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			logrus.Warnf("Rule %q matched no files", rule.Pattern)
			continue
		}
		matchedAny = true
		staged = append(staged, files...)
	}

	if !matchedAny {
		return nil, packageErr(fmt.Errorf("no files rule matched any build artifact"))
	}

	logrus.Infof("Staged %d files into %s", len(staged), packageDir)
	return staged, nil
}

// applyRule walks the candidate roots and copies every match of one rule
func applyRule(rule models.FileRule, srcDir, buildDir, packageDir string) ([]StagedFile, error) {
	var staged []StagedFile
	seen := make(map[string]bool) // build tree wins over source tree

	for _, root := range searchRoots(rule, srcDir, buildDir) {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}

		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}

			ok, err := Match(rule.Pattern, rel)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}

			target := rel
			if !rule.KeepPath {
				target = filepath.Base(rel)
			}
			dst := filepath.Join(packageDir, rule.Dst, target)
			if seen[dst] {
				return nil
			}
			seen[dst] = true

			if err := utils.CopyFile(path, dst); err != nil {
				return err
			}

			sum, err := utils.FileChecksum(dst)
			if err != nil {
				return err
			}

			relPkg, err := filepath.Rel(packageDir, dst)
			if err != nil {
				return err
			}

			logrus.Debugf("Staged %s -> %s", path, relPkg)
			staged = append(staged, StagedFile{
				Path:   filepath.ToSlash(relPkg),
				Source: path,
				SHA256: sum.SHA256,
				Size:   sum.Size,
			})
			return nil
		})
		if err != nil {
			return nil, packageErr(fmt.Errorf("rule %q: %w", rule.Pattern, err))
		}
	}

	return staged, nil
}

// searchRoots returns the directories a rule's glob is applied in. A
// rule with an explicit src subdirectory searches it under both trees;
// otherwise the build tree is searched first, then the source tree
// (headers usually only exist there).
func searchRoots(rule models.FileRule, srcDir, buildDir string) []string {
	if rule.Src != "" {
		return []string{
			filepath.Join(buildDir, rule.Src),
			filepath.Join(srcDir, rule.Src),
		}
	}
	return []string{buildDir, srcDir}
}

// Match reports whether a glob pattern selects a file path. Patterns
// without a separator match against the basename anywhere in the tree;
// patterns with a separator match against the full relative path.
func Match(pattern, rel string) (bool, error) {
	pattern = filepath.ToSlash(pattern)
	rel = filepath.ToSlash(rel)

	if strings.Contains(pattern, "/") {
		return filepath.Match(pattern, rel)
	}
	return filepath.Match(pattern, filepath.Base(rel))
}

func packageErr(err error) error {
	return &models.ForgeError{Type: models.ErrPackage, Err: err}
}
