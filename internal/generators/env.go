package generators

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/forgekit/forge/internal/models"
	"github.com/forgekit/forge/internal/utils"
	"github.com/sirupsen/logrus"
)

// EnvGenerator writes forge_env.sh, a shell fragment exporting the
// dependency include/lib paths for builds driven by hand or by make.
type EnvGenerator struct{}

// Name returns the generator identifier
func (g *EnvGenerator) Name() string { return "env" }

// Generate writes forge_env.sh into dir
func (g *EnvGenerator) Generate(dir string, deps []Dependency) error {
	var includes, libDirs, libs []string
	for _, dep := range deps {
		includes = append(includes, filepath.Join(dep.PackageDir, "include"))
		libDirs = append(libDirs, filepath.Join(dep.PackageDir, "lib"))
		libs = append(libs, dep.Libs...)
	}

	var b strings.Builder
	b.WriteString("# Generated by forge. Source this before building.\n")
	fmt.Fprintf(&b, "export FORGE_INCLUDE_DIRS=%q\n", strings.Join(includes, ":"))
	fmt.Fprintf(&b, "export FORGE_LIB_DIRS=%q\n", strings.Join(libDirs, ":"))
	fmt.Fprintf(&b, "export FORGE_LIBS=%q\n", strings.Join(libs, " "))

	path := filepath.Join(dir, "forge_env.sh")
	if err := utils.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return &models.ForgeError{Type: models.ErrFileOp, Err: err}
	}

	logrus.Infof("Generated %s", path)
	return nil
}
