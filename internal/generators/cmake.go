package generators

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/forgekit/forge/internal/models"
	"github.com/forgekit/forge/internal/utils"
	"github.com/sirupsen/logrus"
)

// CMakeGenerator writes forge_deps.cmake: per-dependency include and
// library directories plus aggregate FORGE_* variables the consuming
// CMakeLists.txt links against.
type CMakeGenerator struct{}

// Name returns the generator identifier
func (g *CMakeGenerator) Name() string { return "cmake" }

// Generate writes forge_deps.cmake into dir
func (g *CMakeGenerator) Generate(dir string, deps []Dependency) error {
	var b strings.Builder

	b.WriteString("# Generated by forge. Do not edit.\n\n")

	var allIncludes, allLibDirs, allLibs []string
	for _, dep := range deps {
		prefix := cmakeVarName(dep.Ref.Name)
		include := filepath.ToSlash(filepath.Join(dep.PackageDir, "include"))
		libDir := filepath.ToSlash(filepath.Join(dep.PackageDir, "lib"))

		fmt.Fprintf(&b, "set(FORGE_%s_INCLUDE_DIRS \"%s\")\n", prefix, include)
		fmt.Fprintf(&b, "set(FORGE_%s_LIB_DIRS \"%s\")\n", prefix, libDir)
		fmt.Fprintf(&b, "set(FORGE_%s_LIBS %s)\n\n", prefix, strings.Join(dep.Libs, " "))

		allIncludes = append(allIncludes, include)
		allLibDirs = append(allLibDirs, libDir)
		allLibs = append(allLibs, dep.Libs...)
	}

	fmt.Fprintf(&b, "set(FORGE_INCLUDE_DIRS %s)\n", quoteJoin(allIncludes))
	fmt.Fprintf(&b, "set(FORGE_LIB_DIRS %s)\n", quoteJoin(allLibDirs))
	fmt.Fprintf(&b, "set(FORGE_LIBS %s)\n\n", strings.Join(allLibs, " "))

	b.WriteString("include_directories(${FORGE_INCLUDE_DIRS})\n")
	b.WriteString("link_directories(${FORGE_LIB_DIRS})\n")

	path := filepath.Join(dir, "forge_deps.cmake")
	if err := utils.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return &models.ForgeError{Type: models.ErrFileOp, Err: err}
	}

	logrus.Infof("Generated %s", path)
	return nil
}

func cmakeVarName(name string) string {
	upper := strings.ToUpper(name)
	return strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, upper)
}

func quoteJoin(paths []string) string {
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = fmt.Sprintf("\"%s\"", p)
	}
	return strings.Join(quoted, " ")
}
