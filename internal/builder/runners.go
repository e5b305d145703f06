package builder

import (
	"fmt"
	"runtime"

	"github.com/forgekit/forge/internal/models"
)

// MSBuildRunner drives a Visual Studio solution build
type MSBuildRunner struct{}

// Tool returns the tool name
func (r *MSBuildRunner) Tool() string { return "msbuild" }

// Commands constructs the msbuild invocation. build_type maps to
// /p:Configuration and arch to /p:Platform (amd64 is x64 in VS terms).
func (r *MSBuildRunner) Commands(build *models.Build, cfg *models.ClientConfig, srcDir, buildDir string) ([]Command, error) {
	if build.File == "" {
		return nil, &models.ForgeError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("msbuild needs a solution file"),
		}
	}

	args := []string{build.File}
	if bt := cfg.Setting("build_type"); bt != "" {
		args = append(args, fmt.Sprintf("/p:Configuration=%s", bt))
	}
	if arch := cfg.Setting("arch"); arch != "" {
		args = append(args, fmt.Sprintf("/p:Platform=%s", msbuildPlatform(arch)))
	}
	args = append(args, build.Args...)

	return []Command{{Name: "msbuild", Args: args, Dir: srcDir}}, nil
}

func msbuildPlatform(arch string) string {
	switch arch {
	case "amd64", "x86_64":
		return "x64"
	case "386", "x86":
		return "Win32"
	default:
		return arch
	}
}

// CMakeRunner drives a cmake configure + build pair
type CMakeRunner struct{}

// Tool returns the tool name
func (r *CMakeRunner) Tool() string { return "cmake" }

// Commands constructs the configure and build invocations. The build
// tree is separate from the source tree; build_type maps to
// CMAKE_BUILD_TYPE and the shared option to BUILD_SHARED_LIBS.
func (r *CMakeRunner) Commands(build *models.Build, cfg *models.ClientConfig, srcDir, buildDir string) ([]Command, error) {
	configure := []string{srcDir}
	if bt := cfg.Setting("build_type"); bt != "" {
		configure = append(configure, fmt.Sprintf("-DCMAKE_BUILD_TYPE=%s", bt))
	}
	if shared, ok := cfg.Options["shared"]; ok {
		val := "OFF"
		if shared == "True" || shared == "true" {
			val = "ON"
		}
		configure = append(configure, fmt.Sprintf("-DBUILD_SHARED_LIBS=%s", val))
	}
	configure = append(configure, build.Args...)

	return []Command{
		{Name: "cmake", Args: configure, Dir: buildDir},
		{Name: "cmake", Args: []string{"--build", "."}, Dir: buildDir},
	}, nil
}

// MakeRunner drives a plain make build in the source tree
type MakeRunner struct{}

// Tool returns the tool name
func (r *MakeRunner) Tool() string { return "make" }

// Commands constructs the make invocation with parallel jobs
func (r *MakeRunner) Commands(build *models.Build, cfg *models.ClientConfig, srcDir, buildDir string) ([]Command, error) {
	args := []string{fmt.Sprintf("-j%d", runtime.NumCPU())}
	if build.File != "" {
		args = append(args, "-f", build.File)
	}
	args = append(args, build.Args...)

	return []Command{{Name: "make", Args: args, Dir: srcDir}}, nil
}
