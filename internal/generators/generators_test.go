package generators

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forgekit/forge/internal/models"
)

func testDeps() []Dependency {
	return []Dependency{
		{
			Ref:        models.Ref{Name: "glfw", Version: "3.2.1", Channel: "bincrafters/stable"},
			PackageDir: "/cache/data/glfw/3.2.1/bincrafters/stable/package/prebuilt",
			Libs:       []string{"glfw3"},
		},
		{
			Ref:        models.Ref{Name: "vulkan-sdk", Version: "1.0.46.0", Channel: "alaingalvan/stable"},
			PackageDir: "/cache/data/vulkan-sdk/1.0.46.0/alaingalvan/stable/package/prebuilt",
			Libs:       []string{"vulkan-1"},
		},
	}
}

func TestCMakeGenerator(t *testing.T) {
	dir := t.TempDir()

	if err := Run([]string{"cmake"}, dir, testDeps()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "forge_deps.cmake"))
	if err != nil {
		t.Fatalf("Generated file missing: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"set(FORGE_GLFW_INCLUDE_DIRS",
		"set(FORGE_VULKAN_SDK_LIBS vulkan-1)",
		"glfw/3.2.1/bincrafters/stable/package/prebuilt/include",
		"set(FORGE_LIBS glfw3 vulkan-1)",
		"include_directories(${FORGE_INCLUDE_DIRS})",
		"link_directories(${FORGE_LIB_DIRS})",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Generated cmake file missing %q:\n%s", want, content)
		}
	}
}

func TestEnvGenerator(t *testing.T) {
	dir := t.TempDir()

	if err := Run([]string{"env"}, dir, testDeps()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "forge_env.sh"))
	if err != nil {
		t.Fatalf("Generated file missing: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "export FORGE_INCLUDE_DIRS=") {
		t.Errorf("Include dirs export missing:\n%s", content)
	}
	if !strings.Contains(content, "glfw3 vulkan-1") {
		t.Errorf("Libs export missing:\n%s", content)
	}
}

func TestUnknownGenerator(t *testing.T) {
	if err := Run([]string{"gradle"}, t.TempDir(), testDeps()); err == nil {
		t.Errorf("Unknown generator accepted")
	}
}
