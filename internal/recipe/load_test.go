package recipe

import (
	"os"
	"path/filepath"
	"testing"
)

const shinyRecipe = `
package {
  name        = "shiny"
  version     = "0.1"
  license     = "MIT"
  url         = "https://github.com/wagk/shiny.git"
  description = "Simple Vulkan Game Engine"
  settings    = ["os", "compiler", "build_type", "arch"]
  generators  = ["cmake"]
}

option "shared" {
  values  = ["True", "False"]
  default = "False"
}

remote "bincrafters" {
  url = "https://packages.bincrafters.dev"
}

require "glfw" {
  version = "3.2.1"
  channel = "bincrafters/stable"
}

require "glm" {
  version = "0.9.8.5"
  channel = "bincrafters/stable"
}

require "vulkan-sdk" {
  version = "1.0.46.0"
  channel = "alaingalvan/stable"
}

source {
  git = "https://github.com/wagk/${package.name}.git"
}

build {
  tool = "msbuild"
  file = "shiny.sln"
}

files "*.h" {
  dst = "include"
  src = "hello"
}

files "*hello.lib" {
  dst       = "lib"
  keep_path = false
}

files "*.dll" {
  dst       = "bin"
  keep_path = false
}

files "*.so" {
  dst       = "lib"
  keep_path = false
}

files "*.a" {
  dst       = "lib"
  keep_path = false
}

info {
  libs = ["hello"]
}
`

func TestLoadFullRecipe(t *testing.T) {
	rec, err := LoadBytes([]byte(shinyRecipe), "forge.hcl")
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}

	if rec.Name != "shiny" || rec.Version != "0.1" {
		t.Errorf("Wrong package identity: %s/%s", rec.Name, rec.Version)
	}
	if rec.License != "MIT" {
		t.Errorf("Wrong license: %s", rec.License)
	}
	if len(rec.Settings) != 4 {
		t.Errorf("Expected 4 settings, got %v", rec.Settings)
	}

	if len(rec.Requires) != 3 {
		t.Fatalf("Expected 3 requires, got %d", len(rec.Requires))
	}
	glfw := rec.Requires[0]
	if glfw.String() != "glfw/3.2.1@bincrafters/stable" {
		t.Errorf("Wrong canonical ref: %s", glfw)
	}

	if len(rec.Remotes) != 1 || rec.Remotes[0].Name != "bincrafters" {
		t.Errorf("Wrong remotes: %v", rec.Remotes)
	}

	// interpolation of package.name into the source block
	if rec.Source == nil || rec.Source.Git != "https://github.com/wagk/shiny.git" {
		t.Errorf("Source interpolation failed: %+v", rec.Source)
	}

	if rec.Build == nil || rec.Build.Tool != "msbuild" || rec.Build.File != "shiny.sln" {
		t.Errorf("Wrong build block: %+v", rec.Build)
	}

	if len(rec.FileRules) != 5 {
		t.Fatalf("Expected 5 files rules, got %d", len(rec.FileRules))
	}
	headers := rec.FileRules[0]
	if headers.Pattern != "*.h" || headers.Dst != "include" || headers.Src != "hello" {
		t.Errorf("Wrong header rule: %+v", headers)
	}
	if !headers.KeepPath {
		t.Errorf("keep_path should default to true")
	}
	lib := rec.FileRules[1]
	if lib.KeepPath {
		t.Errorf("keep_path=false not honored for %q", lib.Pattern)
	}

	if len(rec.Info.Libs) != 1 || rec.Info.Libs[0] != "hello" {
		t.Errorf("Wrong exported libs: %v", rec.Info.Libs)
	}
	if len(rec.Generators) != 1 || rec.Generators[0] != "cmake" {
		t.Errorf("Wrong generators: %v", rec.Generators)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "forge-recipe-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "forge.hcl")
	if err := os.WriteFile(path, []byte(shinyRecipe), 0644); err != nil {
		t.Fatalf("Failed to write recipe: %v", err)
	}

	rec, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rec.Name != "shiny" {
		t.Errorf("Wrong name: %s", rec.Name)
	}
}

func TestLoadRejectsInvalidRecipes(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"no package block", `require "glfw" { version = "1.0" }`},
		{"missing version", `package { name = "x" }`},
		{"bad option default", `
package {
  name    = "x"
  version = "1"
}
option "shared" {
  values  = ["True"]
  default = "False"
}
`},
		{"duplicate remote", `
package {
  name    = "x"
  version = "1"
}
remote "a" { url = "https://one" }
remote "a" { url = "https://two" }
source { git = "https://example.com/x.git" }
`},
		{"source with git and archive", `
package {
  name    = "x"
  version = "1"
}
source {
  git     = "https://example.com/x.git"
  archive = "https://example.com/x.tar.gz"
}
`},
		{"files rule without dst", `
package {
  name    = "x"
  version = "1"
}
files "*.h" {}
`},
		{"no stages", `
package {
  name    = "x"
  version = "1"
}
`},
		{"unknown block", `
package {
  name    = "x"
  version = "1"
}
mystery { value = 1 }
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadBytes([]byte(tc.src), "forge.hcl"); err == nil {
				t.Errorf("Expected error for %s", tc.name)
			}
		})
	}
}
