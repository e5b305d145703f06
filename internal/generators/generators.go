package generators

import (
	"fmt"

	"github.com/forgekit/forge/internal/models"
)

// Dependency is one resolved require with its staged package location,
// as seen by a consumer build file generator.
type Dependency struct {
	Ref        models.Ref
	PackageDir string
	Libs       []string
}

// Generator emits a consumer build file from the resolved dependencies
type Generator interface {
	// Name is the identifier used in the recipe's generators list
	Name() string

	// Generate writes the consumer file(s) into dir
	Generate(dir string, deps []Dependency) error
}

var registry = map[string]Generator{
	"cmake": &CMakeGenerator{},
	"env":   &EnvGenerator{},
}

// For returns the generator registered under name
func For(name string) (Generator, error) {
	g, ok := registry[name]
	if !ok {
		return nil, &models.ForgeError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("unknown generator %q", name),
		}
	}
	return g, nil
}

// Run executes every generator a recipe asks for
func Run(names []string, dir string, deps []Dependency) error {
	for _, name := range names {
		g, err := For(name)
		if err != nil {
			return err
		}
		if err := g.Generate(dir, deps); err != nil {
			return err
		}
	}
	return nil
}
