package recipe

import (
	"fmt"

	"github.com/forgekit/forge/internal/models"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Load parses and validates a recipe file.
//
// Decoding runs in two passes: the first reads only the package block,
// the second decodes the whole file with an eval context exposing
// package.name and package.version, so source and build blocks can
// interpolate them (e.g. git = "https://host/${package.name}.git").
func Load(path string) (*models.Recipe, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, &models.ForgeError{Type: models.ErrRecipeParse, Err: diags}
	}
	return decode(file)
}

// LoadBytes parses a recipe from memory; filename is used in diagnostics.
func LoadBytes(src []byte, filename string) (*models.Recipe, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, &models.ForgeError{Type: models.ErrRecipeParse, Err: diags}
	}
	return decode(file)
}

func decode(file *hcl.File) (*models.Recipe, error) {
	var first packageOnly
	if diags := gohcl.DecodeBody(file.Body, nil, &first); diags.HasErrors() {
		return nil, &models.ForgeError{Type: models.ErrRecipeParse, Err: diags}
	}
	if first.Package == nil {
		return nil, &models.ForgeError{
			Type: models.ErrRecipeParse,
			Err:  fmt.Errorf("recipe has no package block"),
		}
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"package": cty.ObjectVal(map[string]cty.Value{
				"name":    cty.StringVal(first.Package.Name),
				"version": cty.StringVal(first.Package.Version),
			}),
		},
	}

	var raw recipeFile
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &raw); diags.HasErrors() {
		return nil, &models.ForgeError{Type: models.ErrRecipeParse, Err: diags}
	}

	rec, err := convert(&raw)
	if err != nil {
		return nil, err
	}
	if err := Validate(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func convert(raw *recipeFile) (*models.Recipe, error) {
	rec := &models.Recipe{
		Name:        raw.Package.Name,
		Version:     raw.Package.Version,
		License:     raw.Package.License,
		URL:         raw.Package.URL,
		Description: raw.Package.Description,
		Settings:    raw.Package.Settings,
		Generators:  raw.Package.Generators,
	}

	for _, opt := range raw.Options {
		rec.Options = append(rec.Options, models.Option{
			Name:    opt.Name,
			Values:  opt.Values,
			Default: opt.Default,
		})
	}

	for _, rem := range raw.Remotes {
		rec.Remotes = append(rec.Remotes, models.Remote{Name: rem.Name, URL: rem.URL})
	}

	for _, req := range raw.Requires {
		rec.Requires = append(rec.Requires, models.Ref{
			Name:    req.Name,
			Version: req.Version,
			Channel: req.Channel,
		})
	}

	if raw.Source != nil {
		rec.Source = &models.Source{
			Git:     raw.Source.Git,
			GitRef:  raw.Source.Ref,
			Archive: raw.Source.Archive,
			SHA256:  raw.Source.SHA256,
		}
	}

	if raw.Build != nil {
		rec.Build = &models.Build{
			Tool: raw.Build.Tool,
			File: raw.Build.File,
			Args: raw.Build.Args,
		}
	}

	for _, fr := range raw.Files {
		keep := true
		if fr.KeepPath != nil {
			keep = *fr.KeepPath
		}
		rec.FileRules = append(rec.FileRules, models.FileRule{
			Pattern:  fr.Pattern,
			Dst:      fr.Dst,
			Src:      fr.Src,
			KeepPath: keep,
		})
	}

	if raw.Info != nil {
		rec.Info = models.PackageInfo{
			Libs:        raw.Info.Libs,
			IncludeDirs: raw.Info.IncludeDirs,
			LibDirs:     raw.Info.LibDirs,
		}
	}

	return rec, nil
}
