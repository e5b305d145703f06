package recipe

import "github.com/hashicorp/hcl/v2"

// packageBlock is the `package` block: the name/version/license/url
// quadruple plus the setting names the package varies on.
type packageBlock struct {
	Name        string   `hcl:"name"`
	Version     string   `hcl:"version"`
	License     string   `hcl:"license,optional"`
	URL         string   `hcl:"url,optional"`
	Description string   `hcl:"description,optional"`
	Settings    []string `hcl:"settings,optional"`
	Generators  []string `hcl:"generators,optional"`
}

// optionBlock declares a named option with its allowed values
type optionBlock struct {
	Name    string   `hcl:"name,label"`
	Values  []string `hcl:"values"`
	Default string   `hcl:"default"`
}

// remoteBlock registers a package channel for dependency resolution
type remoteBlock struct {
	Name string `hcl:"name,label"`
	URL  string `hcl:"url"`
}

// requireBlock declares a dependency as a (name, version, channel) triple
type requireBlock struct {
	Name    string `hcl:"name,label"`
	Version string `hcl:"version"`
	Channel string `hcl:"channel,optional"`
}

// sourceBlock describes where the project source is fetched from
type sourceBlock struct {
	Git     string `hcl:"git,optional"`
	Ref     string `hcl:"ref,optional"`
	Archive string `hcl:"archive,optional"`
	SHA256  string `hcl:"sha256,optional"`
}

// buildBlock describes the platform build tool invocation
type buildBlock struct {
	Tool string   `hcl:"tool"`
	File string   `hcl:"file,optional"`
	Args []string `hcl:"args,optional"`
}

// filesBlock is one artifact glob to destination directory copy rule.
// The label is the glob pattern.
type filesBlock struct {
	Pattern  string `hcl:"pattern,label"`
	Dst      string `hcl:"dst"`
	Src      string `hcl:"src,optional"`
	KeepPath *bool  `hcl:"keep_path,optional"`
}

// infoBlock is the link surface the package exports to consumers
type infoBlock struct {
	Libs        []string `hcl:"libs,optional"`
	IncludeDirs []string `hcl:"include_dirs,optional"`
	LibDirs     []string `hcl:"lib_dirs,optional"`
}

// recipeFile is the top-level structure of a forge.hcl file
type recipeFile struct {
	Package  *packageBlock  `hcl:"package,block"`
	Options  []optionBlock  `hcl:"option,block"`
	Remotes  []remoteBlock  `hcl:"remote,block"`
	Requires []requireBlock `hcl:"require,block"`
	Source   *sourceBlock   `hcl:"source,block"`
	Build    *buildBlock    `hcl:"build,block"`
	Files    []filesBlock   `hcl:"files,block"`
	Info     *infoBlock     `hcl:"info,block"`
}

// packageOnly is the first decode pass: just enough to build the eval
// context before the full decode.
type packageOnly struct {
	Package *packageBlock `hcl:"package,block"`
	Remain  hcl.Body      `hcl:",remain"`
}
