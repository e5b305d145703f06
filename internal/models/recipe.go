package models

import "fmt"

// Ref identifies a package as a (name, version, channel) triple.
// The canonical rendering is "name/version@channel".
type Ref struct {
	Name    string
	Version string
	Channel string
}

// String returns the canonical rendering of the reference
func (r Ref) String() string {
	if r.Channel == "" {
		return fmt.Sprintf("%s/%s", r.Name, r.Version)
	}
	return fmt.Sprintf("%s/%s@%s", r.Name, r.Version, r.Channel)
}

// Option is a recipe option with its allowed values and default
type Option struct {
	Name    string
	Values  []string
	Default string
}

// Remote is a named package channel
type Remote struct {
	Name string
	URL  string
}

// Source describes where the project source comes from: either a git
// repository (with optional ref) or a downloadable archive.
type Source struct {
	Git     string
	GitRef  string
	Archive string
	SHA256  string
}

// Build describes the platform build tool invocation
type Build struct {
	Tool string
	File string
	Args []string
}

// FileRule is an artifact glob to destination directory copy rule
type FileRule struct {
	Pattern  string
	Dst      string
	Src      string
	KeepPath bool
}

// PackageInfo is the link surface a packaged recipe exports to consumers
type PackageInfo struct {
	Libs        []string
	IncludeDirs []string
	LibDirs     []string
}

// Recipe is the loaded, validated recipe model. Settings lists the
// setting names the package varies on; the active values come from the
// client configuration and CLI flags as a BuildConfig.
type Recipe struct {
	Name        string
	Version     string
	License     string
	URL         string
	Description string

	Settings []string
	Options  []Option

	Remotes    []Remote
	Requires   []Ref
	Source     *Source
	Build      *Build
	FileRules  []FileRule
	Info       PackageInfo
	Generators []string
}

// Ref returns the recipe's own package reference
func (r *Recipe) Ref() Ref {
	return Ref{Name: r.Name, Version: r.Version}
}

// OptionValue returns the value for a named option: the assigned one
// when present, the declared default otherwise. The second result
// reports whether the recipe declares the option at all.
func (r *Recipe) OptionValue(name string, assigned map[string]string) (string, bool) {
	for _, opt := range r.Options {
		if opt.Name != name {
			continue
		}
		if v, ok := assigned[name]; ok {
			return v, true
		}
		return opt.Default, true
	}
	return "", false
}
