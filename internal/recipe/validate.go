package recipe

import (
	"fmt"

	"github.com/forgekit/forge/internal/models"
)

func parseErr(format string, args ...interface{}) error {
	return &models.ForgeError{
		Type: models.ErrRecipeParse,
		Err:  fmt.Errorf(format, args...),
	}
}

// Validate checks the structural rules a loaded recipe must satisfy
func Validate(rec *models.Recipe) error {
	if rec.Name == "" {
		return parseErr("package name is required")
	}
	if rec.Version == "" {
		return parseErr("package version is required")
	}

	for _, opt := range rec.Options {
		if len(opt.Values) == 0 {
			return parseErr("option %q declares no values", opt.Name)
		}
		found := false
		for _, v := range opt.Values {
			if v == opt.Default {
				found = true
				break
			}
		}
		if !found {
			return parseErr("option %q default %q is not among its values %v",
				opt.Name, opt.Default, opt.Values)
		}
	}

	seen := make(map[string]bool)
	for _, rem := range rec.Remotes {
		if rem.URL == "" {
			return parseErr("remote %q has no url", rem.Name)
		}
		if seen[rem.Name] {
			return parseErr("remote %q declared twice", rem.Name)
		}
		seen[rem.Name] = true
	}

	reqSeen := make(map[string]bool)
	for _, req := range rec.Requires {
		if req.Version == "" {
			return parseErr("require %q has no version", req.Name)
		}
		if reqSeen[req.Name] {
			return parseErr("require %q declared twice", req.Name)
		}
		reqSeen[req.Name] = true
	}

	if rec.Source != nil {
		if rec.Source.Git == "" && rec.Source.Archive == "" {
			return parseErr("source block needs either git or archive")
		}
		if rec.Source.Git != "" && rec.Source.Archive != "" {
			return parseErr("source block declares both git and archive")
		}
	}

	for _, fr := range rec.FileRules {
		if fr.Pattern == "" {
			return parseErr("files rule has an empty pattern")
		}
		if fr.Dst == "" {
			return parseErr("files rule %q has no dst", fr.Pattern)
		}
	}

	if rec.Source == nil && rec.Build == nil && len(rec.FileRules) == 0 && len(rec.Requires) == 0 {
		return parseErr("recipe declares no stages")
	}

	return nil
}
