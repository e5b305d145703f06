package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/forgekit/forge/internal/generators"
	"github.com/forgekit/forge/internal/lockfile"
	"github.com/forgekit/forge/internal/models"
	"github.com/forgekit/forge/internal/packager"
	"github.com/forgekit/forge/internal/remote"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// prebuiltID is the package dir name for dependency artifacts fetched
// from a channel, as opposed to packages this tool staged itself.
const prebuiltID = "prebuilt"

// NewInstallCmd creates the install command
func NewInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <recipe>",
		Short: "Resolve and download the recipe's dependencies",
		Long: `Resolves every require triple against the configured channels,
downloads the artifacts into the local cache, writes the lockfile and
runs the recipe's generators.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd, args[0])
			if err != nil {
				return err
			}
			_, err = runInstall(cmd.Context(), env, filepath.Dir(args[0]))
			return err
		},
	}

	addConfigFlags(cmd)
	return cmd
}

// runInstall resolves, downloads and locks the recipe's requires, then
// runs the generators. Returns the dependency views the generators saw
// so create can reuse them.
func runInstall(ctx context.Context, env *runEnv, recipeDir string) ([]generators.Dependency, error) {
	rec := env.recipe

	if len(rec.Requires) == 0 {
		logrus.Info("Recipe has no requires")
		return nil, nil
	}

	lockPath := filepath.Join(recipeDir, lockfile.DefaultName)
	lock, err := lockfile.Read(lockPath)
	if err != nil {
		return nil, err
	}

	resolver := remote.NewResolver(env.cfg.Remotes)
	var deps []generators.Dependency

	for _, req := range rec.Requires {
		res, err := resolver.Resolve(ctx, lockfile.Pinned(lock, req))
		if err != nil {
			return nil, err
		}
		if err := lockfile.Check(lock, res); err != nil {
			return nil, err
		}

		resolved := models.Ref{Name: req.Name, Version: res.Version, Channel: req.Channel}
		dir := env.cache.PackageDir(resolved, prebuiltID)

		if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
			if err := remote.Download(ctx, res, dir); err != nil {
				return nil, err
			}
		} else {
			logrus.Debugf("Using cached %s", resolved)
		}

		lockfile.Record(lock, res)
		deps = append(deps, dependencyView(resolved, dir))
	}

	if err := lockfile.Write(lockPath, lock); err != nil {
		return nil, err
	}
	logrus.Infof("Locked %d requires in %s", len(rec.Requires), lockPath)

	if len(rec.Generators) > 0 {
		if err := generators.Run(rec.Generators, recipeDir, deps); err != nil {
			return nil, err
		}
	}

	return deps, nil
}

// dependencyView builds the generator's view of one staged dependency.
// The exported libs come from the dependency's manifest when it ships
// one; a bare artifact falls back to its package name.
func dependencyView(ref models.Ref, dir string) generators.Dependency {
	libs := []string{ref.Name}
	if m, err := packager.ReadManifest(dir); err == nil && len(m.Libs) > 0 {
		libs = m.Libs
	}
	return generators.Dependency{Ref: ref, PackageDir: dir, Libs: libs}
}
