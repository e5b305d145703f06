package cli

import (
	"context"

	"github.com/forgekit/forge/internal/builder"
	"github.com/forgekit/forge/internal/cache"
	"github.com/forgekit/forge/internal/packager"
	"github.com/forgekit/forge/internal/signer"
	"github.com/forgekit/forge/internal/source"
	"github.com/forgekit/forge/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewSourceCmd creates the source command
func NewSourceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "source <recipe>",
		Short: "Fetch the recipe's project source into the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd, args[0])
			if err != nil {
				return err
			}
			return runSource(cmd.Context(), env)
		},
	}
}

func runSource(ctx context.Context, env *runEnv) error {
	dir := env.cache.SourceDir(env.recipe.Ref())
	result, err := source.Fetch(ctx, env.recipe.Source, dir)
	if err != nil {
		return err
	}
	logrus.Infof("Source for %s at revision %s", env.recipe.Ref(), result.Revision)
	return nil
}

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <recipe>",
		Short: "Invoke the recipe's platform build tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd, args[0])
			if err != nil {
				return err
			}
			return runBuild(cmd.Context(), env)
		},
	}

	addConfigFlags(cmd)
	return cmd
}

func runBuild(ctx context.Context, env *runEnv) error {
	ref := env.recipe.Ref()
	buildDir := env.cache.BuildDir(ref)
	if err := utils.EnsureDir(buildDir); err != nil {
		return err
	}

	if env.recipe.Build != nil {
		logrus.Infof("Building %s with %s", ref, env.recipe.Build.Tool)
	}
	return builder.Run(ctx, env.recipe.Build, env.cfg, env.cache.SourceDir(ref), buildDir)
}

// NewPackageCmd creates the package command
func NewPackageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package <recipe>",
		Short: "Stage build artifacts into the package layout",
		Long: `Applies the recipe's files rules against the build and source trees,
stages the matches under the package directory for the active build
configuration, writes the manifest and the package archive, and signs
the manifest when a GPG key is configured.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd, args[0])
			if err != nil {
				return err
			}
			return runPackage(env)
		},
	}

	addConfigFlags(cmd)
	addSigningFlags(cmd)
	return cmd
}

func runPackage(env *runEnv) error {
	rec := env.recipe
	ref := rec.Ref()

	packageID := cache.PackageID(env.cfg)
	packageDir := env.cache.PackageDir(ref, packageID)

	staged, err := packager.Stage(rec.FileRules,
		env.cache.SourceDir(ref), env.cache.BuildDir(ref), packageDir)
	if err != nil {
		return err
	}

	var s signer.Signer
	if env.cfg.GPGKeyPath != "" {
		gpg, err := signer.NewGPGSigner(env.cfg.GPGKeyPath, env.cfg.GPGPassphrase)
		if err != nil {
			return err
		}
		s = gpg
		logrus.Info("GPG signer initialized")
	}

	manifest := packager.BuildManifest(rec, env.cfg, packageID, staged)
	if err := manifest.Write(packageDir, s); err != nil {
		return err
	}

	if _, err := packager.Archive(rec, packageDir); err != nil {
		return err
	}

	logrus.Infof("Package %s (%s) ready in %s", ref, packageID, packageDir)
	return nil
}

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <recipe>",
		Short: "Copy the recipe into the local cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd, args[0])
			if err != nil {
				return err
			}
			dst, err := env.cache.Export(env.recipe.Ref(), args[0])
			if err != nil {
				return err
			}
			logrus.Infof("Exported %s to %s", env.recipe.Ref(), dst)
			return nil
		},
	}
}
