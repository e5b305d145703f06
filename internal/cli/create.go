package cli

import (
	"path/filepath"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewCreateCmd creates the create command
func NewCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <recipe>",
		Short: "Run the full recipe pipeline",
		Long: `Runs every recipe stage in order: export the recipe into the cache,
resolve and download dependencies, fetch the project source, invoke
the build tool, and stage the artifacts into a package.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd, args[0])
			if err != nil {
				return err
			}

			ref := env.recipe.Ref()
			logrus.Infof("Creating %s", ref)

			if _, err := env.cache.Export(ref, args[0]); err != nil {
				return err
			}

			if _, err := runInstall(cmd.Context(), env, filepath.Dir(args[0])); err != nil {
				return err
			}

			if env.recipe.Source != nil {
				if err := runSource(cmd.Context(), env); err != nil {
					return err
				}
			}

			if env.recipe.Build != nil {
				if err := runBuild(cmd.Context(), env); err != nil {
					return err
				}
			}

			if len(env.recipe.FileRules) > 0 {
				if err := runPackage(env); err != nil {
					return err
				}
			}

			color.Green("Created %s", ref)
			return nil
		},
	}

	addConfigFlags(cmd)
	addSigningFlags(cmd)
	return cmd
}
