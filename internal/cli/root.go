package cli

import (
	"github.com/forgekit/forge/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "forge",
		Short: "Run declarative build recipes and package their artifacts",
		Long: `Forge loads a declarative recipe (forge.hcl) and drives its stages:
dependency resolution against package channels, source checkout,
platform build tool invocation, and artifact staging into a package
layout with a signed manifest.

A recipe declares its dependencies as (name, version, channel) triples,
where it gets its source (git or archive), how it builds (msbuild,
cmake, make), and which artifact globs land where in the package.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("home", config.DefaultDir(), "Forge home directory (config and cache)")

	// Add subcommands
	rootCmd.AddCommand(NewCreateCmd())
	rootCmd.AddCommand(NewInstallCmd())
	rootCmd.AddCommand(NewSourceCmd())
	rootCmd.AddCommand(NewBuildCmd())
	rootCmd.AddCommand(NewPackageCmd())
	rootCmd.AddCommand(NewExportCmd())
	rootCmd.AddCommand(NewInfoCmd())
	rootCmd.AddCommand(NewRemoteCmd())

	return rootCmd
}
