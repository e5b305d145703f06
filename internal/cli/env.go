package cli

import (
	"fmt"
	"strings"

	"github.com/forgekit/forge/internal/cache"
	"github.com/forgekit/forge/internal/config"
	"github.com/forgekit/forge/internal/models"
	"github.com/forgekit/forge/internal/recipe"
	"github.com/spf13/cobra"
)

// runEnv bundles what every stage command needs: the client config,
// the opened cache, and the loaded recipe.
type runEnv struct {
	cfg    *models.ClientConfig
	cache  *cache.Cache
	recipe *models.Recipe
	home   string
}

// loadEnv builds the run environment from the command's flags and the
// recipe path argument. Settings/options flags override the config
// file; recipe remotes are merged after the configured ones.
func loadEnv(cmd *cobra.Command, recipePath string) (*runEnv, error) {
	home, _ := cmd.Flags().GetString("home")

	cfg, err := config.Load(home)
	if err != nil {
		return nil, err
	}

	if err := applyOverrides(cmd, cfg); err != nil {
		return nil, err
	}

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	rec, err := recipe.Load(recipePath)
	if err != nil {
		return nil, err
	}

	// recipe options not overridden on the command line take defaults
	if cfg.Options == nil {
		cfg.Options = make(map[string]string)
	}
	for _, opt := range rec.Options {
		v, _ := rec.OptionValue(opt.Name, cfg.Options)
		cfg.Options[opt.Name] = v
	}

	// recipe remotes are fallback after the configured ones
	cfg.Remotes = mergeRemotes(cfg.Remotes, rec.Remotes)

	return &runEnv{cfg: cfg, cache: c, recipe: rec, home: home}, nil
}

func applyOverrides(cmd *cobra.Command, cfg *models.ClientConfig) error {
	if cfg.Settings == nil {
		cfg.Settings = make(map[string]string)
	}
	if cfg.Options == nil {
		cfg.Options = make(map[string]string)
	}

	settings, _ := cmd.Flags().GetStringSlice("setting")
	for _, s := range settings {
		k, v, err := splitAssign(s)
		if err != nil {
			return err
		}
		cfg.Settings[k] = v
	}

	options, _ := cmd.Flags().GetStringSlice("option")
	for _, o := range options {
		k, v, err := splitAssign(o)
		if err != nil {
			return err
		}
		cfg.Options[k] = v
	}

	if key, _ := cmd.Flags().GetString("gpg-key"); key != "" {
		cfg.GPGKeyPath = key
	}
	if pass, _ := cmd.Flags().GetString("gpg-passphrase"); pass != "" {
		cfg.GPGPassphrase = pass
	}

	return nil
}

func splitAssign(s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return "", "", &models.ForgeError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("expected key=value, got %q", s),
		}
	}
	return k, v, nil
}

func mergeRemotes(configured, declared []models.Remote) []models.Remote {
	seen := make(map[string]bool, len(configured))
	merged := make([]models.Remote, 0, len(configured)+len(declared))
	for _, r := range configured {
		seen[r.Name] = true
		merged = append(merged, r)
	}
	for _, r := range declared {
		if !seen[r.Name] {
			merged = append(merged, r)
		}
	}
	return merged
}

// addConfigFlags registers the flags shared by the stage commands
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("setting", "s", nil, "Override a setting (key=value)")
	cmd.Flags().StringSliceP("option", "o", nil, "Override a recipe option (key=value)")
}

// addSigningFlags registers the GPG flags for commands that produce packages
func addSigningFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("gpg-key", "k", "", "Path to GPG private key for manifest signing")
	cmd.Flags().StringP("gpg-passphrase", "p", "", "GPG key passphrase")
}
