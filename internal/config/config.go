package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/forgekit/forge/internal/models"
	"github.com/spf13/viper"
)

// DefaultDir returns the per-user tool directory (~/.forge)
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".forge"
	}
	return filepath.Join(home, ".forge")
}

// Load reads the client configuration from dir/config.yaml. A missing
// file yields the defaults; a malformed one is an error.
func Load(dir string) (*models.ClientConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("cache_dir", dir)
	v.SetDefault("settings.os", defaultOS())
	v.SetDefault("settings.arch", runtime.GOARCH)
	v.SetDefault("settings.build_type", "Release")
	v.SetDefault("settings.compiler", defaultCompiler())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &models.ForgeError{Type: models.ErrInvalidConfig, Err: err}
		}
	}

	settings := v.GetStringMapString("settings")
	if settings == nil {
		settings = make(map[string]string)
	}
	// viper does not deep-merge a partial settings map in the config
	// file with the defaults, so fill the well-known keys per key
	for _, key := range []string{"os", "arch", "build_type", "compiler"} {
		if settings[key] == "" {
			settings[key] = v.GetString("settings." + key)
		}
	}

	cfg := &models.ClientConfig{
		CacheDir: v.GetString("cache_dir"),
		Settings: settings,
		Options:  v.GetStringMapString("options"),
	}

	var raw []struct {
		Name string `mapstructure:"name"`
		URL  string `mapstructure:"url"`
	}
	if err := v.UnmarshalKey("remotes", &raw); err != nil {
		return nil, &models.ForgeError{Type: models.ErrInvalidConfig, Err: err}
	}
	for _, r := range raw {
		if r.Name == "" || r.URL == "" {
			return nil, &models.ForgeError{
				Type: models.ErrInvalidConfig,
				Err:  fmt.Errorf("remote entries need both name and url"),
			}
		}
		cfg.Remotes = append(cfg.Remotes, models.Remote{Name: r.Name, URL: r.URL})
	}

	return cfg, nil
}

func defaultOS() string {
	switch runtime.GOOS {
	case "darwin":
		return "Macos"
	case "windows":
		return "Windows"
	default:
		return "Linux"
	}
}

func defaultCompiler() string {
	if runtime.GOOS == "windows" {
		return "msvc"
	}
	return "gcc"
}
