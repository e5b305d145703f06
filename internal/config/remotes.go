package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/forgekit/forge/internal/models"
	"gopkg.in/yaml.v3"
)

type remoteEntry struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type configFile struct {
	CacheDir string            `yaml:"cache_dir,omitempty"`
	Settings map[string]string `yaml:"settings,omitempty"`
	Options  map[string]string `yaml:"options,omitempty"`
	Remotes  []remoteEntry     `yaml:"remotes"`
}

// SaveRemotes rewrites dir/config.yaml with the given remote list,
// preserving the other configuration keys.
func SaveRemotes(dir string, remotes []models.Remote) error {
	path := filepath.Join(dir, "config.yaml")

	var out configFile
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &out); err != nil {
			return &models.ForgeError{Type: models.ErrInvalidConfig, Err: err}
		}
	}

	out.Remotes = out.Remotes[:0]
	for _, r := range remotes {
		out.Remotes = append(out.Remotes, remoteEntry{Name: r.Name, URL: r.URL})
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return &models.ForgeError{Type: models.ErrInvalidConfig, Err: err}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &models.ForgeError{Type: models.ErrFileOp, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &models.ForgeError{Type: models.ErrFileOp, Err: err}
	}
	return nil
}

// AddRemote appends a remote to the stored list. Re-adding an existing
// name replaces its URL.
func AddRemote(dir string, remotes []models.Remote, add models.Remote) ([]models.Remote, error) {
	replaced := false
	for i := range remotes {
		if remotes[i].Name == add.Name {
			remotes[i].URL = add.URL
			replaced = true
			break
		}
	}
	if !replaced {
		remotes = append(remotes, add)
	}
	return remotes, SaveRemotes(dir, remotes)
}

// RemoveRemote drops a remote by name
func RemoveRemote(dir string, remotes []models.Remote, name string) ([]models.Remote, error) {
	for i := range remotes {
		if remotes[i].Name == name {
			remotes = append(remotes[:i], remotes[i+1:]...)
			return remotes, SaveRemotes(dir, remotes)
		}
	}
	return remotes, &models.ForgeError{
		Type: models.ErrInvalidConfig,
		Err:  fmt.Errorf("remote %q is not configured", name),
	}
}
