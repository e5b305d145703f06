package packager

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/forgekit/forge/internal/models"
	"github.com/forgekit/forge/internal/signer"
	"github.com/forgekit/forge/internal/utils"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ManifestName is the manifest's filename inside a staged package
const ManifestName = "forgemanifest.yaml"

// PublicKeyName is the armored verification key shipped with a signed
// package, next to the manifest and its signature
const PublicKeyName = "forge.pub"

// ManifestFile is one staged file's record in the manifest
type ManifestFile struct {
	Path   string `yaml:"path"`
	SHA256 string `yaml:"sha256"`
	Size   int64  `yaml:"size"`
}

// Manifest describes a staged package: its reference, the build
// configuration it was produced under, the staged files with their
// digests, and the link surface exported to consumers.
type Manifest struct {
	Ref       string            `yaml:"ref"`
	PackageID string            `yaml:"package_id"`
	License   string            `yaml:"license,omitempty"`
	Settings  map[string]string `yaml:"settings,omitempty"`
	Options   map[string]string `yaml:"options,omitempty"`
	Files     []ManifestFile    `yaml:"files"`
	Libs      []string          `yaml:"libs,omitempty"`
}

// BuildManifest assembles the manifest for a staged package
func BuildManifest(rec *models.Recipe, cfg *models.ClientConfig, packageID string, staged []StagedFile) *Manifest {
	m := &Manifest{
		Ref:       rec.Ref().String(),
		PackageID: packageID,
		License:   rec.License,
		Settings:  cfg.Settings,
		Options:   cfg.Options,
		Libs:      rec.Info.Libs,
	}

	for _, f := range staged {
		m.Files = append(m.Files, ManifestFile{
			Path:   f.Path,
			SHA256: f.SHA256,
			Size:   f.Size,
		})
	}
	sort.Slice(m.Files, func(i, j int) bool {
		return m.Files[i].Path < m.Files[j].Path
	})

	return m
}

// Write serializes the manifest into the package dir and, when a
// signer is present, leaves an armored detached signature and the
// signer's public key next to it.
func (m *Manifest) Write(packageDir string, s signer.Signer) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return packageErr(err)
	}

	path := filepath.Join(packageDir, ManifestName)
	if err := utils.WriteFile(path, data, 0644); err != nil {
		return &models.ForgeError{Type: models.ErrFileOp, Ref: m.Ref, Err: err}
	}

	if s != nil {
		sig, err := s.SignDetached(data)
		if err != nil {
			return &models.ForgeError{Type: models.ErrSigning, Ref: m.Ref, Err: err}
		}
		if err := utils.WriteFile(path+".asc", sig, 0644); err != nil {
			return &models.ForgeError{Type: models.ErrFileOp, Ref: m.Ref, Err: err}
		}

		pub, err := s.PublicKey()
		if err != nil {
			return &models.ForgeError{Type: models.ErrSigning, Ref: m.Ref, Err: err}
		}
		if err := utils.WriteFile(filepath.Join(packageDir, PublicKeyName), pub, 0644); err != nil {
			return &models.ForgeError{Type: models.ErrFileOp, Ref: m.Ref, Err: err}
		}
		logrus.Info("Package manifest signed")
	}

	return nil
}

// ReadManifest loads a manifest out of a staged package dir
func ReadManifest(packageDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(packageDir, ManifestName))
	if err != nil {
		return nil, &models.ForgeError{Type: models.ErrFileOp, Err: err}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, packageErr(err)
	}
	return &m, nil
}
