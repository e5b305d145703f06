package lockfile

import (
	"fmt"
	"os"

	"github.com/forgekit/forge/internal/models"
	"github.com/forgekit/forge/internal/remote"
	"gopkg.in/yaml.v3"
)

// DefaultName is the lockfile filename next to the recipe
const DefaultName = "forge.lock"

// Read loads a lockfile. A missing file yields an empty lock, so first
// installs and locked installs share one code path.
func Read(path string) (*models.Lockfile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return models.NewLockfile(), nil
	}
	if err != nil {
		return nil, &models.ForgeError{Type: models.ErrFileOp, Err: err}
	}

	var lock models.Lockfile
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, &models.ForgeError{Type: models.ErrInvalidConfig, Err: err}
	}
	if lock.Version != models.LockfileVersion {
		return nil, &models.ForgeError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("unsupported lockfile version %d", lock.Version),
		}
	}
	if lock.Requires == nil {
		lock.Requires = make(map[string]models.LockedRequire)
	}
	return &lock, nil
}

// Write serializes a lockfile
func Write(path string, lock *models.Lockfile) error {
	data, err := yaml.Marshal(lock)
	if err != nil {
		return &models.ForgeError{Type: models.ErrInvalidConfig, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &models.ForgeError{Type: models.ErrFileOp, Err: err}
	}
	return nil
}

// Pinned rewrites a floating "latest" require to its locked version
// when the lock holds one, so the channel publishing a newer release
// does not move an already locked install. Exact-version requires pass
// through untouched; changing one against a stale lock is drift and
// Check reports it.
func Pinned(lock *models.Lockfile, req models.Ref) models.Ref {
	if req.Version != "latest" {
		return req
	}
	if entry, ok := lock.Requires[req.Name]; ok {
		req.Version = entry.Version
	}
	return req
}

// Check validates a resolution against the lock. A locked entry pins
// the resolved version and checksum; a resolution contradicting its
// pin is an error rather than a silent upgrade.
func Check(lock *models.Lockfile, res *remote.Resolution) error {
	entry, ok := lock.Requires[res.Ref.Name]
	if !ok {
		return nil
	}
	if entry.Version != res.Version {
		return &models.ForgeError{
			Type: models.ErrResolve,
			Ref:  res.Ref.String(),
			Err: fmt.Errorf("lockfile pins version %s but resolution produced %s",
				entry.Version, res.Version),
		}
	}
	if entry.SHA256 != "" && res.SHA256 != "" && entry.SHA256 != res.SHA256 {
		return &models.ForgeError{
			Type: models.ErrResolve,
			Ref:  res.Ref.String(),
			Err:  fmt.Errorf("lockfile pins a different artifact checksum"),
		}
	}
	return nil
}

// Record pins a resolution into the lock
func Record(lock *models.Lockfile, res *remote.Resolution) {
	lock.Requires[res.Ref.Name] = models.LockedRequire{
		Ref:     res.Ref.String(),
		Version: res.Version,
		Remote:  res.Remote,
		SHA256:  res.SHA256,
		Size:    res.Size,
	}
}
