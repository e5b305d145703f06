package models

// LockfileVersion is the current lockfile format version
const LockfileVersion = 1

// LockedRequire pins one resolved require to the exact artifact that
// satisfied it.
type LockedRequire struct {
	Ref     string `yaml:"ref"`
	Version string `yaml:"version"`
	Remote  string `yaml:"remote"`
	SHA256  string `yaml:"sha256"`
	Size    int64  `yaml:"size"`
}

// Lockfile is a reproducible snapshot of a recipe's resolved requires
type Lockfile struct {
	Version  int                      `yaml:"version"`
	Requires map[string]LockedRequire `yaml:"requires"`
}

// NewLockfile returns an empty lockfile at the current format version
func NewLockfile() *Lockfile {
	return &Lockfile{
		Version:  LockfileVersion,
		Requires: make(map[string]LockedRequire),
	}
}
