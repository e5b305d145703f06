package models

import (
	"fmt"
	"sort"
	"strings"
)

// ClientConfig contains the tool-wide configuration loaded from the
// config file and overridden by CLI flags.
type ClientConfig struct {
	// CacheDir is the root of the local package store
	CacheDir string

	// Remotes are the configured package channels, in fallback order
	Remotes []Remote

	// Active build configuration
	Settings map[string]string // os, compiler, build_type, arch
	Options  map[string]string // recipe option assignments

	// Signing
	GPGKeyPath    string
	GPGPassphrase string
}

// Setting returns the active value for a setting name
func (c *ClientConfig) Setting(name string) string {
	if c.Settings == nil {
		return ""
	}
	return c.Settings[name]
}

// BuildConfigID returns the canonical settings+options string used for
// package identity. Keys are sorted so the rendering is stable.
func (c *ClientConfig) BuildConfigID() string {
	var parts []string
	for k, v := range c.Settings {
		parts = append(parts, fmt.Sprintf("settings.%s=%s", k, v))
	}
	for k, v := range c.Options {
		parts = append(parts, fmt.Sprintf("options.%s=%s", k, v))
	}
	sort.Strings(parts)
	return strings.Join(parts, "\n")
}
