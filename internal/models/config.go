package models

import "time"

// Output formats supported by the report writer
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DiffConfig contains configuration for a branch comparison
type DiffConfig struct {
	// Branches to compare; Branch1 is the source list
	Branch1 string
	Branch2 string
	Limit   int

	// Package source
	APIURL   string
	Timeout  time.Duration
	CacheDir string
	CacheTTL time.Duration

	// Output
	Format     string
	OutputFile string
	Progress   bool

	// Signing
	GPGKeyPath    string
	GPGPassphrase string
}
