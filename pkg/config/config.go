// Package config provides configuration management for ncbitax.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use NCBITAX_ prefix with underscores for nesting:
//
//	NCBITAX_TAXONOMY_BACKEND=sqlite
//	NCBITAX_TAXONOMY_MAX_TREE_DEPTH=256
//	NCBITAX_LOG_LEVEL=info
package config

import (
	"runtime"
)

// Config represents the complete ncbitax configuration.
type Config struct {
	// Taxonomy contains settings of the taxonomy query engine.
	Taxonomy TaxonomyConfig `mapstructure:"taxonomy" yaml:"taxonomy"`

	// Fetch contains settings for downloading the NCBI taxdmp archive.
	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// operations (dump parsing, bulk inserts). Default value is set
	// according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, data, cache and logs directories
	// reside. It must be set by CLI during init, there is no default
	// value for it.
	HomeDir string
}

// TaxonomyConfig contains settings of the taxonomy query engine.
type TaxonomyConfig struct {
	// Backend selects the storage adapter behind the query engine.
	// Valid values: "ram" (in-memory maps), "sqlite" (persisted file).
	Backend string `mapstructure:"backend" yaml:"backend"`

	// MaxTreeDepth caps parent-pointer walks. The real NCBI tree is
	// about 40 levels deep; walks longer than this limit indicate a
	// corrupted dump or a cycle and abort with MalformedTreeError.
	MaxTreeDepth int `mapstructure:"max_tree_depth" yaml:"max_tree_depth"`

	// BatchSize defines the number of records per insert batch when the
	// sqlite backend is populated. Larger batches are faster but use
	// more memory.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// FetchConfig contains settings for downloading NCBI taxonomy dumps.
type FetchConfig struct {
	// BaseURL is the directory URL that serves taxdmp.zip and its
	// MD5 companion file.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// CheckForUpdates enables the remote MD5 comparison before a
	// redownload is attempted.
	CheckForUpdates bool `mapstructure:"check_for_updates" yaml:"check_for_updates"`

	// Retries is the number of download attempts after an MD5 mismatch.
	Retries int `mapstructure:"retries" yaml:"retries"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Taxonomy: TaxonomyConfig{
			Backend:      "ram",
			MaxTreeDepth: 256,
			BatchSize:    10_000,
		},
		Fetch: FetchConfig{
			BaseURL:         "https://ftp.ncbi.nlm.nih.gov/pub/taxonomy/",
			CheckForUpdates: false,
			Retries:         3,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
