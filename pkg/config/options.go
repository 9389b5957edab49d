package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptTaxonomyBackend selects the storage adapter.
// Valid values: "ram", "sqlite".
func OptTaxonomyBackend(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Taxonomy.Backend", s) {
			c.Taxonomy.Backend = s
		}
	}
}

// OptTaxonomyMaxTreeDepth sets the cap on parent-pointer walks.
func OptTaxonomyMaxTreeDepth(i int) Option {
	return func(c *Config) {
		if isValidInt("Taxonomy MaxTreeDepth", i) {
			c.Taxonomy.MaxTreeDepth = i
		}
	}
}

// OptTaxonomyBatchSize sets the insert batch size of the sqlite backend.
func OptTaxonomyBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Taxonomy BatchSize", i) {
			c.Taxonomy.BatchSize = i
		}
	}
}

// OptFetchBaseURL sets the directory URL serving the taxdmp archive.
func OptFetchBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Fetch BaseURL", s) {
			c.Fetch.BaseURL = s
		}
	}
}

// OptFetchCheckForUpdates enables remote MD5 comparison.
func OptFetchCheckForUpdates(b bool) Option {
	return func(c *Config) {
		c.Fetch.CheckForUpdates = b
	}
}

// OptFetchRetries sets the number of download retries after an
// MD5 mismatch.
func OptFetchRetries(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch Retries", i) {
			c.Fetch.Retries = i
		}
	}
}

// OptLogFormat sets the logging format ('json' or 'text').
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogLevel sets the logging level.
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogDestination sets where logs are written.
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory (runtime-only field).
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Dir", s) {
			c.HomeDir = s
		}
	}
}
