// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer file and env providers on top via Load.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// Source locates the primary leaderboard CSV (http(s) URL or file path).
	Source string `koanf:"source"`

	// OracleSource locates the oracle-mode CSV. Leaving it empty disables
	// the oracle toggle and selects the single-file schema.
	OracleSource string `koanf:"oracle_source"`

	// RefreshSeconds sets the periodic dataset reload interval.
	RefreshSeconds int `koanf:"refresh_seconds"`

	// DebounceMS sets the search debounce delay in milliseconds.
	DebounceMS int `koanf:"debounce_ms"`

	// FetchTimeoutSeconds bounds a single dataset fetch.
	FetchTimeoutSeconds int `koanf:"fetch_timeout_seconds"`
}

// Default values.
const (
	defaultAddr           = ":8090"
	defaultSource         = "data/leaderboard.csv"
	defaultRefreshSeconds = 300
	defaultDebounceMS     = 300
	defaultFetchTimeout   = 10
)

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                defaultAddr,
		Source:              defaultSource,
		OracleSource:        "",
		RefreshSeconds:      defaultRefreshSeconds,
		DebounceMS:          defaultDebounceMS,
		FetchTimeoutSeconds: defaultFetchTimeout,
	}
}
