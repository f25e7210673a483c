package config

// Config represents the core atomview configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Data     DataConfig     `mapstructure:"data"`
	Sampling SamplingConfig `mapstructure:"sampling"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig configures the HTTP sampling server
type ServerConfig struct {
	Listen         string   `mapstructure:"listen"`          // Bind address, e.g. ":8088"
	AllowedOrigins []string `mapstructure:"allowed_origins"` // WebSocket origin allowlist
}

// DataConfig configures the on-disk dataset store
type DataConfig struct {
	Dir   string `mapstructure:"dir"`   // Root directory for dataset files
	Fetch bool   `mapstructure:"fetch"` // Download missing datasets from upstream archives
	Watch bool   `mapstructure:"watch"` // Invalidate cache on dataset file changes
}

// SamplingConfig bounds client sampling requests and tunes the
// internal grids.
type SamplingConfig struct {
	DefaultCount     int     `mapstructure:"default_count"`      // Samples per request when unspecified
	MinCount         int     `mapstructure:"min_count"`          // Lower clamp on requested count
	MaxCount         int     `mapstructure:"max_count"`          // Upper clamp on requested count
	DefaultMaxRadius float64 `mapstructure:"default_max_radius"` // Spatial cutoff in Bohr radii
	RetryCap         int     `mapstructure:"retry_cap"`          // Rejection attempts per point before dropping it
	GridSteps        int     `mapstructure:"grid_steps"`         // Radial grid points for analytic tables
}

// LogConfig configures logging output
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`  // Structured JSON output instead of console
	Level string `mapstructure:"level"` // debug, info, warn, error
}
