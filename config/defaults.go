package config

import "github.com/spf13/viper"

// Default server bind address. High port, above the privileged range.
const DefaultListenAddr = ":8088"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.listen", DefaultListenAddr)
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost",
		"https://localhost",
		"http://127.0.0.1",
		"https://127.0.0.1",
	})

	// Dataset store defaults
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.fetch", true)
	v.SetDefault("data.watch", true)

	// Sampling defaults
	v.SetDefault("sampling.default_count", 50000)
	v.SetDefault("sampling.min_count", 1000)
	v.SetDefault("sampling.max_count", 500000)
	v.SetDefault("sampling.default_max_radius", 20.0)
	v.SetDefault("sampling.retry_cap", 200)
	v.SetDefault("sampling.grid_steps", 800)

	// Logging defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")
}
