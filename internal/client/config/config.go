// Package config handles configuration for the AllBox CLI client,
// including defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the AllBox CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend HTTP API.
//   - StateDBPath: path of the local SQLite state database.
type Config struct {
	ServerEndpointAddr string
	StateDBPath        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.StateDBPath = "allbox.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
