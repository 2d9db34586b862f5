// Package config holds process configuration for the CLI and the MCP server.
package config

// Config contains process configuration.
type Config struct {
	// LeagueID is the classic league analysed when a caller does not name one.
	LeagueID int `koanf:"league_id"`

	// RawRoot is where fetched upstream JSON is cached.
	RawRoot string `koanf:"raw_root"`

	// DerivedRoot is where computed summaries are written.
	DerivedRoot string `koanf:"derived_root"`

	// Addr is the MCP server listen address.
	Addr string `koanf:"addr"`

	// MCPPath is the HTTP path the MCP handler is mounted on.
	MCPPath string `koanf:"mcp_path"`

	// RequireAuth rejects requests without a valid API key.
	RequireAuth bool   `koanf:"require_auth"`
	AuthHeader  string `koanf:"auth_header"`
	APIKey      string `koanf:"api_key"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`

	// CacheSize bounds the number of leagues with cached results.
	CacheSize int `koanf:"cache_size"`

	FetchBaseURL     string `koanf:"fetch_base_url"`
	FetchUserAgent   string `koanf:"fetch_user_agent"`
	FetchIntervalMS  int    `koanf:"fetch_interval_ms"`
	FetchRetries     int    `koanf:"fetch_retries"`
	FetchConcurrency int    `koanf:"fetch_concurrency"`
	FetchTimeoutS    int    `koanf:"fetch_timeout_s"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		RawRoot:          "data/raw",
		DerivedRoot:      "data/derived",
		Addr:             ":8080",
		MCPPath:          "/mcp",
		AuthHeader:       "X-API-Key",
		LogLevel:         "info",
		LogFormat:        "text",
		CacheSize:        16,
		FetchBaseURL:     "https://fantasy.premierleague.com/api",
		FetchUserAgent:   "fpl-league-insights/1.0",
		FetchIntervalMS:  250,
		FetchRetries:     3,
		FetchConcurrency: 4,
		FetchTimeoutS:    20,
	}
}
