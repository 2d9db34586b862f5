package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "FPL_INSIGHTS_"
	envConfigFile = "FPL_INSIGHTS_CONFIG"
)

// Load builds a Config by layering, lowest precedence first:
//  1. defaults (New())
//  2. YAML file named by FPL_INSIGHTS_CONFIG, if set
//  3. env (prefix FPL_INSIGHTS_), e.g. FPL_INSIGHTS_LEAGUE_ID
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch {
	case c.RawRoot == "":
		return fmt.Errorf("%w: raw_root must not be empty", ErrInvalidConfig)
	case c.DerivedRoot == "":
		return fmt.Errorf("%w: derived_root must not be empty", ErrInvalidConfig)
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case !strings.HasPrefix(c.MCPPath, "/"):
		return fmt.Errorf("%w: mcp_path must start with /", ErrInvalidConfig)
	case c.RequireAuth && c.APIKey == "":
		return fmt.Errorf("%w: require_auth is set but api_key is empty", ErrInvalidConfig)
	case c.CacheSize <= 0:
		return fmt.Errorf("%w: cache_size must be positive", ErrInvalidConfig)
	case c.FetchRetries <= 0:
		return fmt.Errorf("%w: fetch_retries must be positive", ErrInvalidConfig)
	case c.FetchConcurrency <= 0:
		return fmt.Errorf("%w: fetch_concurrency must be positive", ErrInvalidConfig)
	case c.FetchIntervalMS < 0 || c.FetchTimeoutS <= 0:
		return fmt.Errorf("%w: fetch timings out of range", ErrInvalidConfig)
	}
	return nil
}
