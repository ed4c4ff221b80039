// Package config loads tool configuration from a TOML file with
// environment overrides.
//
// Configuration is looked up at the platform user config directory
// (plotwire/config.toml) unless an explicit path is given. Environment
// variables override file values:
//
//	PLOTWIRE_TILE_TOKEN   tile-map access credential
//	PLOTWIRE_CACHE_DIR    file cache directory
//	PLOTWIRE_CACHE_REDIS  redis address, enables the redis cache backend
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/plotwire/plotwire/pkg/errors"
)

// Environment variable names.
const (
	EnvTileToken  = "PLOTWIRE_TILE_TOKEN"
	EnvCacheDir   = "PLOTWIRE_CACHE_DIR"
	EnvCacheRedis = "PLOTWIRE_CACHE_REDIS"
)

// DefaultCacheTTL bounds how long rendered artifacts stay cached.
const DefaultCacheTTL = 24 * time.Hour

// Config is the tool configuration.
type Config struct {
	// TileToken is the access credential for tile-map figures.
	TileToken string `toml:"tile_token"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Dir is the file cache directory. Empty selects the platform default.
	Dir string `toml:"dir"`

	// Redis is a redis address (host:port). Non-empty selects the redis
	// backend over the file backend.
	Redis string `toml:"redis"`

	// TTL is the artifact lifetime as a duration string ("24h", "30m").
	TTL string `toml:"ttl"`
}

// TTLDuration parses the configured TTL, falling back to the default when
// unset.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return DefaultCacheTTL, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse cache ttl %q", c.TTL)
	}
	return d, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve user config dir")
	}
	return filepath.Join(dir, "plotwire", "config.toml"), nil
}

// DefaultCacheDir returns the default file cache directory.
func DefaultCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve user cache dir")
	}
	return filepath.Join(dir, "plotwire"), nil
}

// Load reads the config file at path and applies environment overrides.
// A missing file is not an error: overrides still apply to the zero config.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to env overrides.
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
	}

	cfg.applyEnv()
	if _, err := cfg.Cache.TTLDuration(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault loads the config from the default location.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvTileToken); v != "" {
		c.TileToken = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv(EnvCacheRedis); v != "" {
		c.Cache.Redis = v
	}
}
