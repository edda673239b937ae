package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-level settings read from the TOML config file.
// Zero values fall back to the defaults in defaultConfig.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir overrides the file cache directory (default: XDG cache dir).
	Dir string `toml:"dir"`
	// RedisAddr is the host:port of the Redis server for the redis backend.
	RedisAddr string `toml:"redis_addr"`
	// RedisPrefix namespaces keys in a shared Redis instance.
	RedisPrefix string `toml:"redis_prefix"`
	// TTLMinutes bounds the lifetime of cached artifacts. Zero keeps them
	// until evicted.
	TTLMinutes int `toml:"ttl_minutes"`
}

// RenderConfig holds render command defaults.
type RenderConfig struct {
	// Format is the default output format: "dot", "svg", or "png".
	Format string `toml:"format"`
	// Detailed includes op tags and targets in node labels.
	Detailed bool `toml:"detailed"`
}

func defaultConfig() Config {
	return Config{
		Cache:  CacheConfig{Backend: "file", RedisPrefix: appName},
		Render: RenderConfig{Format: "svg"},
	}
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file yields the defaults; a malformed file is an
// error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = configPath(); err != nil {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// configPath returns the config file location using the XDG convention
// (~/.config/tracekit/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
