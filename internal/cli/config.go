package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/psptools/psplib/pkg/cache"
	"github.com/psptools/psplib/pkg/errors"
	"github.com/psptools/psplib/pkg/io"
)

// config holds user-adjustable defaults, loaded from an optional TOML file
// at <user config dir>/psplib/config.toml. Missing file means all defaults.
type config struct {
	// CacheBackend selects the cache implementation: "file", "redis", or "none".
	CacheBackend string `toml:"cache_backend"`
	// CacheDir overrides the directory used by the file cache.
	CacheDir string `toml:"cache_dir"`
	// RedisAddr is the address of the Redis server for the redis backend.
	RedisAddr string `toml:"redis_addr"`
	// Indent is the number of spaces per JSON indentation level.
	Indent int `toml:"indent"`
	// Format is the default output format for visualize.
	Format string `toml:"format"`
}

// defaultConfig returns the configuration used when no config file exists.
func defaultConfig() config {
	return config{
		CacheBackend: "file",
		RedisAddr:    "localhost:6379",
		Indent:       io.DefaultIndent,
		Format:       "svg",
	}
}

// configPath returns the location of the optional config file.
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "failed to locate user config directory")
	}
	return filepath.Join(dir, "psplib", "config.toml"), nil
}

// loadConfig reads the config file if present and merges it over the defaults.
// A missing file is not an error; a malformed file is.
func loadConfig() (config, error) {
	cfg := defaultConfig()
	path, err := configPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInternal, err, "failed to read config file")
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse config file")
	}
	return cfg, nil
}

// cacheDir returns the directory for the file cache, honoring the config override.
func (c config) cacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "failed to locate user cache directory")
	}
	return filepath.Join(dir, "psplib"), nil
}

// openCache constructs the cache backend selected by the config.
func openCache(ctx context.Context, cfg config) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case "", "file":
		dir, err := cfg.cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisAddr)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend: %s", cfg.CacheBackend)
	}
}
