// Package config loads terraviz settings from a TOML file.
//
// Configuration is optional: every field has a working default, the file
// may be absent, and present files only override the fields they set.
// The default location is <user config dir>/terraviz/config.toml;
// --config points at an explicit file, in which case a missing file is an
// error instead of a silent fallback.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/terracarta/terraviz/pkg/errors"
)

// Config is the root of the TOML document.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
}

// RenderConfig overrides the drawing defaults.
type RenderConfig struct {
	// Scale multiplies source coordinates into Graphviz points.
	Scale float64 `toml:"scale"`
	// NodeSize is the point-marker diameter in inches.
	NodeSize float64 `toml:"node_size"`
	// FlowColor is the stroke color for river flow edges.
	FlowColor string `toml:"flow_color"`
	// EdgeColor is the stroke color for all other edges.
	EdgeColor string `toml:"edge_color"`
	// WidthScale converts a flow edge's weight into extra pen width.
	WidthScale float64 `toml:"width_scale"`
}

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir is the file backend's root directory.
	Dir string `toml:"dir"`
	// TTL is the entry lifetime; zero keeps entries forever.
	TTL duration `toml:"ttl"`
	// RedisAddr is the redis backend's host:port.
	RedisAddr string `toml:"redis_addr"`
}

// duration lets TTL be written as "24h" in the file.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// Std returns the TTL as a standard library duration.
func (d duration) Std() time.Duration { return time.Duration(d) }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Scale:      1000,
			NodeSize:   0.04,
			FlowColor:  "steelblue",
			EdgeColor:  "gray40",
			WidthScale: 0.6,
		},
		Cache: CacheConfig{
			Backend: "file",
			Dir:     defaultCacheDir(),
			TTL:     0,
		},
	}
}

// DefaultPath returns the standard config file location, or "" when the
// user config dir cannot be determined.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "terraviz", "config.toml")
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "terraviz")
	}
	return filepath.Join(base, "terraviz")
}

// Load reads the config file at path, layered over [Default]. An empty
// path means the standard location, where a missing file is not an
// error; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig,
			"unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidBackend,
			"unknown cache backend %q (want file, redis, or none)", c.Cache.Backend)
	}
	if c.Render.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.scale must be positive")
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr required for the redis backend")
	}
	return nil
}
