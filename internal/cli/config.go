package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
	"github.com/matzehuels/cloudgraph/pkg/layout"
)

// configFile is looked up in the working directory before the XDG config dir.
const configFile = "cloudgraph.toml"

// Cache backends selectable in [cache].
const (
	backendFile   = "file"
	backendMemory = "memory"
	backendRedis  = "redis"
	backendNone   = "none"
)

// Config is the optional TOML configuration file.
//
//	[layout]
//	algorithm = "clustered"
//	node_spacing = 60
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":9000"
type Config struct {
	// Layout holds defaults applied beneath each diagram's own options.
	Layout diagram.LayoutOptions `toml:"layout"`
	Cache  CacheConfig           `toml:"cache"`
	Server ServerConfig          `toml:"server"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend" validate:"omitempty,oneof=file memory redis none"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db" validate:"gte=0"`
	// Prefix namespaces every cache key, for backends shared between deployments.
	Prefix string `toml:"prefix"`
}

// ServerConfig configures "cloudgraph serve".
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes" validate:"gte=0"`
	Timeout      string `toml:"timeout"`
}

// timeout parses Timeout; an empty value yields zero (the server default).
func (s ServerConfig) timeout() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("server.timeout: %w", err)
	}
	return d, nil
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// loadConfig reads the config at path, or searches the default locations
// when path is empty. It returns the zero Config when no file exists in the
// default locations; an explicit path must exist.
func loadConfig(path string) (Config, string, error) {
	var cfg Config
	if path == "" {
		path = findConfig()
		if path == "" {
			return cfg, "", nil
		}
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, "", fmt.Errorf("config file not found: %s", path)
		}
		return cfg, "", fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, "", fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := configValidator.Struct(cfg.Cache); err != nil {
		return cfg, "", fmt.Errorf("config %s: [cache]: %w", path, err)
	}
	if err := configValidator.Struct(cfg.Server); err != nil {
		return cfg, "", fmt.Errorf("config %s: [server]: %w", path, err)
	}
	if _, err := cfg.Server.timeout(); err != nil {
		return cfg, "", fmt.Errorf("config %s: %w", path, err)
	}
	if err := layout.Validate(cfg.Layout); err != nil {
		return cfg, "", fmt.Errorf("config %s: [layout]: %w", path, err)
	}
	return cfg, path, nil
}

// findConfig returns the first existing default config path, or "".
func findConfig() string {
	candidates := []string{configFile}
	if dir := configDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "config.toml"))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// configDir returns the XDG config directory (~/.config/cloudgraph/).
func configDir() string {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}
