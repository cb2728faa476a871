package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk server configuration (YAML).
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	CORS       CORSConfig       `yaml:"cors"`
	Simulation SimulationConfig `yaml:"simulation"`
	Store      StoreConfig      `yaml:"store"`
	Cache      CacheConfig      `yaml:"cache"`
	// PresetDir holds property preset YAML files (e.g. examples/properties).
	PresetDir string `yaml:"preset_dir"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	// Env is "development" or "production"; production switches gin to release mode.
	Env string `yaml:"env"`
}

type CORSConfig struct {
	AllowedOrigins     []string `yaml:"allowed_origins"`
	AllowedOriginRegex string   `yaml:"allowed_origin_regex"`
	AllowCredentials   bool     `yaml:"allow_credentials"`
}

type SimulationConfig struct {
	DefaultSimulations int `yaml:"default_simulations"`
	MaxSimulations     int `yaml:"max_simulations"`
	// Workers > 1 fans portfolio trials out over goroutines.
	Workers int `yaml:"workers"`
}

type StoreConfig struct {
	// Backend is "memory" or "redis".
	Backend   string `yaml:"backend"`
	RedisAddr string `yaml:"redis_addr"`
	RedisKey  string `yaml:"redis_key"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Env: "development"},
		CORS: CORSConfig{
			AllowedOrigins:     []string{"http://localhost:5173"},
			AllowedOriginRegex: `^https://.*\.vercel\.app$`,
			AllowCredentials:   true,
		},
		Simulation: SimulationConfig{
			DefaultSimulations: 500,
			MaxSimulations:     5000,
			Workers:            1,
		},
		Store: StoreConfig{
			Backend:   "memory",
			RedisAddr: "localhost:6379",
			RedisKey:  "realestate:portfolio",
		},
		Cache:     CacheConfig{Enabled: true, TTL: time.Hour},
		PresetDir: "./examples/properties",
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv(os.Getenv)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads path over the defaults without env overrides or
// validation. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv overlays the environment variables the deployment sets.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := getenv("PRESET_DIR"); v != "" {
		c.PresetDir = v
	}
	if v := getenv("STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Store.RedisAddr = v
	}
	if v := getenv("CORS_ORIGINS"); v != "" {
		c.CORS.AllowedOrigins = splitList(v)
	}
	if v := getenv("SIM_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Simulation.Workers = n
		}
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Simulation.DefaultSimulations < 1 {
		return errors.New("simulation.default_simulations must be >= 1")
	}
	if c.Simulation.MaxSimulations < c.Simulation.DefaultSimulations {
		return errors.New("simulation.max_simulations must be >= default_simulations")
	}
	switch c.Store.Backend {
	case "memory":
	case "redis":
		if c.Store.RedisAddr == "" {
			return errors.New("store.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unsupported store backend: %q", c.Store.Backend)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return errors.New("cache.ttl must be > 0 when the cache is enabled")
	}
	return nil
}

// IsProduction reports whether the server runs in release mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
