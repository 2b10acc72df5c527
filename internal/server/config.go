package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/finance-calculator/internal/cache"
	"github.com/iwvelando/finance-calculator/internal/config"
	"github.com/iwvelando/finance-calculator/internal/tracing"
	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/validation"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvRedisAddr = "FINCALC_REDIS_ADDR"
	EnvOTELAddr  = "OTEL_ENDPOINT"
	EnvBaseURL   = "FINCALC_BASE_URL"
)

// maxCacheTTL bounds the configured cache lifetime.
const maxCacheTTL = 7 * 24 * time.Hour

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address      string               `yaml:"address"`
	MaxBodySize  string               `yaml:"maxBodySize"`
	BaseURL      string               `yaml:"baseURL"`
	Logging      config.LoggingConfig `yaml:"logging"`
	Cache        CacheConfig          `yaml:"cache"`
	CORS         CORSConfig           `yaml:"cors"`
	Tracing      tracing.Config       `yaml:"tracing"`
	bodySizeByte int64
}

// CacheConfig selects the evaluation cache.
type CacheConfig struct {
	Backend    string `yaml:"backend"` // memory, redis, none
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"maxEntries"`
	ttl        time.Duration
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Address:     constants.DefaultServerAddress,
		MaxBodySize: fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes),
		BaseURL:     constants.DefaultBaseURL,
		Cache: CacheConfig{
			Backend:    cache.BackendMemory,
			MaxEntries: constants.DefaultCacheEntries,
			ttl:        constants.DefaultCacheTTLSeconds * time.Second,
		},
		CORS:         CORSConfig{AllowedOrigins: []string{"*"}},
		Tracing:      tracing.Config{ServiceName: constants.DefaultServiceName},
		bodySizeByte: constants.DefaultMaxBodySizeBytes,
	}
}

func (c *Config) applyEnv() {
	if addr := os.Getenv(EnvRedisAddr); addr != "" {
		c.Cache.Backend = cache.BackendRedis
		c.Cache.Addr = addr
	}
	if endpoint := os.Getenv(EnvOTELAddr); endpoint != "" {
		c.Tracing.Endpoint = endpoint
	}
	if base := os.Getenv(EnvBaseURL); base != "" {
		c.BaseURL = base
	}
}

// BodySizeBytes returns the configured request body limit in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeByte
}

// SetBodySizeBytes overrides the configured request body limit.
func (c *Config) SetBodySizeBytes(size int64) {
	if size > 0 {
		c.bodySizeByte = size
		c.MaxBodySize = fmt.Sprintf("%d", size)
	}
}

// CacheTTL returns the parsed cache entry lifetime.
func (c *Config) CacheTTL() time.Duration {
	return c.Cache.ttl
}

// CacheOptions converts the cache section for cache.New.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:    c.Cache.Backend,
		Addr:       c.Cache.Addr,
		Password:   c.Cache.Password,
		DB:         c.Cache.DB,
		MaxEntries: c.Cache.MaxEntries,
		Prefix:     constants.DefaultServiceName + ":",
	}
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.BaseURL == "" {
		c.BaseURL = constants.DefaultBaseURL
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = constants.DefaultServiceName
	}

	sizeStr := strings.TrimSpace(c.MaxBodySize)
	if sizeStr == "" {
		c.bodySizeByte = constants.DefaultMaxBodySizeBytes
		c.MaxBodySize = fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes)
	} else {
		bytes, err := ParseSize(sizeStr)
		if err != nil {
			return err
		}
		if bytes <= 0 {
			bytes = constants.DefaultMaxBodySizeBytes
		}
		c.bodySizeByte = bytes
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = cache.BackendMemory
	}
	if err := validation.ValidateOneOf("cache.backend", c.Cache.Backend,
		[]string{cache.BackendMemory, cache.BackendRedis, cache.BackendNone}); err != nil {
		return err
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.Addr == "" {
		return fmt.Errorf("cache.addr is required for the redis backend")
	}
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = constants.DefaultCacheEntries
	}

	if ttlStr := strings.TrimSpace(c.Cache.TTL); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return fmt.Errorf("invalid cache.ttl %q: %w", c.Cache.TTL, err)
		}
		if err := validation.ValidateRange("cache.ttl", ttl.Seconds(), 0, maxCacheTTL.Seconds()); err != nil {
			return err
		}
		c.Cache.ttl = ttl
	} else if c.Cache.ttl == 0 {
		c.Cache.ttl = constants.DefaultCacheTTLSeconds * time.Second
	}
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 || (n != 0 && result/multiplier != n) {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
