package types

import (
	"fmt"
	"time"
)

// Supported cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// DatasetRef names a CurbLR file in the data directory and the label shown
// for it.
type DatasetRef struct {
	Path  string `json:"path" yaml:"path" mapstructure:"path"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
}

// Config holds the settings read from config.yaml and the environment.
type Config struct {
	DataDir       string        `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	DefaultDay    string        `json:"default_day" yaml:"default_day" mapstructure:"default_day"`
	DefaultTime   string        `json:"default_time" yaml:"default_time" mapstructure:"default_time"`
	LogLevel      string        `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogFormat     string        `json:"log_format" yaml:"log_format" mapstructure:"log_format"`
	ServerAddr    string        `json:"server_addr" yaml:"server_addr" mapstructure:"server_addr"`
	CacheBackend  string        `json:"cache_backend" yaml:"cache_backend" mapstructure:"cache_backend"`
	CacheTTL      time.Duration `json:"cache_ttl" yaml:"cache_ttl" mapstructure:"cache_ttl"`
	RedisAddr     string        `json:"redis_addr" yaml:"redis_addr" mapstructure:"redis_addr"`
	RedisPassword string        `json:"redis_password" yaml:"redis_password" mapstructure:"redis_password"`
	RedisDB       int           `json:"redis_db" yaml:"redis_db" mapstructure:"redis_db"`
	Workers       int           `json:"workers" yaml:"workers" mapstructure:"workers"`
	TieBreak      string        `json:"tie_break" yaml:"tie_break" mapstructure:"tie_break"`
	Datasets      []DatasetRef  `json:"datasets" yaml:"datasets" mapstructure:"datasets"`
}

// Defaults. The default query is the initial state of the curb map viewer.
const (
	DefaultDay        = "mo"
	DefaultTime       = "08:01"
	DefaultServerAddr = ":8080"
	DefaultCacheTTL   = 5 * time.Minute
)

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		DefaultDay:   DefaultDay,
		DefaultTime:  DefaultTime,
		LogLevel:     "info",
		LogFormat:    LogFormatText,
		ServerAddr:   DefaultServerAddr,
		CacheBackend: CacheMemory,
		CacheTTL:     DefaultCacheTTL,
	}
}

// knownCaches lists the cache backends that Validate accepts. The empty string
// means memory.
var knownCaches = map[string]bool{
	"":          true,
	CacheMemory: true,
	CacheRedis:  true,
	CacheNone:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if !knownCaches[c.CacheBackend] {
		return fmt.Errorf("%w: %q", ErrCacheUnknown, c.CacheBackend)
	}
	if c.CacheTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if c.Workers < 0 {
		return ErrWorkersInvalid
	}
	if _, err := ParseTieBreak(c.TieBreak); err != nil {
		return err
	}
	switch c.LogFormat {
	case "", LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrLogFormatUnknown, c.LogFormat)
	}
	return nil
}
