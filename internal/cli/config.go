package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/curbmap/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "CURBMAP"
)

// loadConfig reads config.yaml from configDir and CURBMAP_* environment
// variables on top of the defaults. A missing config.yaml is not an error.
// A .env file in the working directory is loaded into the environment first.
func loadConfig(configDir string) (types.Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return types.Config{}, fmt.Errorf("load .env: %w", err)
	}

	def := types.DefaultConfig()
	v := viper.New()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("default_day", def.DefaultDay)
	v.SetDefault("default_time", def.DefaultTime)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("server_addr", def.ServerAddr)
	v.SetDefault("cache_backend", def.CacheBackend)
	v.SetDefault("cache_ttl", def.CacheTTL)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("tie_break", def.TieBreak)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
