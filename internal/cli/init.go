package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/curbmap/pkg/types"
)

// configFile is the structure written to config.yaml.
type configFile struct {
	DataDir      string             `yaml:"data_dir"`
	DefaultDay   string             `yaml:"default_day"`
	DefaultTime  string             `yaml:"default_time"`
	LogLevel     string             `yaml:"log_level"`
	LogFormat    string             `yaml:"log_format"`
	ServerAddr   string             `yaml:"server_addr"`
	CacheBackend string             `yaml:"cache_backend"`
	CacheTTL     string             `yaml:"cache_ttl"`
	Workers      int                `yaml:"workers"`
	TieBreak     string             `yaml:"tie_break,omitempty"`
	Datasets     []types.DatasetRef `yaml:"datasets,omitempty"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and dataset directories",
		Long:  "Create the configuration directory with a default config.yaml and the dataset directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(a.configDir, 0o755); err != nil {
				return sysErrorf("create config directory: %w", err)
			}
			configPath := filepath.Join(a.configDir, configFileExt)
			if err := writeConfigIfMissing(configPath, a.cfg); err != nil {
				return sysErrorf("write config: %w", err)
			}
			if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
				return sysErrorf("create data directory: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "curbmap initialized")
			fmt.Fprintf(out, "config: %s\ndata:   %s\n", configPath, a.cfg.DataDir)
			return nil
		},
	}
}

// writeConfigIfMissing writes cfg to path unless the file already exists.
func writeConfigIfMissing(path string, cfg types.Config) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	data, err := yaml.Marshal(&configFile{
		DataDir:      cfg.DataDir,
		DefaultDay:   cfg.DefaultDay,
		DefaultTime:  cfg.DefaultTime,
		LogLevel:     cfg.LogLevel,
		LogFormat:    cfg.LogFormat,
		ServerAddr:   cfg.ServerAddr,
		CacheBackend: cfg.CacheBackend,
		CacheTTL:     cfg.CacheTTL.String(),
		Workers:      cfg.Workers,
		TieBreak:     cfg.TieBreak,
		Datasets:     cfg.Datasets,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
