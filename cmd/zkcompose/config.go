package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "ZKCOMPOSE"

// config is the CLI configuration. Flags override the config file, which
// overrides the defaults below.
type config struct {
	Log    logConfig    `mapstructure:"log"`
	Engine engineConfig `mapstructure:"engine"`
	Bench  benchConfig  `mapstructure:"bench"`
}

type logConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

type engineConfig struct {
	Workers int    `mapstructure:"workers"`
	Domain  string `mapstructure:"domain"`
}

type benchConfig struct {
	Iterations int    `mapstructure:"iterations"`
	Sizes      []int  `mapstructure:"sizes"`
	Curve      string `mapstructure:"curve"`
	Progress   bool   `mapstructure:"progress"`
}

const exampleConfig = `log:
  # debug, info, warn or error
  level: info
  # console or json
  format: console
  # rotate logs into this file instead of stderr
  file: ""
  max_size_mb: 10
  max_backups: 5

engine:
  # 0 uses every CPU
  workers: 0
  domain: ""

bench:
  iterations: 10
  sizes: [4, 16, 64]
  # bls12-381 or secp256k1
  curve: bls12-381
  progress: true
`

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("engine.workers", 0)
	v.SetDefault("engine.domain", "")
	v.SetDefault("bench.iterations", 10)
	v.SetDefault("bench.sizes", []int{4, 16, 64})
	v.SetDefault("bench.curve", "bls12-381")
	v.SetDefault("bench.progress", true)
}

// loadConfig reads path, if set, on top of the defaults and environment.
func loadConfig(v *viper.Viper, path string) (*config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if ext := filepath.Ext(path); ext != "" {
			v.SetConfigType(ext[1:])
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Bench.Iterations <= 0 {
		return nil, fmt.Errorf("bench.iterations must be positive, got %d", cfg.Bench.Iterations)
	}
	for _, n := range cfg.Bench.Sizes {
		if n <= 0 {
			return nil, fmt.Errorf("bench.sizes entries must be positive, got %d", n)
		}
	}
	return &cfg, nil
}
