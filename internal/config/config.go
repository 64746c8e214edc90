// Package config resolves server settings from defaults, an optional YAML
// file and SWITCHBOARD_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const localFile = "switchboard.yaml"

type Config struct {
	ListenAddr   string `yaml:"listen_addr"`
	MetricsAddr  string `yaml:"metrics_addr"`
	WriteTimeout int    `yaml:"write_timeout"` // seconds, bounds one delivery attempt
}

func Default() Config {
	return Config{
		ListenAddr:   ":12345",
		MetricsAddr:  ":9090",
		WriteTimeout: 30,
	}
}

// Load reads configuration. Search order: path when given, otherwise
// ./switchboard.yaml when present, otherwise defaults. Environment variables
// override whatever the file said.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if data, err := os.ReadFile(localFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", localFile, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SWITCHBOARD_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("SWITCHBOARD_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("SWITCHBOARD_WRITE_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.WriteTimeout = secs
		}
	}
}
