package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Market MarketConfig `yaml:"market"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type MarketConfig struct {
	// Source selects the quote provider: sina | eastmoney | auto.
	Source            string   `yaml:"source"`
	TimeoutMs         int      `yaml:"timeout_ms"`
	SinaEndpoint      string   `yaml:"sina_endpoint"`
	EastmoneyEndpoint string   `yaml:"eastmoney_endpoint"`
	Symbols           []string `yaml:"symbols"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Market: MarketConfig{
			Source:    "sina",
			TimeoutMs: 5000,
			Symbols:   []string{"sh000001", "sz000001"},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Server.Port = p
	}
	return nil
}
