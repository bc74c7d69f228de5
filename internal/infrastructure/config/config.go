// Package config loads the process configuration: compiled defaults,
// then an optional YAML file, then GQAO_-prefixed environment
// variables, each layer overriding the previous one.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/gaia-qao/compliance-backend/internal/domain/compliance"
	compliancesvc "github.com/gaia-qao/compliance-backend/internal/service/compliance"
)

const (
	envPrefix         = "GQAO_"
	defaultConfigFile = "configs/config.yaml"
)

type Config struct {
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	LogLevel    string `koanf:"log_level"`

	Server     ServerConfig                 `koanf:"server"`
	Redis      RedisConfig                  `koanf:"redis"`
	Monitor    MonitorConfig                `koanf:"monitor"`
	Compliance compliancesvc.DetectorConfig `koanf:"compliance"`
}

type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// RedisConfig selects the event log backend. With Enabled false the
// service keeps events in memory.
type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// MonitorConfig carries the default check interval and the initial
// alerting thresholds. Thresholds can be replaced at runtime over the
// API; these are only the starting values.
type MonitorConfig struct {
	Interval   time.Duration         `koanf:"interval"`
	Thresholds compliance.Thresholds `koanf:"thresholds"`
}

func defaults() *Config {
	return &Config{
		Version:     "dev",
		Environment: "development",
		LogLevel:    "info",
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Monitor: MonitorConfig{
			Interval:   time.Minute,
			Thresholds: compliance.DefaultThresholds(),
		},
		Compliance: compliancesvc.DefaultDetectorConfig(),
	}
}

// Load builds the configuration from defaults, the given YAML file
// (optional; pass "" for the default path), and GQAO_ environment
// variables.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigFile
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// The config file is optional.
	_ = k.Load(file.Provider(path), yaml.Parser())

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, envPrefix)), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	if err := validate.Struct(cfg.Monitor.Thresholds); err != nil {
		return nil, fmt.Errorf("validating monitor thresholds: %w", err)
	}

	return &cfg, nil
}
