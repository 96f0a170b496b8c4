// Package config loads service configuration from an optional TOML file with
// environment-variable overrides.
package config

import (
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/fx"
)

const defaultConfigPath = "billfold.toml"

type Config struct {
	Environment string         `toml:"environment"`
	HTTP        HTTPConfig     `toml:"http"`
	Database    DatabaseConfig `toml:"database"`
	Log         LogConfig      `toml:"log"`
	Tracing     TracingConfig  `toml:"tracing"`
}

type HTTPConfig struct {
	Addr string `toml:"addr"`
}

type DatabaseConfig struct {
	URL          string `toml:"url"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type TracingConfig struct {
	Enabled          bool    `toml:"enabled"`
	ExporterEndpoint string  `toml:"exporter_endpoint"`
	ExporterProtocol string  `toml:"exporter_protocol"`
	SamplingRatio    float64 `toml:"sampling_ratio"`
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

// Load reads the TOML file named by BILLFOLD_CONFIG (default billfold.toml,
// absence tolerated), then applies environment overrides.
func Load() (Config, error) {
	cfg := Config{
		Environment: "development",
		HTTP:        HTTPConfig{Addr: ":8080"},
		Database:    DatabaseConfig{MaxOpenConns: 10, MaxIdleConns: 5},
		Log:         LogConfig{Level: "info"},
	}

	path := os.Getenv("BILLFOLD_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}
	if raw, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, err
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	if v := os.Getenv("BILLFOLD_ENVIRONMENT"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("BILLFOLD_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("BILLFOLD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("BILLFOLD_DB_MAX_OPEN_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Database.MaxOpenConns = n
		}
	}
	if v := os.Getenv("BILLFOLD_TRACING_ENABLED"); v != "" {
		cfg.Tracing.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.Tracing.ExporterEndpoint = v
	}
	return cfg, nil
}
