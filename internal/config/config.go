package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds Clarity service configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server" toml:"server"`
	Logging      LoggingConfig      `yaml:"logging" toml:"logging"`
	Auth         AuthConfig         `yaml:"auth" toml:"auth"`
	Activation   ActivationConfig   `yaml:"activation" toml:"activation"`
	Telemetry    TelemetryConfig    `yaml:"telemetry" toml:"telemetry"`
	Onboarding   OnboardingConfig   `yaml:"onboarding" toml:"onboarding"`
	RequestStore RequestStoreConfig `yaml:"request_store" toml:"request_store"`
}

type ServerConfig struct {
	Addr                string   `yaml:"addr" toml:"addr"` // HTTP listen address, e.g. ":8080"
	MaxRequestBodyBytes int64    `yaml:"max_request_body_bytes" toml:"max_request_body_bytes"`
	MaxInFlightRequests int64    `yaml:"max_in_flight_requests" toml:"max_in_flight_requests"`
	ReadHeaderTimeout   Duration `yaml:"read_header_timeout" toml:"read_header_timeout"`
	ReadTimeout         Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout        Duration `yaml:"write_timeout" toml:"write_timeout"`
	IdleTimeout         Duration `yaml:"idle_timeout" toml:"idle_timeout"`
	ShutdownTimeout     Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level           string `yaml:"level" toml:"level"`                       // debug | info | warn | error
	Format          string `yaml:"format" toml:"format"`                     // json | console
	ActivationLevel string `yaml:"activation_level" toml:"activation_level"` // metadata | redacted | full
}

type AuthConfig struct {
	Clients []ClientConfig `yaml:"clients" toml:"clients"`
}

// ClientConfig binds API keys to a calling client (a form frontend, a
// partner integration, ...). No clients means the API is open.
type ClientConfig struct {
	ID      string   `yaml:"id" toml:"id"`
	APIKeys []string `yaml:"api_keys" toml:"api_keys"`
}

type ActivationConfig struct {
	QueueSize       int          `yaml:"queue_size" toml:"queue_size"`
	Workers         int          `yaml:"workers" toml:"workers"`
	ShutdownTimeout Duration     `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	Sinks           []SinkConfig `yaml:"sinks" toml:"sinks"`
}

type SinkConfig struct {
	Type                 string            `yaml:"type" toml:"type"` // stdout | file_jsonl | webhook
	Path                 string            `yaml:"path" toml:"path"`
	URL                  string            `yaml:"url" toml:"url"`
	Headers              map[string]string `yaml:"headers" toml:"headers"`
	Timeout              Duration          `yaml:"timeout" toml:"timeout"`
	AllowPrivateNetworks bool              `yaml:"allow_private_networks" toml:"allow_private_networks"`
}

type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled"`
	Endpoint string `yaml:"endpoint" toml:"endpoint"`
	Protocol string `yaml:"protocol" toml:"protocol"` // grpc | http
	Service  string `yaml:"service" toml:"service"`
	Version  string `yaml:"version" toml:"version"`
}

type OnboardingConfig struct {
	// Strict rejects unknown question ids and answers outside the option lists.
	Strict bool `yaml:"strict" toml:"strict"`
}

type RequestStoreConfig struct {
	TTL Duration `yaml:"ttl" toml:"ttl"`
}

// Load reads configuration from a YAML file, or TOML when the path ends in
// ".toml". If the file doesn't exist, it returns a default config and no
// error. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.MaxRequestBodyBytes == 0 {
		cfg.Server.MaxRequestBodyBytes = 64 << 10
	}
	if cfg.Server.MaxInFlightRequests == 0 {
		cfg.Server.MaxInFlightRequests = 256
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = Duration(5 * time.Second)
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = Duration(15 * time.Second)
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = Duration(15 * time.Second)
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = Duration(60 * time.Second)
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = Duration(10 * time.Second)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.ActivationLevel == "" {
		cfg.Logging.ActivationLevel = "metadata"
	}

	if cfg.Activation.QueueSize == 0 {
		cfg.Activation.QueueSize = 1000
	}
	if cfg.Activation.Workers == 0 {
		cfg.Activation.Workers = 2
	}
	if cfg.Activation.ShutdownTimeout == 0 {
		cfg.Activation.ShutdownTimeout = Duration(2 * time.Second)
	}
	for i := range cfg.Activation.Sinks {
		if cfg.Activation.Sinks[i].Timeout == 0 {
			cfg.Activation.Sinks[i].Timeout = Duration(2 * time.Second)
		}
	}

	if cfg.Telemetry.Protocol == "" {
		cfg.Telemetry.Protocol = "grpc"
	}
	if cfg.Telemetry.Service == "" {
		cfg.Telemetry.Service = "clarity"
	}

	if cfg.RequestStore.TTL == 0 {
		cfg.RequestStore.TTL = Duration(10 * time.Minute)
	}
}

// applyEnvOverrides lets deployments change the most common knobs without
// editing the file.
func applyEnvOverrides(cfg *Config) {
	if addr := os.Getenv("CLARITY_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if level := os.Getenv("CLARITY_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if level := os.Getenv("CLARITY_ACTIVATION_LEVEL"); level != "" {
		cfg.Logging.ActivationLevel = level
	}
}
