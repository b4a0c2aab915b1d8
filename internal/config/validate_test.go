package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Auth.Clients = []ClientConfig{{ID: "intake-form", APIKeys: []string{"k"}}}
	return cfg
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "missing server addr",
			mutate: func(c *Config) { c.Server.Addr = "" },
			want:   "server.addr",
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Logging.Level = "loud" },
			want:   "logging.level",
		},
		{
			name:   "bad activation level",
			mutate: func(c *Config) { c.Logging.ActivationLevel = "everything" },
			want:   "logging.activation_level",
		},
		{
			name:   "client without id",
			mutate: func(c *Config) { c.Auth.Clients = []ClientConfig{{APIKeys: []string{"k"}}} },
			want:   "auth.clients[0].id",
		},
		{
			name:   "client without keys",
			mutate: func(c *Config) { c.Auth.Clients = []ClientConfig{{ID: "form"}} },
			want:   "api_keys",
		},
		{
			name: "key shared by two clients",
			mutate: func(c *Config) {
				c.Auth.Clients = []ClientConfig{
					{ID: "a", APIKeys: []string{"same"}},
					{ID: "b", APIKeys: []string{"same"}},
				}
			},
			want: "assigned to both",
		},
		{
			name:   "unknown sink",
			mutate: func(c *Config) { c.Activation.Sinks = []SinkConfig{{Type: "kafka"}} },
			want:   "unknown type",
		},
		{
			name:   "file sink without path",
			mutate: func(c *Config) { c.Activation.Sinks = []SinkConfig{{Type: "file_jsonl"}} },
			want:   "missing path",
		},
		{
			name:   "webhook bad url",
			mutate: func(c *Config) { c.Activation.Sinks = []SinkConfig{{Type: "webhook", URL: "::://bad"}} },
			want:   "invalid url",
		},
		{
			name:   "webhook blocked private",
			mutate: func(c *Config) { c.Activation.Sinks = []SinkConfig{{Type: "webhook", URL: "http://127.0.0.1:9000/hook"}} },
			want:   "SSRF",
		},
		{
			name: "telemetry without endpoint",
			mutate: func(c *Config) {
				c.Telemetry.Enabled = true
				c.Telemetry.Endpoint = ""
			},
			want: "endpoint",
		},
		{
			name: "telemetry bad protocol",
			mutate: func(c *Config) {
				c.Telemetry.Enabled = true
				c.Telemetry.Endpoint = "collector:4317"
				c.Telemetry.Protocol = "udp"
			},
			want: "telemetry.protocol",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			} else if !contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestValidateOK(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	open := defaultConfig()
	if err := Validate(open); err != nil {
		t.Fatalf("expected config without clients to be valid, got %v", err)
	}

	loopbackOK := validConfig()
	loopbackOK.Activation.Sinks = []SinkConfig{{Type: "webhook", URL: "http://127.0.0.1:18080/hook", AllowPrivateNetworks: true}}
	if err := Validate(loopbackOK); err != nil {
		t.Fatalf("expected loopback allowed when allow_private_networks=true, got %v", err)
	}
}

func contains(s, sub string) bool {
	return s != "" && sub != "" && strings.Contains(s, sub)
}
