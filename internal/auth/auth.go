package auth

import (
	"fmt"
	"strings"

	"github.com/homebridge-ai/clarity/internal/config"
)

// Client is the runtime representation of a configured API caller.
type Client struct {
	ID string
}

// Auth holds mappings from API keys to clients. With no clients configured
// the API runs open and Enabled reports false.
type Auth struct {
	apiKeyToClient map[string]Client
}

// NewFromConfig builds an Auth instance from the loaded config.
func NewFromConfig(cfg *config.Config) (*Auth, error) {
	m := make(map[string]Client)
	if cfg == nil {
		return &Auth{apiKeyToClient: m}, nil
	}

	for _, c := range cfg.Auth.Clients {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("client with empty id in config")
		}
		client := Client{ID: c.ID}
		for _, key := range c.APIKeys {
			if key == "" {
				continue
			}
			if existing, exists := m[key]; exists && existing.ID != c.ID {
				return nil, fmt.Errorf("an api key is assigned to both %q and %q", existing.ID, c.ID)
			}
			m[key] = client
		}
	}

	return &Auth{
		apiKeyToClient: m,
	}, nil
}

// Enabled reports whether requests must carry a known API key.
func (a *Auth) Enabled() bool {
	return a != nil && len(a.apiKeyToClient) > 0
}

// Lookup returns the client for a given API key, if any.
func (a *Auth) Lookup(apiKey string) (Client, bool) {
	if a == nil {
		return Client{}, false
	}
	c, ok := a.apiKeyToClient[apiKey]
	return c, ok
}

// ParseBearerToken extracts the token from an Authorization: Bearer header.
func ParseBearerToken(h string) (string, bool) {
	if h == "" {
		return "", false
	}
	parts := strings.Fields(h)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
