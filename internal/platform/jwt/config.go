package jwtmw

import (
	"os"
	"time"
)

// Environment variable keys for token configuration.
const (
	EnvKeyJWTSecret   = "JWT_SECRET"
	EnvKeyJWTIssuer   = "JWT_ISSUER"
	EnvKeyJWTAudience = "JWT_AUDIENCE"
	EnvKeyJWTTTL      = "JWT_TTL"
)

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = 2 * time.Hour

// Config holds the settings shared by token issuance and validation.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// LoadConfig reads the token settings from the environment.
// JWT_TTL uses time.ParseDuration syntax ("90m", "2h") and falls back to DefaultTTL.
func LoadConfig() Config {
	ttl := DefaultTTL
	if v := os.Getenv(EnvKeyJWTTTL); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		}
	}
	return Config{
		Secret:   os.Getenv(EnvKeyJWTSecret),
		Issuer:   os.Getenv(EnvKeyJWTIssuer),
		Audience: os.Getenv(EnvKeyJWTAudience),
		TTL:      ttl,
	}
}

// Settings returns the per-call issuance settings derived from c.
func (c Config) Settings() Settings {
	return Settings{
		Issuer:   c.Issuer,
		Audience: c.Audience,
		Secret:   c.Secret,
		TTL:      c.TTL,
	}
}
