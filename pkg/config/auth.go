package config

import "time"

// AuthConfig configures optional bearer-token authentication of the API.
// An empty secret disables it.
type AuthConfig struct {
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		Issuer:    getEnv("AUTH_JWT_ISSUER", "travelbot"),
		TokenTTL:  getEnvDuration("AUTH_TOKEN_TTL", 24*time.Hour),
	}
}
