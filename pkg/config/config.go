package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server       ServerConfig
	OpenAI       OpenAIConfig
	Weather      WeatherConfig
	Speech       SpeechConfig
	Conversation ConversationConfig
	Memory       MemoryConfig
	Vector       VectorConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Storage      StorageConfig
	Auth         AuthConfig
	Environment  Environment
}

type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

func (c Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}

func (c Config) IsProd() bool {
	return c.Environment == EnvironmentProduction
}

func loadEnvironment() Environment {
	env := getEnv("ENVIRONMENT", "development")
	switch strings.ToLower(env) {
	case "production":
		return EnvironmentProduction
	case "staging":
		return EnvironmentStaging
	default:
		return EnvironmentDevelopment
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		Server:       loadServerConfig(),
		OpenAI:       loadOpenAIConfig(),
		Weather:      loadWeatherConfig(),
		Speech:       loadSpeechConfig(),
		Conversation: loadConversationConfig(),
		Memory:       loadMemoryConfig(),
		Vector:       loadVectorConfig(),
		Database:     loadDatabaseConfig(),
		Redis:        loadRedisConfig(),
		Storage:      loadStorageConfig(),
		Auth:         loadAuthConfig(),
		Environment:  loadEnvironment(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.Conversation.MaxTurns < 2 {
		return fmt.Errorf("CONVERSATION_MAX_TURNS must be at least 2")
	}
	if c.Conversation.KeepRecent < 1 || c.Conversation.KeepRecent >= c.Conversation.MaxTurns {
		return fmt.Errorf("CONVERSATION_KEEP_RECENT must be between 1 and CONVERSATION_MAX_TURNS-1")
	}
	switch c.Vector.Backend {
	case VectorBackendMemory, VectorBackendPostgres, VectorBackendSQLite:
	default:
		return fmt.Errorf("unknown VECTOR_BACKEND %q (use memory, postgres or sqlite)", c.Vector.Backend)
	}
	switch c.Vector.Embedder {
	case "openai", "hash":
	default:
		return fmt.Errorf("unknown EMBEDDING_PROVIDER %q (use openai or hash)", c.Vector.Embedder)
	}
	switch c.Conversation.StoreBackend {
	case "memory":
	case "redis":
		if !c.Redis.Enabled {
			return fmt.Errorf("CONVERSATION_STORE=redis requires REDIS_ENABLED=true")
		}
	default:
		return fmt.Errorf("unknown CONVERSATION_STORE %q (use memory or redis)", c.Conversation.StoreBackend)
	}
	switch c.Storage.Mode {
	case "local", "s3":
	default:
		return fmt.Errorf("unknown STORAGE_MODE %q (use local or s3)", c.Storage.Mode)
	}
	if c.Auth.Enabled() && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("AUTH_JWT_SECRET must be at least 32 characters")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
