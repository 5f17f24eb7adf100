// pkg/config/database.go
package config

import (
	"fmt"
	"strconv"
	"time"
)

type VectorBackend string

const (
	VectorBackendMemory   VectorBackend = "memory"
	VectorBackendPostgres VectorBackend = "postgres"
	VectorBackendSQLite   VectorBackend = "sqlite"
)

// VectorConfig selects where knowledge and memory embeddings live and
// what computes them. The hash embedder needs no API access.
type VectorConfig struct {
	Backend       VectorBackend
	Embedder      string
	HashDimension int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// PostgresDSN renders the lib/pq connection string.
func (dc DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dc.Host, dc.Port, dc.User, dc.Password, dc.Name, dc.SSLMode)
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

func (rc RedisConfig) Address() string {
	return rc.Host + ":" + strconv.Itoa(rc.Port)
}

func loadVectorConfig() VectorConfig {
	return VectorConfig{
		Backend:       VectorBackend(getEnv("VECTOR_BACKEND", string(VectorBackendMemory))),
		Embedder:      getEnv("EMBEDDING_PROVIDER", "openai"),
		HashDimension: getEnvInt("EMBEDDING_HASH_DIM", 256),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", "postgres"),
		Name:            getEnv("DB_NAME", "travelbot"),
		SSLMode:         getEnv("DB_SSL_MODE", "disable"),
		SQLitePath:      getEnv("SQLITE_PATH", "./data/travelbot.db"),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled:  getEnvBool("REDIS_ENABLED", false),
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnvInt("REDIS_PORT", 6379),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}
}
