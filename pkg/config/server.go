package config

type ServerConfig struct {
	Port        int
	Environment string
	LogLevel    string
	BaseURL     string
	CORSOrigins []string
	BodyLimit   int
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:        getEnvInt("SERVER_PORT", 8000),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		CORSOrigins: getEnvStringSlice("CORS_ORIGINS", []string{"*"}),
		BodyLimit:   getEnvInt("SERVER_BODY_LIMIT", 4*1024*1024),
	}
}
