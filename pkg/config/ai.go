package config

import "time"

type OpenAIConfig struct {
	APIKey          string
	BaseURL         string
	ChatModel       string
	EmbeddingAPIKey string
	EmbeddingModel  string
	TTSModel        string
	TTSVoice        string
	RequestTimeout  time.Duration
	MaxTokens       int
	Temperature     float64
}

type WeatherConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type SpeechConfig struct {
	Enabled   bool
	MaxLength int
}

func loadOpenAIConfig() OpenAIConfig {
	apiKey := getEnv("OPENAI_API_KEY", "")
	return OpenAIConfig{
		APIKey:          apiKey,
		BaseURL:         getEnv("OPENAI_BASE_URL", ""),
		ChatModel:       getEnv("OPENAI_MODEL_NAME", "gpt-4o-mini"),
		EmbeddingAPIKey: getEnv("OPENAI_API_KEY_EMBEDDING", apiKey),
		EmbeddingModel:  getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		TTSModel:        getEnv("OPENAI_TTS_MODEL", "tts-1"),
		TTSVoice:        getEnv("OPENAI_TTS_VOICE", "alloy"),
		RequestTimeout:  getEnvDuration("OPENAI_TIMEOUT", 60*time.Second),
		MaxTokens:       getEnvInt("OPENAI_MAX_TOKENS", 2000),
		Temperature:     getEnvFloat("OPENAI_TEMPERATURE", 0.7),
	}
}

func loadWeatherConfig() WeatherConfig {
	return WeatherConfig{
		APIKey:  getEnv("WEATHER_API_KEY", ""),
		BaseURL: getEnv("WEATHER_BASE_URL", "http://api.openweathermap.org/data/2.5"),
		Timeout: getEnvDuration("WEATHER_TIMEOUT", 10*time.Second),
	}
}

func loadSpeechConfig() SpeechConfig {
	return SpeechConfig{
		Enabled:   getEnvBool("TTS_ENABLED", true),
		MaxLength: getEnvInt("TTS_MAX_LENGTH", 200),
	}
}
