package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	Port        string
	LogLevel    string
	LogFormat   string
	DatabaseURL string
	RedisURL    string

	// Generative-language provider
	GenAIKey        string
	GenAITextModel  string
	GenAIImageModel string

	// Speech synthesis
	SpeechWSEndpoint   string
	SpeechToken        string
	SpeechFallbackURL  string
	SpeechDefaultVoice string

	// Dictionary / translation providers
	DictBaseURL      string
	TranslateBaseURL string
	TranslateAltURL  string
	TranslateTarget  string

	ProviderTimeout    time.Duration
	LookupCacheTTL     time.Duration
	AudioCacheTTL      time.Duration
	AggregationEnabled bool
}

func Load() (*Config, error) {
	// Best effort: production injects env directly, .env is for development.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		GenAIKey:           getEnv("GENAI_API_KEY", ""),
		GenAITextModel:     getEnv("GENAI_TEXT_MODEL", "gemini-2.0-flash"),
		GenAIImageModel:    getEnv("GENAI_IMAGE_MODEL", "imagen-3.0-generate-002"),
		SpeechWSEndpoint:   getEnv("SPEECH_WS_ENDPOINT", ""),
		SpeechToken:        getEnv("SPEECH_TOKEN", ""),
		SpeechFallbackURL:  getEnv("SPEECH_FALLBACK_URL", ""),
		SpeechDefaultVoice: getEnv("SPEECH_DEFAULT_VOICE", "en-US-AnaNeural"),
		DictBaseURL:        getEnv("DICT_BASE_URL", "https://api.dictionaryapi.dev/api/v2"),
		TranslateBaseURL:   getEnv("TRANSLATE_BASE_URL", ""),
		TranslateAltURL:    getEnv("TRANSLATE_ALT_URL", ""),
		TranslateTarget:    getEnv("TRANSLATE_TARGET", "zh-CN"),
	}

	var err error
	if cfg.ProviderTimeout, err = getDuration("PROVIDER_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.LookupCacheTTL, err = getDuration("LOOKUP_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AudioCacheTTL, err = getDuration("AUDIO_CACHE_TTL", 6*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AggregationEnabled, err = getBool("AGGREGATION_ENABLED", true); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	if cfg.GenAIKey == "" {
		return nil, fmt.Errorf("GENAI_API_KEY is required")
	}
	if cfg.SpeechWSEndpoint == "" {
		return nil, fmt.Errorf("SPEECH_WS_ENDPOINT is required")
	}

	if cfg.ProviderTimeout < time.Second || cfg.ProviderTimeout > time.Minute {
		return nil, fmt.Errorf("PROVIDER_TIMEOUT must be between 1s and 1m, got %s", cfg.ProviderTimeout)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}
