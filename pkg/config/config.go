package config

import (
	"os"
	"strconv"
)

type Config struct {
	NotionToken   string
	NotionBaseURL string
	LogLevel      string
	LogEncoding   string
	OTLPEndpoint  string
	DatabaseURL   string

	FakeAPIPort      string
	FakeAPIToken     string
	FakeAPIRateLimit float64
	FakeAPIBurst     int
}

func Load() *Config {
	return &Config{
		NotionToken:      getEnv("NOTION_TOKEN", ""),
		NotionBaseURL:    getEnv("NOTION_BASE_URL", "https://api.notion.com/v1"),
		LogLevel:         getEnv("LOG_LEVEL", "warn"),
		LogEncoding:      getEnv("LOG_ENCODING", "console"),
		OTLPEndpoint:     getEnv("OTLP_ENDPOINT", ""),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		FakeAPIPort:      getEnv("FAKE_API_PORT", "8080"),
		FakeAPIToken:     getEnv("FAKE_API_TOKEN", "secret_fake"),
		FakeAPIRateLimit: getEnvFloat("FAKE_API_RATE_LIMIT", 3),
		FakeAPIBurst:     getEnvInt("FAKE_API_BURST", 10),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
