package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string

	// Ingestion / refresh configuration
	IngestionBin      string
	IngestionScript   string
	IngestionMaxPages int
	RefreshTimeout    time.Duration
	IngestedJSONPath  string
	ForceSeed         bool

	// Project copilot API
	MedoAPIURL  string
	MedoAPIKey  string
	MedoTimeout time.Duration

	// Rate limiting
	RateLimitPerMinute int

	// Monitoring
	EnableMetrics bool
	MetricsPort   string
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),

		// Ingestion / refresh
		IngestionBin:      getEnv("INGESTION_BIN", "python"),
		IngestionScript:   getEnv("INGESTION_SCRIPT", "scripts/run_ingestion.py"),
		IngestionMaxPages: getEnvAsInt("INGESTION_MAX_PAGES", 0),
		RefreshTimeout:    getEnvAsDuration("REFRESH_TIMEOUT", "15m"),
		IngestedJSONPath:  getEnv("INGESTED_JSON_PATH", "data/ingested_hackathons.json"),
		ForceSeed:         getEnvAsBool("FORCE_SEED", false),

		// Copilot API
		MedoAPIURL:  getEnv("MEDO_API_URL", ""),
		MedoAPIKey:  getEnv("MEDO_API_KEY", ""),
		MedoTimeout: getEnvAsDuration("MEDO_API_TIMEOUT", "10s"),

		// Rate limiting
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
