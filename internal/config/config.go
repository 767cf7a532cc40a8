package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Form backend
	ScriptURL    string
	FetchTimeout time.Duration
	PollInterval time.Duration

	// Admin session
	AdminPassword      string
	AdminJWTSecret     string
	AdminSessionTTL    time.Duration
	LoginRatePerSecond float64
	LoginBurst         int
	CORSAllowedOrigins []string

	// Redis (snapshot cache + session revocation)
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	SnapshotTTL   time.Duration

	// Export archival
	ExportBucket        string
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	WhatsAppBaseURL string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ScriptURL:    strings.TrimSpace(getEnv("SCRIPT_URL", "")),
		FetchTimeout: getEnvAsDuration("FETCH_TIMEOUT", 10*time.Second),
		PollInterval: getEnvAsDuration("POLL_INTERVAL", 30*time.Second),

		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
		AdminSessionTTL:    getEnvAsDuration("ADMIN_SESSION_TTL", 12*time.Hour),
		LoginRatePerSecond: getEnvAsFloat("LOGIN_RATE_PER_SEC", 0.2),
		LoginBurst:         getEnvAsInt("LOGIN_BURST", 5),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		SnapshotTTL:   getEnvAsDuration("SNAPSHOT_TTL", time.Hour),

		ExportBucket:        getEnv("EXPORT_BUCKET", ""),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		WhatsAppBaseURL: getEnv("WHATSAPP_BASE_URL", "https://wa.me/"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
