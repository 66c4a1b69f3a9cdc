package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	DatabaseURL          string
	JWTSecret            string
	JWTIssuer            string
	JWTTTLMinutes        int
	WalletServiceURL     string
	WalletTimeoutSeconds int
	KafkaBrokers         []string
	KafkaUserEventsTopic string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:            getEnv("JWT_ISSUER", "authentication-service"),
		JWTTTLMinutes:        getEnvInt("JWT_TTL_MINUTES", 600),
		WalletServiceURL:     getEnv("WALLET_SERVICE_URL", "http://localhost:8081"),
		WalletTimeoutSeconds: getEnvInt("WALLET_TIMEOUT_SECONDS", 5),
		KafkaBrokers:         getEnvList("KAFKA_BROKERS", "localhost:9092"),
		KafkaUserEventsTopic: getEnv("KAFKA_TOPIC_USER_EVENTS", "user-events"),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvList(key, def string) []string {
	v := getEnv(key, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
