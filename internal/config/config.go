package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          string
	DBUrl         string
	SQLitePath    string
	JWTSecret     string
	TokenLifetime time.Duration
	CacheTTL      time.Duration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	AWSBucket     string
	AWSRegion     string
}

func LoadConfig() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBUrl:         os.Getenv("DATABASE_URL"),
		SQLitePath:    getEnv("SQLITE_PATH", "yatube.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenLifetime: getEnvDuration("TOKEN_LIFETIME_HOURS", 24) * time.Hour,
		CacheTTL:      getEnvDuration("CACHE_TTL_SECONDS", 20) * time.Second,
		RedisURL:      os.Getenv("REDIS_URL"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		AWSBucket:     os.Getenv("AWS_BUCKET_NAME"),
		AWSRegion:     os.Getenv("AWS_REGION"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback int64) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(fallback)
}
