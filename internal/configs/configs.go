package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RateLimit              int
	RedisAddr              string
	RedisChannel           string
	UseRedisNotifier       bool
	JWTSecret              string
	LogFile                string
	SweepIntervalSeconds   int
	AtRiskWindowHours      int
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "taskboard.db"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisChannel:           getEnv("REDIS_TASK_CHANNEL", "task_changes"),
		UseRedisNotifier:       getEnvAsBool("REALTIME_REDIS", false),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		LogFile:                getEnv("LOG_FILE", ""),
		SweepIntervalSeconds:   getEnvAsInt("SWEEP_INTERVAL_SECONDS", 300),
		AtRiskWindowHours:      getEnvAsInt("AT_RISK_WINDOW_HOURS", 24),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must not be empty")
	}
	if cfg.SweepIntervalSeconds <= 0 {
		log.Fatal("SWEEP_INTERVAL_SECONDS must be greater than 0")
	}
	if cfg.AtRiskWindowHours <= 0 {
		log.Fatal("AT_RISK_WINDOW_HOURS must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Fatalf("invalid boolean value for %s", key)
		}
		return b
	}
	return defaultVal
}
