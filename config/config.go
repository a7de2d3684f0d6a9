package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Settings содержит все настройки сервера, читаемые из окружения.
type Settings struct {
	ListenAddr string

	DBDriver  string // "sqlite3" или "mysql"
	DBDSN     string
	AuthDBDSN string

	JWTSecret string

	BettyImageURL     string
	BettyPublicToken  string
	BettyPrivateToken string
	BettyTimeout      time.Duration
	BettyCacheTTL     time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel  string
	LogFormat string

	MaxUploadMB int64
}

// configPaths - файлы, которые пробуем загрузить по порядку.
var configPaths = []string{
	"config.env",
	"./config.env",
	".env",
}

// Load загружает config.env/.env (если есть) и собирает Settings из переменных окружения.
func Load() *Settings {
	loaded := false
	for _, path := range configPaths {
		if err := godotenv.Load(path); err == nil {
			loaded = true
			break
		}
	}
	if !loaded {
		log.Debug("config.env and .env files not found, using environment variables only")
	}
	return FromEnv()
}

// FromEnv собирает Settings только из переменных окружения, без чтения файлов.
func FromEnv() *Settings {
	return &Settings{
		ListenAddr:        getEnv("LISTEN_ADDR", ":8080"),
		DBDriver:          getEnv("DB_DRIVER", "sqlite3"),
		DBDSN:             getEnv("DB_DSN", "BettyServer.db"),
		AuthDBDSN:         getEnv("AUTH_DB_DSN", "AuthServer.db"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		BettyImageURL:     strings.TrimSuffix(getEnv("BETTY_IMAGE_URL", "http://localhost:8081/images"), "/"),
		BettyPublicToken:  getEnv("BETTY_PUBLIC_TOKEN", ""),
		BettyPrivateToken: getEnv("BETTY_PRIVATE_TOKEN", ""),
		BettyTimeout:      getDuration("BETTY_TIMEOUT", 10*time.Second),
		BettyCacheTTL:     getDuration("BETTY_CACHE_TTL", 5*time.Minute),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getInt("REDIS_DB", 0),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		MaxUploadMB:       int64(getInt("MAX_UPLOAD_MB", 10)),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Warnf("config: %s=%q is not an integer, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Warnf("config: %s=%q is not a duration, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return value
}
