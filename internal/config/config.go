package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	AppPort  string
	AppEnv   string
	Currency string

	CatalogURL     string
	CatalogTimeout time.Duration

	StorageBackend string
	StoragePath    string
	RedisURL       string
	RedisTTL       time.Duration

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret string

	SessionIdleTimeout time.Duration
	CORSOrigins        string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:  getEnv("APP_PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "development"),
		Currency: getEnv("CURRENCY", getEnv("NEXT_PUBLIC_CURRENCY", "$")),

		CatalogURL:     os.Getenv("CATALOG_URL"),
		CatalogTimeout: getDuration("CATALOG_TIMEOUT", 5*time.Second),

		StorageBackend: getEnv("STORAGE_BACKEND", StorageFile),
		StoragePath:    getEnv("STORAGE_PATH", "quickcart_storage.json"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisTTL:       getDuration("REDIS_TTL", 7*24*time.Hour),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		SessionIdleTimeout: getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		CORSOrigins:        getEnv("CORS_ORIGINS", "http://localhost:3000"),
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageMemory:
	case StorageFile:
		if c.StoragePath == "" {
			return errors.New("STORAGE_PATH is required for file storage")
		}
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for redis storage")
		}
	case StoragePostgres:
		if c.DBHost == "" || c.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getDuration accepts Go durations ("90s") or plain seconds ("90").
func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}
