package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Model    ModelConfig
	Cors     CorsConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type ModelConfig struct {
	Path              string
	ExplainMember     string
	IncludeConfidence bool
}

type CorsConfig struct {
	AllowOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	AuditEnabled bool
	// AuditDriver is "postgres" or "sqlite".
	AuditDriver string
	SQLitePath  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	CacheEnabled bool
	CacheTTL     time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	includeConfidence, err := getEnvBool("RESPONSE_INCLUDE_CONFIDENCE", true)
	if err != nil {
		return nil, err
	}
	auditEnabled, err := getEnvBool("AUDIT_ENABLED", false)
	if err != nil {
		return nil, err
	}
	cacheEnabled, err := getEnvBool("CACHE_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Liver Disease Prediction API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
		},
		Model: ModelConfig{
			Path:              getEnv("MODEL_PATH", "ensemble_model.yaml"),
			ExplainMember:     getEnv("EXPLAIN_MEMBER", "xgb"),
			IncludeConfidence: includeConfidence,
		},
		Cors: CorsConfig{
			AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", ""),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Name:         getEnv("DB_NAME", "liver_risk"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			AuditEnabled: auditEnabled,
			AuditDriver:  strings.ToLower(getEnv("AUDIT_DRIVER", "postgres")),
			SQLitePath:   getEnv("AUDIT_SQLITE_PATH", "audit.db"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", ""),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			CacheEnabled:  cacheEnabled,
			CacheTTL:      cacheTTL,
		},
	}

	if cfg.Model.Path == "" {
		return nil, errors.New("missing model path")
	}

	if cfg.Database.AuditEnabled {
		switch cfg.Database.AuditDriver {
		case "postgres":
			if cfg.Database.Host == "" {
				return nil, errors.New("audit enabled but DB_HOST is empty")
			}
		case "sqlite":
			if cfg.Database.SQLitePath == "" {
				return nil, errors.New("audit enabled but AUDIT_SQLITE_PATH is empty")
			}
		default:
			return nil, fmt.Errorf("unknown AUDIT_DRIVER %q", cfg.Database.AuditDriver)
		}
	}

	if cfg.Redis.CacheEnabled && cfg.Redis.RedisHost == "" {
		return nil, errors.New("cache enabled but REDIS_HOST is empty")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
