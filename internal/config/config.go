package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"inventory_backend/pkg/utils"
)

// DBConfig holds database configuration
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	SchemaPath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the lib/pq connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Mode string // gin mode: debug, release, test
}

// JWTConfig holds token verification settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// StorageConfig describes the local blob directory used for uploaded logos.
type StorageConfig struct {
	Dir          string
	URLPrefix    string
	MaxLogoBytes int64
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Config holds all configuration
type Config struct {
	Server             ServerConfig
	DB                 DBConfig
	JWT                JWTConfig
	Storage            StorageConfig
	Log                LogConfig
	CORSAllowedOrigins []string
	MetricsPrefix      string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: utils.Getenv("PORT", "8080"),
			Mode: utils.Getenv("GIN_MODE", "debug"),
		},
		DB: DBConfig{
			Host:            utils.Getenv("DB_HOST", "localhost"),
			Port:            utils.Getenv("DB_PORT", "5432"),
			User:            utils.Getenv("DB_USER", "inventory_user"),
			Password:        utils.Getenv("DB_PASSWORD", "inventory_password"),
			Name:            utils.Getenv("DB_NAME", "inventory_db"),
			SSLMode:         utils.Getenv("DB_SSLMODE", "disable"),
			SchemaPath:      utils.Getenv("DB_SCHEMA_PATH", ""),
			MaxOpenConns:    utils.GetenvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    utils.GetenvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: utils.GetenvDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			Secret: utils.Getenv("JWT_SECRET", ""),
			TTL:    utils.GetenvDuration("JWT_TTL", 72*time.Hour),
		},
		Storage: StorageConfig{
			Dir:          utils.Getenv("STORAGE_DIR", "storage/public"),
			URLPrefix:    utils.Getenv("STORAGE_URL_PREFIX", "/storage"),
			MaxLogoBytes: utils.GetenvInt64("MAX_LOGO_BYTES", 2<<20),
		},
		Log: LogConfig{
			Level:  utils.Getenv("LOG_LEVEL", "info"),
			Format: utils.Getenv("LOG_FORMAT", "console"),
		},
		CORSAllowedOrigins: splitList(utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		MetricsPrefix:      utils.Getenv("METRICS_PREFIX", "inventory"),
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
