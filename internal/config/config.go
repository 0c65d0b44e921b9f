package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	CORS   CORSConfig
	S3     S3Config
	Email  EmailConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT verification settings. Tokens are issued by the
// external identity service; this backend only verifies them.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// S3Config holds AWS S3 settings for report exports.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the OPSUITE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("OPSUITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "opsuite")
	v.SetDefault("db.password", "opsuite_secret")
	v.SetDefault("db.name", "opsuite_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "opsuite")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "opsuite-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@opsuite.example")
	v.SetDefault("email.from_name", "OpSuite")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "OPSUITE_SERVER_PORT",
		"server.read_timeout":  "OPSUITE_SERVER_READ_TIMEOUT",
		"server.write_timeout": "OPSUITE_SERVER_WRITE_TIMEOUT",
		"server.environment":   "OPSUITE_SERVER_ENVIRONMENT",
		"db.host":              "OPSUITE_DB_HOST",
		"db.port":              "OPSUITE_DB_PORT",
		"db.user":              "OPSUITE_DB_USER",
		"db.password":          "OPSUITE_DB_PASSWORD",
		"db.name":              "OPSUITE_DB_NAME",
		"db.sslmode":           "OPSUITE_DB_SSLMODE",
		"db.max_open":          "OPSUITE_DB_MAX_OPEN",
		"db.max_idle":          "OPSUITE_DB_MAX_IDLE",
		"jwt.secret":           "OPSUITE_JWT_SECRET",
		"jwt.issuer":           "OPSUITE_JWT_ISSUER",
		"cors.allowed_origins": "OPSUITE_CORS_ALLOWED_ORIGINS",
		"s3.region":            "OPSUITE_S3_REGION",
		"s3.bucket":            "OPSUITE_S3_BUCKET",
		"s3.endpoint":          "OPSUITE_S3_ENDPOINT",
		"s3.access_key":        "OPSUITE_S3_ACCESS_KEY",
		"s3.secret_key":        "OPSUITE_S3_SECRET_KEY",
		"s3.presign_expiry":    "OPSUITE_S3_PRESIGN_EXPIRY",
		"email.provider":       "OPSUITE_EMAIL_PROVIDER",
		"email.region":         "OPSUITE_EMAIL_REGION",
		"email.from_address":   "OPSUITE_EMAIL_FROM_ADDRESS",
		"email.from_name":      "OPSUITE_EMAIL_FROM_NAME",
		"log.level":            "OPSUITE_LOG_LEVEL",
		"log.format":           "OPSUITE_LOG_FORMAT",
	}
	for key, env := range envBindings {
		if val, ok := os.LookupEnv(env); ok {
			v.Set(key, val)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// viper delivers comma-separated origins as a single string
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
	}

	if cfg.Server.Port != "" && !strings.HasPrefix(cfg.Server.Port, ":") {
		cfg.Server.Port = ":" + cfg.Server.Port
	}

	return &cfg, nil
}
