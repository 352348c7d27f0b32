// Package config loads all runtime configuration from the environment.
package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT, default=8080"`
	Env      string `env:"ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	DatabaseURL string `env:"DATABASE_URL, required"`
	JWTSecret   string `env:"JWT_SECRET, required"`

	Auth    AuthConfig
	Minio   MinioConfig
	Redis   RedisConfig
	Uploads UploadConfig
	Sweeper SweeperConfig
	Email   EmailConfig
}

// AuthConfig points at the hosted identity provider's admin API.
type AuthConfig struct {
	BaseURL    string `env:"AUTH_BASE_URL, required"`
	ServiceKey string `env:"AUTH_SERVICE_KEY, required"`
}

type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT, default=localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY, default=minioadmin"`
	SecretKey string `env:"MINIO_SECRET_KEY, default=minioadmin"`
	UseSSL    bool   `env:"MINIO_USE_SSL, default=false"`
	Bucket    string `env:"MINIO_BUCKET, default=clientdesk-files"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type UploadConfig struct {
	// Ceilings are in bytes.
	AdminMaxBytes  int64 `env:"UPLOAD_ADMIN_MAX_BYTES, default=104857600"`
	ClientMaxBytes int64 `env:"UPLOAD_CLIENT_MAX_BYTES, default=52428800"`
}

type SweeperConfig struct {
	Enabled  bool  `env:"SWEEPER_ENABLED, default=true"`
	Interval int   `env:"SWEEPER_INTERVAL_MINUTES, default=60"`
	PageSize int32 `env:"SWEEPER_PAGE_SIZE, default=500"`
}

// EmailConfig points at the transactional email provider's HTTP API.
type EmailConfig struct {
	BaseURL string `env:"EMAIL_BASE_URL"`
	APIKey  string `env:"EMAIL_API_KEY"`
	From    string `env:"EMAIL_FROM, default=no-reply@clientdesk.local"`
}

// Load populates Config from the process environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
