package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	Airflow AirflowConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Audit   AuditConfig
	Seed    SeedConfig
}

type AirflowConfig struct {
	BaseURL  string        `env:"AIRFLOW_BASE_URL, default=http://localhost:8081"`
	Username string        `env:"AIRFLOW_USERNAME, default=airflow"`
	Password string        `env:"AIRFLOW_PASSWORD, default=airflow"`
	Timeout  time.Duration `env:"AIRFLOW_TIMEOUT,  default=30s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=airflow_gateway"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=2"`
	Buffer  int `env:"AUDIT_BUFFER,  default=256"`
}

type SeedConfig struct {
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=admin123"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	return &cfg, nil
}
