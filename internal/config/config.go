// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token    string  `yaml:"token"`
	Username string  `yaml:"username"`
	Workers  int     `yaml:"workers"` // polling workers
	AdminIDs []int64 `yaml:"admin_ids"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AdminConfig struct {
	Port      int           `yaml:"port"`
	APIKey    string        `yaml:"api_key"`    // exchanged for a session token at /api/v1/login
	JWTSecret string        `yaml:"jwt_secret"` // HMAC secret for session tokens
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	StateTTL time.Duration `yaml:"state_ttl"` // donation flow state expiry
}

type PaymentConfig struct {
	ProviderToken string `yaml:"provider_token"` // empty for Telegram Stars
	Currency      string `yaml:"currency"`
	MinAmount     int64  `yaml:"min_amount"`
	MaxAmount     int64  `yaml:"max_amount"`
}

type ReaperConfig struct {
	Interval   time.Duration `yaml:"interval"`
	PendingTTL time.Duration `yaml:"pending_ttl"`
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Log      LogConfig      `yaml:"log"`
	Admin    AdminConfig    `yaml:"admin"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Payment  PaymentConfig  `yaml:"payment"`
	Reaper   ReaperConfig   `yaml:"reaper"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required")
	}
	if len(cfg.Bot.AdminIDs) == 0 {
		return nil, errors.New("bot.admin_ids is required")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Payment.MinAmount > cfg.Payment.MaxAmount {
		return nil, errors.New("payment.min_amount exceeds payment.max_amount")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Admin.Port <= 0 {
		cfg.Admin.Port = 9090
	}
	if cfg.Admin.TokenTTL <= 0 {
		cfg.Admin.TokenTTL = 30 * time.Minute
	}
	if cfg.Redis.StateTTL <= 0 {
		cfg.Redis.StateTTL = 15 * time.Minute
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = "XTR"
	}
	if cfg.Payment.MinAmount <= 0 {
		cfg.Payment.MinAmount = 1
	}
	if cfg.Payment.MaxAmount <= 0 {
		cfg.Payment.MaxAmount = 10000
	}
	if cfg.Reaper.Interval <= 0 {
		cfg.Reaper.Interval = time.Hour
	}
	if cfg.Reaper.PendingTTL <= 0 {
		cfg.Reaper.PendingTTL = 24 * time.Hour
	}
}
