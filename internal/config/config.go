package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrInvalidTimeout = errors.New("NUTRITIONIX_TIMEOUT must be positive")

type Config struct {
	ChannelAccessToken string `env:"LINE_ACCESS_TOKEN,required"`
	ChannelSecret      string `env:"LINE_CHANNEL_SECRET,required"`
	LineAPIBaseURL     string `env:"LINE_API_BASE_URL" envDefault:"https://api.line.me"`

	NutritionixAppID   string        `env:"NUTRITIONIX_APP_ID,required"`
	NutritionixAppKey  string        `env:"NUTRITIONIX_APP_KEY,required"`
	NutritionixBaseURL string        `env:"NUTRITIONIX_BASE_URL" envDefault:"https://trackapi.nutritionix.com"`
	NutritionixTimeout time.Duration `env:"NUTRITIONIX_TIMEOUT" envDefault:"10s"`

	Port     string `env:"PORT" envDefault:"5000"`
	DataDir  string `env:"DATA_DIR" envDefault:"."`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	// .env is optional — env vars may already be set (e.g. in production)
	_ = godotenv.Load()

	return parse(env.Options{})
}

// loadFrom parses cfg from the given map instead of the process environment.
func loadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing env: %w", err)
	}

	cfg.LineAPIBaseURL = strings.TrimRight(cfg.LineAPIBaseURL, "/")
	cfg.NutritionixBaseURL = strings.TrimRight(cfg.NutritionixBaseURL, "/")

	if cfg.NutritionixTimeout <= 0 {
		return nil, ErrInvalidTimeout
	}
	return cfg, nil
}

// DBPath is where the redelivery bookkeeping file lives.
func (c *Config) DBPath() string {
	return strings.TrimRight(c.DataDir, "/") + "/calbot.db"
}
