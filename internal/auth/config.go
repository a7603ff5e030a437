package auth

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Secret   string        `mapstructure:"Secret"`
	Issuer   string        `mapstructure:"Issuer"`
	TokenTTL time.Duration `mapstructure:"TokenTTL"`
}

func NewConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.BindEnv("Secret", "AUTH_SECRET")
	v.BindEnv("Issuer", "AUTH_ISSUER")
	v.BindEnv("TokenTTL", "AUTH_TOKEN_TTL")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Warning: using only environment variables: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal config: %w", err)
	}

	if cfg.Secret == "" {
		cfg.Secret = v.GetString("AUTH_SECRET")
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("auth secret is required")
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "filemanager"
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	return &cfg, nil
}
