package config

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server ServerConfig
	OpenAI OpenAIConfig
	Scan   ScanConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"8000"`
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
}

// OpenAIConfig configures the completion provider. APIKey is intentionally
// not required at load time: a missing credential is reported per-request as
// a provider_unavailable failure, not a startup crash.
type OpenAIConfig struct {
	Provider       string        `envconfig:"OPENAI_PROVIDER" default:"openai"`
	APIKey         string        `envconfig:"OPENAI_API_KEY"`
	APIEndpoint    string        `envconfig:"OPENAI_ENDPOINT" default:"https://api.openai.com/v1"`
	Model          string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	DeploymentName string        `envconfig:"OPENAI_DEPLOYMENT" default:"gpt-4o"`
	APIVersion     string        `envconfig:"OPENAI_API_VERSION" default:"2023-05-15"`
	MaxTokens      int64         `envconfig:"OPENAI_MAX_TOKENS" default:"1024"`
	Timeout        time.Duration `envconfig:"OPENAI_TIMEOUT" default:"45s"`
}

type ScanConfig struct {
	// Cooldown is the minimum interval between accepted submissions,
	// measured from the start of the most recent accepted one.
	Cooldown time.Duration `envconfig:"SCAN_COOLDOWN" default:"5s"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}
