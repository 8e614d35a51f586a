package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Leaving API_BASE_URL empty skips the live suite.
	ApiBaseURL    string `envconfig:"API_BASE_URL"`
	TopicsBaseURL string `envconfig:"TOPICS_BASE_URL"`
	Namespace     string `envconfig:"NAMESPACE" default:"moderator"`
	Username      string `envconfig:"E2E_USERNAME" default:"e2e-probe"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
