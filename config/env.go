package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the settings that may come from the environment
type Env struct {
	ConfigPath string `env:"BC_CONFIG"`
	Token      string `env:"BC_TOKEN"`
	APIServer  string `env:"BC_API_SERVER"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// apply overrides file values with the ones set in the environment
func (e Env) apply(cfg *Config) {
	if e.Token != "" {
		cfg.Discord.Token = e.Token
	}
	if e.APIServer != "" {
		cfg.BCDice.URL = e.APIServer
	}
}
