package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig maps PRIMEFACTORIZE_* environment overrides. Nil means unset.
type EnvConfig struct {
	Seed      *int64 `env:"PRIMEFACTORIZE_SEED"`
	FPS       *int   `env:"PRIMEFACTORIZE_FPS"`
	Mouse     *bool  `env:"PRIMEFACTORIZE_MOUSE"`
	AltScreen *bool  `env:"PRIMEFACTORIZE_ALT_SCREEN"`
	Summary   *bool  `env:"PRIMEFACTORIZE_SUMMARY"`
}

// LoadEnv reads overrides from the process environment.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Merge layers environment values over file values.
func Merge(file GameConfig, e EnvConfig) GameConfig {
	if e.Seed != nil {
		file.Seed = e.Seed
	}
	if e.FPS != nil {
		file.FPS = e.FPS
	}
	if e.Mouse != nil {
		file.Mouse = e.Mouse
	}
	if e.AltScreen != nil {
		file.AltScreen = e.AltScreen
	}
	if e.Summary != nil {
		file.Summary = e.Summary
	}
	return file
}
