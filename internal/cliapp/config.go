package cliapp

import (
	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/logging"
)

type Config struct {
	LogLevel    string `env:"LAZYQ_LOG_LEVEL" default:"info" enum:"debug;info;warn;error;"`
	BoltPath    string `env:"LAZYQ_BOLT_PATH"`
	BoltBucket  string `env:"LAZYQ_BOLT_BUCKET" default:"lines"`
	DatabaseURL string `env:"LAZYQ_DATABASE_URL"`
}

func LoadConfig() (Config, error) {
	var c Config
	if err := env.Load(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) level() logging.Level {
	if c.LogLevel == "" {
		return logging.LevelInfo
	}
	return logging.Level(c.LogLevel)
}
