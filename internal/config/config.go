package config

import (
	"github.com/caarlos0/env/v11"

	"resto-ads/internal/config/configs"
)

// Config is the whole service configuration, read from the environment.
// Each section owns a variable prefix; defaults live on the section types
// in the configs package.
type Config struct {
	Env string `env:"ENV" envDefault:"prod"`

	HTTP    configs.HTTP    `envPrefix:"HTTP_"`
	Log     configs.Logger  `envPrefix:"LOG_"`
	Webhook configs.Webhook `envPrefix:"WEBHOOK_"`

	// Store picks the persistence driver; Psql is only read for postgres.
	Store configs.Store    `envPrefix:"STORE_"`
	Psql  configs.Postgres `envPrefix:"PSQL_"`

	// Redis backs Cache and the partition locks when REDIS_ADDR is set.
	Redis configs.Redis `envPrefix:"REDIS_"`
	Cache configs.Cache `envPrefix:"CACHE_"`

	Meta  configs.Meta  `envPrefix:"META_"`
	LLM   configs.LLM   `envPrefix:"LLM_"`
	AdSet configs.AdSet `envPrefix:"ADSET_"`

	Scheduler configs.Scheduler `envPrefix:"SCHEDULER_"`
}

// Load parses the environment and validates the scheduler clock and the
// budget currency.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Scheduler.Validate(); err != nil {
		return cfg, err
	}
	if err := cfg.AdSet.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
