// Package worker holds the configuration, health server and metrics for the
// scheduled article generation worker.
package worker

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"newswire/pkg/config"
)

// Config controls the worker's schedule and operational parameters.
type Config struct {
	// CronSchedule is the standard 5-field cron expression for article
	// generation runs.
	CronSchedule string

	// Timezone is the IANA timezone name the schedule is evaluated in.
	Timezone string

	// GenerateTimeout bounds a single generation run.
	GenerateTimeout time.Duration

	// GenerateCount is the number of articles produced per run.
	GenerateCount int

	// HealthPort is the port for the worker's health endpoints.
	HealthPort int
}

// DefaultConfig returns production-ready defaults: one generated article
// every hour, evaluated in UTC.
func DefaultConfig() Config {
	return Config{
		CronSchedule:    "0 * * * *",
		Timezone:        "UTC",
		GenerateTimeout: time.Minute,
		GenerateCount:   3,
		HealthPort:      9091,
	}
}

// LoadConfigFromEnv reads the worker configuration from the environment,
// falling back to defaults for anything unset or invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	cfg.CronSchedule = config.GetEnvString("WORKER_CRON_SCHEDULE", cfg.CronSchedule)
	cfg.Timezone = config.GetEnvString("WORKER_TIMEZONE", cfg.Timezone)
	cfg.GenerateTimeout = config.GetEnvDuration("WORKER_GENERATE_TIMEOUT", cfg.GenerateTimeout)
	cfg.GenerateCount = config.GetEnvInt("WORKER_GENERATE_COUNT", cfg.GenerateCount)
	cfg.HealthPort = config.GetEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and returns the first violation found.
func (c Config) Validate() error {
	if _, err := cron.ParseStandard(c.CronSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", c.CronSchedule, err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if c.GenerateTimeout <= 0 {
		return fmt.Errorf("generate timeout must be positive, got %s", c.GenerateTimeout)
	}
	if c.GenerateCount <= 0 {
		return fmt.Errorf("generate count must be positive, got %d", c.GenerateCount)
	}
	if c.HealthPort < 1024 || c.HealthPort > 65535 {
		return fmt.Errorf("health port must be in 1024-65535, got %d", c.HealthPort)
	}
	return nil
}
