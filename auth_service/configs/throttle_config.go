package configs

import (
	"time"

	"todo_list/shared/config"
)

// ограничение неудачных попыток входа для одного email
type LoginThrottleConfig struct {
	MaxFailedAttempts int           `yaml:"max_failed_attempts"`
	Window            time.Duration `yaml:"window"`
}

func UseDefaultLoginThrottleConfig() *LoginThrottleConfig {
	return &LoginThrottleConfig{
		MaxFailedAttempts: 5,
		Window:            15 * time.Minute,
	}
}

func (c *LoginThrottleConfig) Validate() error {
	if c.MaxFailedAttempts < 1 {
		return &config.ConfigError{Field: "max_failed_attempts", Msg: "must be at least 1"}
	}
	if c.Window <= 0 {
		return &config.ConfigError{Field: "window", Msg: "must be positive"}
	}
	return nil
}
