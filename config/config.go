// Package config loads till configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the till configuration. Fields can be set from REGISTER_*
// environment variables (optionally via a .env file) or decoded from a
// configuration file under the "register" key.
type Config struct {
	// MenuPath is the pipe-delimited menu file.
	MenuPath string `env:"REGISTER_MENU_PATH" json:"menu_path" mapstructure:"menu_path" yaml:"menu_path"`

	// StaffPath is the pipe-delimited employee file.
	StaffPath string `env:"REGISTER_STAFF_PATH" json:"staff_path" mapstructure:"staff_path" yaml:"staff_path"`

	// BalancePath is the 8-byte register count file. It is created with
	// 0.00 when missing.
	BalancePath string `env:"REGISTER_BALANCE_PATH" json:"balance_path" mapstructure:"balance_path" yaml:"balance_path"`

	// LogDir receives events.log, transactions.log and counts.log.
	LogDir string `env:"REGISTER_LOG_DIR" json:"log_dir" mapstructure:"log_dir" yaml:"log_dir"`

	// LogLevel is the process log level: debug, info, warn or error.
	LogLevel string `env:"REGISTER_LOG_LEVEL" json:"log_level" mapstructure:"log_level" yaml:"log_level"`

	// Prompt is shown by the shell while nobody is logged in.
	Prompt string `env:"REGISTER_PROMPT" json:"prompt" mapstructure:"prompt" yaml:"prompt"`

	// AuditDisabledActions lists audit actions that are not recorded.
	AuditDisabledActions []string `env:"REGISTER_AUDIT_DISABLED_ACTIONS" envSeparator:"," json:"audit_disabled_actions" mapstructure:"audit_disabled_actions" yaml:"audit_disabled_actions"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MenuPath:    "menu.txt",
		StaffPath:   "employees.txt",
		BalancePath: "register_count.bin",
		LogDir:      "logs",
		LogLevel:    "info",
		Prompt:      "caisse-planck > ",
	}
}

// Load reads an optional .env file, then overlays REGISTER_* variables on
// DefaultConfig. It does not validate: callers apply their own overrides
// first and then call Validate.
func Load() (Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks that every path is set and the log level parses.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.MenuPath) == "" {
		errs = append(errs, errors.New("config: menu path is required"))
	}
	if strings.TrimSpace(c.StaffPath) == "" {
		errs = append(errs, errors.New("config: staff path is required"))
	}
	if strings.TrimSpace(c.BalancePath) == "" {
		errs = append(errs, errors.New("config: balance path is required"))
	}
	if strings.TrimSpace(c.LogDir) == "" {
		errs = append(errs, errors.New("config: log dir is required"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, info when unparseable.
func (c Config) Level() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("config: invalid log level %q", s)
	}
	return l, nil
}
