package extension

import "github.com/caisseplanck/register/config"

// Config holds the register extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.register" or "register" keys).
type Config struct {
	// Till holds the file locations and audit settings of the till.
	Till config.Config `json:"till" mapstructure:"till" yaml:"till"`

	// DisableMigrate prevents store migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{Till: config.DefaultConfig()}
}

// fillTill replaces empty till settings with their defaults.
func fillTill(c config.Config) config.Config {
	d := config.DefaultConfig()
	if c.MenuPath == "" {
		c.MenuPath = d.MenuPath
	}
	if c.StaffPath == "" {
		c.StaffPath = d.StaffPath
	}
	if c.BalancePath == "" {
		c.BalancePath = d.BalancePath
	}
	if c.LogDir == "" {
		c.LogDir = d.LogDir
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Prompt == "" {
		c.Prompt = d.Prompt
	}
	return c
}
