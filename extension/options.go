package extension

import (
	"github.com/caisseplanck/register"
	"github.com/caisseplanck/register/config"
	"github.com/caisseplanck/register/observability"
	"github.com/caisseplanck/register/plugin"
	"github.com/caisseplanck/register/store"
)

// Option configures the register Forge extension.
type Option func(*Extension)

// WithStore persists the audit trail in s as well as the log files.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithRegisterOption passes a register.Option through to the engine.
func WithRegisterOption(opt register.Option) Option {
	return func(e *Extension) {
		e.registerOpts = append(e.registerOpts, opt)
	}
}

// WithPlugin registers a register plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.registerOpts = append(e.registerOpts, register.WithPlugin(p))
	}
}

// WithMetrics records till activity through factory.
func WithMetrics(factory observability.MetricFactory) Option {
	return WithPlugin(observability.NewMetricsExtension(factory))
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithTillConfig sets the till file locations and audit settings.
func WithTillConfig(cfg config.Config) Option {
	return func(e *Extension) { e.config.Till = cfg }
}

// WithDisableMigrate prevents store migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
