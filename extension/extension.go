// Package extension provides the Forge extension adapter for the register.
//
// It implements the forge.Extension interface to run a till inside a Forge
// application: the engine is built from configuration, registered in the
// DI container and started and stopped with the application.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.register" or "register" keys.
package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/caisseplanck/register"
	"github.com/caisseplanck/register/balance"
	"github.com/caisseplanck/register/internal/till"
	"github.com/caisseplanck/register/store"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "register"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Single-till point-of-sale register"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts the register as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config       Config
	till         *till.Till
	store        store.Store
	registerOpts []register.Option
}

// New creates a new register Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
		config:        DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Register.
// This is nil until Register is called.
func (e *Extension) Engine() *register.Register {
	if e.till == nil {
		return nil
	}
	return e.till.Register
}

// Register implements [forge.Extension]. It loads configuration, opens the
// till files and registers the engine in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	opts := []till.Option{till.WithRegisterOption(e.registerOpts...)}
	if e.store != nil {
		opts = append(opts, till.WithRecorder(e.store))
	}

	t, err := till.Open(e.config.Till, opts...)
	if err != nil {
		return err
	}
	e.till = t

	return vessel.Provide(fapp.Container(), func() (*register.Register, error) {
		return e.till.Register, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.till == nil {
		return errors.New("register: extension not initialized")
	}

	if e.store != nil && !e.config.DisableMigrate {
		if err := e.store.Migrate(ctx); err != nil {
			return err
		}
	}

	if err := e.till.Register.Start(ctx); err != nil {
		return err
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.till != nil {
		if err := e.till.Close(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.till == nil {
		return errors.New("register: extension not initialized")
	}
	if _, err := balance.ReadFile(e.config.Till.BalancePath); err != nil {
		return err
	}
	if e.store != nil {
		return e.store.Ping(ctx)
	}
	return nil
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("register: configuration is required but not found in config files; " +
				"ensure 'extensions.register' or 'register' key exists in your config")
		}
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("register: configuration loaded",
		forge.F("menu_path", e.config.Till.MenuPath),
		forge.F("staff_path", e.config.Till.StaffPath),
		forge.F("balance_path", e.config.Till.BalancePath),
		forge.F("log_dir", e.config.Till.LogDir),
		forge.F("disable_migrate", e.config.DisableMigrate),
	)

	return e.config.Till.Validate()
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	cfg, key, err := bindConfig(
		func(k string) bool { return cm.IsSet(k) },
		func(k string, c *Config) error { return cm.Bind(k, c) },
	)
	if err != nil {
		e.Logger().Warn("register: failed to bind config", forge.F("error", err))
	}
	if key == "" {
		return Config{}, false
	}
	e.Logger().Debug("register: loaded config from file", forge.F("key", key))
	return cfg, true
}

// configKeys are tried in order; the namespaced key wins.
var configKeys = []string{"extensions.register", "register"}

// bindConfig binds the first configured key that decodes. key is empty when
// none did; err joins the bind failures met on the way.
func bindConfig(isSet func(string) bool, bind func(string, *Config) error) (cfg Config, key string, err error) {
	var errs []error
	for _, k := range configKeys {
		if !isSet(k) {
			continue
		}
		var c Config
		if berr := bind(k, &c); berr != nil {
			errs = append(errs, fmt.Errorf("bind %s: %w", k, berr))
			continue
		}
		return c, k, errors.Join(errs...)
	}
	return Config{}, "", errors.Join(errs...)
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	cfg.Till = fillTill(cfg.Till)
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence; programmatic values fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	y, p := &yamlConfig.Till, programmaticConfig.Till
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&y.MenuPath, p.MenuPath},
		{&y.StaffPath, p.StaffPath},
		{&y.BalancePath, p.BalancePath},
		{&y.LogDir, p.LogDir},
		{&y.LogLevel, p.LogLevel},
		{&y.Prompt, p.Prompt},
	} {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
	if len(y.AuditDisabledActions) == 0 {
		y.AuditDisabledActions = p.AuditDisabledActions
	}

	yamlConfig.Till = fillTill(yamlConfig.Till)
	return yamlConfig
}
