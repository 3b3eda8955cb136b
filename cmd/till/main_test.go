package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/caisseplanck/register/config"
)

func TestOverrideFromFlags(t *testing.T) {
	app := newApp()
	set := flag.NewFlagSet("till", flag.ContinueOnError)
	for _, f := range app.Flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse([]string{"-m", "other_menu.txt", "--log_path", "/tmp/till"}))

	cfg := config.DefaultConfig()
	overrideFromFlags(cli.NewContext(app, set, nil), &cfg)

	assert.Equal(t, "other_menu.txt", cfg.MenuPath)
	assert.Equal(t, "/tmp/till", cfg.LogDir)
	assert.Equal(t, config.DefaultConfig().StaffPath, cfg.StaffPath, "unset flags keep the loaded value")
}

func TestFlagFixesBadEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REGISTER_LOG_LEVEL", "loud")

	app := newApp()
	set := flag.NewFlagSet("till", flag.ContinueOnError)
	for _, f := range app.Flags {
		require.NoError(t, f.Apply(set))
	}

	require.NoError(t, set.Parse(nil))
	_, err := loadConfig(cli.NewContext(app, set, nil))
	require.Error(t, err)

	require.NoError(t, set.Parse([]string{"--log_level", "debug"}))
	cfg, err := loadConfig(cli.NewContext(app, set, nil))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}
