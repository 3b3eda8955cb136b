// Command till runs the register as an interactive terminal session.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/caisseplanck/register/config"
	"github.com/caisseplanck/register/internal/till"
	"github.com/caisseplanck/register/shell"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "till: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "till",
		Usage: "run the point-of-sale register",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "menu_path", Aliases: []string{"m"}, Usage: "path to the menu file"},
			&cli.StringFlag{Name: "employees_path", Aliases: []string{"e"}, Usage: "path to the employees file"},
			&cli.StringFlag{Name: "register_count_path", Aliases: []string{"r"}, Usage: "path to the register count file"},
			&cli.StringFlag{Name: "log_path", Aliases: []string{"l"}, Usage: "directory of the audit log files"},
			&cli.StringFlag{Name: "log_level", Usage: "process log level (debug, info, warn, error)"},
			&cli.StringFlag{Name: "prompt", Usage: "prompt shown while nobody is logged in"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	t, err := till.Open(cfg, till.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := t.Close(); cerr != nil {
			logger.Error("close till", "error", cerr)
		}
	}()

	if err := t.Register.Start(c.Context); err != nil {
		return err
	}

	sh := shell.New(t.Register, os.Stdout,
		shell.WithPrompt(cfg.Prompt),
		shell.WithLogger(logger),
	)
	if err := sh.Run(c.Context, os.Stdin); err != nil && c.Context.Err() == nil {
		return err
	}
	return nil
}

// loadConfig reads the environment, applies flags and only then validates,
// so a flag can correct a bad environment value.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	overrideFromFlags(c, &cfg)
	return cfg, cfg.Validate()
}

// overrideFromFlags applies the flags that were given on the command line.
func overrideFromFlags(c *cli.Context, cfg *config.Config) {
	for name, dst := range map[string]*string{
		"menu_path":           &cfg.MenuPath,
		"employees_path":      &cfg.StaffPath,
		"register_count_path": &cfg.BalancePath,
		"log_path":            &cfg.LogDir,
		"log_level":           &cfg.LogLevel,
		"prompt":              &cfg.Prompt,
	} {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
}
