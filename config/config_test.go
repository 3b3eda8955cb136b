package config

import (
	"log/slog"
	"strings"
	"testing"
)

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here
	t.Setenv("REGISTER_MENU_PATH", "/srv/till/menu.txt")
	t.Setenv("REGISTER_LOG_LEVEL", "debug")
	t.Setenv("REGISTER_AUDIT_DISABLED_ACTIONS", "order.item_added,order.item_removed")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MenuPath != "/srv/till/menu.txt" {
		t.Errorf("menu path: got %q", cfg.MenuPath)
	}
	if cfg.StaffPath != "employees.txt" {
		t.Errorf("expected default staff path, got %q", cfg.StaffPath)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("level: got %v", cfg.Level())
	}
	if len(cfg.AuditDisabledActions) != 2 || cfg.AuditDisabledActions[1] != "order.item_removed" {
		t.Errorf("disabled actions: got %v", cfg.AuditDisabledActions)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"defaults", func(*Config) {}, ""},
		{"no menu", func(c *Config) { c.MenuPath = " " }, "menu path is required"},
		{"no balance", func(c *Config) { c.BalancePath = "" }, "balance path is required"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, `invalid log level "loud"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadLeavesValidationToCaller(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REGISTER_LOG_LEVEL", "loud")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected Validate to reject the log level")
	}

	cfg.LogLevel = "debug"
	if err := cfg.Validate(); err != nil {
		t.Errorf("override should fix the config: %v", err)
	}
}
