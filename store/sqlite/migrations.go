package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the register audit store (SQLite).
var Migrations = migrate.NewGroup("register")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_register_audit_entries",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS register_audit_entries (
    id        TEXT PRIMARY KEY,
    stream    TEXT NOT NULL,
    level     TEXT NOT NULL DEFAULT 'INFO',
    operator  TEXT NOT NULL DEFAULT '',
    message   TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_register_audit_stream_ts ON register_audit_entries (stream, timestamp);
CREATE INDEX IF NOT EXISTS idx_register_audit_ts ON register_audit_entries (timestamp);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS register_audit_entries`)
				return err
			},
		},
	)
}
