package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillSeq(db); err != nil {
		return fmt.Errorf("backfilling seq values: %w", err)
	}
	return nil
}

// migrateBackfillSeq assigns roster order to employees stored before the
// seq column existed. Rows keep their insertion (rowid) order.
func migrateBackfillSeq(db *sql.DB) error {
	ctx := context.Background()

	var pending int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE seq = 0`).Scan(&pending); err != nil {
		return fmt.Errorf("counting unsequenced employees: %w", err)
	}
	if pending == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting backfill transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var maxSeq int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM employees`).Scan(&maxSeq); err != nil {
		return fmt.Errorf("loading max seq: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT id FROM employees WHERE seq = 0 ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("listing unsequenced employees: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, id := range ids {
		maxSeq++
		if _, err := tx.ExecContext(ctx, `UPDATE employees SET seq = ? WHERE id = ?`, maxSeq, id); err != nil {
			return fmt.Errorf("setting seq for %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing backfill: %w", err)
	}
	committed = true
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id          TEXT PRIMARY KEY,
		manager_id  TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		level       INTEGER NOT NULL DEFAULT 0 CHECK(level BETWEEN 0 AND 10),
		salary      TEXT NOT NULL DEFAULT '0',
		department  TEXT NOT NULL DEFAULT '',
		job_title   TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_employees_manager ON employees(manager_id)`,

	`CREATE TABLE IF NOT EXISTS view_state (
		id             TEXT PRIMARY KEY,
		expanded_ids   TEXT NOT NULL DEFAULT '[]',
		visible_layers TEXT NOT NULL DEFAULT '[]',
		zoom           REAL NOT NULL DEFAULT 1.0,
		updated_at     TEXT NOT NULL
	)`,

	// Contact fields and roster order were added after the first release.
	`ALTER TABLE employees ADD COLUMN location TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE employees ADD COLUMN email TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE employees ADD COLUMN seq INTEGER NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_employees_seq ON employees(seq)`,
	`ALTER TABLE view_state ADD COLUMN highlighted_id TEXT NOT NULL DEFAULT ''`,

	// Earlier records of an imported roster whose id a later record reused.
	// They share the seq ordering with employees.
	`CREATE TABLE IF NOT EXISTS shadowed_employees (
		seq         INTEGER PRIMARY KEY,
		id          TEXT NOT NULL,
		manager_id  TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		level       INTEGER NOT NULL DEFAULT 0 CHECK(level BETWEEN 0 AND 10),
		salary      TEXT NOT NULL DEFAULT '0',
		department  TEXT NOT NULL DEFAULT '',
		job_title   TEXT NOT NULL DEFAULT '',
		location    TEXT NOT NULL DEFAULT '',
		email       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shadowed_employees_id ON shadowed_employees(id)`,
}
