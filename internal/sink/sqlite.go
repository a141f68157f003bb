package sink

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/nukewatch/reactorstatus/internal/classify"
)

const archiveSchema = `
CREATE TABLE IF NOT EXISTS status_reports (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	report_date TEXT NOT NULL,
	unit        TEXT NOT NULL,
	power       TEXT NOT NULL,
	reason      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_status_reports_date ON status_reports(report_date);
`

// Archive persists classified records in a SQLite database so later runs and
// ad-hoc queries do not have to reparse the PSV artifact.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (or creates) the database at path and ensures the schema.
func OpenArchive(path string) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create archive dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	// SQLite degrades with many writers; the archive is written once per run.
	db.SetMaxOpenConns(1)
	return &Archive{db: db}, nil
}

// InsertAll stores the records in a single transaction. Reruns append;
// duplicate rows across runs are acceptable for this dataset.
func (a *Archive) InsertAll(ctx context.Context, recs []classify.Record) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO status_reports (report_date, unit, power, reason) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()
	for _, r := range recs {
		if _, err := stmt.ExecContext(ctx, r.Date.Format("2006-01-02"), r.Unit, r.Power, r.Reason); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert: %w", err)
		}
	}
	return tx.Commit()
}

// Count returns the number of archived records.
func (a *Archive) Count(ctx context.Context) (int, error) {
	var n int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM status_reports`).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (a *Archive) Close() error { return a.db.Close() }
