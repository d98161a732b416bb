package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"gridsheet/spreadsheet"
)

// PostgresStore is the DB-backed snapshot backend: selected by main.go
// when a save/snapshot path is a "postgres://" DSN instead of a
// filesystem path. It stores each named snapshot as a single JSONB
// document — the same self-describing GridSnapshot the file backend
// writes — rather than a normalized per-cell schema, since the grid is
// always read and written whole.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS gridsheet_snapshots (
	name       text PRIMARY KEY,
	document   jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

// OpenPostgresStore connects to dsn and ensures the snapshots table
// exists.
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createSnapshotsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: ensure snapshots table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// Save upserts sheet's snapshot under name.
func (p *PostgresStore) Save(ctx context.Context, name string, sheet *spreadsheet.Sheet) error {
	data, err := json.Marshal(Snapshot(sheet))
	if err != nil {
		return fmt.Errorf("storage: marshal snapshot: %w", err)
	}
	const upsert = `
INSERT INTO gridsheet_snapshots (name, document, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = now()`
	if _, err := p.pool.Exec(ctx, upsert, name, data); err != nil {
		return fmt.Errorf("storage: save snapshot %q: %w", name, err)
	}
	return nil
}

// Load restores the Sheet stored under name.
func (p *PostgresStore) Load(ctx context.Context, name string) (*spreadsheet.Sheet, error) {
	var data []byte
	const query = `SELECT document FROM gridsheet_snapshots WHERE name = $1`
	if err := p.pool.QueryRow(ctx, query, name).Scan(&data); err != nil {
		return nil, fmt.Errorf("storage: load snapshot %q: %w", name, err)
	}
	var snap GridSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("storage: unmarshal snapshot %q: %w", name, err)
	}
	return Restore(snap)
}
