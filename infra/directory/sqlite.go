package directory

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/haulplan/core/model"
)

// SQLiteStore keeps the directory in a drivers table. The position column
// preserves directory order, which breaks priority ties during assignment.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS drivers (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		driver TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		truck_type TEXT NOT NULL DEFAULT '',
		priority INTEGER
	);`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Load returns the drivers in position order.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.DriverEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, driver, status, truck_type, priority FROM drivers ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.DriverEntry
	for rows.Next() {
		var (
			e    model.DriverEntry
			prio sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.Driver, &e.Status, &e.TruckType, &prio); err != nil {
			return nil, err
		}
		if prio.Valid {
			e.Priority = model.PriorityOf(model.Priority(prio.Int64))
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Save replaces the table contents in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, entries []model.DriverEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM drivers`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO drivers (position, id, driver, status, truck_type, priority) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	for i, e := range entries {
		var prio sql.NullInt64
		if e.Priority != nil {
			prio = sql.NullInt64{Int64: int64(*e.Priority), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, e.ID, e.Driver, string(e.Status), e.TruckType, prio); err != nil {
			return fmt.Errorf("insert driver %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
