package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	corehistory "github.com/kilianp07/haulplan/core/history"
)

// SQLiteStore persists run records to a SQLite database. The full record is
// stored as JSON; trucks and truck types are also kept in side tables so
// queries can filter in SQL.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS assignment_runs (
	id TEXT PRIMARY KEY,
	ts INTEGER NOT NULL,
	source TEXT,
	record TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS run_trucks (
	run_id TEXT NOT NULL REFERENCES assignment_runs(id),
	truck TEXT NOT NULL COLLATE NOCASE
);
CREATE TABLE IF NOT EXISTS run_truck_types (
	run_id TEXT NOT NULL REFERENCES assignment_runs(id),
	truck_type TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_ts ON assignment_runs(ts);
CREATE INDEX IF NOT EXISTS idx_run_trucks ON run_trucks(truck);`

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Append writes the record and its truck index rows in one transaction.
func (s *SQLiteStore) Append(ctx context.Context, rec corehistory.RunRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO assignment_runs (id, ts, source, record) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Timestamp.UnixMilli(), rec.Source, string(b)); err != nil {
		return fmt.Errorf("insert run %s: %w", rec.ID, err)
	}
	seen := make(map[string]bool)
	for _, a := range rec.Assignments {
		key := strings.ToLower(a.Truck)
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, err := tx.ExecContext(ctx, `INSERT INTO run_trucks (run_id, truck) VALUES (?, ?)`, rec.ID, a.Truck); err != nil {
			return err
		}
	}
	for tt := range rec.ByType {
		if _, err := tx.ExecContext(ctx, `INSERT INTO run_truck_types (run_id, truck_type) VALUES (?, ?)`, rec.ID, tt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Query returns records matching q, oldest first. Truck type synonyms are
// resolved after loading.
func (s *SQLiteStore) Query(ctx context.Context, q corehistory.Query) ([]corehistory.RunRecord, error) {
	var args []any
	query := `SELECT record FROM assignment_runs r WHERE 1=1`
	if !q.Start.IsZero() {
		query += ` AND ts >= ?`
		args = append(args, q.Start.UnixMilli())
	}
	if !q.End.IsZero() {
		query += ` AND ts <= ?`
		args = append(args, q.End.UnixMilli())
	}
	if q.Truck != "" {
		query += ` AND EXISTS (SELECT 1 FROM run_trucks t WHERE t.run_id = r.id AND t.truck = ?)`
		args = append(args, q.Truck)
	}
	query += ` ORDER BY ts`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []corehistory.RunRecord
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var r corehistory.RunRecord
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		if q.TruckType != "" && !r.HasTruckType(q.TruckType) {
			continue
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
