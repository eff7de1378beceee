package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/instrmap"
	"github.com/google/uuid"
)

// timeFormat is fixed-width so stored timestamps sort chronologically as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Compile-time interface verification.
var _ instrmap.RunService = (*RunService)(nil)

// RunService implements instrmap.RunService using SQLite.
type RunService struct {
	db        *DB
	sourceURL string
}

// NewRunService creates a new RunService. sourceURL is recorded on every
// saved run.
func NewRunService(db *DB, sourceURL string) *RunService {
	return &RunService{db: db, sourceURL: sourceURL}
}

// HashMap computes an xxHash of the map's keys and values in order.
// Maps with the same entries in the same order hash identically.
func HashMap(m *instrmap.InstructionMap) string {
	d := xxhash.New()
	for _, key := range m.Keys() {
		_, _ = d.WriteString(key)
		_, _ = d.WriteString("\x00")
		for _, v := range m.Values(key) {
			_, _ = d.WriteString(v)
			_, _ = d.WriteString("\x1f")
		}
		_, _ = d.WriteString("\x1e")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// SaveMap records m as a new run with all of its entries.
func (s *RunService) SaveMap(ctx context.Context, m *instrmap.InstructionMap) error {
	run := &instrmap.Run{
		ID:          uuid.New().String(),
		SourceURL:   s.sourceURL,
		Entries:     m.Len(),
		ContentHash: HashMap(m),
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, source_url, entries, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.SourceURL, run.Entries, run.ContentHash, run.CreatedAt.Format(timeFormat)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (run_id, mnemonic, key_position, value_position, intrinsic)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, key := range m.Keys() {
		for j, v := range m.Values(key) {
			if _, err := stmt.ExecContext(ctx, run.ID, key, i, j, v); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// FindLatestRun returns the most recently saved run.
func (s *RunService) FindLatestRun(ctx context.Context) (*instrmap.Run, error) {
	return s.findRun(ctx, "ORDER BY created_at DESC, rowid DESC LIMIT 1")
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*instrmap.Run, error) {
	return s.findRun(ctx, "WHERE id = ?", id)
}

func (s *RunService) findRun(ctx context.Context, clause string, args ...any) (*instrmap.Run, error) {
	var query strings.Builder
	query.WriteString("SELECT id, source_url, entries, content_hash, created_at FROM runs ")
	query.WriteString(clause)

	var run instrmap.Run
	var createdAt string
	err := s.db.QueryRowContext(ctx, query.String(), args...).
		Scan(&run.ID, &run.SourceURL, &run.Entries, &run.ContentHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, instrmap.Errorf(instrmap.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.CreatedAt, err = time.Parse(timeFormat, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &run, nil
}

// LoadMap rebuilds the map saved by the run with the given ID.
func (s *RunService) LoadMap(ctx context.Context, runID string) (*instrmap.InstructionMap, error) {
	if _, err := s.FindRunByID(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT mnemonic, intrinsic
		FROM entries
		WHERE run_id = ?
		ORDER BY key_position, value_position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := instrmap.NewInstructionMap()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		m.Add(key, value)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return m, nil
}
