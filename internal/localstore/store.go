// Package localstore is a file-backed SQLite implementation of the program
// gateway, used by the offline generator CLI. Same semantics as the Postgres
// store, no server required.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/storage"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store wraps a local SQLite database holding generated programs.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at dir/programs.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "programs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS programs (
			id             TEXT PRIMARY KEY,
			owner_id       TEXT NOT NULL,
			name           TEXT NOT NULL,
			goal           TEXT NOT NULL,
			level          TEXT NOT NULL,
			split          TEXT NOT NULL,
			frequency      INTEGER NOT NULL,
			is_active      INTEGER NOT NULL DEFAULT 0,
			schema_version INTEGER NOT NULL,
			created_at     TEXT NOT NULL,
			doc            TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS program_days (
			id         TEXT PRIMARY KEY,
			program_id TEXT NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
			position   INTEGER NOT NULL,
			doc        TEXT NOT NULL
		);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating store tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the store database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProgram persists a program document plus one row per day.
func (s *Store) SaveProgram(ctx context.Context, p models.WorkoutProgram) (uuid.UUID, error) {
	if err := p.Validate(); err != nil {
		return uuid.Nil, fmt.Errorf("validating program: %w", err)
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding program: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO programs (id, owner_id, name, goal, level, split, frequency, is_active, schema_version, created_at, doc)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID.String(), p.OwnerID, p.Name, string(p.Goal), string(p.Level), string(p.Split),
		p.Frequency, boolInt(p.IsActive), p.SchemaVersion, p.CreatedAt.UTC().Format(time.RFC3339), string(doc))
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting program: %w", err)
	}

	for i, day := range p.Days {
		dayDoc, err := json.Marshal(day)
		if err != nil {
			return uuid.Nil, fmt.Errorf("encoding day %q: %w", day.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO program_days (id, program_id, position, doc) VALUES (?,?,?,?)`,
			day.ID.String(), p.ID.String(), i, string(dayDoc)); err != nil {
			return uuid.Nil, fmt.Errorf("inserting day %q: %w", day.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("committing program: %w", err)
	}
	return p.ID, nil
}

// GetProgram fetches one program by id, scoped to its owner.
func (s *Store) GetProgram(ctx context.Context, id uuid.UUID, ownerID string) (*models.WorkoutProgram, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT doc, is_active FROM programs WHERE id = ? AND owner_id = ?`, id.String(), ownerID)
	return scanProgram(row)
}

// GetActiveProgram returns the owner's active program, or storage.ErrNotFound.
func (s *Store) GetActiveProgram(ctx context.Context, ownerID string) (*models.WorkoutProgram, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT doc, is_active FROM programs WHERE owner_id = ? AND is_active = 1`, ownerID)
	return scanProgram(row)
}

func scanProgram(row *sql.Row) (*models.WorkoutProgram, error) {
	var doc string
	var isActive int
	if err := row.Scan(&doc, &isActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("querying program: %w", err)
	}

	var p models.WorkoutProgram
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decoding program document: %w", err)
	}
	p.IsActive = isActive != 0
	return &p, nil
}

// ActivateProgram marks one program active and deactivates the owner's others
// in a single transaction.
func (s *Store) ActivateProgram(ctx context.Context, id uuid.UUID, ownerID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE programs SET is_active = 0 WHERE owner_id = ? AND is_active = 1`, ownerID); err != nil {
		return fmt.Errorf("deactivating programs: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE programs SET is_active = 1 WHERE id = ? AND owner_id = ?`, id.String(), ownerID)
	if err != nil {
		return fmt.Errorf("activating program: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("activating program: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing activation: %w", err)
	}
	return nil
}

// DeleteProgram removes a program and its day rows.
func (s *Store) DeleteProgram(ctx context.Context, id uuid.UUID, ownerID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// SQLite foreign keys are off by default; delete the day rows explicitly.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM program_days WHERE program_id = ?`, id.String()); err != nil {
		return fmt.Errorf("deleting program days: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM programs WHERE id = ? AND owner_id = ?`, id.String(), ownerID)
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	return tx.Commit()
}

// GetDay fetches a single embedded day by id.
func (s *Store) GetDay(ctx context.Context, dayID uuid.UUID) (*models.WorkoutDay, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM program_days WHERE id = ?`, dayID.String()).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("querying day: %w", err)
	}

	var d models.WorkoutDay
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		return nil, fmt.Errorf("decoding day document: %w", err)
	}
	return &d, nil
}

// ListPrograms returns summaries of the owner's stored programs, newest first.
func (s *Store) ListPrograms(ctx context.Context, ownerID string) ([]models.ProgramSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, goal, level, split, frequency, is_active, created_at
		 FROM programs WHERE owner_id = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer rows.Close()

	var out []models.ProgramSummary
	for rows.Next() {
		var idStr, createdAt string
		var isActive int
		var s models.ProgramSummary
		if err := rows.Scan(&idStr, &s.Name, &s.Goal, &s.Level, &s.Split,
			&s.Frequency, &isActive, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning program summary: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parsing program id %q: %w", idStr, err)
		}
		s.ID = id
		s.IsActive = isActive != 0
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, s)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
