package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveProgram persists a full program document plus one row per day so days
// can be fetched individually. The program and its days are written in a
// single transaction.
func (db *DB) SaveProgram(ctx context.Context, p models.WorkoutProgram) (uuid.UUID, error) {
	if err := p.Validate(); err != nil {
		return uuid.Nil, fmt.Errorf("validating program: %w", err)
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding program: %w", err)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO programs (id, owner_id, name, goal, level, split, frequency, is_active, schema_version, created_at, doc)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.OwnerID, p.Name, p.Goal, p.Level, p.Split, p.Frequency,
		p.IsActive, p.SchemaVersion, p.CreatedAt, doc)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting program: %w", err)
	}

	for i, day := range p.Days {
		dayDoc, err := json.Marshal(day)
		if err != nil {
			return uuid.Nil, fmt.Errorf("encoding day %q: %w", day.Name, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO program_days (id, program_id, position, doc) VALUES ($1,$2,$3,$4)`,
			day.ID, p.ID, i, dayDoc)
		if err != nil {
			return uuid.Nil, fmt.Errorf("inserting day %q: %w", day.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("committing program: %w", err)
	}
	return p.ID, nil
}

// GetProgram fetches one program by id, scoped to its owner.
func (db *DB) GetProgram(ctx context.Context, id uuid.UUID, ownerID string) (*models.WorkoutProgram, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT doc, is_active FROM programs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return scanProgram(row)
}

// GetActiveProgram returns the owner's currently active program, or
// ErrNotFound when none is active.
func (db *DB) GetActiveProgram(ctx context.Context, ownerID string) (*models.WorkoutProgram, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT doc, is_active FROM programs WHERE owner_id = $1 AND is_active`, ownerID)
	return scanProgram(row)
}

func scanProgram(row pgx.Row) (*models.WorkoutProgram, error) {
	var doc []byte
	var isActive bool
	if err := row.Scan(&doc, &isActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying program: %w", err)
	}

	var p models.WorkoutProgram
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("decoding program document: %w", err)
	}
	// The activation flag lives in the column; the stored document keeps its
	// value from save time.
	p.IsActive = isActive
	return &p, nil
}

// ActivateProgram marks one program active and deactivates all the owner's
// others in a single transaction, so two racing activations cannot both win
// partially.
func (db *DB) ActivateProgram(ctx context.Context, id uuid.UUID, ownerID string) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE programs SET is_active = FALSE WHERE owner_id = $1 AND is_active`, ownerID); err != nil {
		return fmt.Errorf("deactivating programs: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE programs SET is_active = TRUE WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("activating program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing activation: %w", err)
	}
	return nil
}

// DeleteProgram removes a program and (via cascade) its day rows.
func (db *DB) DeleteProgram(ctx context.Context, id uuid.UUID, ownerID string) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM programs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetDay fetches a single embedded day by id, for ad-hoc day editing flows.
func (db *DB) GetDay(ctx context.Context, dayID uuid.UUID) (*models.WorkoutDay, error) {
	var doc []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT doc FROM program_days WHERE id = $1`, dayID).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying day: %w", err)
	}

	var d models.WorkoutDay
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("decoding day document: %w", err)
	}
	return &d, nil
}

// ListPrograms returns summaries of the owner's stored programs, newest first.
func (db *DB) ListPrograms(ctx context.Context, ownerID string) ([]models.ProgramSummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, goal, level, split, frequency, is_active, created_at
		 FROM programs WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer rows.Close()

	var out []models.ProgramSummary
	for rows.Next() {
		var s models.ProgramSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Goal, &s.Level, &s.Split,
			&s.Frequency, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning program summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
