package mcp

import (
	"context"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts stored-program access for MCP tools. Both *storage.DB
// (local) and HTTPClient (remote via REST API) satisfy this interface.
// Archetype and technique data are embedded in the binary, so only the
// store-backed queries go through here.
type DataSource interface {
	GetActiveProgram(ctx context.Context, ownerID string) (*models.WorkoutProgram, error)
	ListPrograms(ctx context.Context, ownerID string) ([]models.ProgramSummary, error)
	GetDay(ctx context.Context, dayID uuid.UUID) (*models.WorkoutDay, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
