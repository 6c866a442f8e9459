package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/program"
	"github.com/claude/liftplan/internal/storage"
	"github.com/claude/liftplan/internal/technique"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ProgramStore is the persistence gateway the handlers talk to. *storage.DB
// (Postgres) and *localstore.Store (SQLite) both satisfy it.
type ProgramStore interface {
	SaveProgram(ctx context.Context, p models.WorkoutProgram) (uuid.UUID, error)
	GetProgram(ctx context.Context, id uuid.UUID, ownerID string) (*models.WorkoutProgram, error)
	GetActiveProgram(ctx context.Context, ownerID string) (*models.WorkoutProgram, error)
	ActivateProgram(ctx context.Context, id uuid.UUID, ownerID string) error
	DeleteProgram(ctx context.Context, id uuid.UUID, ownerID string) error
	GetDay(ctx context.Context, dayID uuid.UUID) (*models.WorkoutDay, error)
	ListPrograms(ctx context.Context, ownerID string) ([]models.ProgramSummary, error)
}

// Compile-time check: *storage.DB satisfies ProgramStore.
var _ ProgramStore = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      ProgramStore
	composer   *program.Composer
	techniques *technique.Engine
	log        *slog.Logger
	apiKey     string
	router     chi.Router
}

// New creates a new Server with all routes configured.
func New(store ProgramStore, composer *program.Composer, techniques *technique.Engine, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:      store,
		composer:   composer,
		techniques: techniques,
		log:        log,
		apiKey:     apiKey,
		router:     chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read-only catalog endpoints
	s.router.Get("/api/v1/archetypes", s.handleListArchetypes)
	s.router.Get("/api/v1/techniques", s.handleListTechniques)
	s.router.Get("/api/v1/techniques/{name}", s.handleGetTechnique)
	s.router.Get("/api/v1/techniques/{name}/applicability", s.handleCheckTechnique)

	// Program queries
	s.router.Get("/api/v1/programs", s.handleListPrograms)
	s.router.Get("/api/v1/programs/active", s.handleGetActiveProgram)
	s.router.Get("/api/v1/programs/{id}", s.handleGetProgram)
	s.router.Get("/api/v1/days/{id}", s.handleGetDay)

	// Mutations (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/programs", s.handleCreateProgram)
		r.Post("/api/v1/programs/{id}/activate", s.handleActivateProgram)
		r.Delete("/api/v1/programs/{id}", s.handleDeleteProgram)
	})
}
