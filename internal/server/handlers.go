package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/program"
	"github.com/claude/liftplan/internal/storage"
	"github.com/claude/liftplan/internal/technique"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleListArchetypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.composer.Registry().Archetypes())
}

type createProgramRequest struct {
	Archetype     string `json:"archetype"`
	OwnerID       string `json:"owner_id"`
	IncludeDeload bool   `json:"include_deload"`
	Activate      bool   `json:"activate"`
}

type createProgramResponse struct {
	ProgramID       uuid.UUID  `json:"program_id"`
	DeloadProgramID *uuid.UUID `json:"deload_program_id,omitempty"`
}

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var req createProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.OwnerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required")
		return
	}

	p, err := s.composer.Build(req.Archetype, req.OwnerID)
	if err != nil {
		if errors.Is(err, program.ErrUnknownArchetype) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("program build failed", "archetype", req.Archetype, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, err := s.store.SaveProgram(r.Context(), p)
	if err != nil {
		s.log.Error("program save failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := createProgramResponse{ProgramID: id}

	if req.IncludeDeload {
		deload, err := s.composer.BuildDeloadVariant(req.Archetype, req.OwnerID)
		if err != nil {
			if errors.Is(err, program.ErrNoDeloadVariant) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			s.log.Error("deload build failed", "archetype", req.Archetype, "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		deloadID, err := s.store.SaveProgram(r.Context(), deload)
		if err != nil {
			s.log.Error("deload save failed", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.DeloadProgramID = &deloadID
	}

	if req.Activate {
		if err := s.store.ActivateProgram(r.Context(), id, req.OwnerID); err != nil {
			s.log.Error("program activation failed", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id parameter required")
		return
	}
	summaries, err := s.store.ListPrograms(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if summaries == nil {
		summaries = []models.ProgramSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id parameter required")
		return
	}

	p, err := s.store.GetProgram(r.Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "program not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleGetActiveProgram(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id parameter required")
		return
	}

	p, err := s.store.GetActiveProgram(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no active program")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type activateProgramRequest struct {
	OwnerID string `json:"owner_id"`
}

func (s *Server) handleActivateProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req activateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.OwnerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required")
		return
	}

	if err := s.store.ActivateProgram(r.Context(), id, req.OwnerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "program not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "active"})
}

func (s *Server) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id parameter required")
		return
	}

	if err := s.store.DeleteProgram(r.Context(), id, ownerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "program not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	day, err := s.store.GetDay(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "day not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleListTechniques(w http.ResponseWriter, r *http.Request) {
	band := r.URL.Query().Get("band")
	if band == "" {
		writeJSON(w, http.StatusOK, s.techniques.Techniques())
		return
	}
	switch technique.FatigueBand(band) {
	case technique.BandLow, technique.BandMedium, technique.BandHigh:
		writeJSON(w, http.StatusOK, s.techniques.ByFatigueBand(technique.FatigueBand(band)))
	default:
		writeError(w, http.StatusBadRequest, "band must be low, medium, or high")
	}
}

func (s *Server) handleGetTechnique(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	t, ok := s.techniques.Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown technique: "+name)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCheckTechnique(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	exerciseType := technique.ExerciseType(r.URL.Query().Get("exercise_type"))
	goal := models.Goal(r.URL.Query().Get("goal"))

	if !exerciseType.Valid() {
		writeError(w, http.StatusBadRequest, "exercise_type must be compound or isolation")
		return
	}
	if !goal.Valid() {
		writeError(w, http.StatusBadRequest, "invalid goal")
		return
	}

	advice, err := s.techniques.Check(name, exerciseType, goal)
	if err != nil {
		if errors.Is(err, technique.ErrUnknownTechnique) {
			writeError(w, http.StatusNotFound, "unknown technique: "+name)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, advice)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
