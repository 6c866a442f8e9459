package mcp

import (
	"context"
	"errors"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/program"
	"github.com/claude/liftplan/internal/storage"
	"github.com/claude/liftplan/internal/technique"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListArchetypes = mcp.NewTool("list_archetypes",
	mcp.WithDescription("List all program archetypes available for generation: name, goal, level, split, day count, and deload availability."),
)

var toolPreviewProgram = mcp.NewTool("preview_program",
	mcp.WithDescription("Generate a full workout program from an archetype without saving it. Returns the complete day-by-day, set-by-set program document."),
	mcp.WithString("archetype", mcp.Required(), mcp.Description("Archetype name (e.g. pure_bodybuilding_ppl)")),
	mcp.WithBoolean("deload", mcp.Description("Preview the reduced-intensity deload variant instead of the main program")),
)

var toolGetActiveProgram = mcp.NewTool("get_active_program",
	mcp.WithDescription("Get the user's currently active stored program, including all days and sets."),
	mcp.WithString("owner", mcp.Required(), mcp.Description("Owner/user id")),
)

var toolListPrograms = mcp.NewTool("list_programs",
	mcp.WithDescription("List the user's stored programs: name, goal, level, split, frequency, and which one is active."),
	mcp.WithString("owner", mcp.Required(), mcp.Description("Owner/user id")),
)

var toolGetDay = mcp.NewTool("get_day",
	mcp.WithDescription("Fetch a single stored training day by id, with its full exercise set list."),
	mcp.WithString("day_id", mcp.Required(), mcp.Description("Day UUID")),
)

var toolListTechniques = mcp.NewTool("list_techniques",
	mcp.WithDescription("List advanced training techniques with applicability rules, fatigue impact (1-10), and recovery requirement (1-10)."),
	mcp.WithString("band", mcp.Description("Filter by fatigue band"), mcp.Enum("low", "medium", "high")),
)

var toolCheckTechnique = mcp.NewTool("check_technique",
	mcp.WithDescription("Check whether an advanced technique suits an exercise-type/goal pairing. The verdict is advisory: an unsuitable pairing returns a warning, not a prohibition."),
	mcp.WithString("technique", mcp.Required(), mcp.Description("Technique name (e.g. rest_pause or Rest-Pause)")),
	mcp.WithString("exercise_type", mcp.Required(), mcp.Description("Exercise classification"), mcp.Enum("compound", "isolation")),
	mcp.WithString("goal", mcp.Required(), mcp.Description("Training goal"), mcp.Enum("strength", "hypertrophy", "endurance", "weight_loss", "general_fitness")),
)

// --- Tool handlers ---

func (h *handlers) listArchetypes(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.composer.Registry().Archetypes())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) previewProgram(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	archetype, err := req.RequireString("archetype")
	if err != nil {
		return mcp.NewToolResultError("archetype parameter is required"), nil
	}

	// Previews are throwaway value graphs, not stored per user.
	var p models.WorkoutProgram
	if req.GetBool("deload", false) {
		p, err = h.composer.BuildDeloadVariant(archetype, "preview")
	} else {
		p, err = h.composer.Build(archetype, "preview")
	}
	if err != nil {
		if errors.Is(err, program.ErrUnknownArchetype) || errors.Is(err, program.ErrNoDeloadVariant) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		h.log.Error("mcp preview_program", "archetype", archetype, "error", err)
		return mcp.NewToolResultError("program generation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(p)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getActiveProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, err := req.RequireString("owner")
	if err != nil {
		return mcp.NewToolResultError("owner parameter is required"), nil
	}

	p, err := h.ds.GetActiveProgram(ctx, owner)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return mcp.NewToolResultError("no active program for owner " + owner), nil
		}
		h.log.Error("mcp get_active_program", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(p)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listPrograms(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, err := req.RequireString("owner")
	if err != nil {
		return mcp.NewToolResultError("owner parameter is required"), nil
	}

	summaries, err := h.ds.ListPrograms(ctx, owner)
	if err != nil {
		h.log.Error("mcp list_programs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(summaries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("day_id")
	if err != nil {
		return mcp.NewToolResultError("day_id parameter is required"), nil
	}
	dayID, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("day_id must be a UUID"), nil
	}

	day, err := h.ds.GetDay(ctx, dayID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return mcp.NewToolResultError("day not found"), nil
		}
		h.log.Error("mcp get_day", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(day)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listTechniques(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	band := req.GetString("band", "")

	var techs []technique.AdvancedTechnique
	switch technique.FatigueBand(band) {
	case technique.BandLow, technique.BandMedium, technique.BandHigh:
		techs = h.techniques.ByFatigueBand(technique.FatigueBand(band))
	default:
		if band != "" {
			return mcp.NewToolResultError("band must be low, medium, or high"), nil
		}
		techs = h.techniques.Techniques()
	}

	result, err := mcp.NewToolResultJSON(techs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) checkTechnique(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("technique")
	if err != nil {
		return mcp.NewToolResultError("technique parameter is required"), nil
	}
	exerciseType := technique.ExerciseType(req.GetString("exercise_type", ""))
	if !exerciseType.Valid() {
		return mcp.NewToolResultError("exercise_type must be compound or isolation"), nil
	}
	goal := models.Goal(req.GetString("goal", ""))
	if !goal.Valid() {
		return mcp.NewToolResultError("goal is invalid"), nil
	}

	advice, err := h.techniques.Check(name, exerciseType, goal)
	if err != nil {
		if errors.Is(err, technique.ErrUnknownTechnique) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError("check failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(advice)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
