// Package program turns named archetype definitions into complete workout
// programs. Construction is pure in-memory composition: no I/O, no shared
// state, safe to call from concurrent requests.
package program

import (
	"errors"
	"fmt"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
)

// DefaultRestSeconds is used when a set plan does not specify rest.
const DefaultRestSeconds = 90

var ErrInvalidSetPlan = errors.New("invalid set plan")

// SetPlan is the parameter tuple BuildSets expands into individual set specs.
type SetPlan struct {
	ExerciseID            string
	AlternativeExerciseID string
	TargetReps            int
	TargetRIR             int
	SetCount              int
	RestSeconds           int // 0 means DefaultRestSeconds
	WarmupFirst           bool
	Notes                 string
	Technique             models.TechniqueFlag // applied to the last set only
}

// BuildSets expands a plan into exactly SetCount specs. The warmup flag and
// notes land on the first set only, the technique flag on the last set only;
// everything else is shared across the group. A plan with SetCount < 1 is
// rejected rather than treated as an empty group.
func BuildSets(plan SetPlan) ([]models.ExerciseSetSpec, error) {
	if plan.ExerciseID == "" {
		return nil, fmt.Errorf("%w: exercise id is required", ErrInvalidSetPlan)
	}
	if plan.SetCount < 1 {
		return nil, fmt.Errorf("%w: set count %d, want >= 1", ErrInvalidSetPlan, plan.SetCount)
	}
	if plan.TargetReps <= 0 {
		return nil, fmt.Errorf("%w: target reps %d, want > 0", ErrInvalidSetPlan, plan.TargetReps)
	}
	if plan.TargetRIR < 0 {
		return nil, fmt.Errorf("%w: target RIR %d, want >= 0", ErrInvalidSetPlan, plan.TargetRIR)
	}
	rest := plan.RestSeconds
	if rest == 0 {
		rest = DefaultRestSeconds
	}
	if rest < 0 {
		return nil, fmt.Errorf("%w: rest seconds %d, want > 0", ErrInvalidSetPlan, plan.RestSeconds)
	}
	technique := plan.Technique
	if technique == "" {
		technique = models.TechniqueNone
	}
	if !technique.Valid() {
		return nil, fmt.Errorf("%w: unknown technique flag %q", ErrInvalidSetPlan, plan.Technique)
	}

	sets := make([]models.ExerciseSetSpec, plan.SetCount)
	for i := range sets {
		sets[i] = models.ExerciseSetSpec{
			ID:                    uuid.New(),
			ExerciseID:            plan.ExerciseID,
			AlternativeExerciseID: plan.AlternativeExerciseID,
			TargetReps:            plan.TargetReps,
			TargetRIR:             plan.TargetRIR,
			RestSeconds:           rest,
			Technique:             models.TechniqueNone,
		}
	}
	if plan.WarmupFirst {
		sets[0].IsWarmup = true
	}
	sets[0].Notes = plan.Notes
	sets[len(sets)-1].Technique = technique

	return sets, nil
}
