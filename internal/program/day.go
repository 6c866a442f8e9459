package program

import (
	"fmt"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
)

// DayPlan carries one day's metadata plus its exercise set plans in
// performance order. Muscle groups are curator-specified in the archetype
// data rather than derived from an exercise catalog.
type DayPlan struct {
	Name            string
	Description     string
	MuscleGroups    []string
	Difficulty      models.Level
	DurationMinutes int
	Exercises       []SetPlan
}

// BuildDay expands each exercise plan and concatenates the resulting set
// groups in the order given. It never reorders, so the contiguity invariant
// holds by construction; the final Validate guards against degenerate days.
func BuildDay(plan DayPlan) (models.WorkoutDay, error) {
	day := models.WorkoutDay{
		ID:                       uuid.New(),
		Name:                     plan.Name,
		Description:              plan.Description,
		TargetMuscleGroups:       plan.MuscleGroups,
		Difficulty:               plan.Difficulty,
		EstimatedDurationMinutes: plan.DurationMinutes,
	}

	for _, ex := range plan.Exercises {
		sets, err := BuildSets(ex)
		if err != nil {
			return models.WorkoutDay{}, fmt.Errorf("day %q, exercise %q: %w", plan.Name, ex.ExerciseID, err)
		}
		day.ExerciseSets = append(day.ExerciseSets, sets...)
	}

	if err := day.Validate(); err != nil {
		return models.WorkoutDay{}, err
	}
	return day, nil
}
