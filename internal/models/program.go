package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the version tag written into every serialized
// WorkoutProgram document. Bump it when the document shape changes.
const SchemaVersion = 1

var (
	ErrEmptyDay          = errors.New("day has no exercise sets")
	ErrNonContiguousSets = errors.New("sets for the same exercise are not contiguous")
)

// Goal classifies what a program is training for.
type Goal string

const (
	GoalStrength       Goal = "strength"
	GoalHypertrophy    Goal = "hypertrophy"
	GoalEndurance      Goal = "endurance"
	GoalWeightLoss     Goal = "weight_loss"
	GoalGeneralFitness Goal = "general_fitness"
)

// Valid reports whether g is a known goal.
func (g Goal) Valid() bool {
	switch g {
	case GoalStrength, GoalHypertrophy, GoalEndurance, GoalWeightLoss, GoalGeneralFitness:
		return true
	}
	return false
}

// Level is the experience level a program or day targets.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Split is a descriptive classification of how training days divide the body.
// It is a tag, not a structural constraint on the day list.
type Split string

const (
	SplitPushPullLegs Split = "push_pull_legs"
	SplitUpperLower   Split = "upper_lower"
	SplitFullBody     Split = "full_body"
	SplitBroSplit     Split = "bro_split"
)

// Valid reports whether s is a known split.
func (s Split) Valid() bool {
	switch s {
	case SplitPushPullLegs, SplitUpperLower, SplitFullBody, SplitBroSplit:
		return true
	}
	return false
}

// DeloadStrategy names what gets reduced during a deload week.
type DeloadStrategy string

const (
	DeloadVolume    DeloadStrategy = "volume"
	DeloadIntensity DeloadStrategy = "intensity"
	DeloadBoth      DeloadStrategy = "both"
	DeloadFrequency DeloadStrategy = "frequency"
)

// Valid reports whether d is a known deload strategy.
func (d DeloadStrategy) Valid() bool {
	switch d {
	case DeloadVolume, DeloadIntensity, DeloadBoth, DeloadFrequency:
		return true
	}
	return false
}

// ExerciseSetSpec is one planned set of one exercise. Specs are built in
// bulk by program.BuildSets and are immutable once constructed. The ID is
// ephemeral — regenerated on every build, meaningful only for list keying.
type ExerciseSetSpec struct {
	ID                    uuid.UUID     `json:"id"`
	ExerciseID            string        `json:"exercise_id"`
	AlternativeExerciseID string        `json:"alternative_exercise_id,omitempty"`
	TargetReps            int           `json:"target_reps"`
	TargetRIR             int           `json:"target_rir"`
	IsWarmup              bool          `json:"is_warmup"`
	RestSeconds           int           `json:"rest_seconds"`
	Technique             TechniqueFlag `json:"technique"`
	Notes                 string        `json:"notes,omitempty"`
}

// WorkoutDay is a single training session template. ExerciseSets is in
// performance order; sets of the same exercise must stay contiguous because
// warmup and technique flags are interpreted relative to their group.
type WorkoutDay struct {
	ID                       uuid.UUID         `json:"id"`
	Name                     string            `json:"name"`
	Description              string            `json:"description,omitempty"`
	TargetMuscleGroups       []string          `json:"target_muscle_groups"`
	Difficulty               Level             `json:"difficulty"`
	EstimatedDurationMinutes int               `json:"estimated_duration_minutes"`
	ExerciseSets             []ExerciseSetSpec `json:"exercise_sets"`
}

// Validate checks the day's structural invariants: at least one set, a
// non-empty muscle group list, and contiguous same-exercise set groups.
func (d WorkoutDay) Validate() error {
	if len(d.ExerciseSets) == 0 {
		return fmt.Errorf("day %q: %w", d.Name, ErrEmptyDay)
	}
	if len(d.TargetMuscleGroups) == 0 {
		return fmt.Errorf("day %q: no target muscle groups", d.Name)
	}
	if !d.Difficulty.Valid() {
		return fmt.Errorf("day %q: invalid difficulty %q", d.Name, d.Difficulty)
	}
	if d.EstimatedDurationMinutes <= 0 {
		return fmt.Errorf("day %q: estimated duration must be positive", d.Name)
	}

	// An exercise id may only appear in one contiguous run.
	seen := make(map[string]bool)
	var current string
	for _, set := range d.ExerciseSets {
		if set.ExerciseID == current {
			continue
		}
		if seen[set.ExerciseID] {
			return fmt.Errorf("day %q, exercise %q: %w", d.Name, set.ExerciseID, ErrNonContiguousSets)
		}
		seen[set.ExerciseID] = true
		current = set.ExerciseID
	}
	return nil
}

// WorkoutProgram is the top-level generated artifact: an ordered rotation of
// day templates plus periodization metadata. Programs are value objects —
// built whole by the composer, stored whole by the gateway. A deload variant
// is a sibling program with its own day list, never a mutation of the
// original.
type WorkoutProgram struct {
	SchemaVersion        int            `json:"schema_version"`
	ID                   uuid.UUID      `json:"id"`
	OwnerID              string         `json:"owner_id"`
	Name                 string         `json:"name"`
	Description          string         `json:"description,omitempty"`
	Tags                 []string       `json:"tags,omitempty"`
	Days                 []WorkoutDay   `json:"days"`
	Frequency            int            `json:"frequency"`
	Goal                 Goal           `json:"goal"`
	Level                Level          `json:"level"`
	IncludesDeload       bool           `json:"includes_deload"`
	DeloadFrequencyWeeks int            `json:"deload_frequency_weeks,omitempty"`
	DeloadStrategy       DeloadStrategy `json:"deload_strategy,omitempty"`
	Split                Split          `json:"split"`
	IsActive             bool           `json:"is_active"`
	CreatedAt            time.Time      `json:"created_at"`
}

// Validate checks the program's structural invariants, including that
// frequency matches the day count and that deload metadata is present
// exactly when IncludesDeload is set.
func (p WorkoutProgram) Validate() error {
	if p.OwnerID == "" {
		return fmt.Errorf("program %q: owner id is required", p.Name)
	}
	if len(p.Days) == 0 {
		return fmt.Errorf("program %q: no days", p.Name)
	}
	if p.Frequency != len(p.Days) {
		return fmt.Errorf("program %q: frequency %d does not match day count %d",
			p.Name, p.Frequency, len(p.Days))
	}
	if !p.Goal.Valid() {
		return fmt.Errorf("program %q: invalid goal %q", p.Name, p.Goal)
	}
	if !p.Level.Valid() {
		return fmt.Errorf("program %q: invalid level %q", p.Name, p.Level)
	}
	if !p.Split.Valid() {
		return fmt.Errorf("program %q: invalid split %q", p.Name, p.Split)
	}
	if p.IncludesDeload {
		if p.DeloadFrequencyWeeks <= 0 {
			return fmt.Errorf("program %q: deload frequency must be positive", p.Name)
		}
		if !p.DeloadStrategy.Valid() {
			return fmt.Errorf("program %q: invalid deload strategy %q", p.Name, p.DeloadStrategy)
		}
	} else if p.DeloadFrequencyWeeks != 0 || p.DeloadStrategy != "" {
		return fmt.Errorf("program %q: deload metadata set without includes_deload", p.Name)
	}
	for _, d := range p.Days {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("program %q: %w", p.Name, err)
		}
	}
	return nil
}

// ProgramSummary is the listing row for a stored program — metadata without
// the day documents.
type ProgramSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Goal      Goal      `json:"goal"`
	Level     Level     `json:"level"`
	Split     Split     `json:"split"`
	Frequency int       `json:"frequency"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
