package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func validDay() WorkoutDay {
	return WorkoutDay{
		ID:                       uuid.New(),
		Name:                     "Push A",
		TargetMuscleGroups:       []string{"chest", "shoulders", "triceps"},
		Difficulty:               LevelIntermediate,
		EstimatedDurationMinutes: 75,
		ExerciseSets: []ExerciseSetSpec{
			{ID: uuid.New(), ExerciseID: "bench-press", TargetReps: 8, TargetRIR: 2, RestSeconds: 180, Technique: TechniqueNone},
			{ID: uuid.New(), ExerciseID: "bench-press", TargetReps: 8, TargetRIR: 2, RestSeconds: 180, Technique: TechniqueNone},
			{ID: uuid.New(), ExerciseID: "lateral-raise", TargetReps: 15, TargetRIR: 1, RestSeconds: 90, Technique: TechniqueDropSet},
		},
	}
}

func validProgram() WorkoutProgram {
	return WorkoutProgram{
		SchemaVersion:        SchemaVersion,
		ID:                   uuid.New(),
		OwnerID:              "u1",
		Name:                 "Test Program",
		Days:                 []WorkoutDay{validDay()},
		Frequency:            1,
		Goal:                 GoalHypertrophy,
		Level:                LevelIntermediate,
		IncludesDeload:       true,
		DeloadFrequencyWeeks: 5,
		DeloadStrategy:       DeloadBoth,
		Split:                SplitPushPullLegs,
		CreatedAt:            time.Now().UTC().Truncate(time.Second),
	}
}

// TestDayValidate verifies a well-formed day passes validation.
func TestDayValidate(t *testing.T) {
	if err := validDay().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestDayValidateEmpty verifies a day with zero sets is rejected as degenerate.
func TestDayValidateEmpty(t *testing.T) {
	d := validDay()
	d.ExerciseSets = nil
	if err := d.Validate(); !errors.Is(err, ErrEmptyDay) {
		t.Errorf("error = %v, want ErrEmptyDay", err)
	}
}

// TestDayValidateInterleaved verifies that splitting an exercise's sets around
// another exercise violates the contiguity invariant.
func TestDayValidateInterleaved(t *testing.T) {
	d := validDay()
	d.ExerciseSets = append(d.ExerciseSets, ExerciseSetSpec{
		ID: uuid.New(), ExerciseID: "bench-press", TargetReps: 8, TargetRIR: 2, RestSeconds: 180, Technique: TechniqueNone,
	})
	if err := d.Validate(); !errors.Is(err, ErrNonContiguousSets) {
		t.Errorf("error = %v, want ErrNonContiguousSets", err)
	}
}

// TestProgramValidate verifies a well-formed program passes validation.
func TestProgramValidate(t *testing.T) {
	if err := validProgram().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestProgramFrequencyMismatch verifies frequency must equal the day count.
func TestProgramFrequencyMismatch(t *testing.T) {
	p := validProgram()
	p.Frequency = 3
	if err := p.Validate(); err == nil {
		t.Error("expected error for frequency != len(days)")
	}
}

// TestProgramDeloadMetadata verifies deload fields are required iff
// IncludesDeload is set.
func TestProgramDeloadMetadata(t *testing.T) {
	p := validProgram()
	p.DeloadFrequencyWeeks = 0
	if err := p.Validate(); err == nil {
		t.Error("expected error for missing deload frequency")
	}

	p = validProgram()
	p.IncludesDeload = false
	if err := p.Validate(); err == nil {
		t.Error("expected error for deload metadata without includes_deload")
	}

	p = validProgram()
	p.IncludesDeload = false
	p.DeloadFrequencyWeeks = 0
	p.DeloadStrategy = ""
	if err := p.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestTechniqueFlagJSON verifies flags marshal to their string values and
// unknown strings are rejected on unmarshal.
func TestTechniqueFlagJSON(t *testing.T) {
	for _, flag := range []TechniqueFlag{TechniqueNone, TechniqueDropSet, TechniqueRestPause, TechniqueMechanicalSet, TechniquePartialReps} {
		data, err := json.Marshal(flag)
		if err != nil {
			t.Fatalf("marshal %q: %v", flag, err)
		}
		var got TechniqueFlag
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != flag {
			t.Errorf("round trip = %q, want %q", got, flag)
		}
	}

	var got TechniqueFlag
	if err := json.Unmarshal([]byte(`"super_set"`), &got); err == nil {
		t.Error("expected error for unknown technique flag")
	}
}

// TestTechniqueFlagZeroValue verifies the zero value serializes as "none".
func TestTechniqueFlagZeroValue(t *testing.T) {
	var flag TechniqueFlag
	data, err := json.Marshal(flag)
	if err != nil {
		t.Fatalf("marshal zero value: %v", err)
	}
	if string(data) != `"none"` {
		t.Errorf("zero value = %s, want \"none\"", data)
	}
}

// TestProgramRoundTrip verifies a program survives JSON encode/decode with
// structural equality on every field.
func TestProgramRoundTrip(t *testing.T) {
	p := validProgram()
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got WorkoutProgram
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	again, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if string(data) != string(again) {
		t.Errorf("round trip mismatch:\n %s\n %s", data, again)
	}
	if got.SchemaVersion != SchemaVersion {
		t.Errorf("schema_version = %d, want %d", got.SchemaVersion, SchemaVersion)
	}
	if len(got.Days) != len(p.Days) || len(got.Days[0].ExerciseSets) != len(p.Days[0].ExerciseSets) {
		t.Error("day/set structure not preserved")
	}
}
