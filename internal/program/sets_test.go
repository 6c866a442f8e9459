package program

import (
	"errors"
	"testing"

	"github.com/claude/liftplan/internal/models"
)

// TestBuildSetsCount verifies BuildSets returns exactly SetCount specs for a
// range of counts.
func TestBuildSetsCount(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 10} {
		sets, err := BuildSets(SetPlan{ExerciseID: "bench-press", TargetReps: 8, TargetRIR: 2, SetCount: n})
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(sets) != n {
			t.Errorf("n=%d: got %d sets", n, len(sets))
		}
	}
}

// TestBuildSetsSharedFields verifies every spec in the group shares exercise,
// reps, RIR, rest, and alternative.
func TestBuildSetsSharedFields(t *testing.T) {
	sets, err := BuildSets(SetPlan{
		ExerciseID:            "bench-press",
		AlternativeExerciseID: "dumbbell-bench-press",
		TargetReps:            8,
		TargetRIR:             2,
		SetCount:              4,
		RestSeconds:           180,
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range sets {
		if s.ExerciseID != "bench-press" || s.AlternativeExerciseID != "dumbbell-bench-press" {
			t.Errorf("set %d: exercise = %q/%q", i, s.ExerciseID, s.AlternativeExerciseID)
		}
		if s.TargetReps != 8 || s.TargetRIR != 2 || s.RestSeconds != 180 {
			t.Errorf("set %d: reps/rir/rest = %d/%d/%d", i, s.TargetReps, s.TargetRIR, s.RestSeconds)
		}
	}
}

// TestBuildSetsWarmupAndNotesPlacement verifies the warmup flag and notes land
// on the first set only.
func TestBuildSetsWarmupAndNotesPlacement(t *testing.T) {
	sets, err := BuildSets(SetPlan{
		ExerciseID: "squat", TargetReps: 5, TargetRIR: 2, SetCount: 4,
		WarmupFirst: true, Notes: "ramp up slowly",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !sets[0].IsWarmup || sets[0].Notes != "ramp up slowly" {
		t.Errorf("first set warmup/notes = %v/%q", sets[0].IsWarmup, sets[0].Notes)
	}
	for i, s := range sets[1:] {
		if s.IsWarmup || s.Notes != "" {
			t.Errorf("set %d: warmup/notes leaked", i+1)
		}
	}
}

// TestBuildSetsNoWarmupUnlessRequested verifies no set is marked warmup when
// WarmupFirst is false.
func TestBuildSetsNoWarmupUnlessRequested(t *testing.T) {
	sets, err := BuildSets(SetPlan{ExerciseID: "squat", TargetReps: 5, TargetRIR: 2, SetCount: 3})
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range sets {
		if s.IsWarmup {
			t.Errorf("set %d marked warmup", i)
		}
	}
}

// TestBuildSetsTechniquePlacement verifies exactly the last set carries the
// requested technique flag and all others carry none.
func TestBuildSetsTechniquePlacement(t *testing.T) {
	sets, err := BuildSets(SetPlan{
		ExerciseID: "lateral-raise", TargetReps: 15, TargetRIR: 1, SetCount: 3,
		Technique: models.TechniqueDropSet,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := sets[len(sets)-1].Technique; got != models.TechniqueDropSet {
		t.Errorf("last set technique = %q, want drop_set", got)
	}
	for i, s := range sets[:len(sets)-1] {
		if s.Technique != models.TechniqueNone {
			t.Errorf("set %d technique = %q, want none", i, s.Technique)
		}
	}
}

// TestBuildSetsSingleSetTechnique verifies a one-set group puts the technique
// on its only set.
func TestBuildSetsSingleSetTechnique(t *testing.T) {
	sets, err := BuildSets(SetPlan{
		ExerciseID: "curl", TargetReps: 12, TargetRIR: 0, SetCount: 1,
		Technique: models.TechniqueRestPause,
	})
	if err != nil {
		t.Fatal(err)
	}
	if sets[0].Technique != models.TechniqueRestPause {
		t.Errorf("technique = %q, want rest_pause", sets[0].Technique)
	}
}

// TestBuildSetsDefaultRest verifies unspecified rest defaults to 90 seconds.
func TestBuildSetsDefaultRest(t *testing.T) {
	sets, err := BuildSets(SetPlan{ExerciseID: "curl", TargetReps: 12, TargetRIR: 1, SetCount: 2})
	if err != nil {
		t.Fatal(err)
	}
	if sets[0].RestSeconds != DefaultRestSeconds {
		t.Errorf("rest = %d, want %d", sets[0].RestSeconds, DefaultRestSeconds)
	}
}

// TestBuildSetsInvalidInput verifies degenerate set counts, non-positive reps,
// negative RIR, and unknown techniques are rejected with ErrInvalidSetPlan.
func TestBuildSetsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		plan SetPlan
	}{
		{"zero sets", SetPlan{ExerciseID: "x", TargetReps: 8, TargetRIR: 2, SetCount: 0}},
		{"negative sets", SetPlan{ExerciseID: "x", TargetReps: 8, TargetRIR: 2, SetCount: -1}},
		{"zero reps", SetPlan{ExerciseID: "x", TargetReps: 0, TargetRIR: 2, SetCount: 3}},
		{"negative rir", SetPlan{ExerciseID: "x", TargetReps: 8, TargetRIR: -1, SetCount: 3}},
		{"negative rest", SetPlan{ExerciseID: "x", TargetReps: 8, TargetRIR: 2, SetCount: 3, RestSeconds: -5}},
		{"missing exercise", SetPlan{TargetReps: 8, TargetRIR: 2, SetCount: 3}},
		{"unknown technique", SetPlan{ExerciseID: "x", TargetReps: 8, TargetRIR: 2, SetCount: 3, Technique: "giant_set"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BuildSets(tc.plan); !errors.Is(err, ErrInvalidSetPlan) {
				t.Errorf("error = %v, want ErrInvalidSetPlan", err)
			}
		})
	}
}

// TestBuildSetsUniqueIDs verifies generated set ids are unique within and
// across calls.
func TestBuildSetsUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for range 3 {
		sets, err := BuildSets(SetPlan{ExerciseID: "row", TargetReps: 10, TargetRIR: 2, SetCount: 4})
		if err != nil {
			t.Fatal(err)
		}
		for _, s := range sets {
			if seen[s.ID.String()] {
				t.Fatalf("duplicate set id %s", s.ID)
			}
			seen[s.ID.String()] = true
		}
	}
}
