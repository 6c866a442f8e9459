package localstore

import (
	"context"
	"errors"
	"testing"

	"github.com/claude/liftplan/internal/program"
	"github.com/claude/liftplan/internal/storage"
	"github.com/google/uuid"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestSaveAndGetRoundTrip verifies a generated program survives a store
// round trip with its full day/set structure.
func TestSaveAndGetRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	reg, err := program.DefaultRegistry()
	if err != nil {
		t.Fatal(err)
	}
	p, err := program.NewComposer(reg).Build("pure_bodybuilding_ppl", "u1")
	if err != nil {
		t.Fatal(err)
	}

	id, err := s.SaveProgram(ctx, p)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id != p.ID {
		t.Errorf("saved id = %s, want %s", id, p.ID)
	}

	got, err := s.GetProgram(ctx, id, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != p.Name || len(got.Days) != len(p.Days) || got.Frequency != p.Frequency {
		t.Errorf("round trip: name=%q days=%d freq=%d", got.Name, len(got.Days), got.Frequency)
	}
	if len(got.Days[0].ExerciseSets) != len(p.Days[0].ExerciseSets) {
		t.Error("set structure not preserved")
	}
}

// TestGetProgramWrongOwner verifies owner scoping on reads.
func TestGetProgramWrongOwner(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	reg, _ := program.DefaultRegistry()
	p, err := program.NewComposer(reg).Build("upper_lower_strength", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveProgram(ctx, p); err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetProgram(ctx, p.ID, "someone-else"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// TestActivateProgram verifies activation swaps the single active program:
// activating a second program deactivates the first in the same transaction.
func TestActivateProgram(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	reg, _ := program.DefaultRegistry()
	c := program.NewComposer(reg)

	p1, err := c.Build("pure_bodybuilding_ppl", "u1")
	if err != nil {
		t.Fatal(err)
	}
	p2, err := c.Build("upper_lower_strength", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveProgram(ctx, p1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveProgram(ctx, p2); err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetActiveProgram(ctx, "u1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("before activation: error = %v, want ErrNotFound", err)
	}

	if err := s.ActivateProgram(ctx, p1.ID, "u1"); err != nil {
		t.Fatalf("activate p1: %v", err)
	}
	active, err := s.GetActiveProgram(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if active.ID != p1.ID || !active.IsActive {
		t.Errorf("active = %s (active=%v), want %s", active.ID, active.IsActive, p1.ID)
	}

	if err := s.ActivateProgram(ctx, p2.ID, "u1"); err != nil {
		t.Fatalf("activate p2: %v", err)
	}
	active, err = s.GetActiveProgram(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if active.ID != p2.ID {
		t.Errorf("active = %s, want %s", active.ID, p2.ID)
	}

	summaries, err := s.ListPrograms(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	activeCount := 0
	for _, sum := range summaries {
		if sum.IsActive {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Errorf("active programs = %d, want exactly 1", activeCount)
	}
}

// TestActivateUnknownProgram verifies activating a missing id is ErrNotFound
// and leaves the current active program untouched.
func TestActivateUnknownProgram(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.ActivateProgram(ctx, uuid.New(), "u1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// TestDeleteProgram verifies deletion removes the program and its day rows.
func TestDeleteProgram(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	reg, _ := program.DefaultRegistry()
	p, err := program.NewComposer(reg).Build("upper_lower_strength", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveProgram(ctx, p); err != nil {
		t.Fatal(err)
	}

	dayID := p.Days[0].ID
	if _, err := s.GetDay(ctx, dayID); err != nil {
		t.Fatalf("day lookup before delete: %v", err)
	}

	if err := s.DeleteProgram(ctx, p.ID, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetProgram(ctx, p.ID, "u1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("program after delete: error = %v, want ErrNotFound", err)
	}
	if _, err := s.GetDay(ctx, dayID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("day after delete: error = %v, want ErrNotFound", err)
	}
}

// TestGetDay verifies a stored day is fetchable by id with its sets intact.
func TestGetDay(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	reg, _ := program.DefaultRegistry()
	p, err := program.NewComposer(reg).Build("pure_bodybuilding_ppl", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveProgram(ctx, p); err != nil {
		t.Fatal(err)
	}

	day, err := s.GetDay(ctx, p.Days[2].ID)
	if err != nil {
		t.Fatal(err)
	}
	if day.Name != p.Days[2].Name || len(day.ExerciseSets) != len(p.Days[2].ExerciseSets) {
		t.Errorf("day = %q with %d sets", day.Name, len(day.ExerciseSets))
	}
}
