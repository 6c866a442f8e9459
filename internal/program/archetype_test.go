package program

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

const minimalArchetype = `
name: minimal
display_name: Minimal
description: One-day test archetype.
goal: general_fitness
level: beginner
split: full_body
days:
  - name: Full Body
    muscle_groups: [full_body]
    difficulty: beginner
    duration_minutes: 40
    exercises:
      - exercise: goblet-squat
        sets: 3
        reps: 10
        rir: 2
`

func archetypeFS(docs ...string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for i, doc := range docs {
		name := "archetypes/" + string(rune('a'+i)) + ".yaml"
		fsys[name] = &fstest.MapFile{Data: []byte(doc)}
	}
	return fsys
}

// TestLoadRegistryMinimal verifies a minimal definition loads and builds.
func TestLoadRegistryMinimal(t *testing.T) {
	reg, err := LoadRegistry(archetypeFS(minimalArchetype))
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewComposer(reg).Build("minimal", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Frequency != 1 || len(p.Days) != 1 {
		t.Errorf("frequency/days = %d/%d, want 1/1", p.Frequency, len(p.Days))
	}
	if p.IncludesDeload {
		t.Error("minimal archetype should not include a deload")
	}
}

// TestDeloadVariantMissing verifies an archetype without a deload section
// yields ErrNoDeloadVariant.
func TestDeloadVariantMissing(t *testing.T) {
	reg, err := LoadRegistry(archetypeFS(minimalArchetype))
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewComposer(reg).BuildDeloadVariant("minimal", "u1")
	if !errors.Is(err, ErrNoDeloadVariant) {
		t.Errorf("error = %v, want ErrNoDeloadVariant", err)
	}
}

// TestLoadRegistryRejectsBadData verifies definition validation: bad enums,
// empty day lists, bad prescriptions, unknown techniques, and duplicates.
func TestLoadRegistryRejectsBadData(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{"bad goal", func(s string) string { return strings.Replace(s, "goal: general_fitness", "goal: shredding", 1) }, "invalid goal"},
		{"bad split", func(s string) string { return strings.Replace(s, "split: full_body", "split: arnold", 1) }, "invalid split"},
		{"zero sets", func(s string) string { return strings.Replace(s, "sets: 3", "sets: 0", 1) }, "bad set prescription"},
		{"zero reps", func(s string) string { return strings.Replace(s, "reps: 10", "reps: 0", 1) }, "bad set prescription"},
		{"unknown technique", func(s string) string { return strings.Replace(s, "rir: 2", "rir: 2\n        technique: giant_set", 1) }, "unknown technique"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadRegistry(archetypeFS(tc.mutate(minimalArchetype)))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

// TestLoadRegistryDuplicateName verifies two files declaring the same
// archetype name are rejected.
func TestLoadRegistryDuplicateName(t *testing.T) {
	_, err := LoadRegistry(archetypeFS(minimalArchetype, minimalArchetype))
	if err == nil || !strings.Contains(err.Error(), "duplicate archetype name") {
		t.Errorf("error = %v, want duplicate name error", err)
	}
}

// TestLoadRegistryEmpty verifies a filesystem with no definitions is an error.
func TestLoadRegistryEmpty(t *testing.T) {
	if _, err := LoadRegistry(fstest.MapFS{}); err == nil {
		t.Error("expected error for empty archetype filesystem")
	}
}

// TestEmbeddedArchetypesValid verifies every shipped definition passes
// validation at load.
func TestEmbeddedArchetypesValid(t *testing.T) {
	if _, err := DefaultRegistry(); err != nil {
		t.Fatalf("embedded archetypes invalid: %v", err)
	}
}
