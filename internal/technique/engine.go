// Package technique answers whether an advanced training technique suits a
// given exercise-type/goal pairing. The rule table is static reference data
// loaded once at startup; the engine is advisory — it warns, it never blocks.
package technique

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/claude/liftplan/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/techniques.yaml
var embeddedTable embed.FS

var ErrUnknownTechnique = errors.New("unknown technique")

// ExerciseType classifies an exercise for applicability rules.
type ExerciseType string

const (
	ExerciseCompound  ExerciseType = "compound"
	ExerciseIsolation ExerciseType = "isolation"
)

// Valid reports whether t is a known exercise type.
func (t ExerciseType) Valid() bool {
	return t == ExerciseCompound || t == ExerciseIsolation
}

// AdvancedTechnique is one rule-table entry. Entries are read-only reference
// data, never persisted per user.
type AdvancedTechnique struct {
	Key                     string         `yaml:"key" json:"key"`
	Name                    string         `yaml:"name" json:"name"`
	Description             string         `yaml:"description" json:"description"`
	ApplicableGoals         []models.Goal  `yaml:"applicable_goals" json:"applicable_goals"`
	ApplicableExerciseTypes []ExerciseType `yaml:"applicable_exercise_types" json:"applicable_exercise_types"`
	FatigueImpact           int            `yaml:"fatigue_impact" json:"fatigue_impact"`
	RecoveryRequirement     int            `yaml:"recovery_requirement" json:"recovery_requirement"`
}

// Advice is the advisory payload for a technique/exercise/goal pairing. The
// caller renders the warning and may force-select anyway; nothing here is a
// hard gate.
type Advice struct {
	Technique  AdvancedTechnique `json:"technique"`
	Applicable bool              `json:"applicable"`
	Warning    string            `json:"warning,omitempty"`
}

// FatigueBand groups techniques by fatigue impact for display.
type FatigueBand string

const (
	BandLow    FatigueBand = "low"    // impact <= 5
	BandMedium FatigueBand = "medium" // impact 6-7
	BandHigh   FatigueBand = "high"   // impact >= 8
)

// BandOf maps a fatigue impact score to its band.
func BandOf(impact int) FatigueBand {
	switch {
	case impact <= 5:
		return BandLow
	case impact <= 7:
		return BandMedium
	default:
		return BandHigh
	}
}

// Engine holds the loaded rule table. Read-only after construction, safe for
// concurrent use.
type Engine struct {
	table map[string]AdvancedTechnique
}

type tableFile struct {
	Techniques []AdvancedTechnique `yaml:"techniques"`
}

// LoadEngine parses and validates a rule table from the given filesystem.
func LoadEngine(fsys fs.FS) (*Engine, error) {
	data, err := fs.ReadFile(fsys, "data/techniques.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading technique table: %w", err)
	}
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing technique table: %w", err)
	}
	if len(file.Techniques) == 0 {
		return nil, errors.New("technique table is empty")
	}

	e := &Engine{table: make(map[string]AdvancedTechnique, len(file.Techniques))}
	for _, t := range file.Techniques {
		if err := t.validate(); err != nil {
			return nil, err
		}
		if _, dup := e.table[t.Key]; dup {
			return nil, fmt.Errorf("duplicate technique key %q", t.Key)
		}
		e.table[t.Key] = t
	}
	return e, nil
}

// DefaultEngine loads the rule table shipped with the binary.
func DefaultEngine() (*Engine, error) {
	return LoadEngine(embeddedTable)
}

func (t AdvancedTechnique) validate() error {
	if t.Key == "" || t.Name == "" {
		return fmt.Errorf("technique %q/%q: key and name are required", t.Key, t.Name)
	}
	if t.Key != normalize(t.Key) {
		return fmt.Errorf("technique %q: key must be normalized (lowercase, underscores)", t.Key)
	}
	if t.FatigueImpact < 1 || t.FatigueImpact > 10 {
		return fmt.Errorf("technique %q: fatigue impact %d out of range 1-10", t.Key, t.FatigueImpact)
	}
	if t.RecoveryRequirement < 1 || t.RecoveryRequirement > 10 {
		return fmt.Errorf("technique %q: recovery requirement %d out of range 1-10", t.Key, t.RecoveryRequirement)
	}
	if len(t.ApplicableGoals) == 0 || len(t.ApplicableExerciseTypes) == 0 {
		return fmt.Errorf("technique %q: applicability sets must be non-empty", t.Key)
	}
	for _, g := range t.ApplicableGoals {
		if !g.Valid() {
			return fmt.Errorf("technique %q: invalid goal %q", t.Key, g)
		}
	}
	for _, et := range t.ApplicableExerciseTypes {
		if !et.Valid() {
			return fmt.Errorf("technique %q: invalid exercise type %q", t.Key, et)
		}
	}
	return nil
}

// normalize maps display spellings onto table keys: "Rest-Pause" and
// "rest pause" both resolve to "rest_pause".
func normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// Lookup finds a technique by key or display name.
func (e *Engine) Lookup(name string) (AdvancedTechnique, bool) {
	t, ok := e.table[normalize(name)]
	return t, ok
}

// Techniques lists the full table sorted by key.
func (e *Engine) Techniques() []AdvancedTechnique {
	out := make([]AdvancedTechnique, 0, len(e.table))
	for _, t := range e.table {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// IsApplicable reports whether the named technique suits the exercise-type/
// goal pairing. Unknown techniques are never applicable; the distinct
// ErrUnknownTechnique lets the caller tell "unknown" apart from "known but
// unsuitable".
func (e *Engine) IsApplicable(name string, exerciseType ExerciseType, goal models.Goal) (bool, error) {
	t, ok := e.Lookup(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownTechnique, name)
	}
	return contains(t.ApplicableExerciseTypes, exerciseType) && contains(t.ApplicableGoals, goal), nil
}

// Check returns the advisory payload for a pairing: the full record, the
// applicability verdict, and warning text when the pairing is unsuitable.
func (e *Engine) Check(name string, exerciseType ExerciseType, goal models.Goal) (Advice, error) {
	t, ok := e.Lookup(name)
	if !ok {
		return Advice{}, fmt.Errorf("%w: %q", ErrUnknownTechnique, name)
	}

	advice := Advice{Technique: t}
	typeOK := contains(t.ApplicableExerciseTypes, exerciseType)
	goalOK := contains(t.ApplicableGoals, goal)
	advice.Applicable = typeOK && goalOK

	switch {
	case !typeOK && !goalOK:
		advice.Warning = fmt.Sprintf("%s is not recommended for %s exercises or %s training", t.Name, exerciseType, goal)
	case !typeOK:
		advice.Warning = fmt.Sprintf("%s is not recommended for %s exercises", t.Name, exerciseType)
	case !goalOK:
		advice.Warning = fmt.Sprintf("%s is not recommended for %s training", t.Name, goal)
	}
	return advice, nil
}

// ByFatigueBand filters the table to techniques in the given band, sorted by
// key.
func (e *Engine) ByFatigueBand(band FatigueBand) []AdvancedTechnique {
	var out []AdvancedTechnique
	for _, t := range e.Techniques() {
		if BandOf(t.FatigueImpact) == band {
			out = append(out, t)
		}
	}
	return out
}

// Bands partitions the whole table by fatigue band.
func (e *Engine) Bands() map[FatigueBand][]AdvancedTechnique {
	out := make(map[FatigueBand][]AdvancedTechnique, 3)
	for _, t := range e.Techniques() {
		band := BandOf(t.FatigueImpact)
		out[band] = append(out[band], t)
	}
	return out
}

func contains[T comparable](xs []T, x T) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
