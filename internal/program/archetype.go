package program

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sort"

	"github.com/claude/liftplan/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed archetypes/*.yaml
var embeddedArchetypes embed.FS

var ErrUnknownArchetype = errors.New("unknown archetype")

// Archetype is a parsed program definition. Archetypes are data, not code:
// adding one means adding a YAML file, not touching the composer.
type Archetype struct {
	Name        string           `yaml:"name"`
	DisplayName string           `yaml:"display_name"`
	Description string           `yaml:"description"`
	Goal        models.Goal      `yaml:"goal"`
	Level       models.Level     `yaml:"level"`
	Split       models.Split     `yaml:"split"`
	Tags        []string         `yaml:"tags"`
	Days        []archetypeDay   `yaml:"days"`
	Deload      *archetypeDeload `yaml:"deload"`
}

type archetypeDeload struct {
	EveryWeeks int                   `yaml:"every_weeks"`
	Strategy   models.DeloadStrategy `yaml:"strategy"`
	Days       []archetypeDay        `yaml:"days"`
}

type archetypeDay struct {
	Name            string              `yaml:"name"`
	Description     string              `yaml:"description"`
	MuscleGroups    []string            `yaml:"muscle_groups"`
	Difficulty      models.Level        `yaml:"difficulty"`
	DurationMinutes int                 `yaml:"duration_minutes"`
	Exercises       []archetypeExercise `yaml:"exercises"`
}

type archetypeExercise struct {
	Exercise    string               `yaml:"exercise"`
	Alternative string               `yaml:"alternative"`
	Sets        int                  `yaml:"sets"`
	Reps        int                  `yaml:"reps"`
	RIR         int                  `yaml:"rir"`
	RestSeconds int                  `yaml:"rest_seconds"`
	WarmupFirst bool                 `yaml:"warmup_first"`
	Notes       string               `yaml:"notes"`
	Technique   models.TechniqueFlag `yaml:"technique"`
}

// ArchetypeInfo is the listing view of an archetype.
type ArchetypeInfo struct {
	Name           string       `json:"name"`
	DisplayName    string       `json:"display_name"`
	Description    string       `json:"description"`
	Goal           models.Goal  `json:"goal"`
	Level          models.Level `json:"level"`
	Split          models.Split `json:"split"`
	Days           int          `json:"days"`
	IncludesDeload bool         `json:"includes_deload"`
}

// Registry holds parsed archetypes keyed by name. It is populated once at
// startup and read-only afterwards.
type Registry struct {
	archetypes map[string]Archetype
}

// LoadRegistry parses every archetype definition in the given filesystem.
func LoadRegistry(fsys fs.FS) (*Registry, error) {
	entries, err := fs.Glob(fsys, "archetypes/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("globbing archetypes: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("no archetype definitions found")
	}

	r := &Registry{archetypes: make(map[string]Archetype, len(entries))}
	for _, path := range entries {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var a Archetype
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if err := a.validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if _, dup := r.archetypes[a.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate archetype name %q", path, a.Name)
		}
		r.archetypes[a.Name] = a
	}
	return r, nil
}

// DefaultRegistry loads the archetypes shipped with the binary.
func DefaultRegistry() (*Registry, error) {
	return LoadRegistry(embeddedArchetypes)
}

// Get returns the archetype with the given name.
func (r *Registry) Get(name string) (Archetype, error) {
	a, ok := r.archetypes[name]
	if !ok {
		return Archetype{}, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
	}
	return a, nil
}

// Archetypes lists all registered archetypes sorted by name.
func (r *Registry) Archetypes() []ArchetypeInfo {
	infos := make([]ArchetypeInfo, 0, len(r.archetypes))
	for _, a := range r.archetypes {
		infos = append(infos, ArchetypeInfo{
			Name:           a.Name,
			DisplayName:    a.DisplayName,
			Description:    a.Description,
			Goal:           a.Goal,
			Level:          a.Level,
			Split:          a.Split,
			Days:           len(a.Days),
			IncludesDeload: a.Deload != nil,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

func (a Archetype) validate() error {
	if a.Name == "" {
		return errors.New("archetype name is required")
	}
	if !a.Goal.Valid() {
		return fmt.Errorf("archetype %q: invalid goal %q", a.Name, a.Goal)
	}
	if !a.Level.Valid() {
		return fmt.Errorf("archetype %q: invalid level %q", a.Name, a.Level)
	}
	if !a.Split.Valid() {
		return fmt.Errorf("archetype %q: invalid split %q", a.Name, a.Split)
	}
	if len(a.Days) == 0 {
		return fmt.Errorf("archetype %q: no days", a.Name)
	}
	if err := validateDays(a.Name, a.Days); err != nil {
		return err
	}
	if a.Deload != nil {
		if a.Deload.EveryWeeks <= 0 {
			return fmt.Errorf("archetype %q: deload every_weeks must be positive", a.Name)
		}
		if !a.Deload.Strategy.Valid() {
			return fmt.Errorf("archetype %q: invalid deload strategy %q", a.Name, a.Deload.Strategy)
		}
		if len(a.Deload.Days) == 0 {
			return fmt.Errorf("archetype %q: deload section has no days", a.Name)
		}
		if err := validateDays(a.Name+" (deload)", a.Deload.Days); err != nil {
			return err
		}
	}
	return nil
}

func validateDays(scope string, days []archetypeDay) error {
	for _, d := range days {
		if d.Name == "" {
			return fmt.Errorf("%s: day with empty name", scope)
		}
		if len(d.Exercises) == 0 {
			return fmt.Errorf("%s: day %q has no exercises", scope, d.Name)
		}
		for _, ex := range d.Exercises {
			if ex.Exercise == "" {
				return fmt.Errorf("%s: day %q: exercise with empty id", scope, d.Name)
			}
			if ex.Sets < 1 || ex.Reps < 1 || ex.RIR < 0 {
				return fmt.Errorf("%s: day %q, exercise %q: bad set prescription", scope, d.Name, ex.Exercise)
			}
			if ex.Technique != "" && !ex.Technique.Valid() {
				return fmt.Errorf("%s: day %q, exercise %q: unknown technique %q",
					scope, d.Name, ex.Exercise, ex.Technique)
			}
		}
	}
	return nil
}

func (d archetypeDay) plan() DayPlan {
	// Muscle groups are cloned so built programs never alias the registry's
	// backing array.
	plan := DayPlan{
		Name:            d.Name,
		Description:     d.Description,
		MuscleGroups:    slices.Clone(d.MuscleGroups),
		Difficulty:      d.Difficulty,
		DurationMinutes: d.DurationMinutes,
	}
	for _, ex := range d.Exercises {
		plan.Exercises = append(plan.Exercises, SetPlan{
			ExerciseID:            ex.Exercise,
			AlternativeExerciseID: ex.Alternative,
			TargetReps:            ex.Reps,
			TargetRIR:             ex.RIR,
			SetCount:              ex.Sets,
			RestSeconds:           ex.RestSeconds,
			WarmupFirst:           ex.WarmupFirst,
			Notes:                 ex.Notes,
			Technique:             ex.Technique,
		})
	}
	return plan
}
