package program

import (
	"errors"
	"fmt"
	"time"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
)

var ErrNoDeloadVariant = errors.New("archetype has no deload variant")

// Composer assembles full programs from registered archetypes. It holds no
// mutable state; two builds from the same archetype yield structurally
// identical programs with independent ids.
type Composer struct {
	registry *Registry
}

// NewComposer creates a Composer over the given registry.
func NewComposer(registry *Registry) *Composer {
	return &Composer{registry: registry}
}

// Registry exposes the composer's archetype registry.
func (c *Composer) Registry() *Registry {
	return c.registry
}

// Build assembles the named archetype into a complete program for the given
// owner. Frequency equals the day count: each day template is performed once
// per microcycle.
func (c *Composer) Build(archetypeName, ownerID string) (models.WorkoutProgram, error) {
	a, err := c.registry.Get(archetypeName)
	if err != nil {
		return models.WorkoutProgram{}, err
	}
	if ownerID == "" {
		return models.WorkoutProgram{}, errors.New("owner id is required")
	}

	days, err := buildDays(a.Days)
	if err != nil {
		return models.WorkoutProgram{}, fmt.Errorf("archetype %q: %w", archetypeName, err)
	}

	p := models.WorkoutProgram{
		SchemaVersion: models.SchemaVersion,
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Name:          a.DisplayName,
		Description:   a.Description,
		Tags:          programTags(a),
		Days:          days,
		Frequency:     len(days),
		Goal:          a.Goal,
		Level:         a.Level,
		Split:         a.Split,
		CreatedAt:     time.Now().UTC(),
	}
	if a.Deload != nil {
		p.IncludesDeload = true
		p.DeloadFrequencyWeeks = a.Deload.EveryWeeks
		p.DeloadStrategy = a.Deload.Strategy
	}

	if err := p.Validate(); err != nil {
		return models.WorkoutProgram{}, fmt.Errorf("archetype %q: %w", archetypeName, err)
	}
	return p, nil
}

// BuildDeloadVariant assembles the archetype's hand-curated reduced-intensity
// sibling program. The variant has its own independent day list and ids, and
// is inactive by convention — the gateway swaps it in when the user schedules
// a deload week.
func (c *Composer) BuildDeloadVariant(archetypeName, ownerID string) (models.WorkoutProgram, error) {
	a, err := c.registry.Get(archetypeName)
	if err != nil {
		return models.WorkoutProgram{}, err
	}
	if a.Deload == nil {
		return models.WorkoutProgram{}, fmt.Errorf("%w: %q", ErrNoDeloadVariant, archetypeName)
	}
	if ownerID == "" {
		return models.WorkoutProgram{}, errors.New("owner id is required")
	}

	days, err := buildDays(a.Deload.Days)
	if err != nil {
		return models.WorkoutProgram{}, fmt.Errorf("archetype %q deload: %w", archetypeName, err)
	}

	p := models.WorkoutProgram{
		SchemaVersion:        models.SchemaVersion,
		ID:                   uuid.New(),
		OwnerID:              ownerID,
		Name:                 a.DisplayName + " (Deload)",
		Description:          "Reduced-intensity deload variant of " + a.DisplayName + ".",
		Tags:                 append(programTags(a), "deload"),
		Days:                 days,
		Frequency:            len(days),
		Goal:                 a.Goal,
		Level:                a.Level,
		IncludesDeload:       true,
		DeloadFrequencyWeeks: a.Deload.EveryWeeks,
		DeloadStrategy:       a.Deload.Strategy,
		Split:                a.Split,
		IsActive:             false,
		CreatedAt:            time.Now().UTC(),
	}

	if err := p.Validate(); err != nil {
		return models.WorkoutProgram{}, fmt.Errorf("archetype %q deload: %w", archetypeName, err)
	}
	return p, nil
}

func buildDays(defs []archetypeDay) ([]models.WorkoutDay, error) {
	days := make([]models.WorkoutDay, 0, len(defs))
	for _, def := range defs {
		day, err := BuildDay(def.plan())
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

// programTags derives classification tags from (split, goal, level) plus the
// archetype's own literal tags, deduplicated in order.
func programTags(a Archetype) []string {
	tags := []string{string(a.Split), string(a.Goal), string(a.Level)}
	tags = append(tags, a.Tags...)

	seen := make(map[string]bool, len(tags))
	out := tags[:0]
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
