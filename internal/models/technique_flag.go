package models

import (
	"encoding/json"
	"fmt"
)

// TechniqueFlag marks the advanced technique applied to a set. A set carries
// at most one technique, and only the last set of a same-exercise group may
// carry one. Modeled as a single enum so that invariant is structural.
type TechniqueFlag string

const (
	TechniqueNone          TechniqueFlag = "none"
	TechniqueDropSet       TechniqueFlag = "drop_set"
	TechniqueRestPause     TechniqueFlag = "rest_pause"
	TechniqueMechanicalSet TechniqueFlag = "mechanical_set"
	TechniquePartialReps   TechniqueFlag = "partial_reps"
)

// Valid reports whether f is a known technique flag.
func (f TechniqueFlag) Valid() bool {
	switch f {
	case TechniqueNone, TechniqueDropSet, TechniqueRestPause, TechniqueMechanicalSet, TechniquePartialReps:
		return true
	}
	return false
}

// MarshalJSON writes the flag as its string value, defaulting the zero value
// to "none" so half-initialized specs still serialize cleanly.
func (f TechniqueFlag) MarshalJSON() ([]byte, error) {
	if f == "" {
		f = TechniqueNone
	}
	if !f.Valid() {
		return nil, fmt.Errorf("invalid technique flag %q", string(f))
	}
	return json.Marshal(string(f))
}

// UnmarshalJSON rejects unknown technique strings instead of carrying them
// through as opaque values.
func (f *TechniqueFlag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	flag := TechniqueFlag(s)
	if s == "" {
		flag = TechniqueNone
	}
	if !flag.Valid() {
		return fmt.Errorf("invalid technique flag %q", s)
	}
	*f = flag
	return nil
}
