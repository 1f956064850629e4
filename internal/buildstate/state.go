// Package buildstate models an in-progress edit of a build's upgrade and
// tuning selections: current values, the originals they were loaded from,
// per-field change detection, reset/clear and conditional visibility.
// The model performs no I/O and never fails; option-set validation happens
// at the submission boundary.
package buildstate

import "sort"

// Kind is the value domain of a field, fixed at construction.
// Boolean and text domains are kept strictly separate; values are never
// coerced across the boundary.
type Kind int

const (
	KindBool Kind = iota
	KindText
)

// Value is a tagged bool-or-text value
type Value struct {
	Kind Kind
	Bool bool
	Text string
}

// BoolValue returns a boolean-domain value
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// TextValue returns a text-domain value
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// IsEmpty reports whether the value is the type-appropriate empty value
func (v Value) IsEmpty() bool {
	if v.Kind == KindBool {
		return !v.Bool
	}
	return v.Text == ""
}

// Dependency declares that a field is only meaningful while its controlling
// field holds a specific value
type Dependency struct {
	ControllingField string
	RequiredValue    string
}

// Controlling field values that gate the wing sub-fields
const (
	FieldWing         = "Wing"
	FieldWingHeight   = "Wing Height"
	FieldWingEndplate = "Wing Endplate"
	WingCustomOption  = "Custom"
)

// DefaultDependencies is the dependency table observed in the part catalogue:
// the wing sub-fields are only shown while "Wing" is set to "Custom".
func DefaultDependencies() map[string]Dependency {
	return map[string]Dependency{
		FieldWingHeight:   {ControllingField: FieldWing, RequiredValue: WingCustomOption},
		FieldWingEndplate: {ControllingField: FieldWing, RequiredValue: WingCustomOption},
	}
}

// State tracks the current and original selections of one edit session.
// Originals are captured once at construction and never mutated afterwards;
// the current map never aliases them.
type State struct {
	kinds        map[string]Kind
	current      map[string]Value
	originals    map[string]Value
	dependencies map[string]Dependency
	tuning       map[string]bool
}

// New creates an edit state. kinds declares every known field and its domain;
// originals is the persisted snapshot the edit starts from; tuningFields marks
// which fields belong to the tuning-settings group (serialized with different
// emptiness rules than upgrades); deps may be nil for no conditional fields.
func New(
	kinds map[string]Kind,
	originals map[string]Value,
	tuningFields []string,
	deps map[string]Dependency,
) *State {
	s := &State{
		kinds:        make(map[string]Kind, len(kinds)),
		current:      make(map[string]Value, len(kinds)),
		originals:    make(map[string]Value, len(originals)),
		dependencies: make(map[string]Dependency, len(deps)),
		tuning:       make(map[string]bool, len(tuningFields)),
	}
	for id, k := range kinds {
		s.kinds[id] = k
	}
	for id, v := range originals {
		if _, known := s.kinds[id]; !known {
			continue
		}
		s.originals[id] = v
		s.current[id] = v
	}
	for id, d := range deps {
		s.dependencies[id] = d
	}
	for _, id := range tuningFields {
		s.tuning[id] = true
	}
	return s
}

// Set overwrites the current value for a field. Unknown fields and values
// from the wrong domain are ignored.
func (s *State) Set(fieldID string, v Value) {
	kind, ok := s.kinds[fieldID]
	if !ok || kind != v.Kind {
		return
	}
	s.current[fieldID] = v
}

// Reset restores a field to its original value. A field with no recorded
// original resets to the type-appropriate empty value.
func (s *State) Reset(fieldID string) {
	kind, ok := s.kinds[fieldID]
	if !ok {
		return
	}
	if orig, ok := s.originals[fieldID]; ok {
		s.current[fieldID] = orig
		return
	}
	s.current[fieldID] = emptyFor(kind)
}

// Clear sets a field to the type-appropriate empty value. Clearing a
// controlling field cascades to every field that depends on it, regardless
// of the dependents' own values.
func (s *State) Clear(fieldID string) {
	kind, ok := s.kinds[fieldID]
	if !ok {
		return
	}
	s.current[fieldID] = emptyFor(kind)
	for depID, dep := range s.dependencies {
		if dep.ControllingField != fieldID {
			continue
		}
		if depKind, ok := s.kinds[depID]; ok {
			s.current[depID] = emptyFor(depKind)
		}
	}
}

// Current returns the current value for a field. Unknown fields report a
// zero value and ok=false.
func (s *State) Current(fieldID string) (Value, bool) {
	v, ok := s.current[fieldID]
	if !ok {
		kind, known := s.kinds[fieldID]
		if !known {
			return Value{}, false
		}
		return emptyFor(kind), true
	}
	return v, true
}

// HasChanged reports whether a field's current value differs from its
// original. A field never set and with no original is unchanged.
func (s *State) HasChanged(fieldID string) bool {
	kind, ok := s.kinds[fieldID]
	if !ok {
		return false
	}
	cur, haveCur := s.current[fieldID]
	orig, haveOrig := s.originals[fieldID]
	if !haveCur {
		cur = emptyFor(kind)
	}
	if !haveOrig {
		orig = emptyFor(kind)
	}
	return cur != orig
}

// IsVisible reports whether a field should be displayed and editable.
// Dependent fields are visible only while their controlling field holds the
// required value; every other field is visible unconditionally.
func (s *State) IsVisible(fieldID string) bool {
	dep, ok := s.dependencies[fieldID]
	if !ok {
		return true
	}
	cur, ok := s.Current(dep.ControllingField)
	if !ok || cur.Kind != KindText {
		return false
	}
	return cur.Text == dep.RequiredValue
}

// SubmissionEntry is one {fieldId, value} pair to persist
type SubmissionEntry struct {
	FieldID string
	Value   string
}

// SubmissionList produces the selections to persist, in sorted field order.
// Boolean upgrade fields appear only when true (absence means not installed),
// text upgrade fields only when non-empty. Tuning fields are always included;
// an empty string is an explicit clear, distinct from field absence.
func (s *State) SubmissionList() []SubmissionEntry {
	ids := make([]string, 0, len(s.kinds))
	for id := range s.kinds {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]SubmissionEntry, 0, len(ids))
	for _, id := range ids {
		cur, present := s.current[id]
		if s.tuning[id] {
			// Only fields touched this session or loaded from the original
			// snapshot are persisted; untouched absent fields stay absent.
			if present {
				out = append(out, SubmissionEntry{FieldID: id, Value: cur.Text})
			}
			continue
		}
		if !present {
			continue
		}
		switch cur.Kind {
		case KindBool:
			if cur.Bool {
				out = append(out, SubmissionEntry{FieldID: id, Value: "true"})
			}
		case KindText:
			if cur.Text != "" {
				out = append(out, SubmissionEntry{FieldID: id, Value: cur.Text})
			}
		}
	}
	return out
}

func emptyFor(k Kind) Value {
	return Value{Kind: k}
}
