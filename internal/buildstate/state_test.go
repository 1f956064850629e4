package buildstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKinds() map[string]Kind {
	return map[string]Kind{
		"Racing Exhaust":  KindBool,
		"Turbocharger":    KindText,
		FieldWing:         KindText,
		FieldWingHeight:   KindText,
		FieldWingEndplate: KindText,
		"Ride Height":     KindText,
		"Camber":          KindText,
	}
}

func testState(originals map[string]Value) *State {
	return New(testKinds(), originals, []string{"Ride Height", "Camber"}, DefaultDependencies())
}

func TestSetAndCurrent(t *testing.T) {
	s := testState(nil)

	s.Set("Racing Exhaust", BoolValue(true))
	s.Set("Turbocharger", TextValue("High RPM"))

	v, ok := s.Current("Racing Exhaust")
	require.True(t, ok)
	assert.True(t, v.Bool)

	v, ok = s.Current("Turbocharger")
	require.True(t, ok)
	assert.Equal(t, "High RPM", v.Text)
}

func TestSetRejectsWrongDomain(t *testing.T) {
	s := testState(nil)

	s.Set("Racing Exhaust", TextValue("yes"))
	v, ok := s.Current("Racing Exhaust")
	require.True(t, ok)
	assert.Equal(t, KindBool, v.Kind)
	assert.False(t, v.Bool)

	s.Set("Turbocharger", BoolValue(true))
	v, _ = s.Current("Turbocharger")
	assert.Equal(t, "", v.Text)
}

func TestSetIgnoresUnknownField(t *testing.T) {
	s := testState(nil)

	s.Set("Nitrous", TextValue("x"))
	_, ok := s.Current("Nitrous")
	assert.False(t, ok)
}

func TestResetRestoresOriginal(t *testing.T) {
	s := testState(map[string]Value{
		"Turbocharger": TextValue("Low RPM"),
	})

	s.Set("Turbocharger", TextValue("High RPM"))
	assert.True(t, s.HasChanged("Turbocharger"))

	s.Reset("Turbocharger")
	v, _ := s.Current("Turbocharger")
	assert.Equal(t, "Low RPM", v.Text)
	assert.False(t, s.HasChanged("Turbocharger"))
}

func TestResetWithoutOriginalClears(t *testing.T) {
	s := testState(nil)

	s.Set("Turbocharger", TextValue("Medium RPM"))
	s.Reset("Turbocharger")

	v, _ := s.Current("Turbocharger")
	assert.Equal(t, "", v.Text)
}

func TestHasChangedTreatsAbsentAsEmpty(t *testing.T) {
	s := testState(nil)

	assert.False(t, s.HasChanged("Racing Exhaust"))

	// Setting a field to the empty value of its domain is still unchanged
	// against an absent original.
	s.Set("Racing Exhaust", BoolValue(false))
	assert.False(t, s.HasChanged("Racing Exhaust"))

	s.Set("Racing Exhaust", BoolValue(true))
	assert.True(t, s.HasChanged("Racing Exhaust"))
}

func TestOriginalsImmutableAcrossEdits(t *testing.T) {
	s := testState(map[string]Value{
		FieldWing: TextValue(WingCustomOption),
	})

	s.Set(FieldWing, TextValue("None"))
	s.Clear(FieldWing)
	s.Reset(FieldWing)

	v, _ := s.Current(FieldWing)
	assert.Equal(t, WingCustomOption, v.Text)
}

func TestClearCascadesToDependents(t *testing.T) {
	s := testState(map[string]Value{
		FieldWing:         TextValue(WingCustomOption),
		FieldWingHeight:   TextValue("High"),
		FieldWingEndplate: TextValue("Type B"),
	})

	s.Clear(FieldWing)

	v, _ := s.Current(FieldWing)
	assert.Equal(t, "", v.Text)
	v, _ = s.Current(FieldWingHeight)
	assert.Equal(t, "", v.Text)
	v, _ = s.Current(FieldWingEndplate)
	assert.Equal(t, "", v.Text)
}

func TestClearNonControllingFieldDoesNotCascade(t *testing.T) {
	s := testState(map[string]Value{
		FieldWing:       TextValue(WingCustomOption),
		FieldWingHeight: TextValue("High"),
	})

	s.Clear(FieldWingHeight)

	v, _ := s.Current(FieldWing)
	assert.Equal(t, WingCustomOption, v.Text)
}

func TestVisibilityFollowsControllingField(t *testing.T) {
	s := testState(nil)

	assert.True(t, s.IsVisible(FieldWing))
	assert.False(t, s.IsVisible(FieldWingHeight))
	assert.False(t, s.IsVisible(FieldWingEndplate))

	s.Set(FieldWing, TextValue(WingCustomOption))
	assert.True(t, s.IsVisible(FieldWingHeight))
	assert.True(t, s.IsVisible(FieldWingEndplate))

	s.Set(FieldWing, TextValue("Standard"))
	assert.False(t, s.IsVisible(FieldWingHeight))
	assert.False(t, s.IsVisible(FieldWingEndplate))
}

func TestSubmissionListOmitsEmptyUpgrades(t *testing.T) {
	s := testState(nil)

	s.Set("Racing Exhaust", BoolValue(true))
	s.Set("Turbocharger", TextValue("High RPM"))
	s.Set(FieldWing, TextValue(""))

	entries := s.SubmissionList()

	assert.Equal(t, []SubmissionEntry{
		{FieldID: "Racing Exhaust", Value: "true"},
		{FieldID: "Turbocharger", Value: "High RPM"},
	}, entries)
}

func TestSubmissionListFalseBoolOmitted(t *testing.T) {
	s := testState(map[string]Value{
		"Racing Exhaust": BoolValue(true),
	})

	s.Set("Racing Exhaust", BoolValue(false))

	for _, e := range s.SubmissionList() {
		assert.NotEqual(t, "Racing Exhaust", e.FieldID)
	}
}

func TestSubmissionListKeepsClearedTuningField(t *testing.T) {
	s := testState(map[string]Value{
		"Ride Height": TextValue("105"),
		"Camber":      TextValue("2.5"),
	})

	// An explicit clear of a tuning field persists as an empty string,
	// which is distinct from the field being absent.
	s.Clear("Ride Height")

	entries := s.SubmissionList()
	assert.Equal(t, []SubmissionEntry{
		{FieldID: "Camber", Value: "2.5"},
		{FieldID: "Ride Height", Value: ""},
	}, entries)
}

func TestSubmissionListSkipsUntouchedTuningFields(t *testing.T) {
	s := testState(nil)

	s.Set("Camber", TextValue("1.8"))

	entries := s.SubmissionList()
	assert.Equal(t, []SubmissionEntry{
		{FieldID: "Camber", Value: "1.8"},
	}, entries)
}

func TestSubmissionListSorted(t *testing.T) {
	s := testState(nil)

	s.Set(FieldWing, TextValue(WingCustomOption))
	s.Set(FieldWingHeight, TextValue("Low"))
	s.Set("Camber", TextValue("2.0"))

	entries := s.SubmissionList()
	require.Len(t, entries, 3)
	assert.Equal(t, "Camber", entries[0].FieldID)
	assert.Equal(t, FieldWing, entries[1].FieldID)
	assert.Equal(t, FieldWingHeight, entries[2].FieldID)
}
