// Package catalog holds the static upgrade-part and tuning-setting metadata:
// each field's input type, its allowed options for dropdown-style parts, and
// the conditional-visibility dependencies between parts. The submission
// boundary validates persisted selections against these tables.
package catalog

import (
	"fmt"

	"github.com/Sipheren/fridaygt-sub000/internal/buildstate"
)

// InputType distinguishes checkbox parts, dropdown parts and free-form
// tuning inputs (including compound "front:rear" values)
type InputType int

const (
	InputCheckbox InputType = iota
	InputDropdown
	InputText
)

// Field describes one upgrade part or tuning setting
type Field struct {
	ID      string
	Label   string
	Type    InputType
	Options []string
}

// Gear slot field IDs are gear1..gear20 plus finalDrive
const (
	FinalDriveField = "finalDrive"
	gearFieldFmt    = "gear%d"
)

// GearField returns the field ID for a 1-based gear slot
func GearField(slot int) string {
	return fmt.Sprintf(gearFieldFmt, slot)
}

// UpgradeParts is the part catalogue. Checkbox parts toggle installed state;
// dropdown parts select one of a fixed option set.
var UpgradeParts = []Field{
	{ID: "Sports Exhaust", Label: "Sports Exhaust", Type: InputCheckbox},
	{ID: "Racing Exhaust", Label: "Racing Exhaust", Type: InputCheckbox},
	{ID: "Sports Air Filter", Label: "Sports Air Filter", Type: InputCheckbox},
	{ID: "Racing Air Filter", Label: "Racing Air Filter", Type: InputCheckbox},
	{ID: "Turbocharger", Label: "Turbocharger", Type: InputDropdown,
		Options: []string{"Low RPM", "Medium RPM", "High RPM"}},
	{ID: "Weight Reduction", Label: "Weight Reduction", Type: InputDropdown,
		Options: []string{"Stage 1", "Stage 2", "Stage 3"}},
	{ID: "Fully Customised Suspension", Label: "Fully Customised Suspension", Type: InputCheckbox},
	{ID: "Fully Customised Transmission", Label: "Fully Customised Transmission", Type: InputCheckbox},
	{ID: "Racing Brakes", Label: "Racing Brakes", Type: InputCheckbox},
	{ID: "Wheel Width", Label: "Wheel Width", Type: InputDropdown,
		Options: []string{"Narrow", "Standard", "Wide"}},
	{ID: buildstate.FieldWing, Label: "Wing", Type: InputDropdown,
		Options: []string{"None", "Standard", buildstate.WingCustomOption}},
	{ID: buildstate.FieldWingHeight, Label: "Wing Height", Type: InputDropdown,
		Options: []string{"Low", "Medium", "High"}},
	{ID: buildstate.FieldWingEndplate, Label: "Wing Endplate", Type: InputDropdown,
		Options: []string{"Type A", "Type B", "Type C"}},
}

// TuningSettings is the tuning catalogue. Compound settings encode
// "front:rear" pairs in a single value.
var TuningSettings = func() []Field {
	fields := []Field{
		{ID: "Ride Height", Label: "Ride Height", Type: InputText},
		{ID: "Spring Rate", Label: "Spring Rate", Type: InputText},
		{ID: "Dampers Compression", Label: "Dampers (Compression)", Type: InputText},
		{ID: "Dampers Rebound", Label: "Dampers (Rebound)", Type: InputText},
		{ID: "Anti-Roll Bars", Label: "Anti-Roll Bars", Type: InputText},
		{ID: "Camber", Label: "Camber", Type: InputText},
		{ID: "Toe", Label: "Toe", Type: InputText},
		{ID: "Brake Balance", Label: "Brake Balance", Type: InputText},
		{ID: "Downforce", Label: "Downforce", Type: InputText},
		{ID: FinalDriveField, Label: "Final Drive", Type: InputText},
	}
	for slot := 1; slot <= buildstate.MaxGears; slot++ {
		fields = append(fields, Field{
			ID:    GearField(slot),
			Label: fmt.Sprintf("Gear %d", slot),
			Type:  InputText,
		})
	}
	return fields
}()

var (
	upgradeIndex = indexFields(UpgradeParts)
	tuningIndex  = indexFields(TuningSettings)
)

func indexFields(fields []Field) map[string]Field {
	idx := make(map[string]Field, len(fields))
	for _, f := range fields {
		idx[f.ID] = f
	}
	return idx
}

// UpgradePart looks up an upgrade part by field ID
func UpgradePart(fieldID string) (Field, bool) {
	f, ok := upgradeIndex[fieldID]
	return f, ok
}

// TuningSetting looks up a tuning setting by field ID
func TuningSetting(fieldID string) (Field, bool) {
	f, ok := tuningIndex[fieldID]
	return f, ok
}

// FieldKinds returns the buildstate domain of every catalogued field,
// used to construct edit sessions
func FieldKinds() map[string]buildstate.Kind {
	kinds := make(map[string]buildstate.Kind, len(upgradeIndex)+len(tuningIndex))
	for id, f := range upgradeIndex {
		if f.Type == InputCheckbox {
			kinds[id] = buildstate.KindBool
		} else {
			kinds[id] = buildstate.KindText
		}
	}
	for id := range tuningIndex {
		kinds[id] = buildstate.KindText
	}
	return kinds
}

// TuningFieldIDs returns the IDs of every tuning setting
func TuningFieldIDs() []string {
	ids := make([]string, 0, len(TuningSettings))
	for _, f := range TuningSettings {
		ids = append(ids, f.ID)
	}
	return ids
}

// ValidateUpgrade checks one submitted upgrade selection against the part
// catalogue: checkbox parts accept only "true" (absence means not installed),
// dropdown parts accept only a member of their option set
func ValidateUpgrade(fieldID, value string) error {
	f, ok := upgradeIndex[fieldID]
	if !ok {
		return fmt.Errorf("unknown upgrade part %q", fieldID)
	}
	switch f.Type {
	case InputCheckbox:
		if value != "true" {
			return fmt.Errorf("part %q is a toggle; got value %q", fieldID, value)
		}
	case InputDropdown:
		for _, opt := range f.Options {
			if value == opt {
				return nil
			}
		}
		return fmt.Errorf("value %q is not an option of part %q", value, fieldID)
	}
	return nil
}

// ValidateSetting checks one submitted tuning value. Empty values are
// accepted as an explicit clear.
func ValidateSetting(fieldID, value string) error {
	if _, ok := tuningIndex[fieldID]; !ok {
		return fmt.Errorf("unknown tuning setting %q", fieldID)
	}
	return nil
}
