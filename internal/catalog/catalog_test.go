package catalog

import (
	"testing"

	"github.com/Sipheren/fridaygt-sub000/internal/buildstate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpgradeCheckbox(t *testing.T) {
	assert.NoError(t, ValidateUpgrade("Racing Exhaust", "true"))
	assert.Error(t, ValidateUpgrade("Racing Exhaust", "false"))
	assert.Error(t, ValidateUpgrade("Racing Exhaust", "yes"))
	assert.Error(t, ValidateUpgrade("Racing Exhaust", ""))
}

func TestValidateUpgradeDropdown(t *testing.T) {
	assert.NoError(t, ValidateUpgrade("Turbocharger", "High RPM"))
	assert.NoError(t, ValidateUpgrade("Wing", "Custom"))
	assert.Error(t, ValidateUpgrade("Turbocharger", "Extreme RPM"))
	assert.Error(t, ValidateUpgrade("Turbocharger", ""))
}

func TestValidateUpgradeUnknownPart(t *testing.T) {
	assert.Error(t, ValidateUpgrade("Nitrous", "true"))
}

func TestValidateSetting(t *testing.T) {
	assert.NoError(t, ValidateSetting("Ride Height", "105"))
	assert.NoError(t, ValidateSetting("Ride Height", ""))
	assert.NoError(t, ValidateSetting(GearField(3), "1.800"))
	assert.NoError(t, ValidateSetting(FinalDriveField, "3.050"))
	assert.Error(t, ValidateSetting("Horsepower", "500"))
}

func TestGearField(t *testing.T) {
	assert.Equal(t, "gear1", GearField(1))
	assert.Equal(t, "gear20", GearField(20))
}

func TestTuningSettingsCoverAllGearSlots(t *testing.T) {
	for slot := 1; slot <= buildstate.MaxGears; slot++ {
		_, ok := TuningSetting(GearField(slot))
		assert.True(t, ok, "missing gear slot %d", slot)
	}
	_, ok := TuningSetting(GearField(buildstate.MaxGears + 1))
	assert.False(t, ok)
}

func TestFieldKindsMatchInputTypes(t *testing.T) {
	kinds := FieldKinds()

	assert.Equal(t, buildstate.KindBool, kinds["Racing Exhaust"])
	assert.Equal(t, buildstate.KindText, kinds["Turbocharger"])
	assert.Equal(t, buildstate.KindText, kinds["Ride Height"])

	// Every catalogued field has a kind.
	for _, f := range UpgradeParts {
		_, ok := kinds[f.ID]
		assert.True(t, ok, "upgrade %q has no kind", f.ID)
	}
	for _, f := range TuningSettings {
		_, ok := kinds[f.ID]
		assert.True(t, ok, "setting %q has no kind", f.ID)
	}
}

func TestWingDependenciesResolveAgainstCatalogue(t *testing.T) {
	// The dependency table references real dropdown parts and a real option,
	// so the edit model and the catalogue stay in agreement.
	deps := buildstate.DefaultDependencies()
	for fieldID, dep := range deps {
		_, ok := UpgradePart(fieldID)
		require.True(t, ok, "dependent %q not in catalogue", fieldID)

		controlling, ok := UpgradePart(dep.ControllingField)
		require.True(t, ok, "controlling %q not in catalogue", dep.ControllingField)
		assert.Contains(t, controlling.Options, dep.RequiredValue)
	}
}
