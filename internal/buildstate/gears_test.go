package buildstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGearStateDefaults(t *testing.T) {
	g := NewGearState(nil, "")

	assert.Equal(t, MinGears, g.VisibleCount())
	assert.Equal(t, "", g.Gear(1))
	assert.Equal(t, "", g.FinalDrive())
}

func TestNewGearStateExpandsToHighestSlot(t *testing.T) {
	g := NewGearState(map[int]string{
		1: "3.545",
		8: "0.912",
	}, "3.050")

	assert.Equal(t, 8, g.VisibleCount())
	assert.Equal(t, "3.545", g.Gear(1))
	assert.Equal(t, "0.912", g.Gear(8))
	assert.Equal(t, "3.050", g.FinalDrive())
}

func TestNewGearStateIgnoresInvalidSlots(t *testing.T) {
	g := NewGearState(map[int]string{
		0:  "bad",
		21: "bad",
		3:  "",
	}, "")

	assert.Equal(t, MinGears, g.VisibleCount())
	assert.Equal(t, "", g.Gear(3))
}

func TestAddGearClampsAtMax(t *testing.T) {
	g := NewGearState(nil, "")

	for i := 0; i < MaxGears-MinGears; i++ {
		g.AddGear()
	}
	assert.Equal(t, MaxGears, g.VisibleCount())

	g.AddGear()
	assert.Equal(t, MaxGears, g.VisibleCount())
}

func TestRemoveHighestGearShrinks(t *testing.T) {
	g := NewGearState(map[int]string{7: "0.950"}, "")
	assert.Equal(t, 7, g.VisibleCount())

	g.RemoveGear(7)
	assert.Equal(t, MinGears, g.VisibleCount())
	assert.Equal(t, "", g.Gear(7))
}

func TestRemoveLowerGearKeepsCount(t *testing.T) {
	g := NewGearState(map[int]string{
		3: "1.800",
		8: "0.900",
	}, "")

	// Removing a non-highest slot clears its value but never shrinks the
	// visible range.
	g.RemoveGear(3)
	assert.Equal(t, 8, g.VisibleCount())
	assert.Equal(t, "", g.Gear(3))
	assert.Equal(t, "0.900", g.Gear(8))
}

func TestRemoveGearFloorsAtMin(t *testing.T) {
	g := NewGearState(map[int]string{6: "1.000"}, "")

	g.RemoveGear(6)
	assert.Equal(t, MinGears, g.VisibleCount())
}

func TestSetGearOutsideVisibleRangeIgnored(t *testing.T) {
	g := NewGearState(nil, "")

	g.SetGear(7, "0.950")
	assert.Equal(t, "", g.Gear(7))

	g.AddGear()
	g.SetGear(7, "0.950")
	assert.Equal(t, "0.950", g.Gear(7))
}

func TestSetGearEmptyDeletes(t *testing.T) {
	g := NewGearState(map[int]string{2: "2.400"}, "")

	g.SetGear(2, "")
	assert.Equal(t, "", g.Gear(2))
	assert.Empty(t, g.GearValues())
}

func TestGearValuesRestrictedToVisible(t *testing.T) {
	g := NewGearState(map[int]string{
		1: "3.500",
		7: "0.950",
	}, "")

	g.RemoveGear(7)
	// Slot 7 value is gone and the range shrank back to six.
	values := g.GearValues()
	assert.Equal(t, map[int]string{1: "3.500"}, values)
}
