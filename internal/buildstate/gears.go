package buildstate

// Gearbox slot bounds
const (
	MinGears = 6
	MaxGears = 20
)

// GearState tracks the gear-ratio slots of a build edit: up to MaxGears
// numbered gears plus a final drive, with a visible slot count that grows
// and shrinks between MinGears and MaxGears.
type GearState struct {
	values       map[int]string
	finalDrive   string
	visibleCount int
}

// NewGearState builds the gear state from persisted values keyed by slot
// number (1-based). The visible count starts at MinGears or the highest
// configured slot, whichever is greater, so builds with more than six
// configured gears display them all.
func NewGearState(persisted map[int]string, finalDrive string) *GearState {
	g := &GearState{
		values:       make(map[int]string, len(persisted)),
		finalDrive:   finalDrive,
		visibleCount: MinGears,
	}
	for slot, v := range persisted {
		if slot < 1 || slot > MaxGears || v == "" {
			continue
		}
		g.values[slot] = v
		if slot > g.visibleCount {
			g.visibleCount = slot
		}
	}
	return g
}

// VisibleCount returns the number of gear slots currently displayed
func (g *GearState) VisibleCount() int {
	return g.visibleCount
}

// Gear returns the value at a slot, or "" when unset
func (g *GearState) Gear(slot int) string {
	return g.values[slot]
}

// FinalDrive returns the final-drive value
func (g *GearState) FinalDrive() string {
	return g.finalDrive
}

// SetGear sets the value at a visible slot. Slots outside the visible range
// are ignored.
func (g *GearState) SetGear(slot int, value string) {
	if slot < 1 || slot > g.visibleCount {
		return
	}
	if value == "" {
		delete(g.values, slot)
		return
	}
	g.values[slot] = value
}

// SetFinalDrive sets the final-drive value
func (g *GearState) SetFinalDrive(value string) {
	g.finalDrive = value
}

// AddGear grows the visible count by one, clamped at MaxGears
func (g *GearState) AddGear() {
	if g.visibleCount < MaxGears {
		g.visibleCount++
	}
}

// RemoveGear deletes the value at a slot. Only removing the highest visible
// slot shrinks the visible count (floor MinGears); removing a lower slot
// leaves the count unchanged. This mirrors the long-standing behavior of the
// gearbox editor, kept as-is rather than corrected.
func (g *GearState) RemoveGear(slot int) {
	if slot < 1 || slot > g.visibleCount {
		return
	}
	delete(g.values, slot)
	if slot == g.visibleCount && g.visibleCount > MinGears {
		g.visibleCount--
	}
}

// GearValues returns the configured slot values keyed by slot number,
// restricted to visible slots
func (g *GearState) GearValues() map[int]string {
	out := make(map[int]string, len(g.values))
	for slot, v := range g.values {
		if slot <= g.visibleCount {
			out[slot] = v
		}
	}
	return out
}
