package model

import "github.com/google/uuid"

// Break is a driver break: a window during which it must occur and the
// duration it consumes once taken.
type Break struct {
	Window   TimeWindow
	Duration float64
}

// Reload is a place a vehicle may revisit mid-tour to reset its cumulative
// load back toward zero (e.g. returning to a depot to pick up a fresh batch).
type Reload struct {
	Place Place
}

// Shift is one start/end location pair a vehicle operates under, bounded by
// a time window. Most vehicles have exactly one shift; the type is a slice
// on Vehicle to allow multi-shift fleets.
type Shift struct {
	Start    Place
	End      Place
	Window   TimeWindow
	Breaks   []Break
	Reloads  []Reload
}

// Vehicle is one unit of the fleet: its shift(s), capacity, and identity.
// TypeID groups vehicles that are interchangeable for FleetUsage accounting
// (e.g. "small-van" vs "box-truck").
type Vehicle struct {
	ID       string
	TypeID   string
	Shifts   []Shift
	Capacity Demand
}

// NewVehicle builds a Vehicle with a single shift. If id is empty a uuid is
// minted.
func NewVehicle(id, typeID string, shift Shift, capacity Demand) *Vehicle {
	if id == "" {
		id = uuid.NewString()
	}
	return &Vehicle{ID: id, TypeID: typeID, Shifts: []Shift{shift}, Capacity: capacity}
}

// Fleet is the full set of vehicles available for a Problem.
type Fleet struct {
	Vehicles []*Vehicle
}

// ByID returns the vehicle with the given ID, or nil.
func (f *Fleet) ByID(id string) *Vehicle {
	for _, v := range f.Vehicles {
		if v.ID == id {
			return v
		}
	}
	return nil
}
