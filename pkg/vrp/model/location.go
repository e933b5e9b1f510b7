package model

import "math"

// Location is a point in the transport graph. Index is used to look up rows
// in a matrix-backed TransportCosts; Lat/Lng back the Euclidean fallback.
type Location struct {
	Index int
	Lat   float64
	Lng   float64
}

// TransportCosts answers pure distance/duration queries between two
// Locations. Implementations must be side-effect free: the insertion
// evaluator and constraint pipeline call them many times per candidate slot.
type TransportCosts interface {
	Distance(from, to Location) float64
	Duration(from, to Location) float64
}

// ActivityCosts answers the service duration a Place requires once a vehicle
// arrives, independent of which vehicle or route visits it.
type ActivityCosts interface {
	ServiceDuration(place *Place) float64
}

// MatrixTransportCosts is backed by precomputed distance/duration matrices
// indexed by Location.Index, as produced by an external matrix-loading
// utility (out of scope for this engine).
type MatrixTransportCosts struct {
	Distances [][]float64
	Durations [][]float64
}

func (m *MatrixTransportCosts) Distance(from, to Location) float64 {
	return m.Distances[from.Index][to.Index]
}

func (m *MatrixTransportCosts) Duration(from, to Location) float64 {
	return m.Durations[from.Index][to.Index]
}

// EuclideanTransportCosts treats Lat/Lng as planar coordinates and assumes a
// constant speed, for problems with no matrix. It is a stand-in for a real
// geographic approximation utility, which is explicitly out of this engine's
// scope.
type EuclideanTransportCosts struct {
	SpeedPerUnitTime float64
}

func (e *EuclideanTransportCosts) Distance(from, to Location) float64 {
	dx := from.Lat - to.Lat
	dy := from.Lng - to.Lng
	return math.Sqrt(dx*dx + dy*dy)
}

func (e *EuclideanTransportCosts) Duration(from, to Location) float64 {
	speed := e.SpeedPerUnitTime
	if speed <= 0 {
		speed = 1
	}
	return e.Distance(from, to) / speed
}

// DefaultActivityCosts reads service duration straight off the Place.
type DefaultActivityCosts struct{}

func (DefaultActivityCosts) ServiceDuration(place *Place) float64 {
	if place == nil {
		return 0
	}
	return place.ServiceDuration
}
