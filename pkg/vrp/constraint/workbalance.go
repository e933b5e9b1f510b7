package constraint

import (
	"math"

	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

// WorkBalanceDimension selects what WorkBalanceConstraint measures
// per-route, one per balance-* objective kind.
type WorkBalanceDimension int

const (
	BalanceLoad WorkBalanceDimension = iota
	BalanceActivities
	BalanceDistance
	BalanceDuration
)

// WorkBalanceConstraint is a soft module: it charges a cost proportional to
// how much of `Dimension` this route already carries (see Measure); the
// spread across routes is scored by the paired WorkBalance objective.
type WorkBalanceConstraint struct {
	Dimension WorkBalanceDimension
	Transport model.TransportCosts
	Weight    float64
}

func (c WorkBalanceConstraint) Name() string {
	switch c.Dimension {
	case BalanceActivities:
		return "work_balance.activities"
	case BalanceDistance:
		return "work_balance.distance"
	case BalanceDuration:
		return "work_balance.duration"
	default:
		return "work_balance.load"
	}
}

// EvaluateJob charges the route's current measure as soft cost, so recreate
// prefers placing work on the route carrying the least of this dimension and
// the spread the paired WorkBalance objective scores stays narrow.
func (c WorkBalanceConstraint) EvaluateJob(sol SolutionView, r *route.Route, job *model.Job) *Violation {
	m := c.Measure(r)
	if m == 0 {
		return nil
	}
	weight := c.Weight
	if weight == 0 {
		weight = 1
	}
	return &Violation{Code: CodeWorkBalance, Stopped: false, Cost: weight * m}
}

func (c WorkBalanceConstraint) EvaluateActivity(r *route.Route, ctx model.ActivityContext) *Violation {
	return nil
}

func (c WorkBalanceConstraint) AcceptInsertion(sol SolutionView, r *route.Route, job *model.Job) {}

func (c WorkBalanceConstraint) AcceptRouteState(r *route.Route) {
	r.SetState(c.Name(), c.Measure(r))
}

func (c WorkBalanceConstraint) AcceptSolutionState(sol SolutionView) {}

// Measure computes this dimension's scalar value for one route: the largest
// per-dimension load ratio across capacity dimensions, activity count, total
// distance, or total duration.
func (c WorkBalanceConstraint) Measure(r *route.Route) float64 {
	switch c.Dimension {
	case BalanceActivities:
		return float64(r.Tour.ActivityCount())
	case BalanceDistance:
		return routeDistance(r, c.Transport)
	case BalanceDuration:
		return routeDuration(r)
	default:
		return maxLoadRatio(r)
	}
}

func routeDistance(r *route.Route, t model.TransportCosts) float64 {
	if t == nil {
		return 0
	}
	total := 0.0
	for i := 1; i < len(r.Tour.Activities); i++ {
		total += t.Distance(r.Tour.Activities[i-1].Place.Location, r.Tour.Activities[i].Place.Location)
	}
	return total
}

func routeDuration(r *route.Route) float64 {
	if len(r.Tour.Activities) == 0 {
		return 0
	}
	start := r.Tour.Activities[0].Departure
	end := r.Tour.Activities[len(r.Tour.Activities)-1].Arrival
	return end - start
}

// maxLoadRatio returns the largest per-dimension utilization ratio
// (cumulative demand / capacity) across the vehicle's capacity dimensions,
// so a vehicle full in any one dimension counts as full.
func maxLoadRatio(r *route.Route) float64 {
	used := cumulativeDemand(r)
	capacity := r.Vehicle.Capacity
	max := 0.0
	for i, cap := range capacity {
		if cap.IsZero() {
			continue
		}
		if i >= len(used) {
			continue
		}
		ratio := float64(used[i].MilliValue()) / float64(cap.MilliValue())
		if ratio > max {
			max = ratio
		}
	}
	return max
}

// StandardDeviation computes the population standard deviation of values.
func StandardDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return math.Sqrt(variance)
}
