package constraint

import (
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

const capacityStateKey = "capacity.cumulative"

// CapacityConstraint is a hard, multi-dimensional module: it rejects any
// insertion that would push a route's cumulative demand, in any dimension,
// past the vehicle's capacity for that dimension. Quantities are compared
// exactly rather than as floats, so "999m + 1m" fits a capacity of "1".
type CapacityConstraint struct{}

func (CapacityConstraint) Name() string { return "capacity" }

// EvaluateJob checks the job's demand against what's already cumulated on
// the route since the last Reload (or from the start, if the vehicle has
// none), so a configured Reload actually changes whether a job fits.
func (CapacityConstraint) EvaluateJob(sol SolutionView, r *route.Route, job *model.Job) *Violation {
	used := cumulativeDemand(r)
	capacity := r.Vehicle.Capacity

	for _, task := range job.Tasks {
		for dim, d := range task.Demand {
			if dim >= len(capacity) {
				continue
			}
			projected := used[dim]
			projected.Add(d)
			if projected.Cmp(capacity[dim]) > 0 {
				return &Violation{Code: CodeCapacity, Stopped: true, Reason: "capacity exceeded"}
			}
		}
		for dim := range used {
			if dim < len(task.Demand) {
				used[dim].Add(task.Demand[dim])
			}
		}
	}
	return nil
}

func (CapacityConstraint) EvaluateActivity(r *route.Route, ctx model.ActivityContext) *Violation {
	return nil
}

func (CapacityConstraint) AcceptInsertion(sol SolutionView, r *route.Route, job *model.Job) {}

func (CapacityConstraint) AcceptRouteState(r *route.Route) {
	r.SetState(capacityStateKey, cumulativeDemand(r))
}

func (CapacityConstraint) AcceptSolutionState(sol SolutionView) {}

// cumulativeDemand sums every job activity's demand for its route, dimension
// by dimension, reading the route's actual tour rather than the cache so the
// result is always correct even if AcceptRouteState has not run yet. The
// running total resets to zero at every ActivityReload encountered in tour
// order, so a vehicle's configured Reload stops actually relieve capacity
// pressure for the remainder of the tour rather than only being recorded in
// a cache no feasibility check consults.
func cumulativeDemand(r *route.Route) []resource.Quantity {
	dims := len(r.Vehicle.Capacity)
	total := make([]resource.Quantity, dims)

	seen := make(map[string]bool)
	for _, a := range r.Tour.Activities {
		if a.Type == model.ActivityReload {
			total = make([]resource.Quantity, dims)
			seen = make(map[string]bool)
			continue
		}
		if a.Job == nil {
			continue
		}
		key := a.Job.ID
		if seen[key] {
			continue
		}
		seen[key] = true
		for _, task := range a.Job.Tasks {
			for dim, d := range task.Demand {
				if dim < dims {
					total[dim].Add(d)
				}
			}
		}
	}
	return total
}
