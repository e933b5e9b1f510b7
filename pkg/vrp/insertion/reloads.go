package insertion

import (
	"github.com/routewise/vrp-engine/pkg/vrp/constraint"
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

// ScheduleReload appends a reload stop just before r's closing terminal,
// giving the capacity bookkeeping a point at which cumulative load resets
// and the vehicle can take on more work. It refuses when the vehicle has no
// configured reload place, the tour is still empty (nothing to relieve), or
// the trailing activity is already a reload. Returns whether a stop was
// appended; on success the route's cached state has been refreshed.
func ScheduleReload(pipeline *constraint.Pipeline, r *route.Route) bool {
	if len(r.Vehicle.Shifts) == 0 || len(r.Vehicle.Shifts[0].Reloads) == 0 {
		return false
	}
	if r.Tour.ActivityCount() == 0 {
		return false
	}
	activities := r.Tour.Activities
	if activities[len(activities)-2].Type == model.ActivityReload {
		return false
	}

	reload := r.Vehicle.Shifts[0].Reloads[0]
	prev := activities[len(activities)-2]
	next := activities[len(activities)-1]
	candidate := model.Activity{Type: model.ActivityReload, Place: reload.Place}
	ctx := model.ActivityContext{Prev: &prev, Candidate: &candidate, Next: &next}

	// Lets TimeWindowConstraint fill in the stop's arrival/departure, and
	// rejects a reload the vehicle could not reach before its shift ends.
	if v := pipeline.EvaluateActivity(r, ctx); v != nil && v.Stopped {
		return false
	}

	r.Tour.InsertLast(candidate)
	pipeline.AcceptRouteState(r)
	return true
}

// UnscheduleTrailingReload removes the reload stop ScheduleReload appended
// when the retry it enabled found no placement after all, so speculative
// reloads never linger in a tour they did not help.
func UnscheduleTrailingReload(pipeline *constraint.Pipeline, r *route.Route) {
	activities := r.Tour.Activities
	if len(activities) < 3 || activities[len(activities)-2].Type != model.ActivityReload {
		return
	}
	r.Tour.RemoveActivitiesAt(len(activities)-2, len(activities)-1)
	pipeline.AcceptRouteState(r)
}
