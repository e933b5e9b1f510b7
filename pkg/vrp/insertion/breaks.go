package insertion

import (
	"github.com/routewise/vrp-engine/pkg/vrp/constraint"
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

// ScheduleBreaks places every configured-but-unscheduled break on each route
// into its cheapest legal slot, treating each Break like a tiny job with its
// own window. It is the recreate-side counterpart to
// constraint.BreakConstraint: that module can only reject a route whose
// breaks are left unscheduled, this function is what actually tries to
// schedule them. A break that finds no legal slot in this pass is left
// unscheduled; BreakConstraint.EvaluateJob then keeps that route from
// accepting further jobs until a later generation frees up room for it.
func ScheduleBreaks(pipeline *constraint.Pipeline, r *route.Route) {
	if len(r.Vehicle.Shifts) == 0 || len(r.Vehicle.Shifts[0].Breaks) == 0 {
		return
	}
	breaks := r.Vehicle.Shifts[0].Breaks
	placed := false
	for _, idx := range constraint.RemainingBreaks(r) {
		if idx < 0 || idx >= len(breaks) {
			continue
		}
		if placeBreak(pipeline, r, idx, breaks[idx]) {
			placed = true
		}
	}
	if placed {
		pipeline.AcceptRouteState(r)
	}
}

// placeBreak scans every interior slot of r's tour for the cheapest legal
// position to splice brk in as an ActivityBreak, and inserts it if one is
// found. The candidate carries the break's own window/duration as a
// single-window Place so TimeWindowConstraint computes its arrival the same
// way it would for a job activity.
func placeBreak(pipeline *constraint.Pipeline, r *route.Route, idx int, brk model.Break) bool {
	activities := r.Tour.Activities
	var best slotCandidate
	found := false

	for i := 1; i < len(activities); i++ {
		prev := activities[i-1]
		next := activities[i]
		candidate := model.Activity{
			Type:      model.ActivityBreak,
			TaskIndex: idx,
			Place: model.Place{
				ServiceDuration: brk.Duration,
				TimeWindows:     []model.TimeWindow{brk.Window},
			},
		}
		ctx := model.ActivityContext{Prev: &prev, Candidate: &candidate, Next: &next}

		v := pipeline.EvaluateActivity(r, ctx)
		if v != nil && v.Stopped {
			continue
		}
		cost := 0.0
		if v != nil {
			cost = v.Cost
		}
		if !found || cost < best.cost {
			best = slotCandidate{index: i, activity: candidate, cost: cost}
			found = true
		}
	}

	if !found {
		return false
	}
	r.Tour.InsertAt(best.index, best.activity)
	return true
}
