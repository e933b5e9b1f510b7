package constraint

import (
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

const breaksStateKey = "breaks.remaining"

// BreakConstraint is a hard module: every break configured on the route's
// vehicle shift must end up scheduled somewhere in the tour before the
// route is considered complete. It does not place breaks itself
// (insertion.ScheduleBreaks, the recreate-side counterpart, treats each
// Break like a tiny job with its own window); EvaluateJob rejects adding
// another job to a route whose break bookkeeping was last left non-empty,
// so an over-full route stops accepting work instead of crowding out the
// breaks it still owes its driver.
type BreakConstraint struct{}

func (BreakConstraint) Name() string { return "break" }

// EvaluateJob hard-rejects a route whose cached remaining-break set is
// known and non-empty. A route whose cache was never populated (brand new,
// or not yet visited by AcceptRouteState) is left alone rather than treated
// as having unscheduled breaks, since RemainingBreaks' zero-value fallback
// would otherwise make every fresh route permanently unroutable.
func (BreakConstraint) EvaluateJob(sol SolutionView, r *route.Route, job *model.Job) *Violation {
	v, ok := r.State(breaksStateKey)
	if !ok {
		return nil
	}
	if idxs, ok := v.([]int); ok && len(idxs) > 0 {
		return &Violation{Code: CodeBreak, Stopped: true, Reason: "route has unscheduled breaks"}
	}
	return nil
}

func (BreakConstraint) EvaluateActivity(r *route.Route, ctx model.ActivityContext) *Violation {
	if ctx.Candidate == nil || ctx.Candidate.Type != model.ActivityBreak {
		return nil
	}
	if !ctx.Candidate.Window.Contains(ctx.Candidate.Arrival) {
		return &Violation{Code: CodeBreak, Stopped: true, Reason: "break outside its window"}
	}
	return nil
}

func (BreakConstraint) AcceptInsertion(sol SolutionView, r *route.Route, job *model.Job) {}

// AcceptRouteState recomputes which of the vehicle's configured breaks have
// not yet been scheduled as an ActivityBreak in the tour.
func (BreakConstraint) AcceptRouteState(r *route.Route) {
	if len(r.Vehicle.Shifts) == 0 {
		return
	}
	scheduled := make(map[int]bool)
	for _, a := range r.Tour.Activities {
		if a.Type == model.ActivityBreak {
			scheduled[a.TaskIndex] = true
		}
	}
	var remaining []int
	for i := range r.Vehicle.Shifts[0].Breaks {
		if !scheduled[i] {
			remaining = append(remaining, i)
		}
	}
	r.SetState(breaksStateKey, remaining)
}

// AcceptSolutionState refreshes every route's remaining-break cache, so
// EvaluateJob's hard-reject reflects breaks placed or displaced by the ruin
// step that just ran, not a stale count from before it.
func (BreakConstraint) AcceptSolutionState(sol SolutionView) {
	for _, r := range sol.Routes() {
		BreakConstraint{}.AcceptRouteState(r)
	}
}

// RemainingBreaks reads the last-cached set of unscheduled break indices for
// r, or all of them if AcceptRouteState has never run.
func RemainingBreaks(r *route.Route) []int {
	if v, ok := r.State(breaksStateKey); ok {
		if idxs, ok := v.([]int); ok {
			return idxs
		}
	}
	if len(r.Vehicle.Shifts) == 0 {
		return nil
	}
	all := make([]int, len(r.Vehicle.Shifts[0].Breaks))
	for i := range all {
		all[i] = i
	}
	return all
}
