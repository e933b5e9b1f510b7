// Package insertion implements the constrained insertion evaluator:
// the single place that decides where, if anywhere, a job can legally be
// spliced into a route, and at what cost. Both recreate heuristics and the
// driver's initial seed construction go through this evaluator so insertion
// feasibility is checked exactly once, in one place.
package insertion

import (
	"github.com/routewise/vrp-engine/pkg/vrp/constraint"
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

// Position restricts which tour slots EvaluateJobInsertionInRoute considers.
type Position int

const (
	// PositionAny tries every legal interior slot.
	PositionAny Position = iota
	// PositionLast only tries appending just before the closing terminal.
	PositionLast
)

// ActivityPlacement is one subtask's resolved slot within a successful
// insertion: where in the tour it lands, and the activity record computed
// for it (window/arrival/departure already filled in by the constraint
// pipeline's EvaluateActivity).
type ActivityPlacement struct {
	Index    int
	Activity model.Activity
}

// Result is the outcome of one insertion attempt. Success is indicated by
// ConstraintCode == constraint.CodeNone and Stopped == false; callers should
// check Stopped (or !Result.Success()) before trusting Activities/Cost.
type Result struct {
	Cost             float64
	Activities       []ActivityPlacement
	ConstraintCode   int
	Stopped          bool
	Reason           string
}

// Success reports whether the insertion was legal.
func (r Result) Success() bool { return !r.Stopped }

// failure builds a Stopped result carrying a violation's code and reason.
func failure(v *constraint.Violation) Result {
	if v == nil {
		return Result{Stopped: true, ConstraintCode: constraint.CodeNone, Reason: "no legal slot"}
	}
	return Result{Stopped: true, ConstraintCode: v.Code, Reason: v.Reason}
}

// EvaluateJobInsertionInRoute tries to place job into r, returning the
// cheapest legal (index, place, window) combination found, with stable
// tie-breaks: smaller index, lower place index, lower window index.
// For multi-subtask jobs every task is evaluated in sequence against
// progressively updated prospective tour state; if any subtask fails, the
// whole attempt fails and no partial placement is returned.
func EvaluateJobInsertionInRoute(
	pipeline *constraint.Pipeline,
	sol constraint.SolutionView,
	job *model.Job,
	r *route.Route,
	position Position,
) Result {
	if v := pipeline.EvaluateJob(sol, r, job); v != nil && v.Stopped {
		return failure(v)
	} else if v != nil && v.Code != constraint.CodeNone {
		// route-level soft cost folded into the running total below
		return evaluateSubtasks(pipeline, r, job, position, v.Cost)
	}
	return evaluateSubtasks(pipeline, r, job, position, 0)
}

// evaluateSubtasks places job.Tasks one after another into prospective tour
// positions, accumulating soft cost and failing the whole job on the first
// subtask that finds no legal slot. Each subsequent subtask's slot range
// starts after the previous subtask's chosen slot, so subtasks land in
// declaration order along the tour and a cost tie between before/after
// slots can never invert a pickup and its delivery.
func evaluateSubtasks(pipeline *constraint.Pipeline, r *route.Route, job *model.Job, position Position, baseCost float64) Result {
	placements := make([]ActivityPlacement, 0, len(job.Tasks))
	totalCost := baseCost

	// workingActivities models the tour as it would look with every
	// already-accepted subtask of this attempt spliced in, without
	// mutating r until the whole job is known to succeed.
	workingActivities := append([]model.Activity(nil), r.Tour.Activities...)

	minIndex := 1
	for taskIdx, task := range job.Tasks {
		best, ok, worstCode := bestSlotForTask(pipeline, r, workingActivities, job, taskIdx, task, position, minIndex)
		if !ok {
			return Result{Stopped: true, ConstraintCode: worstCode, Reason: "no legal slot for subtask"}
		}
		totalCost += best.cost
		placements = append(placements, ActivityPlacement{Index: best.index, Activity: best.activity})

		workingActivities = append(workingActivities[:best.index], append([]model.Activity{best.activity}, workingActivities[best.index:]...)...)
		minIndex = best.index + 1
	}

	if job.Kind == model.KindMulti && job.Validator != nil {
		order := subtaskOrder(workingActivities, job)
		if !job.Validator(order) {
			return Result{Stopped: true, ConstraintCode: constraint.CodeMultiJobOrder, Reason: "invalid multi-job subtask order"}
		}
	}

	return Result{Cost: totalCost, Activities: placements, ConstraintCode: constraint.CodeNone, Stopped: false}
}

type slotCandidate struct {
	index    int
	activity model.Activity
	cost     float64
}

// bestSlotForTask scans candidate indices (every interior slot, or only the
// last, per position), for each of the task's place's time windows, and
// keeps the minimum-cost legal combination. When no candidate is legal, it
// also reports the highest-severity violation code seen across every
// attempt, so a caller whose whole job fails can surface a meaningful
// reason rather than a bare "no legal slot".
func bestSlotForTask(
	pipeline *constraint.Pipeline,
	r *route.Route,
	activities []model.Activity,
	job *model.Job,
	taskIdx int,
	task model.SingleTask,
	position Position,
	minIndex int,
) (slotCandidate, bool, int) {
	var best slotCandidate
	found := false
	worstCode := constraint.CodeNone

	lo, hi := minIndex, len(activities)
	if lo < 1 {
		lo = 1
	}
	if position == PositionLast && lo < len(activities)-1 {
		lo = len(activities) - 1
	}

	for idx := lo; idx < hi; idx++ {
		prev := activities[idx-1]
		next := activities[idx]

		for _, w := range windowsOrDefault(task.Place.TimeWindows) {
			candidate := model.Activity{
				Type:      model.ActivityJob,
				Place:     task.Place,
				Window:    w,
				Job:       job,
				TaskIndex: taskIdx,
			}
			ctx := model.ActivityContext{Prev: &prev, Candidate: &candidate, Next: &next}

			v := pipeline.EvaluateActivity(r, ctx)
			if v != nil && v.Stopped {
				if v.Code > worstCode {
					worstCode = v.Code
				}
				continue
			}
			cost := 0.0
			if v != nil {
				cost = v.Cost
			}

			// Iteration already proceeds in (index, windowIdx) order, so a
			// strict less-than on cost keeps the first-seen slot among ties.
			if !found || cost < best.cost {
				best = slotCandidate{index: idx, activity: candidate, cost: cost}
				found = true
			}
		}
	}

	return best, found, worstCode
}

// windowsOrDefault returns the place's configured windows, or a single
// all-day window when none are configured (an unconstrained stop).
func windowsOrDefault(windows []model.TimeWindow) []model.TimeWindow {
	if len(windows) == 0 {
		return []model.TimeWindow{{Start: 0, End: 1e18}}
	}
	return windows
}

// subtaskOrder reconstructs the tour-order permutation of job's subtasks
// from the prospective activities slice, for validator consultation.
func subtaskOrder(activities []model.Activity, job *model.Job) []int {
	var order []int
	for _, a := range activities {
		if a.Job != nil && a.Job.ID == job.ID {
			order = append(order, a.TaskIndex)
		}
	}
	return order
}

// Apply splices a successful Result's placements into r and invokes the
// pipeline's AcceptInsertion/AcceptRouteState hooks, completing the
// insertion the caller already validated via EvaluateJobInsertionInRoute.
func Apply(pipeline *constraint.Pipeline, sol constraint.SolutionView, r *route.Route, job *model.Job, result Result) {
	if !result.Success() {
		return
	}
	for _, p := range result.Activities {
		r.Tour.InsertAt(p.Index, p.Activity)
	}
	pipeline.AcceptRouteState(r)
	pipeline.AcceptInsertion(sol, r, job)
}
