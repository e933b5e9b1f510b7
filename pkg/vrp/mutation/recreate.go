package mutation

import (
	"math"

	"github.com/routewise/vrp-engine/pkg/vrp/constraint"
	"github.com/routewise/vrp-engine/pkg/vrp/insertion"
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"
)

// RecreateHeuristic reinserts every job in ctx.Solution.Required, leaving
// any job that found no legal route in ctx.Solution.Unassigned.
type RecreateHeuristic interface {
	Name() string
	Recreate(ctx *solution.InsertionContext)
}

// evaluateAllRoutes scores job against every route in ctx.Solution, in
// route order, returning the lowest-cost legal placement and the
// highest-severity violation code seen across every attempt (for the
// unassigned reason when nothing works).
func evaluateAllRoutes(ctx *solution.InsertionContext, job *model.Job) (int, insertion.Result, bool) {
	bestIdx := -1
	var best insertion.Result
	found := false
	worstCode := constraint.CodeNone

	for i, r := range ctx.Solution.Routes() {
		result := insertion.EvaluateJobInsertionInRoute(ctx.Pipeline, ctx.Solution, job, r, insertion.PositionAny)
		if !result.Success() {
			if result.ConstraintCode > worstCode {
				worstCode = result.ConstraintCode
			}
			continue
		}
		if !found || result.Cost < best.Cost {
			best = result
			bestIdx = i
			found = true
		}
	}
	if !found {
		if worstCode == constraint.CodeCapacity {
			if idx, result, ok := retryWithReload(ctx, job); ok {
				return idx, result, true
			}
		}
		best.ConstraintCode = worstCode
	}
	return bestIdx, best, found
}

// retryWithReload gives a capacity-rejected job a second chance: each
// reload-capable route gets a reload stop appended and the job re-evaluated
// for the slots after it, so cumulative load has actually reset by the time
// the job is serviced. The stop stays only on the route where the retry
// succeeds; everywhere else it is removed again.
func retryWithReload(ctx *solution.InsertionContext, job *model.Job) (int, insertion.Result, bool) {
	for i, r := range ctx.Solution.Routes() {
		if !insertion.ScheduleReload(ctx.Pipeline, r) {
			continue
		}
		result := insertion.EvaluateJobInsertionInRoute(ctx.Pipeline, ctx.Solution, job, r, insertion.PositionLast)
		if result.Success() {
			return i, result, true
		}
		insertion.UnscheduleTrailingReload(ctx.Pipeline, r)
	}
	return -1, insertion.Result{}, false
}

func applyBest(ctx *solution.InsertionContext, job *model.Job, routeIdx int, result insertion.Result) {
	r := ctx.Solution.Routes()[routeIdx]
	insertion.Apply(ctx.Pipeline, ctx.Solution, r, job, result)
}

func markUnassigned(ctx *solution.InsertionContext, job *model.Job, result insertion.Result) {
	ctx.Solution.MarkUnassigned(job, solution.UnassignedReason{
		Code:        result.ConstraintCode,
		Description: result.Reason,
	})
}

// CheapestInsertion processes Required jobs in their existing order,
// inserting each into whichever route+slot is currently cheapest.
type CheapestInsertion struct{}

func (CheapestInsertion) Name() string { return "cheapest_insertion" }

func (CheapestInsertion) Recreate(ctx *solution.InsertionContext) {
	jobs := ctx.Solution.Required
	ctx.Solution.Required = nil
	for _, job := range jobs {
		idx, result, ok := evaluateAllRoutes(ctx, job)
		if !ok {
			markUnassigned(ctx, job, result)
			continue
		}
		applyBest(ctx, job, idx, result)
	}
}

// RandomOrder shuffles Required before running the same cheapest-insertion
// pass, decoupling placement order from the ruin operator's detach order.
type RandomOrder struct{}

func (RandomOrder) Name() string { return "random_order" }

func (RandomOrder) Recreate(ctx *solution.InsertionContext) {
	jobs := ctx.Solution.Required
	ctx.Solution.Required = nil
	ctx.Random.Shuffle(len(jobs), func(i, j int) { jobs[i], jobs[j] = jobs[j], jobs[i] })
	for _, job := range jobs {
		idx, result, ok := evaluateAllRoutes(ctx, job)
		if !ok {
			markUnassigned(ctx, job, result)
			continue
		}
		applyBest(ctx, job, idx, result)
	}
}

// Regret computes, for every unrouted job, the cost gap between its best
// and second-best legal route placement, and inserts the job with the
// largest such gap first — the job with the least tolerance for being
// delayed to a later pass. Ties break by the lower job id.
type Regret struct{}

func (Regret) Name() string { return "regret" }

func (Regret) Recreate(ctx *solution.InsertionContext) {
	pending := ctx.Solution.Required
	ctx.Solution.Required = nil

	for len(pending) > 0 {
		type scored struct {
			jobIdx      int
			regret      float64
			bestRouteIdx int
			bestResult  insertion.Result
			anyLegal    bool
			worstResult insertion.Result
		}

		var chosen scored
		chosen.jobIdx = -1

		for i, job := range pending {
			best, secondBest := math.Inf(1), math.Inf(1)
			bestIdx := -1
			var bestResult, worstResult insertion.Result
			anyLegal := false
			worstCode := constraint.CodeNone

			for ri, r := range ctx.Solution.Routes() {
				result := insertion.EvaluateJobInsertionInRoute(ctx.Pipeline, ctx.Solution, job, r, insertion.PositionAny)
				if !result.Success() {
					if result.ConstraintCode > worstCode {
						worstCode = result.ConstraintCode
						worstResult = result
					}
					continue
				}
				anyLegal = true
				if result.Cost < best {
					secondBest = best
					best = result.Cost
					bestIdx = ri
					bestResult = result
				} else if result.Cost < secondBest {
					secondBest = result.Cost
				}
			}

			regret := 0.0
			if anyLegal && !math.IsInf(secondBest, 1) {
				regret = secondBest - best
			} else if anyLegal {
				regret = math.Inf(1) // only one legal route: maximal urgency
			}

			if chosen.jobIdx == -1 || (anyLegal && !chosen.anyLegal) || (anyLegal && chosen.anyLegal && (regret > chosen.regret || (regret == chosen.regret && job.ID < pending[chosen.jobIdx].ID))) {
				chosen = scored{
					jobIdx:       i,
					regret:       regret,
					bestRouteIdx: bestIdx,
					bestResult:   bestResult,
					anyLegal:     anyLegal,
					worstResult:  worstResult,
				}
			}
		}

		job := pending[chosen.jobIdx]
		pending = append(pending[:chosen.jobIdx], pending[chosen.jobIdx+1:]...)

		if !chosen.anyLegal {
			if chosen.worstResult.ConstraintCode == constraint.CodeCapacity {
				if idx, result, ok := retryWithReload(ctx, job); ok {
					applyBest(ctx, job, idx, result)
					continue
				}
			}
			markUnassigned(ctx, job, chosen.worstResult)
			continue
		}
		applyBest(ctx, job, chosen.bestRouteIdx, chosen.bestResult)
	}
}
