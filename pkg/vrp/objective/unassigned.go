package objective

import "github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"

// TotalUnassignedJobs counts jobs recreate could not place anywhere,
// backing the minimize-unassigned objective kind.
type TotalUnassignedJobs struct {
	Goal *ValueGoal
}

func (TotalUnassignedJobs) Name() string { return "minimize-unassigned" }

func (o TotalUnassignedJobs) EstimateCost(rctx *RefinementContext, ctx *solution.InsertionContext) float64 {
	return float64(len(ctx.Solution.Unassigned))
}

func (o TotalUnassignedJobs) IsGoalSatisfied(rctx *RefinementContext, ctx *solution.InsertionContext) *bool {
	if o.Goal == nil {
		return nil
	}
	return o.Goal.Evaluate(rctx, o.EstimateCost(rctx, ctx))
}
