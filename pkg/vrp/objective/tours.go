package objective

import "github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"

// TotalRoutes counts used vehicles, the scalar minimize-tours pairs with
// FleetUsageConstraint's per-insertion penalty.
type TotalRoutes struct {
	Goal *ValueGoal
}

func (TotalRoutes) Name() string { return "minimize-tours" }

func (o TotalRoutes) EstimateCost(rctx *RefinementContext, ctx *solution.InsertionContext) float64 {
	return float64(len(ctx.Solution.UsedVehicleIDs()))
}

func (o TotalRoutes) IsGoalSatisfied(rctx *RefinementContext, ctx *solution.InsertionContext) *bool {
	if o.Goal == nil {
		return nil
	}
	return o.Goal.Evaluate(rctx, o.EstimateCost(rctx, ctx))
}
