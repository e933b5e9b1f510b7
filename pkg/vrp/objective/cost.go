package objective

import "github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"

// TotalTransportCost sums travel distance (scaled by Weight) across every
// used route's tour, backing the minimize-cost objective kind.
type TotalTransportCost struct {
	Weight float64
	Goal   *ValueGoal
}

func (TotalTransportCost) Name() string { return "minimize-cost" }

func (o TotalTransportCost) EstimateCost(rctx *RefinementContext, ctx *solution.InsertionContext) float64 {
	weight := o.Weight
	if weight == 0 {
		weight = 1
	}
	total := 0.0
	for _, r := range ctx.Solution.Routes() {
		if r.Tour.ActivityCount() == 0 {
			continue
		}
		for i := 1; i < len(r.Tour.Activities); i++ {
			total += ctx.Problem.TransportCosts.Distance(
				r.Tour.Activities[i-1].Place.Location,
				r.Tour.Activities[i].Place.Location,
			)
		}
	}
	return total * weight
}

func (o TotalTransportCost) IsGoalSatisfied(rctx *RefinementContext, ctx *solution.InsertionContext) *bool {
	if o.Goal == nil {
		return nil
	}
	return o.Goal.Evaluate(rctx, o.EstimateCost(rctx, ctx))
}
