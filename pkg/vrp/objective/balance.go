package objective

import (
	"github.com/routewise/vrp-engine/pkg/vrp/constraint"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"
)

// WorkBalance scores how evenly routed work is spread across used routes
// along one dimension, using the same standard-deviation-of-utilization
// measure as the paired constraint.WorkBalanceConstraint, normalized
// against MaxStdDev before weighting.
type WorkBalance struct {
	Dimension constraint.WorkBalanceDimension
	Module    constraint.WorkBalanceConstraint
	Weight    float64
	MaxStdDev float64
	Goal      *ValueGoal
}

func (o WorkBalance) Name() string {
	switch o.Dimension {
	case constraint.BalanceActivities:
		return "balance-activities"
	case constraint.BalanceDistance:
		return "balance-distance"
	case constraint.BalanceDuration:
		return "balance-duration"
	default:
		return "balance-max-load"
	}
}

func (o WorkBalance) EstimateCost(rctx *RefinementContext, ctx *solution.InsertionContext) float64 {
	var values []float64
	used := ctx.Solution.UsedVehicleIDs()
	for _, r := range ctx.Solution.Routes() {
		if !used[r.Vehicle.ID] {
			continue
		}
		values = append(values, o.Module.Measure(r))
	}
	stddev := constraint.StandardDeviation(values)

	maxStdDev := o.MaxStdDev
	if maxStdDev == 0 {
		maxStdDev = 1
	}
	weight := o.Weight
	if weight == 0 {
		weight = 1
	}
	return (stddev / maxStdDev) * weight
}

func (o WorkBalance) IsGoalSatisfied(rctx *RefinementContext, ctx *solution.InsertionContext) *bool {
	if o.Goal == nil {
		return nil
	}
	return o.Goal.Evaluate(rctx, o.EstimateCost(rctx, ctx))
}
