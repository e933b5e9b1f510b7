package objective_test

import (
	"testing"

	"github.com/routewise/vrp-engine/pkg/vrp/objective"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"
)

func TestTotalUnassignedJobsCounts(t *testing.T) {
	sol := &solution.SolutionContext{
		Unassigned: map[string]solution.UnassignedReason{
			"j1": {Code: 1, Description: "capacity"},
			"j2": {Code: 2, Description: "time window"},
		},
	}
	ctx := &solution.InsertionContext{Solution: sol}

	o := objective.TotalUnassignedJobs{}
	if got := o.EstimateCost(&objective.RefinementContext{}, ctx); got != 2 {
		t.Errorf("EstimateCost() = %v, want 2", got)
	}
}

func TestTotalUnassignedJobsGoal(t *testing.T) {
	o := objective.TotalUnassignedJobs{Goal: &objective.ValueGoal{Value: 0}}
	ctx := &solution.InsertionContext{Solution: &solution.SolutionContext{}}
	got := o.IsGoalSatisfied(&objective.RefinementContext{}, ctx)
	if got == nil || !*got {
		t.Errorf("IsGoalSatisfied() with zero unassigned = %v, want true", got)
	}
}
