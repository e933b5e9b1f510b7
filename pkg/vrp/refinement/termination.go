package refinement

import (
	"time"

	"github.com/routewise/vrp-engine/pkg/vrp/objective"
	"github.com/routewise/vrp-engine/pkg/vrp/population"
)

// Termination decides whether the driver should stop after the current
// generation. Kinds are ORed together by CompositeTermination: any one
// triggering stops the run.
type Termination interface {
	Name() string
	IsTermination(rctx *objective.RefinementContext, ind *population.Individual, accepted bool) bool
}

// MaxGenerationTermination stops once RefinementContext.Generation reaches Max.
type MaxGenerationTermination struct {
	Max int
}

func (MaxGenerationTermination) Name() string { return "max_generation" }

func (t MaxGenerationTermination) IsTermination(rctx *objective.RefinementContext, ind *population.Individual, accepted bool) bool {
	return rctx.Generation >= t.Max
}

// MaxTimeTermination stops once the wall-clock budget since Start has elapsed.
type MaxTimeTermination struct {
	Start   time.Time
	Budget  time.Duration
}

func (MaxTimeTermination) Name() string { return "max_time" }

func (t MaxTimeTermination) IsTermination(rctx *objective.RefinementContext, ind *population.Individual, accepted bool) bool {
	return time.Since(t.Start) >= t.Budget
}

// VariationTermination delegates to a ValueGoal's variation criterion
// (plateau detection over the trailing cost-history window).
type VariationTermination struct {
	Goal *objective.ValueGoal
}

func (VariationTermination) Name() string { return "variation" }

func (t VariationTermination) IsTermination(rctx *objective.RefinementContext, ind *population.Individual, accepted bool) bool {
	satisfied := t.Goal.Evaluate(rctx, ind.Cost)
	return satisfied != nil && *satisfied
}

// GoalTermination stops once the multi-objective's own goal check passes.
type GoalTermination struct {
	Multi *objective.Multi
}

func (GoalTermination) Name() string { return "goal" }

func (t GoalTermination) IsTermination(rctx *objective.RefinementContext, ind *population.Individual, accepted bool) bool {
	return t.Multi.IsGoalSatisfied(rctx, ind.Context)
}

// QuotaTermination stops once the shared Quota flag is tripped.
type QuotaTermination struct {
	Quota *Quota
}

func (QuotaTermination) Name() string { return "quota" }

func (t QuotaTermination) IsTermination(rctx *objective.RefinementContext, ind *population.Individual, accepted bool) bool {
	return t.Quota.IsReached()
}

// CompositeTermination ORs any number of Terminations together.
type CompositeTermination struct {
	Terminations []Termination
}

func (CompositeTermination) Name() string { return "composite" }

func (c CompositeTermination) IsTermination(rctx *objective.RefinementContext, ind *population.Individual, accepted bool) bool {
	for _, t := range c.Terminations {
		if t.IsTermination(rctx, ind, accepted) {
			return true
		}
	}
	return false
}
