// Package refinement implements the generation-by-generation refinement
// driver: mutate, score, accept, terminate, goal-check, select, in that
// order, each generation, until a termination predicate or the objective's
// goal check stops the run.
package refinement

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/trace"

	"github.com/routewise/vrp-engine/pkg/vrp/diagnostics"
	"github.com/routewise/vrp-engine/pkg/vrp/logging"
	"github.com/routewise/vrp-engine/pkg/vrp/metrics"
	"github.com/routewise/vrp-engine/pkg/vrp/mutation"
	"github.com/routewise/vrp-engine/pkg/vrp/objective"
	"github.com/routewise/vrp-engine/pkg/vrp/population"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"
	"github.com/routewise/vrp-engine/pkg/vrp/tracing"
)

// RefinementState is the read/write state the driver threads across
// generations: the current working incumbent and the shared objective
// bookkeeping (generation count, cost history) termination/goal checks read.
type RefinementState struct {
	Incumbent *solution.InsertionContext
	Objective *objective.RefinementContext
}

// Observer receives one snapshot per generation, after acceptance has been
// decided. emit.Recorder satisfies it to collect per-iteration diagnostics.
type Observer interface {
	ObserveGeneration(generation int, bestCost float64, tours, unassigned int)
}

// Driver owns one complete refinement run: population, mutator, objective,
// acceptance, termination, and the logging sink notified at the run's
// checkpoints.
type Driver struct {
	Mutator     mutation.Mutator
	Multi       *objective.Multi
	Population  *population.Population
	Acceptance  Acceptance
	Termination Termination
	Selection   Selection
	Log         logging.LineSink
	// Observer, when set, receives one diagnostic snapshot per generation.
	Observer Observer
	// Metrics, when set, has its counters incremented as generations run and
	// individuals are accepted, and its gauges refreshed at every
	// population-dump checkpoint and at termination.
	Metrics *metrics.Registry
	// Trace, when set, is the parent context one span per generation is
	// attached to. A process with no tracer provider installed gets otel's
	// no-op tracer, so leaving this set is cheap.
	Trace context.Context
	// ChartWriter, when set, receives the cost-history chart render at every
	// population-dump checkpoint.
	ChartWriter io.Writer
	// Objective is the shared cross-generation bookkeeping struct. It must
	// be the same pointer handed to any MultiComparator wired into
	// Population, so ranking and goal/termination checks agree on one
	// generation count and cost history; a nil Objective gets a fresh one.
	Objective *objective.RefinementContext
}

// ErrNoSolution is returned when a run terminates with an empty population;
// the caller decides whether that is fatal.
var ErrNoSolution = errors.New("refinement: no solution found")

// Result is what Solve returns: the best individual found and whether the
// run stopped because of a tripped quota (cancellation) rather than a
// normal termination predicate.
type Result struct {
	Best        *population.Individual
	Cancelled   bool
	Generations int
}

// Solve runs generations until a termination predicate (or the goal check)
// fires, starting from the given seed context. It returns ErrNoSolution if
// the population is still empty at termination, and a wrapped
// StructuralError if the best individual's tour invariants do not hold.
func (d *Driver) Solve(seed *solution.InsertionContext) (Result, error) {
	rctx := d.Objective
	if rctx == nil {
		rctx = &objective.RefinementContext{}
	}
	state := &RefinementState{
		Incumbent: seed,
		Objective: rctx,
	}

	var quota *Quota
	if qt, ok := findQuotaTermination(d.Termination); ok {
		quota = qt.Quota
	}

	for {
		var span trace.Span
		if d.Trace != nil {
			_, span = tracing.StartGeneration(d.Trace, state.Objective.Generation)
		}

		// 1. Mutate
		next := d.Mutator.Mutate(state.Incumbent)

		// 2. Score
		cost := d.Multi.EstimateCost(state.Objective, next)
		state.Objective.RecordCost(cost)

		// 3. Form individual
		ind := &population.Individual{
			Context:    next,
			Cost:       cost,
			Generation: state.Objective.Generation,
		}

		// 4. Accept
		accepted := d.Acceptance.IsAccepted(state.Objective, ind)

		// 5. Terminate
		terminated := d.Termination.IsTermination(state.Objective, ind, accepted)

		// 6. Goal check
		goalMet := d.Multi.IsGoalSatisfied(state.Objective, ind.Context)

		// 7. Add to population if accepted
		if accepted {
			d.Population.Add(ind)
			if d.Log != nil {
				d.Log(logging.AcceptanceLine(state.Objective.Generation, cost))
			}
		}

		if span != nil {
			tracing.EndGeneration(span, cost, accepted)
		}
		if d.Metrics != nil {
			d.Metrics.GenerationsTotal.Inc()
			if accepted {
				d.Metrics.AcceptedTotal.Inc()
			}
		}

		d.observe(state.Objective.Generation)
		d.logCheckpoints(state.Objective.Generation, cost, goalMet, terminated)
		if state.Objective.Generation%1000 == 0 {
			d.dumpCheckpoint(state.Objective)
		}

		if terminated || goalMet {
			if state.Objective.Generation%1000 != 0 {
				d.dumpCheckpoint(state.Objective)
			}
			result := Result{
				Best:        d.Population.Best(),
				Cancelled:   quota != nil && quota.IsReached(),
				Generations: state.Objective.Generation,
			}
			if result.Best == nil {
				return result, ErrNoSolution
			}
			if err := solution.ValidateStructure(result.Best.Context.Solution); err != nil {
				return result, fmt.Errorf("refinement: best individual is inconsistent: %w", err)
			}
			return result, nil
		}

		// 8. Select next incumbent
		state.Incumbent = d.Selection.Select(state)

		// 9. Increment generation
		state.Objective.Generation++
	}
}

// observe feeds the per-generation snapshot (best-so-far, not this
// generation's candidate) to the configured Observer.
func (d *Driver) observe(generation int) {
	if d.Observer == nil {
		return
	}
	best := d.Population.Best()
	if best == nil {
		return
	}
	d.Observer.ObserveGeneration(
		generation,
		best.Cost,
		len(best.Context.Solution.UsedVehicleIDs()),
		len(best.Context.Solution.Unassigned),
	)
}

// dumpCheckpoint refreshes the metric gauges and renders the cost-history
// chart, at the same cadence as the population-dump log line and once more
// at termination.
func (d *Driver) dumpCheckpoint(rctx *objective.RefinementContext) {
	best := d.Population.Best()
	if best == nil {
		return
	}
	if d.Metrics != nil {
		d.Metrics.Refresh(
			best.Cost,
			len(best.Context.Solution.Unassigned),
			len(best.Context.Solution.UsedVehicleIDs()),
			d.Population.Len(),
		)
	}
	if d.ChartWriter != nil {
		samples := make([]diagnostics.Sample, len(rctx.CostHistory))
		for i, c := range rctx.CostHistory {
			samples[i] = diagnostics.Sample{Generation: i, Cost: c}
		}
		if err := diagnostics.RenderCostHistory(d.ChartWriter, "refinement", samples); err != nil && d.Log != nil {
			d.Log("chart render failed: " + err.Error())
		}
	}
}

func (d *Driver) logCheckpoints(generation int, cost float64, goalMet, terminated bool) {
	if d.Log == nil {
		return
	}
	if generation%100 == 0 {
		d.Log(logging.ProgressLine(generation, cost))
	}
	if generation%1000 == 0 {
		d.Log(logging.PopulationDumpLine(generation, d.Population.Len()))
	}
	if goalMet {
		d.Log(logging.GoalSatisfiedLine(generation, cost))
	}
	if terminated {
		d.Log(logging.TerminationLine(generation, cost))
	}
}

func findQuotaTermination(t Termination) (QuotaTermination, bool) {
	switch v := t.(type) {
	case QuotaTermination:
		return v, true
	case CompositeTermination:
		for _, inner := range v.Terminations {
			if qt, ok := findQuotaTermination(inner); ok {
				return qt, ok
			}
		}
	}
	return QuotaTermination{}, false
}
