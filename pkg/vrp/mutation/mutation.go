package mutation

import (
	"github.com/routewise/vrp-engine/pkg/vrp/insertion"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"
)

// Mutator is the refinement driver's single mutation step.
type Mutator interface {
	Mutate(ctx *solution.InsertionContext) *solution.InsertionContext
}

// weighted pairs a RuinOperator with its selection weight for RuinRecreate's
// weighted choice.
type weighted struct {
	op     RuinOperator
	weight float64
}

// RuinRecreate composes one weighted-choice ruin operator with a single
// always-run recreate heuristic. It mutates a cloned copy of the incoming
// context (never the caller's), so the working incumbent from the previous
// generation is left untouched until the driver decides whether to accept
// the result.
type RuinRecreate struct {
	Ruins    []weighted
	Recreate RecreateHeuristic
	// Cancelled, when set, is checked between the ruin and recreate steps.
	// A cancelled mutation skips recreate: every detached job is already in
	// Required and every touched route's state cache is fresh, so the
	// returned context is consistent, just unfinished.
	Cancelled func() bool
}

// NewRuinRecreate builds a composed mutator from ruin operators and their
// relative weights (same length as ops), plus a single recreate heuristic.
func NewRuinRecreate(ops []RuinOperator, weights []float64, recreate RecreateHeuristic) *RuinRecreate {
	rr := &RuinRecreate{Recreate: recreate}
	for i, op := range ops {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		rr.Ruins = append(rr.Ruins, weighted{op: op, weight: w})
	}
	return rr
}

func (rr *RuinRecreate) Mutate(ctx *solution.InsertionContext) *solution.InsertionContext {
	next := ctx.Clone()
	if len(rr.Ruins) > 0 {
		weights := make([]float64, len(rr.Ruins))
		for i, w := range rr.Ruins {
			weights[i] = w.weight
		}
		chosen := rr.Ruins[next.Random.WeightedChoice(weights)]
		chosen.op.Ruin(next)
	}
	if rr.Cancelled != nil && rr.Cancelled() {
		next.Pipeline.AcceptSolutionState(next.Solution)
		return next
	}
	if rr.Recreate != nil {
		rr.Recreate.Recreate(next)
	}
	for _, r := range next.Solution.Routes() {
		insertion.ScheduleBreaks(next.Pipeline, r)
	}
	next.Pipeline.AcceptSolutionState(next.Solution)
	return next
}
