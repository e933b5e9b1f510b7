package refinement

import (
	"github.com/routewise/vrp-engine/pkg/vrp/objective"
	"github.com/routewise/vrp-engine/pkg/vrp/population"
)

// Acceptance decides whether a freshly-scored individual should be admitted
// into the population.
type Acceptance interface {
	IsAccepted(rctx *objective.RefinementContext, ind *population.Individual) bool
}

// GreedyAcceptance admits an individual only if it improves on (or, when
// AllowEqual is set, ties) the population's current best.
type GreedyAcceptance struct {
	Multi      *objective.Multi
	Population *population.Population
	AllowEqual bool
}

func (a GreedyAcceptance) IsAccepted(rctx *objective.RefinementContext, ind *population.Individual) bool {
	best := a.Population.Best()
	if best == nil {
		return true
	}
	cmp := a.Multi.Compare(rctx, ind.Context, best.Context)
	if cmp < 0 {
		return true
	}
	return a.AllowEqual && cmp == 0
}
