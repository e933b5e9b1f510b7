package refinement

import (
	"github.com/routewise/vrp-engine/pkg/vrp/objective"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"
)

// MultiComparator adapts an objective.Multi (whose Compare takes a
// RefinementContext) to population.Comparator's narrower two-argument
// signature, sharing the same RefinementContext pointer as the Driver so
// ranking always reflects the generation/cost-history the driver is
// currently on.
type MultiComparator struct {
	Multi     *objective.Multi
	Objective *objective.RefinementContext
}

func (c MultiComparator) Compare(a, b *solution.InsertionContext) int {
	return c.Multi.Compare(c.Objective, a, b)
}
