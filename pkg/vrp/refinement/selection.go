package refinement

import (
	"github.com/routewise/vrp-engine/pkg/vrp/population"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"
)

// Selection picks the next generation's working incumbent.
type Selection interface {
	Select(rctx *RefinementState) *solution.InsertionContext
}

// BestSelection always resumes from the population's current best,
// producing a straightforward hill-climbing search.
type BestSelection struct {
	Population *population.Population
}

func (s BestSelection) Select(rctx *RefinementState) *solution.InsertionContext {
	best := s.Population.Best()
	if best == nil {
		return rctx.Incumbent
	}
	return best.Context.Clone()
}

// RandomSelection resumes from a uniformly-chosen population member,
// trading greedy convergence for more exploration between generations.
type RandomSelection struct {
	Population *population.Population
	Random     interface{ Intn(int) int }
}

func (s RandomSelection) Select(rctx *RefinementState) *solution.InsertionContext {
	ind := s.Population.SelectRandom(s.Random)
	if ind == nil {
		return rctx.Incumbent
	}
	return ind.Context.Clone()
}
