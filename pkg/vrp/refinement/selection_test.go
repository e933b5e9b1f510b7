package refinement_test

import (
	"testing"

	"github.com/routewise/vrp-engine/pkg/vrp/objective"
	"github.com/routewise/vrp-engine/pkg/vrp/population"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"
)

func TestBestSelectionReturnsPopulationBest(t *testing.T) {
	ctxBest, ctxWorse := &solution.InsertionContext{Solution: &solution.SolutionContext{}}, &solution.InsertionContext{Solution: &solution.SolutionContext{}}
	costs := map[*solution.InsertionContext]float64{ctxBest: 1, ctxWorse: 10}
	multi := &objective.Multi{Primary: []objective.Objective{costObjective{cost: costs}}}
	cmp := refinement.MultiComparator{Multi: multi, Objective: &objective.RefinementContext{}}

	pop := population.New(5, cmp)
	pop.Add(&population.Individual{Context: ctxWorse, Cost: 10})
	pop.Add(&population.Individual{Context: ctxBest, Cost: 1})

	sel := refinement.BestSelection{Population: pop}
	incumbent := &solution.InsertionContext{Solution: &solution.SolutionContext{}}
	got := sel.Select(&refinement.RefinementState{Incumbent: incumbent})

	if got == incumbent {
		t.Error("BestSelection should return the population's best, not fall through to the incumbent, when the population is non-empty")
	}
}

func TestBestSelectionFallsBackToIncumbentWhenEmpty(t *testing.T) {
	pop := population.New(5, refinement.MultiComparator{})
	sel := refinement.BestSelection{Population: pop}
	incumbent := &solution.InsertionContext{Solution: &solution.SolutionContext{}}

	if got := sel.Select(&refinement.RefinementState{Incumbent: incumbent}); got != incumbent {
		t.Error("BestSelection on an empty population should fall back to the current incumbent")
	}
}

type fixedRand struct{ n int }

func (f fixedRand) Intn(int) int { return f.n }

func TestRandomSelectionPicksByIndex(t *testing.T) {
	ctxA, ctxB := &solution.InsertionContext{Solution: &solution.SolutionContext{}}, &solution.InsertionContext{Solution: &solution.SolutionContext{}}
	costs := map[*solution.InsertionContext]float64{ctxA: 1, ctxB: 2}
	multi := &objective.Multi{Primary: []objective.Objective{costObjective{cost: costs}}}
	cmp := refinement.MultiComparator{Multi: multi, Objective: &objective.RefinementContext{}}

	pop := population.New(5, cmp)
	pop.Add(&population.Individual{Context: ctxA, Cost: 1})
	pop.Add(&population.Individual{Context: ctxB, Cost: 2})

	sel := refinement.RandomSelection{Population: pop, Random: fixedRand{n: 1}}
	incumbent := &solution.InsertionContext{Solution: &solution.SolutionContext{}}
	got := sel.Select(&refinement.RefinementState{Incumbent: incumbent})
	if got == incumbent {
		t.Error("RandomSelection should return a population member, not the incumbent, when non-empty")
	}
}
