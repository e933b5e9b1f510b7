package refinement_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/routewise/vrp-engine/pkg/vrp/constraint"
	"github.com/routewise/vrp-engine/pkg/vrp/metrics"
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/objective"
	"github.com/routewise/vrp-engine/pkg/vrp/population"
	"github.com/routewise/vrp-engine/pkg/vrp/randsrc"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

// noOpMutator leaves the context untouched, isolating the driver's own loop
// mechanics (scoring, acceptance, termination, selection) from mutation.
type noOpMutator struct{}

func (noOpMutator) Mutate(ctx *solution.InsertionContext) *solution.InsertionContext {
	return ctx.Clone()
}

func newDriverTestSeed() *solution.InsertionContext {
	vehicle := model.NewVehicle("v1", "standard", model.Shift{Window: model.TimeWindow{Start: 0, End: 100}}, model.Demand{})
	r := route.NewRoute(vehicle)
	problem := &model.Problem{
		Fleet:          &model.Fleet{Vehicles: []*model.Vehicle{vehicle}},
		TransportCosts: &model.EuclideanTransportCosts{SpeedPerUnitTime: 1},
		ActivityCosts:  model.DefaultActivityCosts{},
	}
	return &solution.InsertionContext{
		Problem:  problem,
		Pipeline: constraint.NewPipeline(),
		Solution: &solution.SolutionContext{Routes_: []*route.Route{r}, Unassigned: make(map[string]solution.UnassignedReason)},
		Random:   randsrc.New(1),
	}
}

func TestDriverSolveStopsAtMaxGeneration(t *testing.T) {
	rctx := &objective.RefinementContext{}
	multi := &objective.Multi{
		Primary:      []objective.Objective{objective.TotalTransportCost{Weight: 1}},
		CostSelector: "minimize-cost",
	}
	pop := population.New(5, refinement.MultiComparator{Multi: multi, Objective: rctx})

	driver := &refinement.Driver{
		Mutator:     noOpMutator{},
		Multi:       multi,
		Population:  pop,
		Acceptance:  refinement.GreedyAcceptance{Multi: multi, Population: pop, AllowEqual: true},
		Termination: refinement.MaxGenerationTermination{Max: 3},
		Selection:   refinement.BestSelection{Population: pop},
		Objective:   rctx,
	}

	result, err := driver.Solve(newDriverTestSeed())
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if result.Generations != 3 {
		t.Errorf("Generations = %d, want 3", result.Generations)
	}
	if result.Cancelled {
		t.Error("a plain max-generation stop should not report Cancelled")
	}
	if result.Best == nil {
		t.Fatal("expected a best individual once at least one generation was accepted")
	}
}

func TestDriverSolveReportsCancelledOnTrippedQuota(t *testing.T) {
	rctx := &objective.RefinementContext{}
	multi := &objective.Multi{
		Primary:      []objective.Objective{objective.TotalTransportCost{Weight: 1}},
		CostSelector: "minimize-cost",
	}
	pop := population.New(5, refinement.MultiComparator{Multi: multi, Objective: rctx})
	quota := &refinement.Quota{}
	quota.Trip()

	driver := &refinement.Driver{
		Mutator:    noOpMutator{},
		Multi:      multi,
		Population: pop,
		Acceptance: refinement.GreedyAcceptance{Multi: multi, Population: pop, AllowEqual: true},
		Termination: refinement.CompositeTermination{Terminations: []refinement.Termination{
			refinement.MaxGenerationTermination{Max: 1000},
			refinement.QuotaTermination{Quota: quota},
		}},
		Selection: refinement.BestSelection{Population: pop},
		Objective: rctx,
	}

	result, err := driver.Solve(newDriverTestSeed())
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !result.Cancelled {
		t.Error("expected Cancelled when the quota was already tripped before solving")
	}
	if result.Generations != 0 {
		t.Errorf("Generations = %d, want 0 (quota should stop on the very first generation)", result.Generations)
	}
}

// recordingObserver captures the driver's per-generation snapshots.
type recordingObserver struct {
	generations []int
	costs       []float64
}

func (o *recordingObserver) ObserveGeneration(generation int, bestCost float64, tours, unassigned int) {
	o.generations = append(o.generations, generation)
	o.costs = append(o.costs, bestCost)
}

func TestDriverNotifiesObserverEveryGeneration(t *testing.T) {
	rctx := &objective.RefinementContext{}
	multi := &objective.Multi{
		Primary:      []objective.Objective{objective.TotalTransportCost{Weight: 1}},
		CostSelector: "minimize-cost",
	}
	pop := population.New(5, refinement.MultiComparator{Multi: multi, Objective: rctx})
	obs := &recordingObserver{}

	driver := &refinement.Driver{
		Mutator:     noOpMutator{},
		Multi:       multi,
		Population:  pop,
		Acceptance:  refinement.GreedyAcceptance{Multi: multi, Population: pop, AllowEqual: true},
		Termination: refinement.MaxGenerationTermination{Max: 2},
		Selection:   refinement.BestSelection{Population: pop},
		Observer:    obs,
		Objective:   rctx,
	}

	if _, err := driver.Solve(newDriverTestSeed()); err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if len(obs.generations) != 3 {
		t.Fatalf("observer saw %d generations, want 3 (0, 1, and the terminating 2)", len(obs.generations))
	}
	for i, g := range obs.generations {
		if g != i {
			t.Errorf("observation %d reports generation %d, want %d", i, g, i)
		}
	}
}

// rejectAll admits nothing, forcing the empty-population termination path.
type rejectAll struct{}

func (rejectAll) IsAccepted(rctx *objective.RefinementContext, ind *population.Individual) bool {
	return false
}

func TestDriverSolveReturnsErrNoSolutionOnEmptyPopulation(t *testing.T) {
	rctx := &objective.RefinementContext{}
	multi := &objective.Multi{
		Primary:      []objective.Objective{objective.TotalTransportCost{Weight: 1}},
		CostSelector: "minimize-cost",
	}
	pop := population.New(5, refinement.MultiComparator{Multi: multi, Objective: rctx})

	driver := &refinement.Driver{
		Mutator:     noOpMutator{},
		Multi:       multi,
		Population:  pop,
		Acceptance:  rejectAll{},
		Termination: refinement.MaxGenerationTermination{Max: 0},
		Selection:   refinement.BestSelection{Population: pop},
		Objective:   rctx,
	}

	result, err := driver.Solve(newDriverTestSeed())
	if !errors.Is(err, refinement.ErrNoSolution) {
		t.Fatalf("Solve() error = %v, want ErrNoSolution", err)
	}
	if result.Best != nil {
		t.Error("Best should be nil when nothing was ever accepted")
	}
}

func TestDriverUpdatesMetricsAndRendersChart(t *testing.T) {
	rctx := &objective.RefinementContext{}
	multi := &objective.Multi{
		Primary:      []objective.Objective{objective.TotalTransportCost{Weight: 1}},
		CostSelector: "minimize-cost",
	}
	pop := population.New(5, refinement.MultiComparator{Multi: multi, Objective: rctx})
	reg := prometheus.NewRegistry()
	m := metrics.NewRegistry(reg)
	var chart bytes.Buffer

	driver := &refinement.Driver{
		Mutator:     noOpMutator{},
		Multi:       multi,
		Population:  pop,
		Acceptance:  refinement.GreedyAcceptance{Multi: multi, Population: pop, AllowEqual: true},
		Termination: refinement.MaxGenerationTermination{Max: 1},
		Selection:   refinement.BestSelection{Population: pop},
		Metrics:     m,
		Trace:       context.Background(),
		ChartWriter: &chart,
		Objective:   rctx,
	}

	if _, err := driver.Solve(newDriverTestSeed()); err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if got := testutil.ToFloat64(m.GenerationsTotal); got != 2 {
		t.Errorf("GenerationsTotal = %v, want 2 (generations 0 and 1)", got)
	}
	if got := testutil.ToFloat64(m.AcceptedTotal); got < 1 {
		t.Errorf("AcceptedTotal = %v, want at least the first accepted individual", got)
	}
	if got := testutil.ToFloat64(m.PopulationSize); got != 2 {
		t.Errorf("PopulationSize gauge = %v, want 2 (both equal-cost individuals admitted)", got)
	}
	if chart.Len() == 0 {
		t.Error("ChartWriter received no bytes; the cost-history render never ran")
	}
}
