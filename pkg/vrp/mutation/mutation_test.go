package mutation_test

import (
	"testing"

	"github.com/routewise/vrp-engine/pkg/vrp/constraint"
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/mutation"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

// fakeRandom is a deterministic stand-in for randsrc.Source: WeightedChoice
// and Intn always return a pre-set index, Shuffle is a no-op so ruin/recreate
// tests can assert on exact outcomes.
type fakeRandom struct {
	intn   int
	choice int
}

func (f *fakeRandom) Intn(n int) int                      { return f.intn }
func (f *fakeRandom) Float64() float64                    { return 0 }
func (f *fakeRandom) WeightedChoice(weights []float64) int { return f.choice }
func (f *fakeRandom) Shuffle(n int, swap func(i, j int))  {}

func newOneVehicleRoute(id string) *route.Route {
	vehicle := model.NewVehicle(id, "standard", model.Shift{Window: model.TimeWindow{Start: 0, End: 1000}}, model.Demand{})
	return route.NewRoute(vehicle)
}

func newTestContext(routes []*route.Route) *solution.InsertionContext {
	transport := &model.EuclideanTransportCosts{SpeedPerUnitTime: 1}
	vehicles := make([]*model.Vehicle, len(routes))
	for i, r := range routes {
		vehicles[i] = r.Vehicle
	}
	// model.Problem's own constructor rejects an empty fleet, which a test
	// covering "no route can take this job" deliberately wants; build the
	// struct directly rather than going through NewProblem in that case.
	problem := &model.Problem{
		Fleet:          &model.Fleet{Vehicles: vehicles},
		TransportCosts: transport,
		ActivityCosts:  model.DefaultActivityCosts{},
	}
	sol := &solution.SolutionContext{Routes_: routes, Unassigned: make(map[string]solution.UnassignedReason)}
	pipeline := constraint.NewPipeline()
	return &solution.InsertionContext{Problem: problem, Pipeline: pipeline, Solution: sol, Random: &fakeRandom{}}
}

type stubRecreate struct {
	called *int
}

func (stubRecreate) Name() string { return "stub" }
func (s stubRecreate) Recreate(ctx *solution.InsertionContext) {
	if s.called != nil {
		*s.called++
	}
	ctx.Solution.Required = nil
}

func TestRuinRecreateMutateClonesAndAppliesChosenOp(t *testing.T) {
	r := newOneVehicleRoute("v1")
	job := model.NewSingleJob("j1", model.SingleTask{})
	r.Tour.InsertLast(model.Activity{Type: model.ActivityJob, Job: job})
	ctx := newTestContext([]*route.Route{r})
	ctx.Random = &fakeRandom{choice: 0}

	called := 0
	rr := mutation.NewRuinRecreate(
		[]mutation.RuinOperator{mutation.RouteRemoval{}},
		[]float64{1},
		stubRecreate{called: &called},
	)

	next := rr.Mutate(ctx)

	if next == ctx {
		t.Fatal("Mutate() must return a cloned context, not the original")
	}
	if called != 1 {
		t.Errorf("recreate called %d times, want 1", called)
	}
	if r.Tour.ActivityCount() != 1 {
		t.Error("the original context's route must be untouched by Mutate")
	}
	if next.Solution.Routes()[0].Tour.ActivityCount() != 0 {
		t.Error("the cloned context's route should have had its job ruined")
	}
}

func TestRuinRecreateNoOpWhenNoRuinOperators(t *testing.T) {
	r := newOneVehicleRoute("v1")
	ctx := newTestContext([]*route.Route{r})
	called := 0
	rr := mutation.NewRuinRecreate(nil, nil, stubRecreate{called: &called})

	rr.Mutate(ctx)
	if called != 1 {
		t.Errorf("recreate should still run even with no ruin operators, called = %d", called)
	}
}

func TestRuinRecreateCancelledSkipsRecreate(t *testing.T) {
	r := newOneVehicleRoute("v1")
	job := model.NewSingleJob("j1", model.SingleTask{})
	r.Tour.InsertLast(model.Activity{Type: model.ActivityJob, Job: job})
	ctx := newTestContext([]*route.Route{r})
	ctx.Random = &fakeRandom{choice: 0}

	called := 0
	rr := mutation.NewRuinRecreate(
		[]mutation.RuinOperator{mutation.RouteRemoval{}},
		[]float64{1},
		stubRecreate{called: &called},
	)
	rr.Cancelled = func() bool { return true }

	next := rr.Mutate(ctx)

	if called != 0 {
		t.Errorf("recreate called %d times, want 0 after cancellation", called)
	}
	if len(next.Solution.Required) != 1 || next.Solution.Required[0].ID != "j1" {
		t.Errorf("Required = %v, want the ruined job re-queued for a consistent cancelled state", next.Solution.Required)
	}
}
