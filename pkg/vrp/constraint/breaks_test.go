package constraint_test

import (
	"testing"

	"github.com/routewise/vrp-engine/pkg/vrp/constraint"
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

func newVehicleWithBreaks(n int) *model.Vehicle {
	breaks := make([]model.Break, n)
	for i := range breaks {
		breaks[i] = model.Break{Window: model.TimeWindow{Start: 0, End: 1000}, Duration: 10}
	}
	return model.NewVehicle("v1", "standard", model.Shift{
		Window: model.TimeWindow{Start: 0, End: 1000},
		Breaks: breaks,
	}, model.Demand{})
}

func TestBreakConstraintEvaluateActivityRejectsOutsideWindow(t *testing.T) {
	c := constraint.BreakConstraint{}
	r := route.NewRoute(newVehicleWithBreaks(1))

	candidate := model.Activity{Type: model.ActivityBreak, Window: model.TimeWindow{Start: 0, End: 10}, Arrival: 50}
	ctx := model.ActivityContext{Candidate: &candidate}

	v := c.EvaluateActivity(r, ctx)
	if v == nil || !v.Stopped || v.Code != constraint.CodeBreak {
		t.Errorf("EvaluateActivity() = %v, want a stopped CodeBreak violation", v)
	}
}

func TestBreakConstraintEvaluateActivityAcceptsWithinWindow(t *testing.T) {
	c := constraint.BreakConstraint{}
	r := route.NewRoute(newVehicleWithBreaks(1))

	candidate := model.Activity{Type: model.ActivityBreak, Window: model.TimeWindow{Start: 0, End: 100}, Arrival: 50}
	ctx := model.ActivityContext{Candidate: &candidate}

	if v := c.EvaluateActivity(r, ctx); v != nil {
		t.Errorf("EvaluateActivity() = %v, want nil for an in-window break", v)
	}
}

func TestBreakConstraintEvaluateActivityIgnoresNonBreakActivities(t *testing.T) {
	c := constraint.BreakConstraint{}
	r := route.NewRoute(newVehicleWithBreaks(1))
	candidate := model.Activity{Type: model.ActivityJob}
	ctx := model.ActivityContext{Candidate: &candidate}

	if v := c.EvaluateActivity(r, ctx); v != nil {
		t.Errorf("EvaluateActivity() = %v, want nil for a non-break activity", v)
	}
}

func TestBreakConstraintAcceptRouteStateTracksUnscheduledBreaks(t *testing.T) {
	c := constraint.BreakConstraint{}
	r := route.NewRoute(newVehicleWithBreaks(2))

	c.AcceptRouteState(r)
	if got := constraint.RemainingBreaks(r); len(got) != 2 {
		t.Fatalf("RemainingBreaks() = %v, want both breaks unscheduled", got)
	}

	r.Tour.InsertLast(model.Activity{Type: model.ActivityBreak, TaskIndex: 0})
	c.AcceptRouteState(r)

	remaining := constraint.RemainingBreaks(r)
	if len(remaining) != 1 || remaining[0] != 1 {
		t.Errorf("RemainingBreaks() = %v, want only index 1 remaining", remaining)
	}
}

func TestRemainingBreaksDefaultsToAllBeforeAcceptRouteState(t *testing.T) {
	r := route.NewRoute(newVehicleWithBreaks(3))
	got := constraint.RemainingBreaks(r)
	if len(got) != 3 {
		t.Errorf("RemainingBreaks() before any AcceptRouteState call = %v, want all 3 indices", got)
	}
}

func TestBreakConstraintEvaluateJobAllowsFreshRoute(t *testing.T) {
	c := constraint.BreakConstraint{}
	r := route.NewRoute(newVehicleWithBreaks(1))
	sol := &fakeSolutionView{routes: []*route.Route{r}}

	if v := c.EvaluateJob(sol, r, &model.Job{ID: "j1"}); v != nil {
		t.Errorf("EvaluateJob() = %v, want nil for a route never visited by AcceptRouteState", v)
	}
}

func TestBreakConstraintEvaluateJobRejectsUnscheduledBreaks(t *testing.T) {
	c := constraint.BreakConstraint{}
	r := route.NewRoute(newVehicleWithBreaks(1))
	sol := &fakeSolutionView{routes: []*route.Route{r}}

	c.AcceptRouteState(r)
	v := c.EvaluateJob(sol, r, &model.Job{ID: "j1"})
	if v == nil || !v.Stopped || v.Code != constraint.CodeBreak {
		t.Errorf("EvaluateJob() = %v, want a stopped CodeBreak violation once a break is outstanding", v)
	}
}

func TestBreakConstraintEvaluateJobAllowsWhenAllBreaksScheduled(t *testing.T) {
	c := constraint.BreakConstraint{}
	r := route.NewRoute(newVehicleWithBreaks(1))
	sol := &fakeSolutionView{routes: []*route.Route{r}}

	r.Tour.InsertLast(model.Activity{Type: model.ActivityBreak, TaskIndex: 0})
	c.AcceptRouteState(r)

	if v := c.EvaluateJob(sol, r, &model.Job{ID: "j1"}); v != nil {
		t.Errorf("EvaluateJob() = %v, want nil once every break is scheduled", v)
	}
}

func TestBreakConstraintAcceptSolutionStateRefreshesEveryRoute(t *testing.T) {
	c := constraint.BreakConstraint{}
	r1 := route.NewRoute(newVehicleWithBreaks(1))
	r2 := route.NewRoute(newVehicleWithBreaks(1))
	r2.Tour.InsertLast(model.Activity{Type: model.ActivityBreak, TaskIndex: 0})
	sol := &fakeSolutionView{routes: []*route.Route{r1, r2}}

	c.AcceptSolutionState(sol)

	if got := constraint.RemainingBreaks(r1); len(got) != 1 {
		t.Errorf("RemainingBreaks(r1) = %v, want 1 outstanding break", got)
	}
	if got := constraint.RemainingBreaks(r2); len(got) != 0 {
		t.Errorf("RemainingBreaks(r2) = %v, want no outstanding breaks", got)
	}
}
