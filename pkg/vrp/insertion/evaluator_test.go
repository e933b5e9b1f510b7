package insertion_test

import (
	"testing"

	"github.com/routewise/vrp-engine/pkg/vrp/constraint"
	"github.com/routewise/vrp-engine/pkg/vrp/insertion"
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

type fakeSolutionView struct {
	routes []*route.Route
}

func (f *fakeSolutionView) Routes() []*route.Route { return f.routes }
func (f *fakeSolutionView) UsedVehicleIDs() map[string]bool { return nil }

// distanceCostModule is a soft module charging prev->candidate travel
// distance as cost, standing in for a richer real cost module so tests can
// tell insertion slots apart without depending on a specific production
// constraint module's cost formula.
type distanceCostModule struct {
	transport model.TransportCosts
}

func (distanceCostModule) Name() string { return "distance_cost" }
func (distanceCostModule) EvaluateJob(sol constraint.SolutionView, r *route.Route, job *model.Job) *constraint.Violation {
	return nil
}
func (d distanceCostModule) EvaluateActivity(r *route.Route, ctx model.ActivityContext) *constraint.Violation {
	cost := d.transport.Distance(ctx.Prev.Place.Location, ctx.Candidate.Place.Location)
	return &constraint.Violation{Cost: cost}
}
func (distanceCostModule) AcceptInsertion(sol constraint.SolutionView, r *route.Route, job *model.Job) {}
func (distanceCostModule) AcceptRouteState(r *route.Route)                                             {}
func (distanceCostModule) AcceptSolutionState(sol constraint.SolutionView)                              {}

func newLinearRoute() (*route.Route, *constraint.Pipeline, model.TransportCosts) {
	transport := &model.EuclideanTransportCosts{SpeedPerUnitTime: 1}
	vehicle := model.NewVehicle("v1", "standard", model.Shift{
		Start:  model.Place{Location: model.Location{Lat: 0, Lng: 0}},
		End:    model.Place{Location: model.Location{Lat: 100, Lng: 0}},
		Window: model.TimeWindow{Start: 0, End: 1000},
	}, model.Demand{})
	r := route.NewRoute(vehicle)
	// an existing stop midway, so there are two interior slots to choose between.
	r.Tour.InsertLast(model.Activity{
		Type:  model.ActivityJob,
		Place: model.Place{Location: model.Location{Lat: 50, Lng: 0}},
	})
	pipeline := constraint.NewPipeline(distanceCostModule{transport: transport})
	return r, pipeline, transport
}

func TestEvaluateJobInsertionInRoutePicksCheapestSlot(t *testing.T) {
	r, pipeline, _ := newLinearRoute()
	// a candidate right next to the start (lat 1) is far cheaper to splice
	// into the first slot (0->1->50) than the second (50->1->100).
	job := model.NewSingleJob("near-start", model.SingleTask{Place: model.Place{Location: model.Location{Lat: 1, Lng: 0}}})

	result := insertion.EvaluateJobInsertionInRoute(pipeline, &fakeSolutionView{routes: []*route.Route{r}}, job, r, insertion.PositionAny)
	if !result.Success() {
		t.Fatalf("EvaluateJobInsertionInRoute() failed: %+v", result)
	}
	if len(result.Activities) != 1 || result.Activities[0].Index != 1 {
		t.Errorf("expected the cheapest slot to be index 1 (right after the start terminal), got %+v", result.Activities)
	}
}

func TestEvaluateJobInsertionInRouteTieBreaksOnLowerIndex(t *testing.T) {
	r, pipeline, _ := newLinearRoute()
	// a candidate exactly equidistant from both interior slots (lat 25, between
	// the start-side stop at 0 and the mid stop at 50): ties should favor the
	// lower index seen first during the scan.
	job := model.NewSingleJob("mid", model.SingleTask{Place: model.Place{Location: model.Location{Lat: 25, Lng: 0}}})

	result := insertion.EvaluateJobInsertionInRoute(pipeline, &fakeSolutionView{routes: []*route.Route{r}}, job, r, insertion.PositionAny)
	if !result.Success() {
		t.Fatalf("EvaluateJobInsertionInRoute() failed: %+v", result)
	}
	if result.Activities[0].Index != 1 {
		t.Errorf("expected the tie to favor the lower index, got index %d", result.Activities[0].Index)
	}
}

func TestEvaluateJobInsertionInRouteFailsOnHardViolation(t *testing.T) {
	transport := &model.EuclideanTransportCosts{SpeedPerUnitTime: 1}
	vehicle := model.NewVehicle("v1", "standard", model.Shift{Window: model.TimeWindow{Start: 0, End: 10}}, model.Demand{})
	r := route.NewRoute(vehicle)
	pipeline := constraint.NewPipeline(constraint.TimeWindowConstraint{Transport: transport, Activity: model.DefaultActivityCosts{}})

	job := model.NewSingleJob("unreachable", model.SingleTask{
		Place: model.Place{
			Location:    model.Location{Lat: 10000, Lng: 10000},
			TimeWindows: []model.TimeWindow{{Start: 0, End: 1}},
		},
	})

	result := insertion.EvaluateJobInsertionInRoute(pipeline, &fakeSolutionView{routes: []*route.Route{r}}, job, r, insertion.PositionAny)
	if result.Success() {
		t.Fatal("expected a stopped result for an unreachable time window")
	}
	if result.ConstraintCode != constraint.CodeTimeWindow {
		t.Errorf("ConstraintCode = %v, want CodeTimeWindow", result.ConstraintCode)
	}
}

func TestEvaluateJobInsertionInRouteOrdersSubtasksAlongTour(t *testing.T) {
	r, pipeline, _ := newLinearRoute()
	// The pickup's geographically cheapest slot is deep in the tour (lat 90);
	// the delivery (lat 10) would be cheapest near the start, but its slot
	// range begins after the pickup's, keeping declaration order intact.
	job := model.NewMultiJob("pickup-delivery", []model.SingleTask{
		{Place: model.Place{Location: model.Location{Lat: 90, Lng: 0}}},
		{Place: model.Place{Location: model.Location{Lat: 10, Lng: 0}}},
	}, model.PickupDeliveryValidator())

	sol := &fakeSolutionView{routes: []*route.Route{r}}
	result := insertion.EvaluateJobInsertionInRoute(pipeline, sol, job, r, insertion.PositionAny)
	if !result.Success() {
		t.Fatalf("EvaluateJobInsertionInRoute() failed: %+v", result)
	}
	if len(result.Activities) != 2 {
		t.Fatalf("placements = %d, want 2", len(result.Activities))
	}
	if result.Activities[1].Index <= result.Activities[0].Index {
		t.Errorf("delivery index %d not after pickup index %d", result.Activities[1].Index, result.Activities[0].Index)
	}
}

func TestEvaluateJobInsertionInRouteRejectsValidatorRefusedOrder(t *testing.T) {
	r, pipeline, _ := newLinearRoute()
	// A validator that only accepts the reversed permutation can never be
	// satisfied by the declaration-order search, so the whole job fails
	// rather than a half-placed subtask surviving.
	reversedOnly := func(order []int) bool {
		return len(order) == 2 && order[0] == 1 && order[1] == 0
	}
	job := model.NewMultiJob("reversed-only", []model.SingleTask{
		{Place: model.Place{Location: model.Location{Lat: 10, Lng: 0}}},
		{Place: model.Place{Location: model.Location{Lat: 90, Lng: 0}}},
	}, reversedOnly)

	sol := &fakeSolutionView{routes: []*route.Route{r}}
	result := insertion.EvaluateJobInsertionInRoute(pipeline, sol, job, r, insertion.PositionAny)
	if result.Success() {
		t.Fatal("expected the validator to reject the declaration-order placement")
	}
	if result.ConstraintCode != constraint.CodeMultiJobOrder {
		t.Errorf("ConstraintCode = %v, want CodeMultiJobOrder", result.ConstraintCode)
	}
}

func TestApplySplicesActivitiesOnSuccess(t *testing.T) {
	r, pipeline, _ := newLinearRoute()
	job := model.NewSingleJob("new", model.SingleTask{Place: model.Place{Location: model.Location{Lat: 1, Lng: 0}}})
	sol := &fakeSolutionView{routes: []*route.Route{r}}

	before := r.Tour.ActivityCount()
	result := insertion.EvaluateJobInsertionInRoute(pipeline, sol, job, r, insertion.PositionAny)
	insertion.Apply(pipeline, sol, r, job, result)

	if got := r.Tour.ActivityCount(); got != before+1 {
		t.Errorf("ActivityCount() after Apply = %d, want %d", got, before+1)
	}
	if _, ok := r.Tour.IndexOf(job); !ok {
		t.Error("expected the new job to appear in the tour after Apply")
	}
}

func TestApplyIsNoOpOnFailedResult(t *testing.T) {
	r, pipeline, _ := newLinearRoute()
	sol := &fakeSolutionView{routes: []*route.Route{r}}
	job := model.NewSingleJob("rejected", model.SingleTask{})

	before := r.Tour.ActivityCount()
	insertion.Apply(pipeline, sol, r, job, insertion.Result{Stopped: true})
	if got := r.Tour.ActivityCount(); got != before {
		t.Errorf("ActivityCount() after Apply on a failed result = %d, want unchanged %d", got, before)
	}
}
