package constraint

import (
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

// FleetUsageConstraint is a soft module active only when minimize-tours is
// configured: it adds a per-insertion cost penalty for placing a job
// into a vehicle that is not yet in use, nudging recreate toward filling
// already-open routes before opening new ones. The matching
// TotalRoutes objective (objective.TotalRoutes) scores the final count.
type FleetUsageConstraint struct {
	// NewVehiclePenalty is the soft cost charged for the first job routed
	// onto a given vehicle.
	NewVehiclePenalty float64
}

func (FleetUsageConstraint) Name() string { return "fleet_usage" }

func (c FleetUsageConstraint) EvaluateJob(sol SolutionView, r *route.Route, job *model.Job) *Violation {
	if sol.UsedVehicleIDs()[r.Vehicle.ID] {
		return nil
	}
	if r.Tour.ActivityCount() > 0 {
		return nil
	}
	return &Violation{Code: CodeFleetUsage, Stopped: false, Cost: c.NewVehiclePenalty}
}

func (FleetUsageConstraint) EvaluateActivity(r *route.Route, ctx model.ActivityContext) *Violation {
	return nil
}

func (FleetUsageConstraint) AcceptInsertion(sol SolutionView, r *route.Route, job *model.Job) {}

func (FleetUsageConstraint) AcceptRouteState(r *route.Route) {}

func (FleetUsageConstraint) AcceptSolutionState(sol SolutionView) {}
