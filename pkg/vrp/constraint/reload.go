package constraint

import (
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

// ReloadConstraint is a soft+hard hybrid module: it permits a route's
// cumulative load to legally reset toward zero at one of the vehicle's
// configured Reload places, rather than treating every capacity breach as an
// unconditional hard failure. cumulativeDemand (capacity.go) already resets
// at every ActivityReload it walks past, so CapacityConstraint.EvaluateJob
// and AcceptRouteState are reload-aware on their own; this module's
// AcceptRouteState only needs to keep the cache warm for callers that read
// it before CapacityConstraint's own hook runs in pipeline order.
type ReloadConstraint struct{}

func (ReloadConstraint) Name() string { return "reload" }

func (ReloadConstraint) EvaluateJob(sol SolutionView, r *route.Route, job *model.Job) *Violation {
	return nil
}

func (ReloadConstraint) EvaluateActivity(r *route.Route, ctx model.ActivityContext) *Violation {
	return nil
}

func (ReloadConstraint) AcceptInsertion(sol SolutionView, r *route.Route, job *model.Job) {}

// AcceptRouteState writes the same reload-aware cumulative demand
// CapacityConstraint computes, so the capacity cache reflects post-reset
// totals regardless of which of the two modules last wrote it.
func (ReloadConstraint) AcceptRouteState(r *route.Route) {
	if len(r.Vehicle.Shifts) == 0 || len(r.Vehicle.Shifts[0].Reloads) == 0 {
		return
	}
	r.SetState(capacityStateKey, cumulativeDemand(r))
}

func (ReloadConstraint) AcceptSolutionState(sol SolutionView) {}
