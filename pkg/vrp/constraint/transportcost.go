package constraint

import (
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

// TransportCostConstraint is a soft module charging the travel delta a
// candidate activity introduces between its prospective neighbors:
// d(prev, candidate) + d(candidate, next) - d(prev, next). Without it every
// interior slot costs the same and the cheapest-slot search degenerates to
// lowest-index placement, blind to geometry.
type TransportCostConstraint struct {
	Transport model.TransportCosts
	Weight    float64
}

func (TransportCostConstraint) Name() string { return "transport_cost" }

func (TransportCostConstraint) EvaluateJob(sol SolutionView, r *route.Route, job *model.Job) *Violation {
	return nil
}

func (c TransportCostConstraint) EvaluateActivity(r *route.Route, ctx model.ActivityContext) *Violation {
	if c.Transport == nil || ctx.Prev == nil || ctx.Candidate == nil {
		return nil
	}
	added := c.Transport.Distance(ctx.Prev.Place.Location, ctx.Candidate.Place.Location)
	if ctx.Next != nil {
		added += c.Transport.Distance(ctx.Candidate.Place.Location, ctx.Next.Place.Location)
		added -= c.Transport.Distance(ctx.Prev.Place.Location, ctx.Next.Place.Location)
	}
	weight := c.Weight
	if weight == 0 {
		weight = 1
	}
	return &Violation{Cost: weight * added}
}

func (TransportCostConstraint) AcceptInsertion(sol SolutionView, r *route.Route, job *model.Job) {}

func (TransportCostConstraint) AcceptRouteState(r *route.Route) {}

func (TransportCostConstraint) AcceptSolutionState(sol SolutionView) {}
