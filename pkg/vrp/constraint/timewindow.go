package constraint

import (
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

// TimeWindowConstraint is a hard module: it rejects any candidate activity
// whose earliest feasible arrival (predecessor departure + travel time)
// falls after every one of the place's time windows has already closed, and
// otherwise computes the scheduled arrival/departure: arrival is the later
// of window open and reachable time, service duration advances departure.
type TimeWindowConstraint struct {
	Transport model.TransportCosts
	Activity  model.ActivityCosts
}

func (TimeWindowConstraint) Name() string { return "time_window" }

func (TimeWindowConstraint) EvaluateJob(sol SolutionView, r *route.Route, job *model.Job) *Violation {
	return nil
}

// EvaluateActivity computes the earliest arrival at ctx.Candidate given
// ctx.Prev's departure, and fails hard if no time window of the candidate's
// place can still be reached before it closes.
func (c TimeWindowConstraint) EvaluateActivity(r *route.Route, ctx model.ActivityContext) *Violation {
	if ctx.Prev == nil || ctx.Candidate == nil {
		return nil
	}

	travel := c.Transport.Duration(ctx.Prev.Place.Location, ctx.Candidate.Place.Location)
	earliest := ctx.Prev.Departure + travel

	windows := ctx.Candidate.Place.TimeWindows
	if len(windows) == 0 {
		windows = []model.TimeWindow{{Start: earliest, End: earliest + 1e18}}
	}

	best, ok := bestWindow(windows, earliest)
	if !ok {
		return &Violation{Code: CodeTimeWindow, Stopped: true, Reason: "no reachable time window"}
	}

	arrival := earliest
	if arrival < best.Start {
		arrival = best.Start
	}
	service := c.Activity.ServiceDuration(&ctx.Candidate.Place)

	ctx.Candidate.Window = best
	ctx.Candidate.Arrival = arrival
	ctx.Candidate.Departure = arrival + service

	if ctx.Next != nil && ctx.Next.IsTerminal() && len(ctx.Next.Place.TimeWindows) > 0 {
		shiftEnd := ctx.Next.Place.TimeWindows[0].End
		returnTravel := c.Transport.Duration(ctx.Candidate.Place.Location, ctx.Next.Place.Location)
		if ctx.Candidate.Departure+returnTravel > shiftEnd {
			return &Violation{Code: CodeTimeWindow, Stopped: true, Reason: "insertion would miss shift end"}
		}
	}

	return nil
}

// bestWindow returns the first window in declaration order that can still
// be reached: lower window index wins among equal-cost candidates, so no
// "tightest fit" search is needed.
func bestWindow(windows []model.TimeWindow, earliest float64) (model.TimeWindow, bool) {
	for _, w := range windows {
		if earliest <= w.End {
			return w, true
		}
	}
	return model.TimeWindow{}, false
}

func (TimeWindowConstraint) AcceptInsertion(sol SolutionView, r *route.Route, job *model.Job) {}

func (TimeWindowConstraint) AcceptRouteState(r *route.Route) {}

func (TimeWindowConstraint) AcceptSolutionState(sol SolutionView) {}
