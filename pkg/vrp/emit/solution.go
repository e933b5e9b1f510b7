// Package emit builds the reportable Solution a caller receives at the end
// of a solve: aggregated statistics, the ordered tour list, unassigned job
// records, and per-iteration diagnostics. The struct carries JSON tags so a
// caller can marshal it for transport, but the engine itself never parses
// or emits JSON — the wire format is the caller's boundary.
package emit

import (
	"sort"
	"time"

	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

// Timing splits a run's total duration into what the fleet spent doing.
type Timing struct {
	Driving float64 `json:"driving"`
	Serving float64 `json:"serving"`
	Waiting float64 `json:"waiting"`
	Break   float64 `json:"break"`
}

// Statistic aggregates one solution's cost, distance, and time breakdown.
type Statistic struct {
	Cost     float64 `json:"cost"`
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Times    Timing  `json:"times"`
}

// Schedule is one stop's arrival/departure pair.
type Schedule struct {
	Arrival   float64 `json:"arrival"`
	Departure float64 `json:"departure"`
}

// StopActivity names one activity performed at a stop and the job it serves.
type StopActivity struct {
	Kind  string `json:"kind"` // "terminal", "job", "break", "reload"
	JobID string `json:"jobId,omitempty"`
}

// Stop is one visited location within a tour.
type Stop struct {
	Location   model.Location `json:"location"`
	Schedule   Schedule       `json:"schedule"`
	Load       []string       `json:"load,omitempty"`
	Activities []StopActivity `json:"activities"`
}

// Tour is one vehicle's emitted route.
type Tour struct {
	VehicleID string `json:"vehicleId"`
	TypeID    string `json:"typeId"`
	Stops     []Stop `json:"stops"`
}

// UnassignedJob records a job no recreate attempt could place, with the
// highest-severity constraint code observed across every attempted route.
type UnassignedJob struct {
	JobID       string `json:"jobId"`
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// Iteration is one generation's diagnostic snapshot, collected by the
// driver's per-generation observer.
type Iteration struct {
	Number     int       `json:"number"`
	Cost       float64   `json:"cost"`
	Timestamp  time.Time `json:"timestamp"`
	Tours      int       `json:"tours"`
	Unassigned int       `json:"unassigned"`
}

// Extras carries per-run diagnostics alongside the solution proper.
type Extras struct {
	Iterations []Iteration `json:"iterations,omitempty"`
}

// Solution is the full emitted result for one problem.
type Solution struct {
	ProblemID  string          `json:"problemId"`
	Statistic  Statistic       `json:"statistic"`
	Tours      []Tour          `json:"tours"`
	Unassigned []UnassignedJob `json:"unassigned,omitempty"`
	Extras     *Extras         `json:"extras,omitempty"`
}

// Recorder collects one Iteration per observed generation; it satisfies the
// refinement driver's per-generation observer hook.
type Recorder struct {
	Iterations []Iteration
}

// ObserveGeneration appends one iteration snapshot, stamped with wall-clock
// time at the moment of observation.
func (r *Recorder) ObserveGeneration(generation int, bestCost float64, tours, unassigned int) {
	r.Iterations = append(r.Iterations, Iteration{
		Number:     generation,
		Cost:       bestCost,
		Timestamp:  time.Now(),
		Tours:      tours,
		Unassigned: unassigned,
	})
}

// Build assembles the emitted Solution from a finished insertion context;
// cost is the run's reportable scalar as selected by the objective model.
// On a cancelled run, jobs still in Required are reported alongside the
// unassigned ones (with code zero) so the caller sees every unplaced job.
func Build(problemID string, ctx *solution.InsertionContext, cost float64, extras *Extras) *Solution {
	sol := &Solution{ProblemID: problemID, Extras: extras}
	sol.Statistic.Cost = cost

	for _, r := range ctx.Solution.Routes() {
		if r.Tour.ActivityCount() == 0 {
			continue
		}
		sol.Tours = append(sol.Tours, buildTour(r))
		accumulate(&sol.Statistic, r, ctx.Problem.TransportCosts)
	}

	for id, reason := range ctx.Solution.Unassigned {
		sol.Unassigned = append(sol.Unassigned, UnassignedJob{
			JobID:       id,
			Code:        reason.Code,
			Description: reason.Description,
		})
	}
	for _, job := range ctx.Solution.Required {
		sol.Unassigned = append(sol.Unassigned, UnassignedJob{
			JobID:       job.ID,
			Description: "not placed before the run ended",
		})
	}
	sort.Slice(sol.Unassigned, func(i, j int) bool {
		return sol.Unassigned[i].JobID < sol.Unassigned[j].JobID
	})

	return sol
}

func buildTour(r *route.Route) Tour {
	tour := Tour{VehicleID: r.Vehicle.ID, TypeID: r.Vehicle.TypeID}
	for _, a := range r.Tour.Activities {
		stop := Stop{
			Location: a.Place.Location,
			Schedule: Schedule{Arrival: a.Arrival, Departure: a.Departure},
		}
		act := StopActivity{Kind: activityKind(a.Type)}
		if a.Job != nil {
			act.JobID = a.Job.ID
		}
		stop.Activities = append(stop.Activities, act)
		tour.Stops = append(tour.Stops, stop)
	}
	return tour
}

func activityKind(t model.ActivityType) string {
	switch t {
	case model.ActivityJob:
		return "job"
	case model.ActivityBreak:
		return "break"
	case model.ActivityReload:
		return "reload"
	default:
		return "terminal"
	}
}

// accumulate folds one route's distance and time breakdown into the
// solution-wide statistic.
func accumulate(stat *Statistic, r *route.Route, transport model.TransportCosts) {
	activities := r.Tour.Activities
	if len(activities) == 0 {
		return
	}
	start := activities[0].Departure
	end := start

	for i := 1; i < len(activities); i++ {
		prev, cur := activities[i-1], activities[i]

		stat.Distance += transport.Distance(prev.Place.Location, cur.Place.Location)
		travel := transport.Duration(prev.Place.Location, cur.Place.Location)
		stat.Times.Driving += travel

		reachable := prev.Departure + travel
		if cur.IsTerminal() {
			// The end terminal's stored arrival is the shift bound, not a
			// schedule; the vehicle is done as soon as it gets there.
			end = reachable
			continue
		}

		// Waiting is whatever gap remains between reachable arrival and the
		// arrival actually scheduled (a window that opened later).
		if cur.Arrival > reachable {
			stat.Times.Waiting += cur.Arrival - reachable
		}

		service := cur.Departure - cur.Arrival
		switch cur.Type {
		case model.ActivityBreak:
			stat.Times.Break += service
		default:
			stat.Times.Serving += service
		}
		end = cur.Departure
	}

	stat.Duration += end - start
}
