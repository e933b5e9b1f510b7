// Package solution holds the mutable working state a generation operates
// on: SolutionContext (the set of routes plus required/unassigned/ignored
// job buckets) and InsertionContext (a SolutionContext paired with the
// shared, immutable Problem and constraint pipeline it is being evaluated
// against). Split out from the refinement package itself so objective,
// mutation, and insertion can all depend on the context shape without
// importing the driver.
package solution

import (
	"github.com/routewise/vrp-engine/pkg/vrp/constraint"
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

// UnassignedReason records why a job could not be placed anywhere: the
// highest-severity constraint code seen across every route attempted.
type UnassignedReason struct {
	Code        int
	Description string
}

// SolutionContext is the working state of one candidate solution: every
// route (used or not), and the three job buckets every job not currently
// routed must be in exactly one of.
type SolutionContext struct {
	Routes_      []*route.Route
	Required     []*model.Job
	Unassigned   map[string]UnassignedReason
	Ignored      []*model.Job
	Locked       []*model.Job
}

// NewSolutionContext builds an empty working solution with one (initially
// empty) Route per fleet vehicle.
func NewSolutionContext(problem *model.Problem) *SolutionContext {
	routes := make([]*route.Route, 0, len(problem.Fleet.Vehicles))
	for _, v := range problem.Fleet.Vehicles {
		routes = append(routes, route.NewRoute(v))
	}
	required := append([]*model.Job(nil), problem.Plan.Jobs...)
	return &SolutionContext{
		Routes_:    routes,
		Required:   required,
		Unassigned: make(map[string]UnassignedReason),
		Ignored:    append([]*model.Job(nil), problem.Plan.Ignored...),
		Locked:     append([]*model.Job(nil), problem.Plan.Locked...),
	}
}

// Routes implements constraint.SolutionView.
func (s *SolutionContext) Routes() []*route.Route { return s.Routes_ }

// UsedVehicleIDs implements constraint.SolutionView: a vehicle is "used"
// once its route carries at least one non-terminal activity.
func (s *SolutionContext) UsedVehicleIDs() map[string]bool {
	used := make(map[string]bool, len(s.Routes_))
	for _, r := range s.Routes_ {
		if r.Tour.ActivityCount() > 0 {
			used[r.Vehicle.ID] = true
		}
	}
	return used
}

// RouteByVehicleID returns the route assigned to the given vehicle, or nil.
func (s *SolutionContext) RouteByVehicleID(id string) *route.Route {
	for _, r := range s.Routes_ {
		if r.Vehicle.ID == id {
			return r
		}
	}
	return nil
}

// MarkUnassigned records job as unassigned with the highest-severity reason
// observed; it overwrites any previous reason with a strictly higher code.
func (s *SolutionContext) MarkUnassigned(job *model.Job, reason UnassignedReason) {
	if existing, ok := s.Unassigned[job.ID]; ok && existing.Code >= reason.Code {
		return
	}
	s.Unassigned[job.ID] = reason
}

// ClearUnassigned removes job from the unassigned bucket, used when a later
// recreate pass successfully places it after all.
func (s *SolutionContext) ClearUnassigned(job *model.Job) {
	delete(s.Unassigned, job.ID)
}

// Clone deep-copies every route and job-bucket slice so a population member
// and the working incumbent never alias each other's state.
func (s *SolutionContext) Clone() *SolutionContext {
	clone := &SolutionContext{
		Routes_:    make([]*route.Route, len(s.Routes_)),
		Required:   append([]*model.Job(nil), s.Required...),
		Unassigned: make(map[string]UnassignedReason, len(s.Unassigned)),
		Ignored:    append([]*model.Job(nil), s.Ignored...),
		Locked:     append([]*model.Job(nil), s.Locked...),
	}
	for i, r := range s.Routes_ {
		clone.Routes_[i] = r.Clone()
	}
	for k, v := range s.Unassigned {
		clone.Unassigned[k] = v
	}
	return clone
}

// InsertionContext pairs one working SolutionContext with the shared,
// read-only problem description and the constraint pipeline every insertion
// attempt is evaluated against. This is the unit mutation operators and the
// insertion evaluator both consume and return.
type InsertionContext struct {
	Problem  *model.Problem
	Pipeline *constraint.Pipeline
	Solution *SolutionContext
	Random   RandomSource
}

// RandomSource is the minimal randomness surface InsertionContext threads
// through, declared here (rather than importing randsrc directly) to keep
// this package's dependency surface to model/route/constraint only; the
// concrete randsrc.Source satisfies it structurally.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
	WeightedChoice(weights []float64) int
	Shuffle(n int, swap func(i, j int))
}

// Clone deep-copies the working solution; Problem, Pipeline, and Random are
// shared references (immutable / stateless from the context's perspective).
func (ic *InsertionContext) Clone() *InsertionContext {
	return &InsertionContext{
		Problem:  ic.Problem,
		Pipeline: ic.Pipeline,
		Solution: ic.Solution.Clone(),
		Random:   ic.Random,
	}
}

// ValidateStructure checks the tour invariants every route must uphold:
// terminals bracket the activity sequence, and every interior job activity
// carries a job reference. A violation is a bug in the engine, not bad
// caller input, so it surfaces as a StructuralError.
func ValidateStructure(s *SolutionContext) error {
	for _, r := range s.Routes_ {
		activities := r.Tour.Activities
		if len(activities) < 2 {
			return model.NewStructuralError("route %s has %d activities, want at least both terminals", r.Vehicle.ID, len(activities))
		}
		if !activities[0].IsTerminal() || !activities[len(activities)-1].IsTerminal() {
			return model.NewStructuralError("route %s is not bracketed by terminal activities", r.Vehicle.ID)
		}
		for i := 1; i < len(activities)-1; i++ {
			a := activities[i]
			if a.Type == model.ActivityJob && a.Job == nil {
				return model.NewStructuralError("route %s activity %d has a dangling job reference", r.Vehicle.ID, i)
			}
		}
	}
	return nil
}
