package model

// Plan is the set of jobs a Problem must route, already partitioned by the
// caller into jobs that must be placed and jobs the caller has chosen to
// ignore outright (neither required nor reportable as unassigned).
type Plan struct {
	Jobs    []*Job
	Ignored []*Job
	Locked  []*Job // jobs forbidden to move once placed by the caller's seed solution
}

// Problem is the immutable, shared-for-the-whole-run description of what to
// route: fleet, jobs, transport/activity costs. It is never mutated after
// NewProblem returns; every Individual's InsertionContext holds a reference
// to the same Problem.
type Problem struct {
	Fleet          *Fleet
	Plan           Plan
	TransportCosts TransportCosts
	ActivityCosts  ActivityCosts
}

// NewProblem validates and constructs a Problem. It returns a
// ConfigurationError if the fleet is empty or transport costs are unset —
// the only two fatal, setup-time conditions the core itself checks (nil
// activity costs fall back to DefaultActivityCosts); richer
// validation (e.g. of wire-format input) belongs to the problem-intake
// collaborator.
func NewProblem(fleet *Fleet, plan Plan, transport TransportCosts, activity ActivityCosts) (*Problem, error) {
	if fleet == nil || len(fleet.Vehicles) == 0 {
		return nil, NewConfigurationError("fleet must contain at least one vehicle")
	}
	if transport == nil {
		return nil, NewConfigurationError("transport costs must be set")
	}
	if activity == nil {
		activity = DefaultActivityCosts{}
	}
	return &Problem{Fleet: fleet, Plan: plan, TransportCosts: transport, ActivityCosts: activity}, nil
}

// AllJobs returns every job across required, ignored, and locked sets.
func (p *Problem) AllJobs() []*Job {
	all := make([]*Job, 0, len(p.Plan.Jobs)+len(p.Plan.Ignored)+len(p.Plan.Locked))
	all = append(all, p.Plan.Jobs...)
	all = append(all, p.Plan.Ignored...)
	all = append(all, p.Plan.Locked...)
	return all
}
